/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UI strings with built-in translations. Keys are the English text.
var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		"(not set)": "(no definido)",
		"Yes":       "Sí",
		"No":        "No",
		"View":      "Ver",
		"Edit":      "Editar",
		"Delete":    "Eliminar",
		"Actions":   "Acciones",
		"Previous":  "Anterior",
		"Next":      "Siguiente",

		"No results found.": "No se encontraron resultados.",

		"Are you sure you want to delete this item?": "¿Está seguro de eliminar este elemento?",

		"Showing <b>{begin}-{end}</b> of <b>{totalCount}</b>.": "Mostrando <b>{begin}-{end}</b> de <b>{totalCount}</b>.",
	},
	language.German: {
		"(not set)": "(nicht gesetzt)",
		"Yes":       "Ja",
		"No":        "Nein",
		"View":      "Anzeigen",
		"Edit":      "Bearbeiten",
		"Delete":    "Löschen",
		"Actions":   "Aktionen",
		"Previous":  "Zurück",
		"Next":      "Weiter",

		"No results found.": "Keine Ergebnisse gefunden.",

		"Are you sure you want to delete this item?": "Wollen Sie diesen Eintrag wirklich löschen?",

		"Showing <b>{begin}-{end}</b> of <b>{totalCount}</b>.": "Zeige <b>{begin}-{end}</b> von <b>{totalCount}</b>.",
	},
}

func init() {
	for tag, strs := range translations {
		for key, msg := range strs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// SetTranslation registers msg as the translation of key for tag.
func SetTranslation(tag language.Tag, key, msg string) error {
	return message.SetString(tag, key, msg)
}

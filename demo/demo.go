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

// Package demo holds sample grids and the data they display.
package demo

import (
	"embed"
	"io/fs"

	"github.com/google/gridview/core/config"
)

//go:embed data/*
var dataFS embed.FS

// Dir is the directory of FS holding the definitions and CSV files.
const Dir = "data"

// DefinitionsFile is the grid definition file inside Dir.
const DefinitionsFile = "grids.yaml"

// FS returns the embedded demo files.
func FS() fs.FS { return dataFS }

// Load decodes the demo grid definitions.
func Load() (*config.File, error) {
	return config.LoadFS(dataFS, Dir+"/"+DefinitionsFile)
}

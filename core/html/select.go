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

package html

import (
	"fmt"
	"strings"

	"github.com/google/gridview/core/orderedmap"
	"github.com/google/safehtml"
)

// Items are select options keyed by option value. A value is either the
// option label or a nested *Items, which renders as an <optgroup> labeled
// by its key.
type Items = orderedmap.Map[string, any]

// NewItems builds select items from alternating value/label pairs.
func NewItems(pairs ...any) *Items {
	return Attrs(pairs...)
}

// Prompt is the blank leading option of a select.
type Prompt struct {
	Text    string
	Value   string
	Options *Attributes
}

// SelectOptions tunes option rendering.
type SelectOptions struct {
	// Prompt, when non-nil, renders a leading option.
	Prompt *Prompt
	// OptionAttrs holds extra attributes per option value.
	OptionAttrs map[string]*Attributes
	// GroupAttrs holds extra attributes per optgroup label.
	GroupAttrs map[string]*Attributes
	// EncodeSpaces replaces spaces in labels with &nbsp;.
	EncodeSpaces bool
}

// RenderSelectOptions renders the <option> and <optgroup> tags for items.
// selection may be a scalar or a []string; values compare as strings.
func RenderSelectOptions(selection any, items *Items, opts SelectOptions) safehtml.HTML {
	selected := selectionSet(selection)
	var lines []string
	if p := opts.Prompt; p != nil {
		attrs := Attrs("value", p.Value).Merge(p.Options)
		lines = append(lines, Tag("option", Text(p.Text), attrs).String())
	}
	renderItems(&lines, items, selected, opts)
	return Trusted(strings.Join(lines, "\n"))
}

func renderItems(lines *[]string, items *Items, selected map[string]bool, opts SelectOptions) {
	items.Range(func(value string, label any) bool {
		if group, ok := label.(*Items); ok {
			attrs := Attrs("label", value).Merge(opts.GroupAttrs[value])
			var inner []string
			renderItems(&inner, group, selected, opts)
			content := Trusted("\n" + strings.Join(inner, "\n") + "\n")
			*lines = append(*lines, Tag("optgroup", content, attrs).String())
			return true
		}
		attrs := Attrs("value", value)
		if selected[value] {
			attrs.Set("selected", true)
		}
		attrs = attrs.Merge(opts.OptionAttrs[value])
		text := Encode(fmt.Sprint(label))
		if opts.EncodeSpaces {
			text = strings.ReplaceAll(text, " ", "&nbsp;")
		}
		*lines = append(*lines, Tag("option", Trusted(text), attrs).String())
		return true
	})
}

func selectionSet(selection any) map[string]bool {
	set := make(map[string]bool)
	switch v := selection.(type) {
	case nil:
	case []string:
		for _, s := range v {
			set[s] = true
		}
	case []any:
		for _, s := range v {
			set[fmt.Sprint(s)] = true
		}
	default:
		set[fmt.Sprint(v)] = true
	}
	return set
}

// DropDownList renders a <select> element named name.
func DropDownList(name string, selection any, items *Items, attrs *Attributes, opts SelectOptions) safehtml.HTML {
	base := NewAttributes()
	if name != "" {
		base.Set("name", name)
	}
	content := RenderSelectOptions(selection, items, opts)
	return Tag("select", Trusted("\n"+content.String()+"\n"), base.Merge(attrs))
}

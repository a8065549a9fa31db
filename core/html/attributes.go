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

// Package html renders HTML tags and tag attributes for grid markup.
//
// Attribute maps keep insertion order so rendered markup is stable.
// All markup leaves this package as safehtml.HTML.
package html

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/gridview/core/orderedmap"
	"github.com/google/safehtml"
)

// Attributes is an ordered mapping of attribute names to values.
//
// Values may be:
//   - bool: rendered as a boolean attribute when true, omitted when false
//   - nil: omitted
//   - []string or []any under "class": deduplicated class list
//   - a map under "style": CSS declarations
//   - a map under "data" or "aria": expanded to data-* / aria-* attributes
//   - any other map or slice: JSON encoded into a single-quoted attribute
//   - anything else: converted with fmt.Sprint and HTML-escaped
type Attributes = orderedmap.Map[string, any]

// dataAttributes lists the names whose map values expand into prefixed attributes.
var dataAttributes = map[string]bool{
	"aria": true,
	"data": true,
}

// NewAttributes creates an empty attribute map.
func NewAttributes() *Attributes {
	return orderedmap.New[string, any]()
}

// Attrs builds an attribute map from alternating name/value pairs.
// It panics on an odd number of arguments or a non-string name.
func Attrs(pairs ...any) *Attributes {
	if len(pairs)%2 != 0 {
		panic("html.Attrs: odd number of arguments")
	}
	attrs := NewAttributes()
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("html.Attrs: attribute name %v is not a string", pairs[i]))
		}
		attrs.Set(name, pairs[i+1])
	}
	return attrs
}

// Encode escapes special characters into HTML entities.
func Encode(content string) string {
	return safehtml.HTMLEscaped(content).String()
}

// JSONEncode encodes value as JSON that is safe to embed in a single-quoted
// HTML attribute: <, >, & and ' are emitted as unicode escapes.
func JSONEncode(value any) string {
	out, err := json.Marshal(value)
	if err != nil {
		out, _ = json.Marshal(fmt.Sprint(value))
	}
	// json.Marshal already escapes <, > and &; apostrophes only occur inside strings.
	return strings.ReplaceAll(string(out), "'", `\u0027`)
}

// CSSStyle converts CSS declarations into "name: value;" pairs joined by spaces.
// It returns an empty string for an empty style.
func CSSStyle(style *orderedmap.Map[string, any]) string {
	var parts []string
	style.Range(func(name string, value any) bool {
		if value == nil {
			return true
		}
		parts = append(parts, fmt.Sprintf("%s: %v;", name, value))
		return true
	})
	return strings.Join(parts, " ")
}

// AddCSSClass returns a copy of attrs with class names appended to its
// class list. Existing names are kept first and duplicates dropped.
func AddCSSClass(attrs *Attributes, classes ...string) *Attributes {
	merged := attrs.Clone()
	existing, _ := merged.Get("class")
	list := classList(existing)
	for _, c := range classes {
		list = append(list, strings.Fields(c)...)
	}
	merged.Set("class", dedupe(list))
	return merged
}

// RenderTagAttributes renders attrs as a string with a leading space before
// each attribute, ready to be appended to a tag name.
func RenderTagAttributes(attrs *Attributes) string {
	var sb strings.Builder
	attrs.Range(func(name string, value any) bool {
		renderAttribute(&sb, name, value)
		return true
	})
	return sb.String()
}

func renderAttribute(sb *strings.Builder, name string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case bool:
		if v {
			sb.WriteString(" " + name)
		}
		return
	case safehtml.HTML:
		// Attribute values are text; markup is escaped like any string.
		writeQuoted(sb, name, v.String())
		return
	}

	if m, ok := asMap(value); ok {
		switch {
		case dataAttributes[name]:
			m.Range(func(k string, item any) bool {
				renderDataItem(sb, name+"-"+k, item)
				return true
			})
		case name == "style":
			if style := CSSStyle(m); style != "" {
				writeQuoted(sb, name, style)
			}
		default:
			sb.WriteString(" " + name + "='" + JSONEncode(m) + "'")
		}
		return
	}

	if list, ok := asList(value); ok {
		if name == "class" {
			classes := dedupe(classList(list))
			if len(classes) > 0 {
				writeQuoted(sb, name, strings.Join(classes, " "))
			}
			return
		}
		sb.WriteString(" " + name + "='" + JSONEncode(list) + "'")
		return
	}

	writeQuoted(sb, name, fmt.Sprint(value))
}

func renderDataItem(sb *strings.Builder, name string, value any) {
	switch v := value.(type) {
	case nil:
	case bool:
		if v {
			sb.WriteString(" " + name)
		}
	default:
		if m, ok := asMap(value); ok {
			sb.WriteString(" " + name + "='" + JSONEncode(m) + "'")
			return
		}
		if list, ok := asList(value); ok {
			sb.WriteString(" " + name + "='" + JSONEncode(list) + "'")
			return
		}
		writeQuoted(sb, name, fmt.Sprint(value))
	}
}

func writeQuoted(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(Encode(value))
	sb.WriteString(`"`)
}

// asMap normalizes the map shapes accepted as attribute values.
// Plain Go maps are ordered by key.
func asMap(value any) (*orderedmap.Map[string, any], bool) {
	switch v := value.(type) {
	case *orderedmap.Map[string, any]:
		return v, true
	case *orderedmap.Map[string, string]:
		m := orderedmap.New[string, any]()
		v.Range(func(k, s string) bool {
			m.Set(k, s)
			return true
		})
		return m, true
	case map[string]any:
		return orderedmap.FromMap(v, lessString), true
	case map[string]string:
		m := orderedmap.New[string, any]()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.Set(k, v[k])
		}
		return m, true
	}
	return nil, false
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		list := make([]any, len(v))
		for i, s := range v {
			list[i] = s
		}
		return list, true
	}
	return nil, false
}

// classList flattens a class attribute value into individual class names.
func classList(value any) []string {
	var names []string
	switch v := value.(type) {
	case nil:
	case string:
		names = append(names, strings.Fields(v)...)
	case []string:
		for _, s := range v {
			names = append(names, strings.Fields(s)...)
		}
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			names = append(names, strings.Fields(fmt.Sprint(item))...)
		}
	default:
		names = append(names, strings.Fields(fmt.Sprint(v))...)
	}
	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		result = append(result, n)
	}
	return result
}

func lessString(a, b string) bool { return a < b }

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

package data

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/gridview/core/orderedmap"
)

// Lookup resolves a dotted path such as "author.name" or "tags.0" against
// a row record. Each segment is looked up in Records and maps by key, in
// structs by grid or json tag, field name or no-argument method, and in
// slices by index. Misses return (nil, false).
func Lookup(model any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := model
	for _, segment := range strings.Split(path, ".") {
		next, ok := lookupSegment(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func lookupSegment(value any, name string) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case *Record:
		return v.Get(name)
	case *orderedmap.Map[string, string]:
		return v.Get(name)
	case map[string]any:
		r, ok := v[name]
		return r, ok
	case map[string]string:
		r, ok := v[name]
		return r, ok
	}

	rv := reflect.ValueOf(value)
	if m, ok := methodValue(rv, name); ok {
		return m, true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		item := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !item.IsValid() {
			return nil, false
		}
		return item.Interface(), true
	case reflect.Struct:
		if f, ok := structField(rv, name); ok {
			return f.Interface(), true
		}
		if m, ok := methodValue(rv, name); ok {
			return m, true
		}
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// structField finds an exported field by tag, by exact name, or by the
// camel-cased form of a snake_case name.
func structField(rv reflect.Value, name string) (reflect.Value, bool) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tagName(sf) == name {
			return rv.Field(i), true
		}
	}
	for _, candidate := range []string{name, Camelize(name)} {
		sf, ok := t.FieldByName(candidate)
		if ok && sf.IsExported() {
			return rv.FieldByIndex(sf.Index), true
		}
	}
	return reflect.Value{}, false
}

func tagName(sf reflect.StructField) string {
	for _, key := range []string{"grid", "json"} {
		if tag, ok := sf.Tag.Lookup(key); ok {
			name, _, _ := strings.Cut(tag, ",")
			if name != "" && name != "-" {
				return name
			}
		}
	}
	return ""
}

// methodValue calls an exported method taking no arguments and returning
// a value, or a value and an error. A non-nil error is a miss.
func methodValue(rv reflect.Value, name string) (any, bool) {
	if !rv.IsValid() || name == "" {
		return nil, false
	}
	for _, candidate := range []string{name, Camelize(name)} {
		m := rv.MethodByName(candidate)
		if !m.IsValid() {
			continue
		}
		mt := m.Type()
		if mt.NumIn() != 0 {
			continue
		}
		switch mt.NumOut() {
		case 1:
			return m.Call(nil)[0].Interface(), true
		case 2:
			if !mt.Out(1).Implements(errorType) {
				continue
			}
			out := m.Call(nil)
			if !out[1].IsNil() {
				return nil, false
			}
			return out[0].Interface(), true
		}
	}
	return nil, false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Camelize converts snake_case and kebab-case names to an exported Go
// identifier: "first_name" becomes "FirstName".
func Camelize(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Field is one named value of a record.
type Field struct {
	Name  string
	Value any
}

// Fields lists the top-level fields of a record in a stable order:
// insertion order for Records, sorted keys for plain maps and declaration
// order for structs.
func Fields(model any) []Field {
	switch v := model.(type) {
	case nil:
		return nil
	case *Record:
		var fields []Field
		v.Range(func(k string, val any) bool {
			fields = append(fields, Field{Name: k, Value: val})
			return true
		})
		return fields
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Name: k, Value: v[k]}
		}
		return fields
	}

	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Name: k.String(), Value: rv.MapIndex(k).Interface()}
		}
		return fields
	case reflect.Struct:
		t := rv.Type()
		var fields []Field
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() || sf.Anonymous || sf.Tag.Get("grid") == "-" {
				continue
			}
			name := tagName(sf)
			if name == "" {
				name = sf.Name
			}
			fields = append(fields, Field{Name: name, Value: rv.Field(i).Interface()})
		}
		return fields
	}
	return nil
}

// IsScalar reports whether v can be shown in a single cell: nil, strings,
// booleans, numbers, times and anything implementing fmt.Stringer.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, time.Time, *time.Time, fmt.Stringer:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String, reflect.Bool:
		return true
	}
	return false
}

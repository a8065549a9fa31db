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

package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/grid"
	"github.com/google/gridview/core/html"
)

func invalid(at, msg string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, at, fmt.Sprintf(msg, args...))
}

func decodeFile(doc tree) (*File, error) {
	if doc == nil {
		return &File{}, nil
	}
	root, err := asMapping(doc, "document")
	if err != nil {
		return nil, err
	}
	file := &File{}
	var outer error
	root.Range(func(key string, value any) bool {
		if key != "grids" {
			outer = invalid(key, "unknown key")
			return false
		}
		list, err := asList(value, "grids")
		if err != nil {
			outer = err
			return false
		}
		for i, item := range list {
			g, err := decodeGrid(item, fmt.Sprintf("grids[%d]", i))
			if err != nil {
				outer = err
				return false
			}
			if _, dup := file.Grid(g.Name); dup {
				outer = invalid(fmt.Sprintf("grids[%d]", i), "duplicate grid name %q", g.Name)
				return false
			}
			file.Grids = append(file.Grids, g)
		}
		return true
	})
	if outer != nil {
		return nil, outer
	}
	return file, nil
}

// gridFields decode the scalar and option keys of a grid.
var gridFields = map[string]func(g *Grid, v any, at string) error{
	"name":  func(g *Grid, v any, at string) (err error) { g.Name, err = asString(v, at); return },
	"title": func(g *Grid, v any, at string) (err error) { g.Title, err = asString(v, at); return },
	"source": func(g *Grid, v any, at string) (err error) {
		g.Source, err = asString(v, at)
		return
	},
	"key": func(g *Grid, v any, at string) error {
		if s, ok := v.(string); ok {
			g.KeyField = s
			return nil
		}
		keys, err := asStrings(v, at)
		g.KeyFields = keys
		return err
	},
	"pageSize": func(g *Grid, v any, at string) (err error) { g.PageSize, err = asInt(v, at); return },
	"locale":   func(g *Grid, v any, at string) (err error) { g.Locale, err = asString(v, at); return },
	"currency": func(g *Grid, v any, at string) (err error) { g.Currency, err = asString(v, at); return },
	"timeZone": func(g *Grid, v any, at string) (err error) { g.TimeZone, err = asString(v, at); return },
	"layout":   func(g *Grid, v any, at string) (err error) { g.Layout, err = asString(v, at); return },
	"caption":  func(g *Grid, v any, at string) (err error) { g.Caption, err = asString(v, at); return },
	"summary": func(g *Grid, v any, at string) (err error) {
		if b, ok := v.(bool); ok {
			g.NoSummary = !b
			return nil
		}
		g.Summary, err = asString(v, at)
		return
	},
	"emptyText": func(g *Grid, v any, at string) (err error) {
		if b, ok := v.(bool); ok {
			g.NoEmptyText = !b
			return nil
		}
		g.EmptyText, err = asString(v, at)
		return
	},
	"hideOnEmpty": func(g *Grid, v any, at string) (err error) { g.HideOnEmpty, err = asBool(v, at); return },
	"showHeader": func(g *Grid, v any, at string) error {
		show, err := asBool(v, at)
		g.HideHeader = !show
		return err
	},
	"showFooter":           func(g *Grid, v any, at string) (err error) { g.ShowFooter, err = asBool(v, at); return },
	"placeFooterAfterBody": func(g *Grid, v any, at string) (err error) { g.PlaceFooterAfterBody, err = asBool(v, at); return },
	"filterPosition": func(g *Grid, v any, at string) error {
		s, err := asString(v, at)
		if err != nil {
			return err
		}
		switch p := grid.FilterPosition(s); p {
		case grid.FilterNone, grid.FilterHeader, grid.FilterBody, grid.FilterFooter:
			g.FilterPosition = p
			return nil
		}
		return invalid(at, "unknown filter position %q", s)
	},
	"dataColumnClass":  func(g *Grid, v any, at string) (err error) { g.DataColumnClass, err = asString(v, at); return },
	"options":          func(g *Grid, v any, at string) (err error) { g.Options, err = asAttrs(v, at); return },
	"tableOptions":     func(g *Grid, v any, at string) (err error) { g.TableOptions, err = asAttrs(v, at); return },
	"headerRowOptions": func(g *Grid, v any, at string) (err error) { g.HeaderRowOptions, err = asAttrs(v, at); return },
	"footerRowOptions": func(g *Grid, v any, at string) (err error) { g.FooterRowOptions, err = asAttrs(v, at); return },
	"filterRowOptions": func(g *Grid, v any, at string) (err error) { g.FilterRowOptions, err = asAttrs(v, at); return },
	"rowOptions":       func(g *Grid, v any, at string) (err error) { g.RowOptions, err = asAttrs(v, at); return },
	"captionOptions":   func(g *Grid, v any, at string) (err error) { g.CaptionOptions, err = asAttrs(v, at); return },
	"summaryOptions":   func(g *Grid, v any, at string) (err error) { g.SummaryOptions, err = asAttrs(v, at); return },
	"emptyTextOptions": func(g *Grid, v any, at string) (err error) { g.EmptyTextOptions, err = asAttrs(v, at); return },
	"csvTypes": func(g *Grid, v any, at string) error {
		m, err := asMapping(v, at)
		if err != nil {
			return err
		}
		g.CSVTypes = make(map[string]data.ColumnType, m.Len())
		var outer error
		m.Range(func(name string, value any) bool {
			s, err := asString(value, at+"."+name)
			if err == nil {
				g.CSVTypes[name], err = data.ParseColumnType(s)
			}
			if err != nil {
				outer = invalid(at+"."+name, "%v", err)
				return false
			}
			return true
		})
		return outer
	},
}

func decodeGrid(v any, at string) (*Grid, error) {
	m, err := asMapping(v, at)
	if err != nil {
		return nil, err
	}
	g := &Grid{}
	var outer error
	m.Range(func(key string, value any) bool {
		field := at + "." + key
		if key == "columns" {
			g.Columns, outer = decodeColumns(value, field)
			return outer == nil
		}
		decode, ok := gridFields[key]
		if !ok {
			outer = invalid(field, "unknown key")
			return false
		}
		outer = decode(g, value, field)
		return outer == nil
	})
	if outer != nil {
		return nil, outer
	}
	if g.Name == "" {
		return nil, invalid(at, "name is required")
	}
	return g, nil
}

func decodeColumns(v any, at string) ([]grid.ColumnSpec, error) {
	list, err := asList(v, at)
	if err != nil {
		return nil, err
	}
	specs := make([]grid.ColumnSpec, 0, len(list))
	for i, item := range list {
		field := fmt.Sprintf("%s[%d]", at, i)
		if s, ok := item.(string); ok {
			specs = append(specs, grid.Shorthand(s))
			continue
		}
		def, err := decodeDefinition(item, field)
		if err != nil {
			return nil, err
		}
		specs = append(specs, grid.Define(def))
	}
	return specs, nil
}

// columnFields decode the documented keys of a column mapping. Other
// keys are kept in Definition.Extra for custom classes.
var columnFields = map[string]func(d *columns.Definition, v any, at string) error{
	"class":     func(d *columns.Definition, v any, at string) (err error) { d.Class, err = asString(v, at); return },
	"attribute": func(d *columns.Definition, v any, at string) (err error) { d.Attribute, err = asString(v, at); return },
	"value":     func(d *columns.Definition, v any, at string) (err error) { d.Value, err = asString(v, at); return },
	"label":     func(d *columns.Definition, v any, at string) (err error) { d.Label, err = asString(v, at); return },
	"header":    func(d *columns.Definition, v any, at string) (err error) { d.Header, err = asString(v, at); return },
	"footer":    func(d *columns.Definition, v any, at string) (err error) { d.Footer, err = asString(v, at); return },
	"format":    func(d *columns.Definition, v any, at string) (err error) { d.Format, err = asFormat(v, at); return },
	"encodeLabel": func(d *columns.Definition, v any, at string) error {
		encode, err := asBool(v, at)
		d.RawLabel = !encode
		return err
	},
	"hidden": func(d *columns.Definition, v any, at string) (err error) { d.Hidden, err = asBool(v, at); return },
	"visible": func(d *columns.Definition, v any, at string) error {
		visible, err := asBool(v, at)
		d.Hidden = !visible
		return err
	},
	"sortable": func(d *columns.Definition, v any, at string) error {
		sortable, err := asBool(v, at)
		d.DisableSorting = !sortable
		return err
	},
	"filter": func(d *columns.Definition, v any, at string) error {
		switch t := v.(type) {
		case bool, string, *mapping:
			d.Filter = t
			return nil
		}
		return invalid(at, "filter must be false, markup or a mapping of options")
	},
	"filterPrompt": func(d *columns.Definition, v any, at string) error {
		if s, ok := v.(string); ok {
			d.FilterPrompt = &html.Prompt{Text: s}
			return nil
		}
		m, err := asMapping(v, at)
		if err != nil {
			return err
		}
		p := &html.Prompt{}
		if t, ok := m.Get("text"); ok {
			if p.Text, err = asString(t, at+".text"); err != nil {
				return err
			}
		}
		if val, ok := m.Get("value"); ok {
			if p.Value, err = asString(val, at+".value"); err != nil {
				return err
			}
		}
		if o, ok := m.Get("options"); ok {
			if p.Options, err = asAttrs(o, at+".options"); err != nil {
				return err
			}
		}
		d.FilterPrompt = p
		return nil
	},
	"options":            func(d *columns.Definition, v any, at string) (err error) { d.Options, err = asAttrs(v, at); return },
	"headerOptions":      func(d *columns.Definition, v any, at string) (err error) { d.HeaderOptions, err = asAttrs(v, at); return },
	"contentOptions":     func(d *columns.Definition, v any, at string) (err error) { d.ContentOptions, err = asAttrs(v, at); return },
	"filterOptions":      func(d *columns.Definition, v any, at string) (err error) { d.FilterOptions, err = asAttrs(v, at); return },
	"footerOptions":      func(d *columns.Definition, v any, at string) (err error) { d.FooterOptions, err = asAttrs(v, at); return },
	"filterInputOptions": func(d *columns.Definition, v any, at string) (err error) { d.FilterInputOptions, err = asAttrs(v, at); return },
	"template":           func(d *columns.Definition, v any, at string) (err error) { d.Template, err = asString(v, at); return },
	"controller":         func(d *columns.Definition, v any, at string) (err error) { d.Controller, err = asString(v, at); return },
	"buttonOptions":      func(d *columns.Definition, v any, at string) (err error) { d.ButtonOptions, err = asAttrs(v, at); return },
	"visibleButtons": func(d *columns.Definition, v any, at string) error {
		m, err := asMapping(v, at)
		if err != nil {
			return err
		}
		d.VisibleButtons = make(map[string]bool, m.Len())
		var outer error
		m.Range(func(name string, value any) bool {
			d.VisibleButtons[name], outer = asBool(value, at+"."+name)
			return outer == nil
		})
		return outer
	},
	"name":     func(d *columns.Definition, v any, at string) (err error) { d.Name, err = asString(v, at); return },
	"cssClass": func(d *columns.Definition, v any, at string) (err error) { d.CSSClass, err = asString(v, at); return },
	"multiple": func(d *columns.Definition, v any, at string) error {
		multiple, err := asBool(v, at)
		d.Single = !multiple
		return err
	},
	"inputOptions": func(d *columns.Definition, v any, at string) (err error) { d.InputOptions, err = asAttrs(v, at); return },
}

func decodeDefinition(v any, at string) (columns.Definition, error) {
	var def columns.Definition
	m, err := asMapping(v, at)
	if err != nil {
		return def, err
	}
	var outer error
	m.Range(func(key string, value any) bool {
		decode, ok := columnFields[key]
		if !ok {
			if def.Extra == nil {
				def.Extra = make(map[string]any)
			}
			def.Extra[key] = value
			return true
		}
		outer = decode(&def, value, at+"."+key)
		return outer == nil
	})
	return def, outer
}

// asFormat accepts "type", "type:param" or a [type, param] list.
func asFormat(v any, at string) (format.Spec, error) {
	var spec format.Spec
	switch t := v.(type) {
	case string:
		typ, param, _ := strings.Cut(t, ":")
		spec = format.Spec{Type: typ, Param: param}
	case []any:
		if len(t) == 0 || len(t) > 2 {
			return spec, invalid(at, "format list must be [type] or [type, param]")
		}
		typ, err := asString(t[0], at+"[0]")
		if err != nil {
			return spec, err
		}
		spec.Type = typ
		if len(t) == 2 {
			if spec.Param, err = asString(t[1], at+"[1]"); err != nil {
				return spec, err
			}
		}
	default:
		return spec, invalid(at, "format must be a string or a list")
	}
	if err := spec.Validate(); err != nil {
		return spec, invalid(at, "%v", err)
	}
	return spec, nil
}

func asMapping(v any, at string) (*mapping, error) {
	if m, ok := v.(*mapping); ok {
		return m, nil
	}
	return nil, invalid(at, "expected a mapping, got %T", v)
}

func asAttrs(v any, at string) (*html.Attributes, error) {
	return asMapping(v, at)
}

func asList(v any, at string) ([]any, error) {
	if l, ok := v.([]any); ok {
		return l, nil
	}
	return nil, invalid(at, "expected a list, got %T", v)
}

func asString(v any, at string) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int, int64, uint64, float64:
		return fmt.Sprint(t), nil
	}
	return "", invalid(at, "expected a string, got %T", v)
}

func asStrings(v any, at string) ([]string, error) {
	list, err := asList(v, at)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, item := range list {
		if out[i], err = asString(item, fmt.Sprintf("%s[%d]", at, i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func asBool(v any, at string) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, invalid(at, "expected a boolean, got %T", v)
}

func asInt(v any, at string) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case uint64:
		return int(t), nil
	case float64:
		if t == math.Trunc(t) {
			return int(t), nil
		}
	}
	return 0, invalid(at, "expected an integer, got %v", v)
}

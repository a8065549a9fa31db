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

package columns

import (
	"strings"

	"github.com/google/gridview/core/html"
	"github.com/google/safehtml"
)

const (
	// DefaultCheckboxName is the input name of a CheckboxColumn.
	DefaultCheckboxName = "selection[]"
	// DefaultRadioName is the input name of a RadioButtonColumn.
	DefaultRadioName = "radioButtonSelection"
)

// CheckboxColumn renders a checkbox per row for selecting rows.
type CheckboxColumn struct {
	Base

	// Name defaults to DefaultCheckboxName.
	Name string
	// InputOptions are the checkbox attributes, static or per row. An
	// explicit "value" replaces the row key.
	InputOptions Resolver[*html.Attributes]
	// Single drops the select-all checkbox from the header.
	Single bool
	// CSSClass replaces the class of each checkbox.
	CSSClass string
}

func (c *CheckboxColumn) name() string {
	if c.Name == "" {
		return DefaultCheckboxName
	}
	return c.Name
}

// HeaderCheckboxName derives the name of the select-all checkbox:
// "sel[]" becomes "sel_all" and "sel[x]" becomes "sel[x_all]".
func (c *CheckboxColumn) HeaderCheckboxName() string {
	return headerCheckboxName(c.name())
}

func headerCheckboxName(name string) string {
	name = strings.TrimSuffix(name, "[]")
	if strings.HasSuffix(name, "]") {
		return strings.TrimSuffix(name, "]") + "_all]"
	}
	return name + "_all"
}

// HeaderCellContent renders the select-all checkbox unless the column
// has a Header or allows a single selection.
func (c *CheckboxColumn) HeaderCellContent(rc *RenderContext) safehtml.HTML {
	if strings.TrimSpace(c.Header) != "" || c.Single {
		return c.Base.HeaderCellContent(rc)
	}
	return html.Input("checkbox", c.HeaderCheckboxName(), nil, html.Attrs("class", "select-on-check-all"))
}

// DataCellContent renders the row's checkbox.
func (c *CheckboxColumn) DataCellContent(rc *RenderContext, row Row) (safehtml.HTML, error) {
	if c.Content != nil {
		return c.Content(row)
	}
	attrs := selectionAttrs(c.InputOptions.Resolve(row), row)
	if c.CSSClass != "" {
		attrs.Set("class", c.CSSClass)
	}
	return selectionInput("checkbox", c.name(), attrs), nil
}

// RadioButtonColumn renders a radio button per row for picking one row.
type RadioButtonColumn struct {
	Base

	// Name defaults to DefaultRadioName.
	Name         string
	InputOptions Resolver[*html.Attributes]
}

func (c *RadioButtonColumn) name() string {
	if c.Name == "" {
		return DefaultRadioName
	}
	return c.Name
}

// DataCellContent renders the row's radio button.
func (c *RadioButtonColumn) DataCellContent(rc *RenderContext, row Row) (safehtml.HTML, error) {
	if c.Content != nil {
		return c.Content(row)
	}
	attrs := selectionAttrs(c.InputOptions.Resolve(row), row)
	return selectionInput("radio", c.name(), attrs), nil
}

// selectionAttrs copies options and fills in the value from the row key.
func selectionAttrs(options *html.Attributes, row Row) *html.Attributes {
	attrs := options.Clone()
	if !attrs.Has("value") {
		attrs.Set("value", KeyString(row.Key))
	}
	attrs.Delete("name")
	return attrs
}

func selectionInput(typ, name string, attrs *html.Attributes) safehtml.HTML {
	value, _ := attrs.Get("value")
	attrs.Delete("value")
	return html.Input(typ, name, value, attrs)
}

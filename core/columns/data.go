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

	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/html"
	"github.com/google/gridview/core/query"
	"github.com/google/safehtml"
)

// FilterMode selects how a data column renders its filter cell.
type FilterMode int

const (
	// FilterAuto renders a select for boolean columns and a search input
	// for every other column with an attribute.
	FilterAuto FilterMode = iota
	// FilterDisabled renders the empty cell.
	FilterDisabled
	// FilterLiteral renders Filter.HTML verbatim.
	FilterLiteral
	// FilterSelect renders a select over Filter.Items.
	FilterSelect
)

// Filter configures a data column's filter cell.
type Filter struct {
	Mode  FilterMode
	HTML  safehtml.HTML
	Items *html.Items
	// Prompt, when set, adds a leading option that clears the filter.
	Prompt *html.Prompt
}

// NoFilter disables the filter cell.
func NoFilter() Filter { return Filter{Mode: FilterDisabled} }

// LiteralFilter renders h as the filter cell.
func LiteralFilter(h safehtml.HTML) Filter { return Filter{Mode: FilterLiteral, HTML: h} }

// SelectFilter renders a select over items.
func SelectFilter(items *html.Items) Filter { return Filter{Mode: FilterSelect, Items: items} }

// sortIndicator is the glyph appended to the label of the sorted column.
const sortIndicator = "▲"

// DataColumn displays one attribute of each row.
type DataColumn struct {
	Base

	// Attribute is the dotted path read from each model. It also names
	// the sort key and the filter parameter.
	Attribute string
	// Value, when set, is read instead of Attribute.
	Value string
	// ValueFunc computes the value when Value is empty. It takes
	// precedence over Attribute, which then only names the sort key and
	// the filter parameter.
	ValueFunc func(Row) any
	Format    format.Spec
	// Label replaces the header text derived from Attribute.
	Label string
	// RawLabel skips HTML encoding of the header label.
	RawLabel       bool
	DisableSorting bool
	Filter         Filter
	// FilterInputOptions are merged into the filter input or select.
	FilterInputOptions *html.Attributes
}

// NewDataColumn returns a text column over attribute.
func NewDataColumn(attribute string) *DataColumn {
	return &DataColumn{Attribute: attribute}
}

// Init rejects unknown formats.
func (c *DataColumn) Init() error {
	return c.Format.Validate()
}

// AttributeName returns the attribute the column reads.
func (c *DataColumn) AttributeName() string { return c.Attribute }

// DataCellValue returns the raw value of the cell for row.
func (c *DataColumn) DataCellValue(row Row) any {
	switch {
	case c.Value != "":
		v, _ := data.Lookup(row.Model, c.Value)
		return v
	case c.ValueFunc != nil:
		return c.ValueFunc(row)
	case c.Attribute != "":
		v, _ := data.Lookup(row.Model, c.Attribute)
		return v
	}
	return nil
}

// DataCellContent formats the cell value.
func (c *DataColumn) DataCellContent(rc *RenderContext, row Row) (safehtml.HTML, error) {
	if c.Content != nil {
		return c.Content(row)
	}
	return rc.formatter().Format(c.DataCellValue(row), c.Format)
}

// HeaderLabel returns Label, or the headline of Attribute.
func (c *DataColumn) HeaderLabel(rc *RenderContext) string {
	if c.Label != "" {
		return c.Label
	}
	if c.Attribute != "" {
		return format.Headline(c.Attribute)
	}
	return ""
}

func (c *DataColumn) sortable(rc *RenderContext) bool {
	return !c.DisableSorting && c.Attribute != "" && rc.Query != nil
}

// HeaderCellContent renders the label, linked to the column's sort when
// sorting is enabled.
func (c *DataColumn) HeaderCellContent(rc *RenderContext) safehtml.HTML {
	if strings.TrimSpace(c.Header) != "" || (c.Label == "" && c.Attribute == "") {
		return c.Base.HeaderCellContent(rc)
	}

	label := c.HeaderLabel(rc)
	content := html.Text(label)
	if c.RawLabel {
		content = html.Trusted(label)
	}
	if !c.sortable(rc) {
		return content
	}

	attrs := html.NewAttributes()
	switch rc.Query.SortDirection(c.Attribute) {
	case query.Ascending:
		attrs.Set("class", "asc").Set("data-sort", "-"+c.Attribute)
		content = html.Join(" ", content, html.Tag("span", html.Text(sortIndicator), html.Attrs("class", "sort-indicator")))
	case query.Descending:
		attrs.Set("class", "desc").Set("data-sort", c.Attribute)
		style := html.Attrs("display", "inline-block", "transform", "rotate(180deg)")
		glyph := html.Tag("span", html.Text(sortIndicator), html.Attrs("class", "sort-indicator", "style", style))
		content = html.Join(" ", content, glyph)
	default:
		attrs.Set("data-sort", c.Attribute)
	}
	return html.Anchor(content, rc.Query.WithSortToggled(c.Attribute), attrs)
}

func (c *DataColumn) filterName() string {
	return query.FilterPrefix + c.Attribute
}

// FilterCellContent renders the filter control for the column.
func (c *DataColumn) FilterCellContent(rc *RenderContext) safehtml.HTML {
	f := c.Filter
	switch f.Mode {
	case FilterDisabled:
		return rc.EmptyCell
	case FilterLiteral:
		return f.HTML
	case FilterSelect:
		if c.Attribute == "" {
			return rc.EmptyCell
		}
		return c.filterSelect(rc, f.Items, f.Prompt)
	}

	if c.Attribute == "" {
		return rc.EmptyCell
	}
	if c.Format.Normalize().Type == format.Boolean {
		items := html.NewItems("1", rc.T("Yes"), "0", rc.T("No"))
		return c.filterSelect(rc, items, f.Prompt)
	}
	attrs := html.Attrs("id", c.filterName(), "class", "form-control").Merge(c.FilterInputOptions)
	return html.Input("search", c.filterName(), rc.Query.Filter(c.Attribute), attrs)
}

func (c *DataColumn) filterSelect(rc *RenderContext, items *html.Items, prompt *html.Prompt) safehtml.HTML {
	attrs := html.Attrs("id", c.filterName(), "class", "form-control").Merge(c.FilterInputOptions)
	return html.DropDownList(c.filterName(), rc.Query.Filter(c.Attribute), items, attrs, html.SelectOptions{Prompt: prompt})
}

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

// Package columns renders the cells of one grid column.
//
// A Column supplies cell content; the Render*Cell functions wrap that
// content in its <th> or <td> tag. Variants embed Base and shadow the
// content methods they customize.
package columns

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/html"
	"github.com/google/gridview/core/query"
	"github.com/google/safehtml"
	"golang.org/x/text/language"
)

// Row is one record handed to a column: the model, its key and its
// zero-based index on the current page.
type Row struct {
	Model any
	Key   any
	Index int
}

// Column is a vertical slice of the grid.
type Column interface {
	// Common returns the state shared by all column variants.
	Common() *Base
	HeaderCellContent(rc *RenderContext) safehtml.HTML
	DataCellContent(rc *RenderContext, row Row) (safehtml.HTML, error)
	FilterCellContent(rc *RenderContext) safehtml.HTML
	FooterCellContent(rc *RenderContext) safehtml.HTML
	HeaderLabel(rc *RenderContext) string
}

// Initializer is implemented by columns that prepare themselves once
// before the first render, such as validating their format.
type Initializer interface {
	Init() error
}

// Base holds the options every column has. The zero value is a visible
// column that renders the empty cell everywhere.
type Base struct {
	// Hidden columns are dropped by the grid.
	Hidden bool
	// Header replaces the header cell text when not blank.
	Header string
	// Options are the attributes of the column's <col> tag.
	Options *html.Attributes
	// HeaderOptions are the attributes of the header cell.
	HeaderOptions *html.Attributes
	// FilterOptions are the attributes of the filter cell.
	FilterOptions *html.Attributes
	// FooterOptions are the attributes of the footer cell.
	FooterOptions *html.Attributes
	// ContentOptions are the attributes of each data cell, static or per row.
	ContentOptions Resolver[*html.Attributes]
	// Content, when set, renders every data cell.
	Content func(Row) (safehtml.HTML, error)
	// Footer is the footer cell text.
	Footer string
}

// Common implements Column.
func (b *Base) Common() *Base { return b }

// HeaderCellContent renders Header, or the empty cell when it is blank.
func (b *Base) HeaderCellContent(rc *RenderContext) safehtml.HTML {
	if strings.TrimSpace(b.Header) != "" {
		return html.Text(b.Header)
	}
	return rc.EmptyCell
}

// DataCellContent renders Content, or the empty cell without one.
func (b *Base) DataCellContent(rc *RenderContext, row Row) (safehtml.HTML, error) {
	if b.Content != nil {
		return b.Content(row)
	}
	return rc.EmptyCell, nil
}

// FilterCellContent renders the empty cell.
func (b *Base) FilterCellContent(rc *RenderContext) safehtml.HTML {
	return rc.EmptyCell
}

// FooterCellContent renders Footer, or the empty cell when it is blank.
func (b *Base) FooterCellContent(rc *RenderContext) safehtml.HTML {
	if strings.TrimSpace(b.Footer) != "" {
		return html.Text(b.Footer)
	}
	return rc.EmptyCell
}

// HeaderLabel is empty for columns without an attribute.
func (b *Base) HeaderLabel(rc *RenderContext) string {
	return ""
}

// RenderContext carries the request state cells render against.
type RenderContext struct {
	Query      *query.Query
	Formatter  *format.Formatter
	Router     query.Router
	Pagination *data.Pagination
	// EmptyCell fills cells that have no content.
	EmptyCell safehtml.HTML
}

// NewRenderContext creates a context with an English formatter, a
// PathRouter and a non-breaking space as the empty cell.
func NewRenderContext(q *query.Query) *RenderContext {
	if q == nil {
		q = &query.Query{Filters: map[string]string{}}
	}
	return &RenderContext{
		Query:     q,
		Formatter: format.NewFormatter(language.English),
		Router:    query.PathRouter{},
		EmptyCell: html.Trusted("&nbsp;"),
	}
}

// T translates a UI string.
func (rc *RenderContext) T(key string) string {
	if rc.Formatter == nil {
		return key
	}
	return rc.Formatter.T(key)
}

func (rc *RenderContext) formatter() *format.Formatter {
	if rc.Formatter == nil {
		return format.NewFormatter(language.English)
	}
	return rc.Formatter
}

func (rc *RenderContext) router() query.Router {
	if rc.Router == nil {
		return query.PathRouter{}
	}
	return rc.Router
}

func mustContext(rc *RenderContext, op string) {
	if rc == nil {
		panic("columns: " + op + " called with a nil RenderContext")
	}
}

// CellError reports a data cell that failed to render.
type CellError struct {
	Column    string
	Attribute string
	Key       any
	Err       error
}

func (e *CellError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("column %s (%s), row %v: %v", e.Column, e.Attribute, e.Key, e.Err)
	}
	return fmt.Sprintf("column %s, row %v: %v", e.Column, e.Key, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// attributed is implemented by columns bound to a row attribute.
type attributed interface {
	AttributeName() string
}

// Describe names a column for logs and errors.
func Describe(c Column) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", c), "*columns.")
	if a, ok := c.(attributed); ok && a.AttributeName() != "" {
		return name + "[" + a.AttributeName() + "]"
	}
	return name
}

// RenderHeaderCell renders the <th> of c.
func RenderHeaderCell(c Column, rc *RenderContext) safehtml.HTML {
	mustContext(rc, "RenderHeaderCell")
	return html.Tag("th", c.HeaderCellContent(rc), c.Common().HeaderOptions)
}

// RenderFilterCell renders the filter <td> of c.
func RenderFilterCell(c Column, rc *RenderContext) safehtml.HTML {
	mustContext(rc, "RenderFilterCell")
	return html.Tag("td", c.FilterCellContent(rc), c.Common().FilterOptions)
}

// RenderFooterCell renders the footer <td> of c.
func RenderFooterCell(c Column, rc *RenderContext) safehtml.HTML {
	mustContext(rc, "RenderFooterCell")
	return html.Tag("td", c.FooterCellContent(rc), c.Common().FooterOptions)
}

// RenderDataCell renders the <td> of c for row. When the content fails
// or panics, it returns an error placeholder cell along with a *CellError
// so the caller can keep rendering sibling cells.
func RenderDataCell(c Column, rc *RenderContext, row Row) (cell safehtml.HTML, err error) {
	mustContext(rc, "RenderDataCell")

	var attrs *html.Attributes
	defer func() {
		if r := recover(); r != nil {
			err = newCellError(c, row, fmt.Errorf("panic: %v", r))
		}
		if err != nil {
			cell = ErrorCell(attrs, err)
		}
	}()

	attrs = c.Common().ContentOptions.Resolve(row)
	content, cerr := c.DataCellContent(rc, row)
	if cerr != nil {
		return safehtml.HTML{}, newCellError(c, row, cerr)
	}
	return html.Tag("td", content, attrs), nil
}

func newCellError(c Column, row Row, err error) *CellError {
	ce := &CellError{Column: Describe(c), Key: row.Key, Err: err}
	if a, ok := c.(attributed); ok {
		ce.Attribute = a.AttributeName()
	}
	return ce
}

// ErrorCell renders the placeholder shown in place of a failed cell.
func ErrorCell(attrs *html.Attributes, err error) safehtml.HTML {
	marker := html.Tag("span", html.Text("(error)"), html.Attrs("class", "cell-error", "title", err.Error()))
	return html.Tag("td", marker, attrs)
}

// KeyString renders a row key for markup. Composite keys become JSON.
func KeyString(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case map[string]any:
		b, err := json.Marshal(k)
		if err != nil {
			return fmt.Sprint(k)
		}
		return string(b)
	}
	return fmt.Sprint(key)
}

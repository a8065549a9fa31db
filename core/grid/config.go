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

package grid

import (
	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/html"
	"github.com/google/gridview/core/query"
	"github.com/google/safehtml"
	"github.com/rs/zerolog"
)

// DefaultLayout renders the summary above the table and the pager below it.
const DefaultLayout = "{summary}\n{items}\n{pager}"

// DefaultInferSampleSize is the number of rows scanned to infer columns.
const DefaultInferSampleSize = 10

// FilterPosition places the filter row.
type FilterPosition string

const (
	// FilterNone renders no filter row.
	FilterNone FilterPosition = ""
	// FilterHeader puts the filter row above the header row.
	FilterHeader FilterPosition = "header"
	// FilterBody puts the filter row below the header row.
	FilterBody FilterPosition = "body"
	// FilterFooter puts the filter row in the table footer.
	FilterFooter FilterPosition = "footer"
)

// SectionFunc renders a named layout section.
type SectionFunc func(rc *columns.RenderContext) (safehtml.HTML, error)

// ColumnSpec describes one configured column. Build one with Shorthand,
// Define or Use.
type ColumnSpec struct {
	shorthand string
	def       *columns.Definition
	column    columns.Column
}

// Shorthand specifies a data column as "attribute[:format[:label]]".
func Shorthand(text string) ColumnSpec { return ColumnSpec{shorthand: text} }

// Define specifies a column built through the registry.
func Define(def columns.Definition) ColumnSpec { return ColumnSpec{def: &def} }

// Use specifies a ready column.
func Use(c columns.Column) ColumnSpec { return ColumnSpec{column: c} }

// Definition returns the registry definition of a spec made with Define.
func (s ColumnSpec) Definition() (columns.Definition, bool) {
	if s.def == nil {
		return columns.Definition{}, false
	}
	return *s.def, true
}

func (s ColumnSpec) String() string {
	switch {
	case s.column != nil:
		return columns.Describe(s.column)
	case s.def != nil:
		if s.def.Class != "" {
			return s.def.Class + ":" + s.def.Attribute
		}
		return s.def.Attribute
	}
	return s.shorthand
}

// Config configures a GridView. Only Provider is required.
type Config struct {
	// Name labels logs and metrics.
	Name     string
	Provider data.Provider
	// Columns are inferred from the first rows when empty.
	Columns []ColumnSpec
	// Registry builds defined columns. Defaults to columns.DefaultRegistry().
	Registry *columns.Registry
	// DataColumnClass is the registry class for definitions without one.
	DataColumnClass string
	// InferSampleSize is the number of rows scanned when inferring columns.
	InferSampleSize int

	Query     *query.Query
	Formatter *format.Formatter
	Router    query.Router
	// EmptyCell fills cells without content. Defaults to &nbsp;.
	EmptyCell safehtml.HTML

	// Options are the attributes of the container div. The id defaults
	// to a generated "gridview-<uuid>".
	Options          *html.Attributes
	TableOptions     *html.Attributes
	HeaderRowOptions *html.Attributes
	FooterRowOptions *html.Attributes
	FilterRowOptions *html.Attributes
	RowOptions       columns.Resolver[*html.Attributes]

	Caption        string
	CaptionOptions *html.Attributes

	// Layout is split into literal text and {section} tokens.
	Layout string
	// Sections adds or replaces layout sections.
	Sections map[string]SectionFunc

	// Summary is a markup template with {begin} {end} {count}
	// {totalCount} {page} and {pageCount} tokens.
	Summary        string
	SummaryOptions *html.Attributes
	NoSummary      bool

	// EmptyText defaults to the localized "No results found.".
	EmptyText        string
	EmptyTextOptions *html.Attributes
	NoEmptyText      bool
	// HideOnEmpty renders only the empty text when there are no rows.
	HideOnEmpty bool

	HideHeader           bool
	ShowFooter           bool
	PlaceFooterAfterBody bool
	FilterPosition       FilterPosition

	// Pager renders page links for providers that do not render their own.
	Pager    Pager
	Observer Observer
	Logger   *zerolog.Logger
}

func defaultTableOptions() *html.Attributes {
	return html.Attrs("class", "table table-striped table-bordered")
}

func defaultSummaryOptions() *html.Attributes {
	return html.Attrs("class", "summary")
}

func defaultEmptyTextOptions() *html.Attributes {
	return html.Attrs("class", "empty")
}

func defaultFilterRowOptions() *html.Attributes {
	return html.Attrs("class", "filters")
}

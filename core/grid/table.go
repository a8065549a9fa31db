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
	"strings"

	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/html"
	"github.com/google/safehtml"
)

// renderItems renders the <table> element.
func (g *GridView) renderItems(rc *columns.RenderContext) safehtml.HTML {
	var parts []string
	add := func(h safehtml.HTML) {
		if s := h.String(); s != "" {
			parts = append(parts, s)
		}
	}

	add(g.renderCaption())
	add(g.renderColumnGroup())
	if !g.cfg.HideHeader || g.cfg.FilterPosition == FilterHeader || g.cfg.FilterPosition == FilterBody {
		add(g.renderTableHeader(rc))
	}
	footer := g.renderTableFooter(rc)
	if !g.cfg.PlaceFooterAfterBody {
		add(footer)
	}
	add(g.renderTableBody(rc))
	if g.cfg.PlaceFooterAfterBody {
		add(footer)
	}

	opts := g.cfg.TableOptions
	if opts == nil {
		opts = defaultTableOptions()
	}
	return html.Tag("table", html.Trusted("\n"+strings.Join(parts, "\n")+"\n"), opts)
}

func (g *GridView) renderCaption() safehtml.HTML {
	if g.cfg.Caption == "" {
		return safehtml.HTML{}
	}
	return html.Tag("caption", html.Text(g.cfg.Caption), g.cfg.CaptionOptions)
}

// renderColumnGroup renders a <colgroup> when any column has options.
func (g *GridView) renderColumnGroup() safehtml.HTML {
	needed := false
	for _, c := range g.columns {
		if c.Common().Options.Len() > 0 {
			needed = true
			break
		}
	}
	if !needed {
		return safehtml.HTML{}
	}
	cols := make([]string, len(g.columns))
	for i, c := range g.columns {
		cols[i] = html.Tag("col", safehtml.HTML{}, c.Common().Options).String()
	}
	return html.Trusted("<colgroup>" + strings.Join(cols, "\n") + "</colgroup>")
}

func (g *GridView) renderTableHeader(rc *columns.RenderContext) safehtml.HTML {
	var rows []string
	if g.cfg.FilterPosition == FilterHeader {
		rows = append(rows, g.renderFilters(rc).String())
	}
	if !g.cfg.HideHeader {
		cells := make([]string, len(g.columns))
		for i, c := range g.columns {
			cells[i] = columns.RenderHeaderCell(c, rc).String()
		}
		rows = append(rows, html.Tag("tr", html.Trusted(strings.Join(cells, "")), g.cfg.HeaderRowOptions).String())
	}
	if g.cfg.FilterPosition == FilterBody {
		rows = append(rows, g.renderFilters(rc).String())
	}
	return html.Trusted("<thead>\n" + strings.Join(rows, "\n") + "\n</thead>")
}

func (g *GridView) renderTableFooter(rc *columns.RenderContext) safehtml.HTML {
	var rows []string
	if g.cfg.ShowFooter {
		cells := make([]string, len(g.columns))
		for i, c := range g.columns {
			cells[i] = columns.RenderFooterCell(c, rc).String()
		}
		rows = append(rows, html.Tag("tr", html.Trusted(strings.Join(cells, "")), g.cfg.FooterRowOptions).String())
	}
	if g.cfg.FilterPosition == FilterFooter {
		rows = append(rows, g.renderFilters(rc).String())
	}
	if len(rows) == 0 {
		return safehtml.HTML{}
	}
	return html.Trusted("<tfoot>\n" + strings.Join(rows, "\n") + "\n</tfoot>")
}

func (g *GridView) renderFilters(rc *columns.RenderContext) safehtml.HTML {
	cells := make([]string, len(g.columns))
	for i, c := range g.columns {
		cells[i] = columns.RenderFilterCell(c, rc).String()
	}
	opts := g.cfg.FilterRowOptions
	if opts == nil {
		opts = defaultFilterRowOptions()
	}
	return html.Tag("tr", html.Trusted(strings.Join(cells, "")), opts)
}

func (g *GridView) renderTableBody(rc *columns.RenderContext) safehtml.HTML {
	models := g.cfg.Provider.Models()
	keys := g.cfg.Provider.Keys()

	rows := make([]string, 0, len(models))
	for i, model := range models {
		var key any = i
		if i < len(keys) {
			key = keys[i]
		}
		rows = append(rows, g.renderTableRow(rc, columns.Row{Model: model, Key: key, Index: i}).String())
	}

	if len(rows) == 0 && !g.cfg.NoEmptyText {
		cell := html.Tag("td", g.renderEmpty(rc), html.Attrs("colspan", len(g.columns)))
		return html.Trusted("<tbody>\n<tr>" + cell.String() + "</tr>\n</tbody>")
	}
	return html.Trusted("<tbody>\n" + strings.Join(rows, "\n") + "\n</tbody>")
}

func (g *GridView) renderTableRow(rc *columns.RenderContext, row columns.Row) safehtml.HTML {
	cells := make([]string, len(g.columns))
	for i, c := range g.columns {
		cell, err := columns.RenderDataCell(c, rc, row)
		if err != nil {
			g.cellFailed(err)
		}
		cells[i] = cell.String()
	}

	opts := g.cfg.RowOptions.Resolve(row).Clone()
	opts.Set("data-key", columns.KeyString(row.Key))
	return html.Tag("tr", html.Trusted(strings.Join(cells, "")), opts)
}

func (g *GridView) cellFailed(err error) {
	ce, ok := err.(*columns.CellError)
	if !ok {
		ce = &columns.CellError{Err: err}
	}
	g.logger.Warn().
		Str("column", ce.Column).
		Str("attribute", ce.Attribute).
		Interface("key", ce.Key).
		Err(ce.Err).
		Msg("cell failed to render")
	g.observer.ObserveCellError(g.cfg.Name, ce)
}

// renderEmpty renders the empty text block.
func (g *GridView) renderEmpty(rc *columns.RenderContext) safehtml.HTML {
	if g.cfg.NoEmptyText {
		return safehtml.HTML{}
	}
	text := g.cfg.EmptyText
	if text == "" {
		text = rc.T("No results found.")
	}
	opts := g.cfg.EmptyTextOptions
	if opts == nil {
		opts = defaultEmptyTextOptions()
	}
	tag, opts := splitTag(opts, "div")
	return html.Tag(tag, html.Text(text), opts)
}

// splitTag removes the "tag" option, returning it or def.
func splitTag(opts *html.Attributes, def string) (string, *html.Attributes) {
	opts = opts.Clone()
	tag := def
	if v, ok := opts.Get("tag"); ok {
		if s, ok := v.(string); ok && s != "" {
			tag = s
		}
		opts.Delete("tag")
	}
	return tag, opts
}

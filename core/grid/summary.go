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
	"golang.org/x/text/number"
)

const defaultSummary = "Showing <b>{begin}-{end}</b> of <b>{totalCount}</b>."

// renderSummary renders the "Showing 1-10 of 42." line.
func (g *GridView) renderSummary(rc *columns.RenderContext) safehtml.HTML {
	count := g.cfg.Provider.Count()
	if g.cfg.NoSummary || count <= 0 {
		return safehtml.HTML{}
	}

	begin, end, total, page, pageCount := 1, count, count, 1, 1
	if p := rc.Pagination; p != nil {
		page = p.CurrentPage
		if page < 1 {
			page = 1
		}
		begin = p.Offset() + 1
		end = begin + count - 1
		if begin > end {
			begin = end
		}
		total = p.Total
		pageCount = p.PageCount()
	}

	template := g.cfg.Summary
	if template == "" {
		template = rc.T(defaultSummary)
	}
	printer := rc.Formatter.Printer()
	fmtInt := func(n int) string { return html.Encode(printer.Sprint(number.Decimal(n))) }
	content := strings.NewReplacer(
		"{begin}", fmtInt(begin),
		"{end}", fmtInt(end),
		"{count}", fmtInt(count),
		"{totalCount}", fmtInt(total),
		"{page}", fmtInt(page),
		"{pageCount}", fmtInt(pageCount),
	).Replace(template)

	opts := g.cfg.SummaryOptions
	if opts == nil {
		opts = defaultSummaryOptions()
	}
	tag, opts := splitTag(opts, "div")
	return html.Tag(tag, html.Trusted(content), opts)
}

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
	"strconv"
	"strings"

	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/html"
	"github.com/google/safehtml"
)

// Pager renders the page links below a paginated grid.
type Pager interface {
	Render(rc *columns.RenderContext, p *data.Pagination) (safehtml.HTML, error)
}

// DefaultMaxButtons is the number of page buttons a LinkPager shows.
const DefaultMaxButtons = 10

// LinkPager renders a Bootstrap style <ul class="pagination">.
type LinkPager struct {
	// MaxButtons limits the page number buttons. Defaults to DefaultMaxButtons.
	MaxButtons int
	// Options are the attributes of the <ul>.
	Options *html.Attributes
}

// Render implements Pager.
func (lp LinkPager) Render(rc *columns.RenderContext, p *data.Pagination) (safehtml.HTML, error) {
	pageCount := p.PageCount()
	current := p.CurrentPage
	if current < 1 {
		current = 1
	}
	if current > pageCount {
		current = pageCount
	}

	maxButtons := lp.MaxButtons
	if maxButtons < 1 {
		maxButtons = DefaultMaxButtons
	}
	begin, end := pageRange(current, pageCount, maxButtons)

	var items []string
	items = append(items, lp.item(rc, rc.T("Previous"), current-1, current <= 1, false).String())
	for page := begin; page <= end; page++ {
		items = append(items, lp.item(rc, strconv.Itoa(page), page, false, page == current).String())
	}
	items = append(items, lp.item(rc, rc.T("Next"), current+1, current >= pageCount, false).String())

	opts := lp.Options
	if opts == nil {
		opts = html.Attrs("class", "pagination")
	}
	content := html.Trusted("\n" + strings.Join(items, "\n") + "\n")
	return html.Tag("nav", html.Tag("ul", content, opts), html.Attrs("aria-label", "pagination")), nil
}

func (lp LinkPager) item(rc *columns.RenderContext, label string, page int, disabled, active bool) safehtml.HTML {
	classes := []string{"page-item"}
	switch {
	case disabled:
		classes = append(classes, "disabled")
	case active:
		classes = append(classes, "active")
	}
	li := html.Attrs("class", classes)

	var link safehtml.HTML
	if disabled {
		link = html.Tag("span", html.Text(label), html.Attrs("class", "page-link"))
	} else {
		attrs := html.Attrs("class", "page-link", "data-page", page)
		if active {
			attrs.Set("aria-current", "page")
		}
		link = html.Anchor(html.Text(label), rc.Query.WithPage(page), attrs)
	}
	return html.Tag("li", link, li)
}

// pageRange returns the first and last page button around current.
func pageRange(current, pageCount, maxButtons int) (int, int) {
	begin := current - maxButtons/2
	if begin < 1 {
		begin = 1
	}
	end := begin + maxButtons - 1
	if end > pageCount {
		end = pageCount
		begin = end - maxButtons + 1
		if begin < 1 {
			begin = 1
		}
	}
	return begin, end
}

// renderPager renders the pager when the provider has more than one page.
func (g *GridView) renderPager(rc *columns.RenderContext) (safehtml.HTML, error) {
	p := g.cfg.Provider.Pagination()
	if p == nil || !p.HasPages() {
		return safehtml.HTML{}, nil
	}
	if lr, ok := g.cfg.Provider.(data.LinkRenderer); ok {
		return lr.RenderLinks(rc.Query)
	}
	return g.cfg.Pager.Render(rc, p)
}

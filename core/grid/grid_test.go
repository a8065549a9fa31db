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
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/html"
	"github.com/google/gridview/core/query"
	"github.com/google/safehtml"
	"github.com/rs/zerolog"
)

func people(n int) []any {
	rows := make([]any, n)
	for i := range rows {
		rows[i] = data.NewRecord("id", i+1, "first_name", fmt.Sprintf("P%02d", i+1))
	}
	return rows
}

func mustQuery(t *testing.T, raw string) *query.Query {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return query.NewQuery(u)
}

func mustRender(t *testing.T, cfg Config) string {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := g.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return out.String()
}

func TestGridView_Render(t *testing.T) {
	rows := []any{
		data.NewRecord("id", 1, "first_name", "Ann"),
		data.NewRecord("id", 2, "first_name", "B<o>b"),
	}
	provider := data.NewArrayProvider(rows)
	provider.KeyField = "id"

	got := mustRender(t, Config{
		Provider: provider,
		Columns:  []ColumnSpec{Shorthand("first_name")},
		Options:  html.Attrs("id", "people"),
	})

	want := `<div class="grid-view" id="people"><div class="summary">Showing <b>1-2</b> of <b>2</b>.</div>
<table class="table table-striped table-bordered">
<thead>
<tr><th><a href="?sort=first_name" data-sort="first_name">First Name</a></th></tr>
</thead>
<tbody>
<tr data-key="1"><td>Ann</td></tr>
<tr data-key="2"><td>B&lt;o&gt;b</td></tr>
</tbody>
</table>
</div>`
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestGridView_EmptyProvider(t *testing.T) {
	got := mustRender(t, Config{
		Provider: data.NewArrayProvider(nil),
		Columns:  []ColumnSpec{Shorthand("a"), Shorthand("b"), Use(&columns.SerialColumn{Base: columns.Base{Hidden: true}})},
	})

	want := "<tbody>\n<tr><td colspan=\"2\"><div class=\"empty\">No results found.</div></td></tr>\n</tbody>"
	if !strings.Contains(got, want) {
		t.Errorf("Render() = %q, want body %q", got, want)
	}
	if strings.Contains(got, `class="summary"`) {
		t.Errorf("Render() rendered a summary for an empty provider: %q", got)
	}
}

func TestGridView_EmptyOptions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "hide on empty",
			cfg:  Config{HideOnEmpty: true, Options: html.Attrs("id", "g")},
			want: `<div class="grid-view" id="g"><div class="empty">No results found.</div></div>`,
		},
		{
			name: "custom text and tag",
			cfg:  Config{HideOnEmpty: true, Options: html.Attrs("id", "g"), EmptyText: "Nothing & nobody", EmptyTextOptions: html.Attrs("tag", "p", "class", "none")},
			want: `<div class="grid-view" id="g"><p class="none">Nothing &amp; nobody</p></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Provider = data.NewArrayProvider(nil)
			tt.cfg.Columns = []ColumnSpec{Shorthand("a")}
			if got := mustRender(t, tt.cfg); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}

	got := mustRender(t, Config{Provider: data.NewArrayProvider(nil), Columns: []ColumnSpec{Shorthand("a")}, NoEmptyText: true})
	if !strings.Contains(got, "<tbody>\n\n</tbody>") || strings.Contains(got, "empty") {
		t.Errorf("NoEmptyText rendered %q", got)
	}
}

func TestGridView_Pagination(t *testing.T) {
	q := mustQuery(t, "/people?page=2")
	provider := &data.ArrayProvider{Rows: people(25), PageSize: 10}

	got := mustRender(t, Config{
		Provider: provider.Page(q),
		Query:    q,
		Columns:  []ColumnSpec{Use(&columns.SerialColumn{}), Shorthand("first_name")},
	})

	for _, want := range []string{
		"Showing <b>11-20</b> of <b>25</b>.",
		`<tr data-key="10"><td>11</td><td>P11</td></tr>`,
		`<ul class="pagination">`,
		`<li class="page-item active"><a href="/people?page=2" class="page-link" data-page="2" aria-current="page">2</a></li>`,
		`<a href="/people?page=3" class="page-link" data-page="3">Next</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in\n%s", want, got)
		}
	}
}

func TestGridView_LastPageSummary(t *testing.T) {
	q := mustQuery(t, "/?page=3")
	provider := (&data.ArrayProvider{Rows: people(25), PageSize: 10}).Page(q)
	got := mustRender(t, Config{Provider: provider, Query: q, Columns: []ColumnSpec{Shorthand("id")}})
	if !strings.Contains(got, "Showing <b>21-25</b> of <b>25</b>.") {
		t.Errorf("Render() = %q", got)
	}
	if !strings.Contains(got, `<li class="page-item disabled"><span class="page-link">Next</span></li>`) {
		t.Errorf("Next should be disabled on the last page: %q", got)
	}
}

type linkProvider struct {
	*data.ArrayProvider
}

func (linkProvider) RenderLinks(q *query.Query) (safehtml.HTML, error) {
	return html.Trusted(`<nav class="custom"></nav>`), nil
}

func TestGridView_ProviderRendersLinks(t *testing.T) {
	p := linkProvider{&data.ArrayProvider{Rows: people(5), PageSize: 2}}
	got := mustRender(t, Config{Provider: p, Columns: []ColumnSpec{Shorthand("id")}})
	if !strings.Contains(got, `<nav class="custom"></nav>`) || strings.Contains(got, "pagination") {
		t.Errorf("Render() = %q, want the provider's links", got)
	}
}

func TestGridView_InferColumns(t *testing.T) {
	rows := []any{
		data.NewRecord("id", 1, "name", "Ann"),
		data.NewRecord("id", 2, "email", "b@example.com", "tags", []string{"x"}, "born", time.Now()),
		data.NewRecord("late", "only in row three"),
	}
	g, err := New(Config{Provider: data.NewArrayProvider(rows), InferSampleSize: 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var names []string
	for _, c := range g.Columns() {
		names = append(names, c.(*columns.DataColumn).Attribute)
	}
	if got, want := strings.Join(names, ","), "id,name,email,born"; got != want {
		t.Errorf("inferred columns = %s, want %s", got, want)
	}
}

func TestNew_Errors(t *testing.T) {
	provider := data.NewArrayProvider(people(1))
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no provider", Config{}, ErrNoDataProvider},
		{"bad shorthand", Config{Provider: provider, Columns: []ColumnSpec{Shorthand(":x")}}, ErrInvalidShorthand},
		{"unknown class", Config{Provider: provider, Columns: []ColumnSpec{Define(columns.Definition{Class: "nope"})}}, columns.ErrUnknownClass},
		{"unknown format", Config{Provider: provider, Columns: []ColumnSpec{Use(&columns.DataColumn{Attribute: "id", Format: format.Spec{Type: "bogus"}})}}, format.ErrUnknownFormat},
		{"data column class", Config{Provider: provider, DataColumnClass: "missing", Columns: []ColumnSpec{Define(columns.Definition{Attribute: "id"})}}, columns.ErrUnknownClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

type recordingObserver struct {
	renders int
	cells   []*columns.CellError
}

func (o *recordingObserver) ObserveRender(string, int, time.Duration) { o.renders++ }

func (o *recordingObserver) ObserveCellError(_ string, err *columns.CellError) {
	o.cells = append(o.cells, err)
}

func TestGridView_CellErrorIsolation(t *testing.T) {
	rows := []any{
		data.NewRecord("id", 1, "born", "2020-02-03"),
		data.NewRecord("id", 2, "born", "not a date"),
	}
	provider := data.NewArrayProvider(rows)
	provider.KeyField = "id"

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	obs := &recordingObserver{}

	got := mustRender(t, Config{
		Provider: provider,
		Columns:  []ColumnSpec{Shorthand("id"), Shorthand("born:date")},
		Logger:   &logger,
		Observer: obs,
	})

	if !strings.Contains(got, `<tr data-key="1"><td>1</td><td>2020-02-03</td></tr>`) {
		t.Errorf("healthy row changed: %s", got)
	}
	if !strings.Contains(got, `<tr data-key="2"><td>2</td><td><span class="cell-error" title="`) {
		t.Errorf("failed cell not isolated: %s", got)
	}
	if obs.renders != 1 || len(obs.cells) != 1 {
		t.Fatalf("observer saw %d renders and %d cell errors", obs.renders, len(obs.cells))
	}
	if obs.cells[0].Attribute != "born" || obs.cells[0].Key != 2 {
		t.Errorf("cell error = %+v", obs.cells[0])
	}
	if !strings.Contains(logs.String(), `"attribute":"born"`) || !strings.Contains(logs.String(), "cell failed to render") {
		t.Errorf("log output = %s", logs.String())
	}
}

func TestGridView_Layout(t *testing.T) {
	got := mustRender(t, Config{
		Provider: data.NewArrayProvider(people(1)),
		Columns:  []ColumnSpec{Shorthand("id")},
		Options:  html.Attrs("id", "g", "class", "wide"),
		Layout:   "{summary}<hr>{custom} {unknown}{errors}",
		Summary:  "{begin}/{end} p{page} of {pageCount}",
		Sections: map[string]SectionFunc{
			"custom": func(rc *columns.RenderContext) (safehtml.HTML, error) {
				return html.Text("custom!"), nil
			},
		},
	})
	want := `<div id="g" class="wide"><div class="summary">1/1 p1 of 1</div>&lt;hr&gt;custom! {unknown}</div>`
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestGridView_SectionError(t *testing.T) {
	g, err := New(Config{
		Provider: data.NewArrayProvider(people(1)),
		Layout:   "{broken}",
		Sections: map[string]SectionFunc{
			"broken": func(*columns.RenderContext) (safehtml.HTML, error) {
				return safehtml.HTML{}, errors.New("boom")
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Render(); err == nil || !strings.Contains(err.Error(), "section broken") {
		t.Errorf("Render() error = %v", err)
	}
	if _, err := g.RenderSection("nope"); err == nil {
		t.Error("RenderSection(nope) succeeded")
	}
}

func TestGridView_TableParts(t *testing.T) {
	col := &columns.DataColumn{
		Attribute:      "first_name",
		DisableSorting: true,
		Base:           columns.Base{Options: html.Attrs("style", "width: 10%"), Footer: "Total"},
	}
	got := mustRender(t, Config{
		Provider:       data.NewArrayProvider(people(1)),
		Columns:        []ColumnSpec{Use(col), Use(&columns.SerialColumn{})},
		Caption:        "People",
		ShowFooter:     true,
		FilterPosition: FilterBody,
		TableOptions:   html.Attrs("class", "grid"),
		Layout:         "{items}",
	})

	want := `<table class="grid">
<caption>People</caption>
<colgroup><col style="width: 10%">
<col></colgroup>
<thead>
<tr><th>First Name</th><th>#</th></tr>
<tr class="filters"><td><input type="search" name="filter_first_name" value="" id="filter_first_name" class="form-control"></td><td>&nbsp;</td></tr>
</thead>
<tfoot>
<tr><td>Total</td><td>&nbsp;</td></tr>
</tfoot>
<tbody>
<tr data-key="0"><td>P01</td><td>1</td></tr>
</tbody>
</table>`
	if !strings.Contains(got, want) {
		t.Errorf("Render() =\n%s\nwant table\n%s", got, want)
	}
}

func TestGridView_FilterAndFooterPlacement(t *testing.T) {
	base := Config{
		Provider: data.NewArrayProvider(people(1)),
		Columns:  []ColumnSpec{Shorthand("id")},
		Layout:   "{items}",
	}

	head := base
	head.FilterPosition = FilterHeader
	got := mustRender(t, head)
	if strings.Index(got, `class="filters"`) > strings.Index(got, "<th>") {
		t.Errorf("filter row should precede the header row: %s", got)
	}

	foot := base
	foot.FilterPosition = FilterFooter
	foot.PlaceFooterAfterBody = true
	got = mustRender(t, foot)
	if !strings.Contains(got, "</tbody>\n<tfoot>\n<tr class=\"filters\">") {
		t.Errorf("filter row should be in a footer after the body: %s", got)
	}

	hidden := base
	hidden.HideHeader = true
	if got := mustRender(t, hidden); strings.Contains(got, "<thead>") {
		t.Errorf("HideHeader rendered a header: %s", got)
	}
}

func TestGridView_RowOptionsAndCompositeKeys(t *testing.T) {
	provider := data.NewArrayProvider(people(2))
	provider.KeyFields = []string{"id", "first_name"}
	got := mustRender(t, Config{
		Provider: provider,
		Columns:  []ColumnSpec{Shorthand("id")},
		RowOptions: columns.Computed(func(r columns.Row) *html.Attributes {
			return html.Attrs("class", fmt.Sprintf("row-%d", r.Index))
		}),
		Layout: "{items}",
	})
	want := `<tr class="row-1" data-key="{&#34;first_name&#34;:&#34;P02&#34;,&#34;id&#34;:2}"><td>2</td></tr>`
	if !strings.Contains(got, want) {
		t.Errorf("Render() = %s, want row %s", got, want)
	}
}

func TestGridView_WriteTo(t *testing.T) {
	g, err := New(Config{Provider: data.NewArrayProvider(people(1)), Options: html.Attrs("id", "w")})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	n, err := g.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if int(n) != buf.Len() || !strings.HasPrefix(buf.String(), `<div class="grid-view" id="w">`) {
		t.Errorf("WriteTo() wrote %d bytes: %q", n, buf.String())
	}
}

func TestGridView_GeneratedID(t *testing.T) {
	g1, _ := New(Config{Provider: data.NewArrayProvider(nil)})
	g2, _ := New(Config{Provider: data.NewArrayProvider(nil)})
	if !strings.HasPrefix(g1.ID(), "gridview-") || g1.ID() == g2.ID() {
		t.Errorf("IDs %q and %q should be distinct gridview- ids", g1.ID(), g2.ID())
	}
}

func TestPageRange(t *testing.T) {
	tests := []struct {
		current, pages, max int
		begin, end          int
	}{
		{1, 3, 10, 1, 3},
		{1, 30, 10, 1, 10},
		{15, 30, 10, 10, 19},
		{30, 30, 10, 21, 30},
		{2, 2, 1, 2, 2},
	}
	for _, tt := range tests {
		b, e := pageRange(tt.current, tt.pages, tt.max)
		if b != tt.begin || e != tt.end {
			t.Errorf("pageRange(%d, %d, %d) = %d, %d, want %d, %d", tt.current, tt.pages, tt.max, b, e, tt.begin, tt.end)
		}
	}
}

func TestParseLayout(t *testing.T) {
	segs := parseLayout("a{b}{c}d{ e }")
	var parts []string
	for _, s := range segs {
		if s.token {
			parts = append(parts, "<"+s.text+">")
		} else {
			parts = append(parts, s.text)
		}
	}
	if got, want := strings.Join(parts, "|"), "a|<b>|<c>|d{ e }"; got != want {
		t.Errorf("parseLayout() = %s, want %s", got, want)
	}
}

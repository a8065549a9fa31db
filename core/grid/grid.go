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

// Package grid renders a data provider as an HTML table with a summary,
// a pager and optional filter, caption and footer rows.
package grid

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/html"
	"github.com/google/safehtml"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrNoDataProvider is returned by New when Config.Provider is nil.
	ErrNoDataProvider = errors.New("grid: the data provider must be set")
	// ErrInvalidShorthand is returned for malformed column shorthands.
	ErrInvalidShorthand = columns.ErrInvalidShorthand
)

// GridView renders one provider page. Build it per request.
type GridView struct {
	cfg      Config
	columns  []columns.Column
	id       string
	logger   zerolog.Logger
	observer Observer
}

// New validates cfg and initializes the columns.
func New(cfg Config) (*GridView, error) {
	if cfg.Provider == nil {
		return nil, ErrNoDataProvider
	}
	if cfg.Name == "" {
		cfg.Name = "grid"
	}
	if cfg.Registry == nil {
		cfg.Registry = columns.DefaultRegistry()
	}
	if cfg.InferSampleSize < 1 {
		cfg.InferSampleSize = DefaultInferSampleSize
	}
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}
	if cfg.Pager == nil {
		cfg.Pager = LinkPager{}
	}

	g := &GridView{cfg: cfg, observer: cfg.Observer}
	if g.observer == nil {
		g.observer = nopObserver{}
	}
	if cfg.Logger != nil {
		g.logger = cfg.Logger.With().Str("grid", cfg.Name).Logger()
	} else {
		g.logger = zerolog.Nop()
	}

	g.id = "gridview-" + uuid.NewString()
	if v, ok := cfg.Options.Get("id"); ok && v != nil {
		g.id = fmt.Sprint(v)
	}

	if err := g.initColumns(); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the id of the container element.
func (g *GridView) ID() string { return g.id }

// Columns returns the visible columns in display order.
func (g *GridView) Columns() []columns.Column { return g.columns }

func (g *GridView) initColumns() error {
	specs := g.cfg.Columns
	if len(specs) == 0 {
		for _, name := range g.inferColumns() {
			specs = append(specs, Shorthand(name))
		}
	}

	g.columns = make([]columns.Column, 0, len(specs))
	for i, spec := range specs {
		col, err := g.buildColumn(spec)
		if err != nil {
			return fmt.Errorf("grid %s: column %d (%s): %w", g.cfg.Name, i, spec, err)
		}
		if in, ok := col.(columns.Initializer); ok {
			if err := in.Init(); err != nil {
				return fmt.Errorf("grid %s: column %d (%s): %w", g.cfg.Name, i, spec, err)
			}
		}
		if col.Common().Hidden {
			continue
		}
		g.columns = append(g.columns, col)
	}
	return nil
}

func (g *GridView) buildColumn(spec ColumnSpec) (columns.Column, error) {
	switch {
	case spec.column != nil:
		return spec.column, nil
	case spec.def != nil:
		def := *spec.def
		if def.Class == "" {
			def.Class = g.cfg.DataColumnClass
		}
		return g.cfg.Registry.Build(def)
	}
	return columns.ParseShorthand(spec.shorthand)
}

// inferColumns unions the displayable fields of the first rows in the
// order they are first seen.
func (g *GridView) inferColumns() []string {
	var names []string
	seen := make(map[string]bool)
	models := g.cfg.Provider.Models()
	if len(models) > g.cfg.InferSampleSize {
		models = models[:g.cfg.InferSampleSize]
	}
	for _, m := range models {
		for _, f := range data.Fields(m) {
			if seen[f.Name] || !data.IsScalar(f.Value) {
				continue
			}
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	return names
}

func (g *GridView) renderContext() *columns.RenderContext {
	rc := columns.NewRenderContext(g.cfg.Query)
	if g.cfg.Formatter != nil {
		rc.Formatter = g.cfg.Formatter
	}
	if g.cfg.Router != nil {
		rc.Router = g.cfg.Router
	}
	if g.cfg.EmptyCell.String() != "" {
		rc.EmptyCell = g.cfg.EmptyCell
	}
	rc.Pagination = g.cfg.Provider.Pagination()
	return rc
}

// Render renders the grid inside its container div.
func (g *GridView) Render() (safehtml.HTML, error) {
	start := time.Now()
	rc := g.renderContext()
	count := g.cfg.Provider.Count()

	var content safehtml.HTML
	if count == 0 && g.cfg.HideOnEmpty {
		content = g.renderEmpty(rc)
	} else {
		var err error
		content, err = g.renderLayout(rc)
		if err != nil {
			return safehtml.HTML{}, fmt.Errorf("grid %s: %w", g.cfg.Name, err)
		}
	}

	opts := g.cfg.Options.Merge(html.Attrs("id", g.id))
	if !opts.Has("class") {
		opts = html.Attrs("class", "grid-view").Merge(opts)
	}
	out := html.Tag("div", content, opts)

	elapsed := time.Since(start)
	g.observer.ObserveRender(g.cfg.Name, count, elapsed)
	g.logger.Debug().Int("rows", count).Int("columns", len(g.columns)).Dur("elapsed", elapsed).Msg("rendered grid")
	return out, nil
}

// WriteTo renders the grid to w.
func (g *GridView) WriteTo(w io.Writer) (int64, error) {
	out, err := g.Render()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, out.String())
	return int64(n), err
}

// RenderSection renders a single layout section by name.
func (g *GridView) RenderSection(name string) (safehtml.HTML, error) {
	fn, ok := g.section(name)
	if !ok {
		return safehtml.HTML{}, fmt.Errorf("grid %s: unknown section %q", g.cfg.Name, name)
	}
	return fn(g.renderContext())
}

func (g *GridView) section(name string) (SectionFunc, bool) {
	if fn, ok := g.cfg.Sections[name]; ok && fn != nil {
		return fn, true
	}
	switch name {
	case "summary":
		return g.sectionFunc(g.renderSummary), true
	case "items":
		return g.sectionFunc(g.renderItems), true
	case "pager":
		return g.renderPager, true
	case "errors":
		return g.sectionFunc(func(*columns.RenderContext) safehtml.HTML { return safehtml.HTML{} }), true
	}
	return nil, false
}

func (g *GridView) sectionFunc(fn func(*columns.RenderContext) safehtml.HTML) SectionFunc {
	return func(rc *columns.RenderContext) (safehtml.HTML, error) {
		return fn(rc), nil
	}
}

func (g *GridView) renderLayout(rc *columns.RenderContext) (safehtml.HTML, error) {
	var sb strings.Builder
	for _, seg := range parseLayout(g.cfg.Layout) {
		if !seg.token {
			sb.WriteString(html.Encode(seg.text))
			continue
		}
		fn, ok := g.section(seg.text)
		if !ok {
			sb.WriteString(html.Encode("{" + seg.text + "}"))
			continue
		}
		out, err := fn(rc)
		if err != nil {
			return safehtml.HTML{}, fmt.Errorf("section %s: %w", seg.text, err)
		}
		sb.WriteString(out.String())
	}
	return html.Trusted(sb.String()), nil
}

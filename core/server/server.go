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

// Package server hosts configured grids over HTTP.
package server

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"time"

	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/config"
	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/grid"
	"github.com/google/gridview/core/html"
	"github.com/google/gridview/core/query"
	"github.com/google/gridview/core/rendering"
	"github.com/google/safehtml"
	"github.com/rs/zerolog"
)

// Options tune a Server. The zero value is usable.
type Options struct {
	Title    string
	Subtitle string
	Registry *columns.Registry
	Observer grid.Observer
	Logger   *zerolog.Logger
}

// source is one configured grid with its rows loaded.
type source struct {
	def       *config.Grid
	rows      []any
	formatter *format.Formatter
}

// pageRenderer executes the page templates.
type pageRenderer interface {
	Render(w io.Writer, vm rendering.PageViewModel) error
	RenderLanding(w io.Writer, vm rendering.LandingViewModel) error
}

// Server represents the application server with all its dependencies
type Server struct {
	renderer pageRenderer
	sources  []*source
	byName   map[string]*source
	opts     Options
	logger   zerolog.Logger
}

// NewServer loads the rows of every grid in file from fsys. Relative
// sources are resolved against dir.
func NewServer(file *config.File, fsys fs.FS, dir string, opts Options) (*Server, error) {
	renderer, err := rendering.NewPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "GridView"
	}

	s := &Server{
		renderer: renderer,
		byName:   make(map[string]*source),
		opts:     opts,
		logger:   zerolog.Nop(),
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}

	for _, def := range file.Grids {
		rows, err := def.LoadRows(fsys, dir)
		if err != nil {
			return nil, err
		}
		f, err := def.Formatter()
		if err != nil {
			return nil, err
		}
		src := &source{def: def, rows: rows, formatter: f}
		s.sources = append(s.sources, src)
		s.byName[def.Name] = src
		s.logger.Info().Str("grid", def.Name).Int("rows", len(rows)).Msg("Grid loaded")
	}
	return s, nil
}

// GridHandlerResult represents the result of handling a grid request
type GridHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	entries []TimingEntry
	start   time.Time
}

// TimingEntry is one measured operation.
type TimingEntry struct {
	Operation string
	Duration  time.Duration
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.entries = append(tc.entries, TimingEntry{Operation: operation, Duration: duration})
}

// Entries returns all timing entries
func (tc *TimingCollector) Entries() []TimingEntry {
	return tc.entries
}

// TotalMs returns total elapsed time in milliseconds as formatted string
func (tc *TimingCollector) TotalMs() string {
	return fmt.Sprintf("%.2f", float64(time.Since(tc.start).Microseconds())/1000.0)
}

// log writes the entries to one debug event.
func (tc *TimingCollector) log(logger zerolog.Logger, grid string) {
	event := logger.Debug().Str("grid", grid)
	for _, e := range tc.entries {
		event = event.Dur(e.Operation, e.Duration)
	}
	event.Msg("Grid request timings")
}

// buildGrid creates the GridView of src for one request.
func (s *Server) buildGrid(src *source, q *query.Query, base string) (*grid.GridView, error) {
	provider := src.def.Provider(src.rows).Page(q)
	cfg := grid.Config{
		Provider:  provider,
		Query:     q,
		Formatter: src.formatter,
		Router:    query.PathRouter{Base: base},
		Registry:  s.opts.Registry,
		Observer:  s.opts.Observer,
		Logger:    &s.logger,
	}
	src.def.Apply(&cfg)
	return grid.New(cfg)
}

// HandleGridRequest renders the grid name. A fragment response holds
// only the grid markup; otherwise the grid is wrapped in a page.
func (s *Server) HandleGridRequest(w io.Writer, requestURL *url.URL, name string, fragment bool, setHeader func(key, value string)) *GridHandlerResult {
	timing := NewTimingCollector()

	src, ok := s.byName[name]
	if !ok {
		return &GridHandlerResult{StatusCode: 404, Message: fmt.Sprintf("Grid '%s' not found", name)}
	}

	parseStart := time.Now()
	q := query.NewQuery(requestURL)
	timing.Record("parse_query", time.Since(parseStart))

	buildStart := time.Now()
	gv, err := s.buildGrid(src, q, "/grids/"+name)
	if err != nil {
		s.logger.Error().Err(err).Str("grid", name).Msg("Grid configuration error")
		return &GridHandlerResult{Error: err}
	}
	timing.Record("build", time.Since(buildStart))

	renderStart := time.Now()
	out, err := gv.Render()
	if err != nil {
		s.logger.Error().Err(err).Str("grid", name).Msg("Grid rendering error")
		return &GridHandlerResult{Error: err}
	}
	timing.Record("render", time.Since(renderStart))
	defer timing.log(s.logger, name)

	if fragment {
		if err := writeHTML(w, setHeader, bytes.NewBufferString(out.String())); err != nil {
			return &GridHandlerResult{Error: err}
		}
		return nil
	}

	vm := rendering.PageViewModel{
		Title:        s.title(src),
		GridID:       gv.ID(),
		Grid:         out,
		HomeURL:      safehtml.URLSanitized("/"),
		RenderTimeMs: timing.TotalMs(),
	}
	var body bytes.Buffer
	if err := s.renderer.Render(&body, vm); err != nil {
		s.logger.Error().Err(err).Str("grid", name).Msg("Template rendering error")
		return &GridHandlerResult{Error: err}
	}
	if err := writeHTML(w, setHeader, &body); err != nil {
		return &GridHandlerResult{Error: err}
	}
	return nil
}

// HandleViewRequest renders the fields of the row the request's key
// parameters select.
func (s *Server) HandleViewRequest(w io.Writer, requestURL *url.URL, name string, setHeader func(key, value string)) *GridHandlerResult {
	src, ok := s.byName[name]
	if !ok {
		return &GridHandlerResult{StatusCode: 404, Message: fmt.Sprintf("Grid '%s' not found", name)}
	}
	row, ok := src.find(requestURL.Query())
	if !ok {
		return &GridHandlerResult{StatusCode: 404, Message: "Row not found"}
	}

	fields := data.Fields(row)
	records := make([]any, len(fields))
	for i, f := range fields {
		records[i] = data.NewRecord("field", f.Name, "value", f.Value)
	}
	gv, err := grid.New(grid.Config{
		Name:      name + ".view",
		Provider:  data.NewArrayProvider(records),
		Formatter: src.formatter,
		Columns: []grid.ColumnSpec{
			grid.Define(columns.Definition{Attribute: "field", Label: "Field", DisableSorting: true}),
			grid.Define(columns.Definition{Attribute: "value", Label: "Value", DisableSorting: true}),
		},
		Layout:       "{items}",
		TableOptions: html.Attrs("class", "table table-bordered detail-view"),
		Logger:       &s.logger,
	})
	if err != nil {
		return &GridHandlerResult{Error: err}
	}
	out, err := gv.Render()
	if err != nil {
		return &GridHandlerResult{Error: err}
	}

	vm := rendering.PageViewModel{
		Title:   s.title(src),
		GridID:  gv.ID(),
		Grid:    out,
		HomeURL: safehtml.URLSanitized("/grids/" + name),
	}
	var body bytes.Buffer
	if err := s.renderer.Render(&body, vm); err != nil {
		s.logger.Error().Err(err).Str("grid", name).Msg("Template rendering error")
		return &GridHandlerResult{Error: err}
	}
	if err := writeHTML(w, setHeader, &body); err != nil {
		return &GridHandlerResult{Error: err}
	}
	return nil
}

// find returns the row whose key matches values. Scalar keys are read
// from the id parameter and composite keys from one parameter per field.
func (src *source) find(values url.Values) (any, bool) {
	all := &data.ArrayProvider{Rows: src.rows, KeyField: src.def.KeyField, KeyFields: src.def.KeyFields}
	models := all.Models()
	for i, key := range all.Keys() {
		if composite, ok := key.(map[string]any); ok {
			match := true
			for field, v := range composite {
				if values.Get(field) != fmt.Sprint(v) {
					match = false
					break
				}
			}
			if match {
				return models[i], true
			}
			continue
		}
		if values.Has("id") && columns.KeyString(key) == values.Get("id") {
			return models[i], true
		}
	}
	return nil, false
}

func (s *Server) title(src *source) string {
	if src.def.Title != "" {
		return src.def.Title
	}
	return format.Headline(src.def.Name)
}

// HandleLandingRequest processes the landing page request
func (s *Server) HandleLandingRequest(w io.Writer, setHeader func(key, value string)) error {
	vm := rendering.LandingViewModel{
		Title:    s.opts.Title,
		Subtitle: s.opts.Subtitle,
	}
	for _, src := range s.sources {
		vm.Grids = append(vm.Grids, rendering.GridLink{
			Name:  src.def.Name,
			Title: s.title(src),
			URL:   safehtml.URLSanitized("/grids/" + url.PathEscape(src.def.Name)),
		})
	}

	var body bytes.Buffer
	if err := s.renderer.RenderLanding(&body, vm); err != nil {
		s.logger.Error().Err(err).Msg("Landing page rendering error")
		return err
	}
	return writeHTML(w, setHeader, &body)
}

// writeHTML sets the content type and copies a completely rendered body
// to w. Nothing reaches w when rendering failed.
func writeHTML(w io.Writer, setHeader func(key, value string), body *bytes.Buffer) error {
	setHeader("Content-Type", "text/html; charset=utf-8")
	_, err := body.WriteTo(w)
	return err
}

// Grids lists the configured grid names in file order.
func (s *Server) Grids() []string {
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.def.Name
	}
	return names
}

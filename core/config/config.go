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

// Package config loads grid definitions from YAML or TOML files.
//
// A file holds a list of grids; each grid names its CSV source, its
// paging and key settings, and its columns. Columns are either shorthand
// strings ("attribute:format:label") or mappings:
//
//	grids:
//	  - name: people
//	    source: people.csv
//	    key: id
//	    pageSize: 10
//	    columns:
//	      - class: serial
//	      - first_name
//	      - attribute: salary
//	        format: currency:EUR
//	      - class: action
//	        template: "{view} {delete}"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/gridview/core/columns"
	"github.com/google/gridview/core/data"
	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/grid"
	"github.com/google/gridview/core/html"
	"github.com/google/gridview/core/logging"
	"golang.org/x/text/language"
)

var log = logging.GetLogger("config")

// ErrInvalidConfig wraps every semantic error in a definition file.
var ErrInvalidConfig = errors.New("invalid grid configuration")

// Format is the syntax of a definition file.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: unsupported file extension %q", ErrInvalidConfig, filepath.Ext(name))
}

// File is a decoded definition file.
type File struct {
	Grids []*Grid
}

// Grid returns the grid named name.
func (f *File) Grid(name string) (*Grid, bool) {
	for _, g := range f.Grids {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// Names lists the grids in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Grids))
	for i, g := range f.Grids {
		names[i] = g.Name
	}
	return names
}

// Grid is one grid definition.
type Grid struct {
	Name  string
	Title string
	// Source is the CSV file holding the rows, relative to the definition file.
	Source    string
	CSVTypes  map[string]data.ColumnType
	KeyField  string
	KeyFields []string
	PageSize  int

	Locale   string
	Currency string
	TimeZone string

	Columns []grid.ColumnSpec

	Layout               string
	Caption              string
	Summary              string
	NoSummary            bool
	EmptyText            string
	NoEmptyText          bool
	HideOnEmpty          bool
	HideHeader           bool
	ShowFooter           bool
	PlaceFooterAfterBody bool
	FilterPosition       grid.FilterPosition
	DataColumnClass      string

	Options          *html.Attributes
	TableOptions     *html.Attributes
	HeaderRowOptions *html.Attributes
	FooterRowOptions *html.Attributes
	FilterRowOptions *html.Attributes
	RowOptions       *html.Attributes
	CaptionOptions   *html.Attributes
	SummaryOptions   *html.Attributes
	EmptyTextOptions *html.Attributes
}

// Parse decodes a definition file.
func Parse(b []byte, f Format) (*File, error) {
	var (
		doc tree
		err error
	)
	switch f {
	case YAML:
		doc, err = parseYAML(b)
	case TOML:
		doc, err = parseTOML(b)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return decodeFile(doc)
}

// LoadFile reads and decodes the definition file at name.
func LoadFile(name string) (*File, error) {
	f, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid definitions: %w", err)
	}
	file, err := Parse(b, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Debug().Str("path", name).Strs("grids", file.Names()).Msg("Grid definitions loaded")
	return file, nil
}

// LoadFS reads and decodes the definition file name from fsys.
func LoadFS(fsys fs.FS, name string) (*File, error) {
	f, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid definitions: %w", err)
	}
	file, err := Parse(b, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return file, nil
}

// LoadRows reads the grid's CSV source from fsys. Relative sources are
// resolved against dir.
func (g *Grid) LoadRows(fsys fs.FS, dir string) ([]any, error) {
	if g.Source == "" {
		return nil, fmt.Errorf("grid %s has no source", g.Name)
	}
	name := g.Source
	if !path.IsAbs(name) && dir != "" && dir != "." {
		name = path.Join(dir, name)
	}
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("grid %s: %w", g.Name, err)
	}
	defer file.Close()
	rows, err := data.LoadCSV(file, data.CSVOptions{Types: g.CSVTypes})
	if err != nil {
		return nil, fmt.Errorf("grid %s: %w", g.Name, err)
	}
	return rows, nil
}

// Provider wraps rows in an array provider using the grid's key and page size.
func (g *Grid) Provider(rows []any) *data.ArrayProvider {
	return &data.ArrayProvider{
		Rows:      rows,
		KeyField:  g.KeyField,
		KeyFields: g.KeyFields,
		PageSize:  g.PageSize,
	}
}

// Formatter builds the formatter for the grid's locale, currency and time zone.
func (g *Grid) Formatter() (*format.Formatter, error) {
	tag := language.English
	if g.Locale != "" {
		t, err := language.Parse(g.Locale)
		if err != nil {
			return nil, fmt.Errorf("%w: grid %s: locale: %v", ErrInvalidConfig, g.Name, err)
		}
		tag = t
	}
	f := format.NewFormatter(tag)
	if g.Currency != "" {
		f = f.WithCurrency(g.Currency)
	}
	if g.TimeZone != "" {
		loc, err := time.LoadLocation(g.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("%w: grid %s: time zone: %v", ErrInvalidConfig, g.Name, err)
		}
		f = f.WithLocation(loc)
	}
	return f, nil
}

// Apply copies the grid's presentation settings into cfg.
func (g *Grid) Apply(cfg *grid.Config) {
	cfg.Name = g.Name
	cfg.Columns = g.Columns
	cfg.Layout = g.Layout
	cfg.Caption = g.Caption
	cfg.Summary = g.Summary
	cfg.NoSummary = g.NoSummary
	cfg.EmptyText = g.EmptyText
	cfg.NoEmptyText = g.NoEmptyText
	cfg.HideOnEmpty = g.HideOnEmpty
	cfg.HideHeader = g.HideHeader
	cfg.ShowFooter = g.ShowFooter
	cfg.PlaceFooterAfterBody = g.PlaceFooterAfterBody
	cfg.FilterPosition = g.FilterPosition
	cfg.DataColumnClass = g.DataColumnClass
	cfg.Options = g.Options
	cfg.TableOptions = g.TableOptions
	cfg.HeaderRowOptions = g.HeaderRowOptions
	cfg.FooterRowOptions = g.FooterRowOptions
	cfg.FilterRowOptions = g.FilterRowOptions
	cfg.CaptionOptions = g.CaptionOptions
	cfg.SummaryOptions = g.SummaryOptions
	cfg.EmptyTextOptions = g.EmptyTextOptions
	if g.RowOptions != nil {
		cfg.RowOptions = columns.Static(g.RowOptions)
	}
}

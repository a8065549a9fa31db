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
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/html"
)

// Built-in column classes.
const (
	ClassData     = "data"
	ClassAction   = "action"
	ClassCheckbox = "checkbox"
	ClassRadio    = "radio"
	ClassSerial   = "serial"
)

var (
	// ErrUnknownClass is returned when a definition names an unregistered class.
	ErrUnknownClass = errors.New("unknown column class")
	// ErrDuplicateClass is returned when a class is registered twice.
	ErrDuplicateClass = errors.New("column class already registered")
	// ErrInvalidShorthand is returned for malformed "attribute:format:label" strings.
	ErrInvalidShorthand = errors.New("invalid column shorthand")
)

// Definition is the declarative form of a column, as read from
// configuration. Fields that do not apply to a class are ignored.
type Definition struct {
	Class string

	Hidden         bool
	Header         string
	Footer         string
	Options        *html.Attributes
	HeaderOptions  *html.Attributes
	ContentOptions *html.Attributes
	FilterOptions  *html.Attributes
	FooterOptions  *html.Attributes

	// Data columns.
	Attribute      string
	Value          string
	Label          string
	RawLabel       bool
	Format         format.Spec
	DisableSorting bool
	// Filter is nil for the automatic filter, false to disable it, a
	// string of trusted markup, or the select items as *html.Items or a
	// map[string]any.
	Filter             any
	FilterPrompt       *html.Prompt
	FilterInputOptions *html.Attributes

	// Action columns.
	Template       string
	Controller     string
	ButtonOptions  *html.Attributes
	VisibleButtons map[string]bool

	// Checkbox and radio columns.
	Name         string
	CSSClass     string
	Single       bool
	InputOptions *html.Attributes

	// Extra carries settings for custom classes.
	Extra map[string]any
}

// Factory builds a column from its definition.
type Factory func(def Definition) (Column, error)

// Registry maps column classes to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in classes.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.factories[ClassData] = buildData
	r.factories[ClassAction] = buildAction
	r.factories[ClassCheckbox] = buildCheckbox
	r.factories[ClassRadio] = buildRadio
	r.factories[ClassSerial] = buildSerial
	return r
}

// Register adds a factory for class.
func (r *Registry) Register(class string, f Factory) error {
	if class == "" || f == nil {
		return fmt.Errorf("columns: invalid registration for class %q", class)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[class]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateClass, class)
	}
	r.factories[class] = f
	return nil
}

// Classes returns the registered class names in sorted order.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	classes := make([]string, 0, len(r.factories))
	for c := range r.factories {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}

// Build creates and initializes the column def describes. An empty class
// builds a data column.
func (r *Registry) Build(def Definition) (Column, error) {
	class := def.Class
	if class == "" {
		class = ClassData
	}
	r.mu.RLock()
	f, ok := r.factories[class]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}

	col, err := f(def)
	if err != nil {
		return nil, fmt.Errorf("building %s column: %w", class, err)
	}
	if in, ok := col.(Initializer); ok {
		if err := in.Init(); err != nil {
			return nil, fmt.Errorf("building %s column: %w", class, err)
		}
	}
	return col, nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds a factory to the default registry.
func Register(class string, f Factory) error { return defaultRegistry.Register(class, f) }

// Build creates a column through the default registry.
func Build(def Definition) (Column, error) { return defaultRegistry.Build(def) }

// BaseFrom copies the options shared by all columns out of def.
func BaseFrom(def Definition) Base {
	b := Base{
		Hidden:        def.Hidden,
		Header:        def.Header,
		Footer:        def.Footer,
		Options:       def.Options,
		HeaderOptions: def.HeaderOptions,
		FilterOptions: def.FilterOptions,
		FooterOptions: def.FooterOptions,
	}
	if def.ContentOptions != nil {
		b.ContentOptions = Static(def.ContentOptions)
	}
	return b
}

func buildData(def Definition) (Column, error) {
	filter, err := filterFrom(def)
	if err != nil {
		return nil, err
	}
	return &DataColumn{
		Base:               BaseFrom(def),
		Attribute:          def.Attribute,
		Value:              def.Value,
		Format:             def.Format,
		Label:              def.Label,
		RawLabel:           def.RawLabel,
		DisableSorting:     def.DisableSorting,
		Filter:             filter,
		FilterInputOptions: def.FilterInputOptions,
	}, nil
}

func filterFrom(def Definition) (Filter, error) {
	f := Filter{Prompt: def.FilterPrompt}
	switch v := def.Filter.(type) {
	case nil:
	case bool:
		if !v {
			f.Mode = FilterDisabled
		}
	case string:
		f.Mode = FilterLiteral
		f.HTML = html.Trusted(v)
	case *html.Items:
		f.Mode = FilterSelect
		f.Items = v
	case map[string]any:
		f.Mode = FilterSelect
		f.Items = html.NewItems()
		for _, k := range sortedKeys(v) {
			f.Items.Set(k, v[k])
		}
	case map[string]string:
		f.Mode = FilterSelect
		f.Items = html.NewItems()
		for _, k := range sortedKeys(v) {
			f.Items.Set(k, v[k])
		}
	default:
		return f, fmt.Errorf("unsupported filter value of type %T", def.Filter)
	}
	return f, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildAction(def Definition) (Column, error) {
	c := &ActionColumn{
		Base:          BaseFrom(def),
		Template:      def.Template,
		Controller:    def.Controller,
		ButtonOptions: def.ButtonOptions,
	}
	if len(def.VisibleButtons) > 0 {
		c.VisibleButtons = make(map[string]Resolver[bool], len(def.VisibleButtons))
		for name, visible := range def.VisibleButtons {
			c.VisibleButtons[name] = Static(visible)
		}
	}
	return c, nil
}

func buildCheckbox(def Definition) (Column, error) {
	c := &CheckboxColumn{
		Base:     BaseFrom(def),
		Name:     def.Name,
		Single:   def.Single,
		CSSClass: def.CSSClass,
	}
	if def.InputOptions != nil {
		c.InputOptions = Static(def.InputOptions)
	}
	return c, nil
}

func buildRadio(def Definition) (Column, error) {
	c := &RadioButtonColumn{Base: BaseFrom(def), Name: def.Name}
	if def.InputOptions != nil {
		c.InputOptions = Static(def.InputOptions)
	}
	return c, nil
}

func buildSerial(def Definition) (Column, error) {
	return &SerialColumn{Base: BaseFrom(def)}, nil
}

var shorthandPattern = regexp.MustCompile(`^([^:]+)(:(\w*))?(:(.*))?$`)

// ParseShorthand builds a data column from "attribute[:format[:label]]".
// The format defaults to text.
func ParseShorthand(text string) (*DataColumn, error) {
	m := shorthandPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShorthand, text)
	}
	c := &DataColumn{
		Attribute: m[1],
		Format:    format.Spec{Type: m[3]}.Normalize(),
		Label:     m[5],
	}
	if err := c.Init(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidShorthand, text, err)
	}
	return c, nil
}

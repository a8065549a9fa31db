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

// Package format converts cell values into display markup.
//
// A Formatter carries the locale, time zone and currency used by the
// locale-aware formats. Formatters are immutable after construction and
// safe for concurrent use.
package format

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/gridview/core/html"
	"github.com/google/safehtml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format types understood by Formatter.Format.
const (
	Text     = "text"
	NText    = "ntext"
	Raw      = "raw"
	HTML     = "html"
	Email    = "email"
	URL      = "url"
	Boolean  = "boolean"
	Integer  = "integer"
	Decimal  = "decimal"
	Currency = "currency"
	Date     = "date"
	Datetime = "datetime"
	Time     = "time"
)

// Default is the parameter value that selects a format's default layout.
const Default = "default"

var knownTypes = map[string]bool{
	Text: true, NText: true, Raw: true, HTML: true, Email: true, URL: true,
	Boolean: true, Integer: true, Decimal: true, Currency: true,
	Date: true, Datetime: true, Time: true,
}

// ErrUnknownFormat is returned for a format type no formatter handles.
var ErrUnknownFormat = errors.New("unknown format")

// Error reports a value that could not be formatted.
type Error struct {
	Format string
	Value  any
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("format %s: cannot format %v (%T): %v", e.Format, e.Value, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Spec selects a format type and its optional parameter, for example
// {Type: "datetime", Param: "Y-m-d"} or {Type: "currency", Param: "EUR"}.
type Spec struct {
	Type  string
	Param string
}

// Normalize lowercases the type and fills in defaults.
func (s Spec) Normalize() Spec {
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Type == "" {
		s.Type = Text
	}
	if s.Param == "" {
		s.Param = Default
	}
	return s
}

// Validate reports whether the format type is known.
func (s Spec) Validate() error {
	n := s.Normalize()
	if !knownTypes[n.Type] {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, s.Type)
	}
	return nil
}

func (s Spec) String() string {
	if s.Param == "" || s.Param == Default {
		return s.Type
	}
	return s.Type + ":" + s.Param
}

// Formatter formats values for display.
type Formatter struct {
	// Locale drives number grouping, currency symbols and UI strings.
	Locale language.Tag
	// Location is the time zone for date and time formats.
	Location *time.Location
	// Currency is the ISO 4217 code used when a currency format has no parameter.
	Currency string
	// DecimalDigits is the fraction digit count of the decimal format default.
	DecimalDigits int

	printer   *message.Printer
	sanitizer *bluemonday.Policy
}

// NewFormatter creates a formatter for the given locale in UTC with USD as
// the default currency.
func NewFormatter(locale language.Tag) *Formatter {
	return &Formatter{
		Locale:        locale,
		Location:      time.UTC,
		Currency:      "USD",
		DecimalDigits: 2,
		printer:       message.NewPrinter(locale),
		sanitizer:     bluemonday.UGCPolicy(),
	}
}

// WithLocation returns a copy of f using loc for dates.
func (f *Formatter) WithLocation(loc *time.Location) *Formatter {
	c := *f
	c.Location = loc
	return &c
}

// WithCurrency returns a copy of f with a different default currency.
func (f *Formatter) WithCurrency(code string) *Formatter {
	c := *f
	c.Currency = code
	return &c
}

// Printer returns the message printer for the formatter's locale.
func (f *Formatter) Printer() *message.Printer {
	if f.printer != nil {
		return f.printer
	}
	return message.NewPrinter(f.Locale)
}

// T translates a UI string through the message catalog.
func (f *Formatter) T(key string, args ...any) string {
	return f.Printer().Sprintf(key, args...)
}

func (f *Formatter) location() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

func (f *Formatter) policy() *bluemonday.Policy {
	if f.sanitizer != nil {
		return f.sanitizer
	}
	return bluemonday.UGCPolicy()
}

// NullDisplay is rendered for nil values.
func (f *Formatter) NullDisplay() safehtml.HTML {
	return html.Tag("span", html.Text(f.T("(not set)")), html.Attrs("class", "not-set"))
}

// Format renders value according to spec. Unknown types yield an error
// wrapping ErrUnknownFormat; values the format cannot interpret yield *Error.
func (f *Formatter) Format(value any, spec Spec) (safehtml.HTML, error) {
	spec = spec.Normalize()
	if isNil(value) {
		return f.NullDisplay(), nil
	}

	switch spec.Type {
	case Text:
		return html.Text(toString(value)), nil
	case NText:
		escaped := html.Encode(toString(value))
		escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
		return html.Trusted(strings.ReplaceAll(escaped, "\n", "<br>\n")), nil
	case Raw:
		return html.Trusted(toString(value)), nil
	case HTML:
		return html.Trusted(f.policy().Sanitize(toString(value))), nil
	case Email:
		s := toString(value)
		return html.Tag("a", html.Text(s), html.Attrs("href", "mailto:"+s)), nil
	case URL:
		s := toString(value)
		target := s
		if u, err := url.Parse(s); err == nil && u.Scheme == "" && !strings.HasPrefix(s, "/") {
			target = "http://" + s
		}
		return html.Anchor(html.Text(s), safehtml.URLSanitized(target), nil), nil
	case Boolean:
		if truthy(value) {
			return html.Text(f.T("Yes")), nil
		}
		return html.Text(f.T("No")), nil
	case Integer:
		d, err := toDecimal(value)
		if err != nil {
			return safehtml.HTML{}, &Error{Format: spec.Type, Value: value, Err: err}
		}
		return html.Text(f.decimalString(d.Truncate(0), 0)), nil
	case Decimal:
		return f.formatDecimal(value, spec)
	case Currency:
		return f.formatCurrency(value, spec)
	case Date, Datetime, Time:
		s, err := f.FormatTime(value, spec)
		if err != nil {
			return safehtml.HTML{}, err
		}
		return html.Text(s), nil
	}
	return safehtml.HTML{}, fmt.Errorf("%w: %q", ErrUnknownFormat, spec.Type)
}

func (f *Formatter) formatDecimal(value any, spec Spec) (safehtml.HTML, error) {
	d, err := toDecimal(value)
	if err != nil {
		return safehtml.HTML{}, &Error{Format: spec.Type, Value: value, Err: err}
	}
	digits := f.DecimalDigits
	if spec.Param != Default {
		n, err := strconv.Atoi(spec.Param)
		if err != nil || n < 0 {
			return safehtml.HTML{}, &Error{Format: spec.Type, Value: value, Err: fmt.Errorf("invalid fraction digits %q", spec.Param)}
		}
		digits = n
	}
	return html.Text(f.decimalString(d, digits)), nil
}

func (f *Formatter) decimalString(d decimal.Decimal, digits int) string {
	return symbolsFor(f.Locale).format(d, digits)
}

func (f *Formatter) formatCurrency(value any, spec Spec) (safehtml.HTML, error) {
	code := f.Currency
	if spec.Param != Default {
		code = spec.Param
	}
	if code == "" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return safehtml.HTML{}, &Error{Format: spec.Type, Value: value, Err: err}
	}
	d, err := toDecimal(value)
	if err != nil {
		return safehtml.HTML{}, &Error{Format: spec.Type, Value: value, Err: err}
	}
	scale, _ := currency.Standard.Rounding(unit)
	symbol := f.Printer().Sprint(currency.Symbol(unit))
	amount := f.decimalString(d.Abs(), scale)
	sign := ""
	if d.Round(int32(scale)).IsNegative() {
		sign = "-"
	}
	if symbolAfter(f.Locale) {
		return html.Text(sign + amount + "\u00a0" + symbol), nil
	}
	return html.Text(sign + symbol + amount), nil
}

// isNil reports nil interfaces and nil pointers, maps and slices.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case safehtml.HTML:
		return t.String()
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return toString(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// truthy follows the loose truthiness of form values: "", "0" and "false"
// are false, as are zero numbers.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s != "" && s != "0" && s != "false" && s != "no" && s != "off"
	case decimal.Decimal:
		return !t.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer:
		return truthy(rv.Elem().Interface())
	}
	return true
}

// toDecimal converts numeric values and numeric strings.
func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case *decimal.Decimal:
		return *t, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	case fmt.Stringer:
		return decimal.NewFromString(strings.TrimSpace(t.String()))
	case bool:
		if t {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return decimal.NewFromString(strconv.FormatUint(u, 10))
		}
		return decimal.NewFromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, fmt.Errorf("not a finite number: %v", f)
		}
		return decimal.NewFromFloat(f), nil
	case reflect.Pointer:
		return toDecimal(rv.Elem().Interface())
	case reflect.String:
		return decimal.NewFromString(strings.TrimSpace(rv.String()))
	}
	return decimal.Zero, fmt.Errorf("not a number")
}

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
	"strings"
	"testing"

	"github.com/google/gridview/core/format"
	"github.com/google/gridview/core/html"
)

func TestRegistry_BuildBuiltins(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		def  Definition
		want string
	}{
		{Definition{Attribute: "name"}, "*columns.DataColumn"},
		{Definition{Class: ClassAction}, "*columns.ActionColumn"},
		{Definition{Class: ClassCheckbox}, "*columns.CheckboxColumn"},
		{Definition{Class: ClassRadio}, "*columns.RadioButtonColumn"},
		{Definition{Class: ClassSerial}, "*columns.SerialColumn"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			col, err := r.Build(tt.def)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := fmt.Sprintf("%T", col); got != tt.want {
				t.Errorf("Build() type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRegistry_BuildErrors(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name string
		def  Definition
		want error
	}{
		{"unknown class", Definition{Class: "nope"}, ErrUnknownClass},
		{"unknown format", Definition{Attribute: "x", Format: format.Spec{Type: "bogus"}}, format.ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Build(tt.def); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := r.Build(Definition{Attribute: "x", Filter: 42}); err == nil {
		t.Error("Build() with an int filter succeeded")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	custom := func(def Definition) (Column, error) {
		return &SerialColumn{Base: BaseFrom(def)}, nil
	}
	if err := r.Register("rownum", custom); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register("rownum", custom); !errors.Is(err, ErrDuplicateClass) {
		t.Errorf("second Register() error = %v, want ErrDuplicateClass", err)
	}
	if err := r.Register(ClassData, custom); !errors.Is(err, ErrDuplicateClass) {
		t.Errorf("Register(data) error = %v, want ErrDuplicateClass", err)
	}

	col, err := r.Build(Definition{Class: "rownum", Header: "N"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if col.Common().Header != "N" {
		t.Errorf("Header = %q, want N", col.Common().Header)
	}

	want := []string{"action", "checkbox", "data", "radio", "rownum", "serial"}
	if got := r.Classes(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Classes() = %v, want %v", got, want)
	}
}

func TestRegistry_DefinitionFields(t *testing.T) {
	r := NewRegistry()

	col, err := r.Build(Definition{
		Attribute:      "status",
		Filter:         map[string]any{"i": "Inactive", "a": "Active"},
		ContentOptions: html.Attrs("class", "status"),
		Hidden:         true,
	})
	if err != nil {
		t.Fatal(err)
	}
	dc := col.(*DataColumn)
	if dc.Filter.Mode != FilterSelect || strings.Join(dc.Filter.Items.Keys(), ",") != "a,i" {
		t.Errorf("filter = %+v, want sorted select items", dc.Filter)
	}
	if !dc.Hidden {
		t.Error("Hidden not copied")
	}
	if got := dc.ContentOptions.Resolve(Row{}); got == nil || !got.Has("class") {
		t.Errorf("ContentOptions = %v", got)
	}

	col, err = r.Build(Definition{Attribute: "x", Filter: false})
	if err != nil {
		t.Fatal(err)
	}
	if col.(*DataColumn).Filter.Mode != FilterDisabled {
		t.Error("Filter: false did not disable the filter")
	}

	col, err = r.Build(Definition{Class: ClassAction, Template: "{view}", VisibleButtons: map[string]bool{"view": false}})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := col.DataCellContent(testContext(t, "/"), Row{Key: 1})
	if got.String() != "" {
		t.Errorf("invisible view button rendered %q", got)
	}
}

func TestParseShorthand(t *testing.T) {
	tests := []struct {
		text      string
		attribute string
		format    string
		label     string
	}{
		{"name", "name", "text", ""},
		{"created_at:datetime", "created_at", "datetime", ""},
		{"price:currency:Unit price", "price", "currency", "Unit price"},
		{"note::Remark", "note", "text", "Remark"},
		{"a:text:b:c", "a", "text", "b:c"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			c, err := ParseShorthand(tt.text)
			if err != nil {
				t.Fatalf("ParseShorthand() error = %v", err)
			}
			if c.Attribute != tt.attribute || c.Format.Type != tt.format || c.Label != tt.label {
				t.Errorf("ParseShorthand() = %q/%q/%q, want %q/%q/%q",
					c.Attribute, c.Format.Type, c.Label, tt.attribute, tt.format, tt.label)
			}
		})
	}
}

func TestParseShorthand_Invalid(t *testing.T) {
	for _, text := range []string{"", ":text", "name:bogus"} {
		if _, err := ParseShorthand(text); !errors.Is(err, ErrInvalidShorthand) {
			t.Errorf("ParseShorthand(%q) error = %v, want ErrInvalidShorthand", text, err)
		}
	}
}

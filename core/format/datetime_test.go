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

package format

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestFormatTime(t *testing.T) {
	f := NewFormatter(language.English)
	const ts = 1700000000 // 2023-11-14 22:13:20 UTC

	tests := []struct {
		name  string
		value any
		spec  Spec
		want  string
	}{
		{"datetime pattern on timestamp", ts, Spec{Type: Datetime, Param: "Y-m-d"}, "2023-11-14"},
		{"datetime default", ts, Spec{Type: Datetime}, "2023-11-14 22:13:20"},
		{"date default", ts, Spec{Type: Date}, "2023-11-14"},
		{"time default", ts, Spec{Type: Time}, "22:13:20"},
		{"float timestamp", float64(ts), Spec{Type: Date, Param: "d/m/Y"}, "14/11/2023"},
		{"numeric string", "1700000000", Spec{Type: Date}, "2023-11-14"},
		{"millisecond timestamp", int64(ts) * 1000, Spec{Type: Datetime}, "2023-11-14 22:13:20"},
		{"parsed string", "2023-11-14 22:13:20", Spec{Type: Datetime, Param: "d/m/Y H:i"}, "14/11/2023 22:13"},
		{"free-form string", "November 14, 2023", Spec{Type: Date}, "2023-11-14"},
		{"time.Time", time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), Spec{Type: Datetime, Param: "D, j M y g:i A"}, "Sat, 3 Feb 24 4:05 AM"},
		{"go layout", time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), Spec{Type: Date, Param: "Jan 2, 2006"}, "Feb 3, 2024"},
		{"escaped letters", ts, Spec{Type: Date, Param: `\Y\e\a\r: Y`}, "Year: 2023"},
		{"ordinal suffix", ts, Spec{Type: Date, Param: "jS F Y"}, "14th November 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.FormatTime(tt.value, tt.spec)
			if err != nil {
				t.Fatalf("FormatTime() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTime_Unparseable(t *testing.T) {
	f := NewFormatter(language.English)
	_, err := f.FormatTime("zzz", Spec{Type: Date})
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if fe.Format != Date || fe.Value != "zzz" {
		t.Errorf("unexpected error fields: %+v", fe)
	}

	_, err = f.FormatTime(struct{}{}, Spec{Type: Date})
	if !errors.As(err, &fe) {
		t.Errorf("expected *Error for struct value, got %v", err)
	}
}

func TestFormatPattern(t *testing.T) {
	tm := time.Date(2024, 1, 1, 13, 5, 9, 123456000, time.UTC)
	tests := []struct {
		pattern string
		want    string
	}{
		{"N w z", "1 1 0"},
		{"W o", "01 2024"},
		{"t L", "31 1"},
		{"h G a", "01 13 pm"},
		{"u v", "123456 123"},
		{"U", "1704114309"},
		{"c", "2024-01-01T13:05:09+00:00"},
		{"P p T", "+00:00 Z UTC"},
		{"q", "q"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := FormatPattern(tm, tt.pattern); got != tt.want {
				t.Errorf("FormatPattern(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

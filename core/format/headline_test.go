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

import "testing"

func TestHeadline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"first_name", "First Name"},
		{"firstName", "First Name"},
		{"created-at", "Created At"},
		{"user.email_address", "Email Address"},
		{"HTTPStatus", "HTTP Status"},
		{"id", "Id"},
		{"  spaced  out ", "Spaced Out"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Headline(tt.in); got != tt.want {
				t.Errorf("Headline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

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

package config

import (
	"testing"
	"time"
)

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "PORT", "GRIDS_FILE", "VERBOSITY", "LOG_JSON", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
	s := LoadSettings()
	if s.Addr != ":8097" || s.GridsFile != "" || s.Verbosity != 0 || s.JSONLogs {
		t.Errorf("LoadSettings() = %+v", s)
	}
	if s.ReadTimeout != 10*time.Second || s.ShutdownTimeout != 5*time.Second {
		t.Errorf("timeouts = %v, %v", s.ReadTimeout, s.ShutdownTimeout)
	}
}

func TestLoadSettings_Env(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, s Settings)
	}{
		{
			name: "port",
			env:  map[string]string{"ADDR": "", "PORT": "9000"},
			check: func(t *testing.T, s Settings) {
				if s.Addr != ":9000" {
					t.Errorf("Addr = %q, want :9000", s.Addr)
				}
			},
		},
		{
			name: "addr wins over port",
			env:  map[string]string{"ADDR": "127.0.0.1:1234", "PORT": "9000"},
			check: func(t *testing.T, s Settings) {
				if s.Addr != "127.0.0.1:1234" {
					t.Errorf("Addr = %q", s.Addr)
				}
			},
		},
		{
			name: "typed values",
			env:  map[string]string{"VERBOSITY": "2", "LOG_JSON": "true", "WRITE_TIMEOUT": "1m", "GRIDS_FILE": "grids.toml"},
			check: func(t *testing.T, s Settings) {
				if s.Verbosity != 2 || !s.JSONLogs || s.WriteTimeout != time.Minute || s.GridsFile != "grids.toml" {
					t.Errorf("LoadSettings() = %+v", s)
				}
			},
		},
		{
			name: "invalid values fall back",
			env:  map[string]string{"VERBOSITY": "loud", "LOG_JSON": "maybe", "READ_TIMEOUT": "soon"},
			check: func(t *testing.T, s Settings) {
				if s.Verbosity != 0 || s.JSONLogs || s.ReadTimeout != 10*time.Second {
					t.Errorf("LoadSettings() = %+v", s)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, LoadSettings())
		})
	}
}

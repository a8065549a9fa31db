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

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/gridview/core/config"
	"github.com/google/gridview/core/metrics"
	"github.com/google/gridview/core/rendering"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const testGrids = `
grids:
  - name: people
    title: People
    source: people.csv
    key: id
    pageSize: 2
    options: {id: people}
    filterPosition: body
    columns:
      - id
      - first_name
      - class: action
        template: "{view}"
  - name: teams
    source: teams.csv
    key: [org, team]
`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	fsys := fstest.MapFS{
		"grids.yaml": {Data: []byte(testGrids)},
		"people.csv": {Data: []byte("id,first_name\n1,Ann\n2,Bob\n3,Cy\n")},
		"teams.csv":  {Data: []byte("org,team,size\nacme,red,4\nacme,blue,7\n")},
	}
	file, err := config.LoadFS(fsys, "grids.yaml")
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	s, err := NewServer(file, fsys, ".", opts)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_Routes(t *testing.T) {
	h := newTestServer(t, Options{Title: "Demo"}).Handler(RouterOptions{})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		want       []string
		notWant    []string
	}{
		{
			name:       "landing",
			target:     "/",
			wantStatus: http.StatusOK,
			want:       []string{"<h1>Demo</h1>", `<a href="/grids/people">People</a>`, `<a href="/grids/teams">Teams</a>`},
		},
		{
			name:       "page",
			target:     "/grids/people",
			wantStatus: http.StatusOK,
			want: []string{
				"<title>People</title>",
				`<div class="grid-view" id="people">`,
				`<td>1</td><td>Ann</td>`,
				`<td>2</td><td>Bob</td>`,
				`href="/grids/people/view?id=1"`,
				`id="filter_first_name"`,
			},
			notWant: []string{"Cy"},
		},
		{
			name:       "second page",
			target:     "/grids/people?page=2",
			wantStatus: http.StatusOK,
			want:       []string{`<td>3</td><td>Cy</td>`},
			notWant:    []string{"Ann"},
		},
		{
			name:       "filtered",
			target:     "/grids/people?filter_first_name=bo",
			wantStatus: http.StatusOK,
			want:       []string{`<td>Bob</td>`, `value="bo"`},
			notWant:    []string{"Ann"},
		},
		{
			name:       "fragment",
			target:     "/grids/people/fragment",
			wantStatus: http.StatusOK,
			want:       []string{`<div class="grid-view" id="people">`},
			notWant:    []string{"<html"},
		},
		{
			name:       "view",
			target:     "/grids/people/view?id=2",
			wantStatus: http.StatusOK,
			want:       []string{`<td>first_name</td><td>Bob</td>`, `href="/grids/people"`},
		},
		{
			name:       "composite key view",
			target:     "/grids/teams/view?org=acme&team=blue",
			wantStatus: http.StatusOK,
			want:       []string{`<td>size</td><td>7</td>`},
		},
		{name: "unknown grid", target: "/grids/nope", wantStatus: http.StatusNotFound, want: []string{"Grid 'nope' not found"}},
		{name: "unknown row", target: "/grids/people/view?id=9", wantStatus: http.StatusNotFound, want: []string{"Row not found"}},
		{name: "read-only", target: "/grids/people/edit?id=1", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, tt.target)
			if w.Code != tt.wantStatus {
				t.Fatalf("GET %s status = %d, want %d\n%s", tt.target, w.Code, tt.wantStatus, w.Body)
			}
			body := w.Body.String()
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("GET %s body missing %s\n%s", tt.target, want, body)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(body, notWant) {
					t.Errorf("GET %s body contains %s", tt.target, notWant)
				}
			}
		})
	}
}

// brokenRenderer writes part of a page before failing.
type brokenRenderer struct{}

var errTemplate = errors.New("template failed")

func (brokenRenderer) Render(w io.Writer, _ rendering.PageViewModel) error {
	io.WriteString(w, "<!DOCTYPE html><html><body>partial")
	return errTemplate
}

func (brokenRenderer) RenderLanding(w io.Writer, _ rendering.LandingViewModel) error {
	io.WriteString(w, "<!DOCTYPE html><html><body>partial")
	return errTemplate
}

func TestHandler_TemplateFailure(t *testing.T) {
	s := newTestServer(t, Options{})
	s.renderer = brokenRenderer{}
	h := s.Handler(RouterOptions{})

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"landing", "/", http.StatusInternalServerError},
		{"page", "/grids/people", http.StatusInternalServerError},
		{"view", "/grids/people/view?id=1", http.StatusInternalServerError},
		{"fragment", "/grids/people/fragment", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, tt.target)
			if w.Code != tt.wantStatus {
				t.Fatalf("GET %s status = %d, want %d", tt.target, w.Code, tt.wantStatus)
			}
			if strings.Contains(w.Body.String(), "partial") {
				t.Errorf("GET %s sent a partial page: %q", tt.target, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if got := w.Body.String(); got != "internal server error\n" {
					t.Errorf("GET %s body = %q", tt.target, got)
				}
				if ct := w.Header().Get("Content-Type"); strings.HasPrefix(ct, "text/html") {
					t.Errorf("GET %s Content-Type = %q, want the error type", tt.target, ct)
				}
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHandleGridRequest_WriteFailure(t *testing.T) {
	s := newTestServer(t, Options{})
	u, _ := url.Parse("/grids/people")
	for _, fragment := range []bool{true, false} {
		result := s.HandleGridRequest(failingWriter{}, u, "people", fragment, func(string, string) {})
		if result == nil || result.Error == nil {
			t.Errorf("HandleGridRequest(fragment=%v) = %+v, want a write error", fragment, result)
		}
	}
}

func TestHandler_SortOrder(t *testing.T) {
	h := newTestServer(t, Options{}).Handler(RouterOptions{})
	body := get(t, h, "/grids/people?sort=-first_name&per-page=3").Body.String()

	cy, bob, ann := strings.Index(body, "Cy"), strings.Index(body, "Bob"), strings.Index(body, "Ann")
	if cy < 0 || bob < 0 || ann < 0 || !(cy < bob && bob < ann) {
		t.Errorf("rows not sorted descending: Cy=%d Bob=%d Ann=%d", cy, bob, ann)
	}
}

func TestHandler_Healthz(t *testing.T) {
	h := newTestServer(t, Options{}).Handler(RouterOptions{})
	w := get(t, h, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got struct {
		Status string   `json:"status"`
		Grids  []string `json:"grids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.Status != "ok" || strings.Join(got.Grids, ",") != "people,teams" {
		t.Errorf("healthz = %+v", got)
	}
}

func TestHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	h := newTestServer(t, Options{Observer: collector}).Handler(RouterOptions{
		Middleware: []func(http.Handler) http.Handler{collector.Middleware},
		Gatherer:   reg,
	})

	get(t, h, "/grids/people")
	body := get(t, h, "/metrics").Body.String()
	for _, want := range []string{
		`gridview_renders_total{grid="people"} 1`,
		`gridview_requests_total{method="GET",route="/grids/{name}",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("/metrics missing %s", want)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if id := w.Header().Get("X-Request-ID"); id == "" || id != seen {
		t.Errorf("X-Request-ID = %q, context id = %q", id, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc" {
		t.Errorf("X-Request-ID = %q, want abc", got)
	}
}

func TestLoggingAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := RequestID(Logging(logger)(Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))))

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	logs := buf.String()
	for _, want := range []string{`"message":"panic recovered"`, `"request_id":"req-1"`, `"status":500`, `"path":"/explode"`} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %s\n%s", want, logs)
		}
	}
}

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
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterOptions configure the HTTP surface.
type RouterOptions struct {
	// Middleware wraps every route, after request ids, logging and recovery.
	Middleware []func(http.Handler) http.Handler
	// Gatherer, when set, is served at /metrics.
	Gatherer prometheus.Gatherer
}

// Handler builds the chi router serving the landing page, grid pages and
// fragments, row views, health checks and metrics.
func (s *Server) Handler(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging(s.logger))
	r.Use(Recovery(s.logger))
	for _, mw := range opts.Middleware {
		r.Use(mw)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if err := s.HandleLandingRequest(w, w.Header().Set); err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})
	r.Get("/grids/{name}", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, s.HandleGridRequest(w, r.URL, chi.URLParam(r, "name"), false, w.Header().Set))
	})
	r.Get("/grids/{name}/fragment", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, s.HandleGridRequest(w, r.URL, chi.URLParam(r, "name"), true, w.Header().Set))
	})
	r.Get("/grids/{name}/view", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, s.HandleViewRequest(w, r.URL, chi.URLParam(r, "name"), w.Header().Set))
	})
	readOnly := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "grids are read-only", http.StatusMethodNotAllowed)
	}
	r.Get("/grids/{name}/edit", readOnly)
	r.Post("/grids/{name}/delete", readOnly)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "grids": s.Grids()})
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func writeResult(w http.ResponseWriter, result *GridHandlerResult) {
	if result == nil {
		return
	}
	if result.Error != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Error(w, result.Message, result.StatusCode)
}

// RequestID sets an X-Request-ID response header and attaches the id to
// the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(contextWithRequestID(r.Context(), id)))
	})
}

// Logging logs each request with method, path, status, and duration.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			reqLogger := logger.With().Str("request_id", RequestIDFrom(r.Context())).Logger()
			next.ServeHTTP(sw, r.WithContext(reqLogger.WithContext(r.Context())))
			reqLogger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().Interface("error", err).Str("path", r.URL.Path).Msg("panic recovered")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

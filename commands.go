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

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/gridview/core/config"
	"github.com/google/gridview/core/logging"
	"github.com/google/gridview/core/metrics"
	"github.com/google/gridview/core/server"
	"github.com/google/gridview/demo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	settings  config.Settings
	verbosity int
}

// execute runs cmd and reports a failure on its error stream. The root
// command silences cobra's own error output.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// NewRootCmd builds the gridview command tree. Environment settings are
// the flag defaults.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{settings: config.LoadSettings()}

	rootCmd := &cobra.Command{
		Use:   "gridview",
		Short: "Render data grids as HTML tables",
		Long: `gridview renders paginated, sortable and filterable HTML tables from
grid definitions in YAML or TOML files and the CSV data they reference.
Without --grids the embedded demo grids are used.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity := opts.verbosity
			if verbosity == 0 {
				verbosity = opts.settings.Verbosity
			}
			logging.SetupLoggerTo(cmd.ErrOrStderr(), verbosity, opts.settings.JSONLogs)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.BoolVar(&opts.settings.JSONLogs, "json-logs", opts.settings.JSONLogs, "Write logs as JSON")
	flags.StringVar(&opts.settings.GridsFile, "grids", opts.settings.GridsFile, "Grid definition file (.yaml, .yml or .toml)")

	rootCmd.AddCommand(newServeCmd(opts), newRenderCmd(opts), newListCmd(opts), newVersionCmd())
	return rootCmd
}

// loadServer reads the grid definitions and their data.
func loadServer(opts *rootOptions, serverOpts server.Options) (*server.Server, error) {
	var (
		file *config.File
		fsys fs.FS
		dir  string
		err  error
	)
	if opts.settings.GridsFile == "" {
		file, err = demo.Load()
		fsys, dir = demo.FS(), demo.Dir
		serverOpts.Subtitle = "Demo grids"
	} else {
		file, err = config.LoadFile(opts.settings.GridsFile)
		fsys, dir = os.DirFS(filepath.Dir(opts.settings.GridsFile)), "."
	}
	if err != nil {
		return nil, err
	}
	return server.NewServer(file, fsys, dir, serverOpts)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grids over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("server")

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			collector := metrics.NewCollector(reg)

			s, err := loadServer(opts, server.Options{Observer: collector, Logger: &logger})
			if err != nil {
				return err
			}
			httpServer := &http.Server{
				Addr: opts.settings.Addr,
				Handler: s.Handler(server.RouterOptions{
					Middleware: []func(http.Handler) http.Handler{collector.Middleware},
					Gatherer:   reg,
				}),
				ReadTimeout:  opts.settings.ReadTimeout,
				WriteTimeout: opts.settings.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", httpServer.Addr).Strs("grids", s.Grids()).Msg("Listening")
				errc <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info().Msg("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.settings.ShutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&opts.settings.Addr, "addr", opts.settings.Addr, "Listen address")
	return cmd
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		rawQuery string
		page     bool
	)
	cmd := &cobra.Command{
		Use:   "render <grid>",
		Short: "Render one grid to stdout",
		Long: `Render writes the HTML of one grid to stdout. The query holds the same
parameters a browser would send, for example "sort=-salary&page=2".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadServer(opts, server.Options{})
			if err != nil {
				return err
			}
			values, err := url.ParseQuery(rawQuery)
			if err != nil {
				return fmt.Errorf("invalid query: %w", err)
			}
			u := &url.URL{Path: "/grids/" + args[0], RawQuery: values.Encode()}

			result := s.HandleGridRequest(cmd.OutOrStdout(), u, args[0], !page, func(string, string) {})
			switch {
			case result == nil:
				return nil
			case result.Error != nil:
				return result.Error
			default:
				return errors.New(result.Message)
			}
		},
	}
	cmd.Flags().StringVarP(&rawQuery, "query", "q", "", "Request parameters (sort, filter_<attribute>, page, per-page)")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the grid in a complete HTML page")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured grids",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadServer(opts, server.Options{})
			if err != nil {
				return err
			}
			for _, name := range s.Grids() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gridview version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecoglobe/biosync/internal/iohttp"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve runs the HTTP API of biosync. Enrichment of species created
by refresh requests runs in the background and is awaited on shutdown.

Endpoints:
  POST /api/v1/clusters/:country/refresh
  POST /api/v1/clusters/:country/recompute
  GET  /api/v1/clusters
  GET  /api/v1/clusters/:country
  GET  /api/v1/species/:id
  POST /api/v1/species/:id/enrich
  GET  /api/v1/health
  GET  /metrics

Examples:
  biosync serve
  biosync serve --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	serveCmd.Flags().IntP("port", "p", 0, "port of the HTTP API")
	serveCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent enrichment tasks")

	return serveCmd
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := newComponents(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer c.Close()

	srv := iohttp.New(cfg, c.snc, c.enr, c.spp, c.cls)
	gn.Info("Serving biosync API on port <em>%d</em>", cfg.Server.Port)
	if err = srv.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

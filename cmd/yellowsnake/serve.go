// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agentberlin/yellowsnake/internal/mcp"
	"github.com/agentberlin/yellowsnake/internal/server"
	"github.com/agentberlin/yellowsnake/internal/types"
)

var (
	serveAddr    string
	serveMCPAddr string
	serveNoMCP   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API and the MCP tools",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, cleanup, err := buildApp()
		if err != nil {
			return err
		}
		defer cleanup()

		limits := types.RunLimits{MaxPages: cfg.Crawl.MaxPages, MaxCompanies: cfg.Crawl.MaxCompanies}

		servers := []*http.Server{{
			Addr:              firstNonEmpty(serveAddr, cfg.Server.Addr),
			Handler:           server.NewServer(a, limits),
			ReadHeaderTimeout: 10 * time.Second,
		}}
		if !serveNoMCP {
			servers = append(servers, &http.Server{
				Addr:              firstNonEmpty(serveMCPAddr, cfg.MCP.Addr),
				Handler:           mcp.NewMCPServer(a, limits).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			})
		}
		return serveAll(ctx, servers)
	},
}

// serveAll runs every server until ctx is cancelled or one of them fails,
// then shuts them all down.
func serveAll(ctx context.Context, servers []*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			zap.L().Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrapf(err, "serve %s", srv.Addr)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("shutdown", zap.String("addr", srv.Addr), zap.Error(err))
			}
		}
		return nil
	})
	return g.Wait()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "REST API listen address (default from config)")
	serveCmd.Flags().StringVar(&serveMCPAddr, "mcp-addr", "", "MCP listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoMCP, "no-mcp", false, "do not start the MCP server")
	rootCmd.AddCommand(serveCmd)
}

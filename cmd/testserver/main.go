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

// Command testserver serves the fixture directory site so the scraper can be
// run end to end without touching the real directory:
//
//	go run ./cmd/testserver -port 8090
//	yellowsnake scrape -u "http://localhost:8090/am/yellow_pages/?cat=real_estate"
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentberlin/yellowsnake/internal/config"
	"github.com/agentberlin/yellowsnake/testutil"
	"go.uber.org/zap"
)

func main() {
	port := flag.Int("port", 8090, "Port to run the fixture site on")
	host := flag.String("host", "127.0.0.1", "Host to bind the fixture site to")
	flag.Parse()

	if err := config.InitLogger(config.LogConfig{Level: "info", Format: "console"}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer zap.L().Sync() //nolint:errcheck

	addr := fmt.Sprintf("%s:%d", *host, *port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      testutil.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("fixture directory listening",
			zap.String("addr", addr),
			zap.String("listing", "http://"+addr+testutil.ListingPath),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("fixture directory failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down fixture directory")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zap.L().Error("forced shutdown", zap.Error(err))
	}
}

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
	"os"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentberlin/yellowsnake/internal/app"
	"github.com/agentberlin/yellowsnake/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "yellowsnake",
	Short:        "Scrape company contacts from the Spyur.am business directory",
	Long:         "Walks Spyur.am category listings, extracts each company's name, director, address, phones, website and social links, and writes them to CSV.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Values from .env feed the YELLOWSNAKE_* environment overrides.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// buildApp validates cfg and builds the App, logging run progress through
// zap.
func buildApp() (*app.App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return app.Build(cfg, app.BuildOptions{Emitter: app.LogEmitter{}})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

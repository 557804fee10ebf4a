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
	"github.com/spf13/cobra"

	"github.com/agentberlin/yellowsnake/internal/app"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := app.CatalogFromConfig(cfg.Categories)
		if err != nil {
			return err
		}
		printCategories(cmd.OutOrStdout(), catalog)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

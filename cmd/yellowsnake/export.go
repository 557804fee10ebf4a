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
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	exportRunID  uint
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a stored run to CSV",
	Example: `  yellowsnake export --run 12
  yellowsnake export --run 12 -o ./real_estate.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if exportRunID == 0 {
			return eris.New("--run is required")
		}

		a, cleanup, err := buildApp()
		if err != nil {
			return err
		}
		defer cleanup()

		path, n, err := a.ExportRun(exportRunID, exportOutput)
		if err != nil {
			return eris.Wrapf(err, "export run %d", exportRunID)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d companies to %s\n", n, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().UintVar(&exportRunID, "run", 0, "run id to export (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "CSV path (default: output dir from config)")
	_ = exportCmd.MarkFlagRequired("run")
	rootCmd.AddCommand(exportCmd)
}

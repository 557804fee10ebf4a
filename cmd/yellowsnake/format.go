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
	"io"
	"text/tabwriter"
	"time"

	"github.com/agentberlin/yellowsnake/internal/app"
	"github.com/agentberlin/yellowsnake/internal/store"
)

// printCategories prints the catalog as a numbered list of humanized names
func printCategories(out io.Writer, catalog *app.Catalog) {
	_, _ = fmt.Fprintln(out, "Available categories:")
	for i, c := range catalog.Entries() {
		_, _ = fmt.Fprintf(out, "%d. %s (%s)\n", i+1, app.Humanize(c.Name), c.Name)
	}
}

func formatRunsList(out io.Writer, runs []store.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCATEGORY\tSTATE\tPAGES\tLINKS\tCOMPANIES\tSTARTED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t--------\t-----\t-----\t-----\t---------\t-------\t--------")

	for _, r := range runs {
		started := time.Unix(r.StartedAt, 0)
		dur := ""
		if r.FinishedAt > 0 {
			dur = time.Unix(r.FinishedAt, 0).Sub(started).Round(time.Second).String()
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.ID,
			r.Category,
			r.State,
			r.PagesVisited,
			r.LinksFound,
			r.CompanyCount,
			started.UTC().Format("2006-01-02 15:04"),
			dur,
		)
	}
	_ = w.Flush()
}

func printRunSummary(out io.Writer, res *app.RunResult) {
	_, _ = fmt.Fprintf(out, "%s: %d pages, %d links, %d companies", res.Category.Name, res.Pages, res.Links, len(res.Records))
	if res.Skipped > 0 {
		_, _ = fmt.Fprintf(out, ", %d skipped", res.Skipped)
	}
	if res.Degraded > 0 {
		_, _ = fmt.Fprintf(out, ", %d without details", res.Degraded)
	}
	_, _ = fmt.Fprintln(out)
}

func printBatch(out io.Writer, batch *app.BatchResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tRUN\tCOMPANIES\tERROR")
	for _, c := range batch.Categories {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", c.Category, c.RunID, c.Companies, c.Error)
	}
	_ = w.Flush()
	if failed := batch.Failed(); len(failed) > 0 {
		_, _ = fmt.Fprintf(out, "%d of %d categories failed\n", len(failed), len(batch.Categories))
	}
}

func printWritten(out io.Writer, path string, n int) {
	if path == "" {
		_, _ = fmt.Fprintln(out, "No companies found, nothing written.")
		return
	}
	_, _ = fmt.Fprintf(out, "Saved %d companies to %s\n", n, path)
}

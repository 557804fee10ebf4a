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
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/agentberlin/yellowsnake/internal/app"
)

type scrapeOptions struct {
	category     string
	url          string
	maxPages     int
	maxCompanies int
	output       string
	all          bool
	render       bool
}

var scrapeOpts scrapeOptions

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape one category, a custom listing URL, or every category",
	Example: `  yellowsnake scrape -c real_estate -p 3
  yellowsnake scrape -u "https://www.spyur.am/am/yellow_pages/?type=bd&yp_cat2=l2.3.5" -o out.csv
  yellowsnake scrape --all -m 200`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if scrapeOpts.maxPages > 0 {
			cfg.Crawl.MaxPages = scrapeOpts.maxPages
		}
		if scrapeOpts.maxCompanies > 0 {
			cfg.Crawl.MaxCompanies = scrapeOpts.maxCompanies
		}
		if scrapeOpts.render {
			cfg.Crawl.Render = true
		}

		a, cleanup, err := buildApp()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := scrapeOpts
		opts.maxPages, opts.maxCompanies = cfg.Crawl.MaxPages, cfg.Crawl.MaxCompanies
		return runScrape(ctx, a, opts, cmd.OutOrStdout())
	},
}

// runScrape runs the scrape opts describe and reports the outcome to out.
// A URL given with --url takes precedence over --category.
func runScrape(ctx context.Context, a *app.App, opts scrapeOptions, out io.Writer) error {
	if opts.all {
		_, _ = fmt.Fprintf(out, "Scraping all categories, max %d pages and %d companies each...\n", opts.maxPages, opts.maxCompanies)
		batch, path, err := a.RunAllToCSV(ctx, opts.maxPages, opts.maxCompanies, opts.output)
		if batch != nil {
			printBatch(out, batch)
		}
		if err != nil {
			return eris.Wrap(err, "scrape all")
		}
		printWritten(out, path, len(batch.Records))
		return nil
	}

	target := opts.category
	if opts.url != "" {
		target = opts.url
	}
	_, _ = fmt.Fprintf(out, "Scraping max %d pages and %d companies...\n", opts.maxPages, opts.maxCompanies)
	res, path, err := a.RunToCSV(ctx, target, opts.maxPages, opts.maxCompanies, opts.output)
	if err != nil {
		return eris.Wrap(err, "scrape")
	}
	printRunSummary(out, res)
	printWritten(out, path, len(res.Records))
	return nil
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVarP(&scrapeOpts.category, "category", "c", "", "category to scrape (default: first configured category)")
	f.StringVarP(&scrapeOpts.url, "url", "u", "", "custom listing URL to scrape (overrides --category)")
	f.IntVarP(&scrapeOpts.maxPages, "pages", "p", 0, "maximum listing pages per category (default from config)")
	f.IntVarP(&scrapeOpts.maxCompanies, "max-companies", "m", 0, "maximum companies per category (default from config)")
	f.StringVarP(&scrapeOpts.output, "output", "o", "", "CSV path (default: output dir from config)")
	f.BoolVarP(&scrapeOpts.all, "all", "a", false, "scrape every configured category into one CSV")
	f.BoolVar(&scrapeOpts.render, "render", false, "render listing and detail pages in headless Chrome")
	scrapeCmd.MarkFlagsMutuallyExclusive("all", "url")
	scrapeCmd.MarkFlagsMutuallyExclusive("all", "category")
	rootCmd.AddCommand(scrapeCmd)
}

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

// Package app orchestrates scrape runs: it walks a category's listing pages
// collecting company links, extracts each company and hands the records to
// the CSV sink and the run store.
package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/extract"
	"github.com/agentberlin/yellowsnake/internal/store"
	"github.com/agentberlin/yellowsnake/internal/types"
	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
)

const (
	// DefaultDetailPath marks company detail links on listing pages
	DefaultDetailPath = "/companies/"
	// DefaultAllFile is the combined CSV of a batch run
	DefaultAllFile = "spyur_all_categories.csv"
)

// Pager finds the listing page after doc. paginate.Resolver implements it.
type Pager interface {
	Next(doc *yellowsnake.Document) (string, bool)
}

// Options are the collaborators of an App. Fetcher, Extractor, Pager and
// Catalog are required.
type Options struct {
	Fetcher   yellowsnake.Fetcher
	Extractor *extract.Extractor
	Pager     Pager
	Catalog   *Catalog
	// DetailPath marks company links, DefaultDetailPath when empty
	DetailPath string
	// Store keeps run history; nil disables it
	Store *store.Store
	// Emitter receives progress events; nil discards them
	Emitter EventEmitter
	// OutputDir receives generated CSV files, the working directory when empty
	OutputDir string
	// AllFile names the combined CSV of a batch run, DefaultAllFile when empty
	AllFile string
}

// App represents the core application logic
type App struct {
	fetcher      yellowsnake.Fetcher
	extractor    *extract.Extractor
	pager        Pager
	catalog      *Catalog
	store        *store.Store
	emitter      EventEmitter
	detailPath   string
	linkFamilies []cascadia.Selector
	outputDir    string
	allFile      string

	activeRuns map[uint]*activeRun
	runsMutex  sync.RWMutex
	nextLocal  uint
}

// NewApp creates a new App instance with dependencies injected
func NewApp(opts Options) (*App, error) {
	if opts.Fetcher == nil || opts.Extractor == nil || opts.Pager == nil || opts.Catalog == nil {
		return nil, eris.New("app: fetcher, extractor, pager and catalog are required")
	}
	if opts.Emitter == nil {
		opts.Emitter = &NoOpEmitter{}
	}
	if opts.DetailPath == "" {
		opts.DetailPath = DefaultDetailPath
	}
	if opts.AllFile == "" {
		opts.AllFile = DefaultAllFile
	}

	families, err := compileLinkFamilies(opts.DetailPath)
	if err != nil {
		return nil, err
	}

	return &App{
		fetcher:      opts.Fetcher,
		extractor:    opts.Extractor,
		pager:        opts.Pager,
		catalog:      opts.Catalog,
		store:        opts.Store,
		emitter:      opts.Emitter,
		detailPath:   opts.DetailPath,
		linkFamilies: families,
		outputDir:    opts.OutputDir,
		allFile:      opts.AllFile,
		activeRuns:   make(map[uint]*activeRun),
	}, nil
}

// compileLinkFamilies builds the company link selectors in the order they
// are tried. The last one matches any link into the detail path.
func compileLinkFamilies(detailPath string) ([]cascadia.Selector, error) {
	exprs := []string{
		".company-title a",
		".result_item .title a",
		fmt.Sprintf("a[href*=%q]", detailPath),
	}
	families := make([]cascadia.Selector, 0, len(exprs))
	for _, expr := range exprs {
		sel, err := cascadia.Compile(expr)
		if err != nil {
			return nil, eris.Wrapf(err, "app: compile link selector %q", expr)
		}
		families = append(families, sel)
	}
	return families, nil
}

// Catalog returns the category table
func (a *App) Catalog() *Catalog {
	return a.catalog
}

// Store returns the run store, nil when history is disabled
func (a *App) Store() *store.Store {
	return a.store
}

// Categories lists the catalog for display
func (a *App) Categories() []types.CategoryInfo {
	entries := a.catalog.Entries()
	out := make([]types.CategoryInfo, len(entries))
	for i, e := range entries {
		out[i] = types.CategoryInfo{
			Index: i + 1,
			Name:  e.Name,
			Label: Humanize(e.Name),
			URL:   e.URL,
		}
	}
	return out
}

// CheckSystemHealth checks if optional dependencies are available
func (a *App) CheckSystemHealth() *types.SystemHealthCheck {
	if !isChromeBrowserAvailable() {
		return &types.SystemHealthCheck{
			IsHealthy:  false,
			ErrorTitle: "Chrome Browser Required",
			ErrorMsg:   "Google Chrome or Chromium is required for --render but was not found on your system.",
			Suggestion: "Install Google Chrome or Chromium, or set CHROME_EXECUTABLE_PATH. Plain HTTP scraping works without it.",
		}
	}
	return &types.SystemHealthCheck{IsHealthy: true}
}

// isChromeBrowserAvailable checks if Chrome or Chromium is available
func isChromeBrowserAvailable() bool {
	if customPath := os.Getenv("CHROME_EXECUTABLE_PATH"); customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return true
		}
	}

	var chromePaths []string
	switch runtime.GOOS {
	case "darwin":
		chromePaths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case "windows":
		chromePaths = []string{
			os.Getenv("ProgramFiles") + "\\Google\\Chrome\\Application\\chrome.exe",
			os.Getenv("ProgramFiles(x86)") + "\\Google\\Chrome\\Application\\chrome.exe",
			os.Getenv("LocalAppData") + "\\Google\\Chrome\\Application\\chrome.exe",
		}
	case "linux":
		chromePaths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

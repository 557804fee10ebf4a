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

package app

import (
	"net/http"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/extract"
	"github.com/agentberlin/yellowsnake/internal/config"
	"github.com/agentberlin/yellowsnake/internal/store"
	"github.com/agentberlin/yellowsnake/paginate"
	"github.com/rotisserie/eris"
)

// BuildOptions adjust how Build wires an App
type BuildOptions struct {
	Emitter EventEmitter
	// Transport replaces the HTTP round tripper of the plain fetcher
	Transport http.RoundTripper
}

// CatalogFromConfig builds the catalog from the configured categories
func CatalogFromConfig(categories []config.CategoryConfig) (*Catalog, error) {
	entries := make([]Category, len(categories))
	for i, c := range categories {
		entries[i] = Category{Name: c.Name, URL: c.URL}
	}
	return NewCatalog(entries)
}

// Build wires an App from configuration. The cleanup func releases the
// browser and the database once the App is done; it is nil on error.
func Build(cfg *config.Config, opts BuildOptions) (*App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var fetcher yellowsnake.Fetcher
	if cfg.Crawl.Render {
		rf, err := yellowsnake.NewRenderFetcher(cfg.RenderConfig())
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, rf.Close)
		fetcher = rf
	} else {
		fc := cfg.FetcherConfig()
		fc.Transport = opts.Transport
		hf, err := yellowsnake.NewHTTPFetcher(fc)
		if err != nil {
			return nil, nil, err
		}
		fetcher = hf
	}

	resolver, err := paginate.New(cfg.PaginateConfig())
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	catalog, err := CatalogFromConfig(cfg.Categories)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var st *store.Store
	if cfg.Store.Enabled {
		st, err = store.NewStore(cfg.Store.Path)
		if err != nil {
			cleanup()
			return nil, nil, eris.Wrap(err, "app: open run history")
		}
		closers = append(closers, func() { _ = st.Close() })
	}

	a, err := NewApp(Options{
		Fetcher:    fetcher,
		Extractor:  extract.New(cfg.ExtractorConfig()),
		Pager:      resolver,
		Catalog:    catalog,
		DetailPath: cfg.Site.DetailPath,
		Store:      st,
		Emitter:    opts.Emitter,
		OutputDir:  cfg.Output.Dir,
		AllFile:    cfg.Output.AllFile,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

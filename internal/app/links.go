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
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// collection is what one walk over a category's listing pages produced
type collection struct {
	links []string
	pages int
}

// CollectCompanyLinks walks the listing pages starting at listingURL and
// returns the company detail links in discovery order. It stops after
// maxPages pages, at maxCompanies links, or when no further page is found.
// Only a failure to load the first page is an error; a later failure ends
// the walk with what was collected.
func (a *App) CollectCompanyLinks(ctx context.Context, listingURL string, maxPages, maxCompanies int) ([]string, error) {
	c, err := a.collect(ctx, "", listingURL, maxPages, maxCompanies, nil)
	return c.links, err
}

func (a *App) collect(ctx context.Context, category, listingURL string, maxPages, maxCompanies int, tracker *activeRun) (collection, error) {
	links := yellowsnake.NewLinkSet()
	current := listingURL
	pages := 0

	for pages < maxPages && links.Len() < maxCompanies {
		doc, err := a.fetchDocument(ctx, current)
		if err != nil {
			if pages == 0 {
				return collection{}, eris.Wrapf(err, "app: listing %s", current)
			}
			zap.L().Warn("app: listing page failed, stopping",
				zap.String("category", category),
				zap.Int("page", pages+1),
				zap.String("url", current),
				zap.Error(err),
			)
			break
		}
		pages++

		found := a.addCompanyLinks(doc, links, maxCompanies)
		tracker.collected(pages, links.Len())
		a.emitter.Emit(EventPageCollected, PageEvent{
			Category: category,
			Page:     pages,
			URL:      current,
			Found:    found,
			Total:    links.Len(),
		})

		if links.Len() >= maxCompanies {
			break
		}

		next, ok := a.nextPage(doc)
		if !ok || next == current || next == doc.URL {
			zap.L().Debug("app: no more listing pages",
				zap.String("category", category),
				zap.Int("page", pages),
				zap.String("url", current),
			)
			break
		}
		current = next
	}

	return collection{links: links.Slice(), pages: pages}, nil
}

func (a *App) fetchDocument(ctx context.Context, rawURL string) (*yellowsnake.Document, error) {
	page, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return page.Document()
}

// addCompanyLinks adds the company links of one listing page, using the
// first selector family that matches anything. It returns how many new
// links were added.
func (a *App) addCompanyLinks(doc *yellowsnake.Document, links *yellowsnake.LinkSet, maxCompanies int) int {
	for _, family := range a.linkFamilies {
		sel := doc.FindMatcher(family)
		if sel.Length() == 0 {
			continue
		}

		added := 0
		sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if links.Len() >= maxCompanies {
				return false
			}
			href, ok := s.Attr("href")
			if !ok || !strings.Contains(href, a.detailPath) {
				return true
			}
			abs, ok := doc.Resolve(href)
			if ok && links.Add(abs) {
				added++
			}
			return true
		})
		return added
	}
	return 0
}

// nextPage asks the pager for the following listing page. A panicking pager
// ends the walk.
func (a *App) nextPage(doc *yellowsnake.Document) (next string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("app: pagination failed",
				zap.String("url", doc.URL),
				zap.Any("panic", r),
			)
			next, ok = "", false
		}
	}()
	return a.pager.Next(doc)
}

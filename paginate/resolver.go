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

package paginate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/agentberlin/yellowsnake"
	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultNextIndicators are the "next page" words and glyphs, in the order
// they are tried.
var DefaultNextIndicators = []string{"Next", "Հաջորդը", "→", "»", "next", "հաջորդ", "հաջորդ էջ"}

// Config configures a Resolver. Zero fields take the directory defaults.
type Config struct {
	Schemes Schemes
	// PagingSelector finds the pager container; only its first match is used
	PagingSelector string
	// ActiveSelector finds the current page marker inside the pager
	ActiveSelector string
	// NextIndicators are matched against link text, title and class
	NextIndicators []string
	// DetailPathFragment marks company links, never taken as "next"
	DetailPathFragment string
	// CategoryURLs are the catalog entry URLs, used to spot a bare category
	// URL when synthesizing
	CategoryURLs []string
}

// Resolver computes the URL of the page after a listing page.
// It is stateless and safe for concurrent use.
type Resolver struct {
	cfg        Config
	schemes    *schemeMatcher
	paging     cascadia.Selector
	active     cascadia.Selector
	links      cascadia.Selector
	indicators []string
}

// New compiles cfg into a Resolver.
func New(cfg Config) (*Resolver, error) {
	if cfg.Schemes == (Schemes{}) {
		cfg.Schemes = DefaultSchemes()
	}
	if cfg.PagingSelector == "" {
		cfg.PagingSelector = ".paging"
	}
	if cfg.ActiveSelector == "" {
		cfg.ActiveSelector = ".active"
	}
	if len(cfg.NextIndicators) == 0 {
		cfg.NextIndicators = DefaultNextIndicators
	}
	if cfg.DetailPathFragment == "" {
		cfg.DetailPathFragment = "/companies/"
	}

	paging, err := cascadia.Compile(cfg.PagingSelector)
	if err != nil {
		return nil, eris.Wrapf(err, "paginate: paging selector %q", cfg.PagingSelector)
	}
	active, err := cascadia.Compile(cfg.ActiveSelector)
	if err != nil {
		return nil, eris.Wrapf(err, "paginate: active selector %q", cfg.ActiveSelector)
	}

	indicators := make([]string, 0, len(cfg.NextIndicators))
	for _, ind := range cfg.NextIndicators {
		if ind = strings.ToLower(strings.TrimSpace(ind)); ind != "" {
			indicators = append(indicators, ind)
		}
	}

	return &Resolver{
		cfg:        cfg,
		schemes:    newSchemeMatcher(cfg.Schemes),
		paging:     paging,
		active:     active,
		links:      cascadia.MustCompile("a[href]"),
		indicators: indicators,
	}, nil
}

// State infers the page number and URL family of rawURL.
func (r *Resolver) State(rawURL string) State {
	return r.schemes.infer(rawURL)
}

type nextStrategy struct {
	name string
	fn   func(r *Resolver, doc *yellowsnake.Document, pager *goquery.Selection, state State) (string, bool)
}

// nextStrategies run in order; the first URL found wins.
var nextStrategies = []nextStrategy{
	{"numeric", (*Resolver).numericLink},
	{"active", (*Resolver).afterActive},
	{"indicator", (*Resolver).indicatorLink},
	{"synthesized", (*Resolver).synthesized},
}

// Next returns the URL of the page after doc, whose URL is doc.URL.
// ok is false when there is no next page, including when resolution fails
// for any reason.
func (r *Resolver) Next(doc *yellowsnake.Document) (next string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Warn("paginate: resolution failed",
				zap.String("url", doc.URL),
				zap.Any("panic", rec),
			)
			next, ok = "", false
		}
	}()

	state := r.State(doc.URL)
	pager := doc.FindMatcher(r.paging).First()

	for _, s := range nextStrategies {
		if next, ok = s.fn(r, doc, pager, state); ok {
			zap.L().Debug("paginate: next page",
				zap.String("url", doc.URL),
				zap.Int("page", state.CurrentPage),
				zap.Stringer("scheme", state.Scheme),
				zap.String("strategy", s.name),
				zap.String("next", next),
			)
			return next, true
		}
	}
	return "", false
}

var digitsRe = regexp.MustCompile(`^\d+$`)

// numericLink picks the pager link numbered current+1, or else the lowest
// number above current.
func (r *Resolver) numericLink(doc *yellowsnake.Document, pager *goquery.Selection, state State) (string, bool) {
	best, bestPage := "", 0
	pager.FindMatcher(r.links).Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if !digitsRe.MatchString(text) {
			return
		}
		page, err := strconv.Atoi(text)
		if err != nil || page <= state.CurrentPage {
			return
		}
		if bestPage != 0 && page >= bestPage {
			return
		}
		href, _ := a.Attr("href")
		if u, ok := doc.Resolve(href); ok {
			best, bestPage = u, page
		}
	})
	return best, best != ""
}

// afterActive takes the link following the active page marker.
func (r *Resolver) afterActive(doc *yellowsnake.Document, pager *goquery.Selection, _ State) (string, bool) {
	active := pager.FindMatcher(r.active).First()
	if active.Length() == 0 {
		return "", false
	}

	if goquery.NodeName(active) == "a" {
		links := pager.FindMatcher(r.links)
		idx := links.IndexOfSelection(active)
		if idx < 0 || idx+1 >= links.Length() {
			return "", false
		}
		href, _ := links.Eq(idx + 1).Attr("href")
		return doc.Resolve(href)
	}

	href, exists := active.NextAllFiltered("a").First().Attr("href")
	if !exists {
		return "", false
	}
	return doc.Resolve(href)
}

// indicatorLink scans the whole page for a "next" link, one indicator at
// a time, skipping company links.
func (r *Resolver) indicatorLink(doc *yellowsnake.Document, _ *goquery.Selection, _ State) (string, bool) {
	anchors := doc.FindMatcher(r.links)
	for _, ind := range r.indicators {
		var found string
		anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if !r.hasIndicator(a, ind) {
				return true
			}
			href, _ := a.Attr("href")
			if strings.Contains(href, r.cfg.DetailPathFragment) {
				return true
			}
			if u, ok := doc.Resolve(href); ok {
				found = u
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func (r *Resolver) hasIndicator(a *goquery.Selection, ind string) bool {
	if strings.Contains(strings.ToLower(strings.TrimSpace(a.Text())), ind) {
		return true
	}
	if title, ok := a.Attr("title"); ok && strings.Contains(strings.ToLower(title), ind) {
		return true
	}
	class, _ := a.Attr("class")
	for _, c := range strings.Fields(class) {
		if strings.ToLower(c) == ind {
			return true
		}
	}
	return false
}

func (r *Resolver) synthesized(_ *yellowsnake.Document, _ *goquery.Selection, state State) (string, bool) {
	return r.Synthesize(state), true
}

// Synthesize builds the next page URL from state alone.
func (r *Resolver) Synthesize(state State) string {
	return r.schemes.synthesize(state, r.isCategoryURL)
}

// isCategoryURL reports whether rawURL contains one of the catalog URLs.
func (r *Resolver) isCategoryURL(rawURL string) bool {
	for _, c := range r.cfg.CategoryURLs {
		if c != "" && strings.Contains(rawURL, c) {
			return true
		}
	}
	return false
}

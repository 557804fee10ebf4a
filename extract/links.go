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

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/agentberlin/yellowsnake"
)

func lower(s string) string {
	return strings.ToLower(s)
}

func (e *Extractor) isSocial(href string) bool {
	return containsAny(lower(href), e.cfg.SocialFragments)
}

func (e *Extractor) isOwnSite(href string) bool {
	return yellowsnake.HostMatches(yellowsnake.Hostname(href), e.cfg.SiteDomain)
}

// website returns the first absolute link off the directory's own domain
// that is not a social network.
func (e *Extractor) website(doc *yellowsnake.Document) string {
	var site string
	doc.FindMatcher(anchors).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !yellowsnake.IsAbsoluteHTTP(href) || e.isOwnSite(href) || e.isSocial(href) {
			return true
		}
		site = href
		return false
	})
	return site
}

// socialMedia returns every distinct social network link that is not the
// directory's own account.
func (e *Extractor) socialMedia(doc *yellowsnake.Document) []string {
	var links []string
	seen := make(map[string]struct{})
	doc.FindMatcher(anchors).Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !e.isSocial(href) {
			return
		}
		if containsAny(lower(href), e.cfg.SelfHandles) {
			return
		}
		resolved, ok := doc.Resolve(href)
		if !ok || e.isOwnSite(resolved) {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})
	return links
}

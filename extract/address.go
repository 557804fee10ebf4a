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
	"github.com/agentberlin/yellowsnake/normalize"
)

// acceptAddress vets a raw candidate and normalizes it. Candidates that
// are too long, look like a bare label, or are directory boilerplate are
// declined.
func acceptAddress(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !shortText(raw) {
		return "", false
	}
	if strings.HasSuffix(raw, ":") || len(strings.Fields(raw)) <= 2 {
		return "", false
	}
	if containsAny(strings.ToLower(raw), notAddress) {
		return "", false
	}
	address := normalize.Address(raw)
	return address, address != ""
}

// firstAddress returns the first element text accepted as an address.
// filter, when set, must also accept the raw text.
func firstAddress(sel *goquery.Selection, filter func(string) bool) (string, bool) {
	var address string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := yellowsnake.CleanText(s)
		if filter != nil && !filter(text) {
			return true
		}
		if a, ok := acceptAddress(text); ok {
			address = a
			return false
		}
		return true
	})
	return address, address != ""
}

func hasRegionMarker(text string) bool {
	return containsAny(text, regionMarkers)
}

func (e *Extractor) addressFromBlock(doc *yellowsnake.Document) (string, bool) {
	return firstAddress(doc.FindMatcher(addressBlock), nil)
}

func (e *Extractor) addressFromContacts(doc *yellowsnake.Document) (string, bool) {
	block := doc.FindMatcher(contactsInfo).First()
	return firstAddress(block.FindMatcher(textElements), hasRegionMarker)
}

func (e *Extractor) addressFromPairs(doc *yellowsnake.Document) (string, bool) {
	return findPair(doc, isAddressLabel, acceptAddress)
}

// addressFromLine reads label-prefixed address lines from the page text.
func (e *Extractor) addressFromLine(doc *yellowsnake.Document) (string, bool) {
	text := doc.PageText()
	for _, re := range addressLineRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if a, ok := acceptAddress(m[1]); ok {
				return a, true
			}
		}
	}
	return "", false
}

func (e *Extractor) addressFromClasses(doc *yellowsnake.Document) (string, bool) {
	return firstAddress(doc.FindMatcher(addressClasses), nil)
}

func (e *Extractor) addressFromParagraphs(doc *yellowsnake.Document) (string, bool) {
	return firstAddress(doc.FindMatcher(contactParagraphs), hasRegionMarker)
}

// addressFromStreetWords is the broadest scan: any div mentioning the
// city or a street word.
func (e *Extractor) addressFromStreetWords(doc *yellowsnake.Document) (string, bool) {
	return firstAddress(doc.FindMatcher(divs), func(text string) bool {
		return containsAny(text, streetMarkers)
	})
}

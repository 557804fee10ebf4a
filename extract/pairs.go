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
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/agentberlin/yellowsnake"
	"github.com/andybalholm/cascadia"
)

// pair is a label and its value from structured markup.
type pair struct {
	label string
	value string
}

// labelled returns the label/value pairs of the page: info lines, table
// rows and definition lists, in that order. Containers without separate
// label and value elements are split at their first ":".
func labelled(doc *yellowsnake.Document) []pair {
	var pairs []pair
	doc.FindMatcher(pairContainers).Each(func(_ int, item *goquery.Selection) {
		label := item.FindMatcher(pairLabel).First()
		value := item.FindMatcher(pairValue).First()
		if label.Length() > 0 && value.Length() > 0 {
			pairs = append(pairs, pair{label: yellowsnake.CleanText(label), value: yellowsnake.CleanText(value)})
			return
		}
		if l, v, ok := strings.Cut(yellowsnake.CleanText(item), ":"); ok {
			pairs = append(pairs, pair{label: strings.TrimSpace(l), value: strings.TrimSpace(v)})
		}
	})

	for _, dt := range doc.XPath(definitionTerms) {
		dd := doc.XPathFrom(dt, definitionValue)
		if len(dd) == 0 {
			continue
		}
		pairs = append(pairs, pair{label: yellowsnake.NodeText(dt), value: yellowsnake.NodeText(dd[0])})
	}
	return pairs
}

// findPair returns the first pair whose lower-cased label satisfies match
// and whose value is accepted by use.
func findPair[T any](doc *yellowsnake.Document, match func(label string) bool, use func(value string) (T, bool)) (T, bool) {
	for _, p := range labelled(doc) {
		if !match(strings.ToLower(p.label)) {
			continue
		}
		if v, ok := use(p.value); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func selectorText(sel cascadia.Selector) func(*yellowsnake.Document) (string, bool) {
	return func(doc *yellowsnake.Document) (string, bool) {
		text := yellowsnake.CleanText(doc.FindMatcher(sel).First())
		return text, text != ""
	}
}

func shortText(s string) bool {
	return utf8.RuneCountInString(s) < maxFragmentLength
}

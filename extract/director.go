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

// cleanDirector drops a leading false-positive label and normalizes what
// is left.
func (e *Extractor) cleanDirector(raw string) (string, bool) {
	for _, label := range e.cfg.FalsePositiveLabels {
		if label == "" {
			continue
		}
		if _, after, found := strings.Cut(raw, label); found {
			raw = after
		}
	}
	name := normalize.DirectorName(raw)
	return name, name != ""
}

func (e *Extractor) directorFromPairs(doc *yellowsnake.Document) (string, bool) {
	return findPair(doc, isDirectorLabel, e.cleanDirector)
}

// directorFromLine reads "Ղեկավար: <name>" from the page text.
func (e *Extractor) directorFromLine(doc *yellowsnake.Document) (string, bool) {
	for _, m := range directorLineRe.FindAllStringSubmatch(doc.PageText(), -1) {
		if name, ok := e.cleanDirector(m[1]); ok {
			return name, true
		}
	}
	return "", false
}

// directorFromRole looks for "Name, director" or "Name - director" in
// short text elements, one pattern at a time.
func (e *Extractor) directorFromRole(doc *yellowsnake.Document) (string, bool) {
	var texts []string
	doc.FindMatcher(textElements).Each(func(_ int, s *goquery.Selection) {
		if text := yellowsnake.CleanText(s); text != "" && shortText(text) {
			texts = append(texts, text)
		}
	})

	for _, re := range directorRoleRes {
		for _, text := range texts {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if name, ok := e.cleanDirector(m[1]); ok {
				return name, true
			}
		}
	}
	return "", false
}

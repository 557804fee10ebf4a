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

// Package normalize cleans raw text fragments scraped from directory pages
// into canonical director names and addresses.
//
// Both cleaners are total: they never fail, and in the worst case return
// the trimmed input or a fixed default. Each cleaner is an ordered list of
// rewrite steps; the pipeline is re-run until its output stops changing,
// so DirectorName(DirectorName(x)) == DirectorName(x) and likewise for
// Address.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// maxPasses bounds the fixpoint loop. Real inputs settle in one or two.
const maxPasses = 4

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingPunctRe = regexp.MustCompile(`[\s,\-:;]+$`)
)

// untilStable applies pass until the output is a fixpoint.
func untilStable(s string, pass func(string) string) string {
	out := pass(s)
	for i := 1; i < maxPasses && out != s; i++ {
		s, out = out, pass(out)
	}
	return out
}

// foldSpaces maps exotic Unicode spaces (NBSP, thin space, ...) to a plain
// space so the ASCII \s class in the patterns sees them. Line breaks are
// kept; some steps depend on them.
func foldSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', ' ':
			return r
		case '\u200b', '\ufeff':
			return -1
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

// collapse squeezes whitespace runs to single spaces and trims the ends.
func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// alternation builds a non-capturing alternation of literal words.
func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return `(?:` + strings.Join(quoted, `|`) + `)`
}

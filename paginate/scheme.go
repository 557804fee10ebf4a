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

// Package paginate works out the next listing page of a category from the
// page markup, or failing that from the shape of the current URL.
package paginate

import (
	"regexp"
	"strconv"
	"strings"
)

// Scheme is a pagination URL family.
type Scheme int

const (
	// SchemeNone means the URL carries no recognizable page number
	SchemeNone Scheme = iota
	// SchemePrimary is a path segment "seg" for page 1 and "seg-N" after
	SchemePrimary
	// SchemeLegacy has the same shape as SchemePrimary with an older segment
	SchemeLegacy
	// SchemeQuery is a "param=N" query value
	SchemeQuery
)

func (s Scheme) String() string {
	switch s {
	case SchemePrimary:
		return "primary"
	case SchemeLegacy:
		return "legacy"
	case SchemeQuery:
		return "query"
	default:
		return "none"
	}
}

// Schemes names the three URL families, tried in field order.
type Schemes struct {
	Primary string `yaml:"primary" mapstructure:"primary"`
	Legacy  string `yaml:"legacy" mapstructure:"legacy"`
	Query   string `yaml:"query" mapstructure:"query"`
}

// DefaultSchemes are the families the directory uses.
func DefaultSchemes() Schemes {
	return Schemes{Primary: "yellow_pages", Legacy: "yellow_page", Query: "page"}
}

// State is what the current URL says about where the crawl is.
type State struct {
	CurrentURL  string
	CurrentPage int
	Scheme      Scheme
}

// schemeMatcher recognizes and rewrites URLs of the configured families.
type schemeMatcher struct {
	schemes   Schemes
	primaryRe *regexp.Regexp
	legacyRe  *regexp.Regexp
	queryRe   *regexp.Regexp
}

// segmentRe matches "/seg" or "/seg-N" followed by "/" or the end of the
// path, so a shorter segment never matches a longer one.
func segmentRe(segment string) *regexp.Regexp {
	if segment == "" {
		return nil
	}
	return regexp.MustCompile(`/` + regexp.QuoteMeta(segment) + `(?:-(\d+))?(/|$)`)
}

func newSchemeMatcher(s Schemes) *schemeMatcher {
	m := &schemeMatcher{
		schemes:   s,
		primaryRe: segmentRe(s.Primary),
		legacyRe:  segmentRe(s.Legacy),
	}
	if s.Query != "" {
		m.queryRe = regexp.MustCompile(`(^|&)` + regexp.QuoteMeta(s.Query) + `=(\d+)`)
	}
	return m
}

// splitQuery cuts rawURL at the first "?". hasQuery reports whether there
// was one, even if empty.
func splitQuery(rawURL string) (path, query string, hasQuery bool) {
	path, query, hasQuery = strings.Cut(rawURL, "?")
	return
}

func joinQuery(path, query string, hasQuery bool) string {
	if !hasQuery {
		return path
	}
	return path + "?" + query
}

func pageNumber(digits string) int {
	if digits == "" {
		return 1
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// infer reads the page number from rawURL. Unrecognized URLs are page 1.
func (m *schemeMatcher) infer(rawURL string) State {
	state := State{CurrentURL: rawURL, CurrentPage: 1, Scheme: SchemeNone}
	path, query, _ := splitQuery(rawURL)

	if m.primaryRe != nil {
		if sm := m.primaryRe.FindStringSubmatch(path); sm != nil {
			state.Scheme = SchemePrimary
			state.CurrentPage = pageNumber(sm[1])
			return state
		}
	}
	if m.legacyRe != nil {
		if sm := m.legacyRe.FindStringSubmatch(path); sm != nil {
			state.Scheme = SchemeLegacy
			state.CurrentPage = pageNumber(sm[1])
			return state
		}
	}
	if m.queryRe != nil {
		if sm := m.queryRe.FindStringSubmatch(query); sm != nil {
			state.Scheme = SchemeQuery
			state.CurrentPage = pageNumber(sm[2])
			return state
		}
	}
	return state
}

// replaceSegment rewrites the first "/seg[-N]" of path to "/seg-next".
func replaceSegment(re *regexp.Regexp, segment, path string, next int) string {
	loc := re.FindStringSubmatchIndex(path)
	if loc == nil {
		return path
	}
	// loc[4]:loc[5] is the "/" or empty end that follows the segment
	return path[:loc[0]] + "/" + segment + "-" + strconv.Itoa(next) + path[loc[4]:]
}

// synthesize builds the next page URL from the current one alone.
// categoryURL reports whether rawURL is a configured category entry URL.
func (m *schemeMatcher) synthesize(state State, categoryURL func(string) bool) string {
	next := state.CurrentPage + 1
	path, query, hasQuery := splitQuery(state.CurrentURL)

	switch state.Scheme {
	case SchemePrimary:
		return joinQuery(replaceSegment(m.primaryRe, m.schemes.Primary, path, next), query, hasQuery)
	case SchemeLegacy:
		return joinQuery(replaceSegment(m.legacyRe, m.schemes.Legacy, path, next), query, hasQuery)
	case SchemeQuery:
		loc := m.queryRe.FindStringSubmatchIndex(query)
		query = query[:loc[4]] + strconv.Itoa(next) + query[loc[5]:]
		return joinQuery(path, query, true)
	}

	param := m.schemes.Query
	if param == "" {
		param = DefaultSchemes().Query
	}

	if m.schemes.Primary != "" && categoryURL != nil && categoryURL(state.CurrentURL) {
		// bare category URL: page 1 lives under the primary segment
		return joinQuery(strings.TrimSuffix(path, "/")+"/"+m.schemes.Primary+"/", query, hasQuery)
	}
	if hasQuery {
		return state.CurrentURL + "&" + param + "=" + strconv.Itoa(next)
	}
	if strings.HasSuffix(path, "/") {
		return path + "?" + param + "=" + strconv.Itoa(next)
	}
	return path + "/?" + param + "=" + strconv.Itoa(next)
}

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

package yellowsnake

import (
	"strings"

	whatwgUrl "github.com/nlnwa/whatwg-url/url"
)

var urlParser = whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign())

// nonNavigable are href schemes that never lead to a page.
var nonNavigable = []string{"javascript:", "mailto:", "tel:", "data:"}

// ResolveURL resolves href against base and drops the fragment. It reports
// false for empty, fragment-only and non-navigable hrefs, and for anything
// the WHATWG parser rejects.
func ResolveURL(base, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, prefix := range nonNavigable {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}
	u, err := urlParser.ParseRef(base, href)
	if err != nil {
		return "", false
	}
	return u.Href(true), true
}

// CanonicalURL returns the WHATWG serialization of rawURL without its
// fragment, or rawURL itself when it does not parse.
func CanonicalURL(rawURL string) string {
	u, err := urlParser.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	return u.Href(true)
}

// Hostname returns the lower-cased host of rawURL without port, or "" when
// it does not parse.
func Hostname(rawURL string) string {
	u, err := urlParser.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// HostMatches reports whether host is domain or one of its subdomains.
// A leading "www." on domain is ignored.
func HostMatches(host, domain string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	domain = strings.TrimPrefix(strings.ToLower(domain), "www.")
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// IsAbsoluteHTTP reports whether href is an absolute http(s) URL.
func IsAbsoluteHTTP(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

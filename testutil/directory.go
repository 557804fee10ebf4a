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

// Package testutil provides a small directory site for tests and local runs:
// two listing pages of one category and the company pages they link to.
package testutil

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
)

// Company is one fixture company
type Company struct {
	Slug     string
	ID       int
	Name     string
	Director string
	Address  string
	Phones   []string
	Website  string
	Social   []string
}

// Path is the company's detail page path
func (c Company) Path() string {
	return fmt.Sprintf("/am/companies/%s/%d/", c.Slug, c.ID)
}

var (
	Ararat = Company{
		Slug:     "ararat-tun",
		ID:       1001,
		Name:     "Արարատ Տուն ՍՊԸ",
		Director: "Վարդան Պետրոսյան",
		Address:  "Երևան, Աբովյան փ. 12",
		Phones:   []string{"+374-10-123456", "+374 (91) 654-321"},
		Website:  "https://ararat.example/",
		Social:   []string{"https://facebook.com/ararat"},
	}
	Sevan = Company{
		Slug:     "sevan-realty",
		ID:       1002,
		Name:     "Սևան Ռիելթի",
		Director: "Անահիտ Սարգսյան",
		Address:  "Երևան, Կոմիտաս պող. 5",
		Phones:   []string{"+374-10-555555"},
	}
	Masis = Company{
		Slug:     "masis-group",
		ID:       1003,
		Name:     "Մասիս Գրուպ",
		Director: "Արմեն Հովհաննիսյան",
		Address:  "Երևան, Մաշտոցի պող. 20",
		Phones:   []string{"+374-93-111222"},
		Social:   []string{"https://instagram.com/masis"},
	}
	// Self is the directory operator's own page
	Self = Company{
		Slug: "spyur-information-system",
		ID:   1,
		Name: "Սպյուռ",
	}
	// Broken answers 500
	Broken = Company{
		Slug: "broken",
		ID:   1004,
	}
)

// Companies are the fixture companies served with a detail page
var Companies = []Company{Ararat, Sevan, Masis, Self}

// ListingPages holds the companies of each listing page in order. The first
// page uses the .company-title layout, the second the .result_item one.
var ListingPages = [][]Company{
	{Ararat, Sevan, Self},
	{Sevan, Masis, Broken},
}

// ListingPath is the first listing page of the fixture category
const ListingPath = "/am/yellow_pages/?cat=real_estate"

var listingRe = regexp.MustCompile(`^/am/yellow_pages(?:-(\d+))?/$`)

// ListingPageURL is the URL of listing page n (1-based) under base
func ListingPageURL(base string, n int) string {
	if n <= 1 {
		return base + ListingPath
	}
	return fmt.Sprintf("%s/am/yellow_pages-%d/?cat=real_estate", base, n)
}

// DetailURL is the detail page URL of c under base
func DetailURL(base string, c Company) string {
	return base + c.Path()
}

func pagerHTML(n int) string {
	var b strings.Builder
	b.WriteString(`<div class="paging">`)
	for i := 1; i <= len(ListingPages); i++ {
		if i == n {
			fmt.Fprintf(&b, `<span class="active">%d</span>`, i)
			continue
		}
		fmt.Fprintf(&b, `<a href="%s">%d</a>`, html.EscapeString(ListingPageURL("", i)), i)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// ListingHTML renders listing page n (1-based)
func ListingHTML(n int) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>Yellow pages</title></head><body>")
	b.WriteString(`<a href="/am/companies/">All companies</a>`)
	for _, c := range ListingPages[n-1] {
		name := html.EscapeString(c.Name)
		if n == 1 {
			fmt.Fprintf(&b, `<div class="company-title"><a href="%s">%s</a></div>`, c.Path(), name)
		} else {
			fmt.Fprintf(&b, `<div class="result_item"><div class="title"><a href="%s">%s</a></div></div>`, c.Path(), name)
		}
	}
	b.WriteString(pagerHTML(n))
	b.WriteString("</body></html>")
	return b.String()
}

// DetailHTML renders the detail page of c
func DetailHTML(c Company) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>")
	b.WriteString(html.EscapeString(c.Name))
	b.WriteString("</title></head><body>")
	fmt.Fprintf(&b, `<h1 class="company-title">%s</h1>`, html.EscapeString(c.Name))
	if c.Director != "" {
		fmt.Fprintf(&b, `<div class="company-info"><div class="info-line"><span class="info-label">Ղեկավար</span><span class="info-value">%s</span></div></div>`,
			html.EscapeString(c.Director))
	}
	if c.Address != "" {
		fmt.Fprintf(&b, `<div class="address_block">%s</div>`, html.EscapeString(c.Address))
	}
	if len(c.Phones) > 0 {
		b.WriteString(`<div class="company-phones">`)
		for _, p := range c.Phones {
			fmt.Fprintf(&b, `<span class="phone-item">%s</span>`, html.EscapeString(p))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`<a href="/am/">Home</a>`)
	if c.Website != "" {
		fmt.Fprintf(&b, `<a href="%s">Website</a>`, html.EscapeString(c.Website))
	}
	for _, s := range c.Social {
		fmt.Fprintf(&b, `<a href="%s">Social</a>`, html.EscapeString(s))
	}
	b.WriteString("</body></html>")
	return b.String()
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// Handler serves the fixture site
func Handler() http.Handler {
	details := make(map[string]Company, len(Companies))
	for _, c := range Companies {
		details[c.Path()] = c
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("User-agent: *\nDisallow: /admin/\n"))
	})

	mux.HandleFunc("/am/companies/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == Broken.Path() {
			writeHTML(w, http.StatusInternalServerError, "<p>error</p>")
			return
		}
		c, ok := details[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeHTML(w, http.StatusOK, DetailHTML(c))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		m := listingRe.FindStringSubmatch(r.URL.Path)
		if m == nil {
			http.NotFound(w, r)
			return
		}
		n := 1
		if m[1] != "" {
			n, _ = strconv.Atoi(m[1])
		}
		if n < 1 || n > len(ListingPages) {
			http.NotFound(w, r)
			return
		}
		writeHTML(w, http.StatusOK, ListingHTML(n))
	})

	return mux
}

// NewUnstartedDirectoryServer creates an unstarted fixture server
func NewUnstartedDirectoryServer() *httptest.Server {
	return httptest.NewUnstartedServer(Handler())
}

// NewDirectoryServer creates and starts a fixture server
func NewDirectoryServer() *httptest.Server {
	srv := NewUnstartedDirectoryServer()
	srv.Start()
	return srv
}

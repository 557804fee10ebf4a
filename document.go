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
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// Document is a parsed page together with the URL it was served from.
type Document struct {
	*goquery.Document
	// URL is the base for resolving relative links
	URL string
}

// NewDocument parses body as HTML.
func NewDocument(pageURL string, body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", pageURL)
	}
	return &Document{Document: doc, URL: pageURL}, nil
}

// NewDocumentFromString parses an HTML string. Mostly useful in tests.
func NewDocumentFromString(pageURL, markup string) (*Document, error) {
	return NewDocument(pageURL, []byte(markup))
}

// Resolve resolves href against the document URL
func (d *Document) Resolve(href string) (string, bool) {
	return ResolveURL(d.URL, href)
}

// Root returns the document node
func (d *Document) Root() *html.Node {
	return d.Nodes[0]
}

// PageText returns the visible body text, one line per block element.
// Line-anchored patterns ("label: value" up to end of line) run on it.
func (d *Document) PageText() string {
	body := d.Find("body")
	if body.Length() == 0 {
		return BlockText(d.Selection)
	}
	return BlockText(body)
}

// XPath evaluates expr from the document root. An invalid expression
// matches nothing.
func (d *Document) XPath(expr string) []*html.Node {
	nodes, err := htmlquery.QueryAll(d.Root(), expr)
	if err != nil {
		return nil
	}
	return nodes
}

// XPathFrom evaluates expr relative to n
func (d *Document) XPathFrom(n *html.Node, expr string) []*html.Node {
	nodes, err := htmlquery.QueryAll(n, expr)
	if err != nil {
		return nil
	}
	return nodes
}

// NodeText returns the text of n with whitespace collapsed
func NodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	return normalizeWhitespace(htmlquery.InnerText(n))
}

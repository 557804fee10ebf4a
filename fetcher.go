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

// Package yellowsnake fetches and parses business-directory pages.
//
// The root package holds the transport side of the scraper: a Fetcher
// interface with a plain HTTP implementation and a headless Chrome one,
// the parsed Document type the extractors query, URL helpers, the ordered
// LinkSet used while collecting company links, and the CompanyRecord every
// run produces.
package yellowsnake

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultUserAgent is a desktop browser string; the directory serves its
// full markup to browsers only.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves a page. Implementations return a *StatusError for
// responses they refuse to hand over for parsing.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Page is a fetched response with its body decoded to UTF-8.
type Page struct {
	// URL is the requested URL
	URL string
	// FinalURL is the URL after redirects
	FinalURL string
	// StatusCode is the HTTP status of the final response
	StatusCode int
	// Header holds the response headers
	Header http.Header
	// Body is the response body
	Body []byte
	// Trace holds connection timings when the fetcher traces requests
	Trace *HTTPTrace
}

// Document parses the page body. Relative links resolve against FinalURL.
func (p *Page) Document() (*Document, error) {
	base := p.FinalURL
	if base == "" {
		base = p.URL
	}
	return NewDocument(base, p.Body)
}

// FetcherConfig configures an HTTPFetcher.
type FetcherConfig struct {
	// UserAgent is sent with every request, DefaultUserAgent when empty
	UserAgent string
	// Timeout bounds each request, including reading the body
	Timeout time.Duration
	// MaxBodySize caps the bytes read per response; 0 means no cap
	MaxBodySize int
	// Delay and RandomDelay space out requests to the same host
	Delay       time.Duration
	RandomDelay time.Duration
	// RespectRobots enables the robots.txt gate
	RespectRobots bool
	// ParseErrorStatus hands non-2xx pages to the caller instead of failing
	ParseErrorStatus bool
	// TraceTimings records connect and first-byte timings on each Page
	TraceTimings bool
	// Transport replaces the default round tripper (tests use MockTransport)
	Transport http.RoundTripper
}

// HTTPFetcher is the default Fetcher: a plain HTTP client with per-host
// politeness rules, optional robots.txt checks and charset decoding.
type HTTPFetcher struct {
	backend          *httpBackend
	userAgent        string
	maxBodySize      int
	parseErrorStatus bool
	traceTimings     bool
	robots           *robotsGate
}

// NewHTTPFetcher builds an HTTPFetcher. A non-zero delay installs a LimitRule
// covering every host.
func NewHTTPFetcher(cfg FetcherConfig) (*HTTPFetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	backend := &httpBackend{}
	backend.Init(cfg.Timeout, cfg.Transport)

	f := &HTTPFetcher{
		backend:          backend,
		userAgent:        cfg.UserAgent,
		maxBodySize:      cfg.MaxBodySize,
		parseErrorStatus: cfg.ParseErrorStatus,
		traceTimings:     cfg.TraceTimings,
	}
	if cfg.RespectRobots {
		f.robots = newRobotsGate(backend.Client, cfg.UserAgent)
	}
	if cfg.Delay > 0 || cfg.RandomDelay > 0 {
		if err := f.Limit(&LimitRule{
			DomainGlob:  "*",
			Delay:       cfg.Delay,
			RandomDelay: cfg.RandomDelay,
		}); err != nil {
			return nil, eris.Wrap(err, "fetcher: install delay rule")
		}
	}
	return f, nil
}

// Limit adds a LimitRule. Rules are matched in the order they were added.
func (f *HTTPFetcher) Limit(rule *LimitRule) error {
	return f.backend.Limit(rule)
}

// Fetch GETs rawURL. Non-2xx responses yield a *StatusError (alongside the
// page) unless the fetcher was configured with ParseErrorStatus.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	u, err := parseHTTPURL(rawURL)
	if err != nil {
		return nil, err
	}

	if f.robots != nil && !f.robots.Allowed(ctx, u) {
		return nil, eris.Wrapf(ErrRobotsBlocked, "fetch %s", u)
	}

	var trace *HTTPTrace
	if f.traceTimings {
		trace = &HTTPTrace{}
		ctx = trace.WithTrace(ctx)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch %s: build request", u)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "hy,en;q=0.8,ru;q=0.6")

	page, err := f.backend.Do(ctx, req, f.maxBodySize)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch %s", u)
	}
	page.Body = decodeBody(page.Body, page.Header.Get("Content-Type"))
	if trace != nil {
		page.Trace = trace
		zap.L().Debug("fetch timings",
			zap.String("url", page.URL),
			zap.Int("status", page.StatusCode),
			zap.Duration("connect", trace.ConnectDuration),
			zap.Duration("first_byte", trace.FirstByteDuration))
	}

	if !f.parseErrorStatus && (page.StatusCode < 200 || page.StatusCode > 299) {
		return page, &StatusError{URL: page.URL, StatusCode: page.StatusCode}
	}
	return page, nil
}

// parseHTTPURL canonicalizes rawURL with the WHATWG parser and rejects
// anything that is not http(s).
func parseHTTPURL(rawURL string) (*url.URL, error) {
	parsed, err := urlParser.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(ErrMissingURL, "parse %q: %v", rawURL, err)
	}
	u, err := url.Parse(parsed.Href(true))
	if err != nil {
		return nil, eris.Wrapf(ErrMissingURL, "parse %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, eris.Wrapf(ErrMissingURL, "unsupported scheme %q", u.Scheme)
	}
	return u, nil
}

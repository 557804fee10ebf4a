// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// This file includes modifications to code originally developed by Adam Tauber,
// licensed under the Apache License, Version 2.0.
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
	"compress/gzip"
	"context"
	"io"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"
)

type httpBackend struct {
	LimitRules []*LimitRule
	Client     *http.Client
	lock       sync.RWMutex
}

// LimitRule throttles requests to the hosts it matches.
// DomainRegexp and DomainGlob select the hosts; at least one is required.
//   - Parallelism: number of requests allowed in flight to matching hosts
//   - Delay: time a request slot stays taken after its response is read,
//     which spaces out consecutive fetches of a sequential crawl
type LimitRule struct {
	// DomainRegexp is a regular expression to match against hosts
	DomainRegexp string
	// DomainGlob is a glob pattern to match against hosts
	DomainGlob string
	// Delay is the pause after each request to the matching hosts
	Delay time.Duration
	// RandomDelay is the upper bound of extra random pause added to Delay
	RandomDelay time.Duration
	// Parallelism is the number of concurrent requests to matching hosts
	Parallelism    int
	waitChan       chan bool
	compiledRegexp *regexp.Regexp
	compiledGlob   glob.Glob
}

// Init compiles the patterns and sizes the request slots
func (r *LimitRule) Init() error {
	slots := 1
	if r.Parallelism > 1 {
		slots = r.Parallelism
	}
	r.waitChan = make(chan bool, slots)
	if r.DomainRegexp == "" && r.DomainGlob == "" {
		return ErrNoPattern
	}
	if r.DomainRegexp != "" {
		c, err := regexp.Compile(r.DomainRegexp)
		if err != nil {
			return err
		}
		r.compiledRegexp = c
	}
	if r.DomainGlob != "" {
		c, err := glob.Compile(r.DomainGlob)
		if err != nil {
			return err
		}
		r.compiledGlob = c
	}
	return nil
}

// Match checks that the host triggers the rule
func (r *LimitRule) Match(host string) bool {
	if r.compiledRegexp != nil && r.compiledRegexp.MatchString(host) {
		return true
	}
	return r.compiledGlob != nil && r.compiledGlob.Match(host)
}

// acquire takes a request slot, or gives up when ctx is done.
func (r *LimitRule) acquire(ctx context.Context) error {
	select {
	case r.waitChan <- true:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release waits out the polite delay and frees the slot.
func (r *LimitRule) release(ctx context.Context) {
	d := r.Delay
	if r.RandomDelay > 0 {
		d += time.Duration(rand.Int63n(int64(r.RandomDelay)))
	}
	if d > 0 {
		t := time.NewTimer(d)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}
	<-r.waitChan
}

func (h *httpBackend) Init(timeout time.Duration, transport http.RoundTripper) {
	h.Client = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func (h *httpBackend) GetMatchingRule(host string) *LimitRule {
	h.lock.RLock()
	defer h.lock.RUnlock()
	for _, r := range h.LimitRules {
		if r.Match(host) {
			return r
		}
	}
	return nil
}

func (h *httpBackend) Limit(rule *LimitRule) error {
	if err := rule.Init(); err != nil {
		return err
	}
	h.lock.Lock()
	h.LimitRules = append(h.LimitRules, rule)
	h.lock.Unlock()
	return nil
}

// Do performs the request under the matching LimitRule and reads the body,
// at most bodySize bytes when bodySize > 0. Redirects are followed by the
// client; the page records where they ended.
func (h *httpBackend) Do(ctx context.Context, request *http.Request, bodySize int) (*Page, error) {
	if r := h.GetMatchingRule(request.URL.Hostname()); r != nil {
		if err := r.acquire(ctx); err != nil {
			return nil, err
		}
		defer r.release(ctx)
	}

	res, err := h.Client.Do(request.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var bodyReader io.Reader = res.Body
	if bodySize > 0 {
		bodyReader = io.LimitReader(bodyReader, int64(bodySize))
	}
	contentEncoding := strings.ToLower(res.Header.Get("Content-Encoding"))
	if !res.Uncompressed && strings.Contains(contentEncoding, "gzip") {
		gz, err := gzip.NewReader(bodyReader)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		bodyReader = gz
	}
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return nil, err
	}

	finalURL := request.URL.String()
	if res.Request != nil && res.Request.URL != nil {
		finalURL = res.Request.URL.String()
	}
	return &Page{
		URL:        request.URL.String(),
		FinalURL:   finalURL,
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       body,
	}, nil
}

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
	"io"
	"net/http"
	"regexp"
	"sync"
	"time"
)

// MockResponse is a canned response served by MockTransport
type MockResponse struct {
	// StatusCode defaults to 200
	StatusCode int
	// Body is the response body
	Body string
	// Headers are the response headers
	Headers http.Header
	// Delay simulates latency; it honours request cancellation
	Delay time.Duration
	// Error simulates a network failure
	Error error
}

type mockPattern struct {
	pattern  *regexp.Regexp
	response *MockResponse
}

// MockTransport is an http.RoundTripper serving registered responses, so
// fetchers can be tested without a server. URLs nobody registered answer
// 404. Every request URL is recorded in order.
type MockTransport struct {
	mu        sync.RWMutex
	responses map[string]*MockResponse
	patterns  []mockPattern
	requests  []string
}

// NewMockTransport creates an empty MockTransport
func NewMockTransport() *MockTransport {
	return &MockTransport{responses: make(map[string]*MockResponse)}
}

func (m *MockTransport) normalize(response *MockResponse) *MockResponse {
	if response.StatusCode == 0 {
		response.StatusCode = http.StatusOK
	}
	if response.Headers == nil {
		response.Headers = make(http.Header)
	}
	return response
}

// RegisterResponse serves response for exactly url
func (m *MockTransport) RegisterResponse(url string, response *MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[url] = m.normalize(response)
}

// RegisterHTML serves markup as a UTF-8 HTML page for url
func (m *MockTransport) RegisterHTML(url, markup string) {
	headers := make(http.Header)
	headers.Set("Content-Type", "text/html; charset=utf-8")
	m.RegisterResponse(url, &MockResponse{Body: markup, Headers: headers})
}

// RegisterStatus serves an HTML body with the given status for url
func (m *MockTransport) RegisterStatus(url string, status int, markup string) {
	headers := make(http.Header)
	headers.Set("Content-Type", "text/html; charset=utf-8")
	m.RegisterResponse(url, &MockResponse{StatusCode: status, Body: markup, Headers: headers})
}

// RegisterError makes requests to url fail with err
func (m *MockTransport) RegisterError(url string, err error) {
	m.RegisterResponse(url, &MockResponse{Error: err})
}

// RegisterPattern serves response for URLs matching pattern. Exact
// registrations win over patterns; patterns are tried in order.
func (m *MockTransport) RegisterPattern(pattern string, response *MockResponse) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, mockPattern{pattern: re, response: m.normalize(response)})
	return nil
}

// Requests returns the requested URLs in order
func (m *MockTransport) Requests() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount returns how many times url was requested
func (m *MockTransport) RequestCount(url string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.requests {
		if r == url {
			n++
		}
	}
	return n
}

// Reset forgets registrations and recorded requests
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = make(map[string]*MockResponse)
	m.patterns = nil
	m.requests = nil
}

func (m *MockTransport) lookup(url string) (*MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, url)
	if resp, ok := m.responses[url]; ok {
		return resp, true
	}
	for _, p := range m.patterns {
		if p.pattern.MatchString(url) {
			return p.response, true
		}
	}
	return nil, false
}

// RoundTrip implements http.RoundTripper
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mockResp, found := m.lookup(req.URL.String())
	if !found {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBufferString("Not Found")),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	if mockResp.Delay > 0 {
		t := time.NewTimer(mockResp.Delay)
		select {
		case <-t.C:
		case <-req.Context().Done():
			t.Stop()
			return nil, req.Context().Err()
		}
	}
	if mockResp.Error != nil {
		return nil, mockResp.Error
	}

	return &http.Response{
		StatusCode:    mockResp.StatusCode,
		Body:          io.NopCloser(bytes.NewBufferString(mockResp.Body)),
		Header:        mockResp.Headers.Clone(),
		ContentLength: int64(len(mockResp.Body)),
		Request:       req,
	}, nil
}

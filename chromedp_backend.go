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
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// RenderConfig configures a RenderFetcher.
type RenderConfig struct {
	// UserAgent overrides the browser's user agent, DefaultUserAgent when empty
	UserAgent string
	// Timeout bounds one page render
	Timeout time.Duration
	// WaitSelector must be ready before the HTML is captured, "body" when empty
	WaitSelector string
	// SettleDelay gives scripts time to finish after WaitSelector is ready
	SettleDelay time.Duration
	// Delay and RandomDelay space out renders, like FetcherConfig
	Delay       time.Duration
	RandomDelay time.Duration
	// ParseErrorStatus hands non-2xx pages to the caller instead of failing
	ParseErrorStatus bool
}

// RenderFetcher is a Fetcher backed by headless Chrome, for listing pages
// whose company links are filled in by scripts.
type RenderFetcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	cfg         RenderConfig
	rule        *LimitRule
}

// NewRenderFetcher starts a browser allocator. Close releases it.
func NewRenderFetcher(cfg RenderConfig) (*RenderFetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.WaitSelector == "" {
		cfg.WaitSelector = "body"
	}

	rule := &LimitRule{
		DomainGlob:  "*",
		Delay:       cfg.Delay,
		RandomDelay: cfg.RandomDelay,
	}
	if err := rule.Init(); err != nil {
		return nil, eris.Wrap(err, "render: init delay rule")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &RenderFetcher{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		cfg:         cfg,
		rule:        rule,
	}, nil
}

// Close shuts the browser down
func (f *RenderFetcher) Close() {
	if f.allocCancel != nil {
		f.allocCancel()
	}
}

// Fetch renders rawURL in a fresh browser tab and returns the resulting DOM
// serialized as HTML.
func (f *RenderFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	u, err := parseHTTPURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := f.rule.acquire(ctx); err != nil {
		return nil, err
	}
	defer f.rule.release(ctx)

	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.cfg.Timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var (
		mu     sync.Mutex
		status int64
	)
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			mu.Lock()
			if status == 0 {
				status = e.Response.Status
			}
			mu.Unlock()
		}
	})

	var markup, location string
	err = chromedp.Run(tabCtx,
		network.Enable(),
		emulation.SetUserAgentOverride(f.cfg.UserAgent),
		chromedp.Navigate(u.String()),
		chromedp.WaitReady(f.cfg.WaitSelector, chromedp.ByQuery),
		chromedp.Sleep(f.cfg.SettleDelay),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "render %s", u)
	}

	mu.Lock()
	code := int(status)
	mu.Unlock()
	if code == 0 {
		code = 200
	}
	if location == "" {
		location = u.String()
	}

	page := &Page{
		URL:        u.String(),
		FinalURL:   location,
		StatusCode: code,
		Body:       []byte(markup),
	}
	if !f.cfg.ParseErrorStatus && (code < 200 || code > 299) {
		return page, &StatusError{URL: page.URL, StatusCode: code}
	}
	return page, nil
}

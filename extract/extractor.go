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
	"context"
	"regexp"
	"strings"

	"github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/normalize"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Strategy is one attempt at reading a field. ok is false when the page
// does not have the markup or text the strategy looks for.
type Strategy[T any] struct {
	Name string
	Fn   func(doc *yellowsnake.Document) (value T, ok bool)
}

// cascade runs strategies in order and returns the first value found.
func cascade[T any](field string, doc *yellowsnake.Document, strategies []Strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s.Fn(doc); ok {
			zap.L().Debug("extract: field found",
				zap.String("url", doc.URL),
				zap.String("field", field),
				zap.String("strategy", s.Name),
			)
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Extractor reads CompanyRecords from detail pages. It holds no per-page
// state and is safe for concurrent use.
type Extractor struct {
	cfg           Config
	intlPhoneRe   *regexp.Regexp
	nameFields    []Strategy[string]
	directorField []Strategy[string]
	addressField  []Strategy[string]
	phoneField    []Strategy[[]string]
}

// New builds an Extractor. Unset Config fields take DefaultConfig values.
func New(cfg Config) *Extractor {
	e := &Extractor{cfg: cfg.withDefaults()}
	e.intlPhoneRe = internationalPhoneRe(e.cfg.PhoneCountryCode)

	e.nameFields = []Strategy[string]{
		{"title", selectorText(nameSelectors[0])},
		{"company-name", selectorText(nameSelectors[1])},
		{"h1", selectorText(nameSelectors[2])},
	}
	e.directorField = []Strategy[string]{
		{"labelled-pair", e.directorFromPairs},
		{"label-line", e.directorFromLine},
		{"role-suffix", e.directorFromRole},
	}
	e.addressField = []Strategy[string]{
		{"address-block", e.addressFromBlock},
		{"contacts-info", e.addressFromContacts},
		{"labelled-pair", e.addressFromPairs},
		{"label-line", e.addressFromLine},
		{"address-class", e.addressFromClasses},
		{"contact-paragraph", e.addressFromParagraphs},
		{"street-words", e.addressFromStreetWords},
	}
	e.phoneField = []Strategy[[]string]{
		{"phone-items", e.phonesFromItems},
		{"labelled-pair", e.phonesFromPairs},
		{"international", e.phonesInternational},
		{"loose", e.phonesLoose},
	}
	return e
}

// Config returns the effective configuration
func (e *Extractor) Config() Config {
	return e.cfg
}

// IsSelfReferential reports whether rawURL is one of the directory
// operator's own company pages, which are never extracted.
func (e *Extractor) IsSelfReferential(rawURL string) bool {
	return containsAny(strings.ToLower(rawURL), e.cfg.SelfPaths)
}

// Extract fetches sourceURL and extracts it. Self-referential URLs yield
// (nil, nil) without a fetch. When the page cannot be fetched or parsed
// the record is degraded to the source URL and the error is returned with
// it, so callers can keep the row and log the cause.
func (e *Extractor) Extract(ctx context.Context, fetcher yellowsnake.Fetcher, sourceURL string) (*yellowsnake.CompanyRecord, error) {
	if e.IsSelfReferential(sourceURL) {
		return nil, nil
	}
	page, err := fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return yellowsnake.DegradedRecord(sourceURL), eris.Wrapf(err, "extract %s", sourceURL)
	}
	doc, err := page.Document()
	if err != nil {
		return yellowsnake.DegradedRecord(sourceURL), eris.Wrapf(err, "extract %s", sourceURL)
	}
	return e.extract(sourceURL, doc), nil
}

// ExtractDocument extracts an already parsed page, keyed by doc.URL.
// It returns nil for self-referential pages.
func (e *Extractor) ExtractDocument(doc *yellowsnake.Document) *yellowsnake.CompanyRecord {
	return e.extract(doc.URL, doc)
}

func (e *Extractor) extract(sourceURL string, doc *yellowsnake.Document) (rec *yellowsnake.CompanyRecord) {
	if e.IsSelfReferential(sourceURL) {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("extract: page degraded",
				zap.String("url", sourceURL),
				zap.Any("panic", r),
			)
			rec = yellowsnake.DegradedRecord(sourceURL)
		}
	}()

	rec = &yellowsnake.CompanyRecord{SourceURL: sourceURL}
	rec.Name, _ = cascade("name", doc, e.nameFields)
	rec.Director, _ = cascade("director", doc, e.directorField)
	if address, ok := cascade("address", doc, e.addressField); ok {
		rec.Address = address
	} else {
		rec.Address = normalize.DefaultRegion
	}
	rec.Phones, _ = cascade("phones", doc, e.phoneField)
	rec.Website = e.website(doc)
	rec.SocialMedia = e.socialMedia(doc)
	return rec
}

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

// Package extract turns a company detail page into a CompanyRecord.
//
// Every field is read by an ordered cascade of strategies. A strategy
// either produces a non-empty cleaned value or declines, and the first
// value produced wins. Structured markup comes first, text scans after,
// and only the address has a fixed fallback.
package extract

import "strings"

// Config tunes an Extractor for one directory site.
type Config struct {
	// SiteDomain is the directory's own domain, never a company website
	SiteDomain string `mapstructure:"site_domain"`
	// SelfPaths mark the directory operator's own company pages
	SelfPaths []string `mapstructure:"self_paths"`
	// SelfHandles mark the operator's own social accounts
	SelfHandles []string `mapstructure:"self_handles"`
	// SocialFragments identify social network links
	SocialFragments []string `mapstructure:"social_fragments"`
	// FalsePositiveLabels are category labels that show up in front of
	// director names; only the text after one is kept
	FalsePositiveLabels []string `mapstructure:"false_positive_labels"`
	// PhoneRegion is the default region for phone plausibility checks
	PhoneRegion string `mapstructure:"phone_region"`
	// PhoneCountryCode drives the international phone pattern
	PhoneCountryCode string `mapstructure:"phone_country_code"`
	// MaxPhones caps the phones kept per company
	MaxPhones int `mapstructure:"max_phones"`
}

// DefaultConfig returns the settings for spyur.am.
func DefaultConfig() Config {
	return Config{
		SiteDomain:          "spyur.am",
		SelfPaths:           []string{"spyur-information-system", "spyur-information-center"},
		SelfHandles:         []string{"spyur", "spyurinformationsystem", "spyur-information-center"},
		SocialFragments:     []string{"facebook", "instagram", "linkedin", "twitter", "youtube"},
		FalsePositiveLabels: []string{"ԱՆՇԱՐԺ ԳՈՒՅՔԻ ԳՈՐԾԱԿԱԼՈՒԹՅՈՒՆ"},
		PhoneRegion:         "AM",
		PhoneCountryCode:    "374",
		MaxPhones:           3,
	}
}

// withDefaults fills unset fields from DefaultConfig. Lists are replaced
// only when nil, so an explicitly empty list stays empty.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SiteDomain == "" {
		c.SiteDomain = d.SiteDomain
	}
	if c.SelfPaths == nil {
		c.SelfPaths = d.SelfPaths
	}
	if c.SelfHandles == nil {
		c.SelfHandles = d.SelfHandles
	}
	if c.SocialFragments == nil {
		c.SocialFragments = d.SocialFragments
	}
	if c.FalsePositiveLabels == nil {
		c.FalsePositiveLabels = d.FalsePositiveLabels
	}
	if c.PhoneRegion == "" {
		c.PhoneRegion = d.PhoneRegion
	}
	if c.PhoneCountryCode == "" {
		c.PhoneCountryCode = d.PhoneCountryCode
	}
	if c.MaxPhones <= 0 {
		c.MaxPhones = d.MaxPhones
	}
	c.SiteDomain = strings.ToLower(c.SiteDomain)
	c.SelfPaths = lowerAll(c.SelfPaths)
	c.SelfHandles = lowerAll(c.SelfHandles)
	c.SocialFragments = lowerAll(c.SocialFragments)
	return c
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

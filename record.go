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

import "strings"

// ListSeparator joins multi-valued fields when a record is flattened.
const ListSeparator = ", "

// CSVHeader is the column order of a flattened CompanyRecord.
var CSVHeader = []string{"name", "director", "address", "phones", "website", "social_media", "category", "source_url"}

// CompanyRecord is one company extracted from a detail page.
// SourceURL is always set; every other field may be empty when the page
// did not yield it.
type CompanyRecord struct {
	Name        string   `json:"name"`
	Director    string   `json:"director"`
	Address     string   `json:"address"`
	Phones      []string `json:"phones"`
	Website     string   `json:"website"`
	SocialMedia []string `json:"socialMedia"`
	Category    string   `json:"category"`
	SourceURL   string   `json:"sourceUrl"`
}

// DegradedRecord is the record kept for a page that could not be fetched or
// parsed.
func DegradedRecord(sourceURL string) *CompanyRecord {
	return &CompanyRecord{SourceURL: sourceURL}
}

// IsEmpty reports whether nothing beyond the source URL and category was
// extracted.
func (r *CompanyRecord) IsEmpty() bool {
	return r.Name == "" && r.Director == "" && r.Address == "" &&
		len(r.Phones) == 0 && r.Website == "" && len(r.SocialMedia) == 0
}

// PhonesString joins the phones with ListSeparator
func (r *CompanyRecord) PhonesString() string {
	return strings.Join(r.Phones, ListSeparator)
}

// SocialMediaString joins the social links with ListSeparator
func (r *CompanyRecord) SocialMediaString() string {
	return strings.Join(r.SocialMedia, ListSeparator)
}

// Row flattens the record in CSVHeader order.
func (r *CompanyRecord) Row() []string {
	return []string{
		r.Name,
		r.Director,
		r.Address,
		r.PhonesString(),
		r.Website,
		r.SocialMediaString(),
		r.Category,
		r.SourceURL,
	}
}

// SplitList is the inverse of the list joining done by Row.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ListSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

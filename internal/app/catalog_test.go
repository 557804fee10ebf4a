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

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Category{
		{Name: "real_estate", URL: "https://www.spyur.am/am/yellow_pages/?yp_cat2=l2.3.5"},
		{Name: "retail_premises", URL: "https://www.spyur.am/am/yellow_pages/?yp_cat2=l2.3.6"},
	})
	require.NoError(t, err)
	return c
}

func TestNewCatalogRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []Category
	}{
		{"empty", nil},
		{"blank name", []Category{{Name: " ", URL: "https://example.test/"}}},
		{"blank url", []Category{{Name: "x"}}},
		{"duplicate", []Category{{Name: "x", URL: "https://a.test/"}, {Name: "x", URL: "https://b.test/"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	entries := []Category{{Name: "real_estate", URL: "https://a.test/"}}
	c, err := NewCatalog(entries)
	require.NoError(t, err)

	entries[0].URL = "https://changed.test/"
	got, ok := c.Lookup("real_estate")
	require.True(t, ok)
	assert.Equal(t, "https://a.test/", got.URL)

	out := c.Entries()
	out[0].Name = "changed"
	assert.Equal(t, []string{"real_estate"}, c.Names())
}

func TestCatalogResolve(t *testing.T) {
	c := testCatalog(t)
	tests := []struct {
		name     string
		arg      string
		expected Category
		err      error
	}{
		{"empty uses the default", "", c.Default(), nil},
		{"blank uses the default", "   ", c.Default(), nil},
		{"known name", "retail_premises", Category{Name: "retail_premises", URL: "https://www.spyur.am/am/yellow_pages/?yp_cat2=l2.3.6"}, nil},
		{"custom url", "https://www.spyur.am/am/yellow_pages/?x=1", Category{Name: CustomURLCategory, URL: "https://www.spyur.am/am/yellow_pages/?x=1"}, nil},
		{"plain http url", "http://directory.test/list", Category{Name: CustomURLCategory, URL: "http://directory.test/list"}, nil},
		{"unknown", "bakeries", Category{}, ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Resolve(tt.arg)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCatalogOrder(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{"real_estate", "retail_premises"}, c.Names())
	assert.Equal(t, "real_estate", c.Default().Name)
	_, ok := c.Lookup("missing")
	assert.False(t, ok)
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"real_estate", "Real Estate"},
		{"custom_url", "Custom Url"},
		{"ԱՌԵՎՏՐԱՅԻՆ ԳՈՐԾԱՐՔՆԵՐ", "Առեվտրային Գործարքներ"},
		{"already Title", "Already Title"},
		{"car__rental", "Car Rental"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Humanize(tt.in))
		})
	}
}

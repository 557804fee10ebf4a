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
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CustomURLCategory labels records crawled from a listing URL that is not
// in the catalog.
const CustomURLCategory = "custom_url"

// ErrUnknownCategory is returned for a category name not in the catalog
var ErrUnknownCategory = errors.New("unknown category")

// Category is one catalog entry: a label and its listing URL.
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Catalog is the immutable, ordered category table. The first entry is the
// default category.
type Catalog struct {
	entries []Category
	index   map[string]int
}

// NewCatalog copies entries into a Catalog. Names must be unique and every
// entry needs a URL.
func NewCatalog(entries []Category) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, eris.New("catalog: no categories")
	}
	c := &Catalog{
		entries: make([]Category, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.URL = strings.TrimSpace(e.URL)
		if e.Name == "" || e.URL == "" {
			return nil, eris.Errorf("catalog: entry %d needs a name and a url", i)
		}
		if _, dup := c.index[e.Name]; dup {
			return nil, eris.Errorf("catalog: duplicate category %q", e.Name)
		}
		c.entries[i] = e
		c.index[e.Name] = i
	}
	return c, nil
}

// Lookup returns the entry called name
func (c *Catalog) Lookup(name string) (Category, bool) {
	i, ok := c.index[name]
	if !ok {
		return Category{}, false
	}
	return c.entries[i], true
}

// Entries returns a copy of the entries in order
func (c *Catalog) Entries() []Category {
	out := make([]Category, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns the category names in order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Default returns the first entry
func (c *Catalog) Default() Category {
	return c.entries[0]
}

// Resolve maps a run argument to a category. An empty argument selects the
// default entry; an argument starting with "http" is a custom listing URL.
func (c *Catalog) Resolve(categoryOrURL string) (Category, error) {
	arg := strings.TrimSpace(categoryOrURL)
	if arg == "" {
		return c.Default(), nil
	}
	if cat, ok := c.Lookup(arg); ok {
		return cat, nil
	}
	if strings.HasPrefix(arg, "http") {
		return Category{Name: CustomURLCategory, URL: arg}, nil
	}
	return Category{}, eris.Wrapf(ErrUnknownCategory, "category %q", arg)
}

// Humanize turns a category name into a display label: underscores become
// spaces and each word is title cased.
func Humanize(name string) string {
	words := strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")
	return cases.Title(language.Und).String(words)
}

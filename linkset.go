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

import "github.com/cespare/xxhash/v2"

// LinkSet is an insertion-ordered set of URLs. It belongs to one crawl
// invocation and is not safe for concurrent use.
type LinkSet struct {
	seen  map[uint64]struct{}
	links []string
}

// NewLinkSet creates an empty LinkSet
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[uint64]struct{})}
}

// Add appends link unless it is already present. Returns true if added.
func (s *LinkSet) Add(link string) bool {
	key := xxhash.Sum64String(link)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.links = append(s.links, link)
	return true
}

// Contains reports whether link was added
func (s *LinkSet) Contains(link string) bool {
	_, ok := s.seen[xxhash.Sum64String(link)]
	return ok
}

// Len returns the number of links
func (s *LinkSet) Len() int {
	return len(s.links)
}

// Slice returns the links in insertion order
func (s *LinkSet) Slice() []string {
	out := make([]string, len(s.links))
	copy(out, s.links)
	return out
}

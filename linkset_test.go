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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkSet(t *testing.T) {
	s := NewLinkSet()

	assert.True(t, s.Add("http://directory.test/am/companies/b/"))
	assert.True(t, s.Add("http://directory.test/am/companies/a/"))
	assert.False(t, s.Add("http://directory.test/am/companies/b/"), "duplicates are rejected")
	assert.True(t, s.Add("http://directory.test/am/companies/c/"))

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("http://directory.test/am/companies/a/"))
	assert.False(t, s.Contains("http://directory.test/am/companies/z/"))
	assert.Equal(t, []string{
		"http://directory.test/am/companies/b/",
		"http://directory.test/am/companies/a/",
		"http://directory.test/am/companies/c/",
	}, s.Slice(), "insertion order is kept")
}

func TestLinkSetSliceIsACopy(t *testing.T) {
	s := NewLinkSet()
	s.Add("x")
	links := s.Slice()
	links[0] = "y"
	assert.Equal(t, []string{"x"}, s.Slice())
}

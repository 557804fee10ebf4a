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

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectorName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "label, comma clause and legal form",
			input:    "Ղեկավար Վարդան Պետրոսյան, ՍՊԸ",
			expected: "Վարդան Պետրոսյան",
		},
		{
			name:     "label with colon",
			input:    "Ղեկավար: Անի Սարգսյան",
			expected: "Անի Սարգսյան",
		},
		{
			name:     "english title cuts the tail",
			input:    "John Smith director of sales",
			expected: "John Smith",
		},
		{
			name:     "title keyword is case insensitive",
			input:    "Jane Doe, CEO",
			expected: "Jane Doe",
		},
		{
			name:     "armenian title keyword",
			input:    "Արամ Հակոբյան տնօրեն",
			expected: "Արամ Հակոբյան",
		},
		{
			name:     "legal form in the middle",
			input:    "ՓԲԸ Գագիկ Մելքոնյան",
			expected: "Գագիկ Մելքոնյան",
		},
		{
			name:     "real estate agency label",
			input:    "ԱՆՇԱՐԺ ԳՈՒՅՔԻ ԳՈՐԾԱԿԱԼՈՒԹՅՈՒՆ Սուրեն Ավետիսյան",
			expected: "Սուրեն Ավետիսյան",
		},
		{
			name:     "leading workplace nouns",
			input:    "գրասենյակ կենտրոն Լիլիթ Գրիգորյան",
			expected: "Լիլիթ Գրիգորյան",
		},
		{
			name:     "long prose keeps the trailing name",
			input:    "Մեր նպատակն է մատուցել լավագույն սպասարկումը Երևանում Կարեն Մանուկյան",
			expected: "սպասարկումը Երևանում Կարեն Մանուկյան",
		},
		{
			name:     "trailing punctuation",
			input:    "Նարեկ Վարդանյան -;",
			expected: "Նարեկ Վարդանյան",
		},
		{
			name:     "whitespace and line breaks collapse",
			input:    "  Նարեկ\n\t  Վարդանյան  ",
			expected: "Նարեկ Վարդանյան",
		},
		{
			name:     "non-breaking spaces",
			input:    "Ղեկավար\u00a0Նարեկ\u00a0Վարդանյան",
			expected: "Նարեկ Վարդանյան",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DirectorName(tt.input))
		})
	}
}

func TestDirectorNameIdempotent(t *testing.T) {
	inputs := []string{
		"Ղեկավար Վարդան Պետրոսյան, ՍՊԸ",
		"գրասենյակ կենտրոն գլխամաս Լիլիթ Գրիգորյան",
		"Մեր նպատակն է մատուցել լավագույն սպասարկումը Երևանում Կարեն Մանուկյան",
		"Նարեկ Վարդանյան --",
		"John Smith - manager",
		"ԱՆՇԱՐԺ ԳՈՒՅՔԻ ԳՈՐԾԱԿԱԼՈՒԹՅՈՒՆ ՍՊԸ",
		"   ",
	}

	for _, in := range inputs {
		once := DirectorName(in)
		assert.Equal(t, once, DirectorName(once), "input %q", in)
	}
}

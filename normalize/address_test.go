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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean address is kept",
			input:    "Հայաստան, Երևան, Կոմիտասի պող., 5",
			expected: "Հայաստան, Երևան, Կոմիտասի պող., 5",
		},
		{
			name:     "region prefix when no marker",
			input:    "Կոմիտասի պող., 5",
			expected: "Հայաստան, Երևան, Կոմիտասի պող., 5",
		},
		{
			name:     "empty yields default region",
			input:    "",
			expected: DefaultRegion,
		},
		{
			name:     "duplicate commas",
			input:    "Երևան,, Կենտրոն",
			expected: "Երևան, Կենտրոն",
		},
		{
			name:     "phone number removed, house number kept",
			input:    "Երևան, Աբովյան 12 +374-10-123456",
			expected: "Երևան, Աբովյան 12",
		},
		{
			name:     "house numbers survive phone removal",
			input:    "Երևան, Տիգրան Մեծի 12 - 14",
			expected: "Երևան, Տիգրան Մեծի 12 - 14",
		},
		{
			name:     "working hours with weekdays",
			input:    "Երևան, Սայաթ-Նովա 10 Երկ Երք Չրք Հնգ Ուրբ 09:00-18:00",
			expected: "Երևան, Սայաթ-Նովա 10",
		},
		{
			name:     "bare time range",
			input:    "Երևան, Մաշտոցի 3, 10.00 - 19.00",
			expected: "Երևան, Մաշտոցի 3",
		},
		{
			name:     "email and urls",
			input:    "Երևան, Նալբանդյան 7 info@example.am www.example.am https://example.am/contact",
			expected: "Երևան, Նալբանդյան 7",
		},
		{
			name:     "phone label tail dropped",
			input:    "Երևան, Պուշկինի 4 հեռ. 010 52 52 52",
			expected: "Երևան, Պուշկինի 4",
		},
		{
			name:     "website label tail is case insensitive",
			input:    "Երևան, Պուշկինի 4 Կայք example",
			expected: "Երևան, Պուշկինի 4",
		},
		{
			name:     "business address label",
			input:    "Գործունեության հասցե Երևան, Արշակունյաց 2",
			expected: "Երևան, Արշակունյաց 2",
		},
		{
			name:     "slash building spacing",
			input:    "Երևան, Բաբայան 8/3շենք",
			expected: "Երևան, Բաբայան 8/3 շենք",
		},
		{
			name:     "ordinal floor suffix",
			input:    "Երևան, Բաղրամյան 1, 3րդ հարկ",
			expected: "Երևան, Բաղրամյան 1, 3-րդ հարկ",
		},
		{
			name:     "floor suffix already hyphenated",
			input:    "Երևան, Բաղրամյան 1, 2-ին հարկ",
			expected: "Երևան, Բաղրամյան 1, 2-ին հարկ",
		},
		{
			name:     "city glued to postal code",
			input:    "Հայաստան, Երևան0010, Հանրապետության 1",
			expected: "Հայաստան, Երևան 0010, Հանրապետության 1",
		},
		{
			name:     "genitive city form is left alone",
			input:    "Երևանի կենտրոն",
			expected: "Երևանի կենտրոն",
		},
		{
			name:     "line breaks collapse",
			input:    "Հայաստան,\n\tԵրևան,\r\n  Աբովյան 1",
			expected: "Հայաստան, Երևան, Աբովյան 1",
		},
		{
			name:     "nationwide boilerplate",
			input:    "Ապրանք-ծառայություններ` Հայաստանում",
			expected: DefaultRegion,
		},
		{
			name:     "leading and trailing commas",
			input:    ", Երևան, Աբովյան 1 ,",
			expected: "Երևան, Աբովյան 1",
		},
		{
			name:     "only a phone number",
			input:    "+374 10 123456",
			expected: DefaultRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Address(tt.input))
		})
	}
}

func TestAddressNeverEmpty(t *testing.T) {
	for _, in := range []string{"", " ", ",,,", "info@example.am", "09:00-18:00"} {
		assert.NotEmpty(t, Address(in), "input %q", in)
	}
}

func TestAddressAlwaysCarriesRegion(t *testing.T) {
	for _, in := range []string{"Աբովյան 1", "something else", "12"} {
		out := Address(in)
		assert.True(t, strings.Contains(out, CountryMarker) || strings.Contains(out, CityMarker), out)
	}
}

func TestAddressIdempotent(t *testing.T) {
	inputs := []string{
		"Երևան,, Կենտրոն",
		"Կոմիտասի պող., 5",
		"Երևան, Աբովյան 12 info@example.am 34567",
		"12 info@example.am 345678",
		"Երևան, Սայաթ-Նովա 10 Երկ Երք Չրք Հնգ Ուրբ 09:00-18:00",
		"Հայաստան, Երևան0010, Հանրապետության 1 --",
		"Երևան, Բաբայան 8/3շենք, 3րդ հարկ",
		"Ապրանք-ծառայություններ` Հայաստանում",
		"",
	}

	for _, in := range inputs {
		once := Address(in)
		assert.Equal(t, once, Address(once), "input %q", in)
	}
}

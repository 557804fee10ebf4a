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
	"regexp"
	"strings"
)

// Region markers. An address mentioning neither gets DefaultRegion
// prepended.
const (
	CountryMarker = "Հայաստան"
	CityMarker    = "Երևան"
)

// DefaultRegion is the address used when nothing better is known.
const DefaultRegion = CountryMarker + ", " + CityMarker

// nationwideBoilerplate ("products and services in Armenia") shows up in
// address slots of some pages and carries no address.
const nationwideBoilerplate = "Ապրանք-ծառայություններ` Հայաստանում"

// minPhoneDigits separates phone numbers from house numbers, postal codes
// and whitespace runs that happen to match the phone character class.
const minPhoneDigits = 6

var weekdays = []string{"Երկ", "Երք", "Չրք", "Հնգ", "Ուրբ", "Շբթ", "Կիր"}

// Labels that start a non-address tail. The tail is dropped to the end of
// the string.
var trailingClauseLabels = []string{
	`աշխատանքային ժամեր`,
	`հեռ\.`,
	`հեռախոս`,
	`տել\.`,
	`բջջ\.`,
	`էլ\.`,
	`կայք`,
}

var (
	phoneRunRe  = regexp.MustCompile(`[+\d()\-\s]{7,}`)
	intlPhoneRe = regexp.MustCompile(`\+374[\s\-]?\(?\d{2,3}\)?[\s\-]?\d{2,3}[\s\-]?\d{2,3}(?:[\s\-]?\d{2,3})?`)

	weekdayHoursRe = regexp.MustCompile(alternation(weekdays) + `(?:[\s,\-–]+` + alternation(weekdays) + `)*\s*\d{1,2}[:.]\d{2}\s*[-–]\s*\d{1,2}[:.]\d{2}`)
	timeRangeRe    = regexp.MustCompile(`\b\d{1,2}[:.]\d{2}\s*[-–]\s*\d{1,2}[:.]\d{2}\b`)

	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
	urlRe   = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)

	trailingClauseRe = regexp.MustCompile(`(?is)(?:` + strings.Join(trailingClauseLabels, `|`) + `).*$`)
	inlineLabelRe    = regexp.MustCompile("(?i)գրասենյակ[`՝]|\\(բջջ\\.\\)|գործունեության հասցե")

	slashBuildingRe  = regexp.MustCompile(`(\d+)/(\d+)\s*շենք`)
	slashWordRe      = regexp.MustCompile(`/շենք`)
	digitBuildingRe  = regexp.MustCompile(`(\d+)շենք`)
	gluedBuildingRe  = regexp.MustCompile(`([^\d\s])շենք`)
	ordinalFloorRe   = regexp.MustCompile(`(\d+)(րդ|ին) հարկ`)
	doubleHyphenRe   = regexp.MustCompile(`-{2,}(րդ|ին) հարկ`)
	lineBreakRe      = regexp.MustCompile(`[\n\t\r]+`)
	// only digits and symbols are split off, so inflected forms survive
	gluedCityRe      = regexp.MustCompile(`(` + CityMarker + `)([^\s\p{L}\p{P}])`)
	commaRunRe       = regexp.MustCompile(`\s*,(?:\s*,)*\s*`)
	duplicateCommaRe = regexp.MustCompile(`,\s*,`)
)

// Address canonicalizes a raw address fragment. The result is never empty:
// unresolvable input yields DefaultRegion, and an address without a region
// marker is prefixed with it.
func Address(raw string) string {
	return untilStable(raw, addressPass)
}

func addressPass(s string) string {
	s = foldSpaces(s)

	// phone numbers
	s = phoneRunRe.ReplaceAllStringFunc(s, stripPhones)
	s = intlPhoneRe.ReplaceAllString(s, " ")

	// working hours
	s = weekdayHoursRe.ReplaceAllString(s, " ")
	s = timeRangeRe.ReplaceAllString(s, " ")

	// contact noise
	s = emailRe.ReplaceAllString(s, " ")
	s = urlRe.ReplaceAllString(s, " ")
	s = trailingClauseRe.ReplaceAllString(s, "")
	s = inlineLabelRe.ReplaceAllString(s, " ")

	// building and floor spelling
	s = slashBuildingRe.ReplaceAllString(s, "${1}/${2} շենք")
	s = slashWordRe.ReplaceAllString(s, " շենք")
	s = digitBuildingRe.ReplaceAllString(s, "${1} շենք")
	s = gluedBuildingRe.ReplaceAllString(s, "${1} շենք")
	s = ordinalFloorRe.ReplaceAllString(s, "${1}-${2} հարկ")
	s = doubleHyphenRe.ReplaceAllString(s, "-${1} հարկ")

	s = lineBreakRe.ReplaceAllString(s, " ")
	s = gluedCityRe.ReplaceAllString(s, "${1} ${2}")

	s = whitespaceRe.ReplaceAllString(s, " ")
	s = commaRunRe.ReplaceAllString(s, ", ")
	s = strings.Trim(s, " ,")
	if strings.Contains(s, nationwideBoilerplate) {
		return DefaultRegion
	}

	if s == "" {
		return DefaultRegion
	}
	if !strings.Contains(s, CountryMarker) && !strings.Contains(s, CityMarker) {
		s = DefaultRegion + ", " + s
	}

	s = trailingPunctRe.ReplaceAllString(s, "")
	s = duplicateCommaRe.ReplaceAllString(s, ",")
	return strings.TrimSpace(s)
}

// stripPhones blanks the phone numbers inside one run of phone-class
// characters. A '+' starts a new number, so a house number followed by an
// international number keeps the house number.
func stripPhones(run string) string {
	var b strings.Builder
	start := 0
	flush := func(part string) {
		if countDigits(part) >= minPhoneDigits {
			b.WriteByte(' ')
			return
		}
		b.WriteString(part)
	}
	for i := 1; i < len(run); i++ {
		if run[i] == '+' {
			flush(run[start:i])
			start = i
		}
	}
	flush(run[start:])
	return b.String()
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

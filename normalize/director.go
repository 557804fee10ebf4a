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
	"unicode/utf8"
)

// DirectorLabel is the Armenian "Manager" label that prefixes director
// values on detail pages.
const DirectorLabel = "Ղեկավար"

// maxPlainNameLength is the length above which a director value is assumed
// to carry prose around the actual name.
const maxPlainNameLength = 40

// TitleKeywords are role words. Everything from the first one to the end of
// the value is dropped.
var TitleKeywords = []string{
	"director", "manager", "head", "ceo", "president", "owner", "founder",
	"բաժնի ղեկավար", "տնօրեն", "ղեկավար", "նախագահ", "հիմնադիր", "մենեջեր",
}

// LegalForms are company legal-form labels that leak into director values.
var LegalForms = []string{
	"ԱՆՇԱՐԺ ԳՈՒՅՔԻ ԳՈՐԾԱԿԱԼՈՒԹՅՈՒՆ",
	"սահմանափակ պատասխանատվությամբ ընկերություն",
	"ՍՊԸ", "ՓԲԸ", "ԲԲԸ",
	"գործակալություն",
	"ընկերություն",
}

// workplaceNouns ("center", "headquarters", "office") sometimes lead the
// value ahead of the person's name.
var workplaceNouns = []string{"կենտրոն", "գլխամաս", "գրասենյակ"}

var (
	directorLabelRe = regexp.MustCompile(`^\s*` + DirectorLabel + `\s*:?\s*`)
	titleRe         = regexp.MustCompile(`(?is)` + alternation(TitleKeywords) + `.*$`)
	legalFormRe     = regexp.MustCompile(`(?i)` + alternation(LegalForms) + `\s*`)
	leadingNounRe   = regexp.MustCompile(`(?i)^(?:` + alternation(workplaceNouns) + `\s+)+`)

	// Go's \b is ASCII-only, so word ends are spelled out.
	surnameSuffixRe = regexp.MustCompile(`(?:յանց|յան|ունի)(?:$|[^\p{L}])`)
	personNameRe    = regexp.MustCompile(`(?:^|[^\x{0531}-\x{0587}])([\x{0531}-\x{0587}]+(?:\s+[\x{0531}-\x{0587}]+){1,3})\s*$`)
)

// DirectorName reduces a raw director value to the person's name.
//
// The steps run in order, each on the previous one's output: drop the
// leading label, cut at the first role keyword, cut at the first comma,
// drop legal-form labels, pull the trailing Armenian name out of long
// prose, drop leading workplace nouns, trim punctuation and whitespace.
func DirectorName(raw string) string {
	return untilStable(raw, directorPass)
}

func directorPass(s string) string {
	s = foldSpaces(s)
	s = directorLabelRe.ReplaceAllString(s, "")
	s = titleRe.ReplaceAllString(s, "")
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	s = legalFormRe.ReplaceAllString(s, "")

	if utf8.RuneCountInString(strings.TrimSpace(s)) > maxPlainNameLength && surnameSuffixRe.MatchString(s) {
		if m := personNameRe.FindStringSubmatch(s); m != nil {
			s = m[1]
		}
	}

	s = leadingNounRe.ReplaceAllString(strings.TrimSpace(s), "")
	s = trailingPunctRe.ReplaceAllString(s, "")
	return collapse(s)
}

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

package extract

import (
	"regexp"

	"github.com/andybalholm/cascadia"
)

// maxFragmentLength bounds text scanned as a single address or director
// fragment; longer elements are page sections, not values.
const maxFragmentLength = 200

// minPhoneLength is the shortest cleaned phone kept, maxPhoneLength the
// longest the loose scan accepts.
const (
	minPhoneLength = 8
	maxPhoneLength = 15
)

var (
	nameSelectors = []cascadia.Selector{
		cascadia.MustCompile(".company-title"),
		cascadia.MustCompile(".company-name"),
		cascadia.MustCompile("h1"),
	}

	// pairContainers hold one label and one value each
	pairContainers = cascadia.MustCompile(".company-info .info-line, .company-info-row, " +
		".company-details .info-line, .company-data tr, .contact-info .info-item")
	pairLabel = cascadia.MustCompile(".info-label, th, dt")
	pairValue = cascadia.MustCompile(".info-value, td, dd")

	textElements = cascadia.MustCompile("p, div, span")
	anchors      = cascadia.MustCompile("a[href]")

	addressBlock      = cascadia.MustCompile(".address_block, .branch_block .address_block")
	contactsInfo      = cascadia.MustCompile(".contacts_info")
	addressClasses    = cascadia.MustCompile(".address-block, .contact-address, .company-address")
	contactParagraphs = cascadia.MustCompile(".contact-info p, .company-info p, .address p, .location p, div.branch_block div")
	divs              = cascadia.MustCompile("div")
	phoneItems        = cascadia.MustCompile(".company-phones .phone-item")
)

// definitionPairs pairs every <dt> with the <dd> right after it.
const definitionTerms = "//dl/dt"
const definitionValue = "following-sibling::dd[1]"

var (
	directorLabels = []string{"ղեկավար", "տնօրեն", "director", "manager", "head"}
	addressLabels  = []string{"հասցե", "գտնվելու վայր", "գրասենյակ", "address", "location", "office"}
	phoneLabels    = []string{"հեռ", "տել", "բջջ", "phone", "tel"}

	// regionMarkers must appear in contact-block address candidates
	regionMarkers = []string{"Հայաստան", "Երևան"}
	// streetMarkers flag a generic div as address-like
	streetMarkers = []string{"Երևան", "փողոց", "պողոտա", "հասցե"}
	// notAddress are phrases of directory boilerplate near contact blocks
	notAddress = []string{"ավելացնել", "գործունեության տեսակներ", "ապրանք-ծառայություններ"}
)

func isAddressLabel(label string) bool {
	return containsAny(label, addressLabels)
}

// isDirectorLabel rejects labels that also name a place, such as
// "Head office".
func isDirectorLabel(label string) bool {
	return containsAny(label, directorLabels) && !isAddressLabel(label)
}

var (
	directorLineRe = regexp.MustCompile(`(?m)Ղեկավար[:\s]+(.+)$`)

	// "Name, director" and "Name - director", tried in this order
	directorRoleRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([A-Za-z\x{0531}-\x{0587}\s]+),?\s+(?:director|manager|head|տնօրեն)`),
		regexp.MustCompile(`(?i)([A-Za-z\x{0531}-\x{0587}\s]+)\s+-\s+(?:director|manager|head|տնօրեն)`),
	}

	// label-prefixed address lines: office, business address, address, location
	addressLineRes = []*regexp.Regexp{
		regexp.MustCompile(`(?m)Գրասենյակ\s*:\s*(.+)$`),
		regexp.MustCompile(`(?m)Գործունեության հասցե\s*:\s*(.+)$`),
		regexp.MustCompile(`(?m)Հասցե\s*:\s*(.+)$`),
		regexp.MustCompile(`(?m)Գտնվելու վայրը\s*:\s*(.+)$`),
	}

	// phone separators never cross a line
	phoneValueRe = regexp.MustCompile(`\+?[\d \t()\-]{7,20}`)
	loosePhoneRe = regexp.MustCompile(`\+\d{1,3}[\d \t()\-]{6,18}`)
	phoneJunkRe  = regexp.MustCompile(`[^\d+]`)
)

// internationalPhoneRe matches numbers written with the country code, such
// as "+374-10-123456" or "+374 (91) 12 34 56".
func internationalPhoneRe(countryCode string) *regexp.Regexp {
	return regexp.MustCompile(`\+` + regexp.QuoteMeta(countryCode) +
		`[ \t\-]?\(?\d{2,3}\)?(?:[ \t\-]?\d{2,3}){2,3}`)
}

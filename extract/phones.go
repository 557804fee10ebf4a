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
	"github.com/PuerkitoBio/goquery"
	"github.com/agentberlin/yellowsnake"
	"github.com/nyaruka/phonenumbers"
)

// phoneList accumulates cleaned phones, dropping duplicates and anything
// too short, up to a cap.
type phoneList struct {
	limit  int
	seen   map[string]struct{}
	phones []string
}

func newPhoneList(limit int) *phoneList {
	return &phoneList{limit: limit, seen: make(map[string]struct{})}
}

func (l *phoneList) full() bool {
	return len(l.phones) >= l.limit
}

// add cleans raw and keeps it if valid. keep, when set, has the last word.
func (l *phoneList) add(raw string, keep func(clean string) bool) {
	if l.full() {
		return
	}
	clean := phoneJunkRe.ReplaceAllString(raw, "")
	if len(clean) < minPhoneLength {
		return
	}
	if keep != nil && !keep(clean) {
		return
	}
	if _, dup := l.seen[clean]; dup {
		return
	}
	l.seen[clean] = struct{}{}
	l.phones = append(l.phones, clean)
}

func (l *phoneList) result() ([]string, bool) {
	return l.phones, len(l.phones) > 0
}

func (e *Extractor) phonesFromItems(doc *yellowsnake.Document) ([]string, bool) {
	list := newPhoneList(e.cfg.MaxPhones)
	doc.FindMatcher(phoneItems).Each(func(_ int, s *goquery.Selection) {
		list.add(s.Text(), nil)
	})
	return list.result()
}

func (e *Extractor) phonesFromPairs(doc *yellowsnake.Document) ([]string, bool) {
	list := newPhoneList(e.cfg.MaxPhones)
	for _, p := range labelled(doc) {
		if !containsAny(lower(p.label), phoneLabels) {
			continue
		}
		for _, m := range phoneValueRe.FindAllString(p.value, -1) {
			list.add(m, nil)
		}
	}
	return list.result()
}

func (e *Extractor) phonesInternational(doc *yellowsnake.Document) ([]string, bool) {
	list := newPhoneList(e.cfg.MaxPhones)
	for _, m := range e.intlPhoneRe.FindAllString(doc.PageText(), -1) {
		list.add(m, nil)
	}
	return list.result()
}

// phonesLoose takes any "+"-prefixed digit run that could be a phone
// number at all.
func (e *Extractor) phonesLoose(doc *yellowsnake.Document) ([]string, bool) {
	list := newPhoneList(e.cfg.MaxPhones)
	for _, m := range loosePhoneRe.FindAllString(doc.PageText(), -1) {
		list.add(m, e.possiblePhone)
	}
	return list.result()
}

func (e *Extractor) possiblePhone(clean string) bool {
	if len(clean) > maxPhoneLength {
		return false
	}
	num, err := phonenumbers.Parse(clean, e.cfg.PhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

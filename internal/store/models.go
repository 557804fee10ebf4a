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

package store

import (
	yellowsnake "github.com/agentberlin/yellowsnake"
)

// Run states
const (
	RunStateRunning   = "running"
	RunStateCompleted = "completed"
	RunStateFailed    = "failed"
)

// Run is one scrape of one category listing.
type Run struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Category     string    `gorm:"index;not null" json:"category"`
	ListingURL   string    `gorm:"type:text;not null" json:"listingUrl"`
	MaxPages     int       `json:"maxPages"`
	MaxCompanies int       `json:"maxCompanies"`
	State        string    `gorm:"default:'running'" json:"state"`
	Error        string    `gorm:"type:text" json:"error,omitempty"`
	PagesVisited int       `json:"pagesVisited"`
	LinksFound   int       `json:"linksFound"`
	CompanyCount int       `json:"companyCount"`
	StartedAt    int64     `gorm:"autoCreateTime" json:"startedAt"`
	FinishedAt   int64     `json:"finishedAt,omitempty"`
	Companies    []Company `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"-"`
}

// Company is a stored CompanyRecord. Position keeps the crawl order.
type Company struct {
	ID          uint   `gorm:"primaryKey"`
	RunID       uint   `gorm:"index:idx_company_run_position,priority:1;not null"`
	Position    int    `gorm:"index:idx_company_run_position,priority:2"`
	Name        string `gorm:"type:text"`
	Director    string `gorm:"type:text"`
	Address     string `gorm:"type:text"`
	Phones      string `gorm:"type:text"`
	Website     string `gorm:"type:text"`
	SocialMedia string `gorm:"type:text"`
	Category    string
	SourceURL   string `gorm:"type:text;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime"`
}

// RunOutcome is what a finished run reports back.
type RunOutcome struct {
	PagesVisited int
	LinksFound   int
	Err          error
}

func companyFromRecord(runID uint, position int, r *yellowsnake.CompanyRecord) Company {
	return Company{
		RunID:       runID,
		Position:    position,
		Name:        r.Name,
		Director:    r.Director,
		Address:     r.Address,
		Phones:      r.PhonesString(),
		Website:     r.Website,
		SocialMedia: r.SocialMediaString(),
		Category:    r.Category,
		SourceURL:   r.SourceURL,
	}
}

// Record converts the row back into a CompanyRecord
func (c *Company) Record() *yellowsnake.CompanyRecord {
	return &yellowsnake.CompanyRecord{
		Name:        c.Name,
		Director:    c.Director,
		Address:     c.Address,
		Phones:      yellowsnake.SplitList(c.Phones),
		Website:     c.Website,
		SocialMedia: yellowsnake.SplitList(c.SocialMedia),
		Category:    c.Category,
		SourceURL:   c.SourceURL,
	}
}

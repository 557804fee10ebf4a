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
	"errors"
	"time"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

// ErrRunNotFound is returned for an unknown run id
var ErrRunNotFound = errors.New("run not found")

const saveBatchSize = 100

// CreateRun records the start of a run
func (s *Store) CreateRun(category, listingURL string, maxPages, maxCompanies int) (*Run, error) {
	run := Run{
		Category:     category,
		ListingURL:   listingURL,
		MaxPages:     maxPages,
		MaxCompanies: maxCompanies,
		State:        RunStateRunning,
	}
	if err := s.db.Create(&run).Error; err != nil {
		return nil, eris.Wrap(err, "store: create run")
	}
	return &run, nil
}

// FinishRun marks a run completed, or failed when outcome.Err is set, and
// refreshes its company count.
func (s *Store) FinishRun(id uint, outcome RunOutcome) error {
	var count int64
	if err := s.db.Model(&Company{}).Where("run_id = ?", id).Count(&count).Error; err != nil {
		return eris.Wrapf(err, "store: count companies of run %d", id)
	}

	updates := map[string]interface{}{
		"state":         RunStateCompleted,
		"error":         "",
		"pages_visited": outcome.PagesVisited,
		"links_found":   outcome.LinksFound,
		"company_count": int(count),
		"finished_at":   time.Now().Unix(),
	}
	if outcome.Err != nil {
		updates["state"] = RunStateFailed
		updates["error"] = outcome.Err.Error()
	}

	result := s.db.Model(&Run{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return eris.Wrapf(result.Error, "store: finish run %d", id)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(ErrRunNotFound, "store: finish run %d", id)
	}
	return nil
}

// SaveCompanies appends records to a run, continuing its position sequence.
func (s *Store) SaveCompanies(runID uint, records []*yellowsnake.CompanyRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var next int64
		if err := tx.Model(&Company{}).Where("run_id = ?", runID).Count(&next).Error; err != nil {
			return eris.Wrapf(err, "store: count companies of run %d", runID)
		}

		rows := make([]Company, 0, len(records))
		for i, r := range records {
			if r == nil {
				continue
			}
			rows = append(rows, companyFromRecord(runID, int(next)+i, r))
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, saveBatchSize).Error; err != nil {
			return eris.Wrapf(err, "store: save companies of run %d", runID)
		}
		return nil
	})
}

// GetRun gets a run by ID
func (s *Store) GetRun(id uint) (*Run, error) {
	var run Run
	if err := s.db.First(&run, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrRunNotFound, "store: run %d", id)
		}
		return nil, eris.Wrapf(err, "store: get run %d", id)
	}
	return &run, nil
}

// ListRuns returns the newest runs first. limit <= 0 means all.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	var runs []Run
	q := s.db.Order("started_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	return runs, nil
}

// GetRunCompanies returns a run's records in crawl order
func (s *Store) GetRunCompanies(runID uint) ([]*yellowsnake.CompanyRecord, error) {
	if _, err := s.GetRun(runID); err != nil {
		return nil, err
	}

	var rows []Company
	if err := s.db.Where("run_id = ?", runID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, eris.Wrapf(err, "store: companies of run %d", runID)
	}

	records := make([]*yellowsnake.CompanyRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].Record()
	}
	return records, nil
}

// DeleteRun removes a run and its companies
func (s *Store) DeleteRun(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&Company{}).Error; err != nil {
			return eris.Wrapf(err, "store: delete companies of run %d", id)
		}
		result := tx.Delete(&Run{}, id)
		if result.Error != nil {
			return eris.Wrapf(result.Error, "store: delete run %d", id)
		}
		if result.RowsAffected == 0 {
			return eris.Wrapf(ErrRunNotFound, "store: delete run %d", id)
		}
		return nil
	})
}

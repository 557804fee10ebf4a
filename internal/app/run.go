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

package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/internal/export"
	"github.com/agentberlin/yellowsnake/internal/store"
	"github.com/agentberlin/yellowsnake/internal/types"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrSelfReferential is returned when asked to extract the directory
// operator's own company page.
var ErrSelfReferential = errors.New("self-referential company page")

// ErrHistoryDisabled is returned by history operations when the App has no
// store.
var ErrHistoryDisabled = errors.New("run history is disabled")

// RunResult is the outcome of one category run
type RunResult struct {
	RunID    uint
	Category Category
	Records  []*yellowsnake.CompanyRecord
	Pages    int
	Links    int
	// Skipped counts self-referential links
	Skipped int
	// Degraded counts records kept with only their source URL after a
	// failed fetch
	Degraded int
}

// BatchResult is the outcome of RunAll
type BatchResult struct {
	Records    []*yellowsnake.CompanyRecord
	Categories []types.CategoryResult
}

// Failed returns the categories that ended in an error
func (b *BatchResult) Failed() []types.CategoryResult {
	var failed []types.CategoryResult
	for _, c := range b.Categories {
		if c.Error != "" {
			failed = append(failed, c)
		}
	}
	return failed
}

// Run scrapes one category: an empty argument runs the default category and
// an argument starting with "http" is crawled as a custom listing URL.
// Individual company failures never fail the run; a listing URL that cannot
// be loaded at all does.
func (a *App) Run(ctx context.Context, categoryOrURL string, maxPages, maxCompanies int) (*RunResult, error) {
	cat, err := a.catalog.Resolve(categoryOrURL)
	if err != nil {
		return nil, err
	}
	tracker := a.begin(cat, maxPages, maxCompanies)
	return a.execute(ctx, tracker, cat, maxPages, maxCompanies)
}

// StartRun starts Run in the background and returns the run id at once.
// Progress is available from GetRunProgress until the run ends.
func (a *App) StartRun(categoryOrURL string, maxPages, maxCompanies int) (uint, error) {
	cat, err := a.catalog.Resolve(categoryOrURL)
	if err != nil {
		return 0, err
	}
	tracker := a.begin(cat, maxPages, maxCompanies)
	id := tracker.progress.RunID
	go func() {
		if _, err := a.execute(context.Background(), tracker, cat, maxPages, maxCompanies); err != nil {
			zap.L().Warn("app: background run failed", zap.Uint("run_id", id), zap.Error(err))
		}
	}()
	return id, nil
}

// RunAll runs every catalog category in order. A category that fails is
// reported in the result and the batch moves on; only cancellation stops it.
func (a *App) RunAll(ctx context.Context, maxPages, maxCompanies int) (*BatchResult, error) {
	batch := &BatchResult{}
	for _, cat := range a.catalog.Entries() {
		tracker := a.begin(cat, maxPages, maxCompanies)
		res, err := a.execute(ctx, tracker, cat, maxPages, maxCompanies)

		entry := types.CategoryResult{Category: cat.Name}
		if res != nil {
			entry.RunID = res.RunID
			entry.Companies = len(res.Records)
			batch.Records = append(batch.Records, res.Records...)
		}
		if err != nil {
			entry.Error = err.Error()
		}
		batch.Categories = append(batch.Categories, entry)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return batch, ctxErr
		}
	}
	return batch, nil
}

// RunToCSV runs a category and writes its records to outputPath, or to the
// category's default file under the output directory. Nothing is written
// when the run produced no records; the returned path is then empty.
func (a *App) RunToCSV(ctx context.Context, categoryOrURL string, maxPages, maxCompanies int, outputPath string) (*RunResult, string, error) {
	res, err := a.Run(ctx, categoryOrURL, maxPages, maxCompanies)
	if err != nil {
		return res, "", err
	}
	if outputPath == "" {
		outputPath = export.OutputPath(a.outputDir, res.Category.Name)
	}
	written, err := a.writeCSV(outputPath, res.Records)
	return res, written, err
}

// RunAllToCSV runs every category and writes one combined CSV.
func (a *App) RunAllToCSV(ctx context.Context, maxPages, maxCompanies int, outputPath string) (*BatchResult, string, error) {
	batch, err := a.RunAll(ctx, maxPages, maxCompanies)
	if err != nil {
		return batch, "", err
	}
	if outputPath == "" {
		outputPath = filepath.Join(a.outputDir, a.allFile)
	}
	written, err := a.writeCSV(outputPath, batch.Records)
	return batch, written, err
}

// ExportRun writes a stored run to outputPath, or to a file named after the
// run under the output directory.
func (a *App) ExportRun(runID uint, outputPath string) (string, int, error) {
	if a.store == nil {
		return "", 0, ErrHistoryDisabled
	}
	run, err := a.store.GetRun(runID)
	if err != nil {
		return "", 0, err
	}
	records, err := a.store.GetRunCompanies(runID)
	if err != nil {
		return "", 0, err
	}
	if outputPath == "" {
		outputPath = export.OutputPath(a.outputDir, fmt.Sprintf("%s_run_%d", run.Category, run.ID))
	}
	if err := export.WriteFile(outputPath, records); err != nil {
		return "", 0, err
	}
	return outputPath, len(records), nil
}

// ListRuns returns the stored runs, newest first
func (a *App) ListRuns(limit int) ([]store.Run, error) {
	if a.store == nil {
		return nil, ErrHistoryDisabled
	}
	return a.store.ListRuns(limit)
}

// GetRun returns one stored run
func (a *App) GetRun(runID uint) (*store.Run, error) {
	if a.store == nil {
		return nil, ErrHistoryDisabled
	}
	return a.store.GetRun(runID)
}

// RunCompanies returns the records of a stored run in crawl order
func (a *App) RunCompanies(runID uint) ([]*yellowsnake.CompanyRecord, error) {
	if a.store == nil {
		return nil, ErrHistoryDisabled
	}
	if _, err := a.store.GetRun(runID); err != nil {
		return nil, err
	}
	return a.store.GetRunCompanies(runID)
}

// DeleteRun removes a stored run and its companies
func (a *App) DeleteRun(runID uint) error {
	if a.store == nil {
		return ErrHistoryDisabled
	}
	return a.store.DeleteRun(runID)
}

// ExtractCompany fetches and extracts a single detail page
func (a *App) ExtractCompany(ctx context.Context, detailURL string) (*yellowsnake.CompanyRecord, error) {
	if a.extractor.IsSelfReferential(detailURL) {
		return nil, eris.Wrapf(ErrSelfReferential, "app: %s", detailURL)
	}
	return a.extractor.Extract(ctx, a.fetcher, detailURL)
}

func (a *App) writeCSV(path string, records []*yellowsnake.CompanyRecord) (string, error) {
	if len(records) == 0 {
		zap.L().Warn("app: no records, csv not written", zap.String("path", path))
		return "", nil
	}
	if err := export.WriteFile(path, records); err != nil {
		return "", err
	}
	zap.L().Info("app: csv written", zap.String("path", path), zap.Int("records", len(records)))
	return path, nil
}

// begin opens the run in the store, when there is one, and starts tracking
// its progress.
func (a *App) begin(cat Category, maxPages, maxCompanies int) *activeRun {
	if a.store != nil {
		run, err := a.store.CreateRun(cat.Name, cat.URL, maxPages, maxCompanies)
		if err == nil {
			return a.track(run.ID, cat, true)
		}
		zap.L().Warn("app: run history unavailable", zap.String("category", cat.Name), zap.Error(err))
	}
	return a.track(a.localRunID(), cat, false)
}

func (a *App) execute(ctx context.Context, tracker *activeRun, cat Category, maxPages, maxCompanies int) (*RunResult, error) {
	runID := tracker.progress.RunID
	defer a.untrack(runID)

	res := &RunResult{RunID: runID, Category: cat}
	a.emitter.Emit(EventRunStarted, RunEvent{RunID: runID, Category: cat.Name, URL: cat.URL})

	coll, err := a.collect(ctx, cat.Name, cat.URL, maxPages, maxCompanies, tracker)
	res.Pages = coll.pages
	res.Links = len(coll.links)
	if err != nil {
		a.finish(tracker, res, err)
		return res, err
	}

	total := len(coll.links)
	for i, link := range coll.links {
		if ctx.Err() != nil {
			break
		}
		tracker.extracting(i, total)
		event := CompanyEvent{Category: cat.Name, Index: i + 1, Total: total, URL: link}

		if a.extractor.IsSelfReferential(link) {
			res.Skipped++
			event.Reason = "self-referential"
			a.emitter.Emit(EventCompanySkipped, event)
			continue
		}

		rec, err := a.extractOne(ctx, link)
		if rec == nil {
			res.Skipped++
			event.Reason = "no record"
			a.emitter.Emit(EventCompanySkipped, event)
			continue
		}
		if err != nil {
			res.Degraded++
			event.Reason = err.Error()
			zap.L().Warn("app: company degraded",
				zap.String("category", cat.Name),
				zap.String("url", link),
				zap.Error(err),
			)
		}

		rec.Category = cat.Name
		res.Records = append(res.Records, rec)
		a.save(tracker, rec)

		event.Name = rec.Name
		a.emitter.Emit(EventCompanyExtracted, event)
	}
	tracker.extracting(total, total)

	err = ctx.Err()
	a.finish(tracker, res, err)
	return res, err
}

// extractOne extracts one company. A panic anywhere in the fetch or the
// extraction degrades the record instead of ending the run.
func (a *App) extractOne(ctx context.Context, link string) (rec *yellowsnake.CompanyRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = yellowsnake.DegradedRecord(link)
			err = eris.Errorf("app: extract %s: panic: %v", link, r)
		}
	}()
	return a.extractor.Extract(ctx, a.fetcher, link)
}

func (a *App) save(tracker *activeRun, rec *yellowsnake.CompanyRecord) {
	if !tracker.stored {
		return
	}
	runID := tracker.progress.RunID
	if err := a.store.SaveCompanies(runID, []*yellowsnake.CompanyRecord{rec}); err != nil {
		zap.L().Warn("app: save company", zap.Uint("run_id", runID), zap.String("url", rec.SourceURL), zap.Error(err))
	}
}

func (a *App) finish(tracker *activeRun, res *RunResult, err error) {
	if tracker.stored {
		outcome := store.RunOutcome{PagesVisited: res.Pages, LinksFound: res.Links, Err: err}
		if ferr := a.store.FinishRun(res.RunID, outcome); ferr != nil {
			zap.L().Warn("app: finish run", zap.Uint("run_id", res.RunID), zap.Error(ferr))
		}
	}

	event := RunEvent{
		RunID:     res.RunID,
		Category:  res.Category.Name,
		URL:       res.Category.URL,
		Pages:     res.Pages,
		Links:     res.Links,
		Companies: len(res.Records),
	}
	if err != nil {
		event.Error = err.Error()
		a.emitter.Emit(EventRunFailed, event)
		return
	}
	a.emitter.Emit(EventRunCompleted, event)
}

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
	"sort"
	"sync"

	"github.com/agentberlin/yellowsnake/internal/types"
)

// activeRun tracks the progress of a run while it executes. A nil
// *activeRun ignores updates.
type activeRun struct {
	mu       sync.RWMutex
	progress types.RunProgress
	// stored is set when the run has a row in the store
	stored bool
}

func (r *activeRun) collected(pages, links int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.progress.PagesVisited = pages
	r.progress.LinksFound = links
	r.mu.Unlock()
}

func (r *activeRun) extracting(done, total int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.progress.CompaniesDone = done
	r.progress.CompaniesTotal = total
	r.mu.Unlock()
}

func (r *activeRun) snapshot() types.RunProgress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.progress
}

// track registers a run under id
func (a *App) track(id uint, cat Category, stored bool) *activeRun {
	r := &activeRun{stored: stored, progress: types.RunProgress{
		RunID:     id,
		Category:  cat.Name,
		URL:       cat.URL,
		IsRunning: true,
	}}
	a.runsMutex.Lock()
	a.activeRuns[id] = r
	a.runsMutex.Unlock()
	return r
}

func (a *App) untrack(id uint) {
	a.runsMutex.Lock()
	delete(a.activeRuns, id)
	a.runsMutex.Unlock()
}

// localRunID numbers runs when there is no store to do it
func (a *App) localRunID() uint {
	a.runsMutex.Lock()
	defer a.runsMutex.Unlock()
	a.nextLocal++
	return a.nextLocal
}

// GetActiveRuns returns the progress of all active runs
func (a *App) GetActiveRuns() []types.RunProgress {
	a.runsMutex.RLock()
	defer a.runsMutex.RUnlock()

	progress := make([]types.RunProgress, 0, len(a.activeRuns))
	for _, r := range a.activeRuns {
		progress = append(progress, r.snapshot())
	}
	sort.Slice(progress, func(i, j int) bool { return progress[i].RunID < progress[j].RunID })
	return progress
}

// GetRunProgress returns the progress of one active run
func (a *App) GetRunProgress(id uint) (types.RunProgress, bool) {
	a.runsMutex.RLock()
	r, ok := a.activeRuns[id]
	a.runsMutex.RUnlock()
	if !ok {
		return types.RunProgress{}, false
	}
	return r.snapshot(), true
}

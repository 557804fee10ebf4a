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
	"path/filepath"
	"testing"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStoreForTesting(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecords() []*yellowsnake.CompanyRecord {
	return []*yellowsnake.CompanyRecord{
		{
			Name:        "Արարատ ՍՊԸ",
			Director:    "Վարդան Պետրոսյան",
			Address:     "Երևան, Աբովյան փ. 12",
			Phones:      []string{"+37410123456", "+37491654321"},
			Website:     "https://ararat.am/",
			SocialMedia: []string{"https://facebook.com/ararat"},
			Category:    "real_estate",
			SourceURL:   "https://www.spyur.am/am/companies/ararat/1/",
		},
		{
			Category:  "real_estate",
			SourceURL: "https://www.spyur.am/am/companies/empty/2/",
		},
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	defer s.Close()
	assert.FileExists(t, dbPath)
}

func TestNewStoreForTestingRequiresDirectory(t *testing.T) {
	_, err := NewStoreForTesting(filepath.Join(t.TempDir(), "missing", "test.db"))
	assert.Error(t, err)
}

func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun("real_estate", "https://www.spyur.am/am/yellow_pages/", 5, 100)
	require.NoError(t, err)
	assert.NotZero(t, run.ID)
	assert.Equal(t, RunStateRunning, run.State)

	require.NoError(t, s.SaveCompanies(run.ID, sampleRecords()))

	t.Run("Completed", func(t *testing.T) {
		require.NoError(t, s.FinishRun(run.ID, RunOutcome{PagesVisited: 2, LinksFound: 3}))

		got, err := s.GetRun(run.ID)
		require.NoError(t, err)
		assert.Equal(t, RunStateCompleted, got.State)
		assert.Equal(t, 2, got.PagesVisited)
		assert.Equal(t, 3, got.LinksFound)
		assert.Equal(t, 2, got.CompanyCount)
		assert.NotZero(t, got.FinishedAt)
		assert.Empty(t, got.Error)
	})

	t.Run("Failed", func(t *testing.T) {
		failed, err := s.CreateRun("custom_url", "https://example.test/list", 1, 10)
		require.NoError(t, err)
		require.NoError(t, s.FinishRun(failed.ID, RunOutcome{Err: errors.New("listing unreachable")}))

		got, err := s.GetRun(failed.ID)
		require.NoError(t, err)
		assert.Equal(t, RunStateFailed, got.State)
		assert.Equal(t, "listing unreachable", got.Error)
		assert.Zero(t, got.CompanyCount)
	})

	t.Run("UnknownRun", func(t *testing.T) {
		err := s.FinishRun(9999, RunOutcome{})
		assert.ErrorIs(t, err, ErrRunNotFound)
	})
}

func TestGetRunCompaniesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	run, err := s.CreateRun("real_estate", "https://www.spyur.am/am/yellow_pages/", 5, 100)
	require.NoError(t, err)

	records := sampleRecords()
	require.NoError(t, s.SaveCompanies(run.ID, records[:1]))
	require.NoError(t, s.SaveCompanies(run.ID, records[1:]))

	got, err := s.GetRunCompanies(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, records[0], got[0])
	assert.Equal(t, records[1].SourceURL, got[1].SourceURL)
	assert.Nil(t, got[1].Phones)
	assert.True(t, got[1].IsEmpty())
}

func TestSaveCompaniesSkipsNil(t *testing.T) {
	s := newTestStore(t)
	run, err := s.CreateRun("real_estate", "https://www.spyur.am/am/yellow_pages/", 5, 100)
	require.NoError(t, err)

	require.NoError(t, s.SaveCompanies(run.ID, nil))
	require.NoError(t, s.SaveCompanies(run.ID, []*yellowsnake.CompanyRecord{nil, sampleRecords()[0]}))

	got, err := s.GetRunCompanies(run.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetRunCompaniesUnknownRun(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRunCompanies(42)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"first", "second", "third"} {
		_, err := s.CreateRun(name, "https://example.test/"+name, 1, 1)
		require.NoError(t, err)
	}

	all, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Category)
	assert.Equal(t, "first", all[2].Category)

	limited, err := s.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteRun(t *testing.T) {
	s := newTestStore(t)
	run, err := s.CreateRun("real_estate", "https://www.spyur.am/am/yellow_pages/", 5, 100)
	require.NoError(t, err)
	require.NoError(t, s.SaveCompanies(run.ID, sampleRecords()))

	require.NoError(t, s.DeleteRun(run.ID))

	_, err = s.GetRun(run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)

	var count int64
	require.NoError(t, s.DB().Model(&Company{}).Where("run_id = ?", run.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, s.DeleteRun(run.ID), ErrRunNotFound)
}

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

package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentberlin/yellowsnake/internal/app"
	"github.com/agentberlin/yellowsnake/internal/config"
	"github.com/agentberlin/yellowsnake/internal/store"
	"github.com/agentberlin/yellowsnake/internal/types"
	"github.com/agentberlin/yellowsnake/paginate"
	"github.com/agentberlin/yellowsnake/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer builds an App over the fixture directory site and wraps
// it in an MCPServer.
func setupTestServer(t *testing.T, withStore bool) (*MCPServer, *httptest.Server) {
	t.Helper()
	site := testutil.NewDirectoryServer()
	t.Cleanup(site.Close)

	dir := t.TempDir()
	cfg := &config.Config{
		Site: config.SiteConfig{
			BaseURL:    "https://www.spyur.am",
			DetailPath: "/companies/",
			SelfPaths:  []string{"spyur-information-system"},
			Paging:     paginate.DefaultSchemes(),
		},
		Categories: []config.CategoryConfig{{Name: "real_estate", URL: site.URL + testutil.ListingPath}},
		Store:      config.StoreConfig{Enabled: withStore, Path: filepath.Join(dir, "test.db")},
		Output:     config.OutputConfig{Dir: filepath.Join(dir, "out"), AllFile: "all.csv"},
	}
	a, cleanup, err := app.Build(cfg, app.BuildOptions{})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return NewMCPServer(a, types.RunLimits{MaxPages: 5, MaxCompanies: 100}), site
}

func TestListCategoriesTool(t *testing.T) {
	s, site := setupTestServer(t, false)
	require.NotNil(t, s.GetServer())

	_, out, err := s.listCategories(context.Background(), nil, ListCategoriesArgs{})
	require.NoError(t, err)
	result := out.(ListCategoriesResult)

	assert.True(t, result.Success)
	require.Len(t, result.Categories, 1)
	assert.Equal(t, "real_estate", result.Categories[0].Name)
	assert.Equal(t, "Real Estate", result.Categories[0].Label)
	assert.Equal(t, site.URL+testutil.ListingPath, result.Categories[0].URL)
}

func TestScrapeCategoryTool(t *testing.T) {
	t.Run("Sync_ReturnsCompanies", func(t *testing.T) {
		s, site := setupTestServer(t, true)

		_, out, err := s.scrapeCategory(context.Background(), nil, ScrapeCategoryArgs{Category: "real_estate"})
		require.NoError(t, err)
		result := out.(ScrapeCategoryResult)

		require.True(t, result.Success, result.Message)
		assert.NotZero(t, result.RunID)
		assert.Equal(t, "real_estate", result.Category)
		assert.Equal(t, 2, result.Pages)
		assert.Equal(t, 5, result.Links)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, result.Degraded)
		assert.Empty(t, result.CSVPath)
		require.Len(t, result.Companies, 4)
		assert.Equal(t, testutil.Ararat.Name, result.Companies[0].Name)
		assert.Equal(t, site.URL+testutil.Broken.Path(), result.Companies[3].SourceURL)
	})

	t.Run("LimitsApplied", func(t *testing.T) {
		s, _ := setupTestServer(t, false)

		_, out, err := s.scrapeCategory(context.Background(), nil, ScrapeCategoryArgs{MaxPages: 1, MaxCompanies: 2})
		require.NoError(t, err)
		result := out.(ScrapeCategoryResult)

		require.True(t, result.Success, result.Message)
		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 2, result.Links)
		assert.Len(t, result.Companies, 2)
	})

	t.Run("WriteCSV", func(t *testing.T) {
		s, _ := setupTestServer(t, false)

		_, out, err := s.scrapeCategory(context.Background(), nil, ScrapeCategoryArgs{WriteCSV: true})
		require.NoError(t, err)
		result := out.(ScrapeCategoryResult)

		require.True(t, result.Success, result.Message)
		assert.Equal(t, "spyur_real_estate.csv", filepath.Base(result.CSVPath))
		assert.FileExists(t, result.CSVPath)
	})

	t.Run("UnknownCategory_ReturnsFailure", func(t *testing.T) {
		s, _ := setupTestServer(t, false)

		_, out, err := s.scrapeCategory(context.Background(), nil, ScrapeCategoryArgs{Category: "bakeries"})
		require.NoError(t, err)
		result := out.(ScrapeCategoryResult)

		assert.False(t, result.Success)
		assert.Contains(t, result.Message, "unknown category")
	})

	t.Run("Async_CompletesInHistory", func(t *testing.T) {
		s, _ := setupTestServer(t, true)

		_, out, err := s.scrapeCategory(context.Background(), nil, ScrapeCategoryArgs{Async: true})
		require.NoError(t, err)
		result := out.(ScrapeCategoryResult)
		require.True(t, result.Success, result.Message)
		require.NotZero(t, result.RunID)

		require.Eventually(t, func() bool {
			_, active := s.app.GetRunProgress(result.RunID)
			return !active
		}, 10*time.Second, 20*time.Millisecond)

		_, statusOut, err := s.getRunStatus(context.Background(), nil, GetRunStatusArgs{RunID: result.RunID})
		require.NoError(t, err)
		status := statusOut.(GetRunStatusResult)
		require.True(t, status.Success, status.Message)
		require.NotNil(t, status.Run)
		assert.Equal(t, store.RunStateCompleted, status.Run.State)
		assert.Equal(t, 4, status.Run.CompanyCount)
	})
}

func TestExtractCompanyTool(t *testing.T) {
	s, site := setupTestServer(t, false)

	t.Run("DetailPage", func(t *testing.T) {
		_, out, err := s.extractCompany(context.Background(), nil, ExtractCompanyArgs{URL: site.URL + testutil.Masis.Path()})
		require.NoError(t, err)
		result := out.(ExtractCompanyResult)

		require.True(t, result.Success, result.Message)
		assert.Equal(t, testutil.Masis.Name, result.Company.Name)
		assert.Equal(t, []string{"+37493111222"}, result.Company.Phones)
	})

	t.Run("SelfReferential", func(t *testing.T) {
		_, out, err := s.extractCompany(context.Background(), nil, ExtractCompanyArgs{URL: site.URL + testutil.Self.Path()})
		require.NoError(t, err)
		result := out.(ExtractCompanyResult)

		assert.False(t, result.Success)
		assert.Contains(t, result.Message, "self-referential")
	})

	t.Run("EmptyURL", func(t *testing.T) {
		_, out, err := s.extractCompany(context.Background(), nil, ExtractCompanyArgs{})
		require.NoError(t, err)
		assert.False(t, out.(ExtractCompanyResult).Success)
	})
}

func TestRunHistoryTools(t *testing.T) {
	s, _ := setupTestServer(t, true)

	_, out, err := s.scrapeCategory(context.Background(), nil, ScrapeCategoryArgs{})
	require.NoError(t, err)
	runID := out.(ScrapeCategoryResult).RunID

	t.Run("ListRuns", func(t *testing.T) {
		_, out, err := s.listRuns(context.Background(), nil, ListRunsArgs{Limit: 10})
		require.NoError(t, err)
		result := out.(ListRunsResult)

		require.True(t, result.Success, result.Message)
		require.Len(t, result.Runs, 1)
		assert.Equal(t, runID, result.Runs[0].ID)
		assert.Equal(t, "real_estate", result.Runs[0].Category)
	})

	t.Run("GetRunCompanies", func(t *testing.T) {
		_, out, err := s.getRunCompanies(context.Background(), nil, GetRunCompaniesArgs{RunID: runID})
		require.NoError(t, err)
		result := out.(GetRunCompaniesResult)

		require.True(t, result.Success, result.Message)
		require.Len(t, result.Companies, 4)
		assert.Equal(t, testutil.Sevan.Name, result.Companies[1].Name)
	})

	t.Run("UnknownRun", func(t *testing.T) {
		_, out, err := s.getRunCompanies(context.Background(), nil, GetRunCompaniesArgs{RunID: 999})
		require.NoError(t, err)
		assert.False(t, out.(GetRunCompaniesResult).Success)

		_, out, err = s.getRunStatus(context.Background(), nil, GetRunStatusArgs{RunID: 999})
		require.NoError(t, err)
		assert.False(t, out.(GetRunStatusResult).Success)
	})
}

func TestHistoryToolsWithoutStore(t *testing.T) {
	s, _ := setupTestServer(t, false)

	_, out, err := s.listRuns(context.Background(), nil, ListRunsArgs{})
	require.NoError(t, err)
	result := out.(ListRunsResult)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "disabled")
}

func TestHandlerServesMCP(t *testing.T) {
	s, _ := setupTestServer(t, false)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

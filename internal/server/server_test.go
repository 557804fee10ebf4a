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

package server

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/internal/app"
	"github.com/agentberlin/yellowsnake/internal/config"
	"github.com/agentberlin/yellowsnake/internal/store"
	"github.com/agentberlin/yellowsnake/internal/types"
	"github.com/agentberlin/yellowsnake/paginate"
	"github.com/agentberlin/yellowsnake/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app  *app.App
	api  *httptest.Server
	site *httptest.Server
}

func setupTestEnv(t *testing.T, withStore bool) *testEnv {
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
		Output:     config.OutputConfig{Dir: filepath.Join(dir, "out")},
	}
	a, cleanup, err := app.Build(cfg, app.BuildOptions{})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	api := httptest.NewServer(NewServer(a, types.RunLimits{MaxPages: 5, MaxCompanies: 100}))
	t.Cleanup(api.Close)

	return &testEnv{app: a, api: api, site: site}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.api.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() }) //nolint:errcheck
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// startRun posts a run and waits for it to finish
func (e *testEnv) startRun(t *testing.T, body string) uint {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/v1/runs", body)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	id := decode[map[string]uint](t, resp)["runId"]
	require.NotZero(t, id)

	require.Eventually(t, func() bool {
		_, active := e.app.GetRunProgress(id)
		return !active
	}, 10*time.Second, 20*time.Millisecond)
	return id
}

func TestHealthAndVersion(t *testing.T) {
	env := setupTestEnv(t, false)

	resp := env.do(t, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	health := decode[types.SystemHealthCheck](t, resp)
	if !health.IsHealthy {
		assert.NotEmpty(t, health.ErrorTitle)
	}

	resp = env.do(t, http.MethodGet, "/api/v1/version", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[map[string]string](t, resp)["version"])

	resp = env.do(t, http.MethodPost, "/api/v1/version", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp = env.do(t, http.MethodOptions, "/api/v1/runs", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategories(t *testing.T) {
	env := setupTestEnv(t, false)

	resp := env.do(t, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cats := decode[[]types.CategoryInfo](t, resp)
	require.Len(t, cats, 1)
	assert.Equal(t, "real_estate", cats[0].Name)
	assert.Equal(t, env.site.URL+testutil.ListingPath, cats[0].URL)
}

func TestRunLifecycle(t *testing.T) {
	env := setupTestEnv(t, true)
	id := env.startRun(t, `{"category":"real_estate"}`)

	t.Run("GetRun", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/v1/runs/"+itoa(id), "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		status := decode[RunStatus](t, resp)
		require.NotNil(t, status.Run)
		assert.Nil(t, status.Progress)
		assert.Equal(t, store.RunStateCompleted, status.Run.State)
		assert.Equal(t, 2, status.Run.PagesVisited)
		assert.Equal(t, 4, status.Run.CompanyCount)
	})

	t.Run("ListRuns", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/v1/runs?limit=5", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		runs := decode[[]store.Run](t, resp)
		require.Len(t, runs, 1)
		assert.Equal(t, id, runs[0].ID)

		resp = env.do(t, http.MethodGet, "/api/v1/runs?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("CompaniesJSON", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/v1/runs/"+itoa(id)+"/companies", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		records := decode[[]yellowsnake.CompanyRecord](t, resp)
		require.Len(t, records, 4)
		assert.Equal(t, testutil.Ararat.Name, records[0].Name)
		assert.Equal(t, "real_estate", records[0].Category)
	})

	t.Run("CompaniesCSV", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/v1/runs/"+itoa(id)+"/companies?format=csv", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "spyur_run_"+itoa(id)+".csv")

		rows, err := csv.NewReader(resp.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 5)
		assert.Equal(t, yellowsnake.CSVHeader, rows[0])
	})

	t.Run("Delete", func(t *testing.T) {
		resp := env.do(t, http.MethodDelete, "/api/v1/runs/"+itoa(id), "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = env.do(t, http.MethodGet, "/api/v1/runs/"+itoa(id), "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRunErrors(t *testing.T) {
	env := setupTestEnv(t, true)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown category", http.MethodPost, "/api/v1/runs", `{"category":"bakeries"}`, http.StatusBadRequest},
		{"bad body", http.MethodPost, "/api/v1/runs", `{`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/v1/runs/abc", "", http.StatusBadRequest},
		{"unknown run", http.MethodGet, "/api/v1/runs/42", "", http.StatusNotFound},
		{"unknown run companies", http.MethodGet, "/api/v1/runs/42/companies", "", http.StatusNotFound},
		{"unknown sub-resource", http.MethodGet, "/api/v1/runs/42/pages", "", http.StatusNotFound},
		{"method", http.MethodPut, "/api/v1/runs", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHistoryDisabled(t *testing.T) {
	env := setupTestEnv(t, false)

	resp := env.do(t, http.MethodGet, "/api/v1/runs", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Runs still work without history; progress is the only record.
	id := env.startRun(t, "")
	resp = env.do(t, http.MethodGet, "/api/v1/runs/"+itoa(id), "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestActiveRuns(t *testing.T) {
	env := setupTestEnv(t, false)

	resp := env.do(t, http.MethodGet, "/api/v1/active-runs", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]types.RunProgress](t, resp))
}

func TestExtract(t *testing.T) {
	env := setupTestEnv(t, false)

	t.Run("DetailPage", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/v1/extract", `{"url":"`+env.site.URL+testutil.Ararat.Path()+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		rec := decode[yellowsnake.CompanyRecord](t, resp)
		assert.Equal(t, testutil.Ararat.Name, rec.Name)
		assert.Equal(t, testutil.Ararat.Website, rec.Website)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"self", `{"url":"` + env.site.URL + testutil.Self.Path() + `"}`, http.StatusBadRequest},
		{"upstream error", `{"url":"` + env.site.URL + testutil.Broken.Path() + `"}`, http.StatusBadGateway},
		{"missing url", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/v1/extract", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

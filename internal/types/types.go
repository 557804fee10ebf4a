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

// Package types holds the response shapes shared by the HTTP API, the MCP
// tools and the CLI.
package types

// CategoryInfo describes one catalog entry
type CategoryInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RunProgress represents the progress of an active run
type RunProgress struct {
	RunID          uint   `json:"runId"`
	Category       string `json:"category"`
	URL            string `json:"url"`
	PagesVisited   int    `json:"pagesVisited"`
	LinksFound     int    `json:"linksFound"`
	CompaniesDone  int    `json:"companiesDone"`
	CompaniesTotal int    `json:"companiesTotal"`
	IsRunning      bool   `json:"isRunning"`
}

// CategoryResult is the outcome of one category in a batch run
type CategoryResult struct {
	Category  string `json:"category"`
	RunID     uint   `json:"runId,omitempty"`
	Companies int    `json:"companies"`
	Error     string `json:"error,omitempty"`
}

// SystemHealthCheck reports whether optional dependencies are present
type SystemHealthCheck struct {
	IsHealthy  bool   `json:"isHealthy"`
	ErrorTitle string `json:"errorTitle,omitempty"`
	ErrorMsg   string `json:"errorMsg,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ServerStatus represents the current status of the API server
type ServerStatus struct {
	IsRunning bool   `json:"isRunning"`
	Version   string `json:"version"`
	Addr      string `json:"addr"`
}

// RunLimits bound a run started from an API call that leaves them unset
type RunLimits struct {
	MaxPages     int `json:"maxPages"`
	MaxCompanies int `json:"maxCompanies"`
}

// Apply fills zero or negative limits from l
func (l RunLimits) Apply(maxPages, maxCompanies int) (int, int) {
	if maxPages <= 0 {
		maxPages = l.MaxPages
	}
	if maxCompanies <= 0 {
		maxCompanies = l.MaxCompanies
	}
	return maxPages, maxCompanies
}

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
	"fmt"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/internal/app"
	"github.com/agentberlin/yellowsnake/internal/store"
	"github.com/agentberlin/yellowsnake/internal/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// registerTools registers all MCP tools with the server
func (s *MCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "Lists the directory categories that can be scraped",
	}, s.listCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scrape_category",
		Description: "Scrapes the companies of a category, or of a listing URL starting with http. Set async to return a run id at once.",
	}, s.scrapeCategory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_company",
		Description: "Extracts the contact record of a single company detail page",
	}, s.extractCompany)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_run_status",
		Description: "Returns the progress of an active run, or the summary of a finished one",
	}, s.getRunStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_runs",
		Description: "Lists stored runs, newest first",
	}, s.listRuns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_run_companies",
		Description: "Returns the companies of a stored run in crawl order",
	}, s.getRunCompanies)
}

// ListCategoriesArgs defines the input schema for list_categories
type ListCategoriesArgs struct{}

// ListCategoriesResult defines the output schema for list_categories
type ListCategoriesResult struct {
	Success    bool                 `json:"success"`
	Categories []types.CategoryInfo `json:"categories"`
	Message    string               `json:"message"`
}

func (s *MCPServer) listCategories(ctx context.Context, req *mcp.CallToolRequest, args ListCategoriesArgs) (*mcp.CallToolResult, any, error) {
	categories := s.app.Categories()
	return nil, ListCategoriesResult{
		Success:    true,
		Categories: categories,
		Message:    fmt.Sprintf("%d categories", len(categories)),
	}, nil
}

// ScrapeCategoryArgs defines the input schema for scrape_category
type ScrapeCategoryArgs struct {
	Category     string `json:"category,omitempty"`
	MaxPages     int    `json:"maxPages,omitempty"`
	MaxCompanies int    `json:"maxCompanies,omitempty"`
	Async        bool   `json:"async,omitempty"`
	WriteCSV     bool   `json:"writeCsv,omitempty"`
}

// ScrapeCategoryResult defines the output schema for scrape_category
type ScrapeCategoryResult struct {
	Success   bool                         `json:"success"`
	RunID     uint                         `json:"runId,omitempty"`
	Category  string                       `json:"category,omitempty"`
	Pages     int                          `json:"pages"`
	Links     int                          `json:"links"`
	Skipped   int                          `json:"skipped"`
	Degraded  int                          `json:"degraded"`
	CSVPath   string                       `json:"csvPath,omitempty"`
	Companies []*yellowsnake.CompanyRecord `json:"companies,omitempty"`
	Message   string                       `json:"message"`
}

func (s *MCPServer) scrapeCategory(ctx context.Context, req *mcp.CallToolRequest, args ScrapeCategoryArgs) (*mcp.CallToolResult, any, error) {
	maxPages, maxCompanies := s.limits.Apply(args.MaxPages, args.MaxCompanies)
	s.logger.Info("tool called: scrape_category",
		zap.String("category", args.Category),
		zap.Int("max_pages", maxPages),
		zap.Int("max_companies", maxCompanies),
		zap.Bool("async", args.Async))

	if args.Async {
		id, err := s.app.StartRun(args.Category, maxPages, maxCompanies)
		if err != nil {
			return nil, ScrapeCategoryResult{Message: fmt.Sprintf("Failed to start run: %v", err)}, nil
		}
		return nil, ScrapeCategoryResult{
			Success: true,
			RunID:   id,
			Message: "Run started",
		}, nil
	}

	var (
		res  *app.RunResult
		path string
		err  error
	)
	if args.WriteCSV {
		res, path, err = s.app.RunToCSV(ctx, args.Category, maxPages, maxCompanies, "")
	} else {
		res, err = s.app.Run(ctx, args.Category, maxPages, maxCompanies)
	}
	if err != nil {
		return nil, ScrapeCategoryResult{Message: fmt.Sprintf("Run failed: %v", err)}, nil
	}

	return nil, ScrapeCategoryResult{
		Success:   true,
		RunID:     res.RunID,
		Category:  res.Category.Name,
		Pages:     res.Pages,
		Links:     res.Links,
		Skipped:   res.Skipped,
		Degraded:  res.Degraded,
		CSVPath:   path,
		Companies: res.Records,
		Message:   fmt.Sprintf("Extracted %d companies from %d pages", len(res.Records), res.Pages),
	}, nil
}

// ExtractCompanyArgs defines the input schema for extract_company
type ExtractCompanyArgs struct {
	URL string `json:"url"`
}

// ExtractCompanyResult defines the output schema for extract_company
type ExtractCompanyResult struct {
	Success bool                       `json:"success"`
	Company *yellowsnake.CompanyRecord `json:"company,omitempty"`
	Message string                     `json:"message"`
}

func (s *MCPServer) extractCompany(ctx context.Context, req *mcp.CallToolRequest, args ExtractCompanyArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Info("tool called: extract_company", zap.String("url", args.URL))

	rec, err := s.app.ExtractCompany(ctx, args.URL)
	if err != nil {
		return nil, ExtractCompanyResult{Message: fmt.Sprintf("Extraction failed: %v", err)}, nil
	}
	return nil, ExtractCompanyResult{
		Success: true,
		Company: rec,
		Message: "Company extracted",
	}, nil
}

// GetRunStatusArgs defines the input schema for get_run_status
type GetRunStatusArgs struct {
	RunID uint `json:"runId"`
}

// GetRunStatusResult defines the output schema for get_run_status
type GetRunStatusResult struct {
	Success  bool               `json:"success"`
	Progress *types.RunProgress `json:"progress,omitempty"`
	Run      *store.Run         `json:"run,omitempty"`
	Message  string             `json:"message"`
}

func (s *MCPServer) getRunStatus(ctx context.Context, req *mcp.CallToolRequest, args GetRunStatusArgs) (*mcp.CallToolResult, any, error) {
	if progress, ok := s.app.GetRunProgress(args.RunID); ok {
		return nil, GetRunStatusResult{
			Success:  true,
			Progress: &progress,
			Message:  "Run in progress",
		}, nil
	}

	run, err := s.app.GetRun(args.RunID)
	if err != nil {
		return nil, GetRunStatusResult{Message: fmt.Sprintf("Run %d not found: %v", args.RunID, err)}, nil
	}
	return nil, GetRunStatusResult{
		Success: true,
		Run:     run,
		Message: fmt.Sprintf("Run %s", run.State),
	}, nil
}

// ListRunsArgs defines the input schema for list_runs
type ListRunsArgs struct {
	Limit int `json:"limit,omitempty"`
}

// ListRunsResult defines the output schema for list_runs
type ListRunsResult struct {
	Success bool        `json:"success"`
	Runs    []store.Run `json:"runs"`
	Message string      `json:"message"`
}

func (s *MCPServer) listRuns(ctx context.Context, req *mcp.CallToolRequest, args ListRunsArgs) (*mcp.CallToolResult, any, error) {
	runs, err := s.app.ListRuns(args.Limit)
	if err != nil {
		return nil, ListRunsResult{Message: fmt.Sprintf("Failed to list runs: %v", err)}, nil
	}
	return nil, ListRunsResult{
		Success: true,
		Runs:    runs,
		Message: fmt.Sprintf("%d runs", len(runs)),
	}, nil
}

// GetRunCompaniesArgs defines the input schema for get_run_companies
type GetRunCompaniesArgs struct {
	RunID uint `json:"runId"`
}

// GetRunCompaniesResult defines the output schema for get_run_companies
type GetRunCompaniesResult struct {
	Success   bool                         `json:"success"`
	Companies []*yellowsnake.CompanyRecord `json:"companies"`
	Message   string                       `json:"message"`
}

func (s *MCPServer) getRunCompanies(ctx context.Context, req *mcp.CallToolRequest, args GetRunCompaniesArgs) (*mcp.CallToolResult, any, error) {
	records, err := s.app.RunCompanies(args.RunID)
	if err != nil {
		return nil, GetRunCompaniesResult{Message: fmt.Sprintf("Failed to load run %d: %v", args.RunID, err)}, nil
	}
	return nil, GetRunCompaniesResult{
		Success:   true,
		Companies: records,
		Message:   fmt.Sprintf("%d companies", len(records)),
	}, nil
}

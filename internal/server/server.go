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
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/internal/app"
	"github.com/agentberlin/yellowsnake/internal/export"
	"github.com/agentberlin/yellowsnake/internal/store"
	"github.com/agentberlin/yellowsnake/internal/types"
	"github.com/agentberlin/yellowsnake/internal/version"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	app    *app.App
	limits types.RunLimits
	mux    *http.ServeMux
	logger *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(a *app.App, limits types.RunLimits) *Server {
	s := &Server{
		app:    a,
		limits: limits,
		mux:    http.NewServeMux(),
		logger: zap.L().Named("server"),
	}

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))

	s.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/version", s.handleGetVersion)
	s.mux.HandleFunc("/api/v1/categories", s.handleCategories)
	s.mux.HandleFunc("/api/v1/runs", s.handleRuns)
	s.mux.HandleFunc("/api/v1/runs/", s.handleRunWithID)
	s.mux.HandleFunc("/api/v1/active-runs", s.handleActiveRuns)
	s.mux.HandleFunc("/api/v1/extract", s.handleExtract)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.app.CheckSystemHealth())
}

// handleGetVersion returns the application version
func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"version": version.CurrentVersion,
	})
}

// handleCategories handles GET /api/v1/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.app.Categories())
}

// StartRunRequest is the body of POST /api/v1/runs
type StartRunRequest struct {
	Category     string `json:"category"`
	MaxPages     int    `json:"maxPages"`
	MaxCompanies int    `json:"maxCompanies"`
}

// handleRuns handles GET and POST /api/v1/runs
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		runs, err := s.app.ListRuns(limit)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, runs)

	case http.MethodPost:
		var req StartRunRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
		}
		maxPages, maxCompanies := s.limits.Apply(req.MaxPages, req.MaxCompanies)
		id, err := s.app.StartRun(req.Category, maxPages, maxCompanies)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.logger.Info("run started", zap.Uint("run_id", id), zap.String("category", req.Category))
		s.writeJSON(w, http.StatusAccepted, map[string]uint{"runId": id})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRunWithID handles /api/v1/runs/{id} and /api/v1/runs/{id}/companies
func (s *Server) handleRunWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/runs/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		http.Error(w, "Invalid run ID", http.StatusBadRequest)
		return
	}
	runID := uint(id)

	switch {
	case len(parts) == 1:
		s.handleRun(w, r, runID)
	case len(parts) == 2 && parts[1] == "companies":
		s.handleRunCompanies(w, r, runID)
	default:
		http.NotFound(w, r)
	}
}

// RunStatus is either the live progress of a run or its stored summary
type RunStatus struct {
	Progress *types.RunProgress `json:"progress,omitempty"`
	Run      *store.Run         `json:"run,omitempty"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, runID uint) {
	switch r.Method {
	case http.MethodGet:
		if progress, ok := s.app.GetRunProgress(runID); ok {
			s.writeJSON(w, http.StatusOK, RunStatus{Progress: &progress})
			return
		}
		run, err := s.app.GetRun(runID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, RunStatus{Run: run})

	case http.MethodDelete:
		if _, active := s.app.GetRunProgress(runID); active {
			http.Error(w, "Run is still in progress", http.StatusConflict)
			return
		}
		if err := s.app.DeleteRun(runID); err != nil {
			s.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRunCompanies(w http.ResponseWriter, r *http.Request, runID uint) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := s.app.RunCompanies(runID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") != "csv" {
		s.writeJSON(w, http.StatusOK, records)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+export.FilePrefix+"run_"+strconv.FormatUint(uint64(runID), 10)+".csv\"")
	if err := export.WriteCSV(w, records); err != nil {
		s.logger.Warn("csv response failed", zap.Uint("run_id", runID), zap.Error(err))
	}
}

// handleActiveRuns handles GET /api/v1/active-runs
func (s *Server) handleActiveRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.app.GetActiveRuns())
}

// ExtractRequest is the body of POST /api/v1/extract
type ExtractRequest struct {
	URL string `json:"url"`
}

// handleExtract handles POST /api/v1/extract
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := s.app.ExtractCompany(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", zap.Error(err))
	}
}

// writeError maps App errors onto status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var upstream *yellowsnake.StatusError
	switch {
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	case errors.Is(err, store.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrUnknownCategory), errors.Is(err, app.ErrSelfReferential):
		status = http.StatusBadRequest
	case errors.Is(err, app.ErrHistoryDisabled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

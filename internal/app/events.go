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

import "go.uber.org/zap"

// EventType represents the type of event
type EventType string

const (
	EventRunStarted       EventType = "run:started"
	EventPageCollected    EventType = "page:collected"
	EventCompanyExtracted EventType = "company:extracted"
	EventCompanySkipped   EventType = "company:skipped"
	EventRunCompleted     EventType = "run:completed"
	EventRunFailed        EventType = "run:failed"
)

// RunEvent is the payload of run:started, run:completed and run:failed
type RunEvent struct {
	RunID     uint   `json:"runId,omitempty"`
	Category  string `json:"category"`
	URL       string `json:"url"`
	Pages     int    `json:"pages,omitempty"`
	Links     int    `json:"links,omitempty"`
	Companies int    `json:"companies,omitempty"`
	Error     string `json:"error,omitempty"`
}

// PageEvent is the payload of page:collected
type PageEvent struct {
	Category string `json:"category"`
	Page     int    `json:"page"`
	URL      string `json:"url"`
	Found    int    `json:"found"`
	Total    int    `json:"total"`
}

// CompanyEvent is the payload of company:extracted and company:skipped
type CompanyEvent struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	URL      string `json:"url"`
	Name     string `json:"name,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// EventEmitter is the interface for emitting events.
// The CLI logs them, the HTTP server keeps progress for polling.
type EventEmitter interface {
	Emit(eventType EventType, data interface{})
}

// NoOpEmitter is a default implementation that does nothing
// Useful for testing or when events aren't needed
type NoOpEmitter struct{}

// Emit does nothing
func (n *NoOpEmitter) Emit(eventType EventType, data interface{}) {}

// LogEmitter writes every event to the global zap logger.
type LogEmitter struct{}

// Emit logs the event. Failures and skips are warnings.
func (LogEmitter) Emit(eventType EventType, data interface{}) {
	log := zap.L().With(zap.String("event", string(eventType)))
	switch ev := data.(type) {
	case RunEvent:
		fields := []zap.Field{
			zap.String("category", ev.Category),
			zap.String("url", ev.URL),
		}
		if ev.RunID != 0 {
			fields = append(fields, zap.Uint("run_id", ev.RunID))
		}
		switch eventType {
		case EventRunFailed:
			log.Warn("run failed", append(fields, zap.String("error", ev.Error))...)
		case EventRunCompleted:
			log.Info("run completed", append(fields,
				zap.Int("pages", ev.Pages),
				zap.Int("links", ev.Links),
				zap.Int("companies", ev.Companies),
			)...)
		default:
			log.Info("run started", fields...)
		}
	case PageEvent:
		log.Info("listing page collected",
			zap.String("category", ev.Category),
			zap.Int("page", ev.Page),
			zap.String("url", ev.URL),
			zap.Int("found", ev.Found),
			zap.Int("total", ev.Total),
		)
	case CompanyEvent:
		fields := []zap.Field{
			zap.String("category", ev.Category),
			zap.Int("index", ev.Index),
			zap.Int("total", ev.Total),
			zap.String("url", ev.URL),
		}
		if eventType == EventCompanySkipped {
			log.Warn("company skipped", append(fields, zap.String("reason", ev.Reason))...)
			return
		}
		log.Info("company extracted", append(fields, zap.String("name", ev.Name))...)
	default:
		log.Debug("event", zap.Any("data", data))
	}
}

// MultiEmitter fans an event out to several emitters
type MultiEmitter []EventEmitter

// Emit forwards to every emitter in order
func (m MultiEmitter) Emit(eventType EventType, data interface{}) {
	for _, e := range m {
		e.Emit(eventType, data)
	}
}

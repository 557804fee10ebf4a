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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeGlobalLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestLogEmitter(t *testing.T) {
	logs := observeGlobalLogger(t)
	var e LogEmitter

	e.Emit(EventRunStarted, RunEvent{RunID: 3, Category: "real_estate", URL: "https://a.test/"})
	e.Emit(EventPageCollected, PageEvent{Category: "real_estate", Page: 1, Found: 3, Total: 3})
	e.Emit(EventCompanyExtracted, CompanyEvent{Category: "real_estate", Index: 1, Total: 3, Name: "Արարատ"})
	e.Emit(EventCompanySkipped, CompanyEvent{Category: "real_estate", Index: 2, Total: 3, Reason: "self-referential"})
	e.Emit(EventRunCompleted, RunEvent{Category: "real_estate", Companies: 2})
	e.Emit(EventRunFailed, RunEvent{Category: "gone", Error: "404"})
	e.Emit("custom", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 7)

	tests := []struct {
		message string
		level   zapcore.Level
	}{
		{"run started", zapcore.InfoLevel},
		{"listing page collected", zapcore.InfoLevel},
		{"company extracted", zapcore.InfoLevel},
		{"company skipped", zapcore.WarnLevel},
		{"run completed", zapcore.InfoLevel},
		{"run failed", zapcore.WarnLevel},
		{"event", zapcore.DebugLevel},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.message, entries[i].Message)
		assert.Equal(t, tt.level, entries[i].Level)
	}

	assert.Equal(t, uint64(3), entries[0].ContextMap()["run_id"])
	assert.Equal(t, "self-referential", entries[3].ContextMap()["reason"])
	assert.Equal(t, int64(2), entries[4].ContextMap()["companies"])
	assert.Equal(t, "404", entries[5].ContextMap()["error"])
}

func TestMultiEmitter(t *testing.T) {
	a, b := &recordingEmitter{}, &recordingEmitter{}
	MultiEmitter{a, b, &NoOpEmitter{}}.Emit(EventRunStarted, RunEvent{Category: "x"})

	assert.Equal(t, 1, a.count(EventRunStarted))
	assert.Equal(t, 1, b.count(EventRunStarted))
}

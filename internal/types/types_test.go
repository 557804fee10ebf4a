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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunLimitsApply(t *testing.T) {
	limits := RunLimits{MaxPages: 5, MaxCompanies: 1000}

	tests := []struct {
		name                     string
		pages, companies         int
		wantPages, wantCompanies int
	}{
		{"unset", 0, 0, 5, 1000},
		{"negative", -1, -3, 5, 1000},
		{"explicit", 2, 40, 2, 40},
		{"mixed", 3, 0, 3, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, companies := limits.Apply(tt.pages, tt.companies)
			assert.Equal(t, tt.wantPages, pages)
			assert.Equal(t, tt.wantCompanies, companies)
		})
	}
}

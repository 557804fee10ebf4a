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

package yellowsnake

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is the error returned for a non-2xx response when
	// the fetcher is not configured to parse error pages.
	ErrUnexpectedStatus = errors.New("Unexpected response status")
	// ErrRobotsBlocked is the error returned when robots.txt disallows a URL
	ErrRobotsBlocked = errors.New("URL blocked by robots.txt")
	// ErrNoPattern is the error returned for LimitRules with no domain pattern
	ErrNoPattern = errors.New("No pattern defined in LimitRule")
	// ErrEmptyURL is the error returned when a fetch is requested without a URL
	ErrEmptyURL = errors.New("URL cannot be empty")
	// ErrMissingURL is the error returned when a URL cannot be parsed
	ErrMissingURL = errors.New("Missing or malformed URL")
)

// StatusError carries the status code of a rejected response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.StatusCode, ErrUnexpectedStatus)
}

// Unwrap makes errors.Is(err, ErrUnexpectedStatus) hold.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

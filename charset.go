// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// This file includes modifications to code originally developed by Adam Tauber,
// licensed under the Apache License, Version 2.0.
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
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// decodeBody converts body to UTF-8. The charset comes from the
// Content-Type header; when the header names none and the bytes are not
// valid UTF-8 already, it is detected from the content. On any failure the
// body is returned untouched.
func decodeBody(body []byte, contentType string) []byte {
	if len(body) == 0 {
		return body
	}
	contentType = strings.ToLower(contentType)
	if strings.Contains(contentType, "image/") ||
		strings.Contains(contentType, "video/") ||
		strings.Contains(contentType, "audio/") ||
		strings.Contains(contentType, "font/") {
		return body
	}

	if !strings.Contains(contentType, "charset") {
		if utf8.Valid(body) {
			return body
		}
		detected, err := chardet.NewTextDetector().DetectBest(body)
		if err != nil {
			return body
		}
		contentType = "text/plain; charset=" + detected.Charset
	}
	if strings.Contains(contentType, "utf-8") || strings.Contains(contentType, "utf8") {
		return body
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return body
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return body
	}
	return decoded
}

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

// Package export writes company records as CSV.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	yellowsnake "github.com/agentberlin/yellowsnake"
	"github.com/kennygrant/sanitize"
	"github.com/rotisserie/eris"
)

// FilePrefix starts every generated output file name
const FilePrefix = "spyur_"

// WriteCSV writes the header and one row per record. Nil records are skipped.
func WriteCSV(w io.Writer, records []*yellowsnake.CompanyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(yellowsnake.CSVHeader); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range records {
		if r == nil {
			continue
		}
		if err := cw.Write(r.Row()); err != nil {
			return eris.Wrapf(err, "export: write %s", r.SourceURL)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

// WriteFile writes records to path, creating parent directories.
func WriteFile(path string, records []*yellowsnake.CompanyRecord) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "export: create %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) ([]*yellowsnake.CompanyRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(yellowsnake.CSVHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]*yellowsnake.CompanyRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, &yellowsnake.CompanyRecord{
			Name:        row[0],
			Director:    row[1],
			Address:     row[2],
			Phones:      yellowsnake.SplitList(row[3]),
			Website:     row[4],
			SocialMedia: yellowsnake.SplitList(row[5]),
			Category:    row[6],
			SourceURL:   row[7],
		})
	}
	return records, nil
}

// FileStem turns a category label into a file name fragment. Letters of any
// script survive; every other run of characters becomes one underscore.
func FileStem(category string) string {
	words := strings.FieldsFunc(category, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		words[i] = sanitize.Accents(w)
	}
	if len(words) == 0 {
		return "category"
	}
	return strings.Join(words, "_")
}

// OutputPath is the default CSV location for one category under dir
func OutputPath(dir, category string) string {
	return filepath.Join(dir, FilePrefix+FileStem(category)+".csv")
}

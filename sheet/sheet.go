/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package sheet loads spreadsheet worksheets into frames.  The first row of
// a worksheet names its columns; each column holds numbers, timestamps, or
// strings, whichever all of its cells parse as.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ilhamster/chartviz/frame"
)

// ErrNoSheet is returned for worksheets a workbook does not have.
var ErrNoSheet = errors.New("no such worksheet")

// timeLayouts are the timestamp spellings recognized in cells, including
// the default renderings of spreadsheet date formats.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/06 15:04",
	"01-02-06",
}

// Workbook is a loaded spreadsheet: a frame per worksheet.
type Workbook struct {
	name   string
	sheets []string
	frames map[string]*frame.Frame
}

// Open loads the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook '%s': %w", path, err)
	}
	defer f.Close()
	return load(path, f)
}

// Read loads a workbook named name from r.
func Read(name string, r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook '%s': %w", name, err)
	}
	defer f.Close()
	return load(name, f)
}

func load(name string, f *excelize.File) (*Workbook, error) {
	wb := &Workbook{
		name:   name,
		sheets: f.GetSheetList(),
		frames: map[string]*frame.Frame{},
	}
	for _, sheet := range wb.sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read worksheet '%s': %w", sheet, err)
		}
		df, err := Parse(rows)
		if err != nil {
			return nil, fmt.Errorf("worksheet '%s': %w", sheet, err)
		}
		wb.frames[sheet] = df
	}
	return wb, nil
}

// Name returns the workbook's name.
func (wb *Workbook) Name() string {
	return wb.name
}

// Sheets returns the workbook's worksheet names in order.
func (wb *Workbook) Sheets() []string {
	return append([]string{}, wb.sheets...)
}

// Frame returns the named worksheet's frame.  An empty name is the first
// worksheet.
func (wb *Workbook) Frame(sheet string) (*frame.Frame, error) {
	if sheet == "" {
		if len(wb.sheets) == 0 {
			return nil, fmt.Errorf("workbook '%s' has no worksheets: %w", wb.name, ErrNoSheet)
		}
		sheet = wb.sheets[0]
	}
	df, ok := wb.frames[sheet]
	if !ok {
		return nil, fmt.Errorf("workbook '%s' worksheet '%s': %w", wb.name, sheet, ErrNoSheet)
	}
	return df, nil
}

// Parse returns the frame of a worksheet's rows.  Blank rows are skipped.
// Unnamed columns are named by their column letters.  Empty cells in
// numeric columns are NaN.
func Parse(rows [][]string) (*frame.Frame, error) {
	var header []string
	var body [][]string
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		body = append(body, row)
	}
	cols := make([]frame.Column, len(header))
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			letters, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				return nil, err
			}
			name = letters
		}
		cells := make([]string, len(body))
		for i, row := range body {
			if j < len(row) {
				cells[i] = strings.TrimSpace(row[j])
			}
		}
		cols[j] = column(name, cells)
	}
	return frame.New(cols...)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// column infers the type of cells.
func column(name string, cells []string) frame.Column {
	if fs, ok := floats(cells); ok {
		return frame.Floats(name, fs...)
	}
	if ts, ok := times(cells); ok {
		return frame.Times(name, ts...)
	}
	return frame.Strings(name, cells...)
}

func floats(cells []string) ([]float64, bool) {
	ret := make([]float64, len(cells))
	seen := false
	for i, cell := range cells {
		if cell == "" {
			ret[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return nil, false
		}
		ret[i], seen = f, true
	}
	return ret, seen
}

func times(cells []string) ([]time.Time, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	ret := make([]time.Time, len(cells))
	for i, cell := range cells {
		t, ok := parseTime(cell)
		if !ok {
			return nil, false
		}
		ret[i] = t
	}
	return ret, true
}

func parseTime(cell string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, cell, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

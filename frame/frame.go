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

// Package frame provides Frame, the columnar table that charts are drawn
// from.  A Frame is a typed view over a go-gg table: every column holds
// float64, string or time.Time values, and all columns have the same
// length.
package frame

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Errors wrapped by *ColumnError.
var (
	ErrMissingColumn = errors.New("no such column")
	ErrColumnType    = errors.New("column has the wrong type")
	ErrShape         = errors.New("inconsistent input shape")
)

// ColumnError reports input that does not have the shape a chart needs: a
// missing column, a column of the wrong type, or mismatched lengths.
type ColumnError struct {
	Column string
	Detail string
	Err    error
}

func (e *ColumnError) Error() string {
	msg := fmt.Sprintf("column '%s': %s", e.Column, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// Kind is the type of a column's values.
type Kind int

// Column kinds.
const (
	Float Kind = iota
	String
	Time
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case String:
		return "string"
	case Time:
		return "time"
	}
	return "unknown"
}

// Column is a named, typed sequence of values.
type Column struct {
	name   string
	kind   Kind
	floats []float64
	strs   []string
	times  []time.Time
}

// Floats returns a numeric column.
func Floats(name string, vs ...float64) Column {
	return Column{name: name, kind: Float, floats: vs}
}

// Strings returns a string column.
func Strings(name string, vs ...string) Column {
	return Column{name: name, kind: String, strs: vs}
}

// Times returns a timestamp column.
func Times(name string, vs ...time.Time) Column {
	return Column{name: name, kind: Time, times: vs}
}

// Name returns the column's name.
func (c Column) Name() string {
	return c.name
}

// Kind returns the type of the column's values.
func (c Column) Kind() Kind {
	return c.kind
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.kind {
	case Float:
		return len(c.floats)
	case String:
		return len(c.strs)
	default:
		return len(c.times)
	}
}

// Label returns the i-th value rendered as a string.
func (c Column) Label(i int) string {
	switch c.kind {
	case Float:
		return strconv.FormatFloat(c.floats[i], 'f', -1, 64)
	case String:
		return c.strs[i]
	default:
		return c.times[i].Format(time.RFC3339)
	}
}

func (c Column) data() slice.T {
	switch c.kind {
	case Float:
		return append([]float64{}, c.floats...)
	case String:
		return append([]string{}, c.strs...)
	default:
		return append([]time.Time{}, c.times...)
	}
}

func columnOf(name string, data slice.T) Column {
	switch vs := data.(type) {
	case []float64:
		return Floats(name, vs...)
	case []string:
		return Strings(name, vs...)
	default:
		return Times(name, vs.([]time.Time)...)
	}
}

// Frame is an immutable table of equal-length columns.
type Frame struct {
	t *table.Table
}

// New returns a Frame over the provided columns, which must have distinct
// names and equal lengths.
func New(cols ...Column) (*Frame, error) {
	seen := make(map[string]bool, len(cols))
	b := table.NewBuilder(nil)
	for idx, col := range cols {
		if seen[col.name] {
			return nil, &ColumnError{Column: col.name, Detail: "duplicate column name", Err: ErrShape}
		}
		seen[col.name] = true
		if idx > 0 && col.Len() != cols[0].Len() {
			return nil, &ColumnError{
				Column: col.name,
				Detail: fmt.Sprintf("has %d rows, expected %d", col.Len(), cols[0].Len()),
				Err:    ErrShape,
			}
		}
		b.Add(col.name, col.data())
	}
	return &Frame{t: b.Done()}, nil
}

// Table returns the underlying table.
func (f *Frame) Table() *table.Table {
	return f.t
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.t.Len()
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	return append([]string{}, f.t.Columns()...)
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, error) {
	data := f.t.Column(name)
	if data == nil {
		return Column{}, &ColumnError{Column: name, Err: ErrMissingColumn}
	}
	return columnOf(name, data), nil
}

func (f *Frame) typed(name string, kind Kind) (Column, error) {
	col, err := f.Column(name)
	if err != nil {
		return Column{}, err
	}
	if col.kind != kind {
		return Column{}, &ColumnError{
			Column: name,
			Detail: fmt.Sprintf("holds %s values, expected %s", col.kind, kind),
			Err:    ErrColumnType,
		}
	}
	return col, nil
}

// Floats returns the values of the named numeric column.
func (f *Frame) Floats(name string) ([]float64, error) {
	col, err := f.typed(name, Float)
	if err != nil {
		return nil, err
	}
	return append([]float64{}, col.floats...), nil
}

// Strings returns the values of the named string column.
func (f *Frame) Strings(name string) ([]string, error) {
	col, err := f.typed(name, String)
	if err != nil {
		return nil, err
	}
	return append([]string{}, col.strs...), nil
}

// Times returns the values of the named timestamp column.
func (f *Frame) Times(name string) ([]time.Time, error) {
	col, err := f.typed(name, Time)
	if err != nil {
		return nil, err
	}
	return append([]time.Time{}, col.times...), nil
}

// Labels returns the values of the named column, of any kind, rendered as
// strings.  Categories are read this way.
func (f *Frame) Labels(name string) ([]string, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	ret := make([]string, col.Len())
	for i := range ret {
		ret[i] = col.Label(i)
	}
	return ret, nil
}

// Select returns a Frame holding the provided rows, in the provided order.
func (f *Frame) Select(rows []int) *Frame {
	b := table.NewBuilder(nil)
	for _, name := range f.t.Columns() {
		b.Add(name, slice.Select(f.t.Column(name), rows))
	}
	return &Frame{t: b.Done()}
}

// Without returns a Frame lacking the named columns.  Names that are not
// present are ignored.
func (f *Frame) Without(names ...string) *Frame {
	var g table.Grouping = f.t
	for _, name := range names {
		if f.t.Column(name) != nil {
			g = table.Remove(g, name)
		}
	}
	return &Frame{t: table.Flatten(g)}
}

// Group is the set of rows sharing one value of a grouping column.
type Group struct {
	Key  string
	Rows []int
}

// Hidden columns used while grouping.
const (
	keyColumn = "\x00key"
	rowColumn = "\x00row"
)

// GroupBy partitions the rows by the value of the named column, with
// groups in first-seen order.  Values group by their label, so NaNs share a
// group.
func (f *Frame) GroupBy(name string) ([]Group, error) {
	labels, err := f.Labels(name)
	if err != nil {
		return nil, err
	}
	ret := []Group{}
	if len(labels) == 0 {
		return ret, nil
	}
	rows := make([]int, len(labels))
	for i := range rows {
		rows[i] = i
	}
	keyed := table.NewBuilder(nil).Add(keyColumn, labels).Add(rowColumn, rows).Done()
	g := table.GroupBy(keyed, keyColumn)
	for _, gid := range g.Tables() {
		ret = append(ret, Group{
			Key:  gid.Label().(string),
			Rows: g.Table(gid).MustColumn(rowColumn).([]int),
		})
	}
	slices.SortFunc(ret, func(a, b Group) int {
		return a.Rows[0] - b.Rows[0]
	})
	return ret, nil
}

// AxisValues returns the named column as axis coordinates: numeric values
// as they are, timestamps as fractional seconds since the Unix epoch.
// isTime reports which.
func (f *Frame) AxisValues(name string) (vs []float64, isTime bool, err error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, false, err
	}
	switch col.kind {
	case Float:
		return append([]float64{}, col.floats...), false, nil
	case Time:
		vs = make([]float64, len(col.times))
		for i, t := range col.times {
			vs[i] = float64(t.UnixNano()) / float64(time.Second)
		}
		return vs, true, nil
	}
	return nil, false, &ColumnError{
		Column: name,
		Detail: "holds string values, expected numbers or timestamps",
		Err:    ErrColumnType,
	}
}

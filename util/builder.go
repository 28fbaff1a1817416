/*
	Copyright 2023 Google Inc.
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

// Package util defines the data model shared by chart exports and chart
// data sources:
//
// V, the typed value, with {type}Value constructors and Expect{type}Value
// accessors;
//
// Datum, DataSeries, and Data, the compact JSON response tree;
//
// DataResponseBuilder and DataBuilder, for assembling responses
// programmatically from PropertyUpdates.
package util

import (
	"errors"
	"sync"
	"time"
)

// stringTable interns strings as unique integers.  It is thread-safe.
type stringTable struct {
	mu      sync.RWMutex
	indices map[string]int64
	strs    []string
}

func newStringTable(strs ...string) *stringTable {
	ret := &stringTable{indices: map[string]int64{}}
	for _, str := range strs {
		ret.stringIndex(str)
	}
	return ret
}

// stringIndex returns the index of str, interning it if needed.
func (st *stringTable) stringIndex(str string) int64 {
	st.mu.RLock()
	idx, ok := st.indices[str]
	st.mu.RUnlock()
	if ok {
		return idx
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	// Another writer may have interned str since the read above.
	if idx, ok := st.indices[str]; ok {
		return idx
	}
	idx = int64(len(st.strs))
	st.strs = append(st.strs, str)
	st.indices[str] = idx
	return idx
}

func (st *stringTable) table() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return append([]string{}, st.strs...)
}

// errorCollector gathers the errors reported by any builder of a response.
type errorCollector struct {
	mu   sync.Mutex
	errs []error
}

func (ec *errorCollector) add(err error) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.errs = append(ec.errs, err)
}

func (ec *errorCollector) failed() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return len(ec.errs) > 0
}

func (ec *errorCollector) err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return errors.Join(ec.errs...)
}

// DataBuilder is implemented by types that can assemble chart data.
type DataBuilder interface {
	With(updates ...PropertyUpdate) DataBuilder
	Child() DataBuilder
}

// DataResponseBuilder assembles the response to a DataRequest.
type DataResponseBuilder struct {
	st   *stringTable
	errs *errorCollector
	mu   sync.Mutex
	d    *Data
}

// NewDataResponseBuilder returns a new, empty DataResponseBuilder.
func NewDataResponseBuilder() *DataResponseBuilder {
	return &DataResponseBuilder{
		st:   newStringTable(),
		errs: &errorCollector{},
		d: &Data{
			StringTable: []string{},
			DataSeries:  []*DataSeries{},
		},
	}
}

// DataSeries returns a new DataBuilder for assembling the response to the
// provided DataSeriesRequest.  DataSeries is safe for concurrent use.
func (drb *DataResponseBuilder) DataSeries(req *DataSeriesRequest) DataBuilder {
	ret := newDatumBuilder(drb.errs, drb.st)
	drb.mu.Lock()
	drb.d.DataSeries = append(drb.d.DataSeries, &DataSeries{
		SeriesName: req.SeriesName,
		Root:       ret.d,
	})
	drb.mu.Unlock()
	return ret
}

// Data completes and returns the Data under construction, or the joined
// errors reported while building it.
func (drb *DataResponseBuilder) Data() (*Data, error) {
	if err := drb.errs.err(); err != nil {
		return nil, err
	}
	drb.d.StringTable = drb.st.table()
	return drb.d, nil
}

// datumBuilder assembles a single Datum.
type datumBuilder struct {
	errs *errorCollector
	st   *stringTable
	d    *Datum
}

func newDatumBuilder(errs *errorCollector, st *stringTable) *datumBuilder {
	return &datumBuilder{
		errs: errs,
		st:   st,
		d: &Datum{
			Properties: map[int64]*V{},
			Children:   []*Datum{},
		},
	}
}

// With applies the provided PropertyUpdates to the receiver in order,
// stopping at the first error.  Once any error is reported, further
// updates are ignored.
func (db *datumBuilder) With(updates ...PropertyUpdate) DataBuilder {
	if db.errs.failed() {
		return db
	}
	for _, update := range updates {
		if update == nil {
			continue
		}
		if err := update(db); err != nil {
			db.errs.add(err)
			break
		}
	}
	return db
}

// Child appends a new child Datum to the receiver and returns its builder.
func (db *datumBuilder) Child() DataBuilder {
	child := newDatumBuilder(db.errs, db.st)
	db.d.Children = append(db.d.Children, child.d)
	return child
}

func (db *datumBuilder) set(key string, v *V) *datumBuilder {
	db.d.Properties[db.st.stringIndex(key)] = v
	return db
}

// Keys are interned before values, so string table order follows the
// order in which properties are written.
func (db *datumBuilder) withStr(key, value string) *datumBuilder {
	db.d.Properties[db.st.stringIndex(key)] = StringIndexValue(db.st.stringIndex(value))
	return db
}

func (db *datumBuilder) strIndices(values []string) []int64 {
	idxs := make([]int64, len(values))
	for i, val := range values {
		idxs[i] = db.st.stringIndex(val)
	}
	return idxs
}

func (db *datumBuilder) withStrs(key string, values ...string) *datumBuilder {
	db.d.Properties[db.st.stringIndex(key)] = StringIndicesValue(db.strIndices(values)...)
	return db
}

// appendStrs extends the string slice under key, creating it if absent.
func (db *datumBuilder) appendStrs(key string, values ...string) error {
	val, ok := db.d.Properties[db.st.stringIndex(key)]
	if !ok {
		db.withStrs(key, values...)
		return nil
	}
	idxs, err := expectStringIndicesValue(val)
	if err != nil {
		return err
	}
	val.V = append(idxs, db.strIndices(values)...)
	return nil
}

func (db *datumBuilder) withInt(key string, value int64) *datumBuilder {
	return db.set(key, IntegerValue(value))
}

func (db *datumBuilder) withInts(key string, values ...int64) *datumBuilder {
	return db.set(key, IntegersValue(values...))
}

func (db *datumBuilder) withDbl(key string, value float64) *datumBuilder {
	return db.set(key, DoubleValue(value))
}

func (db *datumBuilder) withDbls(key string, values ...float64) *datumBuilder {
	return db.set(key, DoublesValue(values...))
}

func (db *datumBuilder) withDuration(key string, value time.Duration) *datumBuilder {
	return db.set(key, DurationValue(value))
}

func (db *datumBuilder) withTimestamp(key string, value time.Time) *datumBuilder {
	return db.set(key, TimestampValue(value))
}

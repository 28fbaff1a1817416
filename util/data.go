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

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Datum is a single node in a chart data series response: a set of
// string-table-keyed properties and an ordered list of children.
type Datum struct {
	Properties map[int64]*V
	Children   []*Datum
}

func (d *Datum) sortedKeys(less func(a, b int64) bool) []int64 {
	keys := make([]int64, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		return less(keys[a], keys[b])
	})
	return keys
}

// PrettyPrint returns the receiver deterministically prettyprinted, with
// properties in alphabetical key order.  Only for use in tests.
func (d *Datum) PrettyPrint(indent string, st []string) string {
	ret := []string{}
	for _, k := range d.sortedKeys(func(a, b int64) bool { return st[a] < st[b] }) {
		ret = append(ret,
			fmt.Sprintf("%sProp '%s': %s", indent, st[k], d.Properties[k].PrettyPrint(st)),
		)
	}
	for _, child := range d.Children {
		ret = append(ret,
			fmt.Sprintf("%sChild:", indent),
			child.PrettyPrint(indent+"  ", st),
		)
	}
	return strings.Join(ret, "\n")
}

// MarshalJSON encodes a Datum compactly as [[[key, V]...], [Datum...]],
// with properties in increasing key order.
func (d *Datum) MarshalJSON() ([]byte, error) {
	keys := d.sortedKeys(func(a, b int64) bool { return a < b })
	props := make([]any, len(keys))
	for idx, k := range keys {
		props[idx] = []any{k, d.Properties[k]}
	}
	children := make([]any, len(d.Children))
	for idx, child := range d.Children {
		children[idx] = child
	}
	return json.Marshal([]any{props, children})
}

func (d *Datum) fromAny(sd []any) error {
	if len(sd) != 2 {
		return fmt.Errorf("datum must have exactly two elements, got %d", len(sd))
	}
	props, err := asSlice(sd[0])
	if err != nil {
		return err
	}
	children, err := asSlice(sd[1])
	if err != nil {
		return err
	}
	d.Properties = make(map[int64]*V, len(props))
	d.Children = make([]*Datum, len(children))
	for _, prop := range props {
		kv, err := asSlice(prop)
		if err != nil {
			return err
		}
		if len(kv) != 2 {
			return fmt.Errorf("property must be a [key, value] pair")
		}
		k, err := asInt(kv[0])
		if err != nil {
			return err
		}
		raw, err := asSlice(kv[1])
		if err != nil {
			return err
		}
		v := &V{}
		if err := v.fromAny(raw); err != nil {
			return err
		}
		d.Properties[k] = v
	}
	for idx, c := range children {
		raw, err := asSlice(c)
		if err != nil {
			return err
		}
		child := &Datum{}
		if err := child.fromAny(raw); err != nil {
			return err
		}
		d.Children[idx] = child
	}
	return nil
}

// UnmarshalJSON decodes a Datum encoded by MarshalJSON.
func (d *Datum) UnmarshalJSON(data []byte) error {
	var sd []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&sd); err != nil {
		return err
	}
	return d.fromAny(sd)
}

// DataSeriesRequest is a request for a single chart data series.
type DataSeriesRequest struct {
	QueryName  string
	SeriesName string
	Options    map[string]*V
}

// DataSeries is a complete data series response.
type DataSeries struct {
	SeriesName string
	Root       *Datum
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (ds *DataSeries) PrettyPrint(indent string, st []string) string {
	return strings.Join([]string{
		fmt.Sprintf("%sSeries %s", indent, ds.SeriesName),
		indent + "  Root:",
		ds.Root.PrettyPrint(indent+"    ", st),
	}, "\n")
}

// DataRequest is a request for one or more data series.
type DataRequest struct {
	GlobalFilters  map[string]*V
	SeriesRequests []*DataSeriesRequest
}

// DataRequestFromJSON attempts to construct a DataRequest from the provided
// JSON.
func DataRequestFromJSON(j []byte) (*DataRequest, error) {
	ret := &DataRequest{}
	if err := json.Unmarshal(j, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Data is a complete data response: a shared string table and the
// requested series.
type Data struct {
	StringTable []string
	DataSeries  []*DataSeries
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (d *Data) PrettyPrint() string {
	ret := []string{"Data:"}
	for _, series := range d.DataSeries {
		ret = append(ret, series.PrettyPrint("  ", d.StringTable))
	}
	return strings.Join(ret, "\n")
}

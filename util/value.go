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
	"net/url"
	"strconv"
	"strings"
	"time"
)

type valueType int

// Enumerated value types.  New types are only ever appended, since the
// numbering is part of the wire format.
const (
	unsetValue valueType = iota
	StringValueType
	StringIndexValueType
	StringsValueType
	StringIndicesValueType
	IntegerValueType
	IntegersValueType
	DoubleValueType
	DurationValueType
	TimestampValueType
	DoublesValueType
)

var valueTypeNames = map[valueType]string{
	unsetValue:             "unset",
	StringValueType:        "str",
	StringIndexValueType:   "str_idx",
	StringsValueType:       "strs",
	StringIndicesValueType: "str_idxs",
	IntegerValueType:       "int",
	IntegersValueType:      "ints",
	DoubleValueType:        "dbl",
	DurationValueType:      "dur",
	TimestampValueType:     "ts",
	DoublesValueType:       "dbls",
}

func (vt valueType) String() string {
	if name, ok := valueTypeNames[vt]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(vt)) + ")"
}

// V is a single typed value in a chart data request or response.
type V struct {
	V any
	T valueType
}

type timestamp struct {
	UnixSeconds int64
	UnixNanos   int64
}

func (ts timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{ts.UnixSeconds, ts.UnixNanos})
}

// MarshalJSON encodes a V compactly as the two-element array
// [type, value].  Timestamps encode their value as [secs, nanos].
func (v *V) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{v.T, v.V})
}

// UnmarshalJSON decodes a V encoded by MarshalJSON.
func (v *V) UnmarshalJSON(data []byte) error {
	var got []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	return v.fromAny(got)
}

func asNumber(a any) (json.Number, error) {
	n, ok := a.(json.Number)
	if !ok {
		return "", fmt.Errorf("expected a number, got %T", a)
	}
	return n, nil
}

func asInt(a any) (int64, error) {
	n, err := asNumber(a)
	if err != nil {
		return 0, err
	}
	return n.Int64()
}

func asFloat(a any) (float64, error) {
	n, err := asNumber(a)
	if err != nil {
		return 0, err
	}
	return n.Float64()
}

func asSlice(a any) ([]any, error) {
	s, ok := a.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array, got %T", a)
	}
	return s, nil
}

func (v *V) fromAny(got []any) error {
	if len(got) != 2 {
		return fmt.Errorf("value must have exactly two elements, got %d", len(got))
	}
	t, err := asInt(got[0])
	if err != nil {
		return err
	}
	v.T = valueType(t)
	raw := got[1]
	switch v.T {
	case StringIndexValueType, IntegerValueType:
		v.V, err = asInt(raw)
	case DoubleValueType:
		v.V, err = asFloat(raw)
	case DurationValueType:
		var ns int64
		ns, err = asInt(raw)
		v.V = time.Duration(ns)
	case StringsValueType:
		var items []any
		if items, err = asSlice(raw); err != nil {
			return err
		}
		strs := make([]string, len(items))
		for idx, item := range items {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected a string, got %T", item)
			}
			if strs[idx], err = url.QueryUnescape(s); err != nil {
				return err
			}
		}
		v.V = strs
	case StringIndicesValueType, IntegersValueType:
		var items []any
		if items, err = asSlice(raw); err != nil {
			return err
		}
		ints := make([]int64, len(items))
		for idx, item := range items {
			if ints[idx], err = asInt(item); err != nil {
				return err
			}
		}
		v.V = ints
	case DoublesValueType:
		var items []any
		if items, err = asSlice(raw); err != nil {
			return err
		}
		dbls := make([]float64, len(items))
		for idx, item := range items {
			if dbls[idx], err = asFloat(item); err != nil {
				return err
			}
		}
		v.V = dbls
	case TimestampValueType:
		var parts []any
		if parts, err = asSlice(raw); err != nil {
			return err
		}
		if len(parts) != 2 {
			return fmt.Errorf("timestamp value is improperly formed")
		}
		var ts timestamp
		if ts.UnixSeconds, err = asInt(parts[0]); err != nil {
			return err
		}
		if ts.UnixNanos, err = asInt(parts[1]); err != nil {
			return err
		}
		v.V = ts
	default:
		v.V = raw
	}
	return err
}

// PrettyPrint returns the receiver, deterministically prettyprinted, with
// string indices resolved against st.  Only for use in tests.
func (v *V) PrettyPrint(st []string) string {
	quote := func(strs []string) string {
		return "[ '" + strings.Join(strs, "', '") + "' ]"
	}
	var ret string
	var err error
	switch v.T {
	case unsetValue:
		ret = "unset"
	case StringValueType:
		ret, err = ExpectStringValue(v)
		ret = "'" + ret + "'"
	case StringIndexValueType:
		var idx int64
		if idx, err = expectStringIndexValue(v); err == nil {
			ret = "'" + st[idx] + "'"
		}
	case StringsValueType:
		var strs []string
		strs, err = ExpectStringsValue(v)
		ret = quote(strs)
	case StringIndicesValueType:
		var idxs []int64
		if idxs, err = expectStringIndicesValue(v); err == nil {
			strs := make([]string, len(idxs))
			for i, idx := range idxs {
				strs[i] = st[idx]
			}
			ret = quote(strs)
		}
	case IntegerValueType:
		var i int64
		i, err = ExpectIntegerValue(v)
		ret = strconv.FormatInt(i, 10)
	case IntegersValueType:
		var ints []int64
		ints, err = ExpectIntegersValue(v)
		strs := make([]string, len(ints))
		for i, n := range ints {
			strs[i] = strconv.FormatInt(n, 10)
		}
		ret = "[ " + strings.Join(strs, ", ") + " ]"
	case DoubleValueType:
		var d float64
		d, err = ExpectDoubleValue(v)
		ret = fmt.Sprintf("%.6f", d)
	case DoublesValueType:
		var dbls []float64
		dbls, err = ExpectDoublesValue(v)
		strs := make([]string, len(dbls))
		for i, d := range dbls {
			strs[i] = fmt.Sprintf("%.6f", d)
		}
		ret = "[ " + strings.Join(strs, ", ") + " ]"
	case DurationValueType:
		var dur time.Duration
		dur, err = ExpectDurationValue(v)
		ret = dur.String()
	case TimestampValueType:
		var ts time.Time
		ts, err = ExpectTimestampValue(v)
		ret = ts.UTC().String()
	}
	if err != nil {
		return "error: " + err.Error()
	}
	return ret
}

// StringValue returns a new Value wrapping the provided string.
func StringValue(str string) *V {
	return &V{V: str, T: StringValueType}
}

// StringIndexValue returns a new Value wrapping the provided string index.
func StringIndexValue(strIdx int64) *V {
	return &V{V: strIdx, T: StringIndexValueType}
}

// StringsValue returns a new Value wrapping the provided strings.
func StringsValue(strs ...string) *V {
	return &V{V: strs, T: StringsValueType}
}

// StringIndicesValue returns a new Value wrapping the provided string
// indices.
func StringIndicesValue(strIdxs ...int64) *V {
	return &V{V: strIdxs, T: StringIndicesValueType}
}

// IntegerValue returns a new Value wrapping the provided int64.
func IntegerValue(i int64) *V {
	return &V{V: i, T: IntegerValueType}
}

// IntegersValue returns a new Value wrapping the provided int64s.
func IntegersValue(ints ...int64) *V {
	return &V{V: ints, T: IntegersValueType}
}

// DoubleValue returns a new Value wrapping the provided float64.
func DoubleValue(f float64) *V {
	return &V{V: f, T: DoubleValueType}
}

// DoublesValue returns a new Value wrapping the provided float64s.
func DoublesValue(fs ...float64) *V {
	return &V{V: fs, T: DoublesValueType}
}

// DurationValue returns a new Value wrapping the provided Duration.
func DurationValue(dur time.Duration) *V {
	return &V{V: dur, T: DurationValueType}
}

// TimestampValue returns a new Value wrapping the provided Timestamp.
func TimestampValue(t time.Time) *V {
	return &V{
		V: timestamp{
			UnixSeconds: t.Unix(),
			UnixNanos:   int64(t.Nanosecond()),
		},
		T: TimestampValueType,
	}
}

func typeMismatch(val *V, want valueType) error {
	if val == nil {
		return fmt.Errorf("expected value type '%s', got nil", want)
	}
	return fmt.Errorf("expected value type '%s', got '%s'", want, val.T)
}

// ExpectStringValue expects the provided Value to be a string, returning
// that string or an error if it isn't.
func ExpectStringValue(val *V) (string, error) {
	if val == nil || val.T != StringValueType {
		return "", typeMismatch(val, StringValueType)
	}
	return url.QueryUnescape(val.V.(string))
}

func expectStringIndexValue(val *V) (int64, error) {
	if val == nil || val.T != StringIndexValueType {
		return 0, typeMismatch(val, StringIndexValueType)
	}
	return val.V.(int64), nil
}

// ExpectStringsValue expects the provided Value to be a Strings, returning
// its string slice or an error if it isn't.
func ExpectStringsValue(val *V) ([]string, error) {
	if val == nil || val.T != StringsValueType {
		return nil, typeMismatch(val, StringsValueType)
	}
	return val.V.([]string), nil
}

func expectStringIndicesValue(val *V) ([]int64, error) {
	if val == nil || val.T != StringIndicesValueType {
		return nil, typeMismatch(val, StringIndicesValueType)
	}
	return val.V.([]int64), nil
}

// ExpectIntegerValue expects the provided Value to be an integer, returning
// that integer or an error if it isn't.
func ExpectIntegerValue(val *V) (int64, error) {
	if val == nil || val.T != IntegerValueType {
		return 0, typeMismatch(val, IntegerValueType)
	}
	return val.V.(int64), nil
}

// ExpectIntegersValue expects the provided Value to be an Integers,
// returning its int64 slice or an error if it isn't.
func ExpectIntegersValue(val *V) ([]int64, error) {
	if val == nil || val.T != IntegersValueType {
		return nil, typeMismatch(val, IntegersValueType)
	}
	return val.V.([]int64), nil
}

// ExpectDoubleValue expects the provided Value to be a float64, returning
// that float or an error if it isn't.
func ExpectDoubleValue(val *V) (float64, error) {
	if val == nil || val.T != DoubleValueType {
		return 0, typeMismatch(val, DoubleValueType)
	}
	return val.V.(float64), nil
}

// ExpectDoublesValue expects the provided Value to be a Doubles, returning
// its float64 slice or an error if it isn't.
func ExpectDoublesValue(val *V) ([]float64, error) {
	if val == nil || val.T != DoublesValueType {
		return nil, typeMismatch(val, DoublesValueType)
	}
	return val.V.([]float64), nil
}

// ExpectDurationValue expects the provided Value to be a duration, returning
// that duration or an error if it isn't.
func ExpectDurationValue(val *V) (time.Duration, error) {
	if val == nil || val.T != DurationValueType {
		return 0, typeMismatch(val, DurationValueType)
	}
	return val.V.(time.Duration), nil
}

// ExpectTimestampValue expects the provided Value to be a timestamp,
// returning that timestamp or an error if it isn't.
func ExpectTimestampValue(val *V) (time.Time, error) {
	if val == nil || val.T != TimestampValueType {
		return time.Time{}, typeMismatch(val, TimestampValueType)
	}
	ts := val.V.(timestamp)
	return time.Unix(ts.UnixSeconds, ts.UnixNanos), nil
}

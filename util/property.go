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

import "time"

// PropertyUpdate is a function that updates a provided datumBuilder.  A nil
// PropertyUpdate does nothing.
type PropertyUpdate func(db *datumBuilder) error

// Value specifies a value for a property whose key is not yet known.  It
// returns a function accepting a key and returning the PropertyUpdate.
type Value func(key string) PropertyUpdate

// EmptyUpdate is a PropertyUpdate that does nothing.
var EmptyUpdate PropertyUpdate = nil

// ErrorProperty injects an error into the Data response under construction.
func ErrorProperty(err error) PropertyUpdate {
	return func(db *datumBuilder) error {
		return err
	}
}

// If applies the provided PropertyUpdate if the provided predicate is true.
func If(predicate bool, du PropertyUpdate) PropertyUpdate {
	if predicate {
		return du
	}
	return EmptyUpdate
}

// IfElse applies t if the provided predicate is true, and f otherwise.
func IfElse(predicate bool, t, f PropertyUpdate) PropertyUpdate {
	if predicate {
		return t
	}
	return f
}

// Chain applies the provided PropertyUpdates in order.
func Chain(updates ...PropertyUpdate) PropertyUpdate {
	return func(db *datumBuilder) error {
		for _, update := range updates {
			if update == nil {
				continue
			}
			if err := update(db); err != nil {
				return err
			}
		}
		return nil
	}
}

// Nothing is a Value setting nothing.
var Nothing Value = func(key string) PropertyUpdate {
	return EmptyUpdate
}

// String produces a Value setting the specified string value.
func String(value string) Value {
	return func(key string) PropertyUpdate {
		return StringProperty(key, value)
	}
}

// Strings produces a Value setting the specified []string value.
func Strings(values ...string) Value {
	return func(key string) PropertyUpdate {
		return StringsProperty(key, values...)
	}
}

// Integer produces a Value setting the specified int64 value.
func Integer(value int64) Value {
	return func(key string) PropertyUpdate {
		return IntegerProperty(key, value)
	}
}

// Double produces a Value setting the specified float64 value.
func Double(value float64) Value {
	return func(key string) PropertyUpdate {
		return DoubleProperty(key, value)
	}
}

// Doubles produces a Value setting the specified []float64 value.
func Doubles(values ...float64) Value {
	return func(key string) PropertyUpdate {
		return DoublesProperty(key, values...)
	}
}

// Duration produces a Value setting the specified time.Duration value.
func Duration(value time.Duration) Value {
	return func(key string) PropertyUpdate {
		return DurationProperty(key, value)
	}
}

// Timestamp produces a Value setting the specified time.Time value.
func Timestamp(value time.Time) Value {
	return func(key string) PropertyUpdate {
		return TimestampProperty(key, value)
	}
}

// StringProperty returns a PropertyUpdate adding the specified string property.
func StringProperty(key, value string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withStr(key, value)
		return nil
	}
}

// StringsProperty returns a PropertyUpdate adding the specified string slice
// property.
func StringsProperty(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withStrs(key, values...)
		return nil
	}
}

// StringsPropertyExtended returns a PropertyUpdate extending the specified
// string slice property.
func StringsPropertyExtended(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		return db.appendStrs(key, values...)
	}
}

// IntegerProperty returns a PropertyUpdate adding the specified integer
// property.
func IntegerProperty(key string, value int64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withInt(key, value)
		return nil
	}
}

// IntegersProperty returns a PropertyUpdate adding the specified integer
// slice property.
func IntegersProperty(key string, values ...int64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withInts(key, values...)
		return nil
	}
}

// DoubleProperty returns a PropertyUpdate adding the specified double
// property.
func DoubleProperty(key string, value float64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withDbl(key, value)
		return nil
	}
}

// DoublesProperty returns a PropertyUpdate adding the specified double
// slice property.
func DoublesProperty(key string, values ...float64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withDbls(key, values...)
		return nil
	}
}

// DurationProperty returns a PropertyUpdate adding the specified duration
// property.
func DurationProperty(key string, value time.Duration) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withDuration(key, value)
		return nil
	}
}

// TimestampProperty returns a PropertyUpdate adding the specified timestamp
// property.
func TimestampProperty(key string, value time.Time) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withTimestamp(key, value)
		return nil
	}
}

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

package util

import "fmt"

// StringOption returns the string option named key from opts, or def if it
// is absent.  A present option of another type is an error.
func StringOption(opts map[string]*V, key, def string) (string, error) {
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	ret, err := ExpectStringValue(v)
	if err != nil {
		return "", fmt.Errorf("option '%s': %w", key, err)
	}
	return ret, nil
}

// StringsOption returns the string slice option named key from opts, or
// nil if it is absent.
func StringsOption(opts map[string]*V, key string) ([]string, error) {
	v, ok := opts[key]
	if !ok {
		return nil, nil
	}
	ret, err := ExpectStringsValue(v)
	if err != nil {
		return nil, fmt.Errorf("option '%s': %w", key, err)
	}
	return ret, nil
}

// IntegerOption returns the integer option named key from opts, or def if
// it is absent.
func IntegerOption(opts map[string]*V, key string, def int64) (int64, error) {
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	ret, err := ExpectIntegerValue(v)
	if err != nil {
		return 0, fmt.Errorf("option '%s': %w", key, err)
	}
	return ret, nil
}

// DoubleOption returns the double option named key from opts, or def if it
// is absent.  Integer options are accepted and converted.
func DoubleOption(opts map[string]*V, key string, def float64) (float64, error) {
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	if i, err := ExpectIntegerValue(v); err == nil {
		return float64(i), nil
	}
	ret, err := ExpectDoubleValue(v)
	if err != nil {
		return 0, fmt.Errorf("option '%s': %w", key, err)
	}
	return ret, nil
}

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

// Package categoryaxis defines categorical chart axes: a finite, ordered
// list of factors, each owning a unit-wide slot along the axis.
package categoryaxis

import (
	"fmt"

	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	"github.com/ilhamster/chartviz/util"
)

const (
	factorsKey               = "category_axis_factors"
	categoryPaddingCatPxKey  = "category_padding_cat_px"
	categoryMinWidthCatPxKey = "category_min_width_cat_px"
	labelHeightPxKey         = "category_label_height_px"
)

// RenderSettings is a collection of rendering settings for category axes.
// Extents along the category axis are suffixed 'CatPx'.
type RenderSettings struct {
	// The padding between adjacent categories along the category axis.
	CategoryPaddingCatPx int64
	// The minimum width of a category along the category axis.
	CategoryMinWidthCatPx int64
	// The space reserved for factor labels.
	LabelHeightPx int64
}

// Define applies the receiver as a set of properties.
func (rs *RenderSettings) Define() util.PropertyUpdate {
	return util.Chain(
		util.IntegerProperty(categoryPaddingCatPxKey, rs.CategoryPaddingCatPx),
		util.IntegerProperty(categoryMinWidthCatPxKey, rs.CategoryMinWidthCatPx),
		util.IntegerProperty(labelHeightPxKey, rs.LabelHeightPx),
	)
}

// Factors is an ordered set of distinct category names.  Factor i occupies
// [i, i+1) along the axis.
type Factors struct {
	names []string
	index map[string]int
}

// NewFactors returns a Factors over the provided names, which must be
// distinct.
func NewFactors(names ...string) (*Factors, error) {
	f := &Factors{
		names: append([]string{}, names...),
		index: make(map[string]int, len(names)),
	}
	for idx, name := range names {
		if _, ok := f.index[name]; ok {
			return nil, fmt.Errorf("duplicate factor '%s'", name)
		}
		f.index[name] = idx
	}
	return f, nil
}

// Names returns the factors in axis order.
func (f *Factors) Names() []string {
	return append([]string{}, f.names...)
}

// Len returns the number of factors.
func (f *Factors) Len() int {
	return len(f.names)
}

// Index returns the position of the named factor.
func (f *Factors) Index(name string) (int, bool) {
	idx, ok := f.index[name]
	return idx, ok
}

// Center returns the axis coordinate of the middle of the named factor's
// slot.
func (f *Factors) Center(name string) (float64, bool) {
	idx, ok := f.index[name]
	if !ok {
		return 0, false
	}
	return float64(idx) + 0.5, true
}

// Range returns the axis extent spanned by all factors.
func (f *Factors) Range() continuousaxis.Range {
	return continuousaxis.Range{Min: 0, Max: float64(len(f.names))}
}

// Define annotates with the receiver's factors.
func (f *Factors) Define() util.PropertyUpdate {
	return util.StringsProperty(factorsKey, f.names...)
}

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

// Package continuousaxis defines continuous chart axes.  An axis has a
// category naming it, a domain type (numbers or timestamps), and extents.
// The package also computes what renderers need to draw an axis: padded
// ranges, tick positions, and tick labels.
package continuousaxis

import (
	"math"
	"time"

	"github.com/ilhamster/chartviz/category"
	"github.com/ilhamster/chartviz/util"
)

const (
	axisTypeKey  = "axis_type"
	axisMinKey   = "axis_min"
	axisMaxKey   = "axis_max"
	axisTicksKey = "axis_ticks"

	timestampAxisType = "timestamp"
	doubleAxisType    = "double"

	xAxisRenderLabelHeightPxKey   = "x_axis_render_label_height_px"
	xAxisRenderMarkersHeightPxKey = "x_axis_render_markers_height_px"
	yAxisRenderLabelWidthPxKey    = "y_axis_render_label_width_px"
	yAxisRenderMarkersWidthPxKey  = "y_axis_render_markers_width_px"
)

// XAxisRenderSettings configures the space reserved for an X axis.
type XAxisRenderSettings struct {
	LabelHeightPx   int64
	MarkersHeightPx int64
}

// Apply annotates with the receiving XAxisRenderSettings.
func (x XAxisRenderSettings) Apply() util.PropertyUpdate {
	return util.Chain(
		util.IntegerProperty(xAxisRenderLabelHeightPxKey, x.LabelHeightPx),
		util.IntegerProperty(xAxisRenderMarkersHeightPxKey, x.MarkersHeightPx),
	)
}

// YAxisRenderSettings configures the space reserved for a Y axis.
type YAxisRenderSettings struct {
	LabelWidthPx   int64
	MarkersWidthPx int64
}

// Apply annotates with the receiving YAxisRenderSettings.
func (y YAxisRenderSettings) Apply() util.PropertyUpdate {
	return util.Chain(
		util.IntegerProperty(yAxisRenderLabelWidthPxKey, y.LabelWidthPx),
		util.IntegerProperty(yAxisRenderMarkersWidthPxKey, y.MarkersWidthPx),
	)
}

// Axis is a continuous axis over values of type T.
type Axis[T float64 | time.Time] struct {
	axisType string
	cat      *category.Category
	Value    func(key string, v T) util.PropertyUpdate
	min, max T
	ticks    []T
}

// Define annotates with a definition of the receiver.
func (a *Axis[T]) Define() util.PropertyUpdate {
	tickUpdates := make([]util.PropertyUpdate, 0, len(a.ticks))
	for idx, tick := range a.ticks {
		tickUpdates = append(tickUpdates, a.Value(axisTicksKey+"_"+itoa(idx), tick))
	}
	return util.Chain(
		a.cat.Define(),
		util.StringProperty(axisTypeKey, a.axisType),
		a.Value(axisMinKey, a.min),
		a.Value(axisMaxKey, a.max),
		util.If(len(a.ticks) > 0, util.IntegerProperty(axisTicksKey, int64(len(a.ticks)))),
		util.Chain(tickUpdates...),
	)
}

// WithTicks sets the tick positions exported with the receiver.
func (a *Axis[T]) WithTicks(ticks ...T) *Axis[T] {
	a.ticks = ticks
	return a
}

// CategoryID returns the category ID of the receiving Axis.
func (a *Axis[T]) CategoryID() string {
	return a.cat.ID()
}

// Extents returns the receiver's minimum and maximum.
func (a *Axis[T]) Extents() (T, T) {
	return a.min, a.max
}

// NewTimestampAxis returns a new timestamp axis with the specified category,
// spanning the lowest and highest of the provided extents.
func NewTimestampAxis(cat *category.Category, extents ...time.Time) *Axis[time.Time] {
	var min, max time.Time
	for _, extent := range extents {
		if min.IsZero() || min.After(extent) {
			min = extent
		}
		if max.IsZero() || max.Before(extent) {
			max = extent
		}
	}
	return &Axis[time.Time]{
		axisType: timestampAxisType,
		cat:      cat,
		Value: func(key string, v time.Time) util.PropertyUpdate {
			return util.TimestampProperty(key, v)
		},
		min: min,
		max: max,
	}
}

// NewDoubleAxis returns a new numeric axis with the specified category,
// spanning the lowest and highest of the provided extents.  NaN extents are
// ignored.
func NewDoubleAxis(cat *category.Category, extents ...float64) *Axis[float64] {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, extent := range extents {
		if math.IsNaN(extent) {
			continue
		}
		min, max = math.Min(min, extent), math.Max(max, extent)
	}
	return &Axis[float64]{
		axisType: doubleAxisType,
		cat:      cat,
		Value: func(key string, v float64) util.PropertyUpdate {
			return util.DoubleProperty(key, v)
		},
		min: min,
		max: max,
	}
}

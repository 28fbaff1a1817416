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

// Package xychart facilitates the construction of xy-chart data.
// Given a dedicated chartRoot *util.DataBuilder representing the root node of
// the chart, and which must not be used for any other purpose, a new XYChart
// instance may be created via
//
//	chart := New(chartRoot, xAxis, yAxis, ...properties)
//
// Then, a new data series within the chart may be added via
//
//	series := chart.AddSeries(category, Mark(Line), properties...)
//
// Points may be added to the series via
//
//	series.WithPoint(x, y, properties...)
//
// and histogram-style spans, covering [x0, x1) up to y, via
//
//	series.WithSpan(x0, x1, y, properties...)
//
// The structure of an xy chart in a response, with each level representing a
// DataSeries or nested Datum is:
//
//	xychart
//	  properties:
//	    * <decorators>
//	  children:
//	    * axes
//	    * repeated series
//
//	axes
//	  children:
//	    * x axis
//	    * y axis
//
//	series
//	  properties:
//	    * category definition
//	    * mark
//	    * <decorators>
//	  children:
//	    repeated points
//
//	point
//	  properties:
//	    * xAxisName: Value (depending on x-axis type)
//	    * yAxisName: Value
//	    * x_end: Value, for spans only
//	    * <decorators>
package xychart

import (
	"time"

	"github.com/ilhamster/chartviz/category"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	"github.com/ilhamster/chartviz/util"
)

const (
	markKey        = "mark"
	lineWidthKey   = "line_width_px"
	pointSizeKey   = "point_size_px"
	spanEndKey     = "x_end"
	spanBottomKey  = "y_bottom"
	fillOpacityKey = "fill_opacity"
)

// MarkType is the glyph used to draw a series.
type MarkType string

// Supported mark types.
const (
	Line   MarkType = "line"
	Points MarkType = "points"
	Quads  MarkType = "quads"
)

// Mark annotates a series with the glyph used to draw it.
func Mark(m MarkType) util.PropertyUpdate {
	return util.StringProperty(markKey, string(m))
}

// LineWidth annotates a line series with its stroke width in pixels.
func LineWidth(px float64) util.PropertyUpdate {
	return util.DoubleProperty(lineWidthKey, px)
}

// PointSize annotates a point series with its marker size in pixels.
func PointSize(px float64) util.PropertyUpdate {
	return util.DoubleProperty(pointSizeKey, px)
}

// FillOpacity annotates a quad series with its fill opacity.
func FillOpacity(alpha float64) util.PropertyUpdate {
	return util.DoubleProperty(fillOpacityKey, alpha)
}

// XYChart represents an xy-chart embedded in a response.
type XYChart[X float64 | time.Time] struct {
	xAxis *continuousaxis.Axis[X]
	yAxis *continuousaxis.Axis[float64]
	db    util.DataBuilder
}

// New constructs a new xy chart over the provided axes.
func New[X float64 | time.Time](
	db util.DataBuilder,
	xAxis *continuousaxis.Axis[X],
	yAxis *continuousaxis.Axis[float64],
	properties ...util.PropertyUpdate,
) *XYChart[X] {
	ret := &XYChart[X]{
		xAxis: xAxis,
		yAxis: yAxis,
		db:    db.With(properties...),
	}
	axes := ret.db.Child()
	axes.Child().With(xAxis.Define())
	axes.Child().With(yAxis.Define())
	return ret
}

// With annotates the receiving xy-chart with the provided properties.
func (xyc *XYChart[X]) With(properties ...util.PropertyUpdate) *XYChart[X] {
	xyc.db.With(properties...)
	return xyc
}

// AddSeries defines a series within the receiving XYChart, tagged with the
// specified Category.
func (xyc *XYChart[X]) AddSeries(category *category.Category, properties ...util.PropertyUpdate) *Series[X] {
	db := xyc.db.Child().With(category.Define()).With(properties...)
	return &Series[X]{
		xyc: xyc,
		db:  db,
	}
}

// Series helps define a series within a XYChart.
type Series[X float64 | time.Time] struct {
	xyc *XYChart[X]
	db  util.DataBuilder
}

// With annotates the receiving Series with the provided properties.
func (s *Series[X]) With(properties ...util.PropertyUpdate) *Series[X] {
	s.db.With(properties...)
	return s
}

// WithPoint adds a data point to the receiving Series, with the
// specified x and y values and arbitrary other properties.
func (s *Series[X]) WithPoint(x X, y float64, properties ...util.PropertyUpdate) *Series[X] {
	s.db.Child().With(
		s.xyc.xAxis.Value(s.xyc.xAxis.CategoryID(), x),
		s.xyc.yAxis.Value(s.xyc.yAxis.CategoryID(), y),
	).With(properties...)
	return s
}

// WithSpan adds a rectangle spanning [x0, x1) horizontally and [bottom, top]
// vertically to the receiving Series.
func (s *Series[X]) WithSpan(x0, x1 X, bottom, top float64, properties ...util.PropertyUpdate) *Series[X] {
	s.db.Child().With(
		s.xyc.xAxis.Value(s.xyc.xAxis.CategoryID(), x0),
		s.xyc.xAxis.Value(spanEndKey, x1),
		s.xyc.yAxis.Value(s.xyc.yAxis.CategoryID(), top),
		util.If(bottom != 0, util.DoubleProperty(spanBottomKey, bottom)),
	).With(properties...)
	return s
}

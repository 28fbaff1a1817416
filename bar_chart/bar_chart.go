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

// Package barchart defines a bar chart with a discrete category axis and a
// continuous value axis.
//
// BarChart is constructed into a provided DataBuilder db with:
//
//	bc := New(db, valueAxis, renderSettings, properties...)
//
// Categories are then added, in display order, with:
//
//	bcCat := bc.Category(cat, properties...)
//
// and each category holds any number of lanes, added with:
//
//	stackedBars := bcCat.StackedBars()
//	bar := bcCat.Bar(lowerExtent, upperExtent)
//	boxPlot := bcCat.BoxPlot(min, q1, q2, q3, max)
//
// A box plot may carry whisker fences and outliers:
//
//	boxPlot.Fences(lower, upper).Outliers(values...)
//
// Within a StackedBars, child bars are rendered in definition order, and
// each bar's lower extent is the previous bar's upper extent.
package barchart

import (
	"time"

	"github.com/ilhamster/chartviz/category"
	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	"github.com/ilhamster/chartviz/util"
)

const (
	// Data types
	dataTypeKey    = "bar_chart_data_type"
	stackedBarsKey = "bar_chart_stacked_bars"
	barKey         = "bar_chart_bar"
	boxPlotKey     = "bar_chart_box_plot"

	// Datum keys
	barLowerExtentKey  = "bar_chart_bar_lower_extent"
	barUpperExtentKey  = "bar_chart_bar_upper_extent"
	boxPlotMinKey      = "bar_chart_box_plot_min"
	boxPlotQ1Key       = "bar_chart_box_plot_q1"
	boxPlotQ2Key       = "bar_chart_box_plot_q2"
	boxPlotQ3Key       = "bar_chart_box_plot_q3"
	boxPlotMaxKey      = "bar_chart_box_plot_max"
	boxPlotLowerKey    = "bar_chart_box_plot_lower_fence"
	boxPlotUpperKey    = "bar_chart_box_plot_upper_fence"
	boxPlotOutliersKey = "bar_chart_box_plot_outliers"

	// Rendering property keys
	barWidthCatPxKey   = "bar_chart_bar_width_cat_px"
	barPaddingCatPxKey = "bar_chart_bar_padding_cat_px"
)

// Property keys expected by the bar chart view.
const (
	DetailFormatKey = "detail_format"
	LabelFormatKey  = "label_format"
)

// LabelFormat annotates a bar or box with its label format.
func LabelFormat(format string) util.PropertyUpdate {
	return util.StringProperty(LabelFormatKey, format)
}

// DetailFormat annotates a bar or box with its hover detail format.
func DetailFormat(format string) util.PropertyUpdate {
	return util.StringProperty(DetailFormatKey, format)
}

// RenderSettings is a collection of rendering settings for bar chart.  A bar
// chart is rendered on a two-dimensional plane, with one continuous axis
// showing values ('val') and one discrete axis showing the categories, or
// lanes, into which the bars are rendered.
type RenderSettings struct {
	// The width of a bar along the category axis.
	BarWidthCatPx int64
	// The padding between adjacent bars along the category axis.
	BarPaddingCatPx            int64
	CategoryAxisRenderSettings *categoryaxis.RenderSettings
	XAxisRenderSettings        *continuousaxis.XAxisRenderSettings
}

func (rs *RenderSettings) define() util.PropertyUpdate {
	return util.Chain(
		util.IntegerProperty(barWidthCatPxKey, rs.BarWidthCatPx),
		util.IntegerProperty(barPaddingCatPxKey, rs.BarPaddingCatPx),
		rs.CategoryAxisRenderSettings.Define(),
		rs.XAxisRenderSettings.Apply(),
	)
}

// BarChart represents a bar chart with one continuous value axis and one
// discrete category axis.
type BarChart[T float64 | time.Time] struct {
	db        util.DataBuilder
	valueAxis *continuousaxis.Axis[T]
}

// New returns a new BarChart populating the provided DataBuilder, and using
// the provided value axis and render settings.
func New[T float64 | time.Time](db util.DataBuilder, valueAxis *continuousaxis.Axis[T], renderSettings *RenderSettings, properties ...util.PropertyUpdate) *BarChart[T] {
	return &BarChart[T]{
		db: db.With(
			valueAxis.Define(),
			renderSettings.define(),
		).With(
			properties...,
		),
		valueAxis: valueAxis,
	}
}

// With annotates the receiver with the provided properties.
func (bc *BarChart[T]) With(properties ...util.PropertyUpdate) *BarChart[T] {
	bc.db.With(properties...)
	return bc
}

// Category adds a new category lane, with the provided Category, to the
// receiver.
func (bc *BarChart[T]) Category(category *category.Category, properties ...util.PropertyUpdate) *Category[T] {
	db := bc.db.Child().
		With(category.Define())
	return (&Category[T]{
		db:        db,
		valueAxis: bc.valueAxis,
	}).With(properties...)
}

// Category represents a category lane within a bar chart.
type Category[T float64 | time.Time] struct {
	db        util.DataBuilder
	valueAxis *continuousaxis.Axis[T]
}

// With annotates the receiver with the provided properties.
func (c *Category[T]) With(properties ...util.PropertyUpdate) *Category[T] {
	c.db.With(properties...)
	return c
}

// StackedBars returns a new stacked bar added into the receiving Category.
func (c *Category[T]) StackedBars() *StackedBars[T] {
	db := c.db.Child().With(
		util.StringProperty(dataTypeKey, stackedBarsKey),
	)
	return &StackedBars[T]{
		db:        db,
		valueAxis: c.valueAxis,
	}
}

// Bar returns a new bar added into the receiving Category.
func (c *Category[T]) Bar(lower, upper T) *Bar[T] {
	return newBar[T](c.db, c.valueAxis, lower, upper)
}

// BoxPlot returns a new BoxPlot with the provided quartile rank values:
// the minimum, first quartile, median, third quartile, and maximum.
func (c *Category[T]) BoxPlot(min, q1, q2, q3, max T) *BoxPlot[T] {
	return &BoxPlot[T]{
		db: c.db.Child().With(
			util.StringProperty(dataTypeKey, boxPlotKey),
			c.valueAxis.Value(boxPlotMinKey, min),
			c.valueAxis.Value(boxPlotQ1Key, q1),
			c.valueAxis.Value(boxPlotQ2Key, q2),
			c.valueAxis.Value(boxPlotQ3Key, q3),
			c.valueAxis.Value(boxPlotMaxKey, max),
		),
		valueAxis: c.valueAxis,
	}
}

// StackedBars represents a collection of Bars within a Category.
type StackedBars[T float64 | time.Time] struct {
	db        util.DataBuilder
	valueAxis *continuousaxis.Axis[T]
}

// Bar returns a new bar added into the receiving StackedBars.
func (sb *StackedBars[T]) Bar(lower, upper T) *Bar[T] {
	return newBar[T](sb.db, sb.valueAxis, lower, upper)
}

// Bar represents a single bar within a Category or a StackedBars.
type Bar[T float64 | time.Time] struct {
	db util.DataBuilder
}

// With annotates the receiver with the provided properties.
func (b *Bar[T]) With(properties ...util.PropertyUpdate) *Bar[T] {
	b.db.With(properties...)
	return b
}

func newBar[T float64 | time.Time](parentDb util.DataBuilder, valueAxis *continuousaxis.Axis[T], lower, upper T) *Bar[T] {
	return &Bar[T]{
		db: parentDb.Child().With(
			util.StringProperty(dataTypeKey, barKey),
			valueAxis.Value(barLowerExtentKey, lower),
			valueAxis.Value(barUpperExtentKey, upper),
		),
	}
}

// BoxPlot represents a box plot within a Category.
type BoxPlot[T float64 | time.Time] struct {
	db        util.DataBuilder
	valueAxis *continuousaxis.Axis[T]
}

// With annotates the receiver with the provided properties.
func (bp *BoxPlot[T]) With(properties ...util.PropertyUpdate) *BoxPlot[T] {
	bp.db.With(properties...)
	return bp
}

// Fences sets the ends of the receiver's whiskers.
func (bp *BoxPlot[T]) Fences(lower, upper T) *BoxPlot[T] {
	bp.db.With(
		bp.valueAxis.Value(boxPlotLowerKey, lower),
		bp.valueAxis.Value(boxPlotUpperKey, upper),
	)
	return bp
}

// Outliers adds a child datum for each provided outlying value.
func (bp *BoxPlot[T]) Outliers(values ...T) *BoxPlot[T] {
	if len(values) == 0 {
		return bp
	}
	outliers := bp.db.Child().With(util.StringProperty(dataTypeKey, boxPlotOutliersKey))
	for _, v := range values {
		outliers.Child().With(bp.valueAxis.Value(bp.valueAxis.CategoryID(), v))
	}
	return bp
}

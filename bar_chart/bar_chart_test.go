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

package barchart

import (
	"testing"

	"github.com/ilhamster/chartviz/category"
	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	"github.com/ilhamster/chartviz/color"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	testutil "github.com/ilhamster/chartviz/test_util"
	"github.com/ilhamster/chartviz/util"
)

var (
	dblAxis        = continuousaxis.NewDoubleAxis(category.New("axis", "axis", "axis"), 0, 100)
	renderSettings = &RenderSettings{
		BarWidthCatPx:   20,
		BarPaddingCatPx: 1,
		CategoryAxisRenderSettings: &categoryaxis.RenderSettings{
			CategoryMinWidthCatPx: 20,
			CategoryPaddingCatPx:  2,
			LabelHeightPx:         14,
		},
		XAxisRenderSettings: &continuousaxis.XAxisRenderSettings{
			LabelHeightPx:   20,
			MarkersHeightPx: 10,
		},
	}
)

func TestBarChart(t *testing.T) {
	for _, test := range []struct {
		description   string
		buildBarChart func(db util.DataBuilder)
		buildExplicit func(db testutil.TestDataBuilder)
		wantErr       bool
	}{{
		description: "single series of single bars",
		buildBarChart: func(db util.DataBuilder) {
			bc := New(db, dblAxis, renderSettings)
			bc.Category(category.New("q1", "Q1", "First quarter")).Bar(0, 10)
			bc.Category(category.New("q2", "Q2", "Second quarter")).Bar(0, 8)
		},
		buildExplicit: func(db testutil.TestDataBuilder) {
			bc := db.With(
				dblAxis.Define(),
				util.IntegerProperty(barWidthCatPxKey, 20),
				util.IntegerProperty(barPaddingCatPxKey, 1),
				renderSettings.CategoryAxisRenderSettings.Define(),
				renderSettings.XAxisRenderSettings.Apply(),
			)
			bc.Child().With(
				category.New("q1", "Q1", "First quarter").Define(),
			).Child().With(
				util.StringProperty(dataTypeKey, barKey),
				util.DoubleProperty(barLowerExtentKey, 0),
				util.DoubleProperty(barUpperExtentKey, 10),
			)
			bc.Child().With(
				category.New("q2", "Q2", "Second quarter").Define(),
			).Child().With(
				util.StringProperty(dataTypeKey, barKey),
				util.DoubleProperty(barLowerExtentKey, 0),
				util.DoubleProperty(barUpperExtentKey, 8),
			)
		},
	}, {
		description: "stacked bars",
		buildBarChart: func(db util.DataBuilder) {
			bc := New(db, dblAxis, renderSettings)
			stack := bc.Category(category.New("q1", "Q1", "First quarter")).StackedBars()
			stack.Bar(0, 12).With(color.Primary("#084594"), LabelFormat("revenue"))
			stack.Bar(12, 18).With(color.Primary("#2171B5"), LabelFormat("costs"))
		},
		buildExplicit: func(db testutil.TestDataBuilder) {
			bc := db.With(
				dblAxis.Define(),
				renderSettings.define(),
			)
			bc.Child().With(
				category.New("q1", "Q1", "First quarter").Define(),
			).Child().With(
				util.StringProperty(dataTypeKey, stackedBarsKey),
			).Child().With(
				util.StringProperty(dataTypeKey, barKey),
				util.DoubleProperty(barLowerExtentKey, 0),
				util.DoubleProperty(barUpperExtentKey, 12),
				color.Primary("#084594"),
				util.StringProperty(LabelFormatKey, "revenue"),
			).AndChild().With(
				util.StringProperty(dataTypeKey, barKey),
				util.DoubleProperty(barLowerExtentKey, 12),
				util.DoubleProperty(barUpperExtentKey, 18),
				color.Primary("#2171B5"),
				util.StringProperty(LabelFormatKey, "costs"),
			)
		},
	}, {
		description: "box plots with fences and outliers",
		buildBarChart: func(db util.DataBuilder) {
			bc := New(db, dblAxis, renderSettings)
			bc.Category(category.New("north", "North", "Northern region")).
				BoxPlot(1, 4, 5, 7, 40).
				Fences(1, 11.5).
				Outliers(40).
				With(DetailFormat("@region"))
			bc.Category(category.New("south", "South", "Southern region")).
				BoxPlot(0, 1, 3, 4, 7).
				Fences(0, 7)
		},
		buildExplicit: func(db testutil.TestDataBuilder) {
			bc := db.With(
				dblAxis.Define(),
				renderSettings.define(),
			)
			bc.Child().With(
				category.New("north", "North", "Northern region").Define(),
			).Child().With(
				util.StringProperty(dataTypeKey, boxPlotKey),
				util.DoubleProperty(boxPlotMinKey, 1),
				util.DoubleProperty(boxPlotQ1Key, 4),
				util.DoubleProperty(boxPlotQ2Key, 5),
				util.DoubleProperty(boxPlotQ3Key, 7),
				util.DoubleProperty(boxPlotMaxKey, 40),
				util.DoubleProperty(boxPlotLowerKey, 1),
				util.DoubleProperty(boxPlotUpperKey, 11.5),
				util.StringProperty(DetailFormatKey, "@region"),
			).Child().With(
				util.StringProperty(dataTypeKey, boxPlotOutliersKey),
			).Child().With(
				util.DoubleProperty("axis", 40),
			)
			bc.Child().With(
				category.New("south", "South", "Southern region").Define(),
			).Child().With(
				util.StringProperty(dataTypeKey, boxPlotKey),
				util.DoubleProperty(boxPlotMinKey, 0),
				util.DoubleProperty(boxPlotQ1Key, 1),
				util.DoubleProperty(boxPlotQ2Key, 3),
				util.DoubleProperty(boxPlotQ3Key, 4),
				util.DoubleProperty(boxPlotMaxKey, 7),
				util.DoubleProperty(boxPlotLowerKey, 0),
				util.DoubleProperty(boxPlotUpperKey, 7),
			)
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			err := testutil.CompareResponses(t, test.buildBarChart, test.buildExplicit)
			if (err != nil) != test.wantErr {
				t.Fatalf("encountered unexpected error building the bar chart: %s", err)
			}
		})
	}
}

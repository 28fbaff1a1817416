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

package xychart

import (
	"testing"
	"time"

	"github.com/ilhamster/chartviz/category"
	"github.com/ilhamster/chartviz/color"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	testutil "github.com/ilhamster/chartviz/test_util"
	"github.com/ilhamster/chartviz/util"
)

const timeLayout = "Jan 2, 2006 at 3:04pm (MST)"

func TestXYChart(t *testing.T) {
	refTime, err := time.Parse(timeLayout, "Jan 1, 2020 at 1:00am (PST)")
	if err != nil {
		t.Fatalf("failed to parse reference time: %s", err)
	}
	ts := func(offset time.Duration) time.Time {
		return refTime.Add(offset)
	}
	revenueCat := category.New("revenue", "Revenue", "Quarterly revenue")
	revenueColor := color.NewSpace("revenue_color", "#084594")
	costsCat := category.New("costs", "Costs", "Quarterly costs")
	costsColor := color.NewSpace("costs_color", "#2171B5")

	xAxisName := "x_axis"
	yAxisName := "y_axis"

	xAxisCat := category.New(xAxisName, "time", "Time of sample")
	yAxisCat := category.New(yAxisName, "dollars", "Dollars")

	for _, test := range []struct {
		description   string
		buildChart    func(db util.DataBuilder)
		buildExplicit func(db testutil.TestDataBuilder)
		wantErr       bool
	}{{
		description: "timestamp lines and points",
		buildChart: func(db util.DataBuilder) {
			chart := New(db,
				continuousaxis.NewTimestampAxis(xAxisCat, ts(0), ts(100*time.Second)),
				continuousaxis.NewDoubleAxis(yAxisCat, 1, 3),
				revenueColor.Define(),
				costsColor.Define(),
			)
			revenue := chart.AddSeries(
				revenueCat,
				Mark(Line),
				LineWidth(2),
				revenueColor.PrimaryColor(1),
			)
			revenue.WithPoint(
				ts(0*time.Second), 3, util.StringProperty("note", "opening"),
			).WithPoint(
				ts(20*time.Second), 1, // out of order
			).WithPoint(
				ts(10*time.Second), 2.,
			)
			chart.AddSeries(
				costsCat,
				Mark(Points),
				PointSize(5),
				costsColor.PrimaryColor(1),
			).WithPoint(
				ts(80*time.Second), 1,
			).WithPoint(
				ts(100*time.Second), 3, util.StringProperty("note", "closing"),
			)
		},
		buildExplicit: func(db testutil.TestDataBuilder) {
			x := continuousaxis.NewTimestampAxis(xAxisCat, ts(0), ts(100*time.Second))
			y := continuousaxis.NewDoubleAxis(yAxisCat, 1, 3)

			axisGroup := db.With(
				revenueColor.Define(),
				costsColor.Define(),
			).Child()
			axisGroup.
				Child().With(x.Define()).
				AndChild().With(y.Define())
			db.Child().With(
				revenueCat.Define(),
				util.StringProperty(markKey, "line"),
				util.DoubleProperty(lineWidthKey, 2),
				revenueColor.PrimaryColor(1.0),
			).Child().With(
				util.TimestampProperty(xAxisName, ts(0)),
				util.DoubleProperty(yAxisName, 3),
				util.StringProperty("note", "opening"),
			).AndChild().With(
				util.TimestampProperty(xAxisName, ts(20*time.Second)),
				util.DoubleProperty(yAxisName, 1),
			).AndChild().With(
				util.TimestampProperty(xAxisName, ts(10*time.Second)),
				util.DoubleProperty(yAxisName, 2),
			)
			db.Child().With(
				costsCat.Define(),
				util.StringProperty(markKey, "points"),
				util.DoubleProperty(pointSizeKey, 5),
				costsColor.PrimaryColor(1.0),
			).Child().With(
				util.TimestampProperty(xAxisName, ts(80*time.Second)),
				util.DoubleProperty(yAxisName, 1),
			).AndChild().With(
				util.TimestampProperty(xAxisName, ts(100*time.Second)),
				util.DoubleProperty(yAxisName, 3),
				util.StringProperty("note", "closing"),
			)
		},
	}, {
		description: "numeric spans",
		buildChart: func(db util.DataBuilder) {
			chart := New(db,
				continuousaxis.NewDoubleAxis(xAxisCat, 0, 2),
				continuousaxis.NewDoubleAxis(yAxisCat, 0, 4),
			)
			chart.AddSeries(revenueCat, Mark(Quads), FillOpacity(0.5)).
				WithSpan(0, 1, 0, 4).
				WithSpan(1, 2, 1, 3)
		},
		buildExplicit: func(db testutil.TestDataBuilder) {
			x := continuousaxis.NewDoubleAxis(xAxisCat, 0, 2)
			y := continuousaxis.NewDoubleAxis(yAxisCat, 0, 4)
			db.Child().
				Child().With(x.Define()).
				AndChild().With(y.Define())
			db.Child().With(
				revenueCat.Define(),
				util.StringProperty(markKey, "quads"),
				util.DoubleProperty(fillOpacityKey, 0.5),
			).Child().With(
				util.DoubleProperty(xAxisName, 0),
				util.DoubleProperty(spanEndKey, 1),
				util.DoubleProperty(yAxisName, 4),
			).AndChild().With(
				util.DoubleProperty(xAxisName, 1),
				util.DoubleProperty(spanEndKey, 2),
				util.DoubleProperty(yAxisName, 3),
				util.DoubleProperty(spanBottomKey, 1),
			)
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			err := testutil.CompareResponses(t, test.buildChart, test.buildExplicit)
			if err != nil != test.wantErr {
				t.Fatalf("encountered unexpected error building the chart: %s", err)
			}
		})
	}
}

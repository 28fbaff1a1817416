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

package canvas

import (
	"fmt"
	"time"

	barchart "github.com/ilhamster/chartviz/bar_chart"
	"github.com/ilhamster/chartviz/category"
	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	"github.com/ilhamster/chartviz/color"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/util"
	xychart "github.com/ilhamster/chartviz/xy_chart"
)

const (
	titleKey    = "chart_title"
	widthPxKey  = "chart_width_px"
	heightPxKey = "chart_height_px"
	xFormatKey  = "chart_x_format"
	gridPxKey   = "chart_grid_width_px"

	// maxTicks bounds the number of ticks exported per axis.
	maxTicks = 10
)

// Axis category IDs of exported charts.
const (
	xAxisID = "x"
	yAxisID = "y"
)

// Define exports the receiver into db: as a bar chart when its x axis is
// categorical, and as an xy chart otherwise.
func (c *Canvas) Define(db util.DataBuilder) error {
	db.With(
		util.StringProperty(titleKey, c.cfg.Title),
		util.IntegerProperty(widthPxKey, int64(c.cfg.Width)),
		util.IntegerProperty(heightPxKey, int64(c.cfg.Height)),
		util.DoubleProperty(gridPxKey, c.gridWidth),
		c.style.Define(),
		c.legend.Define(),
		util.If(len(c.hovers) > 0, c.mergedHover().Define()),
	)
	if c.cfg.XRange != nil {
		return c.defineBars(db)
	}
	yAxis := c.yAxis()
	xr := c.XRange()
	xCat := category.New(xAxisID, c.cfg.XLabel, c.cfg.XLabel)
	if c.cfg.Datetime {
		ticks := xr.Ticks(maxTicks)
		tickTimes := make([]time.Time, len(ticks))
		for i, t := range ticks {
			tickTimes[i] = hover.FromSeconds(t)
		}
		xAxis := continuousaxis.NewTimestampAxis(xCat, hover.FromSeconds(xr.Min), hover.FromSeconds(xr.Max)).
			WithTicks(tickTimes...)
		db.With(util.StringProperty(xFormatKey, c.XFormat()))
		return defineXY(xychart.New(db, xAxis, yAxis), c.glyphs, hover.FromSeconds)
	}
	xAxis := continuousaxis.NewDoubleAxis(xCat, xr.Min, xr.Max).WithTicks(xr.Ticks(maxTicks)...)
	return defineXY(xychart.New(db, xAxis, yAxis), c.glyphs, func(v float64) float64 { return v })
}

func (c *Canvas) yAxis() *continuousaxis.Axis[float64] {
	yr := c.YRange()
	yCat := category.New(yAxisID, c.cfg.YLabel, c.cfg.YLabel)
	return continuousaxis.NewDoubleAxis(yCat, yr.Min, yr.Max).WithTicks(yr.Ticks(maxTicks)...)
}

func (c *Canvas) mergedHover() hover.Spec {
	var ret hover.Spec
	for _, spec := range c.hovers {
		ret.Fields = append(ret.Fields, spec.Fields...)
		for v, f := range spec.Formatters {
			ret = ret.WithFormatter(v, f)
		}
	}
	return ret
}

func markProperties(m Mark) util.PropertyUpdate {
	return util.Chain(
		color.Primary(m.Color),
		color.Alpha(m.Opacity()),
	)
}

func defineXY[X float64 | time.Time](chart *xychart.XYChart[X], glyphs []Glyph, x func(float64) X) error {
	for _, g := range glyphs {
		m := g.mark()
		cat := category.FromName(m.Series)
		switch g := g.(type) {
		case *Line:
			series := chart.AddSeries(cat, xychart.Mark(xychart.Line), xychart.LineWidth(g.Width), markProperties(m))
			for i := range g.X {
				series.WithPoint(x(g.X[i]), g.Y[i])
			}
		case *Points:
			series := chart.AddSeries(cat, xychart.Mark(xychart.Points), xychart.PointSize(g.Size), markProperties(m))
			for i := range g.X {
				series.WithPoint(x(g.X[i]), g.Y[i])
			}
		case *Quads:
			series := chart.AddSeries(cat, xychart.Mark(xychart.Quads), xychart.FillOpacity(m.Opacity()), color.Primary(m.Color))
			for i := range g.Left {
				series.WithSpan(x(g.Left[i]), x(g.Right[i]), g.Bottom[i], g.Top[i])
			}
		default:
			return fmt.Errorf("cannot export %s glyph '%s' on a continuous x axis", g.kind(), m.Series)
		}
	}
	return nil
}

func (c *Canvas) barRenderSettings() *barchart.RenderSettings {
	n := c.cfg.XRange.Len()
	slot := int64(c.cfg.Width)
	if n > 0 {
		slot /= int64(n)
	}
	return &barchart.RenderSettings{
		BarWidthCatPx:   slot * 6 / 10,
		BarPaddingCatPx: slot * 2 / 10,
		CategoryAxisRenderSettings: &categoryaxis.RenderSettings{
			CategoryPaddingCatPx:  slot / 10,
			CategoryMinWidthCatPx: slot,
			LabelHeightPx:         20,
		},
		XAxisRenderSettings: &continuousaxis.XAxisRenderSettings{
			LabelHeightPx:   20,
			MarkersHeightPx: 10,
		},
	}
}

func (c *Canvas) defineBars(db util.DataBuilder) error {
	factors := c.cfg.XRange
	db.With(factors.Define())
	chart := barchart.New(db, c.yAxis(), c.barRenderSettings())
	var bars []*Bars
	var boxes []*Boxes
	for _, g := range c.glyphs {
		switch g := g.(type) {
		case *Bars:
			bars = append(bars, g)
		case *Boxes:
			boxes = append(boxes, g)
		default:
			return fmt.Errorf("cannot export %s glyph '%s' on a categorical x axis", g.kind(), g.mark().Series)
		}
	}
	for _, name := range factors.Names() {
		cat := chart.Category(category.FromName(name))
		var stack *barchart.StackedBars[float64]
		if len(bars) > 1 {
			stack = cat.StackedBars()
		}
		for _, b := range bars {
			for i, f := range b.Factors {
				if f != name {
					continue
				}
				props := []util.PropertyUpdate{
					color.Primary(b.ColorAt(i)),
					color.Alpha(b.Opacity()),
					util.If(b.Series != "", barchart.LabelFormat(b.Series)),
				}
				if stack != nil {
					stack.Bar(b.BottomAt(i), b.Top[i]).With(props...)
				} else {
					cat.Bar(b.BottomAt(i), b.Top[i]).With(props...)
				}
			}
		}
		for _, b := range boxes {
			for i, f := range b.Factors {
				if f != name {
					continue
				}
				box := b.Boxes[i]
				cat.BoxPlot(box.Min, box.Q1, box.Q2, box.Q3, box.Max).
					Fences(box.Lower, box.Upper).
					Outliers(box.Outliers...).
					With(color.Primary(b.Color), color.Alpha(b.Opacity()))
			}
		}
	}
	return nil
}

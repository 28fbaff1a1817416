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

// Package lineplot draws line charts: several lines per category from
// table columns, one line per table row, and time series.
package lineplot

import (
	"log/slog"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/category"
	"github.com/ilhamster/chartviz/color"
	"github.com/ilhamster/chartviz/frame"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/legend"
	"github.com/ilhamster/chartviz/style"
)

// Options configures a Plotter.
type Options struct {
	XLabel string
	YLabel string
	Title  string
	Width  int
	Height int
	// Alpha is the line opacity.
	Alpha     float64
	LineWidth float64
	Palette   *color.Palette
	// Sink receives every drawn chart.  A nil Sink only builds charts.
	Sink   canvas.Sink
	Logger *slog.Logger
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		XLabel:    "X-Child",
		YLabel:    "Y-Child",
		Title:     "Child Plot",
		Width:     900,
		Height:    600,
		Alpha:     1,
		LineWidth: 1,
		Palette:   color.Default,
	}
}

// Plotter draws line charts.
type Plotter struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Plotter with the provided options.
func New(opts Options) *Plotter {
	if opts.Palette == nil {
		opts.Palette = color.Default
	}
	return &Plotter{
		opts:   opts,
		logger: canvas.Logger(opts.Logger),
	}
}

func (p *Plotter) canvas(datetime bool) *canvas.Canvas {
	return canvas.New(canvas.Config{
		Title:    p.opts.Title,
		XLabel:   p.opts.XLabel,
		YLabel:   p.opts.YLabel,
		Width:    p.opts.Width,
		Height:   p.opts.Height,
		Datetime: datetime,
	})
}

func (p *Plotter) line(series, color string, xs, ys []float64, fields []map[string]any) *canvas.Line {
	return &canvas.Line{
		Mark:   canvas.Mark{Series: series, Color: color, Alpha: p.opts.Alpha},
		Width:  p.opts.LineWidth,
		X:      xs,
		Y:      ys,
		Fields: fields,
	}
}

// indices returns 0, 1, ..., n-1.
func indices(n int) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = float64(i)
	}
	return ret
}

func repeatField(key string, value any, n int) []map[string]any {
	ret := make([]map[string]any, n)
	for i := range ret {
		ret[i] = map[string]any{key: value}
	}
	return ret
}

const hoverInfo = "hoverInformation"

func seriesHover(legendTitle string) hover.Spec {
	return hover.New(
		hover.Field{Label: legendTitle, Template: "@" + hoverInfo},
		hover.Field{Label: "X Value", Template: "$x{1f}"},
		hover.Field{Label: "Y Value", Template: "$y{1f}"},
	)
}

// ColumnGroup names the table columns drawn as lines of one category.
type ColumnGroup struct {
	Category string
	Columns  []string
}

// MultilineByColumns draws each column of each group as a line against
// the row index, colored by the group's category.
func (p *Plotter) MultilineByColumns(groups []ColumnGroup, df *frame.Frame, legendTitle string, xAxisPadding float64) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "multiline by columns", p.opts.Sink, func() (*canvas.Canvas, error) {
		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.Category
		}
		mapper, err := p.opts.Palette.Mapper(names...)
		if err != nil {
			return nil, err
		}
		c := p.canvas(false)
		xs := indices(df.Len())
		for _, g := range groups {
			lineColor, _ := mapper.Color(g.Category)
			for _, name := range g.Columns {
				ys, err := df.Floats(name)
				if err != nil {
					return nil, err
				}
				if err := c.Add(p.line(g.Category, lineColor, xs, ys, repeatField(hoverInfo, g.Category, len(ys)))); err != nil {
					return nil, err
				}
			}
		}
		c.Legend(
			legend.Title(legendTitle),
			legend.ClickToHide(true),
			legend.At(legend.TopRight),
			legend.Orient(legend.Vertical),
		)
		c.Style(style.XAxisPadding(xAxisPadding))
		c.AddHover(seriesHover(legendTitle))
		return c, nil
	})
}

// MultilineByRows draws each row of df as a line: its values in every
// column but categoryCol, against their column index.  Rows are colored
// by their categoryCol value.
func (p *Plotter) MultilineByRows(df *frame.Frame, categoryCol, legendTitle string, xAxisPadding float64) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "multiline by rows", p.opts.Sink, func() (*canvas.Canvas, error) {
		labels, err := df.Labels(categoryCol)
		if err != nil {
			return nil, err
		}
		mapper, err := p.opts.Palette.Mapper(category.Distinct(labels)...)
		if err != nil {
			return nil, err
		}
		values := df.Without(categoryCol)
		cols := make([][]float64, 0, len(values.Names()))
		for _, name := range values.Names() {
			vs, err := values.Floats(name)
			if err != nil {
				return nil, err
			}
			cols = append(cols, vs)
		}
		c := p.canvas(false)
		xs := indices(len(cols))
		for row, label := range labels {
			ys := make([]float64, len(cols))
			for i, col := range cols {
				ys[i] = col[row]
			}
			lineColor, _ := mapper.Color(label)
			if err := c.Add(p.line(label, lineColor, xs, ys, repeatField(hoverInfo, label, len(ys)))); err != nil {
				return nil, err
			}
		}
		c.Legend(
			legend.Title(legendTitle),
			legend.ClickToHide(true),
			legend.At(legend.TopLeft),
			legend.Orient(legend.Vertical),
		)
		c.Style(style.XAxisPadding(xAxisPadding))
		c.AddHover(seriesHover(legendTitle))
		return c, nil
	})
}

// TimeseriesOptions configures Timeseries.
type TimeseriesOptions struct {
	// XLabelOrientation applies only with UseDatetime.
	XLabelOrientation float64
	XAxisPadding      float64
	// UseDatetime formats x values, which are timestamps or seconds since
	// the Unix epoch, as dates with the strftime pattern Format.
	UseDatetime bool
	Format      string
}

// DefaultTimeseriesOptions returns the default TimeseriesOptions.
func DefaultTimeseriesOptions() TimeseriesOptions {
	return TimeseriesOptions{
		XLabelOrientation: 0.9,
		XAxisPadding:      0.1,
	}
}

// Timeseries draws one line per distinct categoryCol value through its
// rows' (xCol, yCol) values, in row order.  xCol holds numbers or
// timestamps.
func (p *Plotter) Timeseries(df *frame.Frame, xCol, yCol, categoryCol string, opts TimeseriesOptions) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "timeseries", p.opts.Sink, func() (*canvas.Canvas, error) {
		xs, _, err := df.AxisValues(xCol)
		if err != nil {
			return nil, err
		}
		ys, err := df.Floats(yCol)
		if err != nil {
			return nil, err
		}
		groups, err := df.GroupBy(categoryCol)
		if err != nil {
			return nil, err
		}
		colors, err := p.opts.Palette.FirstN(len(groups))
		if err != nil {
			return nil, err
		}
		c := p.canvas(opts.UseDatetime)
		for i, g := range groups {
			gx, gy := make([]float64, len(g.Rows)), make([]float64, len(g.Rows))
			for j, row := range g.Rows {
				gx[j], gy[j] = xs[row], ys[row]
			}
			if err := c.Add(p.line(g.Key, colors[i], gx, gy, repeatField(categoryCol, g.Key, len(gx)))); err != nil {
				return nil, err
			}
		}
		orientation := 0.0
		if opts.UseDatetime {
			orientation = opts.XLabelOrientation
			c.SetXFormat(opts.Format)
		}
		c.Style(
			style.XLabelOrientation(orientation),
			style.XAxisPadding(opts.XAxisPadding),
			style.YAxisScientific(false),
		)
		c.Legend(
			legend.Title(categoryCol),
			legend.ClickToHide(true),
			legend.At(legend.TopRight),
			legend.Orient(legend.Vertical),
		)
		xField := hover.Field{Label: "X Value", Template: "$x{1f}"}
		if opts.UseDatetime {
			xField.Template = "$x{" + opts.Format + "}"
		}
		spec := hover.New(
			hover.Field{Label: categoryCol, Template: "@{" + categoryCol + "}"},
			xField,
			hover.Field{Label: yCol, Template: "$y{1f}"},
		)
		if opts.UseDatetime {
			spec = spec.WithFormatter("$x", hover.Datetime)
		}
		c.AddHover(spec)
		return c, nil
	})
}

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

// Package scatterplot draws categorized scatter charts.
package scatterplot

import (
	"log/slog"

	"github.com/ilhamster/chartviz/canvas"
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
	// Alpha is the marker fill opacity.
	Alpha float64
	// Size is the marker diameter in pixels.
	Size    float64
	Palette *color.Palette
	Sink    canvas.Sink
	Logger  *slog.Logger
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		XLabel:  "X-Child",
		YLabel:  "Y-Child",
		Title:   "Child Plot",
		Width:   900,
		Height:  600,
		Alpha:   0.5,
		Size:    8,
		Palette: color.Default,
	}
}

// Plotter draws scatter charts.
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

// ScatterOptions configures Scatter.
type ScatterOptions struct {
	XLabelOrientation float64
	XAxisPadding      float64
}

// DefaultScatterOptions returns the default ScatterOptions.
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{
		XLabelOrientation: 1.1,
		XAxisPadding:      0.2,
	}
}

// Scatter draws a marker at each row's (xCol, yCol) values, one series
// per distinct categoryCol value, colored by first appearance.
func (p *Plotter) Scatter(df *frame.Frame, xCol, yCol, categoryCol, legendTitle string, opts ScatterOptions) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "scatter", p.opts.Sink, func() (*canvas.Canvas, error) {
		xs, isTime, err := df.AxisValues(xCol)
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
		c := canvas.New(canvas.Config{
			Title:    p.opts.Title,
			XLabel:   p.opts.XLabel,
			YLabel:   p.opts.YLabel,
			Width:    p.opts.Width,
			Height:   p.opts.Height,
			Datetime: isTime,
		})
		for i, g := range groups {
			pts := &canvas.Points{
				Mark:   canvas.Mark{Series: g.Key, Color: colors[i], Alpha: p.opts.Alpha},
				Size:   p.opts.Size,
				X:      make([]float64, len(g.Rows)),
				Y:      make([]float64, len(g.Rows)),
				Fields: make([]map[string]any, len(g.Rows)),
			}
			for j, row := range g.Rows {
				pts.X[j], pts.Y[j] = xs[row], ys[row]
				pts.Fields[j] = map[string]any{categoryCol: g.Key}
			}
			if err := c.Add(pts); err != nil {
				return nil, err
			}
		}
		c.Style(
			style.XLabelOrientation(opts.XLabelOrientation),
			style.XAxisPadding(opts.XAxisPadding),
		)
		c.Legend(
			legend.Title(legendTitle),
			legend.ClickToHide(true),
			legend.At(legend.TopLeft),
			legend.Orient(legend.Vertical),
		)
		c.AddHover(hover.New(
			hover.Field{Label: "X Value", Template: "$x{0f}"},
			hover.Field{Label: "Y Value", Template: "$y{0f}"},
		))
		return c, nil
	})
}

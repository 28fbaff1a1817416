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

package statisticsplot

import (
	"fmt"
	"math"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/frame"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/legend"
	"github.com/ilhamster/chartviz/stats"
	"github.com/ilhamster/chartviz/style"
)

// HistogramOptions configures Histogram.
type HistogramOptions struct {
	// Bins is the number of equal-width bins spanning each column.
	Bins int
	// With UseBinWidth, every column is binned BinWidth wide from the
	// lowest value of all columns, and Bins is ignored.
	BinWidth     float64
	UseBinWidth  bool
	Transparency float64
	LegendTitle  string
	XAxisPadding float64
}

// DefaultHistogramOptions returns the default HistogramOptions.
func DefaultHistogramOptions() HistogramOptions {
	return HistogramOptions{
		Bins:         10,
		BinWidth:     10,
		Transparency: 0.6,
		LegendTitle:  "Legends",
		XAxisPadding: 0.1,
	}
}

// HistogramStats returns a histogram of each named column of df.
func HistogramStats(df *frame.Frame, columns []string, opts HistogramOptions) ([]stats.Histogram, error) {
	data := make([][]float64, len(columns))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, col := range columns {
		vs, err := df.Floats(col)
		if err != nil {
			return nil, err
		}
		data[i] = vs
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if opts.UseBinWidth && lo > hi {
		return nil, fmt.Errorf("histogram of %v: %w", columns, stats.ErrEmpty)
	}
	ret := make([]stats.Histogram, len(columns))
	for i, vs := range data {
		var h stats.Histogram
		var err error
		if opts.UseBinWidth {
			h, err = stats.WithWidth(vs, lo, hi, opts.BinWidth)
		} else {
			h, err = stats.Bins(vs, opts.Bins)
		}
		if err != nil {
			return nil, fmt.Errorf("histogram of '%s': %w", columns[i], err)
		}
		ret[i] = h
	}
	return ret, nil
}

// Histogram draws a histogram of each named column of df, overlaid and
// colored by column order.
func (p *Plotter) Histogram(df *frame.Frame, columns []string, opts HistogramOptions) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "histogram", p.opts.Sink, func() (*canvas.Canvas, error) {
		colors, err := p.opts.Palette.FirstN(len(columns))
		if err != nil {
			return nil, err
		}
		hists, err := HistogramStats(df, columns, opts)
		if err != nil {
			return nil, err
		}
		c := p.canvas(nil)
		for i, h := range hists {
			n := len(h.Counts)
			q := &canvas.Quads{
				Mark:   canvas.Mark{Series: columns[i], Color: colors[i], Alpha: opts.Transparency},
				Left:   append([]float64{}, h.Edges[:n]...),
				Right:  append([]float64{}, h.Edges[1:]...),
				Bottom: make([]float64, n),
				Top:    make([]float64, n),
			}
			for j, count := range h.Counts {
				q.Top[j] = float64(count)
			}
			if err := c.Add(q); err != nil {
				return nil, err
			}
		}
		c.SetYStart(0)
		c.Legend(
			legend.Title(opts.LegendTitle),
			legend.ClickToHide(true),
		)
		c.Style(style.XAxisPadding(opts.XAxisPadding))
		c.AddHover(hover.New(
			hover.Field{Label: "Frequency", Template: "@top{0f}"},
			hover.Field{Label: "X Value", Template: "$x{0f}"},
			hover.Field{Label: "Y Value", Template: "$y{0f}"},
		))
		return c, nil
	})
}

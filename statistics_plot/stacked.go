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
	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/legend"
	"github.com/ilhamster/chartviz/style"
)

// NamedSeries is one layer of a stacked bar chart: a value per factor.
type NamedSeries struct {
	Name   string
	Values []float64
}

// StackedInput is the data of a stacked bar chart.  Series are stacked
// bottom to top in order.
type StackedInput struct {
	Factors []string
	Series  []NamedSeries
}

// StackedOptions configures StackedBar.
type StackedOptions struct {
	Width             float64
	XLabelOrientation float64
	XAxisPadding      float64
	Alpha             float64
}

// DefaultStackedOptions returns the default StackedOptions.
func DefaultStackedOptions() StackedOptions {
	return StackedOptions{
		Width:             0.5,
		XLabelOrientation: 1.1,
		XAxisPadding:      0.3,
		Alpha:             0.6,
	}
}

func (in StackedInput) check() error {
	for _, s := range in.Series {
		if len(s.Values) != len(in.Factors) {
			return lengthError(s.Name, len(s.Values), len(in.Factors))
		}
	}
	return nil
}

// StackHeights returns the height of each factor's stack: the sum of its
// series values.
func StackHeights(in StackedInput) ([]float64, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	ret := make([]float64, len(in.Factors))
	for _, s := range in.Series {
		for i, v := range s.Values {
			ret[i] += v
		}
	}
	return ret, nil
}

// StackedBar draws in's series stacked per factor, each series colored by
// its rank in the palette.
func (p *Plotter) StackedBar(in StackedInput, legendTitle string, opts StackedOptions) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "stacked bar", p.opts.Sink, func() (*canvas.Canvas, error) {
		if err := in.check(); err != nil {
			return nil, err
		}
		fs, err := factors("factors", in.Factors)
		if err != nil {
			return nil, err
		}
		colors, err := p.opts.Palette.FirstN(len(in.Series))
		if err != nil {
			return nil, err
		}
		c := p.canvas(fs)
		heights := make([]float64, len(in.Factors))
		for i, s := range in.Series {
			bars := &canvas.Bars{
				Mark:    canvas.Mark{Series: s.Name, Color: colors[i], Alpha: opts.Alpha},
				Factors: append([]string{}, in.Factors...),
				Bottom:  append([]float64{}, heights...),
				Top:     make([]float64, len(in.Factors)),
				Width:   opts.Width,
				Fields:  make([]map[string]any, len(in.Factors)),
			}
			for j, v := range s.Values {
				heights[j] += v
				bars.Top[j] = heights[j]
				bars.Fields[j] = map[string]any{s.Name: v}
			}
			if err := c.Add(bars); err != nil {
				return nil, err
			}
		}
		c.SetYStart(0)
		c.Legend(
			legend.Title(legendTitle),
			legend.ClickToHide(false),
			legend.At(legend.TopLeft),
			legend.Orient(legend.Vertical),
			legend.FontSize("8pt"),
		)
		c.Style(
			style.XLabelOrientation(opts.XLabelOrientation),
			style.XAxisPadding(opts.XAxisPadding),
		)
		c.AddHover(hover.New(
			hover.Field{Label: legendTitle, Template: "$name"},
			hover.Field{Label: "Frequency", Template: "@$name"},
		))
		return c, nil
	})
}

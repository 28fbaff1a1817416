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

// BarOptions configures Bar.
type BarOptions struct {
	// Width is the bar width as a fraction of its category's slot.
	Width             float64
	XAxisPadding      float64
	Alpha             float64
	XLabelOrientation float64
}

// DefaultBarOptions returns the default BarOptions.
func DefaultBarOptions() BarOptions {
	return BarOptions{
		Width:             0.6,
		XAxisPadding:      0.2,
		Alpha:             0.6,
		XLabelOrientation: 1.1,
	}
}

// Bar draws one bar per category, frequencies[i] tall, each colored by its
// rank in the palette.
func (p *Plotter) Bar(categories []string, frequencies []float64, opts BarOptions) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "bar", p.opts.Sink, func() (*canvas.Canvas, error) {
		if len(frequencies) != len(categories) {
			return nil, lengthError("frequencies", len(frequencies), len(categories))
		}
		fs, err := factors("categories", categories)
		if err != nil {
			return nil, err
		}
		colors, err := p.opts.Palette.FirstN(len(categories))
		if err != nil {
			return nil, err
		}
		fields := make([]map[string]any, len(frequencies))
		for i, f := range frequencies {
			fields[i] = map[string]any{"values": f}
		}
		c := p.canvas(fs)
		bars := &canvas.Bars{
			Mark:    canvas.Mark{Alpha: opts.Alpha},
			Factors: append([]string{}, categories...),
			Top:     append([]float64{}, frequencies...),
			Width:   opts.Width,
			Colors:  colors,
			Fields:  fields,
		}
		if len(colors) > 0 {
			bars.Color = colors[0]
		}
		if err := c.Add(bars); err != nil {
			return nil, err
		}
		c.SetYStart(0)
		c.Legend(legend.Hidden())
		c.Style(
			style.XLabelOrientation(opts.XLabelOrientation),
			style.XAxisPadding(opts.XAxisPadding),
		)
		c.AddHover(hover.New(hover.Field{Label: "Frequency", Template: "@values"}))
		return c, nil
	})
}

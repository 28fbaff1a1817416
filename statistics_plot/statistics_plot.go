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

// Package statisticsplot draws statistical summaries: histograms, bar and
// stacked bar charts, and box plots.  The summaries themselves are also
// available without drawing, through HistogramStats, StackHeights, and
// BoxStats.
package statisticsplot

import (
	"fmt"
	"log/slog"

	"github.com/ilhamster/chartviz/canvas"
	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	"github.com/ilhamster/chartviz/color"
	"github.com/ilhamster/chartviz/frame"
)

// Options configures a Plotter.
type Options struct {
	XLabel  string
	YLabel  string
	Title   string
	Width   int
	Height  int
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
		Height:  500,
		Palette: color.Default,
	}
}

// Plotter draws statistical charts.
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

// canvas returns a new canvas; a non-nil factors makes its x axis
// categorical.
func (p *Plotter) canvas(factors *categoryaxis.Factors) *canvas.Canvas {
	return canvas.New(canvas.Config{
		Title:  p.opts.Title,
		XLabel: p.opts.XLabel,
		YLabel: p.opts.YLabel,
		Width:  p.opts.Width,
		Height: p.opts.Height,
		XRange: factors,
	})
}

// factors returns the x axis factors for names, which must be distinct.
func factors(column string, names []string) (*categoryaxis.Factors, error) {
	ret, err := categoryaxis.NewFactors(names...)
	if err != nil {
		return nil, &frame.ColumnError{Column: column, Detail: err.Error(), Err: frame.ErrShape}
	}
	return ret, nil
}

func lengthError(column string, got, want int) error {
	return &frame.ColumnError{
		Column: column,
		Detail: fmt.Sprintf("%d values for %d categories", got, want),
		Err:    frame.ErrShape,
	}
}

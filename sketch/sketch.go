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

// Package sketch draws static SVG previews of continuous charts with
// go-gg.  Sketches have no legend, hover text, or interactivity; those
// belong to the charts served to clients.
package sketch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/ilhamster/chartviz/frame"
	statisticsplot "github.com/ilhamster/chartviz/statistics_plot"
)

// ErrUnsupportedKind is returned for chart kinds that cannot be sketched.
var ErrUnsupportedKind = errors.New("chart kind cannot be sketched")

// Kind is a sketchable chart kind.
type Kind string

// Sketchable kinds.
const (
	Histogram  Kind = "histogram"
	Timeseries Kind = "timeseries"
	Scatter    Kind = "scatter"
)

// Options configures Write.
type Options struct {
	Kind Kind
	// Columns are histogrammed, each as its own series.
	Columns []string
	// X and Y name the timeseries and scatter plot axes.
	X, Y string
	// Category, if set, splits timeseries and scatter plots into series.
	Category  string
	Histogram statisticsplot.HistogramOptions
	Title     string
	Width     int
	Height    int
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		Kind:      Histogram,
		Histogram: statisticsplot.DefaultHistogramOptions(),
		Width:     640,
		Height:    400,
	}
}

// Columns of the histogram step table.
const (
	edgeCol   = "value"
	countCol  = "count"
	seriesCol = "series"
)

// histogramTable lays out each column's histogram as a step path: one row
// per bin edge, the last edge repeating the last bin's count.
func histogramTable(df *frame.Frame, columns []string, opts statisticsplot.HistogramOptions) (*table.Table, error) {
	hists, err := statisticsplot.HistogramStats(df, columns, opts)
	if err != nil {
		return nil, err
	}
	var edges, counts []float64
	var series []string
	for i, h := range hists {
		for j, edge := range h.Edges {
			count := h.Counts[min(j, len(h.Counts)-1)]
			edges = append(edges, edge)
			counts = append(counts, float64(count))
			series = append(series, columns[i])
		}
	}
	return table.NewBuilder(nil).
		Add(edgeCol, edges).
		Add(countCol, counts).
		Add(seriesCol, series).
		Done(), nil
}

// plot returns the gg plot of df described by opts.
func plot(df *frame.Frame, opts Options) (*gg.Plot, error) {
	switch opts.Kind {
	case Histogram:
		if len(opts.Columns) == 0 {
			return nil, fmt.Errorf("histogram sketch needs at least one column")
		}
		t, err := histogramTable(df, opts.Columns, opts.Histogram)
		if err != nil {
			return nil, err
		}
		p := gg.NewPlot(table.GroupBy(t, seriesCol))
		p.Add(gg.LayerSteps{
			LayerPaths: gg.LayerPaths{X: edgeCol, Y: countCol, Color: seriesCol},
			Step:       gg.StepHV,
		})
		return p, nil
	case Timeseries, Scatter:
		x, err := df.Column(opts.X)
		if err != nil {
			return nil, err
		}
		if x.Kind() == frame.String {
			return nil, &frame.ColumnError{
				Column: opts.X,
				Detail: "holds string values, expected numbers or timestamps",
				Err:    frame.ErrColumnType,
			}
		}
		if _, err := df.Floats(opts.Y); err != nil {
			return nil, err
		}
		if opts.Category != "" {
			if _, err := df.Column(opts.Category); err != nil {
				return nil, err
			}
		}
		p := gg.NewPlot(df.Table())
		if x.Kind() == frame.Time {
			p.SetScale("x", gg.NewTimeScaler())
		}
		if opts.Kind == Timeseries {
			p.Add(gg.LayerLines{X: opts.X, Y: opts.Y, Color: opts.Category})
		} else {
			p.Add(gg.LayerPoints{X: opts.X, Y: opts.Y, Color: opts.Category})
		}
		return p, nil
	}
	return nil, fmt.Errorf("'%s': %w", opts.Kind, ErrUnsupportedKind)
}

// Write draws df as an SVG sketch to w.
func Write(w io.Writer, df *frame.Frame, opts Options) error {
	p, err := plot(df, opts)
	if err != nil {
		return err
	}
	if opts.Title != "" {
		p.Add(gg.Title(opts.Title))
	}
	if err := p.WriteSVG(w, opts.Width, opts.Height); err != nil {
		return err
	}
	slog.Debug("sketched chart", slog.String("kind", string(opts.Kind)), slog.Int("rows", df.Len()))
	return nil
}

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
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	barchart "github.com/ilhamster/chartviz/bar_chart"
	"github.com/ilhamster/chartviz/category"
	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	"github.com/ilhamster/chartviz/color"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	"github.com/ilhamster/chartviz/frame"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/legend"
	"github.com/ilhamster/chartviz/stats"
	"github.com/ilhamster/chartviz/style"
	testutil "github.com/ilhamster/chartviz/test_util"
	"github.com/ilhamster/chartviz/util"
)

func mustFactors(t *testing.T, names ...string) *categoryaxis.Factors {
	t.Helper()
	f, err := categoryaxis.NewFactors(names...)
	if err != nil {
		t.Fatalf("NewFactors(%v) yielded unexpected error %s", names, err)
	}
	return f
}

func TestStyleIsLastWriteWins(t *testing.T) {
	c := New(Config{Title: "Revenue"})
	if diff := cmp.Diff(style.Defaults(), c.StyleSettings()); diff != "" {
		t.Errorf("new canvas style diff (-want +got):\n%s", diff)
	}
	c.Style(style.XAxisPadding(0.2), style.YAxisScientific(false))
	c.Style(style.XLabelOrientation(0.4))
	want := style.Defaults()
	want.XLabelOrientation = 0.4
	if diff := cmp.Diff(want, c.StyleSettings()); diff != "" {
		t.Errorf("restyled canvas diff (-want +got):\n%s", diff)
	}
}

func TestLegend(t *testing.T) {
	for _, test := range []struct {
		description string
		opts        []legend.Option
		want        legend.Settings
	}{{
		description: "defaults",
		want:        legend.Defaults(),
	}, {
		description: "clickable vertical legend",
		opts:        []legend.Option{legend.ClickToHide(true), legend.Orient(legend.Vertical), legend.At(legend.TopLeft)},
		want: legend.Settings{
			Visible:     true,
			Title:       "Legend",
			Orientation: legend.Vertical,
			ClickToHide: true,
			Location:    legend.TopLeft,
			FontSize:    "12pt",
		},
	}, {
		description: "hidden legend ignores other settings",
		opts:        []legend.Option{legend.Title("Regions"), legend.Hidden()},
		want:        legend.Settings{},
	}} {
		t.Run(test.description, func(t *testing.T) {
			c := New(Config{}).Legend(test.opts...)
			if diff := cmp.Diff(test.want, c.LegendSettings()); diff != "" {
				t.Errorf("LegendSettings() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddValidates(t *testing.T) {
	for _, test := range []struct {
		description string
		factors     []string
		glyph       Glyph
		wantErr     bool
	}{{
		description: "line",
		glyph:       &Line{Mark: Mark{Series: "revenue"}, X: []float64{0, 1}, Y: []float64{3, 4}},
	}, {
		description: "line with mismatched lengths",
		glyph:       &Line{Mark: Mark{Series: "revenue"}, X: []float64{0, 1}, Y: []float64{3}},
		wantErr:     true,
	}, {
		description: "points with too few hover fields",
		glyph: &Points{
			Mark:   Mark{Series: "revenue"},
			X:      []float64{0, 1},
			Y:      []float64{3, 4},
			Fields: []map[string]any{{"region": "north"}},
		},
		wantErr: true,
	}, {
		description: "quads with mismatched lengths",
		glyph: &Quads{
			Left:   []float64{0, 1},
			Right:  []float64{1, 2},
			Bottom: []float64{0, 0},
			Top:    []float64{3},
		},
		wantErr: true,
	}, {
		description: "bars without a categorical axis",
		glyph:       &Bars{Factors: []string{"q1"}, Top: []float64{3}},
		wantErr:     true,
	}, {
		description: "bars on an unknown factor",
		factors:     []string{"q1", "q2"},
		glyph:       &Bars{Factors: []string{"q3"}, Top: []float64{3}},
		wantErr:     true,
	}, {
		description: "bars",
		factors:     []string{"q1", "q2"},
		glyph:       &Bars{Factors: []string{"q2", "q1"}, Top: []float64{3, 4}},
	}, {
		description: "boxes with missing boxes",
		factors:     []string{"q1", "q2"},
		glyph:       &Boxes{Factors: []string{"q1", "q2"}, Boxes: []stats.Box{{}}},
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			cfg := Config{}
			if test.factors != nil {
				cfg.XRange = mustFactors(t, test.factors...)
			}
			c := New(cfg)
			err := c.Add(test.glyph)
			if (err != nil) != test.wantErr {
				t.Fatalf("Add() yielded error %v, wanted error: %t", err, test.wantErr)
			}
			if err != nil {
				var colErr *frame.ColumnError
				if !errors.As(err, &colErr) || !errors.Is(err, frame.ErrShape) {
					t.Errorf("Add() error %v is not a shape ColumnError", err)
				}
				if len(c.Glyphs()) != 0 {
					t.Errorf("Add() kept an invalid glyph")
				}
			}
		})
	}
}

func TestRanges(t *testing.T) {
	c := New(Config{})
	if err := c.Add(&Line{X: []float64{0, 10}, Y: []float64{2, 4}}); err != nil {
		t.Fatalf("Add() yielded unexpected error %s", err)
	}
	if err := c.Add(&Points{X: []float64{5}, Y: []float64{6}}); err != nil {
		t.Fatalf("Add() yielded unexpected error %s", err)
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(continuousaxis.Range{Min: 0, Max: 10}, c.XRange(), approx); diff != "" {
		t.Errorf("XRange() diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(continuousaxis.Range{Min: 1.8, Max: 6.2}, c.YRange(), approx); diff != "" {
		t.Errorf("YRange() diff (-want +got):\n%s", diff)
	}
	c.Style(style.XAxisPadding(0.1)).SetYStart(0)
	if diff := cmp.Diff(continuousaxis.Range{Min: -1, Max: 11}, c.XRange(), approx); diff != "" {
		t.Errorf("padded XRange() diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(continuousaxis.Range{Min: 0, Max: 6.3}, c.YRange(), approx); diff != "" {
		t.Errorf("pinned YRange() diff (-want +got):\n%s", diff)
	}
}

func TestLegendEntries(t *testing.T) {
	c := New(Config{})
	for _, g := range []Glyph{
		&Line{Mark: Mark{Series: "revenue", Color: "#0097AC"}},
		&Line{Mark: Mark{Series: "costs", Color: "#020B13"}},
		&Points{Mark: Mark{Series: "revenue", Color: "#0097AC"}},
		&Points{Mark: Mark{Color: "#888E95"}},
	} {
		if err := c.Add(g); err != nil {
			t.Fatalf("Add() yielded unexpected error %s", err)
		}
	}
	want := []LegendEntry{
		{Series: "revenue", Color: "#0097AC"},
		{Series: "costs", Color: "#020B13"},
	}
	if diff := cmp.Diff(want, c.LegendEntries()); diff != "" {
		t.Errorf("LegendEntries() diff (-want +got):\n%s", diff)
	}
}

func TestTooltips(t *testing.T) {
	c := New(Config{XRange: mustFactors(t, "north", "south")})
	bars := &Bars{
		Mark:    Mark{Series: "units"},
		Factors: []string{"north", "south"},
		Bottom:  []float64{1, 2},
		Top:     []float64{3, 5},
		Fields:  []map[string]any{{"units": 2.0}, {"units": 3.0}},
	}
	if err := c.Add(bars); err != nil {
		t.Fatalf("Add() yielded unexpected error %s", err)
	}
	c.AddHover(hover.New(hover.Field{Label: "Region", Template: "@x"}))
	c.AddHover(hover.New(
		hover.Field{Label: "Series", Template: "$name"},
		hover.Field{Label: "Frequency", Template: "@$name{0f}"},
	))
	var got []string
	for _, p := range c.Anchors(bars) {
		got = append(got, c.Tooltip(p))
	}
	want := []string{
		"Region: north\nSeries: units\nFrequency: 2",
		"Region: south\nSeries: units\nFrequency: 3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tooltips diff (-want +got):\n%s", diff)
	}
}

type recordingSink struct {
	shown []*Canvas
	err   error
}

func (rs *recordingSink) Show(c *Canvas) error {
	rs.shown = append(rs.shown, c)
	return rs.err
}

func TestRender(t *testing.T) {
	c := New(Config{Title: "Revenue"})
	if err := c.Render(nil); !errors.Is(err, ErrNoSink) {
		t.Errorf("Render(nil) = %v, want %v", err, ErrNoSink)
	}
	sink := &recordingSink{}
	if err := c.Render(sink); err != nil {
		t.Fatalf("Render() yielded unexpected error %s", err)
	}
	if len(sink.shown) != 1 || sink.shown[0] != c {
		t.Errorf("Render() showed %v, want the canvas once", sink.shown)
	}
	sink.err = errors.New("disk full")
	if err := c.Render(sink); !errors.Is(err, sink.err) {
		t.Errorf("Render() = %v, want %v", err, sink.err)
	}
}

func TestGuard(t *testing.T) {
	errBoom := errors.New("boom")
	for _, test := range []struct {
		description string
		fn          func() error
		wantErr     error
		wantPanic   bool
	}{{
		description: "success",
		fn:          func() error { return nil },
	}, {
		description: "returned error",
		fn:          func() error { return errBoom },
		wantErr:     errBoom,
	}, {
		description: "panic with an error",
		fn:          func() error { panic(errBoom) },
		wantErr:     errBoom,
		wantPanic:   true,
	}, {
		description: "panic with a value",
		fn: func() error {
			var xs []float64
			_ = xs[3]
			return nil
		},
		wantPanic: true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			err := Guard(logger, "scatter", test.fn)
			if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				t.Errorf("Guard() = %v, want %v", err, test.wantErr)
			}
			var panicErr *PanicError
			if got := errors.As(err, &panicErr); got != test.wantPanic {
				t.Errorf("Guard() = %v, want a PanicError: %t", err, test.wantPanic)
			}
			logged := strings.Contains(buf.String(), "chart failed")
			if logged != (err != nil) {
				t.Errorf("Guard() logged %q for error %v", buf.String(), err)
			}
		})
	}
}

func TestDefineBars(t *testing.T) {
	factors := mustFactors(t, "q1", "q2")
	build := func() *Canvas {
		c := New(Config{Title: "Sales", Width: 400, Height: 300, XRange: factors})
		c.SetYStart(0)
		for _, b := range []*Bars{{
			Mark:    Mark{Series: "revenue", Color: "#0097AC", Alpha: 0.6},
			Factors: []string{"q1", "q2"},
			Top:     []float64{3, 4},
		}, {
			Mark:    Mark{Series: "costs", Color: "#020B13", Alpha: 0.6},
			Factors: []string{"q1", "q2"},
			Bottom:  []float64{3, 4},
			Top:     []float64{5, 5},
		}} {
			if err := c.Add(b); err != nil {
				t.Fatalf("Add() yielded unexpected error %s", err)
			}
		}
		return c
	}
	err := testutil.CompareResponses(t,
		func(db util.DataBuilder) {
			if err := build().Define(db); err != nil {
				t.Fatalf("Define() yielded unexpected error %s", err)
			}
		},
		func(db util.DataBuilder) {
			c := build()
			db.With(
				util.StringProperty(titleKey, "Sales"),
				util.IntegerProperty(widthPxKey, 400),
				util.IntegerProperty(heightPxKey, 300),
				util.DoubleProperty(gridPxKey, 1),
				style.Defaults().Define(),
				legend.Defaults().Define(),
			)
			db.With(factors.Define())
			chart := barchart.New(db, c.yAxis(), c.barRenderSettings())
			for i, name := range []string{"q1", "q2"} {
				stack := chart.Category(category.FromName(name)).StackedBars()
				stack.Bar(0, []float64{3, 4}[i]).With(
					color.Primary("#0097AC"), color.Alpha(0.6), barchart.LabelFormat("revenue"))
				stack.Bar([]float64{3, 4}[i], 5).With(
					color.Primary("#020B13"), color.Alpha(0.6), barchart.LabelFormat("costs"))
			}
		},
	)
	if err != nil {
		t.Fatalf("encountered unexpected error building the chart: %s", err)
	}
}

func TestDefineRejectsBarsOnContinuousAxis(t *testing.T) {
	c := New(Config{})
	c.glyphs = append(c.glyphs, &Bars{Factors: []string{"q1"}, Top: []float64{1}})
	drb := util.NewDataResponseBuilder()
	if err := c.Define(drb.DataSeries(&util.DataSeriesRequest{})); err == nil {
		t.Errorf("Define() yielded no error for bars on a continuous axis")
	}
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sink := &recordingSink{}
	c, err := Draw(logger, "line", sink, func() (*Canvas, error) {
		return New(Config{Title: "Revenue"}), nil
	})
	if err != nil {
		t.Fatalf("Draw() yielded unexpected error %s", err)
	}
	if len(sink.shown) != 1 || sink.shown[0] != c {
		t.Errorf("Draw() showed %v, want the drawn canvas", sink.shown)
	}
	errShape := &frame.ColumnError{Column: "revenue", Err: frame.ErrMissingColumn}
	c, err = Draw(logger, "line", sink, func() (*Canvas, error) {
		return nil, errShape
	})
	if c != nil || !errors.Is(err, frame.ErrMissingColumn) {
		t.Errorf("Draw() = %v, %v, want nil, %v", c, err, errShape)
	}
	if len(sink.shown) != 1 {
		t.Errorf("Draw() rendered a failed chart")
	}
	if !strings.Contains(buf.String(), "column 'revenue'") {
		t.Errorf("Draw() did not log its failure, logged %q", buf.String())
	}
}

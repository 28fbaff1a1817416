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

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ilhamster/chartviz/canvas"
	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/legend"
	"github.com/ilhamster/chartviz/stats"
	"github.com/ilhamster/chartviz/style"
)

func lineCanvas(t *testing.T) *canvas.Canvas {
	t.Helper()
	c := canvas.New(canvas.Config{
		Title:  "Quarterly revenue",
		XLabel: "Quarter",
		YLabel: "Dollars",
		Width:  600,
		Height: 400,
	})
	for _, l := range []*canvas.Line{{
		Mark: canvas.Mark{Series: "revenue", Color: "#0097AC"},
		X:    []float64{0, 1, 2},
		Y:    []float64{3, 5, 4},
	}, {
		Mark: canvas.Mark{Series: "costs", Color: "#020B13"},
		X:    []float64{0, 1, 2},
		Y:    []float64{2, 2, 3},
	}} {
		if err := c.Add(l); err != nil {
			t.Fatalf("Add() yielded unexpected error %s", err)
		}
	}
	c.AddHover(hover.New(
		hover.Field{Label: "X Value", Template: "$x{1f}"},
		hover.Field{Label: "Y Value", Template: "$y{1f}"},
	))
	return c
}

func TestSVG(t *testing.T) {
	for _, test := range []struct {
		description string
		build       func(t *testing.T) *canvas.Canvas
		want        []string
		notWant     []string
	}{{
		description: "lines with tooltips",
		build:       lineCanvas,
		want: []string{
			"<svg",
			"Quarterly revenue",
			`data-series="revenue"`,
			`data-series="costs"`,
			"<title>X Value: 1.0",
			`font-weight="bold"`,
			`class="legend"`,
			"</svg>",
		},
		notWant: []string{`data-click-hide="true"`},
	}, {
		description: "clickable legend",
		build: func(t *testing.T) *canvas.Canvas {
			return lineCanvas(t).Legend(legend.ClickToHide(true), legend.Orient(legend.Vertical))
		},
		want: []string{`data-click-hide="true"`, `class="legend-entry"`},
	}, {
		description: "hidden legend",
		build: func(t *testing.T) *canvas.Canvas {
			return lineCanvas(t).Legend(legend.Hidden())
		},
		notWant: []string{`class="legend"`},
	}, {
		description: "box plot outliers",
		build: func(t *testing.T) *canvas.Canvas {
			factors, err := categoryaxis.NewFactors("x", "y")
			if err != nil {
				t.Fatalf("NewFactors() yielded unexpected error %s", err)
			}
			c := canvas.New(canvas.Config{Width: 500, Height: 400, XRange: factors})
			x, err := stats.NewBox([]float64{1, 2, 3, 4, 100})
			if err != nil {
				t.Fatalf("NewBox() yielded unexpected error %s", err)
			}
			y, err := stats.NewBox([]float64{5, 6, 7})
			if err != nil {
				t.Fatalf("NewBox() yielded unexpected error %s", err)
			}
			if err := c.Add(&canvas.Boxes{
				Mark:         canvas.Mark{Color: "#0097AC", Alpha: 0.6},
				Factors:      []string{"x", "y"},
				Boxes:        []stats.Box{x, y},
				Width:        0.7,
				OutlierColor: "red",
				OutlierSize:  6,
			}); err != nil {
				t.Fatalf("Add() yielded unexpected error %s", err)
			}
			return c
		},
		want: []string{`fill="red"`, `class="glyph boxes"`},
		// Unnamed series get no legend.
		notWant: []string{`class="legend"`},
	}} {
		t.Run(test.description, func(t *testing.T) {
			var buf bytes.Buffer
			if err := SVG(&buf, test.build(t)); err != nil {
				t.Fatalf("SVG() yielded unexpected error %s", err)
			}
			got := buf.String()
			for _, want := range test.want {
				if !strings.Contains(got, want) {
					t.Errorf("SVG() output lacks %q", want)
				}
			}
			for _, notWant := range test.notWant {
				if strings.Contains(got, notWant) {
					t.Errorf("SVG() output unexpectedly contains %q", notWant)
				}
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSVGErrors(t *testing.T) {
	for _, test := range []struct {
		description string
		build       func(t *testing.T) *canvas.Canvas
		failWrite   bool
		wantErr     error
	}{{
		description: "empty size",
		build: func(t *testing.T) *canvas.Canvas {
			return canvas.New(canvas.Config{})
		},
		wantErr: ErrSize,
	}, {
		description: "plot area too small",
		build: func(t *testing.T) *canvas.Canvas {
			return canvas.New(canvas.Config{Width: 50, Height: 50})
		},
		wantErr: ErrSize,
	}, {
		description: "malformed background color",
		build: func(t *testing.T) *canvas.Canvas {
			return lineCanvas(t).Style(style.BackgroundColor("#F9F9F9; fill:red"))
		},
		wantErr: ErrColor,
	}, {
		description: "malformed glyph color",
		build: func(t *testing.T) *canvas.Canvas {
			c := lineCanvas(t)
			if err := c.Add(&canvas.Points{Mark: canvas.Mark{Color: "rgb(1, 2, 3)"}}); err != nil {
				t.Fatalf("Add() yielded unexpected error %s", err)
			}
			return c
		},
		wantErr: ErrColor,
	}, {
		description: "malformed font size",
		build: func(t *testing.T) *canvas.Canvas {
			return lineCanvas(t).Style(style.LabelFontSize("large"))
		},
		wantErr: ErrFontSize,
	}, {
		description: "failed write",
		build:       lineCanvas,
		failWrite:   true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			var err error
			if test.failWrite {
				err = SVG(failingWriter{}, test.build(t))
			} else {
				err = SVG(&bytes.Buffer{}, test.build(t))
			}
			var renderErr *Error
			if !errors.As(err, &renderErr) {
				t.Fatalf("SVG() = %v, want a render error", err)
			}
			if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				t.Errorf("SVG() = %v, want %v", err, test.wantErr)
			}
		})
	}
}

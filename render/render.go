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

// Package render draws a canvas.Canvas as an SVG document.  Every glyph
// element carries a <title> tooltip resolved from the canvas's hover
// specifications, and every series is a group tagged with data-series, so
// that a page script can toggle series from the legend.
package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/ilhamster/chartviz/canvas"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
)

// Errors wrapped by *Error.
var (
	ErrSize     = errors.New("drawing area must be positive")
	ErrColor    = errors.New("malformed color")
	ErrFontSize = errors.New("malformed font size")
)

// Error reports a canvas property the renderer cannot draw, or a failure
// writing the output.
type Error struct {
	Property string
	Value    string
	Err      error
}

func (e *Error) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("render %s: %s", e.Property, e.Err)
	}
	return fmt.Sprintf("render %s '%s': %s", e.Property, e.Value, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

const (
	marginLeft   = 80
	marginRight  = 24
	marginBottom = 56
	// Rotated x tick labels need more room.
	rotatedMarginBottom = 110
	maxTicks            = 10
	tickLength          = 6
	gridColor           = "#E5E5E5"
	axisColor           = "#888E95"
	glyphOutline        = "#020B13"
	defaultGlyphColor   = "#0097AC"
)

var (
	hexColorRE = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedRE    = regexp.MustCompile(`^[a-zA-Z]+$`)
	fontSizeRE = regexp.MustCompile(`^([0-9]+(\.[0-9]+)?)(pt|px)$`)
)

func checkColor(property, c string) error {
	if c == "" || hexColorRE.MatchString(c) || namedRE.MatchString(c) {
		return nil
	}
	return &Error{Property: property, Value: c, Err: ErrColor}
}

// fontPx returns a font size in pixels.
func fontPx(property, size string) (float64, error) {
	m := fontSizeRE.FindStringSubmatch(size)
	if m == nil {
		return 0, &Error{Property: property, Value: size, Err: ErrFontSize}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &Error{Property: property, Value: size, Err: ErrFontSize}
	}
	if m[3] == "pt" {
		v *= 4.0 / 3.0
	}
	return v, nil
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// errWriter records the first error written through it; svgo ignores
// write errors.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// layout is the resolved geometry and typography of a canvas.
type layout struct {
	c              *canvas.Canvas
	width, height  int
	x0, x1, y0, y1 float64
	xr, yr         continuousaxis.Range
	labelPx        float64
	titlePx        float64
	legendPx       float64
}

func newLayout(c *canvas.Canvas) (*layout, error) {
	cfg, st, lg := c.Config(), c.StyleSettings(), c.LegendSettings()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &Error{Property: "size", Value: fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), Err: ErrSize}
	}
	for _, check := range []struct{ property, value string }{
		{"outline color", st.OutlineColor},
		{"background color", st.BackgroundColor},
	} {
		if err := checkColor(check.property, check.value); err != nil {
			return nil, err
		}
	}
	for _, g := range c.Glyphs() {
		if err := checkGlyphColors(g); err != nil {
			return nil, err
		}
	}
	l := &layout{
		c:      c,
		width:  cfg.Width,
		height: cfg.Height,
		xr:     c.XRange(),
		yr:     c.YRange(),
	}
	var err error
	if l.labelPx, err = fontPx("label font size", st.LabelFontSize); err != nil {
		return nil, err
	}
	if l.titlePx, err = fontPx("title font size", st.TitleFontSize); err != nil {
		return nil, err
	}
	if lg.Visible {
		if l.legendPx, err = fontPx("legend font size", lg.FontSize); err != nil {
			return nil, err
		}
	}
	bottom := float64(marginBottom)
	if st.XLabelOrientation != 0 {
		bottom = rotatedMarginBottom
	}
	l.x0, l.x1 = marginLeft, float64(cfg.Width)-marginRight
	l.y0, l.y1 = l.titlePx*2, float64(cfg.Height)-bottom
	if l.x1 <= l.x0 || l.y1 <= l.y0 {
		return nil, &Error{Property: "plot area", Value: fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), Err: ErrSize}
	}
	return l, nil
}

func checkGlyphColors(g canvas.Glyph) error {
	var colors []string
	switch g := g.(type) {
	case *canvas.Line:
		colors = append(colors, g.Color)
	case *canvas.Points:
		colors = append(colors, g.Color)
	case *canvas.Quads:
		colors = append(colors, g.Color)
	case *canvas.Bars:
		colors = append(append(colors, g.Color), g.Colors...)
	case *canvas.Boxes:
		colors = append(colors, g.Color, g.OutlierColor)
	}
	for _, c := range colors {
		if err := checkColor("glyph color", c); err != nil {
			return err
		}
	}
	return nil
}

func (l *layout) px(x float64) float64 {
	return l.xr.Pixel(x, l.x0, l.x1)
}

func (l *layout) py(y float64) float64 {
	return l.yr.Pixel(y, l.y1, l.y0)
}

// slot returns the pixel width of one categorical factor.
func (l *layout) slot() float64 {
	return l.px(1) - l.px(0)
}

// SVG renders c to w as a standalone SVG document.
func SVG(w io.Writer, c *canvas.Canvas) error {
	l, err := newLayout(c)
	if err != nil {
		return err
	}
	ew := &errWriter{w: w}
	s := svg.New(ew)
	s.Start(l.width, l.height, `font-family="Helvetica,Arial,sans-serif"`, attr("class", "chartviz"))
	s.Rect(0, 0, l.width, l.height, "fill:white")
	l.drawFrame(s)
	s.ClipPath(`id="plot-area"`)
	s.Rect(round(l.x0), round(l.y0), round(l.x1-l.x0), round(l.y1-l.y0))
	s.ClipEnd()
	s.Group(`clip-path="url(#plot-area)"`)
	for _, g := range c.Glyphs() {
		l.drawGlyph(s, g)
	}
	s.Gend()
	l.drawAxes(s)
	l.drawLegend(s)
	s.End()
	if ew.err != nil {
		return &Error{Property: "output", Err: ew.err}
	}
	return nil
}

func (l *layout) drawFrame(s *svg.SVG) {
	st := l.c.StyleSettings()
	if title := l.c.Config().Title; title != "" {
		s.Text(round(l.x0), round(l.titlePx*1.3), title,
			attr("font-size", st.TitleFontSize), `font-weight="bold"`, attr("fill", st.OutlineColor))
	}
	s.Rect(round(l.x0), round(l.y0), round(l.x1-l.x0), round(l.y1-l.y0),
		attr("fill", st.BackgroundColor), attr("stroke", st.OutlineColor))
	var path strings.Builder
	for _, x := range l.xTicks() {
		fmt.Fprintf(&path, "M%s %sV%s", num(l.px(x)), num(l.y0), num(l.y1))
	}
	for _, y := range l.yr.Ticks(maxTicks) {
		fmt.Fprintf(&path, "M%s %sH%s", num(l.x0), num(l.py(y)), num(l.x1))
	}
	if path.Len() > 0 {
		s.Path(path.String(), attr("stroke", gridColor), attr("stroke-width", num(l.c.GridWidth())), `fill="none"`)
	}
}

// xTicks returns the x tick positions: factor centers on categorical
// axes, round values otherwise.
func (l *layout) xTicks() []float64 {
	if f := l.c.Factors(); f != nil {
		ret := make([]float64, f.Len())
		for i := range ret {
			ret[i] = float64(i) + 0.5
		}
		return ret
	}
	return l.xr.Ticks(maxTicks)
}

func (l *layout) xTickLabels(ticks []float64) []string {
	ret := make([]string, len(ticks))
	if f := l.c.Factors(); f != nil {
		return f.Names()
	}
	step := continuousaxis.TickStep(ticks)
	for i, t := range ticks {
		if l.c.Config().Datetime {
			ret[i] = continuousaxis.FormatTime(t, l.c.XFormat())
		} else {
			ret[i] = continuousaxis.FormatNumber(t, step, false)
		}
	}
	return ret
}

func (l *layout) drawAxes(s *svg.SVG) {
	st, cfg := l.c.StyleSettings(), l.c.Config()
	font := attr("font-size", st.LabelFontSize)
	var path strings.Builder
	xTicks := l.xTicks()
	for _, x := range xTicks {
		fmt.Fprintf(&path, "M%s %sv%d", num(l.px(x)), num(l.y1), tickLength)
	}
	yTicks := l.yr.Ticks(maxTicks)
	for _, y := range yTicks {
		fmt.Fprintf(&path, "M%s %sh%d", num(l.x0), num(l.py(y)), -tickLength)
	}
	if path.Len() > 0 {
		s.Path(path.String(), attr("stroke", axisColor), `stroke-width="1"`)
	}
	degrees := -st.XLabelOrientation * 180 / math.Pi
	for i, label := range l.xTickLabels(xTicks) {
		x, y := round(l.px(xTicks[i])), round(l.y1+tickLength+4)
		if degrees == 0 {
			s.Text(x, y, label, font, `text-anchor="middle"`, `dy="1em"`)
			continue
		}
		s.TranslateRotate(x, y, degrees)
		s.Text(0, 0, label, font, `text-anchor="end"`, `dy=".3em"`)
		s.Gend()
	}
	yStep := continuousaxis.TickStep(yTicks)
	for _, y := range yTicks {
		s.Text(round(l.x0-tickLength-4), round(l.py(y)), continuousaxis.FormatNumber(y, yStep, st.YAxisScientific),
			font, `text-anchor="end"`, `dy=".3em"`)
	}
	if cfg.XLabel != "" {
		s.Text(round((l.x0+l.x1)/2), l.height-round(l.labelPx*0.5), cfg.XLabel,
			font, `font-weight="bold"`, `text-anchor="middle"`)
	}
	if cfg.YLabel != "" {
		x, y := round(l.labelPx), round((l.y0+l.y1)/2)
		s.Text(x, y, cfg.YLabel, font, `font-weight="bold"`, `text-anchor="middle"`,
			fmt.Sprintf(`transform="rotate(-90 %d %d)"`, x, y))
	}
}

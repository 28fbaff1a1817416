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
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/hover"
)

// hoverRadius is the radius of the invisible hover targets on line
// vertices.
const hoverRadius = 5

func colorOr(c string) string {
	if c == "" {
		return defaultGlyphColor
	}
	return c
}

// tooltip opens an element group titled with the tooltip for p, if the
// canvas has any hover specifications.  It returns the function closing
// the group.
func (l *layout) tooltip(s *svg.SVG, p hover.Point) func() {
	text := l.c.Tooltip(p)
	if text == "" {
		return func() {}
	}
	s.Group(`class="hover"`)
	s.Title(text)
	return s.Gend
}

func (l *layout) drawGlyph(s *svg.SVG, g canvas.Glyph) {
	anchors := l.c.Anchors(g)
	switch g := g.(type) {
	case *canvas.Line:
		s.Group(`class="glyph line"`, attr("data-series", g.Series))
		l.drawLine(s, g, anchors)
	case *canvas.Points:
		s.Group(`class="glyph points"`, attr("data-series", g.Series))
		l.drawPoints(s, g, anchors)
	case *canvas.Quads:
		s.Group(`class="glyph quads"`, attr("data-series", g.Series))
		l.drawQuads(s, g, anchors)
	case *canvas.Bars:
		s.Group(`class="glyph bars"`, attr("data-series", g.Series))
		l.drawBars(s, g, anchors)
	case *canvas.Boxes:
		s.Group(`class="glyph boxes"`, attr("data-series", g.Series))
		l.drawBoxes(s, g, anchors)
	default:
		return
	}
	s.Gend()
}

func (l *layout) drawLine(s *svg.SVG, g *canvas.Line, anchors []hover.Point) {
	var xs, ys []int
	for i := range g.X {
		if isFinite(g.X[i]) && isFinite(g.Y[i]) {
			xs, ys = append(xs, round(l.px(g.X[i]))), append(ys, round(l.py(g.Y[i])))
		}
	}
	width := g.Width
	if width <= 0 {
		width = 1
	}
	s.Polyline(xs, ys, `fill="none"`, attr("stroke", colorOr(g.Color)),
		attr("stroke-width", num(width)), attr("stroke-opacity", num(g.Opacity())))
	for i, p := range anchors {
		if !isFinite(g.X[i]) || !isFinite(g.Y[i]) {
			continue
		}
		end := l.tooltip(s, p)
		s.Circle(round(l.px(p.X)), round(l.py(p.Y)), hoverRadius, `fill-opacity="0"`)
		end()
	}
}

func (l *layout) drawPoints(s *svg.SVG, g *canvas.Points, anchors []hover.Point) {
	r := round(g.Size / 2)
	if r < 1 {
		r = 1
	}
	for i, p := range anchors {
		if !isFinite(g.X[i]) || !isFinite(g.Y[i]) {
			continue
		}
		end := l.tooltip(s, p)
		s.Circle(round(l.px(p.X)), round(l.py(p.Y)), r,
			attr("fill", colorOr(g.Color)), attr("fill-opacity", num(g.Opacity())))
		end()
	}
}

// rect draws the rectangle spanning pixel columns left to right and data
// values bottom to top.
func (l *layout) rect(s *svg.SVG, left, right, bottom, top float64, styles ...string) {
	x0, x1 := math.Min(left, right), math.Max(left, right)
	y0, y1 := math.Min(l.py(top), l.py(bottom)), math.Max(l.py(top), l.py(bottom))
	s.Rect(round(x0), round(y0), round(x1)-round(x0), round(y1)-round(y0), styles...)
}

func (l *layout) drawQuads(s *svg.SVG, g *canvas.Quads, anchors []hover.Point) {
	for i, p := range anchors {
		end := l.tooltip(s, p)
		l.rect(s, l.px(g.Left[i]), l.px(g.Right[i]), g.Bottom[i], g.Top[i],
			attr("fill", colorOr(g.Color)), attr("fill-opacity", num(g.Opacity())), `stroke="black"`)
		end()
	}
}

func (l *layout) drawBars(s *svg.SVG, g *canvas.Bars, anchors []hover.Point) {
	half := g.Width * l.slot() / 2
	for i, p := range anchors {
		cx := l.px(p.X)
		end := l.tooltip(s, p)
		l.rect(s, cx-half, cx+half, g.BottomAt(i), g.Top[i],
			attr("fill", colorOr(g.ColorAt(i))), attr("fill-opacity", num(g.Opacity())), attr("stroke", glyphOutline))
		end()
	}
}

func (l *layout) drawBoxes(s *svg.SVG, g *canvas.Boxes, anchors []hover.Point) {
	slot := l.slot()
	half := g.Width * slot / 2
	whisker := 0.1 * slot
	outlierR := round(g.OutlierSize / 2)
	if outlierR < 1 {
		outlierR = 1
	}
	outlierAlpha := g.OutlierAlpha
	if outlierAlpha <= 0 || outlierAlpha > 1 {
		outlierAlpha = 1
	}
	for i, p := range anchors {
		box := g.Boxes[i]
		cx := l.px(p.X)
		x := round(cx)
		s.Line(x, round(l.py(box.Upper)), x, round(l.py(box.Q3)), `stroke="black"`)
		s.Line(x, round(l.py(box.Lower)), x, round(l.py(box.Q1)), `stroke="black"`)
		s.Line(round(cx-whisker), round(l.py(box.Upper)), round(cx+whisker), round(l.py(box.Upper)), `stroke="black"`)
		s.Line(round(cx-whisker), round(l.py(box.Lower)), round(cx+whisker), round(l.py(box.Lower)), `stroke="black"`)
		end := l.tooltip(s, p)
		l.rect(s, cx-half, cx+half, box.Q1, box.Q3,
			attr("fill", colorOr(g.Color)), attr("fill-opacity", num(g.Opacity())), `stroke="black"`)
		end()
		s.Line(round(cx-half), round(l.py(box.Q2)), round(cx+half), round(l.py(box.Q2)), `stroke="black"`, `stroke-width="2"`)
		for _, v := range box.Outliers {
			end := l.tooltip(s, hover.Point{X: p.X, Y: v, Name: p.Name, Fields: map[string]any{"x": p.Name}})
			s.Circle(x, round(l.py(v)), outlierR,
				attr("fill", colorOr(g.OutlierColor)), attr("fill-opacity", num(outlierAlpha)))
			end()
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

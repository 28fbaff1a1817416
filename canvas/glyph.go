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
	"fmt"

	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	"github.com/ilhamster/chartviz/frame"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/stats"
)

// Glyph is one drawing layer of a Canvas: a Line, Points, Quads, Bars, or
// Boxes.
type Glyph interface {
	mark() Mark
	kind() string
	validate(factors *categoryaxis.Factors) error
	extents(factors *categoryaxis.Factors) (x, y continuousaxis.Range)
	anchors(factors *categoryaxis.Factors) []hover.Point
}

// Mark holds what every glyph has: the series it belongs to, and its color.
type Mark struct {
	// Series names the glyph in the legend and in tooltips.  Glyphs with
	// the same Series share a legend entry.
	Series string
	Color  string
	// Alpha is the fill or stroke opacity.  Zero means opaque.
	Alpha float64
}

func (m Mark) mark() Mark {
	return m
}

// Opacity returns the receiver's effective opacity.
func (m Mark) Opacity() float64 {
	if m.Alpha <= 0 || m.Alpha > 1 {
		return 1
	}
	return m.Alpha
}

func shapeError(m Mark, format string, args ...any) error {
	return &frame.ColumnError{
		Column: m.Series,
		Detail: fmt.Sprintf(format, args...),
		Err:    frame.ErrShape,
	}
}

func checkFields(m Mark, fields []map[string]any, n int) error {
	if fields != nil && len(fields) != n {
		return shapeError(m, "%d hover field sets for %d elements", len(fields), n)
	}
	return nil
}

func checkFactors(m Mark, factors *categoryaxis.Factors, names []string) error {
	if factors == nil {
		return shapeError(m, "needs a categorical x axis")
	}
	for _, name := range names {
		if _, ok := factors.Index(name); !ok {
			return shapeError(m, "unknown factor '%s'", name)
		}
	}
	return nil
}

func fieldsAt(fields []map[string]any, i int) map[string]any {
	ret := map[string]any{}
	if i < len(fields) {
		for k, v := range fields[i] {
			ret[k] = v
		}
	}
	return ret
}

func center(factors *categoryaxis.Factors, name string) float64 {
	x, _ := factors.Center(name)
	return x
}

// Line is a polyline through (X[i], Y[i]).
type Line struct {
	Mark
	Width float64
	X, Y  []float64
	// Fields, if set, holds per-point tooltip fields.
	Fields []map[string]any
}

func (l *Line) kind() string { return "line" }

func (l *Line) validate(*categoryaxis.Factors) error {
	if len(l.X) != len(l.Y) {
		return shapeError(l.Mark, "%d x values for %d y values", len(l.X), len(l.Y))
	}
	return checkFields(l.Mark, l.Fields, len(l.X))
}

func (l *Line) extents(*categoryaxis.Factors) (x, y continuousaxis.Range) {
	return continuousaxis.EmptyRange().Extend(l.X...), continuousaxis.EmptyRange().Extend(l.Y...)
}

func (l *Line) anchors(*categoryaxis.Factors) []hover.Point {
	return pointAnchors(l.Series, l.X, l.Y, l.Fields)
}

func pointAnchors(series string, xs, ys []float64, fields []map[string]any) []hover.Point {
	ret := make([]hover.Point, len(xs))
	for i := range xs {
		ret[i] = hover.Point{
			X:      xs[i],
			Y:      ys[i],
			Name:   series,
			Fields: fieldsAt(fields, i),
		}
	}
	return ret
}

// Points is a set of circular markers at (X[i], Y[i]).
type Points struct {
	Mark
	// Size is the marker diameter in pixels.
	Size   float64
	X, Y   []float64
	Fields []map[string]any
}

func (p *Points) kind() string { return "points" }

func (p *Points) validate(*categoryaxis.Factors) error {
	if len(p.X) != len(p.Y) {
		return shapeError(p.Mark, "%d x values for %d y values", len(p.X), len(p.Y))
	}
	return checkFields(p.Mark, p.Fields, len(p.X))
}

func (p *Points) extents(*categoryaxis.Factors) (x, y continuousaxis.Range) {
	return continuousaxis.EmptyRange().Extend(p.X...), continuousaxis.EmptyRange().Extend(p.Y...)
}

func (p *Points) anchors(*categoryaxis.Factors) []hover.Point {
	return pointAnchors(p.Series, p.X, p.Y, p.Fields)
}

// Quads is a set of axis-aligned rectangles on a continuous x axis, as
// drawn for histogram bins.
type Quads struct {
	Mark
	Left, Right []float64
	Bottom, Top []float64
}

func (q *Quads) kind() string { return "quads" }

func (q *Quads) validate(*categoryaxis.Factors) error {
	n := len(q.Left)
	if len(q.Right) != n || len(q.Bottom) != n || len(q.Top) != n {
		return shapeError(q.Mark, "left, right, bottom and top lengths differ (%d, %d, %d, %d)",
			len(q.Left), len(q.Right), len(q.Bottom), len(q.Top))
	}
	return nil
}

func (q *Quads) extents(*categoryaxis.Factors) (x, y continuousaxis.Range) {
	x = continuousaxis.EmptyRange().Extend(q.Left...).Extend(q.Right...)
	y = continuousaxis.EmptyRange().Extend(q.Bottom...).Extend(q.Top...)
	return x, y
}

func (q *Quads) anchors(*categoryaxis.Factors) []hover.Point {
	ret := make([]hover.Point, len(q.Left))
	for i := range q.Left {
		ret[i] = hover.Point{
			X:    (q.Left[i] + q.Right[i]) / 2,
			Y:    q.Top[i],
			Name: q.Series,
			Fields: map[string]any{
				"left":   q.Left[i],
				"right":  q.Right[i],
				"bottom": q.Bottom[i],
				"top":    q.Top[i],
			},
		}
	}
	return ret
}

// Bars is a set of vertical bars on a categorical x axis, one per factor,
// each spanning Bottom[i] to Top[i].  Stacks are drawn as several Bars
// whose bottoms are the previous layer's tops.
type Bars struct {
	Mark
	Factors []string
	// Bottom may be nil, for bars starting at zero.
	Bottom, Top []float64
	// Width is the bar width as a fraction of a factor's slot.
	Width float64
	// Colors, if set, overrides Color per bar.
	Colors []string
	Fields []map[string]any
}

func (b *Bars) kind() string { return "bars" }

// BottomAt returns the bottom of the i'th bar.
func (b *Bars) BottomAt(i int) float64 {
	if b.Bottom == nil {
		return 0
	}
	return b.Bottom[i]
}

// ColorAt returns the fill color of the i'th bar.
func (b *Bars) ColorAt(i int) string {
	if i < len(b.Colors) {
		return b.Colors[i]
	}
	return b.Color
}

func (b *Bars) validate(factors *categoryaxis.Factors) error {
	if err := checkFactors(b.Mark, factors, b.Factors); err != nil {
		return err
	}
	n := len(b.Factors)
	if len(b.Top) != n || (b.Bottom != nil && len(b.Bottom) != n) {
		return shapeError(b.Mark, "%d factors for %d tops and %d bottoms", n, len(b.Top), len(b.Bottom))
	}
	if b.Colors != nil && len(b.Colors) != n {
		return shapeError(b.Mark, "%d colors for %d factors", len(b.Colors), n)
	}
	return checkFields(b.Mark, b.Fields, n)
}

func (b *Bars) extents(factors *categoryaxis.Factors) (x, y continuousaxis.Range) {
	y = continuousaxis.EmptyRange().Extend(b.Top...)
	for i := range b.Top {
		y = y.Extend(b.BottomAt(i))
	}
	return factors.Range(), y
}

func (b *Bars) anchors(factors *categoryaxis.Factors) []hover.Point {
	ret := make([]hover.Point, len(b.Factors))
	for i, name := range b.Factors {
		fields := fieldsAt(b.Fields, i)
		fields["x"] = name
		fields["top"] = b.Top[i]
		fields["bottom"] = b.BottomAt(i)
		ret[i] = hover.Point{
			X:      center(factors, name),
			Y:      b.Top[i],
			Name:   b.Series,
			Fields: fields,
		}
	}
	return ret
}

// Boxes is a set of box plots on a categorical x axis, one per factor:
// a box from Q1 to Q3, a median line, whiskers to the fences, and outlier
// markers.
type Boxes struct {
	Mark
	Factors []string
	Boxes   []stats.Box
	// Width is the box width as a fraction of a factor's slot.
	Width        float64
	OutlierColor string
	OutlierAlpha float64
	OutlierSize  float64
}

func (b *Boxes) kind() string { return "boxes" }

func (b *Boxes) validate(factors *categoryaxis.Factors) error {
	if err := checkFactors(b.Mark, factors, b.Factors); err != nil {
		return err
	}
	if len(b.Boxes) != len(b.Factors) {
		return shapeError(b.Mark, "%d boxes for %d factors", len(b.Boxes), len(b.Factors))
	}
	return nil
}

func (b *Boxes) extents(factors *categoryaxis.Factors) (x, y continuousaxis.Range) {
	y = continuousaxis.EmptyRange()
	for _, box := range b.Boxes {
		y = y.Extend(box.Min, box.Max)
	}
	return factors.Range(), y
}

func (b *Boxes) anchors(factors *categoryaxis.Factors) []hover.Point {
	ret := make([]hover.Point, len(b.Factors))
	for i, name := range b.Factors {
		box := b.Boxes[i]
		ret[i] = hover.Point{
			X:    center(factors, name),
			Y:    box.Q2,
			Name: name,
			Fields: map[string]any{
				"x":      name,
				"top":    box.Q3,
				"bottom": box.Q1,
				"median": box.Q2,
				"upper":  box.Upper,
				"lower":  box.Lower,
				"n":      box.N,
			},
		}
	}
	return ret
}

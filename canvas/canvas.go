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

// Package canvas defines a chart canvas: a single drawing surface with a
// title, axis labels, and a size, plus the styling, legend, and tooltip
// state that decorates it.  Chart variants build a Canvas, add glyph layers
// to it, and render it through a Sink.
//
//	c := canvas.New(canvas.Config{Title: "Revenue", Width: 900, Height: 600})
//	c.Style(style.XAxisPadding(0.1)).Legend(legend.At(legend.TopLeft))
//	if err := c.Add(&canvas.Line{...}); err != nil { ... }
//	err := c.Render(sink)
package canvas

import (
	"errors"
	"fmt"

	categoryaxis "github.com/ilhamster/chartviz/category_axis"
	continuousaxis "github.com/ilhamster/chartviz/continuous_axis"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/legend"
	"github.com/ilhamster/chartviz/style"
)

// ErrNoSink is returned when a Canvas is rendered without a Sink.
var ErrNoSink = errors.New("no sink to render to")

// yPadding widens automatic y ranges by this fraction on each side.
const yPadding = 0.05

// Config is the fixed part of a Canvas, set at construction.
type Config struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	// XRange, if set, makes the x axis categorical over these factors.
	XRange *categoryaxis.Factors
	// Datetime x values are seconds since the Unix epoch.
	Datetime bool
}

// Sink displays or stores a rendered Canvas.
type Sink interface {
	Show(c *Canvas) error
}

// Canvas is a single chart.
type Canvas struct {
	cfg       Config
	style     style.Settings
	legend    legend.Settings
	hovers    []hover.Spec
	yStart    *float64
	xFormat   string
	gridWidth float64
	glyphs    []Glyph
}

// New returns a new Canvas with default styling and legend settings.
func New(cfg Config) *Canvas {
	return &Canvas{
		cfg:       cfg,
		style:     style.Defaults(),
		legend:    legend.Defaults(),
		gridWidth: 1,
	}
}

// Config returns the receiver's construction-time configuration.
func (c *Canvas) Config() Config {
	return c.cfg
}

// Style replaces the receiver's styling with the defaults adjusted by opts.
func (c *Canvas) Style(opts ...style.Option) *Canvas {
	c.style = style.Apply(opts...)
	return c
}

// StyleSettings returns the receiver's current styling.
func (c *Canvas) StyleSettings() style.Settings {
	return c.style
}

// Legend replaces the receiver's legend settings with the defaults adjusted
// by opts.
func (c *Canvas) Legend(opts ...legend.Option) *Canvas {
	c.legend = legend.Apply(opts...)
	return c
}

// LegendSettings returns the receiver's current legend settings.
func (c *Canvas) LegendSettings() legend.Settings {
	return c.legend
}

// AddHover attaches a tooltip specification to the receiver.  Every
// attached specification contributes lines to each glyph's tooltip.
func (c *Canvas) AddHover(spec hover.Spec) *Canvas {
	c.hovers = append(c.hovers, spec)
	return c
}

// Hovers returns the receiver's tooltip specifications.
func (c *Canvas) Hovers() []hover.Spec {
	return c.hovers
}

// SetYStart pins the bottom of the y range.
func (c *Canvas) SetYStart(v float64) *Canvas {
	c.yStart = &v
	return c
}

// SetXFormat sets the strftime pattern for datetime x tick labels.
func (c *Canvas) SetXFormat(pattern string) *Canvas {
	c.xFormat = pattern
	return c
}

// XFormat returns the datetime x tick label pattern.
func (c *Canvas) XFormat() string {
	if c.xFormat == "" {
		return continuousaxis.DefaultTimeFormat
	}
	return c.xFormat
}

// SetGridWidth sets the stroke width of grid lines, in pixels.
func (c *Canvas) SetGridWidth(px float64) *Canvas {
	c.gridWidth = px
	return c
}

// GridWidth returns the stroke width of grid lines, in pixels.
func (c *Canvas) GridWidth() float64 {
	return c.gridWidth
}

// Add validates g and adds it as the receiver's topmost layer.
func (c *Canvas) Add(g Glyph) error {
	if err := g.validate(c.cfg.XRange); err != nil {
		return fmt.Errorf("adding %s glyph '%s': %w", g.kind(), g.mark().Series, err)
	}
	c.glyphs = append(c.glyphs, g)
	return nil
}

// Glyphs returns the receiver's layers, bottom first.
func (c *Canvas) Glyphs() []Glyph {
	return c.glyphs
}

// Factors returns the receiver's categorical x axis, or nil.
func (c *Canvas) Factors() *categoryaxis.Factors {
	return c.cfg.XRange
}

// XRange returns the x extent to draw.  Categorical axes span their
// factors; continuous axes span the data, widened by the style's x axis
// padding.
func (c *Canvas) XRange() continuousaxis.Range {
	if c.cfg.XRange != nil {
		return c.cfg.XRange.Range()
	}
	r := continuousaxis.EmptyRange()
	for _, g := range c.glyphs {
		x, _ := g.extents(c.cfg.XRange)
		r = r.Extend(x.Min, x.Max)
	}
	return r.Pad(c.style.XAxisPadding)
}

// YRange returns the y extent to draw: the data, padded, with its bottom
// pinned by SetYStart.
func (c *Canvas) YRange() continuousaxis.Range {
	r := continuousaxis.EmptyRange()
	for _, g := range c.glyphs {
		_, y := g.extents(c.cfg.XRange)
		r = r.Extend(y.Min, y.Max)
	}
	if c.yStart != nil {
		r = r.Extend(*c.yStart)
		padded := r.Pad(yPadding)
		if r.Empty() {
			padded = continuousaxis.Range{Min: *c.yStart, Max: *c.yStart + 1}
		}
		return continuousaxis.Range{Min: *c.yStart, Max: padded.Max}
	}
	return r.Pad(yPadding)
}

// LegendEntry is one series shown in a legend.
type LegendEntry struct {
	Series string
	Color  string
}

// LegendEntries returns the receiver's named series, in first-added order.
func (c *Canvas) LegendEntries() []LegendEntry {
	seen := map[string]bool{}
	var ret []LegendEntry
	for _, g := range c.glyphs {
		m := g.mark()
		if m.Series == "" || seen[m.Series] {
			continue
		}
		seen[m.Series] = true
		ret = append(ret, LegendEntry{Series: m.Series, Color: m.Color})
	}
	return ret
}

// Anchors returns the hover points of g's elements.
func (c *Canvas) Anchors(g Glyph) []hover.Point {
	return g.anchors(c.cfg.XRange)
}

// Tooltip renders every attached hover specification for p.
func (c *Canvas) Tooltip(p hover.Point) string {
	var ret string
	for _, spec := range c.hovers {
		text := spec.Text(p)
		if text == "" {
			continue
		}
		if ret != "" {
			ret += "\n"
		}
		ret += text
	}
	return ret
}

// Render sends the receiver to sink.
func (c *Canvas) Render(sink Sink) error {
	if sink == nil {
		return ErrNoSink
	}
	return sink.Show(c)
}

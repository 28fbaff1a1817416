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

package color

import (
	"errors"
	"fmt"

	"github.com/ilhamster/chartviz/util"
)

// ErrOutOfRange is returned, wrapped in a *RangeError, when more colors are
// requested than a palette holds.
var ErrOutOfRange = errors.New("palette index out of range")

// RangeError reports a request for more colors than a palette holds.
type RangeError struct {
	Palette   string
	Requested int
	Available int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("palette '%s': requested %d colors, %d available: %s",
		e.Palette, e.Requested, e.Available, ErrOutOfRange)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

var (
	brandColors = []string{
		"#0097AC", "#020B13", "#888E95", "#C0873A", "#F8DA00",
		"#F28B00", "#F4D7AE", "#5EB342", "#E72D34",
	}
	// The five darkest colors of the 8-class ColorBrewer "Blues" scheme,
	// dark to light.
	secondaryBlues = []string{
		"#084594", "#2171B5", "#4292C6", "#6BAED6", "#9ECAE1",
	}
)

// Default is the palette every chart draws its category colors from.
var Default = NewPalette("chartviz", append(append([]string{}, brandColors...), secondaryBlues...)...)

// Palette is a fixed, ordered sequence of hex color tokens.
type Palette struct {
	name   string
	colors []string
}

// NewPalette returns a palette over a copy of the provided colors.
func NewPalette(name string, colors ...string) *Palette {
	return &Palette{
		name:   name,
		colors: append([]string{}, colors...),
	}
}

// Name returns the palette's name.
func (p *Palette) Name() string {
	return p.name
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Colors returns the full color sequence.
func (p *Palette) Colors() []string {
	return append([]string{}, p.colors...)
}

// FirstN returns the first n colors of the palette.  Requests for more
// colors than the palette holds, or for a negative count, fail with a
// *RangeError; colors are never repeated.
func (p *Palette) FirstN(n int) ([]string, error) {
	if n < 0 || n > len(p.colors) {
		return nil, &RangeError{Palette: p.name, Requested: n, Available: len(p.colors)}
	}
	return append([]string{}, p.colors[:n]...), nil
}

// At returns the palette's i-th color.
func (p *Palette) At(i int) (string, error) {
	if i < 0 || i >= len(p.colors) {
		return "", &RangeError{Palette: p.name, Requested: i + 1, Available: len(p.colors)}
	}
	return p.colors[i], nil
}

// Space returns a color Space spanning the palette.
func (p *Palette) Space() *Space {
	return NewSpace(p.name, p.colors...)
}

// Mapper assigns palette colors to categorical factors by rank.
type Mapper struct {
	factors []string
	colors  []string
	byName  map[string]string
}

// Mapper returns a Mapper coloring the provided factors in order.  Repeated
// factors keep the color of their first occurrence.  More distinct factors
// than palette colors is a *RangeError.
func (p *Palette) Mapper(factors ...string) (*Mapper, error) {
	m := &Mapper{byName: map[string]string{}}
	for _, f := range factors {
		if _, ok := m.byName[f]; ok {
			continue
		}
		m.byName[f] = ""
		m.factors = append(m.factors, f)
	}
	colors, err := p.FirstN(len(m.factors))
	if err != nil {
		return nil, err
	}
	m.colors = colors
	for idx, f := range m.factors {
		m.byName[f] = colors[idx]
	}
	return m, nil
}

// Color returns the color assigned to the provided factor.
func (m *Mapper) Color(factor string) (string, bool) {
	c, ok := m.byName[factor]
	return c, ok
}

// Factors returns the mapped factors in rank order.
func (m *Mapper) Factors() []string {
	return append([]string{}, m.factors...)
}

const (
	mapperFactorsKey = "color_mapper_factors"
	mapperColorsKey  = "color_mapper_colors"
)

// Define annotates with the receiver's factor-to-color assignment.
func (m *Mapper) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringsProperty(mapperFactorsKey, m.factors...),
		util.StringsProperty(mapperColorsKey, m.colors...),
	)
}

/*
	Copyright 2023 Google Inc.
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

// Package color provides the chart palette and annotates chart data with
// colors.
//
// Palette is the ordered color sequence charts draw from: the n-th category
// of a chart gets the n-th palette color.  Default is the shared palette,
// and is never modified after initialization.
//
// A Datum may carry up to three colors: a primary color, the dominant fill
// of the rendered item; a secondary color for accents; and a stroke color
// for text, outlines, and lines.  Each may be given directly, as an HTML
// color string:
//
//	bar.With(color.Primary("#0097AC"), color.Stroke("#020B13"))
//
// or as a position between 0.0 and 1.0 along a color Space defined
// elsewhere in the response:
//
//	heat := color.NewSpace("heat", "#F8DA00", "#E72D34")
//	chart.With(heat.Define())
//	cell.With(heat.PrimaryColor(0.25))
//
// A given color type may only be specified one way per Datum.
package color

import "github.com/ilhamster/chartviz/util"

const (
	// colorSpaceNamePrefix defines a color space.
	colorSpaceNamePrefix = "color_space_"
	// The primary color space and value, or raw color.
	primaryColorSpaceKey      = "primary_color_space"
	primaryColorSpaceValueKey = "primary_color_space_value"
	primaryColorKey           = "primary_color"
	// The secondary color space and value, or raw color.
	secondaryColorSpaceKey      = "secondary_color_space"
	secondaryColorSpaceValueKey = "secondary_color_space_value"
	secondaryColorKey           = "secondary_color"
	// The stroke color space and value, or raw color.
	strokeColorSpaceKey      = "stroke_color_space"
	strokeColorSpaceValueKey = "stroke_color_space_value"
	strokeColorKey           = "stroke_color"
)

// Space is a color continuum mapping values in [0, 1] to colors by linear
// interpolation between its colors.
type Space struct {
	name   string
	colors []string
}

// NewSpace returns a new color space over the provided colors.
func NewSpace(name string, colors ...string) *Space {
	return &Space{
		name:   name,
		colors: colors,
	}
}

// Name returns the Space's name.
func (s *Space) Name() string {
	return s.name
}

// Colors returns the colors spanned by the receiver.
func (s *Space) Colors() []string {
	return append([]string{}, s.colors...)
}

// Define annotates with a definition of the receiving Space.
func (s *Space) Define() util.PropertyUpdate {
	return util.StringsProperty(colorSpaceNamePrefix+s.name, s.colors...)
}

// PrimaryColor annotates a Datum with a primary color along the receiving
// color space.
func (s *Space) PrimaryColor(colorValue float64) util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(primaryColorSpaceKey, colorSpaceNamePrefix+s.name),
		util.DoubleProperty(primaryColorSpaceValueKey, colorValue),
	)
}

// Primary annotates a Datum with the specified primary color.
func Primary(colorValue string) util.PropertyUpdate {
	return util.StringProperty(primaryColorKey, colorValue)
}

// SecondaryColor annotates a Datum with a secondary color along the receiving
// color space.
func (s *Space) SecondaryColor(colorValue float64) util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(secondaryColorSpaceKey, colorSpaceNamePrefix+s.name),
		util.DoubleProperty(secondaryColorSpaceValueKey, colorValue),
	)
}

// Secondary annotates a Datum with the specified secondary color.
func Secondary(colorValue string) util.PropertyUpdate {
	return util.StringProperty(secondaryColorKey, colorValue)
}

// StrokeColor annotates a Datum with a stroke color along the receiving
// color space.
func (s *Space) StrokeColor(colorValue float64) util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(strokeColorSpaceKey, colorSpaceNamePrefix+s.name),
		util.DoubleProperty(strokeColorSpaceValueKey, colorValue),
	)
}

// Stroke annotates a Datum with the specified stroke color.
func Stroke(colorValue string) util.PropertyUpdate {
	return util.StringProperty(strokeColorKey, colorValue)
}

const alphaKey = "alpha"

// Alpha annotates a Datum with the opacity, from 0 (transparent) to 1
// (opaque), of its colors.
func Alpha(alpha float64) util.PropertyUpdate {
	return util.DoubleProperty(alphaKey, alpha)
}

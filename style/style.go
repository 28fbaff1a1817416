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

// Package style specifies chart styling.
//
// Settings holds the figure-wide styling of a chart canvas: font sizes,
// outline and background colors, tick label orientation, axis padding, and
// tick notation.  Settings are built from the defaults by applying Options,
// so every styling call fully determines the resulting style.
//
// Style is a free-form mapping from SVG attribute name to value, used to
// style individual rendered items.
package style

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ilhamster/chartviz/util"
)

const (
	keyPrefix = "style_"

	labelFontSizeKey     = keyPrefix + "label_font_size"
	titleFontSizeKey     = keyPrefix + "title_font_size"
	outlineColorKey      = keyPrefix + "outline_color"
	backgroundColorKey   = keyPrefix + "background_color"
	xLabelOrientationKey = keyPrefix + "x_label_orientation"
	xAxisPaddingKey      = keyPrefix + "x_axis_padding"
	yAxisScientificKey   = keyPrefix + "y_axis_scientific"
)

// Settings is the figure-wide styling of a chart.
type Settings struct {
	// LabelFontSize applies to axis labels and tick labels.
	LabelFontSize string
	TitleFontSize string
	OutlineColor  string
	// BackgroundColor fills the plot area.
	BackgroundColor string
	// XLabelOrientation rotates x tick labels counterclockwise, in radians.
	XLabelOrientation float64
	// XAxisPadding widens the x range by this fraction of its span.
	XAxisPadding float64
	// YAxisScientific permits scientific notation on y tick labels.
	YAxisScientific bool
}

// Defaults returns the default Settings.
func Defaults() Settings {
	return Settings{
		LabelFontSize:     "12pt",
		TitleFontSize:     "20pt",
		OutlineColor:      "#020B13",
		BackgroundColor:   "#F9F9F9",
		XLabelOrientation: 1.2,
		XAxisPadding:      0,
		YAxisScientific:   true,
	}
}

// Option adjusts a Settings.
type Option func(*Settings)

// Apply returns the default Settings with the provided options applied in
// order.
func Apply(opts ...Option) Settings {
	s := Defaults()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// LabelFontSize sets the axis label font size, as a CSS size like "12pt".
func LabelFontSize(size string) Option {
	return func(s *Settings) { s.LabelFontSize = size }
}

// TitleFontSize sets the title font size.
func TitleFontSize(size string) Option {
	return func(s *Settings) { s.TitleFontSize = size }
}

// OutlineColor sets the color of the plot area outline.
func OutlineColor(color string) Option {
	return func(s *Settings) { s.OutlineColor = color }
}

// BackgroundColor sets the plot area fill.
func BackgroundColor(color string) Option {
	return func(s *Settings) { s.BackgroundColor = color }
}

// XLabelOrientation sets the x tick label rotation, in radians.  Zero is
// horizontal.
func XLabelOrientation(radians float64) Option {
	return func(s *Settings) { s.XLabelOrientation = radians }
}

// XAxisPadding sets the fraction of the x span added on each side.
func XAxisPadding(fraction float64) Option {
	return func(s *Settings) { s.XAxisPadding = fraction }
}

// YAxisScientific enables or disables scientific y tick notation.
func YAxisScientific(enabled bool) Option {
	return func(s *Settings) { s.YAxisScientific = enabled }
}

// Define annotates with the receiving Settings.
func (s Settings) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(labelFontSizeKey, s.LabelFontSize),
		util.StringProperty(titleFontSizeKey, s.TitleFontSize),
		util.StringProperty(outlineColorKey, s.OutlineColor),
		util.StringProperty(backgroundColorKey, s.BackgroundColor),
		util.DoubleProperty(xLabelOrientationKey, s.XLabelOrientation),
		util.DoubleProperty(xAxisPaddingKey, s.XAxisPadding),
		util.StringProperty(yAxisScientificKey, strconv.FormatBool(s.YAxisScientific)),
	)
}

// Style defines a set of SVG attributes that can be attached to an item.
type Style struct {
	attrs map[string]string
}

// New returns a new, empty Style.
func New() *Style {
	return &Style{
		attrs: map[string]string{},
	}
}

// With sets the specified attribute in the receiver.
func (s *Style) With(attr, val string) *Style {
	s.attrs[attr] = val
	return s
}

// WithFloat sets the specified attribute to a numeric value.
func (s *Style) WithFloat(attr string, val float64) *Style {
	return s.With(attr, strconv.FormatFloat(val, 'g', 4, 64))
}

func (s *Style) sortedAttrs() []string {
	ret := make([]string, 0, len(s.attrs))
	for attr := range s.attrs {
		ret = append(ret, attr)
	}
	sort.Strings(ret)
	return ret
}

// Attrs returns the receiver as `name="value"` attribute strings, sorted by
// name.
func (s *Style) Attrs() []string {
	ret := []string{}
	for _, attr := range s.sortedAttrs() {
		ret = append(ret, fmt.Sprintf("%s=%q", attr, s.attrs[attr]))
	}
	return ret
}

// Define returns a PropertyUpdate defining the receiver into a Datum.
func (s *Style) Define() util.PropertyUpdate {
	ret := make([]util.PropertyUpdate, 0, len(s.attrs))
	for _, attr := range s.sortedAttrs() {
		ret = append(ret, util.StringProperty(keyPrefix+attr, s.attrs[attr]))
	}
	return util.Chain(ret...)
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return fmt.Sprintf("%.2fpx", valPx)
}

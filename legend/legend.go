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

// Package legend configures chart legends.
package legend

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ilhamster/chartviz/util"
)

// Location is a legend anchor within the plot area.
type Location string

// The nine legend anchors.
const (
	TopLeft      Location = "top_left"
	TopCenter    Location = "top_center"
	TopRight     Location = "top_right"
	CenterLeft   Location = "center_left"
	Center       Location = "center"
	CenterRight  Location = "center_right"
	BottomLeft   Location = "bottom_left"
	BottomCenter Location = "bottom_center"
	BottomRight  Location = "bottom_right"
)

var locations = []Location{
	TopLeft, TopCenter, TopRight,
	CenterLeft, Center, CenterRight,
	BottomLeft, BottomCenter, BottomRight,
}

// ErrUnknownLocation is returned for names that are none of the nine
// legend anchors.
var ErrUnknownLocation = errors.New("unknown legend location")

// ParseLocation returns the Location named s.
func ParseLocation(s string) (Location, error) {
	for _, loc := range locations {
		if string(loc) == s {
			return loc, nil
		}
	}
	return "", fmt.Errorf("'%s': %w", s, ErrUnknownLocation)
}

// Valid reports whether l is one of the nine legend anchors.
func (l Location) Valid() bool {
	_, err := ParseLocation(string(l))
	return err == nil
}

// Fractions returns the anchor's horizontal and vertical position within
// the plot area: 0 is left or top, 1 is right or bottom.
func (l Location) Fractions() (x, y float64) {
	for idx, loc := range locations {
		if loc == l {
			return float64(idx%3) / 2, float64(idx/3) / 2
		}
	}
	return 1, 0
}

// Orientation is the direction legend entries are laid out in.
type Orientation string

// Legend orientations.
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

const (
	visibleKey     = "legend_visible"
	titleKey       = "legend_title"
	orientationKey = "legend_orientation"
	clickHideKey   = "legend_click_hide"
	locationKey    = "legend_location"
	fontSizeKey    = "legend_font_size"
)

// Settings configures a legend.
type Settings struct {
	Visible     bool
	Title       string
	Orientation Orientation
	// ClickToHide lets a viewer toggle a series by clicking its entry.
	ClickToHide bool
	Location    Location
	FontSize    string
}

// Defaults returns the default legend Settings.
func Defaults() Settings {
	return Settings{
		Visible:     true,
		Title:       "Legend",
		Orientation: Horizontal,
		ClickToHide: false,
		Location:    TopRight,
		FontSize:    "12pt",
	}
}

// Option adjusts a legend's Settings.
type Option func(*Settings)

// Apply returns the default Settings with the provided options applied in
// order.  A hidden legend carries no other settings.
func Apply(opts ...Option) Settings {
	s := Defaults()
	for _, opt := range opts {
		opt(&s)
	}
	if !s.Visible {
		return Settings{}
	}
	return s
}

// Visible shows or hides the legend.
func Visible(visible bool) Option {
	return func(s *Settings) { s.Visible = visible }
}

// Hidden hides the legend.
func Hidden() Option {
	return Visible(false)
}

// Title sets the legend title.
func Title(title string) Option {
	return func(s *Settings) { s.Title = title }
}

// Orient sets the legend orientation.
func Orient(o Orientation) Option {
	return func(s *Settings) { s.Orientation = o }
}

// ClickToHide enables or disables click-to-hide.
func ClickToHide(enabled bool) Option {
	return func(s *Settings) { s.ClickToHide = enabled }
}

// At sets the legend location.  Unknown locations leave the location
// unchanged; use ParseLocation to validate names from outside.
func At(loc Location) Option {
	return func(s *Settings) {
		if loc.Valid() {
			s.Location = loc
		}
	}
}

// FontSize sets the legend label font size.
func FontSize(size string) Option {
	return func(s *Settings) { s.FontSize = size }
}

// Define annotates with the receiving Settings.
func (s Settings) Define() util.PropertyUpdate {
	if !s.Visible {
		return util.StringProperty(visibleKey, "false")
	}
	return util.Chain(
		util.StringProperty(visibleKey, "true"),
		util.StringProperty(titleKey, s.Title),
		util.StringProperty(orientationKey, string(s.Orientation)),
		util.StringProperty(clickHideKey, strconv.FormatBool(s.ClickToHide)),
		util.StringProperty(locationKey, string(s.Location)),
		util.StringProperty(fontSizeKey, s.FontSize),
	)
}

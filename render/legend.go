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

	"github.com/ilhamster/chartviz/legend"
)

const (
	legendInset  = 10
	legendPad    = 8
	legendSwatch = 12
	// Approximate glyph advance as a fraction of the font size.
	charWidth = 0.6
)

func (l *layout) textWidth(s string, px float64) float64 {
	return float64(len([]rune(s))) * px * charWidth
}

func (l *layout) drawLegend(s *svg.SVG) {
	lg := l.c.LegendSettings()
	entries := l.c.LegendEntries()
	if !lg.Visible || len(entries) == 0 {
		return
	}
	row := l.legendPx * 1.5
	widths := make([]float64, len(entries))
	for i, e := range entries {
		widths[i] = legendSwatch + legendPad + l.textWidth(e.Series, l.legendPx) + legendPad
	}
	titleH := 0.0
	if lg.Title != "" {
		titleH = row
	}
	var w, h float64
	if lg.Orientation == legend.Vertical {
		for _, ew := range widths {
			w = math.Max(w, ew)
		}
		h = titleH + row*float64(len(entries))
	} else {
		for _, ew := range widths {
			w += ew
		}
		h = titleH + row
	}
	w = math.Max(w, l.textWidth(lg.Title, l.legendPx)) + 2*legendPad
	h += legendPad
	fx, fy := lg.Location.Fractions()
	x := l.x0 + legendInset + fx*(l.x1-l.x0-2*legendInset-w)
	y := l.y0 + legendInset + fy*(l.y1-l.y0-2*legendInset-h)

	opts := []string{`class="legend"`}
	if lg.ClickToHide {
		opts = append(opts, `data-click-hide="true"`)
	}
	s.Group(opts...)
	s.Rect(round(x), round(y), round(w), round(h), `fill="white"`, `fill-opacity="0.8"`, `stroke="#CCCCCC"`)
	font := attr("font-size", lg.FontSize)
	if lg.Title != "" {
		s.Text(round(x+legendPad), round(y+row*0.8), lg.Title, font, `font-weight="bold"`)
	}
	ex, ey := x+legendPad, y+titleH+legendPad/2
	for i, e := range entries {
		entryOpts := []string{`class="legend-entry"`, attr("data-series", e.Series)}
		if lg.ClickToHide {
			entryOpts = append(entryOpts, `cursor="pointer"`)
		}
		s.Group(entryOpts...)
		s.Rect(round(ex), round(ey+(row-legendSwatch)/2), legendSwatch, legendSwatch, attr("fill", colorOr(e.Color)))
		s.Text(round(ex+legendSwatch+legendPad), round(ey+row/2), e.Series, font, `dy=".3em"`)
		s.Gend()
		if lg.Orientation == legend.Vertical {
			ey += row
		} else {
			ex += widths[i]
		}
	}
	s.Gend()
}

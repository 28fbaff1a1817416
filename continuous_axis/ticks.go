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

package continuousaxis

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-moremath/scale"
	"github.com/lestrrat-go/strftime"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

// Range is a closed interval of axis values.
type Range struct {
	Min, Max float64
}

// Span returns the width of the receiver.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Extend returns the smallest Range containing the receiver and v.  NaNs
// are ignored.  The zero Range extended by v is [v, v] only if the receiver
// was created with EmptyRange.
func (r Range) Extend(vs ...float64) Range {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		r.Min, r.Max = math.Min(r.Min, v), math.Max(r.Max, v)
	}
	return r
}

// Empty returns true if the receiver contains no values.
func (r Range) Empty() bool {
	return r.Min > r.Max
}

// EmptyRange returns a Range containing nothing, ready to be extended.
func EmptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Pad returns the receiver widened on each side by fraction of its span.
// Empty and degenerate ranges are first widened to a unit span.
func (r Range) Pad(fraction float64) Range {
	if r.Empty() {
		return Range{Min: 0, Max: 1}
	}
	if r.Span() == 0 {
		r = Range{Min: r.Min - 0.5, Max: r.Max + 0.5}
	}
	pad := r.Span() * fraction
	return Range{Min: r.Min - pad, Max: r.Max + pad}
}

// Pixel maps v in the receiver linearly onto [pxLo, pxHi].  pxHi may be
// less than pxLo, as for y axes drawn bottom-up.
func (r Range) Pixel(v, pxLo, pxHi float64) float64 {
	return pxLo + scale.Linear{Min: r.Min, Max: r.Max}.Map(v)*(pxHi-pxLo)
}

// Ticks returns at most max major tick positions within the receiver, at
// round values.
func (r Range) Ticks(max int) []float64 {
	if r.Empty() || r.Span() == 0 {
		return nil
	}
	major, _ := scale.Linear{Min: r.Min, Max: r.Max}.Ticks(scale.TickOptions{Max: max})
	return major
}

const (
	// Beyond these magnitudes, numeric tick labels switch to scientific
	// notation when it is enabled.
	sciHigh = 1e5
	sciLow  = 1e-3
)

// TickStep returns the spacing of evenly spaced ticks, or 0 for fewer than
// two.
func TickStep(ticks []float64) float64 {
	if len(ticks) < 2 {
		return 0
	}
	return math.Abs(ticks[1] - ticks[0])
}

// stepDecimals returns the fractional digits needed to tell apart ticks
// step apart.
func stepDecimals(step float64) int {
	const maxDecimals = 15
	for d := 0; d < maxDecimals; d++ {
		x := step * math.Pow(10, float64(d))
		if math.Abs(x-math.Round(x)) <= 1e-9*math.Max(1, x) {
			return d
		}
	}
	return maxDecimals
}

// FormatNumber formats a numeric tick label.  With scientific set, values
// of magnitude at least 1e5, or nonzero and below 1e-3, use scientific
// notation.  Otherwise a positive step rounds v to the decimals of the
// tick step, and without one v is rounded to 15 significant digits.
func FormatNumber(v, step float64, scientific bool) string {
	abs := math.Abs(v)
	if scientific && (abs >= sciHigh || (abs != 0 && abs < sciLow)) {
		exp := math.Floor(math.Log10(abs))
		mant := v / math.Pow(10, exp)
		if math.Abs(math.Round(mant*1000)/1000) >= 10 {
			mant, exp = mant/10, exp+1
		}
		m := strconv.FormatFloat(mant, 'f', 3, 64)
		m = strings.TrimRight(strings.TrimRight(m, "0"), ".")
		return m + "e" + strconv.Itoa(int(exp))
	}
	if step > 0 && !math.IsInf(step, 0) {
		d := stepDecimals(step)
		scale := math.Pow(10, float64(d))
		r := math.Round(v*scale) / scale
		if r == 0 {
			r = 0
		}
		return strconv.FormatFloat(r, 'f', d, 64)
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64)
	if err != nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// DefaultTimeFormat is the tick label pattern for datetime axes with none
// specified.
const DefaultTimeFormat = "%Y-%m-%d"

// FormatTime formats a datetime tick label.  secs is seconds since the Unix
// epoch; pattern is a strftime pattern.
func FormatTime(secs float64, pattern string) string {
	if pattern == "" {
		pattern = DefaultTimeFormat
	}
	t := time.Unix(0, int64(math.Round(secs*float64(time.Second)))).UTC()
	ret, err := strftime.Format(pattern, t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	return ret
}

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

// Package hover describes chart tooltips.
//
// A Spec is an ordered list of (label, template) fields.  Templates mix
// literal text with variables:
//
//	@field        the hovered glyph's value for field
//	@{some field} the same, for field names containing spaces
//	@$name        the glyph's value for the field named by the glyph's name
//	$x, $y        the glyph's anchor position in data space
//	$name         the glyph's name, usually its series
//
// Any variable may be followed by a {format}.  Under the default numeral
// formatter, formats are "Nf" (N decimals), patterns like "0.00" or "0,0"
// (decimals and thousands grouping), or printf verbs like "%.3e".  Under a
// datetime formatter the format is a strftime pattern.
package hover

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/ilhamster/chartviz/util"
)

// Formatter selects how a variable's numeric value is rendered.
type Formatter int

// Formatters.
const (
	Numeral Formatter = iota
	// Datetime renders values as timestamps; numbers are read as seconds
	// since the Unix epoch.
	Datetime
)

// DefaultTimeFormat is used for datetime values with no explicit format.
const DefaultTimeFormat = "%Y-%m-%d %H:%M:%S"

// Missing is rendered for variables the hovered glyph has no value for.
const Missing = "???"

const (
	labelsKey        = "hover_labels"
	templatesKey     = "hover_templates"
	datetimeVarsKey  = "hover_datetime_vars"
	hoverFieldsCount = "hover_field_count"
)

// Field is a single tooltip line.
type Field struct {
	Label    string
	Template string
}

// Spec is a tooltip specification.
type Spec struct {
	Fields     []Field
	Formatters map[string]Formatter
}

// New returns a Spec with the provided fields.
func New(fields ...Field) Spec {
	return Spec{Fields: fields}
}

// WithFormatter returns a copy of the receiver using f to render the
// variable v, written as in templates ("$x", "@top").
func (s Spec) WithFormatter(v string, f Formatter) Spec {
	formatters := make(map[string]Formatter, len(s.Formatters)+1)
	for k, existing := range s.Formatters {
		formatters[k] = existing
	}
	formatters[v] = f
	return Spec{
		Fields:     append([]Field{}, s.Fields...),
		Formatters: formatters,
	}
}

// IsZero returns true if the receiver has no fields.
func (s Spec) IsZero() bool {
	return len(s.Fields) == 0
}

// Point is the data under a hovered glyph.
type Point struct {
	X, Y float64
	Name string
	// Fields maps field names to float64, int, string, or time.Time values.
	Fields map[string]any
}

// Line is a resolved tooltip line.
type Line struct {
	Label string
	Text  string
}

// Resolve renders the receiver's fields for the provided point.
func (s Spec) Resolve(p Point) []Line {
	ret := make([]Line, len(s.Fields))
	for idx, f := range s.Fields {
		ret[idx] = Line{
			Label: f.Label,
			Text:  s.expand(f.Template, p),
		}
	}
	return ret
}

// Text renders the receiver's fields for the provided point as
// "label: value" lines.
func (s Spec) Text(p Point) string {
	lines := s.Resolve(p)
	strs := make([]string, len(lines))
	for idx, l := range lines {
		strs[idx] = l.Label + ": " + l.Text
	}
	return strings.Join(strs, "\n")
}

// Define annotates with the receiving Spec.
func (s Spec) Define() util.PropertyUpdate {
	labels := make([]string, len(s.Fields))
	templates := make([]string, len(s.Fields))
	for idx, f := range s.Fields {
		labels[idx], templates[idx] = f.Label, f.Template
	}
	datetimeVars := []string{}
	for v, f := range s.Formatters {
		if f == Datetime {
			datetimeVars = append(datetimeVars, v)
		}
	}
	sort.Strings(datetimeVars)
	return util.Chain(
		util.IntegerProperty(hoverFieldsCount, int64(len(s.Fields))),
		util.StringsProperty(labelsKey, labels...),
		util.StringsProperty(templatesKey, templates...),
		util.If(len(datetimeVars) > 0, util.StringsProperty(datetimeVarsKey, datetimeVars...)),
	)
}

func isNameByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// expand substitutes every variable in tmpl.
func (s Spec) expand(tmpl string, p Point) string {
	var sb strings.Builder
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		if c != '@' && c != '$' {
			sb.WriteByte(c)
			i++
			continue
		}
		v, name, next := scanVariable(tmpl, i)
		if v == "" {
			sb.WriteByte(c)
			i++
			continue
		}
		format := ""
		if next < len(tmpl) && tmpl[next] == '{' {
			if end := strings.IndexByte(tmpl[next:], '}'); end > 0 {
				format = tmpl[next+1 : next+end]
				next += end + 1
			}
		}
		sb.WriteString(s.value(v, name, format, p))
		i = next
	}
	return sb.String()
}

// scanVariable reads the variable starting at tmpl[start], returning its
// template spelling, its resolved field or special name, and the index
// just past it.  It returns an empty spelling if no variable starts there.
func scanVariable(tmpl string, start int) (spelling, name string, next int) {
	sigil := tmpl[start]
	i := start + 1
	if sigil == '@' && strings.HasPrefix(tmpl[i:], "$name") {
		return "@$name", "$name", i + len("$name")
	}
	if sigil == '@' && i < len(tmpl) && tmpl[i] == '{' {
		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			return "", "", start
		}
		name = tmpl[i+1 : i+end]
		return "@" + name, name, i + end + 1
	}
	for i < len(tmpl) && isNameByte(tmpl[i]) {
		i++
	}
	if i == start+1 {
		return "", "", start
	}
	name = tmpl[start+1 : i]
	return tmpl[start:i], name, i
}

func (s Spec) value(spelling, name, format string, p Point) string {
	f := s.Formatters[spelling]
	if spelling[0] == '$' {
		switch name {
		case "x":
			return formatNumber(p.X, f, format)
		case "y":
			return formatNumber(p.Y, f, format)
		case "name":
			return p.Name
		}
		return Missing
	}
	field := name
	if name == "$name" {
		field = p.Name
	}
	v, ok := p.Fields[field]
	if !ok {
		return Missing
	}
	switch tv := v.(type) {
	case float64:
		return formatNumber(tv, f, format)
	case int:
		return formatNumber(float64(tv), f, format)
	case int64:
		return formatNumber(float64(tv), f, format)
	case time.Time:
		return formatTime(tv, format)
	case string:
		return tv
	default:
		return fmt.Sprint(tv)
	}
}

func formatTime(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultTimeFormat
	}
	ret, err := strftime.Format(pattern, t.UTC())
	if err != nil {
		return Missing
	}
	return ret
}

// Seconds returns t as fractional seconds since the Unix epoch, the numeric
// form of datetime values.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// FromSeconds inverts Seconds.
func FromSeconds(secs float64) time.Time {
	return time.Unix(0, int64(math.Round(secs*float64(time.Second)))).UTC()
}

func formatNumber(v float64, f Formatter, format string) string {
	if f == Datetime {
		return formatTime(FromSeconds(v), format)
	}
	return FormatNumeral(v, format)
}

// FormatNumeral renders v under a numeral format.
func FormatNumeral(v float64, format string) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	switch {
	case format == "":
		return strconv.FormatFloat(v, 'f', -1, 64)
	case strings.HasPrefix(format, "%"):
		return fmt.Sprintf(format, v)
	case strings.HasSuffix(format, "f"):
		if decimals, err := strconv.Atoi(strings.TrimSuffix(format, "f")); err == nil && decimals >= 0 {
			return strconv.FormatFloat(v, 'f', decimals, 64)
		}
	case strings.Trim(format, "0#,.") == "":
		decimals := 0
		if dot := strings.IndexByte(format, '.'); dot >= 0 {
			decimals = len(format) - dot - 1
		}
		ret := strconv.FormatFloat(v, 'f', decimals, 64)
		if strings.Contains(format, ",") {
			ret = groupThousands(ret)
		}
		return ret
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}
	var sb strings.Builder
	for idx, r := range intPart {
		if idx > 0 && (len(intPart)-idx)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String() + frac
}

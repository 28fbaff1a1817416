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

package statisticsplot

import (
	"errors"
	"fmt"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/frame"
	"github.com/ilhamster/chartviz/hover"
	"github.com/ilhamster/chartviz/stats"
	"github.com/ilhamster/chartviz/style"
)

const (
	boxWidth     = 0.7
	boxAlpha     = 0.6
	boxGridWidth = 2
)

// BoxOptions configures BoxPlot.
type BoxOptions struct {
	OutlierAlpha      float64
	XLabelOrientation float64
	OutlierColor      string
	OutlierSize       float64
}

// DefaultBoxOptions returns the default BoxOptions.
func DefaultBoxOptions() BoxOptions {
	return BoxOptions{
		OutlierAlpha:      0.7,
		XLabelOrientation: 0.4,
		OutlierColor:      "red",
		OutlierSize:       6,
	}
}

// CategoryBox is the box plot summary of one category.
type CategoryBox struct {
	Category string
	stats.Box
}

// BoxStats summarizes the valueCol values of each distinct categoryCol
// value, in first-seen order.
func BoxStats(df *frame.Frame, valueCol, categoryCol string) ([]CategoryBox, error) {
	values, err := df.Floats(valueCol)
	if err != nil {
		return nil, err
	}
	groups, err := df.GroupBy(categoryCol)
	if err != nil {
		return nil, err
	}
	ret := make([]CategoryBox, len(groups))
	for i, g := range groups {
		vs := make([]float64, len(g.Rows))
		for j, row := range g.Rows {
			vs[j] = values[row]
		}
		box, err := stats.NewBox(vs)
		if err != nil {
			if errors.Is(err, stats.ErrEmpty) {
				return nil, &frame.ColumnError{
					Column: valueCol,
					Detail: fmt.Sprintf("category '%s' has no finite values", g.Key),
					Err:    frame.ErrShape,
				}
			}
			return nil, err
		}
		ret[i] = CategoryBox{Category: g.Key, Box: box}
	}
	return ret, nil
}

// BoxPlot draws a box plot of the valueCol values of each distinct
// categoryCol value.
func (p *Plotter) BoxPlot(df *frame.Frame, valueCol, categoryCol string, opts BoxOptions) (*canvas.Canvas, error) {
	return canvas.Draw(p.logger, "box plot", p.opts.Sink, func() (*canvas.Canvas, error) {
		summaries, err := BoxStats(df, valueCol, categoryCol)
		if err != nil {
			return nil, err
		}
		fill, err := p.opts.Palette.At(0)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(summaries))
		boxes := make([]stats.Box, len(summaries))
		for i, s := range summaries {
			names[i], boxes[i] = s.Category, s.Box
		}
		fs, err := factors(categoryCol, names)
		if err != nil {
			return nil, err
		}
		c := p.canvas(fs)
		if err := c.Add(&canvas.Boxes{
			Mark:         canvas.Mark{Color: fill, Alpha: boxAlpha},
			Factors:      names,
			Boxes:        boxes,
			Width:        boxWidth,
			OutlierColor: opts.OutlierColor,
			OutlierAlpha: opts.OutlierAlpha,
			OutlierSize:  opts.OutlierSize,
		}); err != nil {
			return nil, err
		}
		c.SetGridWidth(boxGridWidth)
		c.Style(
			style.XLabelOrientation(opts.XLabelOrientation),
			style.YAxisScientific(false),
		)
		c.AddHover(hover.New(
			hover.Field{Label: "Y Value", Template: "$y{1f}"},
			hover.Field{Label: "Quartile 3", Template: "@top{1f}"},
			hover.Field{Label: "Quartile 1", Template: "@bottom{1f}"},
		))
		return c, nil
	})
}

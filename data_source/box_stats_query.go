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

package datasource

import (
	"github.com/ilhamster/chartviz/category"
	statisticsplot "github.com/ilhamster/chartviz/statistics_plot"
	"github.com/ilhamster/chartviz/table"
	"github.com/ilhamster/chartviz/util"
)

const (
	outliersPayload = "outliers"
	outliersKey     = "outliers"
)

var (
	groupCol  = table.Column(category.New("group", "Group", "The category the row summarizes"))
	countCol  = table.Column(category.New("n", "N", "The number of finite values in the group"))
	minCol    = table.Column(category.New("min", "Min", "The smallest value"))
	q1Col     = table.Column(category.New("q1", "Q1", "The first quartile"))
	medianCol = table.Column(category.New("median", "Median", "The second quartile"))
	q3Col     = table.Column(category.New("q3", "Q3", "The third quartile"))
	maxCol    = table.Column(category.New("max", "Max", "The largest value"))
	meanCol   = table.Column(category.New("mean", "Mean", "The arithmetic mean"))

	renderSettings = &table.RenderSettings{
		RowHeightPx: 20,
		FontSizePx:  14,
	}
)

// handleBoxStatsQuery answers a box_stats query with a table of each
// group's box plot statistics.  Each row carries its group's outliers in a
// payload.
func handleBoxStatsQuery(coll *Collection, series util.DataBuilder, opts map[string]*util.V) error {
	df, err := coll.frame(opts)
	if err != nil {
		return err
	}
	valueCol, err := requiredString(opts, valueColumnKey)
	if err != nil {
		return err
	}
	categoryCol, err := requiredString(opts, categoryColumnKey)
	if err != nil {
		return err
	}
	boxes, err := statisticsplot.BoxStats(df, valueCol, categoryCol)
	if err != nil {
		return err
	}
	tbl := table.New(series, renderSettings,
		groupCol, countCol, minCol, q1Col, medianCol, q3Col, maxCol, meanCol)
	for _, box := range boxes {
		row := tbl.Row(
			table.Cell(groupCol, util.String(box.Category)),
			table.Cell(countCol, util.Integer(int64(box.N))),
			table.Cell(minCol, util.Double(box.Min)),
			table.Cell(q1Col, util.Double(box.Q1)),
			table.Cell(medianCol, util.Double(box.Q2)),
			table.Cell(q3Col, util.Double(box.Q3)),
			table.Cell(maxCol, util.Double(box.Max)),
			table.Cell(meanCol, util.Double(box.Mean)),
		)
		if len(box.Outliers) > 0 {
			row.Payload(outliersPayload).With(util.DoublesProperty(outliersKey, box.Outliers...))
		}
	}
	return nil
}

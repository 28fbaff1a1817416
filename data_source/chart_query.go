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
	"fmt"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/frame"
	lineplot "github.com/ilhamster/chartviz/line_plot"
	scatterplot "github.com/ilhamster/chartviz/scatter_plot"
	statisticsplot "github.com/ilhamster/chartviz/statistics_plot"
	"github.com/ilhamster/chartviz/stats"
	"github.com/ilhamster/chartviz/util"
)

const (
	histogramQuery  = "charts.histogram"
	boxPlotQuery    = "charts.box_plot"
	boxStatsQuery   = "charts.box_stats"
	timeseriesQuery = "charts.timeseries"
	scatterQuery    = "charts.scatter"
	barQuery        = "charts.bar"
	stackedBarQuery = "charts.stacked_bar"
	multilineQuery  = "charts.multiline"

	titleKey          = "title"
	xLabelKey         = "x_label"
	yLabelKey         = "y_label"
	legendTitleKey    = "legend_title"
	columnsKey        = "columns"
	binCountKey       = "bin_count"
	binWidthKey       = "bin_width"
	valueColumnKey    = "value_column"
	categoryColumnKey = "category_column"
	xColumnKey        = "x_column"
	yColumnKey        = "y_column"
	timeFormatKey     = "time_format"

	defaultTimeFormat = "%H:%M"
)

type chartBuilder func(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error)

// chartQueries lists the queries drawn as charts, in the order they are
// reported as supported.
var chartQueries = []struct {
	name  string
	build chartBuilder
}{
	{histogramQuery, histogramChart},
	{boxPlotQuery, boxPlotChart},
	{timeseriesQuery, timeseriesChart},
	{scatterQuery, scatterChart},
	{barQuery, barChart},
	{stackedBarQuery, stackedBarChart},
	{multilineQuery, multilineChart},
}

// requiredString returns the string option named key, which must be
// present and non-empty.
func requiredString(opts map[string]*util.V, key string) (string, error) {
	ret, err := util.StringOption(opts, key, "")
	if err != nil {
		return "", err
	}
	if ret == "" {
		return "", fmt.Errorf("missing required option '%s'", key)
	}
	return ret, nil
}

// requiredStrings returns the named option's strings, of which there must
// be at least one.
func requiredStrings(opts map[string]*util.V, key string) ([]string, error) {
	ret, err := util.StringsOption(opts, key)
	if err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("missing required option '%s'", key)
	}
	return ret, nil
}

// labels holds a chart's title and axis labels.
type labels struct {
	title, x, y string
}

// labelOptions reads the title and axis label options, defaulting to the
// provided labels.
func labelOptions(opts map[string]*util.V, def labels) (labels, error) {
	var ret labels
	var err error
	if ret.title, err = util.StringOption(opts, titleKey, def.title); err != nil {
		return labels{}, err
	}
	if ret.x, err = util.StringOption(opts, xLabelKey, def.x); err != nil {
		return labels{}, err
	}
	if ret.y, err = util.StringOption(opts, yLabelKey, def.y); err != nil {
		return labels{}, err
	}
	return ret, nil
}

func (ds *DataSource) statisticsPlotter(l labels) *statisticsplot.Plotter {
	opts := statisticsplot.DefaultOptions()
	opts.Title, opts.XLabel, opts.YLabel = l.title, l.x, l.y
	opts.Palette = ds.palette
	opts.Logger = ds.logger
	return statisticsplot.New(opts)
}

func (ds *DataSource) linePlotter(l labels) *lineplot.Plotter {
	opts := lineplot.DefaultOptions()
	opts.Title, opts.XLabel, opts.YLabel = l.title, l.x, l.y
	opts.Palette = ds.palette
	opts.Logger = ds.logger
	return lineplot.New(opts)
}

func histogramChart(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error) {
	columns, err := requiredStrings(opts, columnsKey)
	if err != nil {
		return nil, err
	}
	l, err := labelOptions(opts, labels{title: "Histogram", x: "Value", y: "Frequency"})
	if err != nil {
		return nil, err
	}
	hOpts := statisticsplot.DefaultHistogramOptions()
	bins, err := util.IntegerOption(opts, binCountKey, int64(hOpts.Bins))
	if err != nil {
		return nil, err
	}
	hOpts.Bins = int(bins)
	if _, ok := opts[binWidthKey]; ok {
		if hOpts.BinWidth, err = util.DoubleOption(opts, binWidthKey, hOpts.BinWidth); err != nil {
			return nil, err
		}
		hOpts.UseBinWidth = true
	}
	if hOpts.LegendTitle, err = util.StringOption(opts, legendTitleKey, hOpts.LegendTitle); err != nil {
		return nil, err
	}
	return ds.statisticsPlotter(l).Histogram(df, columns, hOpts)
}

func boxPlotChart(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error) {
	valueCol, err := requiredString(opts, valueColumnKey)
	if err != nil {
		return nil, err
	}
	categoryCol, err := requiredString(opts, categoryColumnKey)
	if err != nil {
		return nil, err
	}
	l, err := labelOptions(opts, labels{title: "Box Plot", x: categoryCol, y: valueCol})
	if err != nil {
		return nil, err
	}
	return ds.statisticsPlotter(l).BoxPlot(df, valueCol, categoryCol, statisticsplot.DefaultBoxOptions())
}

func timeseriesChart(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error) {
	xCol, err := requiredString(opts, xColumnKey)
	if err != nil {
		return nil, err
	}
	yCol, err := requiredString(opts, yColumnKey)
	if err != nil {
		return nil, err
	}
	categoryCol, err := requiredString(opts, categoryColumnKey)
	if err != nil {
		return nil, err
	}
	l, err := labelOptions(opts, labels{title: "Timeseries", x: xCol, y: yCol})
	if err != nil {
		return nil, err
	}
	tOpts := lineplot.DefaultTimeseriesOptions()
	if tOpts.Format, err = util.StringOption(opts, timeFormatKey, ""); err != nil {
		return nil, err
	}
	x, err := df.Column(xCol)
	if err != nil {
		return nil, err
	}
	tOpts.UseDatetime = tOpts.Format != "" || x.Kind() == frame.Time
	if tOpts.UseDatetime && tOpts.Format == "" {
		tOpts.Format = defaultTimeFormat
	}
	return ds.linePlotter(l).Timeseries(df, xCol, yCol, categoryCol, tOpts)
}

func scatterChart(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error) {
	xCol, err := requiredString(opts, xColumnKey)
	if err != nil {
		return nil, err
	}
	yCol, err := requiredString(opts, yColumnKey)
	if err != nil {
		return nil, err
	}
	categoryCol, err := requiredString(opts, categoryColumnKey)
	if err != nil {
		return nil, err
	}
	l, err := labelOptions(opts, labels{title: "Scatter Plot", x: xCol, y: yCol})
	if err != nil {
		return nil, err
	}
	legendTitle, err := util.StringOption(opts, legendTitleKey, categoryCol)
	if err != nil {
		return nil, err
	}
	sOpts := scatterplot.DefaultOptions()
	sOpts.Title, sOpts.XLabel, sOpts.YLabel = l.title, l.x, l.y
	sOpts.Palette = ds.palette
	sOpts.Logger = ds.logger
	return scatterplot.New(sOpts).Scatter(df, xCol, yCol, categoryCol, legendTitle, scatterplot.DefaultScatterOptions())
}

// groupSums sums valueCol within each categoryCol group, with groups in
// first-seen order.
func groupSums(df *frame.Frame, valueCol, categoryCol string) (keys []string, sums []float64, err error) {
	groups, err := df.GroupBy(categoryCol)
	if err != nil {
		return nil, nil, err
	}
	for _, g := range groups {
		vs, err := df.Select(g.Rows).Floats(valueCol)
		if err != nil {
			return nil, nil, err
		}
		keys = append(keys, g.Key)
		sums = append(sums, stats.Sum(vs))
	}
	return keys, sums, nil
}

func barChart(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error) {
	valueCol, err := requiredString(opts, valueColumnKey)
	if err != nil {
		return nil, err
	}
	categoryCol, err := requiredString(opts, categoryColumnKey)
	if err != nil {
		return nil, err
	}
	l, err := labelOptions(opts, labels{title: "Bar Chart", x: categoryCol, y: valueCol})
	if err != nil {
		return nil, err
	}
	categories, sums, err := groupSums(df, valueCol, categoryCol)
	if err != nil {
		return nil, err
	}
	return ds.statisticsPlotter(l).Bar(categories, sums, statisticsplot.DefaultBarOptions())
}

func stackedBarChart(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error) {
	columns, err := requiredStrings(opts, columnsKey)
	if err != nil {
		return nil, err
	}
	categoryCol, err := requiredString(opts, categoryColumnKey)
	if err != nil {
		return nil, err
	}
	l, err := labelOptions(opts, labels{title: "Stacked Bar Chart", x: categoryCol, y: "Total"})
	if err != nil {
		return nil, err
	}
	legendTitle, err := util.StringOption(opts, legendTitleKey, "Series")
	if err != nil {
		return nil, err
	}
	in := statisticsplot.StackedInput{}
	for _, col := range columns {
		factors, sums, err := groupSums(df, col, categoryCol)
		if err != nil {
			return nil, err
		}
		in.Factors = factors
		in.Series = append(in.Series, statisticsplot.NamedSeries{Name: col, Values: sums})
	}
	return ds.statisticsPlotter(l).StackedBar(in, legendTitle, statisticsplot.DefaultStackedOptions())
}

func multilineChart(ds *DataSource, df *frame.Frame, opts map[string]*util.V) (*canvas.Canvas, error) {
	categoryCol, err := requiredString(opts, categoryColumnKey)
	if err != nil {
		return nil, err
	}
	l, err := labelOptions(opts, labels{title: "Multiline", x: "Column", y: "Value"})
	if err != nil {
		return nil, err
	}
	legendTitle, err := util.StringOption(opts, legendTitleKey, categoryCol)
	if err != nil {
		return nil, err
	}
	return ds.linePlotter(l).MultilineByRows(df, categoryCol, legendTitle, lineplot.DefaultTimeseriesOptions().XAxisPadding)
}

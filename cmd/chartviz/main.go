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

// Binary chartviz serves, renders, and inspects charts of spreadsheet data.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ilhamster/chartviz/color"
	datasource "github.com/ilhamster/chartviz/data_source"
	"github.com/ilhamster/chartviz/page"
	"github.com/ilhamster/chartviz/picture"
	"github.com/ilhamster/chartviz/service"
	"github.com/ilhamster/chartviz/sheet"
	"github.com/ilhamster/chartviz/sketch"
	"github.com/ilhamster/chartviz/util"
)

var (
	verbose bool

	port      int
	root      string
	cacheSize int

	sheetName      string
	kind           string
	columns        []string
	valueColumn    string
	categoryColumn string
	xColumn        string
	yColumn        string
	bins           int
	binWidth       float64
	timeFormat     string
	title          string
	outDir         string
	outName        string

	labels       []string
	pictureTitle string

	sketchOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chartviz",
		Short: "Chart spreadsheet data",
		Long: `chartviz draws histograms, box plots, timeseries, scatter plots and bar
charts of Excel workbooks, as standalone HTML files or from a chart server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart data and rendered charts",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().IntVar(&port, "port", 7410, "Port to serve chart clients on")
	serveCmd.Flags().StringVar(&root, "root", ".", "The root path for chartable workbooks")
	serveCmd.Flags().IntVar(&cacheSize, "cache", 10, "The number of workbooks to keep loaded")

	renderCmd := &cobra.Command{
		Use:   "render [input.xlsx]",
		Short: "Render a chart of a workbook to an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE:  render,
	}
	renderCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to chart (default: the first)")
	renderCmd.Flags().StringVarP(&kind, "kind", "k", "histogram", "Chart kind: histogram, box_plot, timeseries, scatter, bar, stacked_bar, multiline")
	renderCmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to chart, for histograms and stacked bars")
	renderCmd.Flags().StringVar(&valueColumn, "value", "", "Value column, for box plots and bars")
	renderCmd.Flags().StringVar(&categoryColumn, "category", "", "Category column")
	renderCmd.Flags().StringVar(&xColumn, "x", "", "X column, for timeseries and scatter plots")
	renderCmd.Flags().StringVar(&yColumn, "y", "", "Y column, for timeseries and scatter plots")
	renderCmd.Flags().IntVar(&bins, "bins", 10, "Histogram bin count")
	renderCmd.Flags().Float64Var(&binWidth, "bin-width", 0, "Histogram bin width; overrides --bins when set")
	renderCmd.Flags().StringVar(&timeFormat, "time-format", "", "strftime pattern for timeseries x values")
	renderCmd.Flags().StringVar(&title, "title", "", "Chart title")
	renderCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (default: working directory)")
	renderCmd.Flags().StringVar(&outName, "name", "", "Output file name (default: a new temporary file)")

	sketchCmd := &cobra.Command{
		Use:   "sketch [input.xlsx]",
		Short: "Draw a static SVG preview of a histogram, timeseries or scatter plot",
		Args:  cobra.ExactArgs(1),
		RunE:  drawSketch,
	}
	sketchCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to chart (default: the first)")
	sketchCmd.Flags().StringVarP(&kind, "kind", "k", "histogram", "Chart kind: histogram, timeseries, scatter")
	sketchCmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to histogram")
	sketchCmd.Flags().StringVar(&categoryColumn, "category", "", "Category column")
	sketchCmd.Flags().StringVar(&xColumn, "x", "", "X column, for timeseries and scatter plots")
	sketchCmd.Flags().StringVar(&yColumn, "y", "", "Y column, for timeseries and scatter plots")
	sketchCmd.Flags().IntVar(&bins, "bins", 10, "Histogram bin count")
	sketchCmd.Flags().Float64Var(&binWidth, "bin-width", 0, "Histogram bin width; overrides --bins when set")
	sketchCmd.Flags().StringVar(&title, "title", "", "Chart title")
	sketchCmd.Flags().StringVarP(&sketchOut, "out", "o", "", "Output SVG file (default: standard output)")

	pictureCmd := &cobra.Command{
		Use:   "picture [images...]",
		Short: "Lay out images in a labeled grid",
		Args:  cobra.MinimumNArgs(1),
		RunE:  drawPicture,
	}
	pictureCmd.Flags().StringSliceVar(&labels, "labels", nil, "Image labels, in order")
	pictureCmd.Flags().StringVar(&pictureTitle, "title", picture.DefaultOptions().Title, "Grid title")
	pictureCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (default: working directory)")
	pictureCmd.Flags().StringVar(&outName, "name", "", "Output file name (default: a new temporary file)")

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the default chart palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return color.Default.WriteSwatches(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(serveCmd, renderCmd, sketchCmd, pictureCmd, paletteCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	svc, err := service.New(root, cacheSize, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create chart service: %w", err)
	}
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to get hostname: %w", err)
	}
	// Provide OSC 8 (https://en.wikipedia.org/wiki/ANSI_escape_code#OSC) link for
	// compatible terminals.
	fmt.Printf("Serving chartviz at \x1B]8;;http://%[1]s:%[2]d\x07http://%[1]s:%[2]d\x1B]8;;\x07\n", hostname, port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

// workbookFetcher serves a single workbook under any collection name.
type workbookFetcher struct {
	coll *datasource.Collection
}

func (wf workbookFetcher) Fetch(ctx context.Context, collectionName string) (*datasource.Collection, error) {
	return wf.coll, nil
}

// renderOptions returns the chart query options set by the render flags.
func renderOptions(cmd *cobra.Command) map[string]*util.V {
	opts := map[string]*util.V{}
	setString := func(key, value string) {
		if value != "" {
			opts[key] = util.StringValue(value)
		}
	}
	setString("sheet", sheetName)
	setString("value_column", valueColumn)
	setString("category_column", categoryColumn)
	setString("x_column", xColumn)
	setString("y_column", yColumn)
	setString("time_format", timeFormat)
	setString("title", title)
	if len(columns) > 0 {
		opts["columns"] = util.StringsValue(columns...)
	}
	opts["bin_count"] = util.IntegerValue(int64(bins))
	if cmd.Flags().Changed("bin-width") {
		opts["bin_width"] = util.DoubleValue(binWidth)
	}
	return opts
}

func render(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	wb, err := sheet.Open(inputPath)
	if err != nil {
		return err
	}
	ds, err := datasource.New(1, workbookFetcher{coll: datasource.NewCollection(wb)})
	if err != nil {
		return err
	}
	name := filepath.Base(inputPath)
	c, err := ds.Chart(cmd.Context(),
		map[string]*util.V{"collection_name": util.StringValue(name)},
		&util.DataSeriesRequest{
			QueryName: "charts." + kind,
			Options:   renderOptions(cmd),
		})
	if err != nil {
		return err
	}
	sink := &page.FileSink{Dir: outDir, Name: outName}
	if err := c.Render(sink); err != nil {
		return err
	}
	for _, path := range sink.Written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func drawPicture(cmd *cobra.Command, args []string) error {
	opts := picture.DefaultOptions()
	opts.Title = pictureTitle
	opts.OutputPath = outDir
	opts.OutputName = outName
	path, err := picture.Grid(cmd.Context(), args, labels, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func drawSketch(cmd *cobra.Command, args []string) error {
	wb, err := sheet.Open(args[0])
	if err != nil {
		return err
	}
	df, err := wb.Frame(sheetName)
	if err != nil {
		return err
	}
	opts := sketch.DefaultOptions()
	opts.Kind = sketch.Kind(kind)
	opts.Columns = columns
	opts.X, opts.Y, opts.Category = xColumn, yColumn, categoryColumn
	opts.Title = title
	opts.Histogram.Bins = bins
	if cmd.Flags().Changed("bin-width") {
		opts.Histogram.BinWidth = binWidth
		opts.Histogram.UseBinWidth = true
	}
	if sketchOut == "" {
		return sketch.Write(cmd.OutOrStdout(), df, opts)
	}
	f, err := os.Create(sketchOut)
	if err != nil {
		return err
	}
	if err := sketch.Write(f, df, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sketchOut)
	return nil
}

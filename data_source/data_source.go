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

// Package datasource provides a chart data source over spreadsheet
// workbooks.
package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/color"
	"github.com/ilhamster/chartviz/frame"
	"github.com/ilhamster/chartviz/sheet"
	"github.com/ilhamster/chartviz/util"
)

const (
	collectionNameKey = "collection_name"
	sheetKey          = "sheet"
)

// WorkbookFetcher describes types capable of fetching workbooks by
// collection name.
type WorkbookFetcher interface {
	// Fetch fetches the workbook specified by collectionName, returning a
	// Collection or an error if a failure is encountered.
	Fetch(ctx context.Context, collectionName string) (*Collection, error)
}

// Collection represents a single fetched workbook, along with any metadata
// it requires.
type Collection struct {
	wb *sheet.Workbook
}

// NewCollection returns a Collection over the provided workbook.
func NewCollection(wb *sheet.Workbook) *Collection {
	return &Collection{
		wb: wb,
	}
}

// frame returns the worksheet named by the 'sheet' option, or the first
// worksheet if none is named.
func (coll *Collection) frame(opts map[string]*util.V) (*frame.Frame, error) {
	name, err := util.StringOption(opts, sheetKey, "")
	if err != nil {
		return nil, err
	}
	return coll.wb.Frame(name)
}

// DataSource implements querydispatcher.ChartSource for workbook data.  It
// caches the most recently used workbooks.
type DataSource struct {
	// Guards lru, which is not safe for concurrent use.
	mu sync.Mutex
	// An LRU cache holding the most recently-accessed workbooks.
	lru *simplelru.LRU
	// A workbook fetcher used to fetch uncached workbooks.
	fetcher WorkbookFetcher
	palette *color.Palette
	logger  *slog.Logger
}

// New returns a new DataSource with the specified cache capacity, and using
// the provided workbook fetcher.
func New(cap int, fetcher WorkbookFetcher) (*DataSource, error) {
	lru, err := simplelru.NewLRU(cap /*no onEvict policy*/, nil)
	if err != nil {
		return nil, err
	}
	return &DataSource{
		lru:     lru,
		fetcher: fetcher,
		palette: color.Default,
		logger:  slog.Default().With(slog.String("module", "data_source")),
	}, nil
}

// WithLogger sets the logger chart failures are reported to.
func (ds *DataSource) WithLogger(logger *slog.Logger) *DataSource {
	ds.logger = logger
	return ds
}

// WithPalette sets the palette charts draw their category colors from.
func (ds *DataSource) WithPalette(palette *color.Palette) *DataSource {
	ds.palette = palette
	return ds
}

// SupportedDataSeriesQueries returns the DataSeriesRequest query names
// supported by DataSource.
func (ds *DataSource) SupportedDataSeriesQueries() []string {
	ret := []string{boxStatsQuery}
	for _, q := range chartQueries {
		ret = append(ret, q.name)
	}
	return ret
}

// fetchCollection returns the specified collection from the LRU if it's
// present there.  If it isn't already in the LRU, it is fetched and added to
// the LRU before being returned.
func (ds *DataSource) fetchCollection(ctx context.Context, collectionName string) (*Collection, error) {
	ds.mu.Lock()
	collIf, ok := ds.lru.Get(collectionName)
	ds.mu.Unlock()
	if ok {
		coll, ok := collIf.(*Collection)
		if !ok {
			return nil, fmt.Errorf("fetched collection didn't contain a workbook")
		}
		return coll, nil
	}
	coll, err := ds.fetcher.Fetch(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	ds.mu.Lock()
	ds.lru.Add(collectionName, coll)
	ds.mu.Unlock()
	return coll, nil
}

func (ds *DataSource) collection(ctx context.Context, globalFilters map[string]*util.V) (*Collection, error) {
	if _, ok := globalFilters[collectionNameKey]; !ok {
		return nil, fmt.Errorf("missing required filter option '%s'", collectionNameKey)
	}
	collectionName, err := util.StringOption(globalFilters, collectionNameKey, "")
	if err != nil {
		return nil, fmt.Errorf("required filter option '%s' must be a string", collectionNameKey)
	}
	return ds.fetchCollection(ctx, collectionName)
}

// HandleDataSeriesRequests handles the provided set of DataSeriesRequests, with
// the provided global filters.  It assembles its responses in the provided
// DataResponseBuilder.
func (ds *DataSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	coll, err := ds.collection(ctx, globalFilters)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		series := drb.DataSeries(req)
		var err error
		if req.QueryName == boxStatsQuery {
			err = handleBoxStatsQuery(coll, series, req.Options)
		} else {
			var c *canvas.Canvas
			if c, err = ds.chart(coll, req); err == nil {
				err = c.Define(series)
			}
		}
		if err != nil {
			return fmt.Errorf("error handling data query %s: %w", req.QueryName, err)
		}
	}
	return nil
}

// Chart builds the chart answering req.
func (ds *DataSource) Chart(ctx context.Context, globalFilters map[string]*util.V, req *util.DataSeriesRequest) (*canvas.Canvas, error) {
	coll, err := ds.collection(ctx, globalFilters)
	if err != nil {
		return nil, err
	}
	return ds.chart(coll, req)
}

func (ds *DataSource) chart(coll *Collection, req *util.DataSeriesRequest) (*canvas.Canvas, error) {
	for _, q := range chartQueries {
		if q.name != req.QueryName {
			continue
		}
		df, err := coll.frame(req.Options)
		if err != nil {
			return nil, err
		}
		return q.build(ds, df, req.Options)
	}
	return nil, fmt.Errorf("unsupported chart query '%s'", req.QueryName)
}

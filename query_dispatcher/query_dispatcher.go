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

// Package querydispatcher provides QueryDispatcher, which routes chart data
// requests to the data sources able to answer them.
package querydispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/util"
)

// ErrNotChartable is returned for queries whose data source cannot draw
// them as charts.
var ErrNotChartable = errors.New("query does not produce a chart")

// DataSource answers chart data queries.  Implementations must support
// concurrent HandleDataSeriesRequests calls.
type DataSource interface {
	// SupportedDataSeriesQueries returns the query names the DataSource
	// answers.  Query names are unique across DataSources, so are usually
	// prefixed with the DataSource's domain.
	SupportedDataSeriesQueries() []string
	// HandleDataSeriesRequests answers reqs under the provided global
	// filters, adding one DataSeries per request to drb.  An error fails
	// the entire DataRequest.
	HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error
}

// ChartSource is a DataSource that can also build its query results as
// drawable canvases.
type ChartSource interface {
	DataSource
	Chart(ctx context.Context, globalFilters map[string]*util.V, req *util.DataSeriesRequest) (*canvas.Canvas, error)
}

// QueryDispatcher multiplexes several DataSources.
type QueryDispatcher struct {
	dataSources []DataSource
	// Maps query names to the index in dataSources of their handler.
	handlers map[string]int
	logger   *slog.Logger
}

// New returns a QueryDispatcher over the provided DataSources, which must
// not support the same queries.
func New(dss ...DataSource) (*QueryDispatcher, error) {
	qd := &QueryDispatcher{
		handlers: map[string]int{},
		logger:   slog.Default().With(slog.String("module", "query_dispatcher")),
	}
	for dsIdx, ds := range dss {
		qd.dataSources = append(qd.dataSources, ds)
		for _, queryName := range ds.SupportedDataSeriesQueries() {
			if _, ok := qd.handlers[queryName]; ok {
				return nil, fmt.Errorf("multiple data sources handle query '%s'", queryName)
			}
			qd.handlers[queryName] = dsIdx
		}
	}
	return qd, nil
}

// WithLogger sets the logger the receiver reports handled requests to.
func (qd *QueryDispatcher) WithLogger(logger *slog.Logger) *QueryDispatcher {
	qd.logger = logger
	return qd
}

func (qd *QueryDispatcher) handler(queryName string) (DataSource, error) {
	dsIdx, ok := qd.handlers[queryName]
	if !ok {
		return nil, fmt.Errorf("unsupported data query '%s'", queryName)
	}
	return qd.dataSources[dsIdx], nil
}

// HandleDataRequest distributes req's series requests among their data
// sources, which handle them concurrently, and assembles the response.
func (qd *QueryDispatcher) HandleDataRequest(ctx context.Context, req *util.DataRequest) (*util.Data, error) {
	start := time.Now()
	drb := util.NewDataResponseBuilder()
	// Series requests grouped by the index of their data source.
	groupedReqs := map[int][]*util.DataSeriesRequest{}
	queryNames := make([]string, 0, len(req.SeriesRequests))
	for _, seriesReq := range req.SeriesRequests {
		dsIdx, ok := qd.handlers[seriesReq.QueryName]
		if !ok {
			return nil, fmt.Errorf("unsupported data query '%s'", seriesReq.QueryName)
		}
		groupedReqs[dsIdx] = append(groupedReqs[dsIdx], seriesReq)
		queryNames = append(queryNames, seriesReq.QueryName)
	}
	errg, ctx := errgroup.WithContext(ctx)
	for dsIdx, seriesReqs := range groupedReqs {
		ds := qd.dataSources[dsIdx]
		errg.Go(func() error {
			return ds.HandleDataSeriesRequests(ctx, req.GlobalFilters, drb, seriesReqs)
		})
	}
	if err := errg.Wait(); err != nil {
		qd.logger.Warn("data request failed",
			slog.String("queries", strings.Join(queryNames, ", ")),
			slog.Any("error", err))
		return nil, err
	}
	qd.logger.Info("handled data request",
		slog.String("queries", strings.Join(queryNames, ", ")),
		slog.Duration("elapsed", time.Since(start)))
	return drb.Data()
}

// Chart builds the canvas answering the series request req.
func (qd *QueryDispatcher) Chart(ctx context.Context, globalFilters map[string]*util.V, req *util.DataSeriesRequest) (*canvas.Canvas, error) {
	ds, err := qd.handler(req.QueryName)
	if err != nil {
		return nil, err
	}
	cs, ok := ds.(ChartSource)
	if !ok {
		return nil, fmt.Errorf("'%s': %w", req.QueryName, ErrNotChartable)
	}
	return cs.Chart(ctx, globalFilters, req)
}

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

// Package service assembles the chart server: a workbook data source over
// a directory of spreadsheets, and the HTTP handlers serving it.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	datasource "github.com/ilhamster/chartviz/data_source"
	"github.com/ilhamster/chartviz/handlers"
	querydispatcher "github.com/ilhamster/chartviz/query_dispatcher"
	"github.com/ilhamster/chartviz/sheet"
)

// collectionFetcher fetches the workbooks under collectionRoot, named by
// their paths relative to it.
type collectionFetcher struct {
	collectionRoot string
}

func (cf *collectionFetcher) Fetch(ctx context.Context, collectionName string) (*datasource.Collection, error) {
	if !filepath.IsLocal(collectionName) {
		return nil, fmt.Errorf("collection '%s' is outside the collection root", collectionName)
	}
	wb, err := sheet.Open(filepath.Join(cf.collectionRoot, collectionName))
	if err != nil {
		return nil, err
	}
	return datasource.NewCollection(wb), nil
}

// Service serves chart data and rendered charts.
type Service struct {
	queryHandler handlers.QueryHandler
	chartHandler handlers.QueryHandler
}

// New returns a Service over the workbooks under collectionRoot, caching up
// to cap of them.
func New(collectionRoot string, cap int, logger *slog.Logger) (*Service, error) {
	ds, err := datasource.New(cap, &collectionFetcher{collectionRoot: collectionRoot})
	if err != nil {
		return nil, err
	}
	ds.WithLogger(logger)
	qd, err := querydispatcher.New(ds)
	if err != nil {
		return nil, err
	}
	qd.WithLogger(logger)
	return &Service{
		queryHandler: handlers.NewQueryHandler(qd),
		chartHandler: handlers.NewChartHandler(qd),
	}, nil
}

// RegisterHandlers registers the receiver's handlers on mux.
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	for _, h := range []handlers.Handler{s.queryHandler, s.chartHandler} {
		for path, handler := range h.HandlersByPath() {
			mux.HandleFunc(path, handler)
		}
	}
}

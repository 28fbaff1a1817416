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

package querydispatcher

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/util"
)

type testDataSource struct {
	supportedDataSeriesQueries []string
	mu                         sync.Mutex
	handledQueries             map[string]int
}

func newTestDataSource(supportedDataSeriesQueries []string) *testDataSource {
	return &testDataSource{
		supportedDataSeriesQueries: supportedDataSeriesQueries,
		handledQueries:             map[string]int{},
	}
}

func (tds *testDataSource) SupportedDataSeriesQueries() []string {
	return tds.supportedDataSeriesQueries
}

const collectionNameKey = "collection_name"

func (tds *testDataSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	collectionName, err := util.StringOption(globalFilters, collectionNameKey, "")
	if err != nil {
		return err
	}
	if collectionName == "error" {
		return errors.New("oops")
	}
	tds.mu.Lock()
	defer tds.mu.Unlock()
	for _, req := range reqs {
		drb.DataSeries(req)
		tds.handledQueries[req.QueryName]++
	}
	return nil
}

// testChartSource draws an empty canvas titled by the query name.
type testChartSource struct {
	*testDataSource
}

func (tcs testChartSource) Chart(ctx context.Context, globalFilters map[string]*util.V, req *util.DataSeriesRequest) (*canvas.Canvas, error) {
	return canvas.New(canvas.Config{Title: req.QueryName}), nil
}

var queries = [][]string{
	{"charts.histogram", "charts.box_plot"},
	{"charts.box_stats"},
}

func TestQueryDispatcherCreation(t *testing.T) {
	for _, test := range []struct {
		description string
		dataSources []DataSource
		wantErr     bool
	}{{
		description: "single data source",
		dataSources: []DataSource{
			newTestDataSource(queries[0]),
		},
	}, {
		description: "multiple data sources",
		dataSources: []DataSource{
			newTestDataSource(queries[0]),
			newTestDataSource(queries[1]),
		},
	}, {
		description: "supported query conflict",
		dataSources: []DataSource{
			newTestDataSource(queries[0]),
			newTestDataSource(queries[0]),
		},
		wantErr: true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			_, err := New(test.dataSources...)
			if test.wantErr != (err != nil) {
				t.Fatalf("Unexpected error creating QueryDispatcher: %s", err)
			}
		})
	}
}

func emptyDatum() *util.Datum {
	return &util.Datum{
		Properties: map[int64]*util.V{},
		Children:   []*util.Datum{},
	}
}

func TestHandleDataRequest(t *testing.T) {
	for _, test := range []struct {
		description        string
		dataSources        []*testDataSource
		req                *util.DataRequest
		wantErr            bool
		wantData           *util.Data
		wantHandledQueries [][]string
	}{{
		description: "single data source",
		dataSources: []*testDataSource{
			newTestDataSource(queries[0]),
		},
		req: &util.DataRequest{
			GlobalFilters: map[string]*util.V{
				collectionNameKey: util.StringValue("sales.xlsx"),
			},
			SeriesRequests: []*util.DataSeriesRequest{{
				QueryName:  "charts.histogram",
				SeriesName: "1",
			}},
		},
		wantData: &util.Data{
			StringTable: []string{},
			DataSeries: []*util.DataSeries{{
				SeriesName: "1",
				Root:       emptyDatum(),
			}},
		},
		wantHandledQueries: [][]string{
			{"charts.histogram"},
		},
	}, {
		description: "multiple data sources",
		dataSources: []*testDataSource{
			newTestDataSource(queries[0]),
			newTestDataSource(queries[1]),
		},
		req: &util.DataRequest{
			GlobalFilters: map[string]*util.V{
				collectionNameKey: util.StringValue("sales.xlsx"),
			},
			SeriesRequests: []*util.DataSeriesRequest{{
				QueryName:  "charts.histogram",
				SeriesName: "1",
				Options:    map[string]*util.V{},
			}, {
				QueryName:  "charts.box_stats",
				SeriesName: "2",
				Options:    map[string]*util.V{},
			}, {
				QueryName:  "charts.box_plot",
				SeriesName: "3",
				Options:    map[string]*util.V{},
			}},
		},
		wantData: &util.Data{
			StringTable: []string{},
			DataSeries: []*util.DataSeries{{
				SeriesName: "1",
				Root:       emptyDatum(),
			}, {
				SeriesName: "2",
				Root:       emptyDatum(),
			}, {
				SeriesName: "3",
				Root:       emptyDatum(),
			}},
		},
		wantHandledQueries: [][]string{
			{"charts.histogram", "charts.box_plot"},
			{"charts.box_stats"},
		},
	}, {
		description: "data source failure",
		dataSources: []*testDataSource{
			newTestDataSource(queries[0]),
		},
		req: &util.DataRequest{
			GlobalFilters: map[string]*util.V{
				collectionNameKey: util.StringValue("error"),
			},
			SeriesRequests: []*util.DataSeriesRequest{{
				QueryName:  "charts.histogram",
				SeriesName: "1",
			}},
		},
		wantErr: true,
	}, {
		description: "unknown query",
		dataSources: []*testDataSource{
			newTestDataSource(queries[0]),
		},
		req: &util.DataRequest{
			GlobalFilters: map[string]*util.V{
				collectionNameKey: util.StringValue("sales.xlsx"),
			},
			SeriesRequests: []*util.DataSeriesRequest{{
				QueryName:  "charts.pie",
				SeriesName: "1",
			}},
		},
		wantErr: true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			dss := make([]DataSource, len(test.dataSources))
			for i, ds := range test.dataSources {
				dss[i] = ds
			}
			qd, err := New(dss...)
			if err != nil {
				t.Fatalf("Unexpected error creating QueryDispatcher: %s", err)
			}
			gotData, err := qd.HandleDataRequest(context.Background(), test.req)
			if test.wantErr != (err != nil) {
				t.Fatalf("HandleDataRequest() yielded unexpected error %s", err)
			}
			if err != nil {
				return
			}
			sortBySeries := func(dataSeries []*util.DataSeries) {
				sort.Slice(dataSeries, func(a, b int) bool {
					return dataSeries[a].SeriesName < dataSeries[b].SeriesName
				})
			}
			sortBySeries(gotData.DataSeries)
			sortBySeries(test.wantData.DataSeries)
			if diff := cmp.Diff(test.wantData.PrettyPrint(), gotData.PrettyPrint()); diff != "" {
				t.Errorf("Got data %s, diff (-want +got):\n%s", gotData.PrettyPrint(), diff)
			}
			for idx, handledQueries := range test.wantHandledQueries {
				ds := test.dataSources[idx]
				for _, query := range handledQueries {
					if _, ok := ds.handledQueries[query]; !ok {
						t.Fatalf("Expected query '%s' was not handled by data source %d", query, idx)
					}
					ds.handledQueries[query]--
					if ds.handledQueries[query] == 0 {
						delete(ds.handledQueries, query)
					}
				}
			}
			for idx, ds := range test.dataSources {
				if len(ds.handledQueries) > 0 {
					qs := []string{}
					for query, count := range ds.handledQueries {
						for i := 0; i < count; i++ {
							qs = append(qs, query)
						}
					}
					t.Errorf("Queries [%s] were handled by data source %d, but not expected to be.", strings.Join(qs, ", "), idx)
				}
			}
		})
	}
}

func TestChart(t *testing.T) {
	charts := testChartSource{newTestDataSource(queries[0])}
	tables := newTestDataSource(queries[1])
	qd, err := New(charts, tables)
	if err != nil {
		t.Fatalf("Unexpected error creating QueryDispatcher: %s", err)
	}
	c, err := qd.Chart(context.Background(), nil, &util.DataSeriesRequest{QueryName: "charts.box_plot"})
	if err != nil {
		t.Fatalf("Chart() yielded unexpected error %s", err)
	}
	if got := c.Config().Title; got != "charts.box_plot" {
		t.Errorf("Chart() drew %q, want charts.box_plot", got)
	}
	if _, err := qd.Chart(context.Background(), nil, &util.DataSeriesRequest{QueryName: "charts.box_stats"}); !errors.Is(err, ErrNotChartable) {
		t.Errorf("Chart() of a table query yielded error %v, want %v", err, ErrNotChartable)
	}
	if _, err := qd.Chart(context.Background(), nil, &util.DataSeriesRequest{QueryName: "charts.pie"}); err == nil {
		t.Errorf("Chart() of an unknown query yielded no error")
	}
}

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

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/frame"
	querydispatcher "github.com/ilhamster/chartviz/query_dispatcher"
	"github.com/ilhamster/chartviz/stats"
	"github.com/ilhamster/chartviz/util"
)

const testQuery = "charts.test"

// testSource answers testQuery with an empty series, and charts it as a
// single line.  The 'fail' option makes either fail with a column error,
// and the 'bins' option histograms a few values before charting.
type testSource struct{}

func (testSource) SupportedDataSeriesQueries() []string {
	return []string{testQuery}
}

func failure(opts map[string]*util.V) error {
	fail, err := util.StringOption(opts, "fail", "")
	if err != nil {
		return err
	}
	if fail != "" {
		return &frame.ColumnError{Column: fail, Err: frame.ErrMissingColumn}
	}
	return nil
}

func (testSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	if r, err := RequestOf(ctx); err != nil || r == nil {
		return errors.New("no HTTP request in context")
	}
	for _, req := range reqs {
		if err := failure(req.Options); err != nil {
			return err
		}
		drb.DataSeries(req)
	}
	return nil
}

func (testSource) Chart(ctx context.Context, globalFilters map[string]*util.V, req *util.DataSeriesRequest) (*canvas.Canvas, error) {
	if err := failure(req.Options); err != nil {
		return nil, err
	}
	bins, err := util.IntegerOption(req.Options, "bins", 1)
	if err != nil {
		return nil, err
	}
	if _, err := stats.Bins([]float64{1, 2, 3}, int(bins)); err != nil {
		return nil, err
	}
	c := canvas.New(canvas.Config{Title: "Test Chart", Width: 300, Height: 200})
	if err := c.Add(&canvas.Line{
		Mark: canvas.Mark{Series: "a", Color: "#1f77b4"},
		X:    []float64{0, 1, 2},
		Y:    []float64{1, 3, 2},
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func encodeRequest(t *testing.T, path string, dataReq *util.DataRequest) *http.Request {
	t.Helper()
	j, err := json.Marshal(dataReq)
	if err != nil {
		t.Fatalf("failed to marshal DataRequest: %s", err)
	}
	return httptest.NewRequest(http.MethodGet, path+"?"+url.Values{reqParam: {string(j)}}.Encode(), nil)
}

func seriesRequest(opts map[string]*util.V) *util.DataRequest {
	return &util.DataRequest{
		GlobalFilters: map[string]*util.V{},
		SeriesRequests: []*util.DataSeriesRequest{{
			QueryName:  testQuery,
			SeriesName: "1",
			Options:    opts,
		}},
	}
}

func TestHandlers(t *testing.T) {
	qd, err := querydispatcher.New(testSource{})
	if err != nil {
		t.Fatalf("Unexpected error creating QueryDispatcher: %s", err)
	}
	mux := http.NewServeMux()
	for _, h := range []Handler{NewQueryHandler(qd), NewChartHandler(qd)} {
		for path, handler := range h.HandlersByPath() {
			mux.HandleFunc(path, handler)
		}
	}
	for _, test := range []struct {
		description     string
		req             *http.Request
		wantStatus      int
		wantContentType string
		wantBody        string
	}{{
		description:     "data request",
		req:             encodeRequest(t, dataMethod, seriesRequest(map[string]*util.V{})),
		wantStatus:      http.StatusOK,
		wantContentType: "application/json",
		wantBody:        `"SeriesName":"1"`,
	}, {
		description: "malformed data request",
		req:         httptest.NewRequest(http.MethodGet, dataMethod+"?req=%7Bnope", nil),
		wantStatus:  http.StatusBadRequest,
	}, {
		description: "failed data request",
		req: encodeRequest(t, dataMethod, seriesRequest(map[string]*util.V{
			"fail": util.StringValue("latency"),
		})),
		wantStatus: http.StatusInternalServerError,
	}, {
		description:     "chart request",
		req:             encodeRequest(t, chartMethod, seriesRequest(map[string]*util.V{})),
		wantStatus:      http.StatusOK,
		wantContentType: "text/html; charset=utf-8",
		wantBody:        "<title>Test Chart</title>",
	}, {
		description: "chart of a missing column",
		req: encodeRequest(t, chartMethod, seriesRequest(map[string]*util.V{
			"fail": util.StringValue("latency"),
		})),
		wantStatus: http.StatusBadRequest,
		wantBody:   "column 'latency'",
	}, {
		description: "chart with too many bins",
		req: encodeRequest(t, chartMethod, seriesRequest(map[string]*util.V{
			"bins": util.IntegerValue(1 << 40),
		})),
		wantStatus: http.StatusBadRequest,
		wantBody:   "too many histogram bins",
	}, {
		description: "chart request without series",
		req: encodeRequest(t, chartMethod, &util.DataRequest{
			GlobalFilters: map[string]*util.V{},
		}),
		wantStatus: http.StatusBadRequest,
	}} {
		t.Run(test.description, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, test.req)
			if rec.Code != test.wantStatus {
				t.Fatalf("got status %d, want %d (body %q)", rec.Code, test.wantStatus, rec.Body.String())
			}
			if test.wantContentType != "" {
				if got := rec.Header().Get("Content-Type"); got != test.wantContentType {
					t.Errorf("got content type %q, want %q", got, test.wantContentType)
				}
			}
			if !strings.Contains(rec.Body.String(), test.wantBody) {
				t.Errorf("body %q lacks %q", rec.Body.String(), test.wantBody)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	qd, err := querydispatcher.New(testSource{})
	if err != nil {
		t.Fatalf("Unexpected error creating QueryDispatcher: %s", err)
	}
	wrapped := 0
	h := NewChartHandler(qd).Wrap(func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			wrapped++
			next(w, req)
		}
	})
	rec := httptest.NewRecorder()
	h.HandlersByPath()[chartMethod](rec, encodeRequest(t, chartMethod, seriesRequest(map[string]*util.V{})))
	if rec.Code != http.StatusOK || wrapped != 1 {
		t.Errorf("got status %d after %d wraps, want %d after 1", rec.Code, wrapped, http.StatusOK)
	}
}

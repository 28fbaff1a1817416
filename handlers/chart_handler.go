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
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/frame"
	"github.com/ilhamster/chartviz/page"
	querydispatcher "github.com/ilhamster/chartviz/query_dispatcher"
	"github.com/ilhamster/chartviz/stats"
	"github.com/ilhamster/chartviz/util"
)

const chartMethod = "/chart"

// ChartSource builds the canvas answering a single series request.
// *querydispatcher.QueryDispatcher is a ChartSource.
type ChartSource interface {
	Chart(ctx context.Context, globalFilters map[string]*util.V, req *util.DataSeriesRequest) (*canvas.Canvas, error)
}

var _ ChartSource = (*querydispatcher.QueryDispatcher)(nil)

// chartHandler serves rendered charts as HTML documents.
type chartHandler struct {
	cs       ChartSource
	wrappers []WrapFunc
}

// NewChartHandler returns a Handler serving the charts built by cs.  Its
// requests carry a DataRequest with exactly one series request, in the
// same 'req' form parameter the data handler reads.
func NewChartHandler(cs ChartSource) QueryHandler {
	return &chartHandler{cs: cs}
}

func (ch *chartHandler) Wrap(wrappers ...WrapFunc) Handler {
	ch.wrappers = append(ch.wrappers, wrappers...)
	return ch
}

func (ch *chartHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	return map[string]func(http.ResponseWriter, *http.Request){
		chartMethod: wrap(ch.getChartHandler, ch.wrappers),
	}
}

// chartStatus maps chart build failures to HTTP status codes: bad input
// is the client's fault.
func chartStatus(err error) int {
	var colErr *frame.ColumnError
	switch {
	case errors.As(err, &colErr),
		errors.Is(err, querydispatcher.ErrNotChartable),
		errors.Is(err, stats.ErrTooManyBins):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (ch *chartHandler) getChartHandler(w http.ResponseWriter, req *http.Request) {
	dataReq, err := parseDataRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(dataReq.SeriesRequests) != 1 {
		http.Error(w, "chart requests must hold exactly one series request", http.StatusBadRequest)
		return
	}
	ctx := context.WithValue(req.Context(), httpReqKey, req)
	c, err := ch.cs.Chart(ctx, dataReq.GlobalFilters, dataReq.SeriesRequests[0])
	if err != nil {
		http.Error(w, "Chart failed: "+err.Error(), chartStatus(err))
		return
	}
	var buf bytes.Buffer
	if err := page.Write(&buf, c); err != nil {
		http.Error(w, "Failed to render chart: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

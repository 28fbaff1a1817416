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

package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ilhamster/chartviz/util"
)

func writeWorkbook(t *testing.T, dir, name string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range [][]any{
		{"region", "latency"},
		{"east", 1},
		{"east", 2},
		{"west", 3},
	} {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("bad cell: %s", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %s", r, err)
		}
	}
	if err := f.SaveAs(filepath.Join(dir, name)); err != nil {
		t.Fatalf("failed to save workbook: %s", err)
	}
}

func get(t *testing.T, serverURL, path string, req *util.DataRequest) (int, string) {
	t.Helper()
	j, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal request: %s", err)
	}
	resp, err := http.Get(serverURL + path + "?" + url.Values{"req": {string(j)}}.Encode())
	if err != nil {
		t.Fatalf("GET %s failed: %s", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %s", err)
	}
	return resp.StatusCode, string(body)
}

func TestService(t *testing.T) {
	root := t.TempDir()
	writeWorkbook(t, root, "latency.xlsx")
	svc, err := New(root, 2, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("failed to create service: %s", err)
	}
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	boxPlot := func(collection string) *util.DataRequest {
		return &util.DataRequest{
			GlobalFilters: map[string]*util.V{
				"collection_name": util.StringValue(collection),
			},
			SeriesRequests: []*util.DataSeriesRequest{{
				QueryName:  "charts.box_plot",
				SeriesName: "box",
				Options: map[string]*util.V{
					"value_column":    util.StringValue("latency"),
					"category_column": util.StringValue("region"),
				},
			}},
		}
	}
	for _, test := range []struct {
		description string
		path        string
		req         *util.DataRequest
		wantStatus  int
		wantBody    string
	}{{
		description: "chart data",
		path:        "/GetData",
		req:         boxPlot("latency.xlsx"),
		wantStatus:  http.StatusOK,
		wantBody:    `"SeriesName":"box"`,
	}, {
		description: "rendered chart",
		path:        "/chart",
		req:         boxPlot("latency.xlsx"),
		wantStatus:  http.StatusOK,
		wantBody:    "<svg",
	}, {
		description: "missing workbook",
		path:        "/chart",
		req:         boxPlot("absent.xlsx"),
		wantStatus:  http.StatusInternalServerError,
	}, {
		description: "workbook outside the root",
		path:        "/GetData",
		req:         boxPlot("../latency.xlsx"),
		wantStatus:  http.StatusInternalServerError,
		wantBody:    "outside the collection root",
	}} {
		t.Run(test.description, func(t *testing.T) {
			status, body := get(t, server.URL, test.path, test.req)
			if status != test.wantStatus {
				t.Fatalf("got status %d, want %d (body %q)", status, test.wantStatus, body)
			}
			if !strings.Contains(body, test.wantBody) {
				t.Errorf("body %q lacks %q", body, test.wantBody)
			}
		})
	}
}

func TestFetchRejectsEscapes(t *testing.T) {
	cf := &collectionFetcher{collectionRoot: t.TempDir()}
	for _, name := range []string{"../x.xlsx", "/etc/passwd", ""} {
		if _, err := cf.Fetch(context.Background(), name); err == nil {
			t.Errorf("Fetch(%q) yielded no error", name)
		}
	}
}

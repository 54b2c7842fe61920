// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "snowq/cli/internal/errors"
	"snowq/cli/internal/llm"
	"snowq/cli/internal/logging"
	"snowq/cli/internal/warehouse"
)

type fakeWarehouse struct {
	pingErr    error
	catalog    warehouse.Catalog
	catalogErr error
	table      *warehouse.Table
	runErr     error
}

func (f *fakeWarehouse) Ping(_ context.Context) error { return f.pingErr }

func (f *fakeWarehouse) Catalog(_ context.Context) (warehouse.Catalog, error) {
	return f.catalog, f.catalogErr
}

func (f *fakeWarehouse) Run(_ context.Context, _ string) (*warehouse.Table, error) {
	return f.table, f.runErr
}

type scriptReplies struct {
	replies []string
}

func (s *scriptReplies) Complete(_ context.Context, _ []llm.Message) (string, error) {
	if len(s.replies) == 0 {
		return "", errors.New("no reply scripted")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func newTestServer(t *testing.T, wh *fakeWarehouse, completer *scriptReplies) *Server {
	t.Helper()

	if completer == nil {
		return New(":0", wh, nil, logging.Nop())
	}
	return New(":0", wh, completer, logging.Nop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeWarehouse{}, nil)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleHealthWarehouseDown(t *testing.T) {
	s := newTestServer(t, &fakeWarehouse{pingErr: errors.New("connection refused")}, nil)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleMetadata(t *testing.T) {
	wh := &fakeWarehouse{
		catalog: warehouse.Catalog{"ORDERS": {"ID": "NUMBER", "REGION": "VARCHAR"}},
	}
	s := newTestServer(t, wh, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/metadata", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got warehouse.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, wh.catalog, got)
}

func TestHandleMetadataUpstreamFailure(t *testing.T) {
	wh := &fakeWarehouse{
		catalogErr: apperrors.New(apperrors.MetadataFailed, "information_schema unavailable"),
	}
	s := newTestServer(t, wh, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/metadata", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Metadata error")
}

func TestHandleQuery(t *testing.T) {
	wh := &fakeWarehouse{
		table: &warehouse.Table{
			Columns: []string{"REGION", "TOTAL"},
			Rows:    [][]any{{"EMEA", int64(900)}},
		},
	}
	s := newTestServer(t, wh, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/query", `{"sql":"SELECT REGION, TOTAL FROM SALES"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got warehouse.Table
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"REGION", "TOTAL"}, got.Columns)
	require.Len(t, got.Rows, 1)
}

func TestHandleQueryMissingSQL(t *testing.T) {
	s := newTestServer(t, &fakeWarehouse{}, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/query", `{"sql":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "sql is required")
}

func TestHandleQueryUpstreamFailure(t *testing.T) {
	wh := &fakeWarehouse{
		runErr: apperrors.New(apperrors.QueryFailed, "SQL compilation error"),
	}
	s := newTestServer(t, wh, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/query", `{"sql":"SELECT NOPE"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Query error")
}

func TestHandleAsk(t *testing.T) {
	wh := &fakeWarehouse{
		catalog: warehouse.Catalog{"SALES": {"REGION": "VARCHAR", "TOTAL": "NUMBER"}},
		table: &warehouse.Table{
			Columns: []string{"REGION", "TOTAL"},
			Rows:    [][]any{{"EMEA", int64(900)}, {"APAC", int64(400)}},
		},
	}
	completer := &scriptReplies{replies: []string{
		"```sql\nSELECT REGION, TOTAL FROM SALES\n```",
		"EMEA leads with 900",
	}}
	s := newTestServer(t, wh, completer)

	rec := doRequest(t, s, http.MethodPost, "/api/ask", `{"question":"totals by region?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		SQL       string `json:"sql"`
		Headline  string `json:"headline"`
		ChartHTML string `json:"chart_html"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "SELECT REGION, TOTAL FROM SALES", got.SQL)
	assert.Equal(t, "EMEA leads with 900", got.Headline)
	assert.Contains(t, got.ChartHTML, "<svg")
}

func TestHandleAskMissingQuestion(t *testing.T) {
	s := newTestServer(t, &fakeWarehouse{}, &scriptReplies{})

	rec := doRequest(t, s, http.MethodPost, "/api/ask", `{"question":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAskWithoutModel(t *testing.T) {
	s := newTestServer(t, &fakeWarehouse{}, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/ask", `{"question":"anything?"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	wh := &fakeWarehouse{
		table: &warehouse.Table{Columns: []string{"N"}, Rows: [][]any{}},
	}
	s := newTestServer(t, wh, nil)

	doRequest(t, s, http.MethodPost, "/api/query", `{"sql":"SELECT 1"}`)

	rec := doRequest(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "snowq_queries_total")
	assert.Contains(t, rec.Body.String(), "snowq_query_duration_seconds")
}

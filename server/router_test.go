/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster/database/dbtest"
)

func newTestRouter(t *testing.T) (http.Handler, *prometheus.Registry) {
	manager := dbtest.Open(t)
	registry := prometheus.NewRegistry()
	return NewRouter(Deps{DB: manager.GetDB(), Health: manager, Registry: registry}), registry
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func TestRouter_Hello(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := serve(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestRouter_UnroutedRequests(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		method  string
		target  string
		status  int
		kind    string
		message string
	}{
		{http.MethodGet, "/nowhere", http.StatusNotFound, "NotFound", "no route for /nowhere"},
		{http.MethodGet, "/api/teams/abc", http.StatusNotFound, "NotFound", "no route for /api/teams/abc"},
		{http.MethodDelete, "/health", http.StatusMethodNotAllowed, "MethodNotAllowed", "method DELETE is not allowed on /health"},
		{http.MethodPatch, "/api/teams/1", http.StatusMethodNotAllowed, "MethodNotAllowed", "method PATCH is not allowed on /api/teams/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(h, tt.method, tt.target, "")
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body struct {
				Exception struct {
					Type    string `json:"type"`
					Message string `json:"message"`
				} `json:"exception"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Exception.Type)
			assert.Equal(t, tt.message, body.Exception.Message)
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/api/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type,Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "GET,PUT,POST,DELETE", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = serve(h, http.MethodOptions, "/api/teams/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(h, http.MethodGet, "/api/teams/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestID(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-me")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-me", rec.Header().Get(RequestIDHeader))
}

func TestRouter_Health(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status["healthy"])
	assert.Equal(t, float64(1), status["max_open_conns"])

	noDB := NewRouter(Deps{DB: dbtest.OpenDB(t)})
	rec = serve(noDB, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_TeamsAndPlayers(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodPost, "/api/teams", `{"name":"Lakers","city":"Los Angeles"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/players", `{"name":"Kobe","age":20,"position":"Guard","team_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var player map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	assert.Equal(t, float64(1), player["team_id"])
	assert.Equal(t, float64(20), player["age"])

	rec = serve(h, http.MethodPost, "/api/players", `{"name":"Ghost","team_id":99}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(h, http.MethodDelete, "/api/teams/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(h, http.MethodGet, "/api/players", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var players []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	assert.Len(t, players, 1)
}

func TestRouter_Metrics(t *testing.T) {
	h, registry := newTestRouter(t)

	serve(h, http.MethodGet, "/api/teams", "")
	serve(h, http.MethodGet, "/api/teams/7", "")

	families, err := registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["roster_http_requests_total"])
	assert.True(t, names["roster_http_request_duration_seconds"])

	rec := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/teams/{id:[0-9]+}"`)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"exception":{"type":"Unknown","message":"an unexpected error occurred","field":""}}`, rec.Body.String())
}

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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/api/teams", http.StatusOK, 10*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/api/teams", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/api/teams", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.latency))
}

func TestCollector_MiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/teams/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/silent", func(http.ResponseWriter, *http.Request) {})

	for _, target := range []string{"/teams/1", "/teams/2", "/silent", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/teams/{id}", "418")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/silent", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
	assert.Equal(t, float64(0), testutil.ToFloat64(c.inFlight))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest(http.MethodPost, "/api/players", http.StatusCreated, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roster_http_requests_total")
	assert.Contains(t, rec.Body.String(), `status_code="201"`)
}

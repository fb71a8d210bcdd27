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
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	roster "github.com/tomoncle/roster"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/metrics"
	"github.com/tomoncle/roster/resource"
	"github.com/tomoncle/roster/utils"
	"github.com/uptrace/bun"
)

var log = utils.NewLogger("SERVER")

// HealthChecker reports the health of the database.
type HealthChecker interface {
	HealthCheck(ctx context.Context) *database.HealthStatus
}

// Deps holds everything the router needs.
type Deps struct {
	DB       *bun.DB
	Health   HealthChecker
	Registry *prometheus.Registry
}

// NewRouter builds the application router: middleware, the teams and
// players resources, and the hello, health and metrics endpoints.
func NewRouter(deps Deps) *chi.Mux {
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	collector := metrics.NewCollector(registry)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(CORS)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(collector.Middleware)
	r.NotFound(resource.NotFound)
	r.MethodNotAllowed(resource.MethodNotAllowed)

	r.Get("/", hello)
	r.Get("/health", healthHandler(deps.Health))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/teams", resource.New(roster.NewTeamService(deps.DB)).Routes())
		r.Mount("/players", resource.New(roster.NewPlayerService(deps.DB)).Routes())
	})
	return r
}

func hello(w http.ResponseWriter, _ *http.Request) {
	resource.JSON(w, http.StatusOK, map[string]string{"hello": "world"})
}

func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			resource.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		status := checker.HealthCheck(r.Context())
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		resource.JSON(w, code, status)
	}
}

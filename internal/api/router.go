// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dwkim-lab/homepick/internal/middleware"
)

// RouterConfig carries the security knobs the router needs.
type RouterConfig struct {
	// JWTSecret protects PUT /api/v1/policies. Empty disables auth.
	JWTSecret string

	// RateLimitRPS and RateLimitBurst bound per-client request rates on
	// the API routes. RPS <= 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so it can be used with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// NewRouter builds the HTTP handler tree.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Probe endpoints stay outside the rate limiter and metrics stack.
	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware(limiter.Middleware))
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Post("/recommendations", h.Recommend)
		r.Post("/recommendations/playbook", h.Playbook)

		r.Route("/policies", func(r chi.Router) {
			r.Get("/{tasteID}", h.GetPolicy)
			r.With(chiMiddleware(BearerAuth(cfg.JWTSecret))).Put("/{tasteID}", h.PutPolicy)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("요청한 경로를 찾을 수 없습니다.")
	})

	return r
}

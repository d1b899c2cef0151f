// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Recommendation pipeline stages (filter, scoring, selection)
// - Policy registry cache efficiency
// - Catalog provider health (DuckDB circuit breaker)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation pipeline metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation runs",
		},
		[]string{"path", "outcome"}, // path: "weighted", "playbook"; outcome: "ok", "empty", "invalid"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	FilterCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filter_candidates",
			Help:    "Number of candidates entering the hard filter",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	FilterDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filter_dropped_total",
			Help: "Total number of products removed by the hard filter",
		},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scoring_duration_seconds",
			Help:    "Per-request scoring duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"scorer"}, // "weighted", "playbook"
	)

	// Policy registry metrics
	PolicyCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policy_cache_hits_total",
			Help: "Total number of policy cache hits",
		},
	)

	PolicyCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policy_cache_misses_total",
			Help: "Total number of policy cache misses",
		},
	)

	PolicyResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_resolutions_total",
			Help: "Total number of policy resolutions by source layer",
		},
		[]string{"source"}, // "taste_file", "shared_file", "dynamic", "default"
	)

	PolicyInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policy_invalidations_total",
			Help: "Total number of policy cache invalidations",
		},
	)

	// Catalog provider metrics
	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of catalog snapshot queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"}, // "memory", "duckdb"
	)

	CatalogQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_query_errors_total",
			Help: "Total number of catalog query errors",
		},
		[]string{"provider"},
	)

	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the most recent catalog snapshot",
		},
	)

	// Circuit breaker metrics (DuckDB provider)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// System metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one pipeline run.
func RecordRecommendation(path, outcome string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(path, outcome).Inc()
	RecommendationDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordFilter records the hard-filter stage of one run.
func RecordFilter(candidates, survivors int) {
	FilterCandidates.Observe(float64(candidates))
	if dropped := candidates - survivors; dropped > 0 {
		FilterDropped.Add(float64(dropped))
	}
}

// RecordScoring records the scoring stage of one run.
func RecordScoring(scorer string, duration time.Duration) {
	ScoringDuration.WithLabelValues(scorer).Observe(duration.Seconds())
}

// RecordPolicyResolution records a registry resolution by source layer.
func RecordPolicyResolution(source string, cached bool) {
	if cached {
		PolicyCacheHits.Inc()
	} else {
		PolicyCacheMisses.Inc()
	}
	PolicyResolutions.WithLabelValues(source).Inc()
}

// RecordCatalogQuery records a catalog snapshot query.
func RecordCatalogQuery(provider string, n int, duration time.Duration, err error) {
	CatalogQueryDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err != nil {
		CatalogQueryErrors.WithLabelValues(provider).Inc()
		return
	}
	CatalogProducts.Set(float64(n))
}

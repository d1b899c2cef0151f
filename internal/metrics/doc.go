// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the recommendation service with the Prometheus client
library, exposing metrics for monitoring API performance, pipeline behavior,
policy cache efficiency, and catalog provider health.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Recommendation Pipeline Metrics:
  - recommendation_requests_total: Pipeline runs (counter)
    Labels: path (weighted, playbook), outcome (ok, empty, invalid)
  - recommendation_duration_seconds: End-to-end pipeline latency (histogram)
    Labels: path
  - filter_candidates: Candidates entering the hard filter (histogram)
  - filter_dropped_total: Products removed by the hard filter (counter)
  - scoring_duration_seconds: Scoring stage latency (histogram)
    Labels: scorer (weighted, playbook)

Policy Registry Metrics:
  - policy_cache_hits_total / policy_cache_misses_total: Cache efficiency (counters)
  - policy_resolutions_total: Resolutions by source layer (counter)
    Labels: source (taste_file, shared_file, dynamic, default)
  - policy_invalidations_total: Cache invalidations (counter)

Catalog Provider Metrics:
  - catalog_query_duration_seconds: Snapshot query latency (histogram)
    Labels: provider (memory, duckdb)
  - catalog_query_errors_total: Failed snapshot queries (counter)
    Labels: provider
  - catalog_products: Size of the most recent snapshot (gauge)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through the breaker (counter)
    Labels: name, result (success, failure, rejected)

# Usage Example

Recording a pipeline run:

	start := time.Now()
	result, err := eng.Recommend(ctx, profile, tasteID, limit)
	outcome := "ok"
	if err != nil {
	    outcome = "invalid"
	} else if !result.Success {
	    outcome = "empty"
	}
	metrics.RecordRecommendation("weighted", outcome, time.Since(start))

Example PromQL queries:

	# Request rate
	rate(api_requests_total[5m])

	# p95 pipeline latency
	histogram_quantile(0.95, rate(recommendation_duration_seconds_bucket[5m]))

	# Policy cache hit rate
	rate(policy_cache_hits_total[5m]) / (rate(policy_cache_hits_total[5m]) + rate(policy_cache_misses_total[5m]))

# Thread Safety

All recording functions are safe for concurrent use from multiple goroutines.
The Prometheus client library handles synchronization internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels use chi route patterns, never raw URLs
  - Pipeline path and outcome labels are fixed constants
  - Provider and scorer labels are fixed constants
  - User-specific labels (taste IDs, profile fields) are avoided
*/
package metrics

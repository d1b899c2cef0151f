// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

/*
Package middleware provides HTTP middleware components for the API server.

Middleware functions use the http.HandlerFunc signature and are adapted to
Chi's func(http.Handler) http.Handler form by the api package:

  - RequestID: assigns X-Request-ID (honoring upstream values) and threads
    the ID through the request context for log correlation.
  - PrometheusMetrics: records request counts, durations and in-flight
    gauges, labeled with the Chi route pattern to keep cardinality bounded.
  - RateLimit: token-bucket rate limiting backed by golang.org/x/time/rate,
    one bucket per client IP.
  - Compression: gzip response compression for clients that accept it.
*/
package middleware

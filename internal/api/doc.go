// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

/*
Package api provides HTTP routing and standardized response handling.

Routes (Chi router):

	POST /api/v1/recommendations          weighted per-category recommendations
	POST /api/v1/recommendations/playbook full playbook bundle
	GET  /api/v1/policies/{tasteID}       resolved scoring policy with source
	PUT  /api/v1/policies/{tasteID}       save a taste override (JWT protected)
	GET  /healthz                         liveness probe
	GET  /metrics                         Prometheus exposition

All JSON responses use the envelope

	{"status": "ok"|"error", "data": ..., "error": ...,
	 "metadata": {"timestamp": ..., "query_time_ms": ..., "request_id": ...}}

PUT /api/v1/policies requires a bearer JWT signed with security.jwt_secret.
With no secret configured the route is open, which is intended only for
local development.
*/
package api

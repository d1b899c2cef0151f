// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

/*
Command server runs the HomePick recommendation API.

Configuration is layered: built-in defaults, then a YAML file
(config.yaml in the working directory or /etc/homepick/, or the path in
HOMEPICK_CONFIG), then HOMEPICK_* environment variables. For example:

	HOMEPICK_SERVER_PORT=9090
	HOMEPICK_CATALOG_PROVIDER=duckdb
	HOMEPICK_CATALOG_DUCKDB_PATH=/data/catalog.duckdb
	HOMEPICK_SECURITY_JWT_SECRET=...

The process runs a suture supervision tree: the HTTP server in an api
layer, and the catalog refresher, policy invalidation subscriber and
uptime reporter in a background layer. SIGINT/SIGTERM trigger graceful
shutdown bounded by server.shutdown_timeout.
*/
package main

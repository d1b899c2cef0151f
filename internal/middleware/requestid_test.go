// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dwkim-lab/homepick/internal/logging"
)

func TestRequestIDGenerated(t *testing.T) {
	var seenID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if seenID == "" {
		t.Fatal("expected request ID in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("X-Request-ID header = %q, want %q", got, seenID)
	}
}

func TestRequestIDPreservesUpstream(t *testing.T) {
	var seenID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if seenID != "upstream-123" {
		t.Errorf("request ID = %q, want upstream-123", seenID)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-123" {
		t.Errorf("X-Request-ID header = %q, want upstream-123", got)
	}
}

func TestRequestIDReachesLoggingContext(t *testing.T) {
	var loggedID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		loggedID = logging.RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	handler(httptest.NewRecorder(), req)

	if loggedID != "trace-me" {
		t.Errorf("logging context request ID = %q, want trace-me", loggedID)
	}
}

func TestGetRequestIDEmptyContext(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID(empty) = %q, want empty", got)
	}
}

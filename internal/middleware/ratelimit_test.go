// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	handler := rl.Middleware(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRateLimitRejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Middleware(okHandler)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = httptest.NewRecorder()
		handler(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if !strings.Contains(last.Body.String(), "TOO_MANY_REQUESTS") {
		t.Errorf("body = %q, want error code TOO_MANY_REQUESTS", last.Body.String())
	}
	if got := last.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
}

func TestRateLimitPerClientIsolation(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Middleware(okHandler)

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("client A first request status = %d, want 200", rec.Code)
	}

	// Client A is now out of budget but client B has a fresh bucket.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("client B status = %d, want 200", rec.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	handler := rl.Middleware(okHandler)

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200 with limiting disabled", i+1, rec.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr", "192.168.1.10:4321", "", "192.168.1.10"},
		{"forwarded single", "10.0.0.1:1", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", "10.0.0.1:1", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"no port", "somehost", "", "somehost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

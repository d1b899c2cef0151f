// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/dwkim-lab/homepick/internal/logging"
)

// Response is the standardized envelope for all API endpoints.
type Response struct {
	// Status is "ok" on success, "error" otherwise
	Status string `json:"status"`

	// Data contains the response payload (null on error)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (null on success)
	Error *ResponseError `json:"error,omitempty"`

	// Metadata describes the response itself
	Metadata *Metadata `json:"metadata"`
}

// ResponseError represents an error payload.
type ResponseError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// RequestID is the request ID for tracing
	RequestID string `json:"request_id,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMs is the request processing time in milliseconds
	QueryTimeMs int64 `json:"query_time_ms"`

	// RequestID is the unique request identifier for tracing
	RequestID string `json:"request_id,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// ResponseWriter provides methods for writing standardized API responses.
type ResponseWriter struct {
	w         http.ResponseWriter
	r         *http.Request
	startTime time.Time
}

// NewResponseWriter creates a new response writer.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{
		w:         w,
		r:         r,
		startTime: time.Now(),
	}
}

// OK writes a successful response with data.
func (rw *ResponseWriter) OK(data interface{}) {
	rw.writeJSON(http.StatusOK, Response{
		Status:   "ok",
		Data:     data,
		Metadata: rw.metadata(),
	})
}

// Error writes an error response with the given status code.
func (rw *ResponseWriter) Error(statusCode int, code, message string) {
	rw.writeJSON(statusCode, Response{
		Status: "error",
		Error: &ResponseError{
			Code:      code,
			Message:   message,
			RequestID: logging.RequestIDFromContext(rw.r.Context()),
		},
		Metadata: rw.metadata(),
	})
}

// BadRequest writes a 400 Bad Request error.
func (rw *ResponseWriter) BadRequest(message string) {
	rw.Error(http.StatusBadRequest, ErrCodeBadRequest, message)
}

// Unauthorized writes a 401 Unauthorized error.
func (rw *ResponseWriter) Unauthorized(message string) {
	rw.w.Header().Set("WWW-Authenticate", `Bearer realm="homepick"`)
	rw.Error(http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// NotFound writes a 404 Not Found error.
func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError writes a 500 Internal Server Error.
func (rw *ResponseWriter) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, message)
}

func (rw *ResponseWriter) metadata() *Metadata {
	return &Metadata{
		Timestamp:   time.Now(),
		QueryTimeMs: time.Since(rw.startTime).Milliseconds(),
		RequestID:   logging.RequestIDFromContext(rw.r.Context()),
	}
}

// writeJSON writes a JSON response with proper headers.
func (rw *ResponseWriter) writeJSON(statusCode int, resp Response) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(statusCode)

	if err := json.NewEncoder(rw.w).Encode(resp); err != nil {
		logger := logging.WithComponent("api")
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}

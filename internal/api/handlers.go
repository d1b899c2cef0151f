// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/dwkim-lab/homepick/internal/engine"
	"github.com/dwkim-lab/homepick/internal/logging"
	"github.com/dwkim-lab/homepick/internal/models"
	"github.com/dwkim-lab/homepick/internal/policy"
)

// maxTasteID bounds the taste profile identifier space.
const maxTasteID = 120

// maxRequestBody caps request bodies at 1 MiB. Profiles and policy
// overrides are small; anything larger is malformed or hostile.
const maxRequestBody = 1 << 20

// Handler owns the HTTP handlers for the recommendation API.
type Handler struct {
	engine   *engine.Engine
	registry *policy.Registry
	logger   zerolog.Logger
}

// NewHandler creates the API handler set.
func NewHandler(eng *engine.Engine, registry *policy.Registry) *Handler {
	return &Handler{
		engine:   eng,
		registry: registry,
		logger:   logging.WithComponent("api"),
	}
}

// recommendRequest is a user profile plus request-level knobs.
type recommendRequest struct {
	models.UserProfile
	Limit int `json:"limit,omitempty"`
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, ok := h.decodeProfile(rw, r)
	if !ok {
		return
	}

	result, err := h.engine.Recommend(r.Context(), &req.UserProfile, req.TasteID, req.Limit)
	if err != nil {
		h.logger.Error().Err(err).Int("taste_id", req.TasteID).Msg("Recommendation failed")
		rw.InternalError("추천 생성에 실패했습니다.")
		return
	}

	rw.OK(result)
}

// Playbook handles POST /api/v1/recommendations/playbook.
func (h *Handler) Playbook(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, ok := h.decodeProfile(rw, r)
	if !ok {
		return
	}

	result, err := h.engine.Playbook(r.Context(), &req.UserProfile, req.TasteID)
	if err != nil {
		h.logger.Error().Err(err).Int("taste_id", req.TasteID).Msg("Playbook recommendation failed")
		rw.InternalError("추천 생성에 실패했습니다.")
		return
	}

	rw.OK(result)
}

// GetPolicy handles GET /api/v1/policies/{tasteID}. It returns the policy
// the engine would use for the taste, including its resolution source.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	tasteID, ok := tasteIDParam(rw, r)
	if !ok {
		return
	}

	rw.OK(h.registry.ResolveFor(tasteID, nil))
}

// PutPolicy handles PUT /api/v1/policies/{tasteID}. The saved override
// becomes the first resolution layer for the taste.
func (h *Handler) PutPolicy(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	tasteID, ok := tasteIDParam(rw, r)
	if !ok {
		return
	}

	var pol policy.ScoringPolicy
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&pol); err != nil {
		rw.BadRequest("잘못된 요청 형식입니다.")
		return
	}
	if len(pol.Weights) == 0 {
		rw.BadRequest("정책에 weights가 필요합니다.")
		return
	}

	if err := h.registry.Save(tasteID, &pol); err != nil {
		h.logger.Error().Err(err).Int("taste_id", tasteID).Msg("Policy save failed")
		rw.InternalError("정책 저장에 실패했습니다.")
		return
	}

	h.logger.Info().Int("taste_id", tasteID).Str("logic_id", pol.LogicID).Msg("Policy override saved")
	rw.OK(&pol)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(map[string]string{"status": "healthy"})
}

// decodeProfile decodes and validates the recommendation request body.
// Validation failures are written to the client with the original Korean
// message.
func (h *Handler) decodeProfile(rw *ResponseWriter, r *http.Request) (*recommendRequest, bool) {
	var req recommendRequest
	r.Body = http.MaxBytesReader(rw.w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("잘못된 요청 형식입니다.")
		return nil, false
	}
	if err := req.Validate(); err != nil {
		rw.BadRequest(err.Error())
		return nil, false
	}
	return &req, true
}

// tasteIDParam parses and bounds-checks the {tasteID} route parameter.
func tasteIDParam(rw *ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "tasteID")
	tasteID, err := strconv.Atoi(raw)
	if err != nil || tasteID < 1 || tasteID > maxTasteID {
		rw.BadRequest("유효하지 않은 taste_id: " + raw + " (valid: 1-120)")
		return 0, false
	}
	return tasteID, true
}

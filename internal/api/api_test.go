// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dwkim-lab/homepick/internal/engine"
	"github.com/dwkim-lab/homepick/internal/models"
	"github.com/dwkim-lab/homepick/internal/policy"
)

type stubCatalog struct {
	products []*models.Product
}

func (s *stubCatalog) Products(_ context.Context, _ []string) ([]*models.Product, error) {
	return s.products, nil
}

func testProducts() []*models.Product {
	return []*models.Product{
		{
			ID: 1, Name: "올레드 TV 65형", MainCategory: "TV", Category: "TV",
			Price: 3_200_000, DiscountPrice: 2_800_000, IsActive: true,
			ReviewRating: 4.7, ReviewCount: 900,
			Specs:        map[string]string{"해상도": "4K", "화면크기": "65인치"},
		},
		{
			ID: 2, Name: "디오스 오브제컬렉션 냉장고", MainCategory: "냉장고", Category: "KITCHEN",
			Price: 2_900_000, IsActive: true,
			ReviewRating: 4.8, ReviewCount: 1500,
			Specs:        map[string]string{"용량": "870L", "에너지등급": "1등급"},
		},
		{
			ID: 3, Name: "휘센 에어컨 2in1", MainCategory: "에어컨", Category: "AIR",
			Price: 2_400_000, IsActive: true,
			ReviewRating: 4.5, ReviewCount: 600,
			Specs:        map[string]string{"냉방면적": "58.5㎡"},
		},
		{
			ID: 4, Name: "세탁기 드럼 21kg", MainCategory: "세탁기", Category: "LIVING",
			Price: 2_100_000, IsActive: true,
			ReviewRating: 4.6, ReviewCount: 1100,
			Specs:        map[string]string{"세탁용량": "21kg"},
		},
	}
}

func testServer(t *testing.T, cfg RouterConfig) (http.Handler, *policy.Registry) {
	t.Helper()
	registry := policy.NewRegistry(policy.NewFileStore(t.TempDir()), nil, nil)
	eng := engine.New(&stubCatalog{products: testProducts()}, registry, nil, nil)
	return NewRouter(NewHandler(eng, registry), cfg), registry
}

func validProfile() map[string]interface{} {
	return map[string]interface{}{
		"taste_id":       7,
		"vibe":           "modern",
		"household_size": 4,
		"housing_type":   "apartment",
		"pyung":          34,
		"priority":       []string{"tech"},
		"budget_level":   "high",
		"categories":     []string{"TV", "KITCHEN", "AIR", "LIVING"},
		"media":          "ott",
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}, header map[string]string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response envelope: %v (body %q)", err, rec.Body.String())
		}
	}
	return rec, resp
}

func TestHealthz(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	rec, resp := doJSON(t, handler, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "ok" {
		t.Errorf("envelope status = %q, want ok", resp.Status)
	}
	if resp.Metadata == nil || resp.Metadata.Timestamp.IsZero() {
		t.Error("expected metadata with timestamp")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_active_requests") {
		t.Error("expected api_active_requests in exposition output")
	}
}

func TestRecommendEndpoint(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/recommendations", validProfile(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if resp.Status != "ok" {
		t.Fatalf("envelope status = %q, want ok", resp.Status)
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshaling data: %v", err)
	}
	var result models.RecommendationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if !result.Success {
		t.Error("result.Success = false, want true")
	}
	if result.Count == 0 || len(result.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	if result.Recommendations[0].Rank != 1 {
		t.Errorf("first rank = %d, want 1", result.Recommendations[0].Rank)
	}
}

func TestRecommendValidationError(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	profile := validProfile()
	delete(profile, "budget_level")

	rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/recommendations", profile, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeBadRequest {
		t.Fatalf("error = %+v, want code BAD_REQUEST", resp.Error)
	}
	if resp.Error.Message != "필수 필드 누락: budget_level" {
		t.Errorf("message = %q, want 필수 필드 누락: budget_level", resp.Error.Message)
	}
}

func TestRecommendMalformedBody(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlaybookEndpoint(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/recommendations/playbook", validProfile(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	raw, _ := json.Marshal(resp.Data)
	var result models.RecommendationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if !result.Success {
		t.Fatal("result.Success = false, want true")
	}
	for i, item := range result.Recommendations {
		if item.Breakdown == nil {
			t.Errorf("item %d: missing score breakdown", i)
		}
		if item.Explanation == nil {
			t.Errorf("item %d: missing explanation", i)
		}
	}
}

func TestGetPolicy(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	rec, resp := doJSON(t, handler, http.MethodGet, "/api/v1/policies/7", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	raw, _ := json.Marshal(resp.Data)
	var pol policy.ScoringPolicy
	if err := json.Unmarshal(raw, &pol); err != nil {
		t.Fatalf("decoding policy: %v", err)
	}
	if pol.Source != policy.SourceDefault {
		t.Errorf("source = %q, want %q", pol.Source, policy.SourceDefault)
	}
	if len(pol.Weights) == 0 {
		t.Error("expected non-empty weights")
	}
}

func TestGetPolicyInvalidID(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	for _, path := range []string{
		"/api/v1/policies/abc",
		"/api/v1/policies/0",
		"/api/v1/policies/999",
	} {
		rec, _ := doJSON(t, handler, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func testPolicyBody() map[string]interface{} {
	return map[string]interface{}{
		"logic_id": "test_override",
		"weights": map[string]map[string]float64{
			"TV": {"resolution": 0.6, "price_match": 0.4},
		},
	}
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestPutPolicyRequiresToken(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{JWTSecret: "test-secret"})

	rec, resp := doJSON(t, handler, http.MethodPut, "/api/v1/policies/7", testPolicyBody(), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeUnauthorized {
		t.Errorf("error = %+v, want code UNAUTHORIZED", resp.Error)
	}

	rec, _ = doJSON(t, handler, http.MethodPut, "/api/v1/policies/7", testPolicyBody(),
		map[string]string{"Authorization": "Bearer not-a-token"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", rec.Code)
	}
}

func TestPutPolicyRejectsWrongSecret(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{JWTSecret: "right-secret"})

	token := signToken(t, "wrong-secret")
	rec, _ := doJSON(t, handler, http.MethodPut, "/api/v1/policies/7", testPolicyBody(),
		map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPutPolicySavesOverride(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{JWTSecret: "test-secret"})

	token := signToken(t, "test-secret")
	rec, _ := doJSON(t, handler, http.MethodPut, "/api/v1/policies/7", testPolicyBody(),
		map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	// The override becomes the first resolution layer.
	rec, resp := doJSON(t, handler, http.MethodGet, "/api/v1/policies/7", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	raw, _ := json.Marshal(resp.Data)
	var pol policy.ScoringPolicy
	if err := json.Unmarshal(raw, &pol); err != nil {
		t.Fatalf("decoding policy: %v", err)
	}
	if pol.Source != policy.SourceTasteFile {
		t.Errorf("source = %q, want %q", pol.Source, policy.SourceTasteFile)
	}
	if pol.LogicID != "test_override" {
		t.Errorf("logic_id = %q, want test_override", pol.LogicID)
	}
}

func TestPutPolicyOpenWithoutSecret(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	rec, _ := doJSON(t, handler, http.MethodPut, "/api/v1/policies/7", testPolicyBody(), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 in development mode", rec.Code)
	}
}

func TestPutPolicyRejectsEmptyWeights(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	rec, _ := doJSON(t, handler, http.MethodPut, "/api/v1/policies/7",
		map[string]interface{}{"logic_id": "empty"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{})

	rec, resp := doJSON(t, handler, http.MethodGet, "/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Status != "error" || resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("envelope = %+v, want NOT_FOUND error", resp)
	}
}

func TestRateLimitOnAPIRoutes(t *testing.T) {
	handler, _ := testServer(t, RouterConfig{RateLimitRPS: 1, RateLimitBurst: 1})

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/v1/policies/7", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/v1/policies/7", nil, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}

	// Probe routes stay reachable when the API budget is spent.
	rec, _ = doJSON(t, handler, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}

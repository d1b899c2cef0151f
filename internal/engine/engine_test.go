// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dwkim-lab/homepick/internal/models"
	"github.com/dwkim-lab/homepick/internal/policy"
)

// stubCatalog returns a fixed snapshot, or an error when set.
type stubCatalog struct {
	products []*models.Product
	err      error
}

func (s *stubCatalog) Products(_ context.Context, _ []string) ([]*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func newTestEngine(t *testing.T, products []*models.Product) *Engine {
	t.Helper()
	registry := policy.NewRegistry(policy.NewFileStore(t.TempDir()), nil, nil)
	return New(&stubCatalog{products: products}, registry, nil, nil)
}

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		TasteID:       3,
		Vibe:          "modern",
		HouseholdSize: 4,
		HousingType:   "apartment",
		Pyung:         35,
		Priority:      []string{"tech", "value"},
		BudgetLevel:   "high",
		Categories:    []string{"TV", "KITCHEN", "LIVING", "AIR"},
		Cooking:       "often",
		Laundry:       "daily",
		Media:         "ott",
	}
}

func activeProduct(id int64, name, mainCategory string, price int64, specs map[string]string) *models.Product {
	if specs == nil {
		specs = map[string]string{"색상": "화이트"}
	}
	return &models.Product{
		ID:           id,
		Name:         name,
		MainCategory: mainCategory,
		Category:     mainCategory,
		Price:        price,
		ReviewRating: 4.6,
		ReviewCount:  250,
		Specs:        specs,
		IsActive:     true,
	}
}

func testCatalogProducts() []*models.Product {
	return []*models.Product{
		activeProduct(1, "LG 올레드 evo TV 65", "TV", 3_200_000, map[string]string{
			"해상도": "3840 x 2160", "주사율": "120Hz", "패널 크기": "65인치",
		}),
		activeProduct(2, "LG QNED TV 55", "TV", 2_400_000, map[string]string{
			"해상도": "3840 x 2160", "주사율": "60Hz", "패널 크기": "55인치",
		}),
		activeProduct(3, "LG 디오스 냉장고 870L", "냉장고", 3_400_000, map[string]string{
			"총 용량": "870L", "에너지등급": "1등급",
		}),
		activeProduct(4, "LG 디오스 오브제컬렉션 냉장고 832L", "냉장고", 4_100_000, map[string]string{
			"총 용량": "832L", "에너지등급": "1등급",
		}),
		activeProduct(5, "LG 일반냉장고 462L", "냉장고", 2_100_000, map[string]string{
			"총 용량": "462L", "에너지등급": "2등급",
		}),
		activeProduct(6, "LG 컨버터블 냉동고 321L", "냉장고", 2_050_000, map[string]string{
			"총 용량": "321L",
		}),
		activeProduct(7, "LG 휘센 타워 에어컨", "에어컨", 2_900_000, map[string]string{
			"냉방 면적": "58.5㎡",
		}),
		activeProduct(8, "LG 트롬 세탁기 21kg", "세탁기", 2_150_000, map[string]string{
			"세탁 용량": "21kg",
		}),
		activeProduct(9, "LG 코드제로 A9", "청소기", 2_050_000, map[string]string{
			"흡입력": "200W",
		}),
		// inactive, must never surface
		{
			ID: 10, Name: "LG 단종 TV", MainCategory: "TV", Price: 2_500_000,
			Specs: map[string]string{"해상도": "3840 x 2160"}, IsActive: false,
		},
		// below the high budget band, must never surface
		activeProduct(11, "LG 울트라 TV 43", "TV", 650_000, map[string]string{
			"해상도": "3840 x 2160",
		}),
	}
}

func TestRecommendValidation(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	profile := testProfile()
	profile.BudgetLevel = ""

	if _, err := eng.Recommend(context.Background(), profile, 3, 3); err == nil {
		t.Fatal("Recommend() with missing budget_level: expected error")
	}
	if _, err := eng.Playbook(context.Background(), profile, 3); err == nil {
		t.Fatal("Playbook() with missing budget_level: expected error")
	}
}

func TestRecommendCatalogError(t *testing.T) {
	registry := policy.NewRegistry(policy.NewFileStore(t.TempDir()), nil, nil)
	eng := New(&stubCatalog{err: errors.New("breaker open")}, registry, nil, nil)

	if _, err := eng.Recommend(context.Background(), testProfile(), 3, 3); err == nil {
		t.Fatal("Recommend() with failing catalog: expected error")
	}
}

func TestRecommendNoCandidates(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	profile := testProfile()
	profile.Categories = []string{"AI"} // nothing in the snapshot matches

	result, err := eng.Recommend(context.Background(), profile, 3, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
	if result.Count != 0 || len(result.Recommendations) != 0 {
		t.Errorf("Count = %d, len = %d, want 0", result.Count, len(result.Recommendations))
	}
	if result.Message != "조건에 맞는 제품이 없습니다." {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestRecommendTopN(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	result, err := eng.Recommend(context.Background(), testProfile(), 3, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Success = false, message = %q", result.Message)
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("len(Recommendations) = %d, want 3", len(result.Recommendations))
	}
	if result.Count != len(result.Recommendations) {
		t.Errorf("Count = %d, want %d", result.Count, len(result.Recommendations))
	}

	for i, rec := range result.Recommendations {
		if rec.Rank != i+1 {
			t.Errorf("Recommendations[%d].Rank = %d, want %d", i, rec.Rank, i+1)
		}
		if rec.Score < 0 || rec.Score > 1 {
			t.Errorf("Recommendations[%d].Score = %v, want within [0,1]", i, rec.Score)
		}
		if rec.Reason == "" {
			t.Errorf("Recommendations[%d].Reason is empty", i)
		}
		if i > 0 && rec.Score > result.Recommendations[i-1].Score {
			t.Errorf("scores not descending at index %d: %v > %v",
				i, rec.Score, result.Recommendations[i-1].Score)
		}
	}
}

func TestRecommendDefaultLimit(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	result, err := eng.Recommend(context.Background(), testProfile(), 3, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Recommendations) != DefaultLimit {
		t.Errorf("len(Recommendations) = %d, want %d", len(result.Recommendations), DefaultLimit)
	}
}

func TestRecommendExcludesInactiveAndOffBudget(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	result, err := eng.Recommend(context.Background(), testProfile(), 3, 50)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.ProductID == 10 {
			t.Error("inactive product surfaced")
		}
		if rec.ProductID == 11 {
			t.Error("product below the budget band surfaced")
		}
	}
}

func TestRecommendDeterministic(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	first, err := eng.Recommend(context.Background(), testProfile(), 3, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := eng.Recommend(context.Background(), testProfile(), 3, 5)
		if err != nil {
			t.Fatalf("Recommend() run %d error = %v", i, err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestRecommendTieBreakByID(t *testing.T) {
	// identical twins differing only in ID
	products := []*models.Product{
		activeProduct(22, "LG QNED TV 55 B", "TV", 2_400_000, map[string]string{
			"해상도": "3840 x 2160", "주사율": "60Hz",
		}),
		activeProduct(21, "LG QNED TV 55 A", "TV", 2_400_000, map[string]string{
			"해상도": "3840 x 2160", "주사율": "60Hz",
		}),
	}
	eng := newTestEngine(t, products)

	result, err := eng.Recommend(context.Background(), testProfile(), 3, 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("len(Recommendations) = %d, want 2", len(result.Recommendations))
	}
	if result.Recommendations[0].ProductID != 21 {
		t.Errorf("tie broken wrong: first ProductID = %d, want 21", result.Recommendations[0].ProductID)
	}
}

func TestPlaybookBundle(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	result, err := eng.Playbook(context.Background(), testProfile(), 3)
	if err != nil {
		t.Fatalf("Playbook() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Success = false, message = %q", result.Message)
	}
	if result.UserProfileSummary == "" {
		t.Error("UserProfileSummary is empty")
	}

	// global ranks contiguous from 1
	for i, rec := range result.Recommendations {
		if rec.Rank != i+1 {
			t.Errorf("Recommendations[%d].Rank = %d, want %d", i, rec.Rank, i+1)
		}
		if rec.ProductType == "" || rec.ProductType == "기타" {
			t.Errorf("Recommendations[%d].ProductType = %q", i, rec.ProductType)
		}
		if rec.Breakdown == nil {
			t.Errorf("Recommendations[%d].Breakdown is nil", i)
		}
		if rec.Explanation == nil {
			t.Errorf("Recommendations[%d].Explanation is nil", i)
		}
	}

	// per-type slots hold at most three, ordered by total within the slot
	byType := make(map[string][]models.Recommendation)
	for _, rec := range result.Recommendations {
		byType[rec.ProductType] = append(byType[rec.ProductType], rec)
	}
	if n := len(byType["냉장고"]); n != 3 {
		t.Errorf("냉장고 slot = %d items, want 3 (four candidates)", n)
	}
	for productType, recs := range byType {
		for i, rec := range recs {
			if want := models.RankLabel(i + 1); rec.RankLabel != want {
				t.Errorf("%s[%d].RankLabel = %q, want %q", productType, i, rec.RankLabel, want)
			}
			if i > 0 && rec.Breakdown.Total > recs[i-1].Breakdown.Total {
				t.Errorf("%s slot not sorted by total at index %d", productType, i)
			}
		}
	}

	// required types come before optional ones
	required, _ := PlaybookTypes(testProfile())
	requiredSet := make(map[string]bool, len(required))
	for _, rt := range required {
		requiredSet[rt] = true
	}
	sawOptional := false
	for _, rec := range result.Recommendations {
		if !requiredSet[rec.ProductType] {
			sawOptional = true
		} else if sawOptional {
			t.Fatalf("required type %q after an optional type", rec.ProductType)
		}
	}
}

func TestPlaybookDedup(t *testing.T) {
	// same name under two IDs within one type pool
	products := []*models.Product{
		activeProduct(31, "LG 디오스 냉장고 870L", "냉장고", 3_400_000, map[string]string{"총 용량": "870L"}),
		activeProduct(32, "LG 디오스 냉장고 870L", "냉장고", 3_450_000, map[string]string{"총 용량": "870L"}),
		activeProduct(33, "LG 일반냉장고 462L", "냉장고", 2_100_000, map[string]string{"총 용량": "462L"}),
	}
	eng := newTestEngine(t, products)

	result, err := eng.Playbook(context.Background(), testProfile(), 3)
	if err != nil {
		t.Fatalf("Playbook() error = %v", err)
	}

	seenNames := make(map[string]bool)
	seenIDs := make(map[int64]bool)
	for _, rec := range result.Recommendations {
		if seenNames[rec.Name] {
			t.Errorf("duplicate name %q in response", rec.Name)
		}
		if seenIDs[rec.ProductID] {
			t.Errorf("duplicate product ID %d in response", rec.ProductID)
		}
		seenNames[rec.Name] = true
		seenIDs[rec.ProductID] = true
	}
}

func TestPlaybookSlotRankAfterDedup(t *testing.T) {
	// One name classifies into two slots: by bucket fallback it is a TV in
	// the TV slot and a dishwasher in the dishwasher slot. The TV slot runs
	// first and claims the name, so the dishwasher slot's best item is
	// skipped and the survivor must still be labelled first in its slot.
	shared := "모던 식기 살균장"
	specs := map[string]string{"색상": "화이트"}
	products := []*models.Product{
		{
			ID: 41, Name: shared, MainCategory: "TV", Category: "TV",
			Price: 2_500_000, ReviewRating: 4.6, ReviewCount: 250,
			Specs: specs, IsActive: true,
		},
		{
			ID: 42, Name: shared, MainCategory: "식기세척기", Category: "KITCHEN",
			Price: 2_500_000, ReviewRating: 4.9, ReviewCount: 1500,
			Specs: specs, IsActive: true,
		},
		{
			ID: 43, Name: "모던 식기세척기 살균장", MainCategory: "식기세척기", Category: "KITCHEN",
			Price: 2_500_000, ReviewRating: 4.0, ReviewCount: 50,
			Specs: specs, IsActive: true,
		},
	}
	eng := newTestEngine(t, products)

	result, err := eng.Playbook(context.Background(), testProfile(), 3)
	if err != nil {
		t.Fatalf("Playbook() error = %v", err)
	}

	var dishwasher []models.Recommendation
	for _, rec := range result.Recommendations {
		if rec.ProductType == "식기세척기" {
			dishwasher = append(dishwasher, rec)
		}
	}
	if len(dishwasher) != 1 {
		t.Fatalf("식기세척기 slot = %d items, want 1", len(dishwasher))
	}
	if dishwasher[0].ProductID != 43 {
		t.Fatalf("식기세척기 survivor = product %d, want 43", dishwasher[0].ProductID)
	}
	if want := models.RankLabel(1); dishwasher[0].RankLabel != want {
		t.Errorf("RankLabel = %q, want %q", dishwasher[0].RankLabel, want)
	}
}

func TestPlaybookNoCandidates(t *testing.T) {
	eng := newTestEngine(t, nil)

	result, err := eng.Playbook(context.Background(), testProfile(), 3)
	if err != nil {
		t.Fatalf("Playbook() error = %v", err)
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
	if result.Message != "조건에 맞는 제품이 없습니다." {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestPlaybookDeterministic(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	first, err := eng.Playbook(context.Background(), testProfile(), 3)
	if err != nil {
		t.Fatalf("Playbook() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := eng.Playbook(context.Background(), testProfile(), 3)
		if err != nil {
			t.Fatalf("Playbook() run %d error = %v", i, err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestPlaybookCategoryDisplay(t *testing.T) {
	eng := newTestEngine(t, testCatalogProducts())

	result, err := eng.Playbook(context.Background(), testProfile(), 3)
	if err != nil {
		t.Fatalf("Playbook() error = %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.MainCategory == "냉장고" && rec.CategoryDisplay != "주방가전" {
			t.Errorf("냉장고 CategoryDisplay = %q, want 주방가전", rec.CategoryDisplay)
		}
		if rec.MainCategory == "TV" && rec.CategoryDisplay != "TV/오디오" {
			t.Errorf("TV CategoryDisplay = %q, want TV/오디오", rec.CategoryDisplay)
		}
	}
}

// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package policy

import (
	"fmt"
	"strings"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/models"
)

// baseWeights are the dynamic-synthesis starting tables, keyed by bucket.
// They are broader than the stock categoryWeights so every attribute stays
// adjustable by the onboarding answers.
var baseWeights = map[string]map[string]float64{
	catalog.BucketTV: {
		"resolution":        0.15,
		"brightness":        0.10,
		"refresh_rate":      0.10,
		"panel_type":        0.10,
		"power_consumption": 0.10,
		"size":              0.10,
		"price_match":       0.15,
		"features":          0.10,
		"design":            0.10,
	},
	catalog.BucketKitchen: {
		"capacity":          0.20,
		"energy_efficiency": 0.15,
		"features":          0.15,
		"size":              0.10,
		"price_match":       0.15,
		"design":            0.15,
		"resolution":        0.05,
		"refresh_rate":      0.05,
	},
	catalog.BucketLiving: {
		"audio_quality":     0.20,
		"connectivity":      0.15,
		"power_consumption": 0.10,
		"size":              0.10,
		"price_match":       0.15,
		"features":          0.15,
		"design":            0.10,
		"resolution":        0.05,
	},
	"default": {
		"price_match":       0.25,
		"features":          0.20,
		"energy_efficiency": 0.15,
		"size":              0.15,
		"design":            0.15,
		"capacity":          0.10,
	},
}

// shiftedBuckets are the buckets the vibe/priority/budget shifts touch.
var shiftedBuckets = []string{catalog.BucketTV, catalog.BucketKitchen, catalog.BucketLiving}

// SynthesizeFor generates a scoring policy from the onboarding answers.
// The bucket weight tables are shifted by vibe, priorities, budget tier,
// household size, floor area and lifestyle answers, normalized, and merged
// over the base policy so every MAIN_CATEGORY keeps a weight row. Bonuses
// and penalties are generated from the same answers.
func SynthesizeFor(tasteID int, profile *models.UserProfile) *ScoringPolicy {
	weights := make(map[string]map[string]float64, len(baseWeights))
	for bucket, table := range baseWeights {
		cw := make(map[string]float64, len(table))
		for attr, w := range table {
			cw[attr] = w
		}
		weights[bucket] = cw
	}

	adjustByVibe(weights, profile.Vibe)
	adjustByPriority(weights, profile.Priority)
	adjustByBudget(weights, profile.BudgetLevel)
	adjustByHouseholdSize(weights, profile.HouseholdSize)
	adjustByPyung(weights, profile.Pyung)
	adjustByLifestyle(weights, profile)

	for _, cw := range weights {
		normalizeL1(cw)
	}

	dynamic := &ScoringPolicy{Weights: weights}
	dynamic.NormalizeWeights()

	merged := BaseFor(tasteID, profile)
	for cat, cw := range dynamic.Weights {
		merged.Weights[cat] = cw
	}

	merged.LogicID = fmt.Sprintf("dynamic_%d", tasteID)
	merged.LogicName = fmt.Sprintf("Dynamic_Scoring_Logic_%03d", tasteID)
	merged.Source = SourceDynamic
	merged.Bonuses = generateBonuses(profile)
	merged.Penalties = generatePenalties(profile)
	return merged
}

func adjustByVibe(weights map[string]map[string]float64, vibe string) {
	v := strings.ToLower(vibe)
	for _, bucket := range shiftedBuckets {
		cw := weights[bucket]
		switch {
		case strings.Contains(v, "modern") || strings.Contains(v, "모던"):
			scale(cw, "design", 1.3)
			scale(cw, "features", 1.2)
			scale(cw, "price_match", 0.8)
		case strings.Contains(v, "classic") || strings.Contains(v, "클래식"):
			scale(cw, "design", 0.9)
			scale(cw, "price_match", 1.2)
			scale(cw, "energy_efficiency", 1.1)
		case strings.Contains(v, "cozy") || strings.Contains(v, "코지"):
			scale(cw, "price_match", 1.3)
			scale(cw, "power_consumption", 1.2)
			scale(cw, "design", 0.9)
		case strings.Contains(v, "luxury") || strings.Contains(v, "럭셔리"):
			scale(cw, "design", 1.5)
			scale(cw, "features", 1.3)
			scale(cw, "price_match", 0.6)
		}
	}
}

func adjustByPriority(weights map[string]map[string]float64, priority []string) {
	joined := strings.ToLower(strings.Join(priority, " "))

	if strings.Contains(joined, "design") || strings.Contains(joined, "디자인") {
		for _, bucket := range shiftedBuckets {
			scale(weights[bucket], "design", 1.5)
		}
		scale(weights[catalog.BucketTV], "panel_type", 1.2)
	}
	if strings.Contains(joined, "tech") || strings.Contains(joined, "ai") || strings.Contains(joined, "스마트") {
		for _, bucket := range shiftedBuckets {
			scale(weights[bucket], "features", 1.5)
		}
		scale(weights[catalog.BucketTV], "resolution", 1.3)
		scale(weights[catalog.BucketTV], "refresh_rate", 1.3)
	}
	if strings.Contains(joined, "value") || strings.Contains(joined, "가성비") || strings.Contains(joined, "실용") {
		for _, bucket := range shiftedBuckets {
			cw := weights[bucket]
			scale(cw, "price_match", 1.5)
			scale(cw, "energy_efficiency", 1.2)
			scale(cw, "design", 0.8)
		}
	}
	if strings.Contains(joined, "eco") || strings.Contains(joined, "친환경") || strings.Contains(joined, "에너지") {
		for _, bucket := range shiftedBuckets {
			cw := weights[bucket]
			scale(cw, "energy_efficiency", 1.5)
			scale(cw, "power_consumption", 1.5)
			scale(cw, "price_match", 1.1)
		}
	}
}

func adjustByBudget(weights map[string]map[string]float64, budgetLevel string) {
	b := strings.ToLower(budgetLevel)
	for _, bucket := range shiftedBuckets {
		cw := weights[bucket]
		switch {
		case strings.Contains(b, "low") || strings.Contains(b, "낮") || strings.Contains(b, "실속"):
			scale(cw, "price_match", 1.5)
			scale(cw, "design", 0.7)
			scale(cw, "features", 0.8)
		case strings.Contains(b, "high") || strings.Contains(b, "높") || strings.Contains(b, "고급"):
			scale(cw, "design", 1.3)
			scale(cw, "features", 1.3)
			scale(cw, "price_match", 0.7)
		}
	}
}

func adjustByHouseholdSize(weights map[string]map[string]float64, householdSize int) {
	switch {
	case householdSize >= 4:
		scale(weights[catalog.BucketKitchen], "capacity", 1.5)
		scale(weights[catalog.BucketKitchen], "features", 1.2)
		scale(weights[catalog.BucketLiving], "size", 1.2)
	case householdSize == 1:
		scale(weights[catalog.BucketKitchen], "capacity", 0.7)
		scale(weights[catalog.BucketKitchen], "size", 1.3)
		scale(weights[catalog.BucketTV], "size", 0.9)
		scale(weights[catalog.BucketLiving], "size", 0.9)
	}
}

func adjustByPyung(weights map[string]map[string]float64, pyung int) {
	switch {
	case pyung > 0 && pyung <= 20:
		scale(weights[catalog.BucketTV], "size", 0.8)
		scale(weights[catalog.BucketKitchen], "size", 1.3)
		scale(weights[catalog.BucketKitchen], "capacity", 0.8)
		scale(weights[catalog.BucketLiving], "size", 0.8)
	case pyung >= 40:
		scale(weights[catalog.BucketTV], "size", 1.3)
		scale(weights[catalog.BucketKitchen], "capacity", 1.3)
		scale(weights[catalog.BucketLiving], "size", 1.3)
	}
}

func adjustByLifestyle(weights map[string]map[string]float64, profile *models.UserProfile) {
	switch profile.Cooking {
	case "daily", "high":
		scale(weights[catalog.BucketKitchen], "features", 1.3)
		scale(weights[catalog.BucketKitchen], "capacity", 1.2)
	case "rarely":
		scale(weights[catalog.BucketKitchen], "capacity", 0.8)
		scale(weights[catalog.BucketKitchen], "price_match", 1.2)
	}

	if profile.Laundry == "daily" {
		scale(weights[catalog.BucketLiving], "features", 1.2)
	}

	switch profile.Media {
	case "heavy", "gaming", "ott":
		scale(weights[catalog.BucketTV], "resolution", 1.4)
		scale(weights[catalog.BucketTV], "brightness", 1.3)
		scale(weights[catalog.BucketTV], "refresh_rate", 1.3)
	case "minimal", "none":
		scale(weights[catalog.BucketTV], "price_match", 1.2)
		scale(weights[catalog.BucketTV], "resolution", 0.8)
	}
}

func generateBonuses(profile *models.UserProfile) []Adjustment {
	var bonuses []Adjustment
	joined := strings.ToLower(strings.Join(profile.Priority, " "))

	if strings.Contains(joined, "design") || strings.Contains(joined, "디자인") {
		bonuses = append(bonuses,
			Adjustment{
				Condition: "OBJET 또는 오브제 라인업",
				Bonus:     0.15,
				Reason:    "디자인 우선순위에 부합",
			},
			Adjustment{
				Condition: "SIGNATURE 또는 시그니처 라인업",
				Bonus:     0.12,
				Reason:    "프리미엄 디자인",
			})
	}
	if strings.Contains(joined, "tech") || strings.Contains(joined, "ai") || strings.Contains(joined, "스마트") {
		bonuses = append(bonuses, Adjustment{
			Condition: "AI 또는 스마트 기능 포함",
			Bonus:     0.15,
			Reason:    "기술 우선순위에 부합",
		})
	}
	if profile.HouseholdSize >= 4 {
		bonuses = append(bonuses, Adjustment{
			Condition: "대용량 제품 (800L 이상 냉장고, 20kg 이상 세탁기)",
			Bonus:     0.12,
			Reason:    "가족 구성에 적합한 용량",
		})
	}
	b := strings.ToLower(profile.BudgetLevel)
	if strings.Contains(b, "high") || strings.Contains(b, "고급") {
		bonuses = append(bonuses, Adjustment{
			Condition: "프리미엄 기능 포함",
			Bonus:     0.10,
			Reason:    "고급형 예산에 적합",
		})
	}
	return bonuses
}

func generatePenalties(profile *models.UserProfile) []Adjustment {
	var penalties []Adjustment

	if profile.HouseholdSize >= 4 {
		penalties = append(penalties, Adjustment{
			Condition: "소형 제품 (300L 이하 냉장고, 미니 세탁기 등)",
			Penalty:   -0.2,
			Reason:    "가족 구성에 부적합한 용량",
		})
	}
	if profile.Pyung > 0 && profile.Pyung <= 20 {
		penalties = append(penalties, Adjustment{
			Condition: "대형 제품 (75인치 이상 TV, 대형 가전)",
			Penalty:   -0.15,
			Reason:    "주거 공간에 부적합한 크기",
		})
	}
	b := strings.ToLower(profile.BudgetLevel)
	if strings.Contains(b, "low") || strings.Contains(b, "실속") {
		penalties = append(penalties, Adjustment{
			Condition: "고가 제품 (프리미엄 라인업)",
			Penalty:   -0.15,
			Reason:    "예산 범위를 초과",
		})
	}
	return penalties
}

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

// categoryWeights are the stock attribute weights per bucket. Buckets
// without a row (AIR, AI, OBJET, SIGNATURE) use the default row.
var categoryWeights = map[string]map[string]float64{
	catalog.BucketTV: {
		"resolution":        0.25,
		"brightness":        0.15,
		"refresh_rate":      0.15,
		"panel_type":        0.10,
		"power_consumption": 0.10,
		"size":              0.10,
		"price_match":       0.15,
	},
	catalog.BucketLiving: {
		"audio_quality":     0.25,
		"connectivity":      0.15,
		"power_consumption": 0.10,
		"size":              0.10,
		"price_match":       0.20,
		"features":          0.20,
	},
	catalog.BucketKitchen: {
		"capacity":          0.25,
		"energy_efficiency": 0.20,
		"features":          0.15,
		"size":              0.10,
		"price_match":       0.20,
		"design":            0.10,
	},
	"default": {
		"price_match":       0.30,
		"features":          0.25,
		"energy_efficiency": 0.20,
		"size":              0.15,
		"design":            0.10,
	},
}

// DefaultWeights returns a copy of the stock attribute weights for a bucket.
func DefaultWeights(bucket string) map[string]float64 {
	weights, ok := categoryWeights[bucket]
	if !ok {
		weights = categoryWeights["default"]
	}
	out := make(map[string]float64, len(weights))
	for attr, w := range weights {
		out[attr] = w
	}
	return out
}

// BaseFor builds the fallback policy for a taste: stock weights for every
// MAIN_CATEGORY, shifted by the profile's vibe, priorities and budget tier,
// then L1-normalized per category. A nil profile yields the unshifted table.
func BaseFor(tasteID int, profile *models.UserProfile) *ScoringPolicy {
	weights := make(map[string]map[string]float64)
	for _, mc := range catalog.AllMainCategories() {
		weights[mc] = DefaultWeights(catalog.Bucket(mc))
	}
	weights["default"] = DefaultWeights("default")

	if profile != nil {
		for _, cw := range weights {
			applyVibeShift(cw, profile.Vibe)
			applyPriorityShift(cw, profile.Priority)
			applyBudgetShift(cw, profile.BudgetLevel)
			normalizeL1(cw)
		}
	}

	return &ScoringPolicy{
		LogicID:   fmt.Sprintf("base_%d", tasteID),
		LogicName: fmt.Sprintf("Base_Logic_%03d", tasteID),
		TasteID:   tasteID,
		Source:    SourceDefault,
		Weights:   weights,
		Filters:   &FilterSet{MustHave: []string{}, ShouldHave: []string{}, Exclude: []string{}},
	}
}

func applyVibeShift(weights map[string]float64, vibe string) {
	switch {
	case strings.Contains(strings.ToLower(vibe), "modern"):
		scale(weights, "design", 1.2)
		scale(weights, "features", 1.1)
	case strings.Contains(strings.ToLower(vibe), "cozy"):
		scale(weights, "price_match", 1.2)
		scale(weights, "power_consumption", 1.1)
	case strings.Contains(strings.ToLower(vibe), "luxury"):
		scale(weights, "design", 1.3)
		scale(weights, "features", 1.2)
	}
}

func applyPriorityShift(weights map[string]float64, priority []string) {
	for _, p := range priority {
		switch strings.ToLower(p) {
		case "design":
			scale(weights, "design", 1.3)
		case "tech", "ai":
			scale(weights, "features", 1.3)
			scale(weights, "resolution", 1.2)
		case "value":
			scale(weights, "price_match", 1.3)
		case "eco":
			scale(weights, "energy_efficiency", 1.3)
			scale(weights, "power_consumption", 1.3)
		}
	}
}

func applyBudgetShift(weights map[string]float64, budgetLevel string) {
	switch {
	case strings.Contains(strings.ToLower(budgetLevel), "low"):
		scale(weights, "price_match", 1.3)
	case strings.Contains(strings.ToLower(budgetLevel), "high"):
		scale(weights, "design", 1.2)
		scale(weights, "features", 1.2)
	}
}

// scale multiplies an attribute weight only if the table carries it.
func scale(weights map[string]float64, attr string, factor float64) {
	if w, ok := weights[attr]; ok {
		weights[attr] = w * factor
	}
}

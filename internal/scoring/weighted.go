// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package scoring

import (
	"strings"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/models"
	"github.com/dwkim-lab/homepick/internal/policy"
)

// priorityMultipliers shift attribute weights for the rank-1 priority.
var priorityMultipliers = map[string]map[string]float64{
	"design": {"design": 1.5, "panel_type": 1.3, "features": 1.2},
	"tech":   {"resolution": 1.5, "refresh_rate": 1.4, "brightness": 1.3, "features": 1.2},
	"eco":    {"energy_efficiency": 1.5, "power_consumption": 1.3},
	"value":  {"price_match": 1.5, "features": 1.2},
}

// Capacity hint keywords scanned in name and spec text.
var (
	largeCapacityKeywords = []string{"대용량", "4인", "5인", "6인", "870L", "900L", "1000L", "LARGE", "XL", "대형"}
	smallCapacityKeywords = []string{"소형", "1인", "300L", "400L", "500L", "SMALL", "S"}
	petHintKeywords       = []string{"펫", "PET", "반려동물", "애완동물", "동물", "털", "냄새"}
	smartKeywords         = []string{"AI", "THINQ", "스마트"}
)

// WeightedScorer is the weighted-average scoring path. A nil policy uses
// the stock bucket weights.
type WeightedScorer struct {
	policy *policy.ScoringPolicy
}

// NewWeightedScorer creates a scorer over a resolved policy.
func NewWeightedScorer(p *policy.ScoringPolicy) *WeightedScorer {
	return &WeightedScorer{policy: p}
}

// Score computes the [0,1] score for a product: the weighted average of the
// bucket's attribute sub-scores, then priority, vibe, household and pet
// shifts and the policy's bonus/penalty rules, clamped.
func (s *WeightedScorer) Score(p *models.Product, profile *models.UserProfile) float64 {
	if len(p.Specs) == 0 {
		return clamp01(ScorePriceMatch(p, profile) * 0.5)
	}

	scores := attributeScores(p, profile)
	weights := s.weightsFor(p)

	priority := ""
	if len(profile.Priority) > 0 {
		priority = strings.ToLower(profile.Priority[0])
	}
	multipliers := priorityMultipliers[priority]

	var total, totalWeight float64
	for attr, weight := range weights {
		sub, ok := scores[attr]
		if !ok {
			continue
		}
		if m, ok := multipliers[attr]; ok {
			weight *= m
		}
		total += sub * weight
		totalWeight += weight
	}

	final := neutral
	if totalWeight > 0 {
		final = total / totalWeight
	}

	final += priorityBonus(priority, scores)
	final += vibeBonus(profile.Vibe, scores["design"])
	final += householdShift(p, profile)
	final += petShift(p, profile)
	final += s.adjustmentDeltas(p, profile)

	return clamp01(final)
}

func (s *WeightedScorer) weightsFor(p *models.Product) map[string]float64 {
	if s.policy != nil {
		if w := s.policy.WeightsFor(p.MainCategory); len(w) > 0 {
			return w
		}
	}
	return policy.DefaultWeights(catalog.Bucket(p.MainCategory))
}

// attributeScores computes the sub-score set appropriate to the product's
// bucket, mirroring the per-bucket attribute selections of the weight
// tables.
func attributeScores(p *models.Product, profile *models.UserProfile) map[string]float64 {
	scores := map[string]float64{
		"price_match": ScorePriceMatch(p, profile),
		"design":      ScoreDesign(p, profile),
		"size":        ScoreSize(p, profile),
	}

	switch catalog.Bucket(p.MainCategory) {
	case catalog.BucketTV:
		scores["resolution"] = ScoreResolution(p)
		scores["brightness"] = ScoreBrightness(p)
		scores["refresh_rate"] = ScoreRefreshRate(p)
		scores["panel_type"] = ScorePanelType(p)
		scores["power_consumption"] = ScorePowerConsumption(p)

	case catalog.BucketLiving:
		scores["audio_quality"] = ScoreAudioQuality(p)
		scores["connectivity"] = ScoreConnectivity(p)
		scores["power_consumption"] = ScorePowerConsumption(p)
		scores["features"] = ScoreFeatures(p, profile)
		if strings.Contains(p.Name, "세탁기") || strings.Contains(p.Name, "건조기") ||
			strings.Contains(strings.ToUpper(p.Name), "워시") {
			scores["capacity"] = ScoreCapacity(p, profile)
		}

	case catalog.BucketKitchen:
		scores["capacity"] = ScoreCapacity(p, profile)
		scores["energy_efficiency"] = ScoreEnergyEfficiency(p)
		scores["features"] = ScoreFeatures(p, profile)

	default:
		scores["features"] = ScoreFeatures(p, profile)
		scores["energy_efficiency"] = ScoreEnergyEfficiency(p)
		if strings.Contains(p.Name, "냉장고") || strings.Contains(p.Name, "냉동고") {
			scores["capacity"] = ScoreCapacity(p, profile)
		}
	}

	return scores
}

// priorityBonus rewards products that excel at the rank-1 priority.
func priorityBonus(priority string, scores map[string]float64) float64 {
	switch priority {
	case "tech":
		tech := (scores["resolution"] + scores["refresh_rate"] +
			scores["brightness"] + scores["features"]) / 4
		if tech > 0.7 {
			return 0.05
		}
	case "design":
		if scores["design"] > 0.7 {
			return 0.05
		}
	case "eco":
		eco := (scores["power_consumption"] + scores["energy_efficiency"]) / 2
		if eco > 0.7 {
			return 0.05
		}
	case "value":
		if scores["price_match"] > 0.7 {
			return 0.05
		}
	}
	return 0
}

func vibeBonus(vibe string, designScore float64) float64 {
	switch strings.ToLower(vibe) {
	case "modern":
		if designScore > 0.8 {
			return 0.03
		}
	case "cozy", "pop":
		if designScore > 0.75 {
			return 0.03
		}
	case "luxury":
		if designScore > 0.85 {
			return 0.05
		}
	}
	return 0
}

// householdShift nudges the score by capacity hints in the product text.
func householdShift(p *models.Product, profile *models.UserProfile) float64 {
	text := strings.ToUpper(p.Name) + " " + catalog.SpecText(p)
	large := containsAny(text, largeCapacityKeywords)
	small := containsAny(text, smallCapacityKeywords)

	switch {
	case profile.HouseholdSize == 1:
		if small {
			return 0.15
		}
		if large {
			return -0.2
		}
	case profile.HouseholdSize == 2:
		if large {
			return -0.05
		}
	case profile.HouseholdSize == 3:
		if large {
			return 0.08
		}
		if small {
			return -0.1
		}
	case profile.HouseholdSize >= 4:
		if large {
			return 0.15
		}
		if small {
			return -0.2
		}
	}
	return 0
}

func petShift(p *models.Product, profile *models.UserProfile) float64 {
	text := strings.ToUpper(p.Name) + " " + catalog.SpecText(p)
	if !containsAny(text, petHintKeywords) {
		return 0
	}
	if profile.HasPet {
		return 0.2
	}
	return -0.1
}

// adjustmentDeltas applies the resolved policy's bonus and penalty rules.
// Conditions are matched by their lineup/feature markers.
func (s *WeightedScorer) adjustmentDeltas(p *models.Product, profile *models.UserProfile) float64 {
	if s.policy == nil {
		return 0
	}

	var delta float64
	for _, adj := range s.policy.Bonuses {
		if adjustmentMatches(adj.Condition, p, profile) {
			delta += adj.Delta()
		}
	}
	for _, adj := range s.policy.Penalties {
		if adjustmentMatches(adj.Condition, p, profile) {
			delta += adj.Delta()
		}
	}
	return delta
}

func adjustmentMatches(condition string, p *models.Product, profile *models.UserProfile) bool {
	cond := strings.ToUpper(condition)
	name := strings.ToUpper(p.Name)
	text := name + " " + catalog.SpecText(p)
	line := designLine(p)

	switch {
	case strings.Contains(cond, "OBJET") || strings.Contains(cond, "오브제"):
		return line == catalog.BucketObjet
	case strings.Contains(cond, "SIGNATURE") || strings.Contains(cond, "시그니처"):
		return line == catalog.BucketSignature
	case strings.Contains(cond, "AI") || strings.Contains(cond, "스마트"):
		return containsAny(name, smartKeywords)
	case strings.Contains(cond, "대용량"):
		return containsAny(text, largeCapacityKeywords)
	case strings.Contains(cond, "소형") || strings.Contains(cond, "미니"):
		return containsAny(text, smallCapacityKeywords)
	case strings.Contains(cond, "대형"):
		return containsAny(text, largeCapacityKeywords)
	case strings.Contains(cond, "프리미엄"):
		return line != "default"
	case strings.Contains(cond, "고가"):
		_, hi := profile.Band()
		return p.EffectivePrice() > hi
	default:
		return false
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

// Package scoring computes product scores: per-attribute sub-scores in
// [0,1], the weighted-average scorer, the 5-component playbook scorer and
// the scenario product-type multipliers. All scoring is deterministic.
package scoring

import (
	"math"
	"strings"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/models"
)

// neutral is the sub-score for attributes that cannot be read.
const neutral = 0.5

// vibeScores maps vibe → design line → design sub-score.
var vibeScores = map[string]map[string]float64{
	"modern": {"OBJET": 1.0, "SIGNATURE": 0.9, "default": 0.7},
	"cozy":   {"OBJET": 0.9, "default": 0.8},
	"pop":    {"OBJET": 1.0, "default": 0.8},
	"luxury": {"SIGNATURE": 1.0, "OBJET": 0.8, "default": 0.6},
}

// featurePetKeywords flag pet-oriented features in name, description or
// spec text.
var featurePetKeywords = []string{
	"펫", "PET", "반려동물", "애완동물", "동물케어", "펫케어", "PET CARE", "동물", "애완",
}

// ScoreResolution grades the 해상도 spec by pixel count.
func ScoreResolution(p *models.Product) float64 {
	v, ok := p.Spec("해상도")
	if !ok {
		return neutral
	}
	w, h := catalog.ParseResolution(v)
	pixels := w * h
	switch {
	case pixels >= 3840*2160:
		return 1.0
	case pixels >= 2560*1440:
		return 0.8
	case pixels >= 1920*1080:
		return 0.6
	case pixels >= 1280*720:
		return 0.4
	default:
		return 0.2
	}
}

// ScoreBrightness grades the typical panel brightness in nits.
func ScoreBrightness(p *models.Product) float64 {
	v, ok := p.Spec("밝기 (Typ.)")
	if !ok {
		return neutral
	}
	nits, ok := catalog.ParseNumber(v)
	if !ok {
		return neutral
	}
	switch {
	case nits >= 1000:
		return 1.0
	case nits >= 700:
		return 0.8
	case nits >= 500:
		return 0.6
	case nits >= 300:
		return 0.4
	default:
		return 0.2
	}
}

// ScoreRefreshRate grades the 주사율 spec in Hz.
func ScoreRefreshRate(p *models.Product) float64 {
	v, ok := p.Spec("주사율")
	if !ok {
		return neutral
	}
	hz, ok := catalog.ParseNumber(v)
	if !ok {
		return neutral
	}
	switch {
	case hz >= 120:
		return 1.0
	case hz >= 100:
		return 0.9
	case hz >= 60:
		return 0.7
	default:
		return 0.4
	}
}

// ScorePanelType grades the panel technology.
func ScorePanelType(p *models.Product) float64 {
	v, _ := p.Spec("패널 타입")
	panel := strings.ToUpper(v)
	switch {
	case strings.Contains(panel, "QD-OLED") || strings.Contains(panel, "QLED"):
		return 0.9
	case strings.Contains(panel, "OLED"):
		return 1.0
	case strings.Contains(panel, "IPS"):
		return 0.7
	case strings.Contains(panel, "VA"):
		return 0.6
	default:
		return 0.5
	}
}

// ScorePowerConsumption grades power draw in watts; lower is better.
func ScorePowerConsumption(p *models.Product) float64 {
	v, ok := p.Spec("전력소비")
	if !ok {
		return neutral
	}
	watts, ok := catalog.ParseWatts(v)
	if !ok {
		return neutral
	}
	switch {
	case watts <= 50:
		return 1.0
	case watts <= 100:
		return 0.8
	case watts <= 200:
		return 0.6
	case watts <= 300:
		return 0.4
	default:
		return 0.2
	}
}

// ScoreEnergyEfficiency grades the Korean efficiency grade, falling back to
// the power-draw score when no grade is present.
func ScoreEnergyEfficiency(p *models.Product) float64 {
	grade, ok := catalog.EnergyGrade(p)
	if !ok {
		return ScorePowerConsumption(p)
	}
	switch grade {
	case 1:
		return 1.0
	case 2:
		return 0.85
	case 3:
		return 0.7
	case 4:
		return 0.55
	case 5:
		return 0.4
	default:
		return ScorePowerConsumption(p)
	}
}

// idealSizeCM computes the preferred physical size for a household.
// Floor area picks the base (small homes prefer ~100cm, large ~150cm) and
// household size shifts it.
func idealSizeCM(profile *models.UserProfile) float64 {
	var ideal float64
	switch {
	case profile.Pyung > 0 && profile.Pyung <= 20:
		ideal = 100
	case profile.Pyung > 20 && profile.Pyung <= 30:
		ideal = 120
	default:
		ideal = 150
	}

	household := householdOrDefault(profile)
	ideal += float64(household-2) * 10
	if household == 1 {
		ideal = math.Max(ideal-20, 80)
	}
	return ideal
}

// ScoreSize grades physical fit against the household's ideal size.
// One-person households take an extra penalty for oversized units.
func ScoreSize(p *models.Product, profile *models.UserProfile) float64 {
	sizeCM, ok := catalog.SizeCM(p)
	if !ok {
		return neutral
	}

	ideal := idealSizeCM(profile)
	diff := math.Abs(sizeCM - ideal)
	household := householdOrDefault(profile)

	if household == 1 && sizeCM > ideal+20 {
		overRatio := (sizeCM - ideal - 20) / ideal
		penalty := math.Min(0.3, overRatio*0.5)
		base := 0.2
		if diff <= 50 {
			base = math.Max(0.2, 1.0-diff/100)
		}
		return math.Max(0.0, base-penalty)
	}

	switch {
	case diff <= 10:
		return 1.0
	case diff <= 20:
		return 0.8
	case diff <= 30:
		return 0.6
	case diff <= 50:
		return 0.4
	default:
		return 0.2
	}
}

// priceBand returns the (min,max) window the price scorer grades against.
// The max for the top tier is unbounded.
func priceBand(budgetLevel string) (float64, float64) {
	switch strings.ToLower(budgetLevel) {
	case "budget", "low":
		return 0, 500_000
	case "standard", "medium":
		return 500_000, 2_000_000
	case "premium", "high":
		return 2_000_000, 5_000_000
	case "luxury":
		return 5_000_000, math.Inf(1)
	default:
		return 0, math.Inf(1)
	}
}

// ScorePriceMatch grades closeness to the budget band center. Below-band
// products score 0.6; over-band products decay with the overshoot ratio.
func ScorePriceMatch(p *models.Product, profile *models.UserProfile) float64 {
	price := float64(p.EffectivePrice())
	lo, hi := priceBand(profile.BudgetLevel)

	switch {
	case price >= lo && price <= hi:
		if math.IsInf(hi, 1) {
			return math.Max(0.7, 1.0-0.1)
		}
		center := (lo + hi) / 2
		diff := math.Abs(price-center) / (hi - lo)
		return math.Max(0.7, 1.0-diff)
	case price < lo:
		return 0.6
	default:
		overRatio := 0.1
		if !math.IsInf(hi, 1) {
			overRatio = (price - hi) / hi
		}
		return math.Max(0.1, 0.5-overRatio*0.5)
	}
}

// ScoreCapacity grades capacity fit for the household. Refrigerators grade
// in liters against 60L/person, laundry in kilograms against 2.5kg/person.
// One-person households get steep oversize penalties.
func ScoreCapacity(p *models.Product, profile *models.UserProfile) float64 {
	capacity, ok := catalog.Capacity(p)
	if !ok {
		return neutral
	}

	household := float64(householdOrDefault(profile))
	bucket := catalog.Bucket(p.MainCategory)
	isFridge := bucket == catalog.BucketKitchen ||
		strings.Contains(p.Name, "냉장고") || strings.Contains(p.Name, "냉동고")
	isLaundry := strings.Contains(p.Name, "세탁기") || strings.Contains(p.Name, "건조기") ||
		strings.Contains(strings.ToUpper(p.Name), "워시")

	var ideal, minOK, maxOK float64
	switch {
	case isFridge:
		ideal = household * 60
		maxOK = household * 100
		minOK = household * 40
	case isLaundry || bucket == catalog.BucketLiving:
		ideal = math.Max(4, household*2.5)
		maxOK = household * 4
		minOK = math.Max(3, household*1.5)
	default:
		ideal = household * 50
		maxOK = household * 100
		minOK = household * 30
	}

	if household == 1 {
		if isFridge {
			switch {
			case capacity >= 200:
				overRatio := (capacity - 200) / 200
				return math.Max(0.0, 0.1-overRatio*0.05)
			case capacity >= 150:
				return 0.15
			case capacity >= 100:
				return 0.3
			}
		} else if strings.Contains(p.Name, "세탁기") {
			switch {
			case capacity >= 7:
				return 0.05
			case capacity >= 5:
				return 0.2
			}
		}
	}

	switch {
	case capacity >= minOK && capacity <= maxOK:
		diff := math.Abs(capacity - ideal)
		idealRange := (maxOK - minOK) / 2
		switch {
		case diff <= idealRange*0.2:
			return 1.0
		case diff <= idealRange*0.4:
			return 0.8
		case diff <= idealRange*0.6:
			return 0.6
		default:
			return 0.5
		}
	case capacity < minOK:
		underRatio := (minOK - capacity) / minOK
		return math.Max(0.3, 0.7-underRatio*0.4)
	default:
		if household > 1 {
			overRatio := (capacity - maxOK) / maxOK
			return math.Max(0.2, 0.7-overRatio*0.5)
		}
		return 0.2
	}
}

// hasPetFeature scans name, description and flattened spec text.
func hasPetFeature(p *models.Product) bool {
	text := strings.ToUpper(p.Name+" "+p.Description) + " " + catalog.SpecText(p)
	for _, kw := range featurePetKeywords {
		if strings.Contains(text, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

// ScoreFeatures starts from a 0.7 base and shifts for pet features: plus
// for pet households, a steep minus for pet-free ones.
func ScoreFeatures(p *models.Product, profile *models.UserProfile) float64 {
	score := 0.7
	if hasPetFeature(p) {
		if profile.HasPet {
			score = math.Min(1.0, score+0.2)
		} else {
			score = math.Max(0.1, score-0.4)
		}
	}
	return clamp01(score)
}

// designLine identifies the product's design lineup from its category or
// name.
func designLine(p *models.Product) string {
	bucket := catalog.Bucket(p.MainCategory)
	if bucket == catalog.BucketObjet || bucket == catalog.BucketSignature {
		return bucket
	}
	upper := strings.ToUpper(p.Name)
	switch {
	case strings.Contains(upper, "OBJET") || strings.Contains(p.Name, "오브제"):
		return catalog.BucketObjet
	case strings.Contains(upper, "SIGNATURE") || strings.Contains(p.Name, "시그니처"):
		return catalog.BucketSignature
	default:
		return "default"
	}
}

// ScoreDesign grades the design lineup against the profile's vibe.
func ScoreDesign(p *models.Product, profile *models.UserProfile) float64 {
	scores, ok := vibeScores[strings.ToLower(profile.Vibe)]
	if !ok {
		scores = vibeScores["modern"]
	}
	if s, ok := scores[designLine(p)]; ok {
		return s
	}
	if s, ok := scores["default"]; ok {
		return s
	}
	return neutral
}

// ScoreAudioQuality awards a flat bonus when audio specs are present.
func ScoreAudioQuality(p *models.Product) float64 {
	if _, ok := p.Spec("채널", "출력", "와트", "사운드"); ok {
		return 0.7
	}
	return neutral
}

// ScoreConnectivity awards a flat bonus when connectivity specs are present.
func ScoreConnectivity(p *models.Product) float64 {
	if _, ok := p.Spec("블루투스", "와이파이", "WiFi", "연결", "포트"); ok {
		return 0.7
	}
	return neutral
}

// Attribute dispatches an attribute name to its scorer, returning the
// neutral score for unknown names.
func Attribute(name string, p *models.Product, profile *models.UserProfile) float64 {
	switch name {
	case "resolution":
		return ScoreResolution(p)
	case "brightness":
		return ScoreBrightness(p)
	case "refresh_rate":
		return ScoreRefreshRate(p)
	case "panel_type":
		return ScorePanelType(p)
	case "power_consumption":
		return ScorePowerConsumption(p)
	case "energy_efficiency":
		return ScoreEnergyEfficiency(p)
	case "size":
		return ScoreSize(p, profile)
	case "price_match":
		return ScorePriceMatch(p, profile)
	case "capacity":
		return ScoreCapacity(p, profile)
	case "features":
		return ScoreFeatures(p, profile)
	case "design":
		return ScoreDesign(p, profile)
	case "audio_quality":
		return ScoreAudioQuality(p)
	case "connectivity":
		return ScoreConnectivity(p)
	default:
		return neutral
	}
}

func householdOrDefault(profile *models.UserProfile) int {
	if profile.HouseholdSize > 0 {
		return profile.HouseholdSize
	}
	return 2
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

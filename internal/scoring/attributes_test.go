// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package scoring

import (
	"math"
	"testing"

	"github.com/dwkim-lab/homepick/internal/models"
)

func tvProduct(specs map[string]string) *models.Product {
	return &models.Product{
		ID:           1,
		Name:         "LG 올레드 evo TV",
		MainCategory: "TV",
		Category:     "TV",
		Price:        3_200_000,
		Specs:        specs,
		IsActive:     true,
	}
}

func fridgeProduct(name string, capacity string, price int64) *models.Product {
	return &models.Product{
		ID:           2,
		Name:         name,
		MainCategory: "냉장고",
		Category:     "KITCHEN",
		Price:        price,
		Specs:        map[string]string{"총 용량": capacity},
		IsActive:     true,
	}
}

func profileWith(mut func(*models.UserProfile)) *models.UserProfile {
	p := &models.UserProfile{
		Vibe:          "modern",
		HouseholdSize: 4,
		HousingType:   "apartment",
		Pyung:         32,
		BudgetLevel:   "high",
		Categories:    []string{"KITCHEN", "LIVING", "TV"},
	}
	if mut != nil {
		mut(p)
	}
	return p
}

func TestScoreResolution(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"4k", "3,840 × 2,160", 1.0},
		{"qhd", "2560 x 1440", 0.8},
		{"fhd", "1,920 × 1,080", 0.6},
		{"hd", "1280 x 720", 0.4},
		{"sd", "720 x 480", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tvProduct(map[string]string{"해상도": tt.value})
			if got := ScoreResolution(p); got != tt.want {
				t.Errorf("ScoreResolution(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	t.Run("missing_spec_is_neutral", func(t *testing.T) {
		p := tvProduct(map[string]string{"패널 타입": "OLED"})
		if got := ScoreResolution(p); got != neutral {
			t.Errorf("ScoreResolution without 해상도 = %v, want %v", got, neutral)
		}
	})
}

func TestScorePanelType(t *testing.T) {
	tests := []struct {
		panel string
		want  float64
	}{
		{"OLED evo", 1.0},
		{"QD-OLED", 0.9},
		{"QLED", 0.9},
		{"IPS", 0.7},
		{"VA", 0.6},
		{"LED", 0.5},
		{"", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.panel, func(t *testing.T) {
			p := tvProduct(map[string]string{"패널 타입": tt.panel})
			if got := ScorePanelType(p); got != tt.want {
				t.Errorf("ScorePanelType(%q) = %v, want %v", tt.panel, got, tt.want)
			}
		})
	}
}

func TestScoreRefreshRate(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"144Hz", 1.0},
		{"120Hz", 1.0},
		{"100Hz", 0.9},
		{"60Hz", 0.7},
		{"50Hz", 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			p := tvProduct(map[string]string{"주사율": tt.value})
			if got := ScoreRefreshRate(p); got != tt.want {
				t.Errorf("ScoreRefreshRate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestScoreEnergyEfficiency(t *testing.T) {
	t.Run("grade_1_is_max", func(t *testing.T) {
		p := fridgeProduct("LG 디오스 냉장고", "832L", 2_500_000)
		p.Specs["에너지등급"] = "1등급"
		if got := ScoreEnergyEfficiency(p); got != 1.0 {
			t.Errorf("grade 1 = %v, want 1.0", got)
		}
	})

	t.Run("falls_back_to_power", func(t *testing.T) {
		p := tvProduct(map[string]string{"전력소비": "45W"})
		if got := ScoreEnergyEfficiency(p); got != 1.0 {
			t.Errorf("power fallback = %v, want 1.0", got)
		}
	})
}

func TestScorePriceMatch(t *testing.T) {
	tests := []struct {
		name   string
		price  int64
		budget string
		want   float64
	}{
		{"band_center", 3_500_000, "high", 1.0},
		{"below_band", 1_000_000, "high", 0.6},
		{"luxury_band_is_flat", 7_000_000, "luxury", 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fridgeProduct("LG 디오스 냉장고", "832L", tt.price)
			profile := profileWith(func(u *models.UserProfile) { u.BudgetLevel = tt.budget })
			if got := ScorePriceMatch(p, profile); got != tt.want {
				t.Errorf("ScorePriceMatch(%d, %s) = %v, want %v", tt.price, tt.budget, got, tt.want)
			}
		})
	}

	t.Run("over_band_decays", func(t *testing.T) {
		p := fridgeProduct("LG 디오스 냉장고", "832L", 1_000_000)
		profile := profileWith(func(u *models.UserProfile) { u.BudgetLevel = "low" })
		got := ScorePriceMatch(p, profile)
		if got >= 0.5 {
			t.Errorf("over-band price = %v, want below 0.5", got)
		}
		if got < 0.1 {
			t.Errorf("over-band price = %v, floor is 0.1", got)
		}
	})
}

func TestScoreCapacity(t *testing.T) {
	t.Run("four_person_fridge_ideal", func(t *testing.T) {
		p := fridgeProduct("LG 디오스 냉장고", "240L", 2_500_000)
		got := ScoreCapacity(p, profileWith(nil))
		if got != 1.0 {
			t.Errorf("240L for 4-person = %v, want 1.0", got)
		}
	})

	t.Run("one_person_large_fridge_penalized", func(t *testing.T) {
		p := fridgeProduct("LG 디오스 냉장고", "832L", 2_500_000)
		solo := profileWith(func(u *models.UserProfile) { u.HouseholdSize = 1 })
		got := ScoreCapacity(p, solo)
		if got > 0.1 {
			t.Errorf("832L for 1-person = %v, want at most 0.1", got)
		}
	})

	t.Run("one_person_big_washer_penalized", func(t *testing.T) {
		p := &models.Product{
			Name: "LG 트롬 세탁기", MainCategory: "세탁기", Category: "LIVING",
			Price: 1_200_000, Specs: map[string]string{"세탁 용량": "25kg"}, IsActive: true,
		}
		solo := profileWith(func(u *models.UserProfile) { u.HouseholdSize = 1 })
		if got := ScoreCapacity(p, solo); got != 0.05 {
			t.Errorf("25kg washer for 1-person = %v, want 0.05", got)
		}
	})

	t.Run("missing_capacity_is_neutral", func(t *testing.T) {
		p := tvProduct(map[string]string{"해상도": "3840 x 2160"})
		if got := ScoreCapacity(p, profileWith(nil)); got != neutral {
			t.Errorf("missing capacity = %v, want %v", got, neutral)
		}
	})
}

func TestScoreDesign(t *testing.T) {
	tests := []struct {
		name string
		vibe string
		prod string
		want float64
	}{
		{"modern_objet", "modern", "LG 디오스 오브제컬렉션 냉장고", 1.0},
		{"luxury_signature", "luxury", "LG SIGNATURE 냉장고", 1.0},
		{"luxury_plain", "luxury", "LG 디오스 냉장고", 0.6},
		{"unknown_vibe_uses_modern", "minimal", "LG 디오스 오브제컬렉션 냉장고", 1.0},
		{"cozy_default", "cozy", "LG 디오스 냉장고", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fridgeProduct(tt.prod, "600L", 2_500_000)
			profile := profileWith(func(u *models.UserProfile) { u.Vibe = tt.vibe })
			if got := ScoreDesign(p, profile); got != tt.want {
				t.Errorf("ScoreDesign(%q, vibe=%s) = %v, want %v", tt.prod, tt.vibe, got, tt.want)
			}
		})
	}
}

func TestScoreFeaturesPetShift(t *testing.T) {
	pet := &models.Product{
		Name: "LG 퓨리케어 공기청정기 펫", MainCategory: "공기청정기", Category: "AIR",
		Price: 800_000, Specs: map[string]string{"필터": "펫 필터"}, IsActive: true,
	}

	withPet := profileWith(func(u *models.UserProfile) { u.HasPet = true })
	noPet := profileWith(nil)

	if got := ScoreFeatures(pet, withPet); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("pet feature with pet = %v, want 0.9", got)
	}
	if got := ScoreFeatures(pet, noPet); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("pet feature without pet = %v, want 0.3", got)
	}

	plain := fridgeProduct("LG 디오스 냉장고", "600L", 2_500_000)
	if got := ScoreFeatures(plain, noPet); got != 0.7 {
		t.Errorf("no pet feature = %v, want 0.7", got)
	}
}

func TestAttributeDispatch(t *testing.T) {
	p := tvProduct(map[string]string{"해상도": "3840 x 2160", "주사율": "120Hz"})
	profile := profileWith(nil)

	if got := Attribute("resolution", p, profile); got != 1.0 {
		t.Errorf("Attribute(resolution) = %v, want 1.0", got)
	}
	if got := Attribute("refresh_rate", p, profile); got != 1.0 {
		t.Errorf("Attribute(refresh_rate) = %v, want 1.0", got)
	}
	if got := Attribute("unknown_attr", p, profile); got != neutral {
		t.Errorf("Attribute(unknown) = %v, want %v", got, neutral)
	}
}

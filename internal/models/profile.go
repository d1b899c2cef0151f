// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package models

import (
	"fmt"
	"sort"
	"strings"
)

// UserProfile is the onboarding questionnaire plus the derived taste profile.
// It is the sole input to the recommendation pipeline.
type UserProfile struct {
	// TasteID is the precomputed taste profile identifier in [1,120].
	// 0 means absent.
	TasteID int `json:"taste_id,omitempty"`

	// Vibe is the interior vibe: modern, cozy, pop, luxury, unique.
	Vibe string `json:"vibe,omitempty"`

	// HouseholdSize is the number of residents (5 means 5+).
	HouseholdSize int `json:"household_size,omitempty"`

	// HasPet indicates whether the household keeps a pet.
	HasPet bool `json:"has_pet,omitempty"`

	// HousingType is one of studio, apartment, villa, officetel, detached.
	HousingType string `json:"housing_type,omitempty"`

	// MainSpace is the space the user cares about most:
	// living, kitchen, dressing, bedroom, all.
	MainSpace string `json:"main_space,omitempty"`

	// Pyung is the dwelling floor area in pyung.
	Pyung int `json:"pyung,omitempty"`

	// Priority is an ordered sequence of up to three of
	// design, tech, eco, value. Index 0 is rank 1.
	Priority []string `json:"priority,omitempty"`

	// BudgetLevel is the budget tier key, see BudgetBand.
	BudgetLevel string `json:"budget_level"`

	// BudgetAmount optionally overrides the band ceiling (KRW).
	BudgetAmount int64 `json:"budget_amount,omitempty"`

	// Categories is the non-empty set of requested bucket labels.
	Categories []string `json:"categories"`

	// Cooking frequency: daily, high, often, sometimes, rarely.
	Cooking string `json:"cooking,omitempty"`

	// Laundry frequency: daily, weekly, biweekly, few_times, rarely.
	Laundry string `json:"laundry,omitempty"`

	// Media usage: heavy, gaming, ott, movie, balanced, minimal, none.
	Media string `json:"media,omitempty"`

	// Onboarding carries the raw questionnaire answers for dynamic
	// policy synthesis.
	Onboarding map[string]string `json:"onboarding_data,omitempty"`
}

// budgetBands maps budget tier keys to (min,max) KRW windows. The legacy
// aliases budget/standard stay for compatibility with older clients.
var budgetBands = map[string][2]int64{
	"low":      {0, 500_000},
	"medium":   {500_000, 2_000_000},
	"high":     {2_000_000, 10_000_000},
	"budget":   {0, 500_000},
	"standard": {500_000, 2_000_000},
	"premium":  {2_000_000, 5_000_000},
	"luxury":   {5_000_000, 10_000_000},
}

// BudgetBand returns the (min,max) price window in KRW for a budget tier.
// Unknown tiers report ok=false.
func BudgetBand(level string) (min, max int64, ok bool) {
	band, found := budgetBands[level]
	if !found {
		return 0, 0, false
	}
	return band[0], band[1], true
}

// BudgetLevels returns the known budget tier keys in sorted order.
func BudgetLevels() []string {
	keys := make([]string, 0, len(budgetBands))
	for k := range budgetBands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the minimum required fields of a profile.
// Error messages are user-facing and Korean, matching the product UI.
func (p *UserProfile) Validate() error {
	if p.BudgetLevel == "" {
		return fmt.Errorf("필수 필드 누락: budget_level")
	}
	if _, _, ok := BudgetBand(p.BudgetLevel); !ok {
		return fmt.Errorf("유효하지 않은 예산: %s (valid: %s)",
			p.BudgetLevel, strings.Join(BudgetLevels(), ", "))
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("최소 1개 이상 카테고리 선택 필요")
	}
	return nil
}

// Band returns the profile's budget window, defaulting to medium for
// unknown tiers.
func (p *UserProfile) Band() (min, max int64) {
	min, max, ok := BudgetBand(p.BudgetLevel)
	if !ok {
		min, max, _ = BudgetBand("medium")
	}
	return min, max
}

// ReferencePrice returns the scoring reference price: the explicit
// budget_amount when set, otherwise the tier's reference ceiling
// (low 500k, medium 2M, high and above 5M).
func (p *UserProfile) ReferencePrice() int64 {
	if p.BudgetAmount > 0 {
		return p.BudgetAmount
	}
	switch p.BudgetLevel {
	case "low", "budget":
		return 500_000
	case "medium", "standard":
		return 2_000_000
	default:
		return 5_000_000
	}
}

// PriorityRank returns the 1-based rank of a priority key, or 0 when the
// key is not among the profile's priorities.
func (p *UserProfile) PriorityRank(key string) int {
	for i, pr := range p.Priority {
		if pr == key {
			return i + 1
		}
	}
	return 0
}

// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package filter

import (
	"strings"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/logging"
	"github.com/dwkim-lab/homepick/internal/models"
)

// petKeywords mark pet-only products, matched case-insensitively against
// name and description.
var petKeywords = []string{"펫", "PET", "반려동물", "애완동물", "동물케어", "펫케어", "PET CARE"}

// HardFilter removes products a household cannot install or use. It never
// scores; every predicate is a deterministic drop.
type HardFilter struct {
	table *Table
}

// New creates a hard filter over a rule table. A nil table uses the stock
// rules.
func New(table *Table) *HardFilter {
	if table == nil {
		table = DefaultTable()
	}
	return &HardFilter{table: table}
}

// Apply returns the products that survive all filter stages, preserving
// input order.
func (f *HardFilter) Apply(products []*models.Product, profile *models.UserProfile) []*models.Product {
	surviving := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if f.include(p, profile) {
			surviving = append(surviving, p)
		}
	}

	logger := logging.WithComponent("hard-filter")
	logger.Debug().
		Int("candidates", len(products)).
		Int("surviving", len(surviving)).
		Msg("Hard filter applied")

	return surviving
}

func (f *HardFilter) include(p *models.Product, profile *models.UserProfile) bool {
	if !f.passesBaseline(p, profile) {
		return false
	}
	if !profile.HasPet && isPetProduct(p) {
		return false
	}

	for _, key := range buildKeys(p, profile) {
		for _, cond := range f.table.Conditions(key[0], key[1]) {
			if conditionDrops(p, cond) {
				return false
			}
		}
	}
	return true
}

// passesBaseline applies the conjunctive cheap predicates: active flag,
// requested category, positive price inside the budget band, spec present.
func (f *HardFilter) passesBaseline(p *models.Product, profile *models.UserProfile) bool {
	if !p.IsActive {
		return false
	}
	if !categoryRequested(p, profile.Categories) {
		return false
	}

	price := p.EffectivePrice()
	if price <= 0 {
		return false
	}
	lo, hi := profile.Band()
	if price < lo || price > hi {
		return false
	}

	return len(p.Specs) > 0
}

// categoryRequested accepts a product whose bucket or raw MAIN_CATEGORY is
// in the requested set.
func categoryRequested(p *models.Product, categories []string) bool {
	bucket := catalog.Bucket(p.MainCategory)
	for _, c := range categories {
		if c == bucket || c == p.MainCategory {
			return true
		}
	}
	return false
}

func isPetProduct(p *models.Product) bool {
	text := strings.ToUpper(p.Name + " " + p.Description)
	for _, kw := range petKeywords {
		if strings.Contains(text, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

// buildKeys derives the rule-row keys relevant to this product+profile
// pair. Only keys with a matching table row have any effect.
func buildKeys(p *models.Product, profile *models.UserProfile) [][2]string {
	var keys [][2]string
	category := p.MainCategory
	name := strings.ToUpper(p.Name)

	if profile.HousingType == "studio" {
		keys = append(keys, [2]string{"원룸", category})
	}

	switch {
	case profile.HouseholdSize == 1:
		keys = append(keys, [2]string{"1인", category})
		if strings.Contains(name, "세탁기") {
			keys = append(keys, [2]string{"1인", "세탁기"})
		}
		if strings.Contains(name, "건조기") {
			keys = append(keys, [2]string{"1인", "건조기"})
		}
	case profile.HouseholdSize == 2:
		keys = append(keys, [2]string{"2인", category})
		if strings.Contains(name, "세탁기") {
			keys = append(keys, [2]string{"2인", "세탁기"})
		}
	case profile.HouseholdSize >= 4:
		keys = append(keys, [2]string{"4인 이상", category})
		if strings.Contains(name, "세탁기") {
			keys = append(keys, [2]string{"4인 이상", "세탁기"})
		}
		if strings.Contains(name, "건조기") {
			keys = append(keys, [2]string{"4인 이상", "건조기"})
		}
	}

	switch {
	case profile.Pyung > 0 && profile.Pyung <= 20:
		keys = append(keys, [2]string{"20평 이하", category})
	case profile.Pyung > 20 && profile.Pyung <= 30:
		keys = append(keys, [2]string{"20~30평", category})
	}

	if profile.BudgetLevel != "" {
		keys = append(keys, [2]string{"예산_" + profile.BudgetLevel, "전체"})
	}

	if catalog.Bucket(category) == catalog.BucketTV {
		keys = append(keys, [2]string{"미디어_" + profile.Media, "TV"})
	}

	if strings.Contains(name, "전기레인지") || strings.Contains(name, "레인지") {
		keys = append(keys, [2]string{"요리_" + profile.Cooking, "전기레인지"})
	}

	if strings.Contains(name, "세탁기") {
		keys = append(keys, [2]string{"세탁_" + profile.Laundry, "세탁기"})
	}
	if strings.Contains(name, "건조기") {
		keys = append(keys, [2]string{"세탁_" + profile.Laundry, "건조기"})
	}

	if !profile.HasPet && isPetProduct(p) {
		keys = append(keys, [2]string{"펫_false", "펫_전용"})
	}

	return keys
}

// conditionDrops evaluates a single condition; true removes the product.
// Spec checks fail open: missing values never drop.
func conditionDrops(p *models.Product, cond Condition) bool {
	switch cond.Type {
	case CondIgnoreCategory:
		return cond.Bool

	case CondIgnoreKeywords:
		name := strings.ToUpper(p.Name)
		for _, kw := range cond.Keywords {
			if strings.Contains(name, strings.ToUpper(kw)) {
				return true
			}
		}
		return false
	}

	if cond.SpecKey == "" || cond.Operator == "" {
		return false
	}

	value, ok := specValue(p, cond.SpecKey)
	if !ok {
		return false
	}

	switch cond.Operator {
	case ">":
		return value > cond.Value
	case ">=":
		return value >= cond.Value
	case "<":
		return value < cond.Value
	case "<=":
		return value <= cond.Value
	case "==":
		return value == cond.Value
	default:
		return false
	}
}

func specValue(p *models.Product, specKey string) (float64, bool) {
	switch specKey {
	case SpecCapacityL, SpecCapacityKg:
		return catalog.Capacity(p)
	case SpecSizeInch:
		return catalog.Size(p)
	case SpecDepthMM:
		return catalog.DepthMM(p)
	case SpecPrice:
		if price := p.EffectivePrice(); price > 0 {
			return float64(price), true
		}
		return 0, false
	default:
		return 0, false
	}
}

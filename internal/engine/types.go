// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package engine

import "github.com/dwkim-lab/homepick/internal/models"

// playbookRequired is the fixed required set of the playbook path.
var playbookRequired = []string{"TV", "냉장고", "에어컨", "세탁기"}

// ScenarioTypes returns the product types a household scenario calls for,
// in declaration order with duplicates removed.
func ScenarioTypes(profile *models.UserProfile) []string {
	var types []string

	types = append(types, "냉장고")

	switch {
	case profile.Laundry == "daily" || profile.Laundry == "weekly" || profile.Laundry == "few_times":
		switch {
		case profile.HouseholdSize >= 4:
			types = append(types, "워시타워")
		case profile.HouseholdSize >= 2:
			types = append(types, "세탁기", "건조기")
		default:
			types = append(types, "세탁기")
		}
	}

	if profile.Cooking == "high" || profile.Cooking == "often" {
		types = append(types, "식기세척기", "오븐")
	}

	types = append(types, "청소기")

	if profile.Media != "none" {
		types = append(types, "TV")
	}

	switch profile.HousingType {
	case "apartment", "detached", "villa":
		types = append(types, "에어컨", "공기청정기")
	}

	if profile.HouseholdSize >= 3 {
		types = append(types, "스타일러")
	}

	return dedupeTypes(types)
}

// OptionalTypes returns the conditional playbook types driven by household
// size, floor area, budget tier and lifestyle answers.
func OptionalTypes(profile *models.UserProfile) []string {
	var types []string

	switch {
	case profile.HouseholdSize >= 4:
		types = append(types, "건조기", "식기세척기")
	case profile.HouseholdSize >= 3:
		types = append(types, "건조기")
	}

	switch {
	case profile.Pyung >= 35:
		types = append(types, "공기청정기")
		if profile.Pyung >= 40 {
			types = append(types, "제습기")
		}
	case profile.Pyung >= 25:
		types = append(types, "공기청정기")
	}

	switch {
	case profile.BudgetLevel == "high" || profile.BudgetLevel == "premium" ||
		profile.BudgetLevel == "luxury" || profile.BudgetAmount >= 5_000_000:
		types = append(types, "와인셀러")
		if profile.Pyung >= 30 {
			types = append(types, "안마의자")
		}
	case profile.BudgetLevel == "medium" || profile.BudgetLevel == "standard" ||
		(profile.BudgetAmount >= 2_000_000 && profile.BudgetAmount < 5_000_000):
		types = append(types, "정수기", "청소기")
	}

	if profile.Cooking == "high" || profile.Cooking == "often" {
		types = append(types, "식기세척기", "전기레인지")
		if profile.BudgetLevel == "high" || profile.BudgetLevel == "premium" {
			types = append(types, "오븐")
		}
	}

	if profile.Laundry == "daily" || profile.Laundry == "weekly" {
		if profile.HouseholdSize >= 3 {
			types = append(types, "건조기")
		}
		if profile.HouseholdSize >= 4 {
			types = append(types, "의류건조기")
		}
	}

	return dedupeTypes(types)
}

// PlaybookTypes returns the ordered (required, optional) type lists for the
// playbook path: the fixed required set, then scenario types it does not
// already cover, then the conditional types.
func PlaybookTypes(profile *models.UserProfile) (required, optional []string) {
	required = append(required, playbookRequired...)
	required = dedupeTypes(append(required, ScenarioTypes(profile)...))

	seen := make(map[string]struct{}, len(required))
	for _, t := range required {
		seen[t] = struct{}{}
	}
	for _, t := range OptionalTypes(profile) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		optional = append(optional, t)
	}
	return required, optional
}

func dedupeTypes(types []string) []string {
	seen := make(map[string]struct{}, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package scoring

import "github.com/dwkim-lab/homepick/internal/models"

// TypeMultiplier scales a playbook total by product type and lifestyle
// fit. TV is the only type that can be demoted below 1.0.
func TypeMultiplier(productType string, profile *models.UserProfile) float64 {
	switch productType {
	case "세탁기":
		if (profile.Laundry == "daily" || profile.Laundry == "few_times") && profile.HouseholdSize >= 3 {
			return 1.2
		}
	case "워시타워":
		if profile.HouseholdSize >= 4 {
			return 1.3
		}
	case "냉장고":
		if profile.HouseholdSize >= 4 {
			return 1.2
		}
	case "식기세척기":
		if (profile.Cooking == "high" || profile.Cooking == "often") && profile.HouseholdSize >= 3 {
			return 1.3
		}
	case "TV":
		switch profile.Media {
		case "gaming", "heavy", "ott":
			return 1.3
		case "none":
			return 0.5
		}
	case "스타일러":
		if profile.HouseholdSize >= 3 {
			return 1.2
		}
	}
	return 1.0
}

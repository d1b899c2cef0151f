// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package models

// ScoreBreakdown holds the five component scores of the playbook scorer.
// Total is the sum of the components after the type multiplier.
type ScoreBreakdown struct {
	SpecScore       float64 `json:"spec_score"`
	PreferenceScore float64 `json:"preference_score"`
	LifestyleScore  float64 `json:"lifestyle_score"`
	ReviewScore     float64 `json:"review_score"`
	PriceScore      float64 `json:"price_score"`
	Total           float64 `json:"total_score"`
}

// Explanation is the per-item message block of the playbook response.
type Explanation struct {
	WhySummary       string `json:"why_summary"`
	LifestyleMessage string `json:"lifestyle_message"`
	DesignMessage    string `json:"design_message"`
	ReviewHighlight  string `json:"review_highlight"`
}

// Recommendation is one ranked product in a recommendation response.
type Recommendation struct {
	ProductID       int64           `json:"product_id"`
	Name            string          `json:"name"`
	ModelNumber     string          `json:"model_number,omitempty"`
	MainCategory    string          `json:"main_category,omitempty"`
	Category        string          `json:"category"`
	CategoryDisplay string          `json:"category_display,omitempty"`
	ProductType     string          `json:"product_type"`
	Price           int64           `json:"price"`
	DiscountPrice   int64           `json:"discount_price,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	Score           float64         `json:"total_score"`
	Breakdown       *ScoreBreakdown `json:"score_breakdown,omitempty"`
	Rank            int             `json:"rank"`
	RankLabel       string          `json:"rank_label,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Explanation     *Explanation    `json:"explanation,omitempty"`
}

// RecommendationResult is the engine-level response shared by both the
// weighted-average and the playbook paths.
type RecommendationResult struct {
	Success            bool             `json:"success"`
	Count              int              `json:"count"`
	Recommendations    []Recommendation `json:"recommendations"`
	UserProfileSummary string           `json:"user_profile_summary,omitempty"`
	Message            string           `json:"message,omitempty"`
}

// rankLabels maps per-type ranks to their Korean display labels.
var rankLabels = map[int]string{
	1: "1순위",
	2: "2순위",
	3: "3순위",
}

// RankLabel returns the Korean label for a per-type rank, empty when
// the rank has no label.
func RankLabel(rank int) string {
	return rankLabels[rank]
}

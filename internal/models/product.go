// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

// Package models defines the domain types shared across the recommendation
// pipeline: products, user profiles, budget bands and the HTTP envelope.
package models

// Product is a single appliance model from the catalog snapshot.
type Product struct {
	// ID is the catalog product identifier.
	ID int64 `json:"id"`

	// Name is the display name, e.g. "LG 트롬 오브제컬렉션 워시타워".
	Name string `json:"name"`

	// Description is the optional marketing copy.
	Description string `json:"description,omitempty"`

	// ModelNumber is the manufacturer model code, e.g. "OLED65C5KNA".
	ModelNumber string `json:"model_number,omitempty"`

	// ImageURL is the catalog image location, empty when absent.
	ImageURL string `json:"image_url,omitempty"`

	// MainCategory is the upstream catalog category, e.g. "냉장고", "TV".
	MainCategory string `json:"main_category"`

	// Category is the coarse bucket (TV, KITCHEN, LIVING, AIR, AI,
	// OBJET, SIGNATURE) derived from MainCategory.
	Category string `json:"category"`

	// Price is the list price in KRW.
	Price int64 `json:"price"`

	// DiscountPrice is the discounted price in KRW, 0 when absent.
	DiscountPrice int64 `json:"discount_price,omitempty"`

	// ReviewRating is the average review rating in [0,5], 0 when absent.
	ReviewRating float64 `json:"review_rating,omitempty"`

	// ReviewCount is the number of reviews.
	ReviewCount int `json:"review_count,omitempty"`

	// Specs maps Korean spec labels to raw string values,
	// e.g. "총 용량" → "832L", "해상도" → "4K UHD".
	Specs map[string]string `json:"specs,omitempty"`

	// IsActive indicates whether the product is currently sold.
	IsActive bool `json:"is_active"`
}

// EffectivePrice returns the discount price when set, otherwise the list price.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// Spec returns the raw value for the first matching spec key.
func (p *Product) Spec(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := p.Specs[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

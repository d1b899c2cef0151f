// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

// Package filter implements the deterministic hard-filter stage: baseline
// predicates, pet exclusion and the policy-table rule rows that remove
// products a household cannot install or use.
package filter

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Condition types within a rule row.
const (
	CondIgnoreCategory = "ignore_category"
	CondIgnoreKeywords = "ignore_keywords"
	CondSpecCheck      = "spec_check"
)

// Spec keys a spec_check condition may reference.
const (
	SpecCapacityL  = "capacity_l"
	SpecCapacityKg = "capacity_kg"
	SpecSizeInch   = "size_inch"
	SpecDepthMM    = "depth_mm"
	SpecPrice      = "price"
)

// Condition is one filter condition. A true condition drops the product.
type Condition struct {
	Type     string   `json:"type,omitempty"`
	SpecKey  string   `json:"spec_key,omitempty"`
	Operator string   `json:"operator,omitempty"`
	Value    float64  `json:"value,omitempty"`
	Bool     bool     `json:"bool_value,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Rule is a hard-filter table row keyed by (answer label, product label).
type Rule struct {
	Key        [2]string   `json:"key"`
	Conditions []Condition `json:"conditions"`
}

// Table holds the hard-filter rule rows with O(1) key lookup.
type Table struct {
	rows map[[2]string][]Condition
}

// NewTable builds a lookup table from rule rows.
func NewTable(rules []Rule) *Table {
	rows := make(map[[2]string][]Condition, len(rules))
	for _, r := range rules {
		rows[r.Key] = append(rows[r.Key], r.Conditions...)
	}
	return &Table{rows: rows}
}

// Conditions returns the conditions for a key, nil when no row exists.
func (t *Table) Conditions(answer, product string) []Condition {
	return t.rows[[2]string{answer, product}]
}

// Len reports the number of distinct rule keys.
func (t *Table) Len() int {
	return len(t.rows)
}

// LoadTable reads a rule table from a JSON file of the form
// {"rules": [{"key": [..,..], "conditions": [..]}]}.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter rules: %w", err)
	}

	var doc struct {
		Rules []Rule `json:"rules"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse filter rules %s: %w", path, err)
	}
	return NewTable(doc.Rules), nil
}

// DefaultTable is the stock rule set, used when no rules file is configured.
// Labels follow the onboarding answer vocabulary (§ key construction).
func DefaultTable() *Table {
	return NewTable([]Rule{
		// Studio units cannot take oversized appliances.
		{Key: [2]string{"원룸", "세탁기"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecCapacityKg, Operator: ">", Value: 15},
		}},
		{Key: [2]string{"원룸", "냉장고"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecCapacityL, Operator: ">", Value: 500},
		}},
		{Key: [2]string{"원룸", "TV"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecSizeInch, Operator: ">", Value: 65},
		}},

		// Household size vs laundry capacity.
		{Key: [2]string{"1인", "세탁기"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecCapacityKg, Operator: ">=", Value: 20},
		}},
		{Key: [2]string{"1인", "건조기"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecCapacityKg, Operator: ">=", Value: 20},
		}},
		{Key: [2]string{"1인", "냉장고"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecCapacityL, Operator: ">", Value: 700},
		}},
		{Key: [2]string{"2인", "세탁기"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecCapacityKg, Operator: ">", Value: 25},
		}},
		{Key: [2]string{"4인 이상", "세탁기"}, Conditions: []Condition{
			{Type: CondIgnoreKeywords, Keywords: []string{"미니", "MINI"}},
		}},
		{Key: [2]string{"4인 이상", "건조기"}, Conditions: []Condition{
			{Type: CondIgnoreKeywords, Keywords: []string{"미니", "MINI"}},
		}},

		// Floor area vs screen and cabinet depth.
		{Key: [2]string{"20평 이하", "TV"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecSizeInch, Operator: ">", Value: 75},
		}},
		{Key: [2]string{"20평 이하", "냉장고"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecDepthMM, Operator: ">", Value: 900},
		}},
		{Key: [2]string{"20~30평", "TV"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecSizeInch, Operator: ">", Value: 86},
		}},

		// Tight budget caps every category.
		{Key: [2]string{"예산_low", "전체"}, Conditions: []Condition{
			{Type: CondSpecCheck, SpecKey: SpecPrice, Operator: ">", Value: 500_000},
		}},

		// Lifestyle answers that remove whole categories.
		{Key: [2]string{"미디어_none", "TV"}, Conditions: []Condition{
			{Type: CondIgnoreCategory, Bool: true},
		}},
		{Key: [2]string{"요리_rarely", "전기레인지"}, Conditions: []Condition{
			{Type: CondIgnoreCategory, Bool: true},
		}},
		{Key: [2]string{"세탁_rarely", "세탁기"}, Conditions: []Condition{
			{Type: CondIgnoreCategory, Bool: true},
		}},
		{Key: [2]string{"세탁_rarely", "건조기"}, Conditions: []Condition{
			{Type: CondIgnoreCategory, Bool: true},
		}},

		// Pet-only products for pet-free households.
		{Key: [2]string{"펫_false", "펫_전용"}, Conditions: []Condition{
			{Type: CondIgnoreCategory, Bool: true},
		}},
	})
}

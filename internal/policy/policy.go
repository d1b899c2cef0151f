// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

// Package policy resolves and manages per-taste scoring policies.
//
// A scoring policy carries per-category attribute weights plus bonus and
// penalty rules. Policies resolve in layers: a per-taste override file, the
// shared policy file, dynamic synthesis from onboarding answers, and finally
// a generated base policy. Saved overrides persist in BadgerDB and
// invalidate the in-memory cache through a Watermill event bus.
package policy

import (
	"fmt"

	"github.com/dwkim-lab/homepick/internal/catalog"
)

// Policy sources, in resolution order.
const (
	SourceTasteFile  = "taste_file"
	SourceSharedFile = "shared_file"
	SourceDynamic    = "dynamic"
	SourceDefault    = "default"
)

// Adjustment is a bonus or penalty rule. Delta is positive for bonuses and
// negative for penalties; Condition and Reason are display strings.
type Adjustment struct {
	Condition string  `json:"condition"`
	Bonus     float64 `json:"bonus,omitempty"`
	Penalty   float64 `json:"penalty,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Delta returns the signed score adjustment.
func (a Adjustment) Delta() float64 {
	if a.Penalty != 0 {
		return a.Penalty
	}
	return a.Bonus
}

// FilterSet holds policy-level product filters.
type FilterSet struct {
	MustHave   []string `json:"must_have"`
	ShouldHave []string `json:"should_have"`
	Exclude    []string `json:"exclude"`
}

// ScoringPolicy is a complete per-taste scoring configuration.
// Weights are keyed by MAIN_CATEGORY (bucket keys are accepted on load and
// expanded, see NormalizeWeights) and then by attribute name.
type ScoringPolicy struct {
	LogicID   string                        `json:"logic_id"`
	LogicName string                        `json:"logic_name"`
	TasteID   int                           `json:"taste_id,omitempty"`
	AppliesTo []int                         `json:"applies_to_taste_ids,omitempty"`
	Source    string                        `json:"source,omitempty"`
	Weights   map[string]map[string]float64 `json:"weights"`
	Bonuses   []Adjustment                  `json:"bonuses,omitempty"`
	Penalties []Adjustment                  `json:"penalties,omitempty"`
	Filters   *FilterSet                    `json:"filters,omitempty"`
}

// Clone returns a deep copy. Resolution layers hand out copies so callers
// can mutate a policy without poisoning the cache.
func (p *ScoringPolicy) Clone() *ScoringPolicy {
	if p == nil {
		return nil
	}
	out := *p
	out.Weights = make(map[string]map[string]float64, len(p.Weights))
	for cat, weights := range p.Weights {
		cw := make(map[string]float64, len(weights))
		for attr, w := range weights {
			cw[attr] = w
		}
		out.Weights[cat] = cw
	}
	out.AppliesTo = append([]int(nil), p.AppliesTo...)
	out.Bonuses = append([]Adjustment(nil), p.Bonuses...)
	out.Penalties = append([]Adjustment(nil), p.Penalties...)
	if p.Filters != nil {
		f := FilterSet{
			MustHave:   append([]string(nil), p.Filters.MustHave...),
			ShouldHave: append([]string(nil), p.Filters.ShouldHave...),
			Exclude:    append([]string(nil), p.Filters.Exclude...),
		}
		out.Filters = &f
	}
	return &out
}

// AppliesToTaste reports whether the policy's applies_to list names the taste.
func (p *ScoringPolicy) AppliesToTaste(tasteID int) bool {
	for _, id := range p.AppliesTo {
		if id == tasteID {
			return true
		}
	}
	return false
}

// WeightsFor returns the attribute weights for a product's MAIN_CATEGORY,
// falling back to the category's bucket key and then the "default" entry.
func (p *ScoringPolicy) WeightsFor(mainCategory string) map[string]float64 {
	if w, ok := p.Weights[mainCategory]; ok {
		return w
	}
	if w, ok := p.Weights[catalog.Bucket(mainCategory)]; ok {
		return w
	}
	return p.Weights["default"]
}

// NormalizeWeights expands bucket-keyed weight tables (TV, KITCHEN, LIVING,
// AIR, AI, OBJET, SIGNATURE) into one entry per member MAIN_CATEGORY so that
// lookups by category hit directly. MAIN_CATEGORY keys and "default" pass
// through unchanged.
func (p *ScoringPolicy) NormalizeWeights() {
	normalized := make(map[string]map[string]float64, len(p.Weights))
	for key, weights := range p.Weights {
		if !catalog.IsBucket(key) {
			normalized[key] = weights
			continue
		}
		members := catalog.MainCategoriesFor(key)
		if len(members) == 0 {
			normalized[key] = weights
			continue
		}
		for _, mc := range members {
			cw := make(map[string]float64, len(weights))
			for attr, w := range weights {
				cw[attr] = w
			}
			normalized[mc] = cw
		}
	}
	p.Weights = normalized
}

// normalizeL1 rescales a weight table so its values sum to 1.
// Empty or all-zero tables are left alone.
func normalizeL1(weights map[string]float64) {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return
	}
	for attr := range weights {
		weights[attr] /= total
	}
}

// NormalizeL1 rescales every category's weights to sum to 1.
func (p *ScoringPolicy) NormalizeL1() {
	for _, weights := range p.Weights {
		normalizeL1(weights)
	}
}

// tasteFileName returns the canonical override file name for a taste.
func tasteFileName(tasteID int) string {
	return fmt.Sprintf("taste_%03d.json", tasteID)
}

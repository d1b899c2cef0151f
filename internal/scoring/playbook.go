// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package scoring

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/models"
)

// SpecRule scores one (answer, category, spec key) combination. When
// IdealRange is set the score degrades with distance from the range.
type SpecRule struct {
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	SpecKey    string    `json:"spec_key"`
	IdealRange []float64 `json:"ideal_range,omitempty"`
	Tolerance  float64   `json:"tolerance,omitempty"`
	Score      float64   `json:"score"`
}

// PreferenceRule maps one onboarding priority at one rank to the spec
// attributes it rewards.
type PreferenceRule struct {
	Priority    string   `json:"priority"`
	Rank        string   `json:"rank"`
	Multiplier  float64  `json:"multiplier"`
	TargetSpecs []string `json:"target_specs,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// LifestyleRule scores one (lifestyle answer, category, spec key)
// combination.
type LifestyleRule struct {
	Lifestyle  string    `json:"lifestyle"`
	Category   string    `json:"category"`
	SpecKey    string    `json:"spec_key"`
	IdealRange []float64 `json:"ideal_range,omitempty"`
	Score      float64   `json:"score"`
}

// ConditionRule pairs a condition expression with a score. Conditions
// are clauses over avg_rating, review_count, price and budget joined
// with &&, e.g. "avg_rating >= 4.5 && review_count >= 100" or
// "price <= budget * 1.1". The first matching rule wins.
type ConditionRule struct {
	Condition string  `json:"condition"`
	Score     float64 `json:"score"`
}

// Rules is the full playbook rule set, loadable from a weight-rules
// JSON file.
type Rules struct {
	SpecRules       []SpecRule       `json:"spec_score_rules"`
	PreferenceRules []PreferenceRule `json:"preference_score_rules"`
	LifestyleRules  []LifestyleRule  `json:"lifestyle_score_rules"`
	ReviewRules     []ConditionRule  `json:"review_score_rules"`
	PriceRules      []ConditionRule  `json:"price_score_rules"`
}

// LoadRules reads a rule set from a JSON file.
func LoadRules(path string) (*Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	var rules Rules
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return &rules, nil
}

// preferenceTargets are the default spec attributes each priority rewards.
var preferenceTargets = map[string][]string{
	"design": {"design", "panel_type"},
	"tech":   {"ai_feature"},
	"eco":    {"energy_efficiency"},
	"value":  {"price_match"},
}

var rankMultipliers = []float64{1.3, 1.2, 1.1}

// DefaultRules returns the stock rule set used when no rules file is
// configured.
func DefaultRules() *Rules {
	rules := &Rules{
		SpecRules: []SpecRule{
			{Answer: "1인", Category: catalog.BucketKitchen, SpecKey: "capacity_l", IdealRange: []float64{100, 200}, Tolerance: 50, Score: 10},
			{Answer: "2인", Category: catalog.BucketKitchen, SpecKey: "capacity_l", IdealRange: []float64{200, 400}, Tolerance: 50, Score: 10},
			{Answer: "3인", Category: catalog.BucketKitchen, SpecKey: "capacity_l", IdealRange: []float64{300, 500}, Tolerance: 50, Score: 10},
			{Answer: "4인", Category: catalog.BucketKitchen, SpecKey: "capacity_l", IdealRange: []float64{400, 700}, Tolerance: 50, Score: 10},
			{Answer: "5인", Category: catalog.BucketKitchen, SpecKey: "capacity_l", IdealRange: []float64{500, 870}, Tolerance: 50, Score: 10},
			{Answer: "영화", Category: catalog.BucketTV, SpecKey: "panel_type", Score: 15},
			{Answer: "게임", Category: catalog.BucketTV, SpecKey: "refresh_rate", Score: 15},
			{Answer: "드레스룸", Category: catalog.BucketLiving, SpecKey: "category_bonus", Score: 5},
		},
		LifestyleRules: []LifestyleRule{
			{Lifestyle: "요리_high", Category: catalog.BucketKitchen, SpecKey: "capacity_l", Score: 10},
			{Lifestyle: "세탁_daily", Category: catalog.BucketLiving, SpecKey: "capacity_kg", IdealRange: []float64{15, 25}, Score: 5},
			{Lifestyle: "게임", Category: catalog.BucketTV, SpecKey: "refresh_rate", Score: 12},
		},
		ReviewRules: []ConditionRule{
			{Condition: "avg_rating >= 4.7 && review_count >= 200", Score: 15},
			{Condition: "avg_rating >= 4.5", Score: 12},
			{Condition: "avg_rating >= 4.0", Score: 8},
			{Condition: "avg_rating >= 3.5", Score: 4},
			{Condition: "", Score: -3},
		},
		PriceRules: []ConditionRule{
			{Condition: "price <= budget", Score: 15},
			{Condition: "price <= budget * 1.1", Score: 8},
			{Condition: "price <= budget * 1.3", Score: 2},
			{Condition: "", Score: -10},
		},
	}
	for priority, targets := range preferenceTargets {
		for i, mult := range rankMultipliers {
			rules.PreferenceRules = append(rules.PreferenceRules, PreferenceRule{
				Priority:    priority,
				Rank:        models.RankLabel(i + 1),
				Multiplier:  mult,
				TargetSpecs: targets,
				Keywords:    []string{"AI", "ThinQ", "스마트"},
			})
		}
	}
	return rules
}

func (r *Rules) specRule(answer, category, specKey string) (SpecRule, bool) {
	for _, rule := range r.SpecRules {
		if rule.Answer == answer && rule.Category == category && rule.SpecKey == specKey {
			return rule, true
		}
	}
	return SpecRule{}, false
}

func (r *Rules) preferenceRule(priority, rank string) (PreferenceRule, bool) {
	for _, rule := range r.PreferenceRules {
		if rule.Priority == priority && rule.Rank == rank {
			return rule, true
		}
	}
	return PreferenceRule{}, false
}

func (r *Rules) lifestyleRule(lifestyle, category, specKey string) (LifestyleRule, bool) {
	for _, rule := range r.LifestyleRules {
		if rule.Lifestyle == lifestyle && rule.Category == category && rule.SpecKey == specKey {
			return rule, true
		}
	}
	return LifestyleRule{}, false
}

// PlaybookScorer is the rule-table scoring path: five additive
// components plus a product-type multiplier on the total.
type PlaybookScorer struct {
	rules *Rules
}

// NewPlaybookScorer creates a scorer; nil rules fall back to the stock
// rule set.
func NewPlaybookScorer(rules *Rules) *PlaybookScorer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &PlaybookScorer{rules: rules}
}

// Score computes the five-component breakdown for a product. Components
// round to one decimal; the total carries the type multiplier.
func (s *PlaybookScorer) Score(p *models.Product, profile *models.UserProfile) models.ScoreBreakdown {
	breakdown := models.ScoreBreakdown{
		SpecScore:       round1(s.specScore(p, profile)),
		PreferenceScore: round1(s.preferenceScore(p, profile)),
		LifestyleScore:  round1(s.lifestyleScore(p, profile)),
		ReviewScore:     round1(s.reviewScore(p)),
		PriceScore:      round1(s.priceScore(p, profile)),
	}

	total := breakdown.SpecScore + breakdown.PreferenceScore +
		breakdown.LifestyleScore + breakdown.ReviewScore + breakdown.PriceScore

	productType, ok := catalog.ProductType(p)
	if ok {
		total *= TypeMultiplier(productType, profile)
	}
	breakdown.Total = round1(total)
	return breakdown
}

// specScore rewards hardware that fits the household: refrigerator
// capacity against the family-size rule, TV panel and refresh rate
// against media habits, clothing care against the main space.
func (s *PlaybookScorer) specScore(p *models.Product, profile *models.UserProfile) float64 {
	if len(p.Specs) == 0 {
		return 0
	}

	var score float64
	bucket := catalog.Bucket(p.MainCategory)

	if strings.Contains(p.Name, "냉장고") || bucket == catalog.BucketKitchen {
		if capacity, ok := catalog.Capacity(p); ok && profile.HouseholdSize > 0 {
			answer := fmt.Sprintf("%d인", profile.HouseholdSize)
			if rule, ok := s.rules.specRule(answer, catalog.BucketKitchen, "capacity_l"); ok {
				score += capacityRuleScore(rule, capacity)
			}
		}
	}

	if bucket == catalog.BucketTV {
		if profile.Media == "ott" || profile.Media == "movie" {
			if ScorePanelType(p) >= 0.9 {
				score += s.specRuleScore("영화", "panel_type", 15)
			} else {
				score += 5
			}
		}
		if refresh, ok := specNumber(p, "주사율"); ok {
			switch {
			case refresh >= 120:
				score += s.specRuleScore("게임", "refresh_rate", 15)
			case refresh >= 60:
				score += 5
			}
		}
	}

	if profile.MainSpace == "dressing" || profile.MainSpace == "all" {
		if bucket == catalog.BucketLiving ||
			strings.Contains(p.Name, "세탁기") || strings.Contains(p.Name, "건조기") {
			if rule, ok := s.rules.specRule("드레스룸", catalog.BucketLiving, "category_bonus"); ok {
				score += rule.Score
			} else {
				score += 5
			}
		}
	}

	return math.Max(0, score)
}

func (s *PlaybookScorer) specRuleScore(answer, specKey string, fallback float64) float64 {
	if rule, ok := s.rules.specRule(answer, catalog.BucketTV, specKey); ok {
		return rule.Score
	}
	return fallback
}

// capacityRuleScore grades a capacity against a rule's ideal range:
// full score inside, degrading inside the tolerance band, a flat
// fraction outside.
func capacityRuleScore(rule SpecRule, capacity float64) float64 {
	if len(rule.IdealRange) != 2 {
		return rule.Score
	}
	lo, hi := rule.IdealRange[0], rule.IdealRange[1]
	tolerance := rule.Tolerance
	if tolerance <= 0 {
		tolerance = 50
	}
	score := rule.Score
	if score <= 0 {
		score = 10
	}

	switch {
	case capacity >= lo && capacity <= hi:
		return score
	case capacity >= lo-tolerance && capacity <= hi+tolerance:
		dist := math.Min(math.Abs(capacity-lo), math.Abs(capacity-hi))
		return score * (1 - dist/tolerance)
	case capacity < lo:
		return score * 0.3
	default:
		return score * 0.5
	}
}

// preferenceScore rewards the top-3 onboarding priorities, weighted by
// rank.
func (s *PlaybookScorer) preferenceScore(p *models.Product, profile *models.UserProfile) float64 {
	var score float64

	for i, priority := range profile.Priority {
		if i >= len(rankMultipliers) {
			break
		}
		priority = strings.ToLower(priority)

		rule, ok := s.rules.preferenceRule(priority, models.RankLabel(i+1))
		if !ok {
			rule = PreferenceRule{
				Multiplier:  rankMultipliers[i],
				TargetSpecs: preferenceTargets[priority],
				Keywords:    []string{"AI", "ThinQ", "스마트"},
			}
		}
		if rule.Multiplier <= 0 {
			rule.Multiplier = rankMultipliers[i]
		}

		var sum float64
		var count int
		for _, target := range rule.TargetSpecs {
			switch target {
			case "design":
				sum += ScoreDesign(p, profile) * 10
			case "panel_type":
				sum += ScorePanelType(p) * 10
			case "energy_efficiency":
				sum += ScoreEnergyEfficiency(p) * 10
			case "price_match":
				sum += ScorePriceMatch(p, profile) * 10
			case "ai_feature", "thinq", "smart":
				if nameContainsAny(p.Name, rule.Keywords) {
					sum += 8
				}
			default:
				continue
			}
			count++
		}
		if count > 0 {
			score += (sum / float64(count)) * (rule.Multiplier - 1)
		}
	}

	return math.Max(0, score)
}

// lifestyleScore rewards fit with cooking, laundry and media habits.
func (s *PlaybookScorer) lifestyleScore(p *models.Product, profile *models.UserProfile) float64 {
	var score float64
	bucket := catalog.Bucket(p.MainCategory)
	capacity, hasCapacity := catalog.Capacity(p)

	if (profile.Cooking == "high" || profile.Cooking == "often") &&
		strings.Contains(p.Name, "냉장고") && hasCapacity && capacity >= 700 {
		if rule, ok := s.rules.lifestyleRule("요리_high", catalog.BucketKitchen, "capacity_l"); ok {
			score += rule.Score
		} else {
			score += 10
		}
	}

	if profile.Laundry == "daily" && strings.Contains(p.Name, "세탁기") && hasCapacity {
		if rule, ok := s.rules.lifestyleRule("세탁_daily", catalog.BucketLiving, "capacity_kg"); ok &&
			len(rule.IdealRange) == 2 &&
			capacity >= rule.IdealRange[0] && capacity <= rule.IdealRange[1] {
			score += rule.Score
		}
	}

	if profile.Media == "gaming" && bucket == catalog.BucketTV {
		if refresh, ok := specNumber(p, "주사율"); ok && refresh >= 120 {
			if rule, ok := s.rules.lifestyleRule("게임", catalog.BucketTV, "refresh_rate"); ok {
				score += rule.Score
			} else {
				score += 12
			}
		}
	}

	return math.Max(0, score)
}

// reviewScore grades social proof. Products with reviews but no rating
// get a small count-based score.
func (s *PlaybookScorer) reviewScore(p *models.Product) float64 {
	if p.ReviewCount == 0 {
		return 0
	}
	if p.ReviewRating == 0 {
		switch {
		case p.ReviewCount >= 200:
			return 3
		case p.ReviewCount >= 100:
			return 2
		case p.ReviewCount >= 50:
			return 1
		default:
			return 0
		}
	}

	for _, rule := range s.rules.ReviewRules {
		if evalCondition(rule.Condition, p.ReviewRating, float64(p.ReviewCount), 0, 0) {
			return rule.Score
		}
	}
	return 0
}

// priceScore grades the effective price against the budget reference.
func (s *PlaybookScorer) priceScore(p *models.Product, profile *models.UserProfile) float64 {
	price := float64(p.EffectivePrice())
	budget := float64(profile.ReferencePrice())
	if budget <= 0 {
		return 0
	}

	for _, rule := range s.rules.PriceRules {
		if evalCondition(rule.Condition, 0, 0, price, budget) {
			return rule.Score
		}
	}
	return 0
}

// evalCondition evaluates a rule condition over the known variables.
// An empty condition always matches. Unknown clauses fail the rule.
func evalCondition(condition string, avgRating, reviewCount, price, budget float64) bool {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return true
	}

	for _, clause := range strings.Split(condition, "&&") {
		fields := strings.Fields(clause)
		if len(fields) < 3 {
			return false
		}

		var left float64
		switch fields[0] {
		case "avg_rating":
			left = avgRating
		case "review_count":
			left = reviewCount
		case "price":
			left = price
		default:
			return false
		}

		right, ok := evalOperand(fields[2:], budget)
		if !ok {
			return false
		}

		switch fields[1] {
		case ">=":
			ok = left >= right
		case ">":
			ok = left > right
		case "<=":
			ok = left <= right
		case "<":
			ok = left < right
		case "==":
			ok = left == right
		default:
			return false
		}
		if !ok {
			return false
		}
	}
	return true
}

// evalOperand resolves a right-hand side: a number, "budget", or
// "budget * factor".
func evalOperand(fields []string, budget float64) (float64, bool) {
	switch {
	case len(fields) == 1 && fields[0] == "budget":
		return budget, true
	case len(fields) == 3 && fields[0] == "budget" && fields[1] == "*":
		factor, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return 0, false
		}
		return budget * factor, true
	case len(fields) == 1:
		v, err := strconv.ParseFloat(fields[0], 64)
		return v, err == nil
	default:
		return 0, false
	}
}

func specNumber(p *models.Product, keys ...string) (float64, bool) {
	raw, ok := p.Spec(keys...)
	if !ok {
		return 0, false
	}
	return catalog.ParseNumber(raw)
}

func nameContainsAny(name string, keywords []string) bool {
	upper := strings.ToUpper(name)
	for _, kw := range keywords {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

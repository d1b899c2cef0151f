// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/filter"
	"github.com/dwkim-lab/homepick/internal/logging"
	"github.com/dwkim-lab/homepick/internal/metrics"
	"github.com/dwkim-lab/homepick/internal/models"
	"github.com/dwkim-lab/homepick/internal/policy"
	"github.com/dwkim-lab/homepick/internal/scoring"
)

const (
	// DefaultLimit caps the weighted path when the caller passes no limit.
	DefaultLimit = 3

	// perTypeLimit caps each product type slot of the playbook path.
	perTypeLimit = 3

	noCandidatesMessage = "조건에 맞는 제품이 없습니다."
)

// Catalog supplies the active product snapshot for a recommendation run.
// Implementations filter by main category when categories is non-empty.
type Catalog interface {
	Products(ctx context.Context, categories []string) ([]*models.Product, error)
}

// Engine runs both recommendation paths over a catalog snapshot: the
// weighted-average path ranks all candidates on one scale, the playbook
// path fills per-type slots for a whole-home bundle.
type Engine struct {
	catalog  Catalog
	registry *policy.Registry
	filter   *filter.HardFilter
	playbook *scoring.PlaybookScorer
	logger   zerolog.Logger
}

// New creates an engine. filter and playbook may be nil; the engine then
// uses the built-in rule tables.
func New(cat Catalog, registry *policy.Registry, f *filter.HardFilter, pb *scoring.PlaybookScorer) *Engine {
	if f == nil {
		f = filter.New(nil)
	}
	if pb == nil {
		pb = scoring.NewPlaybookScorer(nil)
	}
	return &Engine{
		catalog:  cat,
		registry: registry,
		filter:   f,
		playbook: pb,
		logger:   logging.WithComponent("engine"),
	}
}

// Recommend runs the weighted-average path: every surviving candidate is
// scored on the taste's policy and the top limit products are returned in
// one flat ranking.
func (e *Engine) Recommend(ctx context.Context, profile *models.UserProfile, tasteID, limit int) (*models.RecommendationResult, error) {
	start := time.Now()

	if err := profile.Validate(); err != nil {
		metrics.RecordRecommendation("weighted", "invalid", time.Since(start))
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates, err := e.candidates(ctx, profile)
	if err != nil {
		metrics.RecordRecommendation("weighted", "error", time.Since(start))
		return nil, err
	}
	if len(candidates) == 0 {
		metrics.RecordRecommendation("weighted", "empty", time.Since(start))
		return emptyResult(), nil
	}

	pol := e.registry.ResolveFor(tasteID, profile)
	scorer := scoring.NewWeightedScorer(pol)

	scoreStart := time.Now()
	type scored struct {
		product *models.Product
		score   float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		ranked = append(ranked, scored{product: p, score: round2(scorer.Score(p, profile))})
	}
	metrics.RecordScoring("weighted", time.Since(scoreStart))

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].product.ID < ranked[j].product.ID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	items := make([]models.Recommendation, 0, len(ranked))
	for i, r := range ranked {
		items = append(items, e.weightedItem(r.product, profile, r.score, i+1))
	}

	e.logger.Debug().
		Int("taste_id", tasteID).
		Str("policy", pol.LogicID).
		Int("candidates", len(candidates)).
		Int("returned", len(items)).
		Msg("Weighted recommendation complete")

	metrics.RecordRecommendation("weighted", "ok", time.Since(start))
	return &models.RecommendationResult{
		Success:         true,
		Count:           len(items),
		Recommendations: items,
	}, nil
}

// Playbook runs the whole-home path: required types first, then the
// conditional types the profile unlocks, each slot holding up to three
// products ranked by breakdown total.
func (e *Engine) Playbook(ctx context.Context, profile *models.UserProfile, tasteID int) (*models.RecommendationResult, error) {
	start := time.Now()

	if err := profile.Validate(); err != nil {
		metrics.RecordRecommendation("playbook", "invalid", time.Since(start))
		return nil, err
	}

	candidates, err := e.candidates(ctx, profile)
	if err != nil {
		metrics.RecordRecommendation("playbook", "error", time.Since(start))
		return nil, err
	}
	if len(candidates) == 0 {
		metrics.RecordRecommendation("playbook", "empty", time.Since(start))
		return emptyResult(), nil
	}

	required, optional := PlaybookTypes(profile)
	grouped := catalog.GroupByType(candidates)

	scoreStart := time.Now()
	var items []models.Recommendation
	seenIDs := make(map[int64]struct{})
	seenNames := make(map[string]struct{})

	for _, productType := range append(append([]string{}, required...), optional...) {
		pool := grouped[productType]
		if len(pool) == 0 {
			continue
		}

		top := e.topForType(pool, profile)
		slotRank := 0
		for _, t := range top {
			if _, dup := seenIDs[t.product.ID]; dup {
				continue
			}
			if _, dup := seenNames[t.product.Name]; dup {
				continue
			}
			seenIDs[t.product.ID] = struct{}{}
			seenNames[t.product.Name] = struct{}{}
			slotRank++

			breakdown := t.breakdown
			items = append(items, models.Recommendation{
				ProductID:       t.product.ID,
				Name:            t.product.Name,
				ModelNumber:     t.product.ModelNumber,
				MainCategory:    t.product.MainCategory,
				Category:        t.product.Category,
				CategoryDisplay: catalog.DisplayName(catalog.Bucket(t.product.MainCategory)),
				ProductType:     productType,
				Price:           t.product.Price,
				DiscountPrice:   t.product.DiscountPrice,
				ImageURL:        t.product.ImageURL,
				Score:           breakdown.Total,
				Breakdown:       &breakdown,
				RankLabel:       models.RankLabel(slotRank),
				Reason:          whySummary(t.product, breakdown, profile),
				Explanation:     explain(t.product, breakdown, profile),
			})
		}
	}
	metrics.RecordScoring("playbook", time.Since(scoreStart))

	if len(items) == 0 {
		metrics.RecordRecommendation("playbook", "empty", time.Since(start))
		return emptyResult(), nil
	}
	for i := range items {
		items[i].Rank = i + 1
	}

	e.logger.Debug().
		Int("taste_id", tasteID).
		Int("candidates", len(candidates)).
		Strs("required_types", required).
		Strs("optional_types", optional).
		Int("returned", len(items)).
		Msg("Playbook recommendation complete")

	metrics.RecordRecommendation("playbook", "ok", time.Since(start))
	return &models.RecommendationResult{
		Success:            true,
		Count:              len(items),
		Recommendations:    items,
		UserProfileSummary: ProfileSummary(profile),
	}, nil
}

// candidates loads the snapshot and applies the hard filter.
func (e *Engine) candidates(ctx context.Context, profile *models.UserProfile) ([]*models.Product, error) {
	products, err := e.catalog.Products(ctx, profile.Categories)
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}

	survivors := e.filter.Apply(products, profile)
	metrics.RecordFilter(len(products), len(survivors))
	return survivors, nil
}

type playbookScored struct {
	product   *models.Product
	breakdown models.ScoreBreakdown
}

// topForType scores one type pool and keeps the best three, ties broken by
// the lower product ID.
func (e *Engine) topForType(pool []*models.Product, profile *models.UserProfile) []playbookScored {
	ranked := make([]playbookScored, 0, len(pool))
	for _, p := range pool {
		ranked = append(ranked, playbookScored{product: p, breakdown: e.playbook.Score(p, profile)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].breakdown.Total != ranked[j].breakdown.Total {
			return ranked[i].breakdown.Total > ranked[j].breakdown.Total
		}
		return ranked[i].product.ID < ranked[j].product.ID
	})
	if len(ranked) > perTypeLimit {
		ranked = ranked[:perTypeLimit]
	}
	return ranked
}

func (e *Engine) weightedItem(p *models.Product, profile *models.UserProfile, score float64, rank int) models.Recommendation {
	productType, ok := catalog.ProductType(p)
	if !ok {
		productType = ""
	}
	return models.Recommendation{
		ProductID:       p.ID,
		Name:            p.Name,
		ModelNumber:     p.ModelNumber,
		MainCategory:    p.MainCategory,
		Category:        p.Category,
		CategoryDisplay: catalog.DisplayName(catalog.Bucket(p.MainCategory)),
		ProductType:     productType,
		Price:           p.Price,
		DiscountPrice:   p.DiscountPrice,
		ImageURL:        p.ImageURL,
		Score:           score,
		Rank:            rank,
		Reason:          weightedReason(p, profile, score),
	}
}

func emptyResult() *models.RecommendationResult {
	return &models.RecommendationResult{
		Success:         false,
		Count:           0,
		Recommendations: []models.Recommendation{},
		Message:         noCandidatesMessage,
	}
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	// normalize negative zero for stable JSON output
	if r == 0 {
		return 0
	}
	return r
}

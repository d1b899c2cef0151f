// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package policy

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dwkim-lab/homepick/internal/logging"
	"github.com/dwkim-lab/homepick/internal/metrics"
	"github.com/dwkim-lab/homepick/internal/models"
)

// Registry resolves scoring policies per taste with an in-memory cache.
//
// Resolution order:
//  1. per-taste override file (taste_{id:03d}.json)
//  2. persisted override (BadgerDB)
//  3. shared policy file entry (applies_to_taste_ids)
//  4. dynamic synthesis, when onboarding answers are present
//  5. generated base policy
type Registry struct {
	files *FileStore
	store *BadgerStore
	bus   *Bus

	mu    sync.RWMutex
	cache map[string]*ScoringPolicy

	warnMu sync.Mutex
	warned map[string]struct{}

	logger zerolog.Logger
}

// NewRegistry creates a policy registry. store and bus may be nil; the
// registry then runs file-only without persistence or eventing.
func NewRegistry(files *FileStore, store *BadgerStore, bus *Bus) *Registry {
	return &Registry{
		files:  files,
		store:  store,
		bus:    bus,
		cache:  make(map[string]*ScoringPolicy),
		warned: make(map[string]struct{}),
		logger: logging.WithComponent("policy-registry"),
	}
}

// ResolveFor returns the scoring policy for a taste, consulting the cache
// first. The returned policy is a private copy; callers may mutate it.
func (r *Registry) ResolveFor(tasteID int, profile *models.UserProfile) *ScoringPolicy {
	key := cacheKey(tasteID, profile)

	r.mu.RLock()
	cached, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		metrics.RecordPolicyResolution(cached.Source, true)
		return cached.Clone()
	}

	resolved := r.resolve(tasteID, profile)
	metrics.RecordPolicyResolution(resolved.Source, false)

	r.mu.Lock()
	r.cache[key] = resolved
	r.mu.Unlock()

	return resolved.Clone()
}

func (r *Registry) resolve(tasteID int, profile *models.UserProfile) *ScoringPolicy {
	if p, err := r.files.LoadTaste(tasteID); err == nil {
		p.Source = SourceTasteFile
		return p
	} else if !errors.Is(err, ErrNotFound) {
		r.warnOnce("taste_file", tasteID, err)
	}

	if r.store != nil {
		if p, err := r.store.Get(tasteID); err == nil {
			p.Source = SourceTasteFile
			return p
		} else if !errors.Is(err, ErrNotFound) {
			r.warnOnce("badger", tasteID, err)
		}
	}

	if p, err := r.files.LoadShared(tasteID); err == nil {
		p.Source = SourceSharedFile
		return p
	} else if !errors.Is(err, ErrNotFound) {
		r.warnOnce("shared_file", tasteID, err)
	}

	if hasOnboarding(profile) {
		return SynthesizeFor(tasteID, profile)
	}

	return BaseFor(tasteID, profile)
}

// Save persists a taste override to disk and BadgerDB, then invalidates
// cached entries for the taste and announces the change on the bus.
func (r *Registry) Save(tasteID int, p *ScoringPolicy) error {
	p.NormalizeWeights()

	if err := r.files.SaveTaste(tasteID, p); err != nil {
		return err
	}
	if r.store != nil {
		if err := r.store.Put(tasteID, p); err != nil {
			return err
		}
	}

	r.Invalidate(tasteID)

	if r.bus != nil {
		if err := r.bus.PublishInvalidation(tasteID); err != nil {
			r.logger.Warn().Err(err).Int("taste_id", tasteID).
				Msg("Policy saved but invalidation event not published")
		}
	}
	return nil
}

// Invalidate drops every cache entry for the taste.
func (r *Registry) Invalidate(tasteID int) {
	prefix := fmt.Sprintf("%d|", tasteID)

	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.cache {
		if strings.HasPrefix(key, prefix) {
			delete(r.cache, key)
		}
	}
	metrics.PolicyInvalidations.Inc()
}

// ClearCache drops all cached policies.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*ScoringPolicy)
}

// CacheLen reports the number of cached entries.
func (r *Registry) CacheLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// warnOnce logs a layer failure once per layer+taste so a corrupt file does
// not flood the log on every request.
func (r *Registry) warnOnce(layer string, tasteID int, err error) {
	key := fmt.Sprintf("%s:%d", layer, tasteID)

	r.warnMu.Lock()
	_, seen := r.warned[key]
	if !seen {
		r.warned[key] = struct{}{}
	}
	r.warnMu.Unlock()

	if !seen {
		r.logger.Warn().Err(err).Str("layer", layer).Int("taste_id", tasteID).
			Msg("Policy layer unavailable, falling through")
	}
}

// hasOnboarding reports whether the profile carries enough onboarding
// signal to synthesize a dynamic policy.
func hasOnboarding(profile *models.UserProfile) bool {
	if profile == nil {
		return false
	}
	return len(profile.Onboarding) > 0 ||
		profile.Vibe != "" ||
		len(profile.Priority) > 0 ||
		profile.HouseholdSize > 0
}

// cacheKey is "{tasteID}|{profile hash}" so Invalidate can match on the
// taste prefix regardless of the onboarding variant.
func cacheKey(tasteID int, profile *models.UserProfile) string {
	return fmt.Sprintf("%d|%s", tasteID, profileHash(profile))
}

// profileHash is a deterministic digest of the onboarding answers.
func profileHash(profile *models.UserProfile) string {
	if profile == nil {
		return "default"
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%t|%s|%d|%s|%s|%s|%s|%s",
		profile.Vibe, profile.HouseholdSize, profile.HasPet,
		profile.HousingType, profile.Pyung,
		strings.Join(profile.Priority, ","),
		profile.BudgetLevel, profile.Cooking, profile.Laundry, profile.Media)

	keys := make([]string, 0, len(profile.Onboarding))
	for k := range profile.Onboarding {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "|%s=%s", k, profile.Onboarding[k])
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

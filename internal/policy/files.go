// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package policy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// ErrNotFound reports that no stored policy exists for the taste.
var ErrNotFound = errors.New("policy not found")

// FileStore reads and writes policy files on disk. TastesDir holds one
// taste_{id:03d}.json override per taste; SharedPath is the shared
// taste_scoring_logics.json carrying an array of policies with
// applies_to_taste_ids lists.
type FileStore struct {
	TastesDir  string
	SharedPath string
}

// NewFileStore creates a FileStore rooted at dir, using dir/tastes for
// overrides and dir/taste_scoring_logics.json for the shared file.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		TastesDir:  filepath.Join(dir, "tastes"),
		SharedPath: filepath.Join(dir, "taste_scoring_logics.json"),
	}
}

// LoadTaste loads the per-taste override file. ErrNotFound when absent.
func (s *FileStore) LoadTaste(tasteID int) (*ScoringPolicy, error) {
	path := filepath.Join(s.TastesDir, tasteFileName(tasteID))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read taste file: %w", err)
	}

	var p ScoringPolicy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse taste file %s: %w", path, err)
	}
	p.NormalizeWeights()
	return &p, nil
}

// LoadShared returns a copy of the shared-file policy whose
// applies_to_taste_ids names the taste. ErrNotFound when the file is absent
// or no entry applies.
func (s *FileStore) LoadShared(tasteID int) (*ScoringPolicy, error) {
	data, err := os.ReadFile(s.SharedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read shared policy file: %w", err)
	}

	var policies []*ScoringPolicy
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, fmt.Errorf("parse shared policy file %s: %w", s.SharedPath, err)
	}

	for _, p := range policies {
		if p.AppliesToTaste(tasteID) {
			out := p.Clone()
			out.NormalizeWeights()
			return out, nil
		}
	}
	return nil, ErrNotFound
}

// SaveTaste writes a per-taste override file, creating the tastes directory
// on first use.
func (s *FileStore) SaveTaste(tasteID int, p *ScoringPolicy) error {
	if err := os.MkdirAll(s.TastesDir, 0o755); err != nil {
		return fmt.Errorf("create tastes dir: %w", err)
	}

	p.TasteID = tasteID
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}

	path := filepath.Join(s.TastesDir, tasteFileName(tasteID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write taste file: %w", err)
	}
	return nil
}

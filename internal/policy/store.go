// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package policy

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const policyKeyPrefix = "policy:taste:"

// BadgerStore persists saved policy overrides in BadgerDB so PUT overrides
// survive restarts. Filesystem files still win during resolution.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a BadgerDB-backed policy store.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func policyKey(tasteID int) []byte {
	return []byte(fmt.Sprintf("%s%03d", policyKeyPrefix, tasteID))
}

// Put stores a policy override for a taste.
func (s *BadgerStore) Put(tasteID int, p *ScoringPolicy) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(policyKey(tasteID), data)
	})
}

// Get retrieves a stored override. ErrNotFound when absent.
func (s *BadgerStore) Get(tasteID int) (*ScoringPolicy, error) {
	var p ScoringPolicy

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(policyKey(tasteID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get policy: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if err != nil {
		return nil, err
	}

	p.NormalizeWeights()
	return &p, nil
}

// Delete removes a stored override. Deleting a missing key is not an error.
func (s *BadgerStore) Delete(tasteID int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(policyKey(tasteID))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete policy: %w", err)
		}
		return nil
	})
}

// TasteIDs lists the taste IDs with stored overrides.
func (s *BadgerStore) TasteIDs() ([]int, error) {
	var ids []int

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(policyKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id int
			key := string(it.Item().Key())
			if _, err := fmt.Sscanf(key[len(policyKeyPrefix):], "%d", &id); err != nil {
				continue
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan policies: %w", err)
	}

	return ids, nil
}

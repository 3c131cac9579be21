// Package selection keeps a user's in-progress consignment selection across
// page navigations. The working set is one JSON blob per user; every
// operation is a full read-modify-write behind a store-wide mutex, so there
// are no partial-write states.
package selection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sangamtransport/models"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(userID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("selection_%d.json", userID))
}

func (s *Store) read(userID int64) ([]models.ConsignmentKey, error) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.ConsignmentKey{}, nil
		}
		return nil, err
	}
	var keys []models.ConsignmentKey
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// write replaces the blob via temp file + rename so a crash mid-write never
// leaves a truncated list behind.
func (s *Store) write(userID int64, keys []models.ConsignmentKey) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	tmp := s.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(userID))
}

func (s *Store) Get(userID int64) ([]models.ConsignmentKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(userID)
}

// Add appends the given keys, skipping any already present. It doubles as
// bulk-add.
func (s *Store) Add(userID int64, keys ...models.ConsignmentKey) ([]models.ConsignmentKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[models.ConsignmentKey]bool, len(current))
	for _, k := range current {
		seen[k] = true
	}
	for _, k := range keys {
		if !seen[k] {
			current = append(current, k)
			seen[k] = true
		}
	}
	if err := s.write(userID, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Remove drops the given keys; unknown keys are ignored. It doubles as
// bulk-remove.
func (s *Store) Remove(userID int64, keys ...models.ConsignmentKey) ([]models.ConsignmentKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(userID)
	if err != nil {
		return nil, err
	}
	drop := make(map[models.ConsignmentKey]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	next := current[:0]
	for _, k := range current {
		if !drop[k] {
			next = append(next, k)
		}
	}
	if err := s.write(userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Toggle adds the key when absent and removes it when present. Toggling
// twice restores the original membership.
func (s *Store) Toggle(userID int64, key models.ConsignmentKey) ([]models.ConsignmentKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(userID)
	if err != nil {
		return nil, err
	}
	found := false
	next := current[:0]
	for _, k := range current {
		if k == key {
			found = true
			continue
		}
		next = append(next, k)
	}
	if !found {
		next = append(next, key)
	}
	if err := s.write(userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Store) Clear(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(userID, []models.ConsignmentKey{})
}

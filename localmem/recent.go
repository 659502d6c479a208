// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package localmem

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

const recentGroupsKey = "recent-groups"

// MaxRecentGroups caps the recently-visited list; the oldest visit is
// evicted past this.
const MaxRecentGroups = 10

// RecentGroup is one entry on the recently-visited list.
type RecentGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LastVisited time.Time `json:"datetime"`
}

// RecentGroups returns the recently-visited groups, oldest visit
// first. The empty list is persisted on first call.
func (s *Store) RecentGroups() ([]RecentGroup, error) {
	raw, found, err := s.get(recentGroupsKey)
	if err != nil {
		return nil, err
	}

	groups := []RecentGroup{}
	if found {
		if err := json.Unmarshal(raw, &groups); err != nil {
			slog.Warn("discarding unparsable recent groups", "error", err)
			groups = []RecentGroup{}
			found = false
		}
	}
	if !found {
		if err := s.saveRecentGroups(groups); err != nil {
			return nil, err
		}
	}

	slices.SortStableFunc(groups, func(a, b RecentGroup) int {
		return a.LastVisited.Compare(b.LastVisited)
	})
	return groups, nil
}

// UpsertRecentGroup records a visit. An existing entry has its name
// and visit time refreshed in place; a new entry is appended, evicting
// the oldest-visited entry when the list would exceed MaxRecentGroups.
func (s *Store) UpsertRecentGroup(recent RecentGroup) error {
	groups, err := s.RecentGroups()
	if err != nil {
		return err
	}

	updated := false
	for i := range groups {
		if groups[i].ID == recent.ID {
			groups[i].Name = recent.Name
			groups[i].LastVisited = recent.LastVisited
			updated = true
			break
		}
	}
	if !updated {
		groups = append(groups, recent)
		if len(groups) > MaxRecentGroups {
			groups = removeOldest(groups)
		}
	}

	return s.saveRecentGroups(groups)
}

func (s *Store) saveRecentGroups(groups []RecentGroup) error {
	encoded, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to encode recent groups: %w", err)
	}
	return s.set(recentGroupsKey, encoded)
}

// removeOldest drops exactly the entry with the oldest visit time.
func removeOldest(groups []RecentGroup) []RecentGroup {
	oldest := groups[0]
	for _, group := range groups {
		if group.LastVisited.Before(oldest.LastVisited) {
			oldest = group
		}
	}

	kept := make([]RecentGroup, 0, len(groups)-1)
	for _, group := range groups {
		if group.ID != oldest.ID {
			kept = append(kept, group)
		}
	}
	return kept
}

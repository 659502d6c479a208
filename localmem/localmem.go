// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package localmem

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// groupRecord stores this client's interactions with one group. One
// record per group, serialized as a single JSON blob under "group-<id>".
type groupRecord struct {
	Questions map[string]*questionRecord `json:"questions"`
}

// questionRecord stores whether this client has upvoted or flagged a
// question, plus the per-response records nested under it.
type questionRecord struct {
	Responses  map[string]*responseRecord `json:"responses"`
	HasUpvoted bool                       `json:"hasUpvoted"`
	HasFlagged bool                       `json:"hasFlagged"`
}

type responseRecord struct {
	HasUpvoted bool `json:"hasUpvoted"`
	HasFlagged bool `json:"hasFlagged"`
}

func newGroupRecord() *groupRecord {
	return &groupRecord{Questions: map[string]*questionRecord{}}
}

func newQuestionRecord() *questionRecord {
	return &questionRecord{Responses: map[string]*responseRecord{}}
}

// Store is the per-device interaction memory. It is the sole source of
// truth for "has this client already voted" - that fact is deliberately
// not derivable from the shared counters.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the memory database at path. SyncWrites is
// on: a setter does not return until its write is durable.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open local memory: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func groupKey(groupID string) string {
	return "group-" + groupID
}

// Group loads the interaction record for a group, creating and
// persisting an empty one on first visit. An unparsable stored record
// is treated the same as an absent one.
func (s *Store) Group(groupID string) (*GroupMemory, error) {
	raw, found, err := s.get(groupKey(groupID))
	if err != nil {
		return nil, err
	}

	record := newGroupRecord()
	fresh := !found
	if found {
		if err := json.Unmarshal(raw, record); err != nil {
			slog.Warn("discarding unparsable group memory",
				"group_id", groupID, "error", err)
			record = newGroupRecord()
			fresh = true
		} else if record.Questions == nil {
			record.Questions = map[string]*questionRecord{}
		}
	}

	memory := &GroupMemory{store: s, groupID: groupID, data: record}
	if fresh {
		if err := memory.save(); err != nil {
			return nil, err
		}
	}
	return memory, nil
}

// GroupMemory is a handle over one group's record. Every edit saves
// the whole record before returning, so a later read in the same flow
// always observes it.
type GroupMemory struct {
	store   *Store
	groupID string
	data    *groupRecord
}

func (g *GroupMemory) save() error {
	encoded, err := json.Marshal(g.data)
	if err != nil {
		return fmt.Errorf("failed to encode group memory: %w", err)
	}
	return g.store.set(groupKey(g.groupID), encoded)
}

// Question returns the handle for a question's record, materializing
// and persisting an empty one on first access.
func (g *GroupMemory) Question(questionID string) (*QuestionMemory, error) {
	record, ok := g.data.Questions[questionID]
	if !ok {
		record = newQuestionRecord()
		g.data.Questions[questionID] = record
		if err := g.save(); err != nil {
			return nil, err
		}
	}
	if record.Responses == nil {
		record.Responses = map[string]*responseRecord{}
	}
	return &QuestionMemory{group: g, data: record}, nil
}

type QuestionMemory struct {
	group *GroupMemory
	data  *questionRecord
}

func (q *QuestionMemory) HasUpvoted() bool {
	return q.data.HasUpvoted
}

func (q *QuestionMemory) SetHasUpvoted(upvoted bool) error {
	q.data.HasUpvoted = upvoted
	return q.group.save()
}

func (q *QuestionMemory) HasFlagged() bool {
	return q.data.HasFlagged
}

func (q *QuestionMemory) SetHasFlagged(flagged bool) error {
	q.data.HasFlagged = flagged
	return q.group.save()
}

// Response returns the handle for a response's record nested under
// this question, materializing it on first access.
func (q *QuestionMemory) Response(responseID string) (*ResponseMemory, error) {
	record, ok := q.data.Responses[responseID]
	if !ok {
		record = &responseRecord{}
		q.data.Responses[responseID] = record
		if err := q.group.save(); err != nil {
			return nil, err
		}
	}
	return &ResponseMemory{group: q.group, data: record}, nil
}

type ResponseMemory struct {
	group *GroupMemory
	data  *responseRecord
}

func (r *ResponseMemory) HasUpvoted() bool {
	return r.data.HasUpvoted
}

func (r *ResponseMemory) SetHasUpvoted(upvoted bool) error {
	r.data.HasUpvoted = upvoted
	return r.group.save()
}

func (r *ResponseMemory) HasFlagged() bool {
	return r.data.HasFlagged
}

func (r *ResponseMemory) SetHasFlagged(flagged bool) error {
	r.data.HasFlagged = flagged
	return r.group.save()
}

// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"time"

	"backchannel/models"
	"backchannel/rank"
)

// Board is a group's questions arranged for display: fresh questions
// first, then stale, each side ordered by vote score and every
// question's responses sorted.
type Board struct {
	Fresh []models.Question
	Stale []models.Question
}

// BuildBoard arranges questions for display at the given instant.
// Pure; freshness is recomputed on every call, never cached.
func BuildBoard(questions []models.Question, now time.Time) Board {
	fresh, stale := rank.PartitionByFreshness(questions, now)
	rank.SortQuestions(fresh)
	rank.SortQuestions(stale)
	for i := range fresh {
		rank.SortResponses(fresh[i].Responses)
	}
	for i := range stale {
		rank.SortResponses(stale[i].Responses)
	}
	return Board{Fresh: fresh, Stale: stale}
}

// Board fetches the group's questions and arranges them for display.
func (s *Session) Board(ctx context.Context) (Board, error) {
	questions, err := s.api.ListQuestions(ctx, s.groupID)
	if err != nil {
		return Board{}, err
	}
	return BuildBoard(questions, time.Now()), nil
}

// WatchBoard follows the group's change stream and calls apply with a
// freshly arranged Board after every change. It returns when the
// context is cancelled or the stream ends; after cancellation apply is
// never called again, even for changes already in flight.
func (s *Session) WatchBoard(ctx context.Context, apply func(Board)) error {
	changes, err := s.api.WatchGroup(ctx, s.groupID)
	if err != nil {
		return err
	}

	byID := map[string]models.Question{}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			switch change.Type {
			case models.ChangeRemoved:
				delete(byID, change.Question.ID)
			default:
				// added and modified both carry the full document
				byID[change.Question.ID] = change.Question
			}

			questions := make([]models.Question, 0, len(byID))
			for _, question := range byID {
				questions = append(questions, question)
			}
			apply(BuildBoard(questions, time.Now()))
		}
	}
}

// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"backchannel/models"
)

// maxTxAttempts bounds the optimistic retry loop. Exhausting it means
// the question is seeing pathological write contention.
const maxTxAttempts = 32

// AdjustQuestionCounter applies a +1/-1 delta to a question's upvote
// or flag counter as a read-modify-write transaction: read the current
// value, compute, write back only if the version is still the one that
// was read. A stale write is retried with a fresh read, so concurrent
// voters never lose each other's deltas.
func (s *Store) AdjustQuestionCounter(ctx context.Context, kind, groupID, questionID string, delta int) error {
	if err := validateVote(kind, delta); err != nil {
		return err
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		var upvotes, flags, version int
		err := s.db.QueryRowContext(ctx, `
			SELECT upvotes, flags, version FROM question
			WHERE id = $1 AND group_id = $2
		`, questionID, groupID).Scan(&upvotes, &flags, &version)

		if err == sql.ErrNoRows {
			return ErrQuestionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read question counters: %w", err)
		}

		if kind == models.KindUpvote {
			upvotes += delta
		} else {
			flags += delta
		}

		committed, err := s.commitQuestion(ctx, questionID, version, `
			UPDATE question SET upvotes = $1, flags = $2, version = version + 1
			WHERE id = $3 AND version = $4
		`, upvotes, flags, questionID, version)
		if err != nil {
			return err
		}
		if committed {
			s.emitModified(ctx, groupID, questionID)
			return nil
		}
		// Snapshot went stale under us; retry with a fresh read.
	}

	return ErrContention
}

// AdjustResponseCounter applies a +1/-1 delta to one response's
// counter. Responses are embedded, so the transaction reads the whole
// response collection, changes only the target response, and writes
// the whole collection back under the question's version. Two voters
// on different responses of the same question both go through here and
// must not clobber each other; the version precondition guarantees the
// loser retries instead.
func (s *Store) AdjustResponseCounter(ctx context.Context, kind, groupID, questionID, responseID string, delta int) error {
	if err := validateVote(kind, delta); err != nil {
		return err
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		responses, version, err := s.readResponses(ctx, groupID, questionID)
		if err != nil {
			return err
		}

		found := false
		for i := range responses {
			if responses[i].ID != responseID {
				continue
			}
			if kind == models.KindUpvote {
				responses[i].Upvotes += delta
			} else {
				responses[i].Flags += delta
			}
			found = true
			break
		}
		if !found {
			return ErrResponseNotFound
		}

		committed, err := s.writeResponses(ctx, questionID, responses, version)
		if err != nil {
			return err
		}
		if committed {
			s.emitModified(ctx, groupID, questionID)
			return nil
		}
	}

	return ErrContention
}

// AddResponse appends a response to a question's embedded collection
// through the same whole-document transaction shape. The response id
// is client-generated and must be unique within the question.
func (s *Store) AddResponse(ctx context.Context, groupID, questionID string, response models.Response) error {
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		responses, version, err := s.readResponses(ctx, groupID, questionID)
		if err != nil {
			return err
		}

		for _, existing := range responses {
			if existing.ID == response.ID {
				return fmt.Errorf("%w: %q", ErrDuplicateResponse, response.ID)
			}
		}
		responses = append(responses, response)

		committed, err := s.writeResponses(ctx, questionID, responses, version)
		if err != nil {
			return err
		}
		if committed {
			s.emitModified(ctx, groupID, questionID)
			return nil
		}
	}

	return ErrContention
}

// readResponses loads the embedded response collection and the version
// it was read at.
func (s *Store) readResponses(ctx context.Context, groupID, questionID string) ([]models.Response, int, error) {
	var responsesJSON string
	var version int

	err := s.db.QueryRowContext(ctx, `
		SELECT responses, version FROM question
		WHERE id = $1 AND group_id = $2
	`, questionID, groupID).Scan(&responsesJSON, &version)

	if err == sql.ErrNoRows {
		return nil, 0, ErrQuestionNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read responses: %w", err)
	}

	var responses []models.Response
	if err := json.Unmarshal([]byte(responsesJSON), &responses); err != nil {
		return nil, 0, fmt.Errorf("corrupt responses document: %w", err)
	}

	return responses, version, nil
}

// writeResponses writes the whole collection back if the version still
// matches. Returns false when the precondition was stale.
func (s *Store) writeResponses(ctx context.Context, questionID string, responses []models.Response, version int) (bool, error) {
	encoded, err := json.Marshal(responses)
	if err != nil {
		return false, fmt.Errorf("failed to encode responses: %w", err)
	}

	return s.commitQuestion(ctx, questionID, version, `
		UPDATE question SET responses = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`, string(encoded), questionID, version)
}

// commitQuestion runs a version-guarded update and reports whether it
// took effect.
func (s *Store) commitQuestion(ctx context.Context, questionID string, version int, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to write question: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check write result: %w", err)
	}

	return affected == 1, nil
}

// emitModified pushes the authoritative post-commit question to
// subscribers. A failed re-read only costs the notification, not the
// committed write, so it is logged and swallowed.
func (s *Store) emitModified(ctx context.Context, groupID, questionID string) {
	question, err := s.GetQuestion(ctx, groupID, questionID)
	if err != nil {
		slog.Warn("failed to load question for change event",
			"group_id", groupID, "question_id", questionID, "error", err)
		return
	}

	s.emitter.Emit(models.QuestionChange{
		Type:     models.ChangeModified,
		GroupID:  groupID,
		Question: question,
	})
}

func validateVote(kind string, delta int) error {
	if kind != models.KindUpvote && kind != models.KindFlag {
		return fmt.Errorf("unknown vote kind %q", kind)
	}
	if delta != 1 && delta != -1 {
		return fmt.Errorf("vote delta must be +1 or -1, got %d", delta)
	}
	return nil
}

// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backchannel/ident"
	"backchannel/models"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrResponseNotFound = errors.New("response not found")

	// ErrDuplicateResponse means a response id already exists within
	// the target question. Response ids are client-generated, so this
	// only happens on a client bug or a replayed request.
	ErrDuplicateResponse = errors.New("duplicate response id")

	// ErrContention is returned when an optimistic transaction keeps
	// losing the version race and exhausts its retries.
	ErrContention = errors.New("too much contention on question")
)

// Emitter receives a change event after every successful mutation.
// The store broadcasts through this interface so it does not depend on
// the transport carrying the events.
type Emitter interface {
	Emit(change models.QuestionChange)
}

// NoopEmitter is a no-op Emitter for tests.
type NoopEmitter struct{}

func (NoopEmitter) Emit(models.QuestionChange) {}

// Store is the shared document store: groups, and questions with their
// embedded response collections.
type Store struct {
	db      *sql.DB
	emitter Emitter
}

func New(db *sql.DB, emitter Emitter) *Store {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	return &Store{db: db, emitter: emitter}
}

// CreateGroup creates a new group with the given name.
func (s *Store) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	id, err := ident.NewDocumentID()
	if err != nil {
		return models.Group{}, err
	}

	group := models.Group{
		ID:          id,
		Name:        name,
		CreatedDate: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO groups (id, name, created_date)
		VALUES ($1, $2, $3)
	`, group.ID, group.Name, group.CreatedDate.UnixMilli())
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to insert group: %w", err)
	}

	return group, nil
}

// GetGroup returns the group with the given id, or ErrGroupNotFound.
func (s *Store) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	var group models.Group
	var createdMillis int64

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_date FROM groups WHERE id = $1
	`, groupID).Scan(&group.ID, &group.Name, &createdMillis)

	if err == sql.ErrNoRows {
		return models.Group{}, ErrGroupNotFound
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to query group: %w", err)
	}

	group.CreatedDate = time.UnixMilli(createdMillis).UTC()
	return group, nil
}

// AddQuestion appends a new question to a group. Counters start at
// zero and the response collection starts empty.
func (s *Store) AddQuestion(ctx context.Context, groupID, text string) (models.Question, error) {
	// Group existence is checked explicitly so a missing group is
	// distinguishable from a driver error.
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return models.Question{}, err
	}

	id, err := ident.NewDocumentID()
	if err != nil {
		return models.Question{}, err
	}

	question := models.Question{
		ID:        id,
		Text:      text,
		Responses: []models.Response{},
		Datetime:  time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO question (id, group_id, text, upvotes, flags, responses, datetime, version)
		VALUES ($1, $2, $3, 0, 0, '[]', $4, 0)
	`, question.ID, groupID, question.Text, question.Datetime.UnixMilli())
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}

	s.emitter.Emit(models.QuestionChange{
		Type:     models.ChangeAdded,
		GroupID:  groupID,
		Question: question,
	})

	return question, nil
}

// GetQuestion returns a single question with its embedded responses.
func (s *Store) GetQuestion(ctx context.Context, groupID, questionID string) (models.Question, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, upvotes, flags, responses, datetime
		FROM question WHERE id = $1 AND group_id = $2
	`, questionID, groupID)

	question, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question: %w", err)
	}

	return question, nil
}

// ListQuestions returns every question in a group, unordered. Display
// ordering is the rank package's job, not the store's.
func (s *Store) ListQuestions(ctx context.Context, groupID string) ([]models.Question, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, upvotes, flags, responses, datetime
		FROM question WHERE group_id = $1
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (models.Question, error) {
	var question models.Question
	var responsesJSON string
	var datetimeMillis int64

	err := row.Scan(&question.ID, &question.Text, &question.Upvotes,
		&question.Flags, &responsesJSON, &datetimeMillis)
	if err != nil {
		return models.Question{}, err
	}

	if err := json.Unmarshal([]byte(responsesJSON), &question.Responses); err != nil {
		return models.Question{}, fmt.Errorf("corrupt responses document: %w", err)
	}
	if question.Responses == nil {
		question.Responses = []models.Response{}
	}

	question.Datetime = time.UnixMilli(datetimeMillis).UTC()
	return question, nil
}

// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"time"

	"backchannel/localmem"
	"backchannel/models"
)

// API is the slice of the server client a session needs. client.Client
// satisfies it; tests substitute an in-memory fake.
type API interface {
	GetGroup(ctx context.Context, groupID string) (models.Group, error)
	ListQuestions(ctx context.Context, groupID string) ([]models.Question, error)
	VoteQuestion(ctx context.Context, kind, groupID, questionID string, delta int) error
	VoteResponse(ctx context.Context, kind, groupID, questionID, responseID string, delta int) error
	WatchGroup(ctx context.Context, groupID string) (<-chan models.QuestionChange, error)
}

// Session ties one group's remote data to this device's local
// interaction memory.
type Session struct {
	api     API
	mem     *localmem.Store
	groupID string
}

func New(api API, mem *localmem.Store, groupID string) *Session {
	return &Session{api: api, mem: mem, groupID: groupID}
}

func (s *Session) GroupID() string {
	return s.groupID
}

// Visit fetches the group and records it on the recent-groups list.
func (s *Session) Visit(ctx context.Context) (models.Group, error) {
	group, err := s.api.GetGroup(ctx, s.groupID)
	if err != nil {
		return models.Group{}, err
	}

	err = s.mem.UpsertRecentGroup(localmem.RecentGroup{
		ID:          group.ID,
		Name:        group.Name,
		LastVisited: time.Now().UTC(),
	})
	if err != nil {
		return models.Group{}, err
	}

	return group, nil
}

// ToggleQuestionUpvote makes an upvote click idempotent per device:
// the first call sends +1 and remembers it, the second sends -1 and
// forgets it. Local memory only flips after the counter write
// succeeds, so a failed vote can be retried cleanly.
func (s *Session) ToggleQuestionUpvote(ctx context.Context, questionID string) error {
	question, err := s.questionMemory(questionID)
	if err != nil {
		return err
	}

	voting := !question.HasUpvoted()
	err = s.api.VoteQuestion(ctx, models.KindUpvote, s.groupID, questionID, toggleDelta(voting))
	if err != nil {
		return err
	}
	return question.SetHasUpvoted(voting)
}

// ToggleQuestionFlag is ToggleQuestionUpvote for the flag counter.
func (s *Session) ToggleQuestionFlag(ctx context.Context, questionID string) error {
	question, err := s.questionMemory(questionID)
	if err != nil {
		return err
	}

	voting := !question.HasFlagged()
	err = s.api.VoteQuestion(ctx, models.KindFlag, s.groupID, questionID, toggleDelta(voting))
	if err != nil {
		return err
	}
	return question.SetHasFlagged(voting)
}

// ToggleResponseUpvote toggles this device's upvote on a response.
func (s *Session) ToggleResponseUpvote(ctx context.Context, questionID, responseID string) error {
	response, err := s.responseMemory(questionID, responseID)
	if err != nil {
		return err
	}

	voting := !response.HasUpvoted()
	err = s.api.VoteResponse(ctx, models.KindUpvote, s.groupID, questionID, responseID, toggleDelta(voting))
	if err != nil {
		return err
	}
	return response.SetHasUpvoted(voting)
}

// ToggleResponseFlag toggles this device's flag on a response.
func (s *Session) ToggleResponseFlag(ctx context.Context, questionID, responseID string) error {
	response, err := s.responseMemory(questionID, responseID)
	if err != nil {
		return err
	}

	voting := !response.HasFlagged()
	err = s.api.VoteResponse(ctx, models.KindFlag, s.groupID, questionID, responseID, toggleDelta(voting))
	if err != nil {
		return err
	}
	return response.SetHasFlagged(voting)
}

// HasUpvotedQuestion reports this device's remembered upvote state.
func (s *Session) HasUpvotedQuestion(questionID string) (bool, error) {
	question, err := s.questionMemory(questionID)
	if err != nil {
		return false, err
	}
	return question.HasUpvoted(), nil
}

// HasFlaggedQuestion reports this device's remembered flag state.
func (s *Session) HasFlaggedQuestion(questionID string) (bool, error) {
	question, err := s.questionMemory(questionID)
	if err != nil {
		return false, err
	}
	return question.HasFlagged(), nil
}

func (s *Session) questionMemory(questionID string) (*localmem.QuestionMemory, error) {
	group, err := s.mem.Group(s.groupID)
	if err != nil {
		return nil, err
	}
	return group.Question(questionID)
}

func (s *Session) responseMemory(questionID, responseID string) (*localmem.ResponseMemory, error) {
	question, err := s.questionMemory(questionID)
	if err != nil {
		return nil, err
	}
	return question.Response(responseID)
}

func toggleDelta(voting bool) int {
	if voting {
		return 1
	}
	return -1
}

// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"backchannel/models"
	"backchannel/session"
	"backchannel/testutil"
)

// fakeAPI is an in-memory stand-in for the server client. It tracks
// net counter deltas per target and can be told to fail vote calls.
type fakeAPI struct {
	mu        sync.Mutex
	group     models.Group
	questions []models.Question
	voteErr   error

	questionDeltas map[string]int // "kind/questionID" -> net delta
	responseDeltas map[string]int // "kind/questionID/responseID" -> net delta

	changes chan models.QuestionChange
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		group:          models.Group{ID: "g1", Name: "Test Group", CreatedDate: time.Now().UTC()},
		questionDeltas: map[string]int{},
		responseDeltas: map[string]int{},
		changes:        make(chan models.QuestionChange, 16),
	}
}

func (f *fakeAPI) GetGroup(_ context.Context, groupID string) (models.Group, error) {
	if groupID != f.group.ID {
		return models.Group{}, errors.New("not found")
	}
	return f.group, nil
}

func (f *fakeAPI) ListQuestions(_ context.Context, _ string) ([]models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Question{}, f.questions...), nil
}

func (f *fakeAPI) VoteQuestion(_ context.Context, kind, _, questionID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voteErr != nil {
		return f.voteErr
	}
	f.questionDeltas[kind+"/"+questionID] += delta
	return nil
}

func (f *fakeAPI) VoteResponse(_ context.Context, kind, _, questionID, responseID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voteErr != nil {
		return f.voteErr
	}
	f.responseDeltas[kind+"/"+questionID+"/"+responseID] += delta
	return nil
}

func (f *fakeAPI) WatchGroup(_ context.Context, _ string) (<-chan models.QuestionChange, error) {
	return f.changes, nil
}

func (f *fakeAPI) questionDelta(kind, questionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.questionDeltas[kind+"/"+questionID]
}

func (f *fakeAPI) responseDelta(kind, questionID, responseID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.responseDeltas[kind+"/"+questionID+"/"+responseID]
}

func (f *fakeAPI) setVoteErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voteErr = err
}

func TestToggleQuestionUpvote(t *testing.T) {
	api := newFakeAPI()
	mem := testutil.OpenTestMemory(t)
	sess := session.New(api, mem, "g1")

	if err := sess.ToggleQuestionUpvote(context.Background(), "q1"); err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}

	if api.questionDelta(models.KindUpvote, "q1") != 1 {
		t.Errorf("Expected net delta 1 after first toggle, got %d", api.questionDelta(models.KindUpvote, "q1"))
	}
	voted, err := sess.HasUpvotedQuestion("q1")
	if err != nil {
		t.Fatalf("HasUpvotedQuestion failed: %v", err)
	}
	if !voted {
		t.Error("Expected upvote to be remembered after first toggle")
	}
}

func TestToggleTwiceIsIdempotent(t *testing.T) {
	api := newFakeAPI()
	mem := testutil.OpenTestMemory(t)
	sess := session.New(api, mem, "g1")

	if err := sess.ToggleQuestionUpvote(context.Background(), "q1"); err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}
	if err := sess.ToggleQuestionUpvote(context.Background(), "q1"); err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}

	if delta := api.questionDelta(models.KindUpvote, "q1"); delta != 0 {
		t.Errorf("Expected net delta 0 after toggle pair, got %d", delta)
	}
	voted, err := sess.HasUpvotedQuestion("q1")
	if err != nil {
		t.Fatalf("HasUpvotedQuestion failed: %v", err)
	}
	if voted {
		t.Error("Expected upvote forgotten after second toggle")
	}
}

func TestUpvoteAndFlagAreIndependent(t *testing.T) {
	api := newFakeAPI()
	mem := testutil.OpenTestMemory(t)
	sess := session.New(api, mem, "g1")

	if err := sess.ToggleQuestionUpvote(context.Background(), "q1"); err != nil {
		t.Fatalf("Upvote toggle failed: %v", err)
	}
	if err := sess.ToggleQuestionFlag(context.Background(), "q1"); err != nil {
		t.Fatalf("Flag toggle failed: %v", err)
	}

	if api.questionDelta(models.KindUpvote, "q1") != 1 {
		t.Error("Expected upvote delta untouched by flag toggle")
	}
	if api.questionDelta(models.KindFlag, "q1") != 1 {
		t.Error("Expected flag delta 1")
	}
}

func TestFailedVoteDoesNotFlipMemory(t *testing.T) {
	api := newFakeAPI()
	mem := testutil.OpenTestMemory(t)
	sess := session.New(api, mem, "g1")

	api.setVoteErr(errors.New("server unavailable"))
	if err := sess.ToggleQuestionUpvote(context.Background(), "q1"); err == nil {
		t.Fatal("Expected toggle to surface the vote error")
	}

	voted, err := sess.HasUpvotedQuestion("q1")
	if err != nil {
		t.Fatalf("HasUpvotedQuestion failed: %v", err)
	}
	if voted {
		t.Error("Expected memory unchanged after failed vote")
	}

	// Retry after the server recovers: still a fresh +1, not a retract
	api.setVoteErr(nil)
	if err := sess.ToggleQuestionUpvote(context.Background(), "q1"); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if delta := api.questionDelta(models.KindUpvote, "q1"); delta != 1 {
		t.Errorf("Expected net delta 1 after retry, got %d", delta)
	}
}

func TestToggleResponseVotes(t *testing.T) {
	api := newFakeAPI()
	mem := testutil.OpenTestMemory(t)
	sess := session.New(api, mem, "g1")

	if err := sess.ToggleResponseUpvote(context.Background(), "q1", "r1"); err != nil {
		t.Fatalf("Response upvote failed: %v", err)
	}
	if err := sess.ToggleResponseFlag(context.Background(), "q1", "r1"); err != nil {
		t.Fatalf("Response flag failed: %v", err)
	}
	if err := sess.ToggleResponseUpvote(context.Background(), "q1", "r1"); err != nil {
		t.Fatalf("Response upvote retract failed: %v", err)
	}

	if delta := api.responseDelta(models.KindUpvote, "q1", "r1"); delta != 0 {
		t.Errorf("Expected response upvote net delta 0, got %d", delta)
	}
	if delta := api.responseDelta(models.KindFlag, "q1", "r1"); delta != 1 {
		t.Errorf("Expected response flag net delta 1, got %d", delta)
	}
}

func TestVisitRecordsRecentGroup(t *testing.T) {
	api := newFakeAPI()
	mem := testutil.OpenTestMemory(t)
	sess := session.New(api, mem, "g1")

	group, err := sess.Visit(context.Background())
	if err != nil {
		t.Fatalf("Visit failed: %v", err)
	}
	if group.Name != "Test Group" {
		t.Errorf("Expected group name 'Test Group', got %q", group.Name)
	}

	recent, err := mem.RecentGroups()
	if err != nil {
		t.Fatalf("RecentGroups failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 recent group, got %d", len(recent))
	}
	if recent[0].ID != "g1" || recent[0].Name != "Test Group" {
		t.Errorf("Unexpected recent entry: %+v", recent[0])
	}
}

func TestVisitUnknownGroupDoesNotRecord(t *testing.T) {
	api := newFakeAPI()
	mem := testutil.OpenTestMemory(t)
	sess := session.New(api, mem, "missing")

	if _, err := sess.Visit(context.Background()); err == nil {
		t.Fatal("Expected Visit to fail for unknown group")
	}

	recent, err := mem.RecentGroups()
	if err != nil {
		t.Fatalf("RecentGroups failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no recent entries, got %d", len(recent))
	}
}

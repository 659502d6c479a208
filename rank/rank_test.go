// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rank

import (
	"testing"
	"time"

	"backchannel/models"
)

func TestScoreWeighsFlagsTriple(t *testing.T) {
	cases := []struct {
		upvotes, flags, want int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{2, 1, -1},
		{3, 1, 0},
		{10, 3, 1},
		{0, 2, -6},
	}

	for _, c := range cases {
		if got := Score(c.upvotes, c.flags); got != c.want {
			t.Errorf("Score(%d, %d) = %d, want %d", c.upvotes, c.flags, got, c.want)
		}
	}
}

func TestCompareVotesOrdersHigherScoreFirst(t *testing.T) {
	// {5,0} scores 5, {2,1} scores -1: the first must sort before the
	// second (negative comparator result)
	if got := CompareVotes(5, 0, 2, 1); got >= 0 {
		t.Errorf("Expected {5,0} to sort before {2,1}, comparator returned %d", got)
	}
	if got := CompareVotes(2, 1, 5, 0); got <= 0 {
		t.Errorf("Expected {2,1} to sort after {5,0}, comparator returned %d", got)
	}
	if got := CompareVotes(4, 1, 1, 0); got != 0 {
		t.Errorf("Expected equal scores to compare equal, got %d", got)
	}
}

func TestCompareQuestionsTieBreaksByEarlierTime(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	q1 := models.Question{ID: "q1", Datetime: base}
	q2 := models.Question{ID: "q2", Datetime: base.Add(time.Minute)}

	// Both score 0; the earlier question sorts first
	if got := CompareQuestions(q1, q2); got >= 0 {
		t.Errorf("Expected earlier question to sort first, comparator returned %d", got)
	}

	questions := []models.Question{q2, q1}
	SortQuestions(questions)
	if questions[0].ID != "q1" || questions[1].ID != "q2" {
		t.Errorf("Expected order [q1 q2], got [%s %s]", questions[0].ID, questions[1].ID)
	}
}

func TestCompareQuestionsScoreBeatsTime(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := models.Question{ID: "older", Upvotes: 1, Datetime: base}
	newer := models.Question{ID: "newer", Upvotes: 4, Datetime: base.Add(time.Hour)}

	questions := []models.Question{older, newer}
	SortQuestions(questions)
	if questions[0].ID != "newer" {
		t.Errorf("Expected higher-scored question first, got %s", questions[0].ID)
	}
}

func TestSortResponsesIsStableOnTies(t *testing.T) {
	// r1 and r3 tie at score 1; their stored order must survive
	responses := []models.Response{
		{ID: "r1", Upvotes: 1},
		{ID: "r2", Upvotes: 5},
		{ID: "r3", Upvotes: 4, Flags: 1},
	}

	SortResponses(responses)

	want := []string{"r2", "r1", "r3"}
	for i, id := range want {
		if responses[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, responses[i].ID)
		}
	}
}

func TestSortResponsesIgnoresTime(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	responses := []models.Response{
		{ID: "late", Upvotes: 2, Datetime: base.Add(time.Hour)},
		{ID: "early", Upvotes: 2, Datetime: base},
	}

	SortResponses(responses)

	// Equal scores: no datetime tie-break, stored order kept
	if responses[0].ID != "late" {
		t.Errorf("Expected stable order on score tie, got %s first", responses[0].ID)
	}
}

func TestIsQuestionNewBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		asked time.Time
		want  bool
	}{
		{"3h59m ago is new", now.Add(-(3*time.Hour + 59*time.Minute)), true},
		{"exactly 4h ago is old", now.Add(-4 * time.Hour), false},
		{"4h01m ago is old", now.Add(-(4*time.Hour + time.Minute)), false},
		{"just asked is new", now, true},
	}

	for _, c := range cases {
		got := IsQuestionNew(models.Question{Datetime: c.asked}, now)
		if got != c.want {
			t.Errorf("%s: IsQuestionNew = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPartitionByFreshnessIsExhaustiveAndDisjoint(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	questions := []models.Question{
		{ID: "a", Datetime: now.Add(-time.Hour)},
		{ID: "b", Datetime: now.Add(-5 * time.Hour)},
		{ID: "c", Datetime: now.Add(-10 * time.Minute)},
		{ID: "d", Datetime: now.Add(-4 * time.Hour)},
	}

	fresh, stale := PartitionByFreshness(questions, now)

	if len(fresh)+len(stale) != len(questions) {
		t.Fatalf("Partition not exhaustive: %d + %d != %d", len(fresh), len(stale), len(questions))
	}

	seen := map[string]int{}
	for _, q := range fresh {
		seen[q.ID]++
		if !IsQuestionNew(q, now) {
			t.Errorf("Question %s is in the fresh group but not new", q.ID)
		}
	}
	for _, q := range stale {
		seen[q.ID]++
		if IsQuestionNew(q, now) {
			t.Errorf("Question %s is in the stale group but new", q.ID)
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("Question %s appears %d times across the partition", id, count)
		}
	}
}

func TestPartitionByFreshnessPreservesInputOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	questions := []models.Question{
		{ID: "n1", Datetime: now.Add(-time.Minute)},
		{ID: "o1", Datetime: now.Add(-6 * time.Hour)},
		{ID: "n2", Datetime: now.Add(-2 * time.Hour)},
		{ID: "o2", Datetime: now.Add(-8 * time.Hour)},
	}

	fresh, stale := PartitionByFreshness(questions, now)

	if fresh[0].ID != "n1" || fresh[1].ID != "n2" {
		t.Errorf("Fresh group order changed: [%s %s]", fresh[0].ID, fresh[1].ID)
	}
	if stale[0].ID != "o1" || stale[1].ID != "o2" {
		t.Errorf("Stale group order changed: [%s %s]", stale[0].ID, stale[1].ID)
	}
}

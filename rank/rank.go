// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rank

import (
	"cmp"
	"slices"
	"time"

	"backchannel/models"
)

// FreshWindow is how long a question counts as new after it is asked.
const FreshWindow = 4 * time.Hour

// Score computes an item's vote score. Flags are weighted heavier than
// upvotes so flagged content sinks fast.
func Score(upvotes, flags int) int {
	return upvotes - 3*flags
}

// CompareVotes orders two vote counts, higher score first. Returns a
// negative value when the first item sorts before the second.
func CompareVotes(aUpvotes, aFlags, bUpvotes, bFlags int) int {
	return cmp.Compare(Score(bUpvotes, bFlags), Score(aUpvotes, aFlags))
}

// CompareQuestions orders questions by vote score, breaking ties by
// earlier ask time.
func CompareQuestions(a, b models.Question) int {
	if c := CompareVotes(a.Upvotes, a.Flags, b.Upvotes, b.Flags); c != 0 {
		return c
	}
	return a.Datetime.Compare(b.Datetime)
}

// CompareResponses orders responses by vote score only. Ties keep
// their existing relative order under a stable sort.
func CompareResponses(a, b models.Response) int {
	return CompareVotes(a.Upvotes, a.Flags, b.Upvotes, b.Flags)
}

// SortQuestions sorts the slice in place by vote score with the
// earlier-ask-time tie-break.
func SortQuestions(questions []models.Question) {
	slices.SortStableFunc(questions, CompareQuestions)
}

// SortResponses sorts the slice in place by vote score. The sort is
// stable so equal-score responses are deterministic.
func SortResponses(responses []models.Response) {
	slices.SortStableFunc(responses, CompareResponses)
}

// IsQuestionNew reports whether the question still counts as new at
// the given instant. The bound is strict: a question asked exactly
// FreshWindow ago is old.
func IsQuestionNew(question models.Question, now time.Time) bool {
	return question.Datetime.After(now.Add(-FreshWindow))
}

// PartitionByFreshness splits questions into a fresh group and a stale
// group. Every question lands in exactly one group and input order is
// preserved; no sorting happens here.
func PartitionByFreshness(questions []models.Question, now time.Time) (fresh, stale []models.Question) {
	fresh = []models.Question{}
	stale = []models.Question{}
	for _, question := range questions {
		if IsQuestionNew(question, now) {
			fresh = append(fresh, question)
		} else {
			stale = append(stale, question)
		}
	}
	return fresh, stale
}

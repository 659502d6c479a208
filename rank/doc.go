// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rank orders and groups questions for display.

Everything here is a pure function of its inputs; nothing reads the
clock or touches storage, which is what makes the display rules
testable.

# Vote Score

	score = upvotes - 3*flags

Flags count three times as hard against an item as upvotes count for
it, so flagged content is suppressed aggressively.

# Ordering

Questions sort by score descending; equal scores break the tie by
earlier ask time. Responses sort by score only, with a stable sort so
ties keep their stored order.

# Freshness

A question is new while its ask time is strictly inside the last four
hours. The check is recomputed against the caller-supplied "now" on
every evaluation - there is no seen-state, so an item drifts from new
to old purely by the passage of time.

PartitionByFreshness splits a list into new/old without ordering
either side; callers sort both groups afterwards and always display
the new group first regardless of score.
*/
package rank

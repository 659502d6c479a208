// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the shared document store for groups and questions.

Questions carry their responses as an embedded JSON collection, the way
a document database would hold them. That shapes every mutation:

  - Question counters are a read-modify-write transaction against the
    question row.
  - Response counters and response appends read the entire response
    collection, transform it, and write the whole collection back.

# Counter Protocol

All question writes are guarded by an optimistic version column:

	SELECT ... , version FROM question WHERE id = $1
	-- compute new state from what was read
	UPDATE question SET ..., version = version + 1
	WHERE id = $1 AND version = $2

If the UPDATE affects zero rows the snapshot was stale and the
transaction retries with a fresh read, up to maxTxAttempts, after which
ErrContention is returned. Two concurrent +1 deltas on the same counter
therefore always total +2, and voters on different responses under the
same question cannot clobber each other.

# Change Events

Every successful mutation emits a models.QuestionChange through the
Emitter interface, carrying the authoritative post-commit question.
The realtime package provides the in-process fan-out implementation;
NoopEmitter is for tests.

# Errors

Missing documents surface as ErrGroupNotFound, ErrQuestionNotFound, or
ErrResponseNotFound, distinct from driver errors which are wrapped and
propagated.
*/
package store

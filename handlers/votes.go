// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"backchannel/middleware"
	"backchannel/models"
	"backchannel/store"
)

type VoteHandler struct {
	store *store.Store
}

func NewVoteHandler(st *store.Store) *VoteHandler {
	return &VoteHandler{store: st}
}

// VoteQuestion handles POST /groups/{id}/questions/{qid}/vote
func (h *VoteHandler) VoteQuestion(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	questionID := r.PathValue("qid")
	if groupID == "" || questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id and question id are required")
		return
	}

	req, ok := parseVote(w, r)
	if !ok {
		return
	}

	err := h.store.AdjustQuestionCounter(r.Context(), req.Kind, groupID, questionID, req.Delta)
	if !writeVoteResult(w, err, groupID, questionID) {
		return
	}

	// The caller does not wait for the new total; the authoritative
	// counter arrives over the group stream.
	w.WriteHeader(http.StatusNoContent)
}

// VoteResponse handles POST /groups/{id}/questions/{qid}/responses/{rid}/vote
func (h *VoteHandler) VoteResponse(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	questionID := r.PathValue("qid")
	responseID := r.PathValue("rid")
	if groupID == "" || questionID == "" || responseID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group, question, and response ids are required")
		return
	}

	req, ok := parseVote(w, r)
	if !ok {
		return
	}

	err := h.store.AdjustResponseCounter(r.Context(), req.Kind, groupID, questionID, responseID, req.Delta)
	if !writeVoteResult(w, err, groupID, questionID) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseVote(w http.ResponseWriter, r *http.Request) (models.VoteRequest, bool) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}

	if req.Kind != models.KindUpvote && req.Kind != models.KindFlag {
		middleware.ErrorResponse(w, http.StatusBadRequest, "kind must be upvote or flag")
		return req, false
	}
	if req.Delta != 1 && req.Delta != -1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "delta must be +1 or -1")
		return req, false
	}

	return req, true
}

// writeVoteResult maps a counter protocol error onto a response,
// returning true when the vote succeeded.
func writeVoteResult(w http.ResponseWriter, err error, groupID, questionID string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrQuestionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, store.ErrResponseNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Response not found")
	case errors.Is(err, store.ErrContention):
		// Unrecoverable for this attempt; the visible counter simply
		// won't reflect the vote.
		slog.Error("vote lost the version race repeatedly",
			"group_id", groupID, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Question is busy, try again")
	default:
		slog.Error("failed to apply vote", "error", err,
			"group_id", groupID, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to apply vote")
	}
	return false
}

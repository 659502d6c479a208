// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"backchannel/middleware"
	"backchannel/models"
	"backchannel/store"
)

type ResponseHandler struct {
	store *store.Store
}

func NewResponseHandler(st *store.Store) *ResponseHandler {
	return &ResponseHandler{store: st}
}

// AddResponse handles POST /groups/{id}/questions/{qid}/responses
func (h *ResponseHandler) AddResponse(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	questionID := r.PathValue("qid")
	if groupID == "" || questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id and question id are required")
		return
	}

	var req models.AddResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// The id is minted by the client so the write needs no round trip
	// for one; it just has to be present.
	if req.ID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	response := models.Response{
		ID:       req.ID,
		Text:     req.Text,
		Datetime: time.Now().UTC(),
	}

	err := h.store.AddResponse(r.Context(), groupID, questionID, response)
	switch {
	case errors.Is(err, store.ErrQuestionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	case errors.Is(err, store.ErrDuplicateResponse):
		middleware.ErrorResponse(w, http.StatusConflict, "Response id already exists")
		return
	case errors.Is(err, store.ErrContention):
		slog.Error("response append lost the version race repeatedly",
			"group_id", groupID, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Question is busy, try again")
		return
	case err != nil:
		slog.Error("failed to add response", "error", err,
			"group_id", groupID, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add response")
		return
	}

	slog.Info("response added", "group_id", groupID,
		"question_id", questionID, "response_id", response.ID)

	middleware.JSONResponse(w, http.StatusCreated, response)
}

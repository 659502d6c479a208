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

type QuestionHandler struct {
	store *store.Store
}

func NewQuestionHandler(st *store.Store) *QuestionHandler {
	return &QuestionHandler{store: st}
}

// AskQuestion handles POST /groups/{id}/questions
func (h *QuestionHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id is required")
		return
	}

	var req models.AskQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	question, err := h.store.AddQuestion(r.Context(), groupID, req.Text)
	if errors.Is(err, store.ErrGroupNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to add question", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add question")
		return
	}

	slog.Info("question asked", "group_id", groupID, "question_id", question.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AskQuestionResponse{
		QuestionID: question.ID,
	})
}

// ListQuestions handles GET /groups/{id}/questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id is required")
		return
	}

	questions, err := h.store.ListQuestions(r.Context(), groupID)
	if errors.Is(err, store.ErrGroupNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to list questions", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// GetQuestion handles GET /groups/{id}/questions/{qid}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	questionID := r.PathValue("qid")
	if groupID == "" || questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id and question id are required")
		return
	}

	question, err := h.store.GetQuestion(r.Context(), groupID, questionID)
	if errors.Is(err, store.ErrQuestionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err,
			"group_id", groupID, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"backchannel/middleware"
	"backchannel/models"
	"backchannel/realtime"
	"backchannel/store"
)

type StreamHandler struct {
	store    *store.Store
	broker   *realtime.Broker
	upgrader websocket.Upgrader
}

func NewStreamHandler(st *store.Store, broker *realtime.Broker) *StreamHandler {
	return &StreamHandler{
		store:  st,
		broker: broker,
		upgrader: websocket.Upgrader{
			// Anonymous public API; CORS is already wide open.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// StreamGroup handles GET /groups/{id}/stream. It upgrades to a
// websocket, replays the group's current questions as "added" changes,
// then forwards live changes until either side goes away.
func (h *StreamHandler) StreamGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id is required")
		return
	}

	if _, err := h.store.GetGroup(r.Context(), groupID); err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
			return
		}
		slog.Error("failed to query group", "error", err, "group_id", groupID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Subscribe before reading the snapshot so nothing committed in
	// between is missed; a question seen in both shows up once as
	// "added" and once as "modified", which subscribers treat the same.
	changes, cancel := h.broker.Subscribe(groupID)
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "group_id", groupID)
		return
	}
	defer conn.Close()

	questions, err := h.store.ListQuestions(r.Context(), groupID)
	if err != nil {
		slog.Error("failed to load snapshot for stream", "error", err, "group_id", groupID)
		return
	}
	for _, question := range questions {
		change := models.QuestionChange{
			Type:     models.ChangeAdded,
			GroupID:  groupID,
			Question: question,
		}
		if err := conn.WriteJSON(change); err != nil {
			return
		}
	}

	// Drain the read side to learn when the client hangs up.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	slog.Info("stream opened", "group_id", groupID, "remote", r.RemoteAddr)

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := conn.WriteJSON(change); err != nil {
				return
			}
		}
	}
}

// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"backchannel/handlers"
	"backchannel/middleware"
	"backchannel/realtime"
	"backchannel/store"
)

func NewRouter(st *store.Store, broker *realtime.Broker) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	groupHandler := handlers.NewGroupHandler(st)
	questionHandler := handlers.NewQuestionHandler(st)
	responseHandler := handlers.NewResponseHandler(st)
	voteHandler := handlers.NewVoteHandler(st)
	streamHandler := handlers.NewStreamHandler(st, broker)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Groups
	mux.HandleFunc("POST /groups", middleware.WithLogging(groupHandler.CreateGroup))
	mux.HandleFunc("GET /groups/{id}", middleware.WithLogging(groupHandler.GetGroup))

	// Questions
	mux.HandleFunc("POST /groups/{id}/questions", middleware.WithLogging(questionHandler.AskQuestion))
	mux.HandleFunc("GET /groups/{id}/questions", middleware.WithLogging(questionHandler.ListQuestions))
	mux.HandleFunc("GET /groups/{id}/questions/{qid}", middleware.WithLogging(questionHandler.GetQuestion))

	// Responses
	mux.HandleFunc("POST /groups/{id}/questions/{qid}/responses", middleware.WithLogging(responseHandler.AddResponse))

	// Voting
	mux.HandleFunc("POST /groups/{id}/questions/{qid}/vote", middleware.WithLogging(voteHandler.VoteQuestion))
	mux.HandleFunc("POST /groups/{id}/questions/{qid}/responses/{rid}/vote", middleware.WithLogging(voteHandler.VoteResponse))

	// Realtime stream (logs its own lifecycle; request logging would
	// only record the upgrade)
	mux.HandleFunc("GET /groups/{id}/stream", streamHandler.StreamGroup)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("backchannel API v1"))
	})

	return mux
}

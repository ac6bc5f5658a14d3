// Package handlers contains HTTP handlers for the help engine API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wakti-app/help-engine/internal/assistant"
	"github.com/wakti-app/help-engine/internal/llm"
	"github.com/wakti-app/help-engine/internal/observability"
	"github.com/wakti-app/help-engine/internal/retrieval"
)

// ChatService answers a help question. Satisfied by *assistant.Assistant.
type ChatService interface {
	Chat(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatResponse, error)
}

// ChatHandler serves the help chat endpoint.
type ChatHandler struct {
	logger  *observability.Logger
	service ChatService
}

// NewChatHandler creates a chat handler.
func NewChatHandler(logger *observability.Logger, service ChatService) *ChatHandler {
	return &ChatHandler{logger: logger, service: service}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message  string        `json:"message"`
	Language string        `json:"language"`
	History  []chatMessage `json:"history"`
}

type chatResponse struct {
	Reply string           `json:"reply"`
	Chips []retrieval.Chip `json:"chips"`
}

// HandleChat handles POST /api/v1/help/chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := h.service.Chat(r.Context(), assistant.ChatRequest{
		Message:  req.Message,
		Language: req.Language,
		History:  history,
	})
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		h.logger.Error().Err(err).Msg("Chat request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	chips := resp.Chips
	if chips == nil {
		chips = []retrieval.Chip{}
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: resp.Reply, Chips: chips})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/medichat/go-medichat/internal/domain"
	"github.com/medichat/go-medichat/internal/middleware"
	"github.com/medichat/go-medichat/internal/render"
	"github.com/medichat/go-medichat/internal/services"
	"github.com/medichat/go-medichat/internal/services/ai"
	chatservice "github.com/medichat/go-medichat/internal/services/chat"
)

type ChatHandler struct {
	chatService    *services.ChatService
	historyService *services.HistoryService
}

func NewChatHandler(cs *services.ChatService, hs *services.HistoryService) (*ChatHandler, error) {
	if cs == nil || hs == nil {
		return nil, errors.New("chat and history services are required")
	}
	return &ChatHandler{chatService: cs, historyService: hs}, nil
}

// SubmitTurn handles one conversational turn: generate a reply for the
// message, persist the pair, return both reply and chat.
func (h *ChatHandler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	var req struct {
		Message string `json:"message"`
		ChatID  uint   `json:"chatId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, "A message is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	reply, chat, err := h.chatService.SubmitTurn(r.Context(), email, req.ChatID, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reply": reply,
		"chat":  chat,
	})
}

// GetChatHistory returns the caller's chats, most recent first, bodies inline.
func (h *ChatHandler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	chats, err := h.chatService.GetUserChats(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if chats == nil {
		chats = []domain.Chat{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
}

// DeleteChat removes one chat. Unknown ids and foreign chats get the same 404.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	chatID, err := strconv.ParseUint(mux.Vars(r)["chatId"], 10, 32)
	if err != nil {
		writeError(w, "Invalid chat ID", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), email, uint(chatID)); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// GetMessages returns the caller's standalone messages oldest-first. With
// ?format=html assistant content is rendered from markdown.
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	messages, err := h.historyService.ListMessages(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []domain.HistoryMessage{}
	}

	if r.URL.Query().Get("format") == "html" {
		for i := range messages {
			if messages[i].Role == domain.RoleAssistant {
				messages[i].Content = render.AssistantHTML(messages[i].Content)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// SaveMessage appends one standalone message to the caller's flat history.
func (h *ChatHandler) SaveMessage(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	var req struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	msg, err := h.historyService.SaveMessage(r.Context(), email, req.Role, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": msg})
}

// DeleteMessage removes one standalone message. Missing ids are 404; another
// user's message is 403.
func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	var req struct {
		MessageID uint `json:"messageId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MessageID == 0 {
		writeError(w, "Message ID is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	if err := h.historyService.DeleteMessage(r.Context(), email, req.MessageID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ClearMessages removes every standalone message the caller owns.
func (h *ChatHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	if err := h.historyService.ClearMessages(r.Context(), email); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses with a stable code.
func writeError(w http.ResponseWriter, message, code string, status int) {
	writeJSON(w, status, map[string]string{"error": message, "code": code})
}

// writeServiceError maps a service error onto an HTTP status and a stable
// error code. Upstream kinds all surface as 502 but keep distinct codes so a
// client can tell "service offline" from "no answer"; storage failures are
// 500, which tells the caller the message reached the model but was not
// saved.
func writeServiceError(w http.ResponseWriter, err error) {
	var chatErr *chatservice.ChatError
	if !errors.As(err, &chatErr) {
		writeError(w, "Internal server error", "INTERNAL", http.StatusInternalServerError)
		return
	}

	switch chatErr.Type {
	case chatservice.ErrTypeValidation:
		writeError(w, chatErr.Message, "BAD_REQUEST", http.StatusBadRequest)
	case chatservice.ErrTypeUnauthorized:
		writeError(w, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
	case chatservice.ErrTypeNotFound:
		writeError(w, chatErr.Message, "NOT_FOUND", http.StatusNotFound)
	case chatservice.ErrTypeForbidden:
		writeError(w, chatErr.Message, "FORBIDDEN", http.StatusForbidden)
	case chatservice.ErrTypeUpstream:
		writeError(w, upstreamMessage(chatErr), upstreamCode(chatErr), http.StatusBadGateway)
	case chatservice.ErrTypeStorage:
		writeError(w, "Failed to save the conversation", "STORAGE_ERROR", http.StatusInternalServerError)
	default:
		writeError(w, "Internal server error", "INTERNAL", http.StatusInternalServerError)
	}
}

func upstreamCode(chatErr *chatservice.ChatError) string {
	var aiErr *ai.AIError
	if errors.As(chatErr.Cause, &aiErr) {
		switch aiErr.Type {
		case ai.ErrTypeUnreachable:
			return "UPSTREAM_UNREACHABLE"
		case ai.ErrTypeEmpty:
			return "UPSTREAM_EMPTY"
		}
	}
	return "UPSTREAM_ERROR"
}

func upstreamMessage(chatErr *chatservice.ChatError) string {
	var aiErr *ai.AIError
	if errors.As(chatErr.Cause, &aiErr) {
		switch aiErr.Type {
		case ai.ErrTypeUnreachable:
			return "Could not reach the language model service. Is it running?"
		case ai.ErrTypeEmpty:
			return "The language model did not return a response"
		}
	}
	return "The language model service reported an error"
}

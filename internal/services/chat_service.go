// File: internal/services/chat_service.go
package services

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/medichat/go-medichat/internal/domain"
    chatrepo "github.com/medichat/go-medichat/internal/repository/chat"
    chatservice "github.com/medichat/go-medichat/internal/services/chat"
)

// ChatService is the turn orchestrator: it executes one conversational turn
// (generate reply, then persist both messages) and serves the chat session
// queries and mutations.
type ChatService struct {
    config   *chatservice.Config
    chatRepo chatrepo.ChatRepository
    aiService *AIService
    logger   Logger
    now      func() time.Time
}

func NewChatService(
    chatRepo chatrepo.ChatRepository,
    aiService *AIService,
    historyTurns int,
    logger Logger,
) (*ChatService, error) {
    if chatRepo == nil {
        return nil, chatservice.NewValidationError("constructor", "chat repository is required")
    }
    if aiService == nil {
        return nil, chatservice.NewValidationError("constructor", "AI service is required")
    }
    if logger == nil {
        logger = &NoOpLogger{}
    }

    config := chatservice.DefaultConfig()
    if historyTurns > 0 {
        config.HistoryTurns = historyTurns
    }
    if err := config.Validate(); err != nil {
        return nil, chatservice.NewValidationError("config", err.Error())
    }

    return &ChatService{
        config:    config,
        chatRepo:  chatRepo,
        aiService: aiService,
        logger:    logger,
        now:       time.Now,
    }, nil
}

// SubmitTurn runs one turn for ownerEmail: generate a reply for userText and
// record both messages. chatID == 0 creates a new chat titled from the first
// message; otherwise the pair is appended to the caller's existing chat.
//
// Ownership of an existing chat is verified before the generator is invoked,
// so a wrong or foreign chat id fails fast without a wasted model call and
// without touching the store. Generation failures likewise persist nothing;
// a storage failure after a successful generation means the turn was consumed
// by the model but not saved, and the caller must resubmit.
func (s *ChatService) SubmitTurn(ctx context.Context, ownerEmail string, chatID uint, userText string) (string, *domain.Chat, error) {
    if ownerEmail == "" {
        return "", nil, chatservice.NewUnauthorizedError("submit_turn")
    }
    if strings.TrimSpace(userText) == "" {
        return "", nil, chatservice.NewValidationError("submit_turn", "message text is required")
    }
    if len(userText) > s.config.MaxMessageLen {
        return "", nil, chatservice.NewValidationError("submit_turn", "message text too long")
    }

    var history []domain.ChatMessage
    if chatID != 0 {
        existing, err := s.chatRepo.FindByIDAndOwner(ctx, chatID, ownerEmail)
        if err != nil {
            if errors.Is(err, chatrepo.ErrChatNotFound) {
                s.logger.Warn("turn submitted against missing or foreign chat", "chat_id", chatID)
                return "", nil, chatservice.NewNotFoundError("submit_turn", "chat not found or unauthorized")
            }
            return "", nil, chatservice.NewStorageError("submit_turn", err)
        }
        history = recentTurns(existing.Messages, s.config.HistoryTurns)
    }

    reply, err := s.aiService.GenerateReply(ctx, userText, history)
    if err != nil {
        return "", nil, chatservice.NewUpstreamError("submit_turn", err)
    }

    userMsg := &domain.ChatMessage{
        Role:      domain.RoleUser,
        Content:   userText,
        CreatedAt: s.now(),
    }
    assistantMsg := &domain.ChatMessage{
        Role:      domain.RoleAssistant,
        Content:   reply,
        CreatedAt: s.now(), // same-or-later than the user message
    }

    if chatID != 0 {
        err = s.chatRepo.AppendTurn(ctx, chatID, ownerEmail, userMsg, assistantMsg,
            domain.Summarize(userText, domain.PreviewMaxLen))
        if err != nil {
            if errors.Is(err, chatrepo.ErrChatNotFound) {
                // Deleted between the ownership check and the append.
                return "", nil, chatservice.NewNotFoundError("submit_turn", "chat not found or unauthorized")
            }
            return "", nil, chatservice.NewStorageError("submit_turn", err)
        }
    } else {
        created, err := s.chatRepo.Create(ctx, &domain.Chat{
            UserEmail:   ownerEmail,
            Title:       domain.Summarize(userText, domain.TitleMaxLen),
            LastMessage: domain.Summarize(userText, domain.PreviewMaxLen),
            Messages:    []domain.ChatMessage{*userMsg, *assistantMsg},
        })
        if err != nil {
            return "", nil, chatservice.NewStorageError("submit_turn", err)
        }
        chatID = created.ID
    }

    chat, err := s.chatRepo.FindByIDAndOwner(ctx, chatID, ownerEmail)
    if err != nil {
        return "", nil, chatservice.NewStorageError("submit_turn", err)
    }

    s.logger.Info("turn completed", "chat_id", chat.ID, "message_count", len(chat.Messages))
    return reply, chat, nil
}

// GetUserChats returns the caller's chats most-recent-first with messages
// inline.
func (s *ChatService) GetUserChats(ctx context.Context, ownerEmail string) ([]domain.Chat, error) {
    if ownerEmail == "" {
        return nil, chatservice.NewUnauthorizedError("list_chats")
    }

    chats, err := s.chatRepo.FindByOwner(ctx, ownerEmail)
    if err != nil {
        return nil, chatservice.NewStorageError("list_chats", err)
    }
    return chats, nil
}

// DeleteChat removes one of the caller's chats. A missing id and someone
// else's chat report the same not-found outcome.
func (s *ChatService) DeleteChat(ctx context.Context, ownerEmail string, chatID uint) error {
    if ownerEmail == "" {
        return chatservice.NewUnauthorizedError("delete_chat")
    }
    if chatID == 0 {
        return chatservice.NewValidationError("delete_chat", "chat ID is required")
    }

    err := s.chatRepo.Delete(ctx, chatID, ownerEmail)
    if err != nil {
        if errors.Is(err, chatrepo.ErrChatNotFound) {
            return chatservice.NewNotFoundError("delete_chat", "chat not found or unauthorized")
        }
        return chatservice.NewStorageError("delete_chat", err)
    }
    return nil
}

// recentTurns keeps the tail of the timeline, sized in turns (a user message
// plus its reply).
func recentTurns(messages []domain.ChatMessage, turns int) []domain.ChatMessage {
    limit := turns * 2
    if limit <= 0 || len(messages) <= limit {
        return messages
    }
    return messages[len(messages)-limit:]
}

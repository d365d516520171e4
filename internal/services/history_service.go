// File: internal/services/history_service.go
package services

import (
    "context"
    "errors"
    "strings"

    "github.com/medichat/go-medichat/internal/domain"
    historyrepo "github.com/medichat/go-medichat/internal/repository/history"
    chatservice "github.com/medichat/go-medichat/internal/services/chat"
)

// HistoryService manages the flat standalone-message store. It is independent
// of the chat store and the two are never reconciled.
//
// Unlike chat deletion, deleting a single history message distinguishes
// "missing" (not found) from "someone else's" (forbidden): the record is read
// first and its stored owner compared against the caller.
type HistoryService struct {
    historyRepo historyrepo.HistoryRepository
    logger      Logger
}

func NewHistoryService(historyRepo historyrepo.HistoryRepository, logger Logger) (*HistoryService, error) {
    if historyRepo == nil {
        return nil, chatservice.NewValidationError("constructor", "history repository is required")
    }
    if logger == nil {
        logger = &NoOpLogger{}
    }
    return &HistoryService{historyRepo: historyRepo, logger: logger}, nil
}

// ListMessages returns the caller's standalone messages oldest-first.
func (s *HistoryService) ListMessages(ctx context.Context, ownerEmail string) ([]domain.HistoryMessage, error) {
    if ownerEmail == "" {
        return nil, chatservice.NewUnauthorizedError("list_messages")
    }

    messages, err := s.historyRepo.FindByOwner(ctx, ownerEmail)
    if err != nil {
        return nil, chatservice.NewStorageError("list_messages", err)
    }
    return messages, nil
}

// SaveMessage is the simple-history write path.
func (s *HistoryService) SaveMessage(ctx context.Context, ownerEmail, role, content string) (*domain.HistoryMessage, error) {
    if ownerEmail == "" {
        return nil, chatservice.NewUnauthorizedError("save_message")
    }
    if !domain.IsValidRole(role) {
        return nil, chatservice.NewValidationError("save_message", "role must be user or assistant")
    }
    if strings.TrimSpace(content) == "" {
        return nil, chatservice.NewValidationError("save_message", "message content is required")
    }

    msg, err := s.historyRepo.Create(ctx, &domain.HistoryMessage{
        UserEmail: ownerEmail,
        Role:      role,
        Content:   content,
    })
    if err != nil {
        return nil, chatservice.NewStorageError("save_message", err)
    }
    return msg, nil
}

// DeleteMessage hard-deletes one standalone message after verifying the
// caller owns it.
func (s *HistoryService) DeleteMessage(ctx context.Context, ownerEmail string, messageID uint) error {
    if ownerEmail == "" {
        return chatservice.NewUnauthorizedError("delete_message")
    }
    if messageID == 0 {
        return chatservice.NewValidationError("delete_message", "message ID is required")
    }

    msg, err := s.historyRepo.FindByID(ctx, messageID)
    if err != nil {
        if errors.Is(err, historyrepo.ErrMessageNotFound) {
            return chatservice.NewNotFoundError("delete_message", "message not found")
        }
        return chatservice.NewStorageError("delete_message", err)
    }

    if msg.UserEmail != ownerEmail {
        s.logger.Warn("delete attempt on foreign message", "message_id", messageID)
        return chatservice.NewForbiddenError("delete_message", "message belongs to another user")
    }

    if err := s.historyRepo.Delete(ctx, messageID); err != nil {
        if errors.Is(err, historyrepo.ErrMessageNotFound) {
            // Gone between the ownership read and the delete.
            return chatservice.NewNotFoundError("delete_message", "message not found")
        }
        return chatservice.NewStorageError("delete_message", err)
    }
    return nil
}

// ClearMessages bulk-deletes everything the caller has in the flat store.
// Succeeds even when nothing matched; chats are untouched.
func (s *HistoryService) ClearMessages(ctx context.Context, ownerEmail string) error {
    if ownerEmail == "" {
        return chatservice.NewUnauthorizedError("clear_messages")
    }

    deleted, err := s.historyRepo.DeleteByOwner(ctx, ownerEmail)
    if err != nil {
        return chatservice.NewStorageError("clear_messages", err)
    }

    s.logger.Info("history cleared", "deleted", deleted)
    return nil
}

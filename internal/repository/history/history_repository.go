// File: internal/repository/history/history_repository.go

package history

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"

    "gorm.io/gorm"

    "github.com/medichat/go-medichat/internal/domain"
)

var ErrMessageNotFound = errors.New("message not found")

type gormHistoryRepository struct {
    db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
    return &gormHistoryRepository{db: db}
}

// Create persists one standalone message.
func (r *gormHistoryRepository) Create(ctx context.Context, msg *domain.HistoryMessage) (*domain.HistoryMessage, error) {
    if err := r.validateMessageInput(msg); err != nil {
        log.Printf("[HistoryRepository] Validation failed: %v", err)
        return nil, fmt.Errorf("validation failed: %w", err)
    }

    if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
        log.Printf("[HistoryRepository] Database error during message creation: %v", err)
        return nil, errors.New("database error creating message")
    }

    log.Printf("[HistoryRepository] Message created with ID %d", msg.ID)
    return msg, nil
}

// FindByID fetches one message by id regardless of owner. The caller is
// responsible for the ownership comparison.
func (r *gormHistoryRepository) FindByID(ctx context.Context, messageID uint) (*domain.HistoryMessage, error) {
    if messageID == 0 {
        return nil, errors.New("invalid message ID")
    }

    var msg domain.HistoryMessage
    err := r.db.WithContext(ctx).First(&msg, messageID).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrMessageNotFound
        }
        log.Printf("[HistoryRepository] FindByID database error: %v", err)
        return nil, errors.New("database query failed")
    }
    return &msg, nil
}

// FindByOwner returns all of an owner's messages in ascending timestamp order.
func (r *gormHistoryRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]domain.HistoryMessage, error) {
    if ownerEmail == "" {
        return nil, errors.New("invalid owner")
    }

    var messages []domain.HistoryMessage
    err := r.db.WithContext(ctx).
        Where("user_email = ?", ownerEmail).
        Order("created_at ASC, id ASC").
        Find(&messages).Error
    if err != nil {
        log.Printf("[HistoryRepository] Database error fetching messages: %v", err)
        return nil, errors.New("database error fetching messages")
    }
    return messages, nil
}

// Delete removes one message by id. Hard removal, no tombstone.
func (r *gormHistoryRepository) Delete(ctx context.Context, messageID uint) error {
    if messageID == 0 {
        return errors.New("invalid message ID")
    }

    result := r.db.WithContext(ctx).Delete(&domain.HistoryMessage{}, messageID)
    if result.Error != nil {
        log.Printf("[HistoryRepository] Database error deleting message %d: %v", messageID, result.Error)
        return errors.New("database error deleting message")
    }
    if result.RowsAffected == 0 {
        return ErrMessageNotFound
    }

    log.Printf("[HistoryRepository] Message deleted: ID %d", messageID)
    return nil
}

// DeleteByOwner bulk-deletes everything the owner has. Zero matches is still a
// success.
func (r *gormHistoryRepository) DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error) {
    if ownerEmail == "" {
        return 0, errors.New("invalid owner")
    }

    result := r.db.WithContext(ctx).
        Where("user_email = ?", ownerEmail).
        Delete(&domain.HistoryMessage{})
    if result.Error != nil {
        log.Printf("[HistoryRepository] Database error clearing messages: %v", result.Error)
        return 0, errors.New("database error clearing messages")
    }

    log.Printf("[HistoryRepository] Cleared %d messages", result.RowsAffected)
    return result.RowsAffected, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormHistoryRepository) validateMessageInput(msg *domain.HistoryMessage) error {
    if msg == nil {
        return errors.New("message cannot be nil")
    }
    if msg.UserEmail == "" {
        return errors.New("owner email is required")
    }
    if !domain.IsValidRole(msg.Role) {
        return errors.New("invalid message role")
    }
    if strings.TrimSpace(msg.Content) == "" {
        return errors.New("message content cannot be empty")
    }
    if len(msg.Content) > 10000 {
        return errors.New("message content too long (max 10000 characters)")
    }
    return nil
}

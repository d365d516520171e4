// File: internal/repository/chat/chat_repository.go

package chat

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "gorm.io/gorm"

    "github.com/medichat/go-medichat/internal/domain"
)

// ErrChatNotFound covers both a missing id and a wrong owner. The two cases
// are deliberately indistinguishable so non-owners learn nothing about which
// chats exist.
var ErrChatNotFound = errors.New("chat not found or unauthorized")

type gormChatRepository struct {
    db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
    return &gormChatRepository{db: db}
}

// Create inserts a new chat together with its initial messages.
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
    if err := r.validateChatInput(chat); err != nil {
        log.Printf("[ChatRepository] Validation failed: %v", err)
        return nil, fmt.Errorf("validation failed: %w", err)
    }

    if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
        // No message content in logs, only identifiers
        log.Printf("[ChatRepository] Database error during chat creation for owner %s: %v", maskEmail(chat.UserEmail), err)
        return nil, errors.New("database error creating chat")
    }

    log.Printf("[ChatRepository] Chat created with ID %d for owner %s", chat.ID, maskEmail(chat.UserEmail))
    return chat, nil
}

// FindByIDAndOwner loads one chat with its messages in timeline order.
func (r *gormChatRepository) FindByIDAndOwner(ctx context.Context, chatID uint, ownerEmail string) (*domain.Chat, error) {
    if chatID == 0 || ownerEmail == "" {
        return nil, errors.New("invalid chat ID or owner")
    }

    var chat domain.Chat
    err := r.db.WithContext(ctx).
        Preload("Messages", func(db *gorm.DB) *gorm.DB {
            return db.Order("created_at ASC, id ASC")
        }).
        Where("id = ? AND user_email = ?", chatID, ownerEmail).
        First(&chat).Error

    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrChatNotFound
        }
        log.Printf("[ChatRepository] FindByIDAndOwner database error: %v", err)
        return nil, errors.New("database query failed")
    }
    return &chat, nil
}

// FindByOwner returns the owner's chats most-recent-first with full bodies.
func (r *gormChatRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]domain.Chat, error) {
    if ownerEmail == "" {
        return nil, errors.New("invalid owner")
    }

    var chats []domain.Chat
    err := r.db.WithContext(ctx).
        Preload("Messages", func(db *gorm.DB) *gorm.DB {
            return db.Order("created_at ASC, id ASC")
        }).
        Where("user_email = ?", ownerEmail).
        Order("updated_at DESC, id DESC").
        Find(&chats).Error

    if err != nil {
        log.Printf("[ChatRepository] Database error finding chats for owner %s: %v", maskEmail(ownerEmail), err)
        return nil, errors.New("database error fetching chats")
    }
    return chats, nil
}

// AppendTurn appends a user/assistant message pair and refreshes the chat's
// last_message preview and updated_at inside one transaction. The ownership
// check rides on the metadata UPDATE: zero rows affected means the chat does
// not exist or belongs to someone else, and nothing is written.
func (r *gormChatRepository) AppendTurn(ctx context.Context, chatID uint, ownerEmail string, userMsg, assistantMsg *domain.ChatMessage, lastMessage string) error {
    if chatID == 0 || ownerEmail == "" {
        return errors.New("invalid chat ID or owner")
    }
    if userMsg == nil || assistantMsg == nil {
        return errors.New("both turn messages are required")
    }

    err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        result := tx.Model(&domain.Chat{}).
            Where("id = ? AND user_email = ?", chatID, ownerEmail).
            Updates(map[string]interface{}{
                "last_message": lastMessage,
                "updated_at":   time.Now(),
            })
        if result.Error != nil {
            return result.Error
        }
        if result.RowsAffected == 0 {
            return ErrChatNotFound
        }

        userMsg.ChatID = chatID
        assistantMsg.ChatID = chatID
        if err := tx.Create(userMsg).Error; err != nil {
            return err
        }
        return tx.Create(assistantMsg).Error
    })

    if err != nil {
        if errors.Is(err, ErrChatNotFound) {
            return ErrChatNotFound
        }
        log.Printf("[ChatRepository] Database error appending turn to chat %d: %v", chatID, err)
        return errors.New("database error appending turn")
    }

    log.Printf("[ChatRepository] Turn appended to chat %d", chatID)
    return nil
}

// Delete removes a chat only when (id, owner) match; a miss reports
// ErrChatNotFound with no store mutation.
func (r *gormChatRepository) Delete(ctx context.Context, chatID uint, ownerEmail string) error {
    if chatID == 0 || ownerEmail == "" {
        return errors.New("invalid chat ID or owner")
    }

    err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        result := tx.Where("id = ? AND user_email = ?", chatID, ownerEmail).Delete(&domain.Chat{})
        if result.Error != nil {
            return result.Error
        }
        if result.RowsAffected == 0 {
            return ErrChatNotFound
        }
        // SQLite does not cascade without foreign_keys pragma; remove embedded
        // messages explicitly.
        return tx.Where("chat_id = ?", chatID).Delete(&domain.ChatMessage{}).Error
    })

    if err != nil {
        if errors.Is(err, ErrChatNotFound) {
            return ErrChatNotFound
        }
        log.Printf("[ChatRepository] Database error deleting chat %d for owner %s: %v", chatID, maskEmail(ownerEmail), err)
        return errors.New("database error deleting chat")
    }

    log.Printf("[ChatRepository] Chat deleted: ID %d for owner %s", chatID, maskEmail(ownerEmail))
    return nil
}

// ExistsByIDAndOwner checks ownership without exposing data.
func (r *gormChatRepository) ExistsByIDAndOwner(ctx context.Context, chatID uint, ownerEmail string) (bool, error) {
    if chatID == 0 || ownerEmail == "" {
        return false, errors.New("invalid chat ID or owner")
    }

    var count int64
    err := r.db.WithContext(ctx).Model(&domain.Chat{}).
        Where("id = ? AND user_email = ?", chatID, ownerEmail).
        Count(&count).Error
    if err != nil {
        log.Printf("[ChatRepository] Database error checking chat ownership for chat %d: %v", chatID, err)
        return false, errors.New("database error checking chat ownership")
    }
    return count > 0, nil
}

// CountByOwner counts chats without loading them.
func (r *gormChatRepository) CountByOwner(ctx context.Context, ownerEmail string) (int64, error) {
    if ownerEmail == "" {
        return 0, errors.New("invalid owner")
    }

    var count int64
    err := r.db.WithContext(ctx).Model(&domain.Chat{}).
        Where("user_email = ?", ownerEmail).
        Count(&count).Error
    if err != nil {
        log.Printf("[ChatRepository] Database error counting chats for owner %s: %v", maskEmail(ownerEmail), err)
        return 0, errors.New("database error counting chats")
    }
    return count, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormChatRepository) validateChatInput(chat *domain.Chat) error {
    if chat == nil {
        return errors.New("chat cannot be nil")
    }
    if chat.UserEmail == "" {
        return errors.New("owner email is required")
    }
    if len(chat.Title) > 200 {
        return errors.New("title must be 200 characters or less")
    }
    // Basic XSS protection for derived titles
    if strings.Contains(chat.Title, "<script") || strings.Contains(chat.Title, "javascript:") {
        return errors.New("invalid characters detected in title")
    }
    return nil
}

// maskEmail keeps log lines free of full identities.
func maskEmail(email string) string {
    at := strings.IndexByte(email, '@')
    if at <= 1 {
        return "****"
    }
    return email[:1] + "****" + email[at:]
}

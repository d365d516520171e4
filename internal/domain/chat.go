// File: internal/domain/chat.go
package domain

import "time"

// Chat represents a single conversation thread owned by one user.
type Chat struct {
    ID          uint          `json:"id" gorm:"primarykey"`
    UserEmail   string        `json:"user_email" gorm:"not null;index"` // Owner identity, immutable after creation
    Title       string        `json:"title"`                            // Derived from the first user message, set once
    LastMessage string        `json:"last_message"`                     // Preview of the most recent user message
    CreatedAt   time.Time     `json:"created_at"`
    UpdatedAt   time.Time     `json:"updated_at"`
    Messages    []ChatMessage `json:"messages" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

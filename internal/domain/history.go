// File: internal/domain/history.go
package domain

import "time"

// HistoryMessage is a standalone message persisted independently of any chat.
// It backs the simple-history feature and is not reconciled with Chat.Messages.
type HistoryMessage struct {
    ID        uint      `json:"id" gorm:"primarykey"`
    UserEmail string    `json:"user_email" gorm:"not null;index"` // Owner identity, immutable
    Role      string    `json:"role" gorm:"not null"`
    Content   string    `json:"content" gorm:"not null"`
    CreatedAt time.Time `json:"timestamp"`
}

// File: internal/domain/message.go
package domain

import "time"

// Message roles. Assistant content may carry markdown intended for rendering.
const (
    RoleUser      = "user"
    RoleAssistant = "assistant"
)

// ChatMessage is a single message embedded in a chat's timeline.
// Ordering is insertion order (created_at, then id).
type ChatMessage struct {
    ID        uint      `json:"id" gorm:"primarykey"`
    ChatID    uint      `json:"chat_id" gorm:"not null;index"`
    Role      string    `json:"role" gorm:"not null"` // "user" or "assistant"
    Content   string    `json:"content" gorm:"not null"`
    CreatedAt time.Time `json:"timestamp"`
}

// IsValidRole reports whether role is one of the two message roles.
func IsValidRole(role string) bool {
    return role == RoleUser || role == RoleAssistant
}

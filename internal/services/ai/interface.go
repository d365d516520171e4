// File: internal/services/ai/interface.go
package ai

import (
    "context"

    "github.com/medichat/go-medichat/internal/domain"
)

// ProviderStatus represents AI provider health
type ProviderStatus struct {
    IsHealthy bool
    Message   string
}

// ReplyProvider turns a user message plus prior turns into assistant text.
type ReplyProvider interface {
    GenerateReply(ctx context.Context, userText string, history []domain.ChatMessage) (string, error)
    HealthCheck(ctx context.Context) error
    GetStatus(ctx context.Context) ProviderStatus
}

// File: internal/services/ai_service.go
package services

import (
    "context"

    "github.com/medichat/go-medichat/internal/domain"
    "github.com/medichat/go-medichat/internal/services/ai"
)

// AIService is a thin wrapper over the reply provider that adds logging. The
// provider's error taxonomy (unreachable / upstream / empty) passes through
// untouched so the boundary can map each kind separately.
type AIService struct {
    provider ai.ReplyProvider
    logger   Logger
}

func NewAIService(provider ai.ReplyProvider, logger Logger) (*AIService, error) {
    if provider == nil {
        return nil, ai.NewConfigError("reply provider is required")
    }
    if logger == nil {
        logger = &NoOpLogger{}
    }
    return &AIService{provider: provider, logger: logger}, nil
}

func (s *AIService) GenerateReply(ctx context.Context, userText string, history []domain.ChatMessage) (string, error) {
    reply, err := s.provider.GenerateReply(ctx, userText, history)
    if err != nil {
        s.logger.Error("reply generation failed", "error", err)
        return "", err
    }
    s.logger.Debug("reply generated", "history_len", len(history), "reply_len", len(reply))
    return reply, nil
}

func (s *AIService) GetProviderStatus(ctx context.Context) ai.ProviderStatus {
    return s.provider.GetStatus(ctx)
}

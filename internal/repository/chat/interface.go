package chat

import (
    "context"

    "github.com/medichat/go-medichat/internal/domain"
)

// ChatRepository handles chat persistence. Every query and mutation is scoped
// by (chat id, owner email) jointly; filtering by id alone is an authorization
// bug.
type ChatRepository interface {
    Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
    FindByIDAndOwner(ctx context.Context, chatID uint, ownerEmail string) (*domain.Chat, error)
    FindByOwner(ctx context.Context, ownerEmail string) ([]domain.Chat, error)
    AppendTurn(ctx context.Context, chatID uint, ownerEmail string, userMsg, assistantMsg *domain.ChatMessage, lastMessage string) error
    Delete(ctx context.Context, chatID uint, ownerEmail string) error
    ExistsByIDAndOwner(ctx context.Context, chatID uint, ownerEmail string) (bool, error)
    CountByOwner(ctx context.Context, ownerEmail string) (int64, error)
}

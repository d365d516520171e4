package history

import (
    "context"

    "github.com/medichat/go-medichat/internal/domain"
)

// HistoryRepository handles the flat standalone-message store backing the
// simple-history feature. Unlike chats, single-message lookups are by id only;
// the service layer compares the stored owner against the caller.
type HistoryRepository interface {
    Create(ctx context.Context, msg *domain.HistoryMessage) (*domain.HistoryMessage, error)
    FindByID(ctx context.Context, messageID uint) (*domain.HistoryMessage, error)
    FindByOwner(ctx context.Context, ownerEmail string) ([]domain.HistoryMessage, error)
    Delete(ctx context.Context, messageID uint) error
    DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error)
}

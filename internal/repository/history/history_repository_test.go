// File: internal/repository/history/history_repository_test.go
package history

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/medichat/go-medichat/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.HistoryMessage{}))
	return db
}

func TestHistoryRepository_CreateAndFindByOwner(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.HistoryMessage{
		UserEmail: "alice@example.com", Role: domain.RoleUser, Content: "first",
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = repo.Create(ctx, &domain.HistoryMessage{
		UserEmail: "alice@example.com", Role: domain.RoleAssistant, Content: "second",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.HistoryMessage{
		UserEmail: "bob@example.com", Role: domain.RoleUser, Content: "other user",
	})
	require.NoError(t, err)

	messages, err := repo.FindByOwner(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content, "oldest first")
	assert.Equal(t, "second", messages[1].Content)
}

func TestHistoryRepository_CreateValidation(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name string
		msg  domain.HistoryMessage
	}{
		{"missing owner", domain.HistoryMessage{Role: domain.RoleUser, Content: "x"}},
		{"bad role", domain.HistoryMessage{UserEmail: "a@b.com", Role: "system", Content: "x"}},
		{"blank content", domain.HistoryMessage{UserEmail: "a@b.com", Role: domain.RoleUser, Content: " "}},
		{"oversized content", domain.HistoryMessage{UserEmail: "a@b.com", Role: domain.RoleUser, Content: strings.Repeat("x", 10001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.msg
			_, err := repo.Create(ctx, &msg)
			assert.Error(t, err)
		})
	}
}

func TestHistoryRepository_Delete(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))
	ctx := context.Background()

	msg, err := repo.Create(ctx, &domain.HistoryMessage{
		UserEmail: "alice@example.com", Role: domain.RoleUser, Content: "doomed",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, 9999), ErrMessageNotFound)

	require.NoError(t, repo.Delete(ctx, msg.ID))
	_, err = repo.FindByID(ctx, msg.ID)
	assert.ErrorIs(t, err, ErrMessageNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, msg.ID), ErrMessageNotFound)
}

func TestHistoryRepository_DeleteByOwner(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &domain.HistoryMessage{
			UserEmail: "alice@example.com", Role: domain.RoleUser, Content: "mine",
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.HistoryMessage{
		UserEmail: "bob@example.com", Role: domain.RoleUser, Content: "keep",
	})
	require.NoError(t, err)

	deleted, err := repo.DeleteByOwner(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)

	kept, err := repo.FindByOwner(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// Clearing an already-empty history is not an error.
	deleted, err = repo.DeleteByOwner(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

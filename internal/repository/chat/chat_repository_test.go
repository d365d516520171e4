// File: internal/repository/chat/chat_repository_test.go
package chat

import (
	"context"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&domain.Chat{}, &domain.ChatMessage{}))
	return db
}

func seedChat(t *testing.T, repo ChatRepository, owner, firstMessage string) *domain.Chat {
	t.Helper()
	chat, err := repo.Create(context.Background(), &domain.Chat{
		UserEmail:   owner,
		Title:       domain.Summarize(firstMessage, domain.TitleMaxLen),
		LastMessage: domain.Summarize(firstMessage, domain.PreviewMaxLen),
		Messages: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: firstMessage},
			{Role: domain.RoleAssistant, Content: "reply"},
		},
	})
	require.NoError(t, err)
	return chat
}

func TestChatRepository_CreateAndFind(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	created := seedChat(t, repo, "alice@example.com", "hello")
	require.NotZero(t, created.ID)

	found, err := repo.FindByIDAndOwner(ctx, created.ID, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Title)
	require.Len(t, found.Messages, 2)
	assert.Equal(t, domain.RoleUser, found.Messages[0].Role)

	t.Run("wrong owner is indistinguishable from missing", func(t *testing.T) {
		_, errForeign := repo.FindByIDAndOwner(ctx, created.ID, "bob@example.com")
		_, errMissing := repo.FindByIDAndOwner(ctx, 9999, "alice@example.com")
		assert.ErrorIs(t, errForeign, ErrChatNotFound)
		assert.ErrorIs(t, errMissing, ErrChatNotFound)
	})
}

func TestChatRepository_CreateValidation(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Chat{Title: "no owner"})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &domain.Chat{
		UserEmail: "alice@example.com",
		Title:     "<script>alert(1)</script>",
	})
	assert.Error(t, err)
}

func TestChatRepository_FindByOwnerOrdering(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	older := seedChat(t, repo, "alice@example.com", "older")
	newer := seedChat(t, repo, "alice@example.com", "newer")
	seedChat(t, repo, "bob@example.com", "not alice's")

	// Touch the older chat so recency, not creation order, decides.
	time.Sleep(10 * time.Millisecond)
	err := repo.AppendTurn(ctx, older.ID, "alice@example.com",
		&domain.ChatMessage{Role: domain.RoleUser, Content: "follow-up", CreatedAt: time.Now()},
		&domain.ChatMessage{Role: domain.RoleAssistant, Content: "reply", CreatedAt: time.Now()},
		"follow-up")
	require.NoError(t, err)

	chats, err := repo.FindByOwner(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, older.ID, chats[0].ID, "most recently updated first")
	assert.Equal(t, newer.ID, chats[1].ID)
	assert.Len(t, chats[0].Messages, 4, "bodies are preloaded")
}

func TestChatRepository_AppendTurn(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	chat := seedChat(t, repo, "alice@example.com", "start")

	err := repo.AppendTurn(ctx, chat.ID, "alice@example.com",
		&domain.ChatMessage{Role: domain.RoleUser, Content: "more", CreatedAt: time.Now()},
		&domain.ChatMessage{Role: domain.RoleAssistant, Content: "sure", CreatedAt: time.Now()},
		"more")
	require.NoError(t, err)

	updated, err := repo.FindByIDAndOwner(ctx, chat.ID, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, updated.Messages, 4)
	assert.Equal(t, "more", updated.LastMessage)
	assert.Equal(t, "start", updated.Title, "title survives appends")
	assert.Equal(t, "sure", updated.Messages[3].Content, "timeline order holds")
}

func TestChatRepository_AppendTurnOwnershipGate(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	chat := seedChat(t, repo, "alice@example.com", "start")

	err := repo.AppendTurn(ctx, chat.ID, "mallory@example.com",
		&domain.ChatMessage{Role: domain.RoleUser, Content: "injected"},
		&domain.ChatMessage{Role: domain.RoleAssistant, Content: "injected"},
		"injected")
	assert.ErrorIs(t, err, ErrChatNotFound)

	// The transaction rolled back: no messages landed, metadata untouched.
	intact, err := repo.FindByIDAndOwner(ctx, chat.ID, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, intact.Messages, 2)
	assert.Equal(t, "start", intact.LastMessage)
}

func TestChatRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	chat := seedChat(t, repo, "alice@example.com", "doomed")
	keep := seedChat(t, repo, "alice@example.com", "survivor")

	t.Run("foreign delete misses", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, chat.ID, "mallory@example.com"), ErrChatNotFound)
		exists, err := repo.ExistsByIDAndOwner(ctx, chat.ID, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("owner delete removes chat and messages", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, chat.ID, "alice@example.com"))

		_, err := repo.FindByIDAndOwner(ctx, chat.ID, "alice@example.com")
		assert.ErrorIs(t, err, ErrChatNotFound)

		var orphans int64
		require.NoError(t, db.Model(&domain.ChatMessage{}).Where("chat_id = ?", chat.ID).Count(&orphans).Error)
		assert.Zero(t, orphans, "embedded messages go with the chat")

		count, err := repo.CountByOwner(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		survivor, err := repo.FindByIDAndOwner(ctx, keep.ID, "alice@example.com")
		require.NoError(t, err)
		assert.Len(t, survivor.Messages, 2)
	})

	t.Run("double delete misses", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, chat.ID, "alice@example.com"), ErrChatNotFound)
	})
}

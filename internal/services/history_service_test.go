// File: internal/services/history_service_test.go
package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medichat/go-medichat/internal/domain"
	historyrepo "github.com/medichat/go-medichat/internal/repository/history"
	chatservice "github.com/medichat/go-medichat/internal/services/chat"
)

type fakeHistoryRepo struct {
	nextID   uint
	messages map[uint]*domain.HistoryMessage
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{nextID: 1, messages: map[uint]*domain.HistoryMessage{}}
}

func (r *fakeHistoryRepo) Create(_ context.Context, msg *domain.HistoryMessage) (*domain.HistoryMessage, error) {
	stored := *msg
	stored.ID = r.nextID
	r.nextID++
	r.messages[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeHistoryRepo) FindByID(_ context.Context, messageID uint) (*domain.HistoryMessage, error) {
	msg, ok := r.messages[messageID]
	if !ok {
		return nil, historyrepo.ErrMessageNotFound
	}
	copied := *msg
	return &copied, nil
}

func (r *fakeHistoryRepo) FindByOwner(_ context.Context, ownerEmail string) ([]domain.HistoryMessage, error) {
	var out []domain.HistoryMessage
	for _, msg := range r.messages {
		if msg.UserEmail == ownerEmail {
			out = append(out, *msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeHistoryRepo) Delete(_ context.Context, messageID uint) error {
	if _, ok := r.messages[messageID]; !ok {
		return historyrepo.ErrMessageNotFound
	}
	delete(r.messages, messageID)
	return nil
}

func (r *fakeHistoryRepo) DeleteByOwner(_ context.Context, ownerEmail string) (int64, error) {
	var n int64
	for id, msg := range r.messages {
		if msg.UserEmail == ownerEmail {
			delete(r.messages, id)
			n++
		}
	}
	return n, nil
}

func newTestHistoryService(t *testing.T) (*HistoryService, *fakeHistoryRepo) {
	t.Helper()
	repo := newFakeHistoryRepo()
	svc, err := NewHistoryService(repo, &NoOpLogger{})
	require.NoError(t, err)
	return svc, repo
}

func errType(t *testing.T, err error) chatservice.ErrorType {
	t.Helper()
	var chatErr *chatservice.ChatError
	require.ErrorAs(t, err, &chatErr)
	return chatErr.Type
}

func TestHistoryService_SaveAndList(t *testing.T) {
	svc, _ := newTestHistoryService(t)
	ctx := context.Background()

	_, err := svc.SaveMessage(ctx, "alice@example.com", domain.RoleUser, "what is anemia?")
	require.NoError(t, err)
	_, err = svc.SaveMessage(ctx, "alice@example.com", domain.RoleAssistant, "a shortage of red blood cells")
	require.NoError(t, err)
	_, err = svc.SaveMessage(ctx, "bob@example.com", domain.RoleUser, "unrelated")
	require.NoError(t, err)

	messages, err := svc.ListMessages(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, messages, 2, "only the caller's messages are listed")
	assert.Equal(t, "what is anemia?", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
}

func TestHistoryService_SaveValidation(t *testing.T) {
	svc, _ := newTestHistoryService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		owner    string
		role     string
		content  string
		wantType chatservice.ErrorType
	}{
		{"no identity", "", domain.RoleUser, "hi", chatservice.ErrTypeUnauthorized},
		{"bad role", "alice@example.com", "system", "hi", chatservice.ErrTypeValidation},
		{"blank content", "alice@example.com", domain.RoleUser, "  ", chatservice.ErrTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveMessage(ctx, tt.owner, tt.role, tt.content)
			assert.Equal(t, tt.wantType, errType(t, err))
		})
	}
}

func TestHistoryService_DeleteMessage(t *testing.T) {
	svc, _ := newTestHistoryService(t)
	ctx := context.Background()

	msg, err := svc.SaveMessage(ctx, "alice@example.com", domain.RoleUser, "mine")
	require.NoError(t, err)

	t.Run("missing id is not found", func(t *testing.T) {
		err := svc.DeleteMessage(ctx, "alice@example.com", 9999)
		assert.Equal(t, chatservice.ErrTypeNotFound, errType(t, err))
	})

	t.Run("foreign message is forbidden, not hidden", func(t *testing.T) {
		err := svc.DeleteMessage(ctx, "mallory@example.com", msg.ID)
		assert.Equal(t, chatservice.ErrTypeForbidden, errType(t, err))

		remaining, err2 := svc.ListMessages(ctx, "alice@example.com")
		require.NoError(t, err2)
		assert.Len(t, remaining, 1)
	})

	t.Run("owner delete succeeds", func(t *testing.T) {
		require.NoError(t, svc.DeleteMessage(ctx, "alice@example.com", msg.ID))

		remaining, err := svc.ListMessages(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}

func TestHistoryService_ClearMessages(t *testing.T) {
	svc, _ := newTestHistoryService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.SaveMessage(ctx, "alice@example.com", domain.RoleUser, "msg")
		require.NoError(t, err)
	}
	_, err := svc.SaveMessage(ctx, "bob@example.com", domain.RoleUser, "keep me")
	require.NoError(t, err)

	require.NoError(t, svc.ClearMessages(ctx, "alice@example.com"))

	cleared, err := svc.ListMessages(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, cleared)

	kept, err := svc.ListMessages(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Len(t, kept, 1, "other users' history is untouched")

	t.Run("clearing an empty store still succeeds", func(t *testing.T) {
		assert.NoError(t, svc.ClearMessages(ctx, "alice@example.com"))
	})
}

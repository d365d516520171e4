// File: internal/middleware/auth_test.go
package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	email string
	err   error
}

func (v *stubValidator) ValidateJWTToken(token string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.email, nil
}

func protectedEcho(t *testing.T, validator *stubValidator) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := UserEmailFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(email))
	})
	return NewJWTMiddleware(validator)(next)
}

func TestJWTMiddleware_BearerHeader(t *testing.T) {
	handler := protectedEcho(t, &stubValidator{email: "alice@example.com"})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", rec.Body.String())
}

func TestJWTMiddleware_Cookie(t *testing.T) {
	handler := protectedEcho(t, &stubValidator{email: "alice@example.com"})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "some-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		handler := protectedEcho(t, &stubValidator{email: "alice@example.com"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		handler := protectedEcho(t, &stubValidator{err: errors.New("expired")})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserEmailFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, ok := UserEmailFromContext(req.Context())
	assert.False(t, ok)
}

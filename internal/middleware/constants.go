// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
    UserEmailKey contextKey = "user_email"
    RequestIDKey contextKey = "request_id"
)

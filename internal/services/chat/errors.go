// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
    ErrTypeValidation   ErrorType = "VALIDATION"   // malformed or missing input
    ErrTypeUnauthorized ErrorType = "UNAUTHORIZED" // no resolved identity
    ErrTypeNotFound     ErrorType = "NOT_FOUND"    // missing id, or owner-ambiguous miss
    ErrTypeForbidden    ErrorType = "FORBIDDEN"    // exists but belongs to someone else
    ErrTypeUpstream     ErrorType = "UPSTREAM"     // reply generator failed
    ErrTypeStorage      ErrorType = "STORAGE"      // persistence read/write failed
)

// ChatError is the service-level error for chat and history operations. The
// Type drives the HTTP status at the boundary; Cause keeps the underlying
// failure reachable through errors.As.
type ChatError struct {
    Type      ErrorType
    Operation string
    Message   string
    Cause     error
}

func (e *ChatError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("chat %s error in %s: %s (caused by: %v)",
            e.Type, e.Operation, e.Message, e.Cause)
    }
    return fmt.Sprintf("chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
    return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewUnauthorizedError(operation string) *ChatError {
    return &ChatError{Type: ErrTypeUnauthorized, Operation: operation,
        Message: "a resolved identity is required"}
}

func NewNotFoundError(operation, msg string) *ChatError {
    return &ChatError{Type: ErrTypeNotFound, Operation: operation, Message: msg}
}

func NewForbiddenError(operation, msg string) *ChatError {
    return &ChatError{Type: ErrTypeForbidden, Operation: operation, Message: msg}
}

func NewUpstreamError(operation string, cause error) *ChatError {
    return &ChatError{Type: ErrTypeUpstream, Operation: operation,
        Message: "reply generation failed", Cause: cause}
}

func NewStorageError(operation string, cause error) *ChatError {
    return &ChatError{Type: ErrTypeStorage, Operation: operation,
        Message: "persistence failed", Cause: cause}
}

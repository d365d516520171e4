// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
    ErrTypeConfig      ErrorType = "CONFIG"
    ErrTypeUnreachable ErrorType = "UNREACHABLE" // transport failure, service never answered
    ErrTypeUpstream    ErrorType = "UPSTREAM"    // service answered with a non-success status
    ErrTypeEmpty       ErrorType = "EMPTY"       // response parsed but carried no text
)

// AIError distinguishes "service offline" from "service errored" from
// "service answered nothing", so callers can report each differently.
type AIError struct {
    Type      ErrorType
    Code      int // upstream HTTP status when known
    Message   string
    Operation string
    Cause     error
}

func (e *AIError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
            e.Type, e.Operation, e.Message, e.Cause)
    }
    return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *AIError {
    return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewUnreachableError(operation string, cause error) *AIError {
    return &AIError{Type: ErrTypeUnreachable, Operation: operation,
        Message: "could not reach the language model service", Cause: cause}
}

func NewUpstreamError(operation string, code int, msg string, cause error) *AIError {
    return &AIError{Type: ErrTypeUpstream, Operation: operation, Code: code,
        Message: msg, Cause: cause}
}

func NewEmptyError(operation string) *AIError {
    return &AIError{Type: ErrTypeEmpty, Operation: operation,
        Message: "the language model returned no content"}
}

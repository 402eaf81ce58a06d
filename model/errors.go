package model

import "strings"

// ErrorKind enumerates every domain failure mode so the HTTP boundary can
// match failures exhaustively instead of inspecting arbitrary error types.
type ErrorKind int

const (
	ErrKindUserNotFound ErrorKind = iota
	ErrKindTweetNotFound
	ErrKindMediaNotFound
	ErrKindLikeNotFound
	ErrKindSelfFollow
	ErrKindSelfUnfollow
	ErrKindImageValidation
)

// DomainError is a typed failure raised by the entity access layer. The
// boundary layer translates it into a structured HTTP error payload.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// IsUniqueViolation detects uniqueness constraint failures across the
// drivers in use (postgres reports SQLSTATE 23505, sqlite a textual UNIQUE
// failure).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

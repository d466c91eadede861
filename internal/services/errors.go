package services

import (
	"errors"
	"fmt"
)

// Sentinel errors the handler layer maps onto HTTP status codes with
// errors.Is.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")

	// Router guard failures
	ErrInvalidTransition = errors.New("navigation not allowed")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrSessionNotFound   = errors.New("session not found")

	// Room registry failures
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room full")
)

// PermissionError carries the action and subject of a denied operation.
type PermissionError struct {
	UserID string
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s is not permitted to %s", e.UserID, e.Action)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

func NewPermissionError(userID, action string) error {
	return &PermissionError{UserID: userID, Action: action}
}

// ValidationFailure wraps field errors so errors.Is(err, ErrValidationFailed)
// holds while the detail survives for the response body.
type ValidationFailure struct {
	Detail string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Detail)
}

func (e *ValidationFailure) Unwrap() error {
	return ErrValidationFailed
}

func NewValidationFailure(detail string) error {
	return &ValidationFailure{Detail: detail}
}

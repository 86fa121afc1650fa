package storage

import (
	"context"
	"errors"
)

//go:generate moq -out session_mock.go . SessionStorage

// ErrSessionNotFound нет сохраненной сессии (пользователь не логинился)
var ErrSessionNotFound = errors.New("session not found")

// Session represents a saved login session on the client
type Session struct {
	Email     string `json:"email"`      // email пользователя
	Token     string `json:"token"`      // bearer token
	ExpiresAt int64  `json:"expires_at"` // unix timestamp истечения токена
}

// SessionStorage defines interface for persisting the login session
type SessionStorage interface {
	// SaveSession stores the session, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error
}

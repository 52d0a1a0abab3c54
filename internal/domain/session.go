package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the signed-in user's state: a display name and the opaque
// trips API token. The zero Session is an anonymous visitor.
type Session struct {
	ID        uuid.UUID
	Username  string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Authenticated reports whether the session carries an API token.
// Views render editable controls only for authenticated sessions.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

package types

import "time"

// SessionWithAuth is what the session middleware stores under "session".
type SessionWithAuth struct {
	SessionID string    `json:"session_id" validate:"required"`
	ExpiresAt time.Time `json:"expires_at"`
}

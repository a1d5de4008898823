package repositories

import "context"

// SessionRepository defines per-visitor persistence for the selected
// currency. The web layer owns session transport (cookies etc.); the core
// only ever sees an opaque session ID.
type SessionRepository interface {
	// GetCurrency returns the currency code stored for the session, or
	// apperrors.ErrNotFound when the visitor has never picked one.
	GetCurrency(ctx context.Context, sessionID string) (string, error)

	// SetCurrency stores the currency code for the session.
	SetCurrency(ctx context.Context, sessionID string, code string) error
}

// Package redis provides the redis-backed per-visitor session store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mresults/fxconvert/internal/apperrors"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

// sessionTTL keeps a visitor's choice for as long as the catalog cache
// window; an idle session past that simply falls back to the default
// currency.
const sessionTTL = 30 * 24 * time.Hour

// SessionRepository stores each visitor's selected currency code under a
// session-scoped key.
type SessionRepository struct {
	client goredis.UniversalClient
}

// NewSessionRepository creates a new redis-backed session repository.
func NewSessionRepository(client goredis.UniversalClient) *SessionRepository {
	return &SessionRepository{client: client}
}

// Ensure implementation matches interface
var _ portsrepo.SessionRepository = (*SessionRepository)(nil)

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:currency", sessionID)
}

// GetCurrency returns the currency code stored for the session.
func (r *SessionRepository) GetCurrency(ctx context.Context, sessionID string) (string, error) {
	code, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read session currency: %w", err)
	}
	return code, nil
}

// SetCurrency stores the currency code for the session, refreshing its TTL.
func (r *SessionRepository) SetCurrency(ctx context.Context, sessionID string, code string) error {
	if err := r.client.Set(ctx, sessionKey(sessionID), code, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session currency: %w", err)
	}
	return nil
}

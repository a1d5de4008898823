package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mresults/fxconvert/internal/apperrors"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
)

// PgxOptionRepository persists operator settings and the cached currency
// catalog as rows of a key-value options table.
type PgxOptionRepository struct {
	BaseRepository
}

// NewOptionRepository creates a new repository for option data.
func NewOptionRepository(pool *pgxpool.Pool) portsrepo.OptionRepository {
	return &PgxOptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OptionRepository = (*PgxOptionRepository)(nil)

// GetOption retrieves the stored value for key.
func (r *PgxOptionRepository) GetOption(ctx context.Context, key string) (string, error) {
	query := `
		SELECT option_value
		FROM options
		WHERE option_key = $1;
	`
	var value string
	err := r.Pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read option %s: %w", key, err)
	}
	return value, nil
}

// SetOption inserts or overwrites the value for key. Writes are idempotent
// recomputations of TTL-bounded data, so last-writer-wins is acceptable.
func (r *PgxOptionRepository) SetOption(ctx context.Context, key string, value string) error {
	query := `
		INSERT INTO options (option_key, option_value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (option_key) DO UPDATE SET
			option_value = EXCLUDED.option_value,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to save option %s: %w", key, err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/quillpress/quillpress/internal/model"
)

// CreateSession inserts a session record. Only the token hash and prefix
// are stored; the plaintext token never reaches the database.
func (r *Repository) CreateSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (id, token_prefix, token_hash, user_email, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.TokenPrefix,
		session.TokenHash,
		session.UserEmail,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetSessionsByPrefix retrieves candidate sessions sharing a token prefix.
// Prefixes are short, so collisions are possible; the caller verifies the
// full token against each candidate's hash.
func (r *Repository) GetSessionsByPrefix(ctx context.Context, prefix string) ([]*model.Session, error) {
	query := `
		SELECT id, token_prefix, token_hash, user_email, expires_at, created_at
		FROM sessions
		WHERE token_prefix = $1
	`

	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions by prefix: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(
			&s.ID,
			&s.TokenPrefix,
			&s.TokenHash,
			&s.UserEmail,
			&s.ExpiresAt,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// DeleteExpiredSessions removes sessions past their expiry. Housekeeping
// for the bootstrap/dev flow; production session lifecycle belongs to the
// auth provider.
func (r *Repository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected(), nil
}

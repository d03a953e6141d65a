package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo persistencia de sesiones de login (tabla sessions).
type SessionRepo struct {
	q Querier
}

func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

const sessionColumns = `id::text, user_id::text, refresh_hash, expires_at, revoked_at, created_at,
	COALESCE(prev_refresh_hash, ''), rotated_at`

// Create persiste una sesión nueva.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, refresh_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.UserID, s.RefreshHash, s.ExpiresAt, s.CreatedAt); err != nil {
		return fmt.Errorf("sessions.Create: %w", err)
	}
	return nil
}

// GetByID sesión por id; nil, nil si no existe o el id no es un uuid.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	s, err := scanSession(r.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("sessions.GetByID: %w", err)
	}
	return s, nil
}

// GetByRefreshHash sesión dueña del refresh token vigente o del anterior; nil, nil si no existe.
func (r *SessionRepo) GetByRefreshHash(ctx context.Context, hash string) (*entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE refresh_hash = $1 OR prev_refresh_hash = $1
		ORDER BY (refresh_hash = $1) DESC
		LIMIT 1`
	s, err := scanSession(r.q.QueryRow(ctx, query, hash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sessions.GetByRefreshHash: %w", err)
	}
	return s, nil
}

// Rotate cambia el hash del refresh token sólo si sigue siendo oldHash; false si otro lo rotó antes.
func (r *SessionRepo) Rotate(ctx context.Context, id, oldHash, newHash string, expiresAt, at time.Time) (bool, error) {
	query := `
		UPDATE sessions
		SET refresh_hash = $3, expires_at = $4, prev_refresh_hash = refresh_hash, rotated_at = $5
		WHERE id = $1 AND refresh_hash = $2 AND revoked_at IS NULL`
	tag, err := r.q.Exec(ctx, query, id, oldHash, newHash, expiresAt, at)
	if err != nil {
		return false, fmt.Errorf("sessions.Rotate: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Revoke marca la sesión como revocada. Revocar dos veces no cambia la fecha original.
func (r *SessionRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE sessions SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`
	if _, err := r.q.Exec(ctx, query, id, at); err != nil {
		if isInvalidText(err) {
			return nil
		}
		return fmt.Errorf("sessions.Revoke: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	var s entity.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.RefreshHash, &s.ExpiresAt, &s.RevokedAt, &s.CreatedAt,
		&s.PrevRefreshHash, &s.RotatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

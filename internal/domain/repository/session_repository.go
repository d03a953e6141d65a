package repository

import (
	"context"
	"time"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// SessionRepository persistencia de sesiones de login.
// GetByID y GetByRefreshHash devuelven nil, nil cuando no hay fila.
// GetByRefreshHash también encuentra la sesión por el hash anterior a la última rotación.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	GetByRefreshHash(ctx context.Context, hash string) (*entity.Session, error)
	// Rotate reemplaza el hash del refresh token sólo si el actual coincide con oldHash;
	// oldHash queda como hash anterior con fecha de rotación at.
	Rotate(ctx context.Context, id, oldHash, newHash string, expiresAt, at time.Time) (bool, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

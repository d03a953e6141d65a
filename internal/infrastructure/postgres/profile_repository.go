package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo lectura y bootstrap de la tabla profiles.
type ProfileRepo struct {
	q Querier
}

func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// GetRole rol guardado para el usuario; found=false si no hay fila o el id no es un uuid.
func (r *ProfileRepo) GetRole(ctx context.Context, userID string) (string, bool, error) {
	var role string
	err := r.q.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("profiles.GetRole: %w", err)
	}
	return role, true, nil
}

// Upsert crea o actualiza el rol del usuario.
func (r *ProfileRepo) Upsert(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO profiles (id, role) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role`
	if _, err := r.q.Exec(ctx, query, userID, role); err != nil {
		return fmt.Errorf("profiles.Upsert: %w", err)
	}
	return nil
}

package repository

import "context"

// ProfileRepository lectura del rol guardado en profiles.
type ProfileRepository interface {
	// GetRole devuelve el rol almacenado; found=false si el usuario no tiene perfil.
	GetRole(ctx context.Context, userID string) (role string, found bool, err error)
	// Upsert crea o actualiza el perfil (bootstrap del administrador).
	Upsert(ctx context.Context, userID, role string) error
}

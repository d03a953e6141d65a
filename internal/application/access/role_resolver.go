package access

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

// ProfileRoleResolver lee el rol desde profiles. Si falta el perfil o la lectura falla,
// devuelve el rol con menos privilegios.
type ProfileRoleResolver struct {
	profiles repository.ProfileRepository
	log      zerolog.Logger
}

// NewProfileRoleResolver construye el resolver.
func NewProfileRoleResolver(profiles repository.ProfileRepository, log zerolog.Logger) *ProfileRoleResolver {
	return &ProfileRoleResolver{profiles: profiles, log: log}
}

// ResolveRole implementa RoleResolver.
func (r *ProfileRoleResolver) ResolveRole(ctx context.Context, userID string) entity.Role {
	raw, found, err := r.profiles.GetRole(ctx, userID)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", userID).Msg("leer perfil; se usa rol por defecto")
		return entity.DefaultRole
	}
	if found && !entity.IsKnownRole(raw) {
		r.log.Warn().Str("user_id", userID).Str("role", raw).Msg("rol desconocido en perfil")
	}
	return entity.ResolveRole(raw, found)
}

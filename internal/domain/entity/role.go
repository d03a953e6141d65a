package entity

// Role nivel de acceso del personal. Conjunto cerrado: cualquier valor
// desconocido se resuelve al rol con menos privilegios.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// DefaultRole rol asignado cuando el perfil no existe o no se pudo leer.
const DefaultRole = RoleWorker

// ResolveRole convierte el valor almacenado en el perfil a un Role.
// Es el único punto donde se decide el rol por defecto.
func ResolveRole(raw string, found bool) Role {
	if !found {
		return DefaultRole
	}
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleWorker:
		return RoleWorker
	default:
		return DefaultRole
	}
}

// IsKnownRole indica si el texto corresponde a un rol definido.
func IsKnownRole(raw string) bool {
	return Role(raw) == RoleAdmin || Role(raw) == RoleWorker
}

// Roles conjunto de roles permitidos para una vista.
type Roles []Role

// Has devuelve true si r está en el conjunto.
func (rs Roles) Has(r Role) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

package entity

import "time"

// User credenciales de acceso al panel. El rol vive en Profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	CreatedAt    time.Time
}

// Profile perfil del usuario (tabla profiles). Role es texto libre en la DB;
// usar ResolveRole para convertirlo.
type Profile struct {
	UserID string
	Role   string
}

// Session sesión de login. El refresh token sólo se guarda hasheado.
type Session struct {
	ID          string
	UserID      string
	RefreshHash string
	ExpiresAt   time.Time
	RevokedAt   *time.Time
	CreatedAt   time.Time

	// PrevRefreshHash hash del refresh token reemplazado en la última rotación, en RotatedAt.
	PrevRefreshHash string
	RotatedAt       *time.Time

	// Rotated contiene los tokens nuevos cuando la sesión se renovó durante la verificación.
	// RefreshToken vacío: el cliente conserva el que ya tiene.
	Rotated *TokenPair
}

// Active indica si la sesión puede seguir usándose en el instante now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// TokenPair tokens entregados al cliente.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // expiración del refresh token
}

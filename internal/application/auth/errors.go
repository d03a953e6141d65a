package auth

import "strings"

// Mensajes de error con la misma forma que los del proveedor de auth.
const (
	msgRefreshNotFound = "Invalid Refresh Token: Refresh Token Not Found"
	msgRefreshRevoked  = "Invalid Refresh Token: Session Revoked"
	msgRefreshExpired  = "Invalid Refresh Token: Session Expired"
	msgRefreshReused   = "Invalid Refresh Token: Already Used"
)

// Error fallo de autenticación con un mensaje legible.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsInvalidRefreshToken reconoce la firma de sesión vencida o dañada:
// "invalid refresh token" o "refresh token not found", sin distinguir mayúsculas.
func IsInvalidRefreshToken(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid refresh token") ||
		strings.Contains(msg, "refresh token not found")
}

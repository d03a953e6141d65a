package dto

// RedirectResponse respuesta cuando el cliente debe volver al login.
type RedirectResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message,omitempty"`
	RedirectTo string `json:"redirect_to"`
	SignedOut  bool   `json:"signed_out"`
}

// ActionDTO acción única ofrecida en la pantalla de acceso restringido.
type ActionDTO struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// AccessDeniedResponse respuesta de una vista a la que el rol no tiene acceso.
type AccessDeniedResponse struct {
	Code         string    `json:"code"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	AccessDenied bool      `json:"access_denied"`
	Role         string    `json:"role"`
	Action       ActionDTO `json:"action"`
}

// NavLinkDTO entrada del menú lateral del panel.
type NavLinkDTO struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// AdminSessionResponse resultado de la verificación del layout del panel.
type AdminSessionResponse struct {
	UserID  string       `json:"user_id"`
	Role    string       `json:"role"`
	Sidebar []NavLinkDTO `json:"sidebar"`
}

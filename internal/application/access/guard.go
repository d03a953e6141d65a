// Package access decide si una petición al panel puede ver una vista:
// sesión vigente, rol resuelto desde el perfil y lista de roles permitidos por la vista.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/auth"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// Rutas a las que el cliente debe navegar.
const (
	LoginRoute     = "/auth/login"
	DashboardRoute = "/admin/dashboard"
)

// Avisos bloqueantes mostrados antes de volver al login.
const (
	NoticeSessionExpired = "Tu sesión expiró o se dañó. Inicia sesión nuevamente."
	NoticeSessionFailed  = "No se pudo verificar tu sesión. Intenta nuevamente."
)

// ErrDiscarded la petición se canceló antes de publicar la decisión.
var ErrDiscarded = errors.New("access: verificación descartada")

// Decision resultado de la verificación.
type Decision int

const (
	DecisionRedirect Decision = iota
	DecisionDenied
	DecisionAllow
)

// Result decisión del guard para una vista.
type Result struct {
	Decision   Decision
	Role       entity.Role
	Session    *entity.Session
	RedirectTo string
	Notice     string
	SignedOut  bool
	Expired    bool // la sesión se descartó por refresh token inválido
}

// AccessDenied true cuando la sesión es válida pero el rol no alcanza.
func (r Result) AccessDenied() bool { return r.Decision == DecisionDenied }

// Allowed true cuando la vista puede mostrarse.
func (r Result) Allowed() bool { return r.Decision == DecisionAllow }

// SessionProvider contrato del subsistema de sesiones.
type SessionProvider interface {
	GetSession(ctx context.Context, creds auth.Credentials) (*entity.Session, error)
	SignOut(ctx context.Context, creds auth.Credentials) error
}

// RoleResolver obtiene el rol de un usuario; nunca falla, usa el rol por defecto.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string) entity.Role
}

// Guard verifica sesión y rol. No reintenta: cada fallo termina la verificación.
type Guard struct {
	sessions SessionProvider
	roles    RoleResolver
	log      zerolog.Logger
}

// NewGuard construye el guard con sus dependencias.
func NewGuard(sessions SessionProvider, roles RoleResolver, log zerolog.Logger) *Guard {
	return &Guard{sessions: sessions, roles: roles, log: log}
}

// Resolve ejecuta la verificación para una vista que admite los roles indicados.
func (g *Guard) Resolve(ctx context.Context, creds auth.Credentials, allowed ...entity.Role) (Result, error) {
	sess, err := g.sessions.GetSession(ctx, creds)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrDiscarded, ctx.Err())
		}
		return g.sessionFailure(ctx, creds, err), nil
	}
	if sess == nil {
		return Result{Decision: DecisionRedirect, RedirectTo: LoginRoute}, nil
	}

	role := g.roles.ResolveRole(ctx, sess.UserID)

	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDiscarded, ctx.Err())
	}

	res := Result{Role: role, Session: sess}
	if !entity.Roles(allowed).Has(role) {
		res.Decision = DecisionDenied
		return res, nil
	}
	res.Decision = DecisionAllow
	return res, nil
}

func (g *Guard) sessionFailure(ctx context.Context, creds auth.Credentials, err error) Result {
	g.log.Error().Err(err).Msg("error verificando sesión")

	res := Result{Decision: DecisionRedirect, RedirectTo: LoginRoute, Notice: NoticeSessionFailed}
	if !auth.IsInvalidRefreshToken(err) {
		return res
	}

	res.Notice = NoticeSessionExpired
	res.Expired = true
	if err := g.sessions.SignOut(ctx, creds); err != nil {
		g.log.Warn().Err(err).Msg("cierre de sesión forzado falló")
	}
	res.SignedOut = true
	g.log.Warn().Msg("sesión inválida: cierre de sesión forzado")
	return res
}

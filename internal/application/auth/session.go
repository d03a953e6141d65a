package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	RefreshTTL time.Duration
	// ReuseGrace ventana en la que el refresh token recién reemplazado sigue aceptándose.
	ReuseGrace time.Duration
}

// Credentials lo que el cliente presenta en cada petición.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Empty true si el cliente no envió ningún token.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// SessionService valida, renueva y cierra sesiones.
type SessionService struct {
	sessions repository.SessionRepository
	cfg      JWTConfig
	now      func() time.Time
}

// NewSessionService construye el servicio de sesiones.
func NewSessionService(sessions repository.SessionRepository, cfg JWTConfig) *SessionService {
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.ReuseGrace <= 0 {
		cfg.ReuseGrace = 10 * time.Second
	}
	return &SessionService{sessions: sessions, cfg: cfg, now: time.Now}
}

// Open crea una sesión nueva para el usuario y devuelve sus tokens.
func (s *SessionService) Open(ctx context.Context, userID string) (*entity.Session, error) {
	now := s.now()
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	sess := &entity.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		RefreshHash: HashToken(refresh),
		ExpiresAt:   now.Add(s.cfg.RefreshTTL),
		CreatedAt:   now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("auth: crear sesión: %w", err)
	}
	access, err := jwt.Generate(s.cfg.Secret, userID, sess.ID, s.cfg.Issuer, s.cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: firmar token: %w", err)
	}
	sess.Rotated = &entity.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: sess.ExpiresAt}
	return sess, nil
}

// GetSession devuelve la sesión vigente o nil si el cliente no presentó credenciales.
//
// Un access token vencido se renueva con el refresh token; si éste no existe,
// fue revocado o venció, el error es un *Error reconocible con IsInvalidRefreshToken.
func (s *SessionService) GetSession(ctx context.Context, creds Credentials) (*entity.Session, error) {
	if creds.Empty() {
		return nil, nil
	}

	if creds.AccessToken != "" {
		userID, sessionID, err := jwt.Parse(s.cfg.Secret, creds.AccessToken)
		switch {
		case err == nil:
			sess, err := s.sessions.GetByID(ctx, sessionID)
			if err != nil {
				return nil, fmt.Errorf("auth: leer sesión: %w", err)
			}
			if sess != nil && sess.UserID == userID && sess.Active(s.now()) {
				return sess, nil
			}
			if creds.RefreshToken == "" {
				return nil, &Error{Message: msgRefreshNotFound}
			}
		case jwt.IsExpired(err):
			if creds.RefreshToken == "" {
				return nil, &Error{Message: msgRefreshNotFound}
			}
		case creds.RefreshToken == "":
			return nil, &Error{Message: "invalid JWT: " + err.Error()}
		}
	}

	return s.refresh(ctx, creds.RefreshToken)
}

func (s *SessionService) refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	oldHash := HashToken(refreshToken)
	sess, err := s.sessions.GetByRefreshHash(ctx, oldHash)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar refresh token: %w", err)
	}
	now := s.now()
	switch {
	case sess == nil:
		return nil, &Error{Message: msgRefreshNotFound}
	case sess.RevokedAt != nil:
		return nil, &Error{Message: msgRefreshRevoked}
	case !now.Before(sess.ExpiresAt):
		return nil, &Error{Message: msgRefreshExpired}
	case sess.RefreshHash != oldHash:
		return s.reuse(sess, oldHash, now)
	}

	next, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	nextHash := HashToken(next)
	expiresAt := now.Add(s.cfg.RefreshTTL)
	ok, err := s.sessions.Rotate(ctx, sess.ID, oldHash, nextHash, expiresAt, now)
	if err != nil {
		return nil, fmt.Errorf("auth: rotar refresh token: %w", err)
	}
	if !ok {
		// Otra petición con el mismo refresh token rotó primero.
		cur, err := s.sessions.GetByID(ctx, sess.ID)
		if err != nil {
			return nil, fmt.Errorf("auth: releer sesión: %w", err)
		}
		if cur == nil {
			return nil, &Error{Message: msgRefreshNotFound}
		}
		return s.reuse(cur, oldHash, now)
	}

	access, err := jwt.Generate(s.cfg.Secret, sess.UserID, sess.ID, s.cfg.Issuer, s.cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: firmar token: %w", err)
	}
	sess.RefreshHash = nextHash
	sess.ExpiresAt = expiresAt
	sess.Rotated = &entity.TokenPair{AccessToken: access, RefreshToken: next, ExpiresAt: expiresAt}
	return sess, nil
}

// reuse acepta el refresh token anterior a la última rotación si no pasó ReuseGrace.
// Entrega un access token nuevo y no vuelve a rotar: Rotated.RefreshToken queda vacío.
func (s *SessionService) reuse(sess *entity.Session, hash string, now time.Time) (*entity.Session, error) {
	if sess.RevokedAt != nil {
		return nil, &Error{Message: msgRefreshRevoked}
	}
	if sess.PrevRefreshHash != hash || sess.RotatedAt == nil || now.Sub(*sess.RotatedAt) > s.cfg.ReuseGrace {
		return nil, &Error{Message: msgRefreshReused}
	}
	access, err := jwt.Generate(s.cfg.Secret, sess.UserID, sess.ID, s.cfg.Issuer, s.cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: firmar token: %w", err)
	}
	sess.Rotated = &entity.TokenPair{AccessToken: access, ExpiresAt: sess.ExpiresAt}
	return sess, nil
}

// SignOut revoca la sesión identificada por las credenciales. Sin sesión reconocible no hace nada.
func (s *SessionService) SignOut(ctx context.Context, creds Credentials) error {
	var sessionID string
	if creds.AccessToken != "" {
		if _, id, err := jwt.Parse(s.cfg.Secret, creds.AccessToken); err == nil {
			sessionID = id
		}
	}
	if sessionID == "" && creds.RefreshToken != "" {
		sess, err := s.sessions.GetByRefreshHash(ctx, HashToken(creds.RefreshToken))
		if err != nil {
			return fmt.Errorf("auth: buscar sesión para cerrar: %w", err)
		}
		if sess != nil {
			sessionID = sess.ID
		}
	}
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionID, s.now()); err != nil {
		return fmt.Errorf("auth: revocar sesión: %w", err)
	}
	return nil
}

// HashToken hash SHA-256 en hex con el que se guarda el refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// newRefreshToken 32 bytes aleatorios en hex.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generar refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

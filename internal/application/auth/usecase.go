package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

// AccountTxRunner ejecuta fn con repos de usuarios y perfiles atados a una misma transacción.
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(users repository.UserRepository, profiles repository.ProfileRepository) error) error
}

// AuthUseCase casos de uso de autenticación: login, renovación y cierre de sesión.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessions    *SessionService
	tx          AccountTxRunner
}

// NewAuthUseCase construye el caso de uso de auth. tx puede ser nil; en ese caso
// el alta del administrador se hace sin transacción.
func NewAuthUseCase(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, sessions *SessionService, tx AccountTxRunner) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, profileRepo: profileRepo, sessions: sessions, tx: tx}
}

// Login verifica email/password y abre una sesión nueva.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	sess, err := uc.sessions.Open(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return uc.toSessionResponse(ctx, sess), nil
}

// Refresh renueva la sesión con el refresh token (rotación de un solo uso).
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.SessionResponse, error) {
	if refreshToken == "" {
		return nil, &Error{Message: msgRefreshNotFound}
	}
	sess, err := uc.sessions.GetSession(ctx, Credentials{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	return uc.toSessionResponse(ctx, sess), nil
}

// Logout revoca la sesión actual.
func (uc *AuthUseCase) Logout(ctx context.Context, creds Credentials) error {
	return uc.sessions.SignOut(ctx, creds)
}

// EnsureAdmin crea el usuario administrador inicial si no existe y garantiza su perfil admin.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return fmt.Errorf("auth: admin inicial: %w", domain.ErrInvalidInput)
	}
	if uc.tx == nil {
		return ensureAdmin(ctx, uc.userRepo, uc.profileRepo, email, password)
	}
	return uc.tx.RunAccount(ctx, func(users repository.UserRepository, profiles repository.ProfileRepository) error {
		return ensureAdmin(ctx, users, profiles, email, password)
	})
}

func ensureAdmin(ctx context.Context, users repository.UserRepository, profiles repository.ProfileRepository, email, password string) error {
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = &entity.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
	}
	return profiles.Upsert(ctx, user.ID, string(entity.RoleAdmin))
}

func (uc *AuthUseCase) toSessionResponse(ctx context.Context, sess *entity.Session) *dto.SessionResponse {
	raw, found, err := uc.profileRepo.GetRole(ctx, sess.UserID)
	if err != nil {
		found = false
	}
	out := &dto.SessionResponse{
		UserID: sess.UserID,
		Role:   string(entity.ResolveRole(raw, found)),
	}
	if sess.Rotated != nil {
		out.AccessToken = sess.Rotated.AccessToken
		out.RefreshToken = sess.Rotated.RefreshToken
		out.RefreshExpiresAt = sess.Rotated.ExpiresAt
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

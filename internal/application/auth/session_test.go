package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memSessions struct {
	mu   sync.Mutex
	byID map[string]*entity.Session
	err  error
}

func newMemSessions() *memSessions {
	return &memSessions{byID: map[string]*entity.Session{}}
}

func (m *memSessions) Create(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memSessions) GetByID(_ context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) GetByRefreshHash(_ context.Context, hash string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var prev *entity.Session
	for _, s := range m.byID {
		if s.RefreshHash == hash {
			cp := *s
			return &cp, nil
		}
		if s.PrevRefreshHash == hash {
			prev = s
		}
	}
	if prev == nil {
		return nil, nil
	}
	cp := *prev
	return &cp, nil
}

func (m *memSessions) Rotate(_ context.Context, id, oldHash, newHash string, expiresAt, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok || s.RefreshHash != oldHash || s.RevokedAt != nil {
		return false, nil
	}
	s.PrevRefreshHash = s.RefreshHash
	s.RotatedAt = &at
	s.RefreshHash = newHash
	s.ExpiresAt = expiresAt
	return true, nil
}

func (m *memSessions) Revoke(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		s.RevokedAt = &at
	}
	return nil
}

type memUsers struct{ byEmail map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

type memProfiles struct{ roles map[string]string }

func (m *memProfiles) GetRole(_ context.Context, userID string) (string, bool, error) {
	r, ok := m.roles[userID]
	return r, ok, nil
}

func (m *memProfiles) Upsert(_ context.Context, userID, role string) error {
	m.roles[userID] = role
	return nil
}

const testSecret = "test-secret-key-for-unit-tests"

func newTestService(repo *memSessions) *SessionService {
	return NewSessionService(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "blama-test", RefreshTTL: time.Hour})
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSession
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSession_SinCredenciales(t *testing.T) {
	svc := newTestService(newMemSessions())
	sess, err := svc.GetSession(context.Background(), Credentials{})
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestGetSession_AccessTokenValido(t *testing.T) {
	repo := newMemSessions()
	svc := newTestService(repo)
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)

	sess, err := svc.GetSession(context.Background(), Credentials{AccessToken: opened.Rotated.AccessToken})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Nil(t, sess.Rotated, "un access token válido no rota la sesión")
}

func TestGetSession_AccessVencidoRotaRefresh(t *testing.T) {
	repo := newMemSessions()
	svc := newTestService(repo)
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)

	expired, err := jwt.Generate(testSecret, "user-1", opened.ID, "blama-test", -1)
	require.NoError(t, err)

	sess, err := svc.GetSession(context.Background(), Credentials{AccessToken: expired, RefreshToken: opened.Rotated.RefreshToken})
	require.NoError(t, err)
	require.NotNil(t, sess.Rotated)
	assert.NotEqual(t, opened.Rotated.RefreshToken, sess.Rotated.RefreshToken)
	assert.Len(t, sess.Rotated.RefreshToken, 64, "32 bytes en hex")

	// Pasada la ventana de gracia el refresh token anterior ya no sirve.
	svc.now = func() time.Time { return time.Now().Add(time.Minute) }
	_, err = svc.GetSession(context.Background(), Credentials{RefreshToken: opened.Rotated.RefreshToken})
	require.Error(t, err)
	assert.True(t, IsInvalidRefreshToken(err))
	assert.Contains(t, err.Error(), "Already Used")
}

// Escenario: el layout y la vista piden en paralelo con el mismo refresh token.
func TestGetSession_MismoRefreshDosVecesSeguidas(t *testing.T) {
	repo := newMemSessions()
	svc := newTestService(repo)
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)

	expired, err := jwt.Generate(testSecret, "user-1", opened.ID, "blama-test", -1)
	require.NoError(t, err)
	creds := Credentials{AccessToken: expired, RefreshToken: opened.Rotated.RefreshToken}

	first, err := svc.GetSession(context.Background(), creds)
	require.NoError(t, err)
	require.NotNil(t, first.Rotated)
	require.NotEmpty(t, first.Rotated.RefreshToken)

	second, err := svc.GetSession(context.Background(), creds)
	require.NoError(t, err, "dentro de la ventana de gracia la sesión sigue siendo válida")
	require.NotNil(t, second.Rotated)
	assert.Equal(t, opened.ID, second.ID)
	assert.NotEmpty(t, second.Rotated.AccessToken)
	assert.Empty(t, second.Rotated.RefreshToken, "no se vuelve a rotar")

	// El refresh token emitido en la primera petición sigue siendo el vigente.
	third, err := svc.GetSession(context.Background(), Credentials{RefreshToken: first.Rotated.RefreshToken})
	require.NoError(t, err)
	require.NotNil(t, third.Rotated)
	assert.NotEmpty(t, third.Rotated.RefreshToken)
}

func TestGetSession_RefreshParaleloRotaUnaSolaVez(t *testing.T) {
	repo := newMemSessions()
	svc := newTestService(repo)
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)
	creds := Credentials{RefreshToken: opened.Rotated.RefreshToken}

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		rotated int
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := svc.GetSession(context.Background(), creds)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if sess.Rotated.RefreshToken != "" {
				rotated++
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 1, rotated)
}

func TestGetSession_RefreshAnteriorDeSesionRevocada(t *testing.T) {
	repo := newMemSessions()
	svc := newTestService(repo)
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), Credentials{RefreshToken: opened.Rotated.RefreshToken})
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(context.Background(), Credentials{RefreshToken: opened.Rotated.RefreshToken}))

	_, err = svc.GetSession(context.Background(), Credentials{RefreshToken: opened.Rotated.RefreshToken})
	require.Error(t, err)
	assert.True(t, IsInvalidRefreshToken(err))
}

func TestGetSession_AccessVencidoSinRefresh(t *testing.T) {
	svc := newTestService(newMemSessions())
	expired, err := jwt.Generate(testSecret, "user-1", "sess-1", "blama-test", -1)
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), Credentials{AccessToken: expired})
	require.Error(t, err)
	assert.True(t, IsInvalidRefreshToken(err))
}

func TestGetSession_RefreshRevocadoOVencido(t *testing.T) {
	repo := newMemSessions()
	svc := newTestService(repo)
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.GetSession(context.Background(), Credentials{RefreshToken: opened.Rotated.RefreshToken})
	require.Error(t, err)
	assert.True(t, IsInvalidRefreshToken(err))

	svc.now = time.Now
	require.NoError(t, svc.SignOut(context.Background(), Credentials{AccessToken: opened.Rotated.AccessToken}))
	_, err = svc.GetSession(context.Background(), Credentials{RefreshToken: opened.Rotated.RefreshToken})
	require.Error(t, err)
	assert.True(t, IsInvalidRefreshToken(err))
}

func TestGetSession_TokenMalformadoNoEsErrorDeRefresh(t *testing.T) {
	svc := newTestService(newMemSessions())
	_, err := svc.GetSession(context.Background(), Credentials{AccessToken: "token.invalido.aqui"})
	require.Error(t, err)

	var authErr *Error
	assert.True(t, errors.As(err, &authErr))
	assert.False(t, IsInvalidRefreshToken(err))
}

func TestGetSession_ErrorDeAlmacenamiento(t *testing.T) {
	repo := newMemSessions()
	svc := newTestService(repo)
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)

	repo.err = errors.New("db down")
	_, err = svc.GetSession(context.Background(), Credentials{AccessToken: opened.Rotated.AccessToken})
	require.Error(t, err)
	assert.False(t, IsInvalidRefreshToken(err))
}

func TestIsInvalidRefreshToken(t *testing.T) {
	assert.True(t, IsInvalidRefreshToken(errors.New("AuthApiError: Invalid Refresh Token: Refresh Token Not Found")))
	assert.True(t, IsInvalidRefreshToken(errors.New("refresh token not found")))
	assert.False(t, IsInvalidRefreshToken(errors.New("network error")))
	assert.False(t, IsInvalidRefreshToken(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUsers{byEmail: map[string]*entity.User{
		"ana@blama.shop": {ID: "user-1", Email: "ana@blama.shop", PasswordHash: string(hash)},
	}}
	profiles := &memProfiles{roles: map[string]string{}}
	uc := NewAuthUseCase(users, profiles, newTestService(newMemSessions()), nil)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Ana@Blama.shop ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "worker", out.Role, "sin perfil el rol es worker")

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@blama.shop", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@blama.shop", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

type memTx struct {
	users    *memUsers
	profiles *memProfiles
	runs     int
}

func (m *memTx) RunAccount(_ context.Context, fn func(repository.UserRepository, repository.ProfileRepository) error) error {
	m.runs++
	return fn(m.users, m.profiles)
}

func TestEnsureAdmin(t *testing.T) {
	users := &memUsers{byEmail: map[string]*entity.User{}}
	profiles := &memProfiles{roles: map[string]string{}}
	tx := &memTx{users: users, profiles: profiles}
	uc := NewAuthUseCase(users, profiles, newTestService(newMemSessions()), tx)

	require.NoError(t, uc.EnsureAdmin(context.Background(), "Admin@Blama.shop", "admin-12345"))
	assert.Equal(t, 1, tx.runs, "el alta corre dentro de una transacción")
	u := users.byEmail["admin@blama.shop"]
	require.NotNil(t, u)
	assert.Equal(t, "admin", profiles.roles[u.ID])

	// Idempotente
	require.NoError(t, uc.EnsureAdmin(context.Background(), "admin@blama.shop", "admin-12345"))
	assert.Len(t, users.byEmail, 1)

	assert.ErrorIs(t, uc.EnsureAdmin(context.Background(), "x@y.z", "corta"), domain.ErrInvalidInput)
}

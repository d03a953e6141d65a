package access_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/access"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/auth"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/jwt"
)

// memSessionRepo repositorio de sesiones en memoria para probar el guard con el servicio real.
type memSessionRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Session
}

func (m *memSessionRepo) Create(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memSessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *memSessionRepo) GetByRefreshHash(_ context.Context, hash string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.RefreshHash == hash || s.PrevRefreshHash == hash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memSessionRepo) Rotate(_ context.Context, id, oldHash, newHash string, expiresAt, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok || s.RefreshHash != oldHash || s.RevokedAt != nil {
		return false, nil
	}
	s.PrevRefreshHash, s.RefreshHash = s.RefreshHash, newHash
	s.RotatedAt = &at
	s.ExpiresAt = expiresAt
	return true, nil
}

func (m *memSessionRepo) Revoke(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok && s.RevokedAt == nil {
		s.RevokedAt = &at
	}
	return nil
}

const guardSecret = "guard-test-secret"

// Escenario: access token vencido; el layout y el dashboard llegan a la vez con el mismo refresh token.
func TestResolve_MismasCredencialesDosVecesNoCierraSesion(t *testing.T) {
	repo := &memSessionRepo{byID: map[string]*entity.Session{}}
	svc := auth.NewSessionService(repo, auth.JWTConfig{Secret: guardSecret, ExpMinutes: 60, Issuer: "blama-test", RefreshTTL: time.Hour})
	opened, err := svc.Open(context.Background(), "user-1")
	require.NoError(t, err)

	expired, err := jwt.Generate(guardSecret, "user-1", opened.ID, "blama-test", -1)
	require.NoError(t, err)
	creds := auth.Credentials{AccessToken: expired, RefreshToken: opened.Rotated.RefreshToken}

	log := zerolog.Nop()
	guard := access.NewGuard(svc, access.NewProfileRoleResolver(&fakeProfiles{role: "admin", found: true}, log), log)

	first, err := guard.Resolve(context.Background(), creds, entity.RoleAdmin, entity.RoleWorker)
	require.NoError(t, err)
	assert.Equal(t, access.DecisionAllow, first.Decision)
	require.NotNil(t, first.Session.Rotated)
	assert.NotEmpty(t, first.Session.Rotated.RefreshToken)

	second, err := guard.Resolve(context.Background(), creds, entity.RoleAdmin, entity.RoleWorker)
	require.NoError(t, err)
	assert.Equal(t, access.DecisionAllow, second.Decision)
	assert.False(t, second.Expired)
	assert.False(t, second.SignedOut)
	assert.Empty(t, second.Notice)

	stored, err := repo.GetByID(context.Background(), opened.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RevokedAt, "la sesión sigue activa")
}

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/tu-usuario/erp-lite/internal/application/session"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeSessionRepo repositorio de sesiones en memoria.
type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(s *entity.Session) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(id string) (*entity.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Delete(id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(userID string) error {
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

// fakeCache cache de sesiones en memoria que cuenta hits.
type fakeCache struct {
	entries map[string]*entity.Session
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*entity.Session)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*entity.Session, error) {
	s, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return s, nil
}

func (c *fakeCache) Set(_ context.Context, s *entity.Session) error {
	c.entries[s.ID] = s
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Create genera un id opaco de 48 hex y persiste el registro con los tokens.
func TestBridge_Create(t *testing.T) {
	repo := newFakeSessionRepo()
	bridge := appsession.NewBridge(repo, nil)

	exp := time.Now().Add(time.Hour)
	id, err := bridge.Create(context.Background(), "user-1", "access-tok", "refresh-tok", &exp)
	require.NoError(t, err)
	assert.Len(t, id, 48, "24 bytes de entropía = 48 caracteres hex")

	s, err := bridge.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, "access-tok", s.AccessToken)
	assert.Equal(t, "refresh-tok", s.RefreshToken)
}

// Ausencia no es error: id desconocido o vacío resuelve (nil, nil).
func TestBridge_Get_AusenciaNoEsError(t *testing.T) {
	bridge := appsession.NewBridge(newFakeSessionRepo(), nil)

	s, err := bridge.Get(context.Background(), "no-existe")
	assert.NoError(t, err)
	assert.Nil(t, s)

	s, err = bridge.Get(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, s)
}

// Delete es idempotente: borrar dos veces (o un id inexistente) no es error.
func TestBridge_Delete_Idempotente(t *testing.T) {
	repo := newFakeSessionRepo()
	bridge := appsession.NewBridge(repo, nil)

	id, err := bridge.Create(context.Background(), "user-1", "a", "r", nil)
	require.NoError(t, err)

	require.NoError(t, bridge.Delete(context.Background(), id))
	require.NoError(t, bridge.Delete(context.Background(), id), "segundo delete no debe fallar")
	require.NoError(t, bridge.Delete(context.Background(), "jamas-existio"))

	s, err := bridge.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, s, "tras delete la sesión no debe resolver")
}

// El cache se llena en el primer Get y sirve el segundo sin tocar el repo.
func TestBridge_Get_LlenaCacheEnMiss(t *testing.T) {
	repo := newFakeSessionRepo()
	cache := newFakeCache()
	bridge := appsession.NewBridge(repo, cache)

	id, err := bridge.Create(context.Background(), "user-1", "a", "r", nil)
	require.NoError(t, err)

	_, err = bridge.Get(context.Background(), id) // miss: llena cache
	require.NoError(t, err)
	_, err = bridge.Get(context.Background(), id) // hit
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

// Delete invalida el cache: la sesión no debe resolver desde una copia vieja.
func TestBridge_Delete_InvalidaCache(t *testing.T) {
	repo := newFakeSessionRepo()
	cache := newFakeCache()
	bridge := appsession.NewBridge(repo, cache)

	id, err := bridge.Create(context.Background(), "user-1", "a", "r", nil)
	require.NoError(t, err)
	_, err = bridge.Get(context.Background(), id)
	require.NoError(t, err)

	require.NoError(t, bridge.Delete(context.Background(), id))

	s, err := bridge.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, s)
}

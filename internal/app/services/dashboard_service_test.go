package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/cache"
)

// fakeStatsStore counts calls so tests can tell a cache hit from a miss.
type fakeStatsStore struct {
	globalCalls    int
	gestorCalls    int
	professorCalls int

	lastGestorID    int64
	lastProfessorID int64
}

func (f *fakeStatsStore) GlobalStats(context.Context) (*dto.DashboardStats, error) {
	f.globalCalls++
	return &dto.DashboardStats{Escolas: 3, Turmas: 12, Alunos: 340, Professores: 25, OcorrenciasRecentes: 8}, nil
}

func (f *fakeStatsStore) GestorStats(_ context.Context, gestorID int64) (*dto.DashboardStats, error) {
	f.gestorCalls++
	f.lastGestorID = gestorID
	return &dto.DashboardStats{Escolas: 1, Turmas: 4, Alunos: 110}, nil
}

func (f *fakeStatsStore) ProfessorStats(_ context.Context, professorID int64) (*dto.DashboardStats, error) {
	f.professorCalls++
	f.lastProfessorID = professorID
	return &dto.DashboardStats{Turmas: 2, Alunos: 55, OcorrenciasRecentes: 1}, nil
}

type fakeProfileResolver struct{}

func (fakeProfileResolver) GetGestorByUsuarioID(_ context.Context, usuarioID int64) (*models.Gestor, error) {
	return &models.Gestor{ID: usuarioID * 100, UsuarioID: usuarioID}, nil
}

func (fakeProfileResolver) GetProfessorByUsuarioID(_ context.Context, usuarioID int64) (*models.Professor, error) {
	return &models.Professor{ID: usuarioID * 10, UsuarioID: usuarioID}, nil
}

// fakeCache is an in-memory cache.Cache.
type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	f.sets++
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		delete(f.entries, key)
	}
}

func TestDashboardStatsPerPapel(t *testing.T) {
	ctx := context.Background()
	store := &fakeStatsStore{}
	svc := NewDashboardService(store, fakeProfileResolver{}, nil, time.Minute, zerolog.Nop())

	stats, err := svc.GetStats(ctx, 1, models.PapelAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Escolas)
	assert.Equal(t, 1, store.globalCalls)

	stats, err = svc.GetStats(ctx, 2, models.PapelGestor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Escolas)
	assert.Equal(t, int64(200), store.lastGestorID, "gestor stats are scoped by the gestor profile, not the usuario")

	stats, err = svc.GetStats(ctx, 3, models.PapelProfessor)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Turmas)
	assert.Equal(t, int64(30), store.lastProfessorID)
}

func TestDashboardStatsCacheAside(t *testing.T) {
	ctx := context.Background()
	store := &fakeStatsStore{}
	statsCache := newFakeCache()
	svc := NewDashboardService(store, fakeProfileResolver{}, statsCache, time.Minute, zerolog.Nop())

	// Miss computes and fills the cache
	stats, err := svc.GetStats(ctx, 1, models.PapelAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, store.globalCalls)
	assert.Equal(t, 1, statsCache.sets)
	assert.Contains(t, statsCache.entries, "dashboard:stats:1")

	// Hit skips the store entirely
	cached, err := svc.GetStats(ctx, 1, models.PapelAdmin)
	require.NoError(t, err)
	assert.Equal(t, stats, cached)
	assert.Equal(t, 1, store.globalCalls)
	assert.Equal(t, 1, statsCache.sets)

	// A different usuario gets its own key
	_, err = svc.GetStats(ctx, 2, models.PapelAdmin)
	require.NoError(t, err)
	assert.Equal(t, 2, store.globalCalls)
	assert.Contains(t, statsCache.entries, "dashboard:stats:2")
}

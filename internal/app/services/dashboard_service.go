package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/cache"
)

// DashboardService defines the interface for the landing dashboard
type DashboardService interface {
	GetStats(ctx context.Context, usuarioID int64, papel models.Papel) (*dto.DashboardStats, error)
}

// dashboardStatsStore is the repository surface the service needs
type dashboardStatsStore interface {
	GlobalStats(ctx context.Context) (*dto.DashboardStats, error)
	GestorStats(ctx context.Context, gestorID int64) (*dto.DashboardStats, error)
	ProfessorStats(ctx context.Context, professorID int64) (*dto.DashboardStats, error)
}

// profileResolver maps a session usuario to its gestor/professor profile
type profileResolver interface {
	GetGestorByUsuarioID(ctx context.Context, usuarioID int64) (*models.Gestor, error)
	GetProfessorByUsuarioID(ctx context.Context, usuarioID int64) (*models.Professor, error)
}

// dashboardServiceImpl implements DashboardService with a cache-aside layer
// over the counting queries
type dashboardServiceImpl struct {
	statsRepo   dashboardStatsStore
	profileRepo profileResolver
	cache       cache.Cache
	ttl         time.Duration
	logger      zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	statsRepo dashboardStatsStore,
	profileRepo profileResolver,
	statsCache cache.Cache,
	ttl time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		statsRepo:   statsRepo,
		profileRepo: profileRepo,
		cache:       statsCache,
		ttl:         ttl,
		logger:      logger,
	}
}

// GetStats returns the dashboard counters scoped to the usuario's papel. The
// counters are cached per usuario; a miss recomputes and refills the cache.
func (s *dashboardServiceImpl) GetStats(ctx context.Context, usuarioID int64, papel models.Papel) (*dto.DashboardStats, error) {
	key := fmt.Sprintf("dashboard:stats:%d", usuarioID)

	if s.cache != nil {
		cached := &dto.DashboardStats{}
		if err := s.cache.GetJSON(ctx, key, cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Dashboard cache read failed")
		}
	}

	stats, err := s.computeStats(ctx, usuarioID, papel)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, stats, s.ttl); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Dashboard cache write failed")
		}
	}

	return stats, nil
}

func (s *dashboardServiceImpl) computeStats(ctx context.Context, usuarioID int64, papel models.Papel) (*dto.DashboardStats, error) {
	switch papel {
	case models.PapelGestor:
		gestor, err := s.profileRepo.GetGestorByUsuarioID(ctx, usuarioID)
		if err != nil {
			return nil, err
		}
		return s.statsRepo.GestorStats(ctx, gestor.ID)
	case models.PapelProfessor:
		professor, err := s.profileRepo.GetProfessorByUsuarioID(ctx, usuarioID)
		if err != nil {
			return nil, err
		}
		return s.statsRepo.ProfessorStats(ctx, professor.ID)
	default:
		return s.statsRepo.GlobalStats(ctx)
	}
}

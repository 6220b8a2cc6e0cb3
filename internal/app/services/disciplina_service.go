package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/repositories"
)

// DisciplinaService defines the interface for disciplina operations
type DisciplinaService interface {
	Create(ctx context.Context, req *dto.CreateDisciplinaRequest) (*models.Disciplina, error)
	GetByID(ctx context.Context, id int64) (*models.Disciplina, error)
	List(ctx context.Context) ([]*models.Disciplina, error)
	UpdatePartial(ctx context.Context, id int64, req *dto.UpdateDisciplinaRequest) (*models.Disciplina, error)
	Delete(ctx context.Context, id int64) error
}

// disciplinaServiceImpl implements DisciplinaService
type disciplinaServiceImpl struct {
	disciplinaRepo *repositories.DisciplinaRepository
	logger         zerolog.Logger
}

// NewDisciplinaService creates a new DisciplinaService
func NewDisciplinaService(disciplinaRepo *repositories.DisciplinaRepository, logger zerolog.Logger) DisciplinaService {
	return &disciplinaServiceImpl{
		disciplinaRepo: disciplinaRepo,
		logger:         logger,
	}
}

// Create registers a new disciplina
func (s *disciplinaServiceImpl) Create(ctx context.Context, req *dto.CreateDisciplinaRequest) (*models.Disciplina, error) {
	d := &models.Disciplina{
		Nome:         req.Nome,
		CargaHoraria: req.CargaHoraria,
	}

	if err := s.disciplinaRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("disciplinaId", d.ID).Str("nome", d.Nome).Msg("Disciplina created")
	return d, nil
}

// GetByID retrieves a disciplina
func (s *disciplinaServiceImpl) GetByID(ctx context.Context, id int64) (*models.Disciplina, error) {
	return s.disciplinaRepo.GetByID(ctx, id)
}

// List retrieves all disciplinas
func (s *disciplinaServiceImpl) List(ctx context.Context) ([]*models.Disciplina, error) {
	return s.disciplinaRepo.List(ctx)
}

// UpdatePartial writes only the provided fields
func (s *disciplinaServiceImpl) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateDisciplinaRequest) (*models.Disciplina, error) {
	if err := s.disciplinaRepo.UpdatePartial(ctx, id, req); err != nil {
		return nil, err
	}
	return s.disciplinaRepo.GetByID(ctx, id)
}

// Delete removes a disciplina that no turma uses
func (s *disciplinaServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.disciplinaRepo.Delete(ctx, id)
}

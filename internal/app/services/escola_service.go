package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/repositories"
	"github.com/escolaplus/backend/internal/pkg/brdoc"
)

// EscolaService defines the interface for escola operations
type EscolaService interface {
	Create(ctx context.Context, req *dto.CreateEscolaRequest) (*models.Escola, error)
	GetByID(ctx context.Context, id int64) (*models.Escola, error)
	ListForUsuario(ctx context.Context, usuarioID int64, papel models.Papel) ([]*models.Escola, error)
	UpdatePartial(ctx context.Context, id int64, req *dto.UpdateEscolaRequest) (*models.Escola, error)
	AssignGestor(ctx context.Context, escolaID, gestorID int64) error
	RemoveGestor(ctx context.Context, escolaID int64) error
	Delete(ctx context.Context, id int64) error
}

// escolaServiceImpl implements EscolaService
type escolaServiceImpl struct {
	escolaRepo    *repositories.EscolaRepository
	professorRepo *repositories.ProfessorRepository
	logger        zerolog.Logger
}

// NewEscolaService creates a new EscolaService
func NewEscolaService(
	escolaRepo *repositories.EscolaRepository,
	professorRepo *repositories.ProfessorRepository,
	logger zerolog.Logger,
) EscolaService {
	return &escolaServiceImpl{
		escolaRepo:    escolaRepo,
		professorRepo: professorRepo,
		logger:        logger,
	}
}

// Create registers a new escola
func (s *escolaServiceImpl) Create(ctx context.Context, req *dto.CreateEscolaRequest) (*models.Escola, error) {
	escola := &models.Escola{
		Nome:     req.Nome,
		Endereco: req.Endereco,
		Cidade:   req.Cidade,
		Estado:   req.Estado,
		Telefone: brdoc.DigitsOnly(req.Telefone),
		Email:    req.Email,
		Website:  req.Website,
	}

	if err := s.escolaRepo.Create(ctx, escola); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("escolaId", escola.ID).Str("nome", escola.Nome).Msg("Escola created")
	return escola, nil
}

// GetByID retrieves an escola with its gestor
func (s *escolaServiceImpl) GetByID(ctx context.Context, id int64) (*models.Escola, error) {
	return s.escolaRepo.GetByID(ctx, id)
}

// ListForUsuario scopes the escola listing by papel: admins see everything,
// gestores only their own escolas
func (s *escolaServiceImpl) ListForUsuario(ctx context.Context, usuarioID int64, papel models.Papel) ([]*models.Escola, error) {
	if papel != models.PapelGestor {
		return s.escolaRepo.List(ctx)
	}

	gestor, err := s.professorRepo.GetGestorByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return s.escolaRepo.ListByGestor(ctx, gestor.ID)
}

// UpdatePartial writes only the provided fields
func (s *escolaServiceImpl) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateEscolaRequest) (*models.Escola, error) {
	if req.Telefone != nil {
		digits := brdoc.DigitsOnly(*req.Telefone)
		req.Telefone = &digits
	}

	if err := s.escolaRepo.UpdatePartial(ctx, id, req); err != nil {
		return nil, err
	}
	return s.escolaRepo.GetByID(ctx, id)
}

// AssignGestor puts a gestor in charge of the escola
func (s *escolaServiceImpl) AssignGestor(ctx context.Context, escolaID, gestorID int64) error {
	if _, err := s.professorRepo.GetGestorByID(ctx, gestorID); err != nil {
		return err
	}
	return s.escolaRepo.AssignGestor(ctx, escolaID, &gestorID)
}

// RemoveGestor clears the escola's gestor slot
func (s *escolaServiceImpl) RemoveGestor(ctx context.Context, escolaID int64) error {
	return s.escolaRepo.AssignGestor(ctx, escolaID, nil)
}

// Delete removes an escola that has no turmas
func (s *escolaServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.escolaRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("escolaId", id).Msg("Escola deleted")
	return nil
}

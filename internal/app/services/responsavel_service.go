package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/brdoc"
)

// ResponsavelService defines the interface for responsavel operations. Every
// operation is scoped to the aluno the responsavel belongs to.
type ResponsavelService interface {
	Create(ctx context.Context, alunoID int64, req *dto.CreateResponsavelRequest) (*models.Responsavel, error)
	ListByAluno(ctx context.Context, alunoID int64) ([]*models.Responsavel, error)
	UpdatePartial(ctx context.Context, alunoID, id int64, req *dto.UpdateResponsavelRequest) (*models.Responsavel, error)
	Delete(ctx context.Context, alunoID, id int64) error
}

// responsavelStore is the repository surface the service needs
type responsavelStore interface {
	Create(ctx context.Context, r *models.Responsavel) error
	GetByID(ctx context.Context, id int64) (*models.Responsavel, error)
	GetByAlunoID(ctx context.Context, alunoID int64) ([]*models.Responsavel, error)
	UpdatePartial(ctx context.Context, id int64, req *dto.UpdateResponsavelRequest) error
	Delete(ctx context.Context, id int64) error
}

// alunoResolver checks that the aluno in the path exists
type alunoResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Aluno, error)
}

// responsavelServiceImpl implements ResponsavelService
type responsavelServiceImpl struct {
	responsavelRepo responsavelStore
	alunoRepo       alunoResolver
	logger          zerolog.Logger
}

// NewResponsavelService creates a new ResponsavelService
func NewResponsavelService(
	responsavelRepo responsavelStore,
	alunoRepo alunoResolver,
	logger zerolog.Logger,
) ResponsavelService {
	return &responsavelServiceImpl{
		responsavelRepo: responsavelRepo,
		alunoRepo:       alunoRepo,
		logger:          logger,
	}
}

// Create attaches a responsavel to an existing aluno
func (s *responsavelServiceImpl) Create(ctx context.Context, alunoID int64, req *dto.CreateResponsavelRequest) (*models.Responsavel, error) {
	if _, err := s.alunoRepo.GetByID(ctx, alunoID); err != nil {
		return nil, err
	}

	resp := &models.Responsavel{
		Nome:       req.Nome,
		CPF:        brdoc.DigitsOnly(req.CPF),
		Email:      req.Email,
		Telefone:   brdoc.DigitsOnly(req.Telefone),
		Endereco:   req.Endereco,
		Parentesco: models.Parentesco(req.Parentesco),
		AlunoID:    alunoID,
	}

	if err := s.responsavelRepo.Create(ctx, resp); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("responsavelId", resp.ID).Int64("alunoId", alunoID).Msg("Responsavel created")
	return resp, nil
}

// ListByAluno retrieves the responsaveis of an aluno
func (s *responsavelServiceImpl) ListByAluno(ctx context.Context, alunoID int64) ([]*models.Responsavel, error) {
	if _, err := s.alunoRepo.GetByID(ctx, alunoID); err != nil {
		return nil, err
	}
	return s.responsavelRepo.GetByAlunoID(ctx, alunoID)
}

// getScoped loads the responsavel and hides it when it belongs to another
// aluno than the one in the path
func (s *responsavelServiceImpl) getScoped(ctx context.Context, alunoID, id int64) (*models.Responsavel, error) {
	resp, err := s.responsavelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp.AlunoID != alunoID {
		return nil, apperrors.ErrResponsavelNotFound
	}
	return resp, nil
}

// UpdatePartial writes only the provided fields
func (s *responsavelServiceImpl) UpdatePartial(ctx context.Context, alunoID, id int64, req *dto.UpdateResponsavelRequest) (*models.Responsavel, error) {
	if _, err := s.getScoped(ctx, alunoID, id); err != nil {
		return nil, err
	}

	if req.Telefone != nil {
		digits := brdoc.DigitsOnly(*req.Telefone)
		req.Telefone = &digits
	}

	if err := s.responsavelRepo.UpdatePartial(ctx, id, req); err != nil {
		return nil, err
	}
	return s.responsavelRepo.GetByID(ctx, id)
}

// Delete removes a responsavel
func (s *responsavelServiceImpl) Delete(ctx context.Context, alunoID, id int64) error {
	if _, err := s.getScoped(ctx, alunoID, id); err != nil {
		return err
	}
	return s.responsavelRepo.Delete(ctx, id)
}

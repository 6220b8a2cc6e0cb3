package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/repositories"
	"github.com/escolaplus/backend/internal/db"
	"github.com/escolaplus/backend/internal/pkg/auth"
	"github.com/escolaplus/backend/internal/pkg/brdoc"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// ProfessorService defines the interface for professor and gestor management
type ProfessorService interface {
	CreateProfessor(ctx context.Context, req *dto.CreateProfessorRequest) (*models.Professor, error)
	GetProfessorByID(ctx context.Context, id int64) (*models.Professor, error)
	ListProfessores(ctx context.Context, page, size int) ([]*models.Professor, dto.PaginationInfo, error)
	UpdateProfessor(ctx context.Context, id int64, req *dto.UpdateProfessorRequest) (*models.Professor, error)
	DeleteProfessor(ctx context.Context, id int64) error
	CreateGestor(ctx context.Context, req *dto.CreateGestorRequest) (*models.Gestor, error)
	ListGestores(ctx context.Context) ([]*models.Gestor, error)
}

// professorServiceImpl implements ProfessorService
type professorServiceImpl struct {
	pool          *pgxpool.Pool
	professorRepo *repositories.ProfessorRepository
	usuarioRepo   *repositories.UsuarioRepository
	logger        zerolog.Logger
}

// NewProfessorService creates a new ProfessorService
func NewProfessorService(
	pool *pgxpool.Pool,
	professorRepo *repositories.ProfessorRepository,
	usuarioRepo *repositories.UsuarioRepository,
	logger zerolog.Logger,
) ProfessorService {
	return &professorServiceImpl{
		pool:          pool,
		professorRepo: professorRepo,
		usuarioRepo:   usuarioRepo,
		logger:        logger,
	}
}

// CreateProfessor opens the usuario account and the professor profile in one
// transaction
func (s *professorServiceImpl) CreateProfessor(ctx context.Context, req *dto.CreateProfessorRequest) (*models.Professor, error) {
	senhaHash, err := auth.HashPassword(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("error hashing senha: %w", err)
	}

	professor := &models.Professor{
		CPF:      brdoc.DigitsOnly(req.CPF),
		Telefone: brdoc.DigitsOnly(req.Telefone),
		Formacao: req.Formacao,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		usuarioID, err := s.usuarioRepo.CreateUsuario(ctx, tx, &models.Usuario{
			Email: req.Email,
			Senha: senhaHash,
			Nome:  req.Nome,
			Papel: models.PapelProfessor,
			Ativo: true,
		})
		if err != nil {
			return err
		}

		professor.UsuarioID = usuarioID
		return s.professorRepo.CreateProfessorTx(ctx, tx, professor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("professorId", professor.ID).Msg("Professor created")
	return s.professorRepo.GetProfessorByID(ctx, professor.ID)
}

// GetProfessorByID retrieves a professor with its usuario
func (s *professorServiceImpl) GetProfessorByID(ctx context.Context, id int64) (*models.Professor, error) {
	return s.professorRepo.GetProfessorByID(ctx, id)
}

// ListProfessores retrieves professores paginated
func (s *professorServiceImpl) ListProfessores(ctx context.Context, page, size int) ([]*models.Professor, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	professores, total, err := s.professorRepo.ListProfessores(ctx, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return professores, helpers.NewPaginationInfo(total, page, size), nil
}

// UpdateProfessor writes only the provided fields, keeping the profile and
// the usuario account consistent in one transaction
func (s *professorServiceImpl) UpdateProfessor(ctx context.Context, id int64, req *dto.UpdateProfessorRequest) (*models.Professor, error) {
	professor, err := s.professorRepo.GetProfessorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Telefone != nil {
		digits := brdoc.DigitsOnly(*req.Telefone)
		req.Telefone = &digits
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.professorRepo.UpdateProfessorTx(ctx, tx, id, req.Telefone, req.Formacao); err != nil {
			return err
		}
		if req.Nome != nil || req.Email != nil || req.Ativo != nil {
			return s.usuarioRepo.UpdateUsuarioTx(ctx, tx, professor.UsuarioID, req.Nome, req.Email, req.Ativo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.professorRepo.GetProfessorByID(ctx, id)
}

// DeleteProfessor removes the professor profile and its usuario account
// together
func (s *professorServiceImpl) DeleteProfessor(ctx context.Context, id int64) error {
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		usuarioID, err := s.professorRepo.DeleteProfessorTx(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.usuarioRepo.DeleteUsuarioTx(ctx, tx, usuarioID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("professorId", id).Msg("Professor deleted")
	return nil
}

// CreateGestor opens the usuario account and the gestor profile in one
// transaction
func (s *professorServiceImpl) CreateGestor(ctx context.Context, req *dto.CreateGestorRequest) (*models.Gestor, error) {
	senhaHash, err := auth.HashPassword(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("error hashing senha: %w", err)
	}

	gestor := &models.Gestor{}
	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		usuarioID, err := s.usuarioRepo.CreateUsuario(ctx, tx, &models.Usuario{
			Email: req.Email,
			Senha: senhaHash,
			Nome:  req.Nome,
			Papel: models.PapelGestor,
			Ativo: true,
		})
		if err != nil {
			return err
		}

		gestor.UsuarioID = usuarioID
		return s.professorRepo.CreateGestorTx(ctx, tx, gestor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("gestorId", gestor.ID).Msg("Gestor created")
	return s.professorRepo.GetGestorByID(ctx, gestor.ID)
}

// ListGestores retrieves all gestores
func (s *professorServiceImpl) ListGestores(ctx context.Context) ([]*models.Gestor, error) {
	return s.professorRepo.ListGestores(ctx)
}

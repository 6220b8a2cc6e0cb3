package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/repositories"
	"github.com/escolaplus/backend/internal/db"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/auth"
	"github.com/escolaplus/backend/internal/pkg/brdoc"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// AlunoService defines the interface for aluno operations
type AlunoService interface {
	Create(ctx context.Context, req *dto.CreateAlunoRequest) (*dto.AlunoResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.AlunoResponse, error)
	List(ctx context.Context, filter dto.AlunoFilter, page, size int) (*dto.AlunoListResponse, error)
	UpdatePartial(ctx context.Context, id int64, req *dto.UpdateAlunoRequest) (*dto.AlunoResponse, error)
	Delete(ctx context.Context, id int64) error
	Matricular(ctx context.Context, alunoID, turmaID int64) error
	Desmatricular(ctx context.Context, alunoID, turmaID int64) error
	GetTurmas(ctx context.Context, alunoID int64) ([]*models.Turma, error)
}

// alunoServiceImpl implements AlunoService
type alunoServiceImpl struct {
	pool            *pgxpool.Pool
	alunoRepo       *repositories.AlunoRepository
	usuarioRepo     *repositories.UsuarioRepository
	responsavelRepo *repositories.ResponsavelRepository
	logger          zerolog.Logger
}

// NewAlunoService creates a new AlunoService
func NewAlunoService(
	pool *pgxpool.Pool,
	alunoRepo *repositories.AlunoRepository,
	usuarioRepo *repositories.UsuarioRepository,
	responsavelRepo *repositories.ResponsavelRepository,
	logger zerolog.Logger,
) AlunoService {
	return &alunoServiceImpl{
		pool:            pool,
		alunoRepo:       alunoRepo,
		usuarioRepo:     usuarioRepo,
		responsavelRepo: responsavelRepo,
		logger:          logger,
	}
}

// newAluno builds the profile row from the request: documents stripped to
// digits, situacao ATIVO and data_matricula stamped with today's date.
func newAluno(req *dto.CreateAlunoRequest) (*models.Aluno, error) {
	dataNascimento, err := helpers.ParseDate(req.DataNascimento)
	if err != nil {
		return nil, apperrors.NewBadRequestError("dataNascimento must be YYYY-MM-DD")
	}

	return &models.Aluno{
		Matricula:      req.Matricula,
		CPF:            brdoc.DigitsOnly(req.CPF),
		DataNascimento: dataNascimento,
		Telefone:       brdoc.DigitsOnly(req.Telefone),
		Endereco:       req.Endereco,
		Cidade:         req.Cidade,
		Estado:         req.Estado,
		CEP:            brdoc.DigitsOnly(req.CEP),
		Situacao:       models.SituacaoAtivo,
		DataMatricula:  helpers.Today(),
	}, nil
}

// Create opens the usuario account, the aluno profile and the optional first
// matricula in one transaction
func (s *alunoServiceImpl) Create(ctx context.Context, req *dto.CreateAlunoRequest) (*dto.AlunoResponse, error) {
	aluno, err := newAluno(req)
	if err != nil {
		return nil, err
	}

	senhaHash, err := auth.HashPassword(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("error hashing senha: %w", err)
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		usuarioID, err := s.usuarioRepo.CreateUsuario(ctx, tx, &models.Usuario{
			Email: req.Email,
			Senha: senhaHash,
			Nome:  req.Nome,
			Papel: models.PapelAluno,
			Ativo: true,
		})
		if err != nil {
			return err
		}

		aluno.UsuarioID = usuarioID
		if _, err := s.alunoRepo.CreateAlunoTx(ctx, tx, aluno); err != nil {
			return err
		}

		if req.TurmaID != nil {
			if err := s.alunoRepo.EnrollTx(ctx, tx, aluno.ID, *req.TurmaID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("alunoId", aluno.ID).Str("matricula", aluno.Matricula).Msg("Aluno created")

	return s.GetByID(ctx, aluno.ID)
}

// GetByID retrieves an aluno with turmas and responsaveis
func (s *alunoServiceImpl) GetByID(ctx context.Context, id int64) (*dto.AlunoResponse, error) {
	aluno, err := s.alunoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	turmas, err := s.alunoRepo.GetTurmas(ctx, id)
	if err != nil {
		return nil, err
	}
	responsaveis, err := s.responsavelRepo.GetByAlunoID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toAlunoResponse(aluno)
	resp.Turmas = turmas
	resp.Responsaveis = responsaveis
	return resp, nil
}

// List retrieves alunos matching the filter, paginated
func (s *alunoServiceImpl) List(ctx context.Context, filter dto.AlunoFilter, page, size int) (*dto.AlunoListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	alunos, total, err := s.alunoRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AlunoResponse, 0, len(alunos))
	for _, aluno := range alunos {
		items = append(items, *toAlunoResponse(aluno))
	}

	return &dto.AlunoListResponse{
		Alunos:     items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// UpdatePartial writes only the provided fields, keeping the aluno profile
// and the usuario account consistent in one transaction
func (s *alunoServiceImpl) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateAlunoRequest) (*dto.AlunoResponse, error) {
	var dataNascimento *time.Time
	if req.DataNascimento != nil {
		parsed, err := helpers.ParseDate(*req.DataNascimento)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dataNascimento must be YYYY-MM-DD")
		}
		dataNascimento = &parsed
	}

	if req.Telefone != nil {
		digits := brdoc.DigitsOnly(*req.Telefone)
		req.Telefone = &digits
	}
	if req.CEP != nil {
		digits := brdoc.DigitsOnly(*req.CEP)
		req.CEP = &digits
	}

	aluno, err := s.alunoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.alunoRepo.UpdatePartialTx(ctx, tx, id, req, dataNascimento); err != nil {
			return err
		}
		if req.Nome != nil || req.Email != nil {
			return s.usuarioRepo.UpdateUsuarioTx(ctx, tx, aluno.UsuarioID, req.Nome, req.Email, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes the aluno profile and its usuario account together
func (s *alunoServiceImpl) Delete(ctx context.Context, id int64) error {
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		usuarioID, err := s.alunoRepo.DeleteTx(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.usuarioRepo.DeleteUsuarioTx(ctx, tx, usuarioID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("alunoId", id).Msg("Aluno deleted")
	return nil
}

// Matricular enrolls the aluno in a turma
func (s *alunoServiceImpl) Matricular(ctx context.Context, alunoID, turmaID int64) error {
	enrolled, err := s.alunoRepo.IsEnrolled(ctx, alunoID, turmaID)
	if err != nil {
		return err
	}
	if enrolled {
		return apperrors.ErrMatriculaJaExiste
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		return s.alunoRepo.EnrollTx(ctx, tx, alunoID, turmaID)
	})
}

// Desmatricular deactivates the aluno's matricula in a turma
func (s *alunoServiceImpl) Desmatricular(ctx context.Context, alunoID, turmaID int64) error {
	return s.alunoRepo.Unenroll(ctx, alunoID, turmaID)
}

// GetTurmas retrieves the turmas the aluno is actively enrolled in
func (s *alunoServiceImpl) GetTurmas(ctx context.Context, alunoID int64) ([]*models.Turma, error) {
	return s.alunoRepo.GetTurmas(ctx, alunoID)
}

// toAlunoResponse renders an aluno with CPF and telefone in display format
func toAlunoResponse(aluno *models.Aluno) *dto.AlunoResponse {
	resp := &dto.AlunoResponse{
		ID:             aluno.ID,
		Matricula:      aluno.Matricula,
		CPF:            brdoc.FormatCPF(aluno.CPF),
		Telefone:       brdoc.FormatTelefone(aluno.Telefone),
		DataNascimento: aluno.DataNascimento.Format(helpers.DateLayout),
		Endereco:       aluno.Endereco,
		Cidade:         aluno.Cidade,
		Estado:         aluno.Estado,
		CEP:            brdoc.FormatCEP(aluno.CEP),
		Situacao:       aluno.Situacao,
		DataMatricula:  aluno.DataMatricula,
	}
	if aluno.Usuario != nil {
		resp.Nome = aluno.Usuario.Nome
		resp.Email = aluno.Usuario.Email
	}
	return resp
}

package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/repositories"
	"github.com/escolaplus/backend/internal/db"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
)

// NotaService defines the interface for grade operations
type NotaService interface {
	Lancar(ctx context.Context, turmaID, autorID int64, papel models.Papel, req *dto.LancarNotasRequest) ([]*models.Nota, error)
	ListByTurmaDisciplina(ctx context.Context, turmaID, disciplinaID int64, bimestre int) ([]*models.Nota, error)
	GetBoletim(ctx context.Context, alunoID int64) (*dto.BoletimResponse, error)
}

// notaServiceImpl implements NotaService
type notaServiceImpl struct {
	pool           *pgxpool.Pool
	notaRepo       *repositories.NotaRepository
	turmaRepo      *repositories.TurmaRepository
	disciplinaRepo *repositories.DisciplinaRepository
	alunoRepo      *repositories.AlunoRepository
	logger         zerolog.Logger
}

// NewNotaService creates a new NotaService
func NewNotaService(
	pool *pgxpool.Pool,
	notaRepo *repositories.NotaRepository,
	turmaRepo *repositories.TurmaRepository,
	disciplinaRepo *repositories.DisciplinaRepository,
	alunoRepo *repositories.AlunoRepository,
	logger zerolog.Logger,
) NotaService {
	return &notaServiceImpl{
		pool:           pool,
		notaRepo:       notaRepo,
		turmaRepo:      turmaRepo,
		disciplinaRepo: disciplinaRepo,
		alunoRepo:      alunoRepo,
		logger:         logger,
	}
}

// Lancar records the turma's grades for one disciplina/bimestre in a single
// transaction. Re-submitting the tuple overwrites the earlier valores.
func (s *notaServiceImpl) Lancar(ctx context.Context, turmaID, autorID int64, papel models.Papel, req *dto.LancarNotasRequest) ([]*models.Nota, error) {
	exists, err := s.turmaRepo.Exists(ctx, turmaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrTurmaNotFound
	}
	if _, err := s.disciplinaRepo.GetByID(ctx, req.DisciplinaID); err != nil {
		return nil, err
	}

	// Professores only record for turmas where they teach
	if papel == models.PapelProfessor {
		leciona, err := s.turmaRepo.ProfessorLeciona(ctx, autorID, turmaID)
		if err != nil {
			return nil, err
		}
		if !leciona {
			return nil, apperrors.NewForbiddenError("professor does not teach in this turma")
		}
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		for _, item := range req.Itens {
			n := &models.Nota{
				AlunoID:      item.AlunoID,
				TurmaID:      turmaID,
				DisciplinaID: req.DisciplinaID,
				Bimestre:     req.Bimestre,
				Valor:        item.Valor,
				AutorID:      autorID,
			}
			if err := s.notaRepo.UpsertTx(ctx, tx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("turmaId", turmaID).
		Int64("disciplinaId", req.DisciplinaID).
		Int("bimestre", req.Bimestre).
		Int("itens", len(req.Itens)).
		Msg("Notas recorded")

	return s.notaRepo.ListByTurmaDisciplina(ctx, turmaID, req.DisciplinaID, req.Bimestre)
}

// ListByTurmaDisciplina retrieves the turma's grades for one
// disciplina/bimestre
func (s *notaServiceImpl) ListByTurmaDisciplina(ctx context.Context, turmaID, disciplinaID int64, bimestre int) ([]*models.Nota, error) {
	if bimestre < 1 || bimestre > 4 {
		return nil, apperrors.NewBadRequestError("bimestre must be between 1 and 4")
	}
	return s.notaRepo.ListByTurmaDisciplina(ctx, turmaID, disciplinaID, bimestre)
}

// GetBoletim builds the aluno's grade report grouped by disciplina, with the
// running media over the bimestres already graded
func (s *notaServiceImpl) GetBoletim(ctx context.Context, alunoID int64) (*dto.BoletimResponse, error) {
	if _, err := s.alunoRepo.GetByID(ctx, alunoID); err != nil {
		return nil, err
	}

	notas, err := s.notaRepo.ListByAluno(ctx, alunoID)
	if err != nil {
		return nil, err
	}

	return buildBoletim(alunoID, notas), nil
}

// buildBoletim groups notas per disciplina in slot order. Rows come sorted by
// disciplina nome then bimestre.
func buildBoletim(alunoID int64, notas []*models.Nota) *dto.BoletimResponse {
	boletim := &dto.BoletimResponse{
		AlunoID:     alunoID,
		Disciplinas: []dto.BoletimDisciplina{},
	}

	index := map[int64]int{}
	for _, n := range notas {
		i, ok := index[n.DisciplinaID]
		if !ok {
			i = len(boletim.Disciplinas)
			index[n.DisciplinaID] = i
			boletim.Disciplinas = append(boletim.Disciplinas, dto.BoletimDisciplina{
				DisciplinaID:   n.DisciplinaID,
				DisciplinaNome: n.Disciplina.Nome,
			})
		}
		if n.Bimestre >= 1 && n.Bimestre <= 4 {
			valor := n.Valor
			boletim.Disciplinas[i].Bimestres[n.Bimestre-1] = &valor
		}
	}

	for i := range boletim.Disciplinas {
		var soma float64
		var graded int
		for _, valor := range boletim.Disciplinas[i].Bimestres {
			if valor != nil {
				soma += *valor
				graded++
			}
		}
		if graded > 0 {
			media := soma / float64(graded)
			boletim.Disciplinas[i].Media = &media
		}
	}

	return boletim
}

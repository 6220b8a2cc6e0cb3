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
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// FrequenciaService defines the interface for attendance operations
type FrequenciaService interface {
	Registrar(ctx context.Context, turmaID, autorID int64, papel models.Papel, req *dto.RegistrarFrequenciaRequest) ([]*models.Frequencia, error)
	GetByTurmaData(ctx context.Context, turmaID int64, data string) ([]*models.Frequencia, error)
	GetResumoAluno(ctx context.Context, alunoID int64, inicio, fim string) (*dto.FrequenciaResumoResponse, error)
}

// frequenciaServiceImpl implements FrequenciaService
type frequenciaServiceImpl struct {
	pool           *pgxpool.Pool
	frequenciaRepo *repositories.FrequenciaRepository
	turmaRepo      *repositories.TurmaRepository
	alunoRepo      *repositories.AlunoRepository
	logger         zerolog.Logger
}

// NewFrequenciaService creates a new FrequenciaService
func NewFrequenciaService(
	pool *pgxpool.Pool,
	frequenciaRepo *repositories.FrequenciaRepository,
	turmaRepo *repositories.TurmaRepository,
	alunoRepo *repositories.AlunoRepository,
	logger zerolog.Logger,
) FrequenciaService {
	return &frequenciaServiceImpl{
		pool:           pool,
		frequenciaRepo: frequenciaRepo,
		turmaRepo:      turmaRepo,
		alunoRepo:      alunoRepo,
		logger:         logger,
	}
}

// Registrar records the whole turma's roll call for one date in a single
// transaction. Re-submitting the same date overwrites earlier statuses.
func (s *frequenciaServiceImpl) Registrar(ctx context.Context, turmaID, autorID int64, papel models.Papel, req *dto.RegistrarFrequenciaRequest) ([]*models.Frequencia, error) {
	data, err := helpers.ParseDate(req.Data)
	if err != nil {
		return nil, apperrors.NewBadRequestError("data must be YYYY-MM-DD")
	}

	exists, err := s.turmaRepo.Exists(ctx, turmaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrTurmaNotFound
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
			f := &models.Frequencia{
				AlunoID:    item.AlunoID,
				TurmaID:    turmaID,
				Data:       data,
				Status:     models.StatusFrequencia(item.Status),
				Observacao: item.Observacao,
				AutorID:    autorID,
			}
			if err := s.frequenciaRepo.UpsertTx(ctx, tx, f); err != nil {
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
		Str("data", req.Data).
		Int("itens", len(req.Itens)).
		Msg("Frequencia registered")

	return s.frequenciaRepo.ListByTurmaData(ctx, turmaID, data)
}

// GetByTurmaData retrieves the turma's roll call for one date
func (s *frequenciaServiceImpl) GetByTurmaData(ctx context.Context, turmaID int64, data string) ([]*models.Frequencia, error) {
	parsed, err := helpers.ParseDate(data)
	if err != nil {
		return nil, apperrors.NewBadRequestError("data must be YYYY-MM-DD")
	}
	return s.frequenciaRepo.ListByTurmaData(ctx, turmaID, parsed)
}

// GetResumoAluno summarizes an aluno's attendance over a period. An empty
// period defaults to the last 30 days.
func (s *frequenciaServiceImpl) GetResumoAluno(ctx context.Context, alunoID int64, inicio, fim string) (*dto.FrequenciaResumoResponse, error) {
	if _, err := s.alunoRepo.GetByID(ctx, alunoID); err != nil {
		return nil, err
	}

	fimData := helpers.Today()
	inicioData := fimData.AddDate(0, 0, -30)
	if inicio != "" {
		parsed, err := helpers.ParseDate(inicio)
		if err != nil {
			return nil, apperrors.NewBadRequestError("inicio must be YYYY-MM-DD")
		}
		inicioData = parsed
	}
	if fim != "" {
		parsed, err := helpers.ParseDate(fim)
		if err != nil {
			return nil, apperrors.NewBadRequestError("fim must be YYYY-MM-DD")
		}
		fimData = parsed
	}
	if inicioData.After(fimData) {
		return nil, apperrors.NewBadRequestError("inicio must not be after fim")
	}

	registros, err := s.frequenciaRepo.ListByAlunoPeriodo(ctx, alunoID, inicioData, fimData)
	if err != nil {
		return nil, err
	}

	return buildResumo(alunoID, registros), nil
}

// buildResumo tallies attendance records into the per-status counters and the
// presence percentage. Atrasado counts as present.
func buildResumo(alunoID int64, registros []*models.Frequencia) *dto.FrequenciaResumoResponse {
	resumo := &dto.FrequenciaResumoResponse{
		AlunoID:   alunoID,
		Registros: registros,
	}
	if resumo.Registros == nil {
		resumo.Registros = []*models.Frequencia{}
	}

	for _, f := range registros {
		resumo.Total++
		switch f.Status {
		case models.FrequenciaPresente:
			resumo.Presentes++
		case models.FrequenciaAusente:
			resumo.Ausentes++
		case models.FrequenciaAtrasado:
			resumo.Atrasados++
		case models.FrequenciaJustificado:
			resumo.Justificados++
		}
	}

	if resumo.Total > 0 {
		resumo.Percentual = float64(resumo.Presentes+resumo.Atrasados) / float64(resumo.Total) * 100
	}

	return resumo
}

package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/repositories"
	"github.com/escolaplus/backend/internal/db"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// TurmaService defines the interface for turma operations
type TurmaService interface {
	Create(ctx context.Context, req *dto.CreateTurmaRequest) (*models.Turma, error)
	GetByID(ctx context.Context, id int64) (*models.Turma, error)
	List(ctx context.Context, filter dto.TurmaFilter, page, size int) ([]*models.Turma, dto.PaginationInfo, error)
	ListForUsuario(ctx context.Context, usuarioID int64, papel models.Papel, filter dto.TurmaFilter, page, size int) ([]*models.Turma, dto.PaginationInfo, error)
	UpdatePartial(ctx context.Context, id int64, req *dto.UpdateTurmaRequest) (*models.Turma, error)
	Delete(ctx context.Context, id int64) error
	GetDisciplinas(ctx context.Context, turmaID int64) ([]*models.TurmaDisciplina, error)
	AssignDisciplinas(ctx context.Context, turmaID int64, req *dto.AssignDisciplinasRequest) ([]*models.TurmaDisciplina, error)
	RemoveDisciplina(ctx context.Context, turmaID, disciplinaID int64) error
}

// turmaServiceImpl implements TurmaService
type turmaServiceImpl struct {
	pool          *pgxpool.Pool
	turmaRepo     *repositories.TurmaRepository
	professorRepo *repositories.ProfessorRepository
	logger        zerolog.Logger
}

// NewTurmaService creates a new TurmaService
func NewTurmaService(
	pool *pgxpool.Pool,
	turmaRepo *repositories.TurmaRepository,
	professorRepo *repositories.ProfessorRepository,
	logger zerolog.Logger,
) TurmaService {
	return &turmaServiceImpl{
		pool:          pool,
		turmaRepo:     turmaRepo,
		professorRepo: professorRepo,
		logger:        logger,
	}
}

// Create opens a new turma inside an escola
func (s *turmaServiceImpl) Create(ctx context.Context, req *dto.CreateTurmaRequest) (*models.Turma, error) {
	turma := &models.Turma{
		Nome:     req.Nome,
		Codigo:   req.Codigo,
		Turno:    models.Turno(req.Turno),
		EscolaID: req.EscolaID,
	}

	if err := s.turmaRepo.Create(ctx, turma); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("turmaId", turma.ID).Str("codigo", turma.Codigo).Msg("Turma created")
	return turma, nil
}

// GetByID retrieves a turma with escola and aluno count
func (s *turmaServiceImpl) GetByID(ctx context.Context, id int64) (*models.Turma, error) {
	return s.turmaRepo.GetByID(ctx, id)
}

// List retrieves turmas matching the filter, paginated
func (s *turmaServiceImpl) List(ctx context.Context, filter dto.TurmaFilter, page, size int) ([]*models.Turma, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	turmas, total, err := s.turmaRepo.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return turmas, helpers.NewPaginationInfo(total, page, size), nil
}

// ListForUsuario scopes the turma listing by papel: professores only see the
// turmas where they hold a disciplina
func (s *turmaServiceImpl) ListForUsuario(ctx context.Context, usuarioID int64, papel models.Papel, filter dto.TurmaFilter, page, size int) ([]*models.Turma, dto.PaginationInfo, error) {
	if papel != models.PapelProfessor {
		return s.List(ctx, filter, page, size)
	}

	professor, err := s.professorRepo.GetProfessorByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	turmas, err := s.turmaRepo.ListByProfessor(ctx, professor.ID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	paged, pagination := pageTurmas(turmas, filter, page, size)
	return paged, pagination, nil
}

// pageTurmas applies the list filter and pagination in memory. The lecionada
// set is small, so the professor path filters after the join query instead of
// duplicating the squirrel builder.
func pageTurmas(turmas []*models.Turma, filter dto.TurmaFilter, page, size int) ([]*models.Turma, dto.PaginationInfo) {
	busca := strings.ToLower(filter.Busca)

	filtered := make([]*models.Turma, 0, len(turmas))
	for _, t := range turmas {
		if filter.EscolaID > 0 && t.EscolaID != filter.EscolaID {
			continue
		}
		if busca != "" &&
			!strings.Contains(strings.ToLower(t.Nome), busca) &&
			!strings.Contains(strings.ToLower(t.Codigo), busca) {
			continue
		}
		filtered = append(filtered, t)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	start := int(offset)
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], helpers.NewPaginationInfo(int64(len(filtered)), page, size)
}

// UpdatePartial writes only the provided fields
func (s *turmaServiceImpl) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateTurmaRequest) (*models.Turma, error) {
	if err := s.turmaRepo.UpdatePartial(ctx, id, req); err != nil {
		return nil, err
	}
	return s.turmaRepo.GetByID(ctx, id)
}

// Delete removes a turma without active matriculas
func (s *turmaServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.turmaRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("turmaId", id).Msg("Turma deleted")
	return nil
}

// GetDisciplinas retrieves the turma's disciplina assignments
func (s *turmaServiceImpl) GetDisciplinas(ctx context.Context, turmaID int64) ([]*models.TurmaDisciplina, error) {
	if _, err := s.turmaRepo.GetByID(ctx, turmaID); err != nil {
		return nil, err
	}
	return s.turmaRepo.GetDisciplinas(ctx, turmaID)
}

// AssignDisciplinas applies the whole batch inside one transaction: either
// every disciplina is assigned or none is
func (s *turmaServiceImpl) AssignDisciplinas(ctx context.Context, turmaID int64, req *dto.AssignDisciplinasRequest) ([]*models.TurmaDisciplina, error) {
	if _, err := s.turmaRepo.GetByID(ctx, turmaID); err != nil {
		return nil, err
	}
	if req.ProfessorID != nil {
		if _, err := s.professorRepo.GetProfessorByID(ctx, *req.ProfessorID); err != nil {
			return nil, err
		}
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		for _, disciplinaID := range req.DisciplinaIDs {
			if err := s.turmaRepo.AssignDisciplinaTx(ctx, tx, turmaID, disciplinaID, req.ProfessorID); err != nil {
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
		Int("disciplinas", len(req.DisciplinaIDs)).
		Msg("Disciplinas assigned to turma")

	return s.turmaRepo.GetDisciplinas(ctx, turmaID)
}

// RemoveDisciplina drops one disciplina slot from the turma
func (s *turmaServiceImpl) RemoveDisciplina(ctx context.Context, turmaID, disciplinaID int64) error {
	return s.turmaRepo.RemoveDisciplina(ctx, turmaID, disciplinaID)
}

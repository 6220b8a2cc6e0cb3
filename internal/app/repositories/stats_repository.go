package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models/dto"
)

// StatsRepository computes the dashboard counters
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// GlobalStats counts every entity in the system. Shown to administradores.
func (r *StatsRepository) GlobalStats(ctx context.Context) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM escolas),
			(SELECT COUNT(*) FROM turmas),
			(SELECT COUNT(*) FROM alunos),
			(SELECT COUNT(*) FROM professores),
			(SELECT COUNT(*) FROM ocorrencias WHERE data_ocorrencia >= CURRENT_DATE - INTERVAL '30 days')`,
	).Scan(&stats.Escolas, &stats.Turmas, &stats.Alunos, &stats.Professores, &stats.OcorrenciasRecentes)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	return stats, nil
}

// GestorStats counts only what belongs to the gestor's escolas
func (r *StatsRepository) GestorStats(ctx context.Context, gestorID int64) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}
	err := r.db.QueryRow(ctx, `
		WITH minhas_escolas AS (
			SELECT id FROM escolas WHERE gestor_id = $1
		), minhas_turmas AS (
			SELECT id FROM turmas WHERE escola_id IN (SELECT id FROM minhas_escolas)
		), meus_alunos AS (
			SELECT DISTINCT m.aluno_id FROM matriculas m
			WHERE m.turma_id IN (SELECT id FROM minhas_turmas) AND m.ativa
		)
		SELECT
			(SELECT COUNT(*) FROM minhas_escolas),
			(SELECT COUNT(*) FROM minhas_turmas),
			(SELECT COUNT(*) FROM meus_alunos),
			(SELECT COUNT(DISTINCT td.professor_id) FROM turma_disciplinas td
				WHERE td.turma_id IN (SELECT id FROM minhas_turmas) AND td.professor_id IS NOT NULL),
			(SELECT COUNT(*) FROM ocorrencias o
				WHERE o.aluno_id IN (SELECT aluno_id FROM meus_alunos)
				AND o.data_ocorrencia >= CURRENT_DATE - INTERVAL '30 days')`,
		gestorID,
	).Scan(&stats.Escolas, &stats.Turmas, &stats.Alunos, &stats.Professores, &stats.OcorrenciasRecentes)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	return stats, nil
}

// ProfessorStats counts only the turmas and alunos the professor teaches
func (r *StatsRepository) ProfessorStats(ctx context.Context, professorID int64) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}
	err := r.db.QueryRow(ctx, `
		WITH minhas_turmas AS (
			SELECT DISTINCT turma_id AS id FROM turma_disciplinas WHERE professor_id = $1
		), meus_alunos AS (
			SELECT DISTINCT m.aluno_id FROM matriculas m
			WHERE m.turma_id IN (SELECT id FROM minhas_turmas) AND m.ativa
		)
		SELECT
			(SELECT COUNT(*) FROM minhas_turmas),
			(SELECT COUNT(*) FROM meus_alunos),
			(SELECT COUNT(*) FROM ocorrencias o
				WHERE o.aluno_id IN (SELECT aluno_id FROM meus_alunos)
				AND o.data_ocorrencia >= CURRENT_DATE - INTERVAL '30 days')`,
		professorID,
	).Scan(&stats.Turmas, &stats.Alunos, &stats.OcorrenciasRecentes)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	return stats, nil
}

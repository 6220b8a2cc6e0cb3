package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// FrequenciaRepository handles database operations for attendance records
type FrequenciaRepository struct {
	db *pgxpool.Pool
}

// NewFrequenciaRepository creates a new FrequenciaRepository
func NewFrequenciaRepository(db *pgxpool.Pool) *FrequenciaRepository {
	return &FrequenciaRepository{
		db: db,
	}
}

// UpsertTx records one aluno's attendance for a turma/date inside the
// caller's transaction. Re-submitting the same date overwrites the status.
func (r *FrequenciaRepository) UpsertTx(ctx context.Context, q Querier, f *models.Frequencia) error {
	err := q.QueryRow(ctx, `
		INSERT INTO frequencias (aluno_id, turma_id, data, status, observacao, autor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (aluno_id, turma_id, data)
		DO UPDATE SET status = EXCLUDED.status, observacao = EXCLUDED.observacao, autor_id = EXCLUDED.autor_id
		RETURNING id`,
		f.AlunoID, f.TurmaID, f.Data, f.Status, f.Observacao, f.AutorID,
	).Scan(&f.ID)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAlunoNotFound
		}
		return fmt.Errorf("error recording frequencia: %w", err)
	}

	return nil
}

// ListByTurmaData retrieves the turma's roll call for one date
func (r *FrequenciaRepository) ListByTurmaData(ctx context.Context, turmaID int64, data time.Time) ([]*models.Frequencia, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.aluno_id, f.turma_id, f.data, f.status, f.observacao, f.autor_id,
			u.nome
		FROM frequencias f
		JOIN alunos a ON a.id = f.aluno_id
		JOIN usuarios u ON u.id = a.usuario_id
		WHERE f.turma_id = $1 AND f.data = $2
		ORDER BY u.nome`, turmaID, data)
	if err != nil {
		return nil, fmt.Errorf("error listing frequencias: %w", err)
	}
	defer rows.Close()

	var frequencias []*models.Frequencia
	for rows.Next() {
		f := &models.Frequencia{Aluno: &models.Aluno{Usuario: &models.Usuario{}}}
		if err := rows.Scan(
			&f.ID, &f.AlunoID, &f.TurmaID, &f.Data, &f.Status, &f.Observacao, &f.AutorID,
			&f.Aluno.Usuario.Nome,
		); err != nil {
			return nil, err
		}
		f.Aluno.ID = f.AlunoID
		frequencias = append(frequencias, f)
	}

	return frequencias, rows.Err()
}

// ListByAlunoPeriodo retrieves an aluno's attendance records inside a date
// range, newest first
func (r *FrequenciaRepository) ListByAlunoPeriodo(ctx context.Context, alunoID int64, inicio, fim time.Time) ([]*models.Frequencia, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, aluno_id, turma_id, data, status, observacao, autor_id
		FROM frequencias
		WHERE aluno_id = $1 AND data BETWEEN $2 AND $3
		ORDER BY data DESC`, alunoID, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("error listing frequencias: %w", err)
	}
	defer rows.Close()

	var frequencias []*models.Frequencia
	for rows.Next() {
		f := &models.Frequencia{}
		if err := rows.Scan(
			&f.ID, &f.AlunoID, &f.TurmaID, &f.Data, &f.Status, &f.Observacao, &f.AutorID,
		); err != nil {
			return nil, err
		}
		frequencias = append(frequencias, f)
	}

	return frequencias, rows.Err()
}

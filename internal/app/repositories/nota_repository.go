package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// NotaRepository handles database operations for grades
type NotaRepository struct {
	db *pgxpool.Pool
}

// NewNotaRepository creates a new NotaRepository
func NewNotaRepository(db *pgxpool.Pool) *NotaRepository {
	return &NotaRepository{
		db: db,
	}
}

// UpsertTx records one aluno's grade for a turma/disciplina/bimestre inside
// the caller's transaction. Re-submitting the tuple overwrites the valor.
func (r *NotaRepository) UpsertTx(ctx context.Context, q Querier, n *models.Nota) error {
	err := q.QueryRow(ctx, `
		INSERT INTO notas (aluno_id, turma_id, disciplina_id, bimestre, valor, autor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (aluno_id, turma_id, disciplina_id, bimestre)
		DO UPDATE SET valor = EXCLUDED.valor, autor_id = EXCLUDED.autor_id
		RETURNING id`,
		n.AlunoID, n.TurmaID, n.DisciplinaID, n.Bimestre, n.Valor, n.AutorID,
	).Scan(&n.ID)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAlunoNotFound
		}
		return fmt.Errorf("error recording nota: %w", err)
	}

	return nil
}

// ListByTurmaDisciplina retrieves the turma's grades for one
// disciplina/bimestre
func (r *NotaRepository) ListByTurmaDisciplina(ctx context.Context, turmaID, disciplinaID int64, bimestre int) ([]*models.Nota, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, aluno_id, turma_id, disciplina_id, bimestre, valor, autor_id
		FROM notas
		WHERE turma_id = $1 AND disciplina_id = $2 AND bimestre = $3
		ORDER BY aluno_id`, turmaID, disciplinaID, bimestre)
	if err != nil {
		return nil, fmt.Errorf("error listing notas: %w", err)
	}
	defer rows.Close()

	var notas []*models.Nota
	for rows.Next() {
		n := &models.Nota{}
		if err := rows.Scan(
			&n.ID, &n.AlunoID, &n.TurmaID, &n.DisciplinaID, &n.Bimestre, &n.Valor, &n.AutorID,
		); err != nil {
			return nil, err
		}
		notas = append(notas, n)
	}

	return notas, rows.Err()
}

// ListByAluno retrieves all of an aluno's grades with the disciplina names,
// ordered for the boletim
func (r *NotaRepository) ListByAluno(ctx context.Context, alunoID int64) ([]*models.Nota, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.id, n.aluno_id, n.turma_id, n.disciplina_id, n.bimestre, n.valor, n.autor_id,
			d.nome, d.carga_horaria
		FROM notas n
		JOIN disciplinas d ON d.id = n.disciplina_id
		WHERE n.aluno_id = $1
		ORDER BY d.nome, n.bimestre`, alunoID)
	if err != nil {
		return nil, fmt.Errorf("error listing notas: %w", err)
	}
	defer rows.Close()

	var notas []*models.Nota
	for rows.Next() {
		n := &models.Nota{Disciplina: &models.Disciplina{}}
		if err := rows.Scan(
			&n.ID, &n.AlunoID, &n.TurmaID, &n.DisciplinaID, &n.Bimestre, &n.Valor, &n.AutorID,
			&n.Disciplina.Nome, &n.Disciplina.CargaHoraria,
		); err != nil {
			return nil, err
		}
		n.Disciplina.ID = n.DisciplinaID
		notas = append(notas, n)
	}

	return notas, rows.Err()
}

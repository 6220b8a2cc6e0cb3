package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// TurmaRepository handles database operations for turmas and their
// disciplina assignments
type TurmaRepository struct {
	db *pgxpool.Pool
}

// NewTurmaRepository creates a new TurmaRepository
func NewTurmaRepository(db *pgxpool.Pool) *TurmaRepository {
	return &TurmaRepository{
		db: db,
	}
}

// Create inserts a new turma
func (r *TurmaRepository) Create(ctx context.Context, t *models.Turma) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO turmas (nome, codigo, turno, escola_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		t.Nome, t.Codigo, t.Turno, t.EscolaID,
	).Scan(&t.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "turmas_codigo_key") {
			return apperrors.ErrTurmaJaExiste
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEscolaNotFound
		}
		return fmt.Errorf("error creating turma: %w", err)
	}

	return nil
}

// GetByID retrieves a turma with its escola and the count of active alunos
func (r *TurmaRepository) GetByID(ctx context.Context, id int64) (*models.Turma, error) {
	t := &models.Turma{Escola: &models.Escola{}}
	err := r.db.QueryRow(ctx, `
		SELECT t.id, t.nome, t.codigo, t.turno, t.escola_id,
			e.nome, e.cidade, e.estado,
			(SELECT COUNT(*) FROM matriculas m WHERE m.turma_id = t.id AND m.ativa)
		FROM turmas t
		JOIN escolas e ON e.id = t.escola_id
		WHERE t.id = $1`, id).Scan(
		&t.ID, &t.Nome, &t.Codigo, &t.Turno, &t.EscolaID,
		&t.Escola.Nome, &t.Escola.Cidade, &t.Escola.Estado,
		&t.TotalAlunos,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTurmaNotFound
		}
		return nil, fmt.Errorf("error retrieving turma: %w", err)
	}
	t.Escola.ID = t.EscolaID

	return t, nil
}

// List retrieves turmas matching the filter, with pagination
func (r *TurmaRepository) List(ctx context.Context, filter dto.TurmaFilter, offset, limit int) ([]*models.Turma, int64, error) {
	base := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	where := sq.And{}
	if filter.EscolaID > 0 {
		where = append(where, sq.Eq{"t.escola_id": filter.EscolaID})
	}
	if filter.Busca != "" {
		pattern := "%" + filter.Busca + "%"
		where = append(where, sq.Or{
			sq.ILike{"t.nome": pattern},
			sq.ILike{"t.codigo": pattern},
		})
	}

	countSQL, countArgs, err := base.Select("COUNT(*)").From("turmas t").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building turma count: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting turmas: %w", err)
	}

	listSQL, listArgs, err := base.Select(
		"t.id", "t.nome", "t.codigo", "t.turno", "t.escola_id",
		"(SELECT COUNT(*) FROM matriculas m WHERE m.turma_id = t.id AND m.ativa)",
	).
		From("turmas t").
		Where(where).
		OrderBy("t.nome").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building turma query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing turmas: %w", err)
	}
	defer rows.Close()

	var turmas []*models.Turma
	for rows.Next() {
		t := &models.Turma{}
		if err := rows.Scan(&t.ID, &t.Nome, &t.Codigo, &t.Turno, &t.EscolaID, &t.TotalAlunos); err != nil {
			return nil, 0, err
		}
		turmas = append(turmas, t)
	}

	return turmas, total, rows.Err()
}

// ListByProfessor retrieves the turmas where the professor holds at least
// one disciplina. Professores only see their own turmas.
func (r *TurmaRepository) ListByProfessor(ctx context.Context, professorID int64) ([]*models.Turma, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT t.id, t.nome, t.codigo, t.turno, t.escola_id
		FROM turmas t
		JOIN turma_disciplinas td ON td.turma_id = t.id
		WHERE td.professor_id = $1
		ORDER BY t.nome`, professorID)
	if err != nil {
		return nil, fmt.Errorf("error listing turmas: %w", err)
	}
	defer rows.Close()

	var turmas []*models.Turma
	for rows.Next() {
		t := &models.Turma{}
		if err := rows.Scan(&t.ID, &t.Nome, &t.Codigo, &t.Turno, &t.EscolaID); err != nil {
			return nil, err
		}
		turmas = append(turmas, t)
	}

	return turmas, rows.Err()
}

// UpdatePartial writes only the provided fields of a turma
func (r *TurmaRepository) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateTurmaRequest) error {
	if req.Empty() {
		return nil
	}

	builder := sq.Update("turmas").PlaceholderFormat(sq.Dollar)
	if req.Nome != nil {
		builder = builder.Set("nome", *req.Nome)
	}
	if req.Codigo != nil {
		builder = builder.Set("codigo", *req.Codigo)
	}
	if req.Turno != nil {
		builder = builder.Set("turno", *req.Turno)
	}

	sql, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building turma update: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "turmas_codigo_key") {
			return apperrors.ErrTurmaJaExiste
		}
		return fmt.Errorf("error updating turma: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTurmaNotFound
	}

	return nil
}

// Delete removes a turma. Turmas with active matriculas cannot be removed.
func (r *TurmaRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM turmas WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrTurmaComVinculos
		}
		return fmt.Errorf("error deleting turma: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTurmaNotFound
	}
	return nil
}

// GetDisciplinas retrieves the disciplina assignments of a turma, with the
// professor holding each slot
func (r *TurmaRepository) GetDisciplinas(ctx context.Context, turmaID int64) ([]*models.TurmaDisciplina, error) {
	rows, err := r.db.Query(ctx, `
		SELECT td.id, td.turma_id, td.disciplina_id, td.professor_id,
			d.nome, d.carga_horaria,
			p.id, u.nome
		FROM turma_disciplinas td
		JOIN disciplinas d ON d.id = td.disciplina_id
		LEFT JOIN professores p ON p.id = td.professor_id
		LEFT JOIN usuarios u ON u.id = p.usuario_id
		WHERE td.turma_id = $1
		ORDER BY d.nome`, turmaID)
	if err != nil {
		return nil, fmt.Errorf("error listing turma disciplinas: %w", err)
	}
	defer rows.Close()

	var assignments []*models.TurmaDisciplina
	for rows.Next() {
		td := &models.TurmaDisciplina{Disciplina: &models.Disciplina{}}
		var profID *int64
		var profNome *string
		err := rows.Scan(
			&td.ID, &td.TurmaID, &td.DisciplinaID, &td.ProfessorID,
			&td.Disciplina.Nome, &td.Disciplina.CargaHoraria,
			&profID, &profNome,
		)
		if err != nil {
			return nil, err
		}
		td.Disciplina.ID = td.DisciplinaID
		if profID != nil {
			td.Professor = &models.Professor{
				ID:      *profID,
				Usuario: &models.Usuario{Nome: *profNome},
			}
		}
		assignments = append(assignments, td)
	}

	return assignments, rows.Err()
}

// AssignDisciplinaTx adds one disciplina slot to a turma inside the caller's
// transaction, so batch assignments apply atomically
func (r *TurmaRepository) AssignDisciplinaTx(ctx context.Context, q Querier, turmaID, disciplinaID int64, professorID *int64) error {
	_, err := q.Exec(ctx, `
		INSERT INTO turma_disciplinas (turma_id, disciplina_id, professor_id)
		VALUES ($1, $2, $3)`,
		turmaID, disciplinaID, professorID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "turma_disciplinas_turma_id_disciplina_id_key") {
			return apperrors.ErrDisciplinaJaVinculada
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDisciplinaNotFound
		}
		return fmt.Errorf("error assigning disciplina: %w", err)
	}
	return nil
}

// RemoveDisciplina drops one disciplina slot from a turma
func (r *TurmaRepository) RemoveDisciplina(ctx context.Context, turmaID, disciplinaID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM turma_disciplinas WHERE turma_id = $1 AND disciplina_id = $2`,
		turmaID, disciplinaID)
	if err != nil {
		return fmt.Errorf("error removing disciplina: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDisciplinaNotFound
	}
	return nil
}

// ProfessorLeciona reports whether the usuario teaches any disciplina in the
// turma
func (r *TurmaRepository) ProfessorLeciona(ctx context.Context, usuarioID, turmaID int64) (bool, error) {
	var leciona bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM turma_disciplinas td
			JOIN professores p ON p.id = td.professor_id
			WHERE p.usuario_id = $1 AND td.turma_id = $2
		)`, usuarioID, turmaID).Scan(&leciona)
	if err != nil {
		return false, fmt.Errorf("error checking professor turma: %w", err)
	}
	return leciona, nil
}

// Exists reports whether a turma exists
func (r *TurmaRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM turmas WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking turma: %w", err)
	}
	return exists, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// DisciplinaRepository handles database operations for disciplinas
type DisciplinaRepository struct {
	db *pgxpool.Pool
}

// NewDisciplinaRepository creates a new DisciplinaRepository
func NewDisciplinaRepository(db *pgxpool.Pool) *DisciplinaRepository {
	return &DisciplinaRepository{
		db: db,
	}
}

// Create inserts a new disciplina
func (r *DisciplinaRepository) Create(ctx context.Context, d *models.Disciplina) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO disciplinas (nome, carga_horaria)
		VALUES ($1, $2)
		RETURNING id`,
		d.Nome, d.CargaHoraria,
	).Scan(&d.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "disciplinas_nome_key") {
			return apperrors.ErrDisciplinaJaExiste
		}
		return fmt.Errorf("error creating disciplina: %w", err)
	}

	return nil
}

// GetByID retrieves a disciplina by ID
func (r *DisciplinaRepository) GetByID(ctx context.Context, id int64) (*models.Disciplina, error) {
	d := &models.Disciplina{}
	err := r.db.QueryRow(ctx,
		`SELECT id, nome, carga_horaria FROM disciplinas WHERE id = $1`, id).
		Scan(&d.ID, &d.Nome, &d.CargaHoraria)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDisciplinaNotFound
		}
		return nil, fmt.Errorf("error retrieving disciplina: %w", err)
	}

	return d, nil
}

// List retrieves all disciplinas ordered by nome
func (r *DisciplinaRepository) List(ctx context.Context) ([]*models.Disciplina, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nome, carga_horaria FROM disciplinas ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("error listing disciplinas: %w", err)
	}
	defer rows.Close()

	var disciplinas []*models.Disciplina
	for rows.Next() {
		d := &models.Disciplina{}
		if err := rows.Scan(&d.ID, &d.Nome, &d.CargaHoraria); err != nil {
			return nil, err
		}
		disciplinas = append(disciplinas, d)
	}

	return disciplinas, rows.Err()
}

// UpdatePartial writes only the provided fields of a disciplina
func (r *DisciplinaRepository) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateDisciplinaRequest) error {
	set := ""
	args := []any{}
	n := 1
	add := func(col string, val any) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, n)
		args = append(args, val)
		n++
	}

	if req.Nome != nil {
		add("nome", *req.Nome)
	}
	if req.CargaHoraria != nil {
		add("carga_horaria", *req.CargaHoraria)
	}

	if set == "" {
		return nil
	}

	args = append(args, id)
	cmdTag, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE disciplinas SET %s WHERE id = $%d`, set, n), args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "disciplinas_nome_key") {
			return apperrors.ErrDisciplinaJaExiste
		}
		return fmt.Errorf("error updating disciplina: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDisciplinaNotFound
	}

	return nil
}

// Delete removes a disciplina that is not assigned to any turma
func (r *DisciplinaRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM disciplinas WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDisciplinaJaVinculada
		}
		return fmt.Errorf("error deleting disciplina: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDisciplinaNotFound
	}
	return nil
}

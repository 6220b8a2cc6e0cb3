package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// OcorrenciaRepository handles database operations for ocorrencias
type OcorrenciaRepository struct {
	db *pgxpool.Pool
}

// NewOcorrenciaRepository creates a new OcorrenciaRepository
func NewOcorrenciaRepository(db *pgxpool.Pool) *OcorrenciaRepository {
	return &OcorrenciaRepository{
		db: db,
	}
}

const ocorrenciaColumns = `o.id, o.tipo, o.titulo, o.descricao, o.data_ocorrencia,
	o.visivel_para_responsavel, o.aluno_id, o.autor_id, o.created_at,
	u.id, u.nome, u.email, u.papel`

func scanOcorrencia(row pgx.Row) (*models.Ocorrencia, error) {
	o := &models.Ocorrencia{Autor: &models.Usuario{}}
	err := row.Scan(
		&o.ID, &o.Tipo, &o.Titulo, &o.Descricao, &o.DataOcorrencia,
		&o.VisivelParaResponsavel, &o.AlunoID, &o.AutorID, &o.CreatedAt,
		&o.Autor.ID, &o.Autor.Nome, &o.Autor.Email, &o.Autor.Papel,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new ocorrencia
func (r *OcorrenciaRepository) Create(ctx context.Context, o *models.Ocorrencia) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO ocorrencias (tipo, titulo, descricao, data_ocorrencia, visivel_para_responsavel, aluno_id, autor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		o.Tipo, o.Titulo, o.Descricao, o.DataOcorrencia, o.VisivelParaResponsavel, o.AlunoID, o.AutorID,
	).Scan(&o.ID, &o.CreatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAlunoNotFound
		}
		return fmt.Errorf("error creating ocorrencia: %w", err)
	}

	return nil
}

// GetByID retrieves an ocorrencia with its autor
func (r *OcorrenciaRepository) GetByID(ctx context.Context, id int64) (*models.Ocorrencia, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM ocorrencias o
		JOIN usuarios u ON u.id = o.autor_id
		WHERE o.id = $1`, ocorrenciaColumns), id)

	o, err := scanOcorrencia(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOcorrenciaNotFound
		}
		return nil, fmt.Errorf("error retrieving ocorrencia: %w", err)
	}

	return o, nil
}

// ListByAluno retrieves the ocorrencias of an aluno, newest first. A tipo
// filter narrows the result to a single category.
func (r *OcorrenciaRepository) ListByAluno(ctx context.Context, alunoID int64, tipo *models.TipoOcorrencia) ([]*models.Ocorrencia, error) {
	builder := sq.Select(ocorrenciaColumns).
		From("ocorrencias o").
		Join("usuarios u ON u.id = o.autor_id").
		Where(sq.Eq{"o.aluno_id": alunoID}).
		OrderBy("o.data_ocorrencia DESC", "o.created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if tipo != nil {
		builder = builder.Where(sq.Eq{"o.tipo": *tipo})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building ocorrencia query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing ocorrencias: %w", err)
	}
	defer rows.Close()

	var ocorrencias []*models.Ocorrencia
	for rows.Next() {
		o, err := scanOcorrencia(rows)
		if err != nil {
			return nil, err
		}
		ocorrencias = append(ocorrencias, o)
	}

	return ocorrencias, rows.Err()
}

// ListVisiveisByAluno retrieves only the ocorrencias flagged as visible to
// the aluno's responsaveis
func (r *OcorrenciaRepository) ListVisiveisByAluno(ctx context.Context, alunoID int64) ([]*models.Ocorrencia, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM ocorrencias o
		JOIN usuarios u ON u.id = o.autor_id
		WHERE o.aluno_id = $1 AND o.visivel_para_responsavel
		ORDER BY o.data_ocorrencia DESC, o.created_at DESC`, ocorrenciaColumns), alunoID)
	if err != nil {
		return nil, fmt.Errorf("error listing ocorrencias: %w", err)
	}
	defer rows.Close()

	var ocorrencias []*models.Ocorrencia
	for rows.Next() {
		o, err := scanOcorrencia(rows)
		if err != nil {
			return nil, err
		}
		ocorrencias = append(ocorrencias, o)
	}

	return ocorrencias, rows.Err()
}

// UpdatePartial writes only the provided fields of an ocorrencia
func (r *OcorrenciaRepository) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateOcorrenciaRequest, dataOcorrencia *time.Time) error {
	builder := sq.Update("ocorrencias").PlaceholderFormat(sq.Dollar)

	if req.Tipo != nil {
		builder = builder.Set("tipo", *req.Tipo)
	}
	if req.Titulo != nil {
		builder = builder.Set("titulo", *req.Titulo)
	}
	if req.Descricao != nil {
		builder = builder.Set("descricao", *req.Descricao)
	}
	if dataOcorrencia != nil {
		builder = builder.Set("data_ocorrencia", *dataOcorrencia)
	}
	if req.VisivelParaResponsavel != nil {
		builder = builder.Set("visivel_para_responsavel", *req.VisivelParaResponsavel)
	}

	if req.Empty() && dataOcorrencia == nil {
		return nil
	}

	sql, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building ocorrencia update: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating ocorrencia: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOcorrenciaNotFound
	}

	return nil
}

// Delete removes an ocorrencia
func (r *OcorrenciaRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM ocorrencias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting ocorrencia: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOcorrenciaNotFound
	}
	return nil
}

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

// ResponsavelRepository handles database operations for responsaveis
type ResponsavelRepository struct {
	db *pgxpool.Pool
}

// NewResponsavelRepository creates a new ResponsavelRepository
func NewResponsavelRepository(db *pgxpool.Pool) *ResponsavelRepository {
	return &ResponsavelRepository{
		db: db,
	}
}

// Create attaches a responsavel to an aluno
func (r *ResponsavelRepository) Create(ctx context.Context, resp *models.Responsavel) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO responsaveis (nome, cpf, email, telefone, endereco, parentesco, aluno_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		resp.Nome, resp.CPF, resp.Email, resp.Telefone, resp.Endereco, resp.Parentesco, resp.AlunoID,
	).Scan(&resp.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "responsaveis_cpf_aluno_id_key") {
			return apperrors.ErrCPFJaCadastrado
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAlunoNotFound
		}
		return fmt.Errorf("error creating responsavel: %w", err)
	}

	return nil
}

// GetByID retrieves a responsavel by ID
func (r *ResponsavelRepository) GetByID(ctx context.Context, id int64) (*models.Responsavel, error) {
	resp := &models.Responsavel{}
	err := r.db.QueryRow(ctx, `
		SELECT id, nome, cpf, email, telefone, endereco, parentesco, aluno_id
		FROM responsaveis
		WHERE id = $1`, id).Scan(
		&resp.ID, &resp.Nome, &resp.CPF, &resp.Email, &resp.Telefone,
		&resp.Endereco, &resp.Parentesco, &resp.AlunoID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResponsavelNotFound
		}
		return nil, fmt.Errorf("error retrieving responsavel: %w", err)
	}

	return resp, nil
}

// GetByAlunoID retrieves all responsaveis of an aluno
func (r *ResponsavelRepository) GetByAlunoID(ctx context.Context, alunoID int64) ([]*models.Responsavel, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nome, cpf, email, telefone, endereco, parentesco, aluno_id
		FROM responsaveis
		WHERE aluno_id = $1
		ORDER BY nome`, alunoID)
	if err != nil {
		return nil, fmt.Errorf("error listing responsaveis: %w", err)
	}
	defer rows.Close()

	var responsaveis []*models.Responsavel
	for rows.Next() {
		resp := &models.Responsavel{}
		if err := rows.Scan(
			&resp.ID, &resp.Nome, &resp.CPF, &resp.Email, &resp.Telefone,
			&resp.Endereco, &resp.Parentesco, &resp.AlunoID,
		); err != nil {
			return nil, err
		}
		responsaveis = append(responsaveis, resp)
	}

	return responsaveis, rows.Err()
}

// UpdatePartial writes only the provided fields
func (r *ResponsavelRepository) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateResponsavelRequest) error {
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
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Telefone != nil {
		add("telefone", *req.Telefone)
	}
	if req.Endereco != nil {
		add("endereco", *req.Endereco)
	}
	if req.Parentesco != nil {
		add("parentesco", *req.Parentesco)
	}

	if set == "" {
		return nil
	}

	args = append(args, id)
	cmdTag, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE responsaveis SET %s WHERE id = $%d`, set, n), args...)
	if err != nil {
		return fmt.Errorf("error updating responsavel: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResponsavelNotFound
	}

	return nil
}

// Delete removes a responsavel
func (r *ResponsavelRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM responsaveis WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting responsavel: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResponsavelNotFound
	}
	return nil
}

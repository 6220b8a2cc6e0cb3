package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// AlunoRepository handles database operations for alunos and matriculas
type AlunoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAlunoRepository creates a new AlunoRepository
func NewAlunoRepository(db *pgxpool.Pool) *AlunoRepository {
	return &AlunoRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const alunoColumns = `a.id, a.usuario_id, a.matricula, a.cpf, a.data_nascimento, a.telefone,
	a.endereco, a.cidade, a.estado, a.cep, a.situacao, a.data_matricula`

func scanAluno(row pgx.Row) (*models.Aluno, error) {
	a := &models.Aluno{}
	err := row.Scan(
		&a.ID,
		&a.UsuarioID,
		&a.Matricula,
		&a.CPF,
		&a.DataNascimento,
		&a.Telefone,
		&a.Endereco,
		&a.Cidade,
		&a.Estado,
		&a.CEP,
		&a.Situacao,
		&a.DataMatricula,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAlunoTx inserts the aluno profile inside a caller transaction; the
// usuario row must already exist within the same transaction.
func (r *AlunoRepository) CreateAlunoTx(ctx context.Context, q Querier, aluno *models.Aluno) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO alunos (usuario_id, matricula, cpf, data_nascimento, telefone,
			endereco, cidade, estado, cep, situacao, data_matricula)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		aluno.UsuarioID, aluno.Matricula, aluno.CPF, aluno.DataNascimento, aluno.Telefone,
		aluno.Endereco, aluno.Cidade, aluno.Estado, aluno.CEP, aluno.Situacao, aluno.DataMatricula,
	).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "alunos_matricula_key") {
			return 0, apperrors.ErrMatriculaJaExiste
		}
		if dberrors.IsDuplicateConstraintError(err, "alunos_cpf_key") {
			return 0, apperrors.ErrCPFJaCadastrado
		}
		return 0, fmt.Errorf("error creating aluno: %w", err)
	}

	aluno.ID = id
	return id, nil
}

// GetByID retrieves an aluno with its usuario
func (r *AlunoRepository) GetByID(ctx context.Context, id int64) (*models.Aluno, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+alunoColumns+`, u.id, u.email, u.nome, u.papel, u.ativo
		FROM alunos a
		JOIN usuarios u ON u.id = a.usuario_id
		WHERE a.id = $1`, id)

	a := &models.Aluno{Usuario: &models.Usuario{}}
	err := row.Scan(
		&a.ID, &a.UsuarioID, &a.Matricula, &a.CPF, &a.DataNascimento, &a.Telefone,
		&a.Endereco, &a.Cidade, &a.Estado, &a.CEP, &a.Situacao, &a.DataMatricula,
		&a.Usuario.ID, &a.Usuario.Email, &a.Usuario.Nome, &a.Usuario.Papel, &a.Usuario.Ativo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAlunoNotFound
		}
		return nil, fmt.Errorf("error retrieving aluno: %w", err)
	}

	return a, nil
}

// List retrieves alunos matching the filter, paginated, together with the
// total row count for pagination metadata.
func (r *AlunoRepository) List(ctx context.Context, filter dto.AlunoFilter, offset uint64, limit int) ([]*models.Aluno, int64, error) {
	base := r.sb.Select().
		From("alunos a").
		Join("usuarios u ON u.id = a.usuario_id")

	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"u.nome": like},
			squirrel.ILike{"a.matricula": like},
			squirrel.ILike{"a.cpf": like},
		})
	}
	if filter.Situacao != "" {
		base = base.Where(squirrel.Eq{"a.situacao": filter.Situacao})
	}
	if filter.TurmaID > 0 {
		base = base.Where(`a.id IN (SELECT aluno_id FROM matriculas WHERE turma_id = ? AND ativa)`, filter.TurmaID)
	}
	if filter.EscolaID > 0 {
		base = base.Where(`a.id IN (
			SELECT m.aluno_id FROM matriculas m
			JOIN turmas t ON t.id = m.turma_id
			WHERE t.escola_id = ? AND m.ativa)`, filter.EscolaID)
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build aluno count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting alunos: %w", err)
	}

	listSQL, listArgs, err := base.
		Columns(alunoColumns, "u.id", "u.email", "u.nome", "u.papel", "u.ativo").
		OrderBy("u.nome ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build aluno list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing alunos: %w", err)
	}
	defer rows.Close()

	var alunos []*models.Aluno
	for rows.Next() {
		a := &models.Aluno{Usuario: &models.Usuario{}}
		if err := rows.Scan(
			&a.ID, &a.UsuarioID, &a.Matricula, &a.CPF, &a.DataNascimento, &a.Telefone,
			&a.Endereco, &a.Cidade, &a.Estado, &a.CEP, &a.Situacao, &a.DataMatricula,
			&a.Usuario.ID, &a.Usuario.Email, &a.Usuario.Nome, &a.Usuario.Papel, &a.Usuario.Ativo,
		); err != nil {
			return nil, 0, err
		}
		alunos = append(alunos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return alunos, total, nil
}

// UpdatePartialTx writes only the provided fields of the aluno profile.
// Fields left nil in the request are not part of the statement at all. Runs
// on the caller's Querier so the usuario row can change in the same
// transaction.
func (r *AlunoRepository) UpdatePartialTx(ctx context.Context, q Querier, id int64, req *dto.UpdateAlunoRequest, dataNascimento *time.Time) error {
	update := r.sb.Update("alunos").Where(squirrel.Eq{"id": id})
	touched := false

	if req.Telefone != nil {
		update = update.Set("telefone", *req.Telefone)
		touched = true
	}
	if req.Endereco != nil {
		update = update.Set("endereco", *req.Endereco)
		touched = true
	}
	if req.Cidade != nil {
		update = update.Set("cidade", *req.Cidade)
		touched = true
	}
	if req.Estado != nil {
		update = update.Set("estado", *req.Estado)
		touched = true
	}
	if req.CEP != nil {
		update = update.Set("cep", *req.CEP)
		touched = true
	}
	if req.Situacao != nil {
		update = update.Set("situacao", *req.Situacao)
		touched = true
	}
	if dataNascimento != nil {
		update = update.Set("data_nascimento", *dataNascimento)
		touched = true
	}

	if !touched {
		return nil
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build aluno update query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating aluno: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlunoNotFound
	}

	return nil
}

// Delete removes an aluno and its usuario inside one transaction-ready call.
func (r *AlunoRepository) DeleteTx(ctx context.Context, q Querier, id int64) (usuarioID int64, err error) {
	err = q.QueryRow(ctx, `DELETE FROM alunos WHERE id = $1 RETURNING usuario_id`, id).Scan(&usuarioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrAlunoNotFound
		}
		return 0, fmt.Errorf("error deleting aluno: %w", err)
	}
	return usuarioID, nil
}

// --- Matriculas ---

// EnrollTx enrolls an aluno in a turma within a caller transaction. An
// earlier deactivated matricula for the same pair is reactivated with a new
// data; an already active one yields ErrMatriculaDuplicada.
func (r *AlunoRepository) EnrollTx(ctx context.Context, q Querier, alunoID, turmaID int64) error {
	cmdTag, err := q.Exec(ctx, `
		INSERT INTO matriculas (aluno_id, turma_id, data, ativa)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (aluno_id, turma_id)
		DO UPDATE SET ativa = true, data = EXCLUDED.data
		WHERE NOT matriculas.ativa`,
		alunoID, turmaID, time.Now())
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrTurmaNotFound
		}
		return fmt.Errorf("error enrolling aluno: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMatriculaDuplicada
	}
	return nil
}

// Unenroll deactivates the aluno's matricula in a turma.
func (r *AlunoRepository) Unenroll(ctx context.Context, alunoID, turmaID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE matriculas SET ativa = false
		WHERE aluno_id = $1 AND turma_id = $2 AND ativa`,
		alunoID, turmaID)
	if err != nil {
		return fmt.Errorf("error unenrolling aluno: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMatriculaNotFound
	}
	return nil
}

// GetTurmas returns the turmas the aluno is actively enrolled in.
func (r *AlunoRepository) GetTurmas(ctx context.Context, alunoID int64) ([]*models.Turma, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.nome, t.codigo, t.turno, t.escola_id
		FROM turmas t
		JOIN matriculas m ON m.turma_id = t.id
		WHERE m.aluno_id = $1 AND m.ativa
		ORDER BY t.nome`, alunoID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving turmas do aluno: %w", err)
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

// IsEnrolled reports whether the aluno has an active matricula in the turma.
func (r *AlunoRepository) IsEnrolled(ctx context.Context, alunoID, turmaID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM matriculas WHERE aluno_id = $1 AND turma_id = $2 AND ativa)`,
		alunoID, turmaID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking matricula: %w", err)
	}
	return exists, nil
}

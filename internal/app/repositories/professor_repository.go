package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// ProfessorRepository handles database operations for professor and gestor
// profiles
type ProfessorRepository struct {
	db *pgxpool.Pool
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
	}
}

const professorColumns = `p.id, p.usuario_id, p.cpf, p.telefone, p.formacao,
	u.nome, u.email, u.papel, u.ativo`

func scanProfessor(row pgx.Row) (*models.Professor, error) {
	p := &models.Professor{Usuario: &models.Usuario{}}
	err := row.Scan(
		&p.ID, &p.UsuarioID, &p.CPF, &p.Telefone, &p.Formacao,
		&p.Usuario.Nome, &p.Usuario.Email, &p.Usuario.Papel, &p.Usuario.Ativo,
	)
	if err != nil {
		return nil, err
	}
	p.Usuario.ID = p.UsuarioID
	return p, nil
}

// CreateProfessorTx inserts the professor profile inside the caller's
// transaction, paired with the usuario insert
func (r *ProfessorRepository) CreateProfessorTx(ctx context.Context, q Querier, p *models.Professor) error {
	err := q.QueryRow(ctx, `
		INSERT INTO professores (usuario_id, cpf, telefone, formacao)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		p.UsuarioID, p.CPF, p.Telefone, p.Formacao,
	).Scan(&p.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "professores_cpf_key") {
			return apperrors.ErrCPFJaCadastrado
		}
		return fmt.Errorf("error creating professor: %w", err)
	}

	return nil
}

// CreateGestorTx inserts the gestor profile inside the caller's transaction
func (r *ProfessorRepository) CreateGestorTx(ctx context.Context, q Querier, g *models.Gestor) error {
	err := q.QueryRow(ctx, `
		INSERT INTO gestores (usuario_id)
		VALUES ($1)
		RETURNING id`,
		g.UsuarioID,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("error creating gestor: %w", err)
	}
	return nil
}

// GetProfessorByID retrieves a professor with its usuario
func (r *ProfessorRepository) GetProfessorByID(ctx context.Context, id int64) (*models.Professor, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM professores p
		JOIN usuarios u ON u.id = p.usuario_id
		WHERE p.id = $1`, professorColumns), id)

	p, err := scanProfessor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}

	return p, nil
}

// GetProfessorByUsuarioID resolves the professor profile of a logged-in
// usuario
func (r *ProfessorRepository) GetProfessorByUsuarioID(ctx context.Context, usuarioID int64) (*models.Professor, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM professores p
		JOIN usuarios u ON u.id = p.usuario_id
		WHERE p.usuario_id = $1`, professorColumns), usuarioID)

	p, err := scanProfessor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}

	return p, nil
}

// GetGestorByUsuarioID resolves the gestor profile of a logged-in usuario
func (r *ProfessorRepository) GetGestorByUsuarioID(ctx context.Context, usuarioID int64) (*models.Gestor, error) {
	g := &models.Gestor{}
	err := r.db.QueryRow(ctx,
		`SELECT id, usuario_id FROM gestores WHERE usuario_id = $1`, usuarioID).
		Scan(&g.ID, &g.UsuarioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGestorNotFound
		}
		return nil, fmt.Errorf("error retrieving gestor: %w", err)
	}

	return g, nil
}

// GetGestorByID retrieves a gestor with its usuario
func (r *ProfessorRepository) GetGestorByID(ctx context.Context, id int64) (*models.Gestor, error) {
	g := &models.Gestor{Usuario: &models.Usuario{}}
	err := r.db.QueryRow(ctx, `
		SELECT g.id, g.usuario_id, u.nome, u.email, u.papel, u.ativo
		FROM gestores g
		JOIN usuarios u ON u.id = g.usuario_id
		WHERE g.id = $1`, id).Scan(
		&g.ID, &g.UsuarioID,
		&g.Usuario.Nome, &g.Usuario.Email, &g.Usuario.Papel, &g.Usuario.Ativo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGestorNotFound
		}
		return nil, fmt.Errorf("error retrieving gestor: %w", err)
	}
	g.Usuario.ID = g.UsuarioID

	return g, nil
}

// ListProfessores retrieves professores with pagination
func (r *ProfessorRepository) ListProfessores(ctx context.Context, offset, limit int) ([]*models.Professor, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM professores`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting professores: %w", err)
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM professores p
		JOIN usuarios u ON u.id = p.usuario_id
		ORDER BY u.nome
		OFFSET $1 LIMIT $2`, professorColumns), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing professores: %w", err)
	}
	defer rows.Close()

	var professores []*models.Professor
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, 0, err
		}
		professores = append(professores, p)
	}

	return professores, total, rows.Err()
}

// ListGestores retrieves all gestores with their usuarios
func (r *ProfessorRepository) ListGestores(ctx context.Context) ([]*models.Gestor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.id, g.usuario_id, u.nome, u.email, u.papel, u.ativo
		FROM gestores g
		JOIN usuarios u ON u.id = g.usuario_id
		ORDER BY u.nome`)
	if err != nil {
		return nil, fmt.Errorf("error listing gestores: %w", err)
	}
	defer rows.Close()

	var gestores []*models.Gestor
	for rows.Next() {
		g := &models.Gestor{Usuario: &models.Usuario{}}
		if err := rows.Scan(
			&g.ID, &g.UsuarioID,
			&g.Usuario.Nome, &g.Usuario.Email, &g.Usuario.Papel, &g.Usuario.Ativo,
		); err != nil {
			return nil, err
		}
		g.Usuario.ID = g.UsuarioID
		gestores = append(gestores, g)
	}

	return gestores, rows.Err()
}

// UpdateProfessorTx writes the professor-profile fields inside the caller's
// transaction; the usuario fields travel through UsuarioRepository
func (r *ProfessorRepository) UpdateProfessorTx(ctx context.Context, q Querier, id int64, telefone, formacao *string) error {
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

	if telefone != nil {
		add("telefone", *telefone)
	}
	if formacao != nil {
		add("formacao", *formacao)
	}
	if set == "" {
		return nil
	}

	args = append(args, id)
	cmdTag, err := q.Exec(ctx,
		fmt.Sprintf(`UPDATE professores SET %s WHERE id = $%d`, set, n), args...)
	if err != nil {
		return fmt.Errorf("error updating professor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfessorNotFound
	}

	return nil
}

// DeleteProfessorTx removes a professor profile inside the caller's
// transaction and returns the usuario_id for the paired account delete
func (r *ProfessorRepository) DeleteProfessorTx(ctx context.Context, q Querier, id int64) (int64, error) {
	var usuarioID int64
	err := q.QueryRow(ctx,
		`DELETE FROM professores WHERE id = $1 RETURNING usuario_id`, id).
		Scan(&usuarioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrProfessorNotFound
		}
		return 0, fmt.Errorf("error deleting professor: %w", err)
	}
	return usuarioID, nil
}

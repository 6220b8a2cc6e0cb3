package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/dberrors"
)

// UsuarioRepository handles database operations for usuarios
type UsuarioRepository struct {
	db *pgxpool.Pool
}

// NewUsuarioRepository creates a new UsuarioRepository
func NewUsuarioRepository(db *pgxpool.Pool) *UsuarioRepository {
	return &UsuarioRepository{
		db: db,
	}
}

const usuarioColumns = `id, email, senha, nome, papel, ativo, created_at, updated_at, ultimo_login`

func scanUsuario(row pgx.Row) (*models.Usuario, error) {
	u := &models.Usuario{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Senha,
		&u.Nome,
		&u.Papel,
		&u.Ativo,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.UltimoLogin,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUsuario inserts a usuario using the given Querier so callers can run
// it inside a transaction together with a profile insert.
func (r *UsuarioRepository) CreateUsuario(ctx context.Context, q Querier, usuario *models.Usuario) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO usuarios (email, senha, nome, papel, ativo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		usuario.Email, usuario.Senha, usuario.Nome, usuario.Papel, usuario.Ativo).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "usuarios_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating usuario: %w", err)
	}

	usuario.ID = id
	return id, nil
}

// GetUsuarioByEmail retrieves a usuario by email
func (r *UsuarioRepository) GetUsuarioByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	row := r.db.QueryRow(ctx, `SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1`, email)
	usuario, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("error retrieving usuario by email: %w", err)
	}
	return usuario, nil
}

// GetUsuarioByID retrieves a usuario by ID
func (r *UsuarioRepository) GetUsuarioByID(ctx context.Context, id int64) (*models.Usuario, error) {
	row := r.db.QueryRow(ctx, `SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id)
	usuario, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("error retrieving usuario: %w", err)
	}
	return usuario, nil
}

// EmailExists checks whether an email is already registered
func (r *UsuarioRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateUsuarioTx updates nome/email on a usuario inside a caller transaction.
func (r *UsuarioRepository) UpdateUsuarioTx(ctx context.Context, q Querier, id int64, nome, email *string, ativo *bool) error {
	// Build only the SET clauses for the provided fields
	set := "updated_at = now()"
	args := []any{}
	n := 1
	if nome != nil {
		set += fmt.Sprintf(", nome = $%d", n)
		args = append(args, *nome)
		n++
	}
	if email != nil {
		set += fmt.Sprintf(", email = $%d", n)
		args = append(args, *email)
		n++
	}
	if ativo != nil {
		set += fmt.Sprintf(", ativo = $%d", n)
		args = append(args, *ativo)
		n++
	}
	args = append(args, id)

	cmdTag, err := q.Exec(ctx, fmt.Sprintf(`UPDATE usuarios SET %s WHERE id = $%d`, set, n), args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "usuarios_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating usuario: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUsuarioNotFound
	}
	return nil
}

// UpdateSenha replaces the stored password hash
func (r *UsuarioRepository) UpdateSenha(ctx context.Context, id int64, senhaHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE usuarios SET senha = $1, updated_at = now() WHERE id = $2`, senhaHash, id)
	if err != nil {
		return fmt.Errorf("error updating senha: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUsuarioNotFound
	}
	return nil
}

// RegisterLogin stamps ultimo_login
func (r *UsuarioRepository) RegisterLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE usuarios SET ultimo_login = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error registering login: %w", err)
	}
	return nil
}

// DeleteUsuarioTx removes a usuario inside a caller transaction.
func (r *UsuarioRepository) DeleteUsuarioTx(ctx context.Context, q Querier, id int64) error {
	cmdTag, err := q.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUsuarioComVinculos
		}
		return fmt.Errorf("error deleting usuario: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUsuarioNotFound
	}
	return nil
}

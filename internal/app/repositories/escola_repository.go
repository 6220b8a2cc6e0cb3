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

// EscolaRepository handles database operations for escolas
type EscolaRepository struct {
	db *pgxpool.Pool
}

// NewEscolaRepository creates a new EscolaRepository
func NewEscolaRepository(db *pgxpool.Pool) *EscolaRepository {
	return &EscolaRepository{
		db: db,
	}
}

const escolaColumns = `e.id, e.nome, e.endereco, e.cidade, e.estado, e.telefone, e.email, e.website, e.gestor_id`

func scanEscola(row pgx.Row) (*models.Escola, error) {
	e := &models.Escola{}
	err := row.Scan(
		&e.ID, &e.Nome, &e.Endereco, &e.Cidade, &e.Estado,
		&e.Telefone, &e.Email, &e.Website, &e.GestorID,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new escola
func (r *EscolaRepository) Create(ctx context.Context, e *models.Escola) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO escolas (nome, endereco, cidade, estado, telefone, email, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.Nome, e.Endereco, e.Cidade, e.Estado, e.Telefone, e.Email, e.Website,
	).Scan(&e.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "escolas_nome_key") {
			return apperrors.ErrEscolaJaExiste
		}
		return fmt.Errorf("error creating escola: %w", err)
	}

	return nil
}

// GetByID retrieves an escola, including its gestor when assigned
func (r *EscolaRepository) GetByID(ctx context.Context, id int64) (*models.Escola, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM escolas e
		WHERE e.id = $1`, escolaColumns), id)

	e, err := scanEscola(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEscolaNotFound
		}
		return nil, fmt.Errorf("error retrieving escola: %w", err)
	}

	if e.GestorID != nil {
		gestor := &models.Gestor{Usuario: &models.Usuario{}}
		err := r.db.QueryRow(ctx, `
			SELECT g.id, g.usuario_id, u.nome, u.email
			FROM gestores g
			JOIN usuarios u ON u.id = g.usuario_id
			WHERE g.id = $1`, *e.GestorID).Scan(
			&gestor.ID, &gestor.UsuarioID, &gestor.Usuario.Nome, &gestor.Usuario.Email,
		)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("error retrieving gestor: %w", err)
		}
		if err == nil {
			gestor.Usuario.ID = gestor.UsuarioID
			e.Gestor = gestor
		}
	}

	return e, nil
}

// List retrieves all escolas ordered by nome
func (r *EscolaRepository) List(ctx context.Context) ([]*models.Escola, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM escolas e
		ORDER BY e.nome`, escolaColumns))
	if err != nil {
		return nil, fmt.Errorf("error listing escolas: %w", err)
	}
	defer rows.Close()

	return collectEscolas(rows)
}

// ListByGestor retrieves the escolas managed by a gestor. Gestores only see
// their own escolas.
func (r *EscolaRepository) ListByGestor(ctx context.Context, gestorID int64) ([]*models.Escola, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM escolas e
		WHERE e.gestor_id = $1
		ORDER BY e.nome`, escolaColumns), gestorID)
	if err != nil {
		return nil, fmt.Errorf("error listing escolas: %w", err)
	}
	defer rows.Close()

	return collectEscolas(rows)
}

func collectEscolas(rows pgx.Rows) ([]*models.Escola, error) {
	var escolas []*models.Escola
	for rows.Next() {
		e, err := scanEscola(rows)
		if err != nil {
			return nil, err
		}
		escolas = append(escolas, e)
	}
	return escolas, rows.Err()
}

// UpdatePartial writes only the provided fields of an escola
func (r *EscolaRepository) UpdatePartial(ctx context.Context, id int64, req *dto.UpdateEscolaRequest) error {
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
	if req.Endereco != nil {
		add("endereco", *req.Endereco)
	}
	if req.Cidade != nil {
		add("cidade", *req.Cidade)
	}
	if req.Estado != nil {
		add("estado", *req.Estado)
	}
	if req.Telefone != nil {
		add("telefone", *req.Telefone)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Website != nil {
		add("website", *req.Website)
	}

	if set == "" {
		return nil
	}

	args = append(args, id)
	cmdTag, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE escolas SET %s WHERE id = $%d`, set, n), args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "escolas_nome_key") {
			return apperrors.ErrEscolaJaExiste
		}
		return fmt.Errorf("error updating escola: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEscolaNotFound
	}

	return nil
}

// AssignGestor links a gestor to an escola. A nil gestorID clears the slot.
func (r *EscolaRepository) AssignGestor(ctx context.Context, escolaID int64, gestorID *int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE escolas SET gestor_id = $1 WHERE id = $2`, gestorID, escolaID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrGestorNotFound
		}
		return fmt.Errorf("error assigning gestor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEscolaNotFound
	}
	return nil
}

// Delete removes an escola. Escolas that still hold turmas cannot be removed.
func (r *EscolaRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM escolas WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEscolaComVinculos
		}
		return fmt.Errorf("error deleting escola: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEscolaNotFound
	}
	return nil
}

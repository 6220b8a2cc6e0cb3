package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx. Methods
// that must run inside a caller-owned transaction accept a Querier instead
// of touching the pool directly.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UsuarioRepository     *UsuarioRepository
	TokenRepository       *TokenRepository
	AlunoRepository       *AlunoRepository
	ResponsavelRepository *ResponsavelRepository
	OcorrenciaRepository  *OcorrenciaRepository
	EscolaRepository      *EscolaRepository
	TurmaRepository       *TurmaRepository
	DisciplinaRepository  *DisciplinaRepository
	ProfessorRepository   *ProfessorRepository
	FrequenciaRepository  *FrequenciaRepository
	NotaRepository        *NotaRepository
	StatsRepository       *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UsuarioRepository:     NewUsuarioRepository(db),
		TokenRepository:       NewTokenRepository(db),
		AlunoRepository:       NewAlunoRepository(db),
		ResponsavelRepository: NewResponsavelRepository(db),
		OcorrenciaRepository:  NewOcorrenciaRepository(db),
		EscolaRepository:      NewEscolaRepository(db),
		TurmaRepository:       NewTurmaRepository(db),
		DisciplinaRepository:  NewDisciplinaRepository(db),
		ProfessorRepository:   NewProfessorRepository(db),
		FrequenciaRepository:  NewFrequenciaRepository(db),
		NotaRepository:        NewNotaRepository(db),
		StatsRepository:       NewStatsRepository(db),
	}
}

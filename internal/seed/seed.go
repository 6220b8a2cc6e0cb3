package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/escolaplus/backend/internal/app/models"
	appRepos "github.com/escolaplus/backend/internal/app/repositories"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/auth"
)

// CreateDefaultData seeds the default admin account and the base disciplina
// catalog if they don't exist. Errors are collected so a partial seed does
// not stop the application from starting.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	usuarioRepo := appRepos.NewUsuarioRepository(dbPool)
	disciplinaRepo := appRepos.NewDisciplinaRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	const adminEmail = "admin@escolaplus.com.br"
	exists, err := usuarioRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin usuario exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin usuario...")

		senhaHash, err := auth.HashPassword("Admin123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.Usuario{
				Email: adminEmail,
				Senha: senhaHash,
				Nome:  "Administrador",
				Papel: appModels.PapelAdmin,
				Ativo: true,
			}
			if _, err := usuarioRepo.CreateUsuario(ctx, dbPool, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin usuario")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", adminEmail).Msg("Default admin usuario created")
			}
		}
	}

	// --- Base disciplina catalog --- //
	disciplinas := []appModels.Disciplina{
		{Nome: "Língua Portuguesa", CargaHoraria: 160},
		{Nome: "Matemática", CargaHoraria: 160},
		{Nome: "Ciências", CargaHoraria: 120},
		{Nome: "História", CargaHoraria: 80},
		{Nome: "Geografia", CargaHoraria: 80},
		{Nome: "Educação Física", CargaHoraria: 80},
		{Nome: "Artes", CargaHoraria: 40},
	}
	for i := range disciplinas {
		d := disciplinas[i]
		if err := disciplinaRepo.Create(ctx, &d); err != nil && !errors.Is(err, apperrors.ErrDisciplinaJaExiste) {
			lgr.Error().Err(err).Str("nome", d.Nome).Msg("Error creating default disciplina")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Default data seeding finished with errors")
	} else {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}

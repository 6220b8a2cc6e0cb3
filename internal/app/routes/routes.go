package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/controllers"
	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/middleware"
)

// SetupRouter configures all application routes under /api/v1.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	alunoController *controllers.AlunoController,
	ocorrenciaController *controllers.OcorrenciaController,
	escolaController *controllers.EscolaController,
	turmaController *controllers.TurmaController,
	disciplinaController *controllers.DisciplinaController,
	professorController *controllers.ProfessorController,
	frequenciaController *controllers.FrequenciaController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetPerfil)
		authenticated.PUT("/auth/senha", authController.ChangeSenha)

		authenticated.GET("/dashboard", dashboardController.GetStats)

		// Aluno routes
		alunos := authenticated.Group("/alunos")
		{
			alunos.GET("", alunoController.ListAlunos)
			alunos.GET("/:id", alunoController.GetAluno)
			alunos.GET("/:id/turmas", alunoController.GetTurmasDoAluno)
			alunos.GET("/:id/responsaveis", alunoController.ListResponsaveis)
			alunos.GET("/:id/ocorrencias", ocorrenciaController.ListOcorrencias)
			alunos.GET("/:id/ocorrencias/visiveis", ocorrenciaController.ListOcorrenciasVisiveis)
			alunos.GET("/:id/frequencias", frequenciaController.GetResumoFrequencia)
			alunos.GET("/:id/boletim", frequenciaController.GetBoletim)

			// Management routes restricted to administrative staff
			alunosGestao := alunos.Group("")
			alunosGestao.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor, models.PapelSecretaria))
			{
				alunosGestao.POST("", alunoController.CreateAluno)
				alunosGestao.PUT("/:id", alunoController.UpdateAluno)
				alunosGestao.DELETE("/:id", alunoController.DeleteAluno)
				alunosGestao.POST("/:id/responsaveis", alunoController.CreateResponsavel)
				alunosGestao.PUT("/:id/responsaveis/:responsavelId", alunoController.UpdateResponsavel)
				alunosGestao.DELETE("/:id/responsaveis/:responsavelId", alunoController.DeleteResponsavel)
			}

			// Any teaching or administrative role can record an ocorrência
			alunosRegistro := alunos.Group("")
			alunosRegistro.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor, models.PapelProfessor))
			{
				alunosRegistro.POST("/:id/ocorrencias", ocorrenciaController.CreateOcorrencia)
			}
		}

		// Ocorrência edit/delete (author or admin/gestor, checked in the service)
		ocorrencias := authenticated.Group("/ocorrencias")
		ocorrencias.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor, models.PapelProfessor))
		{
			ocorrencias.PUT("/:id", ocorrenciaController.UpdateOcorrencia)
			ocorrencias.DELETE("/:id", ocorrenciaController.DeleteOcorrencia)
		}

		// Escola routes
		escolas := authenticated.Group("/escolas")
		{
			escolas.GET("", escolaController.ListEscolas)
			escolas.GET("/:id", escolaController.GetEscola)

			escolasAdmin := escolas.Group("")
			escolasAdmin.Use(authMiddleware.PapelRequired(models.PapelAdmin))
			{
				escolasAdmin.POST("", escolaController.CreateEscola)
				escolasAdmin.PUT("/:id", escolaController.UpdateEscola)
				escolasAdmin.DELETE("/:id", escolaController.DeleteEscola)
				escolasAdmin.PUT("/:id/gestor", escolaController.AssignGestor)
				escolasAdmin.DELETE("/:id/gestor", escolaController.RemoveGestor)
			}
		}

		// Turma routes
		turmas := authenticated.Group("/turmas")
		{
			turmas.GET("", turmaController.ListTurmas)
			turmas.GET("/:id", turmaController.GetTurma)
			turmas.GET("/:id/disciplinas", turmaController.GetDisciplinasDaTurma)
			turmas.GET("/:id/frequencias", frequenciaController.GetFrequenciasDaTurma)
			turmas.GET("/:id/notas", frequenciaController.GetNotasDaTurma)

			turmasGestao := turmas.Group("")
			turmasGestao.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor))
			{
				turmasGestao.POST("", turmaController.CreateTurma)
				turmasGestao.PUT("/:id", turmaController.UpdateTurma)
				turmasGestao.DELETE("/:id", turmaController.DeleteTurma)
				turmasGestao.PUT("/:id/disciplinas", turmaController.AssignDisciplinas)
				turmasGestao.DELETE("/:id/disciplinas/:disciplinaId", turmaController.RemoveDisciplina)
			}

			// Matriculas are aluno management, so secretaria can handle them too
			turmasMatriculas := turmas.Group("")
			turmasMatriculas.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor, models.PapelSecretaria))
			{
				turmasMatriculas.POST("/:id/matriculas", turmaController.MatricularAluno)
				turmasMatriculas.DELETE("/:id/matriculas/:alunoId", turmaController.DesmatricularAluno)
			}

			turmasRegistro := turmas.Group("")
			turmasRegistro.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor, models.PapelProfessor))
			{
				turmasRegistro.POST("/:id/frequencias", frequenciaController.RegistrarFrequencia)
				turmasRegistro.PUT("/:id/notas", frequenciaController.LancarNotas)
			}
		}

		// Disciplina routes
		disciplinas := authenticated.Group("/disciplinas")
		{
			disciplinas.GET("", disciplinaController.ListDisciplinas)
			disciplinas.GET("/:id", disciplinaController.GetDisciplina)

			disciplinasGestao := disciplinas.Group("")
			disciplinasGestao.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor))
			{
				disciplinasGestao.POST("", disciplinaController.CreateDisciplina)
				disciplinasGestao.PUT("/:id", disciplinaController.UpdateDisciplina)
				disciplinasGestao.DELETE("/:id", disciplinaController.DeleteDisciplina)
			}
		}

		// Professor management (admin and gestores; gestor creation stays admin only)
		professores := authenticated.Group("/professores")
		{
			professores.GET("", professorController.ListProfessores)
			professores.GET("/:id", professorController.GetProfessor)

			professoresGestao := professores.Group("")
			professoresGestao.Use(authMiddleware.PapelRequired(models.PapelAdmin, models.PapelGestor))
			{
				professoresGestao.POST("", professorController.CreateProfessor)
				professoresGestao.PUT("/:id", professorController.UpdateProfessor)
				professoresGestao.DELETE("/:id", professorController.DeleteProfessor)
			}
		}

		gestores := authenticated.Group("/gestores")
		{
			gestores.GET("", professorController.ListGestores)

			gestoresAdmin := gestores.Group("")
			gestoresAdmin.Use(authMiddleware.PapelRequired(models.PapelAdmin))
			{
				gestoresAdmin.POST("", professorController.CreateGestor)
			}
		}
	}
}

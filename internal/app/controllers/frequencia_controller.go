package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
)

// FrequenciaController handles attendance and grade endpoints
type FrequenciaController struct {
	frequenciaService services.FrequenciaService
	notaService       services.NotaService
}

// NewFrequenciaController creates a new FrequenciaController
func NewFrequenciaController(frequenciaService services.FrequenciaService, notaService services.NotaService) *FrequenciaController {
	return &FrequenciaController{
		frequenciaService: frequenciaService,
		notaService:       notaService,
	}
}

// RegistrarFrequencia records the turma's roll call for one date
// @Summary Record attendance
// @Description Records the whole turma's attendance for one date in a single transaction; re-submitting the same date overwrites
// @Tags frequencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param request body dto.RegistrarFrequenciaRequest true "Roll call"
// @Success 201 {object} dto.APIResponse{data=[]models.Frequencia} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Turma or aluno not found"
// @Router /turmas/{id}/frequencias [post]
func (c *FrequenciaController) RegistrarFrequencia(ctx *gin.Context) {
	turmaID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RegistrarFrequenciaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	autorID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	frequencias, err := c.frequenciaService.Registrar(ctx, turmaID, autorID, middleware.SessionPapel(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(frequencias))
}

// GetFrequenciasDaTurma retrieves the turma's roll call for one date
// @Summary Get attendance by date
// @Tags frequencias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param data query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Frequencia} "Attendance"
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Router /turmas/{id}/frequencias [get]
func (c *FrequenciaController) GetFrequenciasDaTurma(ctx *gin.Context) {
	turmaID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	frequencias, err := c.frequenciaService.GetByTurmaData(ctx, turmaID, ctx.Query("data"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(frequencias))
}

// GetResumoFrequencia summarizes an aluno's attendance
// @Summary Attendance summary
// @Description Summarizes the aluno's attendance over a period; defaults to the last 30 days
// @Tags frequencias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Param inicio query string false "Period start (YYYY-MM-DD)"
// @Param fim query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.FrequenciaResumoResponse} "Summary"
// @Failure 404 {object} dto.ErrorResponse "Aluno not found"
// @Router /alunos/{id}/frequencias [get]
func (c *FrequenciaController) GetResumoFrequencia(ctx *gin.Context) {
	alunoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resumo, err := c.frequenciaService.GetResumoAluno(ctx, alunoID, ctx.Query("inicio"), ctx.Query("fim"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resumo))
}

// LancarNotas records grades for one disciplina/bimestre of the turma
// @Summary Record grades
// @Description Records the turma's grades for one disciplina/bimestre in a single transaction; re-submitting overwrites
// @Tags notas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param request body dto.LancarNotasRequest true "Grades"
// @Success 200 {object} dto.APIResponse{data=[]models.Nota} "Grades recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Turma or disciplina not found"
// @Router /turmas/{id}/notas [put]
func (c *FrequenciaController) LancarNotas(ctx *gin.Context) {
	turmaID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.LancarNotasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	autorID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	notas, err := c.notaService.Lancar(ctx, turmaID, autorID, middleware.SessionPapel(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notas))
}

// GetNotasDaTurma retrieves the turma's grades for one disciplina and bimestre
// @Summary Get grades
// @Tags notas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param disciplinaId query int true "Disciplina ID"
// @Param bimestre query int true "Bimestre (1-4)"
// @Success 200 {object} dto.APIResponse{data=[]models.Nota} "Grades"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Router /turmas/{id}/notas [get]
func (c *FrequenciaController) GetNotasDaTurma(ctx *gin.Context) {
	turmaID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	disciplinaID, err := strconv.ParseInt(ctx.Query("disciplinaId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid disciplinaId parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	bimestre, err := strconv.Atoi(ctx.Query("bimestre"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid bimestre parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	notas, err := c.notaService.ListByTurmaDisciplina(ctx, turmaID, disciplinaID, bimestre)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notas))
}

// GetBoletim retrieves the aluno's grade report
// @Summary Boletim
// @Description Retrieves the aluno's grades grouped by disciplina over the four bimestres
// @Tags notas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Success 200 {object} dto.APIResponse{data=dto.BoletimResponse} "Boletim"
// @Failure 404 {object} dto.ErrorResponse "Aluno not found"
// @Router /alunos/{id}/boletim [get]
func (c *FrequenciaController) GetBoletim(ctx *gin.Context) {
	alunoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	boletim, err := c.notaService.GetBoletim(ctx, alunoID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(boletim))
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// TurmaController handles turma endpoints
type TurmaController struct {
	turmaService services.TurmaService
	alunoService services.AlunoService
}

// NewTurmaController creates a new TurmaController
func NewTurmaController(turmaService services.TurmaService, alunoService services.AlunoService) *TurmaController {
	return &TurmaController{
		turmaService: turmaService,
		alunoService: alunoService,
	}
}

// CreateTurma opens a turma
// @Summary Create a turma
// @Tags turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTurmaRequest true "Turma data"
// @Success 201 {object} dto.APIResponse{data=models.Turma} "Turma created"
// @Failure 404 {object} dto.ErrorResponse "Escola not found"
// @Failure 409 {object} dto.ErrorResponse "Codigo already in use"
// @Router /turmas [post]
func (c *TurmaController) CreateTurma(ctx *gin.Context) {
	var req dto.CreateTurmaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	turma, err := c.turmaService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(turma))
}

// GetTurma retrieves a turma
// @Summary Get turma by ID
// @Tags turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Success 200 {object} dto.APIResponse{data=models.Turma} "Turma"
// @Failure 404 {object} dto.ErrorResponse "Turma not found"
// @Router /turmas/{id} [get]
func (c *TurmaController) GetTurma(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	turma, err := c.turmaService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(turma))
}

// ListTurmas lists turmas scoped to the session papel
// @Summary List turmas
// @Description Professores only see the turmas where they hold a disciplina
// @Tags turmas
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Search over nome and codigo"
// @Param escolaId query int false "Filter by escola"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Turmas"
// @Router /turmas [get]
func (c *TurmaController) ListTurmas(ctx *gin.Context) {
	usuarioID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	filter := dto.TurmaFilter{Busca: ctx.Query("busca")}
	if v, err := strconv.ParseInt(ctx.Query("escolaId"), 10, 64); err == nil {
		filter.EscolaID = v
	}

	page, size := helpers.ParsePaginationParams(ctx)

	turmas, pagination, err := c.turmaService.ListForUsuario(ctx, usuarioID, middleware.SessionPapel(ctx), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      turmas,
		Pagination: pagination,
	}))
}

// UpdateTurma applies a partial update
// @Summary Update a turma
// @Tags turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param request body dto.UpdateTurmaRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Turma} "Turma updated"
// @Failure 404 {object} dto.ErrorResponse "Turma not found"
// @Router /turmas/{id} [put]
func (c *TurmaController) UpdateTurma(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTurmaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	turma, err := c.turmaService.UpdatePartial(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(turma))
}

// DeleteTurma removes a turma
// @Summary Delete a turma
// @Description Removes a turma without active matriculas
// @Tags turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Turma deleted"
// @Failure 404 {object} dto.ErrorResponse "Turma not found"
// @Failure 409 {object} dto.ErrorResponse "Turma still has matriculas"
// @Router /turmas/{id} [delete]
func (c *TurmaController) DeleteTurma(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.turmaService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Turma deleted"}))
}

// GetDisciplinasDaTurma lists the turma's disciplina assignments
// @Summary List the turma's disciplinas
// @Tags turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TurmaDisciplina} "Disciplinas"
// @Failure 404 {object} dto.ErrorResponse "Turma not found"
// @Router /turmas/{id}/disciplinas [get]
func (c *TurmaController) GetDisciplinasDaTurma(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	disciplinas, err := c.turmaService.GetDisciplinas(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(disciplinas))
}

// AssignDisciplinas assigns disciplinas to the turma in one batch
// @Summary Assign disciplinas
// @Description Applies the whole batch in one transaction; either every disciplina is assigned or none is
// @Tags turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param request body dto.AssignDisciplinasRequest true "Disciplinas and optional professor"
// @Success 200 {object} dto.APIResponse{data=[]models.TurmaDisciplina} "Assignments"
// @Failure 404 {object} dto.ErrorResponse "Turma, disciplina or professor not found"
// @Failure 409 {object} dto.ErrorResponse "Disciplina already assigned"
// @Router /turmas/{id}/disciplinas [put]
func (c *TurmaController) AssignDisciplinas(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignDisciplinasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	disciplinas, err := c.turmaService.AssignDisciplinas(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(disciplinas))
}

// RemoveDisciplina drops one disciplina slot from the turma
// @Summary Remove a disciplina
// @Tags turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param disciplinaId path int true "Disciplina ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Disciplina removed"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /turmas/{id}/disciplinas/{disciplinaId} [delete]
func (c *TurmaController) RemoveDisciplina(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	disciplinaID, ok := parseIDParam(ctx, "disciplinaId")
	if !ok {
		return
	}

	if err := c.turmaService.RemoveDisciplina(ctx, id, disciplinaID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Disciplina removed"}))
}

// MatricularAluno enrolls an aluno in the turma
// @Summary Enroll an aluno
// @Tags turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param request body dto.MatricularAlunoRequest true "Aluno"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Aluno enrolled"
// @Failure 404 {object} dto.ErrorResponse "Turma or aluno not found"
// @Failure 409 {object} dto.ErrorResponse "Aluno already enrolled"
// @Router /turmas/{id}/matriculas [post]
func (c *TurmaController) MatricularAluno(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MatricularAlunoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.alunoService.Matricular(ctx, req.AlunoID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.SuccessResponse{Message: "Aluno enrolled"}))
}

// DesmatricularAluno deactivates the aluno's matricula
// @Summary Unenroll an aluno
// @Tags turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param alunoId path int true "Aluno ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Aluno unenrolled"
// @Failure 404 {object} dto.ErrorResponse "Matricula not found"
// @Router /turmas/{id}/matriculas/{alunoId} [delete]
func (c *TurmaController) DesmatricularAluno(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	alunoID, ok := parseIDParam(ctx, "alunoId")
	if !ok {
		return
	}

	if err := c.alunoService.Desmatricular(ctx, alunoID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Aluno unenrolled"}))
}

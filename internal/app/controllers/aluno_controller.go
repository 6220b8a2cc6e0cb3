package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// AlunoController handles aluno endpoints
type AlunoController struct {
	alunoService       services.AlunoService
	responsavelService services.ResponsavelService
}

// NewAlunoController creates a new AlunoController
func NewAlunoController(alunoService services.AlunoService, responsavelService services.ResponsavelService) *AlunoController {
	return &AlunoController{
		alunoService:       alunoService,
		responsavelService: responsavelService,
	}
}

// parseIDParam reads a positive int64 path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateAluno registers an aluno
// @Summary Create an aluno
// @Description Creates the usuario account and the aluno profile; turmaId, when present, also enrolls the aluno
// @Tags alunos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAlunoRequest true "Aluno data"
// @Success 201 {object} dto.APIResponse{data=dto.AlunoResponse} "Aluno created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Matricula, CPF or email already registered"
// @Router /alunos [post]
func (c *AlunoController) CreateAluno(ctx *gin.Context) {
	var req dto.CreateAlunoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	aluno, err := c.alunoService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(aluno))
}

// GetAluno retrieves an aluno
// @Summary Get aluno by ID
// @Description Retrieves an aluno with turmas and responsaveis
// @Tags alunos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Success 200 {object} dto.APIResponse{data=dto.AlunoResponse} "Aluno"
// @Failure 404 {object} dto.ErrorResponse "Aluno not found"
// @Router /alunos/{id} [get]
func (c *AlunoController) GetAluno(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	aluno, err := c.alunoService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(aluno))
}

// ListAlunos retrieves alunos with filters and pagination
// @Summary List alunos
// @Description Retrieves alunos filtered by busca, turmaId, escolaId and situacao
// @Tags alunos
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Search over nome, matricula and CPF"
// @Param turmaId query int false "Filter by turma"
// @Param escolaId query int false "Filter by escola"
// @Param situacao query string false "Filter by situacao" Enums(ATIVO, TRANSFERIDO, TRANCADO, CONCLUIDO)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.AlunoListResponse} "Alunos"
// @Router /alunos [get]
func (c *AlunoController) ListAlunos(ctx *gin.Context) {
	filter := dto.AlunoFilter{
		Busca:    ctx.Query("busca"),
		Situacao: models.SituacaoAluno(ctx.Query("situacao")),
	}
	if v, err := strconv.ParseInt(ctx.Query("turmaId"), 10, 64); err == nil {
		filter.TurmaID = v
	}
	if v, err := strconv.ParseInt(ctx.Query("escolaId"), 10, 64); err == nil {
		filter.EscolaID = v
	}

	page, size := helpers.ParsePaginationParams(ctx)

	alunos, err := c.alunoService.List(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(alunos))
}

// UpdateAluno applies a partial update
// @Summary Update an aluno
// @Description Writes only the provided fields; omitted fields are left untouched
// @Tags alunos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Param request body dto.UpdateAlunoRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.AlunoResponse} "Aluno updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Aluno not found"
// @Router /alunos/{id} [put]
func (c *AlunoController) UpdateAluno(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAlunoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	aluno, err := c.alunoService.UpdatePartial(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(aluno))
}

// DeleteAluno removes an aluno
// @Summary Delete an aluno
// @Description Removes the aluno profile and its usuario account
// @Tags alunos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Aluno deleted"
// @Failure 404 {object} dto.ErrorResponse "Aluno not found"
// @Router /alunos/{id} [delete]
func (c *AlunoController) DeleteAluno(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.alunoService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Aluno deleted"}))
}

// GetTurmasDoAluno lists the aluno's active turmas
// @Summary List the aluno's turmas
// @Tags alunos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Turma} "Turmas"
// @Router /alunos/{id}/turmas [get]
func (c *AlunoController) GetTurmasDoAluno(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	turmas, err := c.alunoService.GetTurmas(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(turmas))
}

// CreateResponsavel attaches a responsavel to the aluno
// @Summary Add a responsavel
// @Tags alunos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Param request body dto.CreateResponsavelRequest true "Responsavel data"
// @Success 201 {object} dto.APIResponse{data=models.Responsavel} "Responsavel created"
// @Failure 404 {object} dto.ErrorResponse "Aluno not found"
// @Router /alunos/{id}/responsaveis [post]
func (c *AlunoController) CreateResponsavel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateResponsavelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.responsavelService.Create(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ListResponsaveis lists the aluno's responsaveis
// @Summary List responsaveis
// @Tags alunos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Responsavel} "Responsaveis"
// @Router /alunos/{id}/responsaveis [get]
func (c *AlunoController) ListResponsaveis(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	responsaveis, err := c.responsavelService.ListByAluno(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responsaveis))
}

// UpdateResponsavel applies a partial update to a responsavel
// @Summary Update a responsavel
// @Tags alunos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Param responsavelId path int true "Responsavel ID"
// @Param request body dto.UpdateResponsavelRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Responsavel} "Responsavel updated"
// @Failure 404 {object} dto.ErrorResponse "Responsavel not found"
// @Router /alunos/{id}/responsaveis/{responsavelId} [put]
func (c *AlunoController) UpdateResponsavel(ctx *gin.Context) {
	alunoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	responsavelID, ok := parseIDParam(ctx, "responsavelId")
	if !ok {
		return
	}

	var req dto.UpdateResponsavelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.responsavelService.UpdatePartial(ctx, alunoID, responsavelID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteResponsavel removes a responsavel
// @Summary Delete a responsavel
// @Tags alunos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Param responsavelId path int true "Responsavel ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Responsavel deleted"
// @Failure 404 {object} dto.ErrorResponse "Responsavel not found"
// @Router /alunos/{id}/responsaveis/{responsavelId} [delete]
func (c *AlunoController) DeleteResponsavel(ctx *gin.Context) {
	alunoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	responsavelID, ok := parseIDParam(ctx, "responsavelId")
	if !ok {
		return
	}

	if err := c.responsavelService.Delete(ctx, alunoID, responsavelID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Responsavel deleted"}))
}

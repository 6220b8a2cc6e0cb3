package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
)

// OcorrenciaController handles ocorrencia endpoints
type OcorrenciaController struct {
	ocorrenciaService services.OcorrenciaService
}

// NewOcorrenciaController creates a new OcorrenciaController
func NewOcorrenciaController(ocorrenciaService services.OcorrenciaService) *OcorrenciaController {
	return &OcorrenciaController{
		ocorrenciaService: ocorrenciaService,
	}
}

// CreateOcorrencia records an ocorrencia for an aluno
// @Summary Create an ocorrencia
// @Description Records an ocorrencia; the autor is the session usuario, tipo defaults to OUTRO and the data to today
// @Tags ocorrencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Param request body dto.CreateOcorrenciaRequest true "Ocorrencia data"
// @Success 201 {object} dto.APIResponse{data=models.Ocorrencia} "Ocorrencia created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Aluno not found"
// @Router /alunos/{id}/ocorrencias [post]
func (c *OcorrenciaController) CreateOcorrencia(ctx *gin.Context) {
	alunoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateOcorrenciaRequest
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

	ocorrencia, err := c.ocorrenciaService.Create(ctx, alunoID, autorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(ocorrencia))
}

// ListOcorrencias lists the aluno's ocorrencias
// @Summary List ocorrencias
// @Description Retrieves the aluno's ocorrencias, newest first, optionally narrowed to one tipo
// @Tags ocorrencias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Param tipo query string false "Filter by tipo" Enums(ADVERTENCIA, ELOGIO, COMUNICADO, OUTRO)
// @Success 200 {object} dto.APIResponse{data=[]models.Ocorrencia} "Ocorrencias"
// @Failure 400 {object} dto.ErrorResponse "Unknown tipo"
// @Router /alunos/{id}/ocorrencias [get]
func (c *OcorrenciaController) ListOcorrencias(ctx *gin.Context) {
	alunoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ocorrencias, err := c.ocorrenciaService.ListByAluno(ctx, alunoID, ctx.Query("tipo"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(ocorrencias))
}

// ListOcorrenciasVisiveis lists the ocorrencias visible to responsaveis
// @Summary List ocorrencias visible to responsaveis
// @Tags ocorrencias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aluno ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Ocorrencia} "Ocorrencias"
// @Router /alunos/{id}/ocorrencias/visiveis [get]
func (c *OcorrenciaController) ListOcorrenciasVisiveis(ctx *gin.Context) {
	alunoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ocorrencias, err := c.ocorrenciaService.ListVisiveisByAluno(ctx, alunoID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(ocorrencias))
}

// UpdateOcorrencia applies a partial update
// @Summary Update an ocorrencia
// @Description Writes only the provided fields; only the autor, a gestor or an admin may edit
// @Tags ocorrencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ocorrencia ID"
// @Param request body dto.UpdateOcorrenciaRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Ocorrencia} "Ocorrencia updated"
// @Failure 403 {object} dto.ErrorResponse "Not the autor"
// @Failure 404 {object} dto.ErrorResponse "Ocorrencia not found"
// @Router /ocorrencias/{id} [put]
func (c *OcorrenciaController) UpdateOcorrencia(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateOcorrenciaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	usuarioID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	ocorrencia, err := c.ocorrenciaService.UpdatePartial(ctx, id, usuarioID, middleware.SessionPapel(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(ocorrencia))
}

// DeleteOcorrencia removes an ocorrencia
// @Summary Delete an ocorrencia
// @Description Removes an ocorrencia; only the autor, a gestor or an admin may delete
// @Tags ocorrencias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ocorrencia ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Ocorrencia deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the autor"
// @Failure 404 {object} dto.ErrorResponse "Ocorrencia not found"
// @Router /ocorrencias/{id} [delete]
func (c *OcorrenciaController) DeleteOcorrencia(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	usuarioID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.ocorrenciaService.Delete(ctx, id, usuarioID, middleware.SessionPapel(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Ocorrencia deleted"}))
}

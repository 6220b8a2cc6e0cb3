package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
)

// DisciplinaController handles disciplina endpoints
type DisciplinaController struct {
	disciplinaService services.DisciplinaService
}

// NewDisciplinaController creates a new DisciplinaController
func NewDisciplinaController(disciplinaService services.DisciplinaService) *DisciplinaController {
	return &DisciplinaController{
		disciplinaService: disciplinaService,
	}
}

// CreateDisciplina registers a disciplina
// @Summary Create a disciplina
// @Tags disciplinas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDisciplinaRequest true "Disciplina data"
// @Success 201 {object} dto.APIResponse{data=models.Disciplina} "Disciplina created"
// @Failure 409 {object} dto.ErrorResponse "Disciplina already exists"
// @Router /disciplinas [post]
func (c *DisciplinaController) CreateDisciplina(ctx *gin.Context) {
	var req dto.CreateDisciplinaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	disciplina, err := c.disciplinaService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(disciplina))
}

// GetDisciplina retrieves a disciplina
// @Summary Get disciplina by ID
// @Tags disciplinas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Disciplina ID"
// @Success 200 {object} dto.APIResponse{data=models.Disciplina} "Disciplina"
// @Failure 404 {object} dto.ErrorResponse "Disciplina not found"
// @Router /disciplinas/{id} [get]
func (c *DisciplinaController) GetDisciplina(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	disciplina, err := c.disciplinaService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(disciplina))
}

// ListDisciplinas lists all disciplinas
// @Summary List disciplinas
// @Tags disciplinas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Disciplina} "Disciplinas"
// @Router /disciplinas [get]
func (c *DisciplinaController) ListDisciplinas(ctx *gin.Context) {
	disciplinas, err := c.disciplinaService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(disciplinas))
}

// UpdateDisciplina applies a partial update
// @Summary Update a disciplina
// @Tags disciplinas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Disciplina ID"
// @Param request body dto.UpdateDisciplinaRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Disciplina} "Disciplina updated"
// @Failure 404 {object} dto.ErrorResponse "Disciplina not found"
// @Router /disciplinas/{id} [put]
func (c *DisciplinaController) UpdateDisciplina(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDisciplinaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	disciplina, err := c.disciplinaService.UpdatePartial(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(disciplina))
}

// DeleteDisciplina removes a disciplina
// @Summary Delete a disciplina
// @Description Removes a disciplina that no turma uses
// @Tags disciplinas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Disciplina ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Disciplina deleted"
// @Failure 404 {object} dto.ErrorResponse "Disciplina not found"
// @Failure 409 {object} dto.ErrorResponse "Disciplina still assigned to turmas"
// @Router /disciplinas/{id} [delete]
func (c *DisciplinaController) DeleteDisciplina(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.disciplinaService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Disciplina deleted"}))
}

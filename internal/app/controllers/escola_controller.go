package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
)

// EscolaController handles escola endpoints
type EscolaController struct {
	escolaService services.EscolaService
}

// NewEscolaController creates a new EscolaController
func NewEscolaController(escolaService services.EscolaService) *EscolaController {
	return &EscolaController{
		escolaService: escolaService,
	}
}

// CreateEscola registers an escola
// @Summary Create an escola
// @Tags escolas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEscolaRequest true "Escola data"
// @Success 201 {object} dto.APIResponse{data=models.Escola} "Escola created"
// @Failure 409 {object} dto.ErrorResponse "Escola already exists"
// @Router /escolas [post]
func (c *EscolaController) CreateEscola(ctx *gin.Context) {
	var req dto.CreateEscolaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	escola, err := c.escolaService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(escola))
}

// GetEscola retrieves an escola
// @Summary Get escola by ID
// @Tags escolas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Escola ID"
// @Success 200 {object} dto.APIResponse{data=models.Escola} "Escola"
// @Failure 404 {object} dto.ErrorResponse "Escola not found"
// @Router /escolas/{id} [get]
func (c *EscolaController) GetEscola(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	escola, err := c.escolaService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(escola))
}

// ListEscolas lists escolas scoped to the session papel
// @Summary List escolas
// @Description Admins see every escola; gestores only their own
// @Tags escolas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Escola} "Escolas"
// @Router /escolas [get]
func (c *EscolaController) ListEscolas(ctx *gin.Context) {
	usuarioID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	escolas, err := c.escolaService.ListForUsuario(ctx, usuarioID, middleware.SessionPapel(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(escolas))
}

// UpdateEscola applies a partial update
// @Summary Update an escola
// @Tags escolas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Escola ID"
// @Param request body dto.UpdateEscolaRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Escola} "Escola updated"
// @Failure 404 {object} dto.ErrorResponse "Escola not found"
// @Router /escolas/{id} [put]
func (c *EscolaController) UpdateEscola(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEscolaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	escola, err := c.escolaService.UpdatePartial(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(escola))
}

// AssignGestor puts a gestor in charge of the escola
// @Summary Assign a gestor
// @Tags escolas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Escola ID"
// @Param request body dto.AssignGestorRequest true "Gestor"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Gestor assigned"
// @Failure 404 {object} dto.ErrorResponse "Escola or gestor not found"
// @Router /escolas/{id}/gestor [put]
func (c *EscolaController) AssignGestor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignGestorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.escolaService.AssignGestor(ctx, id, req.GestorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Gestor assigned"}))
}

// RemoveGestor clears the escola's gestor slot
// @Summary Remove the gestor
// @Tags escolas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Escola ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Gestor removed"
// @Failure 404 {object} dto.ErrorResponse "Escola not found"
// @Router /escolas/{id}/gestor [delete]
func (c *EscolaController) RemoveGestor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.escolaService.RemoveGestor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Gestor removed"}))
}

// DeleteEscola removes an escola
// @Summary Delete an escola
// @Description Removes an escola that has no turmas
// @Tags escolas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Escola ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Escola deleted"
// @Failure 404 {object} dto.ErrorResponse "Escola not found"
// @Failure 409 {object} dto.ErrorResponse "Escola still has turmas"
// @Router /escolas/{id} [delete]
func (c *EscolaController) DeleteEscola(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.escolaService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Escola deleted"}))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// ProfessorController handles professor and gestor endpoints
type ProfessorController struct {
	professorService services.ProfessorService
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService services.ProfessorService) *ProfessorController {
	return &ProfessorController{
		professorService: professorService,
	}
}

// CreateProfessor registers a professor
// @Summary Create a professor
// @Description Creates the usuario account and the professor profile in one transaction
// @Tags professores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfessorRequest true "Professor data"
// @Success 201 {object} dto.APIResponse{data=models.Professor} "Professor created"
// @Failure 409 {object} dto.ErrorResponse "Email or CPF already registered"
// @Router /professores [post]
func (c *ProfessorController) CreateProfessor(ctx *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	professor, err := c.professorService.CreateProfessor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(professor))
}

// GetProfessor retrieves a professor
// @Summary Get professor by ID
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=models.Professor} "Professor"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professores/{id} [get]
func (c *ProfessorController) GetProfessor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	professor, err := c.professorService.GetProfessorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(professor))
}

// ListProfessores lists professores
// @Summary List professores
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Professores"
// @Router /professores [get]
func (c *ProfessorController) ListProfessores(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	professores, pagination, err := c.professorService.ListProfessores(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      professores,
		Pagination: pagination,
	}))
}

// UpdateProfessor applies a partial update
// @Summary Update a professor
// @Tags professores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Param request body dto.UpdateProfessorRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Professor} "Professor updated"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professores/{id} [put]
func (c *ProfessorController) UpdateProfessor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	professor, err := c.professorService.UpdateProfessor(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(professor))
}

// DeleteProfessor removes a professor
// @Summary Delete a professor
// @Description Removes the professor profile and its usuario account
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Professor deleted"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professores/{id} [delete]
func (c *ProfessorController) DeleteProfessor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.professorService.DeleteProfessor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Professor deleted"}))
}

// CreateGestor registers a gestor
// @Summary Create a gestor
// @Description Creates the usuario account and the gestor profile in one transaction
// @Tags gestores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGestorRequest true "Gestor data"
// @Success 201 {object} dto.APIResponse{data=models.Gestor} "Gestor created"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /gestores [post]
func (c *ProfessorController) CreateGestor(ctx *gin.Context) {
	var req dto.CreateGestorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	gestor, err := c.professorService.CreateGestor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(gestor))
}

// ListGestores lists gestores
// @Summary List gestores
// @Tags gestores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Gestor} "Gestores"
// @Router /gestores [get]
func (c *ProfessorController) ListGestores(ctx *gin.Context) {
	gestores, err := c.professorService.ListGestores(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gestores))
}

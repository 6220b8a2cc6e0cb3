package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/services"
	"github.com/escolaplus/backend/internal/middleware"
)

// DashboardController handles the landing dashboard endpoint
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats returns the dashboard counters for the session usuario
// @Summary Dashboard statistics
// @Description Returns the counters scoped to the session papel: admins see everything, gestores their escolas, professores their turmas
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Counters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /dashboard [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	usuarioID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	stats, err := c.dashboardService.GetStats(ctx, usuarioID, middleware.SessionPapel(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

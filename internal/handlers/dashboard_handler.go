package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
)

// DashboardHandler handles dashboard aggregation requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	profileService   services.ProfileServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, profileService services.ProfileServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, profileService: profileService}
}

// Summary returns the caller's yearly overview
// @Summary     Dashboard summary
// @Description Per-quarter income and expense totals per currency for one year, plus savings goal progress
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (default: current year)"
// @Success     200 {object} services.DashboardSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, parseErr := strconv.Atoi(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year"))
			return
		}
		year = parsed
	}

	summary, err := h.dashboardService.Summary(caller, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

package controller

import (
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Student godoc
// @Summary Student dashboard
// @Description Enrollments, attempt counts, certificates and upcoming classes
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /api/student/dashboard [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	overview, err := c.DashboardService.StudentOverview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// Tutor godoc
// @Summary Tutor dashboard
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TutorDashboard}
// @Router /api/tutor/dashboard [get]
func (c *DashboardController) Tutor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	overview, err := c.DashboardService.TutorOverview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// Admin godoc
// @Summary Platform-wide statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AdminDashboard}
// @Router /api/admin/dashboard [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	overview, err := c.DashboardService.AdminOverview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

package controller

import (
	"errors"
	"net/http"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LiveClassController struct {
	LiveClassService *service.LiveClassService
}

func NewLiveClassController(liveClassService *service.LiveClassService) *LiveClassController {
	return &LiveClassController{LiveClassService: liveClassService}
}

// Schedule godoc
// @Summary Schedule a live class for a course
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LiveClassRequest true "Live class payload"
// @Success 201 {object} util.Response{data=model.LiveClass}
// @Router /api/tutor/live-classes [post]
func (c *LiveClassController) Schedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.LiveClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lc, err := c.LiveClassService.Schedule(claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		liveClassError(ctx, err)
		return
	}

	util.Created(ctx, lc)
}

// Update godoc
// @Summary Update a scheduled live class
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Live class ID"
// @Param body body service.LiveClassRequest true "Live class payload"
// @Success 200 {object} util.Response{data=model.LiveClass}
// @Router /api/tutor/live-classes/{id} [put]
func (c *LiveClassController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid live class id")
		return
	}

	var req service.LiveClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lc, err := c.LiveClassService.Update(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		liveClassError(ctx, err)
		return
	}

	util.Success(ctx, lc)
}

type LiveClassStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=live ended cancelled"`
}

// SetStatus godoc
// @Summary Start, end or cancel a live class
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Live class ID"
// @Param body body LiveClassStatusRequest true "Target status"
// @Success 200 {object} util.Response{data=model.LiveClass}
// @Router /api/tutor/live-classes/{id}/status [put]
func (c *LiveClassController) SetStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid live class id")
		return
	}

	var req LiveClassStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lc, err := c.LiveClassService.SetStatus(id, claims.UserID, claims.Role == model.Admin, model.LiveClassStatus(req.Status))
	if err != nil {
		liveClassError(ctx, err)
		return
	}

	util.Success(ctx, lc)
}

// Delete godoc
// @Summary Delete a live class
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Live class ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tutor/live-classes/{id} [delete]
func (c *LiveClassController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid live class id")
		return
	}

	if err := c.LiveClassService.Delete(id, claims.UserID, claims.Role == model.Admin); err != nil {
		liveClassError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// Hosted godoc
// @Summary Live classes hosted by the calling tutor
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/tutor/live-classes [get]
func (c *LiveClassController) Hosted(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := pagination(ctx)

	classes, total, err := c.LiveClassService.ListByHost(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: classes, Total: total, Page: page, Limit: limit})
}

// Upcoming godoc
// @Summary Upcoming classes for the caller's enrolled courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LiveClass}
// @Router /api/student/live-classes [get]
func (c *LiveClassController) Upcoming(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	classes, err := c.LiveClassService.Upcoming(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, classes)
}

// Get godoc
// @Summary Live class detail
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Live class ID"
// @Success 200 {object} util.Response{data=model.LiveClass}
// @Failure 404 {object} util.Response
// @Router /api/live-classes/{id} [get]
func (c *LiveClassController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid live class id")
		return
	}

	lc, err := c.LiveClassService.Get(id)
	if err != nil {
		liveClassError(ctx, err)
		return
	}

	util.Success(ctx, lc)
}

// Join godoc
// @Summary Join a running live class
// @Description Returns the meeting URL for enrolled students while the class is live
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Live class ID"
// @Success 200 {object} util.Response{data=model.LiveClass}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/live-classes/{id}/join [post]
func (c *LiveClassController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid live class id")
		return
	}

	lc, err := c.LiveClassService.Join(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLiveClassNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrLiveClassNotJoinable):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lc)
}

func liveClassError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLiveClassNotFound), errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.BadRequest(ctx, err.Error())
	}
}

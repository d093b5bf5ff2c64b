package controller

import (
	"errors"
	"net/http"
	"strconv"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// List godoc
// @Summary Published assessments
// @Tags assessments
// @Produce json
// @Param courseId query int false "Filter by course"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	var courseID uint
	if raw := ctx.Query("courseId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			util.BadRequest(ctx, "invalid course id")
			return
		}
		courseID = uint(id)
	}

	assessments, total, err := c.AssessmentService.ListPublished(courseID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: assessments, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Assessment detail with questions
// @Description Answer keys are never part of this payload
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	a, err := c.AssessmentService.GetAssessment(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Drafts stay invisible to everyone but their creator and admins.
	if a.Status != model.AssessmentPublished {
		claims := util.GetUserFromContext(ctx)
		if claims == nil || (claims.Role != model.Admin && claims.UserID != a.CreatorID) {
			util.NotFound(ctx)
			return
		}
	}

	util.Success(ctx, a)
}

// Submit godoc
// @Summary Submit answers for grading
// @Description Grades the attempt, stores it, and issues a certificate on a pass
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body service.SubmitRequest true "Answers payload"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Submit(claims.UserID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrAssessmentNotPublished):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAssessmentPastDue):
			util.Error(ctx, http.StatusBadRequest, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// MyResult godoc
// @Summary The caller's latest attempt
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/results [get]
func (c *AssessmentController) MyResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	result, err := c.AssessmentService.MyResult(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Create godoc
// @Summary Create an assessment
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentRequest true "Assessment payload"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Router /api/tutor/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.CreateAssessment(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, a)
}

// Update godoc
// @Summary Update an assessment
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body service.AssessmentRequest true "Assessment payload"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/tutor/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.UpdateAssessment(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		assessmentWriteError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published archived"`
}

// SetStatus godoc
// @Summary Move an assessment between draft, published and archived
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body StatusRequest true "Target status"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/tutor/assessments/{id}/status [put]
func (c *AssessmentController) SetStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.SetStatus(id, claims.UserID, claims.Role == model.Admin, model.AssessmentStatus(req.Status))
	if err != nil {
		assessmentWriteError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

// Delete godoc
// @Summary Delete an assessment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /api/admin/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	if err := c.AssessmentService.DeleteAssessment(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// Mine godoc
// @Summary Assessments authored by the calling tutor
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/tutor/assessments [get]
func (c *AssessmentController) Mine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := pagination(ctx)

	assessments, total, err := c.AssessmentService.ListByCreator(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: assessments, Total: total, Page: page, Limit: limit})
}

// CreateQuestion godoc
// @Summary Add a question to an assessment
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body service.QuestionRequest true "Question payload"
// @Success 201 {object} util.Response{data=model.AssessmentQuestion}
// @Router /api/tutor/assessments/{id}/questions [post]
func (c *AssessmentController) CreateQuestion(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.CreateQuestion(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param body body service.QuestionRequest true "Question payload"
// @Success 200 {object} util.Response{data=model.AssessmentQuestion}
// @Router /api/tutor/questions/{id} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.UpdateQuestion(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/tutor/questions/{id} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.AssessmentService.DeleteQuestion(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// QuestionsWithKeys godoc
// @Summary Questions including answer keys
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=[]service.TutorQuestion}
// @Router /api/tutor/assessments/{id}/questions [get]
func (c *AssessmentController) QuestionsWithKeys(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	questions, err := c.AssessmentService.ListQuestionsWithKeys(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// Submissions godoc
// @Summary Attempts against an assessment
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/tutor/assessments/{id}/submissions [get]
func (c *AssessmentController) Submissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}
	page, limit := pagination(ctx)

	subs, total, err := c.AssessmentService.ListSubmissions(id, claims.UserID, claims.Role == model.Admin, page, limit)
	if err != nil {
		assessmentWriteError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: subs, Total: total, Page: page, Limit: limit})
}

// SubmissionDetail godoc
// @Summary A single graded attempt
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} util.Response{data=model.AssessmentSubmission}
// @Router /api/submissions/{id} [get]
func (c *AssessmentController) SubmissionDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	sub, err := c.AssessmentService.GetSubmissionDetail(id, claims.UserID, claims.Role == model.Admin)
	if err != nil {
		assessmentWriteError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

func assessmentWriteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

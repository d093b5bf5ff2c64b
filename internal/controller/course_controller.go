package controller

import (
	"errors"
	"net/http"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// Catalog godoc
// @Summary Browse the published course catalog
// @Description Tutors sending a token also see their own unpublished courses
// @Tags courses
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param category query string false "Filter by category"
// @Success 200 {object} util.Response{data=service.CatalogPage}
// @Router /api/courses [get]
func (c *CourseController) Catalog(ctx *gin.Context) {
	page, limit := pagination(ctx)
	category := ctx.Query("category")

	catalog, err := c.CourseService.GetCatalog(ctx.Request.Context(), page, limit, category, util.GetUserFromContext(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, catalog)
}

// Get godoc
// @Summary Course detail with lessons
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetCourseDetail(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Unpublished courses are visible to their tutor and admins only.
	if !course.IsPublished {
		claims := util.GetUserFromContext(ctx)
		if claims == nil || (claims.Role != model.Admin && claims.UserID != course.TutorID) {
			util.NotFound(ctx)
			return
		}
	}

	util.Success(ctx, course)
}

// Create godoc
// @Summary Create a course
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseRequest true "Course payload"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/tutor/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.CourseRequest true "Course payload"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tutor/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		courseWriteError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

type PublishRequest struct {
	Published bool `json:"published"`
}

// Publish godoc
// @Summary Publish or unpublish a course
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body PublishRequest true "Published flag"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/tutor/courses/{id}/publish [put]
func (c *CourseController) Publish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.PublishCourse(id, claims.UserID, claims.Role == model.Admin, req.Published)
	if err != nil {
		courseWriteError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.DeleteCourse(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// TutorCourses godoc
// @Summary Courses owned by the calling tutor
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/tutor/courses [get]
func (c *CourseController) TutorCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := pagination(ctx)

	courses, total, err := c.CourseService.ListByTutor(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// AllCourses godoc
// @Summary All courses, published or not
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/courses [get]
func (c *CourseController) AllCourses(ctx *gin.Context) {
	page, limit := pagination(ctx)

	courses, total, err := c.CourseService.ListAll(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Enroll godoc
// @Summary Enroll in a published course
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	enrollment, err := c.CourseService.Enroll(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrCourseNotPublished):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// MyCourses godoc
// @Summary The caller's enrollments with progress
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/student/courses [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollments, err := c.CourseService.MyCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}

// Lessons godoc
// @Summary Lessons of an enrolled course
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 403 {object} util.Response
// @Router /api/courses/{id}/lessons [get]
func (c *CourseController) Lessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	lessons, err := c.CourseService.ListLessons(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lessons)
}

// CompleteLesson godoc
// @Summary Mark a lesson completed
// @Description Records completion and recomputes the enrollment progress
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	enrollment, err := c.CourseService.CompleteLesson(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}

// CreateLesson godoc
// @Summary Add a lesson to a course
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.LessonRequest true "Lesson payload"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/tutor/courses/{id}/lessons [post]
func (c *CourseController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.CreateLesson(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		courseWriteError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param body body service.LessonRequest true "Lesson payload"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/tutor/lessons/{id} [put]
func (c *CourseController) UpdateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.UpdateLesson(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		courseWriteError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags tutor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Router /api/tutor/lessons/{id} [delete]
func (c *CourseController) DeleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	if err := c.CourseService.DeleteLesson(id, claims.UserID, claims.Role == model.Admin); err != nil {
		courseWriteError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

func courseWriteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

package controller

import (
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// CourseController 学员侧课程接口
type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// Index godoc
// @Summary 课程列表
// @Description 已发布课程, 按前置课程完成情况分为可报名与锁定两组
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.CourseListing}
// @Failure 401 {object} util.Response
// @Router /courses [get]
func (c *CourseController) Index(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	listing, err := c.CourseService.CourseListing(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, listing)
}

// Available godoc
// @Summary 可报名课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /courses/available [get]
func (c *CourseController) Available(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	courses, err := c.CourseService.AvailableCourses(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Locked godoc
// @Summary 被锁定的课程
// @Description 仍有未完成前置课程的已发布课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /courses/locked [get]
func (c *CourseController) Locked(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	courses, err := c.CourseService.LockedCourses(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Show godoc
// @Summary 课程详情
// @Description 已发布章节、附件、题目与选项(不含正确答案), 以及当前用户进度
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /courses/{id} [get]
func (c *CourseController) Show(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.CourseService.CourseDetail(ctx.Request.Context(), courseID, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// Progress godoc
// @Summary 课程进度
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Failure 404 {object} util.Response
// @Router /courses/{id}/progress [get]
func (c *CourseController) Progress(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.CourseService.Progress(ctx.Request.Context(), courseID, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Enroll godoc
// @Summary 报名课程
// @Description 课程未发布或前置课程未完成时返回 403 和原因码
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 201 {object} util.Response{data=service.EnrollResult}
// @Failure 403 {object} util.Response "course_not_published / prerequisites_not_completed"
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.CourseService.Enroll(ctx.Request.Context(), courseID, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotAllowed) || util.IsNotFound(err) {
			respondError(ctx, err)
			return
		}
		util.LogError(ctx, err)
		util.Unprocessable(ctx, "Enrollment failed")
		return
	}
	util.Created(ctx, result)
}

// MyCourses godoc
// @Summary 我的课程
// @Description 当前用户报名的课程, 最新报名在前
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.MyCourse}
// @Router /my/courses [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	courses, err := c.CourseService.MyCourses(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

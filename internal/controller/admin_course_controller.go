package controller

import (
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminCourseController 管理端课程目录维护
type AdminCourseController struct {
	AdminService *service.CatalogAdminService
}

func NewAdminCourseController(adminService *service.CatalogAdminService) *AdminCourseController {
	return &AdminCourseController{AdminService: adminService}
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 新课程为草稿状态
// @Tags 管理-课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /admin/courses [post]
func (c *AdminCourseController) CreateCourse(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.AdminService.CreateCourse(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 管理-课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param request body service.UpdateCourseRequest true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /admin/courses/{id} [put]
func (c *AdminCourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.AdminService.UpdateCourse(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 软删除, 其他课程对它的前置要求随之失效
// @Tags 管理-课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /admin/courses/{id} [delete]
func (c *AdminCourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.AdminService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PublishCourse godoc
// @Summary 发布课程
// @Tags 管理-课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /admin/courses/{id}/publish [post]
func (c *AdminCourseController) PublishCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.AdminService.PublishCourse(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// UnpublishCourse godoc
// @Summary 下线课程
// @Tags 管理-课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /admin/courses/{id}/unpublish [post]
func (c *AdminCourseController) UnpublishCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.AdminService.UnpublishCourse(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// ArchiveCourse godoc
// @Summary 归档课程
// @Tags 管理-课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /admin/courses/{id}/archive [post]
func (c *AdminCourseController) ArchiveCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.AdminService.ArchiveCourse(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// SyncPrerequisites godoc
// @Summary 设置前置课程
// @Description 用请求中的课程ID整体替换前置课程. 不允许依赖自身
// @Tags 管理-课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param request body service.SyncPrerequisitesRequest true "前置课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/courses/{id}/prerequisites [post]
func (c *AdminCourseController) SyncPrerequisites(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.SyncPrerequisitesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.AdminService.SyncPrerequisites(ctx.Request.Context(), id, req.RequiredCourseIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateChapter godoc
// @Summary 创建章节
// @Tags 管理-章节
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param request body service.ChapterRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.Chapter}
// @Router /admin/courses/{id}/chapters [post]
func (c *AdminCourseController) CreateChapter(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.AdminService.CreateChapter(ctx.Request.Context(), courseID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, chapter)
}

// UpdateChapter godoc
// @Summary 更新章节
// @Tags 管理-章节
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "章节ID"
// @Param request body service.UpdateChapterRequest true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Router /admin/chapters/{id} [put]
func (c *AdminCourseController) UpdateChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.AdminService.UpdateChapter(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// DeleteChapter godoc
// @Summary 删除章节
// @Description 同时删除章节下的附件、题目、选项和提交记录
// @Tags 管理-章节
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "章节ID"
// @Success 200 {object} util.Response
// @Router /admin/chapters/{id} [delete]
func (c *AdminCourseController) DeleteChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.AdminService.DeleteChapter(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateTask godoc
// @Summary 创建题目
// @Description 可同时提交选项, max_score 默认为 1
// @Tags 管理-题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "章节ID"
// @Param request body service.TaskRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Task}
// @Router /admin/chapters/{id}/tasks [post]
func (c *AdminCourseController) CreateTask(ctx *gin.Context) {
	chapterID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.AdminService.CreateTask(ctx.Request.Context(), chapterID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, task)
}

// UpdateTask godoc
// @Summary 更新题目
// @Tags 管理-题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param request body service.UpdateTaskRequest true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Task}
// @Router /admin/tasks/{id} [put]
func (c *AdminCourseController) UpdateTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.AdminService.UpdateTask(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, task)
}

// DeleteTask godoc
// @Summary 删除题目
// @Tags 管理-题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /admin/tasks/{id} [delete]
func (c *AdminCourseController) DeleteTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.AdminService.DeleteTask(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SyncOptions godoc
// @Summary 同步题目选项
// @Description 带ID的选项更新, 不带ID的创建, 未列出的删除
// @Tags 管理-题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param request body service.SyncOptionsRequest true "选项列表"
// @Success 200 {object} util.Response{data=model.Task}
// @Router /admin/tasks/{id}/options/sync [post]
func (c *AdminCourseController) SyncOptions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.SyncOptionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.AdminService.SyncOptions(ctx.Request.Context(), id, req.Options)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, task)
}

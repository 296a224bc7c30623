package controller

import (
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskSubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewTaskSubmissionController(submissionService *service.SubmissionService) *TaskSubmissionController {
	return &TaskSubmissionController{SubmissionService: submissionService}
}

// SubmitTaskRequest 题目答案, 按题型填写其中一项
// swagger:model SubmitTaskRequest
type SubmitTaskRequest struct {
	TextAnswer        *string `json:"text_answer"`
	SelectedOptionIDs []uint  `json:"selected_option_ids"`
}

// Submit godoc
// @Summary 提交题目答案
// @Description 判分并记录一次新的尝试, 返回最新课程进度. 进度达到 100% 时课程标记为已完成
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param request body SubmitTaskRequest true "答案"
// @Success 201 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tasks/{id}/submit [post]
func (c *TaskSubmissionController) Submit(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	taskID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req SubmitTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionService.Submit(ctx.Request.Context(), taskID, user.UserID, service.SubmittedAnswer{
		TextAnswer:        req.TextAnswer,
		SelectedOptionIDs: req.SelectedOptionIDs,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// History godoc
// @Summary 我的提交记录
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response{data=[]model.TaskSubmission}
// @Failure 404 {object} util.Response
// @Router /tasks/{id}/submissions [get]
func (c *TaskSubmissionController) History(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	taskID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	list, err := c.SubmissionService.History(ctx.Request.Context(), taskID, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

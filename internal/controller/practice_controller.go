package controller

import (
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Service *service.PracticeService
}

func NewPracticeController(svc *service.PracticeService) *PracticeController {
	return &PracticeController{Service: svc}
}

// @Summary 提交答案
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitAnswerRequest true "答题信息"
// @Success 200 {object} util.Response
// @Router /api/practice/answers [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAnswer(user.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 创建练习任务
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreatePracticeTaskRequest true "任务信息"
// @Success 201 {object} util.Response
// @Router /api/practice/tasks [post]
func (c *PracticeController) CreateTask(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreatePracticeTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.Service.CreateTask(user.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, task)
}

// @Summary 获取练习任务列表
// @Tags 练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/practice/tasks [get]
func (c *PracticeController) ListTasks(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.Service.ListTasks(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tasks)
}

type updateTaskStatusRequest struct {
	Status model.PracticeTaskStatus `json:"status" binding:"required,oneof=pending in_progress completed"`
}

// @Summary 更新练习任务状态
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Param body body updateTaskStatusRequest true "任务状态"
// @Success 200 {object} util.Response
// @Router /api/practice/tasks/{id}/status [put]
func (c *PracticeController) UpdateTaskStatus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	var req updateTaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.Service.UpdateTaskStatus(id, user.UserID, req.Status)
	if err != nil {
		if errors.Is(err, util.ErrPracticeTaskNotFound) {
			util.NotFound(ctx)
			return
		}
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

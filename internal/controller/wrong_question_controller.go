package controller

import (
	"errors"
	"strconv"

	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WrongQuestionController struct {
	Service *service.WrongQuestionService
}

func NewWrongQuestionController(svc *service.WrongQuestionService) *WrongQuestionController {
	return &WrongQuestionController{Service: svc}
}

// @Summary 获取错题本
// @Tags 错题本
// @Produce json
// @Security BearerAuth
// @Param subject query string false "科目"
// @Param questionType query string false "题型"
// @Param mastered query bool false "是否已掌握"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/wrong-questions [get]
func (c *WrongQuestionController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.WrongQuestionFilter{
		Subject:      ctx.Query("subject"),
		QuestionType: ctx.Query("questionType"),
		Page:         page,
		Limit:        limit,
	}
	if masteredStr := ctx.Query("mastered"); masteredStr != "" {
		mastered := masteredStr == "true"
		filter.IsMastered = &mastered
	}

	records, total, err := c.Service.List(user.UserID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 获取错题详情
// @Tags 错题本
// @Produce json
// @Security BearerAuth
// @Param id path int true "错题ID"
// @Success 200 {object} util.Response
// @Router /api/wrong-questions/{id} [get]
func (c *WrongQuestionController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid wrong question id")
		return
	}

	record, err := c.Service.Get(id, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrWrongQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

type setMasteredRequest struct {
	IsMastered *bool `json:"isMastered" binding:"required"`
}

// @Summary 标记错题掌握状态
// @Tags 错题本
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "错题ID"
// @Param body body setMasteredRequest true "掌握状态"
// @Success 200 {object} util.Response
// @Router /api/wrong-questions/{id}/mastered [put]
func (c *WrongQuestionController) SetMastered(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid wrong question id")
		return
	}

	var req setMasteredRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.Service.SetMastered(id, user.UserID, *req.IsMastered)
	if err != nil {
		if errors.Is(err, util.ErrWrongQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

// @Summary 删除错题记录
// @Tags 错题本
// @Produce json
// @Security BearerAuth
// @Param id path int true "错题ID"
// @Success 200 {object} util.Response
// @Router /api/wrong-questions/{id} [delete]
func (c *WrongQuestionController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid wrong question id")
		return
	}

	if err := c.Service.Delete(id, user.UserID); err != nil {
		if errors.Is(err, util.ErrWrongQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

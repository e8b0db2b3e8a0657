package controller

import (
	"errors"
	"strconv"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InviteCodeController struct {
	Service *service.InviteCodeService
}

func NewInviteCodeController(svc *service.InviteCodeService) *InviteCodeController {
	return &InviteCodeController{Service: svc}
}

type generateInviteCodesRequest struct {
	Count int `json:"count" binding:"required,min=1,max=100"`
}

// @Summary 批量生成邀请码
// @Tags 邀请码
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body generateInviteCodesRequest true "生成数量"
// @Success 201 {object} util.Response
// @Router /api/admin/invite-codes [post]
func (c *InviteCodeController) Generate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req generateInviteCodesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	codes, err := c.Service.Generate(user.UserID, req.Count)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, codes)
}

// @Summary 获取邀请码列表
// @Tags 邀请码
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/invite-codes [get]
func (c *InviteCodeController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	codes, total, err := c.Service.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  codes,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 校验邀请码
// @Tags 邀请码
// @Produce json
// @Param code path string true "邀请码"
// @Success 200 {object} util.Response
// @Router /api/invite-codes/{code}/validate [get]
func (c *InviteCodeController) Validate(ctx *gin.Context) {
	code, err := c.Service.Validate(ctx.Param("code"))
	if err != nil {
		if errors.Is(err, util.ErrInviteCodeNotFound) {
			util.NotFound(ctx)
			return
		}
		if errors.Is(err, util.ErrInviteCodeUsed) || errors.Is(err, util.ErrInviteCodeExpired) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"code": code.Code, "expiresAt": code.ExpiresAt})
}

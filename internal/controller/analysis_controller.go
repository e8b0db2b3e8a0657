package controller

import (
	"errors"
	"strconv"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalysisController struct {
	Service *service.AnalysisService
}

func NewAnalysisController(svc *service.AnalysisService) *AnalysisController {
	return &AnalysisController{Service: svc}
}

// @Summary 发起错题AI分析
// @Tags AI分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/analysis [post]
func (c *AnalysisController) Run(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.Service.RunForUser(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 获取最近一次分析报告
// @Tags AI分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/analysis/latest [get]
func (c *AnalysisController) GetLatest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	record, err := c.Service.GetLatest(ctx.Request.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

// @Summary 获取分析报告历史
// @Tags AI分析
// @Produce json
// @Security BearerAuth
// @Param limit query int false "数量" default(10)
// @Success 200 {object} util.Response
// @Router /api/analysis/history [get]
func (c *AnalysisController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	records, err := c.Service.History(user.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, records)
}

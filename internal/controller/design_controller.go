package controller

import (
	"context"
	"errors"

	"exam_ai_backend/internal/service"
	"exam_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type designGenerator interface {
	Generate(ctx context.Context, content string) (string, error)
	LatestDocumentURL(ctx context.Context) (string, error)
}

// DesignController 教学设计接口
type DesignController struct {
	service designGenerator
}

func NewDesignController(s designGenerator) *DesignController {
	return &DesignController{service: s}
}

type DesignRequest struct {
	Content string `json:"content" binding:"required"`
}

// Generate godoc
// @Summary 生成教学设计
// @Description 调用教学设计工作流，工作流中断时自动续跑，调用结果会被记录
// @Tags 教学设计
// @Accept json
// @Produce json
// @Param body body DesignRequest true "教学设计需求"
// @Success 200 {object} util.Response{data=string}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/sheji [post]
func (c *DesignController) Generate(ctx *gin.Context) {
	var req DesignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "缺少content字段")
		return
	}

	output, err := c.service.Generate(ctx.Request.Context(), req.Content)
	if err != nil {
		respondWorkflowError(ctx, err, nil)
		return
	}
	util.SuccessWithMessage(ctx, "处理成功", output)
}

// Latest godoc
// @Summary 获取最新的教学设计文档链接
// @Tags 教学设计
// @Produce json
// @Success 200 {object} util.Response{data=string}
// @Failure 404 {object} util.Response
// @Router /api/sheji/latest [get]
func (c *DesignController) Latest(ctx *gin.Context) {
	url, err := c.service.LatestDocumentURL(ctx.Request.Context())
	switch {
	case errors.Is(err, util.ErrNoDesignRecord), errors.Is(err, service.ErrInvalidDesignRecord):
		util.NotFound(ctx, err.Error())
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.SuccessWithMessage(ctx, "查询成功", url)
	}
}

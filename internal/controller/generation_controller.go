package controller

import (
	"context"

	"exam_ai_backend/internal/service"
	"exam_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type questionGenerator interface {
	Generate(ctx context.Context, owner, content string) (*service.GenerationResult, error)
	Resume(ctx context.Context, owner, eventID, resumeData string) (*service.GenerationResult, error)
}

type GenerationController struct {
	service questionGenerator
}

func NewGenerationController(s questionGenerator) *GenerationController {
	return &GenerationController{service: s}
}

type GenerateRequest struct {
	Content     string `json:"content"`
	PhoneNumber string `json:"phoneNumber"`
}

type ResumeRequest struct {
	EventID     string `json:"eventId" binding:"required"`
	ResumeData  string `json:"resumeData"`
	PhoneNumber string `json:"phoneNumber"`
}

// Generate godoc
// @Summary AI 生成试题
// @Description 调用出题工作流，解析选择题、填空题、判断题并同步到题库和用户题目表
// @Tags 试题生成
// @Accept json
// @Produce json
// @Param body body GenerateRequest true "生成需求与手机号"
// @Success 200 {object} util.Response{data=service.GenerationResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response{data=InterruptResponse}
// @Failure 502 {object} util.Response
// @Router /api/aigenerate [post]
func (c *GenerationController) Generate(ctx *gin.Context) {
	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "请求格式错误，需为JSON")
		return
	}

	result, err := c.service.Generate(ctx.Request.Context(), req.PhoneNumber, req.Content)
	if err != nil {
		respondWorkflowError(ctx, err, result)
		return
	}
	util.SuccessWithMessage(ctx, result.Message, result)
}

// Resume godoc
// @Summary 继续被中断的出题工作流
// @Description 使用中断事件ID和补充信息续跑工作流，完成后与生成接口一样解析并同步
// @Tags 试题生成
// @Accept json
// @Produce json
// @Param body body ResumeRequest true "中断事件与补充信息"
// @Success 200 {object} util.Response{data=service.GenerationResult}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response{data=InterruptResponse}
// @Router /api/aigenerate/resume [post]
func (c *GenerationController) Resume(ctx *gin.Context) {
	var req ResumeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "缺少eventId")
		return
	}

	result, err := c.service.Resume(ctx.Request.Context(), req.PhoneNumber, req.EventID, req.ResumeData)
	if err != nil {
		respondWorkflowError(ctx, err, result)
		return
	}
	util.SuccessWithMessage(ctx, result.Message, result)
}

package controller

import (
	"context"
	"errors"

	"exam_ai_backend/internal/grading"
	"exam_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type answerGrader interface {
	Submit(ctx context.Context, items []grading.Item) (*grading.Result, error)
}

type SubmissionController struct {
	service answerGrader
}

func NewSubmissionController(s answerGrader) *SubmissionController {
	return &SubmissionController{service: s}
}

// Submit godoc
// @Summary 提交答案并判分
// @Description 每题 1 分。选择题忽略大小写，填空题去除首尾空格后精确匹配，判断题兼容 true/false、对/错、1/0
// @Tags 判分
// @Accept json
// @Produce json
// @Param body body []grading.Item true "作答列表"
// @Success 200 {object} util.Response{data=grading.Result}
// @Failure 400 {object} util.Response
// @Router /api/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var items []grading.Item
	if err := ctx.ShouldBindJSON(&items); err != nil {
		util.BadRequest(ctx, "请求格式错误，需为JSON数组")
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), items)
	if errors.Is(err, grading.ErrEmptySubmission) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

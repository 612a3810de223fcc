package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"exam_ai_backend/internal/service"
	"exam_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type paperReader interface {
	PublishedPaperNames(ctx context.Context) ([]string, error)
	PaperQuestions(ctx context.Context, paperName string) (*service.PaperQuestions, error)
}

// StudentController 学生端试卷接口
type StudentController struct {
	service paperReader
}

func NewStudentController(s paperReader) *StudentController {
	return &StudentController{service: s}
}

// Papers godoc
// @Summary 获取已发布的试卷名称
// @Tags 学生端
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/student/papers [get]
func (c *StudentController) Papers(ctx *gin.Context) {
	names, err := c.service.PublishedPaperNames(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, names)
}

// PaperQuestions godoc
// @Summary 获取试卷题目
// @Description 按选择题、判断题、填空题的顺序返回，questionType 为 RADIO/JUDGE/FILL，index 从 0 开始
// @Tags 学生端
// @Produce json
// @Param paper_name query string true "试卷名称"
// @Success 200 {object} util.Response{data=service.PaperQuestions}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response{data=service.PaperQuestions}
// @Router /api/student/paper/questions [get]
func (c *StudentController) PaperQuestions(ctx *gin.Context) {
	paperName := strings.TrimSpace(ctx.Query("paper_name"))
	if paperName == "" {
		util.BadRequest(ctx, "缺少paper_name参数")
		return
	}

	result, err := c.service.PaperQuestions(ctx.Request.Context(), paperName)
	if errors.Is(err, util.ErrPaperNotFound) {
		util.ErrorWithData(ctx, http.StatusNotFound, err.Error(), service.PaperQuestions{
			PaperName: paperName,
			Questions: []service.PaperQuestion{},
		})
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

package controller

import (
	"context"
	"errors"

	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/service"
	"exam_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type homeworkPublisher interface {
	Publish(ctx context.Context, hw *model.Homework) error
}

type HomeworkController struct {
	service homeworkPublisher
}

func NewHomeworkController(s homeworkPublisher) *HomeworkController {
	return &HomeworkController{service: s}
}

type PublishHomeworkRequest struct {
	ClassName     string `json:"className"`
	PaperName     string `json:"paperName"`
	ChoicePaperID string `json:"choicePaperId"`
	JudgePaperID  string `json:"judgePaperId"`
	BlankPaperID  string `json:"blankPaperId"`
}

// Publish godoc
// @Summary 发布作业
// @Description 五个字段均为必填
// @Tags 作业
// @Accept json
// @Produce json
// @Param body body PublishHomeworkRequest true "作业信息"
// @Success 201 {object} util.Response{data=model.Homework}
// @Failure 400 {object} util.Response
// @Router /publish/homework [post]
func (c *HomeworkController) Publish(ctx *gin.Context) {
	var req PublishHomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "未接收到参数")
		return
	}

	hw := &model.Homework{
		ClassName:     req.ClassName,
		PaperName:     req.PaperName,
		ChoicePaperID: req.ChoicePaperID,
		JudgePaperID:  req.JudgePaperID,
		BlankPaperID:  req.BlankPaperID,
	}
	err := c.service.Publish(ctx.Request.Context(), hw)
	if errors.Is(err, service.ErrHomeworkFieldsRequired) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, hw)
}

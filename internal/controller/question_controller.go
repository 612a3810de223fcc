package controller

import (
	"context"

	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/service"
	"exam_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type questionReader interface {
	ListChoices(ctx context.Context, latest bool) ([]service.ChoiceItem, error)
	ListFills(ctx context.Context, latest bool) ([]service.FillItem, error)
	ListJudges(ctx context.Context, latest bool) ([]service.JudgeItem, error)
	OwnerPaperNames(ctx context.Context, owner string) ([]string, error)
	MirrorByPaper(ctx context.Context, kind model.QuestionKind, paperName, owner string) ([]service.MirrorItem, error)
}

type QuestionController struct {
	service questionReader
}

func NewQuestionController(s questionReader) *QuestionController {
	return &QuestionController{service: s}
}

type OwnerRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type PaperRequest struct {
	PaperName   string `json:"paperName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

func latestParam(ctx *gin.Context) bool {
	raw, ok := ctx.GetQuery("latest")
	return util.ParseLatest(raw, ok)
}

// ListChoices godoc
// @Summary 获取选择题
// @Description latest 为 true/1/yes/y（默认）时返回最新 10 条，否则返回全部
// @Tags 题库
// @Produce json
// @Param latest query string false "是否只取最新10条" default(true)
// @Success 200 {object} util.ListResponse{data=[]service.ChoiceItem}
// @Router /api/choices [get]
func (c *QuestionController) ListChoices(ctx *gin.Context) {
	latest := latestParam(ctx)
	items, err := c.service.ListChoices(ctx.Request.Context(), latest)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessList(ctx, items, len(items), latest)
}

// ListFills godoc
// @Summary 获取填空题
// @Tags 题库
// @Produce json
// @Param latest query string false "是否只取最新10条" default(true)
// @Success 200 {object} util.ListResponse{data=[]service.FillItem}
// @Router /api/fills [get]
func (c *QuestionController) ListFills(ctx *gin.Context) {
	latest := latestParam(ctx)
	items, err := c.service.ListFills(ctx.Request.Context(), latest)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessList(ctx, items, len(items), latest)
}

// ListJudges godoc
// @Summary 获取判断题
// @Description 答案以布尔值返回
// @Tags 题库
// @Produce json
// @Param latest query string false "是否只取最新10条" default(true)
// @Success 200 {object} util.ListResponse{data=[]service.JudgeItem}
// @Router /api/judges [get]
func (c *QuestionController) ListJudges(ctx *gin.Context) {
	latest := latestParam(ctx)
	items, err := c.service.ListJudges(ctx.Request.Context(), latest)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessList(ctx, items, len(items), latest)
}

// OwnerPapers godoc
// @Summary 获取用户同步过的试卷名称
// @Tags 题库
// @Accept json
// @Produce json
// @Param body body OwnerRequest true "手机号"
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/student/mirror/papers [post]
func (c *QuestionController) OwnerPapers(ctx *gin.Context) {
	var req OwnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "缺少phoneNumber")
		return
	}

	names, err := c.service.OwnerPaperNames(ctx.Request.Context(), req.PhoneNumber)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, names)
}

// ChoicesByPaper godoc
// @Summary 按试卷名称查询用户选择题
// @Tags 题库
// @Accept json
// @Produce json
// @Param body body PaperRequest true "试卷名称，手机号可选"
// @Success 200 {object} util.Response{data=[]service.MirrorItem}
// @Router /api/choices/by-paper [post]
func (c *QuestionController) ChoicesByPaper(ctx *gin.Context) {
	c.mirrorByPaper(ctx, model.KindChoice)
}

// JudgmentsByPaper godoc
// @Summary 按试卷名称查询用户判断题
// @Tags 题库
// @Accept json
// @Produce json
// @Param body body PaperRequest true "试卷名称，手机号可选"
// @Success 200 {object} util.Response{data=[]service.MirrorItem}
// @Router /api/judgments/by-paper [post]
func (c *QuestionController) JudgmentsByPaper(ctx *gin.Context) {
	c.mirrorByPaper(ctx, model.KindJudgment)
}

// BlanksByPaper godoc
// @Summary 按试卷名称查询用户填空题
// @Tags 题库
// @Accept json
// @Produce json
// @Param body body PaperRequest true "试卷名称，手机号可选"
// @Success 200 {object} util.Response{data=[]service.MirrorItem}
// @Router /api/blanks/by-paper [post]
func (c *QuestionController) BlanksByPaper(ctx *gin.Context) {
	c.mirrorByPaper(ctx, model.KindBlank)
}

func (c *QuestionController) mirrorByPaper(ctx *gin.Context, kind model.QuestionKind) {
	var req PaperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "缺少paperName")
		return
	}

	items, err := c.service.MirrorByPaper(ctx.Request.Context(), kind, req.PaperName, req.PhoneNumber)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

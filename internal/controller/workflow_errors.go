package controller

import (
	"context"
	"errors"
	"net/http"

	"exam_ai_backend/internal/service"
	"exam_ai_backend/internal/util"
	"exam_ai_backend/pkg/coze"
	"exam_ai_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InterruptResponse 工作流中断时返回给前端，用于调用续跑接口
type InterruptResponse struct {
	EventID       string `json:"eventId"`
	InterruptType int    `json:"interruptType"`
	NodeTitle     string `json:"nodeTitle,omitempty"`
	Partial       string `json:"partial,omitempty"`
}

// respondWorkflowError 把工作流调用和同步过程中的错误映射为 HTTP 响应
func respondWorkflowError(ctx *gin.Context, err error, data interface{}) {
	var (
		interrupt *coze.InterruptError
		wfErr     *coze.WorkflowError
		apiErr    *coze.APIError
	)

	switch {
	case errors.Is(err, service.ErrOwnerRequired), errors.Is(err, service.ErrContentRequired):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrWorkflowDisabled):
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, util.ErrInterruptNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInterruptOwner):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.As(err, &interrupt):
		util.ErrorWithData(ctx, http.StatusConflict, "工作流需要补充信息后继续", InterruptResponse{
			EventID:       interrupt.EventID,
			InterruptType: interrupt.Type,
			NodeTitle:     interrupt.NodeTitle,
			Partial:       interrupt.Partial,
		})
	case errors.As(err, &wfErr):
		util.Error(ctx, http.StatusBadGateway, wfErr.Error())
	case errors.As(err, &apiErr):
		logger.Log.Error("Coze API error", zap.Int("status", apiErr.StatusCode), zap.Int("code", apiErr.Code), zap.String("log_id", apiErr.LogID))
		util.Error(ctx, http.StatusBadGateway, "调用工作流失败: "+apiErr.Msg)
	case errors.Is(err, context.DeadlineExceeded):
		util.Error(ctx, http.StatusGatewayTimeout, "工作流调用超时")
	case errors.Is(err, service.ErrSyncTotalFailure):
		logger.Log.Error("Question sync failed", zap.Error(err))
		util.ErrorWithData(ctx, http.StatusInternalServerError, err.Error(), data)
	default:
		util.LogInternalError(ctx, err)
	}
}

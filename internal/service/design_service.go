package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/util"
	"exam_ai_backend/pkg/coze"
	"exam_ai_backend/pkg/logger"
	"exam_ai_backend/pkg/tracing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultDesignResumeDepth = 3

// ErrInvalidDesignRecord 最近的教学设计记录中没有可用的 https 链接
var ErrInvalidDesignRecord = errors.New("记录中未包含有效的https链接")

type designRecordStore interface {
	Create(ctx context.Context, record *model.WorkflowRecord) error
	LatestWithURL(ctx context.Context, kind model.WorkflowKind) (*model.WorkflowRecord, error)
}

// DesignService 教学设计工作流。中断总是自动续跑，每次调用无论成败都会记录。
type DesignService struct {
	Gateway  coze.Gateway
	Settings *WorkflowSettings
	Records  designRecordStore
}

func NewDesignService(gateway coze.Gateway, settings *WorkflowSettings, records designRecordStore) *DesignService {
	return &DesignService{Gateway: gateway, Settings: settings, Records: records}
}

func (s *DesignService) Generate(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrContentRequired
	}

	cfg := s.Settings.Get()
	if cfg.DesignWorkflowID == "" {
		return "", util.ErrWorkflowDisabled
	}

	ctx, span := tracing.Tracer.Start(ctx, "DesignService.Generate")
	defer span.End()

	policy := drainPolicy(cfg)
	policy.AutoResume = true
	if policy.MaxResumeDepth <= 0 {
		policy.MaxResumeDepth = defaultDesignResumeDepth
	}

	output, err := runWorkflow(ctx, s.Gateway, cfg, model.WorkflowDesign, cfg.DesignWorkflowID, policy,
		func(ctx context.Context) (*coze.EventStream, error) {
			return s.Gateway.Run(ctx, cfg.DesignWorkflowID, map[string]interface{}{"input": content})
		})

	record := &model.WorkflowRecord{
		Kind:      model.WorkflowDesign,
		UserInput: content,
		Response:  output,
		Success:   err == nil,
		CreatedAt: time.Now(),
	}
	if err != nil {
		span.RecordError(err)
		record.Response = err.Error()
	}
	// 记录失败不影响返回结果
	if recErr := s.Records.Create(ctx, record); recErr != nil {
		logger.Log.Error("Failed to record design workflow", zap.Error(recErr))
	}

	if err != nil {
		logger.Log.Error("Design workflow failed", zap.Error(err))
		return "", err
	}
	return output, nil
}

// LatestDocumentURL 最近一次教学设计生成的文档链接，记录格式为 {"output":"https://..."}
func (s *DesignService) LatestDocumentURL(ctx context.Context) (string, error) {
	record, err := s.Records.LatestWithURL(ctx, model.WorkflowDesign)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.ErrNoDesignRecord
	}
	if err != nil {
		return "", err
	}

	var payload struct {
		Output string `json:"output"`
	}
	if err := json.Unmarshal([]byte(record.Response), &payload); err != nil {
		logger.Log.Warn("Design record is not valid JSON", zap.Uint("id", record.ID), zap.Error(err))
		return "", ErrInvalidDesignRecord
	}
	if !strings.HasPrefix(payload.Output, "https://") {
		return "", ErrInvalidDesignRecord
	}
	return payload.Output, nil
}

package service

import (
	"context"
	"sync"
	"time"

	"exam_ai_backend/internal/config"
	"exam_ai_backend/internal/model"
	"exam_ai_backend/pkg/coze"
	"exam_ai_backend/pkg/monitoring"
)

// WorkflowSettings 运行时可热更新的工作流配置
type WorkflowSettings struct {
	mu  sync.RWMutex
	cfg config.WorkflowConfig
}

func NewWorkflowSettings(cfg config.WorkflowConfig) *WorkflowSettings {
	return &WorkflowSettings{cfg: cfg}
}

func (s *WorkflowSettings) Get() config.WorkflowConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *WorkflowSettings) Update(cfg config.WorkflowConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func drainPolicy(cfg config.WorkflowConfig) coze.DrainPolicy {
	return coze.DrainPolicy{
		AutoResume:     cfg.AutoResume,
		ResumeData:     cfg.ResumeData,
		MaxResumeDepth: cfg.MaxResumeDepth,
	}
}

// runWorkflow 在超时控制下打开事件流并读完，记录调用结果指标
func runWorkflow(
	ctx context.Context,
	resumer coze.Resumer,
	cfg config.WorkflowConfig,
	kind model.WorkflowKind,
	workflowID string,
	policy coze.DrainPolicy,
	open func(ctx context.Context) (*coze.EventStream, error),
) (string, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	stream, err := open(ctx)
	if err != nil {
		monitoring.ObserveWorkflow(string(kind), "error", started)
		return "", err
	}

	output, err := coze.Drain(ctx, stream, workflowID, resumer, policy)
	monitoring.ObserveWorkflow(string(kind), workflowOutcome(err), started)
	return output, err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"exam_ai_backend/internal/exam"
	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/repository"
	"exam_ai_backend/internal/util"
	"exam_ai_backend/pkg/coze"
	"exam_ai_backend/pkg/logger"
	"exam_ai_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var ErrContentRequired = errors.New("生成需求不能为空")

const (
	msgGenerated   = "数据处理成功"
	msgNoQuestions = "未解析到试题"
)

// InterruptStore 暂存等待续跑的工作流中断
type InterruptStore interface {
	Save(ctx context.Context, p *model.PendingInterrupt) error
	Take(ctx context.Context, eventID string) (*model.PendingInterrupt, error)
}

// Archiver 归档工作流原始输出
type Archiver interface {
	ArchiveWorkflowOutput(ctx context.Context, kind model.WorkflowKind, content string) (string, error)
}

type GenerationResult struct {
	Content string      `json:"content"`
	Report  *SyncReport `json:"report,omitempty"`
	Archive string      `json:"archive,omitempty"`
	Message string      `json:"-"`
}

// GenerationService 调用出题工作流，解析输出并同步到题库
type GenerationService struct {
	Gateway    coze.Gateway
	Settings   *WorkflowSettings
	Sync       *SyncService
	Interrupts InterruptStore
	Archiver   Archiver
	Notifier   *GenerationNotifier
}

func NewGenerationService(
	gateway coze.Gateway,
	settings *WorkflowSettings,
	sync *SyncService,
	interrupts InterruptStore,
	archiver Archiver,
	notifier *GenerationNotifier,
) *GenerationService {
	return &GenerationService{
		Gateway:    gateway,
		Settings:   settings,
		Sync:       sync,
		Interrupts: interrupts,
		Archiver:   archiver,
		Notifier:   notifier,
	}
}

// Generate 运行出题工作流。工作流中断时保存中断信息并返回 *coze.InterruptError。
func (s *GenerationService) Generate(ctx context.Context, owner, content string) (*GenerationResult, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	cfg := s.Settings.Get()
	if cfg.ExamWorkflowID == "" {
		return nil, util.ErrWorkflowDisabled
	}

	ctx, span := tracing.Tracer.Start(ctx, "GenerationService.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("workflow.id", cfg.ExamWorkflowID))

	logger.Log.Info("Generation requested", logger.Phone(owner), zap.String("content", logger.Truncate(content, 100)))

	output, err := runWorkflow(ctx, s.Gateway, cfg, model.WorkflowExam, cfg.ExamWorkflowID, drainPolicy(cfg),
		func(ctx context.Context) (*coze.EventStream, error) {
			return s.Gateway.Run(ctx, cfg.ExamWorkflowID, map[string]interface{}{"input": content})
		})
	if err != nil {
		span.RecordError(err)
		return nil, s.handleRunError(ctx, err, &model.PendingInterrupt{
			WorkflowID:  cfg.ExamWorkflowID,
			Kind:        model.WorkflowExam,
			PhoneNumber: owner,
			UserInput:   content,
		})
	}
	return s.process(ctx, owner, content, output)
}

// Resume 用用户的回复续跑之前中断的工作流，成功后与 Generate 一样解析和同步
func (s *GenerationService) Resume(ctx context.Context, owner, eventID, resumeData string) (*GenerationResult, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}

	pending, err := s.Interrupts.Take(ctx, eventID)
	if errors.Is(err, repository.ErrInterruptMissing) {
		return nil, util.ErrInterruptNotFound
	}
	if err != nil {
		return nil, err
	}
	if pending.PhoneNumber != owner {
		s.restoreInterrupt(ctx, pending)
		return nil, util.ErrInterruptOwner
	}

	cfg := s.Settings.Get()
	if strings.TrimSpace(resumeData) == "" {
		resumeData = drainPolicy(cfg).ResumeData
		if resumeData == "" {
			resumeData = coze.DefaultResumeData
		}
	}

	ctx, span := tracing.Tracer.Start(ctx, "GenerationService.Resume")
	defer span.End()

	output, err := runWorkflow(ctx, s.Gateway, cfg, model.WorkflowExam, pending.WorkflowID, drainPolicy(cfg),
		func(ctx context.Context) (*coze.EventStream, error) {
			return s.Gateway.Resume(ctx, coze.ResumeRequest{
				WorkflowID:    pending.WorkflowID,
				EventID:       pending.EventID,
				ResumeData:    resumeData,
				InterruptType: pending.InterruptType,
			})
		})
	if err != nil {
		span.RecordError(err)
		var interrupt *coze.InterruptError
		if errors.As(err, &interrupt) {
			interrupt.Partial = pending.Partial + interrupt.Partial
		} else {
			// 上游失败时中断仍然有效，放回去让客户端重试
			s.restoreInterrupt(ctx, pending)
		}
		return nil, s.handleRunError(ctx, err, &model.PendingInterrupt{
			WorkflowID:  pending.WorkflowID,
			Kind:        pending.Kind,
			PhoneNumber: owner,
			UserInput:   pending.UserInput,
		})
	}
	return s.process(ctx, owner, pending.UserInput, pending.Partial+output)
}

// restoreInterrupt 把取出的中断放回存储。请求超时后 ctx 可能已取消，写入不跟随它。
func (s *GenerationService) restoreInterrupt(ctx context.Context, pending *model.PendingInterrupt) {
	if err := s.Interrupts.Save(context.WithoutCancel(ctx), pending); err != nil {
		logger.Log.Error("Failed to restore interrupt", zap.String("event_id", pending.EventID), zap.Error(err))
	}
}

func (s *GenerationService) handleRunError(ctx context.Context, err error, pending *model.PendingInterrupt) error {
	var interrupt *coze.InterruptError
	if !errors.As(err, &interrupt) {
		logger.Log.Error("Workflow run failed", logger.Phone(pending.PhoneNumber), zap.Error(err))
		s.notify(pending.PhoneNumber, pending.UserInput, err.Error(), false)
		return err
	}

	pending.EventID = interrupt.EventID
	pending.InterruptType = interrupt.Type
	pending.Partial = interrupt.Partial
	pending.CreatedAt = time.Now()
	if saveErr := s.Interrupts.Save(ctx, pending); saveErr != nil {
		return fmt.Errorf("save interrupt %s: %w", interrupt.EventID, saveErr)
	}
	logger.Log.Info("Workflow interrupted",
		logger.Phone(pending.PhoneNumber),
		zap.String("event_id", interrupt.EventID),
		zap.Int("interrupt_type", interrupt.Type))
	return interrupt
}

// process 解析工作流输出并同步。输出无法解析时不同步，只返回原始内容。
func (s *GenerationService) process(ctx context.Context, owner, userInput, output string) (*GenerationResult, error) {
	result := &GenerationResult{Content: output, Message: msgGenerated}
	result.Archive = s.archive(ctx, output)

	parts, err := exam.SplitWorkflowOutput(output)
	if err != nil {
		logger.Log.Warn("Workflow output is not a JSON object", logger.Phone(owner), zap.Error(err))
		result.Message = msgNoQuestions
		s.notify(owner, userInput, output, true)
		return result, nil
	}

	batches := make(map[model.QuestionKind][]model.QuestionRecord, len(model.QuestionKinds))
	for _, kind := range model.QuestionKinds {
		records, err := exam.Normalize(kind, parts[kind])
		if err != nil {
			logger.Log.Warn("Failed to parse questions", zap.String("type", string(kind)), zap.Error(err))
		}
		batches[kind] = records
	}

	report, err := s.Sync.Sync(ctx, owner, batches)
	result.Report = report
	s.notify(owner, userInput, output, err == nil)
	if err != nil {
		result.Message = err.Error()
		return result, err
	}
	return result, nil
}

func (s *GenerationService) archive(ctx context.Context, output string) string {
	if s.Archiver == nil || output == "" {
		return ""
	}
	url, err := s.Archiver.ArchiveWorkflowOutput(ctx, model.WorkflowExam, output)
	if err != nil {
		logger.Log.Warn("Failed to archive workflow output", zap.Error(err))
		return ""
	}
	return url
}

func (s *GenerationService) notify(owner, userInput, response string, success bool) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Publish(GenerationEvent{
		PhoneNumber: owner,
		UserInput:   userInput,
		Response:    response,
		Success:     success,
		At:          time.Now(),
	})
}

func workflowOutcome(err error) string {
	var interrupt *coze.InterruptError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &interrupt):
		return "interrupted"
	default:
		return "error"
	}
}

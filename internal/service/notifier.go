package service

import (
	"context"
	"sync"
	"time"

	"exam_ai_backend/internal/model"
	"exam_ai_backend/pkg/logger"

	"go.uber.org/zap"
)

// GenerationEvent 一次试题生成请求的结果
type GenerationEvent struct {
	PhoneNumber string
	UserInput   string
	Response    string
	Success     bool
	At          time.Time
}

// GenerationNotifier 单槽通知：未被读取的旧事件会被新事件替换，只支持一个消费者
type GenerationNotifier struct {
	mu sync.Mutex
	ch chan GenerationEvent
}

func NewGenerationNotifier() *GenerationNotifier {
	return &GenerationNotifier{ch: make(chan GenerationEvent, 1)}
}

// Publish 不阻塞，槽位被占用时丢弃旧事件
func (n *GenerationNotifier) Publish(ev GenerationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	select {
	case n.ch <- ev:
		return
	default:
	}

	select {
	case old := <-n.ch:
		logger.Log.Debug("Generation event replaced", logger.Phone(old.PhoneNumber))
	default:
	}
	n.ch <- ev
}

func (n *GenerationNotifier) Events() <-chan GenerationEvent {
	return n.ch
}

type workflowRecordWriter interface {
	Create(ctx context.Context, record *model.WorkflowRecord) error
}

// GenerationRecorder 消费生成事件并写入 workflow_records
type GenerationRecorder struct {
	Notifier *GenerationNotifier
	Repo     workflowRecordWriter
}

func NewGenerationRecorder(notifier *GenerationNotifier, repo workflowRecordWriter) *GenerationRecorder {
	return &GenerationRecorder{Notifier: notifier, Repo: repo}
}

// Run 阻塞直到 ctx 结束
func (r *GenerationRecorder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.Notifier.Events():
			record := &model.WorkflowRecord{
				Kind:        model.WorkflowExam,
				PhoneNumber: ev.PhoneNumber,
				UserInput:   ev.UserInput,
				Response:    ev.Response,
				Success:     ev.Success,
				CreatedAt:   ev.At,
			}
			if err := r.Repo.Create(ctx, record); err != nil {
				logger.Log.Error("Failed to record generation", logger.Phone(ev.PhoneNumber), zap.Error(err))
			}
		}
	}
}

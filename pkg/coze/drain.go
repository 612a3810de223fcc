package coze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultResumeData 自动续跑时回复给工作流的内容
const DefaultResumeData = "请继续完成内容生成"

// DrainPolicy 控制遇到中断时的处理方式
type DrainPolicy struct {
	AutoResume     bool
	ResumeData     string
	MaxResumeDepth int
}

// Resumer 继续一个被中断的工作流
type Resumer interface {
	Resume(ctx context.Context, req ResumeRequest) (*EventStream, error)
}

type APIError struct {
	StatusCode int
	Code       int
	Msg        string
	LogID      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coze api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Msg)
}

// WorkflowError 事件流中的 Error 事件
type WorkflowError struct {
	Code    int
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("工作流错误: [%d] %s", e.Code, e.Message)
}

// InterruptError 工作流暂停，需要调用 Resume 并提供回复内容。Partial 为中断前已收到的内容。
type InterruptError struct {
	WorkflowID string
	EventID    string
	Type       int
	NodeTitle  string
	Partial    string
}

func (e *InterruptError) Error() string {
	return fmt.Sprintf("workflow %s interrupted at event %s", e.WorkflowID, e.EventID)
}

// Drain 按到达顺序拼接 Message 内容直到流结束。
// Error 事件返回 *WorkflowError；Interrupt 事件在允许自动续跑且未超过深度时递归续跑，
// 否则返回 *InterruptError。
func Drain(ctx context.Context, stream *EventStream, workflowID string, resumer Resumer, policy DrainPolicy) (string, error) {
	return drain(ctx, stream, workflowID, resumer, policy, 0)
}

func drain(ctx context.Context, stream *EventStream, workflowID string, resumer Resumer, policy DrainPolicy, depth int) (string, error) {
	defer stream.Close()

	var sb strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return sb.String(), err
		}

		ev, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return sb.String(), ctxErr
			}
			return sb.String(), fmt.Errorf("read workflow stream: %w", err)
		}

		switch ev.Kind {
		case EventMessage:
			sb.WriteString(ev.Message.Content)
		case EventError:
			return sb.String(), &WorkflowError{Code: ev.Error.Code, Message: ev.Error.Message}
		case EventInterrupt:
			interrupt := &InterruptError{
				WorkflowID: workflowID,
				EventID:    ev.Interrupt.Data.EventID,
				Type:       ev.Interrupt.Data.Type,
				NodeTitle:  ev.Interrupt.NodeTitle,
				Partial:    sb.String(),
			}
			if !policy.AutoResume || resumer == nil || depth >= policy.MaxResumeDepth {
				return sb.String(), interrupt
			}

			resumed, err := resumer.Resume(ctx, ResumeRequest{
				WorkflowID:    workflowID,
				EventID:       interrupt.EventID,
				ResumeData:    resumeData(policy),
				InterruptType: interrupt.Type,
			})
			if err != nil {
				return sb.String(), err
			}
			rest, err := drain(ctx, resumed, workflowID, resumer, policy, depth+1)
			sb.WriteString(rest)
			if err != nil {
				var nested *InterruptError
				if errors.As(err, &nested) {
					nested.Partial = sb.String()
				}
				return sb.String(), err
			}
		case EventDone:
			return sb.String(), nil
		}
	}
}

func resumeData(policy DrainPolicy) string {
	if policy.ResumeData != "" {
		return policy.ResumeData
	}
	return DefaultResumeData
}

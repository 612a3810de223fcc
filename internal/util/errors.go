package util

import "errors"

var (
	ErrPaperNotFound     = errors.New("试卷不存在")
	ErrInterruptNotFound = errors.New("中断事件不存在或已过期")
	ErrInterruptOwner    = errors.New("中断事件不属于该用户")
	ErrNoDesignRecord    = errors.New("暂无教学设计记录")
	ErrWorkflowDisabled  = errors.New("工作流未配置")
)

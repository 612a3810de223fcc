package model

import "time"

type WorkflowKind string

const (
	WorkflowExam   WorkflowKind = "exam"
	WorkflowDesign WorkflowKind = "design"
)

// WorkflowRecord 工作流调用记录（用户输入与工作流返回）
type WorkflowRecord struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind        WorkflowKind `gorm:"type:varchar(20);index" json:"kind"`
	PhoneNumber string       `gorm:"type:varchar(20)" json:"phoneNumber,omitempty"`
	UserInput   string       `gorm:"type:text" json:"userInput"`
	Response    string       `gorm:"type:longtext" json:"response"`
	Success     bool         `json:"success"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (WorkflowRecord) TableName() string { return "workflow_records" }

// PendingInterrupt 等待续跑的工作流中断，保存在 Redis 中
type PendingInterrupt struct {
	EventID       string       `json:"eventId"`
	InterruptType int          `json:"interruptType"`
	WorkflowID    string       `json:"workflowId"`
	Kind          WorkflowKind `json:"kind"`
	PhoneNumber   string       `json:"phoneNumber"`
	UserInput     string       `json:"userInput"`
	Partial       string       `json:"partial"`
	CreatedAt     time.Time    `json:"createdAt"`
}

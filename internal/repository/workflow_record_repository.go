package repository

import (
	"context"

	"exam_ai_backend/internal/model"

	"gorm.io/gorm"
)

type WorkflowRecordRepository struct {
	DB *gorm.DB
}

func NewWorkflowRecordRepository(db *gorm.DB) *WorkflowRecordRepository {
	return &WorkflowRecordRepository{DB: db}
}

func (r *WorkflowRecordRepository) Create(ctx context.Context, record *model.WorkflowRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// LatestWithURL 最近一条输出中包含 https 链接的成功记录
func (r *WorkflowRecordRepository) LatestWithURL(ctx context.Context, kind model.WorkflowKind) (*model.WorkflowRecord, error) {
	var record model.WorkflowRecord
	err := r.DB.WithContext(ctx).
		Where("kind = ? AND success = ? AND response LIKE ?", kind, true, `%"output":"https://%`).
		Order("id DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

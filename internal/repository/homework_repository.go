package repository

import (
	"context"

	"exam_ai_backend/internal/model"

	"gorm.io/gorm"
)

type HomeworkRepository struct {
	DB *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) *HomeworkRepository {
	return &HomeworkRepository{DB: db}
}

func (r *HomeworkRepository) Create(ctx context.Context, hw *model.Homework) error {
	return r.DB.WithContext(ctx).Create(hw).Error
}

// FindByPaperName 同名试卷取最早发布的一条
func (r *HomeworkRepository) FindByPaperName(ctx context.Context, paperName string) (*model.Homework, error) {
	var hw model.Homework
	err := r.DB.WithContext(ctx).Where("paper_name = ?", paperName).Order("id ASC").First(&hw).Error
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

func (r *HomeworkRepository) DistinctPaperNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.DB.WithContext(ctx).Model(&model.Homework{}).Distinct("paper_name").Pluck("paper_name", &names).Error
	return names, err
}

package service

import (
	"context"
	"errors"
	"strings"

	"exam_ai_backend/internal/model"
	"exam_ai_backend/pkg/logger"

	"go.uber.org/zap"
)

var ErrHomeworkFieldsRequired = errors.New("参数不能为空")

type homeworkCreator interface {
	Create(ctx context.Context, hw *model.Homework) error
}

type HomeworkService struct {
	Repo homeworkCreator
}

func NewHomeworkService(repo homeworkCreator) *HomeworkService {
	return &HomeworkService{Repo: repo}
}

// Publish 发布作业，五个字段都不能为空
func (s *HomeworkService) Publish(ctx context.Context, hw *model.Homework) error {
	hw.ClassName = strings.TrimSpace(hw.ClassName)
	hw.PaperName = strings.TrimSpace(hw.PaperName)
	hw.ChoicePaperID = strings.TrimSpace(hw.ChoicePaperID)
	hw.JudgePaperID = strings.TrimSpace(hw.JudgePaperID)
	hw.BlankPaperID = strings.TrimSpace(hw.BlankPaperID)

	for _, v := range []string{hw.ClassName, hw.PaperName, hw.ChoicePaperID, hw.JudgePaperID, hw.BlankPaperID} {
		if v == "" {
			return ErrHomeworkFieldsRequired
		}
	}

	if err := s.Repo.Create(ctx, hw); err != nil {
		return err
	}
	logger.Log.Info("Homework published",
		zap.Uint("id", hw.ID),
		zap.String("class", hw.ClassName),
		zap.String("paper", hw.PaperName))
	return nil
}

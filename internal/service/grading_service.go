package service

import (
	"context"
	"errors"
	"strconv"

	"exam_ai_backend/internal/exam"
	"exam_ai_backend/internal/grading"
	"exam_ai_backend/internal/model"
	"exam_ai_backend/pkg/logger"
	"exam_ai_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CanonicalFinder 按ID查询题库中的题目
type CanonicalFinder interface {
	FindCanonicalByID(ctx context.Context, kind model.QuestionKind, id uint) (*model.QuestionRecord, error)
}

var gradingKinds = map[grading.QuestionType]model.QuestionKind{
	grading.TypeChoice: model.KindChoice,
	grading.TypeFill:   model.KindBlank,
	grading.TypeJudge:  model.KindJudgment,
}

// answerLookup 从题库读取标准答案，选择题答案统一换算为选项键
type answerLookup struct {
	finder CanonicalFinder
}

func (l answerLookup) CorrectAnswer(ctx context.Context, id string, qt grading.QuestionType) (string, bool, error) {
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil || n == 0 {
		return "", false, nil
	}

	kind := gradingKinds[qt]
	rec, err := l.finder.FindCanonicalByID(ctx, kind, uint(n))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Warn("Question not found for grading", zap.String("type", string(qt)), zap.String("id", id))
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if kind != model.KindChoice {
		return rec.Answer, true, nil
	}
	key, ok := exam.ResolveAnswerKey(rec.Answer, exam.ParseOptions(rec.Options))
	if !ok {
		logger.Log.Warn("Answer key not resolved", zap.Uint("id", rec.ID), zap.String("answer", rec.Answer))
	}
	return key, true, nil
}

type GradingService struct {
	Engine *grading.Engine
}

func NewGradingService(finder CanonicalFinder) *GradingService {
	return &GradingService{Engine: grading.NewEngine(answerLookup{finder: finder})}
}

func (s *GradingService) Submit(ctx context.Context, items []grading.Item) (*grading.Result, error) {
	result, err := s.Engine.Grade(ctx, items)
	if err != nil {
		return nil, err
	}

	for _, d := range result.Detail {
		if qt, ok := grading.ParseQuestionType(d.QuestionType.Text); ok {
			monitoring.ObserveGrade(string(qt), d.IsCorrect)
		}
	}
	logger.Log.Info("Submission graded",
		zap.Int("total", result.TotalQuestions),
		zap.Int("score", result.TotalScore),
		zap.String("accuracy", result.Accuracy))
	return result, nil
}

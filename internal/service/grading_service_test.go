package service

import (
	"context"
	"errors"
	"testing"

	"exam_ai_backend/internal/grading"
	"exam_ai_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFinder map[model.QuestionKind]map[uint]model.QuestionRecord

func (f stubFinder) FindCanonicalByID(_ context.Context, kind model.QuestionKind, id uint) (*model.QuestionRecord, error) {
	if kind == "" {
		return nil, errors.New("unexpected kind")
	}
	rec, ok := f[kind][id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

func TestGradingServiceResolvesChoiceText(t *testing.T) {
	svc := NewGradingService(stubFinder{
		model.KindChoice: {
			1: {ID: 1, Options: "A. function B. def C. create D. make", Answer: "def"},
			2: {ID: 2, Options: "A. 1 B. 2", Answer: "A"},
		},
		model.KindJudgment: {
			3: {ID: 3, Answer: "对。"},
		},
	})

	res, err := svc.Submit(context.Background(), []grading.Item{
		{QuestionID: grading.Text("1"), UserAnswer: grading.Text("b"), QuestionType: grading.Text("choice")},
		{QuestionID: grading.Text("2"), UserAnswer: grading.Text("A"), QuestionType: grading.Text("choice")},
		{QuestionID: grading.Text("3"), UserAnswer: grading.Text("true"), QuestionType: grading.Text("judge")},
		{QuestionID: grading.Text("x"), UserAnswer: grading.Text("A"), QuestionType: grading.Text("choice")},
	})
	require.NoError(t, err)

	assert.Equal(t, "B", res.Detail[0].CorrectAnswer)
	assert.True(t, res.Detail[0].IsCorrect)
	assert.True(t, res.Detail[1].IsCorrect)
	assert.True(t, res.Detail[2].IsCorrect)
	assert.Equal(t, "未找到ID=x的choice类型题目", res.Detail[3].Error)
	assert.Equal(t, "75.0%", res.Accuracy)
}

func TestGradingServiceEmpty(t *testing.T) {
	_, err := NewGradingService(stubFinder{}).Submit(context.Background(), []grading.Item{})
	assert.ErrorIs(t, err, grading.ErrEmptySubmission)
}

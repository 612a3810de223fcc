package grading

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup map[QuestionType]map[string]string

func (s stubLookup) CorrectAnswer(_ context.Context, id string, qt QuestionType) (string, bool, error) {
	ans, ok := s[qt][id]
	return ans, ok, nil
}

func newStubEngine() *Engine {
	return NewEngine(stubLookup{
		TypeChoice: {"1": "A", "2": "C"},
		TypeFill:   {"3": "#"},
		TypeJudge:  {"4": "true", "5": "false", "6": "对。"},
	})
}

func TestGradeChoiceCaseInsensitive(t *testing.T) {
	res, err := newStubEngine().Grade(context.Background(), []Item{
		{QuestionID: Text("1"), UserAnswer: Text("a"), QuestionType: Text("choice")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalScore)
	assert.True(t, res.Detail[0].IsCorrect)
	assert.Equal(t, "A", res.Detail[0].CorrectAnswer)
	assert.Equal(t, "100.0%", res.Accuracy)
}

func TestGradeJudgment(t *testing.T) {
	res, err := newStubEngine().Grade(context.Background(), []Item{
		{QuestionID: Text("4"), UserAnswer: Text("对"), QuestionType: Text("judgment")},
		{QuestionID: Text("5"), UserAnswer: Text("对"), QuestionType: Text("judge")},
		{QuestionID: Text("6"), UserAnswer: Text("true"), QuestionType: Text("judge")},
	})
	require.NoError(t, err)
	assert.True(t, res.Detail[0].IsCorrect)
	assert.False(t, res.Detail[1].IsCorrect)
	assert.True(t, res.Detail[2].IsCorrect)
}

func TestGradeAccuracy(t *testing.T) {
	res, err := newStubEngine().Grade(context.Background(), []Item{
		{QuestionID: Text("1"), UserAnswer: Text("A"), QuestionType: Text("choice")},
		{QuestionID: Text("2"), UserAnswer: Text("c "), QuestionType: Text("radio")},
		{QuestionID: Text("3"), UserAnswer: Text(" # "), QuestionType: Text("fill")},
		{QuestionID: Text("4"), UserAnswer: Text("错"), QuestionType: Text("judge")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalScore)
	assert.Equal(t, 4, res.TotalQuestions)
	assert.Equal(t, "75.0%", res.Accuracy)
}

func TestGradeEmptySubmission(t *testing.T) {
	res, err := newStubEngine().Grade(context.Background(), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestGradeSoftFailures(t *testing.T) {
	res, err := newStubEngine().Grade(context.Background(), []Item{
		{QuestionID: Text("1"), QuestionType: Text("choice")},
		{QuestionID: Text("99"), UserAnswer: Text("A"), QuestionType: Text("choice")},
		{QuestionID: Text("1"), UserAnswer: Text("A"), QuestionType: Text("essay")},
		{QuestionID: Text("1"), UserAnswer: Text("A"), QuestionType: Text("choice")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalScore)
	assert.Equal(t, missingFieldsMessage, res.Detail[0].Error)
	assert.Equal(t, "未找到ID=99的choice类型题目", res.Detail[1].Error)
	assert.Contains(t, res.Detail[2].Error, "essay")
	assert.Empty(t, res.Detail[3].Error)
}

func TestGradeLookupError(t *testing.T) {
	engine := NewEngine(LookupFunc(func(context.Context, string, QuestionType) (string, bool, error) {
		return "", false, errors.New("connection refused")
	}))

	res, err := engine.Grade(context.Background(), []Item{
		{QuestionID: Text("1"), UserAnswer: Text("A"), QuestionType: Text("choice")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, res)
}

func TestItemUnmarshalMixedTypes(t *testing.T) {
	var items []Item
	body := `[{"questionId":4,"userAnswer":false,"questionType":"judge"},{"questionId":"1","userAnswer":"","questionType":"choice"}]`
	require.NoError(t, json.Unmarshal([]byte(body), &items))

	assert.Equal(t, Value{Text: "4", Set: true}, items[0].QuestionID)
	assert.Equal(t, Value{Text: "false", Set: true}, items[0].UserAnswer)
	assert.False(t, items[1].UserAnswer.Set)

	res, err := newStubEngine().Grade(context.Background(), items)
	require.NoError(t, err)
	assert.False(t, res.Detail[0].IsCorrect)
	assert.Equal(t, missingFieldsMessage, res.Detail[1].Error)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, "0.0%", Accuracy(0, 0))
	assert.Equal(t, "33.3%", Accuracy(1, 3))
	assert.Equal(t, "66.7%", Accuracy(2, 3))
}

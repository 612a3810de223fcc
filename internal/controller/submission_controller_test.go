package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"exam_ai_backend/internal/grading"
	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFinder struct {
	rows map[model.QuestionKind]map[uint]model.QuestionRecord
	err  error
}

func (f fakeFinder) FindCanonicalByID(_ context.Context, kind model.QuestionKind, id uint) (*model.QuestionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.rows[kind][id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

func submissionRouter(finder fakeFinder) http.Handler {
	r := newTestRouter()
	c := NewSubmissionController(service.NewGradingService(finder))
	r.POST("/api/submit", c.Submit)
	return r
}

func TestSubmitGradesMixedTypes(t *testing.T) {
	finder := fakeFinder{rows: map[model.QuestionKind]map[uint]model.QuestionRecord{
		model.KindChoice:   {1: {ID: 1, Options: "A. go B. rust", Answer: "A"}},
		model.KindBlank:    {2: {ID: 2, Answer: "goroutine"}},
		model.KindJudgment: {3: {ID: 3, Answer: "true"}, 4: {ID: 4, Answer: "false"}},
	}}
	body := `[
		{"questionId":"1","userAnswer":"a","questionType":"choice"},
		{"questionId":2,"userAnswer":" goroutine ","questionType":"fill"},
		{"questionId":"3","userAnswer":"对","questionType":"judgment"},
		{"questionId":"4","userAnswer":"对","questionType":"judge"}
	]`

	w, env := perform(t, submissionRouter(finder), http.MethodPost, "/api/submit", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var res grading.Result
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 3, res.TotalScore)
	assert.Equal(t, 4, res.TotalQuestions)
	assert.Equal(t, "75.0%", res.Accuracy)
	assert.False(t, res.Detail[3].IsCorrect)
}

func TestSubmitRejectsEmptyOrInvalid(t *testing.T) {
	r := submissionRouter(fakeFinder{})

	w, env := perform(t, r, http.MethodPost, "/api/submit", `[]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, grading.ErrEmptySubmission.Error(), env.Message)

	w, _ = perform(t, r, http.MethodPost, "/api/submit", `{"questionId":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitStorageFailure(t *testing.T) {
	r := submissionRouter(fakeFinder{err: errors.New("connection refused")})
	w, _ := perform(t, r, http.MethodPost, "/api/submit", `[{"questionId":"1","userAnswer":"A","questionType":"choice"}]`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

package service

import (
	"context"
	"testing"

	"exam_ai_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type homeworkSink struct {
	created []model.Homework
}

func (s *homeworkSink) Create(_ context.Context, hw *model.Homework) error {
	s.created = append(s.created, *hw)
	return nil
}

func TestPublishTrimsFields(t *testing.T) {
	sink := &homeworkSink{}
	svc := NewHomeworkService(sink)

	err := svc.Publish(context.Background(), &model.Homework{
		ClassName: " 一班 ", PaperName: "Go基础", ChoicePaperID: "P1", JudgePaperID: "P2", BlankPaperID: "P3",
	})
	require.NoError(t, err)
	require.Len(t, sink.created, 1)
	assert.Equal(t, "一班", sink.created[0].ClassName)
}

func TestPublishRejectsMissingField(t *testing.T) {
	sink := &homeworkSink{}
	svc := NewHomeworkService(sink)

	err := svc.Publish(context.Background(), &model.Homework{ClassName: "一班", PaperName: "Go基础", ChoicePaperID: "P1", JudgePaperID: "P2"})
	assert.ErrorIs(t, err, ErrHomeworkFieldsRequired)
	assert.Empty(t, sink.created)
}

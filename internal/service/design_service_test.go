package service

import (
	"context"
	"testing"

	"exam_ai_backend/internal/config"
	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/util"
	"exam_ai_backend/pkg/coze"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryRecords struct {
	records []*model.WorkflowRecord
	latest  *model.WorkflowRecord
}

func (m *memoryRecords) Create(_ context.Context, r *model.WorkflowRecord) error {
	m.records = append(m.records, r)
	return nil
}

func (m *memoryRecords) LatestWithURL(context.Context, model.WorkflowKind) (*model.WorkflowRecord, error) {
	if m.latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.latest, nil
}

func TestDesignGenerateAlwaysAutoResumes(t *testing.T) {
	gw := &fakeGateway{
		runs:    []*coze.EventStream{eventStream(messageFrame("第一部分"), interruptFrame("ev_d", 3))},
		resumes: []*coze.EventStream{eventStream(messageFrame("第二部分"))},
	}
	records := &memoryRecords{}
	svc := NewDesignService(gw, NewWorkflowSettings(config.WorkflowConfig{DesignWorkflowID: "wf_design"}), records)

	out, err := svc.Generate(context.Background(), "教学设计")
	require.NoError(t, err)
	assert.Equal(t, "第一部分第二部分", out)

	require.Len(t, gw.resumeReq, 1)
	assert.Equal(t, coze.DefaultResumeData, gw.resumeReq[0].ResumeData)
	assert.Equal(t, 3, gw.resumeReq[0].InterruptType)

	require.Len(t, records.records, 1)
	assert.True(t, records.records[0].Success)
	assert.Equal(t, model.WorkflowDesign, records.records[0].Kind)
	assert.Equal(t, "教学设计", records.records[0].UserInput)
}

func TestDesignGenerateRecordsFailure(t *testing.T) {
	gw := &fakeGateway{}
	records := &memoryRecords{}
	svc := NewDesignService(gw, NewWorkflowSettings(config.WorkflowConfig{DesignWorkflowID: "wf_design"}), records)

	_, err := svc.Generate(context.Background(), "教学设计")
	require.Error(t, err)
	require.Len(t, records.records, 1)
	assert.False(t, records.records[0].Success)
	assert.Equal(t, err.Error(), records.records[0].Response)
}

func TestDesignLatestDocumentURL(t *testing.T) {
	records := &memoryRecords{}
	svc := NewDesignService(&fakeGateway{}, NewWorkflowSettings(config.WorkflowConfig{}), records)

	_, err := svc.LatestDocumentURL(context.Background())
	assert.ErrorIs(t, err, util.ErrNoDesignRecord)

	records.latest = &model.WorkflowRecord{Response: `{"output":"https://cdn.example.com/plan.pdf"}`}
	url, err := svc.LatestDocumentURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/plan.pdf", url)

	records.latest = &model.WorkflowRecord{Response: `not json "output":"https://`}
	_, err = svc.LatestDocumentURL(context.Background())
	assert.ErrorIs(t, err, ErrInvalidDesignRecord)
}

func TestDesignRequiresWorkflow(t *testing.T) {
	svc := NewDesignService(&fakeGateway{}, NewWorkflowSettings(config.WorkflowConfig{}), &memoryRecords{})
	_, err := svc.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, util.ErrWorkflowDisabled)
}

package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBank 内存题库，事务失败时丢弃本次改动
type memoryBank struct {
	canonical map[model.QuestionKind][]model.QuestionRecord
	mirror    map[string]model.QuestionRecord
	failOn    map[model.QuestionKind]bool
	// failRow 返回 true 的行写入用户题目表时报错
	failRow   func(rec model.QuestionRecord) bool
	nextID    uint
}

func newMemoryBank() *memoryBank {
	return &memoryBank{
		canonical: map[model.QuestionKind][]model.QuestionRecord{},
		mirror:    map[string]model.QuestionRecord{},
		failOn:    map[model.QuestionKind]bool{},
	}
}

type memoryTx struct {
	bank      *memoryBank
	canonical map[model.QuestionKind][]model.QuestionRecord
	mirror    map[string]model.QuestionRecord
	nextID    uint
}

func (b *memoryBank) Transaction(_ context.Context, fn func(tx repository.QuestionBankTx) error) error {
	tx := &memoryTx{
		bank:      b,
		canonical: map[model.QuestionKind][]model.QuestionRecord{},
		mirror:    map[string]model.QuestionRecord{},
		nextID:    b.nextID,
	}
	for k, v := range b.canonical {
		tx.canonical[k] = append([]model.QuestionRecord(nil), v...)
	}
	for k, v := range b.mirror {
		tx.mirror[k] = v
	}
	if err := fn(tx); err != nil {
		return err
	}
	b.canonical, b.mirror, b.nextID = tx.canonical, tx.mirror, tx.nextID
	return nil
}

func (t *memoryTx) InsertCanonical(kind model.QuestionKind, records []model.QuestionRecord) error {
	for _, rec := range records {
		t.nextID++
		rec.ID = t.nextID
		rec.CreatedAt = time.Unix(1700000000, 0)
		t.canonical[kind] = append(t.canonical[kind], rec)
	}
	return nil
}

func (t *memoryTx) LatestCanonical(kind model.QuestionKind, limit int) ([]model.QuestionRecord, error) {
	rows := t.canonical[kind]
	out := make([]model.QuestionRecord, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}

func (t *memoryTx) InsertMirror(kind model.QuestionKind, owner string, rec model.QuestionRecord) (bool, error) {
	if t.bank.failOn[kind] || (t.bank.failRow != nil && t.bank.failRow(rec)) {
		return false, errors.New("connection reset")
	}
	key := string(kind) + "|" + owner + "|" + rec.PaperID + "|" + rec.Question
	if _, ok := t.mirror[key]; ok {
		return false, nil
	}
	t.mirror[key] = rec
	return true, nil
}

func (b *memoryBank) mirrorKeys() []string {
	keys := make([]string, 0, len(b.mirror))
	for k := range b.mirror {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sampleBatches() map[model.QuestionKind][]model.QuestionRecord {
	return map[model.QuestionKind][]model.QuestionRecord{
		model.KindChoice: {
			{PaperName: "python", PaperID: "p1", Question: "q1", Options: "A. x B. y", Answer: "A", Explanation: "e"},
			{PaperName: "python", PaperID: "p1", Question: "q2", Options: "A. x B. y", Answer: "B", Explanation: "e"},
		},
		model.KindBlank: {
			{PaperName: "python", PaperID: "p2", Question: "", Answer: "#"},
		},
		model.KindJudgment: {
			{PaperName: "python", PaperID: "p3", Question: "q4", Answer: "对。"},
		},
	}
}

func TestSyncReportsPerType(t *testing.T) {
	bank := newMemoryBank()
	svc := NewSyncService(bank, 10)

	report, err := svc.Sync(context.Background(), "13812345678", sampleBatches())
	require.NoError(t, err)
	require.Len(t, report.Types, 3)

	assert.Equal(t, TypeReport{Type: model.KindChoice, Canonical: 2, Fetched: 2, Inserted: 2}, report.Types[0])
	assert.Equal(t, TypeReport{Type: model.KindBlank, Canonical: 1, Fetched: 1, Inserted: 1}, report.Types[1])
	assert.Equal(t, 0, report.Failed())

	for _, rec := range bank.mirror {
		assert.NotEmpty(t, rec.Question)
		assert.NotEmpty(t, rec.Explanation)
		assert.NotEmpty(t, rec.Answer)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	bank := newMemoryBank()
	svc := NewSyncService(bank, 10)
	ctx := context.Background()

	_, err := svc.Sync(ctx, "13812345678", sampleBatches())
	require.NoError(t, err)
	first := bank.mirrorKeys()
	require.Len(t, first, 4)

	report, err := svc.Sync(ctx, "13812345678", sampleBatches())
	require.NoError(t, err)

	assert.Equal(t, first, bank.mirrorKeys())
	for _, tr := range report.Types {
		assert.Equal(t, 0, tr.Inserted, tr.Type)
		assert.Equal(t, 0, tr.Failed, tr.Type)
		assert.Equal(t, tr.Fetched, tr.Duplicates, tr.Type)
	}
	assert.Len(t, bank.canonical[model.KindBlank], 2)
}

func TestSyncPartialFailureCommits(t *testing.T) {
	bank := newMemoryBank()
	bank.failRow = func(rec model.QuestionRecord) bool { return rec.PaperID == "pX" }
	svc := NewSyncService(bank, 10)
	ctx := context.Background()

	_, err := svc.Sync(ctx, "13812345678", sampleBatches())
	require.NoError(t, err)

	batches := sampleBatches()
	batches[model.KindChoice] = append(batches[model.KindChoice],
		model.QuestionRecord{PaperName: "python", PaperID: "pX", Question: "q9", Options: "A. x B. y", Answer: "A"},
		model.QuestionRecord{PaperName: "python", PaperID: "p1", Question: "q10", Options: "A. x B. y", Answer: "B"},
	)

	report, err := svc.Sync(ctx, "13812345678", batches)
	require.NoError(t, err)
	require.Len(t, report.Types, 3)

	choice := report.Types[0]
	assert.Equal(t, 1, choice.Failed)
	assert.Equal(t, 1, choice.Inserted)
	assert.Equal(t, 4, choice.Duplicates)
	assert.Equal(t, 1, report.Failed())

	assert.Len(t, bank.canonical[model.KindChoice], 6)
	_, ok := bank.mirror["choice|13812345678|p1|q10"]
	assert.True(t, ok)
	_, ok = bank.mirror["choice|13812345678|pX|q9"]
	assert.False(t, ok)
	_, ok = bank.mirror["choice|13812345678|p1|q1"]
	assert.True(t, ok)
}

func TestSyncMirrorsOnlyLatest(t *testing.T) {
	bank := newMemoryBank()
	svc := NewSyncService(bank, 1)

	report, err := svc.Sync(context.Background(), "13812345678", sampleBatches())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Types[0].Canonical)
	assert.Equal(t, 1, report.Types[0].Fetched)

	_, ok := bank.mirror["choice|13812345678|p1|q2"]
	assert.True(t, ok)
	_, ok = bank.mirror["choice|13812345678|p1|q1"]
	assert.False(t, ok)
}

func TestSyncTotalFailureRollsBackOnlyThatType(t *testing.T) {
	bank := newMemoryBank()
	bank.failOn[model.KindBlank] = true
	svc := NewSyncService(bank, 10)

	report, err := svc.Sync(context.Background(), "13812345678", sampleBatches())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncTotalFailure)
	assert.Equal(t, "填空题同步全部失败", err.Error())

	require.Len(t, report.Types, 2)
	assert.Equal(t, 1, report.Types[1].Failed)

	assert.Len(t, bank.canonical[model.KindChoice], 2)
	assert.Empty(t, bank.canonical[model.KindBlank])
	assert.Empty(t, bank.canonical[model.KindJudgment])
	assert.Len(t, bank.mirror, 2)
}

func TestSyncRequiresOwner(t *testing.T) {
	_, err := NewSyncService(newMemoryBank(), 10).Sync(context.Background(), "  ", sampleBatches())
	assert.ErrorIs(t, err, ErrOwnerRequired)
}

func TestMirrorDefaults(t *testing.T) {
	blank := model.QuestionRecord{}
	digest := placeholderDigest(model.KindChoice, blank)
	require.Len(t, digest, 12)

	rec := mirrorDefaults(model.KindChoice, blank)
	assert.Equal(t, "未命名试卷_"+digest, rec.PaperName)
	assert.Equal(t, "PAPER_"+digest, rec.PaperID)
	assert.Equal(t, "选择题_"+digest+"_无描述", rec.Question)
	assert.Equal(t, "无选项", rec.Options)
	assert.Equal(t, "无", rec.Answer)
	assert.Equal(t, "无解析", rec.Explanation)

	judge := model.QuestionRecord{ID: 42, CreatedAt: time.Unix(1700000000, 0), PaperID: "p3", Answer: "对"}
	rec = mirrorDefaults(model.KindJudgment, judge)
	assert.Equal(t, "p3", rec.PaperID)
	assert.Empty(t, rec.Options)
	assert.Equal(t, "对", rec.Answer)

	again := judge
	again.ID, again.CreatedAt = 99, time.Unix(1800000000, 0)
	assert.Equal(t, rec.Question, mirrorDefaults(model.KindJudgment, again).Question)

	other := judge
	other.Answer = "错"
	assert.NotEqual(t, rec.Question, mirrorDefaults(model.KindJudgment, other).Question)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"exam_ai_backend/internal/exam"
	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/repository"
	"exam_ai_backend/pkg/logger"
	"exam_ai_backend/pkg/monitoring"
	"exam_ai_backend/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	// ErrSyncTotalFailure 某一题型的同步全部失败，该题型的事务已回滚
	ErrSyncTotalFailure = errors.New("同步全部失败")
	ErrOwnerRequired    = errors.New("手机号不能为空")
)

const (
	noOptions = "无选项"
	noAnswer  = "无"
)

// QuestionBankStore 提供按题型划分的事务
type QuestionBankStore interface {
	Transaction(ctx context.Context, fn func(tx repository.QuestionBankTx) error) error
}

// TypeReport 单个题型的同步结果
type TypeReport struct {
	Type       model.QuestionKind `json:"type"`
	Canonical  int                `json:"canonical"`
	Fetched    int                `json:"fetched"`
	Inserted   int                `json:"inserted"`
	Duplicates int                `json:"duplicates"`
	Failed     int                `json:"failed"`
}

type SyncReport struct {
	Types []TypeReport `json:"types"`
}

func (r *SyncReport) Failed() int {
	n := 0
	for _, t := range r.Types {
		n += t.Failed
	}
	return n
}

// SyncService 把新生成的题目写入题库，并把每种题型最新的若干道题同步到用户题目表
type SyncService struct {
	Store       QuestionBankStore
	MirrorLimit int
}

func NewSyncService(store QuestionBankStore, mirrorLimit int) *SyncService {
	if mirrorLimit <= 0 {
		mirrorLimit = 10
	}
	return &SyncService{Store: store, MirrorLimit: mirrorLimit}
}

// Sync 依次处理选择题、填空题、判断题，每种题型一个事务。
// 某题型失败时返回截至该题型的报告和错误，之前已提交的题型不会回滚。
func (s *SyncService) Sync(ctx context.Context, owner string, batches map[model.QuestionKind][]model.QuestionRecord) (*SyncReport, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}

	ctx, span := tracing.Tracer.Start(ctx, "SyncService.Sync")
	defer span.End()

	report := &SyncReport{Types: make([]TypeReport, 0, len(model.QuestionKinds))}
	for _, kind := range model.QuestionKinds {
		tr, err := s.syncKind(ctx, owner, kind, batches[kind])
		monitoring.ObserveSync(string(kind), tr.Inserted, tr.Duplicates, tr.Failed)
		report.Types = append(report.Types, tr)
		if err != nil {
			span.RecordError(err)
			return report, err
		}
		span.SetAttributes(attribute.Int("sync."+string(kind)+".inserted", tr.Inserted))
	}
	return report, nil
}

func (s *SyncService) syncKind(ctx context.Context, owner string, kind model.QuestionKind, batch []model.QuestionRecord) (TypeReport, error) {
	tr := TypeReport{Type: kind, Canonical: len(batch)}

	err := s.Store.Transaction(ctx, func(tx repository.QuestionBankTx) error {
		if err := tx.InsertCanonical(kind, batch); err != nil {
			return fmt.Errorf("insert %s: %w", kind.CanonicalTable(), err)
		}

		latest, err := tx.LatestCanonical(kind, s.MirrorLimit)
		if err != nil {
			return fmt.Errorf("query latest %s: %w", kind.CanonicalTable(), err)
		}
		tr.Fetched = len(latest)

		for _, rec := range latest {
			row := mirrorDefaults(kind, rec)
			inserted, err := tx.InsertMirror(kind, owner, row)
			switch {
			case err != nil:
				tr.Failed++
				logger.Log.Error("Mirror insert failed",
					zap.String("type", string(kind)),
					logger.Phone(owner),
					zap.String("paper_id", row.PaperID),
					zap.Error(err))
			case inserted:
				tr.Inserted++
			default:
				tr.Duplicates++
			}
		}

		if tr.Fetched > 0 && tr.Failed == tr.Fetched {
			return fmt.Errorf("%s%w", kind.Label(), ErrSyncTotalFailure)
		}
		return nil
	})
	if err != nil {
		logger.Log.Error("Question sync rolled back",
			zap.String("type", string(kind)),
			logger.Phone(owner),
			zap.Error(err))
		return tr, err
	}

	if tr.Failed > 0 {
		logger.Log.Warn("Question sync partially failed",
			zap.String("type", string(kind)),
			zap.Int("failed", tr.Failed),
			zap.Int("fetched", tr.Fetched))
	}
	logger.Log.Info("Question sync completed",
		zap.String("type", string(kind)),
		logger.Phone(owner),
		zap.Int("canonical", tr.Canonical),
		zap.Int("inserted", tr.Inserted),
		zap.Int("duplicates", tr.Duplicates))
	return tr, nil
}

// placeholderNamespace 占位摘要的命名空间，改动会让已同步的占位题目重新写入
var placeholderNamespace = uuid.MustParse("5b0c6f0e-8d2a-4c55-9a57-3e7f1d2c9b41")

// placeholderDigest 由题目内容计算的短摘要，与题库行的ID和写入时间无关。
// 同一批题目重复同步时摘要不变，空字段的占位也不变，唯一键去重才有效。
func placeholderDigest(kind model.QuestionKind, rec model.QuestionRecord) string {
	fields := []string{string(kind), rec.PaperName, rec.PaperID, rec.Question, rec.Options, rec.Answer, rec.Explanation}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	id := uuid.NewSHA1(placeholderNamespace, []byte(strings.Join(fields, "\x1f")))
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}

// mirrorDefaults 空字段替换为占位内容
func mirrorDefaults(kind model.QuestionKind, rec model.QuestionRecord) model.QuestionRecord {
	digest := placeholderDigest(kind, rec)

	if isBlank(rec.PaperName) {
		rec.PaperName = "未命名试卷_" + digest
	}
	if isBlank(rec.PaperID) {
		rec.PaperID = "PAPER_" + digest
	}
	if isBlank(rec.Question) {
		rec.Question = fmt.Sprintf("%s_%s_无描述", kind.Label(), digest)
	}
	if kind.HasOptions() && isBlank(rec.Options) {
		rec.Options = noOptions
	}
	if isBlank(rec.Answer) {
		rec.Answer = noAnswer
	}
	if isBlank(rec.Explanation) {
		rec.Explanation = exam.NoExplanation
	}
	return rec
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

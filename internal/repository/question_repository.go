package repository

import (
	"context"

	"exam_ai_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionBankTx 同步题目时在同一事务内使用的操作
type QuestionBankTx interface {
	InsertCanonical(kind model.QuestionKind, records []model.QuestionRecord) error
	LatestCanonical(kind model.QuestionKind, limit int) ([]model.QuestionRecord, error)
	// InsertMirror 以 INSERT IGNORE 写入用户题目表，inserted=false 表示重复被忽略
	InsertMirror(kind model.QuestionKind, owner string, record model.QuestionRecord) (inserted bool, err error)
}

// QuestionRepository 题库表（exam_*）与用户题目表（ti_*）的读写
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Transaction 在单个事务中执行 fn，fn 返回错误时回滚
func (r *QuestionRepository) Transaction(ctx context.Context, fn func(tx QuestionBankTx) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&QuestionRepository{DB: tx})
	})
}

func (r *QuestionRepository) InsertCanonical(kind model.QuestionKind, records []model.QuestionRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Values(kind))
	}
	return r.DB.Table(kind.CanonicalTable()).Create(rows).Error
}

func (r *QuestionRepository) LatestCanonical(kind model.QuestionKind, limit int) ([]model.QuestionRecord, error) {
	var records []model.QuestionRecord
	err := r.DB.Table(kind.CanonicalTable()).
		Select(selectColumns(kind)).
		Order("id DESC").
		Limit(limit).
		Scan(&records).Error
	return records, err
}

func (r *QuestionRepository) InsertMirror(kind model.QuestionKind, owner string, record model.QuestionRecord) (bool, error) {
	values := record.Values(kind)
	values["phone_number"] = owner
	res := r.DB.Table(kind.MirrorTable()).
		Clauses(clause.Insert{Modifier: "IGNORE"}).
		Create(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListCanonical 查询题库，limit > 0 时按 id 倒序取最新 limit 条，否则按 id 正序返回全部
func (r *QuestionRepository) ListCanonical(ctx context.Context, kind model.QuestionKind, limit int) ([]model.QuestionRecord, error) {
	var records []model.QuestionRecord
	query := r.DB.WithContext(ctx).Table(kind.CanonicalTable()).Select(selectColumns(kind))
	if limit > 0 {
		query = query.Order("id DESC").Limit(limit)
	} else {
		query = query.Order("id ASC")
	}
	err := query.Scan(&records).Error
	return records, err
}

func (r *QuestionRepository) FindCanonicalByID(ctx context.Context, kind model.QuestionKind, id uint) (*model.QuestionRecord, error) {
	var record model.QuestionRecord
	err := r.DB.WithContext(ctx).Table(kind.CanonicalTable()).
		Select(selectColumns(kind)).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListMirrorByPaper 按试卷名称查询用户题目表，owner 为空时不按用户过滤
func (r *QuestionRepository) ListMirrorByPaper(ctx context.Context, kind model.QuestionKind, paperName, owner string) ([]model.MirrorRecord, error) {
	var records []model.MirrorRecord
	query := r.DB.WithContext(ctx).Table(kind.MirrorTable()).
		Select(append(selectColumns(kind), "phone_number")).
		Where("paper_name = ?", paperName)
	if owner != "" {
		query = query.Where("phone_number = ?", owner)
	}
	err := query.Order("id ASC").Scan(&records).Error
	return records, err
}

// ListMirrorByPaperID 按试卷编号和名称查询用户题目表，用于学生端组卷
func (r *QuestionRepository) ListMirrorByPaperID(ctx context.Context, kind model.QuestionKind, paperID, paperName string) ([]model.MirrorRecord, error) {
	var records []model.MirrorRecord
	err := r.DB.WithContext(ctx).Table(kind.MirrorTable()).
		Select(append(selectColumns(kind), "phone_number")).
		Where("paper_id = ? AND paper_name = ?", paperID, paperName).
		Order("id ASC").
		Scan(&records).Error
	return records, err
}

// OwnerPaperNames 用户三张题目表中出现过的试卷名称，按最近写入时间倒序
func (r *QuestionRepository) OwnerPaperNames(ctx context.Context, owner string) ([]string, error) {
	var names []string
	err := r.DB.WithContext(ctx).Raw(`
		SELECT paper_name FROM (
			SELECT paper_name, phone_number, created_at FROM ti_choose
			UNION ALL
			SELECT paper_name, phone_number, created_at FROM ti_judgment
			UNION ALL
			SELECT paper_name, phone_number, created_at FROM ti_blank
		) AS combined
		WHERE phone_number = ?
		GROUP BY paper_name
		ORDER BY MAX(created_at) DESC`, owner).
		Scan(&names).Error
	return names, err
}

func selectColumns(kind model.QuestionKind) []string {
	cols := append([]string{"id"}, kind.Columns()...)
	return append(cols, "created_at")
}

package model

import "time"

// QuestionKind 题型
type QuestionKind string

const (
	KindChoice   QuestionKind = "choice"
	KindBlank    QuestionKind = "fill"
	KindJudgment QuestionKind = "judge"
)

// QuestionKinds 同步顺序：选择题 -> 填空题 -> 判断题
var QuestionKinds = []QuestionKind{KindChoice, KindBlank, KindJudgment}

// Label 题型中文前缀，与生成工作流输出的字段名一致
func (k QuestionKind) Label() string {
	switch k {
	case KindChoice:
		return "选择题"
	case KindBlank:
		return "填空题"
	case KindJudgment:
		return "判断题"
	}
	return string(k)
}

// CanonicalTable 题库表
func (k QuestionKind) CanonicalTable() string {
	switch k {
	case KindChoice:
		return "exam_choose"
	case KindBlank:
		return "exam_blank"
	case KindJudgment:
		return "exam_judgment"
	}
	return ""
}

// MirrorTable 用户关联题目表
func (k QuestionKind) MirrorTable() string {
	switch k {
	case KindChoice:
		return "ti_choose"
	case KindBlank:
		return "ti_blank"
	case KindJudgment:
		return "ti_judgment"
	}
	return ""
}

func (k QuestionKind) HasOptions() bool {
	return k == KindChoice
}

// QuestionRecord 与题型无关的题目记录，对应 exam_* 表的一行。Options 只对选择题有意义。
type QuestionRecord struct {
	ID          uint      `gorm:"column:id" json:"id"`
	PaperName   string    `gorm:"column:paper_name" json:"paperName"`
	PaperID     string    `gorm:"column:paper_id" json:"paperId"`
	Question    string    `gorm:"column:question" json:"question"`
	Options     string    `gorm:"column:options" json:"options,omitempty"`
	Answer      string    `gorm:"column:answer" json:"answer"`
	Explanation string    `gorm:"column:explanation" json:"explanation"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

// MirrorRecord ti_* 表的一行，(phone_number, paper_id, question) 唯一
type MirrorRecord struct {
	QuestionRecord
	PhoneNumber string `gorm:"column:phone_number" json:"phoneNumber"`
}

// Columns 题型对应表的业务列，选择题多一个 options
func (k QuestionKind) Columns() []string {
	if k.HasOptions() {
		return []string{"paper_name", "paper_id", "question", "options", "answer", "explanation"}
	}
	return []string{"paper_name", "paper_id", "question", "answer", "explanation"}
}

// Values 按 Columns 的列取值，用于插入
func (r QuestionRecord) Values(k QuestionKind) map[string]interface{} {
	values := map[string]interface{}{
		"paper_name":  r.PaperName,
		"paper_id":    r.PaperID,
		"question":    r.Question,
		"answer":      r.Answer,
		"explanation": r.Explanation,
	}
	if k.HasOptions() {
		values["options"] = r.Options
	}
	return values
}

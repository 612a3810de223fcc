package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"exam_ai_backend/internal/exam"
)

// ErrEmptySubmission 提交的答案列表为空
var ErrEmptySubmission = errors.New("提交数据错误，需为非空数组")

const missingFieldsMessage = "提交数据缺失（需包含questionId、userAnswer、questionType）"

type QuestionType string

const (
	TypeChoice QuestionType = "choice"
	TypeFill   QuestionType = "fill"
	TypeJudge  QuestionType = "judge"
)

var typeAliases = map[string]QuestionType{
	"choice":   TypeChoice,
	"radio":    TypeChoice,
	"fill":     TypeFill,
	"blank":    TypeFill,
	"judge":    TypeJudge,
	"judgment": TypeJudge,
}

// ParseQuestionType 解析题型，兼容 radio/blank/judgment 等别名，不区分大小写
func ParseQuestionType(s string) (QuestionType, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Value 提交字段的原始值。前端可能传字符串、数字或布尔值，统一按文本比较。
type Value struct {
	Text string
	Set  bool
}

func Text(s string) Value {
	return Value{Text: s, Set: strings.TrimSpace(s) != ""}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*v = Value{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Text(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*v = Value{Text: string(b), Set: true}
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*v = Value{Text: n.String(), Set: true}
	default:
		return fmt.Errorf("unsupported value %s", b)
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Set && v.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v.Text)
}

// Item 单道题的作答
type Item struct {
	QuestionID   Value `json:"questionId"`
	UserAnswer   Value `json:"userAnswer"`
	QuestionType Value `json:"questionType"`
}

// Detail 单题判分详情
type Detail struct {
	QuestionID    Value  `json:"questionId"`
	QuestionType  Value  `json:"questionType"`
	IsCorrect     bool   `json:"isCorrect"`
	UserAnswer    Value  `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Error         string `json:"error"`
}

type Result struct {
	TotalScore     int      `json:"totalScore"`
	TotalQuestions int      `json:"totalQuestions"`
	Accuracy       string   `json:"accuracy"`
	Detail         []Detail `json:"detail"`
}

// AnswerLookup 按题型和题目ID查询标准答案，found=false 表示题目不存在
type AnswerLookup interface {
	CorrectAnswer(ctx context.Context, id string, qt QuestionType) (answer string, found bool, err error)
}

// LookupFunc 把普通函数适配为 AnswerLookup
type LookupFunc func(ctx context.Context, id string, qt QuestionType) (string, bool, error)

func (f LookupFunc) CorrectAnswer(ctx context.Context, id string, qt QuestionType) (string, bool, error) {
	return f(ctx, id, qt)
}

type Engine struct {
	Lookup AnswerLookup
}

func NewEngine(lookup AnswerLookup) *Engine {
	return &Engine{Lookup: lookup}
}

// Grade 逐题判分，每题 1 分。数据缺失或题目不存在只影响该题；查询标准答案失败时整批返回错误。
func (e *Engine) Grade(ctx context.Context, items []Item) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrEmptySubmission
	}

	result := &Result{
		TotalQuestions: len(items),
		Detail:         make([]Detail, 0, len(items)),
	}
	for _, item := range items {
		d, err := e.gradeItem(ctx, item)
		if err != nil {
			return nil, err
		}
		if d.IsCorrect {
			result.TotalScore++
		}
		result.Detail = append(result.Detail, d)
	}
	result.Accuracy = Accuracy(result.TotalScore, result.TotalQuestions)
	return result, nil
}

func (e *Engine) gradeItem(ctx context.Context, item Item) (Detail, error) {
	d := Detail{
		QuestionID:   item.QuestionID,
		QuestionType: item.QuestionType,
		UserAnswer:   item.UserAnswer,
	}

	if !item.QuestionID.Set || !item.UserAnswer.Set || !item.QuestionType.Set {
		d.Error = missingFieldsMessage
		return d, nil
	}

	qt, ok := ParseQuestionType(item.QuestionType.Text)
	if !ok {
		d.Error = fmt.Sprintf("不支持的题目类型: %s", item.QuestionType.Text)
		return d, nil
	}

	id := strings.TrimSpace(item.QuestionID.Text)
	correct, found, err := e.Lookup.CorrectAnswer(ctx, id, qt)
	if err != nil {
		return d, fmt.Errorf("lookup %s question %s: %w", qt, id, err)
	}
	if !found {
		d.Error = fmt.Sprintf("未找到ID=%s的%s类型题目", id, item.QuestionType.Text)
		return d, nil
	}

	d.CorrectAnswer = correct
	d.IsCorrect = Compare(qt, item.UserAnswer.Text, correct)
	return d, nil
}

// Compare 按题型比较作答与标准答案
func Compare(qt QuestionType, userAnswer, correct string) bool {
	switch qt {
	case TypeChoice:
		return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(correct))
	case TypeFill:
		return strings.TrimSpace(userAnswer) == strings.TrimSpace(correct)
	case TypeJudge:
		return exam.JudgmentBool(userAnswer) == exam.JudgmentBool(correct)
	}
	return false
}

// Accuracy 正确率，保留一位小数，没有题目时为 "0.0%"
func Accuracy(score, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(score)/float64(total)*100)
}

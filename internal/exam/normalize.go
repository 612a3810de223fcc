package exam

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"exam_ai_backend/internal/model"
)

const (
	fieldPaperName = "试卷名称"
	fieldPaperID   = "试卷编号"

	// NoExplanation 缺失解析时的占位文本
	NoExplanation = "无解析"
	// NoQuestion 缺失题干时的展示文本
	NoQuestion = "无题目"
)

// 工作流输出中各题型所在的字段，按优先级排列
var workflowOutputKeys = map[model.QuestionKind][]string{
	model.KindChoice:   {"output1", "output1_1"},
	model.KindBlank:    {"output2", "output2_2"},
	model.KindJudgment: {"output3", "output3_3"},
}

// Normalize 把生成工作流输出的某一题型 JSON 数组转成题目记录。
// 输入中的 "\\" 会先还原为 "\"；无法解析时返回空切片和解析错误，调用方只需记录日志。
func Normalize(kind model.QuestionKind, raw string) ([]model.QuestionRecord, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []model.QuestionRecord{}, nil
	}

	processed := strings.ReplaceAll(raw, `\\`, `\`)

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(processed), &items); err != nil {
		return []model.QuestionRecord{}, fmt.Errorf("parse %s data: %w", kind.Label(), err)
	}

	label := kind.Label()
	records := make([]model.QuestionRecord, 0, len(items))
	for _, item := range items {
		var fields map[string]interface{}
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}

		rec := model.QuestionRecord{
			PaperName:   textField(fields, fieldPaperName),
			PaperID:     textField(fields, fieldPaperID),
			Question:    textField(fields, label+"问题"),
			Answer:      textField(fields, label+"答案"),
			Explanation: textField(fields, label+"解析"),
		}
		if kind.HasOptions() {
			rec.Options = textField(fields, label+"选项")
		}
		if strings.TrimSpace(rec.Explanation) == "" {
			rec.Explanation = NoExplanation
		}
		records = append(records, rec)
	}
	return records, nil
}

func NormalizeChoices(raw string) ([]model.QuestionRecord, error) {
	return Normalize(model.KindChoice, raw)
}

func NormalizeBlanks(raw string) ([]model.QuestionRecord, error) {
	return Normalize(model.KindBlank, raw)
}

func NormalizeJudgments(raw string) ([]model.QuestionRecord, error) {
	return Normalize(model.KindJudgment, raw)
}

// SplitWorkflowOutput 拆分工作流结果对象 {"output1": "...", "output2": "...", "output3": "..."}。
// 字段值可以是 JSON 字符串，也可以直接是数组。
func SplitWorkflowOutput(content string) (map[model.QuestionKind]string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &obj); err != nil {
		return nil, fmt.Errorf("parse workflow output: %w", err)
	}

	out := make(map[model.QuestionKind]string, len(workflowOutputKeys))
	for kind, keys := range workflowOutputKeys {
		for _, key := range keys {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				out[kind] = s
			} else if trimmed := strings.TrimSpace(string(raw)); trimmed != "null" {
				out[kind] = trimmed
			}
			break
		}
	}
	return out, nil
}

func textField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

package exam

import "strings"

const judgmentTrailing = "。．.！!；;，, \t\r\n　"

var judgmentTrue = map[string]bool{
	"true": true,
	"对":    true,
	"1":    true,
}

// CleanJudgmentAnswer 去掉判断题答案首尾空白和末尾的标点，如 "对。" -> "对"
func CleanJudgmentAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, judgmentTrailing)
	return strings.TrimSpace(s)
}

// JudgmentBool 判断题答案的布尔值：清洗并转小写后属于 {true, 对, 1} 即为真
func JudgmentBool(s string) bool {
	return judgmentTrue[strings.ToLower(CleanJudgmentAnswer(s))]
}

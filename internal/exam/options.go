package exam

import (
	"regexp"
	"strings"
)

// OptionKeys 选择题固定的四个选项键
var OptionKeys = []string{"A", "B", "C", "D"}

// 选项标记：A-D 后紧跟 "." 或 "．"，位于开头或空白、分号、逗号之后
var optionMarker = regexp.MustCompile(`(^|[\s\x{3000};；,，])([A-D])[.．]`)

var quoteStripper = strings.NewReplacer(`'`, "", `"`, "")

// ParseOptions 把 "A. foo B. bar" 解析成 A-D 四个键的映射，缺失的键为空字符串
func ParseOptions(raw string) map[string]string {
	options := make(map[string]string, len(OptionKeys))
	for _, k := range OptionKeys {
		options[k] = ""
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return options
	}

	locs := optionMarker.FindAllStringSubmatchIndex(raw, -1)
	seen := make(map[string]bool, len(locs))
	for i, loc := range locs {
		key := raw[loc[4]:loc[5]]
		if seen[key] {
			continue
		}
		seen[key] = true

		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		options[key] = cleanOptionText(raw[loc[1]:end])
	}
	return options
}

// ParseOptionsWithPlaceholder 与 ParseOptions 相同，但缺失的选项填充为 "无有效选项X"
func ParseOptionsWithPlaceholder(raw string) map[string]string {
	options := ParseOptions(raw)
	for _, k := range OptionKeys {
		if options[k] == "" {
			options[k] = MissingOptionText(k)
		}
	}
	return options
}

func MissingOptionText(key string) string {
	return "无有效选项" + key
}

func cleanOptionText(s string) string {
	s = quoteStripper.Replace(s)
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ";；")
	return strings.TrimSpace(s)
}

func isOptionKey(s string) bool {
	for _, k := range OptionKeys {
		if s == k {
			return true
		}
	}
	return false
}

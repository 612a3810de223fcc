package util

import "strings"

// ParseLatest 解析 latest 查询参数，缺省为 true，只有 true/1/yes/y 视为真
func ParseLatest(raw string, present bool) bool {
	if !present {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

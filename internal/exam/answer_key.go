package exam

import "strings"

// ResolveAnswerKey 把存储的答案换算成选项键。
// 答案文本与某个选项文本相同时返回该选项的键；否则原样返回存储值，
// resolved 表示返回值是否为合法的选项键。
func ResolveAnswerKey(stored string, options map[string]string) (key string, resolved bool) {
	target := strings.TrimSpace(stored)
	if target != "" {
		for _, k := range OptionKeys {
			if strings.TrimSpace(options[k]) == target {
				return k, true
			}
		}
	}
	return stored, isOptionKey(strings.ToUpper(target))
}

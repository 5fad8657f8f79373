// Package melco Melco ID 正规化工具
//
// 历史数据里的 Melco ID 存在 #/## 前缀等旧格式，查询时需要把输入
// 归一化并枚举可能的存储形态。
package melco

import (
	"regexp"
	"strings"
)

var edgeHashes = regexp.MustCompile(`^#+|#+$`)

// Normalize 去掉首尾空白和首尾的 # 号，返回规范形式
func Normalize(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	return edgeHashes.ReplaceAllString(trimmed, "")
}

// Variants 枚举旧数据中可能出现的存储形态：
// 原始输入（去空白）、规范形式、加一个 # 前缀、加两个 # 前缀。
// 注意只生成前缀变体，不生成后缀变体（与历史录入习惯一致）。
func Variants(id string) map[string]struct{} {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return map[string]struct{}{}
	}

	variants := map[string]struct{}{trimmed: {}}
	canonical := Normalize(trimmed)
	if canonical != "" {
		variants[canonical] = struct{}{}
		variants["#"+canonical] = struct{}{}
		variants["##"+canonical] = struct{}{}
	}
	return variants
}

// VariantPool 合并多个 Melco ID 的全部变体，用于 IN 查询
func VariantPool(ids []string) []string {
	pool := make(map[string]struct{})
	for _, id := range ids {
		for v := range Variants(id) {
			pool[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(pool))
	for v := range pool {
		out = append(out, v)
	}
	return out
}

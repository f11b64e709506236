package parser

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名：统一 Unicode 组合形式并去除首尾空白
func NormalizeColumnName(name string) string {
	name = norm.NFC.String(name)
	name = strings.ReplaceAll(name, "\u00a0", " ")
	return strings.TrimSpace(name)
}

// CompactText 压缩文本中的连续空白（用于日志与提示信息）
func CompactText(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// SyntheticLabel 无表头列的占位列名
func SyntheticLabel(i int) string {
	return fmt.Sprintf("Unnamed_%d", i)
}

// IsSyntheticLabel 是否为占位列名
func IsSyntheticLabel(label string) bool {
	return strings.HasPrefix(label, "Unnamed_")
}

// isBlank 空单元格（仅空白）
func isBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == ""
}

package parser

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

// MatchThreshold 相似度下限（0-1）
const MatchThreshold = 0.5

// FieldMapper 字段映射器：把实际列名模糊匹配到统一口径字段
type FieldMapper struct {
	threshold float64
}

// NewFieldMapper 创建字段映射器
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{threshold: MatchThreshold}
}

// MatchColumns 使用默认阈值匹配
func MatchColumns(labels []string, schema model.Schema) model.ColumnMapping {
	return NewFieldMapper().Map(labels, schema)
}

// Map 逐个字段按同义词优先级匹配，取第一个达到阈值的同义词的最佳列
// 同一列可以被多个字段同时命中。
func (m *FieldMapper) Map(labels []string, schema model.Schema) model.ColumnMapping {
	candidates := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" || IsSyntheticLabel(l) {
			continue
		}
		candidates = append(candidates, l)
	}

	mapping := make(model.ColumnMapping)
	for _, spec := range schema {
		for _, syn := range spec.Synonyms {
			label, score := BestMatch(syn, candidates)
			if label != "" && score >= m.threshold {
				mapping[spec.Field] = label
				break
			}
		}
	}
	return mapping
}

// BestMatch 返回与 word 最相似的候选及其得分；得分相同取靠前的候选
func BestMatch(word string, candidates []string) (string, float64) {
	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		s := Similarity(word, c)
		if s > bestScore {
			best = c
			bestScore = s
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestScore
}

// Similarity 归一化编辑相似度：(len(a)+len(b)-距离)/(len(a)+len(b))，替换代价为 2
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	return levenshtein.RatioForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
}

// Unmatched 返回未匹配到列的字段（按字段表顺序）
func Unmatched(schema model.Schema, mapping model.ColumnMapping) []model.CanonicalField {
	out := make([]model.CanonicalField, 0)
	for _, spec := range schema {
		if _, ok := mapping[spec.Field]; !ok {
			out = append(out, spec.Field)
		}
	}
	return out
}

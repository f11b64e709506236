package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RawTable 无表头的原始二维表（按读取顺序，0 起始）
type RawTable struct {
	SheetName string     `json:"sheetName"`
	Rows      [][]string `json:"rows"`
}

// Width 最大列数
func (t *RawTable) Width() int {
	w := 0
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// LogicalTable 切出表头后的逻辑表
type LogicalTable struct {
	Labels   []string   `json:"labels"`
	Rows     [][]string `json:"rows"`
	FirstRow int        `json:"firstRow"` // 首个数据行在 Excel 中的行号（1 起始）
}

// Column 返回指定列的全部取值；越界行补空串
func (t *LogicalTable) Column(label string) ([]string, bool) {
	idx := -1
	for i, l := range t.Labels {
		if l == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, true
}

// ColumnMapping 统一口径字段 -> 实际列名；未出现的字段即未匹配
type ColumnMapping map[CanonicalField]string

// ProjectedTable 投影后的表：列集合与字段表完全一致，缺失列填充 Sentinel
type ProjectedTable struct {
	Fields   []CanonicalField `json:"fields"`
	Rows     [][]string       `json:"rows"`
	FirstRow int              `json:"firstRow"`
}

// Index 返回字段所在列
func (t *ProjectedTable) Index(f CanonicalField) int {
	for i, name := range t.Fields {
		if name == f {
			return i
		}
	}
	return -1
}

// Column 返回字段整列
func (t *ProjectedTable) Column(f CanonicalField) []string {
	idx := t.Index(f)
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx >= 0 && idx < len(row) {
			out[i] = row[idx]
		} else {
			out[i] = Sentinel
		}
	}
	return out
}

// Date 日历日期；Valid=false 表示缺失
type Date struct {
	Time  time.Time
	Valid bool
}

// String 缺失日期输出 Sentinel
func (d Date) String() string {
	if !d.Valid {
		return Sentinel
	}
	return d.Time.Format("2006-01-02")
}

// Amount 可缺失的金额（关联结果用）
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount 构造有效金额
func NewAmount(v decimal.Decimal) Amount {
	return Amount{Value: v, Valid: true}
}

// String 缺失金额输出 Sentinel
func (a Amount) String() string {
	if !a.Valid {
		return Sentinel
	}
	return a.Value.String()
}

// MarshalJSON 与导出口径一致，统一输出文本
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalJSON 与导出口径一致，统一输出文本
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

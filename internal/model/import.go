package model

import "time"

// ImportOptions 表头定位参数（操作员可调）
type ImportOptions struct {
	HeaderRow       int  `json:"headerRow"`       // 表头所在行（0-3）
	DataStartRow    int  `json:"dataStartRow"`    // 数据起始行（0-10）
	IncludeAnalysis bool `json:"includeAnalysis"` // 是否同时匹配分析用字段
}

// ImportStatus 单个 sheet 的导入状态
type ImportStatus string

const (
	StatusImported ImportStatus = "imported"
	StatusEmpty    ImportStatus = "empty"    // 结构正常但没有数据行
	StatusNoMatch  ImportStatus = "no_match" // 没有任何列匹配成功
	StatusError    ImportStatus = "error"
)

// NormalizationWarning 清洗告警（不中断处理）
type NormalizationWarning struct {
	Column  string `json:"column"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// SheetReport 单个 sheet 的导入结果
type SheetReport struct {
	SheetName      string                 `json:"sheetName"`
	Kind           SourceKind             `json:"kind"`
	Status         ImportStatus           `json:"status"`
	Rows           int                    `json:"rows"`
	MatchedColumns int                    `json:"matchedColumns"`
	Mapping        ColumnMapping          `json:"mapping"`
	Unmatched      []CanonicalField       `json:"unmatched"`
	Warnings       []NormalizationWarning `json:"warnings,omitempty"`
	Errors         []string               `json:"errors,omitempty"`
	Duration       time.Duration          `json:"duration"`
}

// ImportReport 一次上传的导入报告
type ImportReport struct {
	UploadID string        `json:"uploadId"`
	Filename string        `json:"filename"`
	Sheets   []SheetReport `json:"sheets"`
	Duration time.Duration `json:"duration"`
}

// Failed 是否所有 sheet 都失败
func (r *ImportReport) Failed() bool {
	if len(r.Sheets) == 0 {
		return true
	}
	for _, s := range r.Sheets {
		if s.Status != StatusError {
			return false
		}
	}
	return true
}

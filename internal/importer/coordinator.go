package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/parser"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/excel"
)

// CombinedKinds 合并上传时依次查找的 sheet
var CombinedKinds = []model.SourceKind{
	model.SourceOrders,
	model.SourceTransaction,
	model.SourceCreditNote,
	model.SourceClaim,
}

// DefaultLedgerOptions 订单结算表默认表头位置
var DefaultLedgerOptions = model.ImportOptions{HeaderRow: 1, DataStartRow: 3}

// SupplementaryOptions 外部导出表默认表头位置（首行表头，次行起为数据）
var SupplementaryOptions = model.ImportOptions{HeaderRow: 0, DataStartRow: 1}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/sheet_start/sheet_done/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data"`    // 附加数据
	Timestamp time.Time   `json:"timestamp"`
}

// Coordinator 导入协调器：读取 -> 表头 -> 匹配 -> 投影 -> 清洗，单一参数化流程
type Coordinator struct {
	ledgerDefaults model.ImportOptions
	onProgress     func(ProgressEvent)
}

// NewCoordinator 创建导入协调器；onProgress 可为 nil
func NewCoordinator(ledgerDefaults model.ImportOptions, onProgress func(ProgressEvent)) *Coordinator {
	return &Coordinator{
		ledgerDefaults: ledgerDefaults,
		onProgress:     onProgress,
	}
}

// DefaultOptions 未显式指定时使用的表头位置
func (c *Coordinator) DefaultOptions(kind model.SourceKind) model.ImportOptions {
	switch kind {
	case model.SourceLedger, model.SourceOrders:
		return c.ledgerDefaults
	}
	return SupplementaryOptions
}

// SheetResult 单个 sheet 的导入结果
type SheetResult struct {
	Kind      model.SourceKind
	Projected *model.ProjectedTable
	Mapping   model.ColumnMapping
	Unmatched []model.CanonicalField

	Orders       []model.Order
	Transactions []model.TransactionRow
	CreditNotes  []model.CreditNoteRow
	Claims       []model.ClaimRow

	Report model.SheetReport
}

// Upload 一次上传的导入结果；Results 只包含成功的 sheet
type Upload struct {
	Report  model.ImportReport
	Results []*SheetResult
}

// Result 按来源查找结果
func (u *Upload) Result(kind model.SourceKind) *SheetResult {
	for _, r := range u.Results {
		if r.Kind == kind {
			return r
		}
	}
	return nil
}

// Import 导入一个工作簿
//   - ledger：取第一个 sheet
//   - orders/ztra/zcn/claim：取固定名称的 sheet，缺失即结构性错误
//   - combined（kinds 为空）：依次查找 CombinedKinds，缺失的跳过，一个都没有则为结构性错误
//
// 结构性错误直接返回 error，不产生部分结果。
func (c *Coordinator) Import(wb *excel.Workbook, kinds []model.SourceKind, opts map[model.SourceKind]model.ImportOptions) (*Upload, error) {
	start := time.Now()
	upload := &Upload{
		Report: model.ImportReport{
			UploadID: uuid.New().String(),
			Filename: wb.Name(),
			Sheets:   []model.SheetReport{},
		},
	}

	c.emit("start", fmt.Sprintf("开始导入 %s", wb.Name()), map[string]string{"filename": wb.Name()})

	if len(kinds) == 0 {
		for _, k := range CombinedKinds {
			if wb.HasSheet(k.SheetName()) {
				kinds = append(kinds, k)
			}
		}
		if len(kinds) == 0 {
			err := parser.Malformed("", parser.ErrMissingSheet, "%s contains none of Orders/ZTRA/ZCN/Claim", wb.Name())
			c.emit("error", err.Error(), nil)
			return nil, err
		}
	}

	for _, kind := range kinds {
		var (
			raw *model.RawTable
			err error
		)
		if kind == model.SourceLedger {
			raw, err = wb.FirstSheet()
		} else {
			raw, err = wb.ReadSheet(kind.SheetName())
		}
		if err != nil {
			c.emit("error", err.Error(), nil)
			return nil, fmt.Errorf("read %s: %w", kind, err)
		}

		o, ok := opts[kind]
		if !ok {
			o = c.DefaultOptions(kind)
		}
		res, err := c.ImportSheet(raw, kind, o)
		if err != nil {
			c.emit("error", err.Error(), nil)
			return nil, fmt.Errorf("import %s: %w", kind, err)
		}
		upload.Results = append(upload.Results, res)
		upload.Report.Sheets = append(upload.Report.Sheets, res.Report)
	}

	upload.Report.Duration = time.Since(start)
	c.emit("done", "导入完成", upload.Report)
	logger.L.Info("upload imported",
		"uploadId", upload.Report.UploadID,
		"file", upload.Report.Filename,
		"sheets", len(upload.Report.Sheets),
		"duration", upload.Report.Duration,
	)
	return upload, nil
}

// ImportSheet 对单个原始表执行完整流程
func (c *Coordinator) ImportSheet(raw *model.RawTable, kind model.SourceKind, opts model.ImportOptions) (*SheetResult, error) {
	start := time.Now()
	c.emit("sheet_start", fmt.Sprintf("正在解析 Sheet: %s", raw.SheetName), map[string]string{"sheet_name": raw.SheetName})

	table, err := parser.ResolveHeader(raw, opts.HeaderRow, opts.DataStartRow)
	if err != nil {
		return nil, err
	}

	schema := schemaFor(kind, opts.IncludeAnalysis)
	mapping := parser.MatchColumns(table.Labels, schema)
	unmatched := parser.Unmatched(schema, mapping)

	if key := kind.KeyField(); key != "" {
		if _, ok := mapping[key]; !ok {
			return nil, parser.Malformed(raw.SheetName, parser.ErrMissingKeyColumn, "no column matches %q (columns: %s)",
				key, parser.CompactText(strings.Join(table.Labels, ", ")))
		}
	}

	projected := parser.Project(table, mapping, schema)
	res := &SheetResult{
		Kind:      kind,
		Projected: projected,
		Mapping:   mapping,
		Unmatched: unmatched,
	}

	var warnings []parser.NormalizationWarning
	switch kind {
	case model.SourceTransaction:
		res.Transactions, warnings = parser.ToTransactions(projected)
	case model.SourceCreditNote:
		res.CreditNotes, warnings = parser.ToCreditNotes(projected)
	case model.SourceClaim:
		res.Claims, warnings = parser.ToClaims(projected)
	default:
		res.Orders, warnings = parser.ToOrders(projected, parser.MissingFields(mapping, schema))
	}

	status := model.StatusImported
	switch {
	case len(mapping) == 0:
		status = model.StatusNoMatch
	case len(projected.Rows) == 0:
		status = model.StatusEmpty
	}

	res.Report = model.SheetReport{
		SheetName:      raw.SheetName,
		Kind:           kind,
		Status:         status,
		Rows:           len(projected.Rows),
		MatchedColumns: len(mapping),
		Mapping:        mapping,
		Unmatched:      unmatched,
		Warnings:       warnings,
		Duration:       time.Since(start),
	}

	c.emit("sheet_done", fmt.Sprintf("Sheet %s: 匹配 %d 列, %d 行", raw.SheetName, len(mapping), len(projected.Rows)), res.Report)
	for _, w := range warnings {
		logger.L.Warn("normalization warning", "sheet", raw.SheetName, "column", w.Column, "count", w.Count)
	}
	return res, nil
}

func schemaFor(kind model.SourceKind, includeAnalysis bool) model.Schema {
	switch kind {
	case model.SourceTransaction:
		return model.TransactionSchema()
	case model.SourceCreditNote:
		return model.CreditNoteSchema()
	case model.SourceClaim:
		return model.ClaimSchema()
	}
	return model.LedgerSchema(includeAnalysis)
}

func (c *Coordinator) emit(typ, msg string, data interface{}) {
	if c.onProgress == nil {
		return
	}
	c.onProgress(ProgressEvent{
		Type:      typ,
		Message:   msg,
		Data:      data,
		Timestamp: time.Now(),
	})
}

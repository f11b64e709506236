package excel

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/reconcile"
)

// 导出 sheet 名
const (
	SheetProcessed = "Processed_Data"
	SheetSummary   = "Summary"
	SheetDetailed  = "Detailed_Data"
	SheetCombined  = "Combined_Data"
)

// ErrNothingToExport 会话中没有可导出的数据
var ErrNothingToExport = errors.New("nothing to export")

// ExportInput 导出内容；为空的部分不生成对应 sheet
type ExportInput struct {
	Projected *model.ProjectedTable
	Orders    []model.Order
	Records   []model.ReconciledRecord
	Summary   *reconcile.Summary
	Unmatched []model.CanonicalField
}

// Exporter Excel导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

type sheetData struct {
	name string
	rows [][]string
}

// Export 按 Processed_Data / Summary / Detailed_Data / Combined_Data 顺序生成工作簿
// 所有单元格以文本写入。
func (e *Exporter) Export(in ExportInput) (*excelize.File, error) {
	sheets := make([]sheetData, 0, 4)

	if in.Projected != nil {
		sheets = append(sheets, sheetData{name: SheetProcessed, rows: projectedRows(in.Projected)})
	}
	if in.Summary != nil {
		sheets = append(sheets, sheetData{name: SheetSummary, rows: SummaryRows(*in.Summary, in.Unmatched)})
	}
	if len(in.Orders) > 0 {
		fields := model.AllFields()
		if in.Projected != nil {
			fields = in.Projected.Fields
		}
		sheets = append(sheets, sheetData{name: SheetDetailed, rows: orderRows(in.Orders, fields)})
	}
	if in.Records != nil {
		sheets = append(sheets, sheetData{name: SheetCombined, rows: recordRows(in.Records)})
	}
	if len(sheets) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}

		if err := writeRows(f, sh.name, sh.rows); err != nil {
			_ = f.Close()
			return nil, err
		}
		if len(sh.rows) > 0 {
			_ = f.SetRowStyle(sh.name, 1, 1, headerStyle)
			lastCol, _ := excelize.ColumnNumberToName(len(sh.rows[0]))
			_ = f.SetColWidth(sh.name, "A", lastCol, 18)
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("invalid cell %d,%d: %w", c+1, r+1, err)
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func projectedRows(p *model.ProjectedTable) [][]string {
	rows := make([][]string, 0, len(p.Rows)+1)
	header := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		header[i] = string(f)
	}
	rows = append(rows, header)
	for _, r := range p.Rows {
		rows = append(rows, r)
	}
	return rows
}

func orderRows(orders []model.Order, fields []model.CanonicalField) [][]string {
	rows := make([][]string, 0, len(orders)+1)
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = string(f)
	}
	rows = append(rows, header)
	for i := range orders {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = orders[i].Cell(f)
		}
		rows = append(rows, row)
	}
	return rows
}

func recordRows(records []model.ReconciledRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, append([]string(nil), model.ReconciledColumns...))
	for i := range records {
		rows = append(rows, records[i].Cells())
	}
	return rows
}

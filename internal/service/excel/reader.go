package excel

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/parser"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Workbook 已打开的上传文件（.xlsx 按需读取；.xls 打开时一次性读入）
type Workbook struct {
	name   string
	sheets []string
	xlsx   *excelize.File
	legacy map[string][][]string
}

// OpenWorkbook 按文件内容识别格式并打开
func OpenWorkbook(name string, r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	switch {
	case bytes.HasPrefix(data, oleMagic):
		return openLegacy(name, data)
	case bytes.HasPrefix(data, zipMagic):
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, parser.Malformed("", parser.ErrUnreadableWorkbook, "%s: %v", name, err)
		}
		return FromExcelize(name, f), nil
	}

	if strings.EqualFold(filepath.Ext(name), ".xls") {
		return openLegacy(name, data)
	}
	return nil, parser.Malformed("", parser.ErrUnreadableWorkbook, "%s: unsupported file format", name)
}

// FromExcelize 包装已打开的 excelize 工作簿
func FromExcelize(name string, f *excelize.File) *Workbook {
	return &Workbook{
		name:   name,
		sheets: f.GetSheetList(),
		xlsx:   f,
	}
}

// openLegacy 读取 .xls（xlsReader 只接受文件路径，先落临时文件）
func openLegacy(name string, data []byte) (*Workbook, error) {
	tmp, err := os.CreateTemp("", "upload-*.xls")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	wb, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, parser.Malformed("", parser.ErrUnreadableWorkbook, "%s: %v", name, err)
	}

	out := &Workbook{name: name, legacy: make(map[string][][]string)}
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		sheetName := sheet.GetName()

		rows := make([][]string, 0, int(sheet.GetNumberRows())+1)
		for r := 0; r <= int(sheet.GetNumberRows()); r++ {
			row, err := sheet.GetRow(r)
			if err != nil || row == nil {
				// 保留空行，保证表头/数据行下标与 Excel 一致
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0)
			for _, col := range row.GetCols() {
				if col == nil {
					cells = append(cells, "")
					continue
				}
				cells = append(cells, col.GetString())
			}
			rows = append(rows, trimTrailingEmpty(cells))
		}

		out.sheets = append(out.sheets, sheetName)
		out.legacy[sheetName] = trimTrailingRows(rows)
	}
	return out, nil
}

// Name 上传文件名
func (w *Workbook) Name() string {
	return w.name
}

// SheetNames 按工作簿顺序返回 sheet 名
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// HasSheet 是否包含指定 sheet
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.sheets {
		if s == name {
			return true
		}
	}
	return false
}

// ReadSheet 读取指定 sheet 为原始表；不存在时返回结构性错误
// .xlsx 取单元格原始值（日期为序列号，金额不带格式）。
func (w *Workbook) ReadSheet(name string) (*model.RawTable, error) {
	if !w.HasSheet(name) {
		return nil, parser.Malformed(name, parser.ErrMissingSheet, "%s has no sheet %q", w.name, name)
	}

	if w.xlsx == nil {
		return &model.RawTable{SheetName: name, Rows: w.legacy[name]}, nil
	}

	rows, err := w.xlsx.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, parser.Malformed(name, parser.ErrUnreadableWorkbook, "%v", err)
	}
	return &model.RawTable{SheetName: name, Rows: rows}, nil
}

// FirstSheet 读取第一个 sheet（订单结算表上传）
func (w *Workbook) FirstSheet() (*model.RawTable, error) {
	if len(w.sheets) == 0 {
		return nil, parser.Malformed("", parser.ErrMissingSheet, "%s has no sheets", w.name)
	}
	return w.ReadSheet(w.sheets[0])
}

// Close 释放底层文件
func (w *Workbook) Close() error {
	if w.xlsx != nil {
		return w.xlsx.Close()
	}
	return nil
}

func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}

func trimTrailingRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	return rows[:end]
}

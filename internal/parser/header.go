package parser

import "github.com/njnj4101989-sudo/flipkart-payments/internal/model"

// ResolveHeader 按给定的表头行与数据起始行切出逻辑表
// 表头行与数据起始行都由调用方指定，不做自动探测。
func ResolveHeader(raw *model.RawTable, headerRow, dataStartRow int) (*model.LogicalTable, error) {
	sheet := ""
	var rows [][]string
	if raw != nil {
		sheet = raw.SheetName
		rows = raw.Rows
	}

	if headerRow < 0 || dataStartRow < 0 {
		return nil, Malformed(sheet, ErrInvalidOffset, "headerRow=%d dataStartRow=%d", headerRow, dataStartRow)
	}
	if dataStartRow > len(rows) {
		return nil, Malformed(sheet, ErrInsufficientRows, "data starts at row %d but sheet has %d rows", dataStartRow, len(rows))
	}

	width := 0
	if raw != nil {
		width = raw.Width()
	}

	var header []string
	if headerRow < len(rows) {
		header = rows[headerRow]
	}

	labels := make([]string, width)
	for i := 0; i < width; i++ {
		label := ""
		if i < len(header) {
			label = NormalizeColumnName(header[i])
		}
		if label == "" {
			label = SyntheticLabel(i)
		}
		labels[i] = label
	}

	data := make([][]string, 0, len(rows)-dataStartRow)
	for _, row := range rows[dataStartRow:] {
		padded := make([]string, width)
		copy(padded, row)
		data = append(data, padded)
	}

	return &model.LogicalTable{
		Labels:   labels,
		Rows:     data,
		FirstRow: dataStartRow + 1,
	}, nil
}

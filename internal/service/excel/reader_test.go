package excel_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/parser"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/excel"
)

// buildWorkbook 按 sheet 顺序写入行；第一个 sheet 复用默认的 Sheet1
func buildWorkbook(t *testing.T, names []string, sheets map[string][][]interface{}) *excelize.File {
	t.Helper()

	wb := excelize.NewFile()
	for i, name := range names {
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName %s failed: %v", name, err)
			}
		} else if _, err := wb.NewSheet(name); err != nil {
			t.Fatalf("NewSheet %s failed: %v", name, err)
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			row := row
			if err := wb.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", name, err)
			}
		}
	}
	return wb
}

func workbookBytes(t *testing.T, wb *excelize.File) *bytes.Buffer {
	t.Helper()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf
}

func TestOpenWorkbook_ReadSheets(t *testing.T) {
	t.Parallel()

	wb := buildWorkbook(t, []string{"Report", "ZTRA"}, map[string][][]interface{}{
		"Report": {
			{"Settlement export"},
			{"Order ID", "Invoice ID", "Sale Amount"},
			{},
			{"OD1", "INV100", 1250.5},
		},
		"ZTRA": {
			{"CUSTOMER REFERENCE", "Billing No", "Total Amt"},
			{"INV100", "BN1", 500},
		},
	})

	book, err := excel.OpenWorkbook("upload.xlsx", workbookBytes(t, wb))
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	t.Cleanup(func() { _ = book.Close() })

	names := book.SheetNames()
	if len(names) != 2 || names[0] != "Report" || names[1] != "ZTRA" {
		t.Fatalf("sheets=%v", names)
	}

	first, err := book.FirstSheet()
	if err != nil {
		t.Fatalf("FirstSheet failed: %v", err)
	}
	if first.SheetName != "Report" || len(first.Rows) != 4 {
		t.Fatalf("first sheet %q rows=%d", first.SheetName, len(first.Rows))
	}
	if got := first.Rows[1][1]; got != "Invoice ID" {
		t.Fatalf("header cell=%q", got)
	}
	if got := first.Rows[3][2]; got != "1250.5" {
		t.Fatalf("amount cell=%q", got)
	}

	ztra, err := book.ReadSheet("ZTRA")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	if len(ztra.Rows) != 2 || ztra.Rows[1][0] != "INV100" {
		t.Fatalf("ztra rows=%v", ztra.Rows)
	}
}

func TestOpenWorkbook_MissingSheet(t *testing.T) {
	t.Parallel()

	wb := buildWorkbook(t, []string{"Orders"}, map[string][][]interface{}{
		"Orders": {{"Order ID"}},
	})
	book := excel.FromExcelize("orders.xlsx", wb)

	_, err := book.ReadSheet("Claim")
	if err == nil {
		t.Fatalf("expected missing sheet error")
	}
	if !errors.Is(err, parser.ErrMissingSheet) || !parser.IsStructural(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenWorkbook_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := excel.OpenWorkbook("notes.txt", bytes.NewBufferString("order,invoice\n"))
	if !errors.Is(err, parser.ErrUnreadableWorkbook) {
		t.Fatalf("unexpected error: %v", err)
	}
}

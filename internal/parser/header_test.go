package parser

import (
	"errors"
	"testing"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

func sampleRaw() *model.RawTable {
	return &model.RawTable{
		SheetName: "Orders",
		Rows: [][]string{
			{"Settlement Report", "", ""},
			{" Order ID ", "Invoice", ""},
			{"", "", ""},
			{"OD1", "INV1", "x"},
			{"OD2", "INV2"},
		},
	}
}

func TestResolveHeader_LabelsAndRows(t *testing.T) {
	t.Parallel()

	table, err := ResolveHeader(sampleRaw(), 1, 3)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantLabels := []string{"Order ID", "Invoice", "Unnamed_2"}
	if len(table.Labels) != len(wantLabels) {
		t.Fatalf("labels: %v", table.Labels)
	}
	for i, want := range wantLabels {
		if table.Labels[i] != want {
			t.Fatalf("label %d: want %q got %q", i, want, table.Labels[i])
		}
	}
	if len(table.Rows) != 2 {
		t.Fatalf("want 2 rows got %d", len(table.Rows))
	}
	if len(table.Rows[1]) != 3 || table.Rows[1][2] != "" {
		t.Fatalf("short row not padded: %q", table.Rows[1])
	}
	if table.FirstRow != 4 {
		t.Fatalf("first row: want 4 got %d", table.FirstRow)
	}
}

func TestResolveHeader_DataStartBeyondRows(t *testing.T) {
	t.Parallel()

	_, err := ResolveHeader(sampleRaw(), 1, 6)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrInsufficientRows) || !IsStructural(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveHeader_EmptyResultIsValid(t *testing.T) {
	t.Parallel()

	table, err := ResolveHeader(sampleRaw(), 1, 5)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("want 0 rows got %d", len(table.Rows))
	}

	empty, err := ResolveHeader(&model.RawTable{SheetName: "ZCN"}, 0, 0)
	if err != nil {
		t.Fatalf("resolve empty sheet: %v", err)
	}
	if len(empty.Labels) != 0 || len(empty.Rows) != 0 {
		t.Fatalf("unexpected table: %+v", empty)
	}
}

func TestResolveHeader_HeaderRowPastEnd(t *testing.T) {
	t.Parallel()

	raw := &model.RawTable{Rows: [][]string{{"a", "b"}}}
	table, err := ResolveHeader(raw, 3, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if table.Labels[0] != "Unnamed_0" || table.Labels[1] != "Unnamed_1" {
		t.Fatalf("labels: %v", table.Labels)
	}
}

func TestResolveHeader_NegativeOffset(t *testing.T) {
	t.Parallel()

	if _, err := ResolveHeader(sampleRaw(), -1, 3); !errors.Is(err, ErrInvalidOffset) {
		t.Fatalf("unexpected error: %v", err)
	}
}

package parser

import (
	"reflect"
	"testing"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

var flipkartHeaders = []string{
	"Order ID",
	"Invoice ID",
	"Sale Amount (Rs.)",
	"Payment Date",
	"Bank Settlement Value (Rs.)",
	"Marketplace Fee",
	"Protection Fund",
	"Refund",
	"Commission Rate",
	"TCS (Rs.)",
	"TDS (Rs.)",
	"GST on MP Fees (Rs.)",
	"Unnamed_12",
}

func TestMatchColumns_FlipkartHeaders(t *testing.T) {
	t.Parallel()

	mapping := MatchColumns(flipkartHeaders, model.LedgerSchema(false))

	want := map[model.CanonicalField]string{
		model.FieldOrderID:             "Order ID",
		model.FieldInvoice:             "Invoice ID",
		model.FieldSaleAmount:          "Sale Amount (Rs.)",
		model.FieldBankSettlementValue: "Bank Settlement Value (Rs.)",
		model.FieldTCS:                 "TCS (Rs.)",
		model.FieldGSTOnMPFees:         "GST on MP Fees (Rs.)",
	}
	for f, label := range want {
		if got := mapping[f]; got != label {
			t.Fatalf("%s: want %q got %q", f, label, got)
		}
	}
	if _, ok := mapping[model.FieldOrderDate]; ok {
		t.Fatalf("analysis field matched without flag")
	}
	if n := len(Unmatched(model.LedgerSchema(false), mapping)); n != 0 {
		t.Fatalf("want all required fields matched, %d unmatched", n)
	}
	for _, label := range mapping {
		if IsSyntheticLabel(label) {
			t.Fatalf("synthetic label matched: %q", label)
		}
	}
}

func TestMatchColumns_Deterministic(t *testing.T) {
	t.Parallel()

	schema := model.LedgerSchema(true)
	labels := []string{"Ordered On", "Invoice No", "Fund", "Net Amount", "Return Reason", "Amount"}
	first := MatchColumns(labels, schema)
	for i := 0; i < 20; i++ {
		if got := MatchColumns(labels, schema); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d: mapping changed: %v vs %v", i, first, got)
		}
	}
}

func TestMatchColumns_NeverBelowThreshold(t *testing.T) {
	t.Parallel()

	schema := model.LedgerSchema(true)
	labels := []string{"Qty", "SKU", "Ordered On", "zzz", "Invoice No", "Fee"}
	mapping := MatchColumns(labels, schema)

	for _, spec := range schema {
		label, ok := mapping[spec.Field]
		if !ok {
			continue
		}
		best := 0.0
		for _, syn := range spec.Synonyms {
			if s := Similarity(syn, label); s > best {
				best = s
			}
		}
		if best < MatchThreshold {
			t.Fatalf("%s bound to %q with score %.3f", spec.Field, label, best)
		}
	}

	if _, ok := MatchColumns([]string{"Qty"}, model.Schema{{Field: model.FieldRefund, Synonyms: []string{"Refund"}}})[model.FieldRefund]; ok {
		t.Fatalf("Refund should stay unmapped")
	}
}

func TestMatchColumns_LabelSharedAcrossFields(t *testing.T) {
	t.Parallel()

	schema := model.Schema{
		{Field: model.FieldMarketplaceFee, Synonyms: []string{"Marketplace Fee", "Commission", "MP Fee"}},
		{Field: model.FieldCommissionRate, Synonyms: []string{"Commission Rate", "Commission Rate (%)", "Commission %"}},
	}
	mapping := MatchColumns([]string{"Commission"}, schema)
	if mapping[model.FieldMarketplaceFee] != "Commission" || mapping[model.FieldCommissionRate] != "Commission" {
		t.Fatalf("unexpected mapping: %v", mapping)
	}
}

func TestBestMatch_TieKeepsEarliest(t *testing.T) {
	t.Parallel()

	label, score := BestMatch("ab", []string{"abX", "abY"})
	if label != "abX" {
		t.Fatalf("want abX got %q (%.3f)", label, score)
	}
	if label, _ := BestMatch("ab", nil); label != "" {
		t.Fatalf("want no match got %q", label)
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	if got := Similarity("Refund", "Refund"); got != 1 {
		t.Fatalf("identical: %v", got)
	}
	// 2*7/17
	if got := Similarity("Invoice", "Invoice ID"); got < 0.82 || got > 0.83 {
		t.Fatalf("Invoice/Invoice ID: %v", got)
	}
	if got := Similarity("Refund", "Qty"); got != 0 {
		t.Fatalf("disjoint: %v", got)
	}
}

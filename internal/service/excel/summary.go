package excel

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/reconcile"
)

// SummaryRows Summary sheet 内容（Metric / Value 两列，含表头）
func SummaryRows(s reconcile.Summary, unmatched []model.CanonicalField) [][]string {
	rows := [][]string{
		{"Metric", "Value"},
		{"Total Sales Amount", formatRupees(s.TotalSale)},
		{"Total Settlement Amount", formatRupees(s.TotalSettlement)},
		{"Total Deductions", formatRupees(s.TotalDeductions)},
		{"Deduction Rate (%)", s.DeductionRate.StringFixed(1) + "%"},
		{"Average Order Value", formatRupees(s.AverageOrder)},
		{"Total Orders", formatCount(s.Records)},
		{"Unique Invoices", formatCount(s.UniqueInvoices)},
		{"Unique Orders", formatCount(s.UniqueOrders)},
	}

	for _, d := range s.Deductions {
		rows = append(rows, []string{
			string(d.Field),
			fmt.Sprintf("%s (%s%%)", formatRupees(d.Amount), d.Percent.StringFixed(1)),
		})
	}

	rows = append(rows,
		[]string{"Returns", formatCount(s.Returns)},
		[]string{"Return Rate (%)", s.ReturnRate.StringFixed(1) + "%"},
		[]string{"ZTRA Matched", formatCount(s.TxMatched)},
		[]string{"ZTRA Amount", formatRupees(s.TotalTxAmount)},
		[]string{"ZCN Matched", formatCount(s.CNMatched)},
		[]string{"ZCN Receivable", formatRupees(s.TotalCNReceivable)},
		[]string{"Claims Matched", formatCount(s.ClaimMatched)},
		[]string{"Claims Approved", formatCount(s.ClaimsApproved)},
		[]string{"Claim Approved Amount", formatRupees(s.TotalClaimApproved)},
	)

	if len(unmatched) > 0 {
		names := make([]string, 0, len(unmatched))
		for _, f := range unmatched {
			names = append(names, string(f))
		}
		rows = append(rows, []string{"Unmatched Fields", strings.Join(names, ", ")})
	}
	return rows
}

// formatRupees ₹1,234,567.89
func formatRupees(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "₹" + groupThousands(intPart) + "." + frac
}

func formatCount(n int) string {
	if n < 0 {
		return "-" + groupThousands(fmt.Sprint(-n))
	}
	return groupThousands(fmt.Sprint(n))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

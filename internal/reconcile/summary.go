package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

var hundred = decimal.NewFromInt(100)

// deductionFields 扣费明细（顺序即导出顺序）
var deductionFields = []model.CanonicalField{
	model.FieldMarketplaceFee,
	model.FieldProtectionFund,
	model.FieldTCS,
	model.FieldTDS,
	model.FieldGSTOnMPFees,
	model.FieldRefund,
}

// Deduction 单项扣费
type Deduction struct {
	Field   model.CanonicalField `json:"field"`
	Amount  decimal.Decimal      `json:"amount"`
	Percent decimal.Decimal      `json:"percent"` // 占销售额百分比
}

// Summary 汇总指标（导出 Summary sheet 使用）
type Summary struct {
	Records        int `json:"records"`
	UniqueInvoices int `json:"uniqueInvoices"`
	UniqueOrders   int `json:"uniqueOrders"`

	TotalSale       decimal.Decimal `json:"totalSale"`
	TotalSettlement decimal.Decimal `json:"totalSettlement"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	AverageOrder    decimal.Decimal `json:"averageOrder"`
	DeductionRate   decimal.Decimal `json:"deductionRate"` // 百分比
	Deductions      []Deduction     `json:"deductions"`

	Returns    int             `json:"returns"`
	ReturnRate decimal.Decimal `json:"returnRate"`

	TxMatched      int `json:"txMatched"`
	CNMatched      int `json:"cnMatched"`
	ClaimMatched   int `json:"claimMatched"`
	ClaimsApproved int `json:"claimsApproved"`

	TotalTxAmount      decimal.Decimal `json:"totalTxAmount"`
	TotalCNReceivable  decimal.Decimal `json:"totalCnReceivable"`
	TotalClaimApproved decimal.Decimal `json:"totalClaimApproved"`
}

// Summarize 计算订单与关联结果的汇总；records 可为空（尚未关联）
func Summarize(orders []model.Order, records []model.ReconciledRecord) Summary {
	s := Summary{Records: len(orders)}

	sums := make(map[model.CanonicalField]decimal.Decimal)
	present := make(map[model.CanonicalField]bool)
	invoices := make(map[string]struct{})
	orderIDs := make(map[string]struct{})
	for i := range orders {
		o := &orders[i]
		if model.IsPresent(o.Invoice) {
			invoices[o.Invoice] = struct{}{}
		}
		if model.IsPresent(o.OrderID) {
			orderIDs[o.OrderID] = struct{}{}
		}
		s.TotalSale = s.TotalSale.Add(o.SaleAmount)
		s.TotalSettlement = s.TotalSettlement.Add(o.BankSettlementValue)
		for _, f := range deductionFields {
			if o.Missing[f] {
				continue
			}
			present[f] = true
			sums[f] = sums[f].Add(o.Money(f))
		}
		if model.IsPresent(o.ReturnType) {
			s.Returns++
		}
	}

	s.UniqueInvoices = len(invoices)
	s.UniqueOrders = len(orderIDs)
	s.TotalDeductions = s.TotalSale.Sub(s.TotalSettlement)
	s.DeductionRate = percent(s.TotalDeductions, s.TotalSale)
	for _, f := range deductionFields {
		if !present[f] {
			continue
		}
		s.Deductions = append(s.Deductions, Deduction{
			Field:   f,
			Amount:  sums[f],
			Percent: percent(sums[f], s.TotalSale),
		})
	}
	if len(orders) > 0 {
		s.AverageOrder = s.TotalSale.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
		s.ReturnRate = percent(decimal.NewFromInt(int64(s.Returns)), decimal.NewFromInt(int64(len(orders))))
	}

	for i := range records {
		r := &records[i]
		if r.TxAmount.Valid {
			s.TxMatched++
			s.TotalTxAmount = s.TotalTxAmount.Add(r.TxAmount.Value)
		}
		if r.CNReceivable.Valid {
			s.CNMatched++
			s.TotalCNReceivable = s.TotalCNReceivable.Add(r.CNReceivable.Value)
		}
		if model.IsPresent(r.ClaimStatus) {
			s.ClaimMatched++
			if r.ClaimStatus == model.ClaimApproved {
				s.ClaimsApproved++
			}
		}
		if r.ClaimApproved.Valid {
			s.TotalClaimApproved = s.TotalClaimApproved.Add(r.ClaimApproved.Value)
		}
	}
	return s
}

// percent part/total*100，保留两位；total<=0 时为 0
func percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

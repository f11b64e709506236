package model

// 关联结果列名（导出与展示共用，顺序固定）
const (
	ColOrderID        = "Order ID"
	ColInvoice        = "Invoice"
	ColSaleAmount     = "Sale Amount"
	ColRefund         = "Refund"
	ColProtectionFund = "Protection Fund"
	ColMarketplaceFee = "Marketplace Fee"
	ColGSTOnMPFees    = "GST on MP Fees (Rs.)"
	ColTCS            = "TCS (Rs.)"
	ColTDS            = "TDS (Rs.)"
	ColTxInvoice      = "ZTRANS Invoice"
	ColTxAmount       = "ZTRANS Amount"
	ColCNReceivable   = "ZGSTR1"
	ColClaimStatus    = "Claim Status"
	ColClaimApproved  = "Claim Approved Amt."
)

// ReconciledColumns 关联结果的固定列顺序
var ReconciledColumns = []string{
	ColOrderID,
	ColInvoice,
	ColSaleAmount,
	ColRefund,
	ColProtectionFund,
	ColMarketplaceFee,
	ColGSTOnMPFees,
	ColTCS,
	ColTDS,
	ColTxInvoice,
	ColTxAmount,
	ColCNReceivable,
	ColClaimStatus,
	ColClaimApproved,
}

// ReconciledRecord 一条订单与交易/贷项/索赔的关联结果
type ReconciledRecord struct {
	RowNo int `json:"rowNo"`

	OrderID        string `json:"orderId"`
	Invoice        string `json:"invoice"`
	SaleAmount     Amount `json:"saleAmount"`
	Refund         Amount `json:"refund"`
	ProtectionFund Amount `json:"protectionFund"`
	MarketplaceFee Amount `json:"marketplaceFee"`
	GSTOnMPFees    Amount `json:"gstOnMpFees"`
	TCS            Amount `json:"tcs"`
	TDS            Amount `json:"tds"`

	TxInvoice     string `json:"ztransInvoice"`
	TxAmount      Amount `json:"ztransAmount"`
	CNReceivable  Amount `json:"zgstr1"`
	ClaimStatus   string `json:"claimStatus"`
	ClaimApproved Amount `json:"claimApprovedAmount"`
}

// Cells 按 ReconciledColumns 顺序输出文本
func (r *ReconciledRecord) Cells() []string {
	return []string{
		orSentinel(r.OrderID),
		orSentinel(r.Invoice),
		r.SaleAmount.String(),
		r.Refund.String(),
		r.ProtectionFund.String(),
		r.MarketplaceFee.String(),
		r.GSTOnMPFees.String(),
		r.TCS.String(),
		r.TDS.String(),
		orSentinel(r.TxInvoice),
		r.TxAmount.String(),
		r.CNReceivable.String(),
		orSentinel(r.ClaimStatus),
		r.ClaimApproved.String(),
	}
}

func orSentinel(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}

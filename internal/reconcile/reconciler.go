package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

// txAggregate 同一 CUSTOMER REFERENCE 的交易汇总
type txAggregate struct {
	billingNo string
	amount    decimal.Decimal
}

// Reconcile 订单表依次左关联 ZTRA / ZCN / Claim
//
//  1. ZTRA 按 CUSTOMER REFERENCE 分组（Billing No 取第一个非空值，Total Amt 求和），Invoice = CUSTOMER REFERENCE
//  2. ZCN 按 Invoice Reference Number 分组取第一个 Total Receivable，Billing No = Invoice Reference Number
//  3. Claim 按 REFERENCE NO 分组，优先取第一条 Approved，否则取第一条，Invoice = REFERENCE NO
//
// tx 为 nil 表示未上传 ZTRA，此时跳过全部关联，关联字段均为 Sentinel。
// 结果行数与顺序始终与 orders 一致。
func Reconcile(orders []model.Order, tx []model.TransactionRow, cn []model.CreditNoteRow, claims []model.ClaimRow) []model.ReconciledRecord {
	records := make([]model.ReconciledRecord, len(orders))
	for i := range orders {
		records[i] = baseRecord(&orders[i])
	}
	if tx == nil {
		logger.L.Debug("reconcile skipped, no transaction table", "orders", len(orders))
		return records
	}

	txByRef := aggregateTransactions(tx)
	cnByRef := firstCreditNotes(cn)
	claimByRef := selectClaims(claims)

	for i := range records {
		r := &records[i]
		if !model.IsPresent(r.Invoice) {
			continue
		}

		if agg, ok := txByRef[r.Invoice]; ok {
			r.TxInvoice = agg.billingNo
			r.TxAmount = model.NewAmount(agg.amount)
			if model.IsPresent(agg.billingNo) {
				if rec, ok := cnByRef[agg.billingNo]; ok {
					r.CNReceivable = rec
				}
			}
		}

		if c, ok := claimByRef[r.Invoice]; ok {
			r.ClaimStatus = c.Status
			r.ClaimApproved = c.ApprovedAmount
		}
	}

	logger.L.Debug("reconcile finished",
		"orders", len(orders),
		"transactions", len(tx),
		"creditNotes", len(cn),
		"claims", len(claims),
	)
	return records
}

func baseRecord(o *model.Order) model.ReconciledRecord {
	return model.ReconciledRecord{
		RowNo:          o.RowNo,
		OrderID:        o.OrderID,
		Invoice:        o.Invoice,
		SaleAmount:     o.Amount(model.FieldSaleAmount),
		Refund:         o.Amount(model.FieldRefund),
		ProtectionFund: o.Amount(model.FieldProtectionFund),
		MarketplaceFee: o.Amount(model.FieldMarketplaceFee),
		GSTOnMPFees:    o.Amount(model.FieldGSTOnMPFees),
		TCS:            o.Amount(model.FieldTCS),
		TDS:            o.Amount(model.FieldTDS),
	}
}

func aggregateTransactions(rows []model.TransactionRow) map[string]*txAggregate {
	out := make(map[string]*txAggregate)
	for _, row := range rows {
		if !model.IsPresent(row.CustomerReference) {
			continue
		}
		agg, ok := out[row.CustomerReference]
		if !ok {
			agg = &txAggregate{}
			out[row.CustomerReference] = agg
		}
		if !model.IsPresent(agg.billingNo) && model.IsPresent(row.BillingNo) {
			agg.billingNo = row.BillingNo
		}
		agg.amount = agg.amount.Add(row.Amount)
	}
	return out
}

func firstCreditNotes(rows []model.CreditNoteRow) map[string]model.Amount {
	out := make(map[string]model.Amount)
	for _, row := range rows {
		if !model.IsPresent(row.InvoiceReference) {
			continue
		}
		if cur, ok := out[row.InvoiceReference]; ok && cur.Valid {
			continue
		}
		out[row.InvoiceReference] = row.TotalReceivable
	}
	return out
}

// selectClaims 每个 REFERENCE NO 选一条：第一条 Approved，否则第一条
func selectClaims(rows []model.ClaimRow) map[string]model.ClaimRow {
	out := make(map[string]model.ClaimRow)
	for _, row := range rows {
		if !model.IsPresent(row.ReferenceNo) {
			continue
		}
		cur, ok := out[row.ReferenceNo]
		switch {
		case !ok:
			out[row.ReferenceNo] = row
		case cur.Status != model.ClaimApproved && row.Status == model.ClaimApproved:
			out[row.ReferenceNo] = row
		}
	}
	return out
}

package parser

import (
	"strings"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

// ToOrders 投影表 -> 订单记录，逐列清洗金额与日期
// missing 为投影时整列补 Sentinel 的字段（含不在字段表中的字段）
func ToOrders(p *model.ProjectedTable, missing map[model.CanonicalField]bool) ([]model.Order, []NormalizationWarning) {
	if p == nil {
		return []model.Order{}, nil
	}

	orders := make([]model.Order, len(p.Rows))
	gone := make(map[model.CanonicalField]bool)
	for f := range missing {
		gone[f] = true
	}
	for _, f := range model.AllFields() {
		if p.Index(f) < 0 {
			gone[f] = true
		}
	}

	for i := range orders {
		orders[i].RowNo = p.FirstRow + i
		orders[i].Missing = gone
	}

	var warnings []NormalizationWarning
	for _, f := range p.Fields {
		values := p.Column(f)
		switch f.Kind() {
		case model.KindIdentifier:
			for i, v := range values {
				v = strings.TrimSpace(v)
				if f == model.FieldOrderID {
					orders[i].OrderID = v
				} else {
					orders[i].Invoice = v
				}
			}
		case model.KindText:
			for i, v := range values {
				orders[i].ReturnType = strings.TrimSpace(v)
			}
		case model.KindMoney:
			if gone[f] {
				continue
			}
			amounts, w := NormalizeCurrencyColumn(string(f), values)
			if w != nil {
				warnings = append(warnings, *w)
			}
			for i, a := range amounts {
				orders[i].SetMoney(f, a)
			}
		case model.KindDate:
			if gone[f] {
				continue
			}
			dates, w := NormalizeDateColumn(string(f), values)
			if w != nil {
				warnings = append(warnings, *w)
			}
			for i, d := range dates {
				orders[i].SetDate(f, d)
			}
		}
	}
	return orders, warnings
}

// ToTransactions 投影表 -> ZTRA 行
func ToTransactions(p *model.ProjectedTable) ([]model.TransactionRow, []NormalizationWarning) {
	refs := keyColumn(p, model.FieldCustomerReference)
	billing := keyColumn(p, model.FieldBillingNo)
	amounts, w := NormalizeCurrencyColumn(string(model.FieldTotalAmount), p.Column(model.FieldTotalAmount))

	rows := make([]model.TransactionRow, len(p.Rows))
	for i := range rows {
		rows[i] = model.TransactionRow{
			CustomerReference: refs[i],
			BillingNo:         billing[i],
			Amount:            amounts[i],
		}
	}
	return rows, collect(w)
}

// ToCreditNotes 投影表 -> ZCN 行
func ToCreditNotes(p *model.ProjectedTable) ([]model.CreditNoteRow, []NormalizationWarning) {
	refs := keyColumn(p, model.FieldInvoiceReference)
	receivable, w := optionalAmounts(p, model.FieldTotalReceivable)

	rows := make([]model.CreditNoteRow, len(p.Rows))
	for i := range rows {
		rows[i] = model.CreditNoteRow{
			InvoiceReference: refs[i],
			TotalReceivable:  receivable[i],
		}
	}
	return rows, collect(w)
}

// ToClaims 投影表 -> Claim 行
func ToClaims(p *model.ProjectedTable) ([]model.ClaimRow, []NormalizationWarning) {
	refs := keyColumn(p, model.FieldReferenceNo)
	// 状态按原文保留，只有恰为 "Approved" 才优先选取；空白视为空
	status := p.Column(model.FieldClaimStatus)
	for i, v := range status {
		if strings.TrimSpace(v) == "" {
			status[i] = ""
		}
	}
	approved, w := optionalAmounts(p, model.FieldApprovedAmount)

	rows := make([]model.ClaimRow, len(p.Rows))
	for i := range rows {
		rows[i] = model.ClaimRow{
			ReferenceNo:    refs[i],
			Status:         status[i],
			ApprovedAmount: approved[i],
		}
	}
	return rows, collect(w)
}

func keyColumn(p *model.ProjectedTable, f model.CanonicalField) []string {
	values := p.Column(f)
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// optionalAmounts 外部表金额：空单元格、Sentinel 以及整列缺失时保持无效，交由关联结果输出 Sentinel
func optionalAmounts(p *model.ProjectedTable, f model.CanonicalField) ([]model.Amount, *NormalizationWarning) {
	values := p.Column(f)
	out := make([]model.Amount, len(values))
	if p.Index(f) < 0 {
		return out, nil
	}

	parsed, w := NormalizeCurrencyColumn(string(f), values)
	for i, v := range values {
		if v = strings.TrimSpace(v); v == "" || v == model.Sentinel {
			continue
		}
		out[i] = model.NewAmount(parsed[i])
	}
	return out, w
}

func collect(w *NormalizationWarning) []NormalizationWarning {
	if w == nil {
		return nil
	}
	return []NormalizationWarning{*w}
}

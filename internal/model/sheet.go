package model

import "github.com/shopspring/decimal"

// SourceKind 上传数据来源
type SourceKind string

const (
	SourceLedger      SourceKind = "ledger" // 订单结算表（取第一个 sheet）
	SourceOrders      SourceKind = "orders" // 指定 sheet "Orders"
	SourceTransaction SourceKind = "ztra"   // 银行交易导出
	SourceCreditNote  SourceKind = "zcn"    // 贷项通知单导出
	SourceClaim       SourceKind = "claim"  // 索赔状态导出
)

// SheetName 来源对应的固定 sheet 名；ledger 不限定
func (k SourceKind) SheetName() string {
	switch k {
	case SourceOrders:
		return "Orders"
	case SourceTransaction:
		return "ZTRA"
	case SourceCreditNote:
		return "ZCN"
	case SourceClaim:
		return "Claim"
	}
	return ""
}

// ParseSourceKind 解析来源标识
func ParseSourceKind(s string) (SourceKind, bool) {
	switch k := SourceKind(s); k {
	case SourceLedger, SourceOrders, SourceTransaction, SourceCreditNote, SourceClaim:
		return k, true
	}
	return "", false
}

// 外部导出表的字段
const (
	FieldCustomerReference CanonicalField = "CUSTOMER REFERENCE"
	FieldBillingNo         CanonicalField = "Billing No"
	FieldTotalAmount       CanonicalField = "Total Amt"

	FieldInvoiceReference CanonicalField = "Invoice Reference Number"
	FieldTotalReceivable  CanonicalField = "Total Receivable"

	FieldReferenceNo    CanonicalField = "REFERENCE NO"
	FieldClaimStatus    CanonicalField = "STATUS-1"
	FieldApprovedAmount CanonicalField = "Approved Amount"
)

// TransactionSchema ZTRA 字段表
func TransactionSchema() Schema {
	return Schema{
		{Field: FieldCustomerReference, Synonyms: []string{"CUSTOMER REFERENCE", "Customer Reference", "Customer Ref"}},
		{Field: FieldBillingNo, Synonyms: []string{"Billing No", "Billing Number", "Billing Doc"}},
		{Field: FieldTotalAmount, Synonyms: []string{"Total Amt", "Total Amount", "Amount"}},
	}
}

// CreditNoteSchema ZCN 字段表
func CreditNoteSchema() Schema {
	return Schema{
		{Field: FieldInvoiceReference, Synonyms: []string{"Invoice Reference Number", "Invoice Ref No", "Invoice Reference"}},
		{Field: FieldTotalReceivable, Synonyms: []string{"Total Receivable", "Total Receivable Amount", "Receivable"}},
	}
}

// ClaimSchema Claim 字段表
func ClaimSchema() Schema {
	return Schema{
		{Field: FieldReferenceNo, Synonyms: []string{"REFERENCE NO", "Reference No", "Reference Number"}},
		{Field: FieldClaimStatus, Synonyms: []string{"STATUS-1", "STATUS", "Claim Status"}},
		{Field: FieldApprovedAmount, Synonyms: []string{"Approved Amount", "Approved Amt", "Claim Approved Amount"}},
	}
}

// KeyField 来源表的关联键字段；缺失则该表无法参与关联
func (k SourceKind) KeyField() CanonicalField {
	switch k {
	case SourceTransaction:
		return FieldCustomerReference
	case SourceCreditNote:
		return FieldInvoiceReference
	case SourceClaim:
		return FieldReferenceNo
	}
	return ""
}

// TransactionRow 银行交易导出的一行
type TransactionRow struct {
	CustomerReference string          `json:"customerReference"`
	BillingNo         string          `json:"billingNo"`
	Amount            decimal.Decimal `json:"amount"`
}

// CreditNoteRow 贷项通知单导出的一行
type CreditNoteRow struct {
	InvoiceReference string `json:"invoiceReference"`
	TotalReceivable  Amount `json:"totalReceivable"`
}

// ClaimRow 索赔导出的一行
type ClaimRow struct {
	ReferenceNo    string `json:"referenceNo"`
	Status         string `json:"status"`
	ApprovedAmount Amount `json:"approvedAmount"`
}

// ClaimApproved 索赔状态取值中代表“已批准”的文本
const ClaimApproved = "Approved"

package model

import "github.com/shopspring/decimal"

// Order 清洗后的订单结算记录
type Order struct {
	RowNo int `json:"rowNo"`

	OrderID string `json:"orderId"`
	Invoice string `json:"invoice"`

	SaleAmount          decimal.Decimal `json:"saleAmount"`
	BankSettlementValue decimal.Decimal `json:"bankSettlementValue"`
	MarketplaceFee      decimal.Decimal `json:"marketplaceFee"`
	ProtectionFund      decimal.Decimal `json:"protectionFund"`
	Refund              decimal.Decimal `json:"refund"`
	CommissionRate      decimal.Decimal `json:"commissionRate"`
	TCS                 decimal.Decimal `json:"tcs"`
	TDS                 decimal.Decimal `json:"tds"`
	GSTOnMPFees         decimal.Decimal `json:"gstOnMpFees"`

	PaymentDate  Date `json:"paymentDate"`
	OrderDate    Date `json:"orderDate"`
	InvoiceDate  Date `json:"invoiceDate"`
	DispatchDate Date `json:"dispatchDate"`

	ReturnType string `json:"returnType"`

	// Missing 投影时以 Sentinel 补齐的字段
	Missing map[CanonicalField]bool `json:"-"`
}

// Money 按字段取金额；非金额字段返回 0
func (o *Order) Money(f CanonicalField) decimal.Decimal {
	switch f {
	case FieldSaleAmount:
		return o.SaleAmount
	case FieldBankSettlementValue:
		return o.BankSettlementValue
	case FieldMarketplaceFee:
		return o.MarketplaceFee
	case FieldProtectionFund:
		return o.ProtectionFund
	case FieldRefund:
		return o.Refund
	case FieldCommissionRate:
		return o.CommissionRate
	case FieldTCS:
		return o.TCS
	case FieldTDS:
		return o.TDS
	case FieldGSTOnMPFees:
		return o.GSTOnMPFees
	}
	return decimal.Zero
}

// SetMoney 按字段写入金额
func (o *Order) SetMoney(f CanonicalField, v decimal.Decimal) {
	switch f {
	case FieldSaleAmount:
		o.SaleAmount = v
	case FieldBankSettlementValue:
		o.BankSettlementValue = v
	case FieldMarketplaceFee:
		o.MarketplaceFee = v
	case FieldProtectionFund:
		o.ProtectionFund = v
	case FieldRefund:
		o.Refund = v
	case FieldCommissionRate:
		o.CommissionRate = v
	case FieldTCS:
		o.TCS = v
	case FieldTDS:
		o.TDS = v
	case FieldGSTOnMPFees:
		o.GSTOnMPFees = v
	}
}

// SetDate 按字段写入日期
func (o *Order) SetDate(f CanonicalField, d Date) {
	switch f {
	case FieldPaymentDate:
		o.PaymentDate = d
	case FieldOrderDate:
		o.OrderDate = d
	case FieldInvoiceDate:
		o.InvoiceDate = d
	case FieldDispatchDate:
		o.DispatchDate = d
	}
}

// Amount 以可缺失形式返回金额；Sentinel 补齐的字段视为缺失
func (o *Order) Amount(f CanonicalField) Amount {
	if o.Missing[f] {
		return Amount{}
	}
	return NewAmount(o.Money(f))
}

// HasKey 发票号可用于关联（非空且非 Sentinel）
func (o *Order) HasKey() bool {
	return IsPresent(o.Invoice)
}

// IsPresent 判断文本是否为真实取值
func IsPresent(s string) bool {
	return s != "" && s != Sentinel
}

// Cell 按字段输出文本（导出用）；Sentinel 补齐的字段输出 Sentinel
func (o *Order) Cell(f CanonicalField) string {
	if o.Missing[f] {
		return Sentinel
	}
	switch f.Kind() {
	case KindIdentifier:
		if f == FieldOrderID {
			return orSentinel(o.OrderID)
		}
		return orSentinel(o.Invoice)
	case KindText:
		return orSentinel(o.ReturnType)
	case KindDate:
		switch f {
		case FieldPaymentDate:
			return o.PaymentDate.String()
		case FieldOrderDate:
			return o.OrderDate.String()
		case FieldInvoiceDate:
			return o.InvoiceDate.String()
		case FieldDispatchDate:
			return o.DispatchDate.String()
		}
		return Sentinel
	}
	return o.Money(f).String()
}

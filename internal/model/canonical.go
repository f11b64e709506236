package model

// Sentinel 缺失值标记：未匹配的字段、未关联到的外部数据一律填充该值
const Sentinel = "NA"

// CanonicalField 统一口径字段（与上传文件的实际列名无关）
type CanonicalField string

const (
	FieldOrderID             CanonicalField = "Order ID"
	FieldInvoice             CanonicalField = "Invoice"
	FieldSaleAmount          CanonicalField = "Sale Amount"
	FieldPaymentDate         CanonicalField = "Payment Date"
	FieldBankSettlementValue CanonicalField = "Bank Settlement Value"
	FieldMarketplaceFee      CanonicalField = "Marketplace Fee"
	FieldProtectionFund      CanonicalField = "Protection Fund"
	FieldRefund              CanonicalField = "Refund"
	FieldCommissionRate      CanonicalField = "Commission Rate"
	FieldTCS                 CanonicalField = "TCS"
	FieldTDS                 CanonicalField = "TDS"
	FieldGSTOnMPFees         CanonicalField = "GST on MP Fees"

	// 分析用字段（可选）
	FieldOrderDate    CanonicalField = "Order Date"
	FieldInvoiceDate  CanonicalField = "Invoice Date"
	FieldDispatchDate CanonicalField = "Dispatch Date"
	FieldReturnType   CanonicalField = "Return Type"
)

// FieldKind 字段取值类型
type FieldKind int

const (
	KindIdentifier FieldKind = iota // 订单号/发票号
	KindMoney                       // 金额
	KindDate                        // 日期
	KindText                        // 其他文本
)

// Kind 返回字段的取值类型
func (f CanonicalField) Kind() FieldKind {
	switch f {
	case FieldOrderID, FieldInvoice:
		return KindIdentifier
	case FieldPaymentDate, FieldOrderDate, FieldInvoiceDate, FieldDispatchDate:
		return KindDate
	case FieldReturnType:
		return KindText
	default:
		return KindMoney
	}
}

// FieldSpec 统一口径字段及其可接受的列名（按优先级排列）
type FieldSpec struct {
	Field    CanonicalField `json:"field"`
	Synonyms []string       `json:"synonyms"`
}

// Schema 有序字段表；顺序即投影后的列顺序
type Schema []FieldSpec

// Fields 按顺序返回字段名
func (s Schema) Fields() []CanonicalField {
	out := make([]CanonicalField, 0, len(s))
	for _, spec := range s {
		out = append(out, spec.Field)
	}
	return out
}

// Has 判断字段是否属于该表
func (s Schema) Has(f CanonicalField) bool {
	for _, spec := range s {
		if spec.Field == f {
			return true
		}
	}
	return false
}

var requiredFields = Schema{
	{Field: FieldOrderID, Synonyms: []string{"Order ID", "OrderID", "Order Id"}},
	{Field: FieldInvoice, Synonyms: []string{"Invoice", "Invoice ID", "Invoice No"}},
	{Field: FieldSaleAmount, Synonyms: []string{"Sale Amount", "Sale Amount (Rs.)", "Sales Amount"}},
	{Field: FieldPaymentDate, Synonyms: []string{"Payment Date", "Date", "Settlement Date"}},
	{Field: FieldBankSettlementValue, Synonyms: []string{"Bank Settlement Value (Rs.)", "Settlement Amount", "Net Amount"}},
	{Field: FieldMarketplaceFee, Synonyms: []string{"Marketplace Fee", "Commission", "MP Fee"}},
	{Field: FieldProtectionFund, Synonyms: []string{"Protection Fund", "Protection", "Fund"}},
	{Field: FieldRefund, Synonyms: []string{"Refund", "Refund Amount", "Return Amount"}},
	{Field: FieldCommissionRate, Synonyms: []string{"Commission Rate", "Commission Rate (%)", "Commission %"}},
	{Field: FieldTCS, Synonyms: []string{"TCS (Rs.)", "TCS", "Tax Collected at Source"}},
	{Field: FieldTDS, Synonyms: []string{"TDS (Rs.)", "TDS", "Tax Deducted at Source"}},
	{Field: FieldGSTOnMPFees, Synonyms: []string{"GST on MP Fees (Rs.)", "GST on MP Fees", "GST on Fees"}},
}

var analysisFields = Schema{
	{Field: FieldOrderDate, Synonyms: []string{"Order Date", "Order Created Date", "Ordered On"}},
	{Field: FieldInvoiceDate, Synonyms: []string{"Invoice Date", "Invoice Created Date"}},
	{Field: FieldDispatchDate, Synonyms: []string{"Dispatch Date", "Dispatched Date", "Shipped Date"}},
	{Field: FieldReturnType, Synonyms: []string{"Return Type", "Return Reason", "Returns Type"}},
}

// LedgerSchema 订单结算表字段表
// includeAnalysis=false 时只匹配必需字段
func LedgerSchema(includeAnalysis bool) Schema {
	n := len(requiredFields)
	if includeAnalysis {
		n += len(analysisFields)
	}
	out := make(Schema, 0, n)
	out = append(out, requiredFields...)
	if includeAnalysis {
		out = append(out, analysisFields...)
	}
	return out
}

// AllFields 全部统一口径字段（枚举顺序）
func AllFields() []CanonicalField {
	return LedgerSchema(true).Fields()
}

package session

import (
	"errors"
	"time"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/importer"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/reconcile"
)

// ErrNoLedger 尚未上传订单结算表
var ErrNoLedger = errors.New("no ledger loaded")

// Session 单个用户会话的全部中间结果
// 会话值不可变：每次操作返回新的 *Session，由调用方写回 Store。
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Ledger       *importer.SheetResult `json:"-"`
	Transactions *importer.SheetResult `json:"-"`
	CreditNotes  *importer.SheetResult `json:"-"`
	Claims       *importer.SheetResult `json:"-"`

	Records []model.ReconciledRecord `json:"-"`
	Summary *reconcile.Summary       `json:"-"`

	Reports []model.ImportReport `json:"-"`
}

func (s *Session) clone() *Session {
	cp := *s
	cp.Reports = append([]model.ImportReport(nil), s.Reports...)
	cp.UpdatedAt = time.Now()
	return &cp
}

// WithUpload 合入一次上传的结果；同类数据整体替换，已有关联结果作废
func (s *Session) WithUpload(u *importer.Upload) *Session {
	next := s.clone()
	for _, r := range u.Results {
		switch r.Kind {
		case model.SourceLedger, model.SourceOrders:
			next.Ledger = r
		case model.SourceTransaction:
			next.Transactions = r
		case model.SourceCreditNote:
			next.CreditNotes = r
		case model.SourceClaim:
			next.Claims = r
		}
	}
	next.Records = nil
	next.Summary = nil
	next.Reports = append(next.Reports, u.Report)
	return next
}

// Reconcile 用当前已加载的数据执行关联
func (s *Session) Reconcile() (*Session, error) {
	if s.Ledger == nil {
		return nil, ErrNoLedger
	}

	var (
		tx     []model.TransactionRow
		cn     []model.CreditNoteRow
		claims []model.ClaimRow
	)
	if s.Transactions != nil {
		tx = s.Transactions.Transactions
		if tx == nil {
			tx = []model.TransactionRow{}
		}
	}
	if s.CreditNotes != nil {
		cn = s.CreditNotes.CreditNotes
	}
	if s.Claims != nil {
		claims = s.Claims.Claims
	}

	next := s.clone()
	next.Records = reconcile.Reconcile(s.Ledger.Orders, tx, cn, claims)
	summary := reconcile.Summarize(s.Ledger.Orders, next.Records)
	next.Summary = &summary
	return next, nil
}

// CurrentSummary 已关联时返回关联汇总，否则只基于订单计算
func (s *Session) CurrentSummary() *reconcile.Summary {
	if s.Summary != nil {
		return s.Summary
	}
	if s.Ledger == nil {
		return nil
	}
	summary := reconcile.Summarize(s.Ledger.Orders, nil)
	return &summary
}

// SourceStatus 已加载数据的概要
type SourceStatus struct {
	Kind      model.SourceKind             `json:"kind"`
	SheetName string                       `json:"sheetName"`
	Rows      int                          `json:"rows"`
	Mapping   model.ColumnMapping          `json:"mapping"`
	Unmatched []model.CanonicalField       `json:"unmatched"`
	Warnings  []model.NormalizationWarning `json:"warnings,omitempty"`
}

// Status 会话状态（接口返回）
type Status struct {
	ID         string             `json:"id"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	Sources    []SourceStatus     `json:"sources"`
	Reconciled bool               `json:"reconciled"`
	Records    int                `json:"records"`
	Summary    *reconcile.Summary `json:"summary,omitempty"`
}

// Status 汇总会话状态
func (s *Session) Status() Status {
	st := Status{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		Sources:    []SourceStatus{},
		Reconciled: s.Records != nil,
		Records:    len(s.Records),
		Summary:    s.CurrentSummary(),
	}
	for _, r := range []*importer.SheetResult{s.Ledger, s.Transactions, s.CreditNotes, s.Claims} {
		if r == nil {
			continue
		}
		st.Sources = append(st.Sources, SourceStatus{
			Kind:      r.Kind,
			SheetName: r.Report.SheetName,
			Rows:      r.Report.Rows,
			Mapping:   r.Mapping,
			Unmatched: r.Unmatched,
			Warnings:  r.Report.Warnings,
		})
	}
	return st
}

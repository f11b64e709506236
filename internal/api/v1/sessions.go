package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/reconcile"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/session"
)

// CreateSession 新建会话
// POST /api/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	logger.L.Info("session created", "sessionId", sess.ID)
	success(c, sess.Status())
}

// GetSession 会话状态
// GET /api/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}
	success(c, sess.Status())
}

// DeleteSession 结束会话
// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	if _, ok := h.loadSession(c); !ok {
		return
	}
	h.sessions.Delete(c.Param("id"))
	success(c, gin.H{"deleted": true})
}

// ReconcileResponse 关联结果
type ReconcileResponse struct {
	Columns []string                 `json:"columns"`
	Records []model.ReconciledRecord `json:"records"`
	Summary *reconcile.Summary       `json:"summary"`
}

// Reconcile 对已上传的数据执行关联
// POST /api/sessions/:id/reconcile
func (h *Handler) Reconcile(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	next, err := sess.Reconcile()
	if err != nil {
		if errors.Is(err, session.ErrNoLedger) {
			errorResponse(c, CodeNoLedger, "请先上传订单结算表")
			return
		}
		errorResponse(c, CodeInternal, "关联失败: "+err.Error())
		return
	}
	h.sessions.Put(next)

	logger.L.Info("session reconciled", "sessionId", next.ID, "records", len(next.Records))
	success(c, ReconcileResponse{
		Columns: model.ReconciledColumns,
		Records: next.Records,
		Summary: next.Summary,
	})
}

// ListRecords 返回关联结果；尚未关联时返回空列表
// GET /api/sessions/:id/records
func (h *Handler) ListRecords(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	records := sess.Records
	if records == nil {
		records = []model.ReconciledRecord{}
	}
	success(c, ReconcileResponse{
		Columns: model.ReconciledColumns,
		Records: records,
		Summary: sess.CurrentSummary(),
	})
}

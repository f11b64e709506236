package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/importer"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/excel"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/session"
)

// 下载链接有效期
const downloadTTL = 10 * time.Minute

// Options 处理器参数
type Options struct {
	LedgerDefaults model.ImportOptions
	MaxUploadBytes int64
}

// Handler V1 API 处理器
type Handler struct {
	sessions    *session.Store
	coordinator *importer.Coordinator
	exporter    *excel.Exporter
	downloads   *exportDownloadStore
	opts        Options
	startedAt   time.Time
}

// NewHandler 创建 V1 API 处理器
func NewHandler(sessions *session.Store, opts Options) *Handler {
	return &Handler{
		sessions:    sessions,
		coordinator: importer.NewCoordinator(opts.LedgerDefaults, logProgress),
		exporter:    excel.NewExporter(),
		downloads:   newExportDownloadStore(),
		opts:        opts,
		startedAt:   time.Now(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 会话
	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions/:id", h.GetSession)
	router.DELETE("/sessions/:id", h.DeleteSession)

	// 数据上传
	router.POST("/sessions/:id/ledger", h.UploadLedger)
	router.POST("/sessions/:id/sources/:kind", h.UploadSource)

	// 关联
	router.POST("/sessions/:id/reconcile", h.Reconcile)
	router.GET("/sessions/:id/records", h.ListRecords)

	// 导出
	router.POST("/sessions/:id/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 错误码
const (
	CodeBadRequest      = 1001
	CodeSessionNotFound = 1004
	CodeMalformedTable  = 2001
	CodeNoLedger        = 3001
	CodeNothingToExport = 3002
	CodeInternal        = 5000
)

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// loadSession 读取路径中的会话；不存在时直接写错误响应
func (h *Handler) loadSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		errorResponse(c, CodeSessionNotFound, "会话不存在或已过期")
		return nil, false
	}
	return sess, true
}

func logProgress(e importer.ProgressEvent) {
	logger.L.Debug("import progress", "type", e.Type, "message", e.Message)
}

package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/config"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/parser"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/excel"
)

// sourceCombined 一个工作簿内同时包含 Orders/ZTRA/ZCN/Claim
const sourceCombined = "combined"

// UploadLedger 上传订单结算表（读取第一个 sheet）
// POST /api/sessions/:id/ledger
// 表单: file, headerRow (0-3), dataStartRow (0-10), includeAnalysis
func (h *Handler) UploadLedger(c *gin.Context) {
	opts, err := parseImportOptions(c, h.coordinator.DefaultOptions(model.SourceLedger))
	if err != nil {
		errorResponse(c, CodeBadRequest, err.Error())
		return
	}
	h.importUpload(c, []model.SourceKind{model.SourceLedger}, map[model.SourceKind]model.ImportOptions{
		model.SourceLedger: opts,
	})
}

// UploadSource 上传指定来源的工作簿
// POST /api/sessions/:id/sources/:kind
// kind: orders | ztra | zcn | claim | combined
func (h *Handler) UploadSource(c *gin.Context) {
	raw := c.Param("kind")

	if raw == sourceCombined {
		opts, err := parseImportOptions(c, h.coordinator.DefaultOptions(model.SourceOrders))
		if err != nil {
			errorResponse(c, CodeBadRequest, err.Error())
			return
		}
		// 表头参数只作用于 Orders，外部导出表固定首行表头
		h.importUpload(c, nil, map[model.SourceKind]model.ImportOptions{
			model.SourceOrders: opts,
		})
		return
	}

	kind, ok := model.ParseSourceKind(raw)
	if !ok || kind == model.SourceLedger {
		errorResponse(c, CodeBadRequest, fmt.Sprintf("不支持的数据来源: %s", raw))
		return
	}
	opts, err := parseImportOptions(c, h.coordinator.DefaultOptions(kind))
	if err != nil {
		errorResponse(c, CodeBadRequest, err.Error())
		return
	}
	h.importUpload(c, []model.SourceKind{kind}, map[model.SourceKind]model.ImportOptions{kind: opts})
}

func (h *Handler) importUpload(c *gin.Context, kinds []model.SourceKind, opts map[model.SourceKind]model.ImportOptions) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	wb, err := h.openUpload(c)
	if err != nil {
		writeImportError(c, err)
		return
	}
	defer wb.Close()

	upload, err := h.coordinator.Import(wb, kinds, opts)
	if err != nil {
		logger.L.Warn("import failed", "sessionId", sess.ID, "file", wb.Name(), "error", err)
		writeImportError(c, err)
		return
	}

	next := sess.WithUpload(upload)
	h.sessions.Put(next)
	success(c, gin.H{
		"report":  upload.Report,
		"session": next.Status(),
	})
}

func (h *Handler) openUpload(c *gin.Context) (*excel.Workbook, error) {
	if h.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return excel.OpenWorkbook(fh.Filename, f)
}

var errMissingFile = errors.New("missing upload file")

func writeImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errMissingFile):
		errorResponse(c, CodeBadRequest, "未找到上传文件")
	case parser.IsStructural(err):
		errorResponse(c, CodeMalformedTable, "表格结构错误: "+err.Error())
	default:
		errorResponse(c, CodeInternal, "导入失败: "+err.Error())
	}
}

// parseImportOptions 读取表单中的表头参数；未填写的项取默认值
func parseImportOptions(c *gin.Context, defaults model.ImportOptions) (model.ImportOptions, error) {
	opts := defaults

	if v := c.PostForm("headerRow"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("headerRow 必须是整数: %s", v)
		}
		opts.HeaderRow = n
	}
	if v := c.PostForm("dataStartRow"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("dataStartRow 必须是整数: %s", v)
		}
		opts.DataStartRow = n
	}
	if v := c.PostForm("includeAnalysis"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("includeAnalysis 必须是布尔值: %s", v)
		}
		opts.IncludeAnalysis = b
	}

	if err := config.ValidateRows(opts.HeaderRow, opts.DataStartRow); err != nil {
		return opts, fmt.Errorf("表头参数无效: %v", err)
	}
	return opts, nil
}

package v1

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/excel"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportResponse 导出结果
type ExportResponse struct {
	Token       string   `json:"token"`
	Filename    string   `json:"filename"`
	DownloadURL string   `json:"downloadUrl"`
	Sheets      []string `json:"sheets"`
}

// Export 生成导出文件并返回一次性下载链接
// POST /api/sessions/:id/export
func (h *Handler) Export(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	f, err := h.exporter.Export(exportInput(sess))
	if err != nil {
		if errors.Is(err, excel.ErrNothingToExport) {
			errorResponse(c, CodeNothingToExport, "没有可导出的数据")
			return
		}
		errorResponse(c, CodeInternal, "导出失败: "+err.Error())
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		errorResponse(c, CodeInternal, "写入文件失败")
		return
	}

	filename := exportFilename(time.Now())
	token := h.downloads.put(exportDownload{
		filename:  filename,
		data:      buf.Bytes(),
		sessionID: sess.ID,
	}, downloadTTL)

	logger.L.Info("export prepared", "sessionId", sess.ID, "file", filename, "bytes", buf.Len())
	success(c, ExportResponse{
		Token:       token,
		Filename:    filename,
		DownloadURL: "/api/export/download/" + token,
		Sheets:      f.GetSheetList(),
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	logger.L.Info("export downloaded", "sessionId", item.sessionID, "file", item.filename)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": item.filename}))
	c.Data(http.StatusOK, xlsxContentType, item.data)
}

// exportInput 按会话已有数据组装导出内容；缺失部分对应的 sheet 不生成
func exportInput(sess *session.Session) excel.ExportInput {
	in := excel.ExportInput{
		Records: sess.Records,
		Summary: sess.CurrentSummary(),
	}
	if sess.Ledger != nil {
		in.Projected = sess.Ledger.Projected
		in.Orders = sess.Ledger.Orders
		in.Unmatched = sess.Ledger.Unmatched
	}
	return in
}

func exportFilename(now time.Time) string {
	return fmt.Sprintf("flipkart_payments_%s.xlsx", now.Format("20060102_150405"))
}

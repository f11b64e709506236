package v1

import (
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Sessions int    `json:"sessions"` // 活跃会话数
	Uptime   string `json:"uptime"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	success(c, StatusResponse{
		Sessions: h.sessions.Count(),
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
	})
}

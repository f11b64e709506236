package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/njnj4101989-sudo/flipkart-payments/internal/api/v1"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/config"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/session"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	sessions *session.Store
	v1       *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := session.NewStore(cfg.Session.TTL.Duration, cfg.Session.CleanupInterval.Duration)
	v1Handler := v1.NewHandler(sessions, v1.Options{
		LedgerDefaults: model.ImportOptions{
			HeaderRow:    cfg.Import.HeaderRow,
			DataStartRow: cfg.Import.DataStartRow,
		},
		MaxUploadBytes: cfg.Import.MaxUploadBytes,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	if devMode {
		router.Use(gin.Logger())
	} else {
		router.Use(requestLogger())
	}
	router.MaxMultipartMemory = cfg.Import.MaxUploadBytes

	s := &Server{
		router:   router,
		sessions: sessions,
		v1:       v1Handler,
	}
	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.Response{Code: http.StatusNotFound, Message: "接口不存在"})
	})
}

// requestLogger 非开发模式下用结构化日志记录请求
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.L.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Sessions 获取会话存储（用于测试）
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

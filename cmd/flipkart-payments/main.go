package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/config"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/server"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/util"
)

var (
	port      = flag.Int("port", 0, "服务端口 (config.toml / 环境变量优先；仅当二者均未配置 port 时生效)")
	devMode   = flag.Bool("dev", false, "开发模式")
	logLevel  = flag.String("logLevel", "", "日志级别 debug/info/warn/error (覆盖配置文件)")
	noBrowser = flag.Bool("noBrowser", false, "不自动打开浏览器")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Flipkart Payments - 结算对账工具")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Printf("加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger.InitLogger(cfg.Log.Level)
	if info.FileFound {
		logger.L.Info("config loaded", "path", info.Path)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			logger.L.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// 打开浏览器
	if !cfg.Server.DevMode && !*noBrowser {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	logger.L.Info("shutdown", "sessions", srv.Sessions().Count())
}

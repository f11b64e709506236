package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// L 全局日志；InitLogger 之前为 slog 默认实现
var L = slog.Default()

// ParseLevel 解析日志级别，无法识别时返回 info 与 false
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// InitLogger 初始化全局日志（JSON 输出到 stdout），启动时加载配置后调用一次
func InitLogger(levelStr string) {
	InitLoggerWithWriter(levelStr, os.Stdout)
}

// InitLoggerWithWriter 指定输出目标
func InitLoggerWithWriter(levelStr string, w io.Writer) {
	level, ok := ParseLevel(levelStr)
	if !ok {
		slog.Warn("invalid log level, defaulting to info", "configuredLevel", levelStr)
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	L = slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(L)
	L.Info("logger initialized", "level", level.String())
}

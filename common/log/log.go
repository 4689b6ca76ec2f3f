package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger = newLogger(os.Stdout, "matiate")

func newLogger(w io.Writer, appName string) *log.Logger {
	l := log.New(w)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetLevel(log.InfoLevel)
	return l
}

// InitLog 按应用名与日志级别重建全局 logger
func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName)

	// 启用调用者信息（显示文件名和行号）
	logger.SetReportCaller(true)
	logger.SetLevel(ParseLevel(logLevel))
}

// ParseLevel 解析配置中的日志级别，未知值按 info 处理
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetOutput 重定向日志输出，终端训练器用它把日志与牌桌渲染分开
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 运行时调整日志级别（配置热更新时调用）
func SetLevel(logLevel string) {
	logger.SetLevel(ParseLevel(logLevel))
}

// With 返回带固定字段的子 logger，例如 session、seat
func With(keyvals ...any) *log.Logger {
	return logger.With(keyvals...)
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
	} else {
		logger.Debugf(format, args...)
	}
}

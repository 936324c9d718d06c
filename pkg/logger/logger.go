// Package logger 基于zap的结构化日志
//
// 使用方式：
//
//	log, err := logger.New("info", "json", "stdout", true)
//	ctx = logger.WithContext(ctx, log.With(zap.String("request_id", id)))
//	logger.FromContext(ctx).Info("book created", zap.Uint("id", id))
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// New 创建zap日志实例
// 参数说明：
// - level: debug | info | warn | error
// - format: console | json
// - output: stdout | stderr | /path/to/file
// - enableCaller: 是否输出调用位置
func New(level, format, output string, enableCaller bool) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("无效的日志级别 %q: %w", level, err)
		}
		lvl = parsed
	}

	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("无效的日志格式: %s", format)
	}

	if output == "" {
		output = "stdout"
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          format,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !enableCaller,
		DisableStacktrace: lvl > zapcore.DebugLevel,
	}

	return cfg.Build()
}

// WithContext 将日志实例放入context（通常由请求日志中间件调用）
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext 从context取日志实例，没有则返回全局Logger
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.L()
}

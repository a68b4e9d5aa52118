package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"AiBeiTongServer/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger

// L 返回全局 logger（未初始化时为 nil）。
func L() *zap.Logger {
	return global
}

// ReplaceGlobal 设置全局 logger，并同步 zap 的全局实例。
// 需在进程启动时调用一次。
func ReplaceGlobal(l *zap.Logger) {
	global = l
	zap.ReplaceGlobals(l)
}

// Build 根据配置构建 zap Logger。
// - 默认输出 stdout/stderr（容器场景方便 docker logs）。
// - 可通过 OutputPaths/ErrorOutputPaths 写入文件（无滚动，滚动由外部系统负责）。
// - Level 解析失败时回退到 info。
func Build(cfg config.LoggerConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout(time.RFC3339Nano),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Encoding) == "console" {
		if cfg.EnableColor {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	outSync := buildSyncer(cfg.OutputPaths, zapcore.AddSync(os.Stdout))
	errSync := buildSyncer(cfg.ErrorOutputPaths, zapcore.AddSync(os.Stderr))

	core := zapcore.NewCore(encoder, outSync, level)
	opts := []zap.Option{
		zap.ErrorOutput(errSync),
		zap.AddCaller(),
		zap.AddCallerSkip(1), // 跳过封装层，定位业务代码行号
	}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return zap.New(core, opts...), nil
}

// buildSyncer 根据配置构建 WriteSyncer，支持 stdout/stderr 关键字与文件路径。
// 文件打开失败时忽略该路径，全部失败时回退到 fallback。
func buildSyncer(paths []string, fallback zapcore.WriteSyncer) zapcore.WriteSyncer {
	if len(paths) == 0 {
		return fallback
	}
	var syncers []zapcore.WriteSyncer
	for _, p := range paths {
		switch strings.ToLower(p) {
		case "stdout":
			syncers = append(syncers, zapcore.AddSync(os.Stdout))
		case "stderr":
			syncers = append(syncers, zapcore.AddSync(os.Stderr))
		default:
			f, err := os.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err == nil {
				syncers = append(syncers, zapcore.AddSync(f))
			}
		}
	}
	if len(syncers) == 0 {
		return fallback
	}
	return zapcore.NewMultiWriteSyncer(syncers...)
}

// withTrace 从 ctx 中取 trace_id 追加到字段里。
func withTrace(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if traceId, ok := ctx.Value("trace_id").(string); ok && traceId != "" {
		fields = append(fields, zap.String("trace_id", traceId))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	global.Debug(msg, withTrace(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	global.Info(msg, withTrace(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	global.Warn(msg, withTrace(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	global.Error(msg, withTrace(ctx, fields)...)
}

func Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	global.Fatal(msg, withTrace(ctx, fields)...)
}

// ========== Field 辅助函数封装 ==========
// 业务代码无需直接导入 zap 包。

func String(key, value string) zap.Field { return zap.String(key, value) }

func Int(key string, value int) zap.Field { return zap.Int(key, value) }

func Int64(key string, value int64) zap.Field { return zap.Int64(key, value) }

func Float64(key string, value float64) zap.Field { return zap.Float64(key, value) }

func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

// ErrorField 创建错误类型字段
func ErrorField(key string, err error) zap.Field { return zap.Error(err) }

func Any(key string, value interface{}) zap.Field { return zap.Any(key, value) }

func Duration(key string, value time.Duration) zap.Field { return zap.Duration(key, value) }

func Time(key string, value time.Time) zap.Field { return zap.Time(key, value) }

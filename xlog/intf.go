package xlog

import (
	"context"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/kv"
)

type logLevel string

const (
	LogLevelDebug logLevel = "DEBUG"
	LogLevelInfo  logLevel = "INFO"
	LogLevelWarn  logLevel = "WARN"
	LogLevelError logLevel = "ERROR"
)

func (lvl logLevel) zapLevel() zapcore.Level {
	return getLogLevelOrDefault(string(lvl))
}

func (lvl logLevel) String() string {
	return string(lvl)
}

// ParseLogLevel is case-insensitive, the unknown levels act as DEBUG.
func ParseLogLevel(lvl string) logLevel {
	return logLevel(strings.ToUpper(strings.TrimSpace(lvl)))
}

type logEncoderType uint8

const (
	JSON logEncoderType = iota
	PlainText
	_encMax
)

// ParseLogEncoder maps "json" and "plaintext" (or "text") to the encoder
// types, anything else is JSON.
func ParseLogEncoder(enc string) logEncoderType {
	switch enc {
	case "plaintext", "text", "PlainText":
		return PlainText
	default:
	}
	return JSON
}

type logOutWriterType uint8

const (
	StdOut logOutWriterType = iota
	testMemAsOut
	_writerMax
)

const (
	ContextKeyMapToOmitempty = "_"
	ContextKeyMapToItself    = ""
	coreKeyIgnored           = ""
)

var (
	writerMap  = kv.NewThreadSafeMap[logOutWriterType, zapcore.WriteSyncer]()
	encoderMap = map[logEncoderType]func(cfg zapcore.EncoderConfig) zapcore.Encoder{
		JSON:      zapcore.NewJSONEncoder,
		PlainText: zapcore.NewConsoleEncoder,
	}
)

func init() {
	if err := registerOutWriter(StdOut, &zapcore.BufferedWriteSyncer{
		WS:            zapcore.AddSync(os.Stdout),
		Size:          512 * 1024,
		FlushInterval: 30 * time.Second,
	}); err != nil {
		panic( /* debug assertion */ err)
	}
}

func registerOutWriter(typ logOutWriterType, ws zapcore.WriteSyncer) error {
	if typ >= _writerMax {
		return infra.NewErrorStack("[XLogger] unknown writer")
	}
	if ws == nil {
		return infra.NewErrorStack("[XLogger] nil write syncer")
	}
	return writerMap.AddOrUpdate(typ, ws)
}

func getEncoderByType(typ logEncoderType) func(cfg zapcore.EncoderConfig) zapcore.Encoder {
	enc, ok := encoderMap[typ]
	if !ok {
		return zapcore.NewJSONEncoder
	}
	return enc
}

func getOutWriterByType(typ logOutWriterType) zapcore.WriteSyncer {
	out, ok := writerMap.Get(typ)
	if !ok {
		return zapcore.Lock(os.Stdout)
	}
	return out
}

type Banner interface {
	JSON() string
	PlainText() string
}

// xLogCore keeps what a component logger needs to re-encode the entries
// through the same writer.
type xLogCore interface {
	timeEncoder() zapcore.TimeEncoder
	levelEncoder() zapcore.LevelEncoder
	writeSyncer() zapcore.WriteSyncer
	outEncoder() func(cfg zapcore.EncoderConfig) zapcore.Encoder

	zapcore.Core
}

type XLogCoreConstructor func(
	zapcore.LevelEnabler,
	logEncoderType,
	logOutWriterType,
	zapcore.LevelEncoder,
	zapcore.TimeEncoder,
) xLogCore

// XLogger mainly implemented by Uber zap logger.
//
// ErrorStack prints the frames of an infra.ErrorStack as JSON instead of
// the zap default stacktrace, so the log aggregators can parse them.
//
// The methods with context append the context values of the configured
// keys (trace ID, service name, etc.) as fields.
//
// Log format is not recommended, because it is low performance.
type XLogger interface {
	zap() *zap.Logger

	IncreaseLogLevel(level zapcore.Level)
	Level() string
	Sync() error
	Banner(banner Banner)

	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(err error, msg string, fields ...zap.Field)
	ErrorStack(err error, msg string, fields ...zap.Field)

	DebugContext(ctx context.Context, msg string, fields ...zap.Field)
	InfoContext(ctx context.Context, msg string, fields ...zap.Field)
	WarnContext(ctx context.Context, msg string, fields ...zap.Field)
	ErrorContext(ctx context.Context, err error, msg string, fields ...zap.Field)
	ErrorStackContext(ctx context.Context, err error, msg string, fields ...zap.Field)

	Logf(lvl zapcore.Level, format string, args ...any)
	ErrorStackf(err error, format string, args ...any)
}

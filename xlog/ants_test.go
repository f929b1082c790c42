package xlog

import (
	"strings"
	"testing"
	"time"

	antsv2 "github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestAntsXLogger_ParentLogLevelChanged(t *testing.T) {
	var logger *AntsXLogger
	logger.Printf("test %d", 123)

	w := useTestMemWriter(t)
	parentLogger := NewXLogger(
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerWriter(testMemAsOut),
		WithXLoggerTimeEncoder(zapcore.ISO8601TimeEncoder),
		WithXLoggerLevelEncoder(zapcore.CapitalLevelEncoder),
	)
	logger = NewAntsXLogger(parentLogger)
	logger.Printf("test %d", 123)
	require.NoError(t, parentLogger.Sync())

	lines := w.lines()
	require.Len(t, lines, 1)
	require.Equal(t, "Ants", lines[0]["component"])
	require.Equal(t, "test 123", lines[0]["msg"])
	require.NotContains(t, lines[0], "callAt")
	w.Reset()

	parentLogger.IncreaseLogLevel(zapcore.FatalLevel)
	logger.Printf("test %d", 456)
	require.Empty(t, w.lines())
}

func TestAntsXLogger_AntsPool(t *testing.T) {
	w := useTestMemWriter(t)
	parentLogger := NewXLogger(
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerWriter(testMemAsOut),
	)
	logger := NewAntsXLogger(parentLogger)

	p, err := antsv2.NewPool(10, antsv2.WithLogger(logger))
	require.NoError(t, err)
	defer p.Release()
	err = p.Submit(func() {
		panic("xlogger panic in ants pool")
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return strings.Contains(string(w.data), "xlogger panic in ants pool")
	}, time.Second, 10*time.Millisecond)
}

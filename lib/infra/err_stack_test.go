package infra

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

//go:noinline
func caller() (Frame, int) {
	var pcs [3]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	frame, _ := frames.Next()
	return Frame(frame.PC), frame.Line
}

func TestFrameFormat(t *testing.T) {
	frame, line := caller()
	testcases := []struct {
		Frame
		format string
		want   string
	}{
		{frame, "%s", "err_stack_test.go"},
		{frame, "%n", "TestFrameFormat"},
		{frame, "%d", strconv.Itoa(line)},
		{frame, "%v", "err_stack_test.go:" + strconv.Itoa(line)},
		{Frame(0), "%s", unknownFile},
		{Frame(0), "%n", unknownFunc},
		{Frame(0), "%d", "0"},
	}

	for _, tc := range testcases {
		require.Equal(t, tc.want, fmt.Sprintf(tc.format, tc.Frame))
	}
}

func TestFrameMarshalText(t *testing.T) {
	frame, line := caller()
	text, err := frame.MarshalText()
	require.NoError(t, err)
	require.Contains(t, string(text), "lib/infra.TestFrameMarshalText")
	require.Contains(t, string(text), "err_stack_test.go:"+strconv.Itoa(line))

	text, err = Frame(0).MarshalText()
	require.NoError(t, err)
	require.Equal(t, unknownFrame, string(text))
}

func TestErrorStack(t *testing.T) {
	errNotFound := errors.New("not found")

	require.Nil(t, WrapErrorStack(nil))
	require.Nil(t, AppendErrorStack(nil))

	es := NewErrorStack("scenario failed")
	require.Equal(t, "scenario failed", es.Error())
	require.NotEmpty(t, es.Frames())

	es = AppendErrorStack(es, errNotFound, nil)
	require.ErrorIs(t, es, errNotFound)
	require.Len(t, es.Unwrap(), 2)

	wrapped := WrapErrorStack(errNotFound)
	require.ErrorIs(t, wrapped, errNotFound)
	require.Same(t, wrapped, WrapErrorStack(wrapped))

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, es.MarshalLogObject(enc))
	require.Equal(t, []any{"scenario failed", "not found"}, enc.Fields["errors"])
	require.NotEmpty(t, enc.Fields["errorStack"])
}

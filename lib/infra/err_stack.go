package infra

import (
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

const (
	unknownFile  = "unknownFile"
	unknownFunc  = "unknownFunc"
	unknownFrame = "unknownFrame"
	maxDepth     = 32
)

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) location() (file string, line int, name string) {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return unknownFile, 0, unknownFunc
	}
	file, line = fn.FileLine(pc)
	return file, line, fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - verbose, equivalent to %s:%d
// %+s - function name and full path separated by \n\t
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	file, line, name := frame.location()
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, name)
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, file)
		} else {
			_, _ = io.WriteString(s, path.Base(file))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(line))
	case 'n':
		_, _ = io.WriteString(s, funcName(name))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

// MarshalText is used by fmt.Sprintf("%+v", frame) and the JSON encoders
// that fall back to encoding.TextMarshaler.
func (frame Frame) MarshalText() ([]byte, error) {
	file, line, name := frame.location()
	if name == unknownFunc {
		return []byte(unknownFrame), nil
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(file)
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(line))
	return []byte(builder.String()), nil
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

func callers(skip int) []Frame {
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

// ErrorStack is an error that remembers where it was created and every
// error appended to it afterwards. It is encoded by zap as an object so
// the log aggregators can parse the causes and frames directly.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Frames() []Frame
	Unwrap() []error
}

type errorStack struct {
	err    error
	frames []Frame
}

func (es *errorStack) Error() string {
	if es == nil || es.err == nil {
		return ""
	}
	return es.err.Error()
}

func (es *errorStack) Unwrap() []error {
	if es == nil {
		return nil
	}
	return multierr.Errors(es.err)
}

func (es *errorStack) Frames() []Frame {
	if es == nil {
		return nil
	}
	return es.frames
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if es == nil {
		return nil
	}
	return multierr.Combine(
		enc.AddArray("errors", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
			for _, err := range multierr.Errors(es.err) {
				arr.AppendString(err.Error())
			}
			return nil
		})),
		enc.AddArray("errorStack", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
			for _, frame := range es.frames {
				text, _ := frame.MarshalText()
				arr.AppendByteString(text)
			}
			return nil
		})),
	)
}

func NewErrorStack(msg string) ErrorStack {
	return &errorStack{
		err:    errors.New(msg),
		frames: callers(3),
	}
}

// WrapErrorStack captures the caller stack for err. A nil err stays nil and
// an existing ErrorStack is returned as is.
func WrapErrorStack(err error) ErrorStack {
	if err == nil {
		return nil
	}
	var es ErrorStack
	if errors.As(err, &es) {
		return es
	}
	return &errorStack{
		err:    err,
		frames: callers(3),
	}
}

// AppendErrorStack merges errs into es. The frames of es are kept, or
// captured here if es is not an ErrorStack yet.
func AppendErrorStack(es error, errs ...error) ErrorStack {
	merged := multierr.Combine(errs...)
	if es == nil && merged == nil {
		return nil
	}
	var target *errorStack
	if errors.As(es, &target) && target != nil {
		target.err = multierr.Append(target.err, merged)
		return target
	}
	return &errorStack{
		err:    multierr.Append(es, merged),
		frames: callers(3),
	}
}

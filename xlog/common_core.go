package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

var _ xLogCore = (*commonCore)(nil)

type commonCore struct {
	lvlEnabler zapcore.LevelEnabler
	lvlEnc     zapcore.LevelEncoder
	tsEnc      zapcore.TimeEncoder
	ws         zapcore.WriteSyncer
	enc        func(cfg zapcore.EncoderConfig) zapcore.Encoder
	core       zapcore.Core
}

func (cc *commonCore) timeEncoder() zapcore.TimeEncoder                            { return cc.tsEnc }
func (cc *commonCore) levelEncoder() zapcore.LevelEncoder                          { return cc.lvlEnc }
func (cc *commonCore) writeSyncer() zapcore.WriteSyncer                            { return cc.ws }
func (cc *commonCore) outEncoder() func(cfg zapcore.EncoderConfig) zapcore.Encoder { return cc.enc }
func (cc *commonCore) Enabled(lvl zapcore.Level) bool {
	return cc.lvlEnabler.Enabled(lvl)
}

// With keeps the encoders, so the derived core can still be wrapped.
func (cc *commonCore) With(fields []zap.Field) zapcore.Core {
	clone := *cc
	clone.core = cc.core.With(fields)
	return &clone
}

func (cc *commonCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if cc.Enabled(ent.Level) {
		return ce.AddCore(ent, cc)
	}
	return ce
}

func (cc *commonCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	return cc.core.Write(ent, fields)
}

func (cc *commonCore) Sync() error {
	return cc.core.Sync()
}

// WrapCore re-encodes the entries of core by cfg. The level encoder and
// the time encoder of core are kept.
func WrapCore(core xLogCore, cfg *zapcore.EncoderConfig) (xLogCore, error) {
	if cfg == nil {
		return nil, infra.NewErrorStack("[XLogger] logger core config is empty")
	}
	if core == nil {
		return nil, infra.NewErrorStack("[XLogger] logger core is nil")
	}
	_cfg := *cfg
	_cfg.EncodeLevel = core.levelEncoder()
	_cfg.EncodeTime = core.timeEncoder()

	cc := &commonCore{
		ws:  core.writeSyncer(),
		enc: core.outEncoder(),
		lvlEnabler: zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return core.Enabled(l)
		}),
		lvlEnc: core.levelEncoder(),
		tsEnc:  core.timeEncoder(),
	}
	cc.core = zapcore.NewCore(cc.enc(_cfg), cc.ws, cc.lvlEnabler)
	return cc, nil
}

var componentCoreEncoderCfg = &zapcore.EncoderConfig{
	MessageKey:    "msg",
	LevelKey:      "lvl",
	TimeKey:       "ts",
	CallerKey:     coreKeyIgnored,
	EncodeCaller:  zapcore.ShortCallerEncoder,
	FunctionKey:   coreKeyIgnored,
	NameKey:       "component",
	EncodeName:    zapcore.FullNameEncoder,
	StacktraceKey: coreKeyIgnored,
}

// newComponentLogger names the logger and re-encodes its entries without
// the caller, for the third-party frameworks' log adapters.
func newComponentLogger(logger XLogger, name string) XLogger {
	l := &xLogger{}
	l.logger.Store(logger.
		zap().
		Named(name).
		WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			var (
				cc  xLogCore
				err error
			)
			switch c := core.(type) {
			case xLogMultiCore:
				cc, err = WrapCores(c, componentCoreEncoderCfg)
			case xLogCore:
				cc, err = WrapCore(c, componentCoreEncoderCfg)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[XLogger] core is not xLogCore")
			}
			if err != nil {
				panic(err)
			}
			return cc
		})),
	)
	if parent, ok := logger.(*xLogger); ok {
		l.dynamicLevelEnabler = parent.dynamicLevelEnabler
		l.ctxFields = parent.ctxFields
		l.writer, l.encoder = parent.writer, parent.encoder
	}
	return l
}

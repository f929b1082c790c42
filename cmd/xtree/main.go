package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	xruntime "github.com/benz9527/xtree/lib/runtime"
	"github.com/benz9527/xtree/observability"
	"github.com/benz9527/xtree/xlog"
)

type banner struct{}

func (banner) JSON() string {
	return `{"app":"xtree","about":"arena backed red-black tree"}`
}

func (banner) PlainText() string {
	return "xtree: arena backed red-black tree"
}

func newLogger(lc fx.Lifecycle, cfg *config) xlog.XLogger {
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerEncoder(xlog.ParseLogEncoder(cfg.LogEncoder)),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, xlog.WithXLoggerLevel(xlog.ParseLogLevel(cfg.LogLevel)))
	}
	logger := xlog.NewXLogger(opts...)
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return logger
}

func newMetrics(lc fx.Lifecycle, cfg *config, logger xlog.XLogger) (observability.ShutdownFunc, error) {
	exporter, err := observability.ParseMetricsExporter(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	shutdown, err := observability.InstallMetricsExporter(exporter, cfg.MetricsInterval)
	if err != nil {
		return nil, err
	}
	if exporter != observability.NoopExporter {
		observability.InitAppStats(context.Background(), "xtree-demo", nil)
		logger.Info("metrics exporter installed", zap.String("exporter", string(exporter)))
	}
	lc.Append(fx.StopHook(func(ctx context.Context) error {
		return shutdown(ctx)
	}))
	return shutdown, nil
}

// registerRunner starts the scenarios after the app is up and shuts the app
// down with exit code 1 if any scenario failed.
func registerRunner(lc fx.Lifecycle, shutdowner fx.Shutdowner, r *runner, _ observability.ShutdownFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			r.logger.Banner(banner{})
			env := xruntime.DetectEnv(startCtx)
			r.logger.Info("runtime env",
				zap.String("os", env.OS),
				zap.String("arch", env.Arch),
				zap.Int("cpus", env.CPUs),
				zap.String("platform", env.Platform),
				zap.Bool("container", env.InContainer()),
				zap.String("containerRuntime", env.Container.Runtime),
				zap.String("containerID", env.Container.ID),
			)
			go func() {
				code := 0
				if err := r.Run(ctx); err != nil {
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func newApp(cfg *config, opts ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newMetrics,
			newRunner,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(registerRunner),
		fx.Options(opts...),
	)
}

func run(app *fx.App) int {
	if err := app.Err(); err != nil {
		return 1
	}
	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return 1
	}

	sig := <-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && sig.ExitCode == 0 {
		return 1
	}
	return sig.ExitCode
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	os.Exit(run(newApp(cfg)))
}

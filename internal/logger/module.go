package logger

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
)

// Module wires the zap logger and routes fx events through it.
var Module = fx.Options(
	fx.Provide(newFromConfig),
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l.Named("fx")}
	}),
)

func newFromConfig(cfg *config.Config) (*zap.Logger, error) {
	return New(cfg.LogLevel)
}

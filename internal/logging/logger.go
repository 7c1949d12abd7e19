// Package logging builds the zap loggers shared by the API, the CLI commands
// and the background workers.
package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the subset of *zap.SugaredLogger used across the module.
//
// Loggers should be injected and named per component: lggr.Named("notification").
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Sync() error
}

// New returns a production JSON logger at the given level ("debug", "info", ...).
func New(level string) (*zap.SugaredLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level.SetLevel(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return core.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// RequestLogger logs one line per handled request.
func RequestLogger(lggr Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		// zap keeps the fields after the handler returns; fiber reuses these buffers
		fields := []any{
			"method", utils.CopyString(c.Method()),
			"path", utils.CopyString(c.Path()),
			"status", status,
			"latency", time.Since(start).String(),
		}
		if status >= fiber.StatusInternalServerError {
			lggr.Errorw("request", fields...)
		} else {
			lggr.Debugw("request", fields...)
		}
		return err
	}
}

package logger

import (
	"context"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// Builds the process-wide sugared logger with the level
// taken from config ("debug", "info", "error", "fatal"...).
func Run(level string) *zap.SugaredLogger {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zapcore.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	zapLogger, err := cfg.Build()
	if err != nil {
		log.Fatalln("logger: can't build zap logger:", err)
	}
	return zapLogger.Sugar()
}

func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Returns the request-scoped logger put into the context by the
// logging middleware. Falls back to a no-op logger so call sites
// don't have to care whether the middleware ran.
func Log(ctx context.Context) *zap.SugaredLogger {
	l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger)
	if !ok {
		return zap.NewNop().Sugar()
	}
	return l
}

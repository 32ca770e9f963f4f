package events

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapEmitter writes events as structured log entries.
type ZapEmitter struct {
	logger func() *zap.Logger
}

// NewZapEmitter creates an emitter that resolves its logger on every event,
// so a logger installed after construction (logger.Init, logger.Replace) is honored.
func NewZapEmitter(get func() *zap.Logger) *ZapEmitter {
	return &ZapEmitter{logger: get}
}

// Emit logs e at its level with only the populated fields.
func (z *ZapEmitter) Emit(_ context.Context, e Event) {
	l := z.logger()
	if ce := l.Check(zapLevel(e.Level), e.Name); ce != nil {
		ce.Write(fields(e)...)
	}
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func fields(e Event) []zap.Field {
	fs := make([]zap.Field, 0, 9)
	if e.Method != "" {
		fs = append(fs, zap.String("method", e.Method))
	}
	if e.URL != "" {
		fs = append(fs, zap.String("url", e.URL))
	}
	if e.StatusCode != 0 {
		fs = append(fs, zap.Int("status_code", e.StatusCode))
	}
	if e.CorrelationID != "" {
		fs = append(fs, zap.String("correlation_id", e.CorrelationID))
	}
	if e.Duration != 0 {
		fs = append(fs, zap.Duration("duration", e.Duration))
	}
	if e.Store != "" {
		fs = append(fs, zap.String("store", e.Store))
	}
	if e.Operation != "" {
		fs = append(fs, zap.String("operation", e.Operation))
	}
	if e.Code != "" {
		fs = append(fs, zap.String("code", e.Code))
	}
	if e.Err != nil {
		fs = append(fs, zap.Error(e.Err))
	}
	return fs
}

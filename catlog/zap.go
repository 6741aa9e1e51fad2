package catlog

import "go.uber.org/zap"

// zapLogger adapts *zap.Logger to Logger.
type zapLogger struct {
	l *zap.Logger
}

// NewZap wraps an existing *zap.Logger as a Logger. Pass zap.NewNop() to get
// the same effect as Nop() through the zap backend.
func NewZap(l *zap.Logger) Logger {
	return zapLogger{l: l.WithOptions(zap.AddCallerSkip(1))}
}

func (z zapLogger) Named(name string) Logger {
	return zapLogger{l: z.l.Named(name)}
}

func (z zapLogger) With(fields ...Field) Logger {
	return zapLogger{l: z.l.With(toZap(fields)...)}
}

func (z zapLogger) Debug(msg string, fields ...Field) {
	if ce := z.l.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(toZap(fields)...)
	}
}

func (z zapLogger) Info(msg string, fields ...Field) {
	if ce := z.l.Check(zap.InfoLevel, msg); ce != nil {
		ce.Write(toZap(fields)...)
	}
}

func (z zapLogger) Warn(msg string, fields ...Field) {
	if ce := z.l.Check(zap.WarnLevel, msg); ce != nil {
		ce.Write(toZap(fields)...)
	}
}

func (z zapLogger) Error(msg string, fields ...Field) {
	if ce := z.l.Check(zap.ErrorLevel, msg); ce != nil {
		ce.Write(toZap(fields)...)
	}
}

func toZap(fs []Field) []zap.Field {
	if len(fs) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fs))
	for _, f := range fs {
		out = append(out, zap.Any(f.Key, f.Val))
	}
	return out
}

package cli

import "go.uber.org/zap"

// debugLogger wraps zap for verbose debug output during a batch run.
type debugLogger struct {
	sugared *zap.SugaredLogger
}

func newDebugLogger(globals *Globals) *debugLogger {
	if globals == nil || !globals.Verbose {
		return &debugLogger{}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	logger, _ := cfg.Build()
	return &debugLogger{sugared: logger.Sugar()}
}

func (l *debugLogger) Debug(format string, args ...interface{}) {
	if l.sugared == nil {
		return
	}
	l.sugared.Debugf(format, args...)
}

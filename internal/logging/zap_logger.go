package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap.Logger to metaconv.Logger. Messages are formatted
// printf-style and emitted as the record's msg field.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger builds a JSON logger from zap's production config writing to
// stderr. Verbose messages are logged at debug level and only appear when
// verbose is true.
func NewZapLogger(verbose bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &ZapLogger{logger: logger}, nil
}

// NewZapLoggerFrom wraps an existing zap.Logger.
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Verbose(format string, args ...interface{}) {
	l.logger.Debug(sprintf(format, args))
}

func (l *ZapLogger) Info(format string, args ...interface{}) {
	l.logger.Info(sprintf(format, args))
}

func (l *ZapLogger) Warn(format string, args ...interface{}) {
	l.logger.Warn(sprintf(format, args))
}

func (l *ZapLogger) Error(format string, args ...interface{}) {
	l.logger.Error(sprintf(format, args))
}

// Sync flushes buffered records.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_MapsLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLoggerFrom(zap.New(core))

	logger.Verbose("scratch directory %s", "/tmp/x")
	logger.Info("converted %d file(s)", 2)
	logger.Warn("missing %q", "title")
	logger.Error("failed")

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}

	want := []struct {
		level zapcore.Level
		msg   string
	}{
		{zapcore.DebugLevel, "scratch directory /tmp/x"},
		{zapcore.InfoLevel, "converted 2 file(s)"},
		{zapcore.WarnLevel, `missing "title"`},
		{zapcore.ErrorLevel, "failed"},
	}
	for i, w := range want {
		if entries[i].Level != w.level || entries[i].Message != w.msg {
			t.Errorf("entry %d: expected %v %q, got %v %q", i, w.level, w.msg, entries[i].Level, entries[i].Message)
		}
	}
}

func TestZapLogger_VerboseFilteredAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLoggerFrom(zap.New(core))

	logger.Verbose("hidden")
	logger.Info("shown")

	if logs.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", logs.Len())
	}
}

func TestNewZapLogger(t *testing.T) {
	logger, err := NewZapLogger(true)
	if err != nil {
		t.Fatalf("NewZapLogger() error = %v", err)
	}
	logger.Verbose("ready")
	_ = logger.Sync()
}

package logging

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Maxwe101/debt-dashboard/internal/config"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"WARN", logrus.WarnLevel},
	}
	for _, tc := range tests {
		logger, err := Setup(config.LoggingConfig{Level: tc.level, Format: "text"})
		if err != nil {
			t.Fatalf("Setup(%q): %v", tc.level, err)
		}
		if logger.GetLevel() != tc.want {
			t.Errorf("level %q: got %v, want %v", tc.level, logger.GetLevel(), tc.want)
		}
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	if _, err := Setup(config.LoggingConfig{Level: "verbose", Format: "text"}); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestSetupInvalidFormat(t *testing.T) {
	if _, err := Setup(config.LoggingConfig{Level: "info", Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestSetupJSONFormatter(t *testing.T) {
	logger, err := Setup(config.LoggingConfig{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter: got %T, want *logrus.JSONFormatter", logger.Formatter)
	}
}

func TestSetupWithFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := Setup(config.LoggingConfig{
		Level:     "info",
		Format:    "text",
		File:      filepath.Join(dir, "app.log"),
		MaxSizeMB: 1,
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info("hello")
}

func TestComponentField(t *testing.T) {
	logger, err := Setup(config.LoggingConfig{Level: "info", Format: "text"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	entry := Component(logger, "treasury")
	if entry.Data["component"] != "treasury" {
		t.Errorf("component field: got %v", entry.Data["component"])
	}
}

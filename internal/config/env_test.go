package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("INVADERS_TEST_HOST", "127.0.0.1")

	if got := GetEnv("INVADERS_TEST_HOST", "::"); got != "127.0.0.1" {
		t.Errorf("GetEnv set = %q, want %q", got, "127.0.0.1")
	}
	if got := GetEnv("INVADERS_TEST_UNSET", "::"); got != "::" {
		t.Errorf("GetEnv unset = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"number", "42", 42},
		{"negative", "-7", -7},
		{"garbage", "forty", 10},
		{"empty", "", 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("INVADERS_TEST_INT", tc.value)
			if got := GetEnvInt("INVADERS_TEST_INT", 10); got != tc.want {
				t.Errorf("GetEnvInt(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}

	if got := GetEnvInt("INVADERS_TEST_INT_UNSET", 3); got != 3 {
		t.Errorf("GetEnvInt unset = %d, want 3", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("INVADERS_TEST_DUR", "90s")
	if got := GetEnvDuration("INVADERS_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("GetEnvDuration = %v, want 90s", got)
	}

	t.Setenv("INVADERS_TEST_DUR", "soon")
	if got := GetEnvDuration("INVADERS_TEST_DUR", time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration invalid = %v, want fallback", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		value string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"loud", log.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.value)
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			if got := logger.GetLevel(); got != tc.want {
				t.Errorf("level = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewLoggerWrites(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	var buf bytes.Buffer
	NewLogger(&buf, "ssh").Info("listening", "port", 2222)

	out := buf.String()
	if !strings.Contains(out, "ssh") || !strings.Contains(out, "port=2222") {
		t.Errorf("unexpected log line %q", out)
	}
}

package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("STARDUST_TEST_INT", "42")
	t.Setenv("STARDUST_TEST_BAD_INT", "forty-two")
	t.Setenv("STARDUST_TEST_FLOAT", "0.25")
	t.Setenv("STARDUST_TEST_DURATION", "750ms")

	if got := GetEnv("STARDUST_TEST_UNSET", "x"); got != "x" {
		t.Errorf("GetEnv unset = %q, want %q", got, "x")
	}
	if got := GetEnvInt("STARDUST_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("STARDUST_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt unparsable = %d, want fallback 7", got)
	}
	if got := GetEnvFloat("STARDUST_TEST_FLOAT", 1); got != 0.25 {
		t.Errorf("GetEnvFloat = %v, want 0.25", got)
	}
	if got := GetEnvDuration("STARDUST_TEST_DURATION", time.Second); got != 750*time.Millisecond {
		t.Errorf("GetEnvDuration = %v, want 750ms", got)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
}

func TestLoadDoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "STARDUST_TEST_FROM_FILE=file\nSTARDUST_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STARDUST_TEST_PRESET", "env")
	t.Setenv("STARDUST_TEST_FROM_FILE", "")
	os.Unsetenv("STARDUST_TEST_FROM_FILE")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("STARDUST_TEST_FROM_FILE"); got != "file" {
		t.Errorf("STARDUST_TEST_FROM_FILE = %q, want %q", got, "file")
	}
	if got := os.Getenv("STARDUST_TEST_PRESET"); got != "env" {
		t.Errorf("STARDUST_TEST_PRESET = %q, want %q", got, "env")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("STARDUST_LOG_LEVEL", "debug")
	if got := NewLogger(io.Discard, "test").GetLevel(); got != log.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}

	t.Setenv("STARDUST_LOG_LEVEL", "nonsense")
	if got := NewLogger(io.Discard, "test").GetLevel(); got != log.InfoLevel {
		t.Fatalf("level = %v, want info fallback", got)
	}
}

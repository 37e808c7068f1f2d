package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel)
	log.Info().Msg("hidden")
	log.Warn().Str("sale", "7").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"sale":"7"`) {
		t.Errorf("output = %q", out)
	}
}

func TestOpen_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mercearia.log")
	log, closeFn, err := Open(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	compLog := WithComponent(log, "test")
	compLog.Debug().Msg("hello")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "component=test") {
		t.Errorf("log file = %q", data)
	}
}

func TestOpen_EmptyFile(t *testing.T) {
	log, closeFn, err := Open(Config{Level: "info"})
	if err != nil {
		t.Fatal(err)
	}
	log.Info().Msg("discarded")
	if err := closeFn(); err != nil {
		t.Error(err)
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), New(&buf, zerolog.InfoLevel))
	FromContext(ctx).Info().Msg("via ctx")
	if !strings.Contains(buf.String(), "via ctx") {
		t.Errorf("output = %q", buf.String())
	}
}

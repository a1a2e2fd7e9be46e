package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	if lvl := New(false).GetLevel(); lvl != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %s", lvl)
	}
	if lvl := New(true).GetLevel(); lvl != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %s", lvl)
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, false)

	log.Debug().Msg("hidden")
	log.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
	if strings.Contains(output, "hidden") {
		t.Errorf("Expected debug message to be filtered, got: %s", output)
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, false))

	log := FromContext(ctx, zerolog.Nop())
	log.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	buf := &bytes.Buffer{}
	log := FromContext(context.Background(), NewWithWriter(buf, false))
	log.Info().Msg("fallback")

	if !strings.Contains(buf.String(), "fallback") {
		t.Errorf("Expected fallback logger to be used, got: %s", buf.String())
	}
}

package sysutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetLogLevel_AllVariants(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"  DeBuG  ", zerolog.DebugLevel}, // case + trim
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel}, // empty -> info
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel}, // alias
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel}, // default
	}

	for _, tc := range cases {
		SetLogLevel(tc.in)
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Fatalf("SetLogLevel(%q) -> %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestConfigureLogger_JSONWithServiceAndStack(t *testing.T) {
	origLevel := zerolog.GlobalLevel()
	origLogger := log.Logger
	origMarshaler := zerolog.ErrorStackMarshaler
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(origLevel)
		log.Logger = origLogger
		zerolog.ErrorStackMarshaler = origMarshaler
	})

	var buf bytes.Buffer
	ConfigureLogger(LoggerOptions{Level: "debug", Service: "credence-backend", Env: "test", Out: &buf})

	log.Error().Stack().Err(pkgerrors.New("kaboom")).Msg("failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "credence-backend" || entry["env"] != "test" {
		t.Fatalf("missing static fields: %v", entry)
	}
	if entry["level"] != "error" || entry["error"] != "kaboom" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["stack"]; !ok {
		t.Fatalf("expected stack field, got %v", entry)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("level not applied")
	}
}

func TestConfigureLogger_Pretty(t *testing.T) {
	origLogger := log.Logger
	origLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = origLogger
		zerolog.SetGlobalLevel(origLevel)
	})

	var buf bytes.Buffer
	ConfigureLogger(LoggerOptions{Level: "info", Pretty: true, Out: &buf})
	log.Info().Msg("listening")

	out := buf.String()
	if !strings.Contains(out, "listening") || strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	// no args -> ""
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("FirstNonEmpty() = %q; want \"\"", got)
	}
	// only empties -> ""
	if got := FirstNonEmpty(" ", "\t", "\n"); got != "" {
		t.Fatalf("FirstNonEmpty(empties) = %q; want \"\"", got)
	}
	// picks first non-empty (preserves original spacing)
	if got := FirstNonEmpty("   ", "  test  ", "development"); got != "  test  " {
		t.Fatalf("FirstNonEmpty(...) = %q; want %q", got, "  test  ")
	}
	if got := FirstNonEmpty("production", "test"); got != "production" {
		t.Fatalf("FirstNonEmpty(...) = %q; want %q", got, "production")
	}
}

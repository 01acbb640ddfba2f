package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_NoFileIsDisabled(t *testing.T) {
	t.Parallel()

	l, closer, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()
	if l.GetLevel().String() != "disabled" {
		t.Fatalf("expected disabled logger, got %s", l.GetLevel())
	}
}

func TestNew_WritesJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "deskfolio.log")
	l, closer, err := New(Options{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug().Str("id", "projects").Msg("window transition")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{`"level":"debug"`, `"id":"projects"`, `"message":"window transition"`} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("missing %s in %s", want, b)
		}
	}
}

func TestNewWriter_DefaultsToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWriter(&buf, "bogus")
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWriter(&buf, "info")
	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info().Msg("via ctx")
	if !strings.Contains(buf.String(), "via ctx") {
		t.Fatalf("logger not attached: %s", buf.String())
	}
}

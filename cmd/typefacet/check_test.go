package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const goodLibrary = `
types:
  Pet:
    properties:
      kind: string
    discriminator: kind
    example: '{"kind": "dog"}'
`

const badLibrary = `
types:
  Pet:
    properties:
      kind: string
    discriminatorValue: dog
    default: 3
`

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(defaultConfigFile)
	if err != nil {
		t.Fatalf("missing default config: %v", err)
	}
	if cfg.Lang != "en" || cfg.Format != formatText || cfg.Watch {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("explicit missing config should fail")
	}

	path := writeFile(t, "cfg.yaml", "lang: ja\nformat: json\nlogLevel: debug\nclosedObjects: true\n")
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lang != "ja" || cfg.Format != formatJSON || cfg.LogLevel != "debug" || !cfg.ClosedObjects {
		t.Fatalf("unexpected config %+v", cfg)
	}

	for _, bad := range []string{"lang: fr\n", "format: xml\n", "logLevel: loud\n", "lang: [\n"} {
		if _, err := loadConfig(writeFile(t, "bad.yaml", bad)); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func newTestChecker(format string) (*checker, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := defaultConfig()
	cfg.Format = format
	return &checker{cfg: cfg, out: out, logger: zerolog.Nop()}, out
}

func TestChecker_Text(t *testing.T) {
	good := writeFile(t, "good.yaml", goodLibrary)
	bad := writeFile(t, "bad.yaml", badLibrary)

	c, out := newTestChecker(formatText)
	if err := c.run([]string{good}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(out.String(), "good.yaml: OK") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	err := c.run([]string{good, bad})
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected failure, got %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"bad.yaml: 2 issue(s)",
		"/Pet/default [invalid_default]",
		"/Pet/discriminatorValue [discriminator_missing]",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output misses %q:\n%s", want, text)
		}
	}
}

func TestChecker_JSON(t *testing.T) {
	bad := writeFile(t, "bad.yaml", badLibrary)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	c, out := newTestChecker(formatJSON)
	if err := c.run([]string{bad, missing}); !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected failure, got %v", err)
	}
	var reports []fileReport
	if err := j.Unmarshal(out.Bytes(), &reports); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].OK || len(reports[0].Issues) != 2 || reports[0].Issues[0].Code != "invalid_default" {
		t.Fatalf("unexpected report %+v", reports[0])
	}
	if reports[1].Error == "" {
		t.Fatalf("expected a load error for the missing file")
	}
}

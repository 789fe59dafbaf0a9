package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const divergent = "../../internal/nav/testdata/navigation_divergent.yaml"

func TestRunDefaultRegistryIsClean(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-strict"}, &out, zap.NewNop())
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d; out=%s", code, out.String())
	}
	if !strings.Contains(out.String(), "3 locales checked against zh-CN, 0 warnings") {
		t.Fatalf("unexpected summary: %s", out.String())
	}
}

func TestRunDivergentText(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-file", divergent}, &out, zap.NewNop()); code != exitOK {
		t.Fatalf("non-strict run must succeed, got %d", code)
	}
	if !strings.Contains(out.String(), "es: missing /docs/network/tcp-server") {
		t.Fatalf("expected missing tcp-server warning; out=%s", out.String())
	}

	out.Reset()
	if code := run([]string{"-file", divergent, "-strict"}, &out, zap.NewNop()); code != exitWarnings {
		t.Fatalf("expected exit %d under -strict, got %d", exitWarnings, code)
	}
}

func TestRunDivergentJSON(t *testing.T) {
	var out bytes.Buffer
	run([]string{"-file", divergent, "-format", "json"}, &out, zap.NewNop())
	var rep struct {
		Reference  string `json:"reference"`
		Consistent bool   `json:"consistent"`
		Warnings   []struct {
			Locale string `json:"locale"`
			Kind   string `json:"kind"`
			Href   string `json:"href"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v; out=%s", err, out.String())
	}
	if rep.Consistent || rep.Reference != "zh-CN" || len(rep.Warnings) != 4 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if rep.Warnings[0].Kind != "missing" || rep.Warnings[0].Locale != "es" {
		t.Fatalf("expected missing warning first, got %+v", rep.Warnings[0])
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-format", "xml"}, &out, zap.NewNop()); code != exitError {
		t.Fatalf("expected exit %d for unknown format, got %d", exitError, code)
	}
	if code := run([]string{"-file", "does-not-exist.yaml"}, &out, zap.NewNop()); code != exitError {
		t.Fatalf("expected exit %d for missing file, got %d", exitError, code)
	}
}

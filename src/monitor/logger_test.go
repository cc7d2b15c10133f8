package monitor

import (
	"bytes"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := atomicLevel.Level()
	baseLogger = newLogger(&buf)
	t.Cleanup(func() {
		baseLogger = saved
		atomicLevel.SetLevel(savedLevel)
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureLogs(t)
	SetLogLevel("info")

	msg := "BAT: 87.5% PWR: 12.3W (100.0% of window)"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100.0% of window)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
}

func TestSetLogLevel_FiltersBelowThreshold(t *testing.T) {
	buf := captureLogs(t)
	SetLogLevel("warn")
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "WARN") {
		t.Fatalf("warn line missing: %s", out)
	}
	if GetLogLevel() != LevelWarn {
		t.Fatalf("GetLogLevel=%v want LevelWarn", GetLogLevel())
	}
}

func TestSetLogLevel_IgnoresUnknown(t *testing.T) {
	captureLogs(t)
	SetLogLevel("debug")
	SetLogLevel("verbose")
	if GetLogLevel() != LevelDebug {
		t.Fatalf("unknown level changed the level to %v", GetLogLevel())
	}
	if ValidLogLevel("verbose") || !ValidLogLevel(" Warning ") {
		t.Fatalf("ValidLogLevel mismatch")
	}
}

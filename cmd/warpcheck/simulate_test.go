package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/lixenwraith/warpcheck/config"
	"github.com/lixenwraith/warpcheck/logging"
)

func discardLogs(t *testing.T) {
	t.Helper()
	logging.Init(slog.LevelError, "text", io.Discard)
}

// TestSimulateProducesVerdicts verifies random clicking reaches terminal verdicts
func TestSimulateProducesVerdicts(t *testing.T) {
	discardLogs(t)
	cfg := config.Default()
	cfg.Engine.Seed = 7

	rep, err := simulate(cfg, simOptions{Type: "random", Ticks: 2400, ClickEvery: 8, Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if rep.Passed+rep.Failed == 0 {
		t.Error("Expected at least one verdict")
	}

	found := false
	for _, m := range rep.Metrics {
		if m.Key == "engine.ticks" {
			found = true
			if m.Value != "2400" {
				t.Errorf("Expected 2400 ticks, got %s", m.Value)
			}
		}
	}
	if !found {
		t.Error("Expected engine.ticks in metrics")
	}
}

// TestSimulateRegenerateBlocks verifies rapid regenerate requests hit the limiter
func TestSimulateRegenerateBlocks(t *testing.T) {
	discardLogs(t)
	cfg := config.Default()
	cfg.Engine.Seed = 3

	rep, err := simulate(cfg, simOptions{Type: "color-match", Ticks: 600, ClickEvery: 1000, RegenEvery: 30, Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if rep.Blocked == 0 {
		t.Error("Expected blocked regenerate requests")
	}

	var buf bytes.Buffer
	rep.print(&buf)
	if !strings.Contains(buf.String(), "blocked") {
		t.Errorf("Expected report header, got %q", buf.String())
	}
}

// TestSimulateUnknownType verifies a bad type name is reported
func TestSimulateUnknownType(t *testing.T) {
	discardLogs(t)
	if _, err := simulate(config.Default(), simOptions{Type: "juggle", Ticks: 1, Width: 64, Height: 64}); err == nil {
		t.Error("Expected error for unknown type")
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/vmath"
)

// TestResolveType verifies named, random and unknown type flags
func TestResolveType(t *testing.T) {
	rng := vmath.NewFastRand(1)

	got, err := resolveType("odd-numbers", rng)
	if err != nil || got != challenge.OddNumbers {
		t.Errorf("Expected odd-numbers, got %v (%v)", got, err)
	}

	for _, name := range []string{"", "random"} {
		got, err := resolveType(name, rng)
		if err != nil || !got.Valid() {
			t.Errorf("Expected a playable type for %q, got %v (%v)", name, got, err)
		}
	}

	if _, err := resolveType("juggle", rng); err == nil {
		t.Error("Expected error for unknown type")
	}
}

// TestTypesCommand verifies every type is listed with its instruction
func TestTypesCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"types"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("types failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(challenge.All()) {
		t.Errorf("Expected %d lines, got %d", len(challenge.All()), len(lines))
	}
	if !strings.Contains(buf.String(), "double-border-only") {
		t.Errorf("Expected double-border-only listed, got %q", buf.String())
	}
}

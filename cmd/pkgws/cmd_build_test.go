package main

import (
	"testing"

	"github.com/fbkclanna/pkgws/internal/project"
)

func TestParseTargets(t *testing.T) {
	targets, err := parseTargets([]string{"node", "web"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 || targets[0] != project.TargetNode || targets[1] != project.TargetWeb {
		t.Errorf("targets = %v", targets)
	}

	if _, err := parseTargets([]string{"wasm"}); err == nil {
		t.Fatal("expected error for unknown target")
	}

	targets, err = parseTargets(nil)
	if err != nil || targets != nil {
		t.Errorf("empty input should yield no targets, got %v, %v", targets, err)
	}
}

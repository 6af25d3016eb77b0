package main

import "testing"

func TestAddArgs_bothProvided(t *testing.T) {
	name, ver, err := addArgs([]string{"lodash", "4.17.21"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "lodash" || ver != "4.17.21" {
		t.Errorf("got %q %q", name, ver)
	}
}

func TestAddArgs_missingWithoutTerminal(t *testing.T) {
	// Test stdin is not a terminal, so missing args cannot be prompted for.
	if _, _, err := addArgs([]string{"lodash"}); err == nil {
		t.Fatal("expected usage error when version is missing off-terminal")
	}
	if _, _, err := addArgs(nil); err == nil {
		t.Fatal("expected usage error when both args are missing off-terminal")
	}
}

func TestNotEmpty(t *testing.T) {
	v := notEmpty("name")
	if err := v("  "); err == nil {
		t.Error("blank input should fail validation")
	}
	if err := v("lodash"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

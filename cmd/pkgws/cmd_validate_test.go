package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fbkclanna/pkgws/internal/testutil"
)

func TestRunValidate_clean(t *testing.T) {
	wsDir := testutil.CreateWorkspace(t,
		`{"name":"root","version":"1.0.0","workspaces":["packages/*"]}`,
		map[string]string{
			"app": `{"name":"app","version":"1.0.0","dependencies":{"lib":"1.0.0"}}`,
			"lib": `{"name":"lib","version":"1.0.0"}`,
		})

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"--root", wsDir, "validate"})
	if err := root.Execute(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "valid") {
		t.Errorf("expected success message, got:\n%s", buf.String())
	}
}

func TestRunValidate_collectsAllMismatches(t *testing.T) {
	wsDir := testutil.CreateWorkspace(t,
		`{"name":"root","version":"1.0.0","workspaces":["packages/*"]}`,
		map[string]string{
			"app":  `{"name":"app","version":"1.0.0","dependencies":{"liba":"^9.9.9","libb":"link:../libb"}}`,
			"liba": `{"name":"liba","version":"1.0.0"}`,
			"libb": `{"name":"libb","version":"2.0.0"}`,
		})

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"--root", wsDir, "validate", "--json"})
	err := root.Execute()
	if err == nil {
		t.Fatal("expected non-zero exit for mismatches")
	}

	// JSON payload precedes the error line; decode from the buffer start.
	var reports []mismatchReport
	dec := json.NewDecoder(&buf)
	if derr := dec.Decode(&reports); derr != nil {
		t.Fatalf("invalid JSON output: %v\n%s", derr, buf.String())
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want both mismatches collected", len(reports))
	}
	for _, r := range reports {
		if r.Dependent != "app" {
			t.Errorf("dependent = %q", r.Dependent)
		}
	}
}

func TestRunValidate_badManifest(t *testing.T) {
	wsDir := t.TempDir()
	testutil.WriteManifest(t, wsDir, `{"version":"1.0.0"}`)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--root", wsDir, "validate"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for manifest without a name")
	}
}

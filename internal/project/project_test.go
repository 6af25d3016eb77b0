package project_test

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fbkclanna/pkgws/internal/manifest"
	"github.com/fbkclanna/pkgws/internal/project"
	"github.com/fbkclanna/pkgws/internal/testutil"
)

func discard() *log.Logger { return log.New(io.Discard) }

func mustParse(t *testing.T, data, path string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(data), path)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, `{"name":"app","version":"1.0.0"}`)

	p, err := project.Load(dir, &testutil.FakeDriver{}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "app" {
		t.Errorf("name = %q", p.Name())
	}
	if p.ManifestPath() != filepath.Join(dir, "package.json") {
		t.Errorf("manifest path = %q", p.ManifestPath())
	}
	if p.NodeModulesDir() != filepath.Join(dir, "node_modules") {
		t.Errorf("node_modules dir = %q", p.NodeModulesDir())
	}
	if p.DistDir() != filepath.Join(dir, "dist") {
		t.Errorf("dist dir = %q", p.DistDir())
	}
}

func TestLoad_missingManifest(t *testing.T) {
	_, err := project.Load(t.TempDir(), &testutil.FakeDriver{}, discard())
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	var merr *manifest.Error
	if !errors.As(err, &merr) {
		t.Fatalf("error type = %T, want *manifest.Error", err)
	}
}

func TestIntermediateBuildDir(t *testing.T) {
	m := mustParse(t, `{"name":"app","version":"1.0.0"}`, "/ws/app/package.json")
	p := project.New("/ws/app", m, &testutil.FakeDriver{}, discard())
	if got := p.IntermediateBuildDir(); got != "/ws/app" {
		t.Errorf("default intermediate dir = %q, want project dir", got)
	}

	m = mustParse(t, `{"name":"app","version":"1.0.0","pkgws":{"build":{"intermediateBuildDirectory":"build"}}}`, "/ws/app/package.json")
	p = project.New("/ws/app", m, &testutil.FakeDriver{}, discard())
	if got := p.IntermediateBuildDir(); got != "/ws/app/build" {
		t.Errorf("intermediate dir = %q, want /ws/app/build", got)
	}
}

func TestBuildTargets_fixedOrder(t *testing.T) {
	// Key order in the manifest must not matter.
	m := mustParse(t, `{"name":"app","version":"1.0.0","pkgws":{"web":true,"node":true}}`, "package.json")
	p := project.New("/ws/app", m, &testutil.FakeDriver{}, discard())
	targets := p.BuildTargets()
	if len(targets) != 2 || targets[0] != project.TargetNode || targets[1] != project.TargetWeb {
		t.Errorf("targets = %v, want [node web]", targets)
	}

	m = mustParse(t, `{"name":"app","version":"1.0.0","pkgws":{"web":true}}`, "package.json")
	p = project.New("/ws/app", m, &testutil.FakeDriver{}, discard())
	targets = p.BuildTargets()
	if len(targets) != 1 || targets[0] != project.TargetWeb {
		t.Errorf("targets = %v, want [web]", targets)
	}

	m = mustParse(t, `{"name":"app","version":"1.0.0"}`, "package.json")
	p = project.New("/ws/app", m, &testutil.FakeDriver{}, discard())
	if p.HasBuildTargets() {
		t.Error("no settings block, HasBuildTargets should be false")
	}
}

func TestExecutables_stringBin(t *testing.T) {
	m := mustParse(t, `{"name":"foo","version":"1.0.0","bin":"./bin/cli.js"}`, "/ws/foo/package.json")
	p := project.New("/ws/foo", m, &testutil.FakeDriver{}, discard())
	execs, err := p.Executables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := execs["foo"]; got != "/ws/foo/bin/cli.js" {
		t.Errorf("executables[foo] = %q, want /ws/foo/bin/cli.js", got)
	}
	if len(execs) != 1 {
		t.Errorf("executables = %v, want exactly one entry", execs)
	}
}

func TestExecutables_mapBin(t *testing.T) {
	m := mustParse(t, `{"name":"foo","version":"1.0.0","bin":{"cli":"./bin/cli.js","worker":"bin/worker.js"}}`, "/ws/foo/package.json")
	p := project.New("/ws/foo", m, &testutil.FakeDriver{}, discard())
	execs, err := p.Executables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if execs["cli"] != "/ws/foo/bin/cli.js" || execs["worker"] != "/ws/foo/bin/worker.js" {
		t.Errorf("executables = %v", execs)
	}
}

func TestExecutables_invalidBin(t *testing.T) {
	m := mustParse(t, `{"name":"foo","version":"1.0.0","bin":42}`, "/ws/foo/package.json")
	p := project.New("/ws/foo", m, &testutil.FakeDriver{}, discard())
	_, err := p.Executables()
	if err == nil {
		t.Fatal("expected error for invalid bin shape")
	}
	var merr *manifest.Error
	if !errors.As(err, &merr) {
		t.Fatalf("error type = %T, want *manifest.Error", err)
	}
	if merr.Raw != "42" {
		t.Errorf("raw = %q, want the offending value", merr.Raw)
	}
	if merr.Path != "/ws/foo/package.json" {
		t.Errorf("path = %q", merr.Path)
	}
}

func TestExecutables_absentBin(t *testing.T) {
	m := mustParse(t, `{"name":"foo","version":"1.0.0"}`, "package.json")
	p := project.New("/ws/foo", m, &testutil.FakeDriver{}, discard())
	execs, err := p.Executables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(execs) != 0 {
		t.Errorf("executables = %v, want empty", execs)
	}
}

func TestPredicates(t *testing.T) {
	m := mustParse(t, `{"name":"app","version":"1.0.0","scripts":{"build":"tsc"},"devDependencies":{"jest":"^29.0.0"}}`, "package.json")
	p := project.New("/ws/app", m, &testutil.FakeDriver{}, discard())
	if !p.HasScript("build") {
		t.Error("HasScript(build) should be true")
	}
	if p.HasScript("lint") {
		t.Error("HasScript(lint) should be false")
	}
	if !p.HasDependencies() {
		t.Error("HasDependencies should count devDependencies")
	}
}

func TestFinalizeRoles_once(t *testing.T) {
	m := mustParse(t, `{"name":"app","version":"1.0.0"}`, "package.json")
	p := project.New("/ws/app", m, &testutil.FakeDriver{}, discard())
	if p.IsWorkspaceRoot() || p.IsWorkspaceProject() {
		t.Error("roles should default to false")
	}
	p.FinalizeRoles(true, false)
	p.FinalizeRoles(false, true) // ignored: roles are final
	if !p.IsWorkspaceRoot() || p.IsWorkspaceProject() {
		t.Error("second FinalizeRoles call must not change roles")
	}
}

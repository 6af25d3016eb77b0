package depcheck_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fbkclanna/pkgws/internal/depcheck"
	"github.com/fbkclanna/pkgws/internal/manifest"
	"github.com/fbkclanna/pkgws/internal/project"
	"github.com/fbkclanna/pkgws/internal/testutil"
)

func proj(t *testing.T, dir, data string) *project.Project {
	t.Helper()
	m, err := manifest.Parse([]byte(data), dir+"/package.json")
	if err != nil {
		t.Fatal(err)
	}
	return project.New(dir, m, &testutil.FakeDriver{}, log.New(io.Discard))
}

func TestEnsureValidDependency_linkReference(t *testing.T) {
	dependent := proj(t, "/ws/app", `{"name":"app","version":"1.0.0","dependencies":{"lib":"link:../libs/lib"}}`)
	dependency := proj(t, "/ws/libs/lib", `{"name":"lib","version":"1.0.0"}`)

	if err := depcheck.EnsureValidDependency(dependent, dependency, false); err != nil {
		t.Errorf("correct link declaration should validate: %v", err)
	}
}

func TestEnsureValidDependency_registryVersion(t *testing.T) {
	dependent := proj(t, "/ws/app", `{"name":"app","version":"1.0.0","dependencies":{"lib":"^1.0.0"}}`)
	dependency := proj(t, "/ws/libs/lib", `{"name":"lib","version":"1.0.0"}`)

	err := depcheck.EnsureValidDependency(dependent, dependency, false)
	if err == nil {
		t.Fatal("registry version should fail validation")
	}
	var mismatch *depcheck.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error type = %T, want *MismatchError", err)
	}
	if !strings.Contains(mismatch.Reason, "not using the local package") {
		t.Errorf("reason = %q", mismatch.Reason)
	}
	if mismatch.Actual != "^1.0.0" || mismatch.Expected != "link:../libs/lib" {
		t.Errorf("actual = %q, expected = %q", mismatch.Actual, mismatch.Expected)
	}
	if !strings.Contains(mismatch.Error(), `"lib": "link:../libs/lib"`) {
		t.Errorf("message should render the expected manifest fragment, got:\n%s", mismatch.Error())
	}
}

func TestEnsureValidDependency_wrongLinkPath(t *testing.T) {
	dependent := proj(t, "/ws/app", `{"name":"app","version":"1.0.0","dependencies":{"lib":"link:../lib"}}`)
	dependency := proj(t, "/ws/libs/lib", `{"name":"lib","version":"1.0.0"}`)

	err := depcheck.EnsureValidDependency(dependent, dependency, false)
	var mismatch *depcheck.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want *MismatchError", err)
	}
	if !strings.Contains(mismatch.Reason, "wrong path") {
		t.Errorf("reason = %q", mismatch.Reason)
	}
}

func TestEnsureValidDependency_workspaceMember(t *testing.T) {
	dependent := proj(t, "/ws/packages/app", `{"name":"app","version":"1.0.0","dependencies":{"lib":"2.1.0"}}`)
	dependency := proj(t, "/ws/packages/lib", `{"name":"lib","version":"2.1.0"}`)

	if err := depcheck.EnsureValidDependency(dependent, dependency, true); err != nil {
		t.Errorf("workspace version declaration should validate: %v", err)
	}
}

func TestEnsureValidDependency_memberDeclaresLink(t *testing.T) {
	dependent := proj(t, "/ws/packages/app", `{"name":"app","version":"1.0.0","dependencies":{"lib":"link:../lib"}}`)
	dependency := proj(t, "/ws/packages/lib", `{"name":"lib","version":"2.1.0"}`)

	err := depcheck.EnsureValidDependency(dependent, dependency, true)
	var mismatch *depcheck.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want *MismatchError", err)
	}
	if !strings.Contains(mismatch.Reason, "workspace version") {
		t.Errorf("reason = %q", mismatch.Reason)
	}
	if mismatch.Expected != "2.1.0" {
		t.Errorf("expected = %q, want the dependency's version", mismatch.Expected)
	}
}

func TestEnsureValidDependency_devDependencyCounts(t *testing.T) {
	dependent := proj(t, "/ws/app", `{"name":"app","version":"1.0.0","devDependencies":{"lib":"link:../libs/lib"}}`)
	dependency := proj(t, "/ws/libs/lib", `{"name":"lib","version":"1.0.0"}`)

	if err := depcheck.EnsureValidDependency(dependent, dependency, false); err != nil {
		t.Errorf("devDependency declaration should validate: %v", err)
	}
}

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fbkclanna/pkgws/internal/pm"
)

// Call records one driver invocation for assertion in tests.
type Call struct {
	Op   string
	Dir  string
	Args []string
}

// FakeDriver is a pm.Driver that records calls instead of running processes.
// The zero value is usable. Safe for concurrent use.
type FakeDriver struct {
	mu    sync.Mutex
	calls []Call

	// Info is returned by WorkspacesInfo.
	Info map[string]pm.WorkspaceInfo
	// ScriptOutput is returned by RunScript.
	ScriptOutput string
	// Err, when set, is returned by every operation.
	Err error
	// PatchReal, when true, performs real literal patching so tests can
	// assert on file contents.
	PatchReal bool
}

var _ pm.Driver = (*FakeDriver)(nil)

func (d *FakeDriver) record(op, dir string, args ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Op: op, Dir: dir, Args: args})
}

// Calls returns a copy of the recorded invocations in order.
func (d *FakeDriver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// CallsFor returns the recorded invocations with the given op.
func (d *FakeDriver) CallsFor(op string) []Call {
	var out []Call
	for _, c := range d.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (d *FakeDriver) Install(_ context.Context, dir string, extraArgs []string, frozen bool) error {
	args := append([]string(nil), extraArgs...)
	if frozen {
		args = append(args, "--frozen-lockfile")
	}
	d.record("install", dir, args...)
	return d.Err
}

func (d *FakeDriver) AddExact(_ context.Context, dir, name, version string, dev bool) error {
	args := []string{name + "@" + version}
	if dev {
		args = append(args, "--dev")
	}
	d.record("add", dir, args...)
	return d.Err
}

func (d *FakeDriver) RunScript(_ context.Context, dir, name string, args []string) (string, error) {
	d.record("run", dir, append([]string{name}, args...)...)
	return d.ScriptOutput, d.Err
}

func (d *FakeDriver) RunScriptStreaming(_ context.Context, opts pm.StreamOptions) error {
	d.record("run-streaming", opts.Dir, append([]string{opts.Script}, opts.Args...)...)
	return d.Err
}

func (d *FakeDriver) WorkspacesInfo(_ context.Context, dir string) (map[string]pm.WorkspaceInfo, error) {
	d.record("workspaces-info", dir)
	return d.Info, d.Err
}

func (d *FakeDriver) BuildTargetedPackage(_ context.Context, req pm.BuildRequest) error {
	args := append([]string(nil), req.Targets...)
	if req.GenerateSourcemap {
		args = append(args, "--generate-sourcemap")
	}
	args = append(args, req.ExtraArgs...)
	d.record("build", req.Dir, args...)
	return d.Err
}

func (d *FakeDriver) PatchFile(path, search, replace string) error {
	d.record("patch", path, search, replace)
	if d.Err != nil {
		return d.Err
	}
	if !d.PatchReal {
		return nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		return err
	}
	content := string(data)
	if !strings.Contains(content, search) {
		return fmt.Errorf("patching %s: %q not found", path, search)
	}
	return os.WriteFile(path, []byte(strings.ReplaceAll(content, search, replace)), 0644)
}

package pm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Yarn drives the yarn CLI. The zero value is not usable; construct with
// NewYarn.
type Yarn struct {
	bin string
}

// NewYarn returns a Driver that shells out to the given binary name
// (normally "yarn").
func NewYarn(bin string) *Yarn {
	return &Yarn{bin: bin}
}

// Install runs a full dependency install in dir.
func (y *Yarn) Install(ctx context.Context, dir string, extraArgs []string, frozen bool) error {
	args := []string{"install"}
	if frozen {
		args = append(args, "--frozen-lockfile")
	}
	args = append(args, extraArgs...)
	if err := y.run(ctx, dir, args...); err != nil {
		return fmt.Errorf("installing dependencies in %s: %w", dir, err)
	}
	return nil
}

// AddExact installs name pinned to exactly version.
func (y *Yarn) AddExact(ctx context.Context, dir, name, version string, dev bool) error {
	args := []string{"add", "--exact", name + "@" + version}
	if dev {
		args = append(args, "--dev")
	}
	if err := y.run(ctx, dir, args...); err != nil {
		return fmt.Errorf("adding %s@%s: %w", name, version, err)
	}
	return nil
}

// RunScript executes a manifest script and returns its stdout.
func (y *Yarn) RunScript(ctx context.Context, dir, name string, args []string) (string, error) {
	full := append([]string{"run", name}, args...)
	return y.output(ctx, dir, full...)
}

// RunScriptStreaming executes a manifest script with stdio attached.
func (y *Yarn) RunScriptStreaming(ctx context.Context, opts StreamOptions) error {
	args := append([]string{"run", opts.Script}, opts.Args...)
	cmd := exec.CommandContext(ctx, y.bin, args...) //nolint:gosec // script names come from the manifest
	cmd.Dir = opts.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// WorkspacesInfo runs `yarn workspaces info --json` and parses the mapping.
// Yarn v1 wraps the payload in a log envelope ({"type":"log","data":"..."});
// both the wrapped and the bare form are accepted.
func (y *Yarn) WorkspacesInfo(ctx context.Context, dir string) (map[string]WorkspaceInfo, error) {
	out, err := y.output(ctx, dir, "workspaces", "info", "--json")
	if err != nil {
		return nil, fmt.Errorf("querying workspaces info: %w", err)
	}
	return parseWorkspacesInfo([]byte(out))
}

func parseWorkspacesInfo(out []byte) (map[string]WorkspaceInfo, error) {
	payload := bytes.TrimSpace(out)

	var envelope struct {
		Type string `json:"type"`
		Data string `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Type == "log" {
		payload = []byte(envelope.Data)
	}

	info := make(map[string]WorkspaceInfo)
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, fmt.Errorf("parsing workspaces info: %w", err)
	}
	return info, nil
}

// BuildTargetedPackage runs the package's build script with target flags.
func (y *Yarn) BuildTargetedPackage(ctx context.Context, req BuildRequest) error {
	args := []string{"run", "build"}
	if len(req.Targets) > 0 {
		args = append(args, "--targets", strings.Join(req.Targets, ","))
	}
	if req.GenerateSourcemap {
		args = append(args, "--generate-sourcemap")
	}
	args = append(args, req.ExtraArgs...)
	if err := y.run(ctx, req.Dir, args...); err != nil {
		return fmt.Errorf("building %s: %w", req.Dir, err)
	}
	return nil
}

// run executes a yarn command in dir with output streamed to the console.
func (y *Yarn) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, y.bin, args...) //nolint:gosec // args are built from manifest data
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// output executes a yarn command and returns its stdout. Stderr is captured
// and included in the error message on failure.
func (y *Yarn) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, y.bin, args...) //nolint:gosec // args are built from manifest data
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", y.bin, strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}

// IsInstalled returns true if the package manager binary is on PATH.
func (y *Yarn) IsInstalled() bool {
	_, err := exec.LookPath(y.bin)
	return err == nil
}

// Version returns the package manager's version string.
func (y *Yarn) Version(ctx context.Context) (string, error) {
	out, err := y.output(ctx, ".", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

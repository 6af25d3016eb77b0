package pm

import "context"

// WorkspaceInfo describes one workspace member as reported by the package
// manager: where it lives and which other members it declares as
// dependencies.
type WorkspaceInfo struct {
	Location              string   `json:"location"`
	WorkspaceDependencies []string `json:"workspaceDependencies"`
}

// StreamOptions configures a script run with stdio attached to the caller's
// terminal instead of captured output.
type StreamOptions struct {
	Dir    string
	Script string
	Args   []string
}

// BuildRequest configures a targeted package build.
type BuildRequest struct {
	Dir               string
	Targets           []string
	GenerateSourcemap bool
	ExtraArgs         []string
}

// Driver is the narrow command interface to the external package manager.
// Implementations run real processes; tests substitute a recording fake.
// All driver errors are propagated unchanged, with no retry policy.
type Driver interface {
	// Install runs a full dependency install in dir. Frozen forbids lock
	// file updates.
	Install(ctx context.Context, dir string, extraArgs []string, frozen bool) error

	// AddExact installs a single dependency pinned to an exact version.
	AddExact(ctx context.Context, dir, name, version string, dev bool) error

	// RunScript executes a named manifest script in dir and returns its
	// combined stdout.
	RunScript(ctx context.Context, dir, name string, args []string) (string, error)

	// RunScriptStreaming executes a named manifest script with stdio
	// forwarded to the current process.
	RunScriptStreaming(ctx context.Context, opts StreamOptions) error

	// WorkspacesInfo reports workspace membership for the workspace rooted
	// at dir.
	WorkspacesInfo(ctx context.Context, dir string) (map[string]WorkspaceInfo, error)

	// BuildTargetedPackage runs a package build for the given targets.
	BuildTargetedPackage(ctx context.Context, req BuildRequest) error

	// PatchFile replaces every literal occurrence of search in the file at
	// path with replace. Zero occurrences is an error.
	PatchFile(path, search, replace string) error
}

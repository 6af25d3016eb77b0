package project

import (
	"context"

	"github.com/fbkclanna/pkgws/internal/pm"
)

// InstallOptions configures a full dependency install.
type InstallOptions struct {
	ExtraArgs []string
	// Frozen forbids lock file updates during install.
	Frozen bool
}

// BuildOptions configures a targeted build.
type BuildOptions struct {
	// Targets restricts the build; empty means every declared target.
	Targets           []BuildTarget
	GenerateSourcemap bool
	ExtraArgs         []string
}

// RunScript executes a named manifest script in the project directory and
// returns its output. Driver failures propagate unchanged.
func (p *Project) RunScript(ctx context.Context, name string, args []string) (string, error) {
	p.logger.Info("running script", "project", p.Name(), "script", name)
	return p.drv.RunScript(ctx, p.Dir, name, args)
}

// RunScriptStreaming executes a named manifest script with stdio forwarded
// to the current process.
func (p *Project) RunScriptStreaming(ctx context.Context, name string, args []string) error {
	p.logger.Info("running script", "project", p.Name(), "script", name)
	return p.drv.RunScriptStreaming(ctx, pm.StreamOptions{Dir: p.Dir, Script: name, Args: args})
}

// BuildForTargets builds the package for the requested targets. When the
// package declares no targets the build is skipped: the return value is
// false and a warning is logged.
func (p *Project) BuildForTargets(ctx context.Context, opts BuildOptions) (bool, error) {
	declared := p.BuildTargets()
	if len(declared) == 0 {
		p.logger.Warn("no build targets declared, skipping build", "project", p.Name())
		return false, nil
	}

	targets := opts.Targets
	if len(targets) == 0 {
		targets = declared
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}

	p.logger.Info("building package", "project", p.Name(), "targets", names)
	req := pm.BuildRequest{
		Dir:               p.Dir,
		Targets:           names,
		GenerateSourcemap: opts.GenerateSourcemap,
		ExtraArgs:         opts.ExtraArgs,
	}
	if err := p.drv.BuildTargetedPackage(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

// InstallDependencies runs a full dependency install in the project
// directory. On the workspace root it then reconciles the derived symlink
// layout against the declared dependency graph.
func (p *Project) InstallDependencies(ctx context.Context, opts InstallOptions) error {
	p.logger.Info("installing dependencies", "project", p.Name())
	if err := p.drv.Install(ctx, p.Dir, opts.ExtraArgs, opts.Frozen); err != nil {
		return err
	}
	if p.isWorkspaceRoot {
		return p.RemoveExtraneousLinks(ctx)
	}
	return nil
}

// InstallDependencyVersion installs one dependency at an exact version, then
// patches the manifest and lock artifacts in place to replace every literal
// name@version occurrence with name@rng (default rng is the caret-prefixed
// version).
//
// Workspace members share the root lock file, so for them the exact-version
// path degrades to a bare install of the project directory with no
// per-package pin recorded. That is documented package-manager behavior, not
// something to silently correct here.
func (p *Project) InstallDependencyVersion(ctx context.Context, name, version string, dev bool, rng string) error {
	if p.isWorkspaceProject {
		p.logger.Warn("workspace member shares the root lock file; reinstalling without an explicit pin",
			"project", p.Name(), "dependency", name)
		return p.drv.Install(ctx, p.Dir, nil, false)
	}

	p.logger.Info("installing dependency", "project", p.Name(), "dependency", name, "version", version)
	if err := p.drv.AddExact(ctx, p.Dir, name, version, dev); err != nil {
		return err
	}

	if rng == "" {
		rng = "^" + version
	}
	search := name + "@" + version
	replace := name + "@" + rng
	if err := p.drv.PatchFile(p.ManifestPath(), search, replace); err != nil {
		return err
	}
	return p.drv.PatchFile(p.LockPath(), search, replace)
}

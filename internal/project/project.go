package project

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/fbkclanna/pkgws/internal/manifest"
	"github.com/fbkclanna/pkgws/internal/pm"
)

// Project wraps one package manifest plus its directory on disk. It is the
// unit all higher operations act on: one Project per discovered package
// directory, built at workspace-scan time and read-only afterwards except
// for the role flags, which the graph builder finalizes once.
type Project struct {
	// Dir is the absolute package directory.
	Dir string
	// Manifest is the parsed package.json, immutable after load.
	Manifest *manifest.Manifest

	drv    pm.Driver
	logger *log.Logger

	isWorkspaceRoot    bool
	isWorkspaceProject bool
	rolesFinal         bool
}

// Load reads the package.json in dir and constructs a Project around it.
func Load(dir string, drv pm.Driver, logger *log.Logger) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}
	m, err := manifest.Load(filepath.Join(abs, "package.json"))
	if err != nil {
		return nil, err
	}
	return &Project{Dir: abs, Manifest: m, drv: drv, logger: logger}, nil
}

// New constructs a Project from an already-parsed manifest. Used by tests
// and by callers that parse manifests in bulk.
func New(dir string, m *manifest.Manifest, drv pm.Driver, logger *log.Logger) *Project {
	return &Project{Dir: dir, Manifest: m, drv: drv, logger: logger}
}

// FinalizeRoles sets the two workspace role flags. The graph builder calls
// it exactly once per project after the full graph is constructed; later
// calls are ignored so the graph stays effectively immutable.
func (p *Project) FinalizeRoles(isRoot, isMember bool) {
	if p.rolesFinal {
		return
	}
	p.isWorkspaceRoot = isRoot
	p.isWorkspaceProject = isMember
	p.rolesFinal = true
}

// IsWorkspaceRoot reports whether this project is the workspace root.
func (p *Project) IsWorkspaceRoot() bool { return p.isWorkspaceRoot }

// IsWorkspaceProject reports whether this project is a member referenced by
// a workspace root. Orthogonal to IsWorkspaceRoot; both may be false.
func (p *Project) IsWorkspaceProject() bool { return p.isWorkspaceProject }

// Name returns the manifest name.
func (p *Project) Name() string { return p.Manifest.Name }

// Version returns the manifest version.
func (p *Project) Version() string { return p.Manifest.Version }

// ManifestPath returns the absolute path of the package.json.
func (p *Project) ManifestPath() string { return filepath.Join(p.Dir, "package.json") }

// LockPath returns the absolute path of the package manager's lock file.
func (p *Project) LockPath() string { return filepath.Join(p.Dir, "yarn.lock") }

// NodeModulesDir returns the absolute dependency-install directory.
func (p *Project) NodeModulesDir() string { return filepath.Join(p.Dir, "node_modules") }

// DistDir returns the absolute build-output directory.
func (p *Project) DistDir() string { return filepath.Join(p.Dir, "dist") }

// BuildConfig returns the build settings sub-block, or its zero value when
// absent.
func (p *Project) BuildConfig() manifest.BuildSettings { return p.Manifest.Settings.Build }

// CleanConfig returns the clean settings sub-block, or its zero value when
// absent.
func (p *Project) CleanConfig() manifest.CleanSettings { return p.Manifest.Settings.Clean }

// IntermediateBuildDir resolves build.intermediateBuildDirectory (default
// ".") relative to the project directory. Pure, no I/O.
func (p *Project) IntermediateBuildDir() string {
	sub := p.BuildConfig().IntermediateBuildDirectory
	if sub == "" {
		sub = "."
	}
	return filepath.Join(p.Dir, sub)
}

// AllDependencies merges devDependencies and dependencies, production wins.
func (p *Project) AllDependencies() map[string]string { return p.Manifest.AllDependencies() }

// Executables resolves the bin field into a mapping from executable name to
// absolute path. A string bin yields one entry keyed by the project name; a
// mapping bin resolves every value relative to the project directory. Any
// other declared shape is a manifest error carrying the raw value.
func (p *Project) Executables() (map[string]string, error) {
	if p.Manifest.Bin.IsZero() {
		return map[string]string{}, nil
	}
	if path, ok := p.Manifest.Bin.Path(); ok {
		return map[string]string{p.Name(): filepath.Join(p.Dir, path)}, nil
	}
	if paths, ok := p.Manifest.Bin.Paths(); ok {
		execs := make(map[string]string, len(paths))
		for name, path := range paths {
			execs[name] = filepath.Join(p.Dir, path)
		}
		return execs, nil
	}
	return nil, &manifest.Error{
		Path:   p.ManifestPath(),
		Reason: "invalid bin field",
		Raw:    p.Manifest.Bin.Raw(),
	}
}

// HasBuildTargets reports whether any build target is declared.
func (p *Project) HasBuildTargets() bool { return len(p.BuildTargets()) > 0 }

// HasScript reports whether the manifest declares the named script.
func (p *Project) HasScript(name string) bool {
	_, ok := p.Manifest.Scripts[name]
	return ok
}

// HasDependencies reports whether any dependency is declared.
func (p *Project) HasDependencies() bool { return len(p.AllDependencies()) > 0 }

package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/fbkclanna/pkgws/internal/depcheck"
	"github.com/fbkclanna/pkgws/internal/pm"
	"github.com/fbkclanna/pkgws/internal/project"
)

// Graph holds the project graph for one command invocation: the root project
// plus every workspace member, keyed by manifest name. It is built once and
// read-only afterwards.
type Graph struct {
	Root     *project.Project
	Projects map[string]*project.Project
	// Names is the sorted member name list, for deterministic iteration.
	Names []string
}

// Build loads the root manifest at rootDir, discovers every workspace member
// through the declared glob patterns, and finalizes the role flags on all
// projects in one pass.
func Build(rootDir string, drv pm.Driver, logger *log.Logger) (*Graph, error) {
	root, err := project.Load(rootDir, drv, logger)
	if err != nil {
		return nil, err
	}

	g := &Graph{Root: root, Projects: make(map[string]*project.Project)}

	if root.Manifest.IsWorkspaceRoot() {
		for _, pattern := range root.Manifest.Workspaces.Packages {
			matches, err := filepath.Glob(filepath.Join(root.Dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("expanding workspaces pattern %q: %w", pattern, err)
			}
			for _, dir := range matches {
				if !hasManifest(dir) {
					continue
				}
				p, err := project.Load(dir, drv, logger)
				if err != nil {
					return nil, err
				}
				if existing, ok := g.Projects[p.Name()]; ok {
					return nil, fmt.Errorf("duplicate package name %q (%s and %s)", p.Name(), existing.Dir, p.Dir)
				}
				g.Projects[p.Name()] = p
				g.Names = append(g.Names, p.Name())
			}
		}
	}
	sort.Strings(g.Names)

	// Roles are finalized only after the whole graph exists; nothing mutates
	// a project afterwards.
	root.FinalizeRoles(root.Manifest.IsWorkspaceRoot(), false)
	for _, name := range g.Names {
		member := g.Projects[name]
		member.FinalizeRoles(member.Manifest.IsWorkspaceRoot(), true)
	}

	return g, nil
}

func hasManifest(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, "package.json"))
	return err == nil
}

// ValidateAll checks every declared dependency edge between graph projects
// against the linking policy and returns all mismatches, never stopping at
// the first. Dependents are validated concurrently, bounded by jobs; the
// result order is deterministic (root first, then members by name, each
// dependent's dependencies by name).
func (g *Graph) ValidateAll(ctx context.Context, jobs int) []error {
	dependents := make([]*project.Project, 0, len(g.Names)+1)
	dependents = append(dependents, g.Root)
	for _, name := range g.Names {
		dependents = append(dependents, g.Projects[name])
	}

	results := make([][]error, len(dependents))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, dependent := range dependents {
		i, dependent := i, dependent
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = g.validateDependent(dependent)
			return nil
		})
	}
	// Validation is pure; the only group error is cancellation.
	if err := eg.Wait(); err != nil {
		return []error{err}
	}

	var all []error
	for _, errs := range results {
		all = append(all, errs...)
	}
	return all
}

func (g *Graph) validateDependent(dependent *project.Project) []error {
	deps := dependent.AllDependencies()
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		dependency, ok := g.Projects[name]
		if !ok || dependency == dependent {
			continue
		}
		if err := depcheck.EnsureValidDependency(dependent, dependency, dependent.IsWorkspaceProject()); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ForEach applies fn to every member project, bounded by jobs. Each project
// is visited by exactly one goroutine, so operations on a single project
// directory are serialized; independent projects run concurrently.
// Cancellation propagates through the group context.
func (g *Graph) ForEach(ctx context.Context, jobs int, fn func(context.Context, *project.Project) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for _, name := range g.Names {
		p := g.Projects[name]
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, p)
		})
	}
	return eg.Wait()
}

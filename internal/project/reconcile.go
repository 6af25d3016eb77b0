package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// RemoveExtraneousLinks prunes node_modules links for workspace members that
// correspond to no declared dependency edge. The install tool links every
// workspace member into the root node_modules regardless of use; a member
// that no other member depends on, and that the root itself does not declare,
// leaves a stale link behind. No-op unless this project is the workspace
// root.
func (p *Project) RemoveExtraneousLinks(ctx context.Context) error {
	if !p.isWorkspaceRoot {
		return nil
	}

	info, err := p.drv.WorkspacesInfo(ctx, p.Dir)
	if err != nil {
		return err
	}

	// Union of every member's declared intra-workspace dependencies.
	referenced := make(map[string]bool)
	for _, member := range info {
		for _, dep := range member.WorkspaceDependencies {
			referenced[dep] = true
		}
	}

	names := make([]string, 0, len(info))
	for name := range info {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if referenced[name] {
			continue
		}
		if p.Manifest.DependsOn(name) {
			continue
		}
		if err := p.removeLink(name); err != nil {
			return err
		}
	}
	return nil
}

// removeLink removes the node_modules entry for name if one exists. Lstat,
// not Stat: the entries are symlinks and a dangling link must still be
// removable.
func (p *Project) removeLink(name string) error {
	link := filepath.Join(p.NodeModulesDir(), name)
	if _, err := os.Lstat(link); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking link %s: %w", link, err)
	}
	p.logger.Info("removing extraneous link", "project", p.Name(), "dependency", name)
	if err := os.Remove(link); err != nil {
		return fmt.Errorf("removing link %s: %w", link, err)
	}
	return nil
}

// Package depcheck validates cross-package dependency declarations against
// the workspace-linking policy: workspace members must reference each other
// by workspace version, everything else must reference local packages by
// link path.
package depcheck

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/pkgws/internal/project"
)

const linkPrefix = "link:"

// MismatchError reports one dependency declaration that violates the
// workspace-linking policy. Actual and Expected are the raw declaration
// strings; Fragment renders them as manifest text for direct display.
type MismatchError struct {
	Dependent  string
	Dependency string
	Reason     string
	Actual     string
	Expected   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: dependency %s: %s\n  declared: %s\n  expected: %s",
		e.Dependent, e.Dependency, e.Reason,
		fragment(e.Dependency, e.Actual), fragment(e.Dependency, e.Expected))
}

// fragment renders a declaration the way it appears in package.json.
func fragment(name, value string) string {
	return fmt.Sprintf("%q: %q", name, value)
}

// EnsureValidDependency verifies that dependent's declared version string
// for dependency matches policy: the dependency's own version when the
// dependent is a workspace member, or a link path relative to the
// dependent's directory otherwise. Path separators in link references are
// always forward slashes, on every platform.
func EnsureValidDependency(dependent, dependency *project.Project, dependentIsWorkspaceMember bool) error {
	expected, err := expectedDeclaration(dependent, dependency, dependentIsWorkspaceMember)
	if err != nil {
		return err
	}

	actual := dependent.AllDependencies()[dependency.Name()]
	if actual == expected {
		return nil
	}

	var reason string
	switch {
	case dependentIsWorkspaceMember && strings.HasPrefix(actual, linkPrefix):
		reason = "declared as a link, but workspace members must use the workspace version"
	case strings.HasPrefix(actual, linkPrefix):
		reason = "linked to the wrong path"
	default:
		reason = "not using the local package"
	}

	return &MismatchError{
		Dependent:  dependent.Name(),
		Dependency: dependency.Name(),
		Reason:     reason,
		Actual:     actual,
		Expected:   expected,
	}
}

func expectedDeclaration(dependent, dependency *project.Project, member bool) (string, error) {
	if member {
		return dependency.Version(), nil
	}
	rel, err := filepath.Rel(dependent.Dir, dependency.Dir)
	if err != nil {
		return "", fmt.Errorf("resolving link path from %s to %s: %w", dependent.Dir, dependency.Dir, err)
	}
	return linkPrefix + filepath.ToSlash(rel), nil
}

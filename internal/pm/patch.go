package pm

import (
	"fmt"
	"os"
	"strings"
)

// PatchFile replaces every literal occurrence of search with replace in the
// file at path, preserving the file mode. The lock file's formatting is
// owned by the external tool, so this is a textual patch, never a structured
// rewrite. Zero occurrences means the expected text was not produced by the
// preceding install, which is an error rather than a silent no-op.
func (y *Yarn) PatchFile(path, search, replace string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is a workspace artifact path
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	content := string(data)
	n := strings.Count(content, search)
	if n == 0 {
		return fmt.Errorf("patching %s: %q not found", path, search)
	}
	patched := strings.ReplaceAll(content, search, replace)
	if err := os.WriteFile(path, []byte(patched), info.Mode()); err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	return nil
}

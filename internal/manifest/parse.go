package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Error reports a missing, malformed, or structurally invalid manifest.
// Raw carries the offending JSON fragment when one is known.
type Error struct {
	Path   string
	Reason string
	Raw    string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("manifest %s: %s", e.Path, e.Reason)
	if e.Raw != "" {
		msg += fmt.Sprintf(" (got %s)", e.Raw)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads and parses the package.json at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a package manifest path
	if err != nil {
		return nil, &Error{Path: path, Reason: "reading manifest", Err: err}
	}
	return Parse(data, path)
}

// Parse parses package.json content. The path is recorded for diagnostics.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &Error{Path: path, Reason: "parsing manifest JSON", Err: err}
	}
	m.path = path
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func validate(m *Manifest) error {
	if m.Name == "" {
		return &Error{Path: m.path, Reason: "name is required"}
	}
	if m.Version == "" {
		return &Error{Path: m.path, Reason: "version is required"}
	}
	return nil
}

package manifest

import "encoding/json"

// Manifest is the parsed package.json of a single package. It is immutable
// after Load/Parse: derived views such as AllDependencies return fresh values
// instead of exposing internal state.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Bin             BinField          `json:"bin,omitempty"`
	Workspaces      *Workspaces       `json:"workspaces,omitempty"`
	Settings        Settings          `json:"pkgws,omitempty"`

	// path is where the manifest was loaded from, for diagnostics.
	path string
}

// Workspaces is the value of the "workspaces" key. The key accepts either an
// array of glob patterns or an object with a "packages" array; presence of
// the key (even with an empty list) marks the manifest as a workspace root.
type Workspaces struct {
	Packages []string
}

// UnmarshalJSON accepts both the shorthand array and the object form.
func (w *Workspaces) UnmarshalJSON(data []byte) error {
	var patterns []string
	if err := json.Unmarshal(data, &patterns); err == nil {
		w.Packages = patterns
		return nil
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	w.Packages = obj.Packages
	return nil
}

// Settings is the pkgws-namespaced settings block. One boolean field per
// build target, plus build and clean sub-blocks.
type Settings struct {
	Node    bool          `json:"node,omitempty"`
	Web     bool          `json:"web,omitempty"`
	DevOnly bool          `json:"devOnly,omitempty"`
	Build   BuildSettings `json:"build,omitempty"`
	Clean   CleanSettings `json:"clean,omitempty"`
}

// BuildSettings configures targeted builds for a package.
type BuildSettings struct {
	Skip                       bool   `json:"skip,omitempty"`
	IntermediateBuildDirectory string `json:"intermediateBuildDirectory,omitempty"`
	OSS                        bool   `json:"oss,omitempty"`
}

// CleanSettings configures extra patterns removed on clean.
type CleanSettings struct {
	ExtraPatterns []string `json:"extraPatterns,omitempty"`
}

// BinField is the "bin" key: a single path string, a name-to-path mapping,
// or absent. Any other shape is retained raw and rejected later when
// executables are resolved, so the diagnostic can carry the offending value.
type BinField struct {
	path  string
	paths map[string]string
	raw   json.RawMessage
}

// UnmarshalJSON never fails on shape: an unrecognized shape is kept raw so
// Project.Executables can report it with context.
func (b *BinField) UnmarshalJSON(data []byte) error {
	b.raw = append(json.RawMessage(nil), data...)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.path = s
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err == nil {
		b.paths = m
		return nil
	}
	return nil
}

// IsZero reports whether the bin key was absent.
func (b BinField) IsZero() bool { return b.raw == nil }

// Path returns the single-string form, if that is the declared shape.
func (b BinField) Path() (string, bool) { return b.path, b.path != "" }

// Paths returns the mapping form, if that is the declared shape.
func (b BinField) Paths() (map[string]string, bool) { return b.paths, b.paths != nil }

// Raw returns the raw JSON of the bin value for diagnostics.
func (b BinField) Raw() string { return string(b.raw) }

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string { return m.path }

// IsWorkspaceRoot reports whether the manifest declares a workspaces key.
func (m *Manifest) IsWorkspaceRoot() bool { return m.Workspaces != nil }

// AllDependencies merges devDependencies and dependencies, with production
// entries winning on key collision. The returned map is a fresh copy.
func (m *Manifest) AllDependencies() map[string]string {
	all := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for name, rng := range m.DevDependencies {
		all[name] = rng
	}
	for name, rng := range m.Dependencies {
		all[name] = rng
	}
	return all
}

// DependsOn reports whether name is declared in dependencies or
// devDependencies.
func (m *Manifest) DependsOn(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

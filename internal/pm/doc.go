// Package pm provides the command interface to the external package manager
// used by pkgws. It handles installs, script execution, targeted builds,
// workspace membership queries, and literal text patching of the manifest
// and lock artifacts, without depending on other internal packages.
package pm

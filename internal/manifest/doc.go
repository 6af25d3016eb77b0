// Package manifest handles parsing of package.json files into an immutable
// in-memory representation. It tolerates the multiple accepted shapes of the
// workspaces and bin keys and decodes the pkgws-namespaced settings block
// into typed configuration.
package manifest

// Package project models a single package directory: its parsed manifest,
// derived filesystem locations, build targets, and the operations that drive
// the external package manager for it (installs, scripts, targeted builds).
// It also reconciles the workspace root's node_modules links against the
// declared dependency graph.
package project

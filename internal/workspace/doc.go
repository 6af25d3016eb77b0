// Package workspace builds the project graph for a workspace root and runs
// whole-graph operations over it: dependency-policy validation with error
// aggregation and bounded-parallel per-project work.
package workspace

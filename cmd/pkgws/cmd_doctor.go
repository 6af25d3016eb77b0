package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/pkgws/internal/config"
	"github.com/fbkclanna/pkgws/internal/pm"
	"github.com/fbkclanna/pkgws/internal/workspace"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common issues",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	out := cmd.OutOrStdout()
	ok := true

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(out, "Checking config... INVALID: %v\n", err)
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Fprintf(out, "Checking config... ok (package manager: %s, jobs: %d)\n", cfg.PackageManager, cfg.Jobs)

	drv := pm.NewYarn(cfg.PackageManager)
	fmt.Fprintf(out, "Checking %s... ", cfg.PackageManager)
	if !drv.IsInstalled() {
		fmt.Fprintln(out, "NOT FOUND")
		fmt.Fprintf(out, "  %s is required and must be on PATH\n", cfg.PackageManager)
		ok = false
	} else if ver, verr := drv.Version(cmd.Context()); verr != nil {
		fmt.Fprintf(out, "found, version check failed: %v\n", verr)
		ok = false
	} else {
		fmt.Fprintf(out, "found (%s)\n", ver)
	}

	fmt.Fprint(out, "Checking workspace... ")
	g, err := workspace.Build(root, drv, newLogger(cmd))
	switch {
	case err != nil:
		fmt.Fprintf(out, "FAILED: %v\n", err)
		ok = false
	case !g.Root.IsWorkspaceRoot():
		fmt.Fprintf(out, "%s loads, but declares no workspaces key\n", g.Root.Name())
	default:
		fmt.Fprintf(out, "%s (%d packages)\n", g.Root.Name(), len(g.Names))
		if ok {
			checkMembership(cmd, out, drv, g)
		}
	}

	if ok {
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkMembership compares the package manager's view of the workspace with
// the scanned graph.
func checkMembership(cmd *cobra.Command, out io.Writer, drv pm.Driver, g *workspace.Graph) {
	info, err := drv.WorkspacesInfo(cmd.Context(), g.Root.Dir)
	if err != nil {
		fmt.Fprintf(out, "  workspaces info unavailable: %v\n", err)
		return
	}
	for _, name := range g.Names {
		if _, known := info[name]; !known {
			fmt.Fprintf(out, "  Warning: %s is on disk but not linked (install needed?)\n", name)
		}
	}
	for name := range info {
		if _, known := g.Projects[name]; !known {
			fmt.Fprintf(out, "  Warning: %s is linked but has no package directory\n", name)
		}
	}
}

package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/pkgws/internal/config"
	"github.com/fbkclanna/pkgws/internal/pm"
	"github.com/fbkclanna/pkgws/internal/workspace"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pkgws",
		Short:   "Workspace package orchestrator",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newValidateCmd(),
		newInstallCmd(),
		newRunCmd(),
		newBuildCmd(),
		newAddCmd(),
		newPruneCmd(),
		newListCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// newLogger builds the CLI logger; --verbose lowers the level to debug.
func newLogger(cmd *cobra.Command) *log.Logger {
	level := log.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}

// loadGraph resolves the workspace root, loads the tool config, and builds
// the project graph every command operates on.
func loadGraph(cmd *cobra.Command) (*workspace.Graph, config.Config, error) {
	root, _ := cmd.Flags().GetString("root")

	cfg, err := config.Load(root)
	if err != nil {
		return nil, config.Config{}, err
	}

	drv := pm.NewYarn(cfg.PackageManager)
	g, err := workspace.Build(root, drv, newLogger(cmd))
	if err != nil {
		return nil, config.Config{}, err
	}
	return g, cfg, nil
}

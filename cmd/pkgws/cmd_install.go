package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/pkgws/internal/project"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install workspace dependencies and prune extraneous links",
		RunE:  runInstall,
	}
	cmd.Flags().Bool("frozen", false, "Forbid lock file updates")
	cmd.Flags().StringSlice("arg", nil, "Extra arguments forwarded to the package manager")
	return cmd
}

func runInstall(cmd *cobra.Command, _ []string) error {
	frozen, _ := cmd.Flags().GetBool("frozen")
	extraArgs, _ := cmd.Flags().GetStringSlice("arg")

	g, _, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	opts := project.InstallOptions{ExtraArgs: extraArgs, Frozen: frozen}
	if err := g.Root.InstallDependencies(cmd.Context(), opts); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Install complete.")
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove node_modules links that match no declared dependency edge",
		RunE:  runPrune,
	}
}

func runPrune(cmd *cobra.Command, _ []string) error {
	g, _, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	if !g.Root.IsWorkspaceRoot() {
		return fmt.Errorf("%s is not a workspace root", g.Root.Dir)
	}
	if err := g.Root.RemoveExtraneousLinks(cmd.Context()); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Prune complete.")
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name] [version]",
		Short: "Install a dependency at an exact version and widen it to a range",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runAdd,
	}
	cmd.Flags().Bool("dev", false, "Add to devDependencies")
	cmd.Flags().String("range", "", "Range recorded in the artifacts (default ^<version>)")
	cmd.Flags().String("pkg", "", "Target a workspace package instead of the root")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	dev, _ := cmd.Flags().GetBool("dev")
	rng, _ := cmd.Flags().GetString("range")
	pkg, _ := cmd.Flags().GetString("pkg")

	name, ver, err := addArgs(args)
	if err != nil {
		return err
	}

	g, _, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	target := g.Root
	if pkg != "" {
		p, ok := g.Projects[pkg]
		if !ok {
			return fmt.Errorf("unknown package %q", pkg)
		}
		target = p
	}

	if err := target.InstallDependencyVersion(cmd.Context(), name, ver, dev, rng); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s@%s to %s.\n", name, ver, target.Name())
	return nil
}

// addArgs resolves the dependency name and version from positional args,
// prompting interactively on a terminal when they are missing.
func addArgs(args []string) (name, ver string, err error) {
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		ver = args[1]
	}
	if name != "" && ver != "" {
		return name, ver, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", "", fmt.Errorf("usage: pkgws add <name> <version>")
	}

	if name == "" {
		name, err = promptInput("Dependency name", "lodash", notEmpty("name"))
		if err != nil {
			return "", "", err
		}
	}
	if ver == "" {
		ver, err = promptInput("Exact version", "4.17.21", notEmpty("version"))
		if err != nil {
			return "", "", err
		}
	}
	return name, ver, nil
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

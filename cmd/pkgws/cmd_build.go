package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/pkgws/internal/project"
	"github.com/fbkclanna/pkgws/internal/ui"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build workspace packages for their declared targets",
		RunE:  runBuild,
	}
	cmd.Flags().StringSlice("targets", nil, "Restrict build targets (node, web)")
	cmd.Flags().Bool("sourcemap", false, "Generate source maps")
	cmd.Flags().StringSlice("only", nil, "Build only these packages")
	cmd.Flags().StringSlice("skip", nil, "Skip these packages")
	cmd.Flags().Int("jobs", 0, "Parallel workers (default from config)")
	return cmd
}

func runBuild(cmd *cobra.Command, _ []string) error {
	targetNames, _ := cmd.Flags().GetStringSlice("targets")
	sourcemap, _ := cmd.Flags().GetBool("sourcemap")
	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	jobs, _ := cmd.Flags().GetInt("jobs")

	targets, err := parseTargets(targetNames)
	if err != nil {
		return err
	}

	g, cfg, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = cfg.Jobs
	}

	opts := project.BuildOptions{
		Targets:           targets,
		GenerateSourcemap: sourcemap || cfg.Build.GenerateSourcemap,
	}

	selected := toSet(selectProjects(g.Names, only, skip))
	progress := ui.NewProgress(cmd.ErrOrStderr(), len(selected))

	err = g.ForEach(cmd.Context(), jobs, func(ctx context.Context, p *project.Project) error {
		if !selected[p.Name()] {
			return nil
		}
		if p.BuildConfig().Skip {
			progress.Skip(p.Name())
			return nil
		}
		built, err := p.BuildForTargets(ctx, opts)
		if err != nil {
			return fmt.Errorf("package %s: %w", p.Name(), err)
		}
		if !built {
			progress.Skip(p.Name())
			return nil
		}
		progress.Done(p.Name())
		return nil
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Build complete.")
	return nil
}

func parseTargets(names []string) ([]project.BuildTarget, error) {
	var targets []project.BuildTarget
	for _, name := range names {
		switch t := project.BuildTarget(name); t {
		case project.TargetNode, project.TargetWeb:
			targets = append(targets, t)
		default:
			return nil, fmt.Errorf("unknown build target %q (must be node or web)", name)
		}
	}
	return targets, nil
}

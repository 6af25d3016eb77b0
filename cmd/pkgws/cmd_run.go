package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/pkgws/internal/project"
	"github.com/fbkclanna/pkgws/internal/ui"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Run a manifest script across workspace packages",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRun,
	}
	cmd.Flags().String("pkg", "", "Run in a single package, streaming its output")
	cmd.Flags().StringSlice("only", nil, "Run only in these packages")
	cmd.Flags().StringSlice("skip", nil, "Skip these packages")
	cmd.Flags().Int("jobs", 0, "Parallel workers (default from config)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	pkg, _ := cmd.Flags().GetString("pkg")
	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	jobs, _ := cmd.Flags().GetInt("jobs")

	script, scriptArgs := args[0], args[1:]

	g, cfg, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = cfg.Jobs
	}

	// Single-package mode streams the script's stdio directly.
	if pkg != "" {
		p, ok := g.Projects[pkg]
		if !ok {
			return fmt.Errorf("unknown package %q", pkg)
		}
		if !p.HasScript(script) {
			return fmt.Errorf("package %q has no script %q", pkg, script)
		}
		return p.RunScriptStreaming(cmd.Context(), script, scriptArgs)
	}

	selected := selectProjects(g.Names, only, skip)
	progress := ui.NewProgress(cmd.ErrOrStderr(), len(selected))

	targets := make(map[string]bool, len(selected))
	for _, name := range selected {
		targets[name] = true
	}

	err = g.ForEach(cmd.Context(), jobs, func(ctx context.Context, p *project.Project) error {
		if !targets[p.Name()] {
			return nil
		}
		if !p.HasScript(script) {
			progress.Skip(p.Name())
			return nil
		}
		if _, err := p.RunScript(ctx, script, scriptArgs); err != nil {
			return fmt.Errorf("package %s: script %s: %w", p.Name(), script, err)
		}
		progress.Done(p.Name())
		return nil
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Run complete.")
	return nil
}

// selectProjects applies --only / --skip name filters.
func selectProjects(names, only, skip []string) []string {
	onlySet := toSet(only)
	skipSet := toSet(skip)

	var result []string
	for _, name := range names {
		if len(onlySet) > 0 && !onlySet[name] {
			continue
		}
		if skipSet[name] {
			continue
		}
		result = append(result, name)
	}
	return result
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/pkgws/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace packages",
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type packageInfo struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Dir     string   `json:"dir"`
	Targets []string `json:"targets,omitempty"`
	Scripts []string `json:"scripts,omitempty"`
	DevOnly bool     `json:"devOnly,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	g, _, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	infos := make([]packageInfo, 0, len(g.Names))
	for _, name := range g.Names {
		p := g.Projects[name]
		info := packageInfo{
			Name:    p.Name(),
			Version: p.Version(),
			Dir:     p.Dir,
			DevOnly: p.Manifest.Settings.DevOnly,
		}
		for _, t := range p.BuildTargets() {
			info.Targets = append(info.Targets, string(t))
		}
		for script := range p.Manifest.Scripts {
			info.Scripts = append(info.Scripts, script)
		}
		infos = append(infos, info)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, "PACKAGE", "VERSION", "TARGETS", "DEV ONLY")
	for _, info := range infos {
		targets := strings.Join(info.Targets, ",")
		if targets == "" {
			targets = "-"
		}
		tbl.Row(info.Name, info.Version, targets, info.DevOnly)
	}
	return tbl.Flush()
}

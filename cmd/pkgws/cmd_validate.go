package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/pkgws/internal/depcheck"
	"github.com/fbkclanna/pkgws/internal/ui"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check cross-package dependency declarations against the linking policy",
		RunE:  runValidate,
	}
	cmd.Flags().Bool("json", false, "Output mismatches as JSON")
	return cmd
}

type mismatchReport struct {
	Dependent  string `json:"dependent"`
	Dependency string `json:"dependency"`
	Reason     string `json:"reason"`
	Actual     string `json:"actual"`
	Expected   string `json:"expected"`
}

func runValidate(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	g, cfg, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	errs := g.ValidateAll(cmd.Context(), cfg.Jobs)
	out := cmd.OutOrStdout()

	if asJSON {
		reports := make([]mismatchReport, 0, len(errs))
		for _, err := range errs {
			var mismatch *depcheck.MismatchError
			if errors.As(err, &mismatch) {
				reports = append(reports, mismatchReport{
					Dependent:  mismatch.Dependent,
					Dependency: mismatch.Dependency,
					Reason:     mismatch.Reason,
					Actual:     mismatch.Actual,
					Expected:   mismatch.Expected,
				})
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		ui.PrintDiagnostics(out, errs)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d dependency mismatch(es)", len(errs))
	}
	if !asJSON {
		_, _ = fmt.Fprintln(out, "All dependency declarations are valid.")
	}
	return nil
}

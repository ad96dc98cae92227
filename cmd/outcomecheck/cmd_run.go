package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"outcomematch/internal/fixture"
	"outcomematch/internal/style"
	"outcomematch/pkg/expect"
)

func newRunCmd(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Evaluate the cases in fixture files",
		Long: `Loads every fixture file, evaluates each case with the registered matchers
and prints PASS / FAIL per case. Exits with status 1 when any case fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := fixture.Run(cmd.Context(), expect.Default, args)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report, a.palette, quiet)
			a.logger.Debug("run finished", zap.Int("cases", len(report.Outcomes)), zap.Int("failed", report.Failed()))
			if report.Failed() > 0 {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print failing cases and the summary")
	return cmd
}

func printReport(w io.Writer, report fixture.Report, p style.Palette, quiet bool) {
	for _, o := range report.Outcomes {
		switch {
		case o.Err != nil:
			detail := o.Message
			if detail == "" {
				detail = o.Err.Error()
			}
			fmt.Fprintf(w, "%s %s\n%s\n", p.Fail("ERROR"), o.Case.Label(), indent(detail))
		case !o.Passed:
			fmt.Fprintf(w, "%s  %s\n%s\n", p.Fail("FAIL"), o.Case.Label(), indent(o.Message))
		case !quiet:
			fmt.Fprintf(w, "%s  %s\n", p.Pass("PASS"), o.Case.Label())
		}
	}
	failed := report.Failed()
	summary := fmt.Sprintf("%d passed, %d failed", len(report.Outcomes)-failed, failed)
	if failed > 0 {
		summary = p.Fail(summary)
	} else {
		summary = p.Pass(summary)
	}
	fmt.Fprintf(w, "\n%s\n", summary)
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}

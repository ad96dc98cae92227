package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"outcomematch/internal/compare"
	"outcomematch/internal/diff"
	"outcomematch/internal/printer"
	"outcomematch/pkg/value"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		modeName string
		inline   bool
	)
	cmd := &cobra.Command{
		Use:   "diff EXPECTED RECEIVED",
		Short: "Compare two documents and print the difference",
		Long: `Parses two YAML or JSON documents and explains how RECEIVED differs from
EXPECTED under the chosen comparison mode. Arguments are file paths, or the
documents themselves with --inline. Exits with status 1 when they differ.`,
		Example: `  outcomecheck diff --inline --mode subset '{a: 1}' '{a: 1, b: 2}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := compare.ParseMode(modeName)
			if err != nil {
				return err
			}
			expected, err := readDocument(args[0], inline)
			if err != nil {
				return err
			}
			received, err := readDocument(args[1], inline)
			if err != nil {
				return err
			}

			p := printer.New(printer.Options{Indent: a.cfg.Output.Indent, MaxDepth: a.cfg.Output.MaxDepth})
			res := diff.New(p).Diff(mode, expected, received)
			a.logger.Debug("diff computed", zap.String("mode", mode.String()), zap.String("kind", res.Kind.String()))

			out := cmd.OutOrStdout()
			if res.Kind == diff.NoDifference {
				fmt.Fprintln(out, a.palette.Pass("No difference found."))
				return nil
			}
			fmt.Fprintln(out, diff.Format(res, diff.DefaultLabels(), a.palette))
			return errFailed
		},
	}
	cmd.Flags().StringVar(&modeName, "mode", compare.Loose.String(), "Comparison mode: loose, strict or subset")
	cmd.Flags().BoolVar(&inline, "inline", false, "Treat arguments as documents instead of file paths")
	return cmd
}

func readDocument(arg string, inline bool) (any, error) {
	data := []byte(arg)
	if !inline {
		var err error
		data, err = os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
	}
	return value.Parse(data)
}

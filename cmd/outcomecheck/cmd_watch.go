package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"outcomematch/internal/fixture"
	"outcomematch/internal/watch"
	"outcomematch/pkg/expect"
)

func newWatchCmd(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-run fixture files whenever they change",
		Long: `Runs the fixture files once, then again after every save, until
interrupted. Load errors are printed and watching continues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			rerun := func(ctx context.Context, changed []string) {
				if len(changed) > 0 {
					fmt.Fprintf(out, "\n%s\n", a.palette.Hint(fmt.Sprintf("changed: %v", changed)))
				}
				report, err := fixture.Run(ctx, expect.Default, args)
				if err != nil {
					if ctx.Err() == nil {
						fmt.Fprintln(out, a.palette.Fail("Error: "+err.Error()))
					}
					return
				}
				printReport(out, report, a.palette, quiet)
			}

			w, err := watch.New(args, watch.DefaultDebounce, rerun)
			if err != nil {
				return fmt.Errorf("failed to watch fixtures: %w", err)
			}
			defer w.Stop()

			rerun(ctx, nil)
			w.Start(ctx)
			a.logger.Debug("watching fixtures", zap.Strings("files", args))

			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print failing cases and the summary")
	return cmd
}

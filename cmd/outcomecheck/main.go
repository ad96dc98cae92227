// Command outcomecheck evaluates outcome assertions stored in YAML fixture
// files and prints value diffs from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"outcomematch/internal/config"
	"outcomematch/internal/logging"
	"outcomematch/internal/style"
	"outcomematch/pkg/matchers"
)

// errFailed signals a run with failing cases; main exits 1 without printing it.
var errFailed = errors.New("assertions failed")

// app carries the state shared by subcommands.
type app struct {
	configPath string
	verbose    bool
	color      bool

	cfg     *config.Config
	palette style.Palette
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "outcomecheck",
		Short: "Evaluate Either / These / Option assertions from fixture files",
		Long: `outcomecheck runs the outcome matchers outside of go test.

Fixture files list cases, each naming a matcher, a received value and the
matcher arguments. Values are YAML (or JSON) with the tags !undefined, !hole,
!error <message>, !regexp <pattern> and !<ClassName> on mappings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logging.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv(config.EnvConfigPath), "Config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&a.color, "color", false, "Colour expected and received values")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newDiffCmd(a))
	root.AddCommand(newWatchCmd(a))
	return root
}

// setup loads configuration, then wires logging and rendering from it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("color") {
		cfg.Output.Color = a.color
	}
	if a.verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	a.cfg = cfg

	if err := logging.Initialize(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		DebugMode:  cfg.Logging.DebugMode,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logging.CLI()
	logging.Config().Debug("config loaded",
		zap.String("path", a.configPath),
		zap.Bool("color", cfg.Output.Color),
		zap.Int("indent", cfg.Output.Indent),
		zap.Int("max_depth", cfg.Output.MaxDepth))

	a.palette = style.New(cfg.Output.Color)
	matchers.Configure(cfg.Output)
	return nil
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

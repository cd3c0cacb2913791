// tapeplan is the command line front end of TapePlanner.
//
//	tapeplan calc 661 661 600
//	tapeplan calc --file tapes.csv --pdf plan.pdf
//	tapeplan diagnose 100 661
//	tapeplan catalog B
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/TapePlanner/internal/project"
)

var (
	verbose    bool
	noColor    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tapeplan",
	Short: "Split raw tapes into standard class A and class B pieces",
	Long: `tapeplan splits raw tape lengths into standard pieces.

Class A pieces are 300.0 m to 360.0 m and class B pieces are 361.0 m to
600.0 m, both in 0.1 m steps. A plan is accepted when the class A to
class B piece count reduces to 2:1, 5:2 or 3:2.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var calcCmd = &cobra.Command{
	Use:   "calc [lengths...]",
	Short: "Find an accepted cutting plan for the given tapes",
	Long: `Searches for a plan that cuts every tape into class A and class B
pieces with an accepted piece ratio. Lengths are given in meters as
arguments, read from a CSV or Excel file with --file, or both.
Entries that are not positive numbers are dropped. Put entries that
start with "-" after "--" so they are not read as flags.

Example:
  tapeplan calc 661 661 600
  tapeplan calc --file tapes.xlsx --xlsx plan.xlsx
  tapeplan calc --max-nodes 5000 -- -5 661 661 600`,
	RunE: runCalc,
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [lengths...]",
	Short: "Show how many decompositions each tape allows",
	Long: `Counts, per tape, the one-and-one splits and the whole class A and
class B multiples the search can use. Tapes without any are flagged.
Entries that start with "-" go after "--".

Example:
  tapeplan diagnose 100 661
  tapeplan diagnose -- -5 661`,
	Args: cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

var catalogCmd = &cobra.Command{
	Use:       "catalog [A|B]",
	Short:     "Show the standard piece catalogs",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"A", "B"},
	RunE:      runCatalog,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "Path to the settings file")

	calcCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read tape lengths from a CSV or Excel file")
	calcCmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "Stop after this many search nodes (0 = unbounded)")
	calcCmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the search after this long (0 = no limit)")
	calcCmd.Flags().StringVar(&pdfPath, "pdf", "", "Write a PDF report")
	calcCmd.Flags().StringVar(&labelsPath, "labels", "", "Write a PDF sheet of piece labels")
	calcCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an Excel workbook")
	calcCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	rootCmd.AddCommand(calcCmd, diagnoseCmd, catalogCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tapeplan: %v\n", err)
		os.Exit(1)
	}
}

// commandContext returns the context cobra was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// cliLogger returns the logger built by the root command, or a no-op one
// when a command runs outside of it.
func cliLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

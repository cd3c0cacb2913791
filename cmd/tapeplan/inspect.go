package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/TapePlanner/internal/engine"
	"github.com/piwi3910/TapePlanner/internal/importer"
	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
	"github.com/piwi3910/TapePlanner/internal/render"
)

func runDiagnose(cmd *cobra.Command, args []string) error {
	lengths := importer.ParseLengths(args)
	if len(lengths) == 0 {
		return planner.ErrNoInput
	}
	options := engine.Diagnose(lengths)
	fmt.Fprintln(cmd.OutOrStdout(), render.Diagnostics(options, !noColor))

	if bad := engine.Undecomposable(options); len(bad) > 0 {
		cliLogger().Debug("tapes without decomposition", zap.Ints("tapes", bad))
	}
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	classes := []model.SizeClass{model.ClassA, model.ClassB}
	if len(args) == 1 {
		switch strings.ToUpper(args[0]) {
		case "A":
			classes = classes[:1]
		case "B":
			classes = classes[1:]
		default:
			return fmt.Errorf("unknown class %q, want A or B", args[0])
		}
	}
	for _, c := range classes {
		fmt.Fprintln(cmd.OutOrStdout(), render.Catalog(c, engine.Catalog(c), !noColor))
	}
	return nil
}

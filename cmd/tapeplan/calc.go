package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/TapePlanner/internal/engine"
	"github.com/piwi3910/TapePlanner/internal/export"
	"github.com/piwi3910/TapePlanner/internal/importer"
	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
	"github.com/piwi3910/TapePlanner/internal/project"
	"github.com/piwi3910/TapePlanner/internal/render"
)

var (
	inputFile  string
	maxNodes   int
	timeout    time.Duration
	pdfPath    string
	labelsPath string
	xlsxPath   string
	jsonOutput bool
)

// errNotSolved is returned after the failure message has been printed.
var errNotSolved = errors.New("no accepted plan")

func runCalc(cmd *cobra.Command, args []string) error {
	log := cliLogger()

	raw, err := collectEntries(args)
	if err != nil {
		return err
	}

	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		log.Warn("using default config", zap.String("path", configPath), zap.Error(err))
		cfg = model.DefaultAppConfig()
	}

	opts := []planner.Option{planner.WithConfig(cfg), planner.WithLogger(log)}
	if cmd.Flags().Changed("max-nodes") {
		opts = append(opts, planner.WithSearchOptions(engine.Options{MaxNodes: maxNodes}))
	}
	if cmd.Flags().Changed("timeout") {
		opts = append(opts, planner.WithTimeout(timeout))
	}

	report := planner.New(opts...).Run(commandContext(cmd), raw)

	out := cmd.OutOrStdout()
	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintln(out, render.Lines(report.Lines, !noColor))
	}

	if !report.Solved() {
		if errors.Is(report.Err, planner.ErrNoInput) {
			return report.Err
		}
		return fmt.Errorf("%w: %v", errNotSolved, report.Err)
	}
	return writeExports(report, out)
}

// collectEntries joins the raw entries from the arguments and the input file.
func collectEntries(args []string) ([]string, error) {
	raw := append([]string(nil), args...)
	if inputFile == "" {
		return raw, nil
	}

	result := importer.ImportFile(inputFile)
	log := cliLogger()
	for _, w := range result.Warnings {
		log.Warn("import warning", zap.String("file", inputFile), zap.String("warning", w))
	}
	if len(result.Tapes) == 0 && len(result.Errors) > 0 {
		return nil, fmt.Errorf("import %s: %s", inputFile, strings.Join(result.Errors, "; "))
	}
	for _, e := range result.Errors {
		log.Warn("skipped row", zap.String("file", inputFile), zap.String("error", e))
	}
	return append(raw, result.RawEntries()...), nil
}

type exportTarget struct {
	path  string
	what  string
	write func(string, planner.Report) error
}

func writeExports(report planner.Report, out io.Writer) error {
	targets := []exportTarget{
		{pdfPath, "PDF report", export.ExportPDF},
		{labelsPath, "labels", func(path string, r planner.Report) error {
			return export.ExportLabels(path, r.Allocation)
		}},
		{xlsxPath, "Excel workbook", export.ExportExcel},
	}
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		if err := t.write(t.path, report); err != nil {
			return fmt.Errorf("failed to write %s: %w", t.what, err)
		}
		if !jsonOutput {
			fmt.Fprintf(out, "Wrote %s to %s\n", t.what, t.path)
		}
	}
	return nil
}

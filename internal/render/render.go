// Package render turns presenter lines and diagnostics into terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/TapePlanner/internal/engine"
	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
)

// Colors shared with the desktop view.
var (
	ClassAColor = lipgloss.Color("#4CAF50") // green
	ClassBColor = lipgloss.Color("#F44336") // red
	InfoColor   = lipgloss.Color("#2196F3") // blue
	ErrorColor  = lipgloss.Color("#E53935")
	MutedColor  = lipgloss.Color("#8A8A8A")
)

// Styles maps each fragment kind to its terminal style.
var Styles = map[model.FragmentKind]lipgloss.Style{
	model.InputSummary:  lipgloss.NewStyle().Foreground(InfoColor),
	model.ClassASegment: lipgloss.NewStyle().Foreground(ClassAColor).Bold(true),
	model.ClassBSegment: lipgloss.NewStyle().Foreground(ClassBColor).Bold(true),
	model.PlainNote:     lipgloss.NewStyle().Foreground(MutedColor),
	model.RatioSummary:  lipgloss.NewStyle().Bold(true),
	model.ErrorMessage:  lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// Lines renders presenter lines one per row. With color off the output
// equals model.PlainText.
func Lines(lines []model.Line, color bool) string {
	if !color {
		return model.PlainText(lines)
	}
	rows := make([]string, len(lines))
	for i, line := range lines {
		parts := make([]string, len(line))
		for j, frag := range line {
			parts[j] = styleFor(frag.Kind).Render(frag.Text)
		}
		rows[i] = strings.Join(parts, " ")
	}
	return strings.Join(rows, "\n")
}

func styleFor(kind model.FragmentKind) lipgloss.Style {
	if s, ok := Styles[kind]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Diagnostics renders one row per tape with its split and whole-multiple
// option counts. Tapes without any option are flagged.
func Diagnostics(options []engine.TapeOptions, color bool) string {
	var sb strings.Builder
	header := fmt.Sprintf("%-6s %12s %8s %8s %8s", "Tape", "Length (m)", "Splits", "A mult", "B mult")
	if color {
		header = headerStyle.Render(header)
	}
	sb.WriteString(header)

	for i, o := range options {
		row := fmt.Sprintf("%-6d %12s %8d %8d %8d",
			i+1, planner.FormatMeters(o.Length), o.SplitCandidates, o.ClassAMultiples, o.ClassBMultiples)
		if !o.Decomposable() {
			row += "  no decomposition"
			if color {
				row = Styles[model.ErrorMessage].Render(row)
			}
		}
		sb.WriteByte('\n')
		sb.WriteString(row)
	}
	return sb.String()
}

// Catalog renders the range and size of one standard catalog.
func Catalog(class model.SizeClass, lengths []float64, color bool) string {
	if len(lengths) == 0 {
		return fmt.Sprintf("Class %s: empty", class)
	}
	line := fmt.Sprintf("Class %s: %.1f m to %.1f m in 0.1 m steps (%d lengths)",
		class, lengths[0], lengths[len(lengths)-1], len(lengths))
	if !color {
		return line
	}
	kind := model.ClassASegment
	if class == model.ClassB {
		kind = model.ClassBSegment
	}
	return styleFor(kind).Render(line)
}

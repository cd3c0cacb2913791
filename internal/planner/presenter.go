package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/TapePlanner/internal/engine"
	"github.com/piwi3910/TapePlanner/internal/model"
)

// User-facing messages.
const (
	MsgNoInput    = "Please enter at least one valid tape length."
	MsgNoSolution = "No valid combinations found. Please add more tapes."
	MsgLimit      = "Search stopped at the node limit before a valid combination was found."
	MsgTimeout    = "Search timed out before a valid combination was found."
	MsgCancelled  = "Calculation cancelled."
)

// Present turns a search outcome into display lines. With no lengths it
// returns a single error line. Otherwise the first line summarizes the
// input, followed by one line per tape and the ratio on success, or a
// single line explaining why there is no plan.
func Present(lengths []float64, alloc model.Allocation, err error) []model.Line {
	if len(lengths) == 0 {
		return []model.Line{errorLine(MsgNoInput)}
	}

	lines := []model.Line{inputSummary(lengths)}

	if err != nil {
		return append(lines, errorLine(failureMessage(err)))
	}

	for _, g := range alloc.Groups {
		lines = append(lines, groupLine(g))
	}
	lines = append(lines, model.Line{{Kind: model.RatioSummary, Text: "Ratio " + alloc.Ratio.String()}})
	return lines
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrSearchLimit):
		return MsgLimit
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.Is(err, context.Canceled):
		return MsgCancelled
	default:
		return MsgNoSolution
	}
}

func errorLine(msg string) model.Line {
	return model.Line{{Kind: model.ErrorMessage, Text: msg}}
}

func inputSummary(lengths []float64) model.Line {
	parts := make([]string, len(lengths))
	var sum float64
	for i, l := range lengths {
		parts[i] = FormatMeters(l) + " m"
		sum += l
	}
	text := fmt.Sprintf("Input is %s, sum %s m", strings.Join(parts, ", "), FormatMeters(sum))
	return model.Line{{Kind: model.InputSummary, Text: text}}
}

func groupLine(g model.SegmentGroup) model.Line {
	line := make(model.Line, 0, len(g.Segments)+1)
	for _, s := range g.Segments {
		kind := model.ClassASegment
		if s.Class == model.ClassB {
			kind = model.ClassBSegment
		}
		line = append(line, model.Fragment{Kind: kind, Text: FormatSegment(s)})
	}
	return append(line, model.Fragment{
		Kind: model.PlainNote,
		Text: fmt.Sprintf("from %s m tape", FormatMeters(g.TapeLength)),
	})
}

// FormatSegment renders a segment as "2x 300.0 m".
func FormatSegment(s model.Segment) string {
	return fmt.Sprintf("%dx %.1f m", s.Count, s.Length)
}

// FormatMeters renders a length with at most three decimals and no
// trailing zeros, e.g. 600, 661.5.
func FormatMeters(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

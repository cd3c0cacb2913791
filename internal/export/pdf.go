// Package export writes calculation results to PDF, label sheet and
// spreadsheet files.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
)

// rgb is a fill or text color.
type rgb struct {
	R, G, B int
}

// Colors mirror the desktop result view.
var (
	classAColor = rgb{R: 76, G: 175, B: 80}  // green
	classBColor = rgb{R: 244, G: 67, B: 54}  // red
	errorColor  = rgb{R: 200, G: 0, B: 0}    // dark red
	inputColor  = rgb{R: 33, G: 150, B: 243} // blue
	ratioColor  = rgb{R: 0, G: 0, B: 0}
	noteColor   = rgb{R: 90, G: 90, B: 90}
	tapeColor   = rgb{R: 230, G: 230, B: 230}
)

// kindColor returns the text color for a fragment kind.
func kindColor(kind model.FragmentKind) rgb {
	switch kind {
	case model.ClassASegment:
		return classAColor
	case model.ClassBSegment:
		return classBColor
	case model.ErrorMessage:
		return errorColor
	case model.InputSummary:
		return inputColor
	case model.RatioSummary:
		return ratioColor
	default:
		return noteColor
	}
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	lineHeight   = 6.0
	barHeight    = 9.0
	barGap       = 5.0
)

// ExportPDF writes the report to a PDF: the result text coloured by
// fragment kind, a bar diagram per tape and a summary table.
func ExportPDF(path string, report planner.Report) error {
	if !report.Solved() {
		return fmt.Errorf("no allocation to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	y := renderResultText(pdf, report.Lines)
	renderTapeBars(pdf, report.Allocation, y+4)

	pdf.AddPage()
	renderSummaryPage(pdf, report)

	return pdf.OutputFileAndClose(path)
}

// renderResultText writes the presenter lines and returns the y position below them.
func renderResultText(pdf *fpdf.Fpdf, lines []model.Line) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Tape Cutting Plan", "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 2
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		if y+lineHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetXY(marginLeft, y)
		for i, frag := range line {
			c := kindColor(frag.Kind)
			pdf.SetTextColor(c.R, c.G, c.B)
			text := frag.Text
			if i < len(line)-1 {
				text += " "
			}
			pdf.Write(lineHeight, text)
		}
		y += lineHeight
	}
	pdf.SetTextColor(0, 0, 0)
	return y
}

// renderTapeBars draws one horizontal bar per tape, scaled to the longest tape,
// with its pieces filled in their class color.
func renderTapeBars(pdf *fpdf.Fpdf, alloc model.Allocation, startY float64) {
	var longest float64
	for _, g := range alloc.Groups {
		longest = math.Max(longest, g.TapeLength)
	}
	if longest <= 0 {
		return
	}

	labelW := 30.0
	drawWidth := pageWidth - marginLeft - marginRight - labelW
	scale := drawWidth / longest
	y := startY

	for i, g := range alloc.Groups {
		if y+barHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, y+barHeight/2-2)
		pdf.CellFormat(labelW, 4, fmt.Sprintf("Tape %d (%s m)", i+1, planner.FormatMeters(g.TapeLength)), "", 0, "L", false, 0, "")

		x0 := marginLeft + labelW
		pdf.SetFillColor(tapeColor.R, tapeColor.G, tapeColor.B)
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x0, y, g.TapeLength*scale, barHeight, "FD")

		for _, p := range g.Blocks(model.DrawPieceLimit) {
			c := classAColor
			if p.Class == model.ClassB {
				c = classBColor
			}
			px := x0 + p.Offset*scale
			pw := p.Span() * scale
			pdf.SetFillColor(c.R, c.G, c.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.Rect(px, y, pw, barHeight, "FD")

			text := fmt.Sprintf("%s %.1f", p.Class, p.Length)
			if p.Count > 1 {
				text = fmt.Sprintf("%s %dx %.1f", p.Class, p.Count, p.Length)
			}
			tw := pdf.GetStringWidth(text)
			if tw < pw-2 {
				pdf.SetTextColor(255, 255, 255)
				pdf.SetXY(px+(pw-tw)/2, y+barHeight/2-2)
				pdf.CellFormat(tw, 4, text, "", 0, "C", false, 0, "")
			}
		}
		y += barHeight + barGap
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the totals and a per-tape breakdown table.
func renderSummaryPage(pdf *fpdf.Fpdf, report planner.Report) {
	alloc := report.Allocation

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Tapes", fmt.Sprintf("%d", len(alloc.Groups))},
		{"Total length", planner.FormatMeters(alloc.TotalLength()) + " m"},
		{"Class A pieces", fmt.Sprintf("%d", alloc.CountA)},
		{"Class B pieces", fmt.Sprintf("%d", alloc.CountB)},
		{"Ratio", alloc.Ratio.String()},
		{"Search nodes", fmt.Sprintf("%d", report.Stats.Nodes)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Tape Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 40, 80, 80, 40}
	headers := []string{"Tape", "Length", "Class A", "Class B", "Pieces"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, g := range alloc.Groups {
		if y+6 > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			planner.FormatMeters(g.TapeLength) + " m",
			classCell(g, model.ClassA),
			classCell(g, model.ClassB),
			fmt.Sprintf("%d", g.Count(model.ClassA)+g.Count(model.ClassB)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by TapePlanner", "", 0, "C", false, 0, "")
}

// classCell lists the segments of one class in a group, or "-" when there are none.
func classCell(g model.SegmentGroup, class model.SizeClass) string {
	text := ""
	for _, s := range g.Segments {
		if s.Class != class {
			continue
		}
		if text != "" {
			text += ", "
		}
		text += planner.FormatSegment(s)
	}
	if text == "" {
		return "-"
	}
	return text
}

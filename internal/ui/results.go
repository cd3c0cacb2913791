package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TapePlanner/internal/model"
)

// fragmentStyle maps a fragment kind to rich text styling. Class A uses
// the success color and class B the error color, which PlannerTheme sets
// to the piece colors.
func fragmentStyle(kind model.FragmentKind) widget.RichTextStyle {
	style := widget.RichTextStyleInline
	switch kind {
	case model.ClassASegment:
		style.ColorName = theme.ColorNameSuccess
	case model.ClassBSegment:
		style.ColorName = theme.ColorNameError
	case model.InputSummary:
		style.ColorName = theme.ColorNamePrimary
	case model.RatioSummary:
		style.TextStyle = fyne.TextStyle{Bold: true}
	case model.ErrorMessage:
		style.ColorName = theme.ColorNameWarning
		style.TextStyle = fyne.TextStyle{Bold: true}
	}
	return style
}

// richSegments converts presenter lines into rich text segments. The last
// fragment of each line is a block segment so the next line starts fresh.
func richSegments(lines []model.Line) []widget.RichTextSegment {
	var segs []widget.RichTextSegment
	for _, line := range lines {
		for i, frag := range line {
			style := fragmentStyle(frag.Kind)
			text := frag.Text
			if i < len(line)-1 {
				text += " "
			} else {
				style.Inline = false
			}
			segs = append(segs, &widget.TextSegment{Style: style, Text: text})
		}
	}
	return segs
}

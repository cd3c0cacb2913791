package widgets

import (
	"fmt"
	"image/color"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
)

// Piece colors match the result text: class A green, class B red.
var (
	ClassAColor = color.NRGBA{R: 76, G: 175, B: 80, A: 220}
	ClassBColor = color.NRGBA{R: 244, G: 67, B: 54, A: 220}
	tapeColor   = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
)

// PieceColor returns the fill color for a size class.
func PieceColor(class model.SizeClass) color.NRGBA {
	if class == model.ClassB {
		return ClassBColor
	}
	return ClassAColor
}

// TapeBar draws one tape as a horizontal bar split into its cut pieces.
// Bars share a scale so tapes of different lengths compare visually.
type TapeBar struct {
	widget.BaseWidget
	group    model.SegmentGroup
	longest  float64
	maxWidth float32
	height   float32
}

// NewTapeBar creates a bar for group, scaled so that a tape of length
// longest spans maxWidth.
func NewTapeBar(group model.SegmentGroup, longest float64, maxWidth, height float32) *TapeBar {
	tb := &TapeBar{
		group:    group,
		longest:  longest,
		maxWidth: maxWidth,
		height:   height,
	}
	tb.ExtendBaseWidget(tb)
	return tb
}

func (tb *TapeBar) CreateRenderer() fyne.WidgetRenderer {
	return newTapeBarRenderer(tb)
}

func (tb *TapeBar) scale() float32 {
	if tb.longest <= 0 {
		return 0
	}
	return tb.maxWidth / float32(tb.longest)
}

type tapeBarRenderer struct {
	tb      *TapeBar
	objects []fyne.CanvasObject
}

func newTapeBarRenderer(tb *TapeBar) *tapeBarRenderer {
	r := &tapeBarRenderer{tb: tb}
	r.rebuild()
	return r
}

func (r *tapeBarRenderer) rebuild() {
	r.objects = nil

	scale := r.tb.scale()
	h := r.tb.height
	barW := float32(r.tb.group.TapeLength) * scale

	bg := canvas.NewRectangle(tapeColor)
	bg.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(barW, h))
	r.objects = append(r.objects, bg)

	for _, p := range r.tb.group.Blocks(model.DrawPieceLimit) {
		px := float32(p.Offset) * scale
		pw := float32(p.Span()) * scale

		rect := canvas.NewRectangle(PieceColor(p.Class))
		rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(pw, h))
		rect.Move(fyne.NewPos(px, 0))
		r.objects = append(r.objects, rect)

		if pw > 50 && h > 14 {
			label := canvas.NewText(pieceText(p), color.White)
			label.TextSize = 10
			label.TextStyle = fyne.TextStyle{Bold: true}
			label.Move(fyne.NewPos(px+4, (h-14)/2))
			r.objects = append(r.objects, label)
		}
	}
}

// pieceText labels a piece, or a block with its count.
func pieceText(p model.Piece) string {
	if p.Count > 1 {
		return fmt.Sprintf("%s %dx %.1f", p.Class, p.Count, p.Length)
	}
	return fmt.Sprintf("%s %.1f", p.Class, p.Length)
}

func (r *tapeBarRenderer) Layout(size fyne.Size)        {}
func (r *tapeBarRenderer) Refresh()                     { r.rebuild() }
func (r *tapeBarRenderer) Destroy()                     {}
func (r *tapeBarRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *tapeBarRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.tb.group.TapeLength)*r.tb.scale(), r.tb.height)
}

// RenderAllocation creates a scrollable container with one bar per tape
// followed by a per-length breakdown.
func RenderAllocation(alloc *model.Allocation) fyne.CanvasObject {
	if alloc == nil || len(alloc.Groups) == 0 {
		return widget.NewLabel("No cutting plan yet. Enter tape lengths, then click Calculate.")
	}

	var longest float64
	for _, g := range alloc.Groups {
		if g.TapeLength > longest {
			longest = g.TapeLength
		}
	}

	var items []fyne.CanvasObject
	for i, g := range alloc.Groups {
		header := widget.NewLabel(fmt.Sprintf("Tape %d: %s m, %d x A, %d x B",
			i+1, planner.FormatMeters(g.TapeLength), g.Count(model.ClassA), g.Count(model.ClassB)))
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, header, NewTapeBar(g, longest, 600, 28))
	}

	breakdown := PieceBreakdown(*alloc)
	if len(breakdown) > 0 {
		items = append(items, widget.NewSeparator())
		title := widget.NewLabel("Pieces by length:")
		title.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, title)
		for _, line := range breakdown {
			items = append(items, widget.NewLabel(line))
		}
	}

	summary := widget.NewLabel(fmt.Sprintf("Total: %d tapes, %d x A, %d x B, ratio %s",
		len(alloc.Groups), alloc.CountA, alloc.CountB, alloc.Ratio))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// PieceBreakdown counts pieces per class and length, class A first and
// lengths ascending.
func PieceBreakdown(alloc model.Allocation) []string {
	type key struct {
		class  model.SizeClass
		tenths int64
	}
	counts := make(map[key]int)
	for _, g := range alloc.Groups {
		for _, s := range g.Segments {
			k := key{class: s.Class, tenths: int64(s.Length*10 + 0.5)}
			counts[k] += s.Count
		}
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].class != keys[j].class {
			return keys[i].class < keys[j].class
		}
		return keys[i].tenths < keys[j].tenths
	})

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("  %s %.1f m: %d piece(s)", k.class, float64(k.tenths)/10, counts[k])
	}
	return lines
}

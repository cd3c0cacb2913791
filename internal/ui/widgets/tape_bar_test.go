package widgets

import (
	"context"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
)

func testAllocation() model.Allocation {
	return model.Allocation{
		Groups: []model.SegmentGroup{
			{TapeLength: 600, Segments: []model.Segment{{Class: model.ClassA, Length: 300, Count: 2}}},
			{TapeLength: 361, Segments: []model.Segment{{Class: model.ClassB, Length: 361, Count: 1}}},
			{TapeLength: 661, Segments: []model.Segment{
				{Class: model.ClassA, Length: 300, Count: 1},
				{Class: model.ClassB, Length: 361, Count: 1},
			}},
		},
		CountA: 3,
		CountB: 2,
		Ratio:  model.Ratio{A: 3, B: 2},
	}
}

func TestPieceBreakdown(t *testing.T) {
	assert.Equal(t, []string{
		"  A 300.0 m: 3 piece(s)",
		"  B 361.0 m: 2 piece(s)",
	}, PieceBreakdown(testAllocation()))
	assert.Empty(t, PieceBreakdown(model.Allocation{}))
}

func TestPieceColor(t *testing.T) {
	assert.Equal(t, ClassAColor, PieceColor(model.ClassA))
	assert.Equal(t, ClassBColor, PieceColor(model.ClassB))
}

func TestTapeBarScalesToLongest(t *testing.T) {
	test.NewTempApp(t)

	alloc := testAllocation()
	full := test.WidgetRenderer(NewTapeBar(alloc.Groups[2], 661, 661, 20))
	half := test.WidgetRenderer(NewTapeBar(alloc.Groups[1], 661, 661, 20))

	assert.InDelta(t, 661, full.MinSize().Width, 0.01)
	assert.InDelta(t, 361, half.MinSize().Width, 0.01)
	assert.Equal(t, float32(20), full.MinSize().Height)
	// background plus two pieces, each with a label
	assert.Len(t, full.Objects(), 5)
}

func TestRenderAllocationEmpty(t *testing.T) {
	test.NewTempApp(t)
	assert.NotNil(t, RenderAllocation(nil))
	assert.NotNil(t, RenderAllocation(&model.Allocation{}))
}

func TestTapeBarDrawsLargeSegmentsAsBlocks(t *testing.T) {
	test.NewTempApp(t)

	report := planner.New().Run(context.Background(), []string{"3000000000", "3000000000"})
	require.True(t, report.Solved())
	require.Greater(t, report.Allocation.PieceCount(), 1000000)

	for _, g := range report.Allocation.Groups {
		r := test.WidgetRenderer(NewTapeBar(g, 3e9, 600, 28))
		// background plus a block and its label per segment
		assert.LessOrEqual(t, len(r.Objects()), 1+2*len(g.Segments))
	}
	assert.NotNil(t, RenderAllocation(&report.Allocation))
}

func TestPieceText(t *testing.T) {
	assert.Equal(t, "A 300.0", pieceText(model.Piece{Class: model.ClassA, Length: 300, Count: 1}))
	assert.Equal(t, "B 5000000x 600.0", pieceText(model.Piece{Class: model.ClassB, Length: 600, Count: 5000000}))
}

func TestRenderAllocationHeaderUsesPresenterLength(t *testing.T) {
	test.NewTempApp(t)

	alloc := model.Allocation{
		Groups: []model.SegmentGroup{{
			TapeLength: 661.55,
			Segments: []model.Segment{
				{Class: model.ClassA, Length: 300.55, Count: 1},
				{Class: model.ClassB, Length: 361, Count: 1},
			},
		}},
		CountA: 1,
		CountB: 1,
		Ratio:  model.Ratio{A: 1, B: 1},
	}
	scroll, ok := RenderAllocation(&alloc).(*container.Scroll)
	require.True(t, ok)
	box, ok := scroll.Content.(*fyne.Container)
	require.True(t, ok)
	header, ok := box.Objects[0].(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "Tape 1: 661.55 m, 1 x A, 1 x B", header.Text)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeClassString(t *testing.T) {
	assert.Equal(t, "A", ClassA.String())
	assert.Equal(t, "B", ClassB.String())
	assert.Equal(t, "SizeClass(7)", SizeClass(7).String())
}

func TestSegmentGroupTotalAndCovers(t *testing.T) {
	g := SegmentGroup{
		TapeLength: 661.5,
		Segments: []Segment{
			{Class: ClassA, Length: 300.5, Count: 1},
			{Class: ClassB, Length: 361.0, Count: 1},
		},
	}
	assert.InDelta(t, 661.5, g.Total(), 1e-9)
	assert.True(t, g.Covers())
	assert.Equal(t, 1, g.Count(ClassA))
	assert.Equal(t, 1, g.Count(ClassB))

	g.TapeLength = 661.6
	assert.False(t, g.Covers(), "0.1 m short must not be covered")
}

func TestSegmentGroupMultiple(t *testing.T) {
	g := SegmentGroup{
		TapeLength: 600,
		Segments:   []Segment{{Class: ClassA, Length: 300, Count: 2}},
	}
	assert.True(t, g.Covers())
	assert.Equal(t, 2, g.Count(ClassA))
	assert.Equal(t, 0, g.Count(ClassB))
}

func TestRatioString(t *testing.T) {
	assert.Equal(t, "2:1", Ratio{A: 2, B: 1}.String())
	assert.Equal(t, "0:1", Ratio{A: 0, B: 1}.String())
	assert.Equal(t, "undefined", Ratio{}.String())
	assert.True(t, Ratio{}.IsUndefined())
	assert.False(t, Ratio{A: 1}.IsUndefined())
}

func TestAllocationTotalLength(t *testing.T) {
	a := Allocation{Groups: []SegmentGroup{{TapeLength: 600}, {TapeLength: 361}}}
	assert.InDelta(t, 961.0, a.TotalLength(), 1e-9)
}

func TestNewTape(t *testing.T) {
	tape := NewTape("600")
	assert.Len(t, tape.ID, 8)
	assert.Equal(t, "600", tape.Raw)

	other := NewTape("600")
	assert.NotEqual(t, tape.ID, other.ID, "IDs should be unique")
}

func TestTapeListRawEntries(t *testing.T) {
	l := NewTapeList()
	assert.Equal(t, "Untitled", l.Name)
	assert.NotNil(t, l.Tapes)

	l.Tapes = append(l.Tapes, NewTape("600"), NewTape(""), NewTape("361"))
	assert.Equal(t, []string{"600", "", "361"}, l.RawEntries())
}

func TestCopyTapesIsIndependent(t *testing.T) {
	assert.Nil(t, CopyTapes(nil))

	orig := []Tape{{ID: "a", Raw: "600"}}
	cp := CopyTapes(orig)
	cp[0].Raw = "700"
	assert.Equal(t, "600", orig[0].Raw)
}

func TestLineText(t *testing.T) {
	l := Line{
		{Kind: ClassASegment, Text: "2x 300.0 m"},
		{Kind: PlainNote, Text: "from 600 m tape"},
	}
	assert.Equal(t, "2x 300.0 m from 600 m tape", l.Text())
	assert.True(t, l.HasKind(ClassASegment))
	assert.False(t, l.HasKind(ClassBSegment))

	text := PlainText([]Line{
		{{Kind: InputSummary, Text: "Input is 600 m, sum 600 m"}},
		l,
	})
	assert.Equal(t, "Input is 600 m, sum 600 m\n2x 300.0 m from 600 m tape", text)
}

func TestFragmentKindString(t *testing.T) {
	assert.Equal(t, "RatioSummary", RatioSummary.String())
	assert.Equal(t, "ErrorMessage", ErrorMessage.String())
	assert.Equal(t, "Unknown", FragmentKind(42).String())
}

func TestSegmentGroupPieces(t *testing.T) {
	g := SegmentGroup{
		TapeLength: 961,
		Segments: []Segment{
			{Class: ClassA, Length: 300, Count: 2},
			{Class: ClassB, Length: 361, Count: 1},
		},
	}
	assert.Equal(t, []Piece{
		{Class: ClassA, Offset: 0, Length: 300, Count: 1},
		{Class: ClassA, Offset: 300, Length: 300, Count: 1},
		{Class: ClassB, Offset: 600, Length: 361, Count: 1},
	}, g.Pieces())
	assert.Empty(t, SegmentGroup{}.Pieces())
}

func TestSegmentGroupBlocks(t *testing.T) {
	g := SegmentGroup{
		TapeLength: 3000000361,
		Segments: []Segment{
			{Class: ClassA, Length: 300, Count: 10000000},
			{Class: ClassB, Length: 361, Count: 1},
		},
	}
	blocks := g.Blocks(DrawPieceLimit)
	assert.Equal(t, []Piece{
		{Class: ClassA, Offset: 0, Length: 300, Count: 10000000},
		{Class: ClassB, Offset: 3000000000, Length: 361, Count: 1},
	}, blocks)
	assert.InDelta(t, 3e9, blocks[0].Span(), 1e-6)

	small := SegmentGroup{TapeLength: 600, Segments: []Segment{{Class: ClassA, Length: 300, Count: 2}}}
	assert.Equal(t, small.Pieces(), small.Blocks(DrawPieceLimit))
}

func TestAllocationPieceCount(t *testing.T) {
	a := Allocation{Groups: []SegmentGroup{
		{Segments: []Segment{{Class: ClassA, Length: 300, Count: 2}}},
		{Segments: []Segment{{Class: ClassA, Length: 300, Count: 1}, {Class: ClassB, Length: 361, Count: 1}}},
	}}
	assert.Equal(t, 4, a.PieceCount())
	assert.Zero(t, Allocation{}.PieceCount())
}

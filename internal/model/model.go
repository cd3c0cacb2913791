package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Tolerance is the absolute tolerance in meters used for every length
// comparison. It absorbs rounding from the 0.1 m catalog grid.
const Tolerance = 1e-3

// SizeClass identifies one of the two standard catalogs.
type SizeClass int

const (
	ClassA SizeClass = iota // 300.0 m to 360.0 m
	ClassB                  // 361.0 m to 600.0 m
)

func (c SizeClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	default:
		return fmt.Sprintf("SizeClass(%d)", int(c))
	}
}

// Segment is Count pieces of one standard Length cut from a tape.
type Segment struct {
	Class  SizeClass `json:"class"`
	Length float64   `json:"length"` // m
	Count  int       `json:"count"`
}

// Total returns the length covered by the segment.
func (s Segment) Total() float64 {
	return s.Length * float64(s.Count)
}

// SegmentGroup holds the segments committed for a single tape.
type SegmentGroup struct {
	TapeLength float64   `json:"tape_length"` // m
	Segments   []Segment `json:"segments"`
}

// Total returns the summed length of all segments in the group.
func (g SegmentGroup) Total() float64 {
	var total float64
	for _, s := range g.Segments {
		total += s.Total()
	}
	return total
}

// Covers reports whether the segments account for the tape length within Tolerance.
func (g SegmentGroup) Covers() bool {
	return math.Abs(g.Total()-g.TapeLength) < Tolerance
}

// Count returns how many pieces of the given class the group contains.
func (g SegmentGroup) Count(class SizeClass) int {
	n := 0
	for _, s := range g.Segments {
		if s.Class == class {
			n += s.Count
		}
	}
	return n
}

// DrawPieceLimit is the largest segment drawn piece by piece. Bigger
// segments are drawn as a single block labelled with their count.
const DrawPieceLimit = 20

// Piece is a cut piece positioned along its tape, or a block of Count
// equal pieces.
type Piece struct {
	Class  SizeClass
	Offset float64 // m from the tape start
	Length float64 // m, of one piece
	Count  int
}

// Span returns the tape length covered by the piece or block.
func (p Piece) Span() float64 {
	return p.Length * float64(p.Count)
}

// Pieces expands the group into individual pieces in segment order.
// The result has one entry per piece, so callers bound the piece count first.
func (g SegmentGroup) Pieces() []Piece {
	return g.Blocks(-1)
}

// Blocks is like Pieces, except that a segment with more than limit
// pieces is returned as one block. A negative limit expands everything.
func (g SegmentGroup) Blocks(limit int) []Piece {
	var pieces []Piece
	var offset float64
	for _, s := range g.Segments {
		if limit >= 0 && s.Count > limit {
			pieces = append(pieces, Piece{Class: s.Class, Offset: offset, Length: s.Length, Count: s.Count})
			offset += s.Total()
			continue
		}
		for i := 0; i < s.Count; i++ {
			pieces = append(pieces, Piece{Class: s.Class, Offset: offset, Length: s.Length, Count: 1})
			offset += s.Length
		}
	}
	return pieces
}

// Ratio is a class A to class B piece count pair in lowest terms.
// The zero value is the undefined ratio produced for 0:0.
type Ratio struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// IsUndefined reports whether r is the 0:0 ratio.
func (r Ratio) IsUndefined() bool {
	return r.A == 0 && r.B == 0
}

func (r Ratio) String() string {
	if r.IsUndefined() {
		return "undefined"
	}
	return fmt.Sprintf("%d:%d", r.A, r.B)
}

// Allocation is a complete, accepted assignment of segments to every tape.
// Groups are in input order.
type Allocation struct {
	Groups []SegmentGroup `json:"groups"`
	CountA int            `json:"count_a"`
	CountB int            `json:"count_b"`
	Ratio  Ratio          `json:"ratio"`
}

// PieceCount returns the number of pieces cut across all groups.
func (a Allocation) PieceCount() int {
	n := 0
	for _, g := range a.Groups {
		for _, s := range g.Segments {
			n += s.Count
		}
	}
	return n
}

// TotalLength returns the summed length of all tapes in the allocation.
func (a Allocation) TotalLength() float64 {
	var total float64
	for _, g := range a.Groups {
		total += g.TapeLength
	}
	return total
}

// Tape is one editable input row holding the raw text the user typed.
type Tape struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Raw   string `json:"raw"`
}

func NewTape(raw string) Tape {
	return Tape{
		ID:  uuid.New().String()[:8],
		Raw: raw,
	}
}

// TapeList ties the input rows together for save/load.
type TapeList struct {
	Name  string `json:"name"`
	Tapes []Tape `json:"tapes"`
}

func NewTapeList() TapeList {
	return TapeList{
		Name:  "Untitled",
		Tapes: []Tape{},
	}
}

// RawEntries returns the raw text of every tape in order.
func (l TapeList) RawEntries() []string {
	raw := make([]string, len(l.Tapes))
	for i, t := range l.Tapes {
		raw[i] = t.Raw
	}
	return raw
}

// CopyTapes returns an independent copy of a tapes slice.
func CopyTapes(tapes []Tape) []Tape {
	if tapes == nil {
		return nil
	}
	cp := make([]Tape, len(tapes))
	copy(cp, tapes)
	return cp
}

package engine

import (
	"context"
	"errors"
	"math"

	"github.com/piwi3910/TapePlanner/internal/model"
)

var (
	// ErrNoSolution is returned when every assignment has been tried and
	// none ends on an accepted ratio.
	ErrNoSolution = errors.New("no valid combination found")
	// ErrSearchLimit is returned when Options.MaxNodes is exhausted.
	ErrSearchLimit = errors.New("search node limit reached")
)

// ctxCheckInterval is how many visited nodes pass between context checks.
const ctxCheckInterval = 1024

// Options bounds a search. The zero value searches without limits.
type Options struct {
	MaxNodes int // 0 = unbounded
}

// Stats describes the work done by one search.
type Stats struct {
	Nodes  int `json:"nodes"`  // search nodes visited
	Pruned int `json:"pruned"` // nodes skipped as already known dead ends
}

// Search assigns segments to every tape, in input order, and returns the
// first assignment whose class A to class B count is accepted.
//
// Per tape the strategies are tried in priority order: one class A piece
// plus one class B piece, then a whole multiple of one class A length, then
// a whole multiple of one class B length. Candidates within a strategy are
// tried in ascending length. When a later tape fails, the search backtracks
// into the next candidate of the earlier tape.
func Search(ctx context.Context, lengths []float64, opts Options) (model.Allocation, Stats, error) {
	s := &search{
		ctx:     ctx,
		lengths: lengths,
		opts:    opts,
		groups:  make([]model.SegmentGroup, 0, len(lengths)),
		dead:    make(map[searchState]struct{}),
	}
	if err := ctx.Err(); err != nil {
		return model.Allocation{}, s.stats, err
	}

	if !s.visit(0, 0, 0) {
		if s.err != nil {
			return model.Allocation{}, s.stats, s.err
		}
		return model.Allocation{}, s.stats, ErrNoSolution
	}

	groups := make([]model.SegmentGroup, len(s.groups))
	copy(groups, s.groups)
	return model.Allocation{
		Groups: groups,
		CountA: s.countA,
		CountB: s.countB,
		Ratio:  s.ratio,
	}, s.stats, nil
}

// searchState identifies a sub-search. Whether a sub-search can succeed
// depends only on the next tape and the counts accumulated so far.
type searchState struct {
	index  int
	countA int
	countB int
}

type search struct {
	ctx     context.Context
	lengths []float64
	opts    Options

	groups []model.SegmentGroup
	dead   map[searchState]struct{}
	stats  Stats
	err    error

	// set on success
	countA int
	countB int
	ratio  model.Ratio
}

func (s *search) visit(index, countA, countB int) bool {
	if s.err != nil {
		return false
	}
	s.stats.Nodes++
	if s.opts.MaxNodes > 0 && s.stats.Nodes > s.opts.MaxNodes {
		s.err = ErrSearchLimit
		return false
	}
	if s.stats.Nodes%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}

	if index == len(s.lengths) {
		r := SimplifyRatio(float64(countA), float64(countB))
		if !IsAccepted(r) {
			return false
		}
		s.countA, s.countB, s.ratio = countA, countB, r
		return true
	}

	key := searchState{index: index, countA: countA, countB: countB}
	if _, ok := s.dead[key]; ok {
		s.stats.Pruned++
		return false
	}

	length := s.lengths[index]

	// One class A piece plus one class B piece
	for _, s1 := range classA {
		for _, s2 := range splitMatches(length, s1) {
			g := model.SegmentGroup{
				TapeLength: length,
				Segments: []model.Segment{
					{Class: model.ClassA, Length: s1, Count: 1},
					{Class: model.ClassB, Length: s2, Count: 1},
				},
			}
			if s.commit(g, index, countA+1, countB+1) {
				return true
			}
			if s.err != nil {
				return false
			}
		}
	}

	// Whole multiples of a single class A length
	for _, s1 := range classA {
		n, ok := wholeMultiple(length, s1)
		if !ok {
			continue
		}
		g := model.SegmentGroup{
			TapeLength: length,
			Segments:   []model.Segment{{Class: model.ClassA, Length: s1, Count: n}},
		}
		if s.commit(g, index, countA+n, countB) {
			return true
		}
		if s.err != nil {
			return false
		}
	}

	// Whole multiples of a single class B length
	for _, s2 := range classB {
		n, ok := wholeMultiple(length, s2)
		if !ok {
			continue
		}
		g := model.SegmentGroup{
			TapeLength: length,
			Segments:   []model.Segment{{Class: model.ClassB, Length: s2, Count: n}},
		}
		if s.commit(g, index, countA, countB+n) {
			return true
		}
		if s.err != nil {
			return false
		}
	}

	if s.err == nil {
		s.dead[key] = struct{}{}
	}
	return false
}

// commit pushes g for tape index and descends. The group is popped again
// if the remaining tapes cannot be completed.
func (s *search) commit(g model.SegmentGroup, index, countA, countB int) bool {
	s.groups = append(s.groups, g)
	if s.visit(index+1, countA, countB) {
		return true
	}
	s.groups = s.groups[:len(s.groups)-1]
	return false
}

// splitMatches returns the class B lengths s2, ascending, for which
// s1 + s2 equals length within tolerance. Only the grid points next to
// length - s1 can match, so those are checked instead of the whole catalog.
func splitMatches(length, s1 float64) []float64 {
	target := length - s1
	first, last := classB[0], classB[len(classB)-1]
	if target < first-0.1 || target > last+0.1 {
		return nil
	}
	k := int(math.Round((target - first) * 10))
	var out []float64
	for j := k - 1; j <= k+1; j++ {
		if j < 0 || j >= len(classB) {
			continue
		}
		if math.Abs(s1+classB[j]-length) < model.Tolerance {
			out = append(out, classB[j])
		}
	}
	return out
}

// wholeMultiple reports whether length divides evenly by size within
// tolerance and returns the piece count.
func wholeMultiple(length, size float64) (int, bool) {
	if math.Abs(math.Mod(length, size)) >= model.Tolerance {
		return 0, false
	}
	n := int(math.Round(length / size))
	if n < 1 {
		return 0, false
	}
	return n, true
}

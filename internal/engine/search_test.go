package engine

import (
	"context"
	"math"
	"testing"

	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceSearch is the plain copy-per-call backtracking search with a
// full class B scan inside the split strategy and no pruning. Search must
// return exactly what it returns.
func referenceSearch(lengths []float64, index, countA, countB int, groups []model.SegmentGroup) ([]model.SegmentGroup, model.Ratio, bool) {
	if index == len(lengths) {
		r := SimplifyRatio(float64(countA), float64(countB))
		if IsAccepted(r) {
			return groups, r, true
		}
		return nil, model.Ratio{}, false
	}

	length := lengths[index]
	extend := func(g model.SegmentGroup) []model.SegmentGroup {
		next := make([]model.SegmentGroup, len(groups), len(groups)+1)
		copy(next, groups)
		return append(next, g)
	}

	for _, s1 := range classA {
		for _, s2 := range classB {
			if math.Abs(s1+s2-length) < model.Tolerance {
				g := model.SegmentGroup{TapeLength: length, Segments: []model.Segment{
					{Class: model.ClassA, Length: s1, Count: 1},
					{Class: model.ClassB, Length: s2, Count: 1},
				}}
				if res, r, ok := referenceSearch(lengths, index+1, countA+1, countB+1, extend(g)); ok {
					return res, r, true
				}
			}
		}
	}
	for _, s1 := range classA {
		if math.Abs(math.Mod(length, s1)) < model.Tolerance {
			n := int(math.Round(length / s1))
			g := model.SegmentGroup{TapeLength: length, Segments: []model.Segment{{Class: model.ClassA, Length: s1, Count: n}}}
			if res, r, ok := referenceSearch(lengths, index+1, countA+n, countB, extend(g)); ok {
				return res, r, true
			}
		}
	}
	for _, s2 := range classB {
		if math.Abs(math.Mod(length, s2)) < model.Tolerance {
			n := int(math.Round(length / s2))
			g := model.SegmentGroup{TapeLength: length, Segments: []model.Segment{{Class: model.ClassB, Length: s2, Count: n}}}
			if res, r, ok := referenceSearch(lengths, index+1, countA, countB+n, extend(g)); ok {
				return res, r, true
			}
		}
	}
	return nil, model.Ratio{}, false
}

func assertGroupsCover(t *testing.T, groups []model.SegmentGroup) {
	t.Helper()
	for i, g := range groups {
		assert.True(t, g.Covers(), "group %d covers %.4f of %.4f", i, g.Total(), g.TapeLength)
	}
}

func TestSearch_TwoToOneFromMultiples(t *testing.T) {
	alloc, stats, err := Search(context.Background(), []float64{600, 361}, Options{})
	require.NoError(t, err)
	require.Len(t, alloc.Groups, 2)

	assert.Equal(t, []model.Segment{{Class: model.ClassA, Length: 300.0, Count: 2}}, alloc.Groups[0].Segments)
	assert.Equal(t, 600.0, alloc.Groups[0].TapeLength)
	assert.Equal(t, []model.Segment{{Class: model.ClassB, Length: 361.0, Count: 1}}, alloc.Groups[1].Segments)
	assert.Equal(t, "2:1", alloc.Ratio.String())
	assert.Equal(t, 2, alloc.CountA)
	assert.Equal(t, 1, alloc.CountB)
	assert.Greater(t, stats.Nodes, 0)
	assertGroupsCover(t, alloc.Groups)
}

func TestSearch_BacktracksIntoNextStrategy(t *testing.T) {
	// 661 splits as 300.0 + 361.0 first, but 600 cannot complete a ratio
	// after that. The search must fall back to 2x 330.5 for the first tape.
	alloc, _, err := Search(context.Background(), []float64{661, 600}, Options{})
	require.NoError(t, err)
	require.Len(t, alloc.Groups, 2)

	assert.Equal(t, []model.Segment{{Class: model.ClassA, Length: 330.5, Count: 2}}, alloc.Groups[0].Segments)
	assert.Equal(t, []model.Segment{{Class: model.ClassB, Length: 600.0, Count: 1}}, alloc.Groups[1].Segments)
	assert.Equal(t, "2:1", alloc.Ratio.String())
	assertGroupsCover(t, alloc.Groups)
}

func TestSearch_SplitStrategyFirst(t *testing.T) {
	alloc, _, err := Search(context.Background(), []float64{661, 661, 600}, Options{})
	require.NoError(t, err)
	require.Len(t, alloc.Groups, 3)

	split := []model.Segment{
		{Class: model.ClassA, Length: 300.0, Count: 1},
		{Class: model.ClassB, Length: 361.0, Count: 1},
	}
	assert.Equal(t, split, alloc.Groups[0].Segments)
	assert.Equal(t, split, alloc.Groups[1].Segments)
	assert.Equal(t, []model.Segment{{Class: model.ClassA, Length: 300.0, Count: 2}}, alloc.Groups[2].Segments)
	assert.Equal(t, "2:1", alloc.Ratio.String())
}

func TestSearch_FiveToTwo(t *testing.T) {
	alloc, _, err := Search(context.Background(), []float64{661, 661, 900}, Options{})
	require.NoError(t, err)
	require.Len(t, alloc.Groups, 3)

	assert.Equal(t, []model.Segment{{Class: model.ClassA, Length: 300.0, Count: 3}}, alloc.Groups[2].Segments)
	assert.Equal(t, "5:2", alloc.Ratio.String())
	assert.Equal(t, 5, alloc.CountA)
	assert.Equal(t, 2, alloc.CountB)
	assertGroupsCover(t, alloc.Groups)
}

func TestSearch_NoSolutionOutsideCatalogs(t *testing.T) {
	_, _, err := Search(context.Background(), []float64{1000000}, Options{})
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSearch_NoSolutionWhenNoRatioFits(t *testing.T) {
	// Every tape decomposes on its own, but no combination gives an
	// accepted ratio.
	_, _, err := Search(context.Background(), []float64{600, 600, 600}, Options{})
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSearch_UndecomposableTape(t *testing.T) {
	_, _, err := Search(context.Background(), []float64{600, 100, 361}, Options{})
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSearch_EmptyInputHasUndefinedRatio(t *testing.T) {
	_, _, err := Search(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSearch_FirstFoundInLexicographicOrder(t *testing.T) {
	// Each 600 m tape is either 2x 300.0 (A) or 1x 600.0 (B). Only six of
	// each gives an accepted ratio, and the first such assignment tries
	// class A on the earliest tapes.
	lengths := make([]float64, 12)
	for i := range lengths {
		lengths[i] = 600
	}

	alloc, _, err := Search(context.Background(), lengths, Options{})
	require.NoError(t, err)
	require.Len(t, alloc.Groups, 12)
	for i, g := range alloc.Groups {
		require.Len(t, g.Segments, 1)
		if i < 6 {
			assert.Equal(t, model.ClassA, g.Segments[0].Class, "tape %d", i)
		} else {
			assert.Equal(t, model.ClassB, g.Segments[0].Class, "tape %d", i)
		}
	}
	assert.Equal(t, "2:1", alloc.Ratio.String())
}

func TestSearch_MatchesReference(t *testing.T) {
	inputs := [][]float64{
		{600, 361},
		{661, 600},
		{661, 661, 600},
		{661, 661, 900},
		{600, 600, 600},
		{722.2, 661.5, 600},
		{960},
		{1321, 600.2},
	}
	for _, lengths := range inputs {
		want, wantRatio, wantOK := referenceSearch(lengths, 0, 0, 0, nil)
		got, _, err := Search(context.Background(), lengths, Options{})
		if !wantOK {
			assert.ErrorIs(t, err, ErrNoSolution, "input %v", lengths)
			continue
		}
		require.NoError(t, err, "input %v", lengths)
		assert.Equal(t, want, got.Groups, "input %v", lengths)
		assert.Equal(t, wantRatio, got.Ratio, "input %v", lengths)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	lengths := []float64{661, 661, 900}
	first, _, err := Search(context.Background(), lengths, Options{})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, _, err := Search(context.Background(), lengths, Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearch_MaxNodes(t *testing.T) {
	lengths := make([]float64, 12)
	for i := range lengths {
		lengths[i] = 600
	}
	_, stats, err := Search(context.Background(), lengths, Options{MaxNodes: 10})
	assert.ErrorIs(t, err, ErrSearchLimit)
	assert.Equal(t, 11, stats.Nodes)
}

func TestSearch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Search(ctx, []float64{600, 361}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitMatchesEqualsFullScan(t *testing.T) {
	lengths := []float64{661, 661.5, 700.05, 722.2, 900, 960, 960.1, 1000, 660.9, 1200, 1321, 300}
	for _, length := range lengths {
		for _, s1 := range classA {
			var want []float64
			for _, s2 := range classB {
				if math.Abs(s1+s2-length) < model.Tolerance {
					want = append(want, s2)
				}
			}
			assert.Equal(t, want, splitMatches(length, s1), "length %v, s1 %v", length, s1)
		}
	}
}

func TestWholeMultiple(t *testing.T) {
	n, ok := wholeMultiple(600, 300)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = wholeMultiple(361, 300)
	assert.False(t, ok)

	_, ok = wholeMultiple(0.0005, 300)
	assert.False(t, ok, "zero-piece multiples are not cuts")
}

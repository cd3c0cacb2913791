package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TapePlanner/internal/engine"
	"github.com/piwi3910/TapePlanner/internal/model"
)

func TestPresent_SplitGroup(t *testing.T) {
	alloc := model.Allocation{
		Groups: []model.SegmentGroup{{
			TapeLength: 661.5,
			Segments: []model.Segment{
				{Class: model.ClassA, Length: 300.0, Count: 1},
				{Class: model.ClassB, Length: 361.5, Count: 1},
			},
		}},
		Ratio: model.Ratio{A: 2, B: 1},
	}

	lines := Present([]float64{661.5}, alloc, nil)
	require.Len(t, lines, 3)
	assert.Equal(t, model.Line{
		{Kind: model.ClassASegment, Text: "1x 300.0 m"},
		{Kind: model.ClassBSegment, Text: "1x 361.5 m"},
		{Kind: model.PlainNote, Text: "from 661.5 m tape"},
	}, lines[1])
	assert.Equal(t, "Ratio 2:1", lines[2].Text())
}

func TestPresent_NoLengths(t *testing.T) {
	lines := Present(nil, model.Allocation{}, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, model.ErrorMessage, lines[0][0].Kind)
	assert.Equal(t, MsgNoInput, lines[0][0].Text)
}

func TestPresent_FailureMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{engine.ErrNoSolution, MsgNoSolution},
		{engine.ErrSearchLimit, MsgLimit},
		{errors.New("anything else"), MsgNoSolution},
	}
	for _, tt := range tests {
		lines := Present([]float64{600}, model.Allocation{}, tt.err)
		require.Len(t, lines, 2)
		assert.Equal(t, model.InputSummary, lines[0][0].Kind)
		assert.Equal(t, model.Line{{Kind: model.ErrorMessage, Text: tt.want}}, lines[1])
	}
}

func TestFormatMeters(t *testing.T) {
	assert.Equal(t, "600", FormatMeters(600))
	assert.Equal(t, "661.5", FormatMeters(661.5))
	assert.Equal(t, "1383.7", FormatMeters(661.5+722.2))
	assert.Equal(t, "0.001", FormatMeters(0.001))
}

func TestFormatSegment(t *testing.T) {
	assert.Equal(t, "2x 300.0 m", FormatSegment(model.Segment{Class: model.ClassA, Length: 300, Count: 2}))
	assert.Equal(t, "1x 599.9 m", FormatSegment(model.Segment{Class: model.ClassB, Length: 599.9, Count: 1}))
}

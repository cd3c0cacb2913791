package model

import "strings"

// FragmentKind is the semantic category of a piece of result text.
// Shells map each kind to their own styling; the kind carries no behavior.
type FragmentKind int

const (
	InputSummary FragmentKind = iota
	ClassASegment
	ClassBSegment
	PlainNote
	RatioSummary
	ErrorMessage
)

func (k FragmentKind) String() string {
	switch k {
	case InputSummary:
		return "InputSummary"
	case ClassASegment:
		return "ClassASegment"
	case ClassBSegment:
		return "ClassBSegment"
	case PlainNote:
		return "PlainNote"
	case RatioSummary:
		return "RatioSummary"
	case ErrorMessage:
		return "ErrorMessage"
	default:
		return "Unknown"
	}
}

// Fragment is a run of text with a single category.
type Fragment struct {
	Kind FragmentKind `json:"kind"`
	Text string       `json:"text"`
}

// Line is one display line made of ordered fragments.
type Line []Fragment

// Text joins the fragment texts with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l))
	for i, f := range l {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// HasKind reports whether any fragment in the line has the given kind.
func (l Line) HasKind(kind FragmentKind) bool {
	for _, f := range l {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// PlainText renders lines as newline separated text.
func PlainText(lines []Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Text())
	}
	return sb.String()
}

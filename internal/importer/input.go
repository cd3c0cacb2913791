package importer

import (
	"math"
	"strconv"
	"strings"
)

// ParseLength parses one raw tape length entry in meters. Entries that are
// empty, non-numeric, non-finite or not positive are rejected.
func ParseLength(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParseLengths parses raw entries in order and silently drops the ones
// ParseLength rejects. The result is empty, never nil, when nothing parses.
func ParseLengths(raw []string) []float64 {
	lengths := make([]float64, 0, len(raw))
	for _, r := range raw {
		if v, ok := ParseLength(r); ok {
			lengths = append(lengths, v)
		}
	}
	return lengths
}

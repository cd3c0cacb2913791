package engine

// TapeOptions counts the candidates each strategy admits for one tape.
type TapeOptions struct {
	Length          float64 `json:"length"`
	SplitCandidates int     `json:"split_candidates"` // class A + class B pairs
	ClassAMultiples int     `json:"class_a_multiples"`
	ClassBMultiples int     `json:"class_b_multiples"`
}

// Total returns the number of ways the tape can be cut on its own.
func (o TapeOptions) Total() int {
	return o.SplitCandidates + o.ClassAMultiples + o.ClassBMultiples
}

// Decomposable reports whether at least one strategy applies to the tape.
func (o TapeOptions) Decomposable() bool {
	return o.Total() > 0
}

// Diagnose reports, per tape and independently of the ratio constraint,
// how many candidates each strategy admits. A tape with no candidates
// makes every search over it fail.
func Diagnose(lengths []float64) []TapeOptions {
	results := make([]TapeOptions, 0, len(lengths))

	for _, length := range lengths {
		opts := TapeOptions{Length: length}
		for _, s1 := range classA {
			opts.SplitCandidates += len(splitMatches(length, s1))
			if _, ok := wholeMultiple(length, s1); ok {
				opts.ClassAMultiples++
			}
		}
		for _, s2 := range classB {
			if _, ok := wholeMultiple(length, s2); ok {
				opts.ClassBMultiples++
			}
		}
		results = append(results, opts)
	}

	return results
}

// Undecomposable returns the indices of tapes that no strategy can cut.
func Undecomposable(options []TapeOptions) []int {
	var idx []int
	for i, o := range options {
		if !o.Decomposable() {
			idx = append(idx, i)
		}
	}
	return idx
}

package suffixgram

// compareSuffixes orders the suffixes at a and b symbol class by symbol
// class. A suffix that reaches the end of seq first sorts lower.
//
// Suffixes whose letter runs are equal up to a separator are tied under the
// per-record order; comparing on past the separator breaks the tie the same
// way for every shifted pair, which the LCP computation relies on.
func compareSuffixes(seq []byte, a, b int) int {
	if a == b {
		return 0
	}
	n := len(seq)
	for k := 0; ; k++ {
		switch {
		case a+k >= n:
			return -1
		case b+k >= n:
			return 1
		}
		x, y := symbolClass(seq, a+k), symbolClass(seq, b+k)
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
}

// BuildSuffixArray sorts every offset of seq by its suffix.
//
// Offsets are first partitioned by their three-symbol prefix, then placed one
// by one with a binary insertion whose search starts at the offset's own
// bucket. Average cost is close to O(N log N) comparisons, but placement
// shifts are O(N^2) in the worst case (long runs of one repeated symbol).
func BuildSuffixArray(seq []byte) []uint32 {
	return BuildSuffixArrayProgress(seq, nil)
}

// BuildSuffixArrayProgress is BuildSuffixArray reporting how many suffixes
// have been placed out of len(seq).
func BuildSuffixArrayProgress(seq []byte, progress func(placed, total int)) []uint32 {
	if len(seq) == 0 {
		return []uint32{}
	}
	buckets := newRadixBuckets(seq)
	sa := buckets.scatter(seq)

	sorter := insertionSorter[uint32]{
		lower:   func(off uint32) int { return buckets.start(seq, int(off)) },
		compare: func(a, b uint32) int { return compareSuffixes(seq, int(a), int(b)) },
	}
	if progress != nil {
		total := len(seq)
		sorter.progress = func(placed int) { progress(placed, total) }
	}
	sorter.sort(sa)
	return sa
}

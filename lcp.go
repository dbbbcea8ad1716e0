package suffixgram

// LCPComputer derives the rank and LCP arrays of a suffix array.
type LCPComputer struct {
	// LegacyRankGuard reproduces the BLMT srt2lcp loop: offsets start at 1,
	// ranks 0 and 1 are skipped, and a skipped offset doesn't shorten the
	// running match. Sequences that begin with a separator and hold at
	// least two get the same result in both modes.
	LegacyRankGuard bool
}

// ComputeLCP runs the default LCPComputer.
func ComputeLCP(seq []byte, sa []uint32) (rank, lcp []uint32) {
	return LCPComputer{}.Compute(seq, sa)
}

// Compute returns rank, the inverse of sa, and lcp, where lcp[i] counts the
// leading letters shared by the suffixes at sa[i-1] and sa[i]. lcp[0] is 0.
//
// Kasai's algorithm for building the LCP array in O(n) time.
func (c LCPComputer) Compute(seq []byte, sa []uint32) (rank, lcp []uint32) {
	n := len(sa)
	rank = make([]uint32, n)
	for i := range sa {
		rank[sa[i]] = uint32(i)
	}

	lcp = make([]uint32, n)
	first, guard := 0, uint32(0)
	if c.LegacyRankGuard {
		first, guard = 1, 1
	}
	h := 0
	for i := first; i < n; i++ {
		r := rank[i]
		if r <= guard {
			if !c.LegacyRankGuard {
				h = 0
			}
			continue
		}
		j := int(sa[r-1])
		for i+h < len(seq) && j+h < len(seq) && seq[i+h] == seq[j+h] && isResidue(seq[i+h]) {
			h++
		}
		lcp[r] = uint32(h)
		if h > 0 {
			h--
		}
	}
	return rank, lcp
}

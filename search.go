package suffixgram

import (
	"sort"

	"github.com/viniciusth/rmq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Counter counts the occurrences of a pattern across an indexed sequence.
type Counter interface {
	Count(pattern []byte) int
}

// NormalizePattern folds user input to the indexed alphabet: NFKC, then upper case.
func NormalizePattern(pattern string) []byte {
	return []byte(cases.Upper(language.Und).String(norm.NFKC.String(pattern)))
}

// comparePrefix orders pattern against the first len(pattern) bytes of the
// suffix at off. A suffix that ends early is smaller. A suffix that carries
// the whole pattern is larger, so every match sorts after the pattern.
func comparePrefix(seq []byte, off int, pattern []byte) int {
	for k, c := range pattern {
		p, s := 0, symbolClass(seq, off+k)
		if isResidue(c) {
			p = int(c-'A') + 1
		}
		if p != s {
			if p < s {
				return -1
			}
			return 1
		}
		if p == 0 {
			break
		}
	}
	return -1
}

// hasPrefix reports whether the suffix at off starts with pattern, letter for letter.
func hasPrefix(seq []byte, off int, pattern []byte) bool {
	if off+len(pattern) > len(seq) {
		return false
	}
	for k, c := range pattern {
		if !isResidue(c) || seq[off+k] != c {
			return false
		}
	}
	return true
}

// runLength counts the letters from off up to the next separator.
func runLength(seq []byte, off int) int {
	n := 0
	for off+n < len(seq) && isResidue(seq[off+n]) {
		n++
	}
	return n
}

// LocateFirst returns the first sorted position whose suffix is not smaller
// than pattern, or len(sa)-1 when every suffix is smaller.
func LocateFirst(seq []byte, sa []uint32, pattern []byte) int {
	if len(sa) == 0 {
		return 0
	}
	return findPosition(0, len(sa)-1, func(k int) int {
		return comparePrefix(seq, int(sa[k]), pattern)
	})
}

// CountExact counts occurrences of pattern by scanning the match block.
func CountExact(seq []byte, sa []uint32, pattern []byte) int {
	if len(pattern) == 0 {
		return 0
	}
	count := 0
	for i := LocateFirst(seq, sa, pattern); i < len(sa) && hasPrefix(seq, int(sa[i]), pattern); i++ {
		count++
	}
	return count
}

// CountExactFromLCP counts occurrences of pattern using the LCP array: all
// suffixes sharing an L-letter prefix are contiguous, linked by lcp >= L.
func CountExactFromLCP(seq []byte, sa, lcp []uint32, pattern []byte) int {
	if len(pattern) == 0 || len(sa) == 0 {
		return 0
	}
	first := LocateFirst(seq, sa, pattern)
	if !hasPrefix(seq, int(sa[first]), pattern) {
		return 0
	}
	count := 1
	for i := first + 1; i < len(lcp) && int(lcp[i]) >= len(pattern); i++ {
		count++
	}
	return count
}

// Searcher answers pattern queries over one suffix array. With an LCP array
// it counts through LCP runs, otherwise by comparing each candidate.
type Searcher struct {
	seq    []byte
	sa     []uint32
	lcp    []uint32
	lcpRMQ *rmq.RMQHybridNaive[int]
}

var _ Counter = (*Searcher)(nil)

// NewSearcher wraps the arrays without copying them. lcp may be nil.
func NewSearcher(seq []byte, sa, lcp []uint32) *Searcher {
	return &Searcher{seq: seq, sa: sa, lcp: lcp}
}

func (s *Searcher) HasLCP() bool { return s.lcp != nil }

func (s *Searcher) Count(pattern []byte) int {
	if s.lcp != nil {
		return CountExactFromLCP(s.seq, s.sa, s.lcp, pattern)
	}
	return CountExact(s.seq, s.sa, pattern)
}

func (s *Searcher) rangeMin() *rmq.RMQHybridNaive[int] {
	if s.lcpRMQ == nil {
		values := make([]int, len(s.lcp))
		for i, v := range s.lcp {
			values[i] = int(v)
		}
		s.lcpRMQ = rmq.NewRMQHybridNaive(values)
	}
	return s.lcpRMQ
}

// CommonPrefix returns the number of leading letters shared by the suffixes
// at sorted positions i and j. ok is false without an LCP array.
func (s *Searcher) CommonPrefix(i, j int) (n int, ok bool) {
	if s.lcp == nil {
		return 0, false
	}
	if i == j {
		return runLength(s.seq, int(s.sa[i])), true
	}
	if i > j {
		i, j = j, i
	}
	return int(s.lcp[s.rangeMin().Query(i+1, j)]), true
}

// Range returns the sorted positions [lo, hi] whose suffixes start with pattern.
func (s *Searcher) Range(pattern []byte) (lo, hi int, ok bool) {
	if len(pattern) == 0 || len(s.sa) == 0 {
		return 0, 0, false
	}
	lo = LocateFirst(s.seq, s.sa, pattern)
	if !hasPrefix(s.seq, int(s.sa[lo]), pattern) {
		return 0, 0, false
	}

	// we have T T T F F F for "still matches"; search for the first F.
	n := len(s.sa)
	width := sort.Search(n-lo, func(i int) bool {
		if i == 0 {
			return false
		}
		if n, ok := s.CommonPrefix(lo, lo+i); ok {
			return n < len(pattern)
		}
		return !hasPrefix(s.seq, int(s.sa[lo+i]), pattern)
	})
	return lo, lo + width - 1, true
}

// Positions returns the sequence offsets of every occurrence of pattern, in sorted order.
func (s *Searcher) Positions(pattern []byte) []uint32 {
	lo, hi, ok := s.Range(pattern)
	if !ok {
		return nil
	}
	out := make([]uint32, hi-lo+1)
	copy(out, s.sa[lo:hi+1])
	return out
}

// LongestRepeat returns the offset and length of the longest substring that
// occurs at least twice. ok is false without an LCP array or without repeats.
func (s *Searcher) LongestRepeat() (offset, length int, ok bool) {
	best := 0
	for i, v := range s.lcp {
		if int(v) > length {
			length, best = int(v), i
		}
	}
	if length == 0 {
		return 0, 0, false
	}
	return int(s.sa[best]), length, true
}

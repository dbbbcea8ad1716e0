package suffixgram

import (
	"bufio"
	"fmt"
	"io"
)

// NGramCount is one distinct n-gram: where it first appears in sorted order
// and how often it occurs.
type NGramCount struct {
	Offset uint32
	Count  int
}

// ExtractNGrams lists every distinct n-letter substring of seq with its
// number of occurrences, in suffix array order.
//
// Suffixes that start with the separator are skipped. A run of sorted
// positions begins wherever lcp drops below n and covers one n-gram when its
// first suffix holds n letters.
func ExtractNGrams(seq []byte, sa, lcp []uint32, n int) ([]NGramCount, error) {
	if n <= 0 {
		return nil, ErrInvalidNGramLength
	}
	if len(lcp) != len(sa) {
		return nil, &FormatError{Reason: fmt.Sprintf("lcp has %d entries, suffix array %d", len(lcp), len(sa)), Err: ErrLengthMismatch}
	}

	p := 0
	for p < len(sa) && !isResidue(seq[sa[p]]) {
		p++
	}

	var grams []NGramCount
	accepted := false
	for start := p; p < len(sa); p++ {
		if p == start || int(lcp[p]) < n {
			accepted = runLength(seq, int(sa[p])) >= n
			if accepted {
				grams = append(grams, NGramCount{Offset: sa[p]})
			}
		}
		if accepted {
			grams[len(grams)-1].Count++
		}
	}
	return grams, nil
}

// ByCountDescending returns grams ordered from most to least frequent.
// Equal counts come out in the reverse of their ascending sort order.
func ByCountDescending(grams []NGramCount) []NGramCount {
	counts := make([]int, len(grams))
	for i, g := range grams {
		counts[i] = g.Count
	}
	perm := SortIndices(counts)
	out := make([]NGramCount, len(grams))
	for i := range perm {
		out[i] = grams[perm[len(perm)-1-i]]
	}
	return out
}

// TopK keeps the first k grams. k <= 0 keeps everything.
func TopK(grams []NGramCount, k int) []NGramCount {
	if k <= 0 || k >= len(grams) {
		return grams
	}
	return grams[:k]
}

// FilterMinCount drops n-grams seen fewer than min times.
func FilterMinCount(grams []NGramCount, min int) []NGramCount {
	if min <= 1 {
		return grams
	}
	var out []NGramCount
	for _, g := range grams {
		if g.Count >= min {
			out = append(out, g)
		}
	}
	return out
}

// NGramText returns the n letters an NGramCount stands for.
func NGramText(seq []byte, g NGramCount, n int) string {
	return string(seq[g.Offset : int(g.Offset)+n])
}

// WriteNGrams writes one line per n-gram: "<ngram>  <count>", or only the
// count when withText is false.
func WriteNGrams(w io.Writer, seq []byte, grams []NGramCount, n int, withText bool) error {
	bw := bufio.NewWriter(w)
	for _, g := range grams {
		if withText {
			bw.WriteString(NGramText(seq, g, n))
			bw.WriteString("  ")
		}
		fmt.Fprintf(bw, "%d\n", g.Count)
	}
	return bw.Flush()
}

package suffixgram

import (
	"fmt"
)

type IndexBuilder struct {
	seq             *Sequence
	useLCP          bool
	useDocListing   bool
	legacyRankGuard bool
	progress        func(placed, total int)
}

func NewBuilder(seq *Sequence) *IndexBuilder {
	return &IndexBuilder{
		seq:           seq,
		useLCP:        true,
		useDocListing: true,
	}
}

// Skips the rank and LCP arrays. Counting then compares every candidate
// suffix against the pattern instead of walking LCP runs, and NGrams is
// unavailable.
// Saves 8*|S| bytes.
func (b *IndexBuilder) SkipLCP() *IndexBuilder {
	b.useLCP = false
	return b
}

// Skips the document listing structures construction.
// FindKRecords falls back to scanning the whole match block, which can take
// up to O(|S|) time in the worst case.
// Most useful if the number of wanted records is small.
func (b *IndexBuilder) SkipDocListing() *IndexBuilder {
	b.useDocListing = false
	return b
}

// Computes LCP with the legacy rank guard, see LCPComputer.
func (b *IndexBuilder) LegacyRankGuard() *IndexBuilder {
	b.legacyRankGuard = true
	return b
}

// Reports suffix array construction progress.
func (b *IndexBuilder) WithProgress(fn func(placed, total int)) *IndexBuilder {
	b.progress = fn
	return b
}

func (b *IndexBuilder) Build() (*Index, error) {
	if b.seq == nil {
		return nil, fmt.Errorf("suffixgram: no sequence to index")
	}
	data := b.seq.Bytes()
	if uint64(len(data)) > maxIndexLength {
		return nil, &CapacityError{Limit: maxIndexLength, Length: int64(len(data))}
	}

	sa := BuildSuffixArrayProgress(data, b.progress)

	var rank, lcp []uint32
	if b.useLCP {
		rank, lcp = LCPComputer{LegacyRankGuard: b.legacyRankGuard}.Compute(data, sa)
	}

	idx := NewIndex(b.seq, sa, rank, lcp)
	if b.useDocListing {
		idx.docs = newDocListing(sa, idx.records)
	}
	return idx, nil
}

// Index ties a sequence to its suffix array and, optionally, its rank and LCP arrays.
type Index struct {
	seq      *Sequence
	sa       []uint32
	rank     []uint32
	lcp      []uint32
	records  []Record
	searcher *Searcher
	docs     *docListing
}

// NewIndex assembles an index from arrays computed elsewhere, usually read
// back from index files. rank and lcp may be nil. Document listing is not
// built; FindKRecords scans instead.
func NewIndex(seq *Sequence, sa, rank, lcp []uint32) *Index {
	return &Index{
		seq:      seq,
		sa:       sa,
		rank:     rank,
		lcp:      lcp,
		records:  seq.Records(),
		searcher: NewSearcher(seq.Bytes(), sa, lcp),
	}
}

func (x *Index) Sequence() *Sequence   { return x.seq }
func (x *Index) SuffixArray() []uint32 { return x.sa }
func (x *Index) Rank() []uint32        { return x.rank }
func (x *Index) LCP() []uint32         { return x.lcp }
func (x *Index) Records() []Record     { return x.records }
func (x *Index) Searcher() *Searcher   { return x.searcher }
func (x *Index) Len() int              { return len(x.sa) }

// Count returns the number of occurrences of pattern. The pattern is
// normalised and upper-cased first.
func (x *Index) Count(pattern string) int {
	return x.searcher.Count(NormalizePattern(pattern))
}

func (x *Index) Range(pattern string) (lo, hi int, ok bool) {
	return x.searcher.Range(NormalizePattern(pattern))
}

func (x *Index) Positions(pattern string) []uint32 {
	return x.searcher.Positions(NormalizePattern(pattern))
}

// NGrams lists every distinct n-gram with its count, in sorted order.
func (x *Index) NGrams(n int) ([]NGramCount, error) {
	if x.lcp == nil {
		return nil, fmt.Errorf("suffixgram: n-gram extraction needs the LCP array")
	}
	return ExtractNGrams(x.seq.Bytes(), x.sa, x.lcp, n)
}

// FindKRecords returns up to k distinct records containing pattern, by record index.
func (x *Index) FindKRecords(pattern string, k int) []int {
	if k <= 0 {
		return nil
	}

	// Every element in [l, r] is a match for the pattern.
	l, r, ok := x.Range(pattern)
	if !ok {
		return nil
	}
	if x.docs != nil {
		return x.docs.find(l, r, k)
	}
	return naiveRecords(x.sa, x.records, l, r, k)
}

// FindKRecordsHeaders is FindKRecords returning record headers.
func (x *Index) FindKRecordsHeaders(pattern string, k int) []string {
	matchesIdx := x.FindKRecords(pattern, k)
	matches := make([]string, len(matchesIdx))
	for i := range matches {
		matches[i] = x.records[matchesIdx[i]].Header
	}
	return matches
}

package suffixgram

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/viniciusth/rmq"
)

// Record is one protein (or contig) of the concatenated sequence.
type Record struct {
	Index  int
	Offset int
	Length int
	Header string
}

// Records splits the sequence at its separators. A leading separator opens
// the first record and the trailing one closes the last.
func (s *Sequence) Records() []Record {
	headers := make(map[int]string, len(s.headers))
	for _, h := range s.headers {
		headers[h.Offset+1] = h.Text
	}

	var records []Record
	add := func(offset, end int) {
		records = append(records, Record{
			Index:  len(records),
			Offset: offset,
			Length: end - offset,
			Header: headers[offset],
		})
	}

	data := s.data
	start := 0
	if len(data) > 0 && data[0] == Separator {
		start = 1
	}
	for i := start; i < len(data); i++ {
		if data[i] == Separator {
			add(start, i)
			start = i + 1
		}
	}
	if start < len(data) {
		add(start, len(data))
	}
	return records
}

// RecordAt returns the index of the record containing offset, or -1 when
// offset falls on a separator or out of range.
func RecordAt(records []Record, offset int) int {
	i := sort.Search(len(records), func(i int) bool {
		return records[i].Offset > offset
	}) - 1
	if i < 0 || offset >= records[i].Offset+records[i].Length {
		return -1
	}
	return i
}

// AverageLength is the mean record length, 0 for no records.
func AverageLength(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, r := range records {
		total += r.Length
	}
	return float64(total) / float64(len(records))
}

// WriteRecordLengths writes "<length> <header>" per record, shortest first
// unless sorted is false. Without withHeaders the lines hold the length only.
func WriteRecordLengths(w io.Writer, records []Record, sorted, withHeaders bool) error {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	if sorted {
		lengths := make([]int, len(records))
		for i, r := range records {
			lengths[i] = r.Length
		}
		order = SortIndices(lengths)
	}

	bw := bufio.NewWriter(w)
	for _, i := range order {
		if withHeaders {
			fmt.Fprintf(bw, "%d %s\n", records[i].Length, records[i].Header)
		} else {
			fmt.Fprintf(bw, "%d\n", records[i].Length)
		}
	}
	return bw.Flush()
}

// docListing answers "which records contain this block of suffixes".
// For each sorted position i, prev[i] is the previous sorted position of a
// suffix from the same record, or -1.
type docListing struct {
	recordOf []int32
	prev     []int
	prevRMQ  *rmq.RMQHybridNaive[int]
}

func newDocListing(sa []uint32, records []Record) *docListing {
	byOffset := make([]int32, len(sa))
	for i := range byOffset {
		byOffset[i] = -1
	}
	for _, r := range records {
		for off := r.Offset; off < r.Offset+r.Length; off++ {
			byOffset[off] = int32(r.Index)
		}
	}

	recordOf := make([]int32, len(sa))
	prev := make([]int, len(sa))
	last := make([]int, len(records))
	for i := range last {
		last[i] = -1
	}
	for i, off := range sa {
		rec := byOffset[off]
		recordOf[i] = rec
		if rec < 0 {
			prev[i] = -1
			continue
		}
		prev[i] = last[rec]
		last[rec] = i
	}
	return &docListing{
		recordOf: recordOf,
		prev:     prev,
		prevRMQ:  rmq.NewRMQHybridNaive(prev),
	}
}

// find collects up to k distinct records among sorted positions [l, r].
func (d *docListing) find(l, r, k int) []int {
	matches := make([]int, 0, k)
	return d.collect(l, l, r, k, matches)
}

func (d *docListing) collect(baseL, l, r, k int, matches []int) []int {
	if k <= len(matches) || l > r {
		return matches
	}

	// prev[p] < l, since if prev[p] >= l, prev[p] ∈ [l, r] and we would have prev[prev[p]] < prev[p], a contradiction.
	p := d.prevRMQ.Query(l, r)

	// nothing in [l, r] is outside of the original l anymore, no more new records.
	if d.prev[p] >= baseL {
		return matches
	}
	matches = append(matches, int(d.recordOf[p]))
	matches = d.collect(baseL, l, p-1, k, matches)
	return d.collect(baseL, p+1, r, k, matches)
}

// naiveRecords scans [l, r] and collects up to k distinct records.
func naiveRecords(sa []uint32, records []Record, l, r, k int) []int {
	seen := make(map[int]bool)
	matches := make([]int, 0, k)
	for i := l; i <= r && len(matches) < k; i++ {
		rec := RecordAt(records, int(sa[i]))
		if rec < 0 || seen[rec] {
			continue
		}
		seen[rec] = true
		matches = append(matches, rec)
	}
	return matches
}

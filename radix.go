package suffixgram

const (
	// alphabetSize counts the 26 letters plus the separator class.
	alphabetSize = 27
	radixKeys    = alphabetSize * alphabetSize * alphabetSize
)

// symbolClass maps 'A'..'Z' to 1..26 and every other byte, including reads
// past the end of seq, to 0.
func symbolClass(seq []byte, i int) int {
	if i < 0 || i >= len(seq) {
		return 0
	}
	c := seq[i]
	if isResidue(c) {
		return int(c-'A') + 1
	}
	return 0
}

func radixKey(seq []byte, i int) int {
	return (symbolClass(seq, i)*alphabetSize+symbolClass(seq, i+1))*alphabetSize + symbolClass(seq, i+2)
}

// radixBuckets partitions offsets by their first three symbol classes.
// It only narrows insertion searches; it never decides the final order.
type radixBuckets struct {
	counts [radixKeys]int
	starts [radixKeys]int
}

func newRadixBuckets(seq []byte) *radixBuckets {
	b := new(radixBuckets)
	for i := range seq {
		b.counts[radixKey(seq, i)]++
	}
	sum := 0
	for k := range b.starts {
		b.starts[k] = sum
		sum += b.counts[k]
	}
	return b
}

// scatter returns every offset grouped by bucket, keeping ascending offset
// order inside each bucket.
func (b *radixBuckets) scatter(seq []byte) []uint32 {
	out := make([]uint32, len(seq))
	next := b.starts
	for i := range seq {
		k := radixKey(seq, i)
		out[next[k]] = uint32(i)
		next[k]++
	}
	return out
}

func (b *radixBuckets) start(seq []byte, offset int) int {
	return b.starts[radixKey(seq, offset)]
}

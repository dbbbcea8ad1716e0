package suffixgram

import (
	"bytes"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomRecords returns a loaded-looking sequence: a leading separator, then
// records over alphabet each closed by a separator.
func randomRecords(r *rand.Rand, alphabet string, records, maxLen int) []byte {
	var sb bytes.Buffer
	sb.WriteByte(Separator)
	for i := 0; i < records; i++ {
		n := 1 + r.Intn(maxLen)
		for j := 0; j < n; j++ {
			sb.WriteByte(alphabet[r.Intn(len(alphabet))])
		}
		sb.WriteByte(Separator)
	}
	return sb.Bytes()
}

func randomPattern(r *rand.Rand, alphabet string, maxLen int) []byte {
	p := make([]byte, 1+r.Intn(maxLen))
	for i := range p {
		p[i] = alphabet[r.Intn(len(alphabet))]
	}
	return p
}

func fasta(records ...string) string {
	var sb strings.Builder
	for i, rec := range records {
		sb.WriteString(">record")
		sb.WriteByte(byte('0' + i%10))
		sb.WriteByte('\n')
		sb.WriteString(rec)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func mustLoad(t *testing.T, text string) *Sequence {
	t.Helper()
	seq, err := (&Loader{KeepHeaders: true}).Load(strings.NewReader(text))
	require.NoError(t, err)
	return seq
}

// run returns the letters of the suffix at off, up to the next separator.
func run(seq []byte, off int) string {
	return string(seq[off : off+runLength(seq, off)])
}

// naiveSuffixArray sorts whole suffixes. The separator is below every
// letter in ASCII, so plain string order is the index order.
func naiveSuffixArray(seq []byte) []uint32 {
	sa := make([]uint32, len(seq))
	for i := range sa {
		sa[i] = uint32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return string(seq[sa[i]:]) < string(seq[sa[j]:])
	})
	return sa
}

func naiveLCP(seq []byte, sa []uint32) []uint32 {
	lcp := make([]uint32, len(sa))
	for i := 1; i < len(sa); i++ {
		a, b := run(seq, int(sa[i-1])), run(seq, int(sa[i]))
		k := 0
		for k < len(a) && k < len(b) && a[k] == b[k] {
			k++
		}
		lcp[i] = uint32(k)
	}
	return lcp
}

func naivePositions(seq, pattern []byte) []uint32 {
	var out []uint32
	for i := 0; i+len(pattern) <= len(seq); i++ {
		if bytes.Equal(seq[i:i+len(pattern)], pattern) {
			out = append(out, uint32(i))
		}
	}
	return out
}

func requireSorted(t *testing.T, seq []byte, sa []uint32) {
	t.Helper()
	require.Len(t, sa, len(seq))
	seen := make([]bool, len(seq))
	for i, off := range sa {
		require.False(t, seen[off], "offset %d appears twice", off)
		seen[off] = true
		if i > 0 {
			require.True(t, run(seq, int(sa[i-1])) <= run(seq, int(off)),
				"position %d: %q sorts after %q", i, run(seq, int(sa[i-1])), run(seq, int(off)))
			require.Equal(t, -1, compareSuffixes(seq, int(sa[i-1]), int(off)))
		}
	}
}

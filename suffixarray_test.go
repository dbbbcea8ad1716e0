package suffixgram

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSuffixArrayGolden(t *testing.T) {
	tests := []struct {
		seq  string
		want []uint32
	}{
		{"ABAB ", []uint32{4, 2, 0, 3, 1}},
		{"BAB", []uint32{1, 2, 0}},
		{"AAAA ", []uint32{4, 3, 2, 1, 0}},
		{"A", []uint32{0}},
		{"", []uint32{}},
	}
	for _, tc := range tests {
		t.Run(tc.seq, func(t *testing.T) {
			require.Equal(t, tc.want, BuildSuffixArray([]byte(tc.seq)))
		})
	}
}

func TestCompareSuffixesBreaksTiesPastSeparator(t *testing.T) {
	seq := []byte(" AB AC AB")
	require.Equal(t, 1, compareSuffixes(seq, 1, 7), "AB at the end of the buffer sorts first")
	require.Equal(t, -1, compareSuffixes(seq, 7, 1))
	require.Equal(t, 0, compareSuffixes(seq, 4, 4))
	require.Equal(t, -1, compareSuffixes(seq, 1, 4))
	require.Equal(t, 1, compareSuffixes(seq, 5, 1))
	require.Equal(t, -1, compareSuffixes(seq, 0, 1))
}

func TestBuildSuffixArrayRandom(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, alphabet := range []string{"A", "AB", "ACGT", "ACDEFGHIKLMNPQRSTVWY"} {
		for iter := 0; iter < 50; iter++ {
			seq := randomRecords(r, alphabet, 1+r.Intn(8), 20)
			sa := BuildSuffixArray(seq)
			requireSorted(t, seq, sa)

			require.Equal(t, naiveSuffixArray(seq), sa, "sequence %q", seq)
		}
	}
}

func TestBuildSuffixArrayProgress(t *testing.T) {
	seq := randomRecords(rand.New(rand.NewSource(1)), "ACGT", 30, 40)

	var calls, lastPlaced, lastTotal int
	sa := BuildSuffixArrayProgress(seq, func(placed, total int) {
		require.True(t, placed >= lastPlaced)
		calls++
		lastPlaced, lastTotal = placed, total
	})
	requireSorted(t, seq, sa)
	require.True(t, calls >= 1)
	require.Equal(t, len(seq), lastPlaced)
	require.Equal(t, len(seq), lastTotal)
}

func TestInsertionSorterReportsEvery(t *testing.T) {
	items := []int{5, 4, 3, 2, 1, 0}
	var reports []int
	insertionSorter[int]{
		compare:       func(a, b int) int { return a - b },
		progress:      func(placed int) { reports = append(reports, placed) },
		progressEvery: 2,
	}.sort(items)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, items)
	require.Equal(t, []int{2, 4, 6}, reports)
}

package suffixgram

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocateFirst(t *testing.T) {
	seq := []byte("ABAB ")
	sa := BuildSuffixArray(seq)

	tests := []struct {
		pattern string
		want    int
	}{
		{"AB", 1},
		{"ABA", 2},
		{"B", 3},
		{"BA", 4},
		{"AA", 1},
		{"C", 4},
		{"A", 1},
	}
	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			require.Equal(t, tc.want, LocateFirst(seq, sa, []byte(tc.pattern)))
		})
	}
	require.Equal(t, 0, LocateFirst(nil, nil, []byte("A")))
}

func TestCountStrategiesAgree(t *testing.T) {
	seq := []byte("ABAB ")
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)

	tests := []struct {
		pattern string
		want    int
	}{
		{"AB", 2}, {"A", 2}, {"B", 2}, {"ABAB", 1}, {"BAB", 1}, {"ABABA", 0}, {"C", 0}, {"", 0},
	}
	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			p := []byte(tc.pattern)
			require.Equal(t, tc.want, CountExact(seq, sa, p))
			require.Equal(t, tc.want, CountExactFromLCP(seq, sa, lcp, p))
			require.Equal(t, tc.want, NewSearcher(seq, sa, nil).Count(p))
			require.Equal(t, tc.want, NewSearcher(seq, sa, lcp).Count(p))
		})
	}
}

func TestCountDoesNotSpanSeparators(t *testing.T) {
	seq := mustLoad(t, fasta("AAAB", "AAAC")).Bytes()
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)

	for _, p := range []string{"B A", "BA", "BAA"} {
		require.Equal(t, 0, CountExact(seq, sa, []byte(p)), p)
		require.Equal(t, 0, CountExactFromLCP(seq, sa, lcp, []byte(p)), p)
	}
	require.Equal(t, 4, CountExact(seq, sa, []byte("AA")))
}

func TestSearcherRandom(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, alphabet := range []string{"AB", "ACGT"} {
		for iter := 0; iter < 60; iter++ {
			seq := randomRecords(r, alphabet, 1+r.Intn(10), 30)
			sa := BuildSuffixArray(seq)
			_, lcp := ComputeLCP(seq, sa)
			withLCP := NewSearcher(seq, sa, lcp)
			withoutLCP := NewSearcher(seq, sa, nil)
			require.True(t, withLCP.HasLCP())
			require.False(t, withoutLCP.HasLCP())

			for q := 0; q < 20; q++ {
				p := randomPattern(r, alphabet, 5)
				want := naivePositions(seq, p)

				require.Equal(t, len(want), CountExact(seq, sa, p), "pattern %q in %q", p, seq)
				require.Equal(t, len(want), withLCP.Count(p), "pattern %q in %q", p, seq)

				for _, s := range []*Searcher{withLCP, withoutLCP} {
					got := s.Positions(p)
					sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
					if len(want) == 0 {
						require.Empty(t, got)
						_, _, ok := s.Range(p)
						require.False(t, ok)
						continue
					}
					require.Equal(t, want, got)

					lo, hi, ok := s.Range(p)
					require.True(t, ok)
					require.Equal(t, len(want), hi-lo+1)
				}
			}
		}
	}
}

func TestCommonPrefix(t *testing.T) {
	seq := []byte("ABAB ")
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)
	s := NewSearcher(seq, sa, lcp)

	tests := []struct {
		i, j int
		want int
	}{
		{1, 2, 2}, {1, 3, 0}, {3, 1, 0}, {3, 4, 1}, {2, 2, 4},
	}
	for _, tc := range tests {
		n, ok := s.CommonPrefix(tc.i, tc.j)
		require.True(t, ok)
		require.Equal(t, tc.want, n, "positions %d, %d", tc.i, tc.j)
	}

	n, ok := NewSearcher(seq, sa, nil).CommonPrefix(1, 2)
	require.False(t, ok)
	require.Equal(t, 0, n)
}

func TestLongestRepeat(t *testing.T) {
	seq := mustLoad(t, fasta("MKVLAAG", "QMKVLW")).Bytes()
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)

	off, length, ok := NewSearcher(seq, sa, lcp).LongestRepeat()
	require.True(t, ok)
	require.Equal(t, "MKVL", string(seq[off:off+length]))

	_, _, ok = NewSearcher(seq, sa, nil).LongestRepeat()
	require.False(t, ok)
}

func TestNormalizePattern(t *testing.T) {
	require.Equal(t, []byte("MKVL"), NormalizePattern("mkvl"))
	require.Equal(t, []byte("MKVL"), NormalizePattern("ｍｋｖｌ"))
}

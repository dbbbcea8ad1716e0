package suffixgram

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type gramText struct {
	Gram  string
	Count int
}

func texts(seq []byte, grams []NGramCount, n int) []gramText {
	out := make([]gramText, len(grams))
	for i, g := range grams {
		out[i] = gramText{NGramText(seq, g, n), g.Count}
	}
	return out
}

func naiveNGrams(seq []byte, n int) map[string]int {
	counts := make(map[string]int)
	for i := range seq {
		if runLength(seq, i) >= n {
			counts[string(seq[i:i+n])]++
		}
	}
	return counts
}

func TestExtractNGramsGolden(t *testing.T) {
	seq := mustLoad(t, fasta("AAAB", "AAAC")).Bytes()
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)

	grams, err := ExtractNGrams(seq, sa, lcp, 2)
	require.NoError(t, err)
	require.Equal(t, []gramText{{"AA", 4}, {"AB", 1}, {"AC", 1}}, texts(seq, grams, 2))

	total := 0
	for _, g := range grams {
		total += g.Count
	}
	require.Equal(t, 6, total)

	var sb strings.Builder
	require.NoError(t, WriteNGrams(&sb, seq, grams, 2, true))
	require.Equal(t, "AA  4\nAB  1\nAC  1\n", sb.String())

	sb.Reset()
	require.NoError(t, WriteNGrams(&sb, seq, grams, 2, false))
	require.Equal(t, "4\n1\n1\n", sb.String())
}

func TestExtractNGramsLengths(t *testing.T) {
	seq := mustLoad(t, fasta("AAAB", "AAAC")).Bytes()
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)

	grams, err := ExtractNGrams(seq, sa, lcp, 4)
	require.NoError(t, err)
	require.Equal(t, []gramText{{"AAAB", 1}, {"AAAC", 1}}, texts(seq, grams, 4))

	grams, err = ExtractNGrams(seq, sa, lcp, 5)
	require.NoError(t, err)
	require.Empty(t, grams)

	_, err = ExtractNGrams(seq, sa, lcp, 0)
	require.True(t, errors.Is(err, ErrInvalidNGramLength))

	_, err = ExtractNGrams(seq, sa, lcp[1:], 2)
	require.True(t, errors.Is(err, ErrLengthMismatch))
	require.True(t, errors.Is(err, ErrFormat))
}

func TestExtractNGramsRandom(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for iter := 0; iter < 80; iter++ {
		seq := randomRecords(r, "ACGT", 1+r.Intn(10), 20)
		sa := BuildSuffixArray(seq)
		_, lcp := ComputeLCP(seq, sa)
		n := 1 + r.Intn(4)

		grams, err := ExtractNGrams(seq, sa, lcp, n)
		require.NoError(t, err)

		want := naiveNGrams(seq, n)
		require.Len(t, grams, len(want))
		for i, g := range grams {
			text := NGramText(seq, g, n)
			require.Equal(t, want[text], g.Count, "%d-gram %q", n, text)
			if i > 0 {
				require.True(t, NGramText(seq, grams[i-1], n) < text, "grams out of order")
			}
		}
	}
}

func TestByCountDescending(t *testing.T) {
	grams := []NGramCount{{Offset: 1, Count: 4}, {Offset: 3, Count: 1}, {Offset: 8, Count: 1}}
	require.Equal(t, grams, ByCountDescending(grams))

	grams = []NGramCount{{Offset: 0, Count: 1}, {Offset: 1, Count: 3}, {Offset: 2, Count: 2}}
	require.Equal(t, []NGramCount{{Offset: 1, Count: 3}, {Offset: 2, Count: 2}, {Offset: 0, Count: 1}}, ByCountDescending(grams))
	require.Empty(t, ByCountDescending(nil))
}

func TestTopKAndMinCount(t *testing.T) {
	grams := []NGramCount{{Offset: 0, Count: 5}, {Offset: 1, Count: 1}, {Offset: 2, Count: 2}}

	require.Equal(t, grams[:2], TopK(grams, 2))
	require.Equal(t, grams, TopK(grams, 0))
	require.Equal(t, grams, TopK(grams, 10))

	require.Equal(t, grams, FilterMinCount(grams, 1))
	require.Equal(t, []NGramCount{{Offset: 0, Count: 5}, {Offset: 2, Count: 2}}, FilterMinCount(grams, 2))
	require.Empty(t, FilterMinCount(grams, 6))
}

func TestProfile(t *testing.T) {
	seq := mustLoad(t, fasta("AAAB", "AAAC")).Bytes()
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)

	windows, err := Profile(NewSearcher(seq, sa, lcp), []byte("aaab\n"), 2)
	require.NoError(t, err)
	require.Equal(t, []WindowCount{{"AA", 4}, {"AA", 4}, {"AB", 1}}, windows)

	var sb strings.Builder
	require.NoError(t, WriteProfile(&sb, windows))
	require.Equal(t, "AA 4\nAA 4\nAB 1\n\n", sb.String())

	windows, err = Profile(NewSearcher(seq, sa, nil), []byte("A"), 2)
	require.NoError(t, err)
	require.Empty(t, windows)

	_, err = Profile(NewSearcher(seq, sa, nil), []byte("AAAB"), 0)
	require.True(t, errors.Is(err, ErrInvalidNGramLength))
}

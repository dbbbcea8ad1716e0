package ngrams

import (
	"fmt"
	"io"

	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
)

var args = struct {
	srt         *string
	lcp         *string
	n           *int
	out         *string
	sortCount   *bool
	top         *int
	printNGrams *bool
	minCount    *int
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("ngrams", "Count every distinct n-gram of an indexed sequence")
	args.srt = cmd.Arg("srt", "Suffix array file").Required().ExistingFile()
	args.lcp = cmd.Arg("lcp", "LCP file computed from srt").Required().ExistingFile()
	args.n = cmd.Flag("n", "N-gram length (defaults to ngram_length from the config)").Short('n').Int()
	args.out = cmd.Flag("out", "Report to write (defaults to <srt>.<n>grams, - for stdout)").Short('o').String()
	args.sortCount = cmd.Flag("sort-count", "Order by descending count instead of alphabetically").Bool()
	args.top = cmd.Flag("top", "Only report the first K n-grams").Int()
	args.printNGrams = cmd.Flag("print-ngrams", "Print each n-gram next to its count").Default("true").Bool()
	args.minCount = cmd.Flag("min-count", "Drop n-grams seen fewer times").Int()
	ctx.Register(cmd, do)
}

type Params struct {
	SrtPath     string
	LCPPath     string
	OutPath     string
	N           int
	SortCount   bool
	Top         int
	PrintNGrams bool
	MinCount    int
}

func do(ctx *mansion.Context) {
	p := Params{
		SrtPath:     *args.srt,
		LCPPath:     *args.lcp,
		OutPath:     *args.out,
		N:           *args.n,
		SortCount:   *args.sortCount,
		Top:         *args.top,
		PrintNGrams: *args.printNGrams,
		MinCount:    *args.minCount,
	}
	if p.N == 0 {
		p.N = ctx.Config.NGramLength
	}
	if p.Top == 0 {
		p.Top = ctx.Config.Top
	}
	if p.MinCount == 0 {
		p.MinCount = ctx.Config.MinCount
	}
	if p.OutPath == "" {
		p.OutPath = fmt.Sprintf("%s.%dgrams", p.SrtPath, p.N)
	}
	ctx.Must(Do(p))
}

// Do writes the n-gram report described by p.
func Do(p Params) error {
	comm.Opf("Loading %s and %s", p.SrtPath, p.LCPPath)
	idx, err := suffixgram.LoadIndex(p.SrtPath, p.LCPPath)
	if err != nil {
		return err
	}

	grams, err := idx.NGrams(p.N)
	if err != nil {
		return err
	}
	comm.Statf("%s distinct %d-grams", comm.Count(len(grams)), p.N)

	grams = suffixgram.FilterMinCount(grams, p.MinCount)
	if p.SortCount {
		grams = suffixgram.ByCountDescending(grams)
	}
	grams = suffixgram.TopK(grams, p.Top)

	err = mansion.WithOutput(p.OutPath, func(w io.Writer) error {
		return suffixgram.WriteNGrams(w, idx.Sequence().Bytes(), grams, p.N, p.PrintNGrams)
	})
	if err != nil {
		return err
	}
	comm.Statf("Wrote %s n-grams to %s", comm.Count(len(grams)), p.OutPath)
	return nil
}

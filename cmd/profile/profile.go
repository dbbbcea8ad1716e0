package profile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
)

var args = struct {
	srt         *string
	lcp         *string
	protein     *string
	proteinFile *string
	n           *int
	stats       *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("profile", "Count every window of a query protein across the index")
	args.srt = cmd.Arg("srt", "Suffix array file").Required().ExistingFile()
	args.lcp = cmd.Arg("lcp", "LCP file computed from srt").Required().ExistingFile()
	args.protein = cmd.Arg("protein", "Protein residues to profile").String()
	args.proteinFile = cmd.Flag("protein-file", "Sequence file with the proteins to profile").ExistingFile()
	args.n = cmd.Flag("n", "Window length (defaults to ngram_length from the config)").Short('n').Int()
	args.stats = cmd.Flag("stats", "Summarize the counts of each protein").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	n := *args.n
	if n == 0 {
		n = ctx.Config.NGramLength
	}

	var proteins [][]byte
	switch {
	case *args.proteinFile != "":
		loader := ctx.Loader()
		loader.FoldCase = true
		seq, err := loader.LoadFile(*args.proteinFile)
		ctx.Must(err)
		for _, r := range seq.Records() {
			proteins = append(proteins, seq.Bytes()[r.Offset:r.Offset+r.Length])
		}
	case *args.protein != "":
		proteins = [][]byte{[]byte(*args.protein)}
	default:
		ctx.Must(errors.New("profile needs a protein or --protein-file"))
	}

	ctx.Must(Do(os.Stdout, *args.srt, *args.lcp, proteins, n, *args.stats))
}

// Summary describes the window counts of one protein.
type Summary struct {
	Windows int
	Min     int
	Max     int
	Unique  int
}

func Summarize(windows []suffixgram.WindowCount) Summary {
	s := Summary{Windows: len(windows)}
	for i, w := range windows {
		if i == 0 || w.Count < s.Min {
			s.Min = w.Count
		}
		if w.Count > s.Max {
			s.Max = w.Count
		}
		if w.Count == 1 {
			s.Unique++
		}
	}
	return s
}

// Do writes the profile of each protein to w.
func Do(w io.Writer, srt, lcp string, proteins [][]byte, n int, stats bool) error {
	idx, err := suffixgram.LoadIndex(srt, lcp)
	if err != nil {
		return err
	}

	for i, protein := range proteins {
		windows, err := suffixgram.Profile(idx.Searcher(), protein, n)
		if err != nil {
			return err
		}
		if err := suffixgram.WriteProfile(w, windows); err != nil {
			return errors.WithStack(err)
		}
		if stats {
			s := Summarize(windows)
			comm.Statf("protein %d: %d windows, counts %d..%d, %d unique", i, s.Windows, s.Min, s.Max, s.Unique)
		}
	}
	return nil
}

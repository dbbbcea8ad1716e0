package index

import (
	"time"

	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
)

var args = struct {
	faa *string
	srt *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("index", "Build the suffix array (.srt) of a sequence file")
	args.faa = cmd.Arg("faa", "Sequence file, one header line per record (may be gzip, xz or bzip2 compressed)").Required().String()
	args.srt = cmd.Flag("srt", "Suffix array file to write (defaults to <faa>.srt)").String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	srt := *args.srt
	if srt == "" {
		srt = *args.faa + ".srt"
	}
	ctx.Must(Do(ctx.Loader(), *args.faa, srt))
}

// Do loads faa and writes its suffix array to srt.
func Do(loader *suffixgram.Loader, faa string, srt string) error {
	comm.Opf("Loading %s", faa)
	seq, err := loader.LoadFile(faa)
	if err != nil {
		return err
	}
	comm.Statf("%s bytes in %s records", comm.Count(seq.Len()), comm.Count(len(seq.Records())))

	comm.Opf("Sorting %s suffixes", comm.Count(seq.Len()))
	start := time.Now()
	bar := comm.StartProgress("sorting", int64(seq.Len()))
	sa := suffixgram.BuildSuffixArrayProgress(seq.Bytes(), func(placed, total int) {
		bar.SetCurrent(int64(placed))
	})
	bar.Finish()
	elapsed := time.Since(start)
	comm.Logger().Info("sorted suffixes",
		"suffixes", len(sa),
		"elapsed", elapsed.Round(time.Millisecond),
		"rate", comm.Rate(len(sa), elapsed),
	)

	if err := suffixgram.SaveSuffixArray(srt, sa, seq.Bytes()); err != nil {
		return err
	}
	comm.Statf("Wrote %s", srt)
	return nil
}

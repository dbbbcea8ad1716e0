package proteins

import (
	"io"

	"github.com/pkg/errors"
	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
)

var args = struct {
	faa          *string
	srt          *string
	out          *string
	printHeaders *bool
	noSort       *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("proteins", "List the length of every record, shortest first")
	args.faa = cmd.Flag("faa", "Sequence file to read records from").ExistingFile()
	args.srt = cmd.Flag("srt", "Suffix array file to read records from").ExistingFile()
	args.out = cmd.Flag("out", "Report to write (defaults to stdout)").Short('o').String()
	args.printHeaders = cmd.Flag("print-headers", "Print each record's header next to its length (needs --faa)").Bool()
	args.noSort = cmd.Flag("no-sort", "Keep records in file order").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	loader := ctx.Loader()
	loader.KeepHeaders = loader.KeepHeaders || *args.printHeaders
	ctx.Must(Do(loader, *args.faa, *args.srt, *args.out, !*args.noSort, *args.printHeaders))
}

// Do writes one "<length> <header>" line per record of faa, or of the
// sequence stored in srt when faa is empty.
func Do(loader *suffixgram.Loader, faa, srt, out string, sorted, withHeaders bool) error {
	var seq *suffixgram.Sequence
	var err error
	switch {
	case faa != "":
		seq, err = loader.LoadFile(faa)
	case srt != "":
		if withHeaders {
			comm.Warnf("%s carries no headers, printing lengths only", srt)
			withHeaders = false
		}
		_, seq, err = suffixgram.LoadSuffixArray(srt)
	default:
		err = errors.New("proteins needs --faa or --srt")
	}
	if err != nil {
		return err
	}

	records := seq.Records()
	err = mansion.WithOutput(out, func(w io.Writer) error {
		return suffixgram.WriteRecordLengths(w, records, sorted, withHeaders)
	})
	if err != nil {
		return err
	}
	comm.Statf("%s records, average length %.2f", comm.Count(len(records)), suffixgram.AverageLength(records))
	return nil
}

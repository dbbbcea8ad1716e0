package stats

import (
	"fmt"
	"strconv"

	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
)

var args = struct {
	srt *string
	lcp *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("stats", "Summarize an index")
	args.srt = cmd.Arg("srt", "Suffix array file").Required().ExistingFile()
	args.lcp = cmd.Arg("lcp", "LCP file computed from srt").ExistingFile()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	rows, err := Do(*args.srt, *args.lcp)
	ctx.Must(err)
	comm.Table([]string{"metric", "value"}, rows)
}

// Do returns metric/value rows describing the index.
func Do(srt, lcp string) ([][]string, error) {
	idx, err := suffixgram.LoadIndex(srt, lcp)
	if err != nil {
		return nil, err
	}

	records := idx.Records()
	rows := [][]string{
		{"length", comm.Count(idx.Len())},
		{"size", comm.Size(int64(idx.Len()) * 5)},
		{"records", comm.Count(len(records))},
		{"average length", strconv.FormatFloat(suffixgram.AverageLength(records), 'f', 2, 64)},
	}

	if lcp != "" {
		if off, length, ok := idx.Searcher().LongestRepeat(); ok {
			seq := idx.Sequence().Bytes()
			repeat := string(seq[off : off+length])
			if len(repeat) > 40 {
				repeat = repeat[:37] + "..."
			}
			rows = append(rows, []string{"longest repeat", fmt.Sprintf("%d (%s)", length, repeat)})
		} else {
			rows = append(rows, []string{"longest repeat", "0"})
		}
	}
	return rows, nil
}

package search

import (
	"bufio"
	"fmt"
	"io"

	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
)

var args = struct {
	srt       *string
	pattern   *string
	lcp       *string
	positions *bool
	records   *int
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("search", "Count the occurrences of a pattern")
	args.srt = cmd.Arg("srt", "Suffix array file").Required().ExistingFile()
	args.pattern = cmd.Arg("pattern", "Residues to look for").Required().String()
	args.lcp = cmd.Flag("lcp", "LCP file computed from srt, counts through LCP runs").ExistingFile()
	args.positions = cmd.Flag("positions", "Also list the offset of every occurrence").Bool()
	args.records = cmd.Flag("records", "Also list up to K distinct records containing the pattern").Int()
	ctx.Register(cmd, do)
}

// Result is what search reports.
type Result struct {
	Pattern   string   `json:"pattern"`
	Count     int      `json:"count"`
	Positions []uint32 `json:"positions,omitempty"`
	Records   []int    `json:"records,omitempty"`
}

func do(ctx *mansion.Context) {
	res, err := Do(*args.srt, *args.lcp, *args.pattern, *args.positions, *args.records)
	ctx.Must(err)

	comm.ResultOrPrint(res, func() {
		ctx.Must(mansion.WithOutput("-", res.Write))
	})
}

// Write prints the result as text: "<pattern> <count>", then one line per
// position, then one "record <index>" line per record.
func (r *Result) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n", r.Pattern, r.Count)
	for _, p := range r.Positions {
		fmt.Fprintf(bw, "%d\n", p)
	}
	for _, rec := range r.Records {
		fmt.Fprintf(bw, "record %d\n", rec)
	}
	return bw.Flush()
}

// Do counts pattern in the index at srt, with lcp when not empty.
func Do(srt, lcp, pattern string, positions bool, records int) (*Result, error) {
	idx, err := suffixgram.LoadIndex(srt, lcp)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Pattern: string(suffixgram.NormalizePattern(pattern)),
		Count:   idx.Count(pattern),
	}
	if positions {
		res.Positions = idx.Positions(pattern)
	}
	if records > 0 {
		res.Records = idx.FindKRecords(pattern, records)
	}
	comm.Logger().Debug("counted", "pattern", res.Pattern, "lcp", idx.Searcher().HasLCP())
	return res, nil
}

package lcp

import (
	"time"

	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
)

var args = struct {
	srt             *string
	lcp             *string
	rnk             *string
	legacyRankGuard *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("lcp", "Compute the rank (.rnk) and LCP (.lcp) arrays of a suffix array")
	args.srt = cmd.Arg("srt", "Suffix array file").Required().ExistingFile()
	args.lcp = cmd.Flag("lcp", "LCP file to write (defaults to <srt>.lcp)").String()
	args.rnk = cmd.Flag("rnk", "Rank file to write (defaults to <srt>.rnk)").String()
	args.legacyRankGuard = cmd.Flag("legacy-rank-guard", "Skip ranks 0 and 1 like srt2lcp did").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	srt := *args.srt
	lcpPath, rnkPath := *args.lcp, *args.rnk
	if lcpPath == "" {
		lcpPath = srt + ".lcp"
	}
	if rnkPath == "" {
		rnkPath = srt + ".rnk"
	}
	legacy := *args.legacyRankGuard || ctx.Config.LegacyRankGuard
	ctx.Must(Do(srt, lcpPath, rnkPath, legacy))
}

// Do reads srt and writes its LCP array to lcpPath and its rank array to
// rnkPath. An empty rnkPath skips the rank file.
func Do(srt, lcpPath, rnkPath string, legacyRankGuard bool) error {
	comm.Opf("Loading %s", srt)
	sa, seq, err := suffixgram.LoadSuffixArray(srt)
	if err != nil {
		return err
	}

	mode := "textbook"
	if legacyRankGuard {
		mode = "legacy"
	}
	comm.Opf("Computing LCP over %s suffixes (%s rank guard)", comm.Count(len(sa)), mode)
	start := time.Now()
	rank, lcp := suffixgram.LCPComputer{LegacyRankGuard: legacyRankGuard}.Compute(seq.Bytes(), sa)
	comm.Logger().Info("computed lcp",
		"suffixes", len(sa),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"legacy_rank_guard", legacyRankGuard,
	)

	if err := suffixgram.SaveArray(lcpPath, lcp); err != nil {
		return err
	}
	comm.Statf("Wrote %s", lcpPath)
	if rnkPath != "" {
		if err := suffixgram.SaveArray(rnkPath, rank); err != nil {
			return err
		}
		comm.Statf("Wrote %s", rnkPath)
	}
	return nil
}

package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/viniciusth/suffixgram"
	"gopkg.in/alecthomas/kingpin.v2"
)

type variant struct {
	name   string
	config func(*suffixgram.IndexBuilder) *suffixgram.IndexBuilder
}

var variants = map[string]variant{
	"full":          {name: "full", config: func(b *suffixgram.IndexBuilder) *suffixgram.IndexBuilder { return b }},
	"no_lcp":        {name: "no_lcp", config: func(b *suffixgram.IndexBuilder) *suffixgram.IndexBuilder { return b.SkipLCP() }},
	"no_doc":        {name: "no_doc", config: func(b *suffixgram.IndexBuilder) *suffixgram.IndexBuilder { return b.SkipDocListing() }},
	"no_lcp_no_doc": {name: "no_lcp_no_doc", config: func(b *suffixgram.IndexBuilder) *suffixgram.IndexBuilder { return b.SkipLCP().SkipDocListing() }},
	"legacy_lcp":    {name: "legacy_lcp", config: func(b *suffixgram.IndexBuilder) *suffixgram.IndexBuilder { return b.LegacyRankGuard() }},
}

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
)

const residues = "ACDEFGHIKLMNPQRSTVWY"

// peakAlloc samples the heap until stopped and keeps the largest value seen.
type peakAlloc struct {
	peak uint64
	stop chan struct{}
	done chan struct{}
}

func heapAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func watchAlloc() *peakAlloc {
	pa := &peakAlloc{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(pa.done)
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			pa.peak = max(pa.peak, heapAlloc())
			select {
			case <-pa.stop:
				return
			case <-tick.C:
			}
		}
	}()
	return pa
}

func (pa *peakAlloc) Stop() uint64 {
	close(pa.stop)
	<-pa.done
	return pa.peak
}

// buildProteins returns M records of W residues each. In the high density
// case every record carries the same P residues somewhere.
func buildProteins(r *rand.Rand, M, W, P int, density densityType) ([]byte, []byte) {
	common := make([]byte, P)
	for j := range common {
		common[j] = residues[r.Intn(len(residues))]
	}

	data := make([]byte, 0, M*(W+1)+1)
	data = append(data, suffixgram.Separator)
	for i := 0; i < M; i++ {
		start := len(data)
		for j := 0; j < W; j++ {
			data = append(data, residues[r.Intn(len(residues))])
		}
		if density == densityHigh {
			insertPos := r.Intn(W - P + 1)
			copy(data[start+insertPos:], common)
		}
		data = append(data, suffixgram.Separator)
	}
	return data, common
}

func measureBuild(data []byte, config func(*suffixgram.IndexBuilder) *suffixgram.IndexBuilder) (time.Duration, uint64, uint64, *suffixgram.Index) {
	runtime.GC()
	pa := watchAlloc()
	start := time.Now()
	idx, err := config(suffixgram.NewBuilder(suffixgram.NewSequence(data))).Build()
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := pa.Stop()
	runtime.GC()
	alloc := heapAlloc()
	return dur, peak, alloc, idx
}

func measureQuery(idx *suffixgram.Index, patterns []string, k int) (time.Duration, uint64, uint64) {
	runtime.GC()
	pa := watchAlloc()
	start := time.Now()
	for _, p := range patterns {
		_ = idx.Count(p)
		_ = idx.FindKRecords(p, k)
	}
	dur := time.Since(start)
	peak := pa.Stop()
	runtime.GC()
	alloc := heapAlloc()
	return dur, peak, alloc
}

func runBenchmark(v variant, M, W, P, K, Q, runs int, density densityType) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		data, common := buildProteins(r, M, W, P, density)
		bt, bp, ba, idx := measureBuild(data, v.config)

		patterns := make([]string, Q)
		for i := range patterns {
			if density == densityHigh {
				patterns[i] = string(common) // All queries use the common pattern
			} else {
				rec := r.Intn(M)
				start := 1 + rec*(W+1) + r.Intn(W-P+1)
				patterns[i] = string(data[start : start+P])
			}
		}
		qt, qp, qa := measureQuery(idx, patterns, K)
		fmt.Printf("%s,%d,%d,%d,%d,%d,%s,%.0f,%d,%d,%.0f,%d,%d\n",
			v.name, M, W, P, K, Q, density,
			float64(bt.Nanoseconds()), bp, ba,
			float64(qt.Nanoseconds()), qp, qa)
	}
}

func main() {
	app := kingpin.New("bench", "Measure index build and query cost on random proteins")
	variantName := app.Flag("variant", "Variant to benchmark").Required().Enum("full", "no_lcp", "no_doc", "no_lcp_no_doc", "legacy_lcp")
	m := app.Flag("m", "Number of records M").Required().Int()
	w := app.Flag("w", "Record length W").Required().Int()
	p := app.Flag("p", "Pattern length P").Required().Int()
	k := app.Flag("k", "Number of records K to list").Required().Int()
	q := app.Flag("q", "Number of queries Q").Required().Int()
	runs := app.Flag("runs", "Number of runs for averaging").Default("3").Int()
	d := app.Flag("d", "Density: low or high").Default("low").Enum("low", "high")
	cpuprofile := app.Flag("cpuprofile", "Write CPU profile to file").String()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *m <= 0 || *w <= 0 || *p <= 0 || *k <= 0 || *q <= 0 || *p > *w {
		app.Fatalf("m, w, p, k and q must be positive, with p <= w")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			app.Fatalf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			app.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	runBenchmark(variants[*variantName], *m, *w, *p, *k, *q, *runs, densityType(*d))
}

package main

import (
	"log"
	"os"

	"github.com/viniciusth/suffixgram/cmd/index"
	"github.com/viniciusth/suffixgram/cmd/lcp"
	"github.com/viniciusth/suffixgram/cmd/ngrams"
	"github.com/viniciusth/suffixgram/cmd/profile"
	"github.com/viniciusth/suffixgram/cmd/proteins"
	"github.com/viniciusth/suffixgram/cmd/search"
	"github.com/viniciusth/suffixgram/cmd/stats"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/mansion"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	version = "head" // set by command-line on release builds
	app     = kingpin.New("suffixgram", "Suffix array n-gram index for protein sequences")
)

func main() {
	app.HelpFlag.Short('h')
	app.Version(version)
	app.VersionFlag.Short('V')

	ctx := mansion.NewContext(app)
	app.Flag("config", "TOML file with default settings").Short('c').StringVar(&ctx.ConfigPath)
	app.Flag("json", "Enable machine-readable JSON-lines output").Short('j').BoolVar(&ctx.JSON)
	app.Flag("quiet", "Hide progress indicators & other extra info").Short('q').BoolVar(&ctx.Quiet)
	app.Flag("verbose", "Display as much extra info as possible").Short('v').BoolVar(&ctx.Verbose)
	app.Flag("no-progress", "Doesn't show progress bars").BoolVar(&ctx.NoProgress)

	index.Register(ctx)
	lcp.Register(ctx)
	ngrams.Register(ctx)
	profile.Register(ctx)
	proteins.Register(ctx)
	search.Register(ctx)
	stats.Register(ctx)

	log.SetFlags(0)
	fullCmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	ctx.LoadConfig()

	do := ctx.Commands[fullCmd]
	if do == nil {
		comm.Dief("unknown command %s", fullCmd)
		return
	}
	do(ctx)
	comm.EndProgress()
}

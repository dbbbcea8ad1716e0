package mansion

import (
	"github.com/viniciusth/suffixgram"
	"github.com/viniciusth/suffixgram/internal/comm"
	"github.com/viniciusth/suffixgram/internal/config"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type DoCommand func(ctx *Context)

type Context struct {
	App      *kingpin.Application
	Commands map[string]DoCommand

	// Path to the TOML config file, if any
	ConfigPath string

	// Config is loaded once flags are parsed
	Config *config.Config

	// Quiet silences all output
	Quiet bool

	// Verbose enables chatty output
	Verbose bool

	// JSON enables machine-readable output
	JSON bool

	// NoProgress hides progress bars
	NoProgress bool
}

func NewContext(app *kingpin.Application) *Context {
	return &Context{
		App:      app,
		Commands: make(map[string]DoCommand),
		Config:   config.Default(),
	}
}

func (ctx *Context) Register(clause *kingpin.CmdClause, do DoCommand) {
	ctx.Commands[clause.FullCommand()] = do
}

// LoadConfig reads ConfigPath and configures comm. Call it after parsing.
func (ctx *Context) LoadConfig() {
	c, err := config.Load(ctx.ConfigPath)
	ctx.Must(err)
	ctx.Config = c
	comm.Configure(ctx.NoProgress || !c.Progress, ctx.Quiet, ctx.Verbose, ctx.JSON)
	if ctx.ConfigPath != "" {
		comm.Debugf("loaded config %s", ctx.ConfigPath)
	}
}

// Loader returns a sequence loader following the config.
func (ctx *Context) Loader() *suffixgram.Loader {
	return &suffixgram.Loader{
		MaxLength:   ctx.Config.MaxSequenceLength,
		FoldCase:    ctx.Config.FoldCase,
		KeepHeaders: ctx.Config.KeepHeaders,
	}
}

func (ctx *Context) Must(err error) {
	if err != nil {
		if ctx.Verbose || ctx.JSON {
			comm.Dief("%+v", err)
		} else {
			comm.Dief("%s", err)
		}
	}
}

package comm

import (
	"os"
	"runtime"
	"strings"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressTheme contains the characters we print next to operations and stats
type ProgressTheme struct {
	OpSign   string
	StatSign string
}

var themes = map[string]*ProgressTheme{
	"unicode": {"•", "✓"},
	"ascii":   {">", "<"},
}

func getCharset() string {
	if runtime.GOOS == "windows" && os.Getenv("OS") != "CYGWIN" {
		return "ascii"
	}

	var utf8 = ".UTF-8"
	if strings.Contains(os.Getenv("LC_ALL"), utf8) ||
		os.Getenv("LC_CTYPE") == "UTF-8" ||
		strings.Contains(os.Getenv("LANG"), utf8) {
		return "unicode"
	}

	return "ascii"
}

var theme = themes[getCharset()]

var current *Progress

// Progress is a single bar on stderr. A nil *Progress ignores every call.
type Progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

// StartProgress begins a bar counting up to total, unless progress is
// disabled, quiet or in JSON mode, where nil is returned.
func StartProgress(label string, total int64) *Progress {
	if settings.noProgress || settings.quiet || settings.json {
		return nil
	}
	EndProgress()

	container := mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
	bar := container.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.Name(" ETA: "),
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO), "done"),
		),
	)
	current = &Progress{container: container, bar: bar}
	return current
}

// SetCurrent moves the bar to n
func (p *Progress) SetCurrent(n int64) {
	if p == nil {
		return
	}
	p.bar.SetCurrent(n)
}

// Finish completes the bar and waits for it to render
func (p *Progress) Finish() {
	if p == nil || p.container == nil {
		return
	}
	if !p.bar.Completed() {
		p.bar.Abort(false)
	}
	p.container.Wait()
	p.container = nil
	if current == p {
		current = nil
	}
}

// EndProgress finishes whichever bar is running, if any
func EndProgress() {
	current.Finish()
}

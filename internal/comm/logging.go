package comm

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
)

var settings = &struct {
	noProgress bool
	quiet      bool
	verbose    bool
	json       bool
}{
	false,
	false,
	false,
	false,
}

// stdout receives JSON lines and results; exit ends the process on Die.
var (
	stdout io.Writer = os.Stdout
	exit             = os.Exit
)

// Configure sets all logging options in one go
func Configure(noProgress, quiet, verbose, json bool) {
	settings.noProgress = noProgress
	settings.quiet = quiet
	settings.verbose = verbose
	settings.json = json

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(NewSlogHandler(level))
}

var logger = slog.New(NewSlogHandler(slog.LevelInfo))

// Logger returns a structured logger writing through comm at the level set
// by Configure. It is not installed with slog.SetDefault: the log package
// would then feed text-mode output back into it.
func Logger() *slog.Logger {
	return logger
}

// JsonEnabled reports whether output is machine-readable JSON lines.
func JsonEnabled() bool {
	return settings.json
}

type JsonMessage map[string]interface{}

var warnColor = color.New(color.FgYellow, color.Bold)

// Opf prints a formatted string informing the user on what operation we're doing
func Opf(format string, args ...interface{}) {
	Logf("%s %s", theme.OpSign, fmt.Sprintf(format, args...))
}

// Statf prints a formatted string informing the user how fast the operation went
func Statf(format string, args ...interface{}) {
	Logf("%s %s", theme.StatSign, fmt.Sprintf(format, args...))
}

// Logf sends a formatted informational message
func Logf(format string, args ...interface{}) {
	Loglf("info", format, args...)
}

// Warnf lets the user know about a problem that's non-critical
func Warnf(format string, args ...interface{}) {
	Loglf("warning", format, args...)
}

// Debugf messages are like Logf, but printed only when verbose
func Debugf(format string, args ...interface{}) {
	Loglf("debug", format, args...)
}

// Logl logs a message of a given level
func Logl(level string, msg string) {
	send("log", JsonMessage{
		"message": msg,
		"level":   level,
	})
}

// Loglf logs a formatted message of a given level
func Loglf(level string, format string, args ...interface{}) {
	Logl(level, fmt.Sprintf(format, args...))
}

// Die exits with a non-zero exit code after giving a reason
func Die(msg string) {
	send("error", JsonMessage{
		"message": msg,
	})
}

// Dief is a formatted variant of Die
func Dief(format string, args ...interface{}) {
	Die(fmt.Sprintf(format, args...))
}

// Result sends a result, only visible in JSON mode
func Result(value interface{}) {
	send("result", JsonMessage{
		"value": value,
	})
}

type printerFunc func()

func ResultOrPrint(value interface{}, p printerFunc) {
	if settings.json {
		Result(value)
	} else {
		p()
	}
}

func send(msgType string, obj JsonMessage) {
	if settings.json {
		obj["type"] = msgType
		obj["time"] = time.Now().UTC().Unix()
		if msgType == "log" && obj["level"] == "debug" && !(settings.verbose && !settings.quiet) {
			return
		}

		sendJSON(obj)
		if msgType == "error" {
			exit(1)
		}
		return
	}

	switch msgType {
	case "log":
		switch obj["level"] {
		case "info":
			if !settings.quiet {
				log.Println(obj["message"])
			}
		case "debug":
			if !settings.quiet && settings.verbose {
				log.Println(obj["message"])
			}
		case "warning":
			log.Println(warnColor.Sprintf("warning: %s", obj["message"]))
		default:
			log.Printf("%s: %s\n", obj["level"], obj["message"])
		}
	case "error":
		EndProgress()
		log.Println(obj["message"])
		exit(1)
	case "result":
		// don't show outside json mode
	default:
		log.Println(msgType, obj)
	}
}

func sendJSON(obj JsonMessage) {
	json, _ := json.Marshal(obj)
	fmt.Fprintln(stdout, string(json))
}

package comm

import (
	"time"

	humanize "github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators, e.g. 1,200,000,000
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Size formats a byte count, e.g. 4.8 GiB
func Size(n int64) string {
	return humanize.IBytes(uint64(n))
}

// Rate formats how many items per second went by in d
func Rate(n int, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return humanize.SI(float64(n)/d.Seconds(), "/s")
}

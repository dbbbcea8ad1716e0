package suffixgram

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// WindowCount is the global count of one window of a query protein.
type WindowCount struct {
	Gram  string
	Count int
}

// Profile slides a window of n letters over protein and counts each window
// across the whole index. Lowercase input is folded to upper case.
func Profile(c Counter, protein []byte, n int) ([]WindowCount, error) {
	if n <= 0 {
		return nil, ErrInvalidNGramLength
	}
	protein = bytes.ToUpper(bytes.TrimSpace(protein))
	if len(protein) < n {
		return nil, nil
	}

	windows := make([]WindowCount, 0, len(protein)-n+1)
	for i := 0; i+n <= len(protein); i++ {
		gram := protein[i : i+n]
		windows = append(windows, WindowCount{Gram: string(gram), Count: c.Count(gram)})
	}
	return windows, nil
}

// WriteProfile writes "<gram> <count>" per window followed by a blank line.
func WriteProfile(w io.Writer, windows []WindowCount) error {
	bw := bufio.NewWriter(w)
	for _, win := range windows {
		fmt.Fprintf(bw, "%s %d\n", win.Gram, win.Count)
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

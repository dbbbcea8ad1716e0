package mansion

import (
	"io"
	"os"

	"github.com/dchest/safefile"
	"github.com/pkg/errors"
)

// WithOutput runs write against path, replaced atomically once write
// succeeds. An empty path or "-" writes to stdout.
func WithOutput(path string, write func(w io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}

	f, err := safefile.Create(path, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	return errors.WithStack(f.Commit())
}

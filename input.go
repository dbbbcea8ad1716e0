package suffixgram

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte{'B', 'Z', 'h'}
)

type inputFile struct {
	io.Reader
	closers []io.Closer
}

func (f *inputFile) Close() error {
	var first error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenInput opens a sequence file, decompressing gzip, xz and bzip2 content
// recognised by its leading magic bytes.
func OpenInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	rc, err := Decompress(f)
	if err != nil {
		f.Close()
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	in := rc.(*inputFile)
	in.closers = append([]io.Closer{f}, in.closers...)
	return in, nil
}

// Decompress sniffs r and wraps it in the matching decoder. Closing the
// result closes the decoder only, never r.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &inputFile{Reader: zr, closers: []io.Closer{zr}}, nil
	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &inputFile{Reader: xr}, nil
	case bytes.HasPrefix(head, bzip2Magic):
		bz, err := bzip2.NewReader(br, nil)
		if err != nil {
			return nil, err
		}
		return &inputFile{Reader: bz, closers: []io.Closer{bz}}, nil
	default:
		return &inputFile{Reader: br}, nil
	}
}

// LoadFile opens path with OpenInput and loads it.
func (l *Loader) LoadFile(path string) (*Sequence, error) {
	in, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	seq, err := l.Load(in)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return seq, nil
}

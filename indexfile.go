package suffixgram

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/dchest/safefile"
	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"
)

// Index files store integers in the byte order of the machine that wrote
// them. They are not portable between little and big endian hosts.
//
//	.srt  [u32 N][N x u32 offset][N bytes sequence]
//	.lcp  [u32 N][N x u32 lcp by sorted position]
//	.rnk  [u32 N][N x u32 rank by offset]
var byteOrder = binary.NativeEndian

const (
	maxIndexLength = math.MaxUint32

	headerSize = 4
	chunkWords = 1 << 16
)

// IndexReader is random access to a whole index file. Both *mmap.ReaderAt
// and *bytes.Reader satisfy it.
type IndexReader interface {
	io.ReaderAt
	Len() int
}

func writeHeader(w io.Writer, n int) error {
	if uint64(n) > maxIndexLength {
		return &CapacityError{Limit: maxIndexLength, Length: int64(n)}
	}
	var buf [headerSize]byte
	byteOrder.PutUint32(buf[:], uint32(n))
	_, err := w.Write(buf[:])
	return err
}

func writeWords(w io.Writer, values []uint32) error {
	buf := make([]byte, 4*min(len(values), chunkWords))
	for len(values) > 0 {
		n := min(len(values), chunkWords)
		for i, v := range values[:n] {
			byteOrder.PutUint32(buf[4*i:], v)
		}
		if _, err := w.Write(buf[:4*n]); err != nil {
			return err
		}
		values = values[n:]
	}
	return nil
}

// WriteSuffixArray writes the .srt layout: length, offsets, then the sequence itself.
func WriteSuffixArray(w io.Writer, sa []uint32, seq []byte) error {
	if len(sa) != len(seq) {
		return &FormatError{Reason: fmt.Sprintf("suffix array has %d entries, sequence %d bytes", len(sa), len(seq)), Err: ErrLengthMismatch}
	}
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, len(sa)); err != nil {
		return err
	}
	if err := writeWords(bw, sa); err != nil {
		return err
	}
	if _, err := bw.Write(seq); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteArray writes the .lcp and .rnk layout: length, then the values.
func WriteArray(w io.Writer, values []uint32) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, len(values)); err != nil {
		return err
	}
	if err := writeWords(bw, values); err != nil {
		return err
	}
	return bw.Flush()
}

func readHeader(r IndexReader, path string) (int, error) {
	var buf [headerSize]byte
	if r.Len() < headerSize {
		return 0, &FormatError{Path: path, Reason: "missing length header"}
	}
	if _, err := r.ReadAt(buf[:], 0); err != nil {
		return 0, &IOError{Op: "read", Path: path, Err: err}
	}
	return int(byteOrder.Uint32(buf[:])), nil
}

func readWords(r IndexReader, path string, off int64, n int) ([]uint32, error) {
	values := make([]uint32, n)
	buf := make([]byte, 4*min(n, chunkWords))
	for done := 0; done < n; {
		k := min(n-done, chunkWords)
		if _, err := r.ReadAt(buf[:4*k], off+4*int64(done)); err != nil {
			return nil, &IOError{Op: "read", Path: path, Err: err}
		}
		for i := range k {
			values[done+i] = byteOrder.Uint32(buf[4*i:])
		}
		done += k
	}
	return values, nil
}

func checkSize(r IndexReader, path string, want int64) error {
	if got := int64(r.Len()); got != want {
		return &FormatError{Path: path, Reason: fmt.Sprintf("file holds %d bytes, header implies %d", got, want)}
	}
	return nil
}

// ReadSuffixArray decodes a .srt file. path is only used in errors.
func ReadSuffixArray(r IndexReader, path string) ([]uint32, *Sequence, error) {
	n, err := readHeader(r, path)
	if err != nil {
		return nil, nil, err
	}
	if err := checkSize(r, path, headerSize+5*int64(n)); err != nil {
		return nil, nil, err
	}
	sa, err := readWords(r, path, headerSize, n)
	if err != nil {
		return nil, nil, err
	}
	data := make([]byte, n)
	if _, err := r.ReadAt(data, headerSize+4*int64(n)); err != nil && n > 0 {
		return nil, nil, &IOError{Op: "read", Path: path, Err: err}
	}
	for i, off := range sa {
		if int(off) >= n {
			return nil, nil, &FormatError{Path: path, Reason: fmt.Sprintf("entry %d points at offset %d past the sequence", i, off)}
		}
	}
	return sa, NewSequence(data), nil
}

// ReadArray decodes a .lcp or .rnk file.
func ReadArray(r IndexReader, path string) ([]uint32, error) {
	n, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}
	if err := checkSize(r, path, headerSize+4*int64(n)); err != nil {
		return nil, err
	}
	return readWords(r, path, headerSize, n)
}

func save(path string, write func(w io.Writer) error) error {
	f, err := safefile.Create(path, 0644)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	if err := write(f); err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
			return fe
		}
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Commit(); err != nil {
		return &IOError{Op: "commit", Path: path, Err: err}
	}
	return nil
}

// SaveSuffixArray atomically replaces path with a .srt file.
func SaveSuffixArray(path string, sa []uint32, seq []byte) error {
	return save(path, func(w io.Writer) error { return WriteSuffixArray(w, sa, seq) })
}

// SaveArray atomically replaces path with a .lcp or .rnk file.
func SaveArray(path string, values []uint32) error {
	return save(path, func(w io.Writer) error { return WriteArray(w, values) })
}

func load[T any](path string, read func(r IndexReader) (T, error)) (T, error) {
	var zero T
	r, err := mmap.Open(path)
	if err != nil {
		return zero, &IOError{Op: "open", Path: path, Err: err}
	}
	defer r.Close()
	return read(r)
}

type suffixFile struct {
	sa  []uint32
	seq *Sequence
}

// LoadSuffixArray reads a .srt file through a read-only memory map.
func LoadSuffixArray(path string) ([]uint32, *Sequence, error) {
	f, err := load(path, func(r IndexReader) (suffixFile, error) {
		sa, seq, err := ReadSuffixArray(r, path)
		return suffixFile{sa: sa, seq: seq}, err
	})
	return f.sa, f.seq, err
}

// LoadArray reads a .lcp or .rnk file through a read-only memory map.
func LoadArray(path string) ([]uint32, error) {
	return load(path, func(r IndexReader) ([]uint32, error) { return ReadArray(r, path) })
}

// CheckPaired rejects arrays from different builds before any query runs.
func CheckPaired(path string, values []uint32, sa []uint32) error {
	if len(values) != len(sa) {
		return &FormatError{
			Path:   path,
			Reason: fmt.Sprintf("holds %d entries, suffix array %d", len(values), len(sa)),
			Err:    ErrLengthMismatch,
		}
	}
	return nil
}

// LoadIndex opens a .srt file and, when lcpPath is not empty, its .lcp file.
func LoadIndex(srtPath, lcpPath string) (*Index, error) {
	sa, seq, err := LoadSuffixArray(srtPath)
	if err != nil {
		return nil, errors.WithMessage(err, "loading suffix array")
	}

	var lcp []uint32
	if lcpPath != "" {
		lcp, err = LoadArray(lcpPath)
		if err != nil {
			return nil, errors.WithMessage(err, "loading lcp array")
		}
		if err := CheckPaired(lcpPath, lcp, sa); err != nil {
			return nil, err
		}
	}
	return NewIndex(seq, sa, nil, lcp), nil
}

package suffixgram

import (
	"bufio"
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
)

const (
	// Separator closes every record. It sorts below every letter.
	Separator = ' '

	// HeaderMarker starts a header line, which contributes one Separator.
	HeaderMarker = '>'

	// DefaultMaxLength bounds the sequence when a Loader has no explicit limit.
	DefaultMaxLength = 1200000000

	readBufferSize = 64 * 1024
)

// Header is a record header line, without its marker.
// Offset is the position of the separator the header produced.
type Header struct {
	Text   string
	Offset int
}

// Sequence is an immutable buffer of concatenated records.
// Everything downstream addresses it by byte offset.
type Sequence struct {
	data    []byte
	headers []Header
}

// NewSequence wraps data without copying it. The caller must not modify data afterwards.
func NewSequence(data []byte) *Sequence {
	return &Sequence{data: data}
}

func (s *Sequence) Bytes() []byte { return s.data }

func (s *Sequence) Len() int { return len(s.data) }

// Headers is empty unless the sequence was loaded with KeepHeaders.
func (s *Sequence) Headers() []Header { return s.headers }

// Loader reads line-oriented sequence text: header lines become one separator,
// every other line is appended without its terminator.
type Loader struct {
	// MaxLength is the largest accepted sequence, separators included.
	// Zero or negative means DefaultMaxLength.
	MaxLength int

	// FoldCase upper-cases lowercase residues instead of rejecting them.
	FoldCase bool

	// KeepHeaders retains header text for record reports.
	KeepHeaders bool
}

func (l *Loader) limit() int {
	limit := l.MaxLength
	if limit <= 0 {
		limit = DefaultMaxLength
	}
	return int(min(uint64(limit), math.MaxUint32))
}

// Load consumes r and returns the concatenated sequence, terminated by a trailing separator.
// Lines of any length are accepted; only the total is bounded by MaxLength.
func (l *Loader) Load(r io.Reader) (*Sequence, error) {
	limit := l.limit()
	seq := &Sequence{}
	var data []byte

	grow := func(n int) error {
		if len(data)+n > limit {
			return &CapacityError{Limit: int64(limit), Length: int64(len(data) + n)}
		}
		return nil
	}

	br := bufio.NewReaderSize(r, readBufferSize)
	lineNo, column := 0, 0
	midLine, header := false, false
	var headerText []byte
	for {
		frag, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading sequence records")
		}
		if !isPrefix {
			frag = bytes.TrimSuffix(frag, []byte{'\r'})
		}

		if !midLine {
			lineNo++
			column = 0
			header = len(frag) > 0 && frag[0] == HeaderMarker
			if header {
				if err := grow(1); err != nil {
					return nil, err
				}
				if l.KeepHeaders {
					seq.headers = append(seq.headers, Header{Offset: len(data)})
				}
				data = append(data, Separator)
				headerText = append(headerText[:0], frag[1:]...)
			}
		} else if header {
			headerText = append(headerText, frag...)
		}

		if !header && len(frag) > 0 {
			if err := grow(len(frag)); err != nil {
				return nil, err
			}
			start := len(data)
			data = append(data, frag...)
			if err := l.checkResidues(data[start:], lineNo, column); err != nil {
				return nil, err
			}
		}
		column += len(frag)

		midLine = isPrefix
		if header && !midLine && l.KeepHeaders {
			seq.headers[len(seq.headers)-1].Text = string(headerText)
		}
	}

	if err := grow(1); err != nil {
		return nil, err
	}
	data = append(data, Separator)
	seq.data = data
	return seq, nil
}

// checkResidues validates one appended line fragment in place, folding case
// when enabled. column is the number of bytes of the line already seen.
func (l *Loader) checkResidues(line []byte, lineNo, column int) error {
	for i, c := range line {
		if isResidue(c) {
			continue
		}
		if l.FoldCase && c >= 'a' && c <= 'z' {
			line[i] = c - 'a' + 'A'
			continue
		}
		return &RecordError{Line: lineNo, Column: column + i + 1, Byte: c}
	}
	return nil
}

func isResidue(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

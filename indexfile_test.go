package suffixgram

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuffixArrayFileRoundTrip(t *testing.T) {
	seq := mustLoad(t, fasta("MKVLAAG", "QMKVLW")).Bytes()
	sa := BuildSuffixArray(seq)
	_, lcp := ComputeLCP(seq, sa)

	dir := t.TempDir()
	srt := filepath.Join(dir, "proteins.srt")
	lcpPath := filepath.Join(dir, "proteins.lcp")
	require.NoError(t, SaveSuffixArray(srt, sa, seq))
	require.NoError(t, SaveArray(lcpPath, lcp))

	info, err := os.Stat(srt)
	require.NoError(t, err)
	require.Equal(t, int64(4+5*len(seq)), info.Size())

	gotSA, gotSeq, err := LoadSuffixArray(srt)
	require.NoError(t, err)
	require.Equal(t, sa, gotSA)
	require.Equal(t, seq, gotSeq.Bytes())

	gotLCP, err := LoadArray(lcpPath)
	require.NoError(t, err)
	require.Equal(t, lcp, gotLCP)

	idx, err := LoadIndex(srt, lcpPath)
	require.NoError(t, err)
	require.Equal(t, 2, idx.Count("MKVL"))
	require.True(t, idx.Searcher().HasLCP())

	idx, err = LoadIndex(srt, "")
	require.NoError(t, err)
	require.False(t, idx.Searcher().HasLCP())
	require.Equal(t, 2, idx.Count("MKVL"))
}

func TestEmptyArrayFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArray(&buf, nil))
	require.Equal(t, 4, buf.Len())

	values, err := ReadArray(bytes.NewReader(buf.Bytes()), "empty.lcp")
	require.NoError(t, err)
	require.Empty(t, values)

	buf.Reset()
	require.NoError(t, WriteSuffixArray(&buf, nil, nil))
	sa, seq, err := ReadSuffixArray(bytes.NewReader(buf.Bytes()), "empty.srt")
	require.NoError(t, err)
	require.Empty(t, sa)
	require.Equal(t, 0, seq.Len())
}

func TestReadRejectsMalformedFiles(t *testing.T) {
	seq := []byte("ABAB ")
	sa := BuildSuffixArray(seq)
	var buf bytes.Buffer
	require.NoError(t, WriteSuffixArray(&buf, sa, seq))
	good := buf.Bytes()

	t.Run("truncated", func(t *testing.T) {
		_, _, err := ReadSuffixArray(bytes.NewReader(good[:len(good)-1]), "x.srt")
		require.True(t, errors.Is(err, ErrFormat), "%v", err)
	})

	t.Run("no header", func(t *testing.T) {
		_, err := ReadArray(bytes.NewReader(good[:2]), "x.lcp")
		require.True(t, errors.Is(err, ErrFormat), "%v", err)
	})

	t.Run("offset past sequence", func(t *testing.T) {
		bad := append([]byte{}, good...)
		byteOrder.PutUint32(bad[headerSize:], 99)
		_, _, err := ReadSuffixArray(bytes.NewReader(bad), "x.srt")
		require.True(t, errors.Is(err, ErrFormat), "%v", err)
	})

	t.Run("length mismatch on write", func(t *testing.T) {
		err := WriteSuffixArray(&bytes.Buffer{}, sa[1:], seq)
		require.True(t, errors.Is(err, ErrLengthMismatch), "%v", err)
	})
}

func TestLoadIndexRejectsUnpairedLCP(t *testing.T) {
	dir := t.TempDir()
	seq := []byte("ABAB ")
	sa := BuildSuffixArray(seq)
	srt := filepath.Join(dir, "a.srt")
	lcpPath := filepath.Join(dir, "b.lcp")
	require.NoError(t, SaveSuffixArray(srt, sa, seq))
	require.NoError(t, SaveArray(lcpPath, []uint32{0, 1, 2}))

	_, err := LoadIndex(srt, lcpPath)
	require.True(t, errors.Is(err, ErrLengthMismatch), "%v", err)

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, lcpPath, fe.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := LoadSuffixArray(filepath.Join(t.TempDir(), "missing.srt"))
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "%v", err)
	require.Equal(t, "open", ioErr.Op)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveFailsInMissingDirectory(t *testing.T) {
	err := SaveArray(filepath.Join(t.TempDir(), "nope", "a.lcp"), []uint32{1})
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "%v", err)
}

func TestSaveNamesPathInFormatErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.srt")
	err := SaveSuffixArray(path, []uint32{0}, []byte("AB"))
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "%v", err)
	require.Equal(t, path, fe.Path)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "uncommitted file left behind")
}

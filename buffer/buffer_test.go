package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestOpen(t *testing.T) {
	b, err := Open(writeTemp(t, []byte("one\ntwo\nthree\n")))
	require.NoError(t, err)

	require.Equal(t, 3, b.Len())
	assert.Equal(t, []byte("one"), b.Line(0))
	assert.Equal(t, []byte("two"), b.Line(1))
	assert.Equal(t, []byte("three"), b.Line(2))
}

func TestOpenStripsCarriageReturns(t *testing.T) {
	b, err := Open(writeTemp(t, []byte("dos\r\nline\r\n")))
	require.NoError(t, err)

	require.Equal(t, 2, b.Len())
	assert.Equal(t, []byte("dos"), b.Line(0))
	assert.Equal(t, []byte("line"), b.Line(1))
}

func TestOpenFinalLineWithoutNewline(t *testing.T) {
	b, err := Open(writeTemp(t, []byte("first\nlast")))
	require.NoError(t, err)

	require.Equal(t, 2, b.Len())
	assert.Equal(t, []byte("last"), b.Line(1))
}

func TestOpenPreservesInteriorEmptyLines(t *testing.T) {
	b, err := Open(writeTemp(t, []byte("a\n\nb\n")))
	require.NoError(t, err)

	require.Equal(t, 3, b.Len())
	assert.Empty(t, b.Line(1))
}

func TestOpenEmptyFile(t *testing.T) {
	b, err := Open(writeTemp(t, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenUTF16(t *testing.T) {
	// "hi\nyo" encoded UTF-16LE with BOM.
	content := []byte{
		0xFF, 0xFE,
		'h', 0, 'i', 0, '\n', 0,
		'y', 0, 'o', 0,
	}
	b, err := Open(writeTemp(t, content))
	require.NoError(t, err)

	require.Equal(t, 2, b.Len())
	assert.Equal(t, []byte("hi"), b.Line(0))
	assert.Equal(t, []byte("yo"), b.Line(1))
}

func TestOpenUTF8BOM(t *testing.T) {
	b, err := Open(writeTemp(t, []byte{0xEF, 0xBB, 0xBF, 'o', 'k'}))
	require.NoError(t, err)

	require.Equal(t, 1, b.Len())
	assert.Equal(t, []byte("ok"), b.Line(0))
}

func TestLineBounds(t *testing.T) {
	b := New()
	b.Append([]byte("abc"))

	assert.Nil(t, b.Line(-1))
	assert.Nil(t, b.Line(1))
	assert.Equal(t, 0, b.LineLen(-1))
	assert.Equal(t, 0, b.LineLen(5))
	assert.Equal(t, 3, b.LineLen(0))
}

func TestAppendCopies(t *testing.T) {
	b := New()
	src := []byte("data")
	b.Append(src)
	src[0] = 'X'

	assert.Equal(t, []byte("data"), b.Line(0))
}

func TestNormalizeTextPassThrough(t *testing.T) {
	assert.Equal(t, "plain", NormalizeText([]byte("plain")))
	assert.Equal(t, "", NormalizeText(nil))
}

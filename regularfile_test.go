package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegularFile(blockSize int) *RegularFile {
	header := newFileHeader(1, 0)
	return newRegularFile(header, NewHeapDisk(blockSize, 0, 0))
}

func TestRegularFileWriteReadRoundTrip(t *testing.T) {
	rf := newTestRegularFile(4)
	n, err := rf.Write(0, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	buf := make([]byte, 5)
	n, err = rf.Read(0, buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))
}

func TestRegularFileAppend(t *testing.T) {
	rf := newTestRegularFile(4)
	_, err := rf.Append([]byte("foo"))
	require.NoError(t, err)
	_, err = rf.Append([]byte("bar"))
	require.NoError(t, err)

	buf := make([]byte, 6)
	n, err := rf.Read(0, buf)
	require.NoError(t, err)
	assert.Equal(t, "foobar", string(buf[:n]))
}

func TestRegularFileTruncateGrowZeroFills(t *testing.T) {
	rf := newTestRegularFile(4)
	_, err := rf.Write(0, []byte("ab"))
	require.NoError(t, err)
	require.NoError(t, rf.Truncate(6))

	buf := make([]byte, 6)
	n, err := rf.Read(0, buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "ab\x00\x00\x00\x00", string(buf))
}

func TestRegularFileTruncateShrinkThenIdempotent(t *testing.T) {
	rf := newTestRegularFile(4)
	_, err := rf.Write(0, []byte("abcdefgh"))
	require.NoError(t, err)

	require.NoError(t, rf.Truncate(3))
	require.NoError(t, rf.Truncate(3))
	assert.EqualValues(t, 3, rf.Size())

	buf := make([]byte, 3)
	_, err = rf.Read(0, buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf))
}

func TestRegularFileReadPastEndReturnsZero(t *testing.T) {
	rf := newTestRegularFile(4)
	_, err := rf.Write(0, []byte("ab"))
	require.NoError(t, err)

	buf := make([]byte, 4)
	n, err := rf.Read(2, buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRegularFileTransferFrom(t *testing.T) {
	src := newTestRegularFile(4)
	_, err := src.Write(0, []byte("transferred"))
	require.NoError(t, err)

	dst := newTestRegularFile(4)
	_, err = dst.Write(0, []byte("old"))
	require.NoError(t, err)

	require.NoError(t, dst.TransferFrom(src))
	assert.Equal(t, src.Size(), dst.Size())

	buf := make([]byte, len("transferred"))
	n, err := dst.Read(0, buf)
	require.NoError(t, err)
	assert.Equal(t, "transferred", string(buf[:n]))
}

func TestHeapDiskOutOfSpace(t *testing.T) {
	disk := NewHeapDisk(4, 8, 0)
	header := newFileHeader(1, 0)
	rf := newRegularFile(header, disk)

	_, err := rf.Write(0, []byte("12345678")) // exactly fits two blocks
	require.NoError(t, err)

	_, err = rf.Write(8, []byte("9"))
	require.Error(t, err)
	assert.True(t, IsKind(err, OutOfSpace))
}

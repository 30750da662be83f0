package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilesystem(t *testing.T) *Filesystem {
	t.Helper()
	cfg := NewConfiguration(
		UnixPathType(),
		WithRoots("/"),
		WithWorkingDirectory("/work"),
		WithBlockSize(8),
		WithClock(NewFakeClock(time.Unix(0, 0))),
	)
	fs, err := NewFilesystem(cfg)
	require.NoError(t, err)
	return fs
}

// Scenario 1: create, write, read.
func TestCreateWriteRead(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/a", nil))

	h, err := fs.newOutputStream("/work/a", false, false)
	require.NoError(t, err)
	n, err := h.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, h.Close())

	in, err := fs.newInputStream("/work/a")
	require.NoError(t, err)
	buf := make([]byte, 5)
	n, err = in.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))
	require.NoError(t, in.Close())

	info, err := fs.Stat("/work/a")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	assert.True(t, info.IsRegular)
}

// lastModifiedTime/lastAccessTime must reflect the clock, not the handle's
// byte position, however many bytes a single Read/Write call touches.
func TestHandleReadWriteStampsClockNotPosition(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/big", nil))

	big := make([]byte, 10000)
	h, err := fs.newOutputStream("/work/big", false, false)
	require.NoError(t, err)
	_, err = h.Write(big)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	info, err := fs.Stat("/work/big")
	require.NoError(t, err)
	assert.NotEqual(t, FileTime(10000), info.ModTime)
	assert.Greater(t, int64(info.ModTime), int64(0))
	assert.Less(t, int64(info.ModTime), int64(1000))

	in, err := fs.newInputStream("/work/big")
	require.NoError(t, err)
	buf := make([]byte, len(big))
	_, err = in.Read(buf)
	require.NoError(t, err)
	require.NoError(t, in.Close())

	info, err = fs.Stat("/work/big")
	require.NoError(t, err)
	assert.NotEqual(t, FileTime(10000), info.AccessTime)
	assert.Less(t, int64(info.AccessTime), int64(1000))
}

// Scenario 2: truncate with a hole reads as zero, matching the universal
// "bytes in [size, capacity) read as zero" invariant.
func TestTruncateWithHole(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/b", nil))

	h, err := fs.newOutputStream("/work/b", false, false)
	require.NoError(t, err)
	_, err = h.Write([]byte("abcdefgh"))
	require.NoError(t, err)

	require.NoError(t, h.regular.Truncate(3))
	_, err = h.regular.Write(5, []byte("Z"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	in, err := fs.newInputStream("/work/b")
	require.NoError(t, err)
	buf := make([]byte, 6)
	n, err := in.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "abc\x00\x00Z", string(buf))
	require.NoError(t, in.Close())

	info, err := fs.Stat("/work/b")
	require.NoError(t, err)
	assert.Equal(t, int64(6), info.Size)
}

// Scenario 3: a two-hop symlink cycle fails Loop.
func TestSymlinkLoop(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateSymbolicLink("/work/l1", "/work/l2", nil))
	require.NoError(t, fs.CreateSymbolicLink("/work/l2", "/work/l1", nil))

	_, err := fs.newInputStream("/work/l1")
	require.Error(t, err)
	assert.True(t, IsKind(err, Loop))
}

// Scenario 4: atomic move visibility.
func TestAtomicMoveVisibility(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateDirectory("/work/x", nil))
	require.NoError(t, fs.CreateFile("/work/x/f", nil))

	before, err := fs.Stat("/work/x/f")
	require.NoError(t, err)

	require.NoError(t, fs.Move("/work/x", "/work/y", MoveOptions{}))

	after, err := fs.Stat("/work/y/f")
	require.NoError(t, err)
	assert.Equal(t, before.FileKey, after.FileKey)

	_, err = fs.Stat("/work/x/f")
	require.Error(t, err)
	assert.True(t, IsKind(err, NotFound))
}

// Scenario 5: unlink with an open handle still serves reads, and the name
// is gone immediately even though the node survives until close.
func TestUnlinkWithOpenHandle(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/c", nil))

	h, err := fs.newOutputStream("/work/c", false, false)
	require.NoError(t, err)
	_, err = h.Write([]byte("data"))
	require.NoError(t, err)

	require.NoError(t, fs.Delete("/work/c", DeleteOptions{}))

	_, err = fs.Stat("/work/c")
	require.Error(t, err)
	assert.True(t, IsKind(err, NotFound))

	buf := make([]byte, 4)
	n, err := h.regular.Read(0, buf)
	require.NoError(t, err)
	assert.Equal(t, "data", string(buf[:n]))
	require.NoError(t, h.Close())
}

// Scenario 6: wildcard attribute read on a directory.
func TestAttributeWildcard(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateDirectory("/work/d", nil))

	res, err := fs.ReadAttributes("/work/d", "basic:*", FollowLinks)
	require.NoError(t, err)
	obj := res.(interface {
		Keys() []string
	})
	assert.Len(t, obj.Keys(), 9)
}

func TestLinkCountInvariant(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateDirectory("/work/p", nil))
	require.NoError(t, fs.CreateDirectory("/work/p/c1", nil))
	require.NoError(t, fs.CreateDirectory("/work/p/c2", nil))

	res, err := fs.newResolver().lookup(fs.cwd, fs.path("/work/p"), FollowLinks)
	require.NoError(t, err)
	// One link from its parent's entry, plus one per child directory's ".." reference.
	assert.EqualValues(t, 3, res.File.LinkCount())

	require.NoError(t, fs.Delete("/work/p/c1", DeleteOptions{}))
	assert.EqualValues(t, 2, res.File.LinkCount())
}

func TestCopyProducesNewFileKeyMovePreservesIt(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/src", nil))

	before, err := fs.Stat("/work/src")
	require.NoError(t, err)

	require.NoError(t, fs.Copy("/work/src", "/work/copy", CopyOptions{}))
	copied, err := fs.Stat("/work/copy")
	require.NoError(t, err)
	assert.NotEqual(t, before.FileKey, copied.FileKey)

	require.NoError(t, fs.Move("/work/src", "/work/moved", MoveOptions{}))
	moved, err := fs.Stat("/work/moved")
	require.NoError(t, err)
	assert.Equal(t, before.FileKey, moved.FileKey)
}

func TestDeleteNonEmptyDirectoryRefused(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateDirectory("/work/nonempty", nil))
	require.NoError(t, fs.CreateFile("/work/nonempty/f", nil))

	err := fs.Delete("/work/nonempty", DeleteOptions{})
	require.Error(t, err)
	assert.True(t, IsKind(err, DirectoryNotEmpty))
}

func TestCreateFileAlreadyExists(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/dup", nil))
	err := fs.CreateFile("/work/dup", nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, AlreadyExists))
}

func TestHardLinkToDirectoryUnsupported(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateDirectory("/work/dir", nil))
	err := fs.CreateLink("/work/link", "/work/dir")
	require.Error(t, err)
	assert.True(t, IsKind(err, Unsupported))
}

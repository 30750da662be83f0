package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLinkAndLstat(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/target", nil))
	require.NoError(t, fs.CreateSymbolicLink("/work/link", "/work/target", nil))

	target, err := fs.ReadLink("/work/link")
	require.NoError(t, err)
	assert.Equal(t, "/work/target", target)

	info, err := fs.Lstat("/work/link")
	require.NoError(t, err)
	assert.True(t, info.IsSymlink)
	assert.False(t, info.IsRegular)

	followed, err := fs.Stat("/work/link")
	require.NoError(t, err)
	assert.True(t, followed.IsRegular)
}

func TestReadLinkOnNonLinkRejected(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/plain", nil))
	_, err := fs.ReadLink("/work/plain")
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidArgument))
}

func TestDosAttributeView(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/dosfile", nil))

	v, err := fs.GetAttribute("/work/dosfile", "dos:readonly", FollowLinks)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	require.NoError(t, fs.SetAttribute("/work/dosfile", "dos:hidden", true, FollowLinks))
	v, err = fs.GetAttribute("/work/dosfile", "dos:hidden", FollowLinks)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestUnixAttributeView(t *testing.T) {
	fs := newTestFilesystem(t)
	require.NoError(t, fs.CreateFile("/work/unixfile", nil))

	res, err := fs.ReadAttributes("/work/unixfile", "unix:*", FollowLinks)
	require.NoError(t, err)
	obj := res.(interface {
		Keys() []string
	})
	assert.Contains(t, obj.Keys(), "uid")
	assert.Contains(t, obj.Keys(), "mode")
	assert.Contains(t, obj.Keys(), "rdev")
	// unix inherits basic, owner and posix, so its wildcard read pulls their
	// attributes too.
	assert.Contains(t, obj.Keys(), "owner")
	assert.Contains(t, obj.Keys(), "permissions")
	assert.Contains(t, obj.Keys(), "size")

	v, err := fs.GetAttribute("/work/unixfile", "unix:rdev", FollowLinks)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

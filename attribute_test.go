package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttributeService() *AttributeService {
	return NewAttributeService(
		basicProvider{},
		ownerProvider{defaultOwner: UserPrincipal{Name: "alice"}},
		posixProvider{defaultGroup: GroupPrincipal{Name: "staff"}, defaultPerms: FromMode(0o644)},
		unixProvider{},
		dosProvider{},
		userProvider{},
	)
}

func TestParseAttrSpec(t *testing.T) {
	as, err := parseAttrSpec("posix:permissions")
	require.NoError(t, err)
	assert.Equal(t, "posix", as.view)
	assert.Equal(t, "permissions", as.name)

	as, err = parseAttrSpec("size")
	require.NoError(t, err)
	assert.Equal(t, "basic", as.view)
	assert.Equal(t, "size", as.name)

	_, err = parseAttrSpec("a:b:c")
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidFormat))

	_, err = parseAttrSpec("a:b,c")
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidFormat))
}

func TestParseAttrListSpec(t *testing.T) {
	view, names, wildcard, err := parseAttrListSpec("basic:size,isDirectory")
	require.NoError(t, err)
	assert.Equal(t, "basic", view)
	assert.Equal(t, []string{"size", "isDirectory"}, names)
	assert.False(t, wildcard)

	view, _, wildcard, err = parseAttrListSpec("posix:*")
	require.NoError(t, err)
	assert.Equal(t, "posix", view)
	assert.True(t, wildcard)

	_, _, _, err = parseAttrListSpec("posix:*,group")
	require.Error(t, err)
}

func TestAttributeServiceGetSetBasic(t *testing.T) {
	svc := newTestAttributeService()
	header := newFileHeader(1, 100)
	require.NoError(t, svc.SetInitialAttributes(header, 100, nil))

	v, err := svc.GetAttribute(header, "basic:fileKey")
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)

	err = svc.SetAttribute(header, "basic:size", int64(5), false)
	require.Error(t, err)
	assert.True(t, IsKind(err, Unsupported))
}

func TestAttributeServicePosixInheritsBasicAndOwner(t *testing.T) {
	svc := newTestAttributeService()
	header := newFileHeader(1, 0)
	require.NoError(t, svc.SetInitialAttributes(header, 0, nil))

	v, err := svc.GetAttribute(header, "posix:owner")
	require.NoError(t, err)
	assert.Equal(t, UserPrincipal{Name: "alice"}, v)

	v, err = svc.GetAttribute(header, "posix:isDirectory")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestAttributeServiceUnknownView(t *testing.T) {
	svc := newTestAttributeService()
	header := newFileHeader(1, 0)
	_, err := svc.GetAttribute(header, "nope:thing")
	require.Error(t, err)
	assert.True(t, IsKind(err, Unsupported))
}

func TestAttributeServiceUserDefinedDynamic(t *testing.T) {
	svc := newTestAttributeService()
	header := newFileHeader(1, 0)
	require.NoError(t, svc.SetInitialAttributes(header, 0, nil))

	require.NoError(t, svc.SetAttribute(header, "user:tag", []byte("v1"), false))
	v, err := svc.GetAttribute(header, "user:tag")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)
}

func TestPermissionSetModeRoundTrip(t *testing.T) {
	perms := FromMode(0o640)
	assert.Equal(t, 0o640, perms.Mode())
	_, hasWrite := perms[PermGroupWrite]
	assert.False(t, hasWrite)
	_, hasRead := perms[PermGroupRead]
	assert.True(t, hasRead)
}

package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathNormalize(t *testing.T) {
	pt := UnixPathType()
	p := NewPath(pt, "/a/./b/../c")
	assert.Equal(t, "/a/c", p.Normalize().String())
}

func TestPathResolve(t *testing.T) {
	pt := UnixPathType()
	base := NewPath(pt, "/work")
	rel := NewPath(pt, "sub/file")
	assert.Equal(t, "/work/sub/file", base.Resolve(rel).String())

	abs := NewPath(pt, "/other")
	assert.Equal(t, "/other", base.Resolve(abs).String())
}

func TestPathRelativize(t *testing.T) {
	pt := UnixPathType()
	a := NewPath(pt, "/work/a/b")
	b := NewPath(pt, "/work/a/c/d")
	rel, err := a.Relativize(b)
	require.NoError(t, err)
	assert.Equal(t, "../c/d", rel.String())
}

func TestPathGetParentAndFileName(t *testing.T) {
	pt := UnixPathType()
	p := NewPath(pt, "/work/a/b")
	parent, ok := p.GetParent()
	require.True(t, ok)
	assert.Equal(t, "/work/a", parent.String())
	assert.Equal(t, "b", p.GetFileName().String())
}

func TestWindowsPathType(t *testing.T) {
	pt := WindowsPathType()
	p := NewPath(pt, `C:\work\a`)
	assert.True(t, p.IsAbsolute())
	assert.Equal(t, `C:\`, p.RootString())
	assert.Equal(t, 2, p.NameCount())
}

func TestNameTableCaseInsensitive(t *testing.T) {
	nt := newNameTable(NormalizationNone, NormalizationNone, false)
	a := nt.intern("Foo")
	b := nt.intern("FOO")
	assert.True(t, a.Equal(b))
	assert.Equal(t, "Foo", a.String())
	assert.Equal(t, "FOO", b.String())
}

func TestNameTableCaseSensitive(t *testing.T) {
	nt := newNameTable(NormalizationNone, NormalizationNone, true)
	a := nt.intern("Foo")
	b := nt.intern("FOO")
	assert.False(t, a.Equal(b))
}

package vfs

import "strings"

// Path is an immutable sequence of name segments over a configurable
// PathType, with an optional root. It replaces the teacher's string-backed
// Path with pre-split segments, per the specification's path model, so that
// resolve/normalize/relativize never re-parse a rendered string.
type Path struct {
	pt    PathType
	root  string
	names []string
}

// NewPath parses raw according to pt.
func NewPath(pt PathType, raw string) Path {
	root, rest := pt.splitRoot(raw)
	return Path{pt: pt, root: root, names: pt.splitSegments(rest)}
}

// IsAbsolute reports whether this path has a root.
func (p Path) IsAbsolute() bool {
	return p.root != ""
}

// RootString returns the root segment's rendered form, or "" if this path is relative.
func (p Path) RootString() string {
	return p.root
}

// NameCount returns the number of name segments (excluding the root).
func (p Path) NameCount() int {
	return len(p.names)
}

// GetName returns the single-segment relative path at index i.
func (p Path) GetName(i int) Path {
	return Path{pt: p.pt, names: []string{p.names[i]}}
}

// GetFileName returns the last segment as a single-segment relative path, or
// the empty path if this path has no segments.
func (p Path) GetFileName() Path {
	if len(p.names) == 0 {
		return Path{pt: p.pt}
	}
	return Path{pt: p.pt, names: []string{p.names[len(p.names)-1]}}
}

// GetParent returns the path without its last segment. The second result is
// false if there is no parent to return (an empty relative path, or a bare root).
func (p Path) GetParent() (Path, bool) {
	if len(p.names) == 0 {
		return Path{}, false
	}
	return Path{pt: p.pt, root: p.root, names: append([]string{}, p.names[:len(p.names)-1]...)}, true
}

// Subpath returns the slice of segments [begin,end) as a relative path.
func (p Path) Subpath(begin, end int) Path {
	return Path{pt: p.pt, names: append([]string{}, p.names[begin:end]...)}
}

// Resolve appends other to p. If other is absolute, other is returned unchanged.
func (p Path) Resolve(other Path) Path {
	if other.IsAbsolute() {
		return other
	}
	combined := make([]string, 0, len(p.names)+len(other.names))
	combined = append(combined, p.names...)
	combined = append(combined, other.names...)
	return Path{pt: p.pt, root: p.root, names: combined}
}

// ResolveString parses raw with p's PathType and resolves it against p.
func (p Path) ResolveString(raw string) Path {
	return p.Resolve(NewPath(p.pt, raw))
}

// Normalize removes "." segments and collapses ".." against prior
// non-".." segments, without touching the filesystem. A leading ".." in an
// absolute path has no parent to collapse into and is dropped; in a
// relative path it is preserved.
func (p Path) Normalize() Path {
	out := make([]string, 0, len(p.names))
	for _, n := range p.names {
		switch n {
		case ".":
			continue
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
				continue
			}
			if p.root == "" {
				out = append(out, "..")
			}
		default:
			out = append(out, n)
		}
	}
	return Path{pt: p.pt, root: p.root, names: out}
}

// Relativize returns the relative path r such that p.Resolve(r).Normalize()
// denotes the same location as other, provided both share the same root
// (or both are relative).
func (p Path) Relativize(other Path) (Path, error) {
	if p.root != other.root {
		return Path{}, newErrMsg(InvalidArgument, other.String(), "cannot relativize paths with different roots")
	}
	i := 0
	for i < len(p.names) && i < len(other.names) && p.names[i] == other.names[i] {
		i++
	}
	up := len(p.names) - i
	tail := other.names[i:]
	names := make([]string, 0, up+len(tail))
	for j := 0; j < up; j++ {
		names = append(names, "..")
	}
	names = append(names, tail...)
	return Path{pt: p.pt, names: names}, nil
}

// ToAbsolutePath returns p unchanged if already absolute, else resolves it against cwd.
func (p Path) ToAbsolutePath(cwd Path) Path {
	if p.IsAbsolute() {
		return p
	}
	return cwd.Resolve(p)
}

// String renders the path using its PathType's separator and root form.
func (p Path) String() string {
	return p.pt.joinSegments(p.root, p.names)
}

// Equal compares the rendered form of two paths. It does not apply any
// case-folding; name-level equality under a Configuration's policy is the
// nameTable's job, not Path's.
func (p Path) Equal(o Path) bool {
	return p.String() == o.String()
}

// StartsWith reports whether p begins with prefix's rendered form.
func (p Path) StartsWith(prefix Path) bool {
	return strings.HasPrefix(p.String(), prefix.String())
}

package vfs

// LinkOption selects whether a lookup follows a trailing symbolic link.
type LinkOption int

const (
	// FollowLinks resolves a trailing symbolic link to its ultimate target (default).
	FollowLinks LinkOption = iota
	// NoFollowLinks stops at a trailing symbolic link and returns it unresolved.
	NoFollowLinks
)

// LookupResult is the outcome of resolving a Path against a directory tree:
// the resolved File, the Directory that directly contains it, and the Name
// under which it is linked there. When a segment is absent, lookup returns a
// NotFound error together with a result whose Found is false and whose
// Parent and Name are the directory where the walk stopped and the missing
// segment.
type LookupResult struct {
	File   *File
	Parent *Directory
	Name   Name
	Found  bool
}

// resolver walks Paths against a fixed set of root Directories, applying a
// Filesystem's nameTable and following symbolic links up to maxDepth hops
// before failing Loop — the classic bounded-dereference defense against
// cyclic links, following the historical Linux/Jimfs default of 40.
type resolver struct {
	roots    map[string]*Directory
	names    *nameTable
	maxDepth int
}

func newResolver(roots map[string]*Directory, names *nameTable, maxDepth int) *resolver {
	return &resolver{roots: roots, names: names, maxDepth: maxDepth}
}

// lookup resolves path against base (used for relative paths) or against
// the matching root (for absolute paths), following symlinks per opt.
func (r *resolver) lookup(base *Directory, path Path, opt LinkOption) (LookupResult, error) {
	dir, segments, err := r.startingPoint(base, path)
	if err != nil {
		return LookupResult{}, err
	}
	return r.walk(dir, segments, opt, 0)
}

func (r *resolver) startingPoint(base *Directory, path Path) (*Directory, []string, error) {
	if !path.IsAbsolute() {
		if base == nil {
			return nil, nil, newErrMsg(InvalidArgument, path.String(), "relative path with no base directory")
		}
		return base, path.Normalize().names, nil
	}
	root, ok := r.roots[path.RootString()]
	if !ok {
		return nil, nil, newErrMsg(NotFound, path.String(), "unknown root: "+path.RootString())
	}
	return root, path.Normalize().names, nil
}

func (r *resolver) walk(dir *Directory, segments []string, opt LinkOption, depth int) (LookupResult, error) {
	if depth > r.maxDepth {
		return LookupResult{}, newErr(Loop, "")
	}
	for i, seg := range segments {
		switch seg {
		case ".":
			continue
		case "..":
			dir = dir.Parent()
			continue
		}

		name := r.names.intern(seg)
		file, ok := dir.Get(name)
		if !ok {
			return LookupResult{Parent: dir, Name: name, Found: false}, newErr(NotFound, seg)
		}

		last := i == len(segments)-1
		if sl, isLink := file.AsSymbolicLink(); isLink {
			if last && opt == NoFollowLinks {
				return LookupResult{File: file, Parent: dir, Name: name, Found: true}, nil
			}
			target := sl.Target()
			nextDir, nextSegs, err := r.startingPoint(dir, target)
			if err != nil {
				return LookupResult{}, err
			}
			rest := append(append([]string{}, nextSegs...), segments[i+1:]...)
			return r.walk(nextDir, rest, opt, depth+1)
		}

		if last {
			return LookupResult{File: file, Parent: dir, Name: name, Found: true}, nil
		}

		sub, isDir := file.AsDirectory()
		if !isDir {
			return LookupResult{}, newErr(NotADirectory, seg)
		}
		dir = sub
	}
	// Zero segments: path denotes dir itself.
	return LookupResult{File: dir.Header(), Parent: dir.Parent(), Found: true}, nil
}

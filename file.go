package vfs

import "sync"

// File is the shared header for the three node kinds the engine knows about
// — Directory, RegularFile, SymbolicLink — implemented as the tagged variant
// the design notes call for instead of class-based polymorphism: exactly one
// of the three body pointers is non-nil, and every node carries the same
// identity, link count, timestamps and attribute bag regardless of kind.
type File struct {
	id uint64

	// mu guards every field below. It is always the innermost lock: code
	// holding the tree lock or a RegularFile's content lock may acquire mu,
	// never the reverse.
	mu        sync.Mutex
	nlinks    int32
	openCount int32
	createdAt int64
	modifiedAt int64
	accessedAt int64
	attrs     map[string]map[string]interface{} // view -> attribute name -> value

	directory *Directory
	regular   *RegularFile
	symlink   *SymbolicLink
}

func newFileHeader(id uint64, now int64) *File {
	return &File{
		id:         id,
		createdAt:  now,
		modifiedAt: now,
		accessedAt: now,
		attrs:      make(map[string]map[string]interface{}),
	}
}

// ID returns the node's stable identity, surfaced as basic:fileKey.
func (f *File) ID() uint64 {
	return f.id
}

// IsDirectory reports whether this node is a Directory.
func (f *File) IsDirectory() bool {
	return f.directory != nil
}

// IsRegularFile reports whether this node is a RegularFile.
func (f *File) IsRegularFile() bool {
	return f.regular != nil
}

// IsSymbolicLink reports whether this node is a SymbolicLink.
func (f *File) IsSymbolicLink() bool {
	return f.symlink != nil
}

// AsDirectory returns the Directory body and true, or (nil, false) if this
// node is not a Directory.
func (f *File) AsDirectory() (*Directory, bool) {
	return f.directory, f.directory != nil
}

// AsRegularFile returns the RegularFile body and true, or (nil, false).
func (f *File) AsRegularFile() (*RegularFile, bool) {
	return f.regular, f.regular != nil
}

// AsSymbolicLink returns the SymbolicLink body and true, or (nil, false).
func (f *File) AsSymbolicLink() (*SymbolicLink, bool) {
	return f.symlink, f.symlink != nil
}

// LinkCount returns the current number of directory entries (plus root
// self-links, for roots) referencing this node.
func (f *File) LinkCount() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nlinks
}

func (f *File) incLinks(n int32) {
	f.mu.Lock()
	f.nlinks += n
	f.mu.Unlock()
}

func (f *File) touchModified(now int64) {
	f.mu.Lock()
	f.modifiedAt = now
	f.mu.Unlock()
}

func (f *File) touchAccessed(now int64) {
	f.mu.Lock()
	f.accessedAt = now
	f.mu.Unlock()
}

func (f *File) times() (created, modified, accessed int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createdAt, f.modifiedAt, f.accessedAt
}

func (f *File) openHandle() {
	f.mu.Lock()
	f.openCount++
	f.mu.Unlock()
}

// closeHandle decrements the open-handle count and reports whether the node
// is now both unlinked and handle-free, i.e. eligible for finalization.
func (f *File) closeHandle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openCount--
	return f.openCount <= 0 && f.nlinks <= 0
}

// finalizable reports whether the node currently has zero links and zero
// open handles, without mutating either counter.
func (f *File) finalizable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nlinks <= 0 && f.openCount <= 0
}

func (f *File) getAttr(view, name string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.attrs[view]
	if !ok {
		return nil, false
	}
	v, ok := m[name]
	return v, ok
}

func (f *File) setAttr(view, name string, value interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.attrs[view]
	if !ok {
		m = make(map[string]interface{})
		f.attrs[view] = m
	}
	m[name] = value
}

func (f *File) attrNames(view string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.attrs[view]
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	return names
}

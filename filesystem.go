package vfs

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Filesystem is a complete, process-resident, in-memory filesystem
// instance: a directory graph rooted at Configuration.Roots, a block store
// backing every RegularFile's bytes, and the attribute-view framework
// layered over every node. It replaces the teacher's FileSystem interface
// and AbstractFileSystem/Builder assembly of external-collaborator hooks
// with a single self-contained engine, since everything this type touches
// is resident memory rather than a remote or on-disk backend.
type Filesystem struct {
	config Configuration
	names  *nameTable
	attrs  *AttributeService
	disk   *HeapDisk
	clock  Clock
	log    *logrus.Entry

	treeMu sync.RWMutex
	roots  map[string]*Directory
	cwd    *Directory

	nextID uint64
	closed int32
}

// NewFilesystem builds a Filesystem from cfg, creating one empty Directory
// per configured root and setting the working directory to cfg.WorkingDir.
func NewFilesystem(cfg Configuration) (*Filesystem, error) {
	fs := &Filesystem{
		config: cfg,
		names:  newNameTable(cfg.CanonicalForm, cfg.DisplayForm, cfg.CaseSensitive),
		disk:   NewHeapDisk(cfg.BlockSize, cfg.MaxTotalBytes, cfg.MaxCacheBytes),
		clock:  cfg.Clock,
		log:    newLogger(cfg.InstanceID.String()),
		roots:  make(map[string]*Directory),
	}
	fs.attrs = NewAttributeService(
		basicProvider{},
		ownerProvider{defaultOwner: cfg.DefaultOwner},
		posixProvider{defaultGroup: cfg.DefaultGroup, defaultPerms: cfg.DefaultPerms},
		unixProvider{defaultUID: 0, defaultGID: 0},
		dosProvider{},
		userProvider{},
	)

	for _, root := range cfg.Roots {
		dir := newDirectory(fs.newHeader())
		dir.linked = true
		dir.Header().incLinks(1) // a root's self-link
		if err := fs.attrs.SetInitialAttributes(dir.Header(), fs.clock.Now(), nil); err != nil {
			return nil, err
		}
		rootPath := NewPath(cfg.PathType, root)
		fs.roots[rootPath.RootString()] = dir
	}

	cwdPath := NewPath(cfg.PathType, cfg.WorkingDir)
	cwdDir, err := fs.mkdirAllLocked(cwdPath)
	if err != nil {
		return nil, err
	}
	fs.cwd = cwdDir
	fs.log.WithField("workingDir", cfg.WorkingDir).Info("filesystem initialized")
	return fs, nil
}

func (fs *Filesystem) newHeader() *File {
	id := atomic.AddUint64(&fs.nextID, 1)
	return newFileHeader(id, fs.clock.Now())
}

func (fs *Filesystem) newResolver() *resolver {
	return newResolver(fs.roots, fs.names, fs.config.MaxSymlinkDepth)
}

func (fs *Filesystem) checkOpen() error {
	if atomic.LoadInt32(&fs.closed) != 0 {
		return newErr(Closed, "")
	}
	return nil
}

// Close marks the filesystem unusable for further operations. It does not
// need to release any OS resource since everything is process-resident
// memory; subsequent calls are no-ops.
func (fs *Filesystem) Close() error {
	atomic.StoreInt32(&fs.closed, 1)
	fs.log.Info("filesystem closed")
	return nil
}

// path parses raw using the filesystem's configured PathType.
func (fs *Filesystem) path(raw string) Path {
	return NewPath(fs.config.PathType, raw)
}

// mkdirAllLocked creates every missing directory component of path, starting
// from whichever root or cwd path names. Callers must hold treeMu for writing.
func (fs *Filesystem) mkdirAllLocked(path Path) (*Directory, error) {
	base := fs.cwd
	dir, segs, err := fs.newResolver().startingPoint(base, path)
	if err != nil {
		return nil, err
	}
	for _, seg := range segs {
		if seg == "." || seg == ".." {
			continue
		}
		name := fs.names.intern(seg)
		if child, ok := dir.Get(name); ok {
			sub, isDir := child.AsDirectory()
			if !isDir {
				return nil, newErr(NotADirectory, seg)
			}
			dir = sub
			continue
		}
		header := fs.newHeader()
		newDir := newDirectory(header)
		if err := dir.link(name, header); err != nil {
			return nil, err
		}
		dir = newDir
	}
	return dir, nil
}

// CreateFile creates an empty RegularFile at path with the given initial
// attributes, failing AlreadyExists if an entry is already linked there.
func (fs *Filesystem) CreateFile(path string, initialAttrs map[string]interface{}) (err error) {
	defer func() { fs.logOp("CreateFile", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	var parent *Directory
	var name Name
	parent, name, err = fs.resolveParentLocked(fs.path(path))
	if err != nil {
		return err
	}
	if _, exists := parent.Get(name); exists {
		return newErr(AlreadyExists, path)
	}
	header := fs.newHeader()
	newRegularFile(header, fs.disk)
	if err = fs.attrs.SetInitialAttributes(header, fs.clock.Now(), initialAttrs); err != nil {
		return err
	}
	return parent.link(name, header)
}

// CreateDirectory creates an empty Directory at path.
func (fs *Filesystem) CreateDirectory(path string, initialAttrs map[string]interface{}) (err error) {
	defer func() { fs.logOp("CreateDirectory", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	var parent *Directory
	var name Name
	parent, name, err = fs.resolveParentLocked(fs.path(path))
	if err != nil {
		return err
	}
	if _, exists := parent.Get(name); exists {
		return newErr(AlreadyExists, path)
	}
	header := fs.newHeader()
	newDirectory(header)
	if err = fs.attrs.SetInitialAttributes(header, fs.clock.Now(), initialAttrs); err != nil {
		return err
	}
	if err = parent.link(name, header); err != nil {
		return err
	}
	return nil
}

// CreateSymbolicLink creates a symbolic link at path pointing at target.
// Every Filesystem instance supports symlinks unconditionally; there is no
// separate capability flag to check.
func (fs *Filesystem) CreateSymbolicLink(path, target string, initialAttrs map[string]interface{}) (err error) {
	defer func() { fs.logOp("CreateSymbolicLink", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	var parent *Directory
	var name Name
	parent, name, err = fs.resolveParentLocked(fs.path(path))
	if err != nil {
		return err
	}
	if _, exists := parent.Get(name); exists {
		return newErr(AlreadyExists, path)
	}
	header := fs.newHeader()
	newSymbolicLink(header, fs.path(target))
	if err = fs.attrs.SetInitialAttributes(header, fs.clock.Now(), initialAttrs); err != nil {
		return err
	}
	return parent.link(name, header)
}

// CreateLink creates a hard link at path to the existing RegularFile at
// existing. Hard links to directories, or across filesystems, are never
// supported by this engine.
func (fs *Filesystem) CreateLink(path, existing string) (err error) {
	defer func() { fs.logOp("CreateLink", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	existingRes, err := fs.newResolver().lookup(fs.cwd, fs.path(existing), NoFollowLinks)
	if err != nil {
		return err
	}
	if !existingRes.File.IsRegularFile() {
		return newErrMsg(Unsupported, existing, "hard links are only supported for regular files")
	}

	var parent *Directory
	var name Name
	parent, name, err = fs.resolveParentLocked(fs.path(path))
	if err != nil {
		return err
	}
	if _, exists := parent.Get(name); exists {
		return newErr(AlreadyExists, path)
	}
	return parent.link(name, existingRes.File)
}

// resolveParentLocked resolves path's parent directory and returns it along
// with the interned Name of path's final segment. Callers must hold treeMu.
func (fs *Filesystem) resolveParentLocked(p Path) (*Directory, Name, error) {
	if p.NameCount() == 0 {
		return nil, Name{}, newErrMsg(InvalidArgument, p.String(), "path has no final segment")
	}
	parentPath, _ := p.GetParent()
	res, err := fs.newResolver().lookup(fs.cwd, parentPath, FollowLinks)
	if err != nil {
		return nil, Name{}, wrapErr(NotFound, p.String(), err)
	}
	dir, ok := res.File.AsDirectory()
	if !ok {
		return nil, Name{}, newErr(NotADirectory, parentPath.String())
	}
	return dir, fs.names.intern(p.GetFileName().String()), nil
}

// DeleteOptions is accepted by Delete. Delete always removes the entry named
// by path's final segment and never follows a trailing symbolic link, so
// NoFollowLinks does not change its result.
type DeleteOptions struct {
	NoFollowLinks bool
}

func (o DeleteOptions) linkOption() LinkOption {
	if o.NoFollowLinks {
		return NoFollowLinks
	}
	return FollowLinks
}

// Delete unlinks the entry at path from its parent, finalizing the node if
// this was its last link and it has no open handles. A non-empty directory
// is refused with DirectoryNotEmpty.
func (fs *Filesystem) Delete(path string, opts DeleteOptions) (err error) {
	defer func() { fs.logOp("Delete", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	p := fs.path(path)
	parentPath, hasParent := p.GetParent()
	if !hasParent {
		return newErrMsg(InvalidArgument, path, "cannot delete a root")
	}
	res, err := fs.newResolver().lookup(fs.cwd, parentPath, FollowLinks)
	if err != nil {
		return err
	}
	parent, ok := res.File.AsDirectory()
	if !ok {
		return newErr(NotADirectory, parentPath.String())
	}
	name := fs.names.intern(p.GetFileName().String())
	file, _ := parent.Get(name)
	if err = parent.unlink(name); err != nil {
		return err
	}
	if rf, ok := file.AsRegularFile(); ok && file.finalizable() {
		rf.mu.Lock()
		freed := rf.blocks
		rf.blocks, rf.size = nil, 0
		rf.mu.Unlock()
		fs.disk.free(freed)
	}
	return nil
}

// List returns the names of path's direct children, in directory order.
func (fs *Filesystem) List(path string) (names []string, err error) {
	defer func() { fs.logOp("List", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return nil, err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()

	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), FollowLinks)
	if err != nil {
		return nil, err
	}
	dir, ok := res.File.AsDirectory()
	if !ok {
		return nil, newErr(NotADirectory, path)
	}
	entries := dir.snapshot()
	names = make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name.String()
	}
	return names, nil
}

// GetAttribute reads a single attribute ("view:name") from the node at path.
func (fs *Filesystem) GetAttribute(path, spec string, follow LinkOption) (value interface{}, err error) {
	defer func() { fs.logOp("GetAttribute", path+":"+spec, err) }()
	if err = fs.checkOpen(); err != nil {
		return nil, err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()

	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), follow)
	if err != nil {
		return nil, err
	}
	return fs.attrs.GetAttribute(res.File, spec)
}

// SetAttribute writes a single attribute on the node at path.
func (fs *Filesystem) SetAttribute(path, spec string, value interface{}, follow LinkOption) (err error) {
	defer func() { fs.logOp("SetAttribute", path+":"+spec, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()

	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), follow)
	if err != nil {
		return err
	}
	return fs.attrs.SetAttribute(res.File, spec, value, false)
}

// ReadAttributes answers a bulk "view:*" or "view:a,b,c" read for path.
func (fs *Filesystem) ReadAttributes(path, spec string, follow LinkOption) (value interface{}, err error) {
	defer func() { fs.logOp("ReadAttributes", path+":"+spec, err) }()
	if err = fs.checkOpen(); err != nil {
		return nil, err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()

	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), follow)
	if err != nil {
		return nil, err
	}
	return fs.attrs.ReadAttributes(res.File, spec)
}

package vfs

// Handle is what newInputStream/newOutputStream/newByteChannel return: an
// open reference to a RegularFile that increments the node's open-count for
// its lifetime and decrements it on Close, finalizing the node if that was
// its last reference and it is already unlinked.
type Handle struct {
	file     *File
	regular  *RegularFile
	clock    Clock
	position int64
	writable bool
	closed   bool
}

func newHandle(file *File, regular *RegularFile, clock Clock, writable bool) *Handle {
	file.openHandle()
	return &Handle{file: file, regular: regular, clock: clock, writable: writable}
}

// File returns the live node this Handle holds open. It is the node itself,
// not a path snapshot, so a move of the node does not affect the Handle.
// Handle has no accessor for the node's parent directory.
func (h *Handle) File() *File {
	return h.file
}

// Read copies up to len(p) bytes from the current position and advances it.
func (h *Handle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, newErr(Closed, "")
	}
	n, err := h.regular.Read(h.position, p)
	h.position += int64(n)
	h.file.touchAccessed(h.clock.Now())
	return n, err
}

// Write writes p at the current position, advancing it, and extending the
// file if needed. It fails Unsupported if the handle was opened read-only.
func (h *Handle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, newErr(Closed, "")
	}
	if !h.writable {
		return 0, newErrMsg(Unsupported, "", "handle is not writable")
	}
	n, err := h.regular.Write(h.position, p)
	h.position += int64(n)
	h.file.touchModified(h.clock.Now())
	return n, err
}

// Seek repositions the handle. whence follows io.Seeker's convention
// (0=start, 1=current, 2=end).
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if h.closed {
		return 0, newErr(Closed, "")
	}
	var base int64
	switch whence {
	case 0:
		base = 0
	case 1:
		base = h.position
	case 2:
		base = h.regular.Size()
	default:
		return 0, newErr(InvalidArgument, "")
	}
	newPos := base + offset
	if newPos < 0 {
		return 0, newErr(InvalidArgument, "")
	}
	h.position = newPos
	return newPos, nil
}

// Close releases the handle's hold on its node. Closing an already-closed
// handle is a no-op, matching io.Closer convention.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.file.closeHandle() {
		r := h.regular
		r.mu.Lock()
		freed := r.blocks
		r.blocks, r.size = nil, 0
		r.mu.Unlock()
		r.disk.free(freed)
	}
	return nil
}

// newInputStream opens a read-only Handle on the RegularFile at path.
func (fs *Filesystem) newInputStream(path string) (h *Handle, err error) {
	defer func() { fs.logOp("newInputStream", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return nil, err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()

	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), FollowLinks)
	if err != nil {
		return nil, err
	}
	rf, ok := res.File.AsRegularFile()
	if !ok {
		return nil, newErr(IsADirectory, path)
	}
	return newHandle(res.File, rf, fs.clock, false), nil
}

// newOutputStream opens a writable Handle on the RegularFile at path,
// creating it first if createIfMissing is set and it does not yet exist.
// The Handle's Read works as well, which newByteChannel relies on.
func (fs *Filesystem) newOutputStream(path string, createIfMissing, truncate bool) (h *Handle, err error) {
	defer func() { fs.logOp("newOutputStream", path, err) }()
	if err = fs.checkOpen(); err != nil {
		return nil, err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), FollowLinks)
	if err != nil {
		if !IsKind(err, NotFound) || !createIfMissing {
			return nil, err
		}
		parent, name, perr := fs.resolveParentLocked(fs.path(path))
		if perr != nil {
			err = perr
			return nil, err
		}
		header := fs.newHeader()
		rf := newRegularFile(header, fs.disk)
		if err = fs.attrs.SetInitialAttributes(header, fs.clock.Now(), nil); err != nil {
			return nil, err
		}
		if err = parent.link(name, header); err != nil {
			return nil, err
		}
		return newHandle(header, rf, fs.clock, true), nil
	}
	rf, ok := res.File.AsRegularFile()
	if !ok {
		return nil, newErr(IsADirectory, path)
	}
	if truncate {
		if err = rf.Truncate(0); err != nil {
			return nil, err
		}
	}
	return newHandle(res.File, rf, fs.clock, true), nil
}

// newByteChannel opens a read/write Handle on the RegularFile at path,
// optionally creating it.
func (fs *Filesystem) newByteChannel(path string, createIfMissing bool) (*Handle, error) {
	return fs.newOutputStream(path, createIfMissing, false)
}

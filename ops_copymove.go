package vfs

// CopyOptions controls Filesystem.Copy's resolution and overwrite behavior.
type CopyOptions struct {
	NoFollowLinks   bool
	ReplaceExisting bool
	CopyAttributes  bool
}

func (o CopyOptions) linkOption() LinkOption {
	if o.NoFollowLinks {
		return NoFollowLinks
	}
	return FollowLinks
}

// Copy duplicates the node at src to dst. Regular files copy block contents
// via RegularFile.TransferFrom; directories create an empty directory at
// dst (this engine never recurses a directory copy automatically, mirroring
// the Java nio contract it is modeled on). The copy always receives a fresh
// fileKey; CopyAttributes additionally copies every attribute that is both
// readable and settable at creation from every view with a fixed attribute
// set. Attributes of the user view are not copied.
func (fs *Filesystem) Copy(src, dst string, opts CopyOptions) (err error) {
	defer func() { fs.logOp("Copy", src+" -> "+dst, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	srcRes, err := fs.newResolver().lookup(fs.cwd, fs.path(src), opts.linkOption())
	if err != nil {
		return err
	}

	dstParent, dstName, err := fs.resolveParentLocked(fs.path(dst))
	if err != nil {
		return err
	}
	if existing, exists := dstParent.Get(dstName); exists {
		if !opts.ReplaceExisting {
			return newErr(AlreadyExists, dst)
		}
		existingDir, isDir := existing.AsDirectory()
		if isDir && !existingDir.Empty() {
			return newErr(DirectoryNotEmpty, dst)
		}
		if err := dstParent.unlink(dstName); err != nil {
			return err
		}
	}

	header := fs.newHeader()
	switch {
	case srcRes.File.IsRegularFile():
		srcRF, _ := srcRes.File.AsRegularFile()
		dstRF := newRegularFile(header, fs.disk)
		if err := dstRF.TransferFrom(srcRF); err != nil {
			return err
		}
	case srcRes.File.IsDirectory():
		newDirectory(header)
	case srcRes.File.IsSymbolicLink():
		srcLink, _ := srcRes.File.AsSymbolicLink()
		newSymbolicLink(header, srcLink.Target())
	}

	initial := map[string]interface{}{}
	if err := fs.attrs.SetInitialAttributes(header, fs.clock.Now(), initial); err != nil {
		return err
	}
	if opts.CopyAttributes {
		copyReadableAttributes(fs.attrs, srcRes.File, header)
	}
	if err := dstParent.link(dstName, header); err != nil {
		return err
	}
	return nil
}

func copyReadableAttributes(attrs *AttributeService, src, dst *File) {
	for view, p := range attrs.providers {
		for name, meta := range p.Attributes() {
			if !meta.Readable || !meta.SettableOnCreate {
				continue
			}
			if v, ok := p.Get(src, name); ok {
				_ = attrs.SetAttribute(dst, view+":"+name, v, true)
			}
		}
	}
}

// MoveOptions controls Filesystem.Move's overwrite behavior. ATOMIC_MOVE
// is implicit: every move performed by this engine is atomic under the tree
// write lock, since both the unlink and the re-link happen inside one
// critical section.
type MoveOptions struct {
	ReplaceExisting bool
}

// Move relinks the node at src under dst's parent and name, unlinking it
// from its old parent, all under one acquisition of the tree write lock so
// the change is atomic with respect to any concurrent reader or writer.
// Moving a non-empty directory is allowed; the subtree moves with it.
func (fs *Filesystem) Move(src, dst string, opts MoveOptions) (err error) {
	defer func() { fs.logOp("Move", src+" -> "+dst, err) }()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	fs.treeMu.Lock()
	defer fs.treeMu.Unlock()

	srcPath := fs.path(src)
	srcParent, srcName, err := fs.resolveParentLocked(srcPath)
	if err != nil {
		return err
	}
	file, ok := srcParent.Get(srcName)
	if !ok {
		return newErr(NotFound, src)
	}

	dstParent, dstName, err := fs.resolveParentLocked(fs.path(dst))
	if err != nil {
		return err
	}
	if existing, exists := dstParent.Get(dstName); exists {
		if !opts.ReplaceExisting {
			return newErr(AlreadyExists, dst)
		}
		existingDir, isDir := existing.AsDirectory()
		if isDir && !existingDir.Empty() {
			return newErr(DirectoryNotEmpty, dst)
		}
		if err := dstParent.unlink(dstName); err != nil {
			return err
		}
	}

	if _, err := srcParent.unlinkForMove(srcName); err != nil {
		return err
	}
	if err := dstParent.link(dstName, file); err != nil {
		// Best-effort rollback: relink at the original location so a failed
		// move never leaves the node unreachable.
		_ = srcParent.link(srcName, file)
		return wrapErr(AtomicViolation, dst, err)
	}
	return nil
}

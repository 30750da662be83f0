package vfs

// FileInfo is the convenience read-out of a node's basic attributes, the
// shape Stat/Lstat return instead of making every caller assemble one
// attribute at a time via ReadAttributes("basic:*").
type FileInfo struct {
	Size         int64
	ModTime      FileTime
	AccessTime   FileTime
	CreationTime FileTime
	IsDir        bool
	IsRegular    bool
	IsSymlink    bool
	FileKey      uint64
}

func fileInfoOf(file *File) FileInfo {
	created, modified, accessed := file.times()
	var size int64
	if rf, ok := file.AsRegularFile(); ok {
		size = rf.Size()
	}
	return FileInfo{
		Size:         size,
		ModTime:      FileTime(modified),
		AccessTime:   FileTime(accessed),
		CreationTime: FileTime(created),
		IsDir:        file.IsDirectory(),
		IsRegular:    file.IsRegularFile(),
		IsSymlink:    file.IsSymbolicLink(),
		FileKey:      file.ID(),
	}
}

// Stat resolves path, following a trailing symbolic link, and returns its FileInfo.
func (fs *Filesystem) Stat(path string) (FileInfo, error) {
	if err := fs.checkOpen(); err != nil {
		return FileInfo{}, err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()
	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), FollowLinks)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfoOf(res.File), nil
}

// Lstat resolves path without following a trailing symbolic link.
func (fs *Filesystem) Lstat(path string) (FileInfo, error) {
	if err := fs.checkOpen(); err != nil {
		return FileInfo{}, err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()
	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), NoFollowLinks)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfoOf(res.File), nil
}

// ReadLink returns the target path recorded at a symbolic link.
func (fs *Filesystem) ReadLink(path string) (string, error) {
	if err := fs.checkOpen(); err != nil {
		return "", err
	}
	fs.treeMu.RLock()
	defer fs.treeMu.RUnlock()
	res, err := fs.newResolver().lookup(fs.cwd, fs.path(path), NoFollowLinks)
	if err != nil {
		return "", err
	}
	link, ok := res.File.AsSymbolicLink()
	if !ok {
		return "", newErrMsg(InvalidArgument, path, "not a symbolic link")
	}
	return link.Target().String(), nil
}

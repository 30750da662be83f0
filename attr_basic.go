package vfs

// basicProvider reports the 9 attributes every node has regardless of kind:
// the four java.nio.file "basic" attributes plus the four is* kind
// predicates plus fileKey.
type basicProvider struct{}

func (basicProvider) Name() string       { return "basic" }
func (basicProvider) Inherits() []string { return nil }

func (basicProvider) Attributes() map[string]AttrMeta {
	return map[string]AttrMeta{
		"lastModifiedTime": {Readable: true, Writable: true, SettableOnCreate: true},
		"lastAccessTime":   {Readable: true, Writable: true, SettableOnCreate: true},
		"creationTime":     {Readable: true, Writable: true, SettableOnCreate: true},
		"size":             {Readable: true},
		"isRegularFile":    {Readable: true},
		"isDirectory":      {Readable: true},
		"isSymbolicLink":   {Readable: true},
		"isOther":          {Readable: true},
		"fileKey":          {Readable: true},
	}
}

func (basicProvider) Get(file *File, name string) (interface{}, bool) {
	created, modified, accessed := file.times()
	switch name {
	case "lastModifiedTime":
		return FileTime(modified), true
	case "lastAccessTime":
		return FileTime(accessed), true
	case "creationTime":
		return FileTime(created), true
	case "size":
		if rf, ok := file.AsRegularFile(); ok {
			return rf.Size(), true
		}
		return int64(0), true
	case "isRegularFile":
		return file.IsRegularFile(), true
	case "isDirectory":
		return file.IsDirectory(), true
	case "isSymbolicLink":
		return file.IsSymbolicLink(), true
	case "isOther":
		return false, true
	case "fileKey":
		return file.ID(), true
	}
	return nil, false
}

func (basicProvider) Set(file *File, name string, value interface{}, onCreate bool) error {
	switch name {
	case "lastModifiedTime":
		file.touchModified(int64(mustFileTime(value)))
		return nil
	case "lastAccessTime":
		file.touchAccessed(int64(mustFileTime(value)))
		return nil
	case "creationTime":
		file.mu.Lock()
		file.createdAt = int64(mustFileTime(value))
		file.mu.Unlock()
		return nil
	}
	return newAttrErr(Unsupported, "", "basic:"+name, "attribute is not writable")
}

func (basicProvider) SetDefaults(file *File, now int64) {
	// times are already initialized by newFileHeader; nothing more to do.
}

func mustFileTime(v interface{}) FileTime {
	switch t := v.(type) {
	case FileTime:
		return t
	case int64:
		return FileTime(t)
	default:
		return 0
	}
}

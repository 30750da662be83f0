package vfs

// unixProvider adds the handful of unix-specific numeric fields no posix
// view exposes: uid/gid as raw numbers, mode, inode-ish identifiers, and a
// change-time. ctime is not tracked separately; it reports the node's
// modification time.
type unixProvider struct {
	defaultUID, defaultGID int
}

func (unixProvider) Name() string       { return "unix" }
func (unixProvider) Inherits() []string { return []string{"basic", "owner", "posix"} }

func (unixProvider) Attributes() map[string]AttrMeta {
	return map[string]AttrMeta{
		"uid":   {Readable: true, Writable: true, SettableOnCreate: true},
		"gid":   {Readable: true, Writable: true, SettableOnCreate: true},
		"mode":  {Readable: true, Writable: true, SettableOnCreate: true},
		"ctime": {Readable: true},
		"ino":   {Readable: true},
		"dev":   {Readable: true},
		"rdev":  {Readable: true},
		"nlink": {Readable: true},
	}
}

func (p unixProvider) Get(file *File, name string) (interface{}, bool) {
	switch name {
	case "uid":
		if v, ok := file.getAttr("unix", "uid"); ok {
			return v, true
		}
		return p.defaultUID, true
	case "gid":
		if v, ok := file.getAttr("unix", "gid"); ok {
			return v, true
		}
		return p.defaultGID, true
	case "mode":
		if v, ok := file.getAttr("unix", "mode"); ok {
			return v, true
		}
		return 0, true
	case "ctime":
		_, modified, _ := file.times()
		return FileTime(modified), true
	case "ino":
		return file.ID(), true
	case "dev":
		return 0, true
	case "rdev":
		return 0, true
	case "nlink":
		return file.LinkCount(), true
	}
	return nil, false
}

func (unixProvider) Set(file *File, name string, value interface{}, onCreate bool) error {
	switch name {
	case "uid", "gid", "mode":
		n, ok := toInt(value)
		if !ok {
			return newAttrErr(InvalidArgument, "", "unix:"+name, "value must be an int")
		}
		file.setAttr("unix", name, n)
		return nil
	}
	return newAttrErr(Unsupported, "", "unix:"+name, "attribute is not writable")
}

func (p unixProvider) SetDefaults(file *File, now int64) {
	file.setAttr("unix", "uid", p.defaultUID)
	file.setAttr("unix", "gid", p.defaultGID)
	file.setAttr("unix", "mode", 0)
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	}
	return 0, false
}

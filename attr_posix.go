package vfs

// posixProvider layers group ownership and a permission set on top of
// basic and owner, the way java.nio.file.attribute.PosixFileAttributeView
// does for POSIX filesystems.
type posixProvider struct {
	defaultGroup GroupPrincipal
	defaultPerms PermissionSet
}

func (posixProvider) Name() string       { return "posix" }
func (posixProvider) Inherits() []string { return []string{"basic", "owner"} }

func (posixProvider) Attributes() map[string]AttrMeta {
	return map[string]AttrMeta{
		"group":       {Readable: true, Writable: true, SettableOnCreate: true},
		"permissions": {Readable: true, Writable: true, SettableOnCreate: true},
	}
}

func (p posixProvider) Get(file *File, name string) (interface{}, bool) {
	switch name {
	case "group":
		if v, ok := file.getAttr("posix", "group"); ok {
			return v, true
		}
		return p.defaultGroup, true
	case "permissions":
		if v, ok := file.getAttr("posix", "permissions"); ok {
			return v, true
		}
		return p.defaultPerms, true
	}
	return nil, false
}

func (posixProvider) Set(file *File, name string, value interface{}, onCreate bool) error {
	switch name {
	case "group":
		g, ok := value.(GroupPrincipal)
		if !ok {
			return newAttrErr(InvalidArgument, "", "posix:group", "value must be a GroupPrincipal")
		}
		file.setAttr("posix", "group", g)
		return nil
	case "permissions":
		perms, ok := value.(PermissionSet)
		if !ok {
			return newAttrErr(InvalidArgument, "", "posix:permissions", "value must be a PermissionSet")
		}
		file.setAttr("posix", "permissions", perms)
		return nil
	}
	return newAttrErr(Unsupported, "", "posix:"+name, "no such attribute")
}

func (p posixProvider) SetDefaults(file *File, now int64) {
	file.setAttr("posix", "group", p.defaultGroup)
	file.setAttr("posix", "permissions", p.defaultPerms)
}

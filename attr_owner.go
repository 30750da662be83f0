package vfs

// ownerProvider reports a node's owning principal. Every node starts owned
// by the filesystem's configured default owner.
type ownerProvider struct {
	defaultOwner UserPrincipal
}

func (ownerProvider) Name() string       { return "owner" }
func (ownerProvider) Inherits() []string { return nil }

func (ownerProvider) Attributes() map[string]AttrMeta {
	return map[string]AttrMeta{
		"owner": {Readable: true, Writable: true, SettableOnCreate: true},
	}
}

func (p ownerProvider) Get(file *File, name string) (interface{}, bool) {
	if name != "owner" {
		return nil, false
	}
	if v, ok := file.getAttr("owner", "owner"); ok {
		return v, true
	}
	return p.defaultOwner, true
}

func (ownerProvider) Set(file *File, name string, value interface{}, onCreate bool) error {
	if name != "owner" {
		return newAttrErr(Unsupported, "", "owner:"+name, "no such attribute")
	}
	owner, ok := value.(UserPrincipal)
	if !ok {
		return newAttrErr(InvalidArgument, "", "owner:owner", "value must be a UserPrincipal")
	}
	file.setAttr("owner", "owner", owner)
	return nil
}

func (p ownerProvider) SetDefaults(file *File, now int64) {
	file.setAttr("owner", "owner", p.defaultOwner)
}

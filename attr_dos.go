package vfs

// dosProvider implements the four boolean flags Windows filesystems carry
// alongside the basic attributes.
type dosProvider struct{}

func (dosProvider) Name() string       { return "dos" }
func (dosProvider) Inherits() []string { return []string{"basic"} }

func (dosProvider) Attributes() map[string]AttrMeta {
	return map[string]AttrMeta{
		"readonly": {Readable: true, Writable: true, SettableOnCreate: true},
		"hidden":   {Readable: true, Writable: true, SettableOnCreate: true},
		"archive":  {Readable: true, Writable: true, SettableOnCreate: true},
		"system":   {Readable: true, Writable: true, SettableOnCreate: true},
	}
}

func (dosProvider) Get(file *File, name string) (interface{}, bool) {
	switch name {
	case "readonly", "hidden", "archive", "system":
		v, ok := file.getAttr("dos", name)
		if !ok {
			return false, true
		}
		return v, true
	}
	return nil, false
}

func (dosProvider) Set(file *File, name string, value interface{}, onCreate bool) error {
	switch name {
	case "readonly", "hidden", "archive", "system":
		b, ok := value.(bool)
		if !ok {
			return newAttrErr(InvalidArgument, "", "dos:"+name, "value must be a bool")
		}
		file.setAttr("dos", name, b)
		return nil
	}
	return newAttrErr(Unsupported, "", "dos:"+name, "no such attribute")
}

func (dosProvider) SetDefaults(file *File, now int64) {
	for _, name := range []string{"readonly", "hidden", "archive", "system"} {
		file.setAttr("dos", name, false)
	}
}

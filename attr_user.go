package vfs

// userProvider implements java.nio.file.attribute.UserDefinedFileAttributeView:
// arbitrary caller-named byte-array attributes, not known in advance. It is
// the one AttributeProvider that also implements dynamicAttributeProvider.
type userProvider struct{}

func (userProvider) Name() string                  { return "user" }
func (userProvider) Inherits() []string             { return nil }
func (userProvider) Attributes() map[string]AttrMeta { return nil }

func (userProvider) DynamicMeta() AttrMeta {
	return AttrMeta{Readable: true, Writable: true, SettableOnCreate: true}
}

func (userProvider) DynamicNames(file *File) []string {
	return file.attrNames("user")
}

func (userProvider) Get(file *File, name string) (interface{}, bool) {
	return file.getAttr("user", name)
}

func (userProvider) Set(file *File, name string, value interface{}, onCreate bool) error {
	buf, ok := value.([]byte)
	if !ok {
		return newAttrErr(InvalidArgument, "", "user:"+name, "value must be a []byte")
	}
	file.setAttr("user", name, buf)
	return nil
}

func (userProvider) SetDefaults(file *File, now int64) {}

package vfs

import (
	"github.com/worldiety/xobj"
)

// AttrMeta describes one attribute's read/write shape within a view.
type AttrMeta struct {
	Readable         bool
	Writable         bool
	SettableOnCreate bool
}

// AttributeProvider implements one named attribute view (basic, owner,
// posix, unix, dos, user, ...). A provider may Inherit other views, meaning
// its attribute set is queried after the view's own when a wildcard read is
// requested or an attribute name is not found directly.
type AttributeProvider interface {
	Name() string
	Inherits() []string
	Attributes() map[string]AttrMeta
	Get(file *File, name string) (interface{}, bool)
	Set(file *File, name string, value interface{}, onCreate bool) error
	// SetDefaults populates whatever attributes this view owns at node
	// creation time, before any caller-supplied initial attributes are applied.
	SetDefaults(file *File, now int64)
}

// dynamicAttributeProvider is implemented by views whose attribute names
// are not known in advance (currently only "user"): any name is valid, with
// a single uniform AttrMeta, and DynamicNames reports what is actually
// stored on a given node for wildcard reads.
type dynamicAttributeProvider interface {
	AttributeProvider
	DynamicMeta() AttrMeta
	DynamicNames(file *File) []string
}

// AttributeService is the registry of installed views, resolving spec
// strings ("view:name", "view:*", "view:a,b,c") against them the way
// java.nio.file.attribute does, but with Go errors instead of checked
// exceptions.
type AttributeService struct {
	providers map[string]AttributeProvider
}

// NewAttributeService builds a registry from the given providers, keyed by
// their own declared Name().
func NewAttributeService(providers ...AttributeProvider) *AttributeService {
	s := &AttributeService{providers: make(map[string]AttributeProvider, len(providers))}
	for _, p := range providers {
		s.providers[p.Name()] = p
	}
	return s
}

func (s *AttributeService) provider(view string) (AttributeProvider, bool) {
	p, ok := s.providers[view]
	return p, ok
}

// resolve finds the provider (view's own, or one it inherits, transitively)
// that actually owns the named attribute.
func (s *AttributeService) resolve(view, name string) (AttributeProvider, error) {
	p, ok := s.provider(view)
	if !ok {
		return nil, newErrMsg(Unsupported, "", "unsupported attribute view: "+view)
	}
	var walk func(AttributeProvider, map[string]bool) (AttributeProvider, bool)
	walk = func(p AttributeProvider, seen map[string]bool) (AttributeProvider, bool) {
		if seen[p.Name()] {
			return nil, false
		}
		seen[p.Name()] = true
		if _, ok := p.Attributes()[name]; ok {
			return p, true
		}
		if dp, ok := p.(dynamicAttributeProvider); ok {
			_ = dp
			return p, true
		}
		for _, inh := range p.Inherits() {
			if ip, ok := s.provider(inh); ok {
				if found, ok := walk(ip, seen); ok {
					return found, true
				}
			}
		}
		return nil, false
	}
	found, ok := walk(p, make(map[string]bool))
	if !ok {
		return nil, newAttrErr(InvalidAttribute, "", view+":"+name, "no such attribute")
	}
	return found, nil
}

// GetAttribute reads a single "view:name" (or bare "name", defaulting to
// view "basic") attribute.
func (s *AttributeService) GetAttribute(file *File, spec string) (interface{}, error) {
	as, err := parseAttrSpec(spec)
	if err != nil {
		return nil, err
	}
	p, err := s.resolve(as.view, as.name)
	if err != nil {
		return nil, err
	}
	meta := attrMetaFor(p, as.name)
	if !meta.Readable {
		return nil, newAttrErr(Unsupported, "", spec, "attribute is not readable")
	}
	v, ok := p.Get(file, as.name)
	if !ok {
		return nil, newAttrErr(InvalidAttribute, "", spec, "no such attribute")
	}
	return v, nil
}

// SetAttribute writes a single "view:name" attribute. onCreate relaxes the
// check to SettableOnCreate attributes, used while a node is still being
// constructed and before it is linked into any directory.
func (s *AttributeService) SetAttribute(file *File, spec string, value interface{}, onCreate bool) error {
	as, err := parseAttrSpec(spec)
	if err != nil {
		return err
	}
	p, err := s.resolve(as.view, as.name)
	if err != nil {
		return err
	}
	meta := attrMetaFor(p, as.name)
	if onCreate {
		if !meta.SettableOnCreate {
			return newAttrErr(Unsupported, "", spec, "attribute is not settable at creation")
		}
	} else if !meta.Writable {
		return newAttrErr(Unsupported, "", spec, "attribute is not writable")
	}
	return p.Set(file, as.name, value, onCreate)
}

func attrMetaFor(p AttributeProvider, name string) AttrMeta {
	if meta, ok := p.Attributes()[name]; ok {
		return meta
	}
	if dp, ok := p.(dynamicAttributeProvider); ok {
		return dp.DynamicMeta()
	}
	return AttrMeta{}
}

// ReadAttributes answers a "view:a,b,c" or "view:*" bulk read, returning an
// ordered xobj.Obj mirroring the teacher's Entry.Unwrap() shape.
func (s *AttributeService) ReadAttributes(file *File, spec string) (xobj.Obj, error) {
	view, names, wildcard, err := parseAttrListSpec(spec)
	if err != nil {
		return xobj.Obj{}, err
	}
	p, ok := s.provider(view)
	if !ok {
		return xobj.Obj{}, newErrMsg(Unsupported, "", "unsupported attribute view: "+view)
	}

	out := xobj.NewObj()
	if wildcard {
		seen := make(map[string]bool)
		var walk func(AttributeProvider)
		walk = func(p AttributeProvider) {
			if seen[p.Name()] {
				return
			}
			seen[p.Name()] = true
			for name, meta := range p.Attributes() {
				if !meta.Readable {
					continue
				}
				if v, ok := p.Get(file, name); ok {
					out = out.Put(name, v)
				}
			}
			if dp, ok := p.(dynamicAttributeProvider); ok {
				for _, name := range dp.DynamicNames(file) {
					if v, ok := p.Get(file, name); ok {
						out = out.Put(name, v)
					}
				}
			}
			for _, inh := range p.Inherits() {
				if ip, ok := s.provider(inh); ok {
					walk(ip)
				}
			}
		}
		walk(p)
		return out, nil
	}

	for _, name := range names {
		rp, err := s.resolve(view, name)
		if err != nil {
			return xobj.Obj{}, err
		}
		v, ok := rp.Get(file, name)
		if !ok {
			return xobj.Obj{}, newAttrErr(InvalidAttribute, "", view+":"+name, "no such attribute")
		}
		out = out.Put(name, v)
	}
	return out, nil
}

// SetInitialAttributes applies caller-supplied creation-time attributes on
// top of every installed view's defaults, in provider-registration-agnostic
// (map iteration) order; callers that need deterministic precedence between
// conflicting specs should pass them pre-validated and non-overlapping.
func (s *AttributeService) SetInitialAttributes(file *File, now int64, initial map[string]interface{}) error {
	for _, p := range s.providers {
		p.SetDefaults(file, now)
	}
	for spec, value := range initial {
		if err := s.SetAttribute(file, spec, value, true); err != nil {
			return err
		}
	}
	return nil
}

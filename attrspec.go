package vfs

import "strings"

// attrSpec is a parsed "view:name" attribute designator.
type attrSpec struct {
	view string
	name string
}

func parseAttrSpec(spec string) (attrSpec, error) {
	if !strings.Contains(spec, ":") {
		if spec == "" || strings.Contains(spec, ",") {
			return attrSpec{}, newErrMsg(InvalidFormat, "", "malformed attribute spec: "+spec)
		}
		return attrSpec{view: "basic", name: spec}, nil
	}
	parts := strings.Split(spec, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return attrSpec{}, newErrMsg(InvalidFormat, "", "malformed attribute spec: "+spec)
	}
	if strings.Contains(parts[1], ",") {
		return attrSpec{}, newErrMsg(InvalidFormat, "", "single-attribute spec may not contain a comma: "+spec)
	}
	return attrSpec{view: parts[0], name: parts[1]}, nil
}

// parseAttrListSpec parses "view:a,b,c" or "view:*". The wildcard must stand
// alone; mixing it with other names is a format error.
func parseAttrListSpec(spec string) (view string, names []string, wildcard bool, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", nil, false, newErrMsg(InvalidFormat, "", "malformed attribute spec: "+spec)
	}
	view = parts[0]
	raw := strings.Split(parts[1], ",")
	for _, n := range raw {
		if n == "*" {
			if len(raw) != 1 {
				return "", nil, false, newErrMsg(InvalidFormat, "", "wildcard must stand alone: "+spec)
			}
			return view, nil, true, nil
		}
		if n == "" {
			return "", nil, false, newErrMsg(InvalidFormat, "", "empty attribute name in: "+spec)
		}
		names = append(names, n)
	}
	return view, names, false, nil
}

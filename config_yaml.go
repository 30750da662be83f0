package vfs

import (
	"gopkg.in/yaml.v3"
)

// configDoc is the YAML-facing shape of a Configuration: plain strings and
// numbers only, so a config file never needs to know about Clock or
// uuid.UUID. MarshalConfiguration/UnmarshalConfiguration translate to and
// from Configuration.
type configDoc struct {
	Flavor          string   `yaml:"flavor"`
	WorkingDir      string   `yaml:"workingDir"`
	Roots           []string `yaml:"roots"`
	CaseSensitive   bool     `yaml:"caseSensitive"`
	BlockSize       int      `yaml:"blockSize"`
	MaxTotalBytes   int64    `yaml:"maxTotalBytes"`
	MaxCacheBytes   int64    `yaml:"maxCacheBytes"`
	MaxSymlinkDepth int      `yaml:"maxSymlinkDepth"`
	DefaultOwner    string   `yaml:"defaultOwner"`
	DefaultGroup    string   `yaml:"defaultGroup"`
	DefaultMode     int      `yaml:"defaultMode"`
}

func flavorFromString(s string) Flavor {
	switch s {
	case "osx":
		return OSX
	case "windows":
		return Windows
	default:
		return Unix
	}
}

func pathTypeFor(f Flavor) PathType {
	switch f {
	case OSX:
		return OSXPathType()
	case Windows:
		return WindowsPathType()
	default:
		return UnixPathType()
	}
}

// MarshalConfiguration renders a Configuration to its serializable document form.
func MarshalConfiguration(c Configuration) ([]byte, error) {
	doc := configDoc{
		Flavor:          c.PathType.Flavor.String(),
		WorkingDir:      c.WorkingDir,
		Roots:           c.Roots,
		CaseSensitive:   c.CaseSensitive,
		BlockSize:       c.BlockSize,
		MaxTotalBytes:   c.MaxTotalBytes,
		MaxCacheBytes:   c.MaxCacheBytes,
		MaxSymlinkDepth: c.MaxSymlinkDepth,
		DefaultOwner:    c.DefaultOwner.Name,
		DefaultGroup:    c.DefaultGroup.Name,
		DefaultMode:     c.DefaultPerms.Mode(),
	}
	return yaml.Marshal(doc)
}

// UnmarshalConfiguration parses a YAML document into a Configuration. An
// omitted flavor, workingDir, roots, blockSize, maxSymlinkDepth,
// defaultOwner or defaultGroup gets the same default NewConfiguration uses.
// caseSensitive, maxTotalBytes, maxCacheBytes and defaultMode are taken as
// written, so omitting them yields false, 0, 0 and an empty permission set
// rather than NewConfiguration's defaults.
func UnmarshalConfiguration(data []byte) (Configuration, error) {
	var doc configDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Configuration{}, wrapErr(InvalidFormat, "", err)
	}
	pt := pathTypeFor(flavorFromString(doc.Flavor))
	opts := []Option{}
	if doc.WorkingDir != "" {
		opts = append(opts, WithWorkingDirectory(doc.WorkingDir))
	}
	if len(doc.Roots) > 0 {
		opts = append(opts, WithRoots(doc.Roots...))
	}
	opts = append(opts, WithCaseSensitivity(doc.CaseSensitive))
	if doc.BlockSize > 0 {
		opts = append(opts, WithBlockSize(doc.BlockSize))
	}
	opts = append(opts, WithMaxSize(doc.MaxTotalBytes, doc.MaxCacheBytes))
	if doc.MaxSymlinkDepth > 0 {
		opts = append(opts, WithMaxSymlinkDepth(doc.MaxSymlinkDepth))
	}
	owner := UserPrincipal{Name: doc.DefaultOwner}
	group := GroupPrincipal{Name: doc.DefaultGroup}
	if owner.Name == "" {
		owner.Name = "user"
	}
	if group.Name == "" {
		group.Name = "group"
	}
	opts = append(opts, WithDefaultOwnership(owner, group, FromMode(doc.DefaultMode)))
	return NewConfiguration(pt, opts...), nil
}

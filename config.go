package vfs

import (
	"github.com/google/uuid"
)

// Configuration describes everything about a Filesystem instance that must
// be fixed at creation time: its path syntax, name normalization and
// case-sensitivity policy, default owner/group/permissions, block sizing,
// and symlink-loop bound. It mirrors the teacher's Builder in spirit — a
// staged assembly of an otherwise-immutable object — but follows the
// functional-options idiom the rest of the example pack uses for
// constructor configuration instead of the teacher's chained-method Builder.
type Configuration struct {
	PathType        PathType
	WorkingDir      string
	Roots           []string
	CanonicalForm   NormalizationForm
	DisplayForm     NormalizationForm
	CaseSensitive   bool
	BlockSize       int
	MaxTotalBytes   int64
	MaxCacheBytes   int64
	MaxSymlinkDepth int
	DefaultOwner    UserPrincipal
	DefaultGroup    GroupPrincipal
	DefaultPerms    PermissionSet
	Clock           Clock
	InstanceID      uuid.UUID
}

// Option configures a Configuration during NewConfiguration.
type Option func(*Configuration)

// WithWorkingDirectory sets the filesystem's initial current working directory.
func WithWorkingDirectory(dir string) Option {
	return func(c *Configuration) { c.WorkingDir = dir }
}

// WithRoots sets the root directories the filesystem exposes (e.g. "/" for
// Unix, "C:\", "D:\" for Windows).
func WithRoots(roots ...string) Option {
	return func(c *Configuration) { c.Roots = roots }
}

// WithNameNormalization sets the Unicode form names are canonicalized and
// displayed in.
func WithNameNormalization(canonical, display NormalizationForm) Option {
	return func(c *Configuration) {
		c.CanonicalForm = canonical
		c.DisplayForm = display
	}
}

// WithCaseSensitivity overrides the PathType's default case-sensitivity policy.
func WithCaseSensitivity(sensitive bool) Option {
	return func(c *Configuration) { c.CaseSensitive = sensitive }
}

// WithBlockSize sets the byte size of each block the HeapDisk allocates.
func WithBlockSize(size int) Option {
	return func(c *Configuration) { c.BlockSize = size }
}

// WithMaxSize bounds the total resident bytes and the retained free-list
// cache bytes the HeapDisk will hold.
func WithMaxSize(maxTotalBytes, maxCacheBytes int64) Option {
	return func(c *Configuration) {
		c.MaxTotalBytes = maxTotalBytes
		c.MaxCacheBytes = maxCacheBytes
	}
}

// WithMaxSymlinkDepth bounds how many symlink hops a single lookup will
// follow before failing with Loop.
func WithMaxSymlinkDepth(n int) Option {
	return func(c *Configuration) { c.MaxSymlinkDepth = n }
}

// WithDefaultOwnership sets the owner, group and permission bits newly
// created nodes start with.
func WithDefaultOwnership(owner UserPrincipal, group GroupPrincipal, perms PermissionSet) Option {
	return func(c *Configuration) {
		c.DefaultOwner = owner
		c.DefaultGroup = group
		c.DefaultPerms = perms
	}
}

// WithClock overrides the Clock a Filesystem stamps timestamps from,
// normally only used by tests that need a deterministic fakeClock.
func WithClock(clock Clock) Option {
	return func(c *Configuration) { c.Clock = clock }
}

// NewConfiguration builds a Configuration for the given PathType, applying
// opts in order over sensible defaults: a single root matching pt's root
// form, NFC-normalized case-sensitive-per-pt names, 8KiB blocks, unbounded
// size, a symlink depth limit of 40 (matching the historical Linux/Jimfs
// default), and a fresh random instance id.
func NewConfiguration(pt PathType, opts ...Option) Configuration {
	c := Configuration{
		PathType:        pt,
		WorkingDir:      defaultWorkingDir(pt),
		Roots:           []string{defaultRoot(pt)},
		CanonicalForm:   NormalizationNFC,
		DisplayForm:     NormalizationNone,
		CaseSensitive:   pt.CaseSensitiveDefault,
		BlockSize:       8 * 1024,
		MaxTotalBytes:   0,
		MaxCacheBytes:   64 * 1024 * 1024,
		MaxSymlinkDepth: 40,
		DefaultOwner:    UserPrincipal{Name: "user"},
		DefaultGroup:    GroupPrincipal{Name: "group"},
		DefaultPerms:    FromMode(0o755),
		Clock:           SystemClock(),
		InstanceID:      uuid.New(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func defaultWorkingDir(pt PathType) string {
	switch pt.Flavor {
	case Windows:
		return `C:\work`
	default:
		return "/work"
	}
}

func defaultRoot(pt PathType) string {
	switch pt.Flavor {
	case Windows:
		return `C:\`
	default:
		return "/"
	}
}

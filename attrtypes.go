package vfs

import "time"

// FileTime wraps a timestamp at nanosecond resolution, the unit every node
// header stores internally and every basic/dos/unix view reports in.
type FileTime int64

// NewFileTime converts a time.Time to a FileTime.
func NewFileTime(t time.Time) FileTime {
	return FileTime(t.UnixNano())
}

// Time converts back to a time.Time in the local zone.
func (t FileTime) Time() time.Time {
	return time.Unix(0, int64(t))
}

// UserPrincipal names the owner of a node, opaque beyond its display name.
type UserPrincipal struct {
	Name string
}

func (p UserPrincipal) String() string { return p.Name }

// GroupPrincipal names the owning group of a node.
type GroupPrincipal struct {
	Name string
}

func (p GroupPrincipal) String() string { return p.Name }

// Permission is a single posix permission bit, named the way the posix view
// reports its "permissions" attribute: a set of these values.
type Permission string

const (
	PermOwnerRead  Permission = "OWNER_READ"
	PermOwnerWrite Permission = "OWNER_WRITE"
	PermOwnerExec  Permission = "OWNER_EXECUTE"
	PermGroupRead  Permission = "GROUP_READ"
	PermGroupWrite Permission = "GROUP_WRITE"
	PermGroupExec  Permission = "GROUP_EXECUTE"
	PermOtherRead  Permission = "OTHERS_READ"
	PermOtherWrite Permission = "OTHERS_WRITE"
	PermOtherExec  Permission = "OTHERS_EXECUTE"
)

// PermissionSet is an unordered collection of Permission bits.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given bits.
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// FromMode decodes a classic unix octal permission mode (e.g. 0755) into a
// PermissionSet.
func FromMode(mode int) PermissionSet {
	bits := []struct {
		mask int
		perm Permission
	}{
		{0o400, PermOwnerRead}, {0o200, PermOwnerWrite}, {0o100, PermOwnerExec},
		{0o040, PermGroupRead}, {0o020, PermGroupWrite}, {0o010, PermGroupExec},
		{0o004, PermOtherRead}, {0o002, PermOtherWrite}, {0o001, PermOtherExec},
	}
	s := make(PermissionSet)
	for _, b := range bits {
		if mode&b.mask != 0 {
			s[b.perm] = struct{}{}
		}
	}
	return s
}

// Mode encodes the set back into a classic unix octal permission mode.
func (s PermissionSet) Mode() int {
	bits := map[Permission]int{
		PermOwnerRead: 0o400, PermOwnerWrite: 0o200, PermOwnerExec: 0o100,
		PermGroupRead: 0o040, PermGroupWrite: 0o020, PermGroupExec: 0o010,
		PermOtherRead: 0o004, PermOtherWrite: 0o002, PermOtherExec: 0o001,
	}
	mode := 0
	for p := range s {
		mode |= bits[p]
	}
	return mode
}

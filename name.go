package vfs

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// NormalizationForm selects a Unicode normalization form applied to names,
// or NormalizationNone to leave them untouched.
type NormalizationForm int

const (
	NormalizationNone NormalizationForm = iota
	NormalizationNFC
	NormalizationNFD
)

func (f NormalizationForm) apply(s string) string {
	switch f {
	case NormalizationNFC:
		return norm.NFC.String(s)
	case NormalizationNFD:
		return norm.NFD.String(s)
	default:
		return s
	}
}

// Name is an interned, normalization-aware filename token. Two Names compare
// equal under the owning nameTable's configured case/Unicode policy
// regardless of which raw string produced them; the original, per-entry
// display form survives for listing.
type Name struct {
	display   string
	canonical string
}

// String returns the display form, preserved as written at the directory
// entry that introduced this Name (spec.md's per-entry choice for
// case-insensitive configurations).
func (n Name) String() string {
	return n.display
}

// Equal reports whether two Names denote the same entry under their
// canonical form. It does not re-derive the canonical form from
// Configuration; Names must come from the same nameTable to compare
// meaningfully, which is always true within one Filesystem.
func (n Name) Equal(o Name) bool {
	return n.canonical == o.canonical
}

// nameTable interns Names according to a filesystem's normalization and
// case-sensitivity policy. Interning keeps one canonical string per distinct
// name alive so that many Name values sharing a spelling share storage,
// which matters when keeping large directory trees resident in memory.
type nameTable struct {
	canonicalForm NormalizationForm
	displayForm   NormalizationForm
	caseSensitive bool

	mu     sync.Mutex
	canons map[string]string
}

func newNameTable(canonicalForm, displayForm NormalizationForm, caseSensitive bool) *nameTable {
	return &nameTable{
		canonicalForm: canonicalForm,
		displayForm:   displayForm,
		caseSensitive: caseSensitive,
		canons:        make(map[string]string),
	}
}

// intern produces a Name for raw, reusing a previously-interned canonical
// string when one already matches.
func (t *nameTable) intern(raw string) Name {
	display := t.displayForm.apply(raw)
	canonical := t.canonicalForm.apply(raw)
	if !t.caseSensitive {
		canonical = strings.ToUpper(canonical)
	}

	t.mu.Lock()
	if existing, ok := t.canons[canonical]; ok {
		canonical = existing
	} else {
		t.canons[canonical] = canonical
	}
	t.mu.Unlock()

	return Name{display: display, canonical: canonical}
}

// Package version provides the four-part version algebra used throughout
// the resolver core: parsing, ordered comparison, and the version-range
// interval type that dependency constraints are expressed with.
//
// The grammar matches the ecosystem described by the core's data model: a
// numeric (major, minor, patch, revision) tuple, an optional dot-separated
// prerelease label, and an ignored build-metadata suffix. It is modeled on
// the lexer/span/Set shape of deps.dev/util/semver, which does not itself
// parse this grammar (see SPEC_FULL.md's DOMAIN STACK section).
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a four-part numeric version with an optional prerelease label
// sequence.
type Version struct {
	Major, Minor, Patch, Revision int
	// Release holds the dot-separated prerelease identifiers, e.g.
	// ["beta", "2"] for "-beta.2". Nil/empty means this is a release
	// version.
	Release []string
	// original is the input string, preserved for pretty-printing without
	// normalization (e.g. a 3-part "1.2.3" prints as given, not "1.2.3.0").
	original string
}

// Zero is the sentinel "any version" value, 0.0.0.0.
var Zero = Version{}

// IsZero reports whether v is the zero-version sentinel 0.0.0.0.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Revision == 0 && len(v.Release) == 0
}

// IsPrerelease reports whether v carries a prerelease label.
func (v Version) IsPrerelease() bool { return len(v.Release) > 0 }

// Parse parses a version string of the form "major[.minor[.patch[.revision]]][-release][+metadata]".
// Missing numeric components default to zero. Build metadata, if present
// after a "+", is accepted but not retained: it plays no part in ordering
// or identity.
func Parse(s string) (Version, error) {
	orig := s
	if s == "" {
		return Version{}, fmt.Errorf("version: empty string")
	}

	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}

	var release []string
	if i := strings.IndexByte(s, '-'); i >= 0 {
		release = strings.Split(s[i+1:], ".")
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 4 {
		return Version{}, fmt.Errorf("version: invalid numeric component count in %q", orig)
	}
	nums := [4]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p == "" {
			return Version{}, fmt.Errorf("version: invalid numeric component %q in %q", p, orig)
		}
		nums[i] = n
	}
	for _, r := range release {
		if r == "" {
			return Version{}, fmt.Errorf("version: empty prerelease identifier in %q", orig)
		}
	}

	return Version{
		Major: nums[0], Minor: nums[1], Patch: nums[2], Revision: nums[3],
		Release:  release,
		original: orig,
	}, nil
}

// MustParse is like Parse but panics on error; it exists for tests and
// static tables, not for parsing untrusted input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the canonical form of v: always four numeric components
// plus any prerelease label. Use Original to recover exactly what was
// parsed.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Revision)
	if len(v.Release) > 0 {
		s += "-" + strings.Join(v.Release, ".")
	}
	return s
}

// Original returns the exact string Parse was given, or String if v was
// constructed directly rather than parsed.
func (v Version) Original() string {
	if v.original != "" {
		return v.original
	}
	return v.String()
}

// Compare returns -1, 0 or 1 as v is ordered before, equal to or after o.
// Numeric components compare first; a version without a prerelease label
// sorts after one that shares the same numeric tuple but has a label
// (release > prerelease, per standard semver precedence). Prerelease
// identifiers compare pairwise: numeric identifiers compare numerically and
// sort before alphanumeric ones, which compare lexically; a prerelease with
// extra trailing identifiers but an otherwise equal prefix is greater.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := cmpInt(v.Patch, o.Patch); c != 0 {
		return c
	}
	if c := cmpInt(v.Revision, o.Revision); c != 0 {
		return c
	}
	return compareRelease(v.Release, o.Release)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareRelease(a, b []string) int {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) == 0 {
		return 1 // release > prerelease
	}
	if len(b) == 0 {
		return -1
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareIdentifier(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func compareIdentifier(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return cmpInt(an, bn)
	}
	if aerr == nil {
		return -1 // numeric identifiers sort before alphanumeric
	}
	if berr == nil {
		return 1
	}
	return strings.Compare(a, b)
}

// Equal reports whether v and o are identical versions (ignoring the
// preserved original string).
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

// Less reports whether v sorts strictly before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// SortVersions sorts vs in ascending order.
func SortVersions(vs []Version) {
	// insertion sort is adequate: version lists handled by the resolver
	// core are small (candidate sets per library), and this avoids
	// pulling in sort.Slice's closure allocation.
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j].Less(vs[j-1]); j-- {
			vs[j], vs[j-1] = vs[j-1], vs[j]
		}
	}
}

// Package graph holds the data model shared by the walker, conflict
// resolver and combinatorial resolver: library identities, ranges,
// dependency edges, and the resolution tree itself.
package graph

import (
	"strings"

	"github.com/nuget/resolve-core/dep"
	"github.com/nuget/resolve-core/version"
)

// Kind is the library type NuGet-style ecosystems distinguish between a
// plain package, an in-solution project reference, and a raw assembly
// reference.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPackage
	KindProject
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindProject:
		return "project"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// KindSet is a bitmask restricting which Kinds a LibraryRange may resolve
// to. The zero value means "no restriction" (any kind is acceptable).
type KindSet uint8

const (
	KindSetPackage   KindSet = 1 << KindPackage
	KindSetProject   KindSet = 1 << KindProject
	KindSetReference KindSet = 1 << KindReference
	KindSetAny       KindSet = 0
)

// Allows reports whether k may satisfy the restriction ks.
func (ks KindSet) Allows(k Kind) bool {
	if ks == KindSetAny {
		return true
	}
	return ks&(1<<k) != 0
}

// NameKey returns the case-insensitive comparison key for a library name.
// Use this, never the raw string, for map keys and name equality checks.
func NameKey(name string) string { return strings.ToLower(name) }

// LibraryIdentity is a concrete, resolved (name, version, kind) triple.
// Two identities are equal iff all three fields match, with the name
// compared case-insensitively.
type LibraryIdentity struct {
	Name    string
	Version version.Version
	Kind    Kind
}

// Equal reports whether id and other refer to the same identity.
func (id LibraryIdentity) Equal(other LibraryIdentity) bool {
	return id.Kind == other.Kind &&
		id.Version.Equal(other.Version) &&
		NameKey(id.Name) == NameKey(other.Name)
}

func (id LibraryIdentity) String() string {
	return id.Name + " " + id.Version.String()
}

// LibraryRange is a requested (name, version-range, kind-restriction)
// triple that the resolver matches against candidate identities.
type LibraryRange struct {
	Name            string
	VersionRange    version.Range
	KindRestriction KindSet
}

func (r LibraryRange) String() string {
	return r.Name + " " + r.VersionRange.Pretty()
}

// SameName reports whether r and other name the same library,
// case-insensitively.
func (r LibraryRange) SameName(other LibraryRange) bool {
	return NameKey(r.Name) == NameKey(other.Name)
}

// LibraryDependency is a dependency edge: what is requested, and how its
// own transitive exposure is restricted.
type LibraryDependency struct {
	Range LibraryRange

	// SuppressParent trims this dependency's own transitive exposure to
	// the requester's consumers. dep.SuppressAll corresponds to NuGet's
	// PrivateAssets="all".
	SuppressParent IncludeFlags

	// IncludeFlags controls which asset types (compile, runtime, build,
	// ...) this edge contributes.
	IncludeFlags IncludeFlags
}

// IncludeFlags is re-exported from the dep package so that callers working
// purely with the graph package do not need a second import for the common
// case; see package dep for the full bitmask API.
type IncludeFlags = dep.IncludeFlags

// Package dep provides the include-flags bitmask attached to a dependency
// edge. It is modeled on the Mask/AttrKey idiom of
// deps.dev/util/resolve/dep.Type, narrowed to a plain bitmask since every
// flag here is a presence/absence switch with no associated value.
package dep

import "strings"

// IncludeFlags controls which parts of a dependency's own transitive
// closure are exposed to the consumer that declared it.
type IncludeFlags uint8

const (
	// FlagNone excludes everything; a dependency with no include flags
	// contributes no assets to the consumer.
	FlagNone IncludeFlags = 0

	FlagRuntime IncludeFlags = 1 << iota
	FlagCompile
	FlagBuild
	FlagNative
	FlagContentFiles
	FlagAnalyzers
	FlagBuildTransitive

	// FlagAll is the default set applied when a dependency declares no
	// restriction.
	FlagAll = FlagRuntime | FlagCompile | FlagBuild | FlagNative | FlagContentFiles | FlagAnalyzers | FlagBuildTransitive
)

var flagNames = []struct {
	flag IncludeFlags
	name string
}{
	{FlagRuntime, "runtime"},
	{FlagCompile, "compile"},
	{FlagBuild, "build"},
	{FlagNative, "native"},
	{FlagContentFiles, "contentFiles"},
	{FlagAnalyzers, "analyzers"},
	{FlagBuildTransitive, "buildTransitive"},
}

// Has reports whether all bits in other are set in f.
func (f IncludeFlags) Has(other IncludeFlags) bool { return f&other == other }

// Intersect returns the flags common to f and other.
func (f IncludeFlags) Intersect(other IncludeFlags) IncludeFlags { return f & other }

// IsNone reports whether f excludes everything.
func (f IncludeFlags) IsNone() bool { return f == FlagNone }

func (f IncludeFlags) String() string {
	if f == FlagNone {
		return "none"
	}
	if f == FlagAll {
		return "all"
	}
	var names []string
	for _, e := range flagNames {
		if f.Has(e.flag) {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseIncludeFlags parses a comma-separated flag list such as
// "runtime,compile", or the special values "all" and "none".
func ParseIncludeFlags(s string) IncludeFlags {
	s = strings.TrimSpace(s)
	switch s {
	case "", "all":
		return FlagAll
	case "none":
		return FlagNone
	}
	var f IncludeFlags
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		for _, e := range flagNames {
			if strings.EqualFold(part, e.name) {
				f |= e.flag
			}
		}
	}
	return f
}

// SuppressParent, when applied to a LibraryDependency, trims the exposure
// of that dependency's own transitive edges to the requesting consumer's
// consumers. SuppressAll is the common case (NuGet's PrivateAssets="all").
const (
	SuppressNone IncludeFlags = FlagNone
	SuppressAll  IncludeFlags = FlagAll
)

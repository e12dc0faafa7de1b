// Package combinatorial implements the Combinatorial Resolver: given a flat
// set of available package versions and a set of required ids, finds a
// single identity per id such that no two chosen identities reject each
// other, using an ordered depth-first search with pairwise rejection
// driven by a preference comparator.
package combinatorial

import "github.com/nuget/resolve-core/graph"

// DependencyBehavior controls how ResolverComparer orders candidates for
// an id that was not explicitly pinned by a preferred version.
type DependencyBehavior int

const (
	// Lowest prefers the minimum version.
	Lowest DependencyBehavior = iota
	// HighestPatch prefers the lowest major+minor, then the highest patch.
	HighestPatch
	// HighestMinor prefers the lowest major, then the highest minor, then
	// patch.
	HighestMinor
	// Highest prefers the maximum version.
	Highest
	// Ignore clears every candidate's declared dependencies before search,
	// so nothing transitively constrains the solution.
	Ignore
)

// SourcePackageDependencyInfo is one available version of a package, as
// reported by a provider ahead of the search.
type SourcePackageDependencyInfo struct {
	ID           string
	Version      graph.LibraryIdentity
	Listed       bool
	Dependencies []graph.LibraryDependency
}

// ResolverPackage is a flattened candidate for one id in the search.
// Absent is a sentinel allowing the search to choose "no version of this
// id" when the id isn't required.
type ResolverPackage struct {
	ID           string
	Identity     graph.LibraryIdentity
	Listed       bool
	Dependencies []graph.LibraryDependency
	Absent       bool
}

func absentPackage(id string) ResolverPackage {
	return ResolverPackage{ID: id, Absent: true}
}

// Context carries every input the search needs.
type Context struct {
	RequiredIDs        map[string]bool
	TargetIDs          map[string]bool
	PreferredVersions  map[string]graph.LibraryIdentity
	DependencyBehavior DependencyBehavior
}

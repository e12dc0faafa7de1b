package combinatorial

import (
	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/version"
)

// PruneImpossible removes available packages whose version falls outside
// the combined range declared against their id and that aren't themselves
// required, repeating until a pass removes nothing. A package whose id no
// dependency references is kept. This shrinks the search space the DFS
// later walks without changing the set of reachable solutions.
func PruneImpossible(available []SourcePackageDependencyInfo, requiredIDs map[string]bool) []SourcePackageDependencyInfo {
	for {
		combined := combinedRanges(available)
		next := available[:0:0]
		removed := false
		for _, pkg := range available {
			if requiredIDs[idKey(pkg.ID)] {
				next = append(next, pkg)
				continue
			}
			r, ok := combined[idKey(pkg.ID)]
			if !ok || r.Satisfies(pkg.Version.Version) {
				next = append(next, pkg)
				continue
			}
			removed = true
		}
		available = next
		if !removed {
			return available
		}
	}
}

func idKey(id string) string { return graph.NameKey(id) }

// combinedRanges computes, for every id referenced by some package's
// dependencies, the union of all ranges declared against it.
func combinedRanges(available []SourcePackageDependencyInfo) map[string]version.Range {
	byID := make(map[string][]version.Range)
	for _, pkg := range available {
		for _, dep := range pkg.Dependencies {
			key := idKey(dep.Range.Name)
			byID[key] = append(byID[key], dep.Range.VersionRange)
		}
	}
	combined := make(map[string]version.Range, len(byID))
	for id, ranges := range byID {
		combined[id] = version.Combine(ranges)
	}
	return combined
}

// Package diagnostic implements the Diagnostic Engine (spec.md §4.G): given
// a graph that failed conflict resolution, or a combinatorial resolution's
// best attempt, it selects one primary cause and renders it as the single
// user-visible explanation a caller sees. No stack trace or internal state
// ever leaks past this string.
//
// The engine needs context neither the walker nor the conflict/combinatorial
// resolvers themselves track: which library names were original targets of
// the resolution versus transitive dependencies, and which names carry a
// pre-existing installed-version constraint (as from a packages.config
// file). Callers supply the packages.config pins explicitly, and the
// combinatorial targets through Context.TargetIDs; ExplainGraph instead
// treats every node at depth 0 or 1 as a target.
package diagnostic

import (
	"fmt"
	"sort"

	"github.com/nuget/resolve-core/combinatorial"
	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/version"
)

// GraphContext supplies the extra information ExplainGraph needs beyond
// the bare graph.
type GraphContext struct {
	// PackagesConfig maps a case-insensitive library name to the version
	// string an existing packages.config-style listing pins it to. Any
	// selected cause naming one of these ids has the pin appended to its
	// message.
	PackagesConfig map[string]string
}

func (c GraphContext) pin(name string) (string, bool) {
	v, ok := c.PackagesConfig[graph.NameKey(name)]
	return v, ok
}

// cause is one candidate explanation; lower priority numbers are reported
// first, matching spec.md §4.G's ordering.
type cause struct {
	priority int
	depth    int
	name     string
	message  string
}

func render(causes []cause, pin func(string) (string, bool)) string {
	if len(causes) == 0 {
		return "resolution failed for an unspecified reason"
	}
	sort.SliceStable(causes, func(i, j int) bool {
		if causes[i].priority != causes[j].priority {
			return causes[i].priority < causes[j].priority
		}
		if causes[i].depth != causes[j].depth {
			return causes[i].depth < causes[j].depth
		}
		return graph.NameKey(causes[i].name) < graph.NameKey(causes[j].name)
	})
	best := causes[0]
	msg := best.message
	if pin != nil {
		if v, ok := pin(best.name); ok {
			msg += fmt.Sprintf(" (packages.config allows %s = %s)", best.name, v)
		}
	}
	return msg
}

// ExplainGraph produces the single diagnostic string for a graph that
// failed conflict resolution, or that a caller otherwise wants explained
// (an unresolved required library, say). It ranks every candidate cause by
// the priority order of spec.md §4.G:
//
//  1. a target — a root node, or a node at depth 1 under a synthetic
//     multi-target root — whose own declared range conflicts with the
//     identity accepted for its name elsewhere in the graph,
//  2. a target with an unresolved direct dependency,
//  3. a non-target (already-resolved/"installed") node whose range the
//     accepted identity no longer satisfies, i.e. an upgrade that broke an
//     existing constraint,
//  4. any other transitive node left unresolved, ordered by BFS distance
//     from the root and then by name.
//
// accepted is the name -> identity map TryResolveConflicts returns on
// success; pass the map it produced even though the overall resolution is
// being explained as a failure — conflict resolution fails only when an
// accepted identity turns out not to satisfy some rejected node's range
// (see conflict.checkInvariant), so accepted is always populated by then.
func ExplainGraph(g *graph.Graph, accepted map[string]graph.LibraryIdentity, ctx GraphContext) string {
	var causes []cause

	for i := range g.Nodes {
		node := &g.Nodes[i]
		name := node.Key.Name
		isTarget := node.Depth <= 1

		switch {
		case node.Disposition == graph.Rejected && node.Item != nil:
			acc, ok := accepted[graph.NameKey(name)]
			if !ok || node.Key.VersionRange.Satisfies(acc.Version) {
				continue
			}
			if isTarget {
				causes = append(causes, cause{1, node.Depth, name, fmt.Sprintf(
					"%s: requested %s is incompatible with the resolved version %s",
					name, node.Key.VersionRange.Pretty(), acc.Version)})
			} else {
				causes = append(causes, cause{3, node.Depth, name, fmt.Sprintf(
					"%s: an existing reference requires %s, but %s was resolved for the rest of the graph",
					name, node.Key.VersionRange.Pretty(), acc.Version)})
			}

		case node.Item == nil && node.Disposition != graph.Cycle && node.Disposition != graph.PotentiallyDowngraded:
			if isTarget {
				causes = append(causes, cause{2, node.Depth, name, fmt.Sprintf(
					"%s: no provider could find a version satisfying %s",
					name, node.Key.VersionRange.Pretty())})
			} else {
				causes = append(causes, cause{4, node.Depth, name, fmt.Sprintf(
					"%s: no provider could find a version satisfying %s (required by %s)",
					name, node.Key.VersionRange.Pretty(), g.PathString(node.Outer))})
			}
		}
	}

	return render(causes, ctx.pin)
}

// ExplainCombinatorial produces the §4.G diagnostic string for a
// combinatorial resolution that found no solution. Since the search's
// best-attempt carries only the deepest partial assignment it reached —
// not why every other branch also failed — the engine instead
// re-derives the actual conflicting constraint directly from the
// available packages: it looks for a dependency edge onto a
// packages.config-pinned id whose declared range the pin doesn't satisfy,
// which is exactly the shape of conflict the combinatorial solver's
// pairwise rejection rule is built to catch.
func ExplainCombinatorial(available []combinatorial.SourcePackageDependencyInfo, ctx combinatorial.Context, packagesConfig map[string]string) string {
	var causes []cause

	for _, pkg := range available {
		for _, d := range pkg.Dependencies {
			toKey := graph.NameKey(d.Range.Name)
			pinStr, pinned := packagesConfig[toKey]
			if !pinned {
				continue
			}
			pinVersion, err := version.Parse(pinStr)
			if err != nil || d.Range.VersionRange.Satisfies(pinVersion) {
				continue
			}

			priority := 3
			if ctx.TargetIDs[graph.NameKey(pkg.ID)] {
				priority = 1
			}
			causes = append(causes, cause{
				priority: priority,
				depth:    0,
				name:     d.Range.Name,
				message: fmt.Sprintf(
					"%s: %s requires %s %s, which conflicts with the packages.config pin %s = %s",
					d.Range.Name, pkg.ID, d.Range.Name, d.Range.VersionRange.Pretty(), d.Range.Name, pinStr),
			})
		}
	}

	if len(causes) == 0 {
		return "no solution satisfies every declared dependency range"
	}
	return render(causes, nil)
}

package provider

import (
	"context"
	"sort"

	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/version"
)

// Local is an in-memory Provider populated ahead of time, grounded on
// deps.dev/util/resolve's LocalClient. It backs both tests and any
// already-installed / packages.config-listed libraries a resolution run
// needs to consider before consulting a remote feed.
type Local struct {
	name string

	// versions holds, per case-insensitively normalized name, the known
	// concrete identities.
	versions map[string][]graph.LibraryIdentity
	// deps holds the direct dependencies of every identity, keyed by
	// String() of the identity (name+version is unique per kind here).
	deps map[string][]graph.LibraryDependency
}

// NewLocal creates an empty Local provider with the given diagnostic name.
func NewLocal(name string) *Local {
	return &Local{
		name:     name,
		versions: make(map[string][]graph.LibraryIdentity),
		deps:     make(map[string][]graph.LibraryDependency),
	}
}

// Add registers id, along with its direct dependencies, with the provider.
// Adding the same identity twice replaces its dependencies.
func (l *Local) Add(id graph.LibraryIdentity, dependencies []graph.LibraryDependency) {
	key := graph.NameKey(id.Name)
	vs := l.versions[key]
	existed := false
	for i, v := range vs {
		if v.Equal(id) {
			vs[i] = id
			existed = true
			break
		}
	}
	if !existed {
		vs = append(vs, id)
		sort.Slice(vs, func(i, j int) bool { return vs[i].Version.Less(vs[j].Version) })
	}
	l.versions[key] = vs
	l.deps[id.String()] = dependencies
}

func (l *Local) Name() string  { return l.name }
func (l *Local) IsHTTP() bool  { return false }

// FindBest implements Provider using version.BestMatch over the registered
// identities for r's name. exact reports whether the chosen identity's
// version equals r's exact target: for a pinned "[v]" range that's v
// itself, and for an open range ("A >= 1.0.0") it's the range's minimum —
// the walker's race only waits out slower providers when nothing has yet
// matched this target.
func (l *Local) FindBest(ctx context.Context, r graph.LibraryRange) (graph.LibraryIdentity, bool, bool, error) {
	candidates := l.versions[graph.NameKey(r.Name)]
	if len(candidates) == 0 {
		return graph.LibraryIdentity{}, false, false, wrapNotFound(l.name, r)
	}
	var filtered []graph.LibraryIdentity
	for _, c := range candidates {
		if r.KindRestriction.Allows(c.Kind) {
			filtered = append(filtered, c)
		}
	}
	best, ok := version.BestMatch(filtered, r.VersionRange, func(id graph.LibraryIdentity) version.Version {
		return id.Version
	})
	if !ok {
		return graph.LibraryIdentity{}, false, false, nil
	}
	exact := false
	if target, hasTarget := r.VersionRange.PreferredVersion(); hasTarget {
		exact = best.Version.Equal(target)
	}
	return best, exact, true, nil
}

// Dependencies implements Provider.
func (l *Local) Dependencies(ctx context.Context, id graph.LibraryIdentity) ([]graph.LibraryDependency, error) {
	deps, ok := l.deps[id.String()]
	if !ok {
		return nil, wrapNotFound(l.name, graph.LibraryRange{Name: id.Name, VersionRange: version.Exact(id.Version)})
	}
	return deps, nil
}

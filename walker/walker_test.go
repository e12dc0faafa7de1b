package walker

import (
	"context"
	"testing"
	"time"

	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/provider"
	"github.com/nuget/resolve-core/version"
)

// fakeProvider answers FindBest after a fixed delay, for exercising the
// walker's racing behavior deterministically.
type fakeProvider struct {
	name    string
	delay   time.Duration
	version version.Version
	deps    []graph.LibraryDependency
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) IsHTTP() bool { return true }

func (f *fakeProvider) FindBest(ctx context.Context, r graph.LibraryRange) (graph.LibraryIdentity, bool, bool, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return graph.LibraryIdentity{}, false, false, ctx.Err()
	}
	if !r.VersionRange.Satisfies(f.version) {
		return graph.LibraryIdentity{}, false, false, provider.ErrNotFound
	}
	id := graph.LibraryIdentity{Name: r.Name, Version: f.version, Kind: graph.KindPackage}
	exact := false
	if target, ok := r.VersionRange.PreferredVersion(); ok {
		exact = f.version.Equal(target)
	}
	return id, exact, true, nil
}

func (f *fakeProvider) Dependencies(ctx context.Context, id graph.LibraryIdentity) ([]graph.LibraryDependency, error) {
	return f.deps, nil
}

func rng(name, r string) graph.LibraryRange {
	rr, err := version.ParseRange(r)
	if err != nil {
		panic(err)
	}
	return graph.LibraryRange{Name: name, VersionRange: rr}
}

func TestFastestExactWins(t *testing.T) {
	slow := &fakeProvider{name: "slow", delay: 50 * time.Millisecond, version: version.MustParse("1.0.0")}
	fast := &fakeProvider{name: "fast", delay: 0, version: version.MustParse("1.0.0")}

	w := New(provider.NewChain(slow, fast), "")
	g, err := w.Walk(context.Background(), rng("A", "[1.0.0]"))
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	item := g.Node(g.Root).Item
	if item == nil {
		t.Fatal("root has no resolved item")
	}
	if item.Data.Provider != "fast" {
		t.Errorf("winning provider = %q, want %q", item.Data.Provider, "fast")
	}
}

func TestSlowerExactBeatsFasterNonExact(t *testing.T) {
	slow := &fakeProvider{name: "slow", delay: 30 * time.Millisecond, version: version.MustParse("1.0.0")}
	fast := &fakeProvider{name: "fast", delay: 0, version: version.MustParse("1.1.0")}

	w := New(provider.NewChain(slow, fast), "")
	g, err := w.Walk(context.Background(), rng("A", "1.0.0"))
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	item := g.Node(g.Root).Item
	if item == nil {
		t.Fatal("root has no resolved item")
	}
	if item.Data.Provider != "slow" {
		t.Errorf("winning provider = %q, want %q (exact match at range minimum)", item.Data.Provider, "slow")
	}
	if item.Key.Version.String() != "1.0.0.0" {
		t.Errorf("resolved version = %v, want 1.0.0.0", item.Key.Version)
	}
}

func TestWalkBuildsChildren(t *testing.T) {
	root := &fakeProvider{
		name:    "only",
		version: version.MustParse("1.0.0"),
		deps:    []graph.LibraryDependency{{Range: rng("B", "2.0.0")}},
	}
	leaf := &fakeProvider{name: "only", version: version.MustParse("2.0.0")}

	chain := provider.NewChain(&multiVersionProvider{byName: map[string]*fakeProvider{
		"A": root,
		"B": leaf,
	}})

	w := New(chain, "")
	g, err := w.Walk(context.Background(), rng("A", "1.0.0"))
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	rootNode := g.Node(g.Root)
	if len(rootNode.Inner) != 1 {
		t.Fatalf("root.Inner = %v, want 1 child", rootNode.Inner)
	}
	child := g.Node(rootNode.Inner[0])
	if child.Item == nil || child.Item.Key.Name != "B" {
		t.Errorf("child item = %+v, want resolved B", child.Item)
	}
}

// multiVersionProvider dispatches FindBest/Dependencies by requested name
// to a per-name fakeProvider, so a single chain entry can answer for more
// than one library in a multi-level walk test.
type multiVersionProvider struct {
	byName map[string]*fakeProvider
}

func (m *multiVersionProvider) Name() string { return "multi" }
func (m *multiVersionProvider) IsHTTP() bool { return false }

func (m *multiVersionProvider) FindBest(ctx context.Context, r graph.LibraryRange) (graph.LibraryIdentity, bool, bool, error) {
	p, ok := m.byName[r.Name]
	if !ok {
		return graph.LibraryIdentity{}, false, false, provider.ErrNotFound
	}
	return p.FindBest(ctx, r)
}

func (m *multiVersionProvider) Dependencies(ctx context.Context, id graph.LibraryIdentity) ([]graph.LibraryDependency, error) {
	p, ok := m.byName[id.Name]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return p.Dependencies(ctx, id)
}

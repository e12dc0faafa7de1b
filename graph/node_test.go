package graph

import (
	"testing"

	"github.com/nuget/resolve-core/version"
)

func rng(name string) LibraryRange {
	return LibraryRange{Name: name, VersionRange: version.All}
}

func TestGraphAddChildAndDepth(t *testing.T) {
	g := NewGraph(rng("root"))
	a := g.AddChild(g.Root, rng("a"))
	b := g.AddChild(a, rng("b"))

	if got := g.Node(a).Depth; got != 1 {
		t.Errorf("a.Depth = %d, want 1", got)
	}
	if got := g.Node(b).Depth; got != 2 {
		t.Errorf("b.Depth = %d, want 2", got)
	}
	if got := g.Node(g.Root).Inner; len(got) != 1 || got[0] != a {
		t.Errorf("root.Inner = %v, want [%v]", got, a)
	}
}

func TestDetachPreservesOuterAndPath(t *testing.T) {
	g := NewGraph(rng("root"))
	a := g.AddChild(g.Root, rng("a"))
	b := g.AddChild(a, rng("b"))

	g.Detach(b)

	if len(g.Node(a).Inner) != 0 {
		t.Errorf("a.Inner after detach = %v, want empty", g.Node(a).Inner)
	}
	if g.Node(b).Outer != a {
		t.Errorf("b.Outer after detach = %v, want %v", g.Node(b).Outer, a)
	}

	path := g.GetPath(b)
	if len(path) != 3 || path[0] != g.Root || path[1] != a || path[2] != b {
		t.Errorf("GetPath(b) after detach = %v, want root,a,b", path)
	}
}

func TestPathString(t *testing.T) {
	g := NewGraph(rng("root"))
	a := g.AddChild(g.Root, rng("a"))
	b := g.AddChild(a, rng("b"))

	if got, want := g.PathString(b), "root -> a -> b"; got != want {
		t.Errorf("PathString = %q, want %q", got, want)
	}
}

func TestAncestors(t *testing.T) {
	g := NewGraph(rng("root"))
	a := g.AddChild(g.Root, rng("a"))
	b := g.AddChild(a, rng("b"))

	var seen []NodeID
	g.Ancestors(b, func(id NodeID) bool {
		seen = append(seen, id)
		return true
	})
	if len(seen) != 2 || seen[0] != a || seen[1] != g.Root {
		t.Errorf("Ancestors(b) = %v, want [a, root]", seen)
	}
}

func TestWalkBFSOrder(t *testing.T) {
	g := NewGraph(rng("root"))
	a := g.AddChild(g.Root, rng("a"))
	b := g.AddChild(g.Root, rng("b"))
	g.AddChild(a, rng("a1"))
	g.AddChild(b, rng("b1"))

	var order []string
	Walk(g, g.Root, 0, func(id NodeID, depth int) int {
		order = append(order, g.Node(id).Key.Name)
		return depth + 1
	})

	want := []string{"root", "a", "b", "a1", "b1"}
	if len(order) != len(want) {
		t.Fatalf("Walk visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Walk order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

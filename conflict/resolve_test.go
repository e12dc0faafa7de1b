package conflict

import (
	"testing"

	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/version"
)

func id(name, v string) graph.LibraryIdentity {
	return graph.LibraryIdentity{Name: name, Version: version.MustParse(v), Kind: graph.KindPackage}
}

func rangeFor(name, v string) graph.LibraryRange {
	return graph.LibraryRange{Name: name, VersionRange: version.AtLeast(version.MustParse(v))}
}

func resolve(t *testing.T, name, v string) *graph.Item {
	t.Helper()
	return &graph.Item{Key: id(name, v)}
}

// TestNearestWins builds Root -> A 1.0 -> C 1.0, Root -> B 1.0 -> C 2.0 and
// expects C 2.0 to win: both occurrences of C sit at depth 2, so the tie
// breaks on highest version.
func TestNearestWins(t *testing.T) {
	g := graph.NewGraph(rangeFor("Root", "1.0.0"))
	g.Node(g.Root).Item = resolve(t, "Root", "1.0.0")

	a := g.AddChild(g.Root, rangeFor("A", "1.0.0"))
	g.Node(a).Item = resolve(t, "A", "1.0.0")
	c1 := g.AddChild(a, rangeFor("C", "1.0.0"))
	g.Node(c1).Item = resolve(t, "C", "1.0.0")

	b := g.AddChild(g.Root, rangeFor("B", "1.0.0"))
	g.Node(b).Item = resolve(t, "B", "1.0.0")
	c2 := g.AddChild(b, rangeFor("C", "2.0.0"))
	g.Node(c2).Item = resolve(t, "C", "2.0.0")

	accepted, err := TryResolveConflicts(g)
	if err != nil {
		t.Fatalf("TryResolveConflicts: %v", err)
	}
	if got := accepted["c"]; got.Version.String() != "2.0.0.0" {
		t.Errorf("accepted C = %v, want 2.0.0.0", got.Version)
	}
	if g.Node(c2).Disposition != graph.Accepted {
		t.Errorf("C 2.0 disposition = %v, want Accepted", g.Node(c2).Disposition)
	}
	if g.Node(c1).Disposition != graph.Rejected {
		t.Errorf("C 1.0 disposition = %v, want Rejected", g.Node(c1).Disposition)
	}
}

// TestDowngradeDetected builds Root -> A -> B 2.0, Root -> B 1.0 and expects
// B 2.0 to be detached as a downgrade, with B 1.0 accepted.
func TestDowngradeDetected(t *testing.T) {
	g := graph.NewGraph(rangeFor("Root", "1.0.0"))
	g.Node(g.Root).Item = resolve(t, "Root", "1.0.0")

	a := g.AddChild(g.Root, rangeFor("A", "1.0.0"))
	g.Node(a).Item = resolve(t, "A", "1.0.0")
	bDeep := g.AddChild(a, rangeFor("B", "2.0.0"))
	g.Node(bDeep).Item = resolve(t, "B", "2.0.0")

	bShallow := g.AddChild(g.Root, rangeFor("B", "1.0.0"))
	g.Node(bShallow).Item = resolve(t, "B", "1.0.0")

	report := CheckCycleAndNearestWins(g)
	if len(report.Downgrades) != 1 || report.Downgrades[0].Node != bDeep {
		t.Fatalf("Downgrades = %+v, want one entry for the deep B node", report.Downgrades)
	}
	if g.Node(bDeep).Disposition != graph.PotentiallyDowngraded {
		t.Errorf("B 2.0 disposition = %v, want PotentiallyDowngraded", g.Node(bDeep).Disposition)
	}
	if len(g.Node(a).Inner) != 0 {
		t.Errorf("A.Inner after downgrade detach = %v, want empty", g.Node(a).Inner)
	}

	accepted, err := TryResolveConflicts(g)
	if err != nil {
		t.Fatalf("TryResolveConflicts: %v", err)
	}
	if got := accepted["b"]; got.Version.String() != "1.0.0.0" {
		t.Errorf("accepted B = %v, want 1.0.0.0", got.Version)
	}
}

// TestCycleDetected builds Root -> A -> B -> A and expects the inner A to be
// detached and classified Cycle, with no error.
func TestCycleDetected(t *testing.T) {
	g := graph.NewGraph(rangeFor("Root", "1.0.0"))
	g.Node(g.Root).Item = resolve(t, "Root", "1.0.0")

	a := g.AddChild(g.Root, rangeFor("A", "1.0.0"))
	g.Node(a).Item = resolve(t, "A", "1.0.0")
	b := g.AddChild(a, rangeFor("B", "1.0.0"))
	g.Node(b).Item = resolve(t, "B", "1.0.0")
	innerA := g.AddChild(b, rangeFor("A", "1.0.0"))
	// The walker never resolves a node it knows would recurse forever, so
	// innerA is left with no Item, matching the unresolved stub the real
	// walker produces for a detected cycle.

	report := CheckCycleAndNearestWins(g)
	if len(report.Cycles) != 1 || report.Cycles[0] != innerA {
		t.Fatalf("Cycles = %v, want [%v]", report.Cycles, innerA)
	}
	if g.Node(innerA).Disposition != graph.Cycle {
		t.Errorf("inner A disposition = %v, want Cycle", g.Node(innerA).Disposition)
	}
	if len(g.Node(b).Inner) != 0 {
		t.Errorf("B.Inner after cycle detach = %v, want empty", g.Node(b).Inner)
	}

	if _, err := TryResolveConflicts(g); err != nil {
		t.Errorf("TryResolveConflicts after cycle detach: %v, want nil", err)
	}
}

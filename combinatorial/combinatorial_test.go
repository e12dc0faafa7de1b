package combinatorial

import (
	"testing"

	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/version"
)

func pkgIdentity(name, v string) graph.LibraryIdentity {
	return graph.LibraryIdentity{Name: name, Version: version.MustParse(v), Kind: graph.KindPackage}
}

func depOn(name, minVersion string) graph.LibraryDependency {
	return graph.LibraryDependency{Range: graph.LibraryRange{
		Name:         name,
		VersionRange: version.AtLeast(version.MustParse(minVersion)),
	}}
}

// TestCombinatorialConflict encodes the "P1 depends on Q>=2.0; required P1
// and Q 1.0" scenario: packages.config pins Q to 1.0, so 1.0 is the only
// candidate available for Q, and no solution exists because P1's
// dependency on Q>=2.0 rejects it.
func TestCombinatorialConflict(t *testing.T) {
	available := []SourcePackageDependencyInfo{
		{ID: "P1", Version: pkgIdentity("P1", "1.0.0"), Listed: true, Dependencies: []graph.LibraryDependency{depOn("Q", "2.0.0")}},
		{ID: "Q", Version: pkgIdentity("Q", "1.0.0"), Listed: true},
	}
	ctx := Context{
		RequiredIDs: map[string]bool{"p1": true, "q": true},
		PreferredVersions: map[string]graph.LibraryIdentity{
			"q": pkgIdentity("Q", "1.0.0"),
		},
	}

	_, result, err := Resolve(available, ctx)
	if err == nil {
		t.Fatal("Resolve: want conflict error, got nil")
	}
	if result.Solved {
		t.Error("result.Solved = true, want false")
	}
}

// TestCombinatorialSimpleSolution exercises a straightforward case with no
// conflict to confirm the happy path produces a dependency-ordered
// solution.
func TestCombinatorialSimpleSolution(t *testing.T) {
	available := []SourcePackageDependencyInfo{
		{ID: "P1", Version: pkgIdentity("P1", "1.0.0"), Listed: true, Dependencies: []graph.LibraryDependency{depOn("Q", "1.0.0")}},
		{ID: "Q", Version: pkgIdentity("Q", "1.0.0"), Listed: true},
	}
	ctx := Context{
		RequiredIDs: map[string]bool{"p1": true, "q": true},
		DependencyBehavior: Highest,
	}

	solution, result, err := Resolve(available, ctx)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !result.Solved {
		t.Fatal("result.Solved = false, want true")
	}
	if len(solution) != 2 {
		t.Fatalf("solution = %+v, want 2 packages", solution)
	}
	if solution[0].ID != "Q" || solution[1].ID != "P1" {
		t.Errorf("solution order = [%s, %s], want [Q, P1]", solution[0].ID, solution[1].ID)
	}
}

func TestPruneImpossibleDropsUnreachable(t *testing.T) {
	available := []SourcePackageDependencyInfo{
		{ID: "P1", Version: pkgIdentity("P1", "1.0.0"), Dependencies: []graph.LibraryDependency{depOn("Q", "2.0.0")}},
		{ID: "Q", Version: pkgIdentity("Q", "1.0.0")},
		{ID: "Q", Version: pkgIdentity("Q", "2.0.0")},
	}
	pruned := PruneImpossible(available, map[string]bool{"p1": true})

	foundLow, foundHigh := false, false
	for _, p := range pruned {
		if p.ID == "Q" && p.Version.Version.String() == "1.0.0.0" {
			foundLow = true
		}
		if p.ID == "Q" && p.Version.Version.String() == "2.0.0.0" {
			foundHigh = true
		}
	}
	if foundLow {
		t.Error("Q 1.0.0 should have been pruned: no dependency range admits it and it is not required")
	}
	if !foundHigh {
		t.Error("Q 2.0.0 should survive pruning")
	}
}

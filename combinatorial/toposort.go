package combinatorial

import (
	"fmt"
	"sort"
)

// maxCycleDepth bounds the circular-dependency search; a dependency chain
// deeper than this is treated as acyclic for performance rather than
// walked exhaustively.
const maxCycleDepth = 20

// CircularDependencyError reports a detected dependency cycle among the
// solution's packages.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %v", e.Cycle)
}

// TopoSort orders solution so that, for any pair (a, b) where a depends on
// b, b precedes a. Packages with no unmet dependencies drain first; ties
// resolve by case-insensitive id. It fails with CircularDependencyError if
// a cycle is found within maxCycleDepth.
func TopoSort(solution []ResolverPackage) ([]ResolverPackage, error) {
	byID := make(map[string]ResolverPackage, len(solution))
	for _, p := range solution {
		byID[idKey(p.ID)] = p
	}

	if cycle := findCycle(solution, byID); cycle != nil {
		return nil, &CircularDependencyError{Cycle: cycle}
	}

	remaining := append([]ResolverPackage(nil), solution...)
	var out []ResolverPackage
	resolved := make(map[string]bool, len(solution))
	for len(remaining) > 0 {
		sort.SliceStable(remaining, func(i, j int) bool { return idKey(remaining[i].ID) < idKey(remaining[j].ID) })
		progressed := false
		var next []ResolverPackage
		for _, p := range remaining {
			ready := true
			for _, d := range p.Dependencies {
				dep, ok := byID[idKey(d.Range.Name)]
				if !ok {
					continue
				}
				if !resolved[idKey(dep.ID)] {
					ready = false
					break
				}
			}
			if ready {
				out = append(out, p)
				resolved[idKey(p.ID)] = true
				progressed = true
			} else {
				next = append(next, p)
			}
		}
		remaining = next
		if !progressed {
			// findCycle should have already caught this; fail safe rather
			// than loop forever.
			var ids []string
			for _, p := range remaining {
				ids = append(ids, p.ID)
			}
			return nil, &CircularDependencyError{Cycle: ids}
		}
	}
	return out, nil
}

func findCycle(solution []ResolverPackage, byID map[string]ResolverPackage) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(solution))
	var path []string

	var visit func(id string, depth int) []string
	visit = func(id string, depth int) []string {
		if depth > maxCycleDepth {
			return nil
		}
		switch color[id] {
		case gray:
			// Found the cycle; trim path to start at the repeated id.
			for i, p := range path {
				if p == id {
					return append(append([]string(nil), path[i:]...), id)
				}
			}
			return append(append([]string(nil), path...), id)
		case black:
			return nil
		}
		color[id] = gray
		path = append(path, id)
		pkg, ok := byID[id]
		if ok {
			for _, d := range pkg.Dependencies {
				depID := idKey(d.Range.Name)
				if _, ok := byID[depID]; !ok {
					continue
				}
				if cyc := visit(depID, depth+1); cyc != nil {
					return cyc
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return nil
	}

	for _, p := range solution {
		if color[idKey(p.ID)] == white {
			if cyc := visit(idKey(p.ID), 0); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

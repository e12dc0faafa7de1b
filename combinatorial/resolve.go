package combinatorial

import (
	"fmt"

	"github.com/nuget/resolve-core/resolveerr"
)

// Resolve runs the full combinatorial pipeline: prune, build groups,
// search, and (on success) drop absent entries and topologically sort the
// result. On failure it returns a *resolveerr.ConstraintError built from
// the search's best attempt, for the diagnostic engine to refine further.
// A circular dependency found by TopoSort is also reported as a
// *resolveerr.ConstraintError carrying the cycle's description.
func Resolve(available []SourcePackageDependencyInfo, ctx Context) ([]ResolverPackage, Result, error) {
	pruned := PruneImpossible(available, ctx.RequiredIDs)
	groups := BuildGroups(pruned, ctx)
	result := Search(groups)

	if !result.Solved {
		return nil, result, resolveerr.NewConstraintError(fmt.Sprintf("no solution found; closest attempt: %v", describe(result.BestAttempt)))
	}

	solved := DropAbsent(result.Solution)
	sorted, err := TopoSort(solved)
	if err != nil {
		return nil, result, resolveerr.NewConstraintError(err.Error())
	}
	return sorted, result, nil
}

func describe(attempt []ResolverPackage) []string {
	var out []string
	for _, p := range attempt {
		if p.Absent {
			out = append(out, p.ID+" (absent)")
		} else {
			out = append(out, p.Identity.String())
		}
	}
	return out
}

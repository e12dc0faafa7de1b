package combinatorial

// BuildGroups converts available packages into the per-id candidate groups
// the search walks, sorted by comparer into search order. An id absent
// from the required set gets an absent sentinel appended to its group so
// the search may omit it; a dependency id with no available candidates at
// all gets a singleton absent-only group.
func BuildGroups(available []SourcePackageDependencyInfo, ctx Context) [][]ResolverPackage {
	byID := make(map[string][]ResolverPackage)
	order := []string{}
	ensure := func(id string) {
		key := idKey(id)
		if _, ok := byID[key]; !ok {
			order = append(order, key)
			byID[key] = nil
		}
	}

	for _, pkg := range available {
		deps := pkg.Dependencies
		if ctx.DependencyBehavior == Ignore {
			deps = nil
		}
		ensure(pkg.ID)
		key := idKey(pkg.ID)
		byID[key] = append(byID[key], ResolverPackage{
			ID:           pkg.ID,
			Identity:     pkg.Version,
			Listed:       pkg.Listed,
			Dependencies: deps,
		})
		for _, d := range deps {
			ensure(d.Range.Name)
		}
	}

	for _, key := range order {
		if !ctx.RequiredIDs[key] {
			// Use the ID of an existing candidate for the sentinel's
			// display name, falling back to the normalized key itself for
			// a dependency id with no available candidates.
			name := key
			if len(byID[key]) > 0 {
				name = byID[key][0].ID
			}
			byID[key] = append(byID[key], absentPackage(name))
		}
		if len(byID[key]) == 0 {
			byID[key] = []ResolverPackage{absentPackage(key)}
		}
	}

	comparer := NewResolverComparer(ctx)
	groups := make([][]ResolverPackage, 0, len(order))
	for _, key := range order {
		group := byID[key]
		comparer.Sort(group)
		groups = append(groups, group)
	}
	return groups
}

// shouldRejectPair reports whether p1 and p2 cannot coexist in a solution:
// one declares a dependency on the other's id, and either the other is
// absent or its chosen version doesn't satisfy the declared range.
func shouldRejectPair(p1, p2 ResolverPackage) bool {
	return declaresUnsatisfied(p1, p2) || declaresUnsatisfied(p2, p1)
}

func declaresUnsatisfied(from, to ResolverPackage) bool {
	for _, d := range from.Dependencies {
		if idKey(d.Range.Name) != idKey(to.ID) {
			continue
		}
		if to.Absent {
			return true
		}
		if !d.Range.VersionRange.Satisfies(to.Identity.Version) {
			return true
		}
	}
	return false
}

// Result is the outcome of Search.
type Result struct {
	Solution    []ResolverPackage
	BestAttempt []ResolverPackage
	Solved      bool
}

// Search performs the ordered depth-first walk with pairwise rejection,
// choosing one candidate per group. It returns the first fully accepted
// assignment, or, if none was found, the deepest partial assignment
// explored (for diagnostics): bestAttempt is updated every time the
// search extends past its previous deepest point, not only on a full
// success, since an unsolvable instance never reaches i == len(groups)
// at all.
func Search(groups [][]ResolverPackage) Result {
	chosen := make([]ResolverPackage, len(groups))
	var bestAttempt []ResolverPackage
	bestDepth := 0

	var search func(i int) bool
	search = func(i int) bool {
		if i == len(groups) {
			return true
		}
		for _, candidate := range groups[i] {
			chosen[i] = candidate
			if rejectedByAny(chosen[:i+1], i) {
				continue
			}
			if i+1 > bestDepth {
				bestDepth = i + 1
				bestAttempt = append([]ResolverPackage(nil), chosen[:i+1]...)
			}
			if search(i + 1) {
				return true
			}
		}
		return false
	}

	solved := search(0)
	if solved {
		solution := append([]ResolverPackage(nil), chosen...)
		return Result{Solution: solution, BestAttempt: solution, Solved: true}
	}
	return Result{BestAttempt: bestAttempt, Solved: false}
}

func rejectedByAny(chosen []ResolverPackage, newIndex int) bool {
	for i := 0; i < newIndex; i++ {
		if shouldRejectPair(chosen[i], chosen[newIndex]) {
			return true
		}
	}
	return false
}

// DropAbsent removes absent sentinels from a solution.
func DropAbsent(solution []ResolverPackage) []ResolverPackage {
	out := make([]ResolverPackage, 0, len(solution))
	for _, p := range solution {
		if !p.Absent {
			out = append(out, p)
		}
	}
	return out
}

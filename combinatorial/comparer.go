package combinatorial

import "sort"

// ResolverComparer orders the candidates within one id's group into the
// search order the DFS tries them in: earlier means tried first.
type ResolverComparer struct {
	ctx Context
}

// NewResolverComparer builds a comparer for the given resolution context.
func NewResolverComparer(ctx Context) *ResolverComparer {
	return &ResolverComparer{ctx: ctx}
}

// Sort orders group in place, most-preferred first.
func (c *ResolverComparer) Sort(group []ResolverPackage) {
	sort.SliceStable(group, func(i, j int) bool {
		return c.less(group[i], group[j])
	})
}

// less reports whether a should be tried before b.
func (c *ResolverComparer) less(a, b ResolverPackage) bool {
	// 1. Absent vs non-absent: for an id not required, absent is
	// preferred unless dependency behavior is Ignore — with Ignore
	// there's no constraint information left to prefer omission over
	// inclusion, so the normal version-preference rules decide instead.
	if a.Absent != b.Absent {
		if !c.ctx.RequiredIDs[idKey(a.ID)] && c.ctx.DependencyBehavior != Ignore {
			return a.Absent
		}
		return !a.Absent
	}
	if a.Absent && b.Absent {
		return false
	}

	// 2. Preferred version match wins outright.
	if pref, ok := c.ctx.PreferredVersions[idKey(a.ID)]; ok {
		aPref := a.Identity.Version.Equal(pref.Version)
		bPref := b.Identity.Version.Equal(pref.Version)
		if aPref != bPref {
			return aPref
		}
	}

	// 3. Dependency-behavior ordering.
	if cmp := c.behaviorCompare(a, b); cmp != 0 {
		return cmp < 0
	}

	// 4. listed before unlisted, then lexicographic id (case-insensitive).
	if a.Listed != b.Listed {
		return a.Listed
	}
	return idKey(a.ID) < idKey(b.ID)
}

// behaviorCompare returns <0 if a should sort before b under the
// configured DependencyBehavior, >0 if after, 0 if tied.
func (c *ResolverComparer) behaviorCompare(a, b ResolverPackage) int {
	av, bv := a.Identity.Version, b.Identity.Version
	switch c.ctx.DependencyBehavior {
	case Lowest, Ignore:
		return av.Compare(bv)
	case Highest:
		return bv.Compare(av)
	case HighestPatch:
		if c := cmpInt(av.Major, bv.Major); c != 0 {
			return c
		}
		if c := cmpInt(av.Minor, bv.Minor); c != 0 {
			return c
		}
		return cmpInt(bv.Patch, av.Patch)
	case HighestMinor:
		if c := cmpInt(av.Major, bv.Major); c != 0 {
			return c
		}
		if c := cmpInt(bv.Minor, av.Minor); c != 0 {
			return c
		}
		return cmpInt(bv.Patch, av.Patch)
	default:
		return av.Compare(bv)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

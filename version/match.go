package version

// BestMatch returns the element of candidates whose version satisfies r and
// is minimal among satisfying candidates under r's preferred-version rule:
// MinVersion for a lower-bounded range ("[x,...)"), otherwise HighestFloor
// (the highest satisfying version). Ties — equal
// versions contributed by different candidates — resolve in iteration
// order of candidates, i.e. the first one seen wins.
//
// versionOf extracts the Version to compare for a candidate of type T; this
// lets callers pass graph nodes, provider responses, or anything else that
// carries a Version without requiring them to implement an interface.
func BestMatch[T any](candidates []T, r Range, versionOf func(T) Version) (best T, ok bool) {
	_, hasPref := r.PreferredVersion()

	for _, c := range candidates {
		v := versionOf(c)
		if !r.Satisfies(v) {
			continue
		}
		if !ok {
			best, ok = c, true
			continue
		}
		bv := versionOf(best)
		if hasPref {
			// MinVersion rule: every satisfying candidate is already >=
			// the range's preferred (minimum) version, so the smallest
			// satisfying version is the one closest to it.
			if v.Less(bv) {
				best = c
			}
		} else {
			// HighestFloor rule: prefer the higher version.
			if bv.Less(v) {
				best = c
			}
		}
	}
	return best, ok
}

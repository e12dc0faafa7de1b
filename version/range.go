package version

import (
	"fmt"
	"strings"
)

// Range is an interval over Versions, with inclusive or exclusive endpoints
// and an optional floating (prerelease-accepting) behavior.
//
// The grammar is interval notation: "1.0.0" means ">= 1.0.0" (an open,
// minimum-bound range); "[1.0.0]" pins an exact version; "[1.0.0, 2.0.0)"
// is the half-open interval; "(, 2.0.0]" has no lower bound.
type Range struct {
	MinInclusive bool
	Min          Version // zero Version with !hasMin means unbounded below
	hasMin       bool
	Max          Version
	hasMax       bool
	MaxInclusive bool

	// Float allows a Satisfies check to accept versions carrying a
	// prerelease label even when Min/Max themselves are release
	// versions, as long as they fall within the bounds. This mirrors the
	// "float" behavior of a floating version range.
	Float bool

	original string
}

// HasMin reports whether r has a lower bound.
func (r Range) HasMin() bool { return r.hasMin }

// HasMax reports whether r has an upper bound.
func (r Range) HasMax() bool { return r.hasMax }

// IsExact reports whether r pins a single version, i.e. "[v]".
func (r Range) IsExact() bool {
	return r.hasMin && r.hasMax && r.MinInclusive && r.MaxInclusive && r.Min.Equal(r.Max)
}

// All matches every version; it is the range used for an unconstrained
// dependency.
var All = Range{}

// Exact returns the range that matches only v.
func Exact(v Version) Range {
	return Range{hasMin: true, Min: v, MinInclusive: true, hasMax: true, Max: v, MaxInclusive: true}
}

// AtLeast returns the open range ">= v".
func AtLeast(v Version) Range {
	return Range{hasMin: true, Min: v, MinInclusive: true}
}

// ParseRange parses a version range string. Malformed input is reported via
// a ParseError.
func ParseRange(s string) (Range, error) {
	orig := s
	str := strings.TrimSpace(s)
	if str == "" {
		return Range{}, &ParseError{Input: orig, Reason: "empty range"}
	}

	if str[0] != '[' && str[0] != '(' {
		// Bare version: "1.0.0" means ">= 1.0.0".
		v, err := Parse(str)
		if err != nil {
			return Range{}, &ParseError{Input: orig, Reason: err.Error()}
		}
		return Range{hasMin: true, Min: v, MinInclusive: true, original: orig}, nil
	}

	if len(str) < 2 || (str[len(str)-1] != ']' && str[len(str)-1] != ')') {
		return Range{}, &ParseError{Input: orig, Reason: "missing closing bracket"}
	}
	minIncl := str[0] == '['
	maxIncl := str[len(str)-1] == ']'
	inner := str[1 : len(str)-1]

	var r Range
	r.MinInclusive = minIncl
	r.MaxInclusive = maxIncl
	r.original = orig

	if !strings.Contains(inner, ",") {
		// "[1.0.0]" style exact pin; also tolerate "(1.0.0)" even though
		// NuGet never emits it, by treating it as a same-bound interval.
		if inner == "" {
			return Range{}, &ParseError{Input: orig, Reason: "interval has no bounds"}
		}
		v, err := Parse(strings.TrimSpace(inner))
		if err != nil {
			return Range{}, &ParseError{Input: orig, Reason: err.Error()}
		}
		r.hasMin, r.Min = true, v
		r.hasMax, r.Max = true, v
		return r, nil
	}

	parts := strings.SplitN(inner, ",", 2)
	lo, hi := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if lo != "" {
		v, err := Parse(lo)
		if err != nil {
			return Range{}, &ParseError{Input: orig, Reason: err.Error()}
		}
		r.hasMin, r.Min = true, v
	}
	if hi != "" {
		v, err := Parse(hi)
		if err != nil {
			return Range{}, &ParseError{Input: orig, Reason: err.Error()}
		}
		r.hasMax, r.Max = true, v
	}
	if !r.hasMin && !r.hasMax {
		return Range{}, &ParseError{Input: orig, Reason: "interval has no bounds"}
	}
	if r.hasMin && r.hasMax && r.Max.Less(r.Min) {
		return Range{}, &ParseError{Input: orig, Reason: "interval max is below min"}
	}
	return r, nil
}

// ParseError reports a malformed range or version string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("version: cannot parse %q: %s", e.Input, e.Reason)
}

// Satisfies reports whether v falls within r.
// A prerelease version only satisfies the range if an endpoint of the same
// numeric tuple carries a prerelease label itself, unless r.Float is set.
func (r Range) Satisfies(v Version) bool {
	if r.hasMin {
		c := v.Compare(r.Min)
		if c < 0 || (c == 0 && !r.MinInclusive) {
			return false
		}
	}
	if r.hasMax {
		c := v.Compare(r.Max)
		if c > 0 || (c == 0 && !r.MaxInclusive) {
			return false
		}
	}
	if v.IsPrerelease() && !r.Float {
		if !r.allowsPrereleaseOf(v) {
			return false
		}
	}
	return true
}

// allowsPrereleaseOf reports whether v's prerelease may satisfy r because an
// endpoint shares its numeric tuple and is itself a prerelease (the
// standard semver rule: a prerelease only matches ranges that name the same
// release line).
func (r Range) allowsPrereleaseOf(v Version) bool {
	sameTuple := func(a, b Version) bool {
		return a.Major == b.Major && a.Minor == b.Minor && a.Patch == b.Patch && a.Revision == b.Revision
	}
	if r.hasMin && r.Min.IsPrerelease() && sameTuple(r.Min, v) {
		return true
	}
	if r.hasMax && r.Max.IsPrerelease() && sameTuple(r.Max, v) {
		return true
	}
	return false
}

// MinVersion returns the range's lower bound and whether it has one.
func (r Range) MinVersion() (Version, bool) { return r.Min, r.hasMin }

// PreferredVersion returns the version that best-match should prefer among
// a set of equally-eligible candidates: the range's minimum if it is
// bound ("MinVersion" preference, for pinned/lower-bounded ranges), or the
// zero Version with ok=false if the range is unbounded below, in which case
// callers should prefer the highest satisfying candidate ("HighestFloor").
func (r Range) PreferredVersion() (Version, bool) {
	if r.hasMin {
		return r.Min, true
	}
	return Version{}, false
}

// Original returns the exact string ParseRange was given, or Pretty if r
// was constructed directly.
func (r Range) Original() string {
	if r.original != "" {
		return r.original
	}
	return r.Pretty()
}

// Pretty renders r using interval notation.
func (r Range) Pretty() string {
	if !r.hasMin && !r.hasMax {
		return "(, )"
	}
	if r.IsExact() {
		return "[" + r.Min.String() + "]"
	}
	var b strings.Builder
	if r.MinInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if r.hasMin {
		b.WriteString(r.Min.String())
	}
	b.WriteString(", ")
	if r.hasMax {
		b.WriteString(r.Max.String())
	}
	if r.MaxInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// Combine returns the smallest range containing the union of all the given
// ranges' bounds. Combine is associative and
// idempotent: Combine(Combine(a,b),c) == Combine(a,Combine(b,c)), and
// Combine(a) == a.
func Combine(ranges []Range) Range {
	if len(ranges) == 0 {
		return All
	}
	out := ranges[0]
	for _, r := range ranges[1:] {
		out = combine2(out, r)
	}
	return out
}

func combine2(a, b Range) Range {
	out := Range{Float: a.Float || b.Float}

	switch {
	case !a.hasMin || !b.hasMin:
		// unbounded below wins
	case a.Min.Less(b.Min):
		out.hasMin, out.Min, out.MinInclusive = true, a.Min, a.MinInclusive
	case b.Min.Less(a.Min):
		out.hasMin, out.Min, out.MinInclusive = true, b.Min, b.MinInclusive
	default:
		out.hasMin, out.Min = true, a.Min
		out.MinInclusive = a.MinInclusive || b.MinInclusive
	}

	switch {
	case !a.hasMax || !b.hasMax:
		// unbounded above wins
	case a.Max.Less(b.Max):
		out.hasMax, out.Max, out.MaxInclusive = true, b.Max, b.MaxInclusive
	case b.Max.Less(a.Max):
		out.hasMax, out.Max, out.MaxInclusive = true, a.Max, a.MaxInclusive
	default:
		out.hasMax, out.Max = true, a.Max
		out.MaxInclusive = a.MaxInclusive || b.MaxInclusive
	}
	return out
}

package provider

// Framework is an opaque target-framework identifier, such as "net8.0" or
// "netstandard2.0". The resolver core never interprets the string itself;
// all compatibility questions are delegated to a FrameworkOracle.
type Framework string

// FrameworkOracle answers framework compatibility and reduction questions.
// The resolution core treats it as an external collaborator: it never
// hard-codes ecosystem-specific compatibility tables itself.
type FrameworkOracle interface {
	// Nearest returns the candidate framework compatible with project that
	// is "closest" to it, applying (in order): exact match, upward
	// compatibility, profile match preference, no-profile preference
	// before a profiled framework, and finally a portable-vs-non-portable
	// tie-break. ok is false if nothing in candidates is compatible.
	Nearest(project Framework, candidates []Framework) (nearest Framework, ok bool)
}

// staticOracle is a FrameworkOracle driven by an explicit compatibility
// table, sufficient for tests and for callers that don't need a full
// ecosystem-specific ruleset wired in.
type staticOracle struct {
	// compatibleWith maps a project framework to the list of frameworks it
	// accepts, ordered most to least preferred.
	compatibleWith map[Framework][]Framework
}

// NewStaticOracle builds a FrameworkOracle from an explicit
// project-framework -> ordered-compatible-frameworks table.
func NewStaticOracle(compatibleWith map[Framework][]Framework) FrameworkOracle {
	return &staticOracle{compatibleWith: compatibleWith}
}

func (o *staticOracle) Nearest(project Framework, candidates []Framework) (Framework, bool) {
	have := make(map[Framework]bool, len(candidates))
	for _, c := range candidates {
		have[c] = true
	}
	if have[project] {
		return project, true
	}
	for _, pref := range o.compatibleWith[project] {
		if have[pref] {
			return pref, true
		}
	}
	return "", false
}

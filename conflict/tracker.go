package conflict

import "github.com/nuget/resolve-core/graph"

// occurrence is one sighting of a library name at a given tree depth.
type occurrence struct {
	identity graph.LibraryIdentity
	depth    int
}

// trackerEntry accumulates everything the fixpoint has seen for one
// library name during a single outer iteration.
type trackerEntry struct {
	locked      *graph.LibraryIdentity
	occurrences []occurrence
	ambiguous   bool
}

// Tracker is the per-name bookkeeping structure the conflict-resolution
// fixpoint's three BFS passes share. A Tracker is scoped to a single
// outer iteration; resolve.go constructs a fresh one each time.
type Tracker struct {
	entries map[string]*trackerEntry
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*trackerEntry)}
}

func (t *Tracker) entry(name string) *trackerEntry {
	key := graph.NameKey(name)
	e, ok := t.entries[key]
	if !ok {
		e = &trackerEntry{}
		t.entries[key] = e
	}
	return e
}

// Track records an occurrence of item's identity at the given tree depth.
func (t *Tracker) Track(item *graph.Item, depth int) {
	e := t.entry(item.Key.Name)
	e.occurrences = append(e.occurrences, occurrence{identity: item.Key, depth: depth})
}

// Lock records that item's identity is a Reference, which always wins
// over any other occurrence of the same name.
func (t *Tracker) Lock(item *graph.Item) {
	e := t.entry(item.Key.Name)
	id := item.Key
	e.locked = &id
}

// Disputed reports whether more than one distinct version has been tracked
// for name so far.
func (t *Tracker) Disputed(name string) bool {
	e, ok := t.entries[graph.NameKey(name)]
	if !ok {
		return false
	}
	seen := make(map[string]bool)
	for _, o := range e.occurrences {
		seen[o.identity.Version.String()] = true
	}
	return len(seen) > 1
}

// MarkAmbiguous flags name as undecidable for the remainder of this
// iteration's third pass.
func (t *Tracker) MarkAmbiguous(name string) {
	t.entry(name).ambiguous = true
}

// IsAmbiguous reports whether name was flagged by MarkAmbiguous.
func (t *Tracker) IsAmbiguous(name string) bool {
	e, ok := t.entries[graph.NameKey(name)]
	return ok && e.ambiguous
}

// Best returns the winning identity for name: the locked Reference
// identity if one was recorded, otherwise the highest-versioned occurrence
// among those at the minimal tree depth seen for that name.
func (t *Tracker) Best(name string) (graph.LibraryIdentity, bool) {
	e, ok := t.entries[graph.NameKey(name)]
	if !ok {
		return graph.LibraryIdentity{}, false
	}
	if e.locked != nil {
		return *e.locked, true
	}
	if len(e.occurrences) == 0 {
		return graph.LibraryIdentity{}, false
	}
	minDepth := e.occurrences[0].depth
	for _, o := range e.occurrences[1:] {
		if o.depth < minDepth {
			minDepth = o.depth
		}
	}
	best := e.occurrences[0]
	for _, o := range e.occurrences {
		if o.depth != minDepth {
			continue
		}
		if best.depth != minDepth || best.identity.Version.Less(o.identity.Version) {
			best = o
		}
	}
	return best.identity, true
}

package conflict

import (
	"fmt"

	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/resolveerr"
)

// patience bounds the conflict-resolution fixpoint's iteration count.
const patience = 1000

// walkState3 is pass 3's propagated state: whether a node's subtree is
// still being actively decided, has been rejected, or has been stopped
// because an ambiguous ancestor makes its own outcome undecidable this
// iteration.
type walkState3 int

const (
	continue3 walkState3 = iota
	rejected3
	stopped3
)

// walkState2 is pass 2's propagated state.
type walkState2 int

const (
	walking2 walkState2 = iota
	ambiguous2
	rejected2
)

// TryResolveConflicts runs CheckCycleAndNearestWins followed by the
// iterative three-pass fixpoint, returning the name -> identity map of
// everything Accepted. It fails with resolveerr.ResolutionDidNotConverge
// if the fixpoint exhausts its patience, or a *resolveerr.ConstraintError
// if an accepted identity turns out not to satisfy some rejected node's
// own requested range; in that case the accepted map is returned alongside
// the error so the diagnostic engine can explain it.
func TryResolveConflicts(g *graph.Graph) (map[string]graph.LibraryIdentity, error) {
	CheckCycleAndNearestWins(g)

	var accepted map[string]graph.LibraryIdentity
	converged := false

	for iter := 0; iter < patience; iter++ {
		tracker := NewTracker()
		graph.Walk(g, g.Root, true, func(id graph.NodeID, notRejected bool) bool {
			return pass1(g, tracker, id, notRejected)
		})
		graph.Walk(g, g.Root, walking2, func(id graph.NodeID, state walkState2) walkState2 {
			return pass2(g, tracker, id, state)
		})
		accepted = make(map[string]graph.LibraryIdentity)
		graph.Walk(g, g.Root, continue3, func(id graph.NodeID, state walkState3) walkState3 {
			return pass3(g, tracker, accepted, id, state)
		})

		if !anyAcceptable(g) {
			converged = true
			break
		}
	}
	if !converged {
		return nil, resolveerr.ResolutionDidNotConverge
	}

	if err := checkInvariant(g, accepted); err != nil {
		return accepted, err
	}
	return accepted, nil
}

func pass1(g *graph.Graph, tracker *Tracker, id graph.NodeID, notRejected bool) bool {
	node := g.Node(id)
	if !notRejected || node.Disposition == graph.Rejected {
		node.Disposition = graph.Rejected
		return false
	}
	if node.Item == nil {
		node.Disposition = graph.Rejected
		return false
	}
	if node.Item.Key.Kind == graph.KindReference {
		tracker.Lock(node.Item)
	} else {
		tracker.Track(node.Item, node.Depth)
	}
	return true
}

func pass2(g *graph.Graph, tracker *Tracker, id graph.NodeID, state walkState2) walkState2 {
	node := g.Node(id)
	if state == rejected2 || node.Disposition == graph.Rejected {
		return rejected2
	}
	if state == ambiguous2 {
		if node.Item != nil {
			tracker.MarkAmbiguous(node.Item.Key.Name)
		}
		return ambiguous2
	}
	// state == walking2
	if node.Item != nil && tracker.Disputed(node.Item.Key.Name) {
		return ambiguous2
	}
	return walking2
}

func pass3(g *graph.Graph, tracker *Tracker, accepted map[string]graph.LibraryIdentity, id graph.NodeID, state walkState3) walkState3 {
	node := g.Node(id)
	if state == rejected3 {
		node.Disposition = graph.Rejected
		return rejected3
	}
	if state == stopped3 {
		return stopped3
	}
	if node.Disposition == graph.Rejected {
		return rejected3
	}
	if node.Item == nil {
		node.Disposition = graph.Rejected
		return rejected3
	}
	name := node.Item.Key.Name
	if tracker.IsAmbiguous(name) {
		return stopped3
	}
	best, ok := tracker.Best(name)
	if ok && best.Equal(node.Item.Key) {
		node.Disposition = graph.Accepted
		accepted[graph.NameKey(name)] = best
		return continue3
	}
	node.Disposition = graph.Rejected
	return rejected3
}

// anyAcceptable reports whether any node of the live tree is still
// Acceptable. Detached nodes and their subtrees are never visited by the
// three passes, so they are not considered.
func anyAcceptable(g *graph.Graph) bool {
	found := false
	graph.Walk(g, g.Root, struct{}{}, func(id graph.NodeID, s struct{}) struct{} {
		if g.Node(id).Disposition == graph.Acceptable {
			found = true
		}
		return s
	})
	return found
}

// checkInvariant verifies that every Rejected node whose name made it into
// accepted is still satisfied by the accepted version; any violation is
// reported together as a single ConstraintError, matching the one
// user-visible diagnostic string callers see on failure.
func checkInvariant(g *graph.Graph, accepted map[string]graph.LibraryIdentity) error {
	var unresolvable []string
	for i := range g.Nodes {
		node := &g.Nodes[i]
		if node.Disposition != graph.Rejected {
			continue
		}
		id, ok := accepted[graph.NameKey(node.Key.Name)]
		if !ok {
			continue
		}
		if !node.Key.VersionRange.Satisfies(id.Version) {
			unresolvable = append(unresolvable, fmt.Sprintf("%s %s", node.Key.Name, node.Key.VersionRange.Pretty()))
		}
	}
	if len(unresolvable) == 0 {
		return nil
	}
	return resolveerr.NewConstraintError(fmt.Sprintf("failed to resolve conflicts for: %v", unresolvable))
}

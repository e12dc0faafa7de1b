// Package conflict implements the Graph Conflict Resolver: a single
// cycle/downgrade detection pass followed by an iterative three-pass
// nearest-wins fixpoint that classifies every node Accepted or Rejected.
package conflict

import "github.com/nuget/resolve-core/graph"

// Downgrade records that node was detached because another node nearer the
// root references the same library name with a lower minimum version — the nearer reference will win under nearest-wins, which would
// downgrade node's own expectation below what it declared.
type Downgrade struct {
	Node       graph.NodeID
	ReferredBy graph.NodeID
}

// CheckReport summarizes what CheckCycleAndNearestWins found and detached.
type CheckReport struct {
	Cycles     []graph.NodeID
	Downgrades []Downgrade
}

// CheckCycleAndNearestWins performs the single BFS-equivalent pass over
// the tree that detects and detaches cycles and potential downgrades.
// Detached nodes keep their Outer reference, so diagnostics can still
// print their path.
//
// The walker itself never recurses into a dependency whose name already
// appears among its own ancestors (that would recurse forever for a true
// cycle); the node it leaves behind, unresolved, is exactly what this pass
// looks for and formally classifies.
func CheckCycleAndNearestWins(g *graph.Graph) CheckReport {
	var report CheckReport

	for id := graph.NodeID(1); int(id) < len(g.Nodes); id++ {
		node := g.Node(id)
		name := graph.NameKey(node.Key.Name)

		isCycle := false
		g.Ancestors(id, func(a graph.NodeID) bool {
			if graph.NameKey(g.Node(a).Key.Name) == name {
				isCycle = true
				return false
			}
			return true
		})
		if isCycle {
			node.Disposition = graph.Cycle
			report.Cycles = append(report.Cycles, id)
			g.Detach(id)
			continue
		}

		minV, hasMin := node.Key.VersionRange.MinVersion()
		if !hasMin {
			continue
		}
		for other := graph.NodeID(0); int(other) < len(g.Nodes); other++ {
			if other == id {
				continue
			}
			otherNode := g.Node(other)
			if graph.NameKey(otherNode.Key.Name) != name || otherNode.Depth >= node.Depth {
				continue
			}
			otherMin, ok := otherNode.Key.VersionRange.MinVersion()
			if !ok || !otherMin.Less(minV) {
				continue
			}
			node.Disposition = graph.PotentiallyDowngraded
			report.Downgrades = append(report.Downgrades, Downgrade{Node: id, ReferredBy: other})
			g.Detach(id)
			break
		}
	}
	return report
}

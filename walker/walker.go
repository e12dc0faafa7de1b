// Package walker builds a resolution tree by racing a provider chain in
// parallel at every node, grounded on the concurrent request-fan-out
// pattern used against the deps.dev Insights API (an errgroup with a
// concurrency limit, racing per-item calls and returning the first error).
// Cancellation propagates through a single context threaded into every
// call; a cancelled walk reports resolveerr.ResolutionCancelled and the
// partially built graph must be discarded by the caller.
package walker

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/provider"
	"github.com/nuget/resolve-core/resolveerr"
)

// maxConcurrentProviders bounds how many providers (or pending nodes) are
// raced at once.
const maxConcurrentProviders = 8

// Walker is the Remote Dependency Walker: given a root range, it resolves
// every node by racing the configured provider chain, and recurses into
// declared dependencies to build the full tree.
type Walker struct {
	Chain     *provider.Chain
	Framework provider.Framework
	Runtime   provider.RuntimeGraph
	RuntimeID provider.RuntimeID

	cache *inFlightCache
}

// New creates a Walker over the given provider chain.
func New(chain *provider.Chain, framework provider.Framework) *Walker {
	return &Walker{
		Chain:     chain,
		Framework: framework,
		cache:     newInFlightCache(),
	}
}

// Walk resolves root and its full transitive closure, returning the built
// graph. It proceeds breadth-first over pending dependency requests: every
// node at the current level is raced against the provider chain
// concurrently, but the graph itself — AddChild, Node(id).Item — is only
// ever mutated from this one goroutine, serially, once a level's provider
// calls have all returned. This keeps §5's single-writer invariant while
// still maximizing provider-call parallelism within a level.
//
// Cancelling ctx unwinds the walk and returns resolveerr.ResolutionCancelled.
func (w *Walker) Walk(ctx context.Context, root graph.LibraryRange) (*graph.Graph, error) {
	g := graph.NewGraph(root)
	level := []graph.NodeID{g.Root}
	for len(level) > 0 {
		next, err := w.walkLevel(ctx, g, level)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", resolveerr.ResolutionCancelled, ctx.Err())
			}
			return nil, err
		}
		level = next
	}
	return g, nil
}

// levelResult is what a single node's provider race and dependency fetch
// produces, staged before it is applied to the graph.
type levelResult struct {
	match *graph.Match
	src   provider.Provider
	deps  []graph.LibraryDependency
}

// walkLevel races the provider chain and fetches dependencies for every
// node in level concurrently (bounded by maxConcurrentProviders), then
// applies every result to g one at a time and returns the next level's
// node ids. Each goroutine below writes only to its own index of results;
// none touches g, so AddChild and Node(id).Item are only ever called from
// this goroutine, after eg.Wait() returns.
func (w *Walker) walkLevel(ctx context.Context, g *graph.Graph, level []graph.NodeID) ([]graph.NodeID, error) {
	results := make([]levelResult, len(level))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentProviders)
	for i, id := range level {
		i, key := i, g.Node(id).Key
		eg.Go(func() error {
			match, src, err := w.resolveRange(egctx, key)
			if err != nil {
				return err
			}
			if match == nil {
				// No provider could satisfy this range; leave the node
				// unresolved for the conflict resolver to mark Rejected.
				// This is not itself a Go error: an unresolved transitive
				// dependency is reported through the diagnostic engine.
				return nil
			}
			deps, err := src.Dependencies(egctx, match.Library)
			if err != nil && !provider.IsNotFound(err) {
				return err
			}
			results[i] = levelResult{match: match, src: src, deps: deps}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var next []graph.NodeID
	for i, id := range level {
		res := results[i]
		if res.match == nil {
			continue
		}
		g.Node(id).Item = &graph.Item{
			Key:          res.match.Library,
			Data:         *res.match,
			Dependencies: res.deps,
		}
		for _, d := range res.deps {
			cid := g.AddChild(id, d.Range)
			if ancestorSharesName(g, cid) {
				// A true cycle: recursing here would never terminate. Leave
				// the node childless and unresolved; the conflict
				// resolver's cycle pass formally classifies and detaches
				// it.
				continue
			}
			next = append(next, cid)
		}
	}
	return next, nil
}

// resolveRange races every provider in the chain for r, memoizing the
// result so that two branches requesting the same (name, range) pair only
// trigger one round of provider calls.
func (w *Walker) resolveRange(ctx context.Context, r graph.LibraryRange) (*graph.Match, provider.Provider, error) {
	return w.cache.do(r, func() (*graph.Match, provider.Provider, error) {
		return w.race(ctx, r)
	})
}

type candidateResult struct {
	provider provider.Provider
	index    int
	id       graph.LibraryIdentity
	exact    bool
}

// race queries every provider in the chain concurrently. An exact version
// match from any provider cancels the rest of the race immediately. If no
// provider reports an exact match, the race waits for every provider to
// respond and picks among the non-exact candidates by version — highest
// first under the range's preferred-version ordering — breaking ties by
// provider order (§4.D step 4).
func (w *Walker) race(ctx context.Context, r graph.LibraryRange) (*graph.Match, provider.Provider, error) {
	providers := w.Chain.Providers
	if len(providers) == 0 {
		return nil, nil, nil
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egctx := errgroup.WithContext(raceCtx)
	eg.SetLimit(maxConcurrentProviders)

	results := make(chan candidateResult, len(providers))

	for i, p := range providers {
		i, p := i, p
		eg.Go(func() error {
			id, exact, ok, err := p.FindBest(egctx, r)
			if err != nil && provider.IsTransient(err) {
				// A transient failure (timeout, unavailable, ...) gets one
				// retry before being treated as a null result; a second
				// failure is indistinguishable from "no match" for racing
				// purposes.
				id, exact, ok, err = p.FindBest(egctx, r)
			}
			if err != nil {
				if ctx.Err() != nil {
					// The walk's own context is done — a real cancellation
					// or timeout, not this race's internal early exit.
					return err
				}
				if errors.Is(err, context.Canceled) {
					// Some other provider already found an exact match and
					// this race cancelled the rest; this provider's
					// in-flight call was cut short by that, not a failure.
					return nil
				}
				if provider.IsNotFound(err) || provider.IsTransient(err) {
					return nil
				}
				return err
			}
			if !ok {
				return nil
			}
			results <- candidateResult{provider: p, index: i, id: id, exact: exact}
			if exact {
				cancel()
			}
			return nil
		})
	}

	waitErr := eg.Wait()
	close(results)
	if waitErr != nil {
		return nil, nil, waitErr
	}

	var exactRes *candidateResult
	nonExact := make([]candidateResult, 0, len(providers))
	for res := range results {
		res := res
		if res.exact {
			if exactRes == nil {
				exactRes = &res
			}
			continue
		}
		nonExact = append(nonExact, res)
	}

	if exactRes != nil {
		return &graph.Match{Provider: exactRes.provider.Name(), Library: exactRes.id, Range: r}, exactRes.provider, nil
	}
	if len(nonExact) == 0 {
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("%w: %v", resolveerr.ResolutionCancelled, ctx.Err())
		}
		return nil, nil, nil
	}

	sort.SliceStable(nonExact, func(a, b int) bool {
		va, vb := nonExact[a].id.Version, nonExact[b].id.Version
		if !va.Equal(vb) {
			return vb.Less(va) // descending version
		}
		return nonExact[a].index < nonExact[b].index // provider order
	})
	best := nonExact[0]
	return &graph.Match{Provider: best.provider.Name(), Library: best.id, Range: r}, best.provider, nil
}

// ancestorSharesName reports whether id's requested library name matches
// the name requested by any of its ancestors, case-insensitively — the
// signal that recursing into id would walk a cycle forever.
func ancestorSharesName(g *graph.Graph, id graph.NodeID) bool {
	name := graph.NameKey(g.Node(id).Key.Name)
	found := false
	g.Ancestors(id, func(a graph.NodeID) bool {
		if graph.NameKey(g.Node(a).Key.Name) == name {
			found = true
			return false
		}
		return true
	})
	return found
}

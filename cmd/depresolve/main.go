/*
depresolve is an example driver for the resolution core, grounded on
deps.dev's examples/go/resolve command: it resolves a single root library
against an in-memory provider, then prints the accepted graph or, on
failure, the single diagnostic string explaining why no solution exists.
The built-in provider has no libraries registered (see sampleCatalog), so
as shipped the root stays unresolved and nothing is printed.

This is glue, not a package manager: no network I/O, no file I/O, no
installation. It exists so the core packages have one place a reader can
see walker, conflict and diagnostic wired together end to end.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/nuget/resolve-core/conflict"
	"github.com/nuget/resolve-core/diagnostic"
	"github.com/nuget/resolve-core/graph"
	"github.com/nuget/resolve-core/provider"
	"github.com/nuget/resolve-core/resolveerr"
	"github.com/nuget/resolve-core/version"
	"github.com/nuget/resolve-core/walker"
)

const usage = "Usage: depresolve <library-name> <version-range>"

func main() {
	log.SetFlags(0)
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	name, rangeStr := flag.Arg(0), flag.Arg(1)
	r, err := version.ParseRange(rangeStr)
	if err != nil {
		log.Fatalf("parsing range %q: %v", rangeStr, err)
	}

	chain := provider.NewChain(sampleCatalog()...)
	w := walker.New(chain, "net8.0")

	root := graph.LibraryRange{Name: name, VersionRange: r}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	log.Printf("walking %s", root)
	g, err := w.Walk(ctx, root)
	if err != nil {
		log.Fatalf("walk: %v", err)
	}
	log.Printf("walked in %v", time.Since(start))

	accepted, err := conflict.TryResolveConflicts(g)
	if err != nil {
		if resolveerr.IsConstraint(err) {
			log.Fatalf("no solution: %v", diagnostic.ExplainGraph(g, accepted, diagnostic.GraphContext{}))
		}
		log.Fatalf("resolve: %v", err)
	}

	printAccepted(accepted)
}

// printAccepted renders the accepted name -> identity map sorted by name,
// matching the teacher example's plain tabular stdout output.
func printAccepted(accepted map[string]graph.LibraryIdentity) {
	names := make([]string, 0, len(accepted))
	for name := range accepted {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		id := accepted[name]
		fmt.Printf("%s\t%s\n", id.Name, id.Version)
	}
}

// sampleCatalog returns a built-in Local provider named "builtin" so
// depresolve runs without any network access. No libraries are registered
// in it, so every lookup against it finds nothing; real callers construct their own provider
// chain (a local lock-file provider, a remote feed, ...) per the Provider
// interface in package provider.
func sampleCatalog() []provider.Provider {
	local := provider.NewLocal("builtin")
	return []provider.Provider{local}
}

// Package provider defines the metadata source abstraction the walker races
// in parallel: something that can find the best-matching identity for a
// requested range and fetch its dependencies. It is modeled on
// deps.dev/util/resolve's Client interface, generalized from a single
// backend to an ordered chain of heterogeneous sources (local lock-file
// data, a remote feed, ...), since a real resolution run usually consults
// more than one.
package provider

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nuget/resolve-core/graph"
)

// ErrNotFound is returned when a provider has no data for the requested
// library at all (as opposed to having data but no version satisfying the
// range, which FindBest reports via its ok return).
var ErrNotFound = errors.New("provider: not found")

// Provider is a single metadata source.
type Provider interface {
	// Name identifies the provider for diagnostics and Match.Provider.
	Name() string
	// IsHTTP reports whether this provider talks to a remote endpoint. The
	// walker's race (package walker) does not distinguish HTTP from local
	// providers: an exact version match from any provider cancels the
	// race, and otherwise a non-exact match is chosen only once every
	// provider has responded.
	IsHTTP() bool
	// FindBest returns the best identity in this provider's view of the
	// world that satisfies r, preferring an exact version match. ok is
	// false if the provider has no acceptable candidate; err is non-nil
	// only for a genuine lookup failure (network, decode, ...).
	FindBest(ctx context.Context, r graph.LibraryRange) (id graph.LibraryIdentity, exact bool, ok bool, err error)
	// Dependencies returns the direct dependencies declared by id.
	Dependencies(ctx context.Context, id graph.LibraryIdentity) ([]graph.LibraryDependency, error)
}

// IsTransient reports whether err likely indicates a retryable
// infrastructure failure (as opposed to "this library genuinely does not
// exist"), using gRPC status codes the way a remote provider's errors are
// classified.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	default:
		return false
	}
}

// IsNotFound reports whether err indicates the provider has no data at all
// for the requested library, whether that's ErrNotFound itself or a gRPC
// NotFound status from a remote provider.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || status.Code(err) == codes.NotFound
}

func wrapNotFound(name string, r graph.LibraryRange) error {
	return fmt.Errorf("provider %s: %s: %w", name, r, ErrNotFound)
}

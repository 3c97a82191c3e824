// Package oracle provides the TravelTimeOracle contract (spec §6) and a
// handful of adapters: an HTTP client for a routed distance-matrix
// provider, a Redis-backed caching decorator, and in-memory
// implementations for tests and offline use.
package oracle

import (
	"context"

	"github.com/homevisit/phleb-router/entities"
)

// TravelTimeOracle returns an integer-minute travel-time matrix between two
// ordered lists of coordinates. Implementations must be order-preserving
// (matrix[i][j] corresponds to origins[i] -> destinations[j]) and need not
// be symmetric or satisfy the triangle inequality (spec §2, §6).
type TravelTimeOracle interface {
	Query(ctx context.Context, origins, destinations []entities.Coordinate) ([][]int, error)
}

// Func adapts a plain function to the TravelTimeOracle interface.
type Func func(ctx context.Context, origins, destinations []entities.Coordinate) ([][]int, error)

// Query implements TravelTimeOracle.
func (f Func) Query(ctx context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
	return f(ctx, origins, destinations)
}

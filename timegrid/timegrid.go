// Package timegrid provides a dense, row-major integer-minute matrix, used
// by the Featurizer to hold the solver's travel-time view (spec §3: "Time
// matrix M[N][N] in integer minutes").
//
// Grid is intentionally narrower than a general-purpose linear-algebra
// matrix type: entries are non-negative integer minutes, not floats, and
// the only derived operations the engine needs are per-column service-time
// folding and row sums (for the revenue-potential scaling of spec §3).
package timegrid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates a non-positive requested size.
var ErrInvalidDimensions = errors.New("timegrid: dimensions must be > 0")

// ErrIndexOutOfBounds indicates a row or column index outside [0, n).
var ErrIndexOutOfBounds = errors.New("timegrid: index out of bounds")

// ErrNotSquare indicates an operation requiring a square grid was given a
// non-square one.
var ErrNotSquare = errors.New("timegrid: grid is not square")

func gridErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Grid.%s(%d,%d): %w", method, row, col, err)
}

// Grid is a square n×n matrix of integer minutes, stored flat in row-major
// order for cache-friendly column folding and row summation.
type Grid struct {
	n    int
	data []int
}

// NewGrid allocates an n×n Grid initialized to zero.
//
// Stage 1 (Validate): n must be > 0.
// Stage 2 (Prepare): allocate the flat backing slice.
// Complexity: O(n^2) time and memory.
func NewGrid(n int) (*Grid, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Grid{n: n, data: make([]int, n*n)}, nil
}

// NewGridFromRows builds a Grid from a pre-populated square [][]int,
// validating shape. Useful when the full matrix is already available (e.g.
// shared across scenario-sweep reshuffles).
func NewGridFromRows(rows [][]int) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrInvalidDimensions
	}
	g, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, ErrNotSquare
		}
		for j, v := range row {
			if err := g.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// N returns the grid's dimension.
func (g *Grid) N() int {
	return g.n
}

func (g *Grid) index(row, col int) (int, error) {
	if row < 0 || row >= g.n {
		return 0, gridErrorf("At", row, col, ErrIndexOutOfBounds)
	}
	if col < 0 || col >= g.n {
		return 0, gridErrorf("At", row, col, ErrIndexOutOfBounds)
	}
	return row*g.n + col, nil
}

// At retrieves the minute value at (row, col).
func (g *Grid) At(row, col int) (int, error) {
	idx, err := g.index(row, col)
	if err != nil {
		return 0, err
	}
	return g.data[idx], nil
}

// Set assigns v at (row, col).
func (g *Grid) Set(row, col, v int) error {
	idx, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.data[idx] = v
	return nil
}

// AddColumn adds delta to every entry of column col (used to fold
// service-time into arrival per spec §3: "every column j of M is
// incremented by service_minutes[j]").
func (g *Grid) AddColumn(col, delta int) error {
	if col < 0 || col >= g.n {
		return gridErrorf("AddColumn", 0, col, ErrIndexOutOfBounds)
	}
	for row := 0; row < g.n; row++ {
		idx := row*g.n + col
		g.data[idx] += delta
	}
	return nil
}

// RowSum returns the sum of row r.
func (g *Grid) RowSum(r int) (int, error) {
	if r < 0 || r >= g.n {
		return 0, gridErrorf("RowSum", r, 0, ErrIndexOutOfBounds)
	}
	sum := 0
	for col := 0; col < g.n; col++ {
		sum += g.data[r*g.n+col]
	}
	return sum, nil
}

// Clone returns a deep, independent copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{n: g.n, data: make([]int, len(g.data))}
	copy(out.data, g.data)
	return out
}

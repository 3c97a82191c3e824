package timegrid_test

import (
	"testing"

	"github.com/homevisit/phleb-router/timegrid"
	"github.com/stretchr/testify/require"
)

func TestNewGridFromRows(t *testing.T) {
	g, err := timegrid.NewGridFromRows([][]int{
		{0, 5, 10},
		{5, 0, 7},
		{10, 7, 0},
	})
	require.NoError(t, err)
	v, err := g.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 10, v)
}

func TestAddColumnFoldsServiceTime(t *testing.T) {
	g, err := timegrid.NewGridFromRows([][]int{
		{0, 5},
		{5, 0},
	})
	require.NoError(t, err)
	require.NoError(t, g.AddColumn(1, 15))
	v, err := g.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 20, v)
	// column 0 untouched
	v0, err := g.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 5, v0)
}

func TestRowSum(t *testing.T) {
	g, err := timegrid.NewGridFromRows([][]int{
		{0, 3, 4},
		{3, 0, 2},
		{4, 2, 0},
	})
	require.NoError(t, err)
	sum, err := g.RowSum(0)
	require.NoError(t, err)
	require.Equal(t, 7, sum)
}

func TestOutOfBounds(t *testing.T) {
	g, err := timegrid.NewGrid(2)
	require.NoError(t, err)
	_, err = g.At(5, 0)
	require.ErrorIs(t, err, timegrid.ErrIndexOutOfBounds)
}

func TestNonSquareRows(t *testing.T) {
	_, err := timegrid.NewGridFromRows([][]int{
		{0, 1},
		{1, 0, 2},
	})
	require.ErrorIs(t, err, timegrid.ErrNotSquare)
}

package oracle_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/oracle"
)

func TestCachingOracle_MissThenHit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	calls := 0
	inner := oracle.Func(func(_ context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
		calls++
		return [][]int{{5}}, nil
	})

	c := oracle.NewCachingOracle(inner, rdb, time.Minute)
	origins := []entities.Coordinate{{Lat: 1, Lon: 1}}
	destinations := []entities.Coordinate{{Lat: 2, Lon: 2}}

	m1, err := c.Query(context.Background(), origins, destinations)
	require.NoError(t, err)
	require.Equal(t, [][]int{{5}}, m1)
	require.Equal(t, 1, calls)

	m2, err := c.Query(context.Background(), origins, destinations)
	require.NoError(t, err)
	require.Equal(t, [][]int{{5}}, m2)
	require.Equal(t, 1, calls, "second query should be served from cache")
}

func TestCachingOracle_DistinctKeysDoNotCollide(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	inner := oracle.Func(func(_ context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
		return [][]int{{int(origins[0].Lat)}}, nil
	})
	c := oracle.NewCachingOracle(inner, rdb, time.Minute)

	m1, err := c.Query(context.Background(), []entities.Coordinate{{Lat: 1}}, []entities.Coordinate{{Lat: 9}})
	require.NoError(t, err)
	m2, err := c.Query(context.Background(), []entities.Coordinate{{Lat: 2}}, []entities.Coordinate{{Lat: 9}})
	require.NoError(t, err)
	require.NotEqual(t, m1, m2)
}

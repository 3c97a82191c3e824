package oracle

import (
	"context"
	"math"

	"github.com/homevisit/phleb-router/entities"
)

// Constant returns a TravelTimeOracle that reports the same travel time
// between every origin/destination pair, matching spec §8 scenario S1/S2
// ("oracle returns 0 for all pairs" / "oracle returns 10 between them").
func Constant(minutes int) TravelTimeOracle {
	return Func(func(_ context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
		out := make([][]int, len(origins))
		for i := range out {
			row := make([]int, len(destinations))
			for j := range row {
				if sameCoordinate(origins[i], destinations[j]) {
					row[j] = 0
				} else {
					row[j] = minutes
				}
			}
			out[i] = row
		}
		return out, nil
	})
}

func sameCoordinate(a, b entities.Coordinate) bool {
	return a.Lat == b.Lat && a.Lon == b.Lon
}

// earthRadiusKm and assumedSpeedKmMin give a flat-earth-free approximation good enough for a
// local planning horizon; it is not used for anything but a deterministic,
// offline default when no real distance-matrix provider is configured.
const (
	earthRadiusKm     = 6371.0
	assumedSpeedKmMin = 0.5 // 30 km/h
)

// Haversine returns a TravelTimeOracle that derives travel minutes from
// great-circle distance at a fixed assumed speed. It is the offline
// fallback oracle (no network dependency), analogous in spirit to
// measure.HaversineByPoint() in the pack's nextmv-io/sdk reference usage.
func Haversine() TravelTimeOracle {
	return Func(func(_ context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
		out := make([][]int, len(origins))
		for i, o := range origins {
			row := make([]int, len(destinations))
			for j, d := range destinations {
				row[j] = haversineMinutes(o, d)
			}
			out[i] = row
		}
		return out, nil
	})
}

func haversineMinutes(a, b entities.Coordinate) int {
	if sameCoordinate(a, b) {
		return 0
	}
	lat1, lon1 := toRadians(a.Lat), toRadians(a.Lon)
	lat2, lon2 := toRadians(b.Lat), toRadians(b.Lon)
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	km := earthRadiusKm * c
	minutes := km / assumedSpeedKmMin
	return int(math.Round(minutes))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

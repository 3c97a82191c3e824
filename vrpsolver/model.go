// Package vrpsolver implements the Model Builder and Solver Driver (spec
// §4.2, §4.3) on top of github.com/nextmv-io/sdk/route, the constraint-
// programming VRP engine also used by the pack's nextmv routing template.
// The featurize.View's flat index space (0 = end, 1..K = technician
// starts, K+1..N-1 = orders) is remapped into the index convention that
// routing template demonstrates: stops first, then one (start, end) pair
// of indices per vehicle.
package vrpsolver

import (
	"github.com/nextmv-io/sdk/measure"
	"github.com/nextmv-io/sdk/route"

	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/featurize"
)

// BuildRouter translates a featurize.View into a route.Router: stops,
// vehicles, capacities, time windows, shifts, the span-cost-scaled
// objective, unassigned penalties, and the skill/gender eligibility
// constraint.
func BuildRouter(view *featurize.View, technicians []entities.Technician, cfg Config) (*route.Router, error) {
	if view.NumOrders == 0 {
		return nil, ErrEmptyView
	}

	stopCount := view.NumOrders
	vehicleCount := view.K

	stops := make([]route.Stop, stopCount)
	quantities := make([]int, stopCount)
	penalties := make([]int, stopCount)
	windows := make([]route.Window, stopCount)
	eligibleByStop := make([][]string, stopCount)

	vehicleIDs := make([]string, vehicleCount)
	for v, tech := range technicians {
		vehicleIDs[v] = tech.ID
	}

	orderStart, orderEnd := view.OrderNodeRange()
	for i := orderStart; i < orderEnd; i++ {
		stopIdx := i - orderStart
		meta := view.Metadata[i]
		stops[stopIdx] = route.Stop{
			ID:       meta.OrderID,
			Position: toPosition(meta.Coordinate),
		}
		quantities[stopIdx] = view.Demand[i]
		penalties[stopIdx] = view.RevenuePotential[i]
		windows[stopIdx] = route.Window{
			TimeWindow: route.TimeWindow{
				Start: cfg.minutesToTime(view.TimeWindowLower[i]),
				End:   cfg.minutesToTime(view.TimeWindowUpper[i]),
			},
			MaxWait: -1,
		}

		allowed := make([]string, 0, len(view.Eligibility[i]))
		for _, vehicleIdx := range view.Eligibility[i] {
			allowed = append(allowed, vehicleIDs[vehicleIdx])
		}
		eligibleByStop[stopIdx] = allowed
	}

	starts := make([]route.Position, vehicleCount)
	ends := make([]route.Position, vehicleCount)
	shifts := make([]route.TimeWindow, vehicleCount)
	capacities := make([]int, vehicleCount)
	endPosition := toPosition(view.Metadata[0].Coordinate)

	for v, tech := range technicians {
		starts[v] = toPosition(tech.Home)
		ends[v] = endPosition
		shifts[v] = route.TimeWindow{
			Start: cfg.minutesToTime(view.EndWindowLower),
			End:   cfg.minutesToTime(view.EndWindowUpper),
		}
		capacities[v] = view.VehicleCapacities[v]
	}

	travelTime := buildTravelTimeMeasure(view, stopCount, vehicleCount)

	valueFunctionMeasures := make([]route.ByIndex, vehicleCount)
	travelTimeMeasures := make([]route.ByIndex, vehicleCount)
	for v := range technicians {
		travelTimeMeasures[v] = travelTime
		valueFunctionMeasures[v] = measure.Scale(travelTime, float64(view.SpanCostCoefficient[v]))
	}

	constraint := newEligibilityConstraint(eligibleByStop, vehicleIDs)

	router, err := route.NewRouter(
		stops,
		vehicleIDs,
		route.Starts(starts),
		route.Ends(ends),
		route.Shifts(shifts),
		route.Capacity(quantities, capacities),
		route.Unassigned(penalties),
		route.Windows(windows),
		route.TravelTimeMeasures(travelTimeMeasures),
		route.ValueFunctionMeasures(valueFunctionMeasures),
		route.Constraint(constraint, vehicleIDs),
	)
	if err != nil {
		return nil, err
	}
	return router, nil
}

func toPosition(c entities.Coordinate) route.Position {
	return route.Position{Lon: c.Lon, Lat: c.Lat}
}

// buildTravelTimeMeasure remaps the View's shared-index grid (0 = end,
// 1..K = starts, K+1..N-1 = orders) into the stops-then-(start,end)-pairs
// index convention route.Indexed-based measures expect: stop indices
// 0..stopCount-1, followed by (start_v, end_v) pairs per vehicle.
func buildTravelTimeMeasure(view *featurize.View, stopCount, vehicleCount int) route.ByIndex {
	size := stopCount + 2*vehicleCount
	remap := func(i int) int {
		if i < stopCount {
			orderStart, _ := view.OrderNodeRange()
			return orderStart + i
		}
		rest := i - stopCount
		vehicle := rest / 2
		if rest%2 == 0 {
			return 1 + vehicle // start
		}
		return 0 // shared end
	}

	floats := make([][]float64, size)
	for a := 0; a < size; a++ {
		row := make([]float64, size)
		for b := 0; b < size; b++ {
			minutes, err := view.Time.At(remap(a), remap(b))
			if err != nil {
				minutes = 0
			}
			row[b] = float64(minutes)
		}
		floats[a] = row
	}

	return measure.Matrix(floats)
}

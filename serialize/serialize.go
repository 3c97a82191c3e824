// Package serialize implements the Solution Serializer (spec §4.4): it
// walks the CP solver's raw per-vehicle stop order and the Featurizer's
// View to recompute arrival/departure/slack windows, resolves the
// multi-end post-pass (nearest-catchment selection), and aggregates the
// dropped-order list and total revenue lost.
package serialize

import (
	"context"

	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/featurize"
	"github.com/homevisit/phleb-router/oracle"
	"github.com/homevisit/phleb-router/vrpsolver"
)

// Stop is one visited order on a technician's route, with timing recomputed
// from the View's travel-time grid (which already has service minutes
// folded in, per spec §3).
type Stop struct {
	OrderID         string
	ArrivalMinute   int
	DepartureMinute int
	SlackMinutes    int
}

// Waypoint is one location in a route's full sequence, including the
// technician's own start and the resolved end catchment, for consumers
// that need the realized-time/deadline pair at every node (the
// Slack-Insertion Query's insertion inequality, spec §4.5).
type Waypoint struct {
	NodeID          string
	Coordinate      entities.Coordinate
	LowerTimeMinute int // the realized/earliest time the technician leaves this waypoint (departure, i.e. arrival plus service, at order stops; arrival at the end)
	UpperTimeMinute int // the node's window deadline
}

// Route is one technician's full plan for the day.
type Route struct {
	TechnicianID     string
	Stops            []Stop
	Waypoints        []Waypoint
	EndCatchmentID   string
	TotalSpanMinutes int
	SpanCost         int
}

// Plan is the fully serialized solution.
type Plan struct {
	Routes           []Route
	DroppedOrderIDs  []string
	TotalRevenueLost int
	SolverStatus     string
}

// Serialize builds a Plan from the solver's raw output. endOracle is
// consulted only in featurize.MultiEnd mode, to pick each route's nearest
// catchment after the fact (spec §4.4's multi-end post-pass); it may be nil
// in featurize.SingleEnd mode.
func Serialize(ctx context.Context, view *featurize.View, technicians []entities.Technician, orders []entities.Order, catchments []entities.Catchment, solution *vrpsolver.Solution, endOracle oracle.TravelTimeOracle) (*Plan, error) {
	orderNodeByID := make(map[string]int, view.NumOrders)
	orderStart, orderEnd := view.OrderNodeRange()
	for i := orderStart; i < orderEnd; i++ {
		orderNodeByID[view.Metadata[i].OrderID] = i
	}

	techByID := make(map[string]entities.Technician, len(technicians))
	techIndexByID := make(map[string]int, len(technicians))
	for idx, t := range technicians {
		techByID[t.ID] = t
		techIndexByID[t.ID] = idx
	}

	revenueByID := make(map[string]int, len(orders))
	for _, o := range orders {
		revenueByID[o.ID] = o.Revenue
	}

	routes := make([]Route, 0, len(solution.Vehicles))
	for _, v := range solution.Vehicles {
		tech := techByID[v.TechnicianID]
		techIdx := techIndexByID[v.TechnicianID]
		startNode := 1 + techIdx

		route := Route{TechnicianID: v.TechnicianID}
		prevNode := startNode
		clock := tech.ShiftStartMinute
		route.Waypoints = append(route.Waypoints, Waypoint{
			NodeID:          "start:" + tech.ID,
			Coordinate:      view.Metadata[startNode].Coordinate,
			LowerTimeMinute: clock,
			UpperTimeMinute: view.TimeWindowUpper[startNode],
		})

		for _, orderID := range v.OrderIDs {
			node, ok := orderNodeByID[orderID]
			if !ok {
				continue
			}
			folded, err := view.Time.At(prevNode, node)
			if err != nil {
				return nil, err
			}
			service := view.ServiceMinutes[node]
			arrival := clock + folded - service
			if arrival < view.TimeWindowLower[node] {
				arrival = view.TimeWindowLower[node]
			}
			departure := arrival + service
			route.Stops = append(route.Stops, Stop{
				OrderID:         orderID,
				ArrivalMinute:   arrival,
				DepartureMinute: departure,
				SlackMinutes:    view.TimeWindowUpper[node] - arrival,
			})
			route.Waypoints = append(route.Waypoints, Waypoint{
				NodeID:          orderID,
				Coordinate:      view.Metadata[node].Coordinate,
				LowerTimeMinute: departure,
				UpperTimeMinute: view.TimeWindowUpper[node],
			})
			clock = departure
			prevNode = node
		}

		endCatchmentID, endTravel, err := resolveEndCatchment(ctx, view, catchments, prevNode, endOracle)
		if err != nil {
			return nil, err
		}
		route.EndCatchmentID = endCatchmentID
		finalClock := clock + endTravel
		endCoord := view.Metadata[0].Coordinate
		for _, c := range catchments {
			if c.ID == endCatchmentID {
				endCoord = c.Coordinate
				break
			}
		}
		route.Waypoints = append(route.Waypoints, Waypoint{
			NodeID:          endCatchmentID,
			Coordinate:      endCoord,
			LowerTimeMinute: finalClock,
			UpperTimeMinute: view.TimeWindowUpper[0],
		})

		route.TotalSpanMinutes = finalClock - tech.ShiftStartMinute
		route.SpanCost = route.TotalSpanMinutes * tech.SpanCostCoefficient()
		routes = append(routes, route)
	}

	dropped := make([]string, 0, len(solution.UnassignedOrderIDs))
	totalRevenueLost := 0
	for _, orderID := range solution.UnassignedOrderIDs {
		dropped = append(dropped, orderID)
		totalRevenueLost += revenueByID[orderID]
	}

	return &Plan{
		Routes:           routes,
		DroppedOrderIDs:  dropped,
		TotalRevenueLost: totalRevenueLost,
		SolverStatus:     solution.Status,
	}, nil
}

// resolveEndCatchment implements the multi-end post-pass: in SingleEnd
// mode the single configured catchment is used directly and its travel
// time is read straight from the View's shared end node (index 0). In
// MultiEnd mode every catchment is queried fresh via endOracle and the
// nearest one wins, ties broken by lowest catchment index (spec §4.4).
func resolveEndCatchment(ctx context.Context, view *featurize.View, catchments []entities.Catchment, fromNode int, endOracle oracle.TravelTimeOracle) (catchmentID string, travelMinutes int, err error) {
	if view.Mode == featurize.SingleEnd {
		travel, err := view.Time.At(fromNode, 0)
		if err != nil {
			return "", 0, err
		}
		return catchments[0].ID, travel, nil
	}

	fromCoord := view.Metadata[fromNode].Coordinate
	best := -1
	bestTravel := 0
	for i, c := range catchments {
		matrix, err := endOracle.Query(ctx, []entities.Coordinate{fromCoord}, []entities.Coordinate{c.Coordinate})
		if err != nil {
			return "", 0, err
		}
		travel := matrix[0][0]
		if best == -1 || travel < bestTravel {
			best = i
			bestTravel = travel
		}
	}
	return catchments[best].ID, bestTravel, nil
}

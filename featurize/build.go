package featurize

import (
	"context"

	"github.com/homevisit/phleb-router/engineerr"
	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/oracle"
	"github.com/homevisit/phleb-router/timegrid"
)

// BuildView assembles the solver's flat index-space view from the business
// entities, per spec §4.1 and §9 ("a flat index-space — indices, not
// pointers"). Node 0 is the notional end, nodes 1..K are technician starts,
// and nodes K+1..N-1 are orders.
//
// mode is upgraded from SingleEnd to MultiEnd automatically when more than
// one catchment is supplied, mirroring the original source's behavior of
// padding the end node whenever catchment selection must be deferred to the
// post-pass (spec §4.4).
func BuildView(ctx context.Context, orders []entities.Order, technicians []entities.Technician, catchments []entities.Catchment, o oracle.TravelTimeOracle, mode Mode) (*View, error) {
	if err := validateInputs(orders, technicians, catchments); err != nil {
		return nil, err
	}

	if len(catchments) > 1 {
		mode = MultiEnd
	}

	k := len(technicians)
	numOrders := len(orders)
	n := 1 + k + numOrders

	meta := buildMetadata(mode, technicians, catchments, orders)

	raw, err := queryRawGrid(ctx, o, mode, technicians, catchments, orders)
	if err != nil {
		return nil, err
	}

	endLower, endUpper := technicians[0].EndWindow()

	twLower := make([]int, n)
	twUpper := make([]int, n)
	demand := make([]int, n)
	service := make([]int, n)
	revenue := make([]int, n)

	twLower[0], twUpper[0] = endLower, endUpper

	for v, tech := range technicians {
		idx := 1 + v
		lower, upper := tech.ShiftStartMinute, tech.ShiftEndMinute
		twLower[idx], twUpper[idx] = lower, upper
	}

	// Revenue potential is scaled against the unfolded matrix's row 1 (the
	// first technician's row), per spec §3.
	rowSum, err := raw.RowSum(1)
	if err != nil {
		return nil, engineerr.Invalid("computing revenue potential", err)
	}

	for oi, ord := range orders {
		idx := 1 + k + oi
		lower, upper := ord.Window()
		twLower[idx], twUpper[idx] = lower, upper
		demand[idx] = ord.DemandUnits
		service[idx] = ord.ServiceMinutes
		revenue[idx] = ord.Revenue * rowSum
	}

	grid := raw
	for j := 0; j < n; j++ {
		if service[j] > 0 {
			if err := grid.AddColumn(j, service[j]); err != nil {
				return nil, engineerr.Invalid("folding service time into grid", err)
			}
		}
	}

	capacities := make([]int, k)
	spanCost := make([]int, k)
	for v, tech := range technicians {
		capacities[v] = tech.Capacity
		spanCost[v] = tech.SpanCostCoefficient()
	}

	eligibility := make([][]int, n)
	for oi, ord := range orders {
		idx := 1 + k + oi
		var eligible []int
		for v, tech := range technicians {
			if technicianEligible(tech, ord) {
				eligible = append(eligible, v)
			}
		}
		eligibility[idx] = eligible
	}

	return &View{
		Mode:                mode,
		N:                   n,
		K:                   k,
		NumOrders:           numOrders,
		Time:                grid,
		TimeWindowLower:     twLower,
		TimeWindowUpper:     twUpper,
		EndWindowLower:      endLower,
		EndWindowUpper:      endUpper,
		Demand:              demand,
		ServiceMinutes:      service,
		RevenuePotential:    revenue,
		VehicleCapacities:   capacities,
		SpanCostCoefficient: spanCost,
		Eligibility:         eligibility,
		Metadata:            meta,
		Catchments:          catchments,
	}, nil
}

// BuildViewFromMatrix builds a View from a precomputed travel-time matrix
// instead of invoking a TravelTimeOracle, for callers that already have a
// matrix on hand (offline evaluation, replay of a recorded plan).
func BuildViewFromMatrix(rows [][]int, orders []entities.Order, technicians []entities.Technician, catchments []entities.Catchment, mode Mode) (*View, error) {
	static := oracle.Func(func(_ context.Context, _, _ []entities.Coordinate) ([][]int, error) {
		return rows, nil
	})
	return BuildView(context.Background(), orders, technicians, catchments, static, mode)
}

func validateInputs(orders []entities.Order, technicians []entities.Technician, catchments []entities.Catchment) error {
	if len(technicians) == 0 {
		return engineerr.Invalid("no technicians supplied", ErrNoTechnicians)
	}
	if len(catchments) == 0 {
		return engineerr.Invalid("no catchments supplied", ErrNoCatchments)
	}
	for _, c := range catchments {
		if !c.Coordinate.Valid() {
			return engineerr.Invalid("catchment "+c.ID+" has an invalid coordinate", ErrBadCoordinate)
		}
	}
	for _, t := range technicians {
		if !t.Home.Valid() {
			return engineerr.Invalid("technician "+t.ID+" has an invalid coordinate", ErrBadCoordinate)
		}
		if t.ShiftStartMinute > t.ShiftEndMinute {
			return engineerr.Invalid("technician "+t.ID+" has an inverted shift window", ErrInvertedWindow)
		}
	}
	for _, o := range orders {
		if !o.Coordinate.Valid() {
			return engineerr.Invalid("order "+o.ID+" has an invalid coordinate", ErrBadCoordinate)
		}
		lower, upper := o.Window()
		if lower > upper {
			return engineerr.Invalid("order "+o.ID+" has an inverted time window", ErrInvertedWindow)
		}
	}
	return nil
}

func buildMetadata(mode Mode, technicians []entities.Technician, catchments []entities.Catchment, orders []entities.Order) []NodeMeta {
	k := len(technicians)
	n := 1 + k + len(orders)
	meta := make([]NodeMeta, n)

	// In MultiEnd mode the end node is a zero-cost notional padding; the
	// first catchment is kept as a placeholder coordinate so callers
	// indexing Metadata never see a zero value.
	meta[0] = NodeMeta{Kind: KindEnd, Coordinate: catchments[0].Coordinate}

	for v, tech := range technicians {
		meta[1+v] = NodeMeta{Kind: KindStart, PhlebID: tech.ID, Coordinate: tech.Home}
	}

	for oi, ord := range orders {
		meta[1+k+oi] = NodeMeta{Kind: KindOrder, OrderID: ord.ID, Coordinate: ord.Coordinate, Skills: ord.RequiredSkills}
	}

	return meta
}

// queryRawGrid queries the oracle over the real coordinates and returns the
// full N x N grid, zero-padding row/column 0 in MultiEnd mode (spec §4.1:
// "a zero-filled row+column padding in multi-end mode so that the solver
// treats the end as free").
func queryRawGrid(ctx context.Context, o oracle.TravelTimeOracle, mode Mode, technicians []entities.Technician, catchments []entities.Catchment, orders []entities.Order) (*timegrid.Grid, error) {
	k := len(technicians)
	numOrders := len(orders)
	n := 1 + k + numOrders

	if mode == SingleEnd {
		coords := make([]entities.Coordinate, 0, n)
		coords = append(coords, catchments[0].Coordinate)
		for _, t := range technicians {
			coords = append(coords, t.Home)
		}
		for _, ord := range orders {
			coords = append(coords, ord.Coordinate)
		}
		rows, err := o.Query(ctx, coords, coords)
		if err != nil {
			return nil, err
		}
		return timegrid.NewGridFromRows(rows)
	}

	// MultiEnd: query only over real (non-end) coordinates, then pad.
	m := k + numOrders
	coords := make([]entities.Coordinate, 0, m)
	for _, t := range technicians {
		coords = append(coords, t.Home)
	}
	for _, ord := range orders {
		coords = append(coords, ord.Coordinate)
	}
	sub, err := o.Query(ctx, coords, coords)
	if err != nil {
		return nil, err
	}

	grid, err := timegrid.NewGrid(n)
	if err != nil {
		return nil, engineerr.Invalid("allocating travel-time grid", err)
	}
	for r := 0; r < m; r++ {
		for c := 0; c < m; c++ {
			if err := grid.Set(r+1, c+1, sub[r][c]); err != nil {
				return nil, engineerr.Invalid("padding travel-time grid", err)
			}
		}
	}
	return grid, nil
}

func technicianEligible(tech entities.Technician, order entities.Order) bool {
	if !tech.Expertise.Superset(order.RequiredSkills) {
		return false
	}
	if pref, ok := order.GenderPreference.Get(); ok && pref != tech.Gender {
		return false
	}
	return true
}

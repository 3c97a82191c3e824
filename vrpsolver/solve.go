package vrpsolver

import (
	"context"

	"github.com/nextmv-io/sdk/route"
	"github.com/nextmv-io/sdk/store"

	"github.com/homevisit/phleb-router/engineerr"
	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/featurize"
)

// VehicleRoute is one technician's ordered list of served order IDs, lifted
// out of the solver's own route.Output shape so the Solution Serializer
// depends only on this stable, package-owned type.
type VehicleRoute struct {
	TechnicianID string
	OrderIDs     []string
}

// Solution is the CP solver's raw output, translated out of route.Output
// immediately after solving (spec §4.3: "the driver hands the serializer
// plain technician/order IDs, never solver-internal indices").
type Solution struct {
	Vehicles           []VehicleRoute
	UnassignedOrderIDs []string
	Status             string
}

// Solve builds the router for view and runs it to cfg's budget, returning
// the raw solver output for the Solution Serializer to translate into the
// wire contract (spec §4.4).
//
// A solver run that completes without any feasible incumbent is reported
// as engineerr.KindInfeasibleModel, carrying the empty-eligibility and
// unreachable order diagnostics (spec §7); a solver panic recovers into
// KindBudgetExceeded. ctx is not passed to the solver: if it is already
// done when the solver returns, the Solution's Status is "budget-exceeded".
func Solve(ctx context.Context, view *featurize.View, technicians []entities.Technician, cfg Config) (solution *Solution, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = engineerr.BudgetExceeded("solver did not return within its budget")
		}
	}()

	router, buildErr := BuildRouter(view, technicians, cfg)
	if buildErr != nil {
		return nil, buildErr
	}

	opts := store.DefaultOptions()
	opts.Limits.Duration = cfg.budget()

	solver, err := router.Solver(opts)
	if err != nil {
		return nil, engineerr.Oracle("constructing CP solver", err)
	}

	last := solver.Last()
	if last == nil {
		diag := diagnose(view, technicians)
		return nil, engineerr.Infeasible("solver produced no incumbent solution", diag)
	}

	output := router.Format(last)

	vehicles := make([]VehicleRoute, len(output.Vehicles))
	for i, v := range output.Vehicles {
		vehicles[i] = VehicleRoute{TechnicianID: v.ID, OrderIDs: v.Route}
	}
	unassigned := make([]string, len(output.Unassigned))
	for i, s := range output.Unassigned {
		unassigned[i] = s.ID
	}

	return &Solution{Vehicles: vehicles, UnassignedOrderIDs: unassigned, Status: statusOf(ctx, last)}, nil
}

func statusOf(ctx context.Context, last store.Solution) string {
	if err := ctx.Err(); err != nil {
		return "budget-exceeded"
	}
	return "solved"
}

func diagnose(view *featurize.View, technicians []entities.Technician) engineerr.Diagnostics {
	var emptyEligibility []string
	orderStart, orderEnd := view.OrderNodeRange()
	for i := orderStart; i < orderEnd; i++ {
		if len(view.Eligibility[i]) == 0 {
			emptyEligibility = append(emptyEligibility, view.Metadata[i].OrderID)
		}
	}

	var unreachable []string
	for i := orderStart; i < orderEnd; i++ {
		reachable := false
		for v := range technicians {
			minutes, err := view.Time.At(1+v, i)
			// Time has service folded into column i; subtract it to get the
			// arrival after leaving start node 1+v at its shift start.
			arrival := view.TimeWindowLower[1+v] + minutes - view.ServiceMinutes[i]
			if err == nil && arrival <= view.TimeWindowUpper[i] {
				reachable = true
				break
			}
		}
		if !reachable {
			unreachable = append(unreachable, view.Metadata[i].OrderID)
		}
	}

	return engineerr.Diagnostics{
		EmptyEligibilityOrderIDs: emptyEligibility,
		UnreachableOrderIDs:      unreachable,
		SolverStatus:             "infeasible",
	}
}

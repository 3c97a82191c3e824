package vrpsolver

import "github.com/nextmv-io/sdk/route"

// eligibilityConstraint restricts which vehicles may serve which stops,
// generalizing the skill/gender eligibility lists computed by the
// Featurizer (spec §4.1) into a route.VehicleConstraint. It is modeled on
// the CustomConstraint pattern from nextmv's routing template: a single
// constraint value is attached to every vehicle via route.Constraint, and
// Violated is asked, for a partially built route, whether it may stand.
type eligibilityConstraint struct {
	// eligibleByStop[i] lists the vehicle IDs allowed to serve stop i
	// (0-based into the stops slice handed to route.NewRouter, i.e. the
	// view's order nodes in the same order). An empty/nil entry means the
	// stop is eligible for no vehicle and must go unassigned.
	eligibleByStop [][]string
	vehicleIndex   map[string]int
}

func newEligibilityConstraint(eligibleByStop [][]string, vehicleIDs []string) eligibilityConstraint {
	idx := make(map[string]int, len(vehicleIDs))
	for i, id := range vehicleIDs {
		idx[id] = i
	}
	return eligibilityConstraint{eligibleByStop: eligibleByStop, vehicleIndex: idx}
}

// Violated reports whether any stop already assigned to vehicle's
// partial route is ineligible for vehicle's ID.
func (c eligibilityConstraint) Violated(vehicle route.PartialVehicle) (route.VehicleConstraint, bool) {
	violated := c.violatedFor(vehicle.Route(), vehicle.Vehicle())
	return c, violated
}

// violatedFor holds the eligibility check itself, apart from the
// route.PartialVehicle plumbing, so it can be exercised directly in
// tests. visited is bookended by one start and one end marker; only the
// interior entries visited[1:len(visited)-1] are real stop indices.
func (c eligibilityConstraint) violatedFor(visited []int, vehicleID string) bool {
	if len(visited) <= 2 {
		return false
	}
	for _, stopIdx := range visited[1 : len(visited)-1] {
		if stopIdx < 0 || stopIdx >= len(c.eligibleByStop) {
			continue
		}
		allowed := c.eligibleByStop[stopIdx]
		if len(allowed) == 0 || !containsString(allowed, vehicleID) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

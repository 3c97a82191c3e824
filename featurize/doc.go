// Package featurize implements the Featurizer (spec §4.1): it turns Orders,
// Technicians, and Catchments into the flat, index-space View the solver
// operates on, querying a TravelTimeOracle for the underlying travel-time
// grid and folding service minutes, eligibility, and revenue potential into
// it along the way.
package featurize

// Package sweep implements the Scenario Sweep (spec §4.6): given a base
// plan input and a target technician-mix ratio, it produces R randomized
// reshuffles of order service-types over the same coordinate/time
// skeleton, runs the full engine per shuffle, and reports per-run
// aggregates. Runs fan out over a bounded errgroup, mirroring the pack's
// concurrent-worker idiom.
package sweep

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/featurize"
	"github.com/homevisit/phleb-router/oracle"
	"github.com/homevisit/phleb-router/serialize"
	"github.com/homevisit/phleb-router/vrpsolver"
)

// mixTolerance bounds the acceptable floating-point drift from a Mix
// summing to exactly 1.
const mixTolerance = 1e-6

// DefaultRuns is R from spec §4.6.
const DefaultRuns = 10

// baseCostBySkill and revenueBySkill mirror the reference deployment's
// DataSimulation cost/revenue tables, supplementing the distilled spec
// with the original source's per-skill-tier pricing.
var (
	baseCostBySkill = map[entities.Skill]int{
		entities.SkillRegular: 800,
		entities.SkillPremium: 900,
		entities.SkillSpecial: 1000,
	}
	revenueBySkill = map[entities.Skill]int{
		entities.SkillRegular: 200,
		entities.SkillPremium: 300,
		entities.SkillSpecial: 400,
	}
)

// Mix is a target technician-service-type ratio; its three components must
// sum to 1.
type Mix struct {
	Regular float64
	Premium float64
	Special float64
}

// Run is one reshuffled scenario's outcome.
type Run struct {
	RunIndex              int
	AchievedMix           map[entities.Skill]int // actual per-tier order counts this run
	TotalTransitMinutes   int
	TotalCost             int
	Counts                map[entities.Skill]int
	Plan                  *serialize.Plan
	UsedTechnicianIndices []int
}

// MaxConcurrency bounds the errgroup fan-out across scenario runs.
const MaxConcurrency = 4

// Sweep runs runs (or DefaultRuns, if runs <= 0) reshuffles of baseOrders'
// service-types against mix, solving and serializing each independently,
// and returns one Run per reshuffle in run-index order.
func Sweep(ctx context.Context, baseOrders []entities.Order, technicians []entities.Technician, catchments []entities.Catchment, o oracle.TravelTimeOracle, mode featurize.Mode, mix Mix, solverCfg vrpsolver.Config, runs int) ([]Run, error) {
	if runs <= 0 {
		runs = DefaultRuns
	}
	if math.Abs(mix.Regular+mix.Premium+mix.Special-1) > mixTolerance {
		return nil, ErrMixNotNormalized
	}

	results := make([]Run, runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	for r := 0; r < runs; r++ {
		r := r
		g.Go(func() error {
			shuffled, achieved := reshuffle(baseOrders, mix, int64(r))

			view, err := featurize.BuildView(gctx, shuffled, technicians, catchments, o, mode)
			if err != nil {
				return err
			}

			solution, err := vrpsolver.Solve(gctx, view, technicians, solverCfg)
			if err != nil {
				return err
			}

			plan, err := serialize.Serialize(gctx, view, technicians, shuffled, catchments, solution, o)
			if err != nil {
				return err
			}

			results[r] = Run{
				RunIndex:              r,
				AchievedMix:           achieved,
				TotalTransitMinutes:   totalTransit(plan),
				TotalCost:             totalCost(plan, technicians, shuffled),
				Counts:                achieved,
				Plan:                  plan,
				UsedTechnicianIndices: usedTechnicianIndices(plan, technicians),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reshuffle reassigns each order's required-skill tier (and its
// associated revenue) to match mix's target ratio, holding every other
// field (coordinate, time window, demand) fixed. Reshuffling is seeded by
// runIndex so scenario runs are reproducible.
func reshuffle(orders []entities.Order, mix Mix, runIndex int64) ([]entities.Order, map[entities.Skill]int) {
	n := len(orders)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(runIndex + 1))
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	nRegular := int(mix.Regular * float64(n))
	nPremium := int(mix.Premium * float64(n))
	nSpecial := n - nRegular - nPremium

	tierFor := make([]entities.Skill, n)
	for i, idx := range order {
		switch {
		case i < nRegular:
			tierFor[idx] = entities.SkillRegular
		case i < nRegular+nPremium:
			tierFor[idx] = entities.SkillPremium
		default:
			tierFor[idx] = entities.SkillSpecial
		}
	}
	_ = nSpecial

	out := make([]entities.Order, n)
	counts := map[entities.Skill]int{entities.SkillRegular: 0, entities.SkillPremium: 0, entities.SkillSpecial: 0}
	for i, o := range orders {
		tier := tierFor[i]
		o.RequiredSkills = entities.NewSkillSet(tier)
		o.Revenue = revenueBySkill[tier]
		out[i] = o
		counts[tier]++
	}
	return out, counts
}

func totalTransit(plan *serialize.Plan) int {
	total := 0
	for _, route := range plan.Routes {
		total += route.TotalSpanMinutes
	}
	return total
}

// totalCost sums base_cost_by_skill (spec §4.6) over every technician used
// in this run, keyed by the highest-tier skill that technician actually
// served.
func totalCost(plan *serialize.Plan, technicians []entities.Technician, orders []entities.Order) int {
	skillByOrderID := make(map[string]entities.Skill, len(orders))
	for _, o := range orders {
		for sk := range o.RequiredSkills {
			skillByOrderID[o.ID] = sk
		}
	}

	total := 0
	for _, route := range plan.Routes {
		if len(route.Stops) == 0 {
			continue
		}
		highest := entities.SkillRegular
		for _, stop := range route.Stops {
			if sk, ok := skillByOrderID[stop.OrderID]; ok && rank(sk) > rank(highest) {
				highest = sk
			}
		}
		total += baseCostBySkill[highest]
	}
	return total
}

func rank(sk entities.Skill) int {
	for i, r := range entities.DefaultSkillRank {
		if r == sk {
			return i
		}
	}
	return -1
}

func usedTechnicianIndices(plan *serialize.Plan, technicians []entities.Technician) []int {
	indexByID := make(map[string]int, len(technicians))
	for i, t := range technicians {
		indexByID[t.ID] = i
	}
	used := make([]int, 0, len(plan.Routes))
	for _, route := range plan.Routes {
		if len(route.Stops) == 0 {
			continue
		}
		used = append(used, indexByID[route.TechnicianID])
	}
	sort.Ints(used)
	return used
}

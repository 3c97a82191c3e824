package featurize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/homevisit/phleb-router/engineerr"
	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/featurize"
	"github.com/homevisit/phleb-router/oracle"
)

func mustOrder(t *testing.T, id string, coord entities.Coordinate, requestedStart, service, demand, revenue int, skills entities.SkillSet, gender entities.Option[entities.Gender]) entities.Order {
	t.Helper()
	o, err := entities.NewOrder(id, coord, requestedStart, service, demand, revenue, skills, gender)
	require.NoError(t, err)
	return o
}

func mustTechnician(t *testing.T, id string, home entities.Coordinate, shiftStart, capacity, cost int, rating float64, skills entities.SkillSet, gender entities.Gender) entities.Technician {
	t.Helper()
	tech, err := entities.NewTechnician(id, home, shiftStart, capacity, cost, rating, skills, entities.DefaultSkillRank, gender)
	require.NoError(t, err)
	return tech
}

func mustCatchment(t *testing.T, id string, coord entities.Coordinate) entities.Catchment {
	t.Helper()
	c, err := entities.NewCatchment(id, coord)
	require.NoError(t, err)
	return c
}

func TestBuildView_NodeNumberingAndWindows(t *testing.T) {
	catchment := mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0})
	tech := mustTechnician(t, "t1", entities.Coordinate{Lat: 1, Lon: 1}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.GenderFemale)
	order := mustOrder(t, "o1", entities.Coordinate{Lat: 2, Lon: 2}, 400, 15, 1, 200, entities.NewSkillSet(entities.SkillRegular), entities.None[entities.Gender]())

	o := oracle.Constant(10)
	v, err := featurize.BuildView(context.Background(), []entities.Order{order}, []entities.Technician{tech}, []entities.Catchment{catchment}, o, featurize.SingleEnd)
	require.NoError(t, err)

	require.Equal(t, 3, v.N)
	require.Equal(t, 1, v.K)
	require.Equal(t, featurize.SingleEnd, v.Mode)

	require.Equal(t, 360, v.TimeWindowLower[1])
	require.Equal(t, 360+entities.ShiftLengthMinutes, v.TimeWindowUpper[1])

	lower, upper := tech.EndWindow()
	require.Equal(t, lower, v.EndWindowLower)
	require.Equal(t, upper, v.EndWindowUpper)
	require.Equal(t, lower, v.TimeWindowLower[0])
	require.Equal(t, upper, v.TimeWindowUpper[0])

	require.Equal(t, 400, v.TimeWindowLower[2])
	require.Equal(t, 460, v.TimeWindowUpper[2])
}

func TestBuildView_FoldsServiceIntoGrid(t *testing.T) {
	catchment := mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0})
	tech := mustTechnician(t, "t1", entities.Coordinate{Lat: 1, Lon: 1}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.GenderFemale)
	order := mustOrder(t, "o1", entities.Coordinate{Lat: 2, Lon: 2}, 400, 15, 1, 200, entities.NewSkillSet(entities.SkillRegular), entities.None[entities.Gender]())

	v, err := featurize.BuildView(context.Background(), []entities.Order{order}, []entities.Technician{tech}, []entities.Catchment{catchment}, oracle.Constant(10), featurize.SingleEnd)
	require.NoError(t, err)

	// Column 2 (the order node) should have the 15-minute service folded in
	// on top of the constant 10-minute travel time, for every row.
	val, err := v.Time.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 25, val)

	val, err = v.Time.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 25, val)

	// Column 0/1 (end, technician start) carry no service time.
	val, err = v.Time.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 10, val)
}

func TestBuildView_EligibilityBySkillSuperset(t *testing.T) {
	catchment := mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0})
	regularTech := mustTechnician(t, "t1", entities.Coordinate{}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.GenderMale)
	premiumTech := mustTechnician(t, "t2", entities.Coordinate{}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillPremium), entities.GenderMale)
	order := mustOrder(t, "o1", entities.Coordinate{Lat: 1, Lon: 1}, 400, 15, 1, 200, entities.NewSkillSet(entities.SkillPremium), entities.None[entities.Gender]())

	v, err := featurize.BuildView(context.Background(), []entities.Order{order}, []entities.Technician{regularTech, premiumTech}, []entities.Catchment{catchment}, oracle.Constant(10), featurize.SingleEnd)
	require.NoError(t, err)

	orderIdx := v.K + 1
	require.Equal(t, []int{1}, v.Eligibility[orderIdx], "only the premium-skilled technician (index 1) is eligible")
}

func TestBuildView_GenderPreferenceNarrowsWithoutHardDrop(t *testing.T) {
	catchment := mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0})
	maleTech := mustTechnician(t, "t1", entities.Coordinate{}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.GenderMale)
	order := mustOrder(t, "o1", entities.Coordinate{Lat: 1, Lon: 1}, 400, 15, 1, 200, entities.NewSkillSet(entities.SkillRegular), entities.Some(entities.GenderFemale))

	v, err := featurize.BuildView(context.Background(), []entities.Order{order}, []entities.Technician{maleTech}, []entities.Catchment{catchment}, oracle.Constant(10), featurize.SingleEnd)
	require.NoError(t, err)

	orderIdx := v.K + 1
	require.Empty(t, v.Eligibility[orderIdx], "gender mismatch narrows eligibility to empty, never a hard validation error")
}

func TestBuildView_MultiCatchmentUpgradesModeAndZeroPadsEnd(t *testing.T) {
	catchments := []entities.Catchment{
		mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0}),
		mustCatchment(t, "c2", entities.Coordinate{Lat: 5, Lon: 5}),
	}
	tech := mustTechnician(t, "t1", entities.Coordinate{Lat: 1, Lon: 1}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.GenderFemale)
	order := mustOrder(t, "o1", entities.Coordinate{Lat: 2, Lon: 2}, 400, 15, 1, 200, entities.NewSkillSet(entities.SkillRegular), entities.None[entities.Gender]())

	v, err := featurize.BuildView(context.Background(), []entities.Order{order}, []entities.Technician{tech}, catchments, oracle.Constant(10), featurize.SingleEnd)
	require.NoError(t, err)

	require.Equal(t, featurize.MultiEnd, v.Mode, "more than one catchment upgrades to MultiEnd regardless of the requested mode")

	val, err := v.Time.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0, val, "the notional end's row is zero-padded")

	val, err = v.Time.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 0, val, "the notional end's column is zero-padded")
}

func TestBuildView_RevenuePotentialScalesByFirstTechnicianRow(t *testing.T) {
	catchment := mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0})
	tech := mustTechnician(t, "t1", entities.Coordinate{Lat: 1, Lon: 1}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.GenderMale)
	order := mustOrder(t, "o1", entities.Coordinate{Lat: 2, Lon: 2}, 400, 15, 1, 200, entities.NewSkillSet(entities.SkillRegular), entities.None[entities.Gender]())

	v, err := featurize.BuildView(context.Background(), []entities.Order{order}, []entities.Technician{tech}, []entities.Catchment{catchment}, oracle.Constant(10), featurize.SingleEnd)
	require.NoError(t, err)

	// Row 1 (the technician start) has two off-diagonal 10s pre-fold, so
	// revenue potential is 200 * 20 = 4000.
	orderIdx := v.K + 1
	require.Equal(t, 4000, v.RevenuePotential[orderIdx])
}

func TestBuildView_RejectsEmptyTechnicians(t *testing.T) {
	catchment := mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0})
	_, err := featurize.BuildView(context.Background(), nil, nil, []entities.Catchment{catchment}, oracle.Constant(10), featurize.SingleEnd)
	require.Error(t, err)
	kind, ok := engineerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, engineerr.KindInvalidInput, kind)
}

func TestBuildViewFromMatrix(t *testing.T) {
	catchment := mustCatchment(t, "c1", entities.Coordinate{Lat: 0, Lon: 0})
	tech := mustTechnician(t, "t1", entities.Coordinate{}, 360, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.GenderMale)
	order := mustOrder(t, "o1", entities.Coordinate{Lat: 1, Lon: 1}, 400, 15, 1, 200, entities.NewSkillSet(entities.SkillRegular), entities.None[entities.Gender]())

	rows := [][]int{
		{0, 5, 7},
		{5, 0, 6},
		{7, 6, 0},
	}
	v, err := featurize.BuildViewFromMatrix(rows, []entities.Order{order}, []entities.Technician{tech}, []entities.Catchment{catchment}, featurize.SingleEnd)
	require.NoError(t, err)
	require.Equal(t, 3, v.N)
}

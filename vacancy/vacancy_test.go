package vacancy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/oracle"
	"github.com/homevisit/phleb-router/serialize"
	"github.com/homevisit/phleb-router/vacancy"
)

// TestFindVacancies_ScenarioS5 reproduces spec §8 S5: a plan with vehicle
// v0's sequence [home@420 -> A@480(service15,slack60) -> B@600 -> end],
// and a new order at requested 510 / service 15, transits 5+5 to/from A
// and B. Expected: one row, total_transit=10, window_start=floor((495+10)/60)=8,
// window_end=9.
func TestFindVacancies_ScenarioS5(t *testing.T) {
	tech, err := entities.NewTechnician("v0", entities.Coordinate{}, 420, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.DefaultSkillRank, entities.GenderMale)
	require.NoError(t, err)

	plan := &serialize.Plan{
		Routes: []serialize.Route{
			{
				TechnicianID: "v0",
				Waypoints: []serialize.Waypoint{
					{NodeID: "start:v0", Coordinate: entities.Coordinate{Lat: 0, Lon: 0}, LowerTimeMinute: 420, UpperTimeMinute: 420 + 8*60},
					{NodeID: "A", Coordinate: entities.Coordinate{Lat: 1, Lon: 1}, LowerTimeMinute: 480 + 15, UpperTimeMinute: 480 + 60},
					{NodeID: "B", Coordinate: entities.Coordinate{Lat: 2, Lon: 2}, LowerTimeMinute: 600, UpperTimeMinute: 600 + 60},
					{NodeID: "end", Coordinate: entities.Coordinate{Lat: 0, Lon: 0}, LowerTimeMinute: 650, UpperTimeMinute: 700},
				},
			},
		},
	}

	newOrderCoord := entities.Coordinate{Lat: 1.5, Lon: 1.5}
	pointA := entities.Coordinate{Lat: 1, Lon: 1}
	pointB := entities.Coordinate{Lat: 2, Lon: 2}

	// Only the A<->new-order and new-order<->B legs are close (5 minutes);
	// every other leg (home or end to the new order) is far, so only the
	// (A, B) insertion is feasible.
	transitLookup := oracle.Func(func(_ context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
		out := make([][]int, len(origins))
		for i, o := range origins {
			row := make([]int, len(destinations))
			for j, d := range destinations {
				if (o == pointA && d == newOrderCoord) || (o == newOrderCoord && d == pointB) {
					row[j] = 5
				} else {
					row[j] = 500
				}
			}
			out[i] = row
		}
		return out, nil
	})

	rows, err := vacancy.FindVacancies(context.Background(), plan, []entities.Technician{tech}, newOrderCoord, 15, entities.NewSkillSet(entities.SkillRegular), transitLookup)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Equal(t, "v0", row.TechnicianID)
	require.Equal(t, 10, row.TotalTravelTime)
	require.Equal(t, 8, row.TimeWindowStart)
	require.Equal(t, 9, row.TimeWindowEnd)
	require.Equal(t, "A", row.FromLocID)
	require.Equal(t, "B", row.ToLocID)
}

func TestFindVacancies_SkipsTechnicianLackingRequiredSkill(t *testing.T) {
	tech, err := entities.NewTechnician("v0", entities.Coordinate{}, 420, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.DefaultSkillRank, entities.GenderMale)
	require.NoError(t, err)

	plan := &serialize.Plan{
		Routes: []serialize.Route{
			{
				TechnicianID: "v0",
				Waypoints: []serialize.Waypoint{
					{NodeID: "start:v0", LowerTimeMinute: 420, UpperTimeMinute: 900},
					{NodeID: "end", LowerTimeMinute: 500, UpperTimeMinute: 900},
				},
			},
		},
	}

	rows, err := vacancy.FindVacancies(context.Background(), plan, []entities.Technician{tech}, entities.Coordinate{}, 15, entities.NewSkillSet(entities.SkillPremium), oracle.Constant(5))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestFindVacancies_SkipsWhenSlackTooSmall(t *testing.T) {
	tech, err := entities.NewTechnician("v0", entities.Coordinate{}, 420, 5, 900, 4.5, entities.NewSkillSet(entities.SkillRegular), entities.DefaultSkillRank, entities.GenderMale)
	require.NoError(t, err)

	plan := &serialize.Plan{
		Routes: []serialize.Route{
			{
				TechnicianID: "v0",
				Waypoints: []serialize.Waypoint{
					{NodeID: "start:v0", LowerTimeMinute: 420, UpperTimeMinute: 430}, // slack = 10
					{NodeID: "end", LowerTimeMinute: 500, UpperTimeMinute: 900},
				},
			},
		},
	}

	rows, err := vacancy.FindVacancies(context.Background(), plan, []entities.Technician{tech}, entities.Coordinate{}, 15, entities.NewSkillSet(entities.SkillRegular), oracle.Constant(5))
	require.NoError(t, err)
	require.Empty(t, rows, "slack (10) <= required_service (15) must be skipped")
}

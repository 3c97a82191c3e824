package httpapi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/homevisit/phleb-router/entities"
)

func TestOrderDTO_ToEntity(t *testing.T) {
	gender := 1
	d := orderDTO{
		ID: "o1", Lat: 1, Lon: 2,
		RequestedStartMinute: 400, ServiceMinutes: 15, DemandUnits: 1, Revenue: 200,
		RequiredSkills:   []string{"regular"},
		GenderPreference: &gender,
	}
	o, err := d.toEntity()
	require.NoError(t, err)
	require.Equal(t, "o1", o.ID)
	require.True(t, o.RequiredSkills.Contains(entities.SkillRegular))
	g, ok := o.GenderPreference.Get()
	require.True(t, ok)
	require.Equal(t, entities.GenderFemale, g)
}

func TestOrderDTO_ToEntity_NoGenderPreference(t *testing.T) {
	d := orderDTO{ID: "o1", Lat: 1, Lon: 2, RequestedStartMinute: 400, ServiceMinutes: 15, DemandUnits: 1, Revenue: 200, RequiredSkills: []string{"regular"}}
	o, err := d.toEntity()
	require.NoError(t, err)
	require.False(t, o.GenderPreference.IsPresent())
}

func TestTechnicianDTO_ToEntity(t *testing.T) {
	d := technicianDTO{
		ID: "t1", Lat: 1, Lon: 1, ShiftStartMinute: 420, Capacity: 5, Cost: 900, ServiceRating: 4.5,
		HeldSkills: []string{"premium"}, Gender: 0,
	}
	tech, err := d.toEntity()
	require.NoError(t, err)
	require.True(t, tech.Expertise.Superset(entities.NewSkillSet(entities.SkillRegular, entities.SkillPremium)))
}

func TestPlanRequest_Mode(t *testing.T) {
	require.Equal(t, 0, int(planRequest{Mode: "single"}.mode()))
	require.Equal(t, 1, int(planRequest{Mode: "multi"}.mode()))
	require.Equal(t, 0, int(planRequest{}.mode()))
}

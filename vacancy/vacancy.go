// Package vacancy implements the Slack-Insertion Query (spec §4.5): given
// an already-serialized plan and a prospective order, it enumerates
// feasible insertion slots across technicians without re-solving, for
// human confirmation rather than a guaranteed re-plan.
package vacancy

import (
	"context"
	"sort"

	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/oracle"
	"github.com/homevisit/phleb-router/serialize"
)

// Row is one feasible insertion candidate; its fields are the columns of
// the Slack-Insertion response of spec §6.
type Row struct {
	TechnicianID       string
	TotalTravelTime    int
	TimeWindowStart    int // hour, floor((end[from].lower + T) / 60)
	TimeWindowEnd      int // TimeWindowStart + 1
	FromLocID          string
	ToLocID            string
	FromLocCoordinates entities.Coordinate
	ToLocCoordinates   entities.Coordinate
}

// FindVacancies enumerates insertion candidates for a prospective order
// across every technician whose expertise covers requiredSkills, skipping
// technicians absent from the plan. Rows are sorted by TotalTravelTime
// ascending (spec §4.5, §6).
func FindVacancies(ctx context.Context, plan *serialize.Plan, technicians []entities.Technician, orderCoord entities.Coordinate, requiredService int, requiredSkills entities.SkillSet, o oracle.TravelTimeOracle) ([]Row, error) {
	expertiseByID := make(map[string]entities.SkillSet, len(technicians))
	for _, t := range technicians {
		expertiseByID[t.ID] = t.Expertise
	}

	var rows []Row
	for _, route := range plan.Routes {
		expertise, ok := expertiseByID[route.TechnicianID]
		if !ok || !expertise.Superset(requiredSkills) {
			continue
		}

		for k := 0; k+1 < len(route.Waypoints); k++ {
			from := route.Waypoints[k]
			to := route.Waypoints[k+1]

			slack := from.UpperTimeMinute - from.LowerTimeMinute
			if slack == 0 || slack <= requiredService {
				continue
			}

			matrix, err := o.Query(ctx, []entities.Coordinate{from.Coordinate, orderCoord}, []entities.Coordinate{orderCoord, to.Coordinate})
			if err != nil {
				return nil, err
			}
			transitFirst := matrix[0][0]
			transitSecond := matrix[1][1]
			total := transitFirst + transitSecond

			if from.LowerTimeMinute+total+requiredService > to.UpperTimeMinute {
				continue
			}

			windowStart := (from.LowerTimeMinute + total) / 60
			rows = append(rows, Row{
				TechnicianID:       route.TechnicianID,
				TotalTravelTime:    total,
				TimeWindowStart:    windowStart,
				TimeWindowEnd:      windowStart + 1,
				FromLocID:          from.NodeID,
				ToLocID:            to.NodeID,
				FromLocCoordinates: from.Coordinate,
				ToLocCoordinates:   to.Coordinate,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalTravelTime < rows[j].TotalTravelTime
	})

	return rows, nil
}

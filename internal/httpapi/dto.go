package httpapi

import (
	"github.com/homevisit/phleb-router/entities"
	"github.com/homevisit/phleb-router/featurize"
	"github.com/homevisit/phleb-router/serialize"
)

// orderDTO is the wire shape of one prospective order in a Plan request
// (spec §6).
type orderDTO struct {
	ID                   string   `json:"id"`
	Lat                  float64  `json:"lat"`
	Lon                  float64  `json:"lon"`
	RequestedStartMinute int      `json:"requested_start_minute"`
	ServiceMinutes       int      `json:"service_minutes"`
	DemandUnits          int      `json:"demand_units"`
	Revenue              int      `json:"revenue"`
	RequiredSkills       []string `json:"required_skills"`
	GenderPreference     *int     `json:"gender_preference,omitempty"`
}

func (d orderDTO) toEntity() (entities.Order, error) {
	skills := make([]entities.Skill, len(d.RequiredSkills))
	for i, s := range d.RequiredSkills {
		skills[i] = entities.Skill(s)
	}
	gender := entities.None[entities.Gender]()
	if d.GenderPreference != nil {
		gender = entities.Some(entities.Gender(*d.GenderPreference))
	}
	return entities.NewOrder(
		d.ID,
		entities.Coordinate{Lat: d.Lat, Lon: d.Lon},
		d.RequestedStartMinute, d.ServiceMinutes, d.DemandUnits, d.Revenue,
		entities.NewSkillSet(skills...),
		gender,
	)
}

// technicianDTO is the wire shape of one technician in a Plan request.
type technicianDTO struct {
	ID               string   `json:"id"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
	ShiftStartMinute int      `json:"shift_start_minute"`
	Capacity         int      `json:"capacity"`
	Cost             int      `json:"cost"`
	ServiceRating    float64  `json:"service_rating"`
	HeldSkills       []string `json:"held_skills"`
	Gender           int      `json:"gender"`
}

func (d technicianDTO) toEntity() (entities.Technician, error) {
	skills := make([]entities.Skill, len(d.HeldSkills))
	for i, s := range d.HeldSkills {
		skills[i] = entities.Skill(s)
	}
	return entities.NewTechnician(
		d.ID,
		entities.Coordinate{Lat: d.Lat, Lon: d.Lon},
		d.ShiftStartMinute, d.Capacity, d.Cost, d.ServiceRating,
		entities.NewSkillSet(skills...), entities.DefaultSkillRank,
		entities.Gender(d.Gender),
	)
}

// catchmentDTO is the wire shape of one end catchment in a Plan request.
type catchmentDTO struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (d catchmentDTO) toEntity() (entities.Catchment, error) {
	return entities.NewCatchment(d.ID, entities.Coordinate{Lat: d.Lat, Lon: d.Lon})
}

// planRequest is spec §6's "Plan request".
type planRequest struct {
	Orders      []orderDTO      `json:"orders"`
	Technicians []technicianDTO `json:"technicians"`
	Catchments  []catchmentDTO  `json:"catchments"`
	Mode        string          `json:"mode"`
	TimeBudgetS int             `json:"time_budget_s"`
}

func (r planRequest) mode() featurize.Mode {
	if r.Mode == "multi" {
		return featurize.MultiEnd
	}
	return featurize.SingleEnd
}

// locationDTO is one entry of the Plan result's Metadata.Locations.
type locationDTO struct {
	OrderID    string        `json:"order_id,omitempty"`
	PhlebID    string        `json:"phleb_id,omitempty"`
	Coordinate coordinateDTO `json:"coordinate"`
	Kind       string        `json:"kind"`
}

type coordinateDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type phlebotomistDTO struct {
	ID        string   `json:"id"`
	Expertise []string `json:"expertise"`
}

type metadataDTO struct {
	Locations     []locationDTO     `json:"locations"`
	Phlebotomists []phlebotomistDTO `json:"phlebotomists"`
}

func buildMetadata(view *featurize.View, technicians []entities.Technician) metadataDTO {
	locations := make([]locationDTO, len(view.Metadata))
	for i, m := range view.Metadata {
		locations[i] = locationDTO{
			OrderID:    m.OrderID,
			PhlebID:    m.PhlebID,
			Coordinate: coordinateDTO{Lat: m.Coordinate.Lat, Lon: m.Coordinate.Lon},
			Kind:       m.Kind.String(),
		}
	}
	phlebs := make([]phlebotomistDTO, len(technicians))
	for i, t := range technicians {
		phlebs[i] = phlebotomistDTO{
			ID:        t.ID,
			Expertise: skillStrings(t.Expertise),
		}
	}
	return metadataDTO{Locations: locations, Phlebotomists: phlebs}
}

func skillStrings(s entities.SkillSet) []string {
	ranked := s.Slice(entities.DefaultSkillRank)
	out := make([]string, len(ranked))
	for i, sk := range ranked {
		out[i] = string(sk)
	}
	return out
}

// modelDTO is the Plan result's Model block.
type modelDTO struct {
	Status                  string   `json:"status"`
	TotalRevenueLost        int      `json:"total_revenue_lost"`
	TotalNumberNodesDropped int      `json:"total_number_of_nodes_dropped"`
	NodesDropped            []string `json:"nodes_dropped"`
	TotalTravelTime         int      `json:"total_travel_time"`
}

// routeDTO is one entry of the Plan result's Routes list.
type routeDTO struct {
	PhlebotomistID   string   `json:"phlebotomist_id"`
	PrintableRoute   string   `json:"printable_route"`
	TotalTravelTime  int      `json:"total_travel_time"`
	LocationSequence []string `json:"location_sequence"`
}

// planResponse is spec §6's "Plan result".
type planResponse struct {
	Metadata metadataDTO `json:"metadata"`
	Model    modelDTO    `json:"model"`
	Routes   []routeDTO  `json:"routes"`
}

func buildPlanResponse(view *featurize.View, technicians []entities.Technician, plan *serialize.Plan) planResponse {
	totalTravel := 0
	routes := make([]routeDTO, len(plan.Routes))
	for i, r := range plan.Routes {
		totalTravel += r.TotalSpanMinutes
		seq := make([]string, len(r.Stops))
		for j, s := range r.Stops {
			seq[j] = s.OrderID
		}
		routes[i] = routeDTO{
			PhlebotomistID:   r.TechnicianID,
			PrintableRoute:   printableRoute(r),
			TotalTravelTime:  r.TotalSpanMinutes,
			LocationSequence: seq,
		}
	}

	return planResponse{
		Metadata: buildMetadata(view, technicians),
		Model: modelDTO{
			Status:                  plan.SolverStatus,
			TotalRevenueLost:        plan.TotalRevenueLost,
			TotalNumberNodesDropped: len(plan.DroppedOrderIDs),
			NodesDropped:            plan.DroppedOrderIDs,
			TotalTravelTime:         totalTravel,
		},
		Routes: routes,
	}
}

func printableRoute(r serialize.Route) string {
	out := r.TechnicianID
	for _, s := range r.Stops {
		out += " -> " + s.OrderID
	}
	if r.EndCatchmentID != "" {
		out += " -> " + r.EndCatchmentID
	}
	return out
}

// vacancyRequest is the prospective-order payload for the Slack-Insertion
// Query endpoint.
type vacancyRequest struct {
	Lat             float64  `json:"lat"`
	Lon             float64  `json:"lon"`
	RequiredService int      `json:"required_service_minutes"`
	RequiredSkills  []string `json:"required_skills"`
}

func (r vacancyRequest) skillSet() entities.SkillSet {
	skills := make([]entities.Skill, len(r.RequiredSkills))
	for i, s := range r.RequiredSkills {
		skills[i] = entities.Skill(s)
	}
	return entities.NewSkillSet(skills...)
}

// vacancyRowDTO is one row of the Slack-Insertion response (spec §6); its
// fields are the response's columns. The endpoint returns a JSON array of
// these row objects, not a layout with one array per column.
type vacancyRowDTO struct {
	PhlebotomistID     string        `json:"phlebotomist_id"`
	TotalTravelTime    int           `json:"total_travel_time"`
	TimeWindowStart    int           `json:"time_window_start"`
	TimeWindowEnd      int           `json:"time_window_end"`
	FromLocID          string        `json:"from_loc_id"`
	ToLocID            string        `json:"to_loc_id"`
	FromLocCoordinates coordinateDTO `json:"from_loc_coordinates"`
	ToLocCoordinates   coordinateDTO `json:"to_loc_coordinates"`
}

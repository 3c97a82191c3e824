package entities

import "math"

// Shift constants derived per spec §3: shift-end = shift-start + 8h,
// break-start = shift-start + 4h.
const (
	ShiftLengthMinutes     = 8 * 60
	BreakOffsetMinutes     = 4 * 60
	BreakWindowLenMinutes  = 60
)

// Technician is a mobile service provider ("phlebotomist").
type Technician struct {
	ID               string
	Home             Coordinate
	ShiftStartMinute int
	ShiftEndMinute   int
	BreakStartMinute int
	Capacity         int
	Cost             int
	ServiceRating    float64
	Expertise        SkillSet // already implication-expanded
	Gender           Gender
}

// NewTechnician constructs a Technician, deriving ShiftEndMinute and
// BreakStartMinute from ShiftStartMinute, and expanding heldSkills per the
// implication chain in rank (special ⇒ premium ⇒ regular) so that
// downstream eligibility checks are a plain superset test.
func NewTechnician(
	id string,
	home Coordinate,
	shiftStartMinute, capacity, cost int,
	serviceRating float64,
	heldSkills SkillSet,
	rank []Skill,
	gender Gender,
) (Technician, error) {
	if id == "" {
		return Technician{}, ErrEmptyID
	}
	if !home.Valid() {
		return Technician{}, ErrBadCoordinate
	}
	if shiftStartMinute < 0 {
		return Technician{}, ErrNegativeTime
	}
	if capacity <= 0 {
		return Technician{}, ErrNonPositiveCapacity
	}
	if serviceRating <= 0 {
		return Technician{}, ErrNonPositiveRating
	}

	return Technician{
		ID:               id,
		Home:             home,
		ShiftStartMinute: shiftStartMinute,
		ShiftEndMinute:   shiftStartMinute + ShiftLengthMinutes,
		BreakStartMinute: shiftStartMinute + BreakOffsetMinutes,
		Capacity:         capacity,
		Cost:             cost,
		ServiceRating:    serviceRating,
		Expertise:        ExpandImplied(heldSkills, rank),
		Gender:           gender,
	}, nil
}

// SpanCostCoefficient returns round(cost / service_rating), the per-vehicle
// weight fed into the Time dimension's span-cost term (spec §3, §4.2).
func (t Technician) SpanCostCoefficient() int {
	return int(math.Round(float64(t.Cost) / t.ServiceRating))
}

// EndWindow returns the notional end-node time window for this technician:
// [break-start, break-start+60] per spec §3.
func (t Technician) EndWindow() (lower, upper int) {
	return t.BreakStartMinute, t.BreakStartMinute + BreakWindowLenMinutes
}

package entities

// Gender is a binary preference/attribute, following the source dataset's
// encoding (male = 0, female = 1).
type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
)

// WindowSlackMinutes is the fixed slack added to an order's requested-start
// minute to produce its latest-start minute (spec §3: "latest-start minute
// (requested + 60)").
const WindowSlackMinutes = 60

// Order is one time-stamped customer visit to be serviced.
type Order struct {
	ID                   string
	Coordinate           Coordinate
	RequestedStartMinute int
	LatestStartMinute    int
	ServiceMinutes       int
	DemandUnits          int
	Revenue              int
	RequiredSkills       SkillSet
	GenderPreference     Option[Gender]
}

// NewOrder constructs an Order, deriving LatestStartMinute from
// RequestedStartMinute + WindowSlackMinutes and validating invariants from
// spec §3 (non-negative times, valid coordinate, non-negative demand).
func NewOrder(
	id string,
	coord Coordinate,
	requestedStartMinute, serviceMinutes, demandUnits, revenue int,
	requiredSkills SkillSet,
	genderPreference Option[Gender],
) (Order, error) {
	if id == "" {
		return Order{}, ErrEmptyID
	}
	if !coord.Valid() {
		return Order{}, ErrBadCoordinate
	}
	if requestedStartMinute < 0 || serviceMinutes < 0 {
		return Order{}, ErrNegativeTime
	}
	if demandUnits < 0 {
		return Order{}, ErrNegativeDemand
	}

	return Order{
		ID:                   id,
		Coordinate:           coord,
		RequestedStartMinute: requestedStartMinute,
		LatestStartMinute:    requestedStartMinute + WindowSlackMinutes,
		ServiceMinutes:       serviceMinutes,
		DemandUnits:          demandUnits,
		Revenue:              revenue,
		RequiredSkills:       requiredSkills,
		GenderPreference:     genderPreference,
	}, nil
}

// Window returns the order's requested time window as [lower, upper].
func (o Order) Window() (lower, upper int) {
	return o.RequestedStartMinute, o.LatestStartMinute
}

package vrpsolver

import "time"

// DefaultBudget is the solver's default wall-clock budget (spec §4.3: "30
// seconds, configurable").
const DefaultBudget = 30 * time.Second

// Config tunes the Model Builder and Solver Driver.
type Config struct {
	// Budget bounds the solver's wall-clock run time. Zero selects
	// DefaultBudget.
	Budget time.Duration

	// BaseTime anchors the engine's integer-minute clock to a real instant,
	// since the underlying CP engine's time windows are time.Time-valued.
	// Zero selects the current day's midnight in UTC at construction time.
	BaseTime time.Time
}

func (c Config) budget() time.Duration {
	if c.Budget <= 0 {
		return DefaultBudget
	}
	return c.Budget
}

func (c Config) baseTime() time.Time {
	if c.BaseTime.IsZero() {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return c.BaseTime
}

func (c Config) minutesToTime(minutes int) time.Time {
	return c.baseTime().Add(time.Duration(minutes) * time.Minute)
}

func (c Config) timeToMinutes(t time.Time) int {
	return int(t.Sub(c.baseTime()).Minutes())
}

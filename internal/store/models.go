package store

import "time"

// Sport is the normalized discipline of an activity.
type Sport string

const (
	SportSwim  Sport = "swim"
	SportBike  Sport = "bike"
	SportRun   Sport = "run"
	SportOther Sport = "other"
)

// Activity is one normalized workout summary. Only raw summary fields live
// here; derived metrics (TSS, IF, decoupling, EF, SWOLF) depend on the
// athlete profile and are recomputed on every analysis run so they can never
// go stale when FTP changes.
type Activity struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Sport     Sport     `db:"sport"`
	StartTime time.Time `db:"start_time"`
	Duration  int       `db:"duration"` // seconds

	Distance     *float64 `db:"distance"`      // meters, nullable
	AverageSpeed *float64 `db:"average_speed"` // m/s, nullable

	AverageHR     *float64   `db:"average_hr"` // bpm, nullable
	MaxHR         *float64   `db:"max_hr"`     // bpm, nullable
	HRZoneSeconds [5]float64 // time in HR zones 1-5, zero when no HR sensor worn

	AveragePower     *float64   `db:"average_power"`    // watts, nullable, bike only
	NormalizedPower  *float64   `db:"normalized_power"` // watts, nullable
	Best20MinPower   *float64   `db:"best_20min_power"` // watts, nullable
	PowerZoneSeconds [7]float64 // time in power zones 1-7

	TotalStrokes   *float64 `db:"total_strokes"`    // swim only
	ActiveSwimTime *float64 `db:"active_swim_time"` // seconds, swim only
	PoolLength     *float64 `db:"pool_length"`      // meters, swim only
}

// HasHeartrate reports whether the activity carries usable HR data.
func (a Activity) HasHeartrate() bool {
	return a.AverageHR != nil && *a.AverageHR > 0
}

// ZoneTime returns the total seconds recorded across all five HR zones.
func (a Activity) ZoneTime() float64 {
	var total float64
	for _, z := range a.HRZoneSeconds {
		total += z
	}
	return total
}

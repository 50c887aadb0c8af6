package analysis

import (
	"math"

	"tricoach/internal/store"
)

const (
	// MinDecouplingMinutes is the shortest run that supports a decoupling
	// estimate; shorter efforts leave the metric undefined.
	MinDecouplingMinutes = 20

	// maxEstimatedDecoupling caps the summary-based estimator; HR drift
	// beyond this is noise at the summary level.
	maxEstimatedDecoupling = 15

	// DefaultPoolLength is assumed when a swim doesn't report one (meters).
	DefaultPoolLength = 25
)

// ActivityMetrics holds the derived fields for one activity. A nil field
// means the metric could not be computed from the available data, which is
// distinct from a zero value.
type ActivityMetrics struct {
	TSS              *float64
	IntensityFactor  *float64
	Decoupling       *float64 // percent, run only
	EfficiencyFactor *float64 // bike only
	SWOLF            *float64 // swim only
}

// ActivityWithMetrics pairs an activity with its derived metrics.
type ActivityWithMetrics struct {
	Activity store.Activity
	Metrics  ActivityMetrics
}

// ComputeActivityMetrics derives all per-activity metrics. It is a pure
// function of the activity and the profile: identical inputs always produce
// identical outputs.
func ComputeActivityMetrics(a store.Activity, p Profile) ActivityMetrics {
	var m ActivityMetrics

	m.TSS = TrainingStress(a, p)
	m.IntensityFactor = IntensityFactor(a, p)

	if a.Sport == store.SportRun {
		m.Decoupling = EstimatedDecoupling(a)
	}
	if a.Sport == store.SportBike {
		m.EfficiencyFactor = EfficiencyFactor(a)
	}
	if a.Sport == store.SportSwim {
		m.SWOLF = SWOLF(a)
	}

	return m
}

// TrainingStress computes TSS. For rides with a power meter:
//
//	TSS = (durSec * NP * IF) / (FTP * 3600) * 100, IF = NP / FTP
//
// Without power it falls back to the HR estimate
//
//	TSS = hours * (avgHR / thresholdHR)^2 * 100
//
// Returns nil when neither power nor HR is available.
func TrainingStress(a store.Activity, p Profile) *float64 {
	if a.Sport == store.SportBike && a.NormalizedPower != nil && *a.NormalizedPower > 0 && p.FTPWatts > 0 {
		np := *a.NormalizedPower
		intensity := np / p.FTPWatts
		tss := (float64(a.Duration) * np * intensity) / (p.FTPWatts * 3600) * 100
		return &tss
	}

	if a.HasHeartrate() && p.ThresholdHR > 0 {
		hours := float64(a.Duration) / 3600
		ratio := *a.AverageHR / p.ThresholdHR
		tss := hours * ratio * ratio * 100
		return &tss
	}

	return nil
}

// IntensityFactor is NP/FTP for rides with power, avgHR/thresholdHR
// otherwise. Nil when neither is available.
func IntensityFactor(a store.Activity, p Profile) *float64 {
	if a.Sport == store.SportBike && a.NormalizedPower != nil && *a.NormalizedPower > 0 && p.FTPWatts > 0 {
		intensity := *a.NormalizedPower / p.FTPWatts
		return &intensity
	}
	if a.HasHeartrate() && p.ThresholdHR > 0 {
		intensity := *a.AverageHR / p.ThresholdHR
		return &intensity
	}
	return nil
}

// EstimatedDecoupling approximates pace:HR drift for a run from summary
// statistics. The summary feed carries no intra-activity samples, so the
// half-split ratio is estimated from the spread between max and average HR
// scaled by duration, capped at 15%. Undefined for runs under 20 minutes or
// without continuous HR.
func EstimatedDecoupling(a store.Activity) *float64 {
	minutes := float64(a.Duration) / 60
	if minutes < MinDecouplingMinutes {
		return nil
	}
	if !a.HasHeartrate() || a.MaxHR == nil || *a.MaxHR <= 0 {
		return nil
	}
	if a.AverageSpeed == nil || *a.AverageSpeed <= 0 {
		return nil
	}
	if a.ZoneTime() == 0 {
		// HR strap dropped out; a lone average is not continuous HR
		return nil
	}

	hrRange := *a.MaxHR - *a.AverageHR
	decoupling := (hrRange / *a.AverageHR) * (minutes / 120) * 100
	decoupling = math.Min(decoupling, maxEstimatedDecoupling)
	return &decoupling
}

// EfficiencyFactor is average speed over average HR for a ride.
// Higher is better - more speed for the same cardiac cost.
func EfficiencyFactor(a store.Activity) *float64 {
	if !a.HasHeartrate() {
		return nil
	}
	if a.AverageSpeed == nil || *a.AverageSpeed <= 0 {
		return nil
	}
	ef := *a.AverageSpeed / *a.AverageHR
	return &ef
}

// SWOLF scores swim efficiency: strokes per length plus seconds per length,
// lower is better. Lengths are derived from distance and pool length
// (default 25 m) when per-length data is absent.
func SWOLF(a store.Activity) *float64 {
	if a.TotalStrokes == nil || *a.TotalStrokes <= 0 {
		return nil
	}
	if a.Distance == nil || *a.Distance <= 0 {
		return nil
	}

	poolLength := float64(DefaultPoolLength)
	if a.PoolLength != nil && *a.PoolLength > 0 {
		poolLength = *a.PoolLength
	}

	lengths := *a.Distance / poolLength
	if lengths <= 0 {
		return nil
	}

	swimTime := float64(a.Duration)
	if a.ActiveSwimTime != nil && *a.ActiveSwimTime > 0 {
		swimTime = *a.ActiveSwimTime
	}

	strokesPerLength := *a.TotalStrokes / lengths
	secondsPerLength := swimTime / lengths
	swolf := strokesPerLength + secondsPerLength
	return &swolf
}

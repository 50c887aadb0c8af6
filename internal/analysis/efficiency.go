package analysis

import (
	"time"

	"tricoach/internal/store"
)

// Trend classifies the direction of an efficiency series.
type Trend string

const (
	TrendUnknown   Trend = "UNKNOWN" // fewer than two data points
	TrendImproving Trend = "IMPROVING"
	TrendDeclining Trend = "DECLINING"
	TrendStable    Trend = "STABLE"
)

// efTrendDeadBand is the relative change below which an EF shift is treated
// as noise rather than a trend.
const efTrendDeadBand = 0.05

// EFTrend classifies the efficiency-factor direction across the rides in the
// lookback window by comparing the earliest activities against the most
// recent ones. Summary records give only a handful of discrete points, so
// this is an approximation with a dead-band, not a regression.
func EFTrend(activities []ActivityWithMetrics, today time.Time, windowDays int) Trend {
	cutoff := today.AddDate(0, 0, -windowDays)

	var efs []float64
	for _, am := range activities {
		if am.Activity.Sport != store.SportBike || am.Metrics.EfficiencyFactor == nil {
			continue
		}
		start := am.Activity.StartTime
		if start.After(today) || !start.After(cutoff) {
			continue
		}
		efs = append(efs, *am.Metrics.EfficiencyFactor)
	}

	if len(efs) < 2 {
		return TrendUnknown
	}

	batch := len(efs) / 2
	if batch > 3 {
		batch = 3
	}
	if batch < 1 {
		batch = 1
	}

	first := mean(efs[:batch])
	last := mean(efs[len(efs)-batch:])

	switch {
	case last > first*(1+efTrendDeadBand):
		return TrendImproving
	case last < first*(1-efTrendDeadBand):
		return TrendDeclining
	default:
		return TrendStable
	}
}

// WindowAverage averages a derived metric over the activities of one sport
// inside the lookback window. Returns nil when no activity carries the
// metric.
func WindowAverage(activities []ActivityWithMetrics, sport store.Sport, pick func(ActivityMetrics) *float64, today time.Time, windowDays int) *float64 {
	cutoff := today.AddDate(0, 0, -windowDays)

	var sum float64
	var count int
	for _, am := range activities {
		if am.Activity.Sport != sport {
			continue
		}
		start := am.Activity.StartTime
		if start.After(today) || !start.After(cutoff) {
			continue
		}
		if v := pick(am.Metrics); v != nil {
			sum += *v
			count++
		}
	}

	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

package analysis

import (
	"sort"
	"time"

	"tricoach/internal/store"
)

// maxBrickGapMinutes is the longest bike-to-run gap still counted as a
// brick transition.
const maxBrickGapMinutes = 30

// BrickPerformance measures the mean run-pace lag on bike-to-run
// transitions: how much slower the run off the bike is than the athlete's
// median run pace, in percent. Positive means slower. Nil when the feed
// contains no brick workouts or no comparable runs.
func BrickPerformance(activities []store.Activity) *float64 {
	medianPace := medianRunPace(activities)
	if medianPace == nil {
		return nil
	}

	var lags []float64
	for i := 0; i+1 < len(activities); i++ {
		current, next := activities[i], activities[i+1]
		if current.Sport != store.SportBike || next.Sport != store.SportRun {
			continue
		}

		bikeEnd := current.StartTime.Add(time.Duration(current.Duration) * time.Second)
		gap := next.StartTime.Sub(bikeEnd)
		if gap < 0 || gap > maxBrickGapMinutes*time.Minute {
			continue
		}

		pace := runPaceMinPerKm(next)
		if pace == nil {
			continue
		}
		lag := (*pace - *medianPace) / *medianPace * 100
		lags = append(lags, lag)
	}

	if len(lags) == 0 {
		return nil
	}
	avg := mean(lags)
	return &avg
}

// runPaceMinPerKm converts a run's distance and duration into min/km.
func runPaceMinPerKm(a store.Activity) *float64 {
	if a.Distance == nil || *a.Distance <= 0 || a.Duration <= 0 {
		return nil
	}
	km := *a.Distance / 1000
	pace := float64(a.Duration) / 60 / km
	return &pace
}

func medianRunPace(activities []store.Activity) *float64 {
	var paces []float64
	for _, a := range activities {
		if a.Sport != store.SportRun {
			continue
		}
		if pace := runPaceMinPerKm(a); pace != nil {
			paces = append(paces, *pace)
		}
	}
	if len(paces) == 0 {
		return nil
	}

	sort.Float64s(paces)
	mid := len(paces) / 2
	var median float64
	if len(paces)%2 == 0 {
		median = (paces[mid-1] + paces[mid]) / 2
	} else {
		median = paces[mid]
	}
	return &median
}

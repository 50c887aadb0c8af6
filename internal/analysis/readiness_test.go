package analysis

import (
	"math"
	"testing"
	"time"

	"tricoach/internal/store"
)

func hrSession(daysAgo int, avgHR float64) store.Activity {
	return store.Activity{
		Sport:     store.SportRun,
		StartTime: day.AddDate(0, 0, -daysAgo).Add(-2 * time.Hour),
		Duration:  3600,
		AverageHR: floatPtr(avgHR),
	}
}

func TestAssessReadiness(t *testing.T) {
	t.Run("balanced when recent HR matches baseline", func(t *testing.T) {
		activities := []store.Activity{
			hrSession(30, 150),
			hrSession(20, 150),
			hrSession(3, 151),
			hrSession(1, 149),
		}

		r := AssessReadiness(activities, day, 60)
		if r.Status != HRStatusBalanced {
			t.Errorf("Status = %s, want %s", r.Status, HRStatusBalanced)
		}
		if r.RecentAvgHR == nil || *r.RecentAvgHR != 150 {
			t.Errorf("RecentAvgHR = %v, want 150", r.RecentAvgHR)
		}
	})

	t.Run("elevated when recent HR rises above baseline", func(t *testing.T) {
		activities := []store.Activity{
			hrSession(30, 140),
			hrSession(25, 140),
			hrSession(20, 140),
			hrSession(2, 152),
			hrSession(1, 152),
		}

		r := AssessReadiness(activities, day, 60)
		if r.Status != HRStatusElevated {
			t.Errorf("Status = %s, want %s", r.Status, HRStatusElevated)
		}
		if r.HRDeviationPct == nil || *r.HRDeviationPct <= 0 {
			t.Errorf("HRDeviationPct = %v, want positive", r.HRDeviationPct)
		}
	})

	t.Run("unknown without HR data", func(t *testing.T) {
		activities := []store.Activity{
			{Sport: store.SportBike, StartTime: day.AddDate(0, 0, -2), Duration: 3600},
		}

		r := AssessReadiness(activities, day, 60)
		if r.Status != HRStatusUnknown {
			t.Errorf("Status = %s, want %s", r.Status, HRStatusUnknown)
		}
		if r.RecentAvgHR != nil || r.BaselineAvgHR != nil {
			t.Error("HR averages must stay nil without HR data")
		}
	})

	t.Run("rest day share", func(t *testing.T) {
		activities := []store.Activity{
			hrSession(1, 150),
			hrSession(2, 150),
			hrSession(5, 150),
		}

		r := AssessReadiness(activities, day, 10)
		if r.RestDayPct == nil {
			t.Fatal("RestDayPct = nil, want share")
		}
		// 3 active days in a 10-day window
		if math.Abs(*r.RestDayPct-70) > 0.001 {
			t.Errorf("RestDayPct = %v, want 70", *r.RestDayPct)
		}
	})

	t.Run("rest day share nil with empty window", func(t *testing.T) {
		activities := []store.Activity{hrSession(40, 150)}
		r := AssessReadiness(activities, day, 10)
		if r.RestDayPct != nil {
			t.Errorf("RestDayPct = %v, want nil", *r.RestDayPct)
		}
	})
}

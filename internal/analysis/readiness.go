package analysis

import (
	"time"

	"tricoach/internal/store"
)

// readinessWindowDays is the recovery lookback; recovery metrics always use
// the last 7 days regardless of the trend window.
const readinessWindowDays = 7

// elevatedHRThreshold is the relative rise of recent activity HR over the
// baseline that flags incomplete recovery.
const elevatedHRThreshold = 1.02

// HRStatus labels the recent-vs-baseline activity HR comparison.
type HRStatus string

const (
	HRStatusUnknown  HRStatus = "UNKNOWN"
	HRStatusBalanced HRStatus = "BALANCED"
	HRStatusElevated HRStatus = "ELEVATED"
)

// Readiness approximates recovery state from activity data alone. Without a
// wellness feed there is no true resting HR, so the signal is average
// working HR over the last 7 days against the all-history baseline, plus the
// rest-day share of the trend window.
type Readiness struct {
	Status         HRStatus `json:"hr_status"`
	RecentAvgHR    *float64 `json:"recent_avg_hr"`
	BaselineAvgHR  *float64 `json:"baseline_avg_hr"`
	HRDeviationPct *float64 `json:"hr_deviation_pct"`
	RestDayPct     *float64 `json:"rest_day_pct"`
}

// AssessReadiness computes the activity-HR readiness fallback over the feed.
func AssessReadiness(activities []store.Activity, today time.Time, trendWindowDays int) Readiness {
	r := Readiness{Status: HRStatusUnknown}

	recentCutoff := today.AddDate(0, 0, -readinessWindowDays)

	var recentSum, baselineSum float64
	var recentCount, baselineCount int
	for _, a := range activities {
		if !a.HasHeartrate() || a.StartTime.After(today) {
			continue
		}
		baselineSum += *a.AverageHR
		baselineCount++
		if a.StartTime.After(recentCutoff) {
			recentSum += *a.AverageHR
			recentCount++
		}
	}

	if baselineCount > 0 {
		baseline := baselineSum / float64(baselineCount)
		r.BaselineAvgHR = &baseline
	}
	if recentCount > 0 {
		recent := recentSum / float64(recentCount)
		r.RecentAvgHR = &recent
	}

	if r.RecentAvgHR != nil && r.BaselineAvgHR != nil && *r.BaselineAvgHR > 0 {
		deviation := (*r.RecentAvgHR - *r.BaselineAvgHR) / *r.BaselineAvgHR * 100
		r.HRDeviationPct = &deviation

		if *r.RecentAvgHR <= *r.BaselineAvgHR*elevatedHRThreshold {
			r.Status = HRStatusBalanced
		} else {
			r.Status = HRStatusElevated
		}
	}

	r.RestDayPct = restDayShare(activities, today, trendWindowDays)
	return r
}

// restDayShare is the fraction of days in the window without any activity.
func restDayShare(activities []store.Activity, today time.Time, windowDays int) *float64 {
	cutoff := today.AddDate(0, 0, -windowDays)

	activeDays := make(map[string]bool)
	seen := false
	for _, a := range activities {
		if a.StartTime.After(today) || !a.StartTime.After(cutoff) {
			continue
		}
		activeDays[a.StartTime.Format("2006-01-02")] = true
		seen = true
	}
	if !seen {
		return nil
	}

	rest := float64(windowDays-len(activeDays)) / float64(windowDays) * 100
	if rest < 0 {
		rest = 0
	}
	return &rest
}

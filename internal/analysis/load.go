package analysis

import (
	"time"

	"tricoach/internal/store"
)

const (
	// AcuteWindowDays and ChronicWindowDays are the fixed ACWR windows.
	// Injury-risk research is calibrated on the 7/28 convention, so these
	// are deliberately not configurable; the trend window is.
	AcuteWindowDays   = 7
	ChronicWindowDays = 28

	// durationProxyFactor converts minutes to an estimated TSS when an
	// activity has neither power nor HR data.
	durationProxyFactor = 0.8

	// WeeklyChartWeeks is how many trailing weeks of TSS the brief charts.
	WeeklyChartWeeks = 8
)

// RiskLevel classifies the ACWR into injury-risk bands.
type RiskLevel string

const (
	RiskUnknown    RiskLevel = "UNKNOWN" // insufficient history
	RiskHigh       RiskLevel = "HIGH"
	RiskElevated   RiskLevel = "ELEVATED"
	RiskOptimal    RiskLevel = "OPTIMAL"
	RiskDetraining RiskLevel = "DETRAINING"
)

// ZoneDistribution is the share of HR-bearing time spent easy (Z1-2),
// at tempo (Z3) and hard (Z4-5). Percentages sum to 100.
type ZoneDistribution struct {
	EasyPct  float64 `json:"z1_2_pct"`
	TempoPct float64 `json:"z3_pct"`
	HardPct  float64 `json:"z4_5_pct"`
}

// LoadSummary is the windowed aggregate over the activity feed. Nil fields
// mean the backing window had no qualifying activities; callers must treat
// that as missing history, never as zero load or perfect compliance.
type LoadSummary struct {
	AcuteDailyTSS   *float64          `json:"acute_daily_tss"`
	ChronicDailyTSS *float64          `json:"chronic_daily_tss"`
	ACWR            *float64          `json:"acwr"`
	Risk            RiskLevel         `json:"risk"`
	Zones           *ZoneDistribution `json:"zones"`
	WeeklyTSS       []float64         `json:"weekly_tss"` // oldest week first
	ActivityCount   int               `json:"activity_count"`
}

// loadTSS returns the activity's training stress, falling back to the
// duration-based proxy when no TSS could be derived.
func loadTSS(am ActivityWithMetrics) float64 {
	if am.Metrics.TSS != nil {
		return *am.Metrics.TSS
	}
	return float64(am.Activity.Duration) / 60 * durationProxyFactor
}

// Aggregate computes acute/chronic load, ACWR, risk and zone distribution
// from activities ordered by date. The trend window governs the zone
// distribution only; the load windows are fixed at 7/28 days.
func Aggregate(activities []ActivityWithMetrics, today time.Time, trendWindowDays int) LoadSummary {
	summary := LoadSummary{Risk: RiskUnknown, ActivityCount: len(activities)}

	acuteCutoff := today.AddDate(0, 0, -AcuteWindowDays)
	chronicCutoff := today.AddDate(0, 0, -ChronicWindowDays)

	var acuteSum, chronicSum float64
	chronicCount := 0
	for _, am := range activities {
		start := am.Activity.StartTime
		if start.After(today) || !start.After(chronicCutoff) {
			continue
		}
		tss := loadTSS(am)
		chronicSum += tss
		chronicCount++
		if start.After(acuteCutoff) {
			acuteSum += tss
		}
	}

	// With no chronic history every load metric is undefined; an empty
	// acute window against real chronic history is a true zero (a full
	// rest week must classify as detraining, not as missing data).
	if chronicCount > 0 {
		acute := acuteSum / AcuteWindowDays
		chronic := chronicSum / ChronicWindowDays
		summary.AcuteDailyTSS = &acute
		summary.ChronicDailyTSS = &chronic

		if chronic > 0 {
			acwr := acute / chronic
			summary.ACWR = &acwr
		}
	}
	summary.Risk = ClassifyRisk(summary.ACWR)

	summary.Zones = ZoneDistributionFor(activitiesOnly(activities), today, trendWindowDays)
	summary.WeeklyTSS = weeklyTSS(activities, today)

	return summary
}

// ClassifyRisk maps an ACWR onto a risk level, highest risk first.
// Undertraining (< 0.8) is deliberately distinct from optimal.
func ClassifyRisk(acwr *float64) RiskLevel {
	if acwr == nil {
		return RiskUnknown
	}
	switch {
	case *acwr > 1.5:
		return RiskHigh
	case *acwr > 1.3:
		return RiskElevated
	case *acwr >= 0.8:
		return RiskOptimal
	default:
		return RiskDetraining
	}
}

// ZoneDistributionFor sums time-in-zone across HR-bearing activities inside
// the window. Activities without HR data are excluded from the denominator.
// Returns nil when no activity qualifies.
func ZoneDistributionFor(activities []store.Activity, today time.Time, windowDays int) *ZoneDistribution {
	cutoff := today.AddDate(0, 0, -windowDays)

	var easy, tempo, hard float64
	for _, a := range activities {
		if a.StartTime.After(today) || !a.StartTime.After(cutoff) {
			continue
		}
		easy += a.HRZoneSeconds[0] + a.HRZoneSeconds[1]
		tempo += a.HRZoneSeconds[2]
		hard += a.HRZoneSeconds[3] + a.HRZoneSeconds[4]
	}

	total := easy + tempo + hard
	if total == 0 {
		return nil
	}

	return &ZoneDistribution{
		EasyPct:  easy / total * 100,
		TempoPct: tempo / total * 100,
		HardPct:  hard / total * 100,
	}
}

// weeklyTSS buckets training stress into trailing calendar weeks for the
// brief's chart, oldest week first.
func weeklyTSS(activities []ActivityWithMetrics, today time.Time) []float64 {
	weeks := make([]float64, WeeklyChartWeeks)
	windowStart := today.AddDate(0, 0, -7*WeeklyChartWeeks)

	for _, am := range activities {
		start := am.Activity.StartTime
		if start.After(today) || !start.After(windowStart) {
			continue
		}
		daysAgo := int(today.Sub(start).Hours() / 24)
		weekIdx := WeeklyChartWeeks - 1 - daysAgo/7
		if weekIdx >= 0 && weekIdx < WeeklyChartWeeks {
			weeks[weekIdx] += loadTSS(am)
		}
	}
	return weeks
}

func activitiesOnly(ams []ActivityWithMetrics) []store.Activity {
	activities := make([]store.Activity, len(ams))
	for i, am := range ams {
		activities[i] = am.Activity
	}
	return activities
}

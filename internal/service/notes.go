package service

import (
	"fmt"

	"tricoach/internal/analysis"
)

// swolfAttentionThreshold flags swim technique work; a SWOLF above 40 in a
// 25 m pool is a clear efficiency gap for an age-group triathlete.
const swolfAttentionThreshold = 40

// coachingNotes derives the threshold-triggered observations that accompany
// the recommendation. Each note fires independently; order is fixed so the
// brief reads the same for the same inputs.
func coachingNotes(b *Brief) []string {
	var notes []string

	if b.Load.ACWR != nil {
		switch b.Load.Risk {
		case analysis.RiskHigh:
			notes = append(notes, fmt.Sprintf(
				"Load ramp is steep (ACWR %.2f). Back off before your body does it for you.", *b.Load.ACWR))
		case analysis.RiskElevated:
			notes = append(notes, fmt.Sprintf(
				"Load is climbing faster than your base (ACWR %.2f). Hold volume steady this week.", *b.Load.ACWR))
		case analysis.RiskDetraining:
			notes = append(notes, fmt.Sprintf(
				"Training load has dropped well below your base (ACWR %.2f). Fitness is leaking away.", *b.Load.ACWR))
		}
	}

	if d := b.Efficiency.AvgDecoupling; d != nil && *d > 5 {
		notes = append(notes, fmt.Sprintf(
			"Run decoupling averages %.1f%%. Your aerobic endurance isn't holding up late in runs - add easy volume.", *d))
	}

	if z := b.Load.Zones; z != nil && z.EasyPct < 70 {
		notes = append(notes, fmt.Sprintf(
			"Only %.0f%% of training time is in Z1-2. Polarize: most sessions should feel easy.", z.EasyPct))
	}

	if s := b.Efficiency.AvgSWOLF; s != nil && *s > swolfAttentionThreshold {
		notes = append(notes, fmt.Sprintf(
			"SWOLF averages %.0f. Swim technique work (drills, catch, body position) will buy free speed.", *s))
	}

	if b.Efficiency.EFTrend == analysis.TrendDeclining {
		notes = append(notes,
			"Bike efficiency factor is trending down. Check recovery, fueling and sleep before adding intensity.")
	}

	if b.Readiness.Status == analysis.HRStatusElevated {
		notes = append(notes,
			"Working heart rate is running above your baseline. Treat today as a recovery opportunity.")
	}

	return notes
}
